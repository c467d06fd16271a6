package postgres

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/medclinic-admin/internal/model"
	"github.com/jwalitptl/medclinic-admin/internal/repository"
)

func newMockStore(t *testing.T) (*Store[*model.Speciality], sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { raw.Close() })

	db := sqlx.NewDb(raw, "postgres")
	return NewStore(db, repository.KindSpeciality, alloc[model.Speciality]), mock
}

func TestListDecodesInSequenceOrder(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"doc"}).
		AddRow([]byte(`{"id":"2","code":"DERM","name":"Dermatology"}`)).
		AddRow([]byte(`{"id":"1","code":"CARD","name":"Cardiology"}`))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT doc FROM records WHERE kind = $1 ORDER BY seq`)).
		WithArgs("speciality").
		WillReturnRows(rows)

	items, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "2", items[0].ID)
	assert.Equal(t, "Cardiology", items[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMissingIsNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT doc FROM records WHERE kind = $1 AND id = $2`)).
		WithArgs("speciality", "9").
		WillReturnRows(sqlmock.NewRows([]string{"doc"}))

	_, err := store.Get(context.Background(), "9")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddMapsUniqueViolation(t *testing.T) {
	store, mock := newMockStore(t)
	s := &model.Speciality{Code: "CARD", Name: "Cardiology"}
	s.ID = "1"

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO records (kind, id, doc) VALUES ($1, $2, $3)`)).
		WithArgs("speciality", "1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO records (kind, id, doc) VALUES ($1, $2, $3)`)).
		WithArgs("speciality", "1", sqlmock.AnyArg()).
		WillReturnError(&pq.Error{Code: "23505"})

	require.NoError(t, store.Add(context.Background(), s))
	assert.ErrorIs(t, store.Add(context.Background(), s), repository.ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMissingIsNotFound(t *testing.T) {
	store, mock := newMockStore(t)
	s := &model.Speciality{Code: "CARD", Name: "Cardiology"}
	s.ID = "1"

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE records SET doc = $3 WHERE kind = $1 AND id = $2`)).
		WithArgs("speciality", "1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, store.Update(context.Background(), s), repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveIsIdempotent(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM records WHERE kind = $1 AND id = $2`)).
		WithArgs("speciality", "1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM records WHERE kind = $1 AND id = $2`)).
		WithArgs("speciality", "1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	removed, err := store.Remove(context.Background(), "1")
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = store.Remove(context.Background(), "1")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
