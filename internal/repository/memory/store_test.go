package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/medclinic-admin/internal/model"
	"github.com/jwalitptl/medclinic-admin/internal/repository"
)

func speciality(id, code, name string) *model.Speciality {
	s := &model.Speciality{Code: code, Name: name}
	s.ID = id
	return s
}

func TestStoreKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := NewStore[*model.Speciality]()

	require.NoError(t, s.Add(ctx, speciality("2", "DERM", "Dermatology")))
	require.NoError(t, s.Add(ctx, speciality("1", "CARD", "Cardiology")))
	require.NoError(t, s.Add(ctx, speciality("3", "NEUR", "Neurology")))

	items, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "2", items[0].ID)
	assert.Equal(t, "1", items[1].ID)
	assert.Equal(t, "3", items[2].ID)

	_, err = s.Remove(ctx, "1")
	require.NoError(t, err)
	items, err = s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "3"}, []string{items[0].ID, items[1].ID})
}

func TestStoreCopiesValues(t *testing.T) {
	ctx := context.Background()
	s := NewStore[*model.Speciality]()

	in := speciality("1", "CARD", "Cardiology")
	require.NoError(t, s.Add(ctx, in))
	in.Name = "mutated after add"

	got, err := s.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Cardiology", got.Name)

	got.Name = "mutated after get"
	again, err := s.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Cardiology", again.Name)
}

func TestStoreErrors(t *testing.T) {
	ctx := context.Background()
	s := NewStore[*model.Speciality]()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = s.Update(ctx, speciality("missing", "X", "X"))
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, s.Add(ctx, speciality("1", "CARD", "Cardiology")))
	assert.ErrorIs(t, s.Add(ctx, speciality("1", "CARD", "Cardiology")), repository.ErrDuplicate)

	for _, tt := range []struct {
		id      string
		removed bool
	}{{"missing", false}, {"1", true}, {"1", false}} {
		removed, err := s.Remove(ctx, tt.id)
		assert.NoError(t, err)
		assert.Equal(t, tt.removed, removed, tt.id)
	}
}

func TestStoreUpdateReplacesInPlace(t *testing.T) {
	ctx := context.Background()
	s := NewStore[*model.Speciality]()
	require.NoError(t, s.Add(ctx, speciality("1", "CARD", "Cardiology")))
	require.NoError(t, s.Add(ctx, speciality("2", "DERM", "Dermatology")))

	require.NoError(t, s.Update(ctx, speciality("1", "CARD", "Heart")))

	items, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Heart", items[0].Name)
	assert.Equal(t, "2", items[1].ID)
}

func TestStoreConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := NewStore[*model.Speciality]()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.Add(ctx, speciality(fmt.Sprintf("id-%d", i), "C", "N"))
			_, _ = s.List(ctx)
		}(i)
	}
	wg.Wait()

	items, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 50)
}
