package facility

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/medclinic-admin/internal/model"
	"github.com/jwalitptl/medclinic-admin/internal/repository/memory"
	"github.com/jwalitptl/medclinic-admin/internal/seed"
	"github.com/jwalitptl/medclinic-admin/internal/service/entity"
	apperrors "github.com/jwalitptl/medclinic-admin/pkg/errors"
	"github.com/jwalitptl/medclinic-admin/pkg/logger"
)

func newService(t *testing.T) *Service {
	t.Helper()
	repos := memory.NewRepositories()
	require.NoError(t, seed.Load(context.Background(), repos, seed.Options{}, logger.Nop()))
	ids := 0
	return NewService(repos.Facilities, entity.Deps{NewID: func() string {
		ids++
		return fmt.Sprintf("gen-%d", ids)
	}})
}

func TestCreateAssignsHolidayIDs(t *testing.T) {
	svc := newService(t)
	s := svc.OpenCreate()
	s.Draft.Code = "MCS001"
	s.Draft.Name = "MedClinic South"
	s.Draft.Holidays = []model.Holiday{{Name: "Independence Day", Date: "2024-07-04"}}

	f, err := svc.Submit(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, "gen-1", f.Holidays[0].ID)
	assert.Equal(t, "gen-2", f.ID)
	assert.Len(t, f.WorkingHours, 7)
}

func TestRejectsBadHours(t *testing.T) {
	svc := newService(t)
	s, err := svc.OpenEdit(context.Background(), "1")
	require.NoError(t, err)
	s.Draft.WorkingHours[0].OpenTime = "18:00"
	s.Draft.Holidays = append(s.Draft.Holidays, model.Holiday{Name: "Xmas again", Date: "2024-12-25"})

	_, err = svc.Submit(context.Background(), s)
	require.True(t, apperrors.Is(err, apperrors.ErrValidation))

	stored, err := svc.Get(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "09:00", stored.WorkingHours[0].OpenTime)
}

func TestClosedDayIgnoresTimes(t *testing.T) {
	svc := newService(t)
	s := svc.OpenCreate()
	s.Draft.Code = "X"
	s.Draft.Name = "X"
	s.Draft.WorkingHours[6].OpenTime = "15:00"

	_, err := svc.Submit(context.Background(), s)
	assert.NoError(t, err)
}

func TestIsOpen(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	tests := []struct {
		date string
		want bool
	}{
		{"2024-12-24", true},  // tuesday
		{"2024-12-25", false}, // holiday
		{"2024-12-28", false}, // saturday
	}
	for _, tt := range tests {
		got, err := svc.IsOpen(ctx, "1", tt.date)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.date)
	}

	_, err := svc.IsOpen(ctx, "1", "24-12-2024")
	assert.True(t, apperrors.Is(err, apperrors.ErrBadRequest))
	_, err = svc.IsOpen(ctx, "missing", "2024-12-24")
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestCreateEditDeleteScenario(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	before, err := svc.List(ctx, "")
	require.NoError(t, err)

	s := svc.OpenCreate()
	s.Draft.Code = "MCC002"
	s.Draft.Name = "MedClinic South"
	s.Draft.Email = "south@medclinic.com"
	created, err := svc.Submit(ctx, s)
	require.NoError(t, err)

	found, err := svc.List(ctx, "MCC002")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, created.ID, found[0].ID)
	for _, f := range before {
		assert.NotEqual(t, f.ID, created.ID)
	}

	edit, err := svc.OpenEdit(ctx, created.ID)
	require.NoError(t, err)
	edit.Draft.Status = model.StatusInactive
	_, err = svc.Submit(ctx, edit)
	require.NoError(t, err)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, len(before)+1)
	found, err = svc.List(ctx, "MCC002")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, created.ID, found[0].ID)
	assert.Equal(t, model.StatusInactive, found[0].Status)

	require.NoError(t, svc.Delete(ctx, created.ID))
	all, err = svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, len(before))
	for _, f := range all {
		assert.NotEqual(t, created.ID, f.ID)
	}
}
