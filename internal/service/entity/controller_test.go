package entity

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/medclinic-admin/internal/model"
	"github.com/jwalitptl/medclinic-admin/internal/repository/memory"
	apperrors "github.com/jwalitptl/medclinic-admin/pkg/errors"
)

type recorded struct {
	action, entityType, id string
}

type fakeAuditor struct {
	entries []recorded
}

func (f *fakeAuditor) Record(_ context.Context, action, entityType, entityID string) {
	f.entries = append(f.entries, recorded{action, entityType, entityID})
}

func newFacilityController(t *testing.T) (*Controller[*model.Facility], *fakeAuditor) {
	t.Helper()
	seq := 0
	aud := &fakeAuditor{}
	c := NewController[*model.Facility](memory.NewStore[*model.Facility](), Config[*model.Facility]{
		EntityType: model.AuditEntityFacility,
		Template:   model.NewFacility,
		Deps: Deps{
			Auditor: aud,
			Now:     func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) },
			NewID: func() string {
				seq++
				return fmt.Sprintf("f%d", seq)
			},
		},
	})
	return c, aud
}

func create(t *testing.T, c *Controller[*model.Facility], code, name, email string) *model.Facility {
	t.Helper()
	s := c.OpenCreate()
	s.Draft.Code = code
	s.Draft.Name = name
	s.Draft.Email = email
	f, err := c.Submit(context.Background(), s)
	require.NoError(t, err)
	return f
}

func TestSubmitCreateAppendsWithFreshID(t *testing.T) {
	c, aud := newFacilityController(t)
	ctx := context.Background()

	a := create(t, c, "MCC001", "MedClinic Central", "central@medclinic.com")
	b := create(t, c, "MCN001", "MedClinic North", "north@medclinic.com")

	assert.Equal(t, "f1", a.ID)
	assert.Equal(t, "f2", b.ID)
	assert.False(t, a.CreatedAt.IsZero())

	all, err := c.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "MCC001", all[0].Code)
	assert.Equal(t, "MCN001", all[1].Code)

	require.Len(t, aud.entries, 2)
	assert.Equal(t, recorded{"create", "facility", "f1"}, aud.entries[0])
}

func TestSubmitCreateIgnoresClientID(t *testing.T) {
	c, _ := newFacilityController(t)
	ctx := context.Background()

	existing := create(t, c, "MCC001", "MedClinic Central", "")

	s := c.OpenCreate()
	s.Draft.ID = existing.ID
	s.Draft.Code = "MCN001"
	s.Draft.Name = "MedClinic North"
	created, err := c.Submit(ctx, s)
	require.NoError(t, err)
	assert.NotEqual(t, existing.ID, created.ID)

	all, err := c.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSubmitEditReplacesOriginal(t *testing.T) {
	c, aud := newFacilityController(t)
	ctx := context.Background()

	create(t, c, "MCC001", "MedClinic Central", "")
	target := create(t, c, "MCN001", "MedClinic North", "")

	s, err := c.OpenEdit(ctx, target.ID)
	require.NoError(t, err)
	assert.Equal(t, ModeEdit, s.Mode)

	s.Draft.Name = "MedClinic North Campus"
	s.Draft.ID = "tampered"
	updated, err := c.Submit(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, target.ID, updated.ID)
	assert.Equal(t, target.CreatedAt, updated.CreatedAt)

	all, err := c.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "MedClinic North Campus", all[1].Name)
	assert.Equal(t, "update", aud.entries[len(aud.entries)-1].action)
}

func TestDraftChangesStayPrivateUntilSubmit(t *testing.T) {
	c, _ := newFacilityController(t)
	ctx := context.Background()
	f := create(t, c, "MCC001", "MedClinic Central", "")

	s, err := c.OpenEdit(ctx, f.ID)
	require.NoError(t, err)
	s.Draft.Name = "changed"
	s.Draft.WorkingHours[0].OpenTime = "06:00"

	stored, err := c.Get(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, "MedClinic Central", stored.Name)
	assert.Equal(t, "09:00", stored.WorkingHours[0].OpenTime)
	assert.Equal(t, "MedClinic Central", s.Original().Name)
}

func TestOpenCreateUsesFreshTemplate(t *testing.T) {
	c, _ := newFacilityController(t)

	first := c.OpenCreate()
	first.Draft.WorkingHours[0].OpenTime = "06:00"

	second := c.OpenCreate()
	assert.Equal(t, "09:00", second.Draft.WorkingHours[0].OpenTime)
	assert.Equal(t, model.StatusActive, second.Draft.Status)
	assert.Nil(t, second.Original())
}

func TestSubmitRejectsMissingRequiredFields(t *testing.T) {
	c, aud := newFacilityController(t)
	ctx := context.Background()

	s := c.OpenCreate()
	_, err := c.Submit(ctx, s)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))

	all, err := c.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Empty(t, aud.entries)

	s.Draft.Code = "MCC001"
	s.Draft.Name = "MedClinic Central"
	_, err = c.Submit(ctx, s)
	assert.NoError(t, err)
}

func TestSubmitTwiceConflicts(t *testing.T) {
	c, _ := newFacilityController(t)
	s := c.OpenCreate()
	s.Draft.Code = "MCC001"
	s.Draft.Name = "MedClinic Central"

	_, err := c.Submit(context.Background(), s)
	require.NoError(t, err)
	_, err = c.Submit(context.Background(), s)
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
}

func TestSubmitEditOfDeletedRecordIsNotFound(t *testing.T) {
	c, _ := newFacilityController(t)
	ctx := context.Background()
	f := create(t, c, "MCC001", "MedClinic Central", "")

	s, err := c.OpenEdit(ctx, f.ID)
	require.NoError(t, err)
	require.NoError(t, c.Delete(ctx, f.ID))

	_, err = c.Submit(ctx, s)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestListFilterIsCaseInsensitiveSubset(t *testing.T) {
	c, _ := newFacilityController(t)
	ctx := context.Background()
	create(t, c, "MCC001", "MedClinic Central", "central@medclinic.com")
	create(t, c, "MCN001", "MedClinic North", "north@medclinic.com")
	create(t, c, "XYZ001", "Riverside", "contact@riverside.org")

	all, err := c.List(ctx, "")
	require.NoError(t, err)

	tests := []struct {
		filter string
		want   []string
	}{
		{"medclinic", []string{"MCC001", "MCN001"}},
		{"NORTH", []string{"MCN001"}},
		{"xyz", []string{"XYZ001"}},
		{"riverside.org", []string{"XYZ001"}},
		{"nothing-matches", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			got, err := c.List(ctx, tt.filter)
			require.NoError(t, err)
			codes := make([]string, 0, len(got))
			for _, f := range got {
				codes = append(codes, f.Code)
				assert.Contains(t, idsOf(all), f.ID)
			}
			assert.Equal(t, tt.want, codes)
		})
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	c, aud := newFacilityController(t)
	ctx := context.Background()
	f := create(t, c, "MCC001", "MedClinic Central", "")

	require.NoError(t, c.Delete(ctx, f.ID))
	require.NoError(t, c.Delete(ctx, f.ID))
	require.NoError(t, c.Delete(ctx, "never-existed"))

	_, err := c.Get(ctx, f.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))

	var deletes []string
	for _, e := range aud.entries {
		if e.action == model.AuditActionDelete {
			deletes = append(deletes, e.id)
		}
	}
	assert.Equal(t, []string{f.ID}, deletes, "only the delete that removed a record is audited")
}

func TestBeforeSaveCanReject(t *testing.T) {
	c := NewController[*model.Speciality](memory.NewStore[*model.Speciality](), Config[*model.Speciality]{
		EntityType: model.AuditEntitySpeciality,
		Template:   model.NewSpeciality,
		BeforeSave: func(_ context.Context, s *Session[*model.Speciality]) error {
			if s.Draft.Code == "BAD" {
				return apperrors.BadRequest("bad code", nil)
			}
			return nil
		},
	})

	s := c.OpenCreate()
	s.Draft.Code = "BAD"
	s.Draft.Name = "Bad"
	_, err := c.Submit(context.Background(), s)
	assert.True(t, apperrors.Is(err, apperrors.ErrBadRequest))

	items, err := c.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func idsOf(items []*model.Facility) []string {
	out := make([]string, len(items))
	for i, f := range items {
		out[i] = f.ID
	}
	return out
}

func TestGeneratedIDsAreUUIDs(t *testing.T) {
	store := memory.NewStore[*model.Speciality]()
	ctx := context.Background()
	seeded := model.NewSpeciality()
	seeded.ID = "1"
	seeded.Code = "CARD"
	seeded.Name = "Cardiology"
	require.NoError(t, store.Add(ctx, seeded))

	c := NewController[*model.Speciality](store, Config[*model.Speciality]{
		EntityType: model.AuditEntitySpeciality,
		Template:   model.NewSpeciality,
	})

	s := c.OpenCreate()
	s.Draft.Code = "NEURO"
	s.Draft.Name = "Neurology"
	created, err := c.Submit(ctx, s)
	require.NoError(t, err)
	_, err = uuid.Parse(created.ID)
	assert.NoError(t, err)

	edit, err := c.OpenEdit(ctx, "1")
	require.NoError(t, err)
	edit.Draft.Name = "Cardiac Care"
	updated, err := c.Submit(ctx, edit)
	require.NoError(t, err)
	assert.Equal(t, "1", updated.ID)

	_, err = c.Get(ctx, "not-a-record")
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}
