package patient

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/medclinic-admin/internal/model"
	"github.com/jwalitptl/medclinic-admin/internal/repository/memory"
	"github.com/jwalitptl/medclinic-admin/internal/service/entity"
	apperrors "github.com/jwalitptl/medclinic-admin/pkg/errors"
)

func fill(p *model.Patient, first string) {
	p.FirstName = first
	p.LastName = "Walker"
	p.DateOfBirth = "1985-04-12"
	p.Gender = model.GenderFemale
	p.Identification = model.Identification{Type: "passport", Number: "P123", IssuingCountry: "US", ExpiryDate: "2030-01-01"}
	p.Address = model.Address{Country: "1", State: "1", City: "1"}
	p.Contact = model.Contact{Mobile: "+1 555 0100"}
}

func TestSubmitIssuesMRN(t *testing.T) {
	svc := NewService(memory.NewStore[*model.Patient](), entity.Deps{})
	ctx := context.Background()

	s := svc.OpenCreate()
	fill(s.Draft, "Ann")
	first, err := svc.Submit(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, "MRN000001", first.MRN)

	s = svc.OpenCreate()
	fill(s.Draft, "Bea")
	s.Draft.MRN = "MRN000002"
	_, err = svc.Submit(ctx, s)
	require.NoError(t, err)

	s = svc.OpenCreate()
	fill(s.Draft, "Cat")
	third, err := svc.Submit(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, "MRN000003", third.MRN)
}

func TestSubmitRejectsDuplicateMRN(t *testing.T) {
	svc := NewService(memory.NewStore[*model.Patient](), entity.Deps{})
	ctx := context.Background()

	s := svc.OpenCreate()
	fill(s.Draft, "Ann")
	first, err := svc.Submit(ctx, s)
	require.NoError(t, err)

	s = svc.OpenCreate()
	fill(s.Draft, "Bea")
	s.Draft.MRN = "mrn000001"
	_, err = svc.Submit(ctx, s)
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))

	edit, err := svc.OpenEdit(ctx, first.ID)
	require.NoError(t, err)
	edit.Draft.Email = "ann@example.com"
	edited, err := svc.Submit(ctx, edit)
	require.NoError(t, err)
	assert.Equal(t, first.MRN, edited.MRN)
}

func TestSubmitRequiresDemographics(t *testing.T) {
	svc := NewService(memory.NewStore[*model.Patient](), entity.Deps{})
	s := svc.OpenCreate()
	s.Draft.FirstName = "Ann"

	_, err := svc.Submit(context.Background(), s)
	require.True(t, apperrors.Is(err, apperrors.ErrValidation))

	patients, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, patients)
}
