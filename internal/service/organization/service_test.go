package organization

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/medclinic-admin/internal/repository/memory"
	"github.com/jwalitptl/medclinic-admin/internal/seed"
	"github.com/jwalitptl/medclinic-admin/internal/service/entity"
	"github.com/jwalitptl/medclinic-admin/internal/service/lookup"
	"github.com/jwalitptl/medclinic-admin/pkg/logger"
)

func newService(t *testing.T) *Service {
	t.Helper()
	repos := memory.NewRepositories()
	require.NoError(t, seed.Load(context.Background(), repos, seed.Options{}, logger.Nop()))
	return NewService(repos.Organizations, lookup.NewService(repos.Facilities, repos.Roles), entity.Deps{})
}

func TestSubmitDedupesFacilities(t *testing.T) {
	svc := newService(t)
	s := svc.OpenCreate()
	s.Draft.Code = "ORG003"
	s.Draft.Name = "Wellness Partners"
	s.Draft.FacilityIDs = []string{"2", "", "1", "2"}

	org, err := svc.Submit(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "1"}, org.FacilityIDs)
}

func TestListViewsResolvesFacilityNames(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	views, err := svc.ListViews(ctx, "")
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, []string{"MedClinic Central", "MedClinic North"}, views[0].FacilityNames)

	s, err := svc.OpenEdit(ctx, "2")
	require.NoError(t, err)
	s.Draft.FacilityIDs = []string{"9", "1"}
	_, err = svc.Submit(ctx, s)
	require.NoError(t, err)

	view, err := svc.GetView(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, []string{"MedClinic Central"}, view.FacilityNames)
}

func TestListViewsFilters(t *testing.T) {
	svc := newService(t)

	views, err := svc.ListViews(context.Background(), "org002")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Medical Centers Inc", views[0].Name)
}
