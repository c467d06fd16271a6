package masters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCascadingFilters(t *testing.T) {
	svc := NewService()

	states := svc.States("2")
	require.Len(t, states, 3)
	assert.Equal(t, "England", states[0].Name)
	for _, st := range states {
		assert.Equal(t, "2", st.CountryID)
	}

	cities := svc.Cities("1")
	require.Len(t, cities, 2)
	assert.Equal(t, "New York City", cities[0].Name)

	assert.Empty(t, svc.States(""))
	assert.Empty(t, svc.Cities(""))
	assert.NotNil(t, svc.States("99"))
	assert.Empty(t, svc.Cities("9"))
}

func TestMembership(t *testing.T) {
	svc := NewService()

	assert.True(t, svc.StateInCountry("4", "2"))
	assert.False(t, svc.StateInCountry("4", "1"))
	assert.False(t, svc.StateInCountry("99", "1"))
	assert.True(t, svc.CityInState("7", "4"))
	assert.False(t, svc.CityInState("7", "1"))
}

func TestListsAreCopies(t *testing.T) {
	svc := NewService()

	countries := svc.Countries()
	countries[0].Name = "changed"
	assert.Equal(t, "United States", svc.Countries()[0].Name)

	groups := svc.BloodGroups()
	require.Len(t, groups, 8)
	assert.Equal(t, "8", groups[7].ID)
	assert.Equal(t, "O-", groups[7].Code)

	assert.Len(t, svc.IdentificationTypes(), 3)
	assert.Len(t, svc.Insurers(), 3)
	assert.Len(t, svc.Nationalities(), 3)
}
