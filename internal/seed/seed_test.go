package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jwalitptl/medclinic-admin/internal/repository/memory"
	"github.com/jwalitptl/medclinic-admin/pkg/logger"
	"github.com/jwalitptl/medclinic-admin/pkg/security"
)

func TestLoadFillsEmptyRepositories(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()
	hasher := security.NewBcryptHasher(bcrypt.MinCost)

	err := Load(ctx, repos, Options{BootstrapPassword: "changeme123", Hasher: hasher}, logger.Nop())
	require.NoError(t, err)

	facilities, err := repos.Facilities.List(ctx)
	require.NoError(t, err)
	require.Len(t, facilities, 2)
	assert.Equal(t, "MCC001", facilities[0].Code)
	assert.False(t, facilities[0].CreatedAt.IsZero())

	users, err := repos.Users.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.NoError(t, hasher.Compare(users[0].PasswordHash, "changeme123"))

	roles, err := repos.Roles.List(ctx)
	require.NoError(t, err)
	assert.False(t, roles[0].RequiresSpeciality)
	assert.True(t, roles[1].RequiresSpeciality)

	specs, err := repos.Specialities.List(ctx)
	require.NoError(t, err)
	assert.Len(t, specs, 5)
}

func TestLoadSkipsPopulatedRepositories(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()

	require.NoError(t, repos.Specialities.Add(ctx, Specialities()[0]))
	require.NoError(t, Load(ctx, repos, Options{}, logger.Nop()))

	specs, err := repos.Specialities.List(ctx)
	require.NoError(t, err)
	assert.Len(t, specs, 1)

	users, err := repos.Users.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, users[0].PasswordHash)
}

func TestDoctorsSeed(t *testing.T) {
	docs := Doctors()
	require.Len(t, docs, 1)
	assert.Equal(t, "Cardiology", docs[0].Speciality)
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00"}, docs[0].WorkingHours[0].Slots)
}
