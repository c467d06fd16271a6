// Package lookup resolves reference ids into display values. Unknown ids
// degrade to blanks rather than failing the list they are shown in.
package lookup

import (
	"context"
	"errors"
	"fmt"

	"github.com/jwalitptl/medclinic-admin/internal/repository"
)

type Service struct {
	facilities repository.FacilityRepository
	roles      repository.RoleRepository
}

func NewService(facilities repository.FacilityRepository, roles repository.RoleRepository) *Service {
	return &Service{facilities: facilities, roles: roles}
}

// FacilityNames returns the names of ids in the same order, skipping ids
// that no longer resolve.
func (s *Service) FacilityNames(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return []string{}, nil
	}
	all, err := s.facilities.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list facilities: %w", err)
	}
	byID := make(map[string]string, len(all))
	for _, f := range all {
		byID[f.ID] = f.Name
	}

	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := byID[id]; ok {
			names = append(names, name)
		}
	}
	return names, nil
}

// RoleName returns the role's name or "" when the role is unknown.
func (s *Service) RoleName(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", nil
	}
	role, err := s.roles.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get role: %w", err)
	}
	return role.Name, nil
}

// RequiresSpeciality reports the role capability, false for unknown roles.
func (s *Service) RequiresSpeciality(ctx context.Context, roleID string) (bool, error) {
	if roleID == "" {
		return false, nil
	}
	role, err := s.roles.Get(ctx, roleID)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get role: %w", err)
	}
	return role.RequiresSpeciality, nil
}
