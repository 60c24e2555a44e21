package services

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/harentsoaR/laskin-api/internal/models"
	"github.com/harentsoaR/laskin-api/internal/store"
)

// HasPermission is deny-by-default: no user, no permission set, or a
// (category, permission) pair that names no flag all yield false.
func HasPermission(user *models.User, category, permission string) bool {
	if user == nil || user.Permissions == nil {
		return false
	}
	v, ok := user.Permissions.Lookup(category, permission)
	return ok && v
}

type RoleSummary struct {
	RoleType    string                 `json:"roleType"`
	Description string                 `json:"description"`
	Permissions models.UserPermissions `json:"permissions"`
	UserCount   int                    `json:"userCount"`
	Users       []*models.User         `json:"users"`
}

type RoleService struct {
	store  *store.Store
	logger zerolog.Logger
}

func NewRoleService(st *store.Store, logger zerolog.Logger) *RoleService {
	return &RoleService{store: st, logger: logger.With().Str("component", "roles").Logger()}
}

// UpdateRolePermissions replaces the template's permissions and then hands
// every user of that role type its own copy. The user pass runs even when
// the template is unknown; the missing template is reported afterwards.
func (s *RoleService) UpdateRolePermissions(roleType string, perms models.UserPermissions) (int, error) {
	tplErr := s.store.SetRoleTemplatePermissions(roleType, perms)
	n := s.store.SetPermissionsForRoleType(roleType, perms)

	if tplErr != nil {
		if errors.Is(tplErr, store.ErrNotFound) {
			s.logger.Warn().Str("role_type", roleType).Int("users", n).Msg("permissions update for unknown role template")
			return n, ErrRoleTemplateNotFound
		}
		return n, tplErr
	}
	s.logger.Info().Str("role_type", roleType).Int("users", n).Msg("role permissions updated")
	return n, nil
}

// ListRoles returns every template with the users currently assigned to it.
func (s *RoleService) ListRoles() []RoleSummary {
	var out []RoleSummary
	for _, name := range s.store.RoleTypes() {
		tpl, err := s.store.RoleTemplate(name)
		if err != nil {
			continue
		}
		users := s.store.UsersByRoleType(name)
		if users == nil {
			users = []*models.User{}
		}
		out = append(out, RoleSummary{
			RoleType:    name,
			Description: tpl.Description,
			Permissions: tpl.Permissions,
			UserCount:   len(users),
			Users:       users,
		})
	}
	return out
}

func (s *RoleService) Role(roleType string) (RoleSummary, error) {
	tpl, err := s.store.RoleTemplate(roleType)
	if err != nil {
		return RoleSummary{}, ErrRoleTemplateNotFound
	}
	users := s.store.UsersByRoleType(roleType)
	if users == nil {
		users = []*models.User{}
	}
	return RoleSummary{
		RoleType:    roleType,
		Description: tpl.Description,
		Permissions: tpl.Permissions,
		UserCount:   len(users),
		Users:       users,
	}, nil
}
