// Package roles holds the static role catalog and the privileged-set check
// used for community-level authorization.
package roles

import (
	"context"
	"fmt"

	"commons/internal/models"

	"gorm.io/gorm"
)

// Catalog is the full set of roles the platform knows about. It is seeded
// into the roles table at bootstrap and never redefined at runtime.
var Catalog = []models.Role{
	{Name: models.RoleCommunityFounder, DisplayName: "Community Founder"},
	{Name: models.RoleSystemAdministrator, DisplayName: "System Administrator"},
	{Name: models.RoleModerator, DisplayName: "Moderator"},
	{Name: models.RoleMember, DisplayName: "Member"},
}

// IsPrivileged reports whether the named role may perform community-level
// destructive actions (delete, transfer, administer).
func IsPrivileged(roleName string) bool {
	return roleName == models.RoleCommunityFounder || roleName == models.RoleSystemAdministrator
}

// Registry is a read-only lookup table over the seeded role rows.
type Registry struct {
	byName map[string]models.Role
	byID   map[uint]models.Role
}

// Load reads the seeded role catalog from the database once at process
// start. It fails if any catalog role is missing, so a misseeded deployment
// surfaces immediately rather than as 404s on role assignment.
func Load(ctx context.Context, db *gorm.DB) (*Registry, error) {
	var rows []models.Role
	if err := db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load role catalog: %w", err)
	}

	r := &Registry{
		byName: make(map[string]models.Role, len(rows)),
		byID:   make(map[uint]models.Role, len(rows)),
	}
	for _, row := range rows {
		r.byName[row.Name] = row
		r.byID[row.ID] = row
	}

	for _, want := range Catalog {
		if _, ok := r.byName[want.Name]; !ok {
			return nil, fmt.Errorf("role catalog incomplete: %q not seeded", want.Name)
		}
	}

	return r, nil
}

// NewRegistry builds a registry from in-memory rows. Intended for tests.
func NewRegistry(rows []models.Role) *Registry {
	r := &Registry{
		byName: make(map[string]models.Role, len(rows)),
		byID:   make(map[uint]models.Role, len(rows)),
	}
	for _, row := range rows {
		r.byName[row.Name] = row
		r.byID[row.ID] = row
	}
	return r
}

// Resolve looks up a role by name.
func (r *Registry) Resolve(name string) (models.Role, bool) {
	role, ok := r.byName[name]
	return role, ok
}

// ResolveID looks up a role by its primary key.
func (r *Registry) ResolveID(id uint) (models.Role, bool) {
	role, ok := r.byID[id]
	return role, ok
}
