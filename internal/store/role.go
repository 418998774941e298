package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/d9705996/teamconnect/internal/apperr"
	"github.com/d9705996/teamconnect/internal/db"
	"github.com/d9705996/teamconnect/internal/model"
	"gorm.io/gorm"
)

const roleCountsSelect = "roles.*, (SELECT COUNT(*) FROM users WHERE users.role_id = roles.id) AS member_count"

var errUnknownAccessLevel = apperr.New(apperr.KindValidation, "invalid_access_level", "access level does not exist")

// RolePatch holds the fields UpdateRole may change. Nil fields are kept.
type RolePatch struct {
	Name          *string
	AccessLevelID *uint
}

// CreateRole adds a role named name to tenantID.
func (s *Store) CreateRole(ctx context.Context, tenantID uint, name string, accessLevelID uint) (RoleView, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return RoleView{}, apperr.Validation("name is required")
	}

	tx := s.db.WithContext(ctx)
	level, err := accessLevel(tx, accessLevelID)
	if err != nil {
		return RoleView{}, err
	}

	role := model.Role{Name: name, CompanyID: tenantID, AccessLevelID: level.ID}
	if err := tx.Create(&role).Error; err != nil {
		return RoleView{}, fmt.Errorf("create role: %w", db.TranslateError(err))
	}
	role.AccessLevel = level
	return roleView(role), nil
}

// ListRoles returns the roles of tenantID with member counts.
func (s *Store) ListRoles(ctx context.Context, tenantID uint) ([]RoleView, error) {
	var roles []model.Role
	err := s.db.WithContext(ctx).
		Model(&model.Role{}).
		Select(roleCountsSelect).
		Where("roles.company_id = ?", tenantID).
		Preload("AccessLevel").
		Order("roles.id").
		Find(&roles).Error
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}

	out := make([]RoleView, 0, len(roles))
	for _, r := range roles {
		out = append(out, roleView(r))
	}
	return out, nil
}

// UpdateRole renames a role of tenantID and/or moves it to another access
// level. Roles of other tenants are reported as not found.
func (s *Store) UpdateRole(ctx context.Context, tenantID, roleID uint, patch RolePatch) (RoleView, error) {
	if patch.Name == nil && patch.AccessLevelID == nil {
		return RoleView{}, apperr.Validation("nothing to update: provide name or accessLevelId")
	}

	var out RoleView
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		role, err := roleInTenant(tx, tenantID, roleID)
		if err != nil {
			return err
		}

		updates := map[string]any{}
		if patch.Name != nil {
			name := strings.TrimSpace(*patch.Name)
			if name == "" {
				return apperr.Validation("name must not be empty")
			}
			updates["name"] = name
		}
		if patch.AccessLevelID != nil {
			level, err := accessLevel(tx, *patch.AccessLevelID)
			if err != nil {
				return err
			}
			updates["access_level_id"] = level.ID
		}

		if err := tx.Model(&role).Updates(updates).Error; err != nil {
			return fmt.Errorf("update role: %w", db.TranslateError(err))
		}

		reloaded, err := roleInTenant(tx, tenantID, roleID)
		if err != nil {
			return err
		}
		out = roleView(reloaded)
		return nil
	})
	if err != nil {
		return RoleView{}, err
	}
	return out, nil
}

// DeleteRole removes a role of tenantID. Its members keep their accounts
// and are left without a role.
func (s *Store) DeleteRole(ctx context.Context, tenantID, roleID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		role, err := roleInTenant(tx, tenantID, roleID)
		if err != nil {
			return err
		}
		if err := tx.Model(&model.User{}).
			Where("role_id = ? AND company_id = ?", role.ID, tenantID).
			Update("role_id", nil).Error; err != nil {
			return fmt.Errorf("unassign role members: %w", err)
		}
		if err := tx.Delete(&role).Error; err != nil {
			return fmt.Errorf("delete role: %w", db.TranslateError(err))
		}
		return nil
	})
}

// ListAccessLevels returns the system-wide access levels.
func (s *Store) ListAccessLevels(ctx context.Context) ([]AccessLevelView, error) {
	var levels []model.AccessLevel
	err := s.db.WithContext(ctx).
		Preload("Permissions", func(tx *gorm.DB) *gorm.DB { return tx.Order("permissions.action") }).
		Order("id").
		Find(&levels).Error
	if err != nil {
		return nil, fmt.Errorf("list access levels: %w", err)
	}

	out := make([]AccessLevelView, 0, len(levels))
	for _, l := range levels {
		actions := make([]string, 0, len(l.Permissions))
		for _, p := range l.Permissions {
			actions = append(actions, p.Action)
		}
		out = append(out, AccessLevelView{ID: l.ID, Name: l.Name, Description: l.Description, Permissions: actions})
	}
	return out, nil
}

func roleInTenant(tx *gorm.DB, tenantID, roleID uint) (model.Role, error) {
	var role model.Role
	err := tx.Model(&model.Role{}).
		Select(roleCountsSelect).
		Where("roles.id = ? AND roles.company_id = ?", roleID, tenantID).
		Preload("AccessLevel").
		First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return role, apperr.ErrRoleNotFound
	}
	if err != nil {
		return role, fmt.Errorf("load role: %w", err)
	}
	return role, nil
}

func accessLevel(tx *gorm.DB, id uint) (model.AccessLevel, error) {
	var level model.AccessLevel
	err := tx.First(&level, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return level, errUnknownAccessLevel
	}
	if err != nil {
		return level, fmt.Errorf("load access level: %w", err)
	}
	return level, nil
}
