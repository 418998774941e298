// Package seed creates the system-wide permissions and access levels every
// company relies on. It is safe to run on every startup.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/d9705996/teamconnect/internal/auth"
	"github.com/d9705996/teamconnect/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AdminAccessLevel is the access level bound to every company's
// "Administrador" role at registration.
const AdminAccessLevel = "Admin"

// MemberAccessLevel is the basic access level for employees.
const MemberAccessLevel = "Membro"

// Permissions is the fixed permission catalogue, keyed by action.
var Permissions = []model.Permission{
	{Action: auth.PermManageUsers, Description: "Can create, edit and delete users"},
	{Action: auth.PermManageRoles, Description: "Can create and edit roles and permissions"},
	{Action: auth.PermCreatePosts, Description: "Can create posts and events"},
}

// level describes a seeded access level and the actions it grants.
type level struct {
	Name        string
	Description string
	Actions     []string
}

var accessLevels = []level{
	{
		Name:        AdminAccessLevel,
		Description: "Full access to the system",
		Actions:     []string{auth.PermManageUsers, auth.PermManageRoles, auth.PermCreatePosts},
	},
	{
		Name:        MemberAccessLevel,
		Description: "Basic access for employees",
		Actions:     []string{auth.PermCreatePosts},
	},
}

// Run upserts the permission catalogue and the default access levels.
// Rows that already exist, matched by their unique key, are left untouched,
// so repeated runs neither duplicate rows nor change their ids.
func Run(ctx context.Context, db *gorm.DB, log *slog.Logger) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		byAction := make(map[string]model.Permission, len(Permissions))
		for _, p := range Permissions {
			perm := p
			if _, err := upsert(tx, &perm, "action", perm.Action); err != nil {
				return fmt.Errorf("upsert permission %s: %w", p.Action, err)
			}
			byAction[perm.Action] = perm
		}
		log.Info("permissions seeded", "count", len(byAction))

		for _, l := range accessLevels {
			al := model.AccessLevel{Name: l.Name, Description: l.Description}
			created, err := upsert(tx, &al, "name", al.Name)
			if err != nil {
				return fmt.Errorf("upsert access level %s: %w", l.Name, err)
			}
			if !created {
				log.Debug("access level already present", "name", l.Name, "id", al.ID)
				continue
			}
			perms := make([]model.Permission, 0, len(l.Actions))
			for _, a := range l.Actions {
				perms = append(perms, byAction[a])
			}
			if err := tx.Model(&al).Association("Permissions").Append(perms); err != nil {
				return fmt.Errorf("grant permissions to %s: %w", l.Name, err)
			}
			log.Info("access level created", "name", l.Name, "id", al.ID, "permissions", l.Actions)
		}
		return nil
	})
}

// upsert inserts row unless a row with the same unique key exists, then
// loads the stored row back into row. It reports whether it inserted.
func upsert[T any](tx *gorm.DB, row *T, column, key string) (bool, error) {
	res := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: column}},
		DoNothing: true,
	}).Create(row)
	if res.Error != nil {
		return false, res.Error
	}
	var stored T
	if err := tx.Where(column+" = ?", key).First(&stored).Error; err != nil {
		return false, err
	}
	*row = stored
	return res.RowsAffected > 0, nil
}
