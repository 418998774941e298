package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/d9705996/teamconnect/internal/apperr"
	"github.com/d9705996/teamconnect/internal/db"
	"github.com/d9705996/teamconnect/internal/model"
	"github.com/d9705996/teamconnect/internal/seed"
	"gorm.io/gorm"
)

// AdminRoleName is the role created for the first user of every company.
const AdminRoleName = "Administrador"

// Registration is the input of CreateCompanyWithAdmin.
type Registration struct {
	CompanyName   string
	AdminName     string
	AdminEmail    string
	AdminPassword string //nolint:gosec // plaintext only until hashed below
}

// RegistrationResult identifies the rows created by a registration.
type RegistrationResult struct {
	CompanyID uint `json:"companyId"`
	AdminID   uint `json:"adminId"`
}

// CreateCompanyWithAdmin creates a company, its "Administrador" role bound
// to the seeded Admin access level, and the admin user, all or nothing.
func (s *Store) CreateCompanyWithAdmin(ctx context.Context, in Registration) (RegistrationResult, error) {
	hash, err := s.hasher.Hash(in.AdminPassword)
	if err != nil {
		return RegistrationResult{}, err
	}

	var res RegistrationResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		company := model.Company{Name: in.CompanyName}
		if err := tx.Create(&company).Error; err != nil {
			return fmt.Errorf("create company: %w", db.TranslateError(err))
		}

		var level model.AccessLevel
		if err := tx.Where("name = ?", seed.AdminAccessLevel).First(&level).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.ErrMissingSeed
			}
			return fmt.Errorf("load admin access level: %w", err)
		}

		role := model.Role{Name: AdminRoleName, CompanyID: company.ID, AccessLevelID: level.ID}
		if err := tx.Create(&role).Error; err != nil {
			return fmt.Errorf("create admin role: %w", db.TranslateError(err))
		}

		admin := model.User{
			Name:           in.AdminName,
			Email:          in.AdminEmail,
			PasswordHash:   hash,
			AvatarInitials: model.Initials(in.AdminName),
			CompanyID:      company.ID,
			RoleID:         &role.ID,
		}
		if err := tx.Create(&admin).Error; err != nil {
			return fmt.Errorf("create admin user: %w", db.TranslateError(err))
		}

		res = RegistrationResult{CompanyID: company.ID, AdminID: admin.ID}
		return nil
	})
	if err != nil {
		return RegistrationResult{}, err
	}
	return res, nil
}
