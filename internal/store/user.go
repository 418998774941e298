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

var (
	errRoleNotInTenant       = apperr.New(apperr.KindValidation, "invalid_role", "role does not exist in this company")
	errDepartmentNotInTenant = apperr.New(apperr.KindValidation, "invalid_department", "department does not exist in this company")
)

// NewEmployee is the input of CreateEmployee.
type NewEmployee struct {
	Name         string
	Email        string
	Password     string //nolint:gosec // plaintext only until hashed
	RoleID       uint
	DepartmentID *uint
}

// ListUsers returns the users of tenantID. A non-empty search matches name
// or email as a case-insensitive substring.
func (s *Store) ListUsers(ctx context.Context, tenantID uint, search string) ([]UserListItem, error) {
	q := s.db.WithContext(ctx).
		Table("users").
		Select("users.id, users.name, users.email, roles.name AS role_name, departments.name AS department_name").
		Joins("LEFT JOIN roles ON roles.id = users.role_id").
		Joins("LEFT JOIN departments ON departments.id = users.department_id").
		Where("users.company_id = ?", tenantID)

	if search = strings.TrimSpace(search); search != "" {
		pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
		q = q.Where(`(users.name_key LIKE ? ESCAPE '\' OR users.email_key LIKE ? ESCAPE '\')`, pattern, pattern)
	}

	items := []UserListItem{}
	if err := q.Order("users.id").Scan(&items).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return items, nil
}

// CreateEmployee adds a user to tenantID. The role, and the department when
// given, must belong to the same tenant.
func (s *Store) CreateEmployee(ctx context.Context, tenantID uint, in NewEmployee) (model.User, error) {
	tx := s.db.WithContext(ctx)

	var n int64
	if err := tx.Model(&model.Role{}).Where("id = ? AND company_id = ?", in.RoleID, tenantID).Count(&n).Error; err != nil {
		return model.User{}, fmt.Errorf("check role: %w", err)
	}
	if n == 0 {
		return model.User{}, errRoleNotInTenant
	}
	if in.DepartmentID != nil {
		if err := tx.Model(&model.Department{}).Where("id = ? AND company_id = ?", *in.DepartmentID, tenantID).Count(&n).Error; err != nil {
			return model.User{}, fmt.Errorf("check department: %w", err)
		}
		if n == 0 {
			return model.User{}, errDepartmentNotInTenant
		}
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return model.User{}, err
	}

	u := model.User{
		Name:           in.Name,
		Email:          in.Email,
		PasswordHash:   hash,
		AvatarInitials: model.Initials(in.Name),
		CompanyID:      tenantID,
		RoleID:         &in.RoleID,
		DepartmentID:   in.DepartmentID,
	}
	if err := tx.Create(&u).Error; err != nil {
		return model.User{}, fmt.Errorf("create employee: %w", db.TranslateError(err))
	}
	return u, nil
}

// GetUserByID returns the user only if it belongs to tenantID. Users of
// other tenants yield the same ErrUserNotFound as absent ids.
func (s *Store) GetUserByID(ctx context.Context, tenantID, userID uint) (model.User, error) {
	var u model.User
	err := s.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", userID, tenantID).
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.User{}, apperr.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// Authenticate verifies an email/password pair and returns the user with
// the permission actions granted by its role's access level.
func (s *Store) Authenticate(ctx context.Context, email, password string) (model.User, []string, error) {
	var u model.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.User{}, nil, apperr.ErrInvalidCredentials
	}
	if err != nil {
		return model.User{}, nil, fmt.Errorf("find user: %w", err)
	}
	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return model.User{}, nil, apperr.ErrInvalidCredentials
	}

	perms, err := s.Permissions(ctx, u.ID)
	if err != nil {
		return model.User{}, nil, err
	}
	return u, perms, nil
}

// Permissions returns the actions granted to userID through its role.
func (s *Store) Permissions(ctx context.Context, userID uint) ([]string, error) {
	perms := []string{}
	err := s.db.WithContext(ctx).
		Table("permissions").
		Joins("JOIN access_level_permissions alp ON alp.permission_id = permissions.id").
		Joins("JOIN roles ON roles.access_level_id = alp.access_level_id").
		Joins("JOIN users ON users.role_id = roles.id").
		Where("users.id = ?", userID).
		Order("permissions.action").
		Pluck("permissions.action", &perms).Error
	if err != nil {
		return nil, fmt.Errorf("load permissions: %w", err)
	}
	return perms, nil
}

// Principal loads userID regardless of tenant together with its granted
// actions. It backs credential refresh, where the tenant is not yet known.
func (s *Store) Principal(ctx context.Context, userID uint) (model.User, []string, error) {
	var u model.User
	err := s.db.WithContext(ctx).First(&u, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.User{}, nil, apperr.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, nil, fmt.Errorf("load user: %w", err)
	}
	perms, err := s.Permissions(ctx, u.ID)
	if err != nil {
		return model.User{}, nil, err
	}
	return u, perms, nil
}
