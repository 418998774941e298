package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/d9705996/teamconnect/internal/apperr"
	"github.com/d9705996/teamconnect/internal/db"
	"github.com/d9705996/teamconnect/internal/model"
)

// CreateDepartment adds a department to tenantID.
func (s *Store) CreateDepartment(ctx context.Context, tenantID uint, name string) (model.Department, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Department{}, apperr.Validation("name is required")
	}
	d := model.Department{Name: name, CompanyID: tenantID}
	if err := s.db.WithContext(ctx).Create(&d).Error; err != nil {
		return model.Department{}, fmt.Errorf("create department: %w", db.TranslateError(err))
	}
	return d, nil
}

// ListDepartments returns the departments of tenantID ordered by name.
func (s *Store) ListDepartments(ctx context.Context, tenantID uint) ([]model.Department, error) {
	out := []model.Department{}
	if err := s.db.WithContext(ctx).Where("company_id = ?", tenantID).Order("name").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	return out, nil
}
