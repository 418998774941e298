// Package store is the tenant-scoped data-access layer. Every method that
// touches company-owned rows takes the caller's tenant id and constrains its
// queries to it; rows of other tenants are reported exactly like rows that
// do not exist.
//
// The store trusts the tenant id it is given. Deriving that id from a
// verified credential is the HTTP layer's job.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/d9705996/teamconnect/internal/apperr"
	"github.com/d9705996/teamconnect/internal/auth"
	"github.com/d9705996/teamconnect/internal/db"
	"github.com/d9705996/teamconnect/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store executes domain operations against the database.
type Store struct {
	db     *gorm.DB
	hasher auth.PasswordHasher
}

// New returns a Store over gormDB that hashes passwords with hasher.
func New(gormDB *gorm.DB, hasher auth.PasswordHasher) *Store {
	return &Store{db: gormDB, hasher: hasher}
}

// CompanyExists reports whether a company with id exists.
func (s *Store) CompanyExists(ctx context.Context, id uint) (bool, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&model.Company{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, fmt.Errorf("count companies: %w", err)
	}
	return n > 0, nil
}

// userInTenant loads the user only if it belongs to tenantID. A miss
// returns notFound.
func userInTenant(tx *gorm.DB, tenantID, userID uint, notFound error) (model.User, error) {
	var u model.User
	err := tx.Preload("Department").
		Where("id = ? AND company_id = ?", userID, tenantID).
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return u, notFound
	}
	if err != nil {
		return u, fmt.Errorf("load user: %w", err)
	}
	return u, nil
}

// postInTenant fails with ErrPostNotFound unless the post belongs to tenantID.
func postInTenant(tx *gorm.DB, tenantID, postID uint) error {
	var n int64
	err := tx.Model(&model.Post{}).
		Where("id = ? AND company_id = ?", postID, tenantID).
		Count(&n).Error
	if err != nil {
		return fmt.Errorf("load post: %w", err)
	}
	if n == 0 {
		return apperr.ErrPostNotFound
	}
	return nil
}

// insertOrLoad inserts row unless a row matching the unique columns
// already exists, then loads the stored row into row. It never raises a
// unique violation, so it is safe inside a postgres transaction.
func insertOrLoad[T any](tx *gorm.DB, row *T, where map[string]any) error {
	cols := make([]clause.Column, 0, len(where))
	for c := range where {
		cols = append(cols, clause.Column{Name: c})
	}
	if err := tx.Clauses(clause.OnConflict{Columns: cols, DoNothing: true}).Create(row).Error; err != nil {
		return db.TranslateError(err)
	}
	var stored T
	if err := tx.Where(where).First(&stored).Error; err != nil {
		return err
	}
	*row = stored
	return nil
}

// escapeLike makes s match literally inside a LIKE pattern using '\' as the
// escape character.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
