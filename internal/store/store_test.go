package store_test

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/d9705996/teamconnect/internal/auth"
	"github.com/d9705996/teamconnect/internal/db/dbtest"
	"github.com/d9705996/teamconnect/internal/model"
	"github.com/d9705996/teamconnect/internal/seed"
	"github.com/d9705996/teamconnect/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// newStore returns a Store over a seeded in-memory database.
func newStore(t *testing.T) (*store.Store, *gorm.DB) {
	t.Helper()
	gormDB := dbtest.New(t)
	require.NoError(t, seed.Run(context.Background(), gormDB, slog.New(slog.DiscardHandler)))
	return store.New(gormDB, auth.NewBcryptHasher(bcrypt.MinCost)), gormDB
}

// register creates a company named name with admin admin@<name>.io.
func register(t *testing.T, s *store.Store, name string) store.RegistrationResult {
	t.Helper()
	res, err := s.CreateCompanyWithAdmin(context.Background(), store.Registration{
		CompanyName:   name,
		AdminName:     "Admin " + name,
		AdminEmail:    fmt.Sprintf("admin@%s.io", name),
		AdminPassword: "secret-password",
	})
	require.NoError(t, err)
	return res
}

func count[T any](t *testing.T, gormDB *gorm.DB, where ...any) int64 {
	t.Helper()
	var n int64
	q := gormDB.Model(new(T))
	if len(where) > 0 {
		q = q.Where(where[0], where[1:]...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}

func adminRoleID(t *testing.T, gormDB *gorm.DB, companyID uint) uint {
	t.Helper()
	var role model.Role
	require.NoError(t, gormDB.Where("company_id = ? AND name = ?", companyID, store.AdminRoleName).First(&role).Error)
	return role.ID
}

func TestCompanyExists(t *testing.T) {
	s, _ := newStore(t)
	res := register(t, s, "acme")

	ok, err := s.CompanyExists(context.Background(), res.CompanyID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.CompanyExists(context.Background(), res.CompanyID+100)
	require.NoError(t, err)
	assert.False(t, ok)
}
