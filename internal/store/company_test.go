package store_test

import (
	"context"
	"testing"

	"github.com/d9705996/teamconnect/internal/apperr"
	"github.com/d9705996/teamconnect/internal/auth"
	"github.com/d9705996/teamconnect/internal/db/dbtest"
	"github.com/d9705996/teamconnect/internal/model"
	"github.com/d9705996/teamconnect/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCreateCompanyWithAdmin(t *testing.T) {
	s, gormDB := newStore(t)
	res := register(t, s, "acme")

	var admin model.User
	require.NoError(t, gormDB.Preload("Role.AccessLevel").First(&admin, res.AdminID).Error)
	assert.Equal(t, res.CompanyID, admin.CompanyID)
	assert.Equal(t, "AA", admin.AvatarInitials)
	assert.NotEqual(t, "secret-password", admin.PasswordHash)
	require.NotNil(t, admin.Role)
	assert.Equal(t, store.AdminRoleName, admin.Role.Name)
	assert.Equal(t, "Admin", admin.Role.AccessLevel.Name)
}

func TestCreateCompanyWithAdmin_DuplicateEmailRollsBack(t *testing.T) {
	s, gormDB := newStore(t)
	register(t, s, "acme")

	_, err := s.CreateCompanyWithAdmin(context.Background(), store.Registration{
		CompanyName:   "Other",
		AdminName:     "Someone",
		AdminEmail:    "admin@acme.io",
		AdminPassword: "secret-password",
	})
	require.ErrorIs(t, err, apperr.ErrDuplicateEmail)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	assert.Equal(t, int64(1), count[model.Company](t, gormDB))
	assert.Equal(t, int64(1), count[model.Role](t, gormDB))
	assert.Equal(t, int64(1), count[model.User](t, gormDB))
}

func TestCreateCompanyWithAdmin_MissingSeed(t *testing.T) {
	gormDB := dbtest.New(t)
	s := store.New(gormDB, auth.NewBcryptHasher(bcrypt.MinCost))

	_, err := s.CreateCompanyWithAdmin(context.Background(), store.Registration{
		CompanyName:   "Acme",
		AdminName:     "Ana",
		AdminEmail:    "ana@acme.io",
		AdminPassword: "secret-password",
	})
	require.ErrorIs(t, err, apperr.ErrMissingSeed)
	assert.Equal(t, apperr.KindConfiguration, apperr.KindOf(err))
	assert.Equal(t, int64(0), count[model.Company](t, gormDB))
}
