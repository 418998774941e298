package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/d9705996/teamconnect/internal/auth"
	"github.com/d9705996/teamconnect/internal/db/dbtest"
	"github.com/d9705996/teamconnect/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedUser(t *testing.T, gormDB *gorm.DB) uint {
	t.Helper()
	c := model.Company{Name: "Acme"}
	require.NoError(t, gormDB.Create(&c).Error)
	u := model.User{Name: "Ana", Email: "ana@acme.io", PasswordHash: "x", CompanyID: c.ID}
	require.NoError(t, gormDB.Create(&u).Error)
	return u.ID
}

func TestRefreshStore_Rotate(t *testing.T) {
	gormDB := dbtest.New(t)
	userID := seedUser(t, gormDB)
	store := auth.NewRefreshStore(gormDB, time.Hour)
	ctx := context.Background()

	first, err := store.IssueRefreshToken(ctx, userID)
	require.NoError(t, err)

	second, gotUser, err := store.RotateRefreshToken(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, userID, gotUser)
	assert.NotEqual(t, first, second)

	// The rotated token cannot be used again.
	_, _, err = store.RotateRefreshToken(ctx, first)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenInvalid)
}

func TestRefreshStore_Revoke(t *testing.T) {
	gormDB := dbtest.New(t)
	userID := seedUser(t, gormDB)
	store := auth.NewRefreshStore(gormDB, time.Hour)
	ctx := context.Background()

	tok, err := store.IssueRefreshToken(ctx, userID)
	require.NoError(t, err)
	require.NoError(t, store.RevokeRefreshToken(ctx, tok))

	_, _, err = store.RotateRefreshToken(ctx, tok)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenInvalid)
}

func TestRefreshStore_Expired(t *testing.T) {
	gormDB := dbtest.New(t)
	userID := seedUser(t, gormDB)
	store := auth.NewRefreshStore(gormDB, -time.Minute)

	tok, err := store.IssueRefreshToken(context.Background(), userID)
	require.NoError(t, err)

	_, _, err = store.RotateRefreshToken(context.Background(), tok)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenInvalid)
}

func TestRefreshStore_Unknown(t *testing.T) {
	store := auth.NewRefreshStore(dbtest.New(t), time.Hour)
	_, _, err := store.RotateRefreshToken(context.Background(), "deadbeef")
	assert.ErrorIs(t, err, auth.ErrRefreshTokenInvalid)
}
