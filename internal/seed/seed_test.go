package seed_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/d9705996/teamconnect/internal/db/dbtest"
	"github.com/d9705996/teamconnect/internal/model"
	"github.com/d9705996/teamconnect/internal/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newNullLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func snapshot(t *testing.T, gormDB *gorm.DB) (map[string]uint, map[string]uint) {
	t.Helper()
	var perms []model.Permission
	require.NoError(t, gormDB.Find(&perms).Error)
	var levels []model.AccessLevel
	require.NoError(t, gormDB.Find(&levels).Error)

	p := make(map[string]uint, len(perms))
	for _, x := range perms {
		p[x.Action] = x.ID
	}
	l := make(map[string]uint, len(levels))
	for _, x := range levels {
		l[x.Name] = x.ID
	}
	return p, l
}

func TestRun_Idempotent(t *testing.T) {
	gormDB := dbtest.New(t)
	ctx := context.Background()

	require.NoError(t, seed.Run(ctx, gormDB, newNullLogger()))
	perms1, levels1 := snapshot(t, gormDB)

	require.NoError(t, seed.Run(ctx, gormDB, newNullLogger()))
	perms2, levels2 := snapshot(t, gormDB)

	assert.Len(t, perms2, 3)
	assert.Len(t, levels2, 2)
	assert.Equal(t, perms1, perms2)
	assert.Equal(t, levels1, levels2)

	var joins int64
	require.NoError(t, gormDB.Table("access_level_permissions").Count(&joins).Error)
	assert.Equal(t, int64(4), joins)
}

func TestRun_GrantsPermissions(t *testing.T) {
	gormDB := dbtest.New(t)
	require.NoError(t, seed.Run(context.Background(), gormDB, newNullLogger()))

	var admin model.AccessLevel
	require.NoError(t, gormDB.Preload("Permissions").Where("name = ?", seed.AdminAccessLevel).First(&admin).Error)
	assert.Len(t, admin.Permissions, 3)

	var member model.AccessLevel
	require.NoError(t, gormDB.Preload("Permissions").Where("name = ?", seed.MemberAccessLevel).First(&member).Error)
	require.Len(t, member.Permissions, 1)
	assert.Equal(t, "create_posts", member.Permissions[0].Action)
}

func TestRun_LeavesExistingRowsUntouched(t *testing.T) {
	gormDB := dbtest.New(t)
	require.NoError(t, gormDB.Create(&model.Permission{Action: "create_posts", Description: "custom"}).Error)

	require.NoError(t, seed.Run(context.Background(), gormDB, newNullLogger()))

	var p model.Permission
	require.NoError(t, gormDB.Where("action = ?", "create_posts").First(&p).Error)
	assert.Equal(t, "custom", p.Description)
}
