package directory

import (
	"context"
	"corner-shop/app/server/models"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.UserRole{},
	))

	// 内存库限制单连接，避免连接池拿到各自独立的空库
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	return db
}

func TestFindByUsername(t *testing.T) {
	db := newTestDB(t)
	d := New(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.User{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hash",
	}).Error)

	user, err := d.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "alice", user.Username)

	// 查不到不是错误
	user, err = d.FindByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestFindByID(t *testing.T) {
	db := newTestDB(t)
	d := New(db)
	ctx := context.Background()

	created := models.User{Username: "alice", Password: "hash"}
	require.NoError(t, db.Create(&created).Error)

	user, err := d.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, created.ID, user.ID)

	user, err = d.FindByID(ctx, created.ID+1000)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestFindRolesForUser(t *testing.T) {
	db := newTestDB(t)
	d := New(db)
	ctx := context.Background()

	adminRole := models.Role{Code: models.RoleCodeAdmin, Name: "管理员"}
	userRole := models.Role{Code: models.RoleCodeUser, Name: "普通用户"}
	require.NoError(t, db.Create(&adminRole).Error)
	require.NoError(t, db.Create(&userRole).Error)

	alice := models.User{Username: "alice", Password: "hash"}
	bob := models.User{Username: "bob", Password: "hash"}
	require.NoError(t, db.Create(&alice).Error)
	require.NoError(t, db.Create(&bob).Error)

	require.NoError(t, db.Create(&models.UserRole{UserID: alice.ID, RoleID: adminRole.ID}).Error)
	require.NoError(t, db.Create(&models.UserRole{UserID: alice.ID, RoleID: userRole.ID}).Error)
	require.NoError(t, db.Create(&models.UserRole{UserID: bob.ID, RoleID: userRole.ID}).Error)

	roles, err := d.FindRolesForUser(ctx, &alice)
	require.NoError(t, err)
	codes := make([]models.RoleCode, 0, len(roles))
	for _, role := range roles {
		codes = append(codes, role.Code)
	}
	assert.ElementsMatch(t, []models.RoleCode{models.RoleCodeAdmin, models.RoleCodeUser}, codes)

	roles, err = d.FindRolesForUser(ctx, &bob)
	require.NoError(t, err)
	require.Len(t, roles, 1)
	assert.Equal(t, models.RoleCodeUser, roles[0].Code)
}

func TestFindRolesForUserWithoutRoles(t *testing.T) {
	db := newTestDB(t)
	d := New(db)

	loner := models.User{Username: "loner", Password: "hash"}
	require.NoError(t, db.Create(&loner).Error)

	roles, err := d.FindRolesForUser(context.Background(), &loner)
	require.NoError(t, err)
	assert.Empty(t, roles)
}
