package handlers

import (
	"context"
	"corner-shop/app/server/auth"
	"corner-shop/app/server/directory"
	"corner-shop/app/server/middlewares"
	"corner-shop/app/server/models"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRoles(t *testing.T, env *handlerTestEnv) {
	t.Helper()

	require.NoError(t, env.db.Create([]*models.Role{
		{Code: models.RoleCodeAdmin, Name: "管理员"},
		{Code: models.RoleCodeUser, Name: "普通用户"},
	}).Error)
}

func TestUserCreate(t *testing.T) {
	env := newHandlerTestEnv(t)
	seedRoles(t, env)

	rec := env.postJSON(t, "/users", `{"username":"carol","password":"s3cret","email":"carol@example.com","roles":["user","admin"]}`, env.app.UserCreate)
	require.Equal(t, http.StatusCreated, rec.Code)

	var res userInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "carol", res.Username)

	// 密码以可验证的哈希入库，不存明文
	var stored models.User
	require.NoError(t, env.db.First(&stored, res.ID).Error)
	assert.NotEqual(t, "s3cret", stored.Password)
	match, err := auth.VerifyPassword(stored.Password, "s3cret")
	require.NoError(t, err)
	assert.True(t, match)

	// 角色关联建立
	roles, err := directory.New(env.db).FindRolesForUser(context.Background(), &stored)
	require.NoError(t, err)
	codes := make([]models.RoleCode, 0, len(roles))
	for _, role := range roles {
		codes = append(codes, role.Code)
	}
	assert.ElementsMatch(t, []models.RoleCode{models.RoleCodeAdmin, models.RoleCodeUser}, codes)
}

func TestUserCreateRejectsUnknownRole(t *testing.T) {
	env := newHandlerTestEnv(t)
	seedRoles(t, env)

	rec := env.postJSON(t, "/users", `{"username":"eve","password":"x","roles":["superuser"]}`, env.app.UserCreate)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUserInfoGetSelf(t *testing.T) {
	env := newHandlerTestEnv(t)
	user := env.createUser(t, "alice", "secret")

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	rec := httptest.NewRecorder()
	c := env.e.NewContext(req, rec)
	c.Set(middlewares.ContextKeyUser, user)
	require.NoError(t, env.app.UserInfoGetSelf(c))

	require.Equal(t, http.StatusOK, rec.Code)

	var res userInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, user.ID, res.ID)
	assert.Equal(t, "alice", res.Username)
	// 响应里没有密码哈希
	assert.NotContains(t, rec.Body.String(), "argon2id")
}
