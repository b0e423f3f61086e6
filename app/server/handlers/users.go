package handlers

import (
	"corner-shop/app/server/auth"
	"corner-shop/app/server/middlewares"
	"corner-shop/app/server/models"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type userInfo struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func userInfoFromModel(user *models.User) *userInfo {
	return &userInfo{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
}

type userCreateRequest struct {
	Username string   `json:"username"`
	Password string   `json:"password"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

type userListResponse struct {
	Limit   int        `json:"limit"`
	PageMax int64      `json:"page_max"`
	List    []userInfo `json:"list"`
}

// UserInfoGetSelf 返回当前登录用户自己的信息
func (a *App) UserInfoGetSelf(c echo.Context) error {
	user := middlewares.CurrentUser(c)
	if user == nil {
		return a.er(c, http.StatusUnauthorized)
	}

	return c.JSON(http.StatusOK, userInfoFromModel(user))
}

func (a *App) UserCreate(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req userCreateRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}
	if req.Username == "" || req.Password == "" {
		return a.er(c, http.StatusBadRequest)
	}

	// 解析角色代号，未知代号直接拒绝
	roleCodes := make([]models.RoleCode, 0, len(req.Roles))
	for _, roleStr := range req.Roles {
		code, err := models.ParseRoleCode(roleStr)
		if err != nil {
			return a.er(c, http.StatusBadRequest)
		}
		roleCodes = append(roleCodes, code)
	}

	// 处理密码
	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		a.l.Error("failed to hash password", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 创建用户
	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: passwordHash,
	}
	if err := a.db.WithContext(rctx).Create(&user).Error; err != nil {
		a.l.Error("failed to create user", zap.String("username", user.Username), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 关联角色
	for _, code := range roleCodes {
		var role models.Role
		if err := a.db.WithContext(rctx).First(&role, "code = ?", code).Error; err != nil {
			a.l.Error("failed to find role", zap.String("code", code.String()), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
		if err := a.db.WithContext(rctx).Create(&models.UserRole{
			UserID: user.ID,
			RoleID: role.ID,
		}).Error; err != nil {
			a.l.Error("failed to attach role", zap.Uint("user", user.ID), zap.Uint("role", role.ID), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	return c.JSON(http.StatusCreated, userInfoFromModel(&user))
}

func (a *App) UserList(c echo.Context) error {
	rctx := c.Request().Context()

	var (
		users      []models.User
		usersCount int64
	)

	showAll, page, limit := a.parsePagination(c.QueryParam("page"), c.QueryParam("limit"))
	queryBase := a.db.WithContext(rctx).Model(&models.User{}).Order("id ASC")
	if !showAll {
		queryBase = queryBase.Limit(limit).Offset(page * limit)
	}

	if err := queryBase.Find(&users).Error; err != nil {
		a.l.Error("failed to get user list", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	if err := a.db.WithContext(rctx).Model(&models.User{}).Count(&usersCount).Error; err != nil {
		a.l.Error("failed to count user", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	resUsers := []userInfo{}
	for i := range users {
		resUsers = append(resUsers, *userInfoFromModel(&users[i]))
	}

	return c.JSON(http.StatusOK, &userListResponse{
		Limit:   limit,
		PageMax: a.calcMaxPage(usersCount, showAll, limit),
		List:    resUsers,
	})
}

func (a *App) UserInfoGet(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	rctx := c.Request().Context()

	// 从数据库中获得指定的用户
	var user models.User
	if err := a.db.WithContext(rctx).First(&user, "id = ?", uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound)
		} else {
			a.l.Error("failed to get user", zap.Uint64("id", id), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	return c.JSON(http.StatusOK, userInfoFromModel(&user))
}

func (a *App) UserDelete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	rctx := c.Request().Context()

	// 先清理角色关联，再删除用户
	if err := a.db.WithContext(rctx).Delete(&models.UserRole{}, "user_id = ?", uint(id)).Error; err != nil {
		a.l.Error("failed to delete user role links", zap.Uint64("id", id), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	if err := a.db.WithContext(rctx).Delete(&models.User{}, uint(id)).Error; err != nil {
		a.l.Error("failed to delete user", zap.Uint64("id", id), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.NoContent(http.StatusOK)
}
