package handlers

import (
	"corner-shop/app/server/auth"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (a *App) AuthLogin(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	// 没有写用户名或密码
	if req.Username == "" || req.Password == "" {
		return a.er(c, http.StatusBadRequest)
	}

	// 查询用户。用户不存在和密码错误对外必须是同一个响应，防止用户名枚举
	user, err := a.dir.FindByUsername(rctx, req.Username)
	if err != nil {
		a.l.Error("failed to find user", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	if user == nil {
		return a.er(c, http.StatusUnauthorized)
	}

	// 提取密码 hash 并进行校验
	if match, err := auth.VerifyPassword(user.Password, req.Password); err != nil {
		// 哈希格式损坏，单独记录，但对外仍然只是认证失败
		a.l.Error("failed to check password", zap.Uint("id", user.ID), zap.Error(err))
		return a.er(c, http.StatusUnauthorized)
	} else if !match {
		// 密码不一致
		return a.er(c, http.StatusUnauthorized)
	}

	// 生成会话令牌
	token, err := auth.NewSessionToken()
	if err != nil {
		a.l.Error("failed to generate session token", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 写入会话
	if err := a.sessions.Put(rctx, token, user.ID); err != nil {
		a.l.Error("failed to store session", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 返回。令牌只在这里出现一次，不落库
	return c.JSON(http.StatusOK, &loginResponse{
		Token: token,
	})
}
