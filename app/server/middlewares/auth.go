package middlewares

import (
	"corner-shop/app/server/directory"
	"corner-shop/app/server/models"
	"corner-shop/app/server/sessions"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ContextKeyUser 是已解析用户在 echo context 中的键
const ContextKeyUser = "user"

// CurrentUser 取出 Authenticate 放入 context 的用户
func CurrentUser(c echo.Context) *models.User {
	user, _ := c.Get(ContextKeyUser).(*models.User)
	return user
}

// Authenticate 解析 Authorization 头里的会话令牌，并把对应用户放入 context
// 无论是缺头、格式错误、会话不存在还是用户已被删除，对外都只是同一个 401 ，不泄露具体原因
func Authenticate(d *directory.Directory, s *sessions.Store, l *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rctx := c.Request().Context()

			// 提取 token
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.NoContent(http.StatusUnauthorized)
			}

			splits := strings.Fields(authHeader)
			if len(splits) != 2 {
				return c.NoContent(http.StatusUnauthorized)
			}

			// 方案名大小写敏感，只认 Bearer
			if splits[0] != "Bearer" {
				return c.NoContent(http.StatusUnauthorized)
			}

			token := splits[1]

			// 查询会话
			userID, found, err := s.Get(rctx, token)
			if err != nil {
				l.Error("failed to query session store", zap.Error(err))
				return c.NoContent(http.StatusInternalServerError)
			}
			if !found {
				return c.NoContent(http.StatusUnauthorized)
			}

			// 查询用户
			user, err := d.FindByID(rctx, userID)
			if err != nil {
				l.Error("failed to find session user", zap.Uint("id", userID), zap.Error(err))
				return c.NoContent(http.StatusInternalServerError)
			}
			if user == nil {
				// 会话指向已不存在的用户，顺手清理掉这个过时会话
				if err := s.Delete(rctx, token); err != nil {
					l.Error("failed to evict stale session", zap.Error(err))
				}
				return c.NoContent(http.StatusUnauthorized)
			}

			// 设置 context
			c.Set(ContextKeyUser, user)

			// 继续处理
			return next(c)
		}
	}
}
