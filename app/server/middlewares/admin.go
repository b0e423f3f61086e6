package middlewares

import (
	"corner-shop/app/server/directory"
	"corner-shop/app/server/models"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RequireAdmin 验证当前用户持有管理员角色，必须挂在 Authenticate 之后
// 角色查询失败时一律按"不是管理员"处理，鉴权检查绝不能因为出错而放行
func RequireAdmin(d *directory.Directory, l *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				// 前置条件不满足：没有经过 Authenticate
				return c.NoContent(http.StatusUnauthorized)
			}

			roles, err := d.FindRolesForUser(c.Request().Context(), user)
			if err != nil {
				l.Error("failed to find roles for user", zap.Uint("id", user.ID), zap.Error(err))
				return c.NoContent(http.StatusForbidden)
			}

			// 按类型化的角色代号比较，不做裸字符串匹配
			for _, role := range roles {
				if role.Code == models.RoleCodeAdmin {
					return next(c)
				}
			}

			return c.NoContent(http.StatusForbidden)
		}
	}
}
