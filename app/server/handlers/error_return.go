package handlers

import (
	"github.com/labstack/echo/v4"
	"net/http"
)

type errorMessage struct {
	Message string `json:"message"`
}

// er 返回统一的错误响应，消息只有状态码的标准描述，不携带任何内部细节
func (a *App) er(c echo.Context, statusCode int) error {
	return c.JSON(statusCode, &errorMessage{
		Message: http.StatusText(statusCode),
	})
}
