package main

import (
	"context"
	"corner-shop/app/server/directory"
	"corner-shop/app/server/handlers"
	"corner-shop/app/server/inits"
	"corner-shop/app/server/middlewares"
	"corner-shop/app/server/sessions"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// 初始化配置
	cfg, err := inits.Config()
	if err != nil {
		log.Fatal(fmt.Errorf("error loading config: %w", err))
	}

	// 初始化日志
	l, err := inits.Logger(!cfg.System.IsProd)
	if err != nil {
		log.Fatal(fmt.Errorf("error initializing logger: %w", err))
	}

	// 切换日志系统
	l.Debug("logger initialized")

	// 初始化数据库连接
	db, err := inits.DB(cfg.System.DBConnectionString)
	if err != nil {
		l.Fatal("error initializing DB connection", zap.Error(err))
	}

	// 初始化 redis 连接
	rdb, err := inits.Redis(cfg.System.RedisConnectionString)
	if err != nil {
		l.Fatal("error initializing Redis connection", zap.Error(err))
	}

	// 准备会话存储与用户目录
	sessionStore := sessions.New(rdb, cfg.Auth.SessionTTL)
	dir := directory.New(db)

	// 准备 handler app
	handlerApp := handlers.NewApp(l, db, dir, sessionStore, cfg.Storage.ImageDir)

	// 准备 echo 服务
	e := echo.New()
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			l.Info("request",
				zap.String("URI", v.URI),
				zap.Int("status", v.Status),
			)

			return nil
		},
	}))
	e.Use(middleware.Recover())

	// 两级认证中间件：先解析会话，再检查管理员角色
	authed := middlewares.Authenticate(dir, sessionStore, l)
	admin := middlewares.RequireAdmin(dir, l)

	// 公开接口
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.POST("/login", handlerApp.AuthLogin)
	e.Static("/media", cfg.Storage.ImageDir)

	// 登录后可用的接口
	e.GET("/me", handlerApp.UserInfoGetSelf, authed)
	e.GET("/items", handlerApp.ItemList, authed)
	e.GET("/items/:id", handlerApp.ItemGet, authed)
	e.GET("/items/name/:name", handlerApp.ItemGetByName, authed)
	e.GET("/images", handlerApp.ImageList, authed)
	e.GET("/images/:id", handlerApp.ImageGet, authed)

	// 管理员接口
	e.POST("/items", handlerApp.ItemCreate, authed, admin)
	e.PUT("/items/:id", handlerApp.ItemUpdate, authed, admin)
	e.DELETE("/items/:id", handlerApp.ItemDelete, authed, admin)
	e.POST("/images/:item_id", handlerApp.ImageUpload, authed, admin)
	e.DELETE("/images/:id", handlerApp.ImageDelete, authed, admin)
	e.POST("/users", handlerApp.UserCreate, authed, admin)
	e.GET("/users", handlerApp.UserList, authed, admin)
	e.GET("/users/:id", handlerApp.UserInfoGet, authed, admin)
	e.DELETE("/users/:id", handlerApp.UserDelete, authed, admin)

	// 启动 echo 服务
	go func() {
		if err := e.Start(cfg.System.Listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatal("shutting down the server", zap.Error(err))
		}
	}()

	// 等待退出信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		l.Error("error shutting down the server", zap.Error(err))
	}
	if err := rdb.Close(); err != nil {
		l.Error("error closing redis connection", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			l.Error("error closing DB connection", zap.Error(err))
		}
	}
}
