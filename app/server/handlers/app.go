package handlers

import (
	"corner-shop/app/server/directory"
	"corner-shop/app/server/sessions"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	l        *zap.Logger          // 日志
	db       *gorm.DB             // 数据库
	dir      *directory.Directory // 用户与角色查询
	sessions *sessions.Store      // 会话存储
	imageDir string               // 图片保存目录
}

func NewApp(l *zap.Logger, db *gorm.DB, dir *directory.Directory, s *sessions.Store, imageDir string) *App {
	return &App{
		l:        l,
		db:       db,
		dir:      dir,
		sessions: s,
		imageDir: imageDir,
	}
}
