package models

import (
	"fmt"

	"gorm.io/gorm"
)

// RoleCode 是封闭的角色代号类型，只接受下面列出的两种取值
type RoleCode string

const (
	RoleCodeAdmin RoleCode = "admin" // 管理员，可以写入（更改）
	RoleCodeUser  RoleCode = "user"  // 普通用户，只能读取（浏览）
)

// ParseRoleCode 解析存储的角色代号，未知的代号一律拒绝，不做静默兼容
func ParseRoleCode(s string) (RoleCode, error) {
	switch RoleCode(s) {
	case RoleCodeAdmin:
		return RoleCodeAdmin, nil
	case RoleCodeUser:
		return RoleCodeUser, nil
	default:
		return "", fmt.Errorf("unknown role code: %s", s)
	}
}

func (rc RoleCode) String() string {
	return string(rc)
}

type Role struct {
	gorm.Model

	Code RoleCode `gorm:"column:code;uniqueIndex"` // 角色代号
	Name string   `gorm:"column:name"`             // 显示名称
}
