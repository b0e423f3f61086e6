package models

import "gorm.io/gorm"

// UserRole 是用户与角色的多对多关联记录
type UserRole struct {
	gorm.Model

	UserID uint `gorm:"column:user_id;index"` // 用户 ID
	RoleID uint `gorm:"column:role_id;index"` // 角色 ID
}
