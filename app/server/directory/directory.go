package directory

import (
	"context"
	"corner-shop/app/server/models"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Directory 是用户与角色数据的只读入口，登录和鉴权都只通过它查询
type Directory struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Directory {
	return &Directory{db: db}
}

// FindByUsername 按用户名查询用户，查不到返回 (nil, nil)
func (d *Directory) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := d.db.WithContext(ctx).First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by username: %w", err)
	}
	return &user, nil
}

// FindByID 按 ID 查询用户，查不到返回 (nil, nil)
func (d *Directory) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := d.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by id: %w", err)
	}
	return &user, nil
}

// FindRolesForUser 查询用户关联的全部角色，不保证顺序
func (d *Directory) FindRolesForUser(ctx context.Context, user *models.User) ([]models.Role, error) {
	// 先查关联记录，再按 ID 拉角色
	var userRoles []models.UserRole
	if err := d.db.WithContext(ctx).Find(&userRoles, "user_id = ?", user.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to find user role links: %w", err)
	}

	roleIDs := make([]uint, 0, len(userRoles))
	for _, ur := range userRoles {
		roleIDs = append(roleIDs, ur.RoleID)
	}
	if len(roleIDs) == 0 {
		return nil, nil
	}

	var roles []models.Role
	if err := d.db.WithContext(ctx).Find(&roles, "id IN ?", roleIDs).Error; err != nil {
		return nil, fmt.Errorf("failed to find roles: %w", err)
	}
	return roles, nil
}
