package inits

import (
	"corner-shop/app/server/models"
	"fmt"
	"github.com/alexedwards/argon2id"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func DB(conn string) (db *gorm.DB, err error) {
	// 打开连接
	if db, err = gorm.Open(postgres.Open(conn), &gorm.Config{}); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// 迁移
	if err = mig(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// 初始化启动数据
	if err = initData(db); err != nil {
		return nil, fmt.Errorf("failed to init data into database: %w", err)
	}

	// 返回
	return db, nil
}

func mig(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.UserRole{},
		&models.Item{},
		&models.Image{},
		&models.ItemImage{},
	)
}

func initData(db *gorm.DB) (err error) {
	// 查询现有记录数量
	var counter int64

	// 初始化角色
	if err = db.Model(&models.Role{}).Count(&counter).Error; err != nil {
		return fmt.Errorf("failed to get role count: %w", err)
	} else if counter == 0 { // 没有任何角色，添加两种内置角色
		if err = db.Create([]*models.Role{
			{
				Code: models.RoleCodeAdmin,
				Name: "管理员",
			},
			{
				Code: models.RoleCodeUser,
				Name: "普通用户",
			},
		}).Error; err != nil {
			return fmt.Errorf("failed to create initial roles: %w", err)
		}
	}

	// 初始化用户
	if err = db.Model(&models.User{}).Count(&counter).Error; err != nil {
		return fmt.Errorf("failed to get user count: %w", err)
	} else if counter == 0 { // 没有任何用户，添加初始用户
		// 创建密码
		var password string
		if password, err = argon2id.CreateHash("password", argon2id.DefaultParams); err != nil {
			return fmt.Errorf("failed to generate password: %w", err)
		}

		// 插入记录
		admin := models.User{
			Username: "admin",
			Email:    "admin@localhost",
			Password: password,
		}
		if err = db.Create(&admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		// 关联两种角色
		var roles []models.Role
		if err = db.Find(&roles).Error; err != nil {
			return fmt.Errorf("failed to get roles: %w", err)
		}
		for _, role := range roles {
			if err = db.Create(&models.UserRole{
				UserID: admin.ID,
				RoleID: role.ID,
			}).Error; err != nil {
				return fmt.Errorf("failed to attach role to admin user: %w", err)
			}
		}
	}

	// 已有数据或全部导入成功
	return nil
}
