package models

import "gorm.io/gorm"

type Image struct {
	gorm.Model

	URL string `gorm:"column:url"` // 保存后的文件名（相对于图片目录）
}
