package models

import "gorm.io/gorm"

// ItemImage 是商品与图片的多对多关联记录
type ItemImage struct {
	gorm.Model

	ItemID  uint `gorm:"column:item_id;index"`  // 商品 ID
	ImageID uint `gorm:"column:image_id;index"` // 图片 ID
}
