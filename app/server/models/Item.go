package models

import "gorm.io/gorm"

type Item struct {
	gorm.Model

	Name        string  `gorm:"column:name"`        // 商品名称
	Description string  `gorm:"column:description"` // 商品描述
	Price       float64 `gorm:"column:price"`       // 单价
	Quantity    int     `gorm:"column:quantity"`    // 库存数量
}
