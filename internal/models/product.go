package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID        uint           `gorm:"primarykey" json:"id"`                              // 主键
	SKU       string         `gorm:"uniqueIndex;not null" json:"sku"`                   // 商品编码
	Name      string         `gorm:"index;not null" json:"name"`                        // 商品名称
	Price     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"` // 标准售价
	IsActive  bool           `gorm:"not null;default:true" json:"is_active"`            // 是否在售
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                           // 创建时间
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`                           // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                    // 软删除时间
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
