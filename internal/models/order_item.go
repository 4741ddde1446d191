package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem 订单项表（促销套装展开为父项 + 子项，父子通过 ParentUID 关联）
type OrderItem struct {
	ID                uint           `gorm:"primarykey" json:"id"`                                          // 主键
	OrderID           uint           `gorm:"index;not null" json:"order_id"`                                // 订单ID
	Uid               string         `gorm:"index;not null" json:"uid"`                                     // 行唯一标识（前端可见，增删用）
	ParentUID         string         `gorm:"index" json:"parent_uid,omitempty"`                             // 父项 Uid（促销子项用）
	ProductID         uint           `gorm:"index;not null" json:"product_id"`                              // 商品ID
	ProductName       string         `gorm:"not null" json:"product_name"`                                  // 商品名称快照
	PromotionID       *uint          `gorm:"index" json:"promotion_id,omitempty"`                           // 促销套装ID（父项用）
	PricePerUnit      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price_per_unit"`   // 单价
	Quantity          int            `gorm:"not null;default:1" json:"quantity"`                            // 数量（子项为派生值）
	OriginalQuantity  int            `gorm:"not null;default:0" json:"original_quantity"`                   // 每套基准数量（促销子项用）
	Discount          Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount"`         // 行折扣
	IsFreebie         bool           `gorm:"not null;default:false" json:"is_freebie"`                      // 是否赠品（不计费）
	IsPromotionParent bool           `gorm:"not null;default:false" json:"is_promotion_parent"`             // 是否促销父项
	BoxNumber         int            `gorm:"index;not null;default:1" json:"box_number"`                    // 所属箱号
	Position          int            `gorm:"index;not null;default:0" json:"position"`                      // 行序号（保持展示顺序）
	CreatedAt         time.Time      `json:"created_at"`                                                    // 创建时间
	UpdatedAt         time.Time      `json:"updated_at"`                                                    // 更新时间
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`                                                // 软删除时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
