package models

import (
	"time"

	"gorm.io/gorm"
)

// Promotion 促销套装定义
type Promotion struct {
	ID        uint           `gorm:"primarykey" json:"id"`                   // 主键
	CompanyID uint           `gorm:"index;not null" json:"company_id"`       // 所属公司ID
	Name      string         `gorm:"not null" json:"name"`                   // 套装名称
	StartsAt  *time.Time     `gorm:"index" json:"starts_at"`                 // 生效时间
	EndsAt    *time.Time     `gorm:"index" json:"ends_at"`                   // 失效时间
	IsActive  bool           `gorm:"not null;default:true" json:"is_active"` // 是否启用
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                // 创建时间
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`                // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                         // 软删除时间

	Lines []PromotionLine `gorm:"foreignKey:PromotionID" json:"lines,omitempty"` // 套装明细
}

// TableName 指定表名
func (Promotion) TableName() string {
	return "promotions"
}

// PromotionLine 促销套装明细（展开为订单子项的模板）
type PromotionLine struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                        // 主键
	PromotionID   uint           `gorm:"index;not null" json:"promotion_id"`                          // 套装ID
	ProductID     uint           `gorm:"index;not null" json:"product_id"`                            // 商品ID
	ProductName   string         `gorm:"not null" json:"product_name"`                                // 商品名称快照
	Quantity      int            `gorm:"not null;default:1" json:"quantity"`                          // 每套数量
	OverridePrice Money          `gorm:"type:decimal(20,2);not null;default:0" json:"override_price"` // 套装内覆盖价
	IsFreebie     bool           `gorm:"not null;default:false" json:"is_freebie"`                    // 是否赠品
	CreatedAt     time.Time      `json:"created_at"`                                                  // 创建时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                              // 软删除时间
}

// TableName 指定表名
func (PromotionLine) TableName() string {
	return "promotion_lines"
}
