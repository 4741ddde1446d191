package models

import (
	"time"

	"gorm.io/gorm"
)

// Box 包裹箱表（COD 订单按箱分摊代收金额）
type Box struct {
	ID               uint           `gorm:"primarykey" json:"id"`                                            // 主键
	OrderID          uint           `gorm:"index;not null" json:"order_id"`                                  // 订单ID
	BoxNumber        int            `gorm:"index;not null" json:"box_number"`                                // 箱号（从 1 开始）
	CollectionAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"collection_amount"` // 应代收金额
	CollectedAmount  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"collected_amount"`  // 已回款金额
	WaivedAmount     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"waived_amount"`     // 已豁免金额
	TrackingNo       string         `gorm:"index" json:"tracking_no"`                                       // 物流单号
	CreatedAt        time.Time      `json:"created_at"`                                                     // 创建时间
	UpdatedAt        time.Time      `json:"updated_at"`                                                     // 更新时间
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`                                                 // 软删除时间
}

// TableName 指定表名
func (Box) TableName() string {
	return "boxes"
}
