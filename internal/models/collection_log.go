package models

import (
	"time"

	"gorm.io/gorm"
)

// CollectionLog 欠款跟进记录表
type CollectionLog struct {
	ID             uint           `gorm:"primarykey" json:"id"`              // 主键
	OrderID        uint           `gorm:"index;not null" json:"order_id"`    // 订单ID
	StaffID        uint           `gorm:"index;not null" json:"staff_id"`    // 跟进员工ID
	Channel        string         `gorm:"not null" json:"channel"`           // 联系渠道（phone/line/visit）
	Note           string         `gorm:"type:text" json:"note"`             // 跟进内容
	ContactedAt    time.Time      `gorm:"index" json:"contacted_at"`         // 联系时间
	NextFollowUpAt *time.Time     `gorm:"index" json:"next_follow_up_at"`    // 下次跟进时间
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`           // 创建时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                    // 软删除时间
}

// TableName 指定表名
func (CollectionLog) TableName() string {
	return "collection_logs"
}
