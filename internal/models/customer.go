package models

import (
	"time"

	"gorm.io/gorm"
)

// Customer 客户表
type Customer struct {
	ID        uint           `gorm:"primarykey" json:"id"`           // 主键
	Name      string         `gorm:"index;not null" json:"name"`     // 客户姓名
	Phone     string         `gorm:"index" json:"phone"`             // 联系电话
	Address   string         `gorm:"type:text" json:"address"`       // 收货地址
	Province  string         `gorm:"index" json:"province"`          // 省份
	Note      string         `gorm:"type:text" json:"note"`          // 备注
	CreatedAt time.Time      `gorm:"index" json:"created_at"`        // 创建时间
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`        // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                 // 软删除时间
}

// TableName 指定表名
func (Customer) TableName() string {
	return "customers"
}
