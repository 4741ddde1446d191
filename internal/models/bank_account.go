package models

import (
	"time"

	"gorm.io/gorm"
)

// BankAccount 收款银行账户表
type BankAccount struct {
	ID          uint           `gorm:"primarykey" json:"id"`                   // 主键
	BankName    string         `gorm:"not null" json:"bank_name"`              // 银行名称
	AccountNo   string         `gorm:"uniqueIndex;not null" json:"account_no"` // 账号
	AccountName string         `gorm:"not null" json:"account_name"`           // 户名
	IsActive    bool           `gorm:"not null;default:true" json:"is_active"` // 是否启用
	CreatedAt   time.Time      `json:"created_at"`                             // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                             // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                         // 软删除时间
}

// TableName 指定表名
func (BankAccount) TableName() string {
	return "bank_accounts"
}
