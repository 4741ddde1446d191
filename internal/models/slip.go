package models

import (
	"time"

	"gorm.io/gorm"
)

// Slip 转账凭证表（客户上传的付款凭证，核帐的唯一依据）
type Slip struct {
	ID            uint           `gorm:"primarykey" json:"id"`                            // 主键
	OrderID       uint           `gorm:"index;not null" json:"order_id"`                  // 订单ID
	ImagePath     string         `gorm:"not null" json:"image_path"`                      // 凭证图片路径
	Amount        *Money         `gorm:"type:decimal(20,2)" json:"amount,omitempty"`      // 转账金额（录入前为空）
	BankAccountID *uint          `gorm:"index" json:"bank_account_id,omitempty"`          // 收款账户ID（录入前为空）
	TransferDate  *time.Time     `gorm:"index" json:"transfer_date,omitempty"`            // 转账日期（录入前为空）
	Checked       bool           `gorm:"index;not null;default:false" json:"checked"`     // 是否已勾选核对
	Note          string         `gorm:"type:text" json:"note"`                           // 备注
	UploadedByID  *uint          `gorm:"index" json:"uploaded_by_id,omitempty"`           // 上传员工ID
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                         // 创建时间
	UpdatedAt     time.Time      `json:"updated_at"`                                      // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                  // 软删除时间
}

// TableName 指定表名
func (Slip) TableName() string {
	return "slips"
}

// IsComplete 凭证三要素（金额、收款账户、转账日期）是否齐全
func (s Slip) IsComplete() bool {
	return s.Amount != nil && s.BankAccountID != nil && s.TransferDate != nil
}
