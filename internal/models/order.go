package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                         // 主键
	OrderNo        string         `gorm:"uniqueIndex;not null" json:"order_no"`                         // 订单编号
	CompanyID      uint           `gorm:"index;not null" json:"company_id"`                             // 所属公司ID
	CustomerID     uint           `gorm:"index;not null" json:"customer_id"`                            // 客户ID
	CreatedByID    uint           `gorm:"index" json:"created_by_id"`                                   // 建单员工ID
	Status         string         `gorm:"index;not null" json:"status"`                                 // 订单状态
	PaymentStatus  string         `gorm:"index;not null" json:"payment_status"`                         // 支付状态
	PaymentMethod  string         `gorm:"index;not null" json:"payment_method"`                         // 支付方式（cod/transfer/pay_after）
	Currency       string         `gorm:"not null" json:"currency"`                                     // 币种
	ShippingCost   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"shipping_cost"`   // 运费
	BillDiscount   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"bill_discount"`   // 整单折扣
	TotalAmount    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`    // 应收金额（存档，展示以实时计算为准）
	AmountPaid     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"amount_paid"`     // 已核实付款金额
	VerifiedByID   *uint          `gorm:"index" json:"verified_by_id,omitempty"`                        // 核帐员工ID
	VerifiedByName string         `json:"verified_by_name,omitempty"`                                   // 核帐员工显示名快照
	VerifiedAt     *time.Time     `gorm:"index" json:"verified_at,omitempty"`                           // 核帐时间
	DueDate        *time.Time     `gorm:"index" json:"due_date,omitempty"`                              // 应收账期（pay_after/cod 催收用）
	Note           string         `gorm:"type:text" json:"note"`                                        // 备注
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                      // 创建时间
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`                                      // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                               // 软删除时间

	Customer *Customer   `gorm:"foreignKey:CustomerID" json:"customer,omitempty"` // 客户
	Items    []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`       // 订单项
	Boxes    []Box       `gorm:"foreignKey:OrderID" json:"boxes,omitempty"`       // 包裹箱
	Slips    []Slip      `gorm:"foreignKey:OrderID" json:"slips,omitempty"`       // 转账凭证
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
