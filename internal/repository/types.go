package repository

import "time"

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page          int
	PageSize      int
	CompanyID     uint
	CustomerID    uint
	Status        string
	PaymentStatus string
	PaymentMethod string
	OrderNo       string
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
}

// OverdueOrderFilter 查询逾期欠款订单的过滤条件
type OverdueOrderFilter struct {
	Page      int
	PageSize  int
	CompanyID uint
	DueBefore time.Time
}

// CustomerListFilter 查询客户列表的过滤条件
type CustomerListFilter struct {
	Page     int
	PageSize int
	Keyword  string
	Province string
}

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page       int
	PageSize   int
	Search     string
	OnlyActive bool
}

// CollectionLogFilter 查询欠款跟进记录的过滤条件
type CollectionLogFilter struct {
	Page     int
	PageSize int
	OrderID  uint
	StaffID  uint
}
