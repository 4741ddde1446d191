package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/salesdesk-next/internal/constants"
	"github.com/salesdesk-next/internal/logger"
	"github.com/salesdesk-next/internal/models"
	"github.com/salesdesk-next/internal/repository"
)

// OrderService 订单服务
type OrderService struct {
	orderRepo     repository.OrderRepository
	customerRepo  repository.CustomerRepository
	productRepo   repository.ProductRepository
	promotionRepo repository.PromotionRepository
	locks         *orderLocks
	currency      string
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, customerRepo repository.CustomerRepository, productRepo repository.ProductRepository, promotionRepo repository.PromotionRepository, currency string) *OrderService {
	if currency == "" {
		currency = constants.SiteCurrencyDefault
	}
	return &OrderService{
		orderRepo:     orderRepo,
		customerRepo:  customerRepo,
		productRepo:   productRepo,
		promotionRepo: promotionRepo,
		locks:         newOrderLocks(),
		currency:      currency,
	}
}

// CreateOrderInput 创建订单输入
type CreateOrderInput struct {
	CompanyID     uint
	CustomerID    uint
	CreatedByID   uint
	PaymentMethod string
	ShippingCost  models.Money
	BillDiscount  models.Money
	Note          string
	DueDate       *time.Time
}

// OrderDetail 订单详情视图（金额实时计算）
type OrderDetail struct {
	Order            *models.Order  `json:"order"`
	Totals           OrderTotals    `json:"totals"`
	PaymentLabel     string         `json:"payment_label"`
	BoxRemaining     []models.Money `json:"box_remaining"`
	PaidDistribution []models.Money `json:"paid_distribution"`
}

// SaveOrderInput 全文档保存输入
type SaveOrderInput struct {
	OrderID       uint
	Role          string
	Status        string
	PaymentStatus string
	PaymentMethod string
	CustomerID    uint
	ShippingCost  models.Money
	BillDiscount  models.Money
	Note          string
	DueDate       *time.Time
	Items         []models.OrderItem
	Boxes         []models.Box
}

// CreateOrder 创建订单（初始状态 pending / unpaid，单箱）
func (s *OrderService) CreateOrder(input CreateOrderInput) (*models.Order, error) {
	if input.CustomerID != 0 {
		customer, err := s.customerRepo.GetByID(input.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
		}
		if customer == nil {
			return nil, ErrCustomerNotFound
		}
	}

	method := input.PaymentMethod
	if method == "" {
		method = constants.PaymentMethodTransfer
	}

	order := &models.Order{
		OrderNo:       generateOrderNo(),
		CompanyID:     input.CompanyID,
		CustomerID:    input.CustomerID,
		CreatedByID:   input.CreatedByID,
		Status:        constants.OrderStatusPending,
		PaymentStatus: constants.PaymentStatusUnpaid,
		PaymentMethod: method,
		Currency:      s.currency,
		ShippingCost:  input.ShippingCost,
		BillDiscount:  input.BillDiscount,
		Note:          input.Note,
		DueDate:       input.DueDate,
	}
	boxes := []models.Box{{BoxNumber: 1}}

	if err := s.orderRepo.Create(order, nil, boxes); err != nil {
		logger.Errorw("order_create_failed", "error", err, "customer_id", input.CustomerID)
		return nil, fmt.Errorf("%w: %v", ErrOrderSaveFailed, err)
	}
	logger.Infow("order_created", "order_id", order.ID, "order_no", order.OrderNo)
	return order, nil
}

// GetOrder 获取订单详情，金额与支付标签实时计算
func (s *OrderService) GetOrder(id uint) (*OrderDetail, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return s.buildDetail(order), nil
}

func (s *OrderService) buildDetail(order *models.Order) *OrderDetail {
	totals := CalculateTotals(order.Items, order.BillDiscount, order.ShippingCost)
	remaining := make([]models.Money, len(order.Boxes))
	for i, box := range order.Boxes {
		remaining[i] = BoxRemaining(box)
	}
	return &OrderDetail{
		Order:            order,
		Totals:           totals,
		PaymentLabel:     PaymentStatusLabel(order.AmountPaid, totals.Total),
		BoxRemaining:     remaining,
		PaidDistribution: DistributePaid(order.Boxes, order.AmountPaid),
	}
}

// SaveOrder 全文档保存订单。
// 按订单 ID 串行化；依次执行编辑锁、状态迁移、保存前置与 COD 箱金额校验，
// 任一校验失败都不落库。
func (s *OrderService) SaveOrder(input SaveOrderInput) (*OrderDetail, error) {
	s.locks.Lock(input.OrderID)
	defer s.locks.Unlock(input.OrderID)

	order, err := s.orderRepo.GetByID(input.OrderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	if IsOrderLocked(order, input.Role) {
		return nil, ErrOrderLocked
	}
	if err := CheckStatusChange(order, input.Role, input.Status); err != nil {
		return nil, err
	}
	if input.PaymentStatus != order.PaymentStatus && !CanTransitPayment(order.PaymentStatus, input.PaymentStatus) {
		return nil, ErrPaymentStatusInvalid
	}

	next := *order
	next.Status = input.Status
	next.PaymentStatus = input.PaymentStatus
	if input.PaymentMethod != "" {
		next.PaymentMethod = input.PaymentMethod
	}
	if input.CustomerID != 0 {
		next.CustomerID = input.CustomerID
	}
	next.ShippingCost = input.ShippingCost
	next.BillDiscount = input.BillDiscount
	next.Note = input.Note
	next.DueDate = input.DueDate

	if err := CheckSavePreconditions(&next); err != nil {
		return nil, err
	}

	items := input.Items
	boxes := PruneEmptyBoxes(input.Boxes, items)
	if len(boxes) == 0 {
		boxes = []models.Box{{BoxNumber: 1}}
	}

	totals := CalculateTotals(items, next.BillDiscount, next.ShippingCost)
	next.TotalAmount = totals.Total

	if next.PaymentMethod == constants.PaymentMethodCOD {
		if err := ValidateBoxes(boxes, totals.Total); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.ReplaceDocument(&next, items, boxes); err != nil {
		logger.Errorw("order_save_failed", "error", err, "order_id", input.OrderID)
		return nil, fmt.Errorf("%w: %v", ErrOrderSaveFailed, err)
	}

	saved, err := s.orderRepo.GetByID(input.OrderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}
	logger.Infow("order_saved", "order_id", input.OrderID, "status", next.Status, "total", totals.Total.String())
	return s.buildDetail(saved), nil
}

// UpdateStatus 单独更新订单状态（走同样的角色与锁校验）
func (s *OrderService) UpdateStatus(orderID uint, role, target string) error {
	s.locks.Lock(orderID)
	defer s.locks.Unlock(orderID)

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}
	if order == nil {
		return ErrOrderNotFound
	}
	if err := CheckStatusChange(order, role, target); err != nil {
		return err
	}
	if target != constants.OrderStatusCancelled && IsOrderLocked(order, role) {
		return ErrOrderLocked
	}

	check := *order
	check.Status = target
	if err := CheckSavePreconditions(&check); err != nil {
		return err
	}

	if err := s.orderRepo.UpdateStatus(orderID, target, nil); err != nil {
		logger.Errorw("order_status_update_failed", "error", err, "order_id", orderID, "target", target)
		return fmt.Errorf("%w: %v", ErrOrderSaveFailed, err)
	}
	logger.Infow("order_status_updated", "order_id", orderID, "from", order.Status, "to", target)
	return nil
}

// ListOrders 订单列表
func (s *OrderService) ListOrders(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.List(filter)
}

// generateOrderNo 生成订单编号（时间戳 + 随机后缀）
func generateOrderNo() string {
	suffix, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		suffix = big.NewInt(time.Now().UnixNano() % 1000000)
	}
	return fmt.Sprintf("SO%s%06d", time.Now().Format("20060102150405"), suffix.Int64())
}
