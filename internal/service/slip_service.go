package service

import (
	"fmt"
	"time"

	"github.com/salesdesk-next/internal/constants"
	"github.com/salesdesk-next/internal/logger"
	"github.com/salesdesk-next/internal/models"
	"github.com/salesdesk-next/internal/queue"
	"github.com/salesdesk-next/internal/repository"

	"github.com/shopspring/decimal"
)

// SlipService 转账凭证核帐服务
type SlipService struct {
	slipRepo    repository.SlipRepository
	orderRepo   repository.OrderRepository
	orders      *OrderService
	queueClient *queue.Client
}

// NewSlipService 创建凭证服务
func NewSlipService(slipRepo repository.SlipRepository, orderRepo repository.OrderRepository, orders *OrderService, queueClient *queue.Client) *SlipService {
	return &SlipService{
		slipRepo:    slipRepo,
		orderRepo:   orderRepo,
		orders:      orders,
		queueClient: queueClient,
	}
}

// UploadSlipInput 上传凭证输入
type UploadSlipInput struct {
	OrderID      uint
	ImagePath    string
	UploadedByID *uint
}

// UpdateSlipInput 编辑凭证三要素输入
type UpdateSlipInput struct {
	SlipID        uint
	Role          string
	Amount        *models.Money
	BankAccountID *uint
	TransferDate  *time.Time
	Checked       bool
	Note          string
}

// AcceptVerificationInput 核帐确认输入
type AcceptVerificationInput struct {
	OrderID    uint
	ActorID    uint
	ActorName  string
	Slips      []models.Slip // 客户端当前编辑状态（含勾选），核帐前先整批落库
}

// ReconcileSummary 核帐汇总
type ReconcileSummary struct {
	CheckedCount int          `json:"checked_count"`
	CheckedSum   models.Money `json:"checked_sum"`
	OrderTotal   models.Money `json:"order_total"`
	Difference   models.Money `json:"difference"` // 勾选合计 − 应收
	Outcome      string       `json:"outcome"`    // shortfall / overpay / exact
}

// ListSlips 获取订单凭证列表
func (s *SlipService) ListSlips(orderID uint) ([]models.Slip, error) {
	return s.slipRepo.ListByOrder(orderID)
}

// UploadSlip 上传凭证，三要素留空待录入
func (s *SlipService) UploadSlip(input UploadSlipInput) (*models.Slip, error) {
	order, err := s.orderRepo.GetByID(input.OrderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	slip := &models.Slip{
		OrderID:      input.OrderID,
		ImagePath:    input.ImagePath,
		UploadedByID: input.UploadedByID,
	}
	if err := s.slipRepo.Create(slip); err != nil {
		logger.Errorw("slip_create_failed", "error", err, "order_id", input.OrderID)
		return nil, fmt.Errorf("%w: %v", ErrOrderSaveFailed, err)
	}
	logger.Infow("slip_uploaded", "slip_id", slip.ID, "order_id", input.OrderID)
	return slip, nil
}

// UpdateSlip 编辑凭证三要素与勾选状态。
// 支付已核实/已批复后、订单已签收后或订单对该角色锁定时不可编辑；
// 勾选要求三要素齐全。
func (s *SlipService) UpdateSlip(input UpdateSlipInput) (*models.Slip, error) {
	slip, err := s.slipRepo.GetByID(input.SlipID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}
	if slip == nil {
		return nil, ErrSlipNotFound
	}
	order, err := s.orderRepo.GetByID(slip.OrderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	if lockedPaymentStatuses[order.PaymentStatus] {
		return nil, ErrSlipNotEditable
	}
	if order.Status == constants.OrderStatusDelivered {
		return nil, ErrSlipNotEditable
	}
	if IsOrderLocked(order, input.Role) {
		return nil, ErrOrderLocked
	}

	slip.Amount = input.Amount
	slip.BankAccountID = input.BankAccountID
	slip.TransferDate = input.TransferDate
	slip.Checked = input.Checked
	slip.Note = input.Note
	if slip.Checked && !slip.IsComplete() {
		return nil, ErrSlipIncomplete
	}
	if err := s.slipRepo.Update(slip); err != nil {
		logger.Errorw("slip_update_failed", "error", err, "slip_id", input.SlipID)
		return nil, fmt.Errorf("%w: %v", ErrOrderSaveFailed, err)
	}
	return slip, nil
}

// DeleteSlip 删除凭证。
// 支付已核实/已批复后、订单已签收后或订单对该角色锁定时不可删除。
func (s *SlipService) DeleteSlip(slipID uint, role string) error {
	slip, err := s.slipRepo.GetByID(slipID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}
	if slip == nil {
		return ErrSlipNotFound
	}
	order, err := s.orderRepo.GetByID(slip.OrderID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}
	if order == nil {
		return ErrOrderNotFound
	}

	if lockedPaymentStatuses[order.PaymentStatus] {
		return ErrSlipNotDeletable
	}
	if order.Status == constants.OrderStatusDelivered {
		return ErrSlipNotDeletable
	}
	if IsOrderLocked(order, role) {
		return ErrOrderLocked
	}

	if err := s.slipRepo.Delete(slipID); err != nil {
		logger.Errorw("slip_delete_failed", "error", err, "slip_id", slipID)
		return fmt.Errorf("%w: %v", ErrOrderSaveFailed, err)
	}
	logger.Infow("slip_deleted", "slip_id", slipID, "order_id", slip.OrderID)
	return nil
}

// SetChecked 勾选/取消勾选凭证。三要素不齐全的凭证不可勾选。
func (s *SlipService) SetChecked(slipID uint, checked bool) error {
	slip, err := s.slipRepo.GetByID(slipID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}
	if slip == nil {
		return ErrSlipNotFound
	}
	if checked && !slip.IsComplete() {
		return ErrSlipIncomplete
	}
	return s.slipRepo.SetChecked(slipID, checked)
}

// AcceptVerification 核帐确认。
// 先整批落库客户端编辑的凭证元数据，再执行门禁：至少一张勾选、勾选凭证三要素齐全；
// 已付金额取 max(现有已付, 勾选合计 > 0 ? 勾选合计 : 应收)，非正数拒绝；
// 通过后写入 verified 支付状态与核帐人戳记。按订单 ID 与保存操作串行化。
func (s *SlipService) AcceptVerification(input AcceptVerificationInput) (*OrderDetail, error) {
	s.orders.locks.Lock(input.OrderID)
	defer s.orders.locks.Unlock(input.OrderID)

	order, err := s.orderRepo.GetByID(input.OrderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	checked := make([]models.Slip, 0, len(input.Slips))
	for _, slip := range input.Slips {
		if slip.Checked {
			checked = append(checked, slip)
		}
	}
	if len(checked) == 0 {
		return nil, ErrNoCheckedSlips
	}
	for _, slip := range checked {
		if !slip.IsComplete() {
			return nil, ErrSlipIncomplete
		}
	}

	// 先落库编辑中的元数据，核帐只信已持久化的数据
	if err := s.slipRepo.UpdateMetadataBatch(input.Slips); err != nil {
		logger.Errorw("slip_flush_failed", "error", err, "order_id", input.OrderID)
		return nil, fmt.Errorf("%w: %v", ErrOrderSaveFailed, err)
	}

	stored, err := s.slipRepo.ListCheckedByOrder(input.OrderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}
	slipSum := decimal.Zero
	for _, slip := range stored {
		if slip.Amount != nil {
			slipSum = slipSum.Add(slip.Amount.Decimal)
		}
	}

	totals := CalculateTotals(order.Items, order.BillDiscount, order.ShippingCost)
	paid := totals.Total.Decimal
	if slipSum.IsPositive() {
		paid = slipSum
	}
	if order.AmountPaid.Decimal.GreaterThan(paid) {
		paid = order.AmountPaid.Decimal
	}
	if !paid.IsPositive() {
		return nil, ErrPaidAmountInvalid
	}

	now := time.Now()
	actorID := input.ActorID
	if err := s.orderRepo.UpdateFields(order.ID, map[string]interface{}{
		"payment_status":   constants.PaymentStatusVerified,
		"amount_paid":      models.NewMoneyFromDecimal(paid),
		"verified_by_id":   &actorID,
		"verified_by_name": input.ActorName,
		"verified_at":      &now,
	}); err != nil {
		logger.Errorw("verification_accept_failed", "error", err, "order_id", input.OrderID)
		return nil, fmt.Errorf("%w: %v", ErrOrderSaveFailed, err)
	}

	logger.Infow("verification_accepted",
		"order_id", input.OrderID,
		"paid", paid.Round(2).StringFixed(2),
		"checked_slips", len(stored),
		"verified_by", input.ActorID,
	)

	if err := s.queueClient.EnqueueOrderVerifiedNotify(queue.OrderVerifiedNotifyPayload{
		OrderID:    input.OrderID,
		AmountPaid: paid.Round(2).StringFixed(2),
		VerifiedBy: input.ActorName,
	}); err != nil {
		logger.Warnw("verified_notify_enqueue_failed", "error", err, "order_id", input.OrderID)
	}

	saved, err := s.orderRepo.GetByID(input.OrderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}
	return s.orders.buildDetail(saved), nil
}

// CancelVerification 撤销核帐。仅订单仍在 pending 时允许；
// 支付状态回到 pending_verification，清空已付金额与核帐戳记。
func (s *SlipService) CancelVerification(orderID uint) error {
	s.orders.locks.Lock(orderID)
	defer s.orders.locks.Unlock(orderID)

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}
	if order == nil {
		return ErrOrderNotFound
	}
	if order.Status != constants.OrderStatusPending {
		return ErrVerificationNotCancelable
	}

	if err := s.orderRepo.UpdateFields(orderID, map[string]interface{}{
		"payment_status":   constants.PaymentStatusPendingVerification,
		"amount_paid":      models.MoneyZero(),
		"verified_by_id":   nil,
		"verified_by_name": "",
		"verified_at":      nil,
	}); err != nil {
		logger.Errorw("verification_cancel_failed", "error", err, "order_id", orderID)
		return fmt.Errorf("%w: %v", ErrOrderSaveFailed, err)
	}
	logger.Infow("verification_cancelled", "order_id", orderID)
	return nil
}

// Summary 核帐汇总：勾选合计与应收的差额及其判定
func (s *SlipService) Summary(orderID uint) (*ReconcileSummary, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	checked, err := s.slipRepo.ListCheckedByOrder(orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}
	sum := decimal.Zero
	for _, slip := range checked {
		if slip.Amount != nil {
			sum = sum.Add(slip.Amount.Decimal)
		}
	}

	totals := CalculateTotals(order.Items, order.BillDiscount, order.ShippingCost)
	difference := sum.Sub(totals.Total.Decimal)

	outcome := "exact"
	switch {
	case moneyEqual(sum, totals.Total.Decimal):
		outcome = "exact"
	case difference.IsNegative():
		outcome = "shortfall"
	default:
		outcome = "overpay"
	}

	return &ReconcileSummary{
		CheckedCount: len(checked),
		CheckedSum:   models.NewMoneyFromDecimal(sum),
		OrderTotal:   totals.Total,
		Difference:   models.NewMoneyFromDecimal(difference),
		Outcome:      outcome,
	}, nil
}
