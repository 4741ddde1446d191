package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/salesdesk-next/internal/constants"
	"github.com/salesdesk-next/internal/logger"
	"github.com/salesdesk-next/internal/models"
	"github.com/salesdesk-next/internal/provider"
	"github.com/salesdesk-next/internal/queue"
	"github.com/salesdesk-next/internal/service"

	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderVerifiedNotify, c.handleOrderVerifiedNotify)
	mux.HandleFunc(queue.TaskDebtReminder, c.handleDebtReminder)
}

func (c *Consumer) handleOrderVerifiedNotify(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_verified_notify_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderVerifiedNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_verified_notify_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_verified_notify_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_verified_notify_fetch_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_verified_notify_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}
	logger.Infow("order_verified_notified",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"customer_id", order.CustomerID,
		"amount_paid", payload.AmountPaid,
		"verified_by", payload.VerifiedBy,
	)
	return nil
}

func (c *Consumer) handleDebtReminder(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_debt_reminder_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.DebtReminderPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_debt_reminder_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_debt_reminder_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_debt_reminder_fetch_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_debt_reminder_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}
	if isOrderSettled(order) {
		logger.Debugw("worker_debt_reminder_skip_settled", "order_id", order.ID, "order_no", order.OrderNo)
		return nil
	}

	outstanding := orderOutstanding(order)
	logger.Infow("debt_reminder_due",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"customer_id", order.CustomerID,
		"outstanding", outstanding.Decimal.StringFixed(2),
		"due_date", order.DueDate,
	)

	if delay := c.reminderInterval(); delay > 0 {
		if err := c.QueueClient.EnqueueDebtReminder(queue.DebtReminderPayload{OrderID: order.ID}, delay); err != nil {
			logger.Warnw("worker_debt_reminder_reschedule_failed", "order_id", order.ID, "error", err)
		}
	}
	return nil
}

func (c *Consumer) reminderInterval() time.Duration {
	if c == nil || c.Config == nil {
		return 0
	}
	days := c.Config.Debt.ReminderIntervalDays
	if days <= 0 {
		return 0
	}
	return time.Duration(days) * 24 * time.Hour
}

// orderOutstanding 汇总各箱待回款金额
func orderOutstanding(order *models.Order) models.Money {
	if order == nil {
		return models.NewMoneyFromDecimal(decimal.Zero)
	}
	outstanding := decimal.Zero
	for _, box := range order.Boxes {
		outstanding = outstanding.Add(service.BoxRemaining(box).Decimal)
	}
	return models.NewMoneyFromDecimal(outstanding)
}

func isOrderSettled(order *models.Order) bool {
	if order == nil {
		return true
	}
	switch order.PaymentStatus {
	case constants.PaymentStatusPaid, constants.PaymentStatusVerified, constants.PaymentStatusApproved:
		return true
	}
	return !orderOutstanding(order).Decimal.IsPositive()
}
