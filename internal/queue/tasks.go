package queue

import (
	"encoding/json"

	"github.com/salesdesk-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderVerifiedNotify 核帐完成通知任务
	TaskOrderVerifiedNotify = constants.TaskOrderVerifiedNotify
	// TaskDebtReminder 欠款催收提醒任务
	TaskDebtReminder = constants.TaskDebtReminder
)

// OrderVerifiedNotifyPayload 核帐完成通知任务载荷
type OrderVerifiedNotifyPayload struct {
	OrderID    uint   `json:"order_id"`
	AmountPaid string `json:"amount_paid"`
	VerifiedBy string `json:"verified_by"`
}

// DebtReminderPayload 欠款催收提醒任务载荷
type DebtReminderPayload struct {
	OrderID uint `json:"order_id"`
}

// NewOrderVerifiedNotifyTask 创建核帐完成通知任务
func NewOrderVerifiedNotifyTask(payload OrderVerifiedNotifyPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderVerifiedNotify, body), nil
}

// NewDebtReminderTask 创建欠款催收提醒任务
func NewDebtReminderTask(payload DebtReminderPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDebtReminder, body), nil
}
