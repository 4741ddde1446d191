package service

import (
	"fmt"
	"time"

	"github.com/salesdesk-next/internal/logger"
	"github.com/salesdesk-next/internal/models"
	"github.com/salesdesk-next/internal/queue"
	"github.com/salesdesk-next/internal/repository"

	"github.com/shopspring/decimal"
)

// DebtService 欠款催收服务
type DebtService struct {
	orderRepo         repository.OrderRepository
	collectionLogRepo repository.CollectionLogRepository
	queueClient       *queue.Client
	overdueDays       int
}

// NewDebtService 创建催收服务
func NewDebtService(orderRepo repository.OrderRepository, collectionLogRepo repository.CollectionLogRepository, queueClient *queue.Client, overdueDays int) *DebtService {
	if overdueDays <= 0 {
		overdueDays = 7
	}
	return &DebtService{
		orderRepo:         orderRepo,
		collectionLogRepo: collectionLogRepo,
		queueClient:       queueClient,
		overdueDays:       overdueDays,
	}
}

// OverdueOrder 逾期欠款订单视图
type OverdueOrder struct {
	Order       models.Order `json:"order"`
	Outstanding models.Money `json:"outstanding"` // 各箱待回款之和
	OverdueDays int          `json:"overdue_days"`
}

// ListOverdue 逾期欠款订单列表，逐单汇总各箱待回款金额
func (s *DebtService) ListOverdue(companyID uint, page, pageSize int) ([]OverdueOrder, int64, error) {
	orders, total, err := s.orderRepo.ListOverdue(repository.OverdueOrderFilter{
		Page:      page,
		PageSize:  pageSize,
		CompanyID: companyID,
		DueBefore: time.Now(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}

	now := time.Now()
	result := make([]OverdueOrder, 0, len(orders))
	for _, order := range orders {
		outstanding := decimal.Zero
		for _, box := range order.Boxes {
			outstanding = outstanding.Add(BoxRemaining(box).Decimal)
		}
		overdue := 0
		if order.DueDate != nil {
			overdue = int(now.Sub(*order.DueDate).Hours() / 24)
		}
		result = append(result, OverdueOrder{
			Order:       order,
			Outstanding: models.NewMoneyFromDecimal(outstanding),
			OverdueDays: overdue,
		})
	}
	return result, total, nil
}

// LogFollowUpInput 登记跟进输入
type LogFollowUpInput struct {
	OrderID        uint
	StaffID        uint
	Channel        string
	Note           string
	NextFollowUpAt *time.Time
}

// LogFollowUp 登记一次催收跟进，若填写了下次跟进时间则排期延迟提醒任务
func (s *DebtService) LogFollowUp(input LogFollowUpInput) (*models.CollectionLog, error) {
	order, err := s.orderRepo.GetByID(input.OrderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	log := &models.CollectionLog{
		OrderID:        input.OrderID,
		StaffID:        input.StaffID,
		Channel:        input.Channel,
		Note:           input.Note,
		ContactedAt:    time.Now(),
		NextFollowUpAt: input.NextFollowUpAt,
	}
	if err := s.collectionLogRepo.Create(log); err != nil {
		logger.Errorw("collection_log_create_failed", "error", err, "order_id", input.OrderID)
		return nil, fmt.Errorf("%w: %v", ErrOrderSaveFailed, err)
	}

	if input.NextFollowUpAt != nil {
		delay := time.Until(*input.NextFollowUpAt)
		if err := s.queueClient.EnqueueDebtReminder(queue.DebtReminderPayload{OrderID: input.OrderID}, delay); err != nil {
			logger.Warnw("debt_reminder_enqueue_failed", "error", err, "order_id", input.OrderID)
		}
	}
	return log, nil
}

// ListFollowUps 跟进记录列表
func (s *DebtService) ListFollowUps(filter repository.CollectionLogFilter) ([]models.CollectionLog, int64, error) {
	return s.collectionLogRepo.List(filter)
}

// EnqueueOverdueReminders 扫描逾期订单并排期催收提醒任务，返回排期数量
func (s *DebtService) EnqueueOverdueReminders(now time.Time) (int, error) {
	const pageSize = 200
	enqueued := 0
	page := 1
	for {
		orders, total, err := s.orderRepo.ListOverdue(repository.OverdueOrderFilter{
			Page:      page,
			PageSize:  pageSize,
			DueBefore: now,
		})
		if err != nil {
			return enqueued, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
		}
		for _, order := range orders {
			outstanding := decimal.Zero
			for _, box := range order.Boxes {
				outstanding = outstanding.Add(BoxRemaining(box).Decimal)
			}
			if !outstanding.IsPositive() {
				continue
			}
			if err := s.queueClient.EnqueueDebtReminder(queue.DebtReminderPayload{OrderID: order.ID}, 0); err != nil {
				logger.Warnw("debt_reminder_enqueue_failed", "error", err, "order_id", order.ID)
				continue
			}
			enqueued++
		}
		if len(orders) == 0 || int64(page*pageSize) >= total {
			break
		}
		page++
	}
	return enqueued, nil
}
