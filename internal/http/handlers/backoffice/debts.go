package backoffice

import (
	"errors"
	"strconv"
	"time"

	handlershared "github.com/salesdesk-next/internal/http/handlers/shared"
	"github.com/salesdesk-next/internal/http/response"
	"github.com/salesdesk-next/internal/repository"
	"github.com/salesdesk-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListOverdueOrders 逾期欠款订单列表
func (h *Handler) ListOverdueOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	orders, total, err := h.DebtService.ListOverdue(parseUintQuery(c, "company_id"), page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		return
	}

	response.SuccessWithPage(c, orders, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// LogFollowUpRequest 登记催收跟进请求
type LogFollowUpRequest struct {
	OrderID        uint       `json:"order_id" binding:"required"`
	Channel        string     `json:"channel" binding:"required"`
	Note           string     `json:"note"`
	NextFollowUpAt *time.Time `json:"next_follow_up_at"`
}

// LogFollowUp 登记催收跟进
func (h *Handler) LogFollowUp(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	var req LogFollowUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	log, err := h.DebtService.LogFollowUp(service.LogFollowUpInput{
		OrderID:        req.OrderID,
		StaffID:        adminID,
		Channel:        req.Channel,
		Note:           req.Note,
		NextFollowUpAt: req.NextFollowUpAt,
	})
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, response.CodeNotFound, "error.order_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, log)
}

// ListFollowUps 催收跟进记录列表
func (h *Handler) ListFollowUps(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	logs, total, err := h.DebtService.ListFollowUps(repository.CollectionLogFilter{
		Page:     page,
		PageSize: pageSize,
		OrderID:  parseUintQuery(c, "order_id"),
		StaffID:  parseUintQuery(c, "staff_id"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.SuccessWithPage(c, logs, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}
