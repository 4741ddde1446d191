package backoffice

import (
	"errors"
	"strconv"
	"strings"
	"time"

	handlershared "github.com/salesdesk-next/internal/http/handlers/shared"
	"github.com/salesdesk-next/internal/http/response"
	"github.com/salesdesk-next/internal/models"
	"github.com/salesdesk-next/internal/repository"
	"github.com/salesdesk-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateOrderRequest 创建订单请求
type CreateOrderRequest struct {
	CompanyID     uint         `json:"company_id"`
	CustomerID    uint         `json:"customer_id"`
	PaymentMethod string       `json:"payment_method"`
	ShippingCost  models.Money `json:"shipping_cost"`
	BillDiscount  models.Money `json:"bill_discount"`
	Note          string       `json:"note"`
	DueDate       *time.Time   `json:"due_date"`
}

// CreateOrder 创建订单
func (h *Handler) CreateOrder(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	order, err := h.OrderService.CreateOrder(service.CreateOrderInput{
		CompanyID:     req.CompanyID,
		CustomerID:    req.CustomerID,
		CreatedByID:   adminID,
		PaymentMethod: req.PaymentMethod,
		ShippingCost:  req.ShippingCost,
		BillDiscount:  req.BillDiscount,
		Note:          req.Note,
		DueDate:       req.DueDate,
	})
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			respondError(c, response.CodeBadRequest, "error.customer_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.order_save_failed", err)
		return
	}
	response.Success(c, order)
}

// GetOrder 订单详情（金额与支付标签实时计算）
func (h *Handler) GetOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	detail, err := h.OrderService.GetOrder(orderID)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, response.CodeNotFound, "error.order_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		return
	}
	response.Success(c, detail)
}

// SaveOrderRequest 全文档保存请求
type SaveOrderRequest struct {
	Status        string             `json:"status" binding:"required"`
	PaymentStatus string             `json:"payment_status" binding:"required"`
	PaymentMethod string             `json:"payment_method"`
	CustomerID    uint               `json:"customer_id"`
	ShippingCost  models.Money       `json:"shipping_cost"`
	BillDiscount  models.Money       `json:"bill_discount"`
	Note          string             `json:"note"`
	DueDate       *time.Time         `json:"due_date"`
	Items         []models.OrderItem `json:"items"`
	Boxes         []models.Box       `json:"boxes"`
}

// SaveOrder 全文档保存订单
func (h *Handler) SaveOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req SaveOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	detail, err := h.OrderService.SaveOrder(service.SaveOrderInput{
		OrderID:       orderID,
		Role:          getAdminRole(c),
		Status:        req.Status,
		PaymentStatus: req.PaymentStatus,
		PaymentMethod: req.PaymentMethod,
		CustomerID:    req.CustomerID,
		ShippingCost:  req.ShippingCost,
		BillDiscount:  req.BillDiscount,
		Note:          req.Note,
		DueDate:       req.DueDate,
		Items:         req.Items,
		Boxes:         req.Boxes,
	})
	if err != nil {
		respondOrderSaveError(c, err)
		return
	}
	response.Success(c, detail)
}

// UpdateOrderStatusRequest 更新订单状态请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus 单独更新订单状态
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	if err := h.OrderService.UpdateStatus(orderID, getAdminRole(c), req.Status); err != nil {
		respondOrderSaveError(c, err)
		return
	}
	response.Success(c, nil)
}

// ListOrders 订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	createdFrom, err := parseTimeNullable(strings.TrimSpace(c.Query("created_from")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	createdTo, err := parseTimeNullable(strings.TrimSpace(c.Query("created_to")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	filter := repository.OrderListFilter{
		Page:          page,
		PageSize:      pageSize,
		CompanyID:     parseUintQuery(c, "company_id"),
		CustomerID:    parseUintQuery(c, "customer_id"),
		Status:        strings.TrimSpace(c.Query("status")),
		PaymentStatus: strings.TrimSpace(c.Query("payment_status")),
		PaymentMethod: strings.TrimSpace(c.Query("payment_method")),
		OrderNo:       strings.TrimSpace(c.Query("order_no")),
		CreatedFrom:   createdFrom,
		CreatedTo:     createdTo,
	}

	orders, total, err := h.OrderService.ListOrders(filter)
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

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return 0, false
	}
	return uint(id), true
}

func parseUintQuery(c *gin.Context, name string) uint {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0
	}
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0
	}
	return uint(parsed)
}

func parseTimeNullable(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
