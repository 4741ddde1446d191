package backoffice

import (
	"strconv"
	"strings"

	handlershared "github.com/salesdesk-next/internal/http/handlers/shared"
	"github.com/salesdesk-next/internal/http/response"
	"github.com/salesdesk-next/internal/models"
	"github.com/salesdesk-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListCustomers 客户列表
func (h *Handler) ListCustomers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	customers, total, err := h.CustomerRepo.List(repository.CustomerListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  strings.TrimSpace(c.Query("keyword")),
		Province: strings.TrimSpace(c.Query("province")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.SuccessWithPage(c, customers, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// GetCustomer 客户详情
func (h *Handler) GetCustomer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	customer, err := h.CustomerRepo.GetByID(id)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	if customer == nil {
		respondError(c, response.CodeNotFound, "error.customer_not_found", nil)
		return
	}
	response.Success(c, customer)
}

// SaveCustomerRequest 新建/更新客户请求
type SaveCustomerRequest struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Province string `json:"province"`
	Note     string `json:"note"`
}

// CreateCustomer 新建客户
func (h *Handler) CreateCustomer(c *gin.Context) {
	var req SaveCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	customer := &models.Customer{
		Name:     req.Name,
		Phone:    req.Phone,
		Address:  req.Address,
		Province: req.Province,
		Note:     req.Note,
	}
	if err := h.CustomerRepo.Create(customer); err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, customer)
}

// UpdateCustomer 更新客户
func (h *Handler) UpdateCustomer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req SaveCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	customer, err := h.CustomerRepo.GetByID(id)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	if customer == nil {
		respondError(c, response.CodeNotFound, "error.customer_not_found", nil)
		return
	}

	customer.Name = req.Name
	customer.Phone = req.Phone
	customer.Address = req.Address
	customer.Province = req.Province
	customer.Note = req.Note
	if err := h.CustomerRepo.Update(customer); err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, customer)
}
