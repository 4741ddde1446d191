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

// ListProducts 商品列表
func (h *Handler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	products, total, err := h.ProductRepo.List(repository.ProductListFilter{
		Page:       page,
		PageSize:   pageSize,
		Search:     strings.TrimSpace(c.Query("search")),
		OnlyActive: c.Query("only_active") == "true",
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.SuccessWithPage(c, products, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// SaveProductRequest 新建/更新商品请求
type SaveProductRequest struct {
	SKU      string       `json:"sku" binding:"required"`
	Name     string       `json:"name" binding:"required"`
	Price    models.Money `json:"price"`
	IsActive bool         `json:"is_active"`
}

// CreateProduct 新建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req SaveProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	product := &models.Product{
		SKU:      req.SKU,
		Name:     req.Name,
		Price:    req.Price,
		IsActive: req.IsActive,
	}
	if err := h.ProductRepo.Create(product); err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req SaveProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	product, err := h.ProductRepo.GetByID(id)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	if product == nil {
		respondError(c, response.CodeNotFound, "error.product_not_found", nil)
		return
	}

	product.SKU = req.SKU
	product.Name = req.Name
	product.Price = req.Price
	product.IsActive = req.IsActive
	if err := h.ProductRepo.Update(product); err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, product)
}
