package backoffice

import (
	"errors"
	"time"

	"github.com/salesdesk-next/internal/http/response"
	"github.com/salesdesk-next/internal/models"
	"github.com/salesdesk-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListPromotions 当前有效促销套装列表
func (h *Handler) ListPromotions(c *gin.Context) {
	promotions, err := h.PromotionService.ListActive(parseUintQuery(c, "company_id"))
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, promotions)
}

// SavePromotionLineRequest 套装明细请求
type SavePromotionLineRequest struct {
	ProductID     uint         `json:"product_id" binding:"required"`
	Quantity      int          `json:"quantity" binding:"required"`
	OverridePrice models.Money `json:"override_price"`
	IsFreebie     bool         `json:"is_freebie"`
}

// SavePromotionRequest 新建/更新套装请求
type SavePromotionRequest struct {
	CompanyID uint                       `json:"company_id"`
	Name      string                     `json:"name" binding:"required"`
	StartsAt  *time.Time                 `json:"starts_at"`
	EndsAt    *time.Time                 `json:"ends_at"`
	IsActive  bool                       `json:"is_active"`
	Lines     []SavePromotionLineRequest `json:"lines" binding:"required,min=1"`
}

func (h *Handler) savePromotion(c *gin.Context, id uint) {
	var req SavePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	lines := make([]service.SavePromotionLine, 0, len(req.Lines))
	for _, line := range req.Lines {
		lines = append(lines, service.SavePromotionLine{
			ProductID:     line.ProductID,
			Quantity:      line.Quantity,
			OverridePrice: line.OverridePrice,
			IsFreebie:     line.IsFreebie,
		})
	}

	promotion, err := h.PromotionService.Save(service.SavePromotionInput{
		ID:        id,
		CompanyID: req.CompanyID,
		Name:      req.Name,
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
		IsActive:  req.IsActive,
		Lines:     lines,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			respondError(c, response.CodeBadRequest, "error.product_not_found", nil)
		case errors.Is(err, service.ErrQuantityInvalid):
			respondError(c, response.CodeBadRequest, "error.quantity_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}
	response.Success(c, promotion)
}

// CreatePromotion 新建促销套装
func (h *Handler) CreatePromotion(c *gin.Context) {
	h.savePromotion(c, 0)
}

// UpdatePromotion 更新促销套装
func (h *Handler) UpdatePromotion(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	h.savePromotion(c, id)
}

// DeletePromotion 删除促销套装
func (h *Handler) DeletePromotion(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.PromotionService.Delete(id); err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, nil)
}
