package backoffice

import (
	"fmt"

	"github.com/salesdesk-next/internal/http/response"
	"github.com/salesdesk-next/internal/models"
	"github.com/salesdesk-next/internal/service"

	"github.com/gin-gonic/gin"
)

// 订单草稿编辑动作
const (
	previewActionAddItem       = "add_item"
	previewActionAddPromotion  = "add_promotion"
	previewActionSetQuantity   = "set_quantity"
	previewActionDuplicate     = "duplicate"
	previewActionRemove        = "remove"
	previewActionSetBoxCount   = "set_box_count"
	previewActionDivideEqually = "divide_equally"
)

// PreviewOp 草稿编辑动作
type PreviewOp struct {
	Action       string        `json:"action" binding:"required"`
	ProductID    uint          `json:"product_id,omitempty"`
	PromotionID  uint          `json:"promotion_id,omitempty"`
	Uid          string        `json:"uid,omitempty"`
	Quantity     int           `json:"quantity,omitempty"`
	Count        int           `json:"count,omitempty"`
	BoxNumber    int           `json:"box_number,omitempty"`
	BoxCount     int           `json:"box_count,omitempty"`
	Discount     models.Money  `json:"discount,omitempty"`
	IsFreebie    bool          `json:"is_freebie,omitempty"`
	PricePerUnit *models.Money `json:"price_per_unit,omitempty"`
}

// PreviewOrderRequest 订单草稿预览请求。
// 客户端携带当前编辑状态与一串编辑动作，服务端依序应用后返回重算结果。
type PreviewOrderRequest struct {
	Items        []models.OrderItem `json:"items"`
	Boxes        []models.Box       `json:"boxes"`
	BillDiscount models.Money       `json:"bill_discount"`
	ShippingCost models.Money       `json:"shipping_cost"`
	AmountPaid   models.Money       `json:"amount_paid"`
	Ops          []PreviewOp        `json:"ops"`
}

// PreviewOrderResult 草稿预览结果
type PreviewOrderResult struct {
	Items        []models.OrderItem  `json:"items"`
	Boxes        []models.Box        `json:"boxes"`
	Totals       service.OrderTotals `json:"totals"`
	PaymentLabel string              `json:"payment_label"`
}

// PreviewOrder 订单草稿预览。只做计算，不落库；
// 持久化仍需走全文档保存并通过全部校验。
func (h *Handler) PreviewOrder(c *gin.Context) {
	var req PreviewOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	items := req.Items
	boxes := req.Boxes
	var err error
	for _, op := range req.Ops {
		items, boxes, err = h.applyPreviewOp(items, boxes, req.BillDiscount, req.ShippingCost, op)
		if err != nil {
			respondDocumentError(c, err)
			return
		}
	}

	totals := service.CalculateTotals(items, req.BillDiscount, req.ShippingCost)
	response.Success(c, PreviewOrderResult{
		Items:        items,
		Boxes:        boxes,
		Totals:       totals,
		PaymentLabel: service.PaymentStatusLabel(req.AmountPaid, totals.Total),
	})
}

func (h *Handler) applyPreviewOp(items []models.OrderItem, boxes []models.Box, billDiscount, shippingCost models.Money, op PreviewOp) ([]models.OrderItem, []models.Box, error) {
	switch op.Action {
	case previewActionAddItem:
		product, err := h.ProductRepo.GetByID(op.ProductID)
		if err != nil {
			return nil, nil, err
		}
		if product == nil {
			return nil, nil, service.ErrProductNotFound
		}
		price := product.Price
		if op.PricePerUnit != nil {
			price = *op.PricePerUnit
		}
		quantity := op.Quantity
		if quantity == 0 {
			quantity = 1
		}
		items, err = service.AddItem(items, service.AddItemInput{
			ProductID:    product.ID,
			ProductName:  product.Name,
			PricePerUnit: price,
			Quantity:     quantity,
			Discount:     op.Discount,
			IsFreebie:    op.IsFreebie,
			BoxNumber:    op.BoxNumber,
		})
		return items, boxes, err

	case previewActionAddPromotion:
		promotion, err := h.PromotionService.GetActive(op.PromotionID)
		if err != nil {
			return nil, nil, err
		}
		items, err = service.AddPromotion(items, promotion, op.Quantity, op.BoxNumber)
		return items, boxes, err

	case previewActionSetQuantity:
		items, err := service.SetItemQuantity(items, op.Uid, op.Quantity)
		return items, boxes, err

	case previewActionDuplicate:
		count := op.Count
		if count == 0 {
			count = 1
		}
		items, err := service.DuplicateItem(items, op.Uid, count)
		return items, boxes, err

	case previewActionRemove:
		items, err := service.RemoveItem(items, op.Uid)
		if err != nil {
			return nil, nil, err
		}
		return items, service.PruneEmptyBoxes(boxes, items), nil

	case previewActionSetBoxCount:
		boxes, err := service.SetBoxCount(boxes, op.BoxCount)
		return items, boxes, err

	case previewActionDivideEqually:
		totals := service.CalculateTotals(items, billDiscount, shippingCost)
		return items, service.DivideEqually(boxes, totals.Total), nil

	default:
		return nil, nil, fmt.Errorf("unknown draft action: %s", op.Action)
	}
}
