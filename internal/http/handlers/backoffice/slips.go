package backoffice

import (
	"errors"
	"time"

	"github.com/salesdesk-next/internal/http/response"
	"github.com/salesdesk-next/internal/models"
	"github.com/salesdesk-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListOrderSlips 订单凭证列表
func (h *Handler) ListOrderSlips(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	slips, err := h.SlipService.ListSlips(orderID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		return
	}
	response.Success(c, slips)
}

// UploadSlipRequest 上传凭证请求
type UploadSlipRequest struct {
	ImagePath string `json:"image_path" binding:"required"`
}

// UploadSlip 上传转账凭证，三要素留空待录入
func (h *Handler) UploadSlip(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	var req UploadSlipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	slip, err := h.SlipService.UploadSlip(service.UploadSlipInput{
		OrderID:      orderID,
		ImagePath:    req.ImagePath,
		UploadedByID: &adminID,
	})
	if err != nil {
		respondSlipError(c, err)
		return
	}
	response.Success(c, slip)
}

// UpdateSlipRequest 编辑凭证请求
type UpdateSlipRequest struct {
	Amount        *models.Money `json:"amount"`
	BankAccountID *uint         `json:"bank_account_id"`
	TransferDate  *time.Time    `json:"transfer_date"`
	Checked       bool          `json:"checked"`
	Note          string        `json:"note"`
}

// UpdateSlip 编辑凭证三要素与勾选状态
func (h *Handler) UpdateSlip(c *gin.Context) {
	slipID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateSlipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	if req.BankAccountID != nil {
		account, err := h.BankAccountRepo.GetByID(*req.BankAccountID)
		if err != nil {
			respondError(c, response.CodeInternal, "error.internal", err)
			return
		}
		if account == nil {
			respondError(c, response.CodeBadRequest, "error.bank_account_not_found", nil)
			return
		}
	}

	slip, err := h.SlipService.UpdateSlip(service.UpdateSlipInput{
		SlipID:        slipID,
		Role:          getAdminRole(c),
		Amount:        req.Amount,
		BankAccountID: req.BankAccountID,
		TransferDate:  req.TransferDate,
		Checked:       req.Checked,
		Note:          req.Note,
	})
	if err != nil {
		respondSlipError(c, err)
		return
	}
	response.Success(c, slip)
}

// DeleteSlip 删除凭证
func (h *Handler) DeleteSlip(c *gin.Context) {
	slipID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.SlipService.DeleteSlip(slipID, getAdminRole(c)); err != nil {
		respondSlipError(c, err)
		return
	}
	response.Success(c, nil)
}

// CheckSlipRequest 勾选凭证请求
type CheckSlipRequest struct {
	Checked bool `json:"checked"`
}

// CheckSlip 勾选/取消勾选凭证
func (h *Handler) CheckSlip(c *gin.Context) {
	slipID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CheckSlipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	if err := h.SlipService.SetChecked(slipID, req.Checked); err != nil {
		respondSlipError(c, err)
		return
	}
	response.Success(c, nil)
}

// AcceptVerificationRequest 核帐确认请求。
// 携带客户端当前编辑中的凭证状态，核帐前整批落库。
type AcceptVerificationRequest struct {
	Slips []models.Slip `json:"slips" binding:"required"`
}

// AcceptVerification 核帐确认
func (h *Handler) AcceptVerification(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	var req AcceptVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	detail, err := h.SlipService.AcceptVerification(service.AcceptVerificationInput{
		OrderID:   orderID,
		ActorID:   adminID,
		ActorName: getAdminUsername(c),
		Slips:     req.Slips,
	})
	if err != nil {
		respondSlipError(c, err)
		return
	}
	response.Success(c, detail)
}

// CancelVerification 撤销核帐
func (h *Handler) CancelVerification(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.SlipService.CancelVerification(orderID); err != nil {
		respondSlipError(c, err)
		return
	}
	response.Success(c, nil)
}

// ReconcileSummary 核帐汇总
func (h *Handler) ReconcileSummary(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	summary, err := h.SlipService.Summary(orderID)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, response.CodeNotFound, "error.order_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		return
	}
	response.Success(c, summary)
}
