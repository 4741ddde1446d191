package backoffice

import (
	"github.com/salesdesk-next/internal/http/response"
	"github.com/salesdesk-next/internal/models"

	"github.com/gin-gonic/gin"
)

// ListBankAccounts 启用中的收款账户列表
func (h *Handler) ListBankAccounts(c *gin.Context) {
	accounts, err := h.BankAccountRepo.ListActive()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, accounts)
}

// SaveBankAccountRequest 新建/更新收款账户请求
type SaveBankAccountRequest struct {
	BankName    string `json:"bank_name" binding:"required"`
	AccountNo   string `json:"account_no" binding:"required"`
	AccountName string `json:"account_name" binding:"required"`
	IsActive    bool   `json:"is_active"`
}

// CreateBankAccount 新建收款账户
func (h *Handler) CreateBankAccount(c *gin.Context) {
	var req SaveBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	account := &models.BankAccount{
		BankName:    req.BankName,
		AccountNo:   req.AccountNo,
		AccountName: req.AccountName,
		IsActive:    req.IsActive,
	}
	if err := h.BankAccountRepo.Create(account); err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, account)
}

// UpdateBankAccount 更新收款账户
func (h *Handler) UpdateBankAccount(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req SaveBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	account, err := h.BankAccountRepo.GetByID(id)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	if account == nil {
		respondError(c, response.CodeNotFound, "error.bank_account_not_found", nil)
		return
	}

	account.BankName = req.BankName
	account.AccountNo = req.AccountNo
	account.AccountName = req.AccountName
	account.IsActive = req.IsActive
	if err := h.BankAccountRepo.Update(account); err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, account)
}
