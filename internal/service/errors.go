package service

import "errors"

// 通用
var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrAdminNotFound    = errors.New("admin not found")
)

// 订单编辑与状态
var (
	ErrOrderLocked          = errors.New("order is locked for current role")
	ErrStatusNotAllowed     = errors.New("status transition not allowed")
	ErrPaymentStatusInvalid = errors.New("payment status transition not allowed")
	ErrAwaitingNeedsPayment = errors.New("awaiting_verification requires a positive paid amount")
	ErrPreApprovedUnpaid    = errors.New("pre_approved requires a non-unpaid payment status")
	ErrItemNotFound         = errors.New("order item not found")
	ErrQuantityInvalid      = errors.New("quantity must be positive")
	ErrBoxCountInvalid      = errors.New("box count must be at least 1")
	ErrBoxSumMismatch       = errors.New("box collection amounts do not match order total")
)

// 凭证核帐
var (
	ErrSlipNotFound              = errors.New("slip not found")
	ErrSlipIncomplete            = errors.New("checked slip is missing amount, bank account or transfer date")
	ErrSlipNotDeletable          = errors.New("slip can no longer be deleted")
	ErrSlipNotEditable           = errors.New("slip can no longer be edited")
	ErrNoCheckedSlips            = errors.New("no checked slips to verify")
	ErrPaidAmountInvalid         = errors.New("verified paid amount must be positive")
	ErrVerificationNotCancelable = errors.New("verification can only be cancelled while the order is pending")
)

// 登录与促销
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrLoginBlocked       = errors.New("too many login attempts")
	ErrPromotionNotFound  = errors.New("promotion not found")
	ErrPromotionInactive  = errors.New("promotion is not active")
)

// 持久化
var (
	ErrOrderFetchFailed = errors.New("order fetch failed")
	ErrOrderSaveFailed  = errors.New("order save failed")
)
