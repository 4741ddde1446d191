package backoffice

import (
	"errors"

	"github.com/salesdesk-next/internal/http/response"
	"github.com/salesdesk-next/internal/i18n"
	"github.com/salesdesk-next/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

var documentErrorRules = []mappedHandlerError{
	{target: service.ErrItemNotFound, code: response.CodeBadRequest, key: "error.item_not_found"},
	{target: service.ErrQuantityInvalid, code: response.CodeBadRequest, key: "error.quantity_invalid"},
	{target: service.ErrBoxCountInvalid, code: response.CodeBadRequest, key: "error.box_count_invalid"},
	{target: service.ErrProductNotFound, code: response.CodeBadRequest, key: "error.product_not_found"},
	{target: service.ErrPromotionNotFound, code: response.CodeBadRequest, key: "error.promotion_not_found"},
	{target: service.ErrPromotionInactive, code: response.CodeBadRequest, key: "error.promotion_inactive"},
}

var orderSaveErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, key: "error.order_not_found"},
	{target: service.ErrCustomerNotFound, code: response.CodeBadRequest, key: "error.customer_not_found"},
	{target: service.ErrOrderLocked, code: response.CodeForbidden, key: "error.order_locked"},
	{target: service.ErrStatusNotAllowed, code: response.CodeBadRequest, key: "error.order_status_not_allowed"},
	{target: service.ErrPaymentStatusInvalid, code: response.CodeBadRequest, key: "error.payment_status_invalid"},
	{target: service.ErrAwaitingNeedsPayment, code: response.CodeBadRequest, key: "error.awaiting_needs_payment"},
	{target: service.ErrPreApprovedUnpaid, code: response.CodeBadRequest, key: "error.pre_approved_unpaid"},
	{target: service.ErrItemNotFound, code: response.CodeBadRequest, key: "error.item_not_found"},
	{target: service.ErrQuantityInvalid, code: response.CodeBadRequest, key: "error.quantity_invalid"},
	{target: service.ErrBoxCountInvalid, code: response.CodeBadRequest, key: "error.box_count_invalid"},
}

var slipErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, key: "error.order_not_found"},
	{target: service.ErrSlipNotFound, code: response.CodeNotFound, key: "error.slip_not_found"},
	{target: service.ErrSlipIncomplete, code: response.CodeBadRequest, key: "error.slip_incomplete"},
	{target: service.ErrNoCheckedSlips, code: response.CodeBadRequest, key: "error.no_checked_slips"},
	{target: service.ErrPaidAmountInvalid, code: response.CodeBadRequest, key: "error.paid_amount_invalid"},
	{target: service.ErrVerificationNotCancelable, code: response.CodeBadRequest, key: "error.verification_not_cancelable"},
	{target: service.ErrSlipNotDeletable, code: response.CodeBadRequest, key: "error.slip_not_deletable"},
	{target: service.ErrSlipNotEditable, code: response.CodeBadRequest, key: "error.slip_not_editable"},
	{target: service.ErrOrderLocked, code: response.CodeForbidden, key: "error.order_locked"},
}

// respondOrderSaveError 保存类错误响应。
// 箱金额不匹配时把两侧金额明细一并返回给前端展示。
func respondOrderSaveError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrBoxSumMismatch) {
		msg := i18n.T(i18n.ResolveLocale(c), "error.box_sum_mismatch")
		response.ErrorWithData(c, response.CodeBadRequest, msg, gin.H{"detail": err.Error()})
		return
	}
	respondWithMappedError(c, err, orderSaveErrorRules, response.CodeInternal, "error.order_save_failed")
}

func respondSlipError(c *gin.Context, err error) {
	respondWithMappedError(c, err, slipErrorRules, response.CodeInternal, "error.order_save_failed")
}

func respondDocumentError(c *gin.Context, err error) {
	respondWithMappedError(c, err, documentErrorRules, response.CodeBadRequest, "error.bad_request")
}
