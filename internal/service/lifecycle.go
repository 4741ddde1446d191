package service

import (
	"github.com/salesdesk-next/internal/constants"
	"github.com/salesdesk-next/internal/models"
)

// privilegedRoles 不受订单编辑锁限制的角色
var privilegedRoles = map[string]bool{
	constants.RoleSuperAdmin:   true,
	constants.RoleAdminControl: true,
	constants.RoleBackoffice:   true,
	constants.RoleFinance:      true,
}

// lockedOrderStatuses 进入仓配流程后对非特权角色锁定编辑的订单状态
var lockedOrderStatuses = map[string]bool{
	constants.OrderStatusPreparing: true,
	constants.OrderStatusPicking:   true,
	constants.OrderStatusShipping:  true,
	constants.OrderStatusDelivered: true,
	constants.OrderStatusReturned:  true,
	constants.OrderStatusConfirmed: true,
}

// lockedPaymentStatuses 核帐完成后对非特权角色锁定编辑的支付状态
var lockedPaymentStatuses = map[string]bool{
	constants.PaymentStatusVerified:    true,
	constants.PaymentStatusApproved:    true,
	constants.PaymentStatusPaid:        true,
	constants.PaymentStatusPreApproved: true,
}

// allowedPaymentTransitions 支付状态机
var allowedPaymentTransitions = map[string]map[string]bool{
	constants.PaymentStatusUnpaid: {
		constants.PaymentStatusPendingVerification: true,
		constants.PaymentStatusPartial:             true,
		constants.PaymentStatusPaid:                true,
	},
	constants.PaymentStatusPendingVerification: {
		constants.PaymentStatusUnpaid:      true,
		constants.PaymentStatusPartial:     true,
		constants.PaymentStatusVerified:    true,
		constants.PaymentStatusPreApproved: true,
	},
	constants.PaymentStatusPartial: {
		constants.PaymentStatusPendingVerification: true,
		constants.PaymentStatusVerified:            true,
		constants.PaymentStatusPaid:                true,
	},
	constants.PaymentStatusVerified: {
		constants.PaymentStatusPendingVerification: true,
		constants.PaymentStatusApproved:            true,
		constants.PaymentStatusPaid:                true,
	},
	constants.PaymentStatusPreApproved: {
		constants.PaymentStatusVerified: true,
		constants.PaymentStatusApproved: true,
	},
	constants.PaymentStatusApproved: {
		constants.PaymentStatusPaid: true,
	},
}

// PaymentStatusLabel 按已付金额与应收金额推导展示用支付标签
func PaymentStatusLabel(amountPaid, total models.Money) string {
	if !amountPaid.Decimal.IsPositive() {
		return constants.PaymentStatusUnpaid
	}
	if amountPaid.Decimal.Add(moneyEpsilon).GreaterThanOrEqual(total.Decimal) {
		return constants.PaymentStatusPaid
	}
	return constants.PaymentStatusPartial
}

// CanTransitPayment 校验支付状态迁移
func CanTransitPayment(from, to string) bool {
	if from == to {
		return true
	}
	targets, ok := allowedPaymentTransitions[from]
	if !ok {
		return false
	}
	return targets[to]
}

// IsPrivilegedRole 是否特权角色（不受编辑锁限制）
func IsPrivilegedRole(role string) bool {
	return privilegedRoles[role]
}

// IsOrderLocked 订单对指定角色是否锁定编辑
func IsOrderLocked(order *models.Order, role string) bool {
	if IsPrivilegedRole(role) {
		return false
	}
	return lockedOrderStatuses[order.Status] || lockedPaymentStatuses[order.PaymentStatus]
}

// CheckStatusChange 校验角色能否把订单状态改为 target。
// 非特权角色只允许保持现状或取消。
func CheckStatusChange(order *models.Order, role, target string) error {
	if target == order.Status {
		return nil
	}
	if !IsPrivilegedRole(role) {
		if target != constants.OrderStatusCancelled {
			return ErrStatusNotAllowed
		}
		if IsOrderLocked(order, role) {
			return ErrOrderLocked
		}
		return nil
	}
	return nil
}

// CheckSavePreconditions 保存前置校验（对所有角色生效）：
// awaiting_verification 要求已付金额为正；pre_approved 要求支付状态非 unpaid。
func CheckSavePreconditions(order *models.Order) error {
	if order.Status == constants.OrderStatusAwaitingVerification && !order.AmountPaid.Decimal.IsPositive() {
		return ErrAwaitingNeedsPayment
	}
	if order.Status == constants.OrderStatusPreApproved && order.PaymentStatus == constants.PaymentStatusUnpaid {
		return ErrPreApprovedUnpaid
	}
	return nil
}
