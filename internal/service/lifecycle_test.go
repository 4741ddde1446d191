package service

import (
	"testing"

	"github.com/salesdesk-next/internal/constants"
	"github.com/salesdesk-next/internal/models"
)

func TestPaymentStatusLabel(t *testing.T) {
	total := models.NewMoneyFromFloat(500)

	if got := PaymentStatusLabel(models.MoneyZero(), total); got != constants.PaymentStatusUnpaid {
		t.Fatalf("expected unpaid, got %s", got)
	}
	if got := PaymentStatusLabel(models.NewMoneyFromFloat(200), total); got != constants.PaymentStatusPartial {
		t.Fatalf("expected partial, got %s", got)
	}
	if got := PaymentStatusLabel(models.NewMoneyFromFloat(500), total); got != constants.PaymentStatusPaid {
		t.Fatalf("expected paid, got %s", got)
	}
	// 容差内视为付清
	if got := PaymentStatusLabel(models.NewMoneyFromFloat(499.99), total); got != constants.PaymentStatusPaid {
		t.Fatalf("expected paid within tolerance, got %s", got)
	}
}

func TestCanTransitPayment(t *testing.T) {
	if !CanTransitPayment(constants.PaymentStatusUnpaid, constants.PaymentStatusPendingVerification) {
		t.Fatalf("unpaid -> pending_verification must be allowed")
	}
	if !CanTransitPayment(constants.PaymentStatusPendingVerification, constants.PaymentStatusVerified) {
		t.Fatalf("pending_verification -> verified must be allowed")
	}
	if CanTransitPayment(constants.PaymentStatusUnpaid, constants.PaymentStatusApproved) {
		t.Fatalf("unpaid -> approved must be rejected")
	}
	if CanTransitPayment(constants.PaymentStatusApproved, constants.PaymentStatusUnpaid) {
		t.Fatalf("approved -> unpaid must be rejected")
	}
	if !CanTransitPayment(constants.PaymentStatusPartial, constants.PaymentStatusPartial) {
		t.Fatalf("same-status transition is a no-op and allowed")
	}
}

func TestIsOrderLockedByRole(t *testing.T) {
	order := &models.Order{
		Status:        constants.OrderStatusShipping,
		PaymentStatus: constants.PaymentStatusUnpaid,
	}
	if IsOrderLocked(order, constants.RoleFinance) {
		t.Fatalf("finance is privileged and never locked")
	}
	if !IsOrderLocked(order, constants.RoleSale) {
		t.Fatalf("sale must be locked once shipping")
	}
	if !IsOrderLocked(order, constants.RoleWarehouse) {
		t.Fatalf("warehouse must be locked once shipping")
	}

	order = &models.Order{
		Status:        constants.OrderStatusPending,
		PaymentStatus: constants.PaymentStatusVerified,
	}
	if !IsOrderLocked(order, constants.RoleSale) {
		t.Fatalf("sale must be locked once payment is verified")
	}
	if IsOrderLocked(order, constants.RoleBackoffice) {
		t.Fatalf("backoffice is privileged and never locked")
	}
}

func TestCheckStatusChangeNonPrivilegedOnlyCancel(t *testing.T) {
	order := &models.Order{
		Status:        constants.OrderStatusPending,
		PaymentStatus: constants.PaymentStatusUnpaid,
	}
	if err := CheckStatusChange(order, constants.RoleSale, constants.OrderStatusPending); err != nil {
		t.Fatalf("keeping current status must pass: %v", err)
	}
	if err := CheckStatusChange(order, constants.RoleSale, constants.OrderStatusCancelled); err != nil {
		t.Fatalf("cancel from pending must pass for sale: %v", err)
	}
	if err := CheckStatusChange(order, constants.RoleSale, constants.OrderStatusPreparing); err != ErrStatusNotAllowed {
		t.Fatalf("expected ErrStatusNotAllowed, got %v", err)
	}

	shipping := &models.Order{
		Status:        constants.OrderStatusShipping,
		PaymentStatus: constants.PaymentStatusUnpaid,
	}
	if err := CheckStatusChange(shipping, constants.RoleSale, constants.OrderStatusPending); err != ErrStatusNotAllowed {
		t.Fatalf("shipping -> pending must be denied for sale, got %v", err)
	}
	if err := CheckStatusChange(shipping, constants.RoleBackoffice, constants.OrderStatusPending); err != nil {
		t.Fatalf("privileged roles may move status freely: %v", err)
	}
}

func TestCheckSavePreconditions(t *testing.T) {
	order := &models.Order{
		Status:     constants.OrderStatusAwaitingVerification,
		AmountPaid: models.MoneyZero(),
	}
	if err := CheckSavePreconditions(order); err != ErrAwaitingNeedsPayment {
		t.Fatalf("expected ErrAwaitingNeedsPayment, got %v", err)
	}
	order.AmountPaid = models.NewMoneyFromFloat(1)
	if err := CheckSavePreconditions(order); err != nil {
		t.Fatalf("positive paid amount must pass: %v", err)
	}

	order = &models.Order{
		Status:        constants.OrderStatusPreApproved,
		PaymentStatus: constants.PaymentStatusUnpaid,
	}
	if err := CheckSavePreconditions(order); err != ErrPreApprovedUnpaid {
		t.Fatalf("expected ErrPreApprovedUnpaid, got %v", err)
	}
	order.PaymentStatus = constants.PaymentStatusPendingVerification
	if err := CheckSavePreconditions(order); err != nil {
		t.Fatalf("pre_approved with pending payment must pass: %v", err)
	}
}
