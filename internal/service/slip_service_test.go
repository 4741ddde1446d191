package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/salesdesk-next/internal/constants"
	"github.com/salesdesk-next/internal/models"
	"github.com/salesdesk-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupSlipServiceTest(t *testing.T) (*SlipService, *OrderService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Customer{}, &models.Product{}, &models.Promotion{}, &models.PromotionLine{}, &models.Order{}, &models.OrderItem{}, &models.Box{}, &models.Slip{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	orderRepo := repository.NewOrderRepository(db)
	orders := NewOrderService(
		orderRepo,
		repository.NewCustomerRepository(db),
		repository.NewProductRepository(db),
		repository.NewPromotionRepository(db),
		"",
	)
	slips := NewSlipService(repository.NewSlipRepository(db), orderRepo, orders, nil)
	return slips, orders, db
}

// seedVerifiableOrder 建一张应收 500 的转账订单并上传两张凭证
func seedVerifiableOrder(t *testing.T, orders *OrderService, slips *SlipService, db *gorm.DB) (*models.Order, []models.Slip) {
	t.Helper()
	order := createTestOrder(t, orders, db, constants.PaymentMethodTransfer)
	items, _ := AddItem(nil, AddItemInput{ProductID: 1, ProductName: "Serum", PricePerUnit: models.NewMoneyFromFloat(500), Quantity: 1})
	if _, err := orders.SaveOrder(SaveOrderInput{
		OrderID:       order.ID,
		Role:          constants.RoleBackoffice,
		Status:        constants.OrderStatusPending,
		PaymentStatus: constants.PaymentStatusPendingVerification,
		Items:         items,
	}); err != nil {
		t.Fatalf("seed save failed: %v", err)
	}

	uploaded := make([]models.Slip, 0, 2)
	for i := 0; i < 2; i++ {
		slip, err := slips.UploadSlip(UploadSlipInput{OrderID: order.ID, ImagePath: fmt.Sprintf("slips/%d.jpg", i)})
		if err != nil {
			t.Fatalf("upload slip failed: %v", err)
		}
		uploaded = append(uploaded, *slip)
	}
	return order, uploaded
}

func completeSlip(slip models.Slip, amount float64, checked bool) models.Slip {
	money := models.NewMoneyFromFloat(amount)
	bank := uint(1)
	date := time.Now()
	slip.Amount = &money
	slip.BankAccountID = &bank
	slip.TransferDate = &date
	slip.Checked = checked
	return slip
}

func TestAcceptVerificationRequiresCheckedSlip(t *testing.T) {
	slips, orders, db := setupSlipServiceTest(t)
	order, uploaded := seedVerifiableOrder(t, orders, slips, db)

	_, err := slips.AcceptVerification(AcceptVerificationInput{
		OrderID: order.ID,
		ActorID: 1,
		Slips:   []models.Slip{completeSlip(uploaded[0], 500, false)},
	})
	if !errors.Is(err, ErrNoCheckedSlips) {
		t.Fatalf("expected ErrNoCheckedSlips, got %v", err)
	}
}

func TestAcceptVerificationRequiresCompleteCheckedSlips(t *testing.T) {
	slips, orders, db := setupSlipServiceTest(t)
	order, uploaded := seedVerifiableOrder(t, orders, slips, db)

	incomplete := uploaded[0]
	incomplete.Checked = true // 三要素缺失
	_, err := slips.AcceptVerification(AcceptVerificationInput{
		OrderID: order.ID,
		ActorID: 1,
		Slips:   []models.Slip{incomplete},
	})
	if !errors.Is(err, ErrSlipIncomplete) {
		t.Fatalf("expected ErrSlipIncomplete, got %v", err)
	}

	// 未通过门禁时订单不得被改动
	reloaded, err := orders.GetOrder(order.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Order.PaymentStatus != constants.PaymentStatusPendingVerification {
		t.Fatalf("failed accept must not touch payment status, got %s", reloaded.Order.PaymentStatus)
	}
}

func TestAcceptVerificationUsesSlipSum(t *testing.T) {
	slips, orders, db := setupSlipServiceTest(t)
	order, uploaded := seedVerifiableOrder(t, orders, slips, db)

	detail, err := slips.AcceptVerification(AcceptVerificationInput{
		OrderID:   order.ID,
		ActorID:   9,
		ActorName: "Finance Fon",
		Slips: []models.Slip{
			completeSlip(uploaded[0], 300, true),
			completeSlip(uploaded[1], 150, true),
		},
	})
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if detail.Order.AmountPaid.String() != "450.00" {
		t.Fatalf("paid amount must equal checked sum, got %s", detail.Order.AmountPaid.String())
	}
	if detail.Order.PaymentStatus != constants.PaymentStatusVerified {
		t.Fatalf("expected verified, got %s", detail.Order.PaymentStatus)
	}
	if detail.Order.VerifiedByName != "Finance Fon" || detail.Order.VerifiedAt == nil {
		t.Fatalf("verification stamp missing: %+v", detail.Order)
	}

	// 元数据在核帐时整批落库
	stored, err := slips.ListSlips(order.ID)
	if err != nil {
		t.Fatalf("list slips failed: %v", err)
	}
	for _, slip := range stored {
		if !slip.Checked || slip.Amount == nil {
			t.Fatalf("slip metadata not flushed: %+v", slip)
		}
	}
}

func TestAcceptVerificationKeepsHigherExistingPaid(t *testing.T) {
	slips, orders, db := setupSlipServiceTest(t)
	order, uploaded := seedVerifiableOrder(t, orders, slips, db)

	if err := db.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("amount_paid", models.NewMoneyFromFloat(600)).Error; err != nil {
		t.Fatalf("seed paid failed: %v", err)
	}

	detail, err := slips.AcceptVerification(AcceptVerificationInput{
		OrderID: order.ID,
		ActorID: 1,
		Slips:   []models.Slip{completeSlip(uploaded[0], 450, true)},
	})
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if detail.Order.AmountPaid.String() != "600.00" {
		t.Fatalf("existing higher paid amount must win, got %s", detail.Order.AmountPaid.String())
	}
}

func TestCancelVerificationOnlyWhilePending(t *testing.T) {
	slips, orders, db := setupSlipServiceTest(t)
	order, uploaded := seedVerifiableOrder(t, orders, slips, db)

	if _, err := slips.AcceptVerification(AcceptVerificationInput{
		OrderID: order.ID,
		ActorID: 1,
		Slips:   []models.Slip{completeSlip(uploaded[0], 500, true)},
	}); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	if err := slips.CancelVerification(order.ID); err != nil {
		t.Fatalf("cancel while pending must pass: %v", err)
	}
	reloaded, _ := orders.GetOrder(order.ID)
	if reloaded.Order.PaymentStatus != constants.PaymentStatusPendingVerification {
		t.Fatalf("cancel must revert to pending_verification, got %s", reloaded.Order.PaymentStatus)
	}
	if reloaded.Order.AmountPaid.String() != "0.00" {
		t.Fatalf("cancel must clear paid amount, got %s", reloaded.Order.AmountPaid.String())
	}

	if err := db.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("status", constants.OrderStatusPreparing).Error; err != nil {
		t.Fatalf("seed status failed: %v", err)
	}
	if err := slips.CancelVerification(order.ID); !errors.Is(err, ErrVerificationNotCancelable) {
		t.Fatalf("expected ErrVerificationNotCancelable once preparing, got %v", err)
	}
}

func TestDeleteSlipRules(t *testing.T) {
	slips, orders, db := setupSlipServiceTest(t)
	order, uploaded := seedVerifiableOrder(t, orders, slips, db)

	if err := slips.DeleteSlip(uploaded[0].ID, constants.RoleSale); err != nil {
		t.Fatalf("delete before verification must pass: %v", err)
	}

	if _, err := slips.AcceptVerification(AcceptVerificationInput{
		OrderID: order.ID,
		ActorID: 1,
		Slips:   []models.Slip{completeSlip(uploaded[1], 500, true)},
	}); err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if err := slips.DeleteSlip(uploaded[1].ID, constants.RoleFinance); !errors.Is(err, ErrSlipNotDeletable) {
		t.Fatalf("expected ErrSlipNotDeletable once verified, got %v", err)
	}
}

func TestUpdateSlipLockedAfterVerification(t *testing.T) {
	slips, orders, db := setupSlipServiceTest(t)
	order, uploaded := seedVerifiableOrder(t, orders, slips, db)

	if _, err := slips.AcceptVerification(AcceptVerificationInput{
		OrderID: order.ID,
		ActorID: 1,
		Slips:   []models.Slip{completeSlip(uploaded[0], 500, true)},
	}); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	rewritten := completeSlip(uploaded[0], 1, true)
	_, err := slips.UpdateSlip(UpdateSlipInput{
		SlipID:        rewritten.ID,
		Role:          constants.RoleFinance,
		Amount:        rewritten.Amount,
		BankAccountID: rewritten.BankAccountID,
		TransferDate:  rewritten.TransferDate,
		Checked:       true,
	})
	if !errors.Is(err, ErrSlipNotEditable) {
		t.Fatalf("expected ErrSlipNotEditable once verified, got %v", err)
	}

	// 核实后的凭证金额必须保持原样
	stored, err := slips.ListSlips(order.ID)
	if err != nil {
		t.Fatalf("list slips failed: %v", err)
	}
	for _, slip := range stored {
		if slip.ID == uploaded[0].ID && slip.Amount.String() != "500.00" {
			t.Fatalf("verified slip amount must stay 500.00, got %s", slip.Amount.String())
		}
	}
}

func TestUpdateSlipRespectsRoleLock(t *testing.T) {
	slips, orders, db := setupSlipServiceTest(t)
	order, uploaded := seedVerifiableOrder(t, orders, slips, db)

	if err := db.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("status", constants.OrderStatusShipping).Error; err != nil {
		t.Fatalf("seed status failed: %v", err)
	}

	edit := completeSlip(uploaded[0], 500, false)
	if _, err := slips.UpdateSlip(UpdateSlipInput{
		SlipID:        edit.ID,
		Role:          constants.RoleSale,
		Amount:        edit.Amount,
		BankAccountID: edit.BankAccountID,
		TransferDate:  edit.TransferDate,
	}); !errors.Is(err, ErrOrderLocked) {
		t.Fatalf("expected ErrOrderLocked for sale on shipping order, got %v", err)
	}

	if _, err := slips.UpdateSlip(UpdateSlipInput{
		SlipID:        edit.ID,
		Role:          constants.RoleFinance,
		Amount:        edit.Amount,
		BankAccountID: edit.BankAccountID,
		TransferDate:  edit.TransferDate,
	}); err != nil {
		t.Fatalf("privileged role must still edit slips while shipping: %v", err)
	}
}

func TestUpdateSlipRejectsCheckedIncomplete(t *testing.T) {
	slips, orders, db := setupSlipServiceTest(t)
	_, uploaded := seedVerifiableOrder(t, orders, slips, db)

	amount := models.NewMoneyFromFloat(500)
	_, err := slips.UpdateSlip(UpdateSlipInput{
		SlipID:  uploaded[0].ID,
		Role:    constants.RoleFinance,
		Amount:  &amount,
		Checked: true, // 缺收款账户与转账日期
	})
	if !errors.Is(err, ErrSlipIncomplete) {
		t.Fatalf("expected ErrSlipIncomplete, got %v", err)
	}
}

func TestSetCheckedRequiresCompleteSlip(t *testing.T) {
	slips, orders, db := setupSlipServiceTest(t)
	_, uploaded := seedVerifiableOrder(t, orders, slips, db)

	if err := slips.SetChecked(uploaded[0].ID, true); !errors.Is(err, ErrSlipIncomplete) {
		t.Fatalf("expected ErrSlipIncomplete for fresh slip, got %v", err)
	}
	// 取消勾选不受三要素限制
	if err := slips.SetChecked(uploaded[0].ID, false); err != nil {
		t.Fatalf("uncheck must pass on incomplete slip: %v", err)
	}

	complete := completeSlip(uploaded[0], 500, false)
	if _, err := slips.UpdateSlip(UpdateSlipInput{
		SlipID:        complete.ID,
		Role:          constants.RoleFinance,
		Amount:        complete.Amount,
		BankAccountID: complete.BankAccountID,
		TransferDate:  complete.TransferDate,
	}); err != nil {
		t.Fatalf("complete slip failed: %v", err)
	}
	if err := slips.SetChecked(uploaded[0].ID, true); err != nil {
		t.Fatalf("check on complete slip must pass: %v", err)
	}
}

func TestReconcileSummaryOutcomes(t *testing.T) {
	slips, orders, db := setupSlipServiceTest(t)
	order, uploaded := seedVerifiableOrder(t, orders, slips, db)

	flushed := completeSlip(uploaded[0], 450, true)
	if _, err := slips.UpdateSlip(UpdateSlipInput{
		SlipID:        flushed.ID,
		Role:          constants.RoleFinance,
		Amount:        flushed.Amount,
		BankAccountID: flushed.BankAccountID,
		TransferDate:  flushed.TransferDate,
		Checked:       true,
	}); err != nil {
		t.Fatalf("update slip failed: %v", err)
	}

	summary, err := slips.Summary(order.ID)
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if summary.Outcome != "shortfall" {
		t.Fatalf("expected shortfall, got %s", summary.Outcome)
	}
	if summary.Difference.String() != "-50.00" {
		t.Fatalf("expected difference -50.00, got %s", summary.Difference.String())
	}

	exact := completeSlip(uploaded[1], 50, true)
	if _, err := slips.UpdateSlip(UpdateSlipInput{
		SlipID:        exact.ID,
		Role:          constants.RoleFinance,
		Amount:        exact.Amount,
		BankAccountID: exact.BankAccountID,
		TransferDate:  exact.TransferDate,
		Checked:       true,
	}); err != nil {
		t.Fatalf("update slip failed: %v", err)
	}
	summary, err = slips.Summary(order.ID)
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if summary.Outcome != "exact" {
		t.Fatalf("expected exact, got %s", summary.Outcome)
	}
}
