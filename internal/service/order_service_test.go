package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/salesdesk-next/internal/constants"
	"github.com/salesdesk-next/internal/models"
	"github.com/salesdesk-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupOrderServiceTest(t *testing.T) (*OrderService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Customer{}, &models.Product{}, &models.Promotion{}, &models.PromotionLine{}, &models.Order{}, &models.OrderItem{}, &models.Box{}, &models.Slip{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	svc := NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewCustomerRepository(db),
		repository.NewProductRepository(db),
		repository.NewPromotionRepository(db),
		"",
	)
	return svc, db
}

func createTestOrder(t *testing.T, svc *OrderService, db *gorm.DB, method string) *models.Order {
	t.Helper()
	customer := models.Customer{Name: "Somchai"}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("create customer failed: %v", err)
	}
	order, err := svc.CreateOrder(CreateOrderInput{
		CompanyID:     1,
		CustomerID:    customer.ID,
		PaymentMethod: method,
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func TestCreateOrderDefaults(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	order := createTestOrder(t, svc, db, "")

	if order.Status != constants.OrderStatusPending {
		t.Fatalf("new order must start pending, got %s", order.Status)
	}
	if order.PaymentStatus != constants.PaymentStatusUnpaid {
		t.Fatalf("new order must start unpaid, got %s", order.PaymentStatus)
	}
	if order.Currency != constants.SiteCurrencyDefault {
		t.Fatalf("expected default currency, got %s", order.Currency)
	}

	detail, err := svc.GetOrder(order.ID)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if len(detail.Order.Boxes) != 1 {
		t.Fatalf("new order must start with one box, got %d", len(detail.Order.Boxes))
	}
}

func TestSaveOrderRecomputesAndRehydrates(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	order := createTestOrder(t, svc, db, constants.PaymentMethodTransfer)

	items, err := AddItem(nil, AddItemInput{ProductID: 1, ProductName: "Serum", PricePerUnit: models.NewMoneyFromFloat(100), Quantity: 2})
	if err != nil {
		t.Fatalf("AddItem error: %v", err)
	}

	detail, err := svc.SaveOrder(SaveOrderInput{
		OrderID:       order.ID,
		Role:          constants.RoleBackoffice,
		Status:        constants.OrderStatusPending,
		PaymentStatus: constants.PaymentStatusUnpaid,
		ShippingCost:  models.NewMoneyFromFloat(40),
		BillDiscount:  models.NewMoneyFromFloat(10),
		Items:         items,
		Boxes:         []models.Box{{BoxNumber: 1}},
	})
	if err != nil {
		t.Fatalf("save order failed: %v", err)
	}
	if detail.Totals.Total.String() != "230.00" {
		t.Fatalf("expected total 230.00, got %s", detail.Totals.Total.String())
	}

	// 重新读取后重算得到同样的金额
	reloaded, err := svc.GetOrder(order.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Totals.Total.String() != "230.00" {
		t.Fatalf("rehydrated total drifted: %s", reloaded.Totals.Total.String())
	}
	if len(reloaded.Order.Items) != 1 || reloaded.Order.Items[0].Uid != items[0].Uid {
		t.Fatalf("item uid must survive the round trip: %+v", reloaded.Order.Items)
	}
}

func TestSaveOrderCODBoxGate(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	order := createTestOrder(t, svc, db, constants.PaymentMethodCOD)

	items, _ := AddItem(nil, AddItemInput{ProductID: 1, ProductName: "Serum", PricePerUnit: models.NewMoneyFromFloat(250), Quantity: 2})

	_, err := svc.SaveOrder(SaveOrderInput{
		OrderID:       order.ID,
		Role:          constants.RoleBackoffice,
		Status:        constants.OrderStatusPending,
		PaymentStatus: constants.PaymentStatusUnpaid,
		Items:         items,
		Boxes: []models.Box{
			{BoxNumber: 1, CollectionAmount: models.NewMoneyFromFloat(250)},
			{BoxNumber: 2, CollectionAmount: models.NewMoneyFromFloat(249.99)},
		},
	})
	if !errors.Is(err, ErrBoxSumMismatch) {
		t.Fatalf("expected ErrBoxSumMismatch, got %v", err)
	}

	// 校验失败不得落库
	var count int64
	db.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Count(&count)
	if count != 0 {
		t.Fatalf("failed save must not persist items, found %d", count)
	}

	// 容差内通过
	if _, err := svc.SaveOrder(SaveOrderInput{
		OrderID:       order.ID,
		Role:          constants.RoleBackoffice,
		Status:        constants.OrderStatusPending,
		PaymentStatus: constants.PaymentStatusUnpaid,
		Items:         items,
		Boxes: []models.Box{
			{BoxNumber: 1, CollectionAmount: models.NewMoneyFromFloat(250)},
			{BoxNumber: 2, CollectionAmount: models.NewMoneyFromFloat(250)},
		},
	}); err != nil {
		t.Fatalf("matching boxes must save: %v", err)
	}
}

func TestSaveOrderLockedForNonPrivileged(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	order := createTestOrder(t, svc, db, constants.PaymentMethodTransfer)

	if err := db.Model(&models.Order{}).Where("id = ?", order.ID).Update("status", constants.OrderStatusShipping).Error; err != nil {
		t.Fatalf("seed status failed: %v", err)
	}

	_, err := svc.SaveOrder(SaveOrderInput{
		OrderID:       order.ID,
		Role:          constants.RoleSale,
		Status:        constants.OrderStatusShipping,
		PaymentStatus: constants.PaymentStatusUnpaid,
	})
	if !errors.Is(err, ErrOrderLocked) {
		t.Fatalf("expected ErrOrderLocked for sale on shipping order, got %v", err)
	}

	if err := svc.UpdateStatus(order.ID, constants.RoleSale, constants.OrderStatusPending); !errors.Is(err, ErrStatusNotAllowed) {
		t.Fatalf("shipping -> pending must be denied for sale, got %v", err)
	}
}

func TestSaveOrderPreconditions(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	order := createTestOrder(t, svc, db, constants.PaymentMethodTransfer)

	items, _ := AddItem(nil, AddItemInput{ProductID: 1, PricePerUnit: models.NewMoneyFromFloat(100), Quantity: 1})

	_, err := svc.SaveOrder(SaveOrderInput{
		OrderID:       order.ID,
		Role:          constants.RoleBackoffice,
		Status:        constants.OrderStatusAwaitingVerification,
		PaymentStatus: constants.PaymentStatusUnpaid,
		Items:         items,
	})
	if !errors.Is(err, ErrAwaitingNeedsPayment) {
		t.Fatalf("expected ErrAwaitingNeedsPayment, got %v", err)
	}

	_, err = svc.SaveOrder(SaveOrderInput{
		OrderID:       order.ID,
		Role:          constants.RoleBackoffice,
		Status:        constants.OrderStatusPreApproved,
		PaymentStatus: constants.PaymentStatusUnpaid,
		Items:         items,
	})
	if !errors.Is(err, ErrPreApprovedUnpaid) {
		t.Fatalf("expected ErrPreApprovedUnpaid, got %v", err)
	}
}
