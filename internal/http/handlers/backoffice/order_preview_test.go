package backoffice

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/salesdesk-next/internal/models"
	"github.com/salesdesk-next/internal/provider"
	"github.com/salesdesk-next/internal/repository"
	"github.com/salesdesk-next/internal/service"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupPreviewHandlerTest(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	handler := New(&provider.Container{
		ProductRepo: repository.NewProductRepository(db),
	})
	return handler, db
}

func TestPreviewAddItemDefaultsQuantity(t *testing.T) {
	handler, db := setupPreviewHandlerTest(t)
	product := models.Product{SKU: "SRM-001", Name: "Vitamin C Serum", Price: models.NewMoneyFromFloat(590), IsActive: true}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("seed product failed: %v", err)
	}

	// 未带数量时按 1 追加
	items, _, err := handler.applyPreviewOp(nil, nil, models.MoneyZero(), models.MoneyZero(), PreviewOp{
		Action:    previewActionAddItem,
		ProductID: product.ID,
	})
	if err != nil {
		t.Fatalf("add_item without quantity failed: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 1 {
		t.Fatalf("expected one item with quantity 1, got %+v", items)
	}

	items, _, err = handler.applyPreviewOp(items, nil, models.MoneyZero(), models.MoneyZero(), PreviewOp{
		Action:    previewActionAddItem,
		ProductID: product.ID,
		Quantity:  3,
	})
	if err != nil {
		t.Fatalf("add_item with quantity failed: %v", err)
	}
	if len(items) != 2 || items[1].Quantity != 3 {
		t.Fatalf("explicit quantity must be kept, got %+v", items)
	}
}

func TestPreviewAddItemUnknownProduct(t *testing.T) {
	handler, _ := setupPreviewHandlerTest(t)

	_, _, err := handler.applyPreviewOp(nil, nil, models.MoneyZero(), models.MoneyZero(), PreviewOp{
		Action:    previewActionAddItem,
		ProductID: 42,
	})
	if !errors.Is(err, service.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}
