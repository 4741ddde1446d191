package service

import (
	"testing"

	"github.com/salesdesk-next/internal/models"
)

func TestCalculateTotalsSkipsFreebiesAndPromotionChildren(t *testing.T) {
	items := []models.OrderItem{
		{Uid: "a", PricePerUnit: models.NewMoneyFromFloat(100), Quantity: 2},
		{Uid: "b", PricePerUnit: models.NewMoneyFromFloat(50), Quantity: 1, IsFreebie: true},
		{Uid: "p", PricePerUnit: models.NewMoneyFromFloat(300), Quantity: 1, IsPromotionParent: true},
		{Uid: "c", ParentUID: "p", PricePerUnit: models.NewMoneyFromFloat(100), Quantity: 2},
	}
	totals := CalculateTotals(items, models.MoneyZero(), models.MoneyZero())
	// 100×2 + 促销父项 300；赠品与促销子项不计费
	if totals.Total.String() != "500.00" {
		t.Fatalf("expected total 500.00, got %s", totals.Total.String())
	}
}

func TestCalculateTotalsAppliesDiscountsAndShipping(t *testing.T) {
	items := []models.OrderItem{
		{Uid: "a", PricePerUnit: models.NewMoneyFromFloat(200), Quantity: 1, Discount: models.NewMoneyFromFloat(20)},
	}
	totals := CalculateTotals(items, models.NewMoneyFromFloat(30), models.NewMoneyFromFloat(40))
	if totals.ItemsSubtotal.String() != "180.00" {
		t.Fatalf("expected subtotal 180.00, got %s", totals.ItemsSubtotal.String())
	}
	if totals.ItemsDiscount.String() != "20.00" {
		t.Fatalf("expected items discount 20.00, got %s", totals.ItemsDiscount.String())
	}
	if totals.Total.String() != "190.00" {
		t.Fatalf("expected total 190.00, got %s", totals.Total.String())
	}
}

func TestCalculateTotalsClampsAtZero(t *testing.T) {
	items := []models.OrderItem{
		{Uid: "a", PricePerUnit: models.NewMoneyFromFloat(10), Quantity: 1},
	}
	totals := CalculateTotals(items, models.NewMoneyFromFloat(100), models.MoneyZero())
	if totals.Total.String() != "0.00" {
		t.Fatalf("expected clamped total 0.00, got %s", totals.Total.String())
	}
}

func TestCalculateTotalsOrderIndependent(t *testing.T) {
	a := models.OrderItem{Uid: "a", PricePerUnit: models.NewMoneyFromFloat(19.99), Quantity: 3}
	b := models.OrderItem{Uid: "b", PricePerUnit: models.NewMoneyFromFloat(7.35), Quantity: 7, Discount: models.NewMoneyFromFloat(1.05)}
	c := models.OrderItem{Uid: "c", PricePerUnit: models.NewMoneyFromFloat(250), Quantity: 1}

	forward := CalculateTotals([]models.OrderItem{a, b, c}, models.NewMoneyFromFloat(5), models.NewMoneyFromFloat(12.50))
	backward := CalculateTotals([]models.OrderItem{c, b, a}, models.NewMoneyFromFloat(5), models.NewMoneyFromFloat(12.50))
	if forward.Total.String() != backward.Total.String() {
		t.Fatalf("total depends on item order: %s vs %s", forward.Total.String(), backward.Total.String())
	}
}

func TestCalculateTotalsRecomputeStable(t *testing.T) {
	items := []models.OrderItem{
		{Uid: "a", PricePerUnit: models.NewMoneyFromFloat(33.33), Quantity: 3},
	}
	first := CalculateTotals(items, models.MoneyZero(), models.MoneyZero())
	second := CalculateTotals(items, first.BillDiscount, first.ShippingCost)
	if first.Total.String() != second.Total.String() {
		t.Fatalf("recompute changed total: %s vs %s", first.Total.String(), second.Total.String())
	}
}
