package worker

import (
	"testing"

	"github.com/salesdesk-next/internal/constants"
	"github.com/salesdesk-next/internal/models"
)

func TestOrderOutstandingNilOrder(t *testing.T) {
	if got := orderOutstanding(nil); got.Decimal.IsPositive() {
		t.Fatalf("expected zero outstanding for nil order, got %s", got.Decimal.String())
	}
}

func TestOrderOutstandingSumsBoxRemainders(t *testing.T) {
	order := &models.Order{
		Boxes: []models.Box{
			{CollectionAmount: models.NewMoneyFromFloat(500), CollectedAmount: models.NewMoneyFromFloat(200)},
			{CollectionAmount: models.NewMoneyFromFloat(300), WaivedAmount: models.NewMoneyFromFloat(300)},
			{CollectionAmount: models.NewMoneyFromFloat(100)},
		},
	}

	got := orderOutstanding(order)
	if got.Decimal.StringFixed(2) != "400.00" {
		t.Fatalf("outstanding want 400.00 got %s", got.Decimal.StringFixed(2))
	}
}

func TestIsOrderSettled(t *testing.T) {
	if !isOrderSettled(nil) {
		t.Fatalf("nil order should count as settled")
	}

	paid := &models.Order{
		PaymentStatus: constants.PaymentStatusPaid,
		Boxes: []models.Box{
			{CollectionAmount: models.NewMoneyFromFloat(500)},
		},
	}
	if !isOrderSettled(paid) {
		t.Fatalf("paid order should count as settled regardless of box balance")
	}

	open := &models.Order{
		PaymentStatus: constants.PaymentStatusPartial,
		Boxes: []models.Box{
			{CollectionAmount: models.NewMoneyFromFloat(500), CollectedAmount: models.NewMoneyFromFloat(100)},
		},
	}
	if isOrderSettled(open) {
		t.Fatalf("order with box balance should not be settled")
	}

	collected := &models.Order{
		PaymentStatus: constants.PaymentStatusPartial,
		Boxes: []models.Box{
			{CollectionAmount: models.NewMoneyFromFloat(500), CollectedAmount: models.NewMoneyFromFloat(500)},
		},
	}
	if !isOrderSettled(collected) {
		t.Fatalf("fully collected order should count as settled")
	}
}
