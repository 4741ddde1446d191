package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/salesdesk-next/internal/models"
)

func TestSetBoxCountGrowAndShrink(t *testing.T) {
	boxes, err := SetBoxCount(nil, 3)
	if err != nil {
		t.Fatalf("SetBoxCount error: %v", err)
	}
	if len(boxes) != 3 || boxes[2].BoxNumber != 3 {
		t.Fatalf("unexpected boxes after grow: %+v", boxes)
	}

	boxes[0].CollectionAmount = models.NewMoneyFromFloat(120)
	boxes, err = SetBoxCount(boxes, 2)
	if err != nil {
		t.Fatalf("SetBoxCount shrink error: %v", err)
	}
	if len(boxes) != 2 {
		t.Fatalf("expected 2 boxes after shrink, got %d", len(boxes))
	}
	if boxes[0].CollectionAmount.String() != "120.00" {
		t.Fatalf("shrink must not touch surviving amounts, got %s", boxes[0].CollectionAmount.String())
	}

	if _, err := SetBoxCount(boxes, 0); err != ErrBoxCountInvalid {
		t.Fatalf("expected ErrBoxCountInvalid, got %v", err)
	}
}

func TestDivideEquallyRemainderGoesToLastBox(t *testing.T) {
	boxes, _ := SetBoxCount(nil, 3)
	boxes = DivideEqually(boxes, models.NewMoneyFromFloat(100))

	if boxes[0].CollectionAmount.String() != "33.33" {
		t.Fatalf("expected first box 33.33, got %s", boxes[0].CollectionAmount.String())
	}
	if boxes[1].CollectionAmount.String() != "33.33" {
		t.Fatalf("expected second box 33.33, got %s", boxes[1].CollectionAmount.String())
	}
	if boxes[2].CollectionAmount.String() != "33.34" {
		t.Fatalf("expected last box 33.34, got %s", boxes[2].CollectionAmount.String())
	}
	if err := ValidateBoxes(boxes, models.NewMoneyFromFloat(100)); err != nil {
		t.Fatalf("divided boxes must pass validation: %v", err)
	}
}

func TestDivideEquallySingleBox(t *testing.T) {
	boxes, _ := SetBoxCount(nil, 1)
	boxes = DivideEqually(boxes, models.NewMoneyFromFloat(59.97))
	if boxes[0].CollectionAmount.String() != "59.97" {
		t.Fatalf("expected full amount on single box, got %s", boxes[0].CollectionAmount.String())
	}
}

func TestValidateBoxesMismatchNamesBothAmounts(t *testing.T) {
	boxes := []models.Box{
		{BoxNumber: 1, CollectionAmount: models.NewMoneyFromFloat(250)},
		{BoxNumber: 2, CollectionAmount: models.NewMoneyFromFloat(249.99)},
	}
	err := ValidateBoxes(boxes, models.NewMoneyFromFloat(500))
	if !errors.Is(err, ErrBoxSumMismatch) {
		t.Fatalf("expected ErrBoxSumMismatch, got %v", err)
	}
	if !strings.Contains(err.Error(), "499.99") || !strings.Contains(err.Error(), "500.00") {
		t.Fatalf("error must name both amounts: %v", err)
	}
}

func TestValidateBoxesWithinEpsilon(t *testing.T) {
	boxes := []models.Box{
		{BoxNumber: 1, CollectionAmount: models.NewMoneyFromFloat(500.01)},
	}
	if err := ValidateBoxes(boxes, models.NewMoneyFromFloat(500)); err != nil {
		t.Fatalf("0.01 difference is within tolerance: %v", err)
	}
}

func TestBoxRemainingClampsAtZero(t *testing.T) {
	box := models.Box{
		CollectionAmount: models.NewMoneyFromFloat(100),
		CollectedAmount:  models.NewMoneyFromFloat(70),
		WaivedAmount:     models.NewMoneyFromFloat(10),
	}
	if got := BoxRemaining(box); got.String() != "20.00" {
		t.Fatalf("expected remaining 20.00, got %s", got.String())
	}

	box.CollectedAmount = models.NewMoneyFromFloat(200)
	if got := BoxRemaining(box); got.String() != "0.00" {
		t.Fatalf("over-collection must clamp at 0.00, got %s", got.String())
	}
}

func TestDistributePaidProportionalDisplay(t *testing.T) {
	boxes := []models.Box{
		{BoxNumber: 1, CollectionAmount: models.NewMoneyFromFloat(100)},
		{BoxNumber: 2, CollectionAmount: models.NewMoneyFromFloat(200)},
	}
	shares := DistributePaid(boxes, models.NewMoneyFromFloat(150))
	if shares[0].String() != "50.00" {
		t.Fatalf("expected first share 50.00, got %s", shares[0].String())
	}
	if shares[1].String() != "100.00" {
		t.Fatalf("expected last share to absorb the remainder, got %s", shares[1].String())
	}
}

func TestDistributePaidPrefersActualCollections(t *testing.T) {
	boxes := []models.Box{
		{BoxNumber: 1, CollectionAmount: models.NewMoneyFromFloat(100), CollectedAmount: models.NewMoneyFromFloat(80)},
		{BoxNumber: 2, CollectionAmount: models.NewMoneyFromFloat(200)},
	}
	shares := DistributePaid(boxes, models.NewMoneyFromFloat(150))
	if shares[0].String() != "80.00" || shares[1].String() != "0.00" {
		t.Fatalf("actual collections must win over the proportional split, got %+v", shares)
	}
}
