package service

import (
	"testing"

	"github.com/salesdesk-next/internal/models"
)

func bundlePromotion() *models.Promotion {
	return &models.Promotion{
		ID:   7,
		Name: "Starter Bundle",
		Lines: []models.PromotionLine{
			{ProductID: 1, ProductName: "Serum", Quantity: 2, OverridePrice: models.NewMoneyFromFloat(100)},
			{ProductID: 2, ProductName: "Cream", Quantity: 1, OverridePrice: models.NewMoneyFromFloat(100)},
			{ProductID: 3, ProductName: "Sample Sachet", Quantity: 1, OverridePrice: models.NewMoneyFromFloat(50), IsFreebie: true},
		},
	}
}

func TestAddPromotionExpandsParentAndChildren(t *testing.T) {
	items, err := AddPromotion(nil, bundlePromotion(), 1, 1)
	if err != nil {
		t.Fatalf("AddPromotion error: %v", err)
	}
	if len(items) != 4 {
		t.Fatalf("expected parent + 3 children, got %d items", len(items))
	}

	parent := items[0]
	if !parent.IsPromotionParent {
		t.Fatalf("first item should be the promotion parent: %+v", parent)
	}
	// 每套价格 = 非赠品子项覆盖价之和：2×100 + 1×100，赠品不计
	if parent.PricePerUnit.String() != "300.00" {
		t.Fatalf("expected parent unit price 300.00, got %s", parent.PricePerUnit.String())
	}
	for _, child := range items[1:] {
		if child.ParentUID != parent.Uid {
			t.Fatalf("child not linked to parent: %+v", child)
		}
		if child.Uid == "" || child.Uid == parent.Uid {
			t.Fatalf("child must carry its own uid: %+v", child)
		}
	}
	if !items[3].IsFreebie {
		t.Fatalf("freebie flag lost on sachet child: %+v", items[3])
	}
}

func TestSetItemQuantityDerivesChildQuantities(t *testing.T) {
	items, err := AddPromotion(nil, bundlePromotion(), 1, 1)
	if err != nil {
		t.Fatalf("AddPromotion error: %v", err)
	}

	items, err = SetItemQuantity(items, items[0].Uid, 3)
	if err != nil {
		t.Fatalf("SetItemQuantity error: %v", err)
	}
	if items[0].Quantity != 3 {
		t.Fatalf("expected parent quantity 3, got %d", items[0].Quantity)
	}
	if items[1].Quantity != 6 {
		t.Fatalf("expected serum child quantity 6, got %d", items[1].Quantity)
	}
	if items[2].Quantity != 3 {
		t.Fatalf("expected cream child quantity 3, got %d", items[2].Quantity)
	}

	totals := CalculateTotals(items, models.MoneyZero(), models.MoneyZero())
	if totals.ItemsSubtotal.String() != "900.00" {
		t.Fatalf("expected billable subtotal 900.00 at 3 sets, got %s", totals.ItemsSubtotal.String())
	}
}

func TestSetItemQuantityRejectsNonPositive(t *testing.T) {
	items, _ := AddItem(nil, AddItemInput{ProductID: 1, Quantity: 1, PricePerUnit: models.NewMoneyFromFloat(10)})
	if _, err := SetItemQuantity(items, items[0].Uid, 0); err != ErrQuantityInvalid {
		t.Fatalf("expected ErrQuantityInvalid, got %v", err)
	}
}

func TestDuplicateItemClonesPromotionBlock(t *testing.T) {
	items, err := AddPromotion(nil, bundlePromotion(), 2, 1)
	if err != nil {
		t.Fatalf("AddPromotion error: %v", err)
	}
	items, err = AddItem(items, AddItemInput{ProductID: 9, ProductName: "Tail", Quantity: 1, PricePerUnit: models.NewMoneyFromFloat(5)})
	if err != nil {
		t.Fatalf("AddItem error: %v", err)
	}

	originalUID := items[0].Uid
	items, err = DuplicateItem(items, originalUID, 2)
	if err != nil {
		t.Fatalf("DuplicateItem error: %v", err)
	}
	// 4 原块 + 2 份副本(各 4 行) + 1 独立尾项
	if len(items) != 13 {
		t.Fatalf("expected 13 items after duplication, got %d", len(items))
	}
	if items[len(items)-1].ProductName != "Tail" {
		t.Fatalf("standalone tail item must stay last, got %+v", items[len(items)-1])
	}

	seen := map[string]bool{}
	for _, item := range items {
		if seen[item.Uid] {
			t.Fatalf("duplicated uid %s", item.Uid)
		}
		seen[item.Uid] = true
	}

	firstClone := items[4]
	if firstClone.Uid == originalUID || !firstClone.IsPromotionParent {
		t.Fatalf("expected fresh parent clone right after original block, got %+v", firstClone)
	}
	for _, child := range items[5:8] {
		if child.ParentUID != firstClone.Uid {
			t.Fatalf("clone child must point at clone parent: %+v", child)
		}
	}
	if firstClone.Quantity != 2 {
		t.Fatalf("clone must keep source quantity, got %d", firstClone.Quantity)
	}
}

func TestRemoveItemDropsChildrenAndEmptyBoxes(t *testing.T) {
	items, err := AddPromotion(nil, bundlePromotion(), 1, 2)
	if err != nil {
		t.Fatalf("AddPromotion error: %v", err)
	}
	items, err = AddItem(items, AddItemInput{ProductID: 9, Quantity: 1, PricePerUnit: models.NewMoneyFromFloat(5), BoxNumber: 1})
	if err != nil {
		t.Fatalf("AddItem error: %v", err)
	}

	items, err = RemoveItem(items, items[0].Uid)
	if err != nil {
		t.Fatalf("RemoveItem error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected children removed with the parent, got %d items", len(items))
	}

	boxes := []models.Box{{BoxNumber: 1}, {BoxNumber: 2}}
	boxes = PruneEmptyBoxes(boxes, items)
	if len(boxes) != 1 || boxes[0].BoxNumber != 1 {
		t.Fatalf("expected emptied box 2 to be dropped, got %+v", boxes)
	}
}

func TestRemoveItemUnknownUid(t *testing.T) {
	items, _ := AddItem(nil, AddItemInput{ProductID: 1, Quantity: 1})
	if _, err := RemoveItem(items, "missing"); err != ErrItemNotFound {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}
