package service

import (
	"strings"

	"github.com/salesdesk-next/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddItemInput 新增订单项输入
type AddItemInput struct {
	ProductID    uint
	ProductName  string
	PricePerUnit models.Money
	Quantity     int
	Discount     models.Money
	IsFreebie    bool
	BoxNumber    int
}

// AddItem 追加一个独立订单项
func AddItem(items []models.OrderItem, input AddItemInput) ([]models.OrderItem, error) {
	if input.Quantity <= 0 {
		return nil, ErrQuantityInvalid
	}
	boxNumber := input.BoxNumber
	if boxNumber < 1 {
		boxNumber = 1
	}
	item := models.OrderItem{
		Uid:          uuid.NewString(),
		ProductID:    input.ProductID,
		ProductName:  input.ProductName,
		PricePerUnit: input.PricePerUnit,
		Quantity:     input.Quantity,
		Discount:     input.Discount,
		IsFreebie:    input.IsFreebie,
		BoxNumber:    boxNumber,
	}
	return append(items, item), nil
}

// AddPromotion 将促销套装展开为父项 + 子项追加到订单。
// 父项单价为每套非赠品子项覆盖价之和，子项数量 = 每套基准数量 × 套数。
func AddPromotion(items []models.OrderItem, promotion *models.Promotion, quantity int, boxNumber int) ([]models.OrderItem, error) {
	if promotion == nil {
		return nil, ErrPromotionNotFound
	}
	if quantity <= 0 {
		return nil, ErrQuantityInvalid
	}
	if boxNumber < 1 {
		boxNumber = 1
	}

	setPrice := decimal.Zero
	for _, line := range promotion.Lines {
		if line.IsFreebie {
			continue
		}
		setPrice = setPrice.Add(line.OverridePrice.Decimal.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	parentUID := uuid.NewString()
	promotionID := promotion.ID
	parent := models.OrderItem{
		Uid:               parentUID,
		ProductName:       promotion.Name,
		PromotionID:       &promotionID,
		PricePerUnit:      models.NewMoneyFromDecimal(setPrice),
		Quantity:          quantity,
		IsPromotionParent: true,
		BoxNumber:         boxNumber,
	}
	items = append(items, parent)

	for _, line := range promotion.Lines {
		child := models.OrderItem{
			Uid:              uuid.NewString(),
			ParentUID:        parentUID,
			ProductID:        line.ProductID,
			ProductName:      line.ProductName,
			PricePerUnit:     line.OverridePrice,
			OriginalQuantity: line.Quantity,
			Quantity:         line.Quantity * quantity,
			IsFreebie:        line.IsFreebie,
			BoxNumber:        boxNumber,
		}
		items = append(items, child)
	}
	return items, nil
}

// SetItemQuantity 修改订单项数量。
// 促销父项的子项数量为派生值（每套基准数量 × 套数），随父项联动。
func SetItemQuantity(items []models.OrderItem, uid string, quantity int) ([]models.OrderItem, error) {
	if quantity <= 0 {
		return nil, ErrQuantityInvalid
	}
	index := findItemIndex(items, uid)
	if index < 0 {
		return nil, ErrItemNotFound
	}

	items[index].Quantity = quantity
	if items[index].IsPromotionParent {
		for i := range items {
			if items[i].ParentUID != uid {
				continue
			}
			base := items[i].OriginalQuantity
			if base <= 0 {
				base = 1
			}
			items[i].Quantity = base * quantity
		}
	}
	return items, nil
}

// DuplicateItem 复制订单项 count 份，插入在原项（及其子项）之后。
// 副本获得新的 Uid，促销父项的子项整块随之复制并指向新的父 Uid。
func DuplicateItem(items []models.OrderItem, uid string, count int) ([]models.OrderItem, error) {
	if count <= 0 {
		return nil, ErrQuantityInvalid
	}
	index := findItemIndex(items, uid)
	if index < 0 {
		return nil, ErrItemNotFound
	}
	source := items[index]

	// 原项所在整块：父项本身 + 紧随的子项
	block := []models.OrderItem{source}
	blockEnd := index + 1
	if source.IsPromotionParent {
		for _, item := range items {
			if item.ParentUID == uid {
				block = append(block, item)
			}
		}
		for blockEnd < len(items) && items[blockEnd].ParentUID == uid {
			blockEnd++
		}
	}

	clones := make([]models.OrderItem, 0, len(block)*count)
	for c := 0; c < count; c++ {
		newParentUID := uuid.NewString()
		for i, member := range block {
			clone := member
			clone.ID = 0
			if i == 0 {
				clone.Uid = newParentUID
			} else {
				clone.Uid = uuid.NewString()
				clone.ParentUID = newParentUID
			}
			clones = append(clones, clone)
		}
	}

	result := make([]models.OrderItem, 0, len(items)+len(clones))
	result = append(result, items[:blockEnd]...)
	result = append(result, clones...)
	result = append(result, items[blockEnd:]...)
	return result, nil
}

// RemoveItem 按 Uid 删除订单项，促销父项连同其子项一并删除。
func RemoveItem(items []models.OrderItem, uid string) ([]models.OrderItem, error) {
	index := findItemIndex(items, uid)
	if index < 0 {
		return nil, ErrItemNotFound
	}

	result := items[:0:0]
	for _, item := range items {
		if item.Uid == uid || item.ParentUID == uid {
			continue
		}
		result = append(result, item)
	}
	return result, nil
}

// PruneEmptyBoxes 删除不再有任何订单项的包裹箱
func PruneEmptyBoxes(boxes []models.Box, items []models.OrderItem) []models.Box {
	used := make(map[int]bool, len(items))
	for _, item := range items {
		used[item.BoxNumber] = true
	}
	result := boxes[:0:0]
	for _, box := range boxes {
		if used[box.BoxNumber] {
			result = append(result, box)
		}
	}
	return result
}

func findItemIndex(items []models.OrderItem, uid string) int {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return -1
	}
	for i := range items {
		if items[i].Uid == uid {
			return i
		}
	}
	return -1
}
