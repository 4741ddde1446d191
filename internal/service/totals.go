package service

import (
	"github.com/salesdesk-next/internal/models"

	"github.com/shopspring/decimal"
)

// moneyEpsilon 金额比较容差
var moneyEpsilon = decimal.NewFromFloat(0.01)

// OrderTotals 订单金额汇总（每次读取实时计算，不信存档值）
type OrderTotals struct {
	ItemsSubtotal models.Money `json:"items_subtotal"`
	ItemsDiscount models.Money `json:"items_discount"`
	BillDiscount  models.Money `json:"bill_discount"`
	ShippingCost  models.Money `json:"shipping_cost"`
	Total         models.Money `json:"total"`
}

// isBillable 计费行：非赠品且非促销子项（子项金额已并入父项单价）
func isBillable(item models.OrderItem) bool {
	return !item.IsFreebie && item.ParentUID == ""
}

// CalculateTotals 计算订单金额。
// total = max(0, 商品小计 − 整单折扣 + 运费)。
func CalculateTotals(items []models.OrderItem, billDiscount, shippingCost models.Money) OrderTotals {
	subtotal := decimal.Zero
	itemsDiscount := decimal.Zero
	for _, item := range items {
		if !isBillable(item) {
			continue
		}
		line := item.PricePerUnit.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity))).Sub(item.Discount.Decimal)
		subtotal = subtotal.Add(line)
		itemsDiscount = itemsDiscount.Add(item.Discount.Decimal)
	}

	total := subtotal.Sub(billDiscount.Decimal).Add(shippingCost.Decimal)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return OrderTotals{
		ItemsSubtotal: models.NewMoneyFromDecimal(subtotal),
		ItemsDiscount: models.NewMoneyFromDecimal(itemsDiscount),
		BillDiscount:  billDiscount,
		ShippingCost:  shippingCost,
		Total:         models.NewMoneyFromDecimal(total),
	}
}

// moneyEqual 按容差比较两个金额
func moneyEqual(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(moneyEpsilon)
}
