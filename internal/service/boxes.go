package service

import (
	"fmt"

	"github.com/salesdesk-next/internal/models"

	"github.com/shopspring/decimal"
)

// SetBoxCount 调整包裹箱数量。扩箱补零金额新箱，缩箱从尾部截断，已有箱金额保持不变。
func SetBoxCount(boxes []models.Box, count int) ([]models.Box, error) {
	if count < 1 {
		return nil, ErrBoxCountInvalid
	}
	if count <= len(boxes) {
		return boxes[:count], nil
	}
	for n := len(boxes) + 1; n <= count; n++ {
		boxes = append(boxes, models.Box{BoxNumber: n})
	}
	return boxes, nil
}

// DivideEqually 将订单总额平摊到各箱。
// 前 n−1 箱按分位向下取整，余数全部归入最后一箱，保证箱金额之和恰等于总额。
func DivideEqually(boxes []models.Box, total models.Money) []models.Box {
	n := len(boxes)
	if n == 0 {
		return boxes
	}
	if n == 1 {
		boxes[0].CollectionAmount = total
		return boxes
	}

	perBox := total.Decimal.Div(decimal.NewFromInt(int64(n))).RoundDown(2)
	assigned := decimal.Zero
	for i := 0; i < n-1; i++ {
		boxes[i].CollectionAmount = models.NewMoneyFromDecimal(perBox)
		assigned = assigned.Add(perBox)
	}
	boxes[n-1].CollectionAmount = models.NewMoneyFromDecimal(total.Decimal.Sub(assigned))
	return boxes
}

// ValidateBoxes 校验货到付款订单的箱代收金额之和是否等于订单总额（容差 0.01）。
// 校验失败阻断保存，错误信息同时给出两侧金额。
func ValidateBoxes(boxes []models.Box, total models.Money) error {
	sum := decimal.Zero
	for _, box := range boxes {
		sum = sum.Add(box.CollectionAmount.Decimal)
	}
	if !moneyEqual(sum, total.Decimal) {
		return fmt.Errorf("%w: boxes sum %s, order total %s",
			ErrBoxSumMismatch, sum.Round(2).StringFixed(2), total.String())
	}
	return nil
}

// BoxRemaining 单箱待回款金额 = max(0, 应代收 − 已回款 − 已豁免)
func BoxRemaining(box models.Box) models.Money {
	remaining := box.CollectionAmount.Decimal.
		Sub(box.CollectedAmount.Decimal).
		Sub(box.WaivedAmount.Decimal)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	return models.NewMoneyFromDecimal(remaining)
}

// DistributePaid 按箱代收金额权重展示已付金额的分摊（仅展示，不落库）。
// 只要有任意一箱录入了实际回款，则以实际回款为准，不做推算。
func DistributePaid(boxes []models.Box, amountPaid models.Money) []models.Money {
	result := make([]models.Money, len(boxes))
	if len(boxes) == 0 {
		return result
	}

	totalCollection := decimal.Zero
	for _, box := range boxes {
		if box.CollectedAmount.Decimal.IsPositive() {
			for i, b := range boxes {
				result[i] = b.CollectedAmount
			}
			return result
		}
		totalCollection = totalCollection.Add(box.CollectionAmount.Decimal)
	}
	if totalCollection.IsZero() {
		return result
	}

	assigned := decimal.Zero
	for i := range boxes {
		if i == len(boxes)-1 {
			result[i] = models.NewMoneyFromDecimal(amountPaid.Decimal.Sub(assigned))
			break
		}
		share := amountPaid.Decimal.
			Mul(boxes[i].CollectionAmount.Decimal).
			Div(totalCollection).
			RoundDown(2)
		result[i] = models.NewMoneyFromDecimal(share)
		assigned = assigned.Add(share)
	}
	return result
}
