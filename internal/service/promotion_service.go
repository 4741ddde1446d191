package service

import (
	"fmt"
	"time"

	"github.com/salesdesk-next/internal/models"
	"github.com/salesdesk-next/internal/repository"
)

// PromotionService 促销套装服务
type PromotionService struct {
	promotionRepo repository.PromotionRepository
	productRepo   repository.ProductRepository
}

// NewPromotionService 创建促销服务
func NewPromotionService(promotionRepo repository.PromotionRepository, productRepo repository.ProductRepository) *PromotionService {
	return &PromotionService{
		promotionRepo: promotionRepo,
		productRepo:   productRepo,
	}
}

// ListActive 按公司获取当前有效的套装
func (s *PromotionService) ListActive(companyID uint) ([]models.Promotion, error) {
	return s.promotionRepo.ListActive(companyID, time.Now())
}

// GetActive 获取单个有效套装，失效或停用的套装不可再加入订单
func (s *PromotionService) GetActive(id uint) (*models.Promotion, error) {
	promotion, err := s.promotionRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}
	if promotion == nil {
		return nil, ErrPromotionNotFound
	}
	now := time.Now()
	if !promotion.IsActive {
		return nil, ErrPromotionInactive
	}
	if promotion.StartsAt != nil && promotion.StartsAt.After(now) {
		return nil, ErrPromotionInactive
	}
	if promotion.EndsAt != nil && promotion.EndsAt.Before(now) {
		return nil, ErrPromotionInactive
	}
	return promotion, nil
}

// SavePromotionInput 新建/更新套装输入
type SavePromotionInput struct {
	ID        uint
	CompanyID uint
	Name      string
	StartsAt  *time.Time
	EndsAt    *time.Time
	IsActive  bool
	Lines     []SavePromotionLine
}

// SavePromotionLine 套装明细输入
type SavePromotionLine struct {
	ProductID     uint
	Quantity      int
	OverridePrice models.Money
	IsFreebie     bool
}

// Save 新建或更新套装，明细商品名取当前商品快照
func (s *PromotionService) Save(input SavePromotionInput) (*models.Promotion, error) {
	lines := make([]models.PromotionLine, 0, len(input.Lines))
	for _, line := range input.Lines {
		if line.Quantity <= 0 {
			return nil, ErrQuantityInvalid
		}
		product, err := s.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
		}
		if product == nil {
			return nil, ErrProductNotFound
		}
		lines = append(lines, models.PromotionLine{
			ProductID:     line.ProductID,
			ProductName:   product.Name,
			Quantity:      line.Quantity,
			OverridePrice: line.OverridePrice,
			IsFreebie:     line.IsFreebie,
		})
	}

	promotion := &models.Promotion{
		ID:        input.ID,
		CompanyID: input.CompanyID,
		Name:      input.Name,
		StartsAt:  input.StartsAt,
		EndsAt:    input.EndsAt,
		IsActive:  input.IsActive,
		Lines:     lines,
	}

	if input.ID == 0 {
		if err := s.promotionRepo.Create(promotion); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrOrderSaveFailed, err)
		}
		return promotion, nil
	}
	if err := s.promotionRepo.Update(promotion); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderSaveFailed, err)
	}
	return s.promotionRepo.GetByID(input.ID)
}

// Delete 删除套装
func (s *PromotionService) Delete(id uint) error {
	return s.promotionRepo.Delete(id)
}
