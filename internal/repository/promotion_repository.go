package repository

import (
	"errors"
	"time"

	"github.com/salesdesk-next/internal/models"

	"gorm.io/gorm"
)

// PromotionRepository 促销套装数据访问接口
type PromotionRepository interface {
	GetByID(id uint) (*models.Promotion, error)
	ListActive(companyID uint, now time.Time) ([]models.Promotion, error)
	Create(promotion *models.Promotion) error
	Update(promotion *models.Promotion) error
	Delete(id uint) error
}

// GormPromotionRepository GORM 实现
type GormPromotionRepository struct {
	db *gorm.DB
}

// NewPromotionRepository 创建促销仓库
func NewPromotionRepository(db *gorm.DB) *GormPromotionRepository {
	return &GormPromotionRepository{db: db}
}

// GetByID 根据 ID 获取套装（含明细）
func (r *GormPromotionRepository) GetByID(id uint) (*models.Promotion, error) {
	var promotion models.Promotion
	if err := r.db.Preload("Lines").First(&promotion, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &promotion, nil
}

// ListActive 按公司获取当前有效的套装列表
func (r *GormPromotionRepository) ListActive(companyID uint, now time.Time) ([]models.Promotion, error) {
	var promotions []models.Promotion
	query := r.db.Preload("Lines").
		Where("company_id = ? AND is_active = ?", companyID, true).
		Where("starts_at IS NULL OR starts_at <= ?", now).
		Where("ends_at IS NULL OR ends_at >= ?", now)
	if err := query.Order("id desc").Find(&promotions).Error; err != nil {
		return nil, err
	}
	return promotions, nil
}

// Create 新增套装（含明细）
func (r *GormPromotionRepository) Create(promotion *models.Promotion) error {
	return r.db.Create(promotion).Error
}

// Update 更新套装并整批替换明细
func (r *GormPromotionRepository) Update(promotion *models.Promotion) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Promotion{}).Where("id = ?", promotion.ID).Updates(map[string]interface{}{
			"name":      promotion.Name,
			"starts_at": promotion.StartsAt,
			"ends_at":   promotion.EndsAt,
			"is_active": promotion.IsActive,
		}).Error; err != nil {
			return err
		}
		if err := tx.Where("promotion_id = ?", promotion.ID).Delete(&models.PromotionLine{}).Error; err != nil {
			return err
		}
		for i := range promotion.Lines {
			promotion.Lines[i].ID = 0
			promotion.Lines[i].PromotionID = promotion.ID
		}
		if len(promotion.Lines) > 0 {
			if err := tx.Create(&promotion.Lines).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete 删除套装
func (r *GormPromotionRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("promotion_id = ?", id).Delete(&models.PromotionLine{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Promotion{}, id).Error
	})
}
