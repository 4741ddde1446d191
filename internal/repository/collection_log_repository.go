package repository

import (
	"github.com/salesdesk-next/internal/models"

	"gorm.io/gorm"
)

// CollectionLogRepository 欠款跟进记录数据访问接口
type CollectionLogRepository interface {
	Create(log *models.CollectionLog) error
	List(filter CollectionLogFilter) ([]models.CollectionLog, int64, error)
}

// GormCollectionLogRepository GORM 实现
type GormCollectionLogRepository struct {
	db *gorm.DB
}

// NewCollectionLogRepository 创建跟进记录仓库
func NewCollectionLogRepository(db *gorm.DB) *GormCollectionLogRepository {
	return &GormCollectionLogRepository{db: db}
}

// Create 新增跟进记录
func (r *GormCollectionLogRepository) Create(log *models.CollectionLog) error {
	return r.db.Create(log).Error
}

// List 跟进记录列表
func (r *GormCollectionLogRepository) List(filter CollectionLogFilter) ([]models.CollectionLog, int64, error) {
	var logs []models.CollectionLog
	query := r.db.Model(&models.CollectionLog{})

	if filter.OrderID != 0 {
		query = query.Where("order_id = ?", filter.OrderID)
	}
	if filter.StaffID != 0 {
		query = query.Where("staff_id = ?", filter.StaffID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("contacted_at desc").Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
