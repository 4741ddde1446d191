package repository

import (
	"errors"

	"github.com/salesdesk-next/internal/models"

	"gorm.io/gorm"
)

// SlipRepository 转账凭证数据访问接口
type SlipRepository interface {
	Create(slip *models.Slip) error
	GetByID(id uint) (*models.Slip, error)
	ListByOrder(orderID uint) ([]models.Slip, error)
	ListCheckedByOrder(orderID uint) ([]models.Slip, error)
	Update(slip *models.Slip) error
	UpdateMetadataBatch(slips []models.Slip) error
	SetChecked(id uint, checked bool) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) *GormSlipRepository
}

// GormSlipRepository GORM 实现
type GormSlipRepository struct {
	db *gorm.DB
}

// NewSlipRepository 创建凭证仓库
func NewSlipRepository(db *gorm.DB) *GormSlipRepository {
	return &GormSlipRepository{db: db}
}

// WithTx 绑定事务
func (r *GormSlipRepository) WithTx(tx *gorm.DB) *GormSlipRepository {
	if tx == nil {
		return r
	}
	return &GormSlipRepository{db: tx}
}

// Create 新增凭证
func (r *GormSlipRepository) Create(slip *models.Slip) error {
	return r.db.Create(slip).Error
}

// GetByID 根据 ID 获取凭证
func (r *GormSlipRepository) GetByID(id uint) (*models.Slip, error) {
	var slip models.Slip
	if err := r.db.First(&slip, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &slip, nil
}

// ListByOrder 获取订单的全部凭证
func (r *GormSlipRepository) ListByOrder(orderID uint) ([]models.Slip, error) {
	var slips []models.Slip
	if err := r.db.Where("order_id = ?", orderID).Order("id asc").Find(&slips).Error; err != nil {
		return nil, err
	}
	return slips, nil
}

// ListCheckedByOrder 获取订单已勾选的凭证
func (r *GormSlipRepository) ListCheckedByOrder(orderID uint) ([]models.Slip, error) {
	var slips []models.Slip
	if err := r.db.Where("order_id = ? AND checked = ?", orderID, true).Order("id asc").Find(&slips).Error; err != nil {
		return nil, err
	}
	return slips, nil
}

// Update 更新凭证
func (r *GormSlipRepository) Update(slip *models.Slip) error {
	return r.db.Save(slip).Error
}

// UpdateMetadataBatch 批量落库凭证三要素（核帐前先刷写在编辑的元数据）
func (r *GormSlipRepository) UpdateMetadataBatch(slips []models.Slip) error {
	if len(slips) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		for i := range slips {
			if err := tx.Model(&models.Slip{}).Where("id = ?", slips[i].ID).Updates(map[string]interface{}{
				"amount":          slips[i].Amount,
				"bank_account_id": slips[i].BankAccountID,
				"transfer_date":   slips[i].TransferDate,
				"checked":         slips[i].Checked,
				"note":            slips[i].Note,
			}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// SetChecked 勾选/取消勾选凭证
func (r *GormSlipRepository) SetChecked(id uint, checked bool) error {
	return r.db.Model(&models.Slip{}).Where("id = ?", id).Update("checked", checked).Error
}

// Delete 删除凭证
func (r *GormSlipRepository) Delete(id uint) error {
	return r.db.Delete(&models.Slip{}, id).Error
}
