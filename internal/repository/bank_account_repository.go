package repository

import (
	"errors"

	"github.com/salesdesk-next/internal/models"

	"gorm.io/gorm"
)

// BankAccountRepository 收款账户数据访问接口
type BankAccountRepository interface {
	GetByID(id uint) (*models.BankAccount, error)
	ListActive() ([]models.BankAccount, error)
	Create(account *models.BankAccount) error
	Update(account *models.BankAccount) error
}

// GormBankAccountRepository GORM 实现
type GormBankAccountRepository struct {
	db *gorm.DB
}

// NewBankAccountRepository 创建收款账户仓库
func NewBankAccountRepository(db *gorm.DB) *GormBankAccountRepository {
	return &GormBankAccountRepository{db: db}
}

// GetByID 根据 ID 获取账户
func (r *GormBankAccountRepository) GetByID(id uint) (*models.BankAccount, error) {
	var account models.BankAccount
	if err := r.db.First(&account, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

// ListActive 获取启用中的账户列表
func (r *GormBankAccountRepository) ListActive() ([]models.BankAccount, error) {
	var accounts []models.BankAccount
	if err := r.db.Where("is_active = ?", true).Order("id asc").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

// Create 新增账户
func (r *GormBankAccountRepository) Create(account *models.BankAccount) error {
	return r.db.Create(account).Error
}

// Update 更新账户
func (r *GormBankAccountRepository) Update(account *models.BankAccount) error {
	return r.db.Save(account).Error
}
