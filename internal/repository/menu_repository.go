package repository

import (
	"errors"

	"github.com/sms-next/internal/models"

	"gorm.io/gorm"
)

// MenuRepository 菜单数据访问接口
type MenuRepository interface {
	GetByID(id uint) (*models.Menu, error)
	ListAll() ([]models.Menu, error)
	ListByIDs(ids []uint) ([]models.Menu, error)
	Create(menu *models.Menu) error
	Update(menu *models.Menu) error
	Delete(id uint) error
	HasChildren(id uint) (bool, error)
}

// GormMenuRepository GORM 实现
type GormMenuRepository struct {
	db *gorm.DB
}

// NewMenuRepository 创建菜单仓库
func NewMenuRepository(db *gorm.DB) *GormMenuRepository {
	return &GormMenuRepository{db: db}
}

// GetByID 根据 ID 获取菜单
func (r *GormMenuRepository) GetByID(id uint) (*models.Menu, error) {
	var menu models.Menu
	if err := r.db.First(&menu, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &menu, nil
}

// ListAll 全部菜单，按排序号排列
func (r *GormMenuRepository) ListAll() ([]models.Menu, error) {
	var menus []models.Menu
	if err := r.db.Order("order_num ASC, id ASC").Find(&menus).Error; err != nil {
		return nil, err
	}
	return menus, nil
}

// ListByIDs 批量获取菜单
func (r *GormMenuRepository) ListByIDs(ids []uint) ([]models.Menu, error) {
	if len(ids) == 0 {
		return []models.Menu{}, nil
	}
	var menus []models.Menu
	if err := r.db.Where("id IN ?", ids).Find(&menus).Error; err != nil {
		return nil, err
	}
	return menus, nil
}

// Create 创建菜单
func (r *GormMenuRepository) Create(menu *models.Menu) error {
	return r.db.Create(menu).Error
}

// Update 更新菜单
func (r *GormMenuRepository) Update(menu *models.Menu) error {
	return r.db.Save(menu).Error
}

// Delete 删除菜单
func (r *GormMenuRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM sys_role_menu WHERE menu_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Menu{}, id).Error
	})
}

// HasChildren 是否存在子菜单
func (r *GormMenuRepository) HasChildren(id uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Menu{}).Where("parent_id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
