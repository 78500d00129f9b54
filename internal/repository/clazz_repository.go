package repository

import (
	"errors"

	"github.com/sms-next/internal/models"

	"gorm.io/gorm"
)

// ClazzRepository 班级数据访问接口
type ClazzRepository interface {
	GetByID(id uint) (*models.Clazz, error)
	List(filter ClazzListFilter) ([]models.Clazz, int64, error)
	ListAll() ([]models.Clazz, error)
	Create(clazz *models.Clazz) error
	Update(clazz *models.Clazz) error
	Delete(id uint) error
	StudentCount(id uint) (int64, error)
}

// GormClazzRepository GORM 实现
type GormClazzRepository struct {
	db *gorm.DB
}

// NewClazzRepository 创建班级仓库
func NewClazzRepository(db *gorm.DB) *GormClazzRepository {
	return &GormClazzRepository{db: db}
}

// GetByID 根据 ID 获取班级（带院系）
func (r *GormClazzRepository) GetByID(id uint) (*models.Clazz, error) {
	var clazz models.Clazz
	if err := r.db.Preload("Department").First(&clazz, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &clazz, nil
}

// List 班级列表
func (r *GormClazzRepository) List(filter ClazzListFilter) ([]models.Clazz, int64, error) {
	query := r.db.Model(&models.Clazz{})

	if filter.Keyword != "" {
		condition, argCount := buildKeywordCondition(r.db, []string{"name", "grade"})
		query = query.Where(condition, repeatLikeArgs("%"+filter.Keyword+"%", argCount)...)
	}
	if filter.DepartmentID != 0 {
		query = query.Where("department_id = ?", filter.DepartmentID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var clazzes []models.Clazz
	if err := query.Preload("Department").Order("id DESC").Find(&clazzes).Error; err != nil {
		return nil, 0, err
	}
	return clazzes, total, nil
}

// ListAll 全部班级
func (r *GormClazzRepository) ListAll() ([]models.Clazz, error) {
	var clazzes []models.Clazz
	if err := r.db.Order("id ASC").Find(&clazzes).Error; err != nil {
		return nil, err
	}
	return clazzes, nil
}

// Create 创建班级
func (r *GormClazzRepository) Create(clazz *models.Clazz) error {
	return r.db.Create(clazz).Error
}

// Update 更新班级
func (r *GormClazzRepository) Update(clazz *models.Clazz) error {
	return r.db.Save(clazz).Error
}

// Delete 删除班级
func (r *GormClazzRepository) Delete(id uint) error {
	return r.db.Delete(&models.Clazz{}, id).Error
}

// StudentCount 班级学生数
func (r *GormClazzRepository) StudentCount(id uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Student{}).Where("clazz_id = ?", id).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
