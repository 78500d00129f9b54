package repository

import (
	"errors"

	"github.com/sms-next/internal/models"

	"gorm.io/gorm"
)

// DepartmentRepository 院系数据访问接口
type DepartmentRepository interface {
	GetByID(id uint) (*models.Department, error)
	ListAll() ([]models.Department, error)
	Create(dept *models.Department) error
	Update(dept *models.Department) error
	Delete(id uint) error
	ClazzCount(id uint) (int64, error)
}

// GormDepartmentRepository GORM 实现
type GormDepartmentRepository struct {
	db *gorm.DB
}

// NewDepartmentRepository 创建院系仓库
func NewDepartmentRepository(db *gorm.DB) *GormDepartmentRepository {
	return &GormDepartmentRepository{db: db}
}

// GetByID 根据 ID 获取院系
func (r *GormDepartmentRepository) GetByID(id uint) (*models.Department, error) {
	var dept models.Department
	if err := r.db.First(&dept, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &dept, nil
}

// ListAll 全部院系
func (r *GormDepartmentRepository) ListAll() ([]models.Department, error) {
	var depts []models.Department
	if err := r.db.Order("id ASC").Find(&depts).Error; err != nil {
		return nil, err
	}
	return depts, nil
}

// Create 创建院系
func (r *GormDepartmentRepository) Create(dept *models.Department) error {
	return r.db.Create(dept).Error
}

// Update 更新院系
func (r *GormDepartmentRepository) Update(dept *models.Department) error {
	return r.db.Save(dept).Error
}

// Delete 删除院系
func (r *GormDepartmentRepository) Delete(id uint) error {
	return r.db.Delete(&models.Department{}, id).Error
}

// ClazzCount 该院系下的班级数
func (r *GormDepartmentRepository) ClazzCount(id uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Clazz{}).Where("department_id = ?", id).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
