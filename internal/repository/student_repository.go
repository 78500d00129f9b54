package repository

import (
	"errors"

	"github.com/sms-next/internal/models"

	"gorm.io/gorm"
)

// StudentRepository 学生数据访问接口
type StudentRepository interface {
	GetByID(id uint) (*models.Student, error)
	GetByStudentNo(no string) (*models.Student, error)
	GetByUserID(userID uint) (*models.Student, error)
	List(filter StudentListFilter) ([]models.Student, int64, error)
	ListAllWithClazz() ([]models.Student, error)
	Create(student *models.Student) error
	Update(student *models.Student) error
	Delete(id uint) error
}

// GormStudentRepository GORM 实现
type GormStudentRepository struct {
	db *gorm.DB
}

// NewStudentRepository 创建学生仓库
func NewStudentRepository(db *gorm.DB) *GormStudentRepository {
	return &GormStudentRepository{db: db}
}

// GetByID 根据 ID 获取学生（带班级）
func (r *GormStudentRepository) GetByID(id uint) (*models.Student, error) {
	var student models.Student
	if err := r.db.Preload("Clazz").First(&student, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &student, nil
}

// GetByStudentNo 根据学号获取学生
func (r *GormStudentRepository) GetByStudentNo(no string) (*models.Student, error) {
	var student models.Student
	if err := r.db.Where("student_no = ?", no).First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &student, nil
}

// GetByUserID 根据关联的登录账号获取学生
func (r *GormStudentRepository) GetByUserID(userID uint) (*models.Student, error) {
	var student models.Student
	if err := r.db.Where("user_id = ?", userID).First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &student, nil
}

// List 学生列表
func (r *GormStudentRepository) List(filter StudentListFilter) ([]models.Student, int64, error) {
	query := r.db.Model(&models.Student{})

	if filter.Keyword != "" {
		condition, argCount := buildKeywordCondition(r.db, []string{"student_no", "name", "phone"})
		query = query.Where(condition, repeatLikeArgs("%"+filter.Keyword+"%", argCount)...)
	}
	if filter.ClazzID != 0 {
		query = query.Where("clazz_id = ?", filter.ClazzID)
	}
	if filter.Gender != "" {
		query = query.Where("gender = ?", filter.Gender)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if filter.WithClazz {
		query = query.Preload("Clazz")
	}

	var students []models.Student
	if err := query.Order("id DESC").Find(&students).Error; err != nil {
		return nil, 0, err
	}
	return students, total, nil
}

// ListAllWithClazz 全部学生（带班级），用于导出与全量重建索引
func (r *GormStudentRepository) ListAllWithClazz() ([]models.Student, error) {
	var students []models.Student
	if err := r.db.Preload("Clazz").Order("id ASC").Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

// Create 创建学生
func (r *GormStudentRepository) Create(student *models.Student) error {
	return r.db.Create(student).Error
}

// Update 更新学生
func (r *GormStudentRepository) Update(student *models.Student) error {
	return r.db.Save(student).Error
}

// Delete 删除学生（软删除）
func (r *GormStudentRepository) Delete(id uint) error {
	return r.db.Delete(&models.Student{}, id).Error
}
