package repository

import (
	"errors"

	"github.com/sms-next/internal/models"

	"gorm.io/gorm"
)

// CourseRepository 课程数据访问接口
type CourseRepository interface {
	GetByID(id uint) (*models.Course, error)
	GetByCode(code string) (*models.Course, error)
	List(filter CourseListFilter) ([]models.Course, int64, error)
	ListAll() ([]models.Course, error)
	Create(course *models.Course) error
	Update(course *models.Course) error
	Delete(id uint) error
}

// GormCourseRepository GORM 实现
type GormCourseRepository struct {
	db *gorm.DB
}

// NewCourseRepository 创建课程仓库
func NewCourseRepository(db *gorm.DB) *GormCourseRepository {
	return &GormCourseRepository{db: db}
}

// GetByID 根据 ID 获取课程
func (r *GormCourseRepository) GetByID(id uint) (*models.Course, error) {
	var course models.Course
	if err := r.db.First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &course, nil
}

// GetByCode 根据课程编号获取课程
func (r *GormCourseRepository) GetByCode(code string) (*models.Course, error) {
	var course models.Course
	if err := r.db.Where("code = ?", code).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &course, nil
}

// List 课程列表
func (r *GormCourseRepository) List(filter CourseListFilter) ([]models.Course, int64, error) {
	query := r.db.Model(&models.Course{})

	if filter.Keyword != "" {
		condition, argCount := buildKeywordCondition(r.db, []string{"code", "name", "teacher"})
		query = query.Where(condition, repeatLikeArgs("%"+filter.Keyword+"%", argCount)...)
	}
	if filter.Teacher != "" {
		query = query.Where("teacher = ?", filter.Teacher)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var courses []models.Course
	if err := query.Order("id DESC").Find(&courses).Error; err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

// ListAll 全部课程
func (r *GormCourseRepository) ListAll() ([]models.Course, error) {
	var courses []models.Course
	if err := r.db.Order("id ASC").Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

// Create 创建课程
func (r *GormCourseRepository) Create(course *models.Course) error {
	return r.db.Create(course).Error
}

// Update 更新课程
func (r *GormCourseRepository) Update(course *models.Course) error {
	return r.db.Save(course).Error
}

// Delete 删除课程（软删除）
func (r *GormCourseRepository) Delete(id uint) error {
	return r.db.Delete(&models.Course{}, id).Error
}
