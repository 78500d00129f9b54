package repository

import (
	"errors"

	"github.com/sms-next/internal/models"

	"gorm.io/gorm"
)

// EnrollmentRepository 选课数据访问接口
type EnrollmentRepository interface {
	GetByID(id uint) (*models.CourseEnrollment, error)
	GetByUserAndCourse(userID, courseID uint) (*models.CourseEnrollment, error)
	List(filter EnrollmentListFilter) ([]models.CourseEnrollment, int64, error)
	Create(enrollment *models.CourseEnrollment) error
	Update(enrollment *models.CourseEnrollment) error
	CountByCourse(courseID uint, status string) (int64, error)
	CountByUser(userID uint, status string) (int64, error)
}

// GormEnrollmentRepository GORM 实现
type GormEnrollmentRepository struct {
	db *gorm.DB
}

// NewEnrollmentRepository 创建选课仓库
func NewEnrollmentRepository(db *gorm.DB) *GormEnrollmentRepository {
	return &GormEnrollmentRepository{db: db}
}

// GetByID 根据 ID 获取选课记录
func (r *GormEnrollmentRepository) GetByID(id uint) (*models.CourseEnrollment, error) {
	var enrollment models.CourseEnrollment
	if err := r.db.Preload("Course").First(&enrollment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &enrollment, nil
}

// GetByUserAndCourse 获取用户对某课程的选课记录（含已退课）
func (r *GormEnrollmentRepository) GetByUserAndCourse(userID, courseID uint) (*models.CourseEnrollment, error) {
	var enrollment models.CourseEnrollment
	if err := r.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &enrollment, nil
}

// List 选课记录列表
func (r *GormEnrollmentRepository) List(filter EnrollmentListFilter) ([]models.CourseEnrollment, int64, error) {
	query := r.db.Model(&models.CourseEnrollment{})

	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.CourseID != 0 {
		query = query.Where("course_id = ?", filter.CourseID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if filter.WithCourse {
		query = query.Preload("Course")
	}

	var enrollments []models.CourseEnrollment
	if err := query.Order("enroll_time DESC").Find(&enrollments).Error; err != nil {
		return nil, 0, err
	}
	return enrollments, total, nil
}

// Create 创建选课记录
func (r *GormEnrollmentRepository) Create(enrollment *models.CourseEnrollment) error {
	return r.db.Create(enrollment).Error
}

// Update 更新选课记录
func (r *GormEnrollmentRepository) Update(enrollment *models.CourseEnrollment) error {
	return r.db.Save(enrollment).Error
}

// CountByCourse 某课程的选课人数
func (r *GormEnrollmentRepository) CountByCourse(courseID uint, status string) (int64, error) {
	var count int64
	query := r.db.Model(&models.CourseEnrollment{}).Where("course_id = ?", courseID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByUser 某用户的选课数
func (r *GormEnrollmentRepository) CountByUser(userID uint, status string) (int64, error) {
	var count int64
	query := r.db.Model(&models.CourseEnrollment{}).Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
