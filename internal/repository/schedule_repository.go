package repository

import (
	"errors"

	"github.com/sms-next/internal/models"

	"gorm.io/gorm"
)

// ScheduleRepository 排课数据访问接口
type ScheduleRepository interface {
	GetByID(id uint) (*models.Schedule, error)
	List(filter ScheduleListFilter) ([]models.Schedule, int64, error)
	ListByCourseIDs(courseIDs []uint) ([]models.Schedule, error)
	Create(schedule *models.Schedule) error
	Update(schedule *models.Schedule) error
	Delete(id uint) error
}

// GormScheduleRepository GORM 实现
type GormScheduleRepository struct {
	db *gorm.DB
}

// NewScheduleRepository 创建排课仓库
func NewScheduleRepository(db *gorm.DB) *GormScheduleRepository {
	return &GormScheduleRepository{db: db}
}

// GetByID 根据 ID 获取排课（带课程、班级）
func (r *GormScheduleRepository) GetByID(id uint) (*models.Schedule, error) {
	var schedule models.Schedule
	if err := r.db.Preload("Course").Preload("Clazz").First(&schedule, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &schedule, nil
}

// List 排课列表
func (r *GormScheduleRepository) List(filter ScheduleListFilter) ([]models.Schedule, int64, error) {
	query := r.db.Model(&models.Schedule{})

	if filter.CourseID != 0 {
		query = query.Where("course_id = ?", filter.CourseID)
	}
	if filter.ClazzID != 0 {
		query = query.Where("clazz_id = ?", filter.ClazzID)
	}
	if filter.DayOfWeek != 0 {
		query = query.Where("day_of_week = ?", filter.DayOfWeek)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var schedules []models.Schedule
	if err := query.Preload("Course").Preload("Clazz").
		Order("day_of_week ASC, start_time ASC").Find(&schedules).Error; err != nil {
		return nil, 0, err
	}
	return schedules, total, nil
}

// ListByCourseIDs 按课程批量获取排课，用于个人课表
func (r *GormScheduleRepository) ListByCourseIDs(courseIDs []uint) ([]models.Schedule, error) {
	if len(courseIDs) == 0 {
		return []models.Schedule{}, nil
	}
	var schedules []models.Schedule
	if err := r.db.Preload("Course").Where("course_id IN ?", courseIDs).
		Order("day_of_week ASC, start_time ASC").Find(&schedules).Error; err != nil {
		return nil, err
	}
	return schedules, nil
}

// Create 创建排课
func (r *GormScheduleRepository) Create(schedule *models.Schedule) error {
	return r.db.Create(schedule).Error
}

// Update 更新排课
func (r *GormScheduleRepository) Update(schedule *models.Schedule) error {
	return r.db.Save(schedule).Error
}

// Delete 删除排课
func (r *GormScheduleRepository) Delete(id uint) error {
	return r.db.Delete(&models.Schedule{}, id).Error
}
