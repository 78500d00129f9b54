package repository

import (
	"errors"

	"github.com/sms-next/internal/models"

	"gorm.io/gorm"
)

// ScoreRepository 成绩数据访问接口
type ScoreRepository interface {
	GetByID(id uint) (*models.Score, error)
	GetByStudentCourseTerm(studentID, courseID uint, term string) (*models.Score, error)
	List(filter ScoreListFilter) ([]models.Score, int64, error)
	Create(score *models.Score) error
	Update(score *models.Score) error
	Delete(id uint) error
}

// GormScoreRepository GORM 实现
type GormScoreRepository struct {
	db *gorm.DB
}

// NewScoreRepository 创建成绩仓库
func NewScoreRepository(db *gorm.DB) *GormScoreRepository {
	return &GormScoreRepository{db: db}
}

// GetByID 根据 ID 获取成绩
func (r *GormScoreRepository) GetByID(id uint) (*models.Score, error) {
	var score models.Score
	if err := r.db.Preload("Student").Preload("Course").First(&score, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &score, nil
}

// GetByStudentCourseTerm 查某学生某课程某学期的成绩
func (r *GormScoreRepository) GetByStudentCourseTerm(studentID, courseID uint, term string) (*models.Score, error) {
	var score models.Score
	err := r.db.Where("student_id = ? AND course_id = ? AND term = ?", studentID, courseID, term).
		First(&score).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &score, nil
}

// List 成绩列表
func (r *GormScoreRepository) List(filter ScoreListFilter) ([]models.Score, int64, error) {
	query := r.db.Model(&models.Score{})

	if filter.StudentID != 0 {
		query = query.Where("student_id = ?", filter.StudentID)
	}
	if filter.CourseID != 0 {
		query = query.Where("course_id = ?", filter.CourseID)
	}
	if filter.Term != "" {
		query = query.Where("term = ?", filter.Term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var scores []models.Score
	if err := query.Preload("Student").Preload("Course").
		Order("id DESC").Find(&scores).Error; err != nil {
		return nil, 0, err
	}
	return scores, total, nil
}

// Create 创建成绩
func (r *GormScoreRepository) Create(score *models.Score) error {
	return r.db.Create(score).Error
}

// Update 更新成绩
func (r *GormScoreRepository) Update(score *models.Score) error {
	return r.db.Save(score).Error
}

// Delete 删除成绩
func (r *GormScoreRepository) Delete(id uint) error {
	return r.db.Delete(&models.Score{}, id).Error
}
