package service

import (
	"github.com/sms-next/internal/models"
	"github.com/sms-next/internal/repository"
)

// ScoreService 成绩管理服务
type ScoreService struct {
	scoreRepo   repository.ScoreRepository
	studentRepo repository.StudentRepository
	courseRepo  repository.CourseRepository
}

// NewScoreService 创建成绩管理服务
func NewScoreService(scoreRepo repository.ScoreRepository, studentRepo repository.StudentRepository, courseRepo repository.CourseRepository) *ScoreService {
	return &ScoreService{scoreRepo: scoreRepo, studentRepo: studentRepo, courseRepo: courseRepo}
}

// ScoreInput 成绩录入/更新请求
type ScoreInput struct {
	StudentID uint    `json:"student_id" binding:"required"`
	CourseID  uint    `json:"course_id" binding:"required"`
	Term      string  `json:"term"`
	Score     float64 `json:"score" binding:"min=0,max=100"`
}

// List 成绩列表
func (s *ScoreService) List(filter repository.ScoreListFilter) ([]models.Score, int64, error) {
	return s.scoreRepo.List(filter)
}

// Save 录入成绩，同学生同课程同学期已有记录时覆盖分数
func (s *ScoreService) Save(input ScoreInput) (*models.Score, error) {
	student, err := s.studentRepo.GetByID(input.StudentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, ErrNotFound
	}
	course, err := s.courseRepo.GetByID(input.CourseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, ErrNotFound
	}

	existing, err := s.scoreRepo.GetByStudentCourseTerm(input.StudentID, input.CourseID, input.Term)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.Score = input.Score
		if err := s.scoreRepo.Update(existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	score := &models.Score{
		StudentID: input.StudentID,
		CourseID:  input.CourseID,
		Term:      input.Term,
		Score:     input.Score,
	}
	if err := s.scoreRepo.Create(score); err != nil {
		return nil, err
	}
	return score, nil
}

// Delete 删除成绩
func (s *ScoreService) Delete(id uint) error {
	score, err := s.scoreRepo.GetByID(id)
	if err != nil {
		return err
	}
	if score == nil {
		return ErrNotFound
	}
	return s.scoreRepo.Delete(id)
}

// MyScores 学生查自己的成绩
func (s *ScoreService) MyScores(studentID uint, page, pageSize int) ([]models.Score, int64, error) {
	return s.scoreRepo.List(repository.ScoreListFilter{
		Page:      page,
		PageSize:  pageSize,
		StudentID: studentID,
	})
}
