package service

import (
	"time"

	"github.com/sms-next/internal/constants"
	"github.com/sms-next/internal/models"
	"github.com/sms-next/internal/repository"
)

// EnrollmentService 选课服务
type EnrollmentService struct {
	enrollmentRepo repository.EnrollmentRepository
	courseRepo     repository.CourseRepository
}

// NewEnrollmentService 创建选课服务
func NewEnrollmentService(enrollmentRepo repository.EnrollmentRepository, courseRepo repository.CourseRepository) *EnrollmentService {
	return &EnrollmentService{
		enrollmentRepo: enrollmentRepo,
		courseRepo:     courseRepo,
	}
}

// Enroll 选课。已退课的记录重新激活，重复选课报错。
func (s *EnrollmentService) Enroll(userID, courseID uint) (*models.CourseEnrollment, error) {
	course, err := s.courseRepo.GetByID(courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, ErrNotFound
	}

	if course.Capacity > 0 {
		enrolled, err := s.enrollmentRepo.CountByCourse(courseID, constants.EnrollmentStatusEnrolled)
		if err != nil {
			return nil, err
		}
		if enrolled >= int64(course.Capacity) {
			return nil, ErrCourseFull
		}
	}

	existing, err := s.enrollmentRepo.GetByUserAndCourse(userID, courseID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.Status == constants.EnrollmentStatusEnrolled {
			return nil, ErrAlreadyEnrolled
		}
		// 退课后重新选课，复用原记录
		existing.Status = constants.EnrollmentStatusEnrolled
		existing.EnrollTime = time.Now()
		existing.DropTime = nil
		if err := s.enrollmentRepo.Update(existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	enrollment := &models.CourseEnrollment{
		UserID:     userID,
		CourseID:   courseID,
		Status:     constants.EnrollmentStatusEnrolled,
		EnrollTime: time.Now(),
	}
	if err := s.enrollmentRepo.Create(enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

// Drop 退课
func (s *EnrollmentService) Drop(userID, courseID uint) error {
	existing, err := s.enrollmentRepo.GetByUserAndCourse(userID, courseID)
	if err != nil {
		return err
	}
	if existing == nil || existing.Status != constants.EnrollmentStatusEnrolled {
		return ErrNotEnrolled
	}

	now := time.Now()
	existing.Status = constants.EnrollmentStatusDropped
	existing.DropTime = &now
	return s.enrollmentRepo.Update(existing)
}

// MyCourses 我的在读课程
func (s *EnrollmentService) MyCourses(userID uint, page, pageSize int) ([]models.CourseEnrollment, int64, error) {
	return s.enrollmentRepo.List(repository.EnrollmentListFilter{
		Page:       page,
		PageSize:   pageSize,
		UserID:     userID,
		Status:     constants.EnrollmentStatusEnrolled,
		WithCourse: true,
	})
}

// CourseRoster 某课程的选课名单
func (s *EnrollmentService) CourseRoster(courseID uint, page, pageSize int) ([]models.CourseEnrollment, int64, error) {
	return s.enrollmentRepo.List(repository.EnrollmentListFilter{
		Page:     page,
		PageSize: pageSize,
		CourseID: courseID,
		Status:   constants.EnrollmentStatusEnrolled,
	})
}

// IsEnrolled 是否已选某课程
func (s *EnrollmentService) IsEnrolled(userID, courseID uint) (bool, error) {
	existing, err := s.enrollmentRepo.GetByUserAndCourse(userID, courseID)
	if err != nil {
		return false, err
	}
	return existing != nil && existing.Status == constants.EnrollmentStatusEnrolled, nil
}

// CourseEnrolledCount 某课程当前选课人数
func (s *EnrollmentService) CourseEnrolledCount(courseID uint) (int64, error) {
	return s.enrollmentRepo.CountByCourse(courseID, constants.EnrollmentStatusEnrolled)
}

// MyCourseCount 我的在读课程数
func (s *EnrollmentService) MyCourseCount(userID uint) (int64, error) {
	return s.enrollmentRepo.CountByUser(userID, constants.EnrollmentStatusEnrolled)
}
