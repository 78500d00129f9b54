package service

import (
	"github.com/sms-next/internal/constants"
	"github.com/sms-next/internal/models"
	"github.com/sms-next/internal/repository"
)

// ScheduleService 排课管理服务
type ScheduleService struct {
	scheduleRepo   repository.ScheduleRepository
	courseRepo     repository.CourseRepository
	enrollmentRepo repository.EnrollmentRepository
}

// NewScheduleService 创建排课管理服务
func NewScheduleService(scheduleRepo repository.ScheduleRepository, courseRepo repository.CourseRepository, enrollmentRepo repository.EnrollmentRepository) *ScheduleService {
	return &ScheduleService{
		scheduleRepo:   scheduleRepo,
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
	}
}

// ScheduleInput 排课创建/更新请求
type ScheduleInput struct {
	CourseID  uint   `json:"course_id" binding:"required"`
	ClazzID   uint   `json:"clazz_id"`
	DayOfWeek int    `json:"day_of_week" binding:"required,min=1,max=7"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Classroom string `json:"classroom"`
}

// List 排课列表
func (s *ScheduleService) List(filter repository.ScheduleListFilter) ([]models.Schedule, int64, error) {
	return s.scheduleRepo.List(filter)
}

// Get 排课详情
func (s *ScheduleService) Get(id uint) (*models.Schedule, error) {
	schedule, err := s.scheduleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if schedule == nil {
		return nil, ErrNotFound
	}
	return schedule, nil
}

// Create 创建排课
func (s *ScheduleService) Create(input ScheduleInput) (*models.Schedule, error) {
	course, err := s.courseRepo.GetByID(input.CourseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, ErrNotFound
	}

	schedule := &models.Schedule{
		CourseID:  input.CourseID,
		ClazzID:   input.ClazzID,
		DayOfWeek: input.DayOfWeek,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		Classroom: input.Classroom,
	}
	if err := s.scheduleRepo.Create(schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

// Update 更新排课
func (s *ScheduleService) Update(id uint, input ScheduleInput) (*models.Schedule, error) {
	schedule, err := s.scheduleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if schedule == nil {
		return nil, ErrNotFound
	}

	schedule.CourseID = input.CourseID
	schedule.ClazzID = input.ClazzID
	schedule.DayOfWeek = input.DayOfWeek
	schedule.StartTime = input.StartTime
	schedule.EndTime = input.EndTime
	schedule.Classroom = input.Classroom
	if err := s.scheduleRepo.Update(schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

// Delete 删除排课
func (s *ScheduleService) Delete(id uint) error {
	schedule, err := s.scheduleRepo.GetByID(id)
	if err != nil {
		return err
	}
	if schedule == nil {
		return ErrNotFound
	}
	return s.scheduleRepo.Delete(id)
}

// MyTimetable 按已选课程拼出个人课表
func (s *ScheduleService) MyTimetable(userID uint) ([]models.Schedule, error) {
	enrollments, _, err := s.enrollmentRepo.List(repository.EnrollmentListFilter{
		UserID: userID,
		Status: constants.EnrollmentStatusEnrolled,
	})
	if err != nil {
		return nil, err
	}

	courseIDs := make([]uint, 0, len(enrollments))
	for _, enrollment := range enrollments {
		courseIDs = append(courseIDs, enrollment.CourseID)
	}
	return s.scheduleRepo.ListByCourseIDs(courseIDs)
}
