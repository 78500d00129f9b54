package service

import (
	"github.com/sms-next/internal/logger"
	"github.com/sms-next/internal/models"
	"github.com/sms-next/internal/queue"
	"github.com/sms-next/internal/repository"
	"github.com/sms-next/internal/search"
)

// CourseService 课程管理服务
type CourseService struct {
	courseRepo repository.CourseRepository
	queue      *queue.Client
	indexer    *search.Indexer
}

// NewCourseService 创建课程管理服务
func NewCourseService(courseRepo repository.CourseRepository, queueClient *queue.Client, indexer *search.Indexer) *CourseService {
	return &CourseService{courseRepo: courseRepo, queue: queueClient, indexer: indexer}
}

// CourseInput 课程创建/更新请求
type CourseInput struct {
	Code        string  `json:"code" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Credit      float64 `json:"credit"`
	Teacher     string  `json:"teacher"`
	Capacity    int     `json:"capacity"`
	Description string  `json:"description"`
}

// List 课程分页列表
func (s *CourseService) List(filter repository.CourseListFilter) ([]models.Course, int64, error) {
	return s.courseRepo.List(filter)
}

// ListAll 全部课程（排课下拉用）
func (s *CourseService) ListAll() ([]models.Course, error) {
	return s.courseRepo.ListAll()
}

// Get 课程详情
func (s *CourseService) Get(id uint) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, ErrNotFound
	}
	return course, nil
}

// Create 创建课程
func (s *CourseService) Create(input CourseInput) (*models.Course, error) {
	existing, err := s.courseRepo.GetByCode(input.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCourseCodeExists
	}

	course := &models.Course{
		Code:        input.Code,
		Name:        input.Name,
		Credit:      input.Credit,
		Teacher:     input.Teacher,
		Capacity:    input.Capacity,
		Description: input.Description,
	}
	if err := s.courseRepo.Create(course); err != nil {
		return nil, err
	}
	s.syncIndex(course.ID, false)
	return course, nil
}

// Update 更新课程
func (s *CourseService) Update(id uint, input CourseInput) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, ErrNotFound
	}

	if input.Code != course.Code {
		existing, err := s.courseRepo.GetByCode(input.Code)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, ErrCourseCodeExists
		}
	}

	course.Code = input.Code
	course.Name = input.Name
	course.Credit = input.Credit
	course.Teacher = input.Teacher
	course.Capacity = input.Capacity
	course.Description = input.Description
	if err := s.courseRepo.Update(course); err != nil {
		return nil, err
	}
	s.syncIndex(course.ID, false)
	return course, nil
}

// Delete 删除课程并清理搜索索引
func (s *CourseService) Delete(id uint) error {
	course, err := s.courseRepo.GetByID(id)
	if err != nil {
		return err
	}
	if course == nil {
		return ErrNotFound
	}
	if err := s.courseRepo.Delete(id); err != nil {
		return err
	}
	s.syncIndex(id, true)
	return nil
}

// Search 课程全文检索
func (s *CourseService) Search(keyword string, page, pageSize int) ([]map[string]interface{}, int64, error) {
	if !s.indexer.Enabled() {
		return nil, 0, ErrSearchUnavailable
	}
	return s.indexer.SearchCourses(keyword, page, pageSize)
}

func (s *CourseService) syncIndex(courseID uint, deleted bool) {
	if s.queue.Enabled() {
		err := s.queue.EnqueueCourseIndexSync(queue.CourseIndexSyncPayload{
			CourseID: courseID,
			Deleted:  deleted,
		})
		if err == nil {
			return
		}
		logger.Warnw("course_index_enqueue_failed", "course_id", courseID, "error", err)
	}

	if !s.indexer.Enabled() {
		return
	}
	if deleted {
		if err := s.indexer.DeleteCourse(courseID); err != nil {
			logger.Warnw("course_index_delete_failed", "course_id", courseID, "error", err)
		}
		return
	}
	course, err := s.courseRepo.GetByID(courseID)
	if err != nil || course == nil {
		return
	}
	if err := s.indexer.IndexCourse(course); err != nil {
		logger.Warnw("course_index_sync_failed", "course_id", courseID, "error", err)
	}
}
