package service

import (
	"github.com/sms-next/internal/logger"
	"github.com/sms-next/internal/models"
	"github.com/sms-next/internal/queue"
	"github.com/sms-next/internal/repository"
	"github.com/sms-next/internal/search"
)

// StudentService 学籍管理服务。
// 写操作入队搜索索引同步任务，队列不可用时同步写索引。
type StudentService struct {
	studentRepo repository.StudentRepository
	clazzRepo   repository.ClazzRepository
	queue       *queue.Client
	indexer     *search.Indexer
}

// NewStudentService 创建学籍管理服务
func NewStudentService(studentRepo repository.StudentRepository, clazzRepo repository.ClazzRepository, queueClient *queue.Client, indexer *search.Indexer) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		clazzRepo:   clazzRepo,
		queue:       queueClient,
		indexer:     indexer,
	}
}

// StudentInput 学生创建/更新请求
type StudentInput struct {
	StudentNo string `json:"student_no" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Gender    string `json:"gender"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	ClazzID   uint   `json:"clazz_id"`
	UserID    *uint  `json:"user_id"`
}

// List 学生分页列表
func (s *StudentService) List(filter repository.StudentListFilter) ([]models.Student, int64, error) {
	return s.studentRepo.List(filter)
}

// Get 学生详情
func (s *StudentService) Get(id uint) (*models.Student, error) {
	student, err := s.studentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, ErrNotFound
	}
	return student, nil
}

// Create 创建学生
func (s *StudentService) Create(input StudentInput) (*models.Student, error) {
	existing, err := s.studentRepo.GetByStudentNo(input.StudentNo)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrStudentNoExists
	}
	if input.ClazzID != 0 {
		clazz, err := s.clazzRepo.GetByID(input.ClazzID)
		if err != nil {
			return nil, err
		}
		if clazz == nil {
			return nil, ErrNotFound
		}
	}

	student := &models.Student{
		StudentNo: input.StudentNo,
		Name:      input.Name,
		Gender:    input.Gender,
		Phone:     input.Phone,
		Email:     input.Email,
		Address:   input.Address,
		ClazzID:   input.ClazzID,
		UserID:    input.UserID,
	}
	if err := s.studentRepo.Create(student); err != nil {
		return nil, err
	}
	s.syncIndex(student.ID, false)
	return student, nil
}

// Update 更新学生
func (s *StudentService) Update(id uint, input StudentInput) (*models.Student, error) {
	student, err := s.studentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, ErrNotFound
	}

	if input.StudentNo != student.StudentNo {
		existing, err := s.studentRepo.GetByStudentNo(input.StudentNo)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, ErrStudentNoExists
		}
	}

	student.StudentNo = input.StudentNo
	student.Name = input.Name
	student.Gender = input.Gender
	student.Phone = input.Phone
	student.Email = input.Email
	student.Address = input.Address
	student.ClazzID = input.ClazzID
	student.UserID = input.UserID
	if err := s.studentRepo.Update(student); err != nil {
		return nil, err
	}
	s.syncIndex(student.ID, false)
	return student, nil
}

// Delete 删除学生并清理搜索索引
func (s *StudentService) Delete(id uint) error {
	student, err := s.studentRepo.GetByID(id)
	if err != nil {
		return err
	}
	if student == nil {
		return ErrNotFound
	}
	if err := s.studentRepo.Delete(id); err != nil {
		return err
	}
	s.syncIndex(id, true)
	return nil
}

// Reindex 全量重建学生索引。队列可用时异步执行。
func (s *StudentService) Reindex() error {
	if !s.indexer.Enabled() {
		return ErrSearchUnavailable
	}
	if s.queue.Enabled() {
		return s.queue.EnqueueStudentReindex()
	}
	students, err := s.studentRepo.ListAllWithClazz()
	if err != nil {
		return err
	}
	return s.indexer.ReindexStudents(students)
}

// Search 学生全文检索
func (s *StudentService) Search(keyword string, page, pageSize int) ([]map[string]interface{}, int64, error) {
	if !s.indexer.Enabled() {
		return nil, 0, ErrSearchUnavailable
	}
	return s.indexer.SearchStudents(keyword, page, pageSize)
}

// syncIndex 同步搜索索引，失败只记日志不影响主流程
func (s *StudentService) syncIndex(studentID uint, deleted bool) {
	if s.queue.Enabled() {
		err := s.queue.EnqueueStudentIndexSync(queue.StudentIndexSyncPayload{
			StudentID: studentID,
			Deleted:   deleted,
		})
		if err == nil {
			return
		}
		logger.Warnw("student_index_enqueue_failed", "student_id", studentID, "error", err)
	}

	if !s.indexer.Enabled() {
		return
	}
	if deleted {
		if err := s.indexer.DeleteStudent(studentID); err != nil {
			logger.Warnw("student_index_delete_failed", "student_id", studentID, "error", err)
		}
		return
	}
	student, err := s.studentRepo.GetByID(studentID)
	if err != nil || student == nil {
		return
	}
	if err := s.indexer.IndexStudent(student); err != nil {
		logger.Warnw("student_index_sync_failed", "student_id", studentID, "error", err)
	}
}
