package worker

import (
	"context"
	"encoding/json"

	"github.com/sms-next/internal/constants"
	"github.com/sms-next/internal/logger"
	"github.com/sms-next/internal/provider"
	"github.com/sms-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者，负责搜索索引的增量与全量同步
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(constants.TaskStudentIndexSync, c.handleStudentIndexSync)
	mux.HandleFunc(constants.TaskStudentReindex, c.handleStudentReindex)
	mux.HandleFunc(constants.TaskCourseIndexSync, c.handleCourseIndexSync)
}

func (c *Consumer) handleStudentIndexSync(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	if !c.SearchIndexer.Enabled() {
		logger.Debugw("worker_student_index_skip_search_disabled")
		return nil
	}
	var payload queue.StudentIndexSyncPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_student_index_unmarshal_failed", "error", err)
		return err
	}
	if payload.StudentID == 0 {
		logger.Debugw("worker_student_index_skip_invalid_payload")
		return nil
	}

	if payload.Deleted {
		if err := c.SearchIndexer.DeleteStudent(payload.StudentID); err != nil {
			logger.Warnw("worker_student_index_delete_failed", "student_id", payload.StudentID, "error", err)
			return err
		}
		return nil
	}

	student, err := c.StudentRepo.GetByID(payload.StudentID)
	if err != nil {
		logger.Warnw("worker_student_index_fetch_failed", "student_id", payload.StudentID, "error", err)
		return err
	}
	if student == nil {
		logger.Debugw("worker_student_index_skip_not_found", "student_id", payload.StudentID)
		return nil
	}
	if err := c.SearchIndexer.IndexStudent(student); err != nil {
		logger.Warnw("worker_student_index_sync_failed", "student_id", payload.StudentID, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleStudentReindex(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	if !c.SearchIndexer.Enabled() {
		logger.Debugw("worker_student_reindex_skip_search_disabled")
		return nil
	}
	students, err := c.StudentRepo.ListAllWithClazz()
	if err != nil {
		logger.Warnw("worker_student_reindex_fetch_failed", "error", err)
		return err
	}
	if err := c.SearchIndexer.ReindexStudents(students); err != nil {
		logger.Warnw("worker_student_reindex_failed", "count", len(students), "error", err)
		return err
	}
	logger.Infow("worker_student_reindex_done", "count", len(students))
	return nil
}

func (c *Consumer) handleCourseIndexSync(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	if !c.SearchIndexer.Enabled() {
		logger.Debugw("worker_course_index_skip_search_disabled")
		return nil
	}
	var payload queue.CourseIndexSyncPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_course_index_unmarshal_failed", "error", err)
		return err
	}
	if payload.CourseID == 0 {
		logger.Debugw("worker_course_index_skip_invalid_payload")
		return nil
	}

	if payload.Deleted {
		if err := c.SearchIndexer.DeleteCourse(payload.CourseID); err != nil {
			logger.Warnw("worker_course_index_delete_failed", "course_id", payload.CourseID, "error", err)
			return err
		}
		return nil
	}

	course, err := c.CourseRepo.GetByID(payload.CourseID)
	if err != nil {
		logger.Warnw("worker_course_index_fetch_failed", "course_id", payload.CourseID, "error", err)
		return err
	}
	if course == nil {
		logger.Debugw("worker_course_index_skip_not_found", "course_id", payload.CourseID)
		return nil
	}
	if err := c.SearchIndexer.IndexCourse(course); err != nil {
		logger.Warnw("worker_course_index_sync_failed", "course_id", payload.CourseID, "error", err)
		return err
	}
	return nil
}
