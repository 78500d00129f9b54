package queue

import (
	"encoding/json"

	"github.com/sms-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskStudentIndexSync 学生索引同步任务
	TaskStudentIndexSync = constants.TaskStudentIndexSync
	// TaskStudentReindex 学生全量重建索引任务
	TaskStudentReindex = constants.TaskStudentReindex
	// TaskCourseIndexSync 课程索引同步任务
	TaskCourseIndexSync = constants.TaskCourseIndexSync
)

// StudentIndexSyncPayload 学生索引同步任务载荷。
// Deleted 为真时从索引中删除。
type StudentIndexSyncPayload struct {
	StudentID uint `json:"student_id"`
	Deleted   bool `json:"deleted"`
}

// CourseIndexSyncPayload 课程索引同步任务载荷
type CourseIndexSyncPayload struct {
	CourseID uint `json:"course_id"`
	Deleted  bool `json:"deleted"`
}

// NewStudentIndexSyncTask 创建学生索引同步任务
func NewStudentIndexSyncTask(payload StudentIndexSyncPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskStudentIndexSync, body), nil
}

// NewStudentReindexTask 创建学生全量重建索引任务
func NewStudentReindexTask() *asynq.Task {
	return asynq.NewTask(TaskStudentReindex, nil)
}

// NewCourseIndexSyncTask 创建课程索引同步任务
func NewCourseIndexSyncTask(payload CourseIndexSyncPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCourseIndexSync, body), nil
}
