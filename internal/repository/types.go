package repository

import "time"

// UserListFilter 查询用户列表的过滤条件
type UserListFilter struct {
	Page        int
	PageSize    int
	Keyword     string
	Status      *int
	RoleID      uint
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// StudentListFilter 查询学生列表的过滤条件
type StudentListFilter struct {
	Page      int
	PageSize  int
	Keyword   string
	ClazzID   uint
	Gender    string
	WithClazz bool
}

// CourseListFilter 查询课程列表的过滤条件
type CourseListFilter struct {
	Page     int
	PageSize int
	Keyword  string
	Teacher  string
}

// ClazzListFilter 查询班级列表的过滤条件
type ClazzListFilter struct {
	Page         int
	PageSize     int
	Keyword      string
	DepartmentID uint
}

// ScheduleListFilter 查询排课列表的过滤条件
type ScheduleListFilter struct {
	Page      int
	PageSize  int
	CourseID  uint
	ClazzID   uint
	DayOfWeek int
}

// EnrollmentListFilter 查询选课记录的过滤条件
type EnrollmentListFilter struct {
	Page       int
	PageSize   int
	UserID     uint
	CourseID   uint
	Status     string
	WithCourse bool
}

// NotificationListFilter 查询通知列表的过滤条件
type NotificationListFilter struct {
	Page       int
	PageSize   int
	UserID     uint // 查询该用户可见的通知（含广播）
	Type       string
	UnreadOnly bool
}

// ScoreListFilter 查询成绩列表的过滤条件
type ScoreListFilter struct {
	Page      int
	PageSize  int
	StudentID uint
	CourseID  uint
	Term      string
}
