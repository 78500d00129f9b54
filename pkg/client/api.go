package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Course 课程
type Course struct {
	ID          uint    `json:"id"`
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Credit      float64 `json:"credit"`
	Teacher     string  `json:"teacher"`
	Capacity    int     `json:"capacity"`
	Description string  `json:"description"`
}

// CourseDetail 课程详情
type CourseDetail struct {
	Course        *Course `json:"course"`
	EnrolledCount int64   `json:"enrolled_count"`
}

// Enrollment 选课记录
type Enrollment struct {
	ID         uint       `json:"id"`
	UserID     uint       `json:"user_id"`
	CourseID   uint       `json:"course_id"`
	Status     string     `json:"status"`
	EnrollTime *time.Time `json:"enroll_time"`
	Course     *Course    `json:"course,omitempty"`
}

// NotificationItem 通知列表项
type NotificationItem struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Type      string    `json:"type"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// Schedule 排课
type Schedule struct {
	ID        uint    `json:"id"`
	CourseID  uint    `json:"course_id"`
	DayOfWeek int     `json:"day_of_week"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	Classroom string  `json:"classroom"`
	Course    *Course `json:"course,omitempty"`
}

// Score 成绩
type Score struct {
	ID       uint    `json:"id"`
	CourseID uint    `json:"course_id"`
	Term     string  `json:"term"`
	Score    float64 `json:"score"`
	Course   *Course `json:"course,omitempty"`
}

// SearchHit 全文检索命中条目
type SearchHit map[string]interface{}

func pageQuery(page, pageSize int) url.Values {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		query.Set("page_size", strconv.Itoa(pageSize))
	}
	return query
}

// ListCourses 课程分页列表
func (c *Client) ListCourses(ctx context.Context, page, pageSize int, keyword string) ([]Course, *Pagination, error) {
	query := pageQuery(page, pageSize)
	if keyword != "" {
		query.Set("keyword", keyword)
	}
	var courses []Course
	pagination, err := c.doPage(ctx, http.MethodGet, "/api/courses", query, nil, &courses)
	if err != nil {
		return nil, nil, err
	}
	return courses, pagination, nil
}

// GetCourse 课程详情
func (c *Client) GetCourse(ctx context.Context, id uint) (*CourseDetail, error) {
	var detail CourseDetail
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/courses/%d", id), nil, nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// SearchCourses 课程全文检索
func (c *Client) SearchCourses(ctx context.Context, keyword string, page, pageSize int) ([]SearchHit, *Pagination, error) {
	query := pageQuery(page, pageSize)
	query.Set("keyword", keyword)
	var hits []SearchHit
	pagination, err := c.doPage(ctx, http.MethodGet, "/api/search/courses", query, nil, &hits)
	if err != nil {
		return nil, nil, err
	}
	return hits, pagination, nil
}

// Enroll 选课
func (c *Client) Enroll(ctx context.Context, courseID uint) (*Enrollment, error) {
	var enrollment Enrollment
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/enrollments/%d", courseID), nil, nil, &enrollment); err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// Drop 退课
func (c *Client) Drop(ctx context.Context, courseID uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/enrollments/%d", courseID), nil, nil, nil)
}

// MyCourses 我的选课
func (c *Client) MyCourses(ctx context.Context, page, pageSize int) ([]Enrollment, *Pagination, error) {
	var enrollments []Enrollment
	pagination, err := c.doPage(ctx, http.MethodGet, "/api/enrollments/my", pageQuery(page, pageSize), nil, &enrollments)
	if err != nil {
		return nil, nil, err
	}
	return enrollments, pagination, nil
}

// CheckEnrolled 是否已选某课程
func (c *Client) CheckEnrolled(ctx context.Context, courseID uint) (bool, error) {
	var data struct {
		Enrolled bool `json:"enrolled"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/enrollments/check/%d", courseID), nil, nil, &data); err != nil {
		return false, err
	}
	return data.Enrolled, nil
}

// MyCourseCount 我的在读课程数
func (c *Client) MyCourseCount(ctx context.Context) (int64, error) {
	var data struct {
		Count int64 `json:"count"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/enrollments/count", nil, nil, &data); err != nil {
		return 0, err
	}
	return data.Count, nil
}

// MyTimetable 我的课表
func (c *Client) MyTimetable(ctx context.Context) ([]Schedule, error) {
	var schedules []Schedule
	if err := c.do(ctx, http.MethodGet, "/api/schedules/my", nil, nil, &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

// MyScores 我的成绩
func (c *Client) MyScores(ctx context.Context, page, pageSize int) ([]Score, *Pagination, error) {
	var scores []Score
	pagination, err := c.doPage(ctx, http.MethodGet, "/api/scores/my", pageQuery(page, pageSize), nil, &scores)
	if err != nil {
		return nil, nil, err
	}
	return scores, pagination, nil
}

// ListNotifications 通知列表
func (c *Client) ListNotifications(ctx context.Context, page, pageSize int, unreadOnly bool) ([]NotificationItem, *Pagination, error) {
	query := pageQuery(page, pageSize)
	if unreadOnly {
		query.Set("unread_only", "true")
	}
	var notifications []NotificationItem
	pagination, err := c.doPage(ctx, http.MethodGet, "/api/notifications", query, nil, &notifications)
	if err != nil {
		return nil, nil, err
	}
	return notifications, pagination, nil
}

// UnreadCount 未读通知数
func (c *Client) UnreadCount(ctx context.Context) (int64, error) {
	var data struct {
		Count int64 `json:"count"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/notifications/unread-count", nil, nil, &data); err != nil {
		return 0, err
	}
	return data.Count, nil
}

// MarkNotificationRead 标记通知已读
func (c *Client) MarkNotificationRead(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/notifications/%d/read", id), nil, nil, nil)
}

// ExportStudents 下载学生名单 Excel（需要管理员权限）
func (c *Client) ExportStudents(ctx context.Context) ([]byte, error) {
	return c.download(ctx, "/api/excel/export", nil)
}
