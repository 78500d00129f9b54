package portal

import (
	"strconv"

	"github.com/sms-next/internal/http/response"
	"github.com/sms-next/internal/models"

	"github.com/gin-gonic/gin"
)

// Enroll 选课
func (h *Handler) Enroll(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	courseID, ok := parseIDParam(c, "courseId")
	if !ok {
		return
	}
	enrollment, err := h.EnrollmentService.Enroll(userID, courseID)
	if err != nil {
		respondServiceError(c, err, "选课失败")
		return
	}
	requestLog(c).Infow("course_enrolled",
		"user_id", userID,
		"course_id", courseID,
	)
	response.SuccessWithMsg(c, "选课成功", enrollment)
}

// Drop 退课
func (h *Handler) Drop(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	courseID, ok := parseIDParam(c, "courseId")
	if !ok {
		return
	}
	if err := h.EnrollmentService.Drop(userID, courseID); err != nil {
		respondServiceError(c, err, "退课失败")
		return
	}
	requestLog(c).Infow("course_dropped",
		"user_id", userID,
		"course_id", courseID,
	)
	response.SuccessWithMsg(c, "退课成功", nil)
}

// MyCourses 我的选课列表
func (h *Handler) MyCourses(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	enrollments, total, err := h.EnrollmentService.MyCourses(userID, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "获取选课列表失败", err)
		return
	}
	response.SuccessWithPage(c, enrollments, buildPagination(page, pageSize, total))
}

// CheckEnrolled 查询是否已选某课程
func (h *Handler) CheckEnrolled(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	courseID, ok := parseIDParam(c, "courseId")
	if !ok {
		return
	}
	enrolled, err := h.EnrollmentService.IsEnrolled(userID, courseID)
	if err != nil {
		respondError(c, response.CodeInternal, "查询失败", err)
		return
	}
	response.Success(c, gin.H{"enrolled": enrolled})
}

// MyCourseCount 我的在读课程数
func (h *Handler) MyCourseCount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	count, err := h.EnrollmentService.MyCourseCount(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "查询失败", err)
		return
	}
	response.Success(c, gin.H{"count": count})
}

// MyTimetable 我的课表
func (h *Handler) MyTimetable(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	schedules, err := h.ScheduleService.MyTimetable(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "获取课表失败", err)
		return
	}
	response.Success(c, schedules)
}

// MyScores 我的成绩，账号未关联学生档案时返回空列表
func (h *Handler) MyScores(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	student, err := h.StudentRepo.GetByUserID(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "获取成绩失败", err)
		return
	}
	if student == nil {
		response.SuccessWithPage(c, []models.Score{}, buildPagination(page, pageSize, 0))
		return
	}

	scores, total, err := h.ScoreService.MyScores(student.ID, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "获取成绩失败", err)
		return
	}
	response.SuccessWithPage(c, scores, buildPagination(page, pageSize, total))
}
