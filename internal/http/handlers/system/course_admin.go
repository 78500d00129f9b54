package system

import (
	"strconv"
	"strings"

	"github.com/sms-next/internal/http/response"
	"github.com/sms-next/internal/repository"
	"github.com/sms-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateCourse 创建课程
func (h *Handler) CreateCourse(c *gin.Context) {
	var input service.CourseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}
	course, err := h.CourseService.Create(input)
	if err != nil {
		respondServiceError(c, err, "创建课程失败")
		return
	}
	response.Success(c, course)
}

// UpdateCourse 更新课程
func (h *Handler) UpdateCourse(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input service.CourseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}
	course, err := h.CourseService.Update(id, input)
	if err != nil {
		respondServiceError(c, err, "更新课程失败")
		return
	}
	response.Success(c, course)
}

// DeleteCourse 删除课程
func (h *Handler) DeleteCourse(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.CourseService.Delete(id); err != nil {
		respondServiceError(c, err, "删除课程失败")
		return
	}
	response.SuccessWithMsg(c, "删除成功", nil)
}

// ListSchedules 排课列表
func (h *Handler) ListSchedules(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.ScheduleListFilter{
		Page:     page,
		PageSize: pageSize,
	}
	if raw := strings.TrimSpace(c.Query("course_id")); raw != "" {
		courseID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "课程参数无效", nil)
			return
		}
		filter.CourseID = uint(courseID)
	}
	if raw := strings.TrimSpace(c.Query("day_of_week")); raw != "" {
		day, err := strconv.Atoi(raw)
		if err != nil || day < 1 || day > 7 {
			respondError(c, response.CodeBadRequest, "星期参数无效", nil)
			return
		}
		filter.DayOfWeek = day
	}

	schedules, total, err := h.ScheduleService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "获取排课列表失败", err)
		return
	}
	response.SuccessWithPage(c, schedules, buildPagination(page, pageSize, total))
}

// CreateSchedule 创建排课
func (h *Handler) CreateSchedule(c *gin.Context) {
	var input service.ScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}
	schedule, err := h.ScheduleService.Create(input)
	if err != nil {
		respondServiceError(c, err, "创建排课失败")
		return
	}
	response.Success(c, schedule)
}

// UpdateSchedule 更新排课
func (h *Handler) UpdateSchedule(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input service.ScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}
	schedule, err := h.ScheduleService.Update(id, input)
	if err != nil {
		respondServiceError(c, err, "更新排课失败")
		return
	}
	response.Success(c, schedule)
}

// DeleteSchedule 删除排课
func (h *Handler) DeleteSchedule(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.ScheduleService.Delete(id); err != nil {
		respondServiceError(c, err, "删除排课失败")
		return
	}
	response.SuccessWithMsg(c, "删除成功", nil)
}

// CourseRoster 课程选课名单
func (h *Handler) CourseRoster(c *gin.Context) {
	courseID, ok := parseIDParam(c, "courseId")
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	enrollments, total, err := h.EnrollmentService.CourseRoster(courseID, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "获取选课名单失败", err)
		return
	}
	response.SuccessWithPage(c, enrollments, buildPagination(page, pageSize, total))
}
