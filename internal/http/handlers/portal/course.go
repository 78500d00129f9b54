package portal

import (
	"strconv"
	"strings"

	"github.com/sms-next/internal/http/response"
	"github.com/sms-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListCourses 课程分页列表
func (h *Handler) ListCourses(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	courses, total, err := h.CourseService.List(repository.CourseListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  strings.TrimSpace(c.Query("keyword")),
		Teacher:  strings.TrimSpace(c.Query("teacher")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "获取课程列表失败", err)
		return
	}
	response.SuccessWithPage(c, courses, buildPagination(page, pageSize, total))
}

// GetCourse 课程详情，附带已选人数
func (h *Handler) GetCourse(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	course, err := h.CourseService.Get(id)
	if err != nil {
		respondServiceError(c, err, "获取课程失败")
		return
	}
	enrolledCount, err := h.EnrollmentService.CourseEnrolledCount(id)
	if err != nil {
		respondError(c, response.CodeInternal, "获取课程失败", err)
		return
	}
	response.Success(c, gin.H{
		"course":         course,
		"enrolled_count": enrolledCount,
	})
}

// SearchCourses 课程全文检索
func (h *Handler) SearchCourses(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	keyword := strings.TrimSpace(c.Query("keyword"))
	hits, total, err := h.CourseService.Search(keyword, page, pageSize)
	if err != nil {
		respondServiceError(c, err, "检索失败")
		return
	}
	response.SuccessWithPage(c, hits, buildPagination(page, pageSize, total))
}
