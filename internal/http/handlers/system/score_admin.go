package system

import (
	"strconv"
	"strings"

	"github.com/sms-next/internal/http/response"
	"github.com/sms-next/internal/repository"
	"github.com/sms-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListScores 成绩分页列表
func (h *Handler) ListScores(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.ScoreListFilter{
		Page:     page,
		PageSize: pageSize,
		Term:     strings.TrimSpace(c.Query("term")),
	}
	if raw := strings.TrimSpace(c.Query("student_id")); raw != "" {
		studentID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "学生参数无效", nil)
			return
		}
		filter.StudentID = uint(studentID)
	}
	if raw := strings.TrimSpace(c.Query("course_id")); raw != "" {
		courseID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "课程参数无效", nil)
			return
		}
		filter.CourseID = uint(courseID)
	}

	scores, total, err := h.ScoreService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "获取成绩列表失败", err)
		return
	}
	response.SuccessWithPage(c, scores, buildPagination(page, pageSize, total))
}

// SaveScore 录入或更新成绩
func (h *Handler) SaveScore(c *gin.Context) {
	var input service.ScoreInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}
	score, err := h.ScoreService.Save(input)
	if err != nil {
		respondServiceError(c, err, "保存成绩失败")
		return
	}
	response.Success(c, score)
}

// DeleteScore 删除成绩
func (h *Handler) DeleteScore(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.ScoreService.Delete(id); err != nil {
		respondServiceError(c, err, "删除成绩失败")
		return
	}
	response.SuccessWithMsg(c, "删除成功", nil)
}
