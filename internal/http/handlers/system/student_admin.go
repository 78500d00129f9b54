package system

import (
	"strconv"
	"strings"

	"github.com/sms-next/internal/http/response"
	"github.com/sms-next/internal/repository"
	"github.com/sms-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListStudents 学生分页列表
func (h *Handler) ListStudents(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.StudentListFilter{
		Page:      page,
		PageSize:  pageSize,
		Keyword:   strings.TrimSpace(c.Query("keyword")),
		Gender:    strings.TrimSpace(c.Query("gender")),
		WithClazz: true,
	}
	if raw := strings.TrimSpace(c.Query("clazz_id")); raw != "" {
		clazzID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "班级参数无效", nil)
			return
		}
		filter.ClazzID = uint(clazzID)
	}

	students, total, err := h.StudentService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "获取学生列表失败", err)
		return
	}
	response.SuccessWithPage(c, students, buildPagination(page, pageSize, total))
}

// GetStudent 学生详情
func (h *Handler) GetStudent(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	student, err := h.StudentService.Get(id)
	if err != nil {
		respondServiceError(c, err, "获取学生失败")
		return
	}
	response.Success(c, student)
}

// CreateStudent 创建学生
func (h *Handler) CreateStudent(c *gin.Context) {
	var input service.StudentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}
	student, err := h.StudentService.Create(input)
	if err != nil {
		respondServiceError(c, err, "创建学生失败")
		return
	}
	response.Success(c, student)
}

// UpdateStudent 更新学生
func (h *Handler) UpdateStudent(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input service.StudentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}
	student, err := h.StudentService.Update(id, input)
	if err != nil {
		respondServiceError(c, err, "更新学生失败")
		return
	}
	response.Success(c, student)
}

// DeleteStudent 删除学生
func (h *Handler) DeleteStudent(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.StudentService.Delete(id); err != nil {
		respondServiceError(c, err, "删除学生失败")
		return
	}
	response.SuccessWithMsg(c, "删除成功", nil)
}

// ReindexStudents 全量重建学生索引
func (h *Handler) ReindexStudents(c *gin.Context) {
	if err := h.StudentService.Reindex(); err != nil {
		respondServiceError(c, err, "重建索引失败")
		return
	}
	response.SuccessWithMsg(c, "重建索引任务已提交", nil)
}

// SearchStudents 学生全文检索
func (h *Handler) SearchStudents(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	keyword := strings.TrimSpace(c.Query("keyword"))
	hits, total, err := h.StudentService.Search(keyword, page, pageSize)
	if err != nil {
		respondServiceError(c, err, "检索失败")
		return
	}
	response.SuccessWithPage(c, hits, buildPagination(page, pageSize, total))
}
