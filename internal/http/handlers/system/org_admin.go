package system

import (
	"strconv"
	"strings"

	"github.com/sms-next/internal/http/response"
	"github.com/sms-next/internal/repository"
	"github.com/sms-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListDepartments 院系列表
func (h *Handler) ListDepartments(c *gin.Context) {
	departments, err := h.DepartmentService.ListAll()
	if err != nil {
		respondError(c, response.CodeInternal, "获取院系列表失败", err)
		return
	}
	response.Success(c, departments)
}

// CreateDepartment 创建院系
func (h *Handler) CreateDepartment(c *gin.Context) {
	var input service.DepartmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}
	department, err := h.DepartmentService.Create(input)
	if err != nil {
		respondServiceError(c, err, "创建院系失败")
		return
	}
	response.Success(c, department)
}

// UpdateDepartment 更新院系
func (h *Handler) UpdateDepartment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input service.DepartmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}
	department, err := h.DepartmentService.Update(id, input)
	if err != nil {
		respondServiceError(c, err, "更新院系失败")
		return
	}
	response.Success(c, department)
}

// DeleteDepartment 删除院系
func (h *Handler) DeleteDepartment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.DepartmentService.Delete(id); err != nil {
		respondServiceError(c, err, "删除院系失败")
		return
	}
	response.SuccessWithMsg(c, "删除成功", nil)
}

// ListClazzes 班级分页列表
func (h *Handler) ListClazzes(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.ClazzListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  strings.TrimSpace(c.Query("keyword")),
	}
	if raw := strings.TrimSpace(c.Query("department_id")); raw != "" {
		departmentID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "院系参数无效", nil)
			return
		}
		filter.DepartmentID = uint(departmentID)
	}

	clazzes, total, err := h.ClazzService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "获取班级列表失败", err)
		return
	}
	response.SuccessWithPage(c, clazzes, buildPagination(page, pageSize, total))
}

// ListAllClazzes 全部班级，下拉选项用
func (h *Handler) ListAllClazzes(c *gin.Context) {
	clazzes, err := h.ClazzService.ListAll()
	if err != nil {
		respondError(c, response.CodeInternal, "获取班级列表失败", err)
		return
	}
	response.Success(c, clazzes)
}

// GetClazz 班级详情
func (h *Handler) GetClazz(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	clazz, err := h.ClazzService.Get(id)
	if err != nil {
		respondServiceError(c, err, "获取班级失败")
		return
	}
	response.Success(c, clazz)
}

// CreateClazz 创建班级
func (h *Handler) CreateClazz(c *gin.Context) {
	var input service.ClazzInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}
	clazz, err := h.ClazzService.Create(input)
	if err != nil {
		respondServiceError(c, err, "创建班级失败")
		return
	}
	response.Success(c, clazz)
}

// UpdateClazz 更新班级
func (h *Handler) UpdateClazz(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input service.ClazzInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}
	clazz, err := h.ClazzService.Update(id, input)
	if err != nil {
		respondServiceError(c, err, "更新班级失败")
		return
	}
	response.Success(c, clazz)
}

// DeleteClazz 删除班级
func (h *Handler) DeleteClazz(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.ClazzService.Delete(id); err != nil {
		respondServiceError(c, err, "删除班级失败")
		return
	}
	response.SuccessWithMsg(c, "删除成功", nil)
}
