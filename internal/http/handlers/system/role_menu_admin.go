package system

import (
	"github.com/sms-next/internal/http/response"
	"github.com/sms-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListRoles 角色列表
func (h *Handler) ListRoles(c *gin.Context) {
	roles, err := h.RoleService.ListAll()
	if err != nil {
		respondError(c, response.CodeInternal, "获取角色列表失败", err)
		return
	}
	response.Success(c, roles)
}

// GetRole 角色详情
func (h *Handler) GetRole(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	role, err := h.RoleService.Get(id)
	if err != nil {
		respondServiceError(c, err, "获取角色失败")
		return
	}
	response.Success(c, role)
}

// CreateRole 创建角色
func (h *Handler) CreateRole(c *gin.Context) {
	var input service.RoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}
	role, err := h.RoleService.Create(input)
	if err != nil {
		respondServiceError(c, err, "创建角色失败")
		return
	}
	response.Success(c, role)
}

// UpdateRole 更新角色
func (h *Handler) UpdateRole(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input service.RoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}
	role, err := h.RoleService.Update(id, input)
	if err != nil {
		respondServiceError(c, err, "更新角色失败")
		return
	}
	response.Success(c, role)
}

// DeleteRole 删除角色
func (h *Handler) DeleteRole(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.RoleService.Delete(id); err != nil {
		respondServiceError(c, err, "删除角色失败")
		return
	}
	response.SuccessWithMsg(c, "删除成功", nil)
}

// ListMenus 全量菜单树
func (h *Handler) ListMenus(c *gin.Context) {
	tree, err := h.MenuService.Tree()
	if err != nil {
		respondError(c, response.CodeInternal, "获取菜单失败", err)
		return
	}
	response.Success(c, tree)
}

// CreateMenu 创建菜单
func (h *Handler) CreateMenu(c *gin.Context) {
	var input service.MenuInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}
	menu, err := h.MenuService.Create(input)
	if err != nil {
		respondServiceError(c, err, "创建菜单失败")
		return
	}
	response.Success(c, menu)
}

// UpdateMenu 更新菜单
func (h *Handler) UpdateMenu(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input service.MenuInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}
	menu, err := h.MenuService.Update(id, input)
	if err != nil {
		respondServiceError(c, err, "更新菜单失败")
		return
	}
	response.Success(c, menu)
}

// DeleteMenu 删除菜单
func (h *Handler) DeleteMenu(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.MenuService.Delete(id); err != nil {
		respondServiceError(c, err, "删除菜单失败")
		return
	}
	response.SuccessWithMsg(c, "删除成功", nil)
}
