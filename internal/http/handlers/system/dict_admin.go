package system

import (
	"strings"

	"github.com/sms-next/internal/http/response"
	"github.com/sms-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListDictTypes 字典类型列表
func (h *Handler) ListDictTypes(c *gin.Context) {
	types, err := h.DictService.ListTypes()
	if err != nil {
		respondError(c, response.CodeInternal, "获取字典类型失败", err)
		return
	}
	response.Success(c, types)
}

// CreateDictType 创建字典类型
func (h *Handler) CreateDictType(c *gin.Context) {
	var input service.DictTypeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}
	dictType, err := h.DictService.CreateType(input)
	if err != nil {
		respondServiceError(c, err, "创建字典类型失败")
		return
	}
	response.Success(c, dictType)
}

// DeleteDictType 删除字典类型
func (h *Handler) DeleteDictType(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.DictService.DeleteType(id); err != nil {
		respondServiceError(c, err, "删除字典类型失败")
		return
	}
	response.SuccessWithMsg(c, "删除成功", nil)
}

// ListDictData 按类型编码查询字典数据
func (h *Handler) ListDictData(c *gin.Context) {
	typeCode := strings.TrimSpace(c.Query("type_code"))
	if typeCode == "" {
		respondError(c, response.CodeBadRequest, "type_code 不能为空", nil)
		return
	}
	data, err := h.DictService.ListData(typeCode)
	if err != nil {
		respondError(c, response.CodeInternal, "获取字典数据失败", err)
		return
	}
	response.Success(c, data)
}

// CreateDictData 创建字典数据
func (h *Handler) CreateDictData(c *gin.Context) {
	var input service.DictDataInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}
	dictData, err := h.DictService.CreateData(input)
	if err != nil {
		respondServiceError(c, err, "创建字典数据失败")
		return
	}
	response.Success(c, dictData)
}

// DeleteDictData 删除字典数据
func (h *Handler) DeleteDictData(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.DictService.DeleteData(id); err != nil {
		respondServiceError(c, err, "删除字典数据失败")
		return
	}
	response.SuccessWithMsg(c, "删除成功", nil)
}
