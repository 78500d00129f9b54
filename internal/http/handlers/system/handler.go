package system

import (
	"strconv"

	"github.com/sms-next/internal/http/response"
	"github.com/sms-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// Handler 管理端接口处理器入口
type Handler struct {
	*provider.Container
}

// New 创建管理端处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

// parseIDParam 解析路径中的数字 ID，非法时直接返回错误响应
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || raw == 0 {
		respondError(c, response.CodeBadRequest, "ID 参数无效", nil)
		return 0, false
	}
	return uint(raw), true
}
