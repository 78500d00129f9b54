package portal

import (
	"strconv"

	handlershared "github.com/sms-next/internal/http/handlers/shared"
	"github.com/sms-next/internal/http/response"
	"github.com/sms-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// Handler 门户接口处理器入口
type Handler struct {
	*provider.Container
}

// New 创建门户处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

// currentUserID 读取登录用户 ID，未登录时已写入错误响应
func currentUserID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUint(c, "user_id")
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || raw == 0 {
		respondError(c, response.CodeBadRequest, "ID 参数无效", nil)
		return 0, false
	}
	return uint(raw), true
}
