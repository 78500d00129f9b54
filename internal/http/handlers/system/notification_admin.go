package system

import (
	"github.com/sms-next/internal/http/response"
	"github.com/sms-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateNotification 发布通知，user_id 为空时广播
func (h *Handler) CreateNotification(c *gin.Context) {
	var input service.NotificationCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}
	notification, err := h.NotificationService.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err, "发布通知失败")
		return
	}
	response.Success(c, notification)
}

// DeleteNotification 删除通知
func (h *Handler) DeleteNotification(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.NotificationService.Delete(id); err != nil {
		respondServiceError(c, err, "删除通知失败")
		return
	}
	response.SuccessWithMsg(c, "删除成功", nil)
}
