package portal

import (
	"strconv"
	"strings"

	"github.com/sms-next/internal/http/response"
	"github.com/sms-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListNotifications 当前用户可见的通知（含广播）
func (h *Handler) ListNotifications(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	notifications, total, err := h.NotificationService.List(repository.NotificationListFilter{
		Page:       page,
		PageSize:   pageSize,
		UserID:     userID,
		Type:       strings.TrimSpace(c.Query("type")),
		UnreadOnly: c.Query("unread_only") == "true",
	})
	if err != nil {
		respondError(c, response.CodeInternal, "获取通知列表失败", err)
		return
	}
	response.SuccessWithPage(c, notifications, buildPagination(page, pageSize, total))
}

// UnreadCount 未读通知数
func (h *Handler) UnreadCount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	count, err := h.NotificationService.UnreadCount(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "获取未读数失败", err)
		return
	}
	response.Success(c, gin.H{"count": count})
}

// MarkNotificationRead 标记通知已读
func (h *Handler) MarkNotificationRead(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.NotificationService.MarkRead(id); err != nil {
		respondServiceError(c, err, "标记已读失败")
		return
	}
	response.SuccessWithMsg(c, "已标记为已读", nil)
}
