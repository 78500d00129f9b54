package system

import (
	"strconv"

	handlershared "github.com/sms-next/internal/http/handlers/shared"
	"github.com/sms-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// UploadFile 上传附件
func (h *Handler) UploadFile(c *gin.Context) {
	uploaderID, ok := handlershared.GetContextUint(c, "user_id")
	if !ok {
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "请上传文件", err)
		return
	}
	attachment, err := h.UploadService.SaveFile(fileHeader, uploaderID)
	if err != nil {
		respondServiceError(c, err, "上传失败")
		return
	}
	response.Success(c, attachment)
}

// ListFiles 附件分页列表
func (h *Handler) ListFiles(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	attachments, total, err := h.UploadService.List(page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "获取附件列表失败", err)
		return
	}
	response.SuccessWithPage(c, attachments, buildPagination(page, pageSize, total))
}

// DeleteFile 删除附件
func (h *Handler) DeleteFile(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.UploadService.Delete(id); err != nil {
		respondServiceError(c, err, "删除附件失败")
		return
	}
	response.SuccessWithMsg(c, "删除成功", nil)
}
