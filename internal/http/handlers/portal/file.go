package portal

import (
	"strings"

	"github.com/sms-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// DownloadFile 下载附件，按存储文件名查找
func (h *Handler) DownloadFile(c *gin.Context) {
	filename := strings.TrimSpace(c.Param("filename"))
	if filename == "" {
		respondError(c, response.CodeBadRequest, "文件名无效", nil)
		return
	}
	attachment, err := h.UploadService.Resolve(filename)
	if err != nil {
		respondServiceError(c, err, "获取文件失败")
		return
	}
	c.FileAttachment(attachment.Path, attachment.OriginalName)
}
