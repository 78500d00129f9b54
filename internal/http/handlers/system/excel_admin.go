package system

import (
	"fmt"
	"time"

	"github.com/sms-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportStudents 导出学生名单
func (h *Handler) ExportStudents(c *gin.Context) {
	data, err := h.ExcelService.ExportStudents()
	if err != nil {
		respondError(c, response.CodeInternal, "导出失败", err)
		return
	}
	filename := fmt.Sprintf("students_%s.xlsx", time.Now().Format("20060102150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(200, xlsxContentType, data)
}

// ExcelTemplate 下载学生导入模板
func (h *Handler) ExcelTemplate(c *gin.Context) {
	data, err := h.ExcelService.Template()
	if err != nil {
		respondError(c, response.CodeInternal, "生成模板失败", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="student_template.xlsx"`)
	c.Data(200, xlsxContentType, data)
}

// ImportStudents 从 Excel 导入学生
func (h *Handler) ImportStudents(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "请上传文件", err)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, response.CodeBadRequest, "文件读取失败", err)
		return
	}
	defer file.Close()

	result, err := h.ExcelService.ImportStudents(file)
	if err != nil {
		respondError(c, response.CodeBadRequest, "文件解析失败", err)
		return
	}
	requestLog(c).Infow("student_excel_imported",
		"total", result.Total,
		"success", result.Success,
		"failed", result.Failed,
	)
	response.Success(c, result)
}
