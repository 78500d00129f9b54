package system

import (
	"errors"

	handlershared "github.com/sms-next/internal/http/handlers/shared"
	"github.com/sms-next/internal/http/response"
	"github.com/sms-next/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

func normalizePagination(page, pageSize int) (int, int) {
	return handlershared.NormalizePagination(page, pageSize)
}

func buildPagination(page, pageSize int, total int64) response.Pagination {
	return handlershared.BuildPagination(page, pageSize, total)
}

// respondServiceError 按业务错误类型映射响应码
func respondServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrUserNotFound):
		respondError(c, response.CodeNotFound, err.Error(), nil)
	case errors.Is(err, service.ErrUsernameExists),
		errors.Is(err, service.ErrWeakPassword),
		errors.Is(err, service.ErrPasswordMismatch),
		errors.Is(err, service.ErrStudentNoExists),
		errors.Is(err, service.ErrCourseCodeExists),
		errors.Is(err, service.ErrRoleInUse),
		errors.Is(err, service.ErrMenuHasChildren),
		errors.Is(err, service.ErrDepartmentNotEmpty),
		errors.Is(err, service.ErrClazzNotEmpty),
		errors.Is(err, service.ErrFileTooLarge),
		errors.Is(err, service.ErrFileTypeNotAllowed):
		respondError(c, response.CodeBadRequest, err.Error(), nil)
	case errors.Is(err, service.ErrSearchUnavailable):
		respondError(c, response.CodeInternal, err.Error(), nil)
	default:
		respondError(c, response.CodeInternal, fallback, err)
	}
}
