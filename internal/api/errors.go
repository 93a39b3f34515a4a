package api

import (
	"net/http"

	"accounthub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// 错误码定义
const (
	// 通用错误码
	ErrCodeInvalidRequest     = "ERR_INVALID_REQUEST"
	ErrCodeUnauthorized       = "ERR_UNAUTHORIZED"
	ErrCodeForbidden          = "ERR_FORBIDDEN"
	ErrCodeInternalError      = "ERR_INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "ERR_SERVICE_UNAVAILABLE"

	// 认证错误码
	ErrCodeInvalidCredentials = "ERR_INVALID_CREDENTIALS"
	ErrCodeAccountDisabled    = "ERR_ACCOUNT_DISABLED"
	ErrCodeSessionExpired     = "ERR_SESSION_EXPIRED"

	// 账户资源错误码
	ErrCodeAccountNotFound = "ERR_ACCOUNT_NOT_FOUND"
	ErrCodeAlreadyExists   = "ERR_ALREADY_EXISTS"
	ErrCodeStorageFailure  = "ERR_STORAGE_FAILURE"

	// 业务逻辑错误码
	ErrCodeMissingField     = "ERR_MISSING_FIELD"
	ErrCodeCannotDeleteSelf = "ERR_CANNOT_DELETE_SELF"
)

// APIError 统一的 API 错误响应结构
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorResponse 返回统一格式的错误响应
func ErrorResponse(c *gin.Context, status int, code string, message string) {
	c.JSON(status, APIError{
		Code:    code,
		Message: message,
	})
}

// ErrorResponseWithDetails 返回带详情的错误响应
func ErrorResponseWithDetails(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, APIError{
		Code:    code,
		Message: message,
		Details: details,
	})
}

// ServiceError 将服务层错误种类映射为 HTTP 状态码
func ServiceError(c *gin.Context, err error) {
	svcErr := service.AsError(err)
	if svcErr == nil {
		logrus.WithError(err).Error("unclassified service failure")
		InternalError(c, "internal error")
		return
	}

	switch svcErr.Kind {
	case service.KindConflict:
		if svcErr.Field != "" {
			ErrorResponseWithDetails(c, http.StatusConflict, ErrCodeAlreadyExists, svcErr.Message, gin.H{"field": svcErr.Field})
			return
		}
		ErrorResponse(c, http.StatusConflict, ErrCodeAlreadyExists, svcErr.Message)
	case service.KindInvalidCredentials:
		ErrorResponse(c, http.StatusUnauthorized, ErrCodeInvalidCredentials, svcErr.Message)
	case service.KindNotFound:
		ErrorResponse(c, http.StatusNotFound, ErrCodeAccountNotFound, svcErr.Message)
	case service.KindTransactionFailure:
		// 底层原因只进日志，不回传给客户端
		logrus.WithError(svcErr).Error("storage transaction failure")
		ErrorResponse(c, http.StatusInternalServerError, ErrCodeStorageFailure, svcErr.Message)
	default:
		logrus.WithError(svcErr).Error("unknown service error kind")
		InternalError(c, "internal error")
	}
}

// 常用错误响应快捷函数

// BadRequest 400 错误请求
func BadRequest(c *gin.Context, code string, message string) {
	ErrorResponse(c, http.StatusBadRequest, code, message)
}

// Unauthorized 401 未授权
func Unauthorized(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusUnauthorized, ErrCodeUnauthorized, message)
}

// Forbidden 403 禁止访问
func Forbidden(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusForbidden, ErrCodeForbidden, message)
}

// NotFound 404 资源不存在
func NotFound(c *gin.Context, code string, message string) {
	ErrorResponse(c, http.StatusNotFound, code, message)
}

// InternalError 500 服务器内部错误
func InternalError(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusInternalServerError, ErrCodeInternalError, message)
}

// ServiceUnavailable 503 服务不可用
func ServiceUnavailable(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, message)
}

// MissingField 缺少必填字段
func MissingField(c *gin.Context, field string) {
	ErrorResponseWithDetails(c, http.StatusBadRequest, ErrCodeMissingField, field+" is required", gin.H{"field": field})
}

// InvalidPayload 无效的请求体
func InvalidPayload(c *gin.Context) {
	ErrorResponse(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request payload")
}
