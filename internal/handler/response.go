package handler

import (
	"net/http"

	"github.com/flamefund/ffs/internal/apperr"
	"github.com/flamefund/ffs/internal/logger"
	"github.com/gin-gonic/gin"
)

// 通用响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// 分页信息结构
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"pageSize"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"totalPage"`
}

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
		Data:    nil,
	})
}

// HandleError 按错误分类映射HTTP状态码
func HandleError(c *gin.Context, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		ErrorResponse(c, http.StatusBadRequest, err.Error())
	case apperr.KindNotFound:
		ErrorResponse(c, http.StatusNotFound, err.Error())
	case apperr.KindAuthorization:
		ErrorResponse(c, http.StatusForbidden, err.Error())
	case apperr.KindConflict:
		ErrorResponse(c, http.StatusConflict, err.Error())
	default:
		logger.Error("request failed: %v", err)
		ErrorResponse(c, http.StatusBadGateway, "dependency unavailable")
	}
}
