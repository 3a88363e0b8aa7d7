package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/XZHHHHHH/NearUliveS/pkg/errs"
)

// Response 统一 JSON 响应包装。
type Response struct {
	Code  string      `json:"code,omitempty"`
	Error string      `json:"error,omitempty"`
	Field string      `json:"field,omitempty"`
	Data  interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Data: data})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Data: data})
}

func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, Response{Code: string(errs.CodeInvalidArgument), Error: msg})
}

func Unauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, Response{Code: string(errs.CodeUnauthenticated), Error: msg})
}

// UnauthorizedField 带出错字段的 401（登录页按字段高亮）。
func UnauthorizedField(c *gin.Context, msg, field string) {
	c.JSON(http.StatusUnauthorized, Response{Code: string(errs.CodeUnauthenticated), Error: msg, Field: field})
}

func Forbidden(c *gin.Context, msg string) {
	c.JSON(http.StatusForbidden, Response{Code: string(errs.CodeForbidden), Error: msg})
}

func NotFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, Response{Code: string(errs.CodeNotFound), Error: msg})
}

func Conflict(c *gin.Context, msg string) {
	c.JSON(http.StatusConflict, Response{Code: string(errs.CodeAlreadyExists), Error: msg})
}

func InternalError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, Response{Code: string(errs.CodeInternal), Error: err.Error()})
}

// Error 按业务错误码映射 HTTP 状态码。
func Error(c *gin.Context, err error) {
	switch errs.CodeOf(err) {
	case errs.CodeInvalidArgument:
		BadRequest(c, err.Error())
	case errs.CodeUnauthenticated:
		Unauthorized(c, err.Error())
	case errs.CodeForbidden:
		Forbidden(c, err.Error())
	case errs.CodeNotFound:
		NotFound(c, err.Error())
	case errs.CodeAlreadyExists:
		Conflict(c, err.Error())
	default:
		InternalError(c, err)
	}
}
