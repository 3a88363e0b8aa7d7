package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/XZHHHHHH/NearUliveS/internal/service"
	"github.com/XZHHHHHH/NearUliveS/pkg/response"
)

// CtxUserID gin context 中当前用户 id 的键
const CtxUserID = "userID"

// Auth 必须登录：cookie 里无有效 token 直接 401
func Auth(auth service.AuthService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			response.Unauthorized(c, "not authenticated")
			c.Abort()
			return
		}
		uid, err := auth.ParseToken(token)
		if err != nil {
			response.Unauthorized(c, "not authenticated")
			c.Abort()
			return
		}
		c.Set(CtxUserID, uid)
		c.Next()
	}
}

// OptionalAuth 尽力解析身份，不拦截；未登录路径拿到 0
func OptionalAuth(auth service.AuthService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(cookieName); err == nil && token != "" {
			if uid, err := auth.ParseToken(token); err == nil {
				c.Set(CtxUserID, uid)
			}
		}
		c.Next()
	}
}

// UserID 读取当前用户 id；未登录返回 0
func UserID(c *gin.Context) int64 {
	if v, ok := c.Get(CtxUserID); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}
