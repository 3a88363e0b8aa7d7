package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/XZHHHHHH/NearUliveS/internal/api/middleware"
	"github.com/XZHHHHHH/NearUliveS/internal/service"
	"github.com/XZHHHHHH/NearUliveS/pkg/errs"
	"github.com/XZHHHHHH/NearUliveS/pkg/response"
)

type registerRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) setAuthCookie(c *gin.Context, token string, maxAge int) {
	c.SetCookie(h.authCfg.CookieName, token, maxAge, "/", "", h.authCfg.SecureCookie, true)
}

// Register 注册新用户并创建默认资料
// @Summary 注册
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body registerRequest true "注册信息"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	user, err := h.authService.Register(c.Request.Context(), req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{
		"message": "user registered successfully",
		"user":    gin.H{"id": user.ID, "email": user.Email, "profile": user.Profile},
	})
}

// Login 登录，签发 JWT 并写入 httpOnly cookie
// @Summary 登录
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body loginRequest true "登录信息"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		var fe *service.FieldError
		if errors.As(err, &fe) {
			response.UnauthorizedField(c, fe.Error(), fe.Field)
			return
		}
		response.Error(c, err)
		return
	}
	h.setAuthCookie(c, result.Token, int(h.authCfg.TokenTTL.Seconds()))
	response.Success(c, gin.H{
		"message": "login successful",
		"user":    gin.H{"id": result.User.ID, "email": result.User.Email, "profile": result.User.Profile},
	})
}

// Logout 清除登录 cookie
// @Summary 登出
// @Tags 认证
// @Success 200 {object} response.Response
// @Router /api/auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	h.setAuthCookie(c, "", -1)
	response.Success(c, gin.H{"message": "logout successful"})
}

// Me 当前登录用户
// @Summary 当前用户
// @Tags 认证
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/auth/me [get]
func (h *Handler) Me(c *gin.Context) {
	uid := middleware.UserID(c)
	if uid <= 0 {
		response.Error(c, errs.Unauthorized("not authenticated"))
		return
	}
	user, err := h.authService.Me(c.Request.Context(), uid)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"id": user.ID, "email": user.Email, "profile": user.Profile})
}
