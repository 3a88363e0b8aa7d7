package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/XZHHHHHH/NearUliveS/pkg/response"
)

type updateProfileRequest struct {
	UserID       int64   `json:"userId" binding:"required"`
	Username     *string `json:"username"`
	ProfileImage *string `json:"profileImage"`
	Bio          *string `json:"bio"`
}

// GetProfile 读取用户资料；首次读取无资料用户时补建默认资料
// @Summary 用户资料
// @Tags 用户
// @Param userId query int true "用户ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/users/profile [get]
func (h *Handler) GetProfile(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Query("userId"), 10, 64)
	if err != nil || userID <= 0 {
		response.BadRequest(c, "user id is required")
		return
	}
	view, err := h.profiles.Get(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"user": view})
}

// UpdateProfile 更新展示资料（upsert）
// @Summary 更新资料
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body updateProfileRequest true "资料"
// @Success 200 {object} response.Response
// @Router /api/users/profile [put]
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "user id is required")
		return
	}
	view, err := h.profiles.Update(c.Request.Context(), req.UserID, req.Username, req.ProfileImage, req.Bio)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"user": view})
}

// SearchUsers 按邮箱/用户名搜索用户
// @Summary 搜索用户
// @Tags 用户
// @Param q query string true "关键词"
// @Param excludeId query int false "排除的用户ID"
// @Success 200 {object} response.Response
// @Router /api/users/search [get]
func (h *Handler) SearchUsers(c *gin.Context) {
	q := c.Query("q")
	var excludeID int64
	if raw := c.Query("excludeId"); raw != "" {
		excludeID, _ = strconv.ParseInt(raw, 10, 64)
	}
	users, err := h.profiles.Search(c.Request.Context(), q, excludeID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"users": users})
}

// MigrateProfiles 为所有缺资料用户补默认资料
// @Summary 资料迁移
// @Tags 用户
// @Success 200 {object} response.Response
// @Router /api/users/migrate-profiles [post]
func (h *Handler) MigrateProfiles(c *gin.Context) {
	created, err := h.profiles.MigrateAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"migrated": created})
}
