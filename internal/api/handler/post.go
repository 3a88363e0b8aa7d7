package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/XZHHHHHH/NearUliveS/internal/api/middleware"
	"github.com/XZHHHHHH/NearUliveS/pkg/response"
)

type createPostRequest struct {
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	ImageURL *string `json:"imageUrl"`
}

type likeRequest struct {
	PostID int64 `json:"postId" binding:"required"`
}

type deletePostRequest struct {
	PostID int64 `json:"postId" binding:"required"`
}

type addCommentRequest struct {
	Content  string `json:"content" binding:"required"`
	AuthorID *int64 `json:"authorId"`
}

// CreatePost 发帖（登录）
// @Summary 发帖
// @Tags 帖子
// @Accept json
// @Produce json
// @Param request body createPostRequest true "帖子"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/post/create [post]
func (h *Handler) CreatePost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	post, err := h.posts.Create(c.Request.Context(), middleware.UserID(c), req.Title, req.Content, req.ImageURL)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"success": true, "post": post})
}

// ListPosts 全部帖子，倒序，带点赞信息
// @Summary 帖子流
// @Tags 帖子
// @Success 200 {object} response.Response
// @Router /api/posts [get]
func (h *Handler) ListPosts(c *gin.Context) {
	posts, err := h.posts.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"posts": posts})
}

// SearchPosts 按标题/内容搜索
// @Summary 搜索帖子
// @Tags 帖子
// @Param q query string true "关键词"
// @Success 200 {object} response.Response
// @Router /api/posts/search [get]
func (h *Handler) SearchPosts(c *gin.Context) {
	posts, err := h.posts.Search(c.Request.Context(), c.Query("q"), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"posts": posts})
}

// ToggleLike 点赞开关；点上时给作者旁路发通知
// @Summary 点赞/取消点赞
// @Tags 帖子
// @Accept json
// @Produce json
// @Param request body likeRequest true "帖子ID"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/post/like [post]
func (h *Handler) ToggleLike(c *gin.Context) {
	var req likeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	result, err := h.posts.ToggleLike(c.Request.Context(), req.PostID, middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"success": true, "liked": result.Liked, "likeCount": result.LikeCount})
}

// LikeCount 帖子点赞数
// @Summary 点赞数
// @Tags 帖子
// @Param id path int true "帖子ID"
// @Success 200 {object} response.Response
// @Router /api/post/{id}/like-count [get]
func (h *Handler) LikeCount(c *gin.Context) {
	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || postID <= 0 {
		response.BadRequest(c, "post id is required")
		return
	}
	cnt, err := h.posts.LikeCount(c.Request.Context(), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"likeCount": cnt})
}

// DeletePost 删除自己的帖子
// @Summary 删帖
// @Tags 帖子
// @Accept json
// @Produce json
// @Param request body deletePostRequest true "帖子ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /api/post/delete [post]
func (h *Handler) DeletePost(c *gin.Context) {
	var req deletePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.posts.Delete(c.Request.Context(), req.PostID, middleware.UserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"success": true})
}

// ListComments 帖子评论（楼层序）
// @Summary 评论列表
// @Tags 评论
// @Param postId path int true "帖子ID"
// @Success 200 {object} response.Response
// @Router /api/comments/{postId} [get]
func (h *Handler) ListComments(c *gin.Context) {
	postID, err := strconv.ParseInt(c.Param("postId"), 10, 64)
	if err != nil || postID <= 0 {
		response.BadRequest(c, "post id is required")
		return
	}
	comments, err := h.posts.ListComments(c.Request.Context(), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"comments": comments})
}

// AddComment 发表评论；作者可为空
// @Summary 发评论
// @Tags 评论
// @Accept json
// @Produce json
// @Param postId path int true "帖子ID"
// @Param request body addCommentRequest true "评论"
// @Success 201 {object} response.Response
// @Router /api/comments/{postId} [post]
func (h *Handler) AddComment(c *gin.Context) {
	postID, err := strconv.ParseInt(c.Param("postId"), 10, 64)
	if err != nil || postID <= 0 {
		response.BadRequest(c, "post id is required")
		return
	}
	var req addCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	authorID := req.AuthorID
	if authorID == nil {
		if uid := middleware.UserID(c); uid > 0 {
			authorID = &uid
		}
	}
	comment, err := h.posts.AddComment(c.Request.Context(), postID, authorID, req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"comment": comment})
}
