package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/XZHHHHHH/NearUliveS/internal/model"
	"github.com/XZHHHHHH/NearUliveS/internal/repository"
	"github.com/XZHHHHHH/NearUliveS/pkg/errs"
)

// PostView 带点赞信息的帖子视图
type PostView struct {
	*model.Post
	LikeCount     int64 `json:"likeCount"`
	IsLikedByUser bool  `json:"isLikedByUser"`
}

// LikeResult 点赞开关结果
type LikeResult struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"likeCount"`
}

type PostService interface {
	Create(ctx context.Context, authorID int64, title, content string, imageURL *string) (*model.Post, error)
	// List currentUserID<=0 表示未登录：IsLikedByUser 恒为 false
	List(ctx context.Context, currentUserID int64) ([]*PostView, error)
	Search(ctx context.Context, query string, currentUserID int64) ([]*PostView, error)
	Get(ctx context.Context, id int64, currentUserID int64) (*PostView, error)
	// Delete 仅作者本人可删
	Delete(ctx context.Context, id, callerID int64) error
	// ToggleLike 已赞取消、未赞点上；点上时向作者旁路发通知（自赞除外）
	ToggleLike(ctx context.Context, postID, userID int64) (*LikeResult, error)
	LikeCount(ctx context.Context, postID int64) (int64, error)
	ListComments(ctx context.Context, postID int64) ([]*model.Comment, error)
	AddComment(ctx context.Context, postID int64, authorID *int64, content string) (*model.Comment, error)
}

type postService struct {
	postRepo    repository.PostRepository
	likeRepo    repository.LikeRepository
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
	notifier    *Notifier
}

func NewPostService(postRepo repository.PostRepository, likeRepo repository.LikeRepository, commentRepo repository.CommentRepository, userRepo repository.UserRepository, notifier *Notifier) PostService {
	return &postService{postRepo: postRepo, likeRepo: likeRepo, commentRepo: commentRepo, userRepo: userRepo, notifier: notifier}
}

func (s *postService) Create(ctx context.Context, authorID int64, title, content string, imageURL *string) (*model.Post, error) {
	if authorID <= 0 {
		return nil, errs.Unauthorized("not authenticated")
	}
	if strings.TrimSpace(title) == "" && strings.TrimSpace(content) == "" {
		return nil, errs.InvalidArg("title or content is required")
	}
	post := &model.Post{AuthorID: authorID, Title: title, Content: content, ImageURL: imageURL}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, errs.Wrap(errs.CodeInternal, "create post", err)
	}
	return post, nil
}

func (s *postService) List(ctx context.Context, currentUserID int64) ([]*PostView, error) {
	posts, err := s.postRepo.List(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.CodeInternal, "list posts", err)
	}
	return s.decorate(ctx, posts, currentUserID)
}

func (s *postService) Search(ctx context.Context, query string, currentUserID int64) ([]*PostView, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errs.InvalidArg("query parameter is required")
	}
	posts, err := s.postRepo.Search(ctx, query)
	if err != nil {
		return nil, errs.Wrap(errs.CodeInternal, "search posts", err)
	}
	return s.decorate(ctx, posts, currentUserID)
}

func (s *postService) decorate(ctx context.Context, posts []*model.Post, currentUserID int64) ([]*PostView, error) {
	ids := make([]int64, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	var liked map[int64]bool
	if currentUserID > 0 {
		var err error
		liked, err = s.likeRepo.LikedPostIDs(ctx, currentUserID, ids)
		if err != nil {
			return nil, errs.Wrap(errs.CodeInternal, "load likes", err)
		}
	}
	out := make([]*PostView, len(posts))
	for i, p := range posts {
		cnt, err := s.likeRepo.CountByPost(ctx, p.ID)
		if err != nil {
			return nil, errs.Wrap(errs.CodeInternal, "count likes", err)
		}
		out[i] = &PostView{Post: p, LikeCount: cnt, IsLikedByUser: liked[p.ID]}
	}
	return out, nil
}

func (s *postService) Get(ctx context.Context, id int64, currentUserID int64) (*PostView, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, errs.NotFound("post not found")
		}
		return nil, errs.Wrap(errs.CodeInternal, "load post", err)
	}
	views, err := s.decorate(ctx, []*model.Post{post}, currentUserID)
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func (s *postService) Delete(ctx context.Context, id, callerID int64) error {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return errs.NotFound("post not found")
		}
		return errs.Wrap(errs.CodeInternal, "load post", err)
	}
	if post.AuthorID != callerID {
		return errs.Forbidden("can only delete your own post")
	}
	if err := s.postRepo.Delete(ctx, id); err != nil {
		return errs.Wrap(errs.CodeInternal, "delete post", err)
	}
	return nil
}

func (s *postService) ToggleLike(ctx context.Context, postID, userID int64) (*LikeResult, error) {
	if postID <= 0 || userID <= 0 {
		return nil, errs.InvalidArg("post id is required")
	}
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, errs.NotFound("post not found")
		}
		return nil, errs.Wrap(errs.CodeInternal, "load post", err)
	}

	exists, err := s.likeRepo.Exists(ctx, postID, userID)
	if err != nil {
		return nil, errs.Wrap(errs.CodeInternal, "check like", err)
	}
	if exists {
		if err := s.likeRepo.Delete(ctx, postID, userID); err != nil {
			return nil, errs.Wrap(errs.CodeInternal, "unlike", err)
		}
	} else {
		if err := s.likeRepo.Create(ctx, postID, userID); err != nil {
			return nil, errs.Wrap(errs.CodeInternal, "like", err)
		}
		// 给作者发通知；自己赞自己不发
		if post.AuthorID != userID {
			pid := postID
			liker, lerr := s.userRepo.GetByID(ctx, userID)
			msg := "liked your post"
			if lerr == nil {
				msg = fmt.Sprintf("%s liked your post", liker.Safe().Username)
			}
			s.notifier.Enqueue(&model.Notification{
				UserID:     post.AuthorID,
				FromUserID: userID,
				Type:       model.NotificationTypeLike,
				PostID:     &pid,
				Message:    msg,
			})
		}
	}

	cnt, err := s.likeRepo.CountByPost(ctx, postID)
	if err != nil {
		return nil, errs.Wrap(errs.CodeInternal, "count likes", err)
	}
	return &LikeResult{Liked: !exists, LikeCount: cnt}, nil
}

func (s *postService) LikeCount(ctx context.Context, postID int64) (int64, error) {
	cnt, err := s.likeRepo.CountByPost(ctx, postID)
	if err != nil {
		return 0, errs.Wrap(errs.CodeInternal, "count likes", err)
	}
	return cnt, nil
}

func (s *postService) ListComments(ctx context.Context, postID int64) ([]*model.Comment, error) {
	if postID <= 0 {
		return nil, errs.InvalidArg("post id is required")
	}
	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, errs.Wrap(errs.CodeInternal, "list comments", err)
	}
	return comments, nil
}

func (s *postService) AddComment(ctx context.Context, postID int64, authorID *int64, content string) (*model.Comment, error) {
	if postID <= 0 || strings.TrimSpace(content) == "" {
		return nil, errs.InvalidArg("content is required")
	}
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, errs.NotFound("post not found")
		}
		return nil, errs.Wrap(errs.CodeInternal, "load post", err)
	}
	comment := &model.Comment{PostID: postID, AuthorID: authorID, Content: content}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, errs.Wrap(errs.CodeInternal, "create comment", err)
	}
	if authorID != nil && *authorID != post.AuthorID {
		pid := postID
		s.notifier.Enqueue(&model.Notification{
			UserID:     post.AuthorID,
			FromUserID: *authorID,
			Type:       model.NotificationTypeComment,
			PostID:     &pid,
			Message:    "commented on your post",
		})
	}
	return comment, nil
}
