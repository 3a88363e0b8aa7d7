package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/XZHHHHHH/NearUliveS/internal/model"
)

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id int64) (*model.Post, error)
	// List 全量帖子，按创建时间倒序，预加载作者+资料
	List(ctx context.Context) ([]*model.Post, error)
	Search(ctx context.Context, query string) ([]*model.Post, error)
	Delete(ctx context.Context, id int64) error
}

type postRepository struct{ db *gorm.DB }

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	var p model.Post
	if err := r.db.WithContext(ctx).Preload("Author.Profile").First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postRepository) List(ctx context.Context) ([]*model.Post, error) {
	var res []*model.Post
	err := r.db.WithContext(ctx).
		Preload("Author.Profile").
		Order("created_at DESC").
		Find(&res).Error
	return res, err
}

func (r *postRepository) Search(ctx context.Context, query string) ([]*model.Post, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	var res []*model.Post
	err := r.db.WithContext(ctx).
		Preload("Author.Profile").
		Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", pattern, pattern).
		Order("created_at DESC").
		Find(&res).Error
	return res, err
}

func (r *postRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Post{}, id).Error
}
