package service

import (
	"context"

	"github.com/XZHHHHHH/NearUliveS/internal/model"
	"github.com/XZHHHHHH/NearUliveS/internal/repository"
	"github.com/XZHHHHHH/NearUliveS/pkg/errs"
)

type NotificationService interface {
	List(ctx context.Context, userID int64, typ string) ([]*model.Notification, error)
	MarkRead(ctx context.Context, userID int64, ids []int64) error
	Counts(ctx context.Context, userID int64) (*repository.NotificationCounts, error)
}

type notificationService struct {
	repo repository.NotificationRepository
}

func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

func (s *notificationService) List(ctx context.Context, userID int64, typ string) ([]*model.Notification, error) {
	res, err := s.repo.ListByUser(ctx, userID, typ)
	if err != nil {
		return nil, errs.Wrap(errs.CodeInternal, "list notifications", err)
	}
	return res, nil
}

func (s *notificationService) MarkRead(ctx context.Context, userID int64, ids []int64) error {
	if err := s.repo.MarkRead(ctx, userID, ids); err != nil {
		return errs.Wrap(errs.CodeInternal, "mark notifications read", err)
	}
	return nil
}

func (s *notificationService) Counts(ctx context.Context, userID int64) (*repository.NotificationCounts, error) {
	res, err := s.repo.UnreadCounts(ctx, userID)
	if err != nil {
		return nil, errs.Wrap(errs.CodeInternal, "notification counts", err)
	}
	return res, nil
}
