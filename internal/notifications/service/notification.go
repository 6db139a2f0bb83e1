package service

import (
	"context"
	"errors"

	notificationserrors "flipfit/internal/notifications/errors"
	"flipfit/internal/notifications/repository"
	"flipfit/pkg/config"
	apperrors "flipfit/pkg/errors"
	"flipfit/pkg/model"
	"flipfit/pkg/sanitizer"
)

type NotificationService interface {
	Record(ctx context.Context, event model.NotificationEvent) error
	GetNotifications(ctx context.Context, userID string, unreadOnly bool) ([]*model.Notification, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, id string) error
}

type notificationService struct {
	repo repository.NotificationRepository
	cfg  *config.Config
}

func NewNotificationService(repo repository.NotificationRepository, cfg *config.Config) NotificationService {
	return &notificationService{
		repo: repo,
		cfg:  cfg,
	}
}

// Record persists event as an unread notification. Recording the same event twice is a no-op.
func (s *notificationService) Record(ctx context.Context, event model.NotificationEvent) error {
	if event.UserID == "" {
		return apperrors.InvalidInput("Notification user ID cannot be empty")
	}
	if event.ID == "" {
		event.ID = model.NewID(model.PrefixNotification)
	}

	n := event.ToNotification()
	if err := s.repo.Create(ctx, n); err != nil {
		if errors.Is(err, notificationserrors.ErrDuplicateEntry) {
			s.cfg.Log.Debug("Notification already recorded", "id", n.ID, "user_id", n.UserID)
			return nil
		}
		return apperrors.Internal("Failed to record notification", err)
	}

	s.cfg.Log.Debug("Notification recorded", "id", n.ID, "user_id", n.UserID, "event", n.Event)
	return nil
}

func (s *notificationService) GetNotifications(ctx context.Context, userID string, unreadOnly bool) ([]*model.Notification, error) {
	userID = sanitizer.NormalizeID(userID)
	if userID == "" {
		return nil, apperrors.InvalidInput("User ID cannot be empty")
	}

	notifications, err := s.repo.FindByUser(ctx, userID, unreadOnly)
	if err != nil {
		s.cfg.Log.Error("Failed to load notifications", "user_id", userID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve notifications", err)
	}
	return notifications, nil
}

func (s *notificationService) MarkRead(ctx context.Context, id string) error {
	id = sanitizer.NormalizeID(id)
	if id == "" {
		return apperrors.InvalidInput("Notification ID cannot be empty")
	}
	return s.mapNotFound(s.repo.MarkRead(ctx, id), id, "Failed to mark notification read")
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	userID = sanitizer.NormalizeID(userID)
	if userID == "" {
		return 0, apperrors.InvalidInput("User ID cannot be empty")
	}

	updated, err := s.repo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, apperrors.Internal("Failed to mark notifications read", err)
	}
	s.cfg.Log.Info("Notifications marked read", "user_id", userID, "count", updated)
	return updated, nil
}

func (s *notificationService) Delete(ctx context.Context, id string) error {
	id = sanitizer.NormalizeID(id)
	if id == "" {
		return apperrors.InvalidInput("Notification ID cannot be empty")
	}
	return s.mapNotFound(s.repo.Delete(ctx, id), id, "Failed to delete notification")
}

func (s *notificationService) mapNotFound(err error, id, message string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, notificationserrors.ErrNotFound):
		return apperrors.NotFoundWithID("Notification", id)
	default:
		return apperrors.Internal(message, err)
	}
}
