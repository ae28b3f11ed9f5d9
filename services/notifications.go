package services

import (
	"context"
	"errors"
	"fmt"

	"food-delivery-app/apperror"
	"food-delivery-app/models"
	"food-delivery-app/realtime"

	"gorm.io/gorm"
)

type NotificationService struct {
	db  *gorm.DB
	pub realtime.Publisher
}

func NewNotificationService(db *gorm.DB, pub realtime.Publisher) *NotificationService {
	return &NotificationService{db: db, pub: pub}
}

// Notify stores a typed notification for userID and announces it on the user's channel.
func (s *NotificationService) Notify(ctx context.Context, userID string, p models.NotificationPayload) (*models.Notification, error) {
	n, err := models.NewNotification(userID, p)
	if err != nil {
		return nil, apperror.Validation(err.Error())
	}
	if err := s.db.WithContext(ctx).Create(n).Error; err != nil {
		return nil, apperror.Internal(fmt.Errorf("create notification: %w", err))
	}
	realtime.BestEffort(ctx, s.pub, realtime.Event{
		Channel: realtime.UserChannel(userID),
		Payload: realtime.NotificationCreated{ID: n.ID, Type: n.Type},
	})
	return n, nil
}

func (s *NotificationService) List(ctx context.Context, userID string, unreadOnly bool) ([]models.Notification, error) {
	var list []models.Notification
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}
	if err := q.Order("created_at desc").Find(&list).Error; err != nil {
		return nil, apperror.Internal(fmt.Errorf("list notifications: %w", err))
	}
	return list, nil
}

// MarkRead flags one of userID's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, userID, id string) (*models.Notification, error) {
	var n models.Notification
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&n).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("Notification not found")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if err := s.db.WithContext(ctx).Model(&n).Update("is_read", true).Error; err != nil {
		return nil, apperror.Internal(err)
	}
	n.IsRead = true
	return &n, nil
}
