package notification

import (
	"context"

	"github.com/google/uuid"
	"github.com/pantry-guardian/backend/entities"
	"gorm.io/gorm"
)

type (
	// ReminderTarget is one (product, user) pair the hourly sweep may have to
	// notify, flattened from the join across products, household membership,
	// notification settings and push tokens.
	ReminderTarget struct {
		ProductID   uuid.UUID
		ProductName string
		Expires     int64
		UserID      uuid.UUID
		PushToken   string
		DaysBefore  int
		Hour        int
		Minute      int
	}

	NotificationRepository interface {
		GetSettings(ctx context.Context, userID uuid.UUID) (*entities.NotificationSettings, error)
		SaveSettings(ctx context.Context, settings *entities.NotificationSettings) error
		GetUpcomingReminders(ctx context.Context, expiresBefore int64) ([]ReminderTarget, error)
	}

	notificationRepository struct {
		db *gorm.DB
	}
)

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) GetSettings(ctx context.Context, userID uuid.UUID) (*entities.NotificationSettings, error) {
	var settings entities.NotificationSettings
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		First(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *notificationRepository) SaveSettings(ctx context.Context, settings *entities.NotificationSettings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}

// GetUpcomingReminders returns every enabled, pushable (product, participant)
// pair whose product expires before the horizon. The caller decides which of
// them actually fire in the current window.
func (r *notificationRepository) GetUpcomingReminders(ctx context.Context, expiresBefore int64) ([]ReminderTarget, error) {
	var targets []ReminderTarget
	err := r.db.WithContext(ctx).
		Table("products").
		Select("products.id AS product_id, products.product_name, products.expires, users.id AS user_id, users.push_token, notification_settings.days_before, notification_settings.hour, notification_settings.minute").
		Joins("JOIN household_participants ON household_participants.household_id = products.household_id").
		Joins("JOIN notification_settings ON notification_settings.user_id = household_participants.user_id").
		Joins("JOIN users ON users.id = household_participants.user_id").
		Where("products.wasted = ?", false).
		Where("products.expires > 0 AND products.expires <= ?", expiresBefore).
		Where("notification_settings.enabled = ?", true).
		Where("users.push_token <> ''").
		Scan(&targets).Error
	if err != nil {
		return nil, err
	}
	return targets, nil
}
