package notification

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pantry-guardian/backend/domain"
	"github.com/pantry-guardian/backend/entities"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

type (
	NotificationService interface {
		GetSettings(ctx context.Context, userID string) (domain.NotificationSettingsResponse, error)
		SaveSettings(ctx context.Context, req domain.SaveNotificationSettingsRequest, userID string) (domain.NotificationSettingsResponse, error)
		ScheduleProductReminder(ctx context.Context, userID string, product *entities.Product)
		StartReminderSweep() error
		StopReminderSweep()
	}

	notificationService struct {
		notificationRepository NotificationRepository
		pusher                 Pusher
		cron                   *cron.Cron

		mu     sync.Mutex
		timers map[string]*time.Timer
	}
)

func NewNotificationService(notificationRepository NotificationRepository, pusher Pusher) NotificationService {
	return &notificationService{
		notificationRepository: notificationRepository,
		pusher:                 pusher,
		cron:                   cron.New(),
		timers:                 make(map[string]*time.Timer),
	}
}

func (s *notificationService) GetSettings(ctx context.Context, userID string) (domain.NotificationSettingsResponse, error) {
	settings, err := s.getOrCreateSettings(ctx, userID)
	if err != nil {
		return domain.NotificationSettingsResponse{}, err
	}
	return settingsToResponse(settings), nil
}

func (s *notificationService) SaveSettings(ctx context.Context, req domain.SaveNotificationSettingsRequest, userID string) (domain.NotificationSettingsResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.NotificationSettingsResponse{}, domain.ErrParseUUID
	}

	settings := &entities.NotificationSettings{
		UserID:     userUUID,
		Enabled:    req.Enabled,
		DaysBefore: req.DaysBefore,
		Hour:       req.Hour,
		Minute:     req.Minute,
	}
	if err := s.notificationRepository.SaveSettings(ctx, settings); err != nil {
		return domain.NotificationSettingsResponse{}, err
	}
	return settingsToResponse(settings), nil
}

// ScheduleProductReminder arms an in-process timer for the reminder slot of a
// freshly added product. Best effort only: the hourly sweep is the durable
// path and covers restarts.
func (s *notificationService) ScheduleProductReminder(ctx context.Context, userID string, product *entities.Product) {
	if !product.DoesExpire() {
		return
	}

	settings, err := s.getOrCreateSettings(ctx, userID)
	if err != nil {
		log.Printf("unable to load notification settings for %s: %v", userID, err)
		return
	}
	if !settings.Enabled {
		return
	}

	token := ""
	if settings.User != nil {
		token = settings.User.PushToken
	}
	if token == "" {
		return
	}

	fireAt := reminderTime(product.Expires, settings.DaysBefore, settings.Hour, settings.Minute)
	delay := time.Until(fireAt)
	if delay <= 0 {
		return
	}

	key := product.ID.String() + "|" + userID
	title, body := reminderMessage(product.ProductName, settings.DaysBefore)
	s.armTimer(key, delay, token, title, body)
}

// armTimer arms (or re-arms) the single in-process timer for a reminder slot.
func (s *notificationService) armTimer(key string, delay time.Duration, token, title, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.timers[key]; ok {
		existing.Stop()
	}
	s.timers[key] = time.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.timers, key)
		s.mu.Unlock()

		if err := s.pusher.Push(context.Background(), token, title, body); err != nil {
			log.Printf("push for reminder %s failed: %v", key, err)
		}
	})
}

// StartReminderSweep runs an hourly pass over the database, re-arming a timer
// for every reminder whose slot falls later in the current hour and delivering
// any slot already past. It catches products added before a restart and
// settings changed after a product was added.
func (s *notificationService) StartReminderSweep() error {
	if _, err := s.cron.AddFunc("@hourly", s.sweep); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

func (s *notificationService) StopReminderSweep() {
	s.cron.Stop()

	s.mu.Lock()
	defer s.mu.Unlock()
	for key, timer := range s.timers {
		timer.Stop()
		delete(s.timers, key)
	}
}

func (s *notificationService) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	windowStart := time.Now().Truncate(time.Hour)
	windowEnd := windowStart.Add(time.Hour)

	// DaysBefore is capped at 60, so nothing beyond this horizon can fire now.
	horizon := windowEnd.AddDate(0, 0, 61).UnixMilli()

	targets, err := s.notificationRepository.GetUpcomingReminders(ctx, horizon)
	if err != nil {
		log.Printf("reminder sweep query failed: %v", err)
		return
	}

	now := time.Now()
	for _, target := range targets {
		fireAt := reminderTime(target.Expires, target.DaysBefore, target.Hour, target.Minute)
		if fireAt.Before(windowStart) || !fireAt.Before(windowEnd) {
			continue
		}

		key := target.ProductID.String() + "|" + target.UserID.String()
		title, body := reminderMessage(target.ProductName, target.DaysBefore)

		// Slots later this hour fire at their configured minute, not now.
		if delay := fireAt.Sub(now); delay > 0 {
			s.armTimer(key, delay, target.PushToken, title, body)
			continue
		}

		// Slot already passed; deliver now and drop any matching timer so it
		// cannot double-send.
		s.mu.Lock()
		if timer, ok := s.timers[key]; ok {
			timer.Stop()
			delete(s.timers, key)
		}
		s.mu.Unlock()

		if err := s.pusher.Push(ctx, target.PushToken, title, body); err != nil {
			log.Printf("push for product %s failed: %v", target.ProductID, err)
		}
	}
}

func (s *notificationService) getOrCreateSettings(ctx context.Context, userID string) (*entities.NotificationSettings, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	settings, err := s.notificationRepository.GetSettings(ctx, userUUID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	settings = &entities.NotificationSettings{
		UserID:     userUUID,
		Enabled:    false,
		DaysBefore: domain.DefaultDaysBefore,
		Hour:       domain.DefaultNotificationHour,
		Minute:     domain.DefaultNotificationMinute,
	}
	if err := s.notificationRepository.SaveSettings(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// reminderTime is the local wall-clock slot daysBefore days ahead of expiry.
func reminderTime(expires int64, daysBefore, hour, minute int) time.Time {
	day := time.UnixMilli(expires).Local().AddDate(0, 0, -daysBefore)
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.Local)
}

func reminderMessage(productName string, daysBefore int) (title, body string) {
	title = "Pantry Guardian"
	switch daysBefore {
	case 0:
		body = fmt.Sprintf("%s expires today", productName)
	case 1:
		body = fmt.Sprintf("%s expires tomorrow", productName)
	default:
		body = fmt.Sprintf("%s expires in %d days", productName, daysBefore)
	}
	return title, body
}

func settingsToResponse(settings *entities.NotificationSettings) domain.NotificationSettingsResponse {
	return domain.NotificationSettingsResponse{
		Enabled:    settings.Enabled,
		DaysBefore: settings.DaysBefore,
		Hour:       settings.Hour,
		Minute:     settings.Minute,
	}
}
