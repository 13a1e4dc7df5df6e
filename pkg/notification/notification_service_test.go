package notification

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/pantry-guardian/backend/domain"
	"github.com/pantry-guardian/backend/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakePusher struct {
	mu     sync.Mutex
	pushes []string
}

func (p *fakePusher) Push(_ context.Context, token, _, body string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pushes = append(p.pushes, token+": "+body)
	return nil
}

func (p *fakePusher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pushes)
}

func setupNotificationTest(t *testing.T) (*notificationService, *gorm.DB, *fakePusher) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entities.User{},
		&entities.NotificationSettings{},
		&entities.Household{},
		&entities.HouseholdParticipant{},
		&entities.Product{},
	))

	pusher := &fakePusher{}
	svc := NewNotificationService(NewNotificationRepository(db), pusher).(*notificationService)
	t.Cleanup(svc.StopReminderSweep)
	return svc, db, pusher
}

func createUser(t *testing.T, db *gorm.DB, pushToken string) *entities.User {
	t.Helper()
	u := &entities.User{ID: uuid.New(), Email: uuid.NewString() + "@example.com", Name: "Tester", PushToken: pushToken}
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestGetSettingsCreatesDefaults(t *testing.T) {
	svc, db, _ := setupNotificationTest(t)
	u := createUser(t, db, "")

	res, err := svc.GetSettings(context.Background(), u.ID.String())
	require.NoError(t, err)

	assert.False(t, res.Enabled)
	assert.Equal(t, domain.DefaultDaysBefore, res.DaysBefore)
	assert.Equal(t, domain.DefaultNotificationHour, res.Hour)
	assert.Equal(t, domain.DefaultNotificationMinute, res.Minute)

	// The defaults are persisted on first read.
	var count int64
	require.NoError(t, db.Model(&entities.NotificationSettings{}).Where("user_id = ?", u.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSaveSettingsRoundTrip(t *testing.T) {
	svc, db, _ := setupNotificationTest(t)
	u := createUser(t, db, "")

	saved, err := svc.SaveSettings(context.Background(), domain.SaveNotificationSettingsRequest{
		Enabled:    true,
		DaysBefore: 3,
		Hour:       9,
		Minute:     30,
	}, u.ID.String())
	require.NoError(t, err)
	assert.True(t, saved.Enabled)

	res, err := svc.GetSettings(context.Background(), u.ID.String())
	require.NoError(t, err)
	assert.Equal(t, saved, res)
}

func TestReminderTime(t *testing.T) {
	expires := time.Date(2030, 6, 15, 18, 0, 0, 0, time.Local).UnixMilli()

	fireAt := reminderTime(expires, 5, 12, 30)
	assert.Equal(t, time.Date(2030, 6, 10, 12, 30, 0, 0, time.Local), fireAt)

	fireAt = reminderTime(expires, 0, 8, 0)
	assert.Equal(t, time.Date(2030, 6, 15, 8, 0, 0, 0, time.Local), fireAt)
}

func TestScheduleProductReminderArmsTimer(t *testing.T) {
	svc, db, _ := setupNotificationTest(t)
	u := createUser(t, db, "ExponentPushToken[abc]")

	_, err := svc.SaveSettings(context.Background(), domain.SaveNotificationSettingsRequest{
		Enabled:    true,
		DaysBefore: 0,
		Hour:       23,
		Minute:     59,
	}, u.ID.String())
	require.NoError(t, err)

	product := &entities.Product{
		ID:          uuid.New(),
		ProductName: "Milk",
		Expires:     time.Now().Add(48 * time.Hour).UnixMilli(),
	}
	svc.ScheduleProductReminder(context.Background(), u.ID.String(), product)

	svc.mu.Lock()
	assert.Len(t, svc.timers, 1)
	svc.mu.Unlock()
}

func TestScheduleProductReminderSkips(t *testing.T) {
	svc, db, _ := setupNotificationTest(t)

	// Disabled settings arm nothing.
	disabled := createUser(t, db, "ExponentPushToken[abc]")
	product := &entities.Product{ID: uuid.New(), ProductName: "Milk", Expires: time.Now().Add(48 * time.Hour).UnixMilli()}
	svc.ScheduleProductReminder(context.Background(), disabled.ID.String(), product)

	// A user without a push token arms nothing either.
	tokenless := createUser(t, db, "")
	_, err := svc.SaveSettings(context.Background(), domain.SaveNotificationSettingsRequest{
		Enabled: true, DaysBefore: 0, Hour: 23, Minute: 59,
	}, tokenless.ID.String())
	require.NoError(t, err)
	svc.ScheduleProductReminder(context.Background(), tokenless.ID.String(), product)

	// Products without expiry are never scheduled.
	active := createUser(t, db, "ExponentPushToken[abc]")
	_, err = svc.SaveSettings(context.Background(), domain.SaveNotificationSettingsRequest{
		Enabled: true, DaysBefore: 0, Hour: 23, Minute: 59,
	}, active.ID.String())
	require.NoError(t, err)
	svc.ScheduleProductReminder(context.Background(), active.ID.String(), &entities.Product{ID: uuid.New(), ProductName: "Salt"})

	svc.mu.Lock()
	assert.Empty(t, svc.timers)
	svc.mu.Unlock()
}

func TestSweepPushesRemindersInCurrentWindow(t *testing.T) {
	svc, db, pusher := setupNotificationTest(t)
	u := createUser(t, db, "ExponentPushToken[abc]")

	_, err := svc.SaveSettings(context.Background(), domain.SaveNotificationSettingsRequest{
		Enabled:    true,
		DaysBefore: 2,
		Hour:       time.Now().Hour(),
		Minute:     time.Now().Minute(),
	}, u.ID.String())
	require.NoError(t, err)

	household := &entities.Household{ID: uuid.New(), OwnerUID: u.ID, Name: "Home"}
	require.NoError(t, db.Create(household).Error)
	require.NoError(t, db.Create(&entities.HouseholdParticipant{HouseholdID: household.ID, UserID: u.ID}).Error)

	// Expires two days out, so its reminder slot is right now.
	inWindow := &entities.Product{
		ID:          uuid.New(),
		ProductName: "Milk",
		HouseholdID: household.ID,
		Expires:     time.Now().AddDate(0, 0, 2).UnixMilli(),
	}
	require.NoError(t, db.Create(inWindow).Error)

	// Expires three weeks out; its slot is far outside the current hour.
	outOfWindow := &entities.Product{
		ID:          uuid.New(),
		ProductName: "Cheese",
		HouseholdID: household.ID,
		Expires:     time.Now().AddDate(0, 0, 21).UnixMilli(),
	}
	require.NoError(t, db.Create(outOfWindow).Error)

	svc.sweep()

	require.Equal(t, 1, pusher.count())
	assert.Contains(t, pusher.pushes[0], "Milk")
	assert.Contains(t, pusher.pushes[0], "ExponentPushToken[abc]")
}

func TestSweepArmsTimerForSlotLaterThisHour(t *testing.T) {
	svc, db, pusher := setupNotificationTest(t)
	u := createUser(t, db, "ExponentPushToken[abc]")

	now := time.Now()
	slot := now.Add(2 * time.Minute)
	if slot.Hour() != now.Hour() {
		t.Skip("slot would fall into the next sweep window")
	}

	_, err := svc.SaveSettings(context.Background(), domain.SaveNotificationSettingsRequest{
		Enabled:    true,
		DaysBefore: 2,
		Hour:       slot.Hour(),
		Minute:     slot.Minute(),
	}, u.ID.String())
	require.NoError(t, err)

	household := &entities.Household{ID: uuid.New(), OwnerUID: u.ID, Name: "Home"}
	require.NoError(t, db.Create(household).Error)
	require.NoError(t, db.Create(&entities.HouseholdParticipant{HouseholdID: household.ID, UserID: u.ID}).Error)

	// Expires two days out, so its reminder slot is two minutes from now.
	product := &entities.Product{
		ID:          uuid.New(),
		ProductName: "Milk",
		HouseholdID: household.ID,
		Expires:     now.AddDate(0, 0, 2).UnixMilli(),
	}
	require.NoError(t, db.Create(product).Error)

	svc.sweep()

	// Nothing is delivered early; a timer waits for the configured minute.
	assert.Zero(t, pusher.count())
	svc.mu.Lock()
	assert.Len(t, svc.timers, 1)
	svc.mu.Unlock()
}

func TestSweepIgnoresWastedProducts(t *testing.T) {
	svc, db, pusher := setupNotificationTest(t)
	u := createUser(t, db, "ExponentPushToken[abc]")

	_, err := svc.SaveSettings(context.Background(), domain.SaveNotificationSettingsRequest{
		Enabled:    true,
		DaysBefore: 2,
		Hour:       time.Now().Hour(),
		Minute:     time.Now().Minute(),
	}, u.ID.String())
	require.NoError(t, err)

	household := &entities.Household{ID: uuid.New(), OwnerUID: u.ID, Name: "Home"}
	require.NoError(t, db.Create(household).Error)
	require.NoError(t, db.Create(&entities.HouseholdParticipant{HouseholdID: household.ID, UserID: u.ID}).Error)

	wasted := &entities.Product{
		ID:          uuid.New(),
		ProductName: "Milk",
		HouseholdID: household.ID,
		Expires:     time.Now().AddDate(0, 0, 2).UnixMilli(),
		Wasted:      true,
	}
	require.NoError(t, db.Create(wasted).Error)

	svc.sweep()
	assert.Zero(t, pusher.count())
}
