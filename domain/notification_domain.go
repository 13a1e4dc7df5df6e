package domain

var (
	MessageSuccessGetSettings  = "notification settings retrieved successfully"
	MessageSuccessSaveSettings = "notification settings saved successfully"

	MessageFailedGetSettings  = "failed to retrieve notification settings"
	MessageFailedSaveSettings = "failed to save notification settings"
)

// Defaults applied when a user has no stored notification settings yet.
const (
	DefaultDaysBefore         = 5
	DefaultNotificationHour   = 12
	DefaultNotificationMinute = 0
)

type (
	SaveNotificationSettingsRequest struct {
		Enabled    bool `json:"enabled"`
		DaysBefore int  `json:"days_before" validate:"omitempty,min=0,max=60"`
		Hour       int  `json:"hour" validate:"min=0,max=23"`
		Minute     int  `json:"minute" validate:"min=0,max=59"`
	}

	NotificationSettingsResponse struct {
		Enabled    bool `json:"enabled"`
		DaysBefore int  `json:"days_before"`
		Hour       int  `json:"hour"`
		Minute     int  `json:"minute"`
	}
)
