package models

import "time"

// NotificationPreference controls which pushes a user receives and when
// meal reminders fire (times are "HH:MM" in the user's timezone).
type NotificationPreference struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"uniqueIndex;not null"`

	Enabled       bool   `gorm:"default:true"`
	BreakfastTime string `gorm:"size:5"` // "" disables the reminder
	LunchTime     string `gorm:"size:5"`
	DinnerTime    string `gorm:"size:5"`
	SnackTime     string `gorm:"size:5"`
	Timezone      string `gorm:"size:64;default:UTC"` // IANA name

	MenuExpiryAlerts   bool `gorm:"default:true"`
	GamificationAlerts bool `gorm:"default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ReminderDispatch guarantees at-most-once delivery of a scheduled
// reminder per (user, meal type, local date).
type ReminderDispatch struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index;not null;uniqueIndex:idx_dispatch_once"`
	MealType  string `gorm:"size:16;not null;uniqueIndex:idx_dispatch_once"`
	LocalDate string `gorm:"size:10;not null;uniqueIndex:idx_dispatch_once"` // YYYY-MM-DD in the user's TZ
	SentAt    time.Time
}

// UserDevice is a registered push target (SNS platform endpoint).
type UserDevice struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"index"`
	Platform    string `gorm:"size:16"` // "android" | "ios"
	TokenHash   string `gorm:"size:64"`
	EndpointARN string `gorm:"size:256"`
	Enabled     bool   `gorm:"default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
