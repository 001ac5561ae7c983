package models

import (
	"time"

	"gorm.io/gorm"
)

// UserGamification is the per-user progression state fed by meal
// completions. XP and streaks are monotonic: un-completing a meal never
// subtracts XP or rewinds a streak.
type UserGamification struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex;not null"`

	XP            int
	Level         int `gorm:"default:1"`
	CurrentStreak int
	BestStreak    int
	LastCompleted time.Time // local date of the last counted completion
}

// BadgeAward records a badge granted once per (user, code).
type BadgeAward struct {
	gorm.Model
	UserID    uint   `gorm:"index;not null;uniqueIndex:idx_badge_user_code"`
	Code      string `gorm:"size:32;not null;uniqueIndex:idx_badge_user_code"`
	AwardedAt time.Time
}
