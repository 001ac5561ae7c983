package models

import (
	"time"

	"gorm.io/gorm"
)

// UserMealPlan groups weekly schedule entries. At most one plan per
// user is active at a time.
type UserMealPlan struct {
	gorm.Model
	UserID    uint   `gorm:"index;not null"`
	Name      string `gorm:"not null"`
	StartDate time.Time
	Active    bool `gorm:"index;default:false"`

	Schedules []MealPlanSchedule `gorm:"constraint:OnDelete:CASCADE"`
}

type MealPlanSchedule struct {
	gorm.Model
	MealPlanID uint `gorm:"index;not null"`

	Weekday      time.Weekday // 0 = Sunday, matches time.Weekday
	MealType     string       `gorm:"size:16"` // "breakfast"|"lunch"|"dinner"|"snack"
	ReminderTime string       `gorm:"size:5"`  // "HH:MM", 24h

	// Optional link to an AI-recommended meal to cook that day.
	RecommendedMealID *uint
}
