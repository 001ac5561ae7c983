package models

import (
	"time"

	"gorm.io/gorm"
)

// DailyGoal holds each user's daily nutrient-intake targets. It is
// computed from the questionnaire and may be overridden manually.
type DailyGoal struct {
	gorm.Model
	UserID   uint    `gorm:"index;not null"`
	Calories float64 // e.g. 2200 kcal
	Protein  float64 // e.g. 120 g
	Carbs    float64 // e.g. 275 g
	Fat      float64 // e.g. 70 g
	Sodium   float64 // e.g. 2300 mg
	Sugar    float64 // e.g. 50 g
	Manual   bool    // true once the user edits targets by hand
}

// DailyProgress is the materialized intake for one (user, day).
type DailyProgress struct {
	gorm.Model
	UserID uint      `gorm:"index;not null"`
	Date   time.Time `gorm:"index;not null"` // local midnight

	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
	Sodium   float64
	Sugar    float64
}
