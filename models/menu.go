package models

import (
	"time"

	"gorm.io/gorm"
)

// Menu lifecycle statuses.
const (
	MenuStatusPending  = "pending"  // placeholder created, AI enhancement in flight
	MenuStatusActive   = "active"   // AI enhancement applied
	MenuStatusFallback = "fallback" // AI failed, placeholder kept
	MenuStatusExpired  = "expired"  // past ExpiresAt, hidden from default listings
)

// RecommendedMenu is an AI-generated multi-day meal plan. A placeholder
// row is created synchronously on generation and enhanced in the
// background; Status tracks that lifecycle.
type RecommendedMenu struct {
	gorm.Model
	UserID    uint `gorm:"index;not null"`
	Title     string
	Status    string    `gorm:"size:16;index;default:pending"`
	Days      int       // number of days the menu covers
	ExpiresAt time.Time `gorm:"index"`

	Meals []RecommendedMeal `gorm:"foreignKey:MenuID;constraint:OnDelete:CASCADE"`
}

type RecommendedMeal struct {
	gorm.Model
	MenuID uint `gorm:"index;not null"`

	Day         int    // 1-based day within the menu
	Type        string // "breakfast"|"lunch"|"dinner"|"snack"
	Name        string
	Description string `gorm:"type:text"`
	ImageURL    string
	Calories    float64
	Protein     float64
	Carbs       float64
	Fat         float64
	PrepMinutes int

	Ingredients []RecommendedIngredient `gorm:"constraint:OnDelete:CASCADE"`
}

type RecommendedIngredient struct {
	gorm.Model
	RecommendedMealID uint `gorm:"index;not null"`

	Name     string `gorm:"not null"`
	Quantity float64
	Unit     string
}

// MealCompletion is a user-logged confirmation that a recommended meal
// was eaten. One row per (user, meal); completion is idempotent.
type MealCompletion struct {
	gorm.Model
	UserID            uint      `gorm:"index;not null;uniqueIndex:idx_completion_user_meal"`
	RecommendedMealID uint      `gorm:"not null;uniqueIndex:idx_completion_user_meal"`
	MenuID            uint      `gorm:"index;not null"`
	CompletedAt       time.Time `gorm:"index"`
}
