package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	MealSourceManual  = "manual"
	MealSourceAIText  = "ai_text"
	MealSourceAIPhoto = "ai_photo"
)

// One logged Meal (breakfast/lunch/dinner/snack)
type Meal struct {
	gorm.Model
	UserID uint       `gorm:"index;not null"` // FK → users.id
	Type   string     // "breakfast"|"lunch"|"dinner"|"snack"
	AteAt  time.Time  `gorm:"index"`
	Source string     // "manual" | "ai_text" | "ai_photo"
	Items  []MealItem `gorm:"constraint:OnDelete:CASCADE"`
}

// Each MealItem stores the nutrition snapshot at logging time
type MealItem struct {
	gorm.Model
	MealID uint `gorm:"index;not null"`

	Name     string  `gorm:"not null"` // human label, e.g. "Grilled chicken breast"
	Quantity float64 // e.g. 200
	Unit     string  // e.g. "g", "cup", "piece"
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
	Sodium   float64
	Sugar    float64
}
