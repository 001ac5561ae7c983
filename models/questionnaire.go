package models

import "gorm.io/gorm"

// Questionnaire is the onboarding survey used to personalize menu
// generation prompts and to derive the user's daily targets.
type Questionnaire struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex;not null"`

	Goal              string `gorm:"size:16"`   // "lose" | "maintain" | "gain"
	ActivityLevel     string `gorm:"size:16"`   // "sedentary" | "light" | "moderate" | "active" | "very_active"
	DietaryPreference string `gorm:"size:16"`   // "none" | "vegetarian" | "vegan" | "keto" | "paleo"
	Allergies         string `gorm:"type:text"` // comma-separated
	DislikedFoods     string `gorm:"type:text"` // comma-separated
	MealsPerDay       int    `gorm:"default:3"`
	Lifestyle         string `gorm:"type:text"` // free text, validated before storing
}
