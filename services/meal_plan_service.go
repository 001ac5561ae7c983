package services

import (
	"fmt"
	"time"

	"github.com/calo-work-stack/Calo-sub001/config"
	"github.com/calo-work-stack/Calo-sub001/models"

	"gorm.io/gorm"
)

type ScheduleInput struct {
	Weekday           int    `json:"weekday" binding:"min=0,max=6"`
	MealType          string `json:"meal_type" binding:"required,oneof=breakfast lunch dinner snack"`
	ReminderTime      string `json:"reminder_time"`
	RecommendedMealID *uint  `json:"recommended_meal_id"`
}

type MealPlanInput struct {
	Name      string          `json:"name" binding:"required"`
	StartDate string          `json:"start_date"` // YYYY-MM-DD
	Schedules []ScheduleInput `json:"schedules" binding:"required,min=1"`
}

func CreateMealPlan(userID uint, input MealPlanInput) (*models.UserMealPlan, error) {
	start := time.Now()
	if input.StartDate != "" {
		parsed, err := time.Parse("2006-01-02", input.StartDate)
		if err != nil {
			return nil, fmt.Errorf("invalid start_date, expected YYYY-MM-DD")
		}
		start = parsed
	}

	plan := &models.UserMealPlan{
		UserID:    userID,
		Name:      input.Name,
		StartDate: start,
	}
	for _, s := range input.Schedules {
		if !ValidReminderTime(s.ReminderTime) {
			return nil, fmt.Errorf("invalid reminder_time %q, expected HH:MM", s.ReminderTime)
		}
		plan.Schedules = append(plan.Schedules, models.MealPlanSchedule{
			Weekday:           time.Weekday(s.Weekday),
			MealType:          s.MealType,
			ReminderTime:      s.ReminderTime,
			RecommendedMealID: s.RecommendedMealID,
		})
	}

	if err := config.DB.Create(plan).Error; err != nil {
		return nil, err
	}
	return plan, nil
}

func ListMealPlans(userID uint) ([]models.UserMealPlan, error) {
	var plans []models.UserMealPlan
	err := config.DB.
		Preload("Schedules").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&plans).Error
	return plans, err
}

// ActivateMealPlan makes the plan the user's single active one.
func ActivateMealPlan(userID, planID uint) error {
	return config.DB.Transaction(func(tx *gorm.DB) error {
		var plan models.UserMealPlan
		if err := tx.Where("id = ? AND user_id = ?", planID, userID).First(&plan).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.UserMealPlan{}).
			Where("user_id = ? AND active = ?", userID, true).
			Update("active", false).Error; err != nil {
			return err
		}
		return tx.Model(&plan).Update("active", true).Error
	})
}

func DeleteMealPlan(userID, planID uint) error {
	var plan models.UserMealPlan
	if err := config.DB.Where("id = ? AND user_id = ?", planID, userID).First(&plan).Error; err != nil {
		return err
	}
	return config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meal_plan_id = ?", plan.ID).
			Delete(&models.MealPlanSchedule{}).Error; err != nil {
			return err
		}
		return tx.Delete(&plan).Error
	})
}

type TodayScheduleEntry struct {
	MealType        string                  `json:"meal_type"`
	ReminderTime    string                  `json:"reminder_time"`
	RecommendedMeal *models.RecommendedMeal `json:"recommended_meal,omitempty"`
}

// TodaySchedule resolves the active plan's entries for the current
// weekday, with linked recommended meals loaded.
func TodaySchedule(userID uint, now time.Time) ([]TodayScheduleEntry, error) {
	var plan models.UserMealPlan
	err := config.DB.
		Preload("Schedules", "weekday = ?", int(now.Weekday())).
		Where("user_id = ? AND active = ?", userID, true).
		First(&plan).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return []TodayScheduleEntry{}, nil
		}
		return nil, err
	}

	out := make([]TodayScheduleEntry, 0, len(plan.Schedules))
	for _, s := range plan.Schedules {
		entry := TodayScheduleEntry{MealType: s.MealType, ReminderTime: s.ReminderTime}
		if s.RecommendedMealID != nil {
			var meal models.RecommendedMeal
			if err := config.DB.Preload("Ingredients").
				First(&meal, *s.RecommendedMealID).Error; err == nil {
				entry.RecommendedMeal = &meal
			}
		}
		out = append(out, entry)
	}
	return out, nil
}
