// services/meal_service.go
package services

import (
	"fmt"
	"time"

	"github.com/calo-work-stack/Calo-sub001/config"
	"github.com/calo-work-stack/Calo-sub001/models"
)

var validMealTypes = map[string]bool{
	"breakfast": true, "lunch": true, "dinner": true, "snack": true,
}

type MealItemRequest struct {
	Name     string  `json:"name" binding:"required"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Sodium   float64 `json:"sodium"`
	Sugar    float64 `json:"sugar"`
}

func itemFromRequest(mealID uint, it MealItemRequest) *models.MealItem {
	return &models.MealItem{
		MealID:   mealID,
		Name:     it.Name,
		Quantity: it.Quantity,
		Unit:     it.Unit,
		Calories: it.Calories,
		Protein:  it.Protein,
		Carbs:    it.Carbs,
		Fat:      it.Fat,
		Sodium:   it.Sodium,
		Sugar:    it.Sugar,
	}
}

func ItemsFromAnalysis(analyzed []AnalyzedItem) []MealItemRequest {
	out := make([]MealItemRequest, 0, len(analyzed))
	for _, a := range analyzed {
		out = append(out, MealItemRequest{
			Name:     a.Name,
			Quantity: a.Quantity,
			Unit:     a.Unit,
			Calories: a.Calories,
			Protein:  a.Protein,
			Carbs:    a.Carbs,
			Fat:      a.Fat,
			Sodium:   a.Sodium,
			Sugar:    a.Sugar,
		})
	}
	return out
}

func AddMeal(userID uint, mealType string, ateAt time.Time, source string, items []MealItemRequest) (*models.Meal, error) {
	if !validMealTypes[mealType] {
		return nil, fmt.Errorf("unknown meal type %q", mealType)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("meal needs at least one item")
	}
	if ateAt.IsZero() {
		ateAt = time.Now()
	}
	if source == "" {
		source = "manual"
	}

	meal := &models.Meal{UserID: userID, Type: mealType, AteAt: ateAt, Source: source}
	if err := config.DB.Create(meal).Error; err != nil {
		return nil, err
	}

	for _, it := range items {
		if err := config.DB.Create(itemFromRequest(meal.ID, it)).Error; err != nil {
			return nil, err
		}
	}

	// reload with items
	var populated models.Meal
	if err := config.DB.Preload("Items").First(&populated, meal.ID).Error; err != nil {
		return nil, err
	}
	return &populated, nil
}

func ListMeals(userID uint) ([]models.Meal, error) {
	var meals []models.Meal
	err := config.DB.
		Preload("Items").
		Where("user_id = ?", userID).
		Order("ate_at DESC").
		Find(&meals).Error
	return meals, err
}

func GetMeal(userID, mealID uint) (*models.Meal, error) {
	var meal models.Meal
	err := config.DB.
		Preload("Items").
		Where("id = ? AND user_id = ?", mealID, userID).
		First(&meal).Error
	if err != nil {
		return nil, err // could be ErrRecordNotFound
	}
	return &meal, nil
}

func UpdateMeal(userID, mealID uint, mealType string, ateAt time.Time, items []MealItemRequest) (*models.Meal, error) {
	if !validMealTypes[mealType] {
		return nil, fmt.Errorf("unknown meal type %q", mealType)
	}

	var meal models.Meal
	if err := config.DB.
		Where("id = ? AND user_id = ?", mealID, userID).
		First(&meal).Error; err != nil {
		return nil, err
	}
	meal.Type = mealType
	meal.AteAt = ateAt
	if err := config.DB.Save(&meal).Error; err != nil {
		return nil, err
	}

	// replace items wholesale
	if err := config.DB.
		Where("meal_id = ?", meal.ID).
		Delete(&models.MealItem{}).Error; err != nil {
		return nil, err
	}
	for _, it := range items {
		if err := config.DB.Create(itemFromRequest(meal.ID, it)).Error; err != nil {
			return nil, err
		}
	}

	var updated models.Meal
	if err := config.DB.Preload("Items").First(&updated, meal.ID).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

func DeleteMeal(userID, mealID uint) error {
	if err := config.DB.
		Where("meal_id = ?", mealID).
		Delete(&models.MealItem{}).Error; err != nil {
		return err
	}
	return config.DB.
		Where("id = ? AND user_id = ?", mealID, userID).
		Delete(&models.Meal{}).Error
}

func ListMealsByDateRange(userID uint, from, to time.Time) ([]models.Meal, error) {
	var meals []models.Meal
	err := config.DB.
		Preload("Items").
		Where("user_id = ? AND ate_at >= ? AND ate_at < ?", userID, from, to).
		Order("ate_at DESC").
		Find(&meals).Error
	return meals, err
}

// Flat recent-items list, handy for a simple card UI.
type RecentMealItem struct {
	ID       uint      `json:"id"`
	MealID   uint      `json:"meal_id"`
	Name     string    `json:"name"`
	Calories float64   `json:"calories"`
	AteAt    time.Time `json:"ate_at"`
}

func ListRecentMealItems(userID uint, limit int) ([]RecentMealItem, error) {
	if limit <= 0 {
		limit = 3
	}
	var rows []RecentMealItem
	err := config.DB.
		Table("meal_items").
		Select("meal_items.id, meal_items.meal_id, meal_items.name, meal_items.calories, meals.ate_at").
		Joins("JOIN meals ON meals.id = meal_items.meal_id").
		Where("meals.user_id = ? AND meals.deleted_at IS NULL AND meal_items.deleted_at IS NULL", userID).
		Order("meals.ate_at DESC, meal_items.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
