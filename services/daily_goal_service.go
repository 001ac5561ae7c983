// services/daily_goal_service.go
package services

import (
	"errors"
	"time"

	"github.com/calo-work-stack/Calo-sub001/config"
	"github.com/calo-work-stack/Calo-sub001/models"
	"github.com/calo-work-stack/Calo-sub001/utils"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func dayStartLocal(t time.Time) time.Time {
	loc := time.Local
	tt := t.In(loc)
	return time.Date(tt.Year(), tt.Month(), tt.Day(), 0, 0, 0, 0, loc)
}

// GetGoalsAndProgress aggregates today's logged intake against the
// user's targets and upserts the materialized DailyProgress row.
func GetGoalsAndProgress(userID uint) (*models.DailyGoal, map[string]interface{}, error) {
	return getGoalsAndProgressForDay(userID, time.Now())
}

func GetGoalsAndProgressByDate(userID uint, date time.Time) (*models.DailyGoal, map[string]interface{}, error) {
	return getGoalsAndProgressForDay(userID, date)
}

func getGoalsAndProgressForDay(userID uint, day time.Time) (*models.DailyGoal, map[string]interface{}, error) {
	var goal models.DailyGoal
	err := config.DB.Where("user_id = ?", userID).First(&goal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			goal = models.DailyGoal{UserID: userID}
		} else {
			return nil, nil, err
		}
	}

	start := dayStartLocal(day)
	end := start.Add(24 * time.Hour)

	meals, err := ListMealsByDateRange(userID, start, end)
	if err != nil {
		return &goal, nil, err
	}

	var cals, prot, carbs, fat, sodium, sugar float64
	for _, m := range meals {
		for _, it := range m.Items {
			cals += it.Calories
			prot += it.Protein
			carbs += it.Carbs
			fat += it.Fat
			sodium += it.Sodium
			sugar += it.Sugar
		}
	}

	dp := models.DailyProgress{
		UserID:   userID,
		Date:     start,
		Calories: cals,
		Protein:  prot,
		Carbs:    carbs,
		Fat:      fat,
		Sodium:   sodium,
		Sugar:    sugar,
	}
	if err := config.DB.
		Where("user_id = ? AND date = ?", userID, start).
		Assign(dp).
		FirstOrCreate(&dp).Error; err != nil {
		log.WithError(err).WithField("user", userID).Warn("daily progress upsert failed")
	}

	pct := func(consumed, target float64) float64 {
		if target <= 0 {
			return 0
		}
		p := consumed / target
		if p > 1 {
			return 1
		}
		return p
	}

	progress := map[string]interface{}{
		"calories": map[string]float64{"consumed": cals, "goal": goal.Calories, "percent": pct(cals, goal.Calories)},
		"protein":  map[string]float64{"consumed": prot, "goal": goal.Protein, "percent": pct(prot, goal.Protein)},
		"carbs":    map[string]float64{"consumed": carbs, "goal": goal.Carbs, "percent": pct(carbs, goal.Carbs)},
		"fat":      map[string]float64{"consumed": fat, "goal": goal.Fat, "percent": pct(fat, goal.Fat)},
		"sodium":   map[string]float64{"consumed": sodium, "goal": goal.Sodium, "percent": pct(sodium, goal.Sodium)},
		"sugar":    map[string]float64{"consumed": sugar, "goal": goal.Sugar, "percent": pct(sugar, goal.Sugar)},
	}
	progress["warnings"] = utils.AssessDailyIntake(utils.DailyIntake{
		Calories: cals, Protein: prot, Carbs: carbs, Fat: fat,
		Sodium: sodium, Sugar: sugar,
	}, goal.Calories)

	return &goal, progress, nil
}

// UpsertGoals stores a manual override of the computed targets; the
// questionnaire no longer recalculates them afterwards.
func UpsertGoals(userID uint, calories, protein, carbs, fat, sodium, sugar float64) error {
	var goal models.DailyGoal
	err := config.DB.Where("user_id = ?", userID).First(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		goal = models.DailyGoal{
			UserID:   userID,
			Calories: calories,
			Protein:  protein,
			Carbs:    carbs,
			Fat:      fat,
			Sodium:   sodium,
			Sugar:    sugar,
			Manual:   true,
		}
		return config.DB.Create(&goal).Error
	}
	if err != nil {
		return err
	}

	goal.Calories = calories
	goal.Protein = protein
	goal.Carbs = carbs
	goal.Fat = fat
	goal.Sodium = sodium
	goal.Sugar = sugar
	goal.Manual = true

	return config.DB.Save(&goal).Error
}

func GetAllDailyProgress(userID uint) ([]models.DailyProgress, error) {
	var logs []models.DailyProgress
	err := config.DB.
		Where("user_id = ?", userID).
		Order("date desc").
		Find(&logs).Error
	return logs, err
}
