package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/calo-work-stack/Calo-sub001/config"
	"github.com/calo-work-stack/Calo-sub001/models"

	"gorm.io/gorm"
)

const (
	xpPerCompletion = 25
	xpFullDayBonus  = 50
)

var ErrAlreadyCompleted = errors.New("meal already completed")

// LevelForXP returns the level reached at a cumulative XP total.
// Reaching level n+1 requires 100·n(n+1)/2 XP, so early levels come
// quickly and the curve flattens out.
func LevelForXP(xp int) int {
	level := 1
	for xp >= xpToReach(level+1) {
		level++
	}
	return level
}

// xpToReach is the cumulative XP needed to hit the given level.
func xpToReach(level int) int {
	n := level - 1
	return 100 * n * (n + 1) / 2
}

// NextLevelXP is the cumulative threshold for the level after current.
func NextLevelXP(xp int) int {
	return xpToReach(LevelForXP(xp) + 1)
}

// AdvanceStreak applies one completion on `day` to a (current, last)
// streak pair. Same-day repeats do not increment; a gap resets to 1.
func AdvanceStreak(current int, last time.Time, day time.Time) int {
	switch {
	case last.IsZero() || current == 0:
		return 1
	case sameDay(day, last):
		return current
	case sameDay(day, last.AddDate(0, 0, 1)):
		return current + 1
	default:
		return 1
	}
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

var streakBadges = map[int]string{3: "streak_3", 7: "streak_7", 30: "streak_30", 100: "streak_100"}
var levelBadges = map[int]string{5: "level_5", 10: "level_10", 25: "level_25"}

// CompleteMeal records that a recommended meal was eaten and applies
// XP, streak and badge updates. Idempotent: a second completion of the
// same meal returns ErrAlreadyCompleted and changes nothing.
func CompleteMeal(userID, menuID, mealID uint) (*models.UserGamification, error) {
	// the meal must belong to a non-expired menu of this user
	var meal models.RecommendedMeal
	err := config.DB.
		Joins("JOIN recommended_menus ON recommended_menus.id = recommended_meals.menu_id").
		Where("recommended_meals.id = ? AND recommended_meals.menu_id = ? AND recommended_menus.user_id = ? AND recommended_menus.status <> ?",
			mealID, menuID, userID, models.MenuStatusExpired).
		First(&meal).Error
	if err != nil {
		return nil, err
	}

	var state models.UserGamification
	var leveledUp, streakMoved bool
	var newBadges []string

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.MealCompletion
		if err := tx.Where("user_id = ? AND recommended_meal_id = ?", userID, mealID).
			First(&existing).Error; err == nil {
			return ErrAlreadyCompleted
		}

		now := time.Now()
		completion := models.MealCompletion{
			UserID:            userID,
			RecommendedMealID: mealID,
			MenuID:            menuID,
			CompletedAt:       now,
		}
		if err := tx.Create(&completion).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", userID).
			FirstOrCreate(&state, models.UserGamification{UserID: userID, Level: 1}).Error; err != nil {
			return err
		}

		gained := xpPerCompletion
		if done, err := dayFullyCompleted(tx, userID, menuID, meal.Day); err != nil {
			return err
		} else if done {
			gained += xpFullDayBonus
		}

		today := dayStartLocal(now)
		prevLevel := state.Level
		prevStreak := state.CurrentStreak

		state.XP += gained
		state.Level = LevelForXP(state.XP)
		state.CurrentStreak = AdvanceStreak(state.CurrentStreak, state.LastCompleted, today)
		if state.CurrentStreak > state.BestStreak {
			state.BestStreak = state.CurrentStreak
		}
		state.LastCompleted = today
		leveledUp = state.Level > prevLevel
		streakMoved = state.CurrentStreak != prevStreak

		if err := tx.Save(&state).Error; err != nil {
			return err
		}

		newBadges, err = awardBadges(tx, userID, &state)
		return err
	})
	if err != nil {
		return nil, err
	}

	EmitEvent(userID, "xp.awarded", map[string]any{
		"xp": state.XP, "level": state.Level, "streak": state.CurrentStreak,
	})
	if streakMoved {
		EmitEvent(userID, "streak.updated", map[string]any{
			"streak": state.CurrentStreak, "best": state.BestStreak,
		})
	}
	if leveledUp {
		EmitEvent(userID, "level.up", map[string]any{"level": state.Level})
		EmitPush(userID, "gamification", "Level up!",
			fmt.Sprintf("You reached level %d. Keep it up!", state.Level),
			map[string]string{"type": "level_up"})
	}
	for _, code := range newBadges {
		EmitEvent(userID, "badge.awarded", map[string]any{"badge": code})
		EmitPush(userID, "gamification", "New badge", "You earned the "+code+" badge!",
			map[string]string{"type": "badge", "badge": code})
	}

	return &state, nil
}

// dayFullyCompleted reports whether every meal of the menu's day now
// has a completion row.
func dayFullyCompleted(tx *gorm.DB, userID, menuID uint, day int) (bool, error) {
	var total, done int64
	if err := tx.Model(&models.RecommendedMeal{}).
		Where("menu_id = ? AND day = ?", menuID, day).
		Count(&total).Error; err != nil {
		return false, err
	}
	if err := tx.Model(&models.MealCompletion{}).
		Joins("JOIN recommended_meals ON recommended_meals.id = meal_completions.recommended_meal_id").
		Where("meal_completions.user_id = ? AND recommended_meals.menu_id = ? AND recommended_meals.day = ?",
			userID, menuID, day).
		Count(&done).Error; err != nil {
		return false, err
	}
	return total > 0 && done >= total, nil
}

func awardBadges(tx *gorm.DB, userID uint, state *models.UserGamification) ([]string, error) {
	var candidates []string
	if code, ok := streakBadges[state.CurrentStreak]; ok {
		candidates = append(candidates, code)
	}
	if code, ok := levelBadges[state.Level]; ok {
		candidates = append(candidates, code)
	}

	var granted []string
	for _, code := range candidates {
		var existing models.BadgeAward
		if err := tx.Where("user_id = ? AND code = ?", userID, code).
			First(&existing).Error; err == nil {
			continue
		}
		award := models.BadgeAward{UserID: userID, Code: code, AwardedAt: time.Now()}
		if err := tx.Create(&award).Error; err != nil {
			return granted, err
		}
		granted = append(granted, code)
	}
	return granted, nil
}

// UncompleteMeal removes the completion row. XP and streaks are
// monotonic and are intentionally left untouched. The delete is hard:
// a soft-deleted row would still occupy the unique index and block the
// meal from ever being completed again.
func UncompleteMeal(userID, mealID uint) error {
	return config.DB.Unscoped().
		Where("user_id = ? AND recommended_meal_id = ?", userID, mealID).
		Delete(&models.MealCompletion{}).Error
}

func GetGamificationState(userID uint) (*models.UserGamification, []models.BadgeAward, error) {
	var state models.UserGamification
	if err := config.DB.Where("user_id = ?", userID).
		FirstOrCreate(&state, models.UserGamification{UserID: userID, Level: 1}).Error; err != nil {
		return nil, nil, err
	}
	var badges []models.BadgeAward
	if err := config.DB.Where("user_id = ?", userID).
		Order("awarded_at").Find(&badges).Error; err != nil {
		return nil, nil, err
	}
	return &state, badges, nil
}
