package services

import (
	"testing"
	"time"

	"github.com/calo-work-stack/Calo-sub001/config"
	"github.com/calo-work-stack/Calo-sub001/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelForXP(t *testing.T) {
	assert.Equal(t, 1, LevelForXP(0))
	assert.Equal(t, 1, LevelForXP(99))
	assert.Equal(t, 2, LevelForXP(100)) // level 2 threshold: 100·1·2/2
	assert.Equal(t, 2, LevelForXP(299))
	assert.Equal(t, 3, LevelForXP(300)) // 100·2·3/2
	assert.Equal(t, 4, LevelForXP(600))
	assert.Equal(t, 5, LevelForXP(1000))
}

func TestNextLevelXP(t *testing.T) {
	assert.Equal(t, 100, NextLevelXP(0))
	assert.Equal(t, 300, NextLevelXP(150))
	assert.Equal(t, 600, NextLevelXP(300))
}

func TestAdvanceStreak(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, time.March, d, 12, 0, 0, 0, time.Local)
	}

	// first completion ever
	assert.Equal(t, 1, AdvanceStreak(0, time.Time{}, day(1)))

	// repeat on the same day does not increment
	assert.Equal(t, 4, AdvanceStreak(4, day(10), day(10)))

	// the very next day extends the run
	assert.Equal(t, 5, AdvanceStreak(4, day(10), day(11)))

	// a missed day resets
	assert.Equal(t, 1, AdvanceStreak(4, day(10), day(13)))

	// time of day within the same date is irrelevant
	evening := time.Date(2026, time.March, 11, 23, 30, 0, 0, time.Local)
	assert.Equal(t, 5, AdvanceStreak(4, day(10), evening))
}

func TestAdvanceStreakAcrossMonthBoundary(t *testing.T) {
	last := time.Date(2026, time.March, 31, 9, 0, 0, 0, time.Local)
	next := time.Date(2026, time.April, 1, 9, 0, 0, 0, time.Local)
	assert.Equal(t, 8, AdvanceStreak(7, last, next))
}

func TestCompleteMealAfterUncomplete(t *testing.T) {
	setupTestDB(t)

	menu := models.RecommendedMenu{
		UserID:    7,
		Status:    models.MenuStatusActive,
		Days:      1,
		ExpiresAt: time.Now().Add(48 * time.Hour),
		Meals:     []models.RecommendedMeal{{Day: 1, Type: "lunch", Name: "Grilled salmon"}},
	}
	require.NoError(t, config.DB.Create(&menu).Error)
	mealID := menu.Meals[0].ID

	state, err := CompleteMeal(7, menu.ID, mealID)
	require.NoError(t, err)
	firstXP := state.XP
	assert.Greater(t, firstXP, 0)

	_, err = CompleteMeal(7, menu.ID, mealID)
	assert.ErrorIs(t, err, ErrAlreadyCompleted)

	require.NoError(t, UncompleteMeal(7, mealID))

	// the (user, meal) slot must be reusable once uncompleted; the
	// unique index may not keep a tombstone around
	state, err = CompleteMeal(7, menu.ID, mealID)
	require.NoError(t, err)
	assert.Greater(t, state.XP, firstXP)
}

func TestUncompleteMealLeavesXPAlone(t *testing.T) {
	setupTestDB(t)

	menu := models.RecommendedMenu{
		UserID:    8,
		Status:    models.MenuStatusActive,
		Days:      1,
		ExpiresAt: time.Now().Add(48 * time.Hour),
		Meals:     []models.RecommendedMeal{{Day: 1, Type: "dinner", Name: "Lentil curry"}},
	}
	require.NoError(t, config.DB.Create(&menu).Error)

	state, err := CompleteMeal(8, menu.ID, menu.Meals[0].ID)
	require.NoError(t, err)
	earned := state.XP

	require.NoError(t, UncompleteMeal(8, menu.Meals[0].ID))

	after, _, err := GetGamificationState(8)
	require.NoError(t, err)
	assert.Equal(t, earned, after.XP)
}
