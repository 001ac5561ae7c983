package services

import (
	"testing"
	"time"

	"github.com/calo-work-stack/Calo-sub001/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpiringWithin(t *testing.T) {
	now := time.Date(2026, time.May, 1, 10, 0, 0, 0, time.UTC)
	window := 24 * time.Hour

	// expires in 12h → inside the window
	assert.True(t, ExpiringWithin(now.Add(12*time.Hour), now, window))

	// exactly at the window edge still counts
	assert.True(t, ExpiringWithin(now.Add(24*time.Hour), now, window))

	// too far out
	assert.False(t, ExpiringWithin(now.Add(25*time.Hour), now, window))

	// already expired
	assert.False(t, ExpiringWithin(now.Add(-time.Hour), now, window))
	assert.False(t, ExpiringWithin(now, now, window))
}

func TestPurgeExpiredMenusRemovesRows(t *testing.T) {
	db := setupTestDB(t)

	menu := models.RecommendedMenu{
		UserID:    9,
		Status:    models.MenuStatusExpired,
		Days:      1,
		ExpiresAt: time.Now().Add(-31 * 24 * time.Hour),
		Meals: []models.RecommendedMeal{{
			Day: 1, Type: "dinner", Name: "Lentil soup",
			Ingredients: []models.RecommendedIngredient{{Name: "Lentils"}},
		}},
	}
	require.NoError(t, db.Create(&menu).Error)

	purged, err := PurgeExpiredMenus(time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, purged)

	// purge is a hard delete: not even soft-deleted rows may remain
	var menus, meals, ingredients int64
	db.Unscoped().Model(&models.RecommendedMenu{}).Count(&menus)
	db.Unscoped().Model(&models.RecommendedMeal{}).Count(&meals)
	db.Unscoped().Model(&models.RecommendedIngredient{}).Count(&ingredients)
	assert.Zero(t, menus)
	assert.Zero(t, meals)
	assert.Zero(t, ingredients)
}
