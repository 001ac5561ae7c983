package services

import (
	"testing"
	"time"

	"github.com/calo-work-stack/Calo-sub001/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListRecentMealItemsSkipsReplacedItems(t *testing.T) {
	setupTestDB(t)

	meal, err := AddMeal(3, "lunch", time.Now(), models.MealSourceManual, []MealItemRequest{
		{Name: "White rice", Quantity: 150, Unit: "g", Calories: 200},
	})
	require.NoError(t, err)

	// editing a meal replaces its items; the old rows must drop out
	// of the recent-items feed
	_, err = UpdateMeal(3, meal.ID, "lunch", time.Now(), []MealItemRequest{
		{Name: "Brown rice", Quantity: 150, Unit: "g", Calories: 180},
	})
	require.NoError(t, err)

	items, err := ListRecentMealItems(3, 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Brown rice", items[0].Name)
}

func TestListRecentMealItemsSkipsDeletedMeals(t *testing.T) {
	setupTestDB(t)

	meal, err := AddMeal(4, "dinner", time.Now(), models.MealSourceManual, []MealItemRequest{
		{Name: "Pasta", Quantity: 200, Unit: "g", Calories: 450},
	})
	require.NoError(t, err)
	require.NoError(t, DeleteMeal(4, meal.ID))

	items, err := ListRecentMealItems(4, 10)
	require.NoError(t, err)
	assert.Empty(t, items)
}
