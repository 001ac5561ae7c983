package services

import (
	"testing"
	"time"

	"github.com/calo-work-stack/Calo-sub001/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMenuJSON(t *testing.T) {
	raw := `{
        "title": "High protein week",
        "days": [
            {"day": 1, "meals": [
                {"type": "breakfast", "name": "Omelette", "calories": 400, "protein": 30, "carbs": 5, "fat": 28,
                 "ingredients": [{"name": "Eggs", "quantity": 3, "unit": "piece"}]},
                {"type": "dinner", "name": "Chicken and rice", "calories": 700, "protein": 45, "carbs": 70, "fat": 18}
            ]}
        ]
    }`

	p, err := ParseMenuJSON(raw, 7)
	require.NoError(t, err)
	assert.Equal(t, "High protein week", p.Title)
	require.Len(t, p.Days, 1)
	require.Len(t, p.Days[0].Meals, 2)
	assert.Equal(t, "Omelette", p.Days[0].Meals[0].Name)
}

func TestParseMenuJSONRejectsBadPayloads(t *testing.T) {
	_, err := ParseMenuJSON(`not json`, 7)
	assert.Error(t, err)

	_, err = ParseMenuJSON(`{"title":"x","days":[]}`, 7)
	assert.Error(t, err)

	_, err = ParseMenuJSON(`{"days":[{"day":1,"meals":[]}]}`, 7)
	assert.Error(t, err)

	_, err = ParseMenuJSON(`{"days":[{"day":1,"meals":[{"type":"lunch","name":""}]}]}`, 7)
	assert.Error(t, err)

	_, err = ParseMenuJSON(`{"days":[{"day":1,"meals":[{"type":"lunch","name":"Soup","calories":-10}]}]}`, 7)
	assert.Error(t, err)
}

func TestParseMenuJSONNormalizes(t *testing.T) {
	raw := `{"days":[
        {"day": 0, "meals": [{"type": "brunch", "name": "Bowl", "calories": 500}]},
        {"day": 2, "meals": [{"type": "dinner", "name": "Stew", "calories": 600}]}
    ]}`

	p, err := ParseMenuJSON(raw, 7)
	require.NoError(t, err)

	// missing day numbers are filled positionally
	assert.Equal(t, 1, p.Days[0].Day)
	// unknown meal types fall back to lunch
	assert.Equal(t, "lunch", p.Days[0].Meals[0].Type)
	assert.Equal(t, "dinner", p.Days[1].Meals[0].Type)
}

func TestParseMenuJSONTruncatesRunawayDays(t *testing.T) {
	raw := `{"days":[
        {"day":1,"meals":[{"type":"lunch","name":"A"}]},
        {"day":2,"meals":[{"type":"lunch","name":"B"}]},
        {"day":3,"meals":[{"type":"lunch","name":"C"}]}
    ]}`

	p, err := ParseMenuJSON(raw, 2)
	require.NoError(t, err)
	assert.Len(t, p.Days, 2)
}

func TestFlatten(t *testing.T) {
	p, err := ParseMenuJSON(`{"days":[{"day":1,"meals":[
        {"type":"breakfast","name":"Oats","calories":350,
         "ingredients":[{"name":"Oats","quantity":80,"unit":"g"},{"name":"Milk","quantity":200,"unit":"ml"}]}
    ]}]}`, 7)
	require.NoError(t, err)

	meals := p.flatten(9)
	require.Len(t, meals, 1)
	assert.Equal(t, uint(9), meals[0].MenuID)
	assert.Equal(t, 1, meals[0].Day)
	assert.Len(t, meals[0].Ingredients, 2)
	assert.Equal(t, "Milk", meals[0].Ingredients[1].Name)
}

func TestPlaceholderMeals(t *testing.T) {
	meals := placeholderMeals(7, 3, 2100)
	assert.Len(t, meals, 21)

	// each day gets breakfast, lunch, dinner in order
	assert.Equal(t, "breakfast", meals[0].Type)
	assert.Equal(t, "lunch", meals[1].Type)
	assert.Equal(t, "dinner", meals[2].Type)
	assert.Equal(t, 1, meals[0].Day)
	assert.Equal(t, 2, meals[3].Day)

	// calories split evenly across the day
	assert.InDelta(t, 700.0, meals[0].Calories, 0.01)
}

func TestPlaceholderMealsClampsMealsPerDay(t *testing.T) {
	low := placeholderMeals(1, 0, 2000)
	assert.Len(t, low, 2)

	high := placeholderMeals(1, 9, 2000)
	assert.Len(t, high, 5)
}

func TestBuildMenuPromptNilSafe(t *testing.T) {
	prompt := BuildMenuPrompt(nil, nil, 7)
	assert.NotEmpty(t, prompt)

	q := &models.Questionnaire{
		Goal:              "lose",
		DietaryPreference: "vegetarian",
		Allergies:         "peanuts",
		DislikedFoods:     "mushrooms",
		MealsPerDay:       3,
	}
	goal := &models.DailyGoal{Calories: 1800, Protein: 135, Carbs: 180, Fat: 60}

	full := BuildMenuPrompt(q, goal, 7)
	assert.Contains(t, full, "vegetarian")
	assert.Contains(t, full, "peanuts")
	assert.Contains(t, full, "1800")
}

func TestBuildMealPrompt(t *testing.T) {
	prompt := BuildMealPrompt(nil, nil, "dinner")
	assert.Contains(t, prompt, "dinner")
}

func TestListHidesMenusPastExpiresAt(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMenuService(nil, nil)

	// still marked active but past its expiry: the daily sweep has
	// not run yet, the menu must be hidden regardless
	stale := models.RecommendedMenu{
		UserID:    5,
		Title:     "Last week",
		Status:    models.MenuStatusActive,
		Days:      7,
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	fresh := models.RecommendedMenu{
		UserID:    5,
		Title:     "This week",
		Status:    models.MenuStatusActive,
		Days:      7,
		ExpiresAt: time.Now().Add(72 * time.Hour),
	}
	require.NoError(t, db.Create(&stale).Error)
	require.NoError(t, db.Create(&fresh).Error)

	menus, err := svc.List(5, false)
	require.NoError(t, err)
	require.Len(t, menus, 1)
	assert.Equal(t, fresh.ID, menus[0].ID)

	_, err = svc.Get(5, stale.ID)
	assert.Error(t, err)

	all, err := svc.List(5, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
