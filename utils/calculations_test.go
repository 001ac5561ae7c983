package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateAge(t *testing.T) {
	now := time.Now()

	assert.Equal(t, 30, CalculateAge(now.AddDate(-30, 0, -1)))
	assert.Equal(t, 0, CalculateAge(now.AddDate(0, 0, -100)))
	assert.Equal(t, 0, CalculateAge(now.AddDate(1, 0, 0))) // future birthday clamps to 0
}

func TestCalculateBMI(t *testing.T) {
	bmi, err := CalculateBMI(180, 81)
	require.NoError(t, err)
	assert.InDelta(t, 25.0, bmi, 0.01)

	_, err = CalculateBMI(0, 80)
	assert.Error(t, err)

	_, err = CalculateBMI(180, 500)
	assert.Error(t, err)
}

func TestBMICategory(t *testing.T) {
	assert.Equal(t, "Underweight", BMICategory(17.0))
	assert.Equal(t, "Normal weight", BMICategory(22.0))
	assert.Equal(t, "Overweight", BMICategory(27.5))
	assert.Equal(t, "Obesity class I", BMICategory(32.0))
	assert.Equal(t, "Obesity class III", BMICategory(42.0))
}

func TestCalculateBMR(t *testing.T) {
	// Mifflin-St Jeor: 10*70 + 6.25*175 - 5*30 = 1643.75
	male, err := CalculateBMR("male", 30, 175, 70)
	require.NoError(t, err)
	assert.InDelta(t, 1648.75, male, 0.01)

	female, err := CalculateBMR("female", 30, 175, 70)
	require.NoError(t, err)
	assert.InDelta(t, 1482.75, female, 0.01)

	// unspecified sex lands between the two offsets
	other, err := CalculateBMR("", 30, 175, 70)
	require.NoError(t, err)
	assert.Greater(t, other, female)
	assert.Less(t, other, male)

	_, err = CalculateBMR("male", 0, 175, 70)
	assert.Error(t, err)
}

func TestActivityFactor(t *testing.T) {
	assert.Equal(t, 1.2, ActivityFactor("sedentary"))
	assert.Equal(t, 1.9, ActivityFactor("very_active"))
	assert.Equal(t, 1.2, ActivityFactor("couch potato")) // unknown falls back
}

func TestGoalAdjustment(t *testing.T) {
	assert.Equal(t, -500.0, GoalAdjustment("lose"))
	assert.Equal(t, 400.0, GoalAdjustment("gain"))
	assert.Equal(t, 0.0, GoalAdjustment("maintain"))
}

func TestMacroTargets(t *testing.T) {
	p, c, f := MacroTargets(2000, "none")
	assert.Equal(t, 150.0, p) // 2000*0.30/4
	assert.Equal(t, 200.0, c) // 2000*0.40/4
	assert.InDelta(t, 67.0, f, 0.5)

	p, c, f = MacroTargets(2000, "keto")
	assert.Equal(t, 125.0, p)
	assert.Equal(t, 50.0, c)
	assert.InDelta(t, 144.0, f, 0.5)
}

func TestCalculateDailyCalories(t *testing.T) {
	cal, err := CalculateDailyCalories("male", 30, 175, 70, "moderate", "maintain")
	require.NoError(t, err)
	assert.InDelta(t, 2556.0, cal, 1.0) // 1648.75 * 1.55

	// aggressive deficit on a small frame clamps at the floor
	cal, err = CalculateDailyCalories("female", 60, 150, 45, "sedentary", "lose")
	require.NoError(t, err)
	assert.Equal(t, 1200.0, cal)

	_, err = CalculateDailyCalories("male", -1, 175, 70, "moderate", "lose")
	assert.Error(t, err)
}
