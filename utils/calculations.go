package utils

import (
	"errors"
	"math"
	"strings"
	"time"
)

// CalculateAge returns full years elapsed since birthday.
func CalculateAge(birthday time.Time) int {
	now := time.Now()
	age := now.Year() - birthday.Year()
	if now.YearDay() < birthday.YearDay() {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

// CalculateBMI expects height in centimeters and weight in kilograms.
func CalculateBMI(heightCm, weightKg float64) (float64, error) {
	if heightCm <= 0 || weightKg <= 0 {
		return 0, errors.New("height and weight must be positive")
	}
	// Sanity checks to avoid garbage input
	if heightCm < 50 || heightCm > 250 || weightKg < 10 || weightKg > 400 {
		return 0, errors.New("height/weight out of plausible range")
	}

	h := heightCm / 100.0 // to meters
	return weightKg / (h * h), nil
}

func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25.0:
		return "Normal weight"
	case bmi < 30.0:
		return "Overweight"
	case bmi < 35.0:
		return "Obesity class I"
	case bmi < 40.0:
		return "Obesity class II"
	default:
		return "Obesity class III"
	}
}

// CalculateBMR uses Mifflin-St Jeor. Sex other than "male"/"female"
// gets the midpoint of the two offsets.
func CalculateBMR(sex string, ageYears int, heightCm, weightKg float64) (float64, error) {
	if heightCm <= 0 || weightKg <= 0 || ageYears <= 0 {
		return 0, errors.New("age, height and weight must be positive")
	}
	base := 10*weightKg + 6.25*heightCm - 5*float64(ageYears)
	switch strings.ToLower(strings.TrimSpace(sex)) {
	case "male", "m":
		return base + 5, nil
	case "female", "f":
		return base - 161, nil
	default:
		return base - 78, nil
	}
}

var activityFactors = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

// ActivityFactor defaults to sedentary for unknown levels.
func ActivityFactor(level string) float64 {
	if f, ok := activityFactors[strings.ToLower(strings.TrimSpace(level))]; ok {
		return f
	}
	return 1.2
}

// GoalAdjustment shifts maintenance calories for the stated goal.
func GoalAdjustment(goal string) float64 {
	switch strings.ToLower(strings.TrimSpace(goal)) {
	case "lose":
		return -500
	case "gain":
		return 400
	default:
		return 0
	}
}

// MacroTargets derives a macro split from a calorie target:
// 30% protein / 40% carbs / 30% fat, in grams. Keto shifts to
// 25/10/65. Values are rounded to whole grams.
func MacroTargets(calories float64, dietaryPreference string) (protein, carbs, fat float64) {
	pPct, cPct, fPct := 0.30, 0.40, 0.30
	if strings.EqualFold(strings.TrimSpace(dietaryPreference), "keto") {
		pPct, cPct, fPct = 0.25, 0.10, 0.65
	}
	protein = math.Round(calories * pPct / 4)
	carbs = math.Round(calories * cPct / 4)
	fat = math.Round(calories * fPct / 9)
	return
}

// CalculateDailyCalories combines BMR, activity and goal, clamped to a
// plausible floor so aggressive deficits never go below 1200 kcal.
func CalculateDailyCalories(sex string, ageYears int, heightCm, weightKg float64, activityLevel, goal string) (float64, error) {
	bmr, err := CalculateBMR(sex, ageYears, heightCm, weightKg)
	if err != nil {
		return 0, err
	}
	cal := bmr*ActivityFactor(activityLevel) + GoalAdjustment(goal)
	if cal < 1200 {
		cal = 1200
	}
	return math.Round(cal), nil
}
