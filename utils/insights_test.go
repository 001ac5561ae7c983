package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func codes(ws []Warning) []string {
	out := make([]string, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.Code)
	}
	return out
}

func TestAssessDailyIntakeClean(t *testing.T) {
	ws := AssessDailyIntake(DailyIntake{
		Calories: 2000, Protein: 120, Carbs: 220, Fat: 60,
		Sodium: 1500, Sugar: 30,
	}, 2000)
	assert.Empty(t, ws)
}

func TestAssessDailyIntakeSodiumAndSugar(t *testing.T) {
	ws := AssessDailyIntake(DailyIntake{
		Calories: 2000, Fat: 60, Sodium: 3000, Sugar: 80,
	}, 2000)

	assert.Contains(t, codes(ws), "SODIUM_OVER_LIMIT")
	assert.Contains(t, codes(ws), "SUGAR_OVER_LIMIT")

	// 80g sugar is 160% of the 50g guideline → escalated severity
	for _, w := range ws {
		if w.Code == "SUGAR_OVER_LIMIT" {
			assert.Equal(t, High, w.Severity)
		}
		if w.Code == "SODIUM_OVER_LIMIT" {
			assert.Equal(t, Caution, w.Severity)
		}
	}
}

func TestAssessDailyIntakeFatShare(t *testing.T) {
	// 120g fat = 1080 kcal out of 2000 → 54% of calories
	ws := AssessDailyIntake(DailyIntake{Calories: 2000, Fat: 120, Sodium: 100}, 2000)
	assert.Contains(t, codes(ws), "FAT_SHARE_HIGH")
}

func TestAssessDailyIntakeCalorieTarget(t *testing.T) {
	over := AssessDailyIntake(DailyIntake{Calories: 3000}, 2000)
	assert.Contains(t, codes(over), "CALORIES_OVER_TARGET")

	under := AssessDailyIntake(DailyIntake{Calories: 800}, 2000)
	assert.Contains(t, codes(under), "CALORIES_UNDER_TARGET")

	// no target means calorie checks are skipped
	none := AssessDailyIntake(DailyIntake{Calories: 3000}, 0)
	assert.NotContains(t, codes(none), "CALORIES_OVER_TARGET")
}
