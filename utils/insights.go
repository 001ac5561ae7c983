package utils

import (
	"fmt"
	"math"
)

// WarningSeverity categorizes how serious the flag is.
type WarningSeverity string

const (
	Info    WarningSeverity = "info"
	Caution WarningSeverity = "caution"
	High    WarningSeverity = "high"
)

// Warning is a structured finding shown in the API under statistics.
type Warning struct {
	Code           string          `json:"code"`
	Severity       WarningSeverity `json:"severity"`
	Message        string          `json:"message"`
	Metric         string          `json:"metric,omitempty"`
	Value          float64         `json:"value,omitempty"`
	Limit          float64         `json:"limit,omitempty"`
	PercentOfLimit float64         `json:"percent_of_limit,omitempty"`
}

// DailyIntake is one day's totals fed into the assessment.
type DailyIntake struct {
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
	Sodium   float64 // mg
	Sugar    float64 // g
}

// Guideline daily limits (WHO / FDA reference values).
const (
	sodiumLimitMg   = 2300.0
	sugarLimitG     = 50.0
	fatCaloriePct   = 0.35 // fat should stay under 35% of calories
	calorieOverPct  = 1.25 // >125% of target flags an overshoot
	calorieUnderPct = 0.50 // <50% of target flags severe undereating
)

// AssessDailyIntake compares one day's totals against guideline limits
// and the user's calorie target (0 target skips calorie checks).
func AssessDailyIntake(in DailyIntake, calorieTarget float64) []Warning {
	var out []Warning

	if in.Sodium > sodiumLimitMg {
		out = append(out, Warning{
			Code:           "SODIUM_OVER_LIMIT",
			Severity:       severityForRatio(in.Sodium / sodiumLimitMg),
			Message:        fmt.Sprintf("Sodium intake %.0f mg exceeds the %.0f mg daily guideline", in.Sodium, sodiumLimitMg),
			Metric:         "sodium",
			Value:          in.Sodium,
			Limit:          sodiumLimitMg,
			PercentOfLimit: round1(in.Sodium / sodiumLimitMg * 100),
		})
	}

	if in.Sugar > sugarLimitG {
		out = append(out, Warning{
			Code:           "SUGAR_OVER_LIMIT",
			Severity:       severityForRatio(in.Sugar / sugarLimitG),
			Message:        fmt.Sprintf("Added sugar %.0f g exceeds the %.0f g daily guideline", in.Sugar, sugarLimitG),
			Metric:         "sugar",
			Value:          in.Sugar,
			Limit:          sugarLimitG,
			PercentOfLimit: round1(in.Sugar / sugarLimitG * 100),
		})
	}

	if in.Calories > 0 {
		fatCals := in.Fat * 9
		if pct := fatCals / in.Calories; pct > fatCaloriePct {
			out = append(out, Warning{
				Code:     "FAT_SHARE_HIGH",
				Severity: Caution,
				Message:  fmt.Sprintf("Fat contributes %.0f%% of calories (guideline: under %.0f%%)", pct*100, fatCaloriePct*100),
				Metric:   "fat",
				Value:    round1(pct * 100),
				Limit:    fatCaloriePct * 100,
			})
		}
	}

	if calorieTarget > 0 && in.Calories > 0 {
		ratio := in.Calories / calorieTarget
		if ratio > calorieOverPct {
			out = append(out, Warning{
				Code:           "CALORIES_OVER_TARGET",
				Severity:       Caution,
				Message:        fmt.Sprintf("Calories %.0f kcal are well over the %.0f kcal target", in.Calories, calorieTarget),
				Metric:         "calories",
				Value:          in.Calories,
				Limit:          calorieTarget,
				PercentOfLimit: round1(ratio * 100),
			})
		} else if ratio < calorieUnderPct {
			out = append(out, Warning{
				Code:           "CALORIES_UNDER_TARGET",
				Severity:       Info,
				Message:        fmt.Sprintf("Calories %.0f kcal are under half of the %.0f kcal target", in.Calories, calorieTarget),
				Metric:         "calories",
				Value:          in.Calories,
				Limit:          calorieTarget,
				PercentOfLimit: round1(ratio * 100),
			})
		}
	}

	return out
}

func severityForRatio(ratio float64) WarningSeverity {
	if ratio >= 1.5 {
		return High
	}
	return Caution
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
