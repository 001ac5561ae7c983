package services

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/calo-work-stack/Calo-sub001/models"
	"github.com/calo-work-stack/Calo-sub001/utils"

	"gorm.io/gorm"
)

type StatisticsService struct{ db *gorm.DB }

func NewStatisticsService(db *gorm.DB) *StatisticsService { return &StatisticsService{db: db} }

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayEnd(t time.Time) time.Time {
	return dayStart(t).Add(24*time.Hour - time.Nanosecond)
}

// ---------- Summary ----------

type NutrAvg struct {
	AvgConsumed float64 `json:"avg_consumed"`
	AvgGoal     float64 `json:"avg_goal,omitempty"`
	AvgPercent  float64 `json:"avg_percent,omitempty"`
	Unit        string  `json:"unit,omitempty"`
}

type StatisticsSummary struct {
	Range struct {
		From string `json:"from"`
		To   string `json:"to"`
	} `json:"range"`

	Macros map[string]NutrAvg `json:"macros"` // calories, protein, carbs, fat
	Micros map[string]NutrAvg `json:"micros"` // sodium, sugar

	Warnings []utils.Warning `json:"warnings"` // guideline flags over the range averages

	Metadata struct {
		DaysCounted        int  `json:"days_counted"`
		IncludeMissingDays bool `json:"include_missing_days"`
	} `json:"metadata"`
}

func (s *StatisticsService) Summary(
	ctx context.Context, userID uint, from, to time.Time, includeMissing bool,
) (*StatisticsSummary, error) {

	var rows []models.DailyProgress
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, dayStart(from), dayEnd(to)).
		Order("date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	goal, err := s.goalSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	// index rows by yyyy-mm-dd for missing-day handling
	idx := map[string]models.DailyProgress{}
	for _, r := range rows {
		idx[r.Date.Format("2006-01-02")] = r
	}

	type acc struct{ sum, psum float64 }
	m := map[string]*acc{
		"calories": {}, "protein": {}, "carbs": {}, "fat": {},
		"sodium": {}, "sugar": {},
	}

	var dates []time.Time
	if includeMissing {
		for d := dayStart(from); !d.After(to); d = d.AddDate(0, 0, 1) {
			dates = append(dates, d)
		}
	} else {
		for _, r := range rows {
			dates = append(dates, dayStart(r.Date))
		}
	}
	den := len(dates)
	if den == 0 {
		den = 1 // avoid div by zero; will return zeros
	}

	goalFor := map[string]float64{
		"calories": goal.Calories, "protein": goal.Protein, "carbs": goal.Carbs,
		"fat": goal.Fat, "sodium": goal.Sodium, "sugar": goal.Sugar,
	}

	for _, d := range dates {
		dp := idx[d.Format("2006-01-02")] // zero value if not found

		consumed := map[string]float64{
			"calories": dp.Calories, "protein": dp.Protein, "carbs": dp.Carbs,
			"fat": dp.Fat, "sodium": dp.Sodium, "sugar": dp.Sugar,
		}
		for k, a := range m {
			a.sum += consumed[k]
			if g := goalFor[k]; g > 0 {
				a.psum += math.Min(consumed[k]/g, 1)
			}
		}
	}

	out := &StatisticsSummary{
		Macros: map[string]NutrAvg{},
		Micros: map[string]NutrAvg{},
	}
	out.Range.From = dayStart(from).Format("2006-01-02")
	out.Range.To = dayStart(to).Format("2006-01-02")
	out.Metadata.DaysCounted = len(dates)
	out.Metadata.IncludeMissingDays = includeMissing

	units := map[string]string{
		"calories": "kcal", "protein": "g", "carbs": "g", "fat": "g",
		"sodium": "mg", "sugar": "g",
	}
	for k, a := range m {
		avg := NutrAvg{
			AvgConsumed: round2(a.sum / float64(den)),
			AvgGoal:     goalFor[k],
			AvgPercent:  round2(a.psum / float64(den)),
			Unit:        units[k],
		}
		switch k {
		case "sodium", "sugar":
			out.Micros[k] = avg
		default:
			out.Macros[k] = avg
		}
	}

	out.Warnings = utils.AssessDailyIntake(utils.DailyIntake{
		Calories: out.Macros["calories"].AvgConsumed,
		Protein:  out.Macros["protein"].AvgConsumed,
		Carbs:    out.Macros["carbs"].AvgConsumed,
		Fat:      out.Macros["fat"].AvgConsumed,
		Sodium:   out.Micros["sodium"].AvgConsumed,
		Sugar:    out.Micros["sugar"].AvgConsumed,
	}, goal.Calories)

	return out, nil
}

func (s *StatisticsService) goalSnapshot(ctx context.Context, userID uint) (*models.DailyGoal, error) {
	var goal models.DailyGoal
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&goal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.DailyGoal{UserID: userID}, nil
		}
		return nil, err
	}
	return &goal, nil
}

// ---------- Completions ----------

type CompletionStats struct {
	Month      string         `json:"month"` // YYYY-MM
	Total      int64          `json:"total"`
	ByDay      map[string]int `json:"by_day"` // YYYY-MM-DD → count
	CurrentRun int            `json:"current_streak"`
	BestRun    int            `json:"best_streak"`
}

// MonthCompletions builds the streak calendar for one month.
func (s *StatisticsService) MonthCompletions(ctx context.Context, userID uint, year int, month time.Month) (*CompletionStats, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0)

	var completions []models.MealCompletion
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND completed_at >= ? AND completed_at < ?", userID, start, end).
		Find(&completions).Error; err != nil {
		return nil, err
	}

	out := &CompletionStats{
		Month: start.Format("2006-01"),
		ByDay: map[string]int{},
		Total: int64(len(completions)),
	}
	for _, c := range completions {
		out.ByDay[c.CompletedAt.Format("2006-01-02")]++
	}

	var state models.UserGamification
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&state).Error; err == nil {
		out.CurrentRun = state.CurrentStreak
		out.BestRun = state.BestStreak
	}

	return out, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
