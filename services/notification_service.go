package services

import (
	"fmt"
	"regexp"
	"time"

	"github.com/calo-work-stack/Calo-sub001/config"
	"github.com/calo-work-stack/Calo-sub001/metrics"
	"github.com/calo-work-stack/Calo-sub001/models"

	log "github.com/sirupsen/logrus"
)

var timeOfDayPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// ValidReminderTime accepts "HH:MM" 24h strings; empty disables.
func ValidReminderTime(s string) bool {
	return s == "" || timeOfDayPattern.MatchString(s)
}

type NotificationPrefInput struct {
	Enabled            *bool   `json:"enabled"`
	BreakfastTime      *string `json:"breakfast_time"`
	LunchTime          *string `json:"lunch_time"`
	DinnerTime         *string `json:"dinner_time"`
	SnackTime          *string `json:"snack_time"`
	Timezone           *string `json:"timezone"`
	MenuExpiryAlerts   *bool   `json:"menu_expiry_alerts"`
	GamificationAlerts *bool   `json:"gamification_alerts"`
}

func GetNotificationPreference(userID uint) (*models.NotificationPreference, error) {
	var pref models.NotificationPreference
	err := config.DB.Where("user_id = ?", userID).
		FirstOrCreate(&pref, models.NotificationPreference{
			UserID: userID, Enabled: true, Timezone: "UTC",
			MenuExpiryAlerts: true, GamificationAlerts: true,
		}).Error
	if err != nil {
		return nil, err
	}
	return &pref, nil
}

func UpdateNotificationPreference(userID uint, input NotificationPrefInput) (*models.NotificationPreference, error) {
	pref, err := GetNotificationPreference(userID)
	if err != nil {
		return nil, err
	}

	for name, v := range map[string]*string{
		"breakfast_time": input.BreakfastTime,
		"lunch_time":     input.LunchTime,
		"dinner_time":    input.DinnerTime,
		"snack_time":     input.SnackTime,
	} {
		if v != nil && !ValidReminderTime(*v) {
			return nil, fmt.Errorf("invalid %s %q, expected HH:MM", name, *v)
		}
	}
	if input.Timezone != nil {
		if _, err := time.LoadLocation(*input.Timezone); err != nil {
			return nil, fmt.Errorf("unknown timezone %q", *input.Timezone)
		}
		pref.Timezone = *input.Timezone
	}

	if input.Enabled != nil {
		pref.Enabled = *input.Enabled
	}
	if input.BreakfastTime != nil {
		pref.BreakfastTime = *input.BreakfastTime
	}
	if input.LunchTime != nil {
		pref.LunchTime = *input.LunchTime
	}
	if input.DinnerTime != nil {
		pref.DinnerTime = *input.DinnerTime
	}
	if input.SnackTime != nil {
		pref.SnackTime = *input.SnackTime
	}
	if input.MenuExpiryAlerts != nil {
		pref.MenuExpiryAlerts = *input.MenuExpiryAlerts
	}
	if input.GamificationAlerts != nil {
		pref.GamificationAlerts = *input.GamificationAlerts
	}

	if err := config.DB.Save(pref).Error; err != nil {
		return nil, err
	}
	return pref, nil
}

// ToggleDevices flips push delivery on every registered device.
func ToggleDevices(userID uint, enabled bool) error {
	return config.DB.Model(&models.UserDevice{}).
		Where("user_id = ?", userID).
		Update("enabled", enabled).Error
}

// ReminderDue reports whether a stored "HH:MM" matches the wall clock
// in the user's timezone, with a minute of slack for scheduler drift.
func ReminderDue(reminderTime, timezone string, now time.Time) bool {
	if reminderTime == "" {
		return false
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}
	local := now.In(loc)
	return local.Format("15:04") == reminderTime ||
		local.Add(-time.Minute).Format("15:04") == reminderTime
}

var reminderBodies = map[string]string{
	"breakfast": "Time for breakfast! Log it when you're done.",
	"lunch":     "Lunch time! Don't forget to log your meal.",
	"dinner":    "Dinner time! Log your meal to keep your streak.",
	"snack":     "Snack break! A quick log keeps your stats honest.",
}

// DispatchMealReminders runs every minute from the scheduler. The
// dispatch-log unique index makes each (user, meal, local day) fire at
// most once no matter how often the tick runs.
func DispatchMealReminders(now time.Time) error {
	var prefs []models.NotificationPreference
	if err := prefStore().Where("enabled = ?", true).Find(&prefs).Error; err != nil {
		return err
	}

	for _, pref := range prefs {
		for mealType, at := range map[string]string{
			"breakfast": pref.BreakfastTime,
			"lunch":     pref.LunchTime,
			"dinner":    pref.DinnerTime,
			"snack":     pref.SnackTime,
		} {
			if !ReminderDue(at, pref.Timezone, now) {
				continue
			}

			loc, err := time.LoadLocation(pref.Timezone)
			if err != nil {
				loc = time.UTC
			}
			dispatch := models.ReminderDispatch{
				UserID:    pref.UserID,
				MealType:  mealType,
				LocalDate: now.In(loc).Format("2006-01-02"),
				SentAt:    now,
			}
			if err := prefStore().Create(&dispatch).Error; err != nil {
				continue // already sent today
			}

			EmitPush(pref.UserID, "meal_reminder", "Meal reminder",
				reminderBodies[mealType],
				map[string]string{"type": "meal_reminder", "meal": mealType})
			metrics.ReminderDispatched(mealType)
			log.WithFields(log.Fields{"user": pref.UserID, "meal": mealType}).
				Debug("meal reminder dispatched")
		}
	}
	return nil
}
