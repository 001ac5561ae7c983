package services

import (
	"strconv"
	"time"

	"github.com/calo-work-stack/Calo-sub001/config"
	"github.com/calo-work-stack/Calo-sub001/metrics"
	"github.com/calo-work-stack/Calo-sub001/models"

	log "github.com/sirupsen/logrus"
)

func itoa(v uint) string { return strconv.FormatUint(uint64(v), 10) }

const expiredPurgeAfter = 30 * 24 * time.Hour

// ExpireMenus marks every menu past its ExpiresAt as expired. Pending
// menus are included: a generation that outlives its own menu window
// is dead anyway.
func ExpireMenus(now time.Time) (int64, error) {
	res := config.DB.Model(&models.RecommendedMenu{}).
		Where("expires_at < ? AND status <> ?", now, models.MenuStatusExpired).
		Update("status", models.MenuStatusExpired)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected > 0 {
		log.WithField("count", res.RowsAffected).Info("expired menus")
	}
	return res.RowsAffected, nil
}

// PurgeExpiredMenus deletes menus that have sat expired for over 30
// days, cascading meals and ingredients.
func PurgeExpiredMenus(now time.Time) (int, error) {
	var menus []models.RecommendedMenu
	if err := config.DB.
		Where("status = ? AND expires_at < ?", models.MenuStatusExpired, now.Add(-expiredPurgeAfter)).
		Find(&menus).Error; err != nil {
		return 0, err
	}
	purged := 0
	for _, m := range menus {
		if err := deleteMenuCascade(config.DB, m.ID, true); err != nil {
			log.WithError(err).WithField("menu_id", m.ID).Error("failed to purge menu")
			continue
		}
		purged++
	}
	return purged, nil
}

// ExpiringWithin reports whether a menu should trigger an expiry
// reminder: it expires after now but within the window.
func ExpiringWithin(expiresAt, now time.Time, window time.Duration) bool {
	return expiresAt.After(now) && !expiresAt.After(now.Add(window))
}

// NotifyExpiringMenus pushes a reminder for menus expiring within 24h,
// at most once per user per day (dispatch-log guarded).
func NotifyExpiringMenus(now time.Time) error {
	var menus []models.RecommendedMenu
	if err := config.DB.
		Where("status IN ? AND expires_at > ? AND expires_at <= ?",
			[]string{models.MenuStatusActive, models.MenuStatusFallback},
			now, now.Add(24*time.Hour)).
		Find(&menus).Error; err != nil {
		return err
	}

	for _, m := range menus {
		localDate := now.Format("2006-01-02")
		dispatch := models.ReminderDispatch{
			UserID:    m.UserID,
			MealType:  "menu_expiry",
			LocalDate: localDate,
			SentAt:    now,
		}
		// unique index makes this the at-most-once gate
		if err := config.DB.Create(&dispatch).Error; err != nil {
			continue
		}

		EmitPush(m.UserID, "menu_expiry", "Your menu is expiring",
			"Your current menu expires tomorrow. Generate a fresh one!",
			map[string]string{"type": "menu_expiry", "menuId": itoa(m.ID)})
		metrics.ReminderDispatched("menu_expiry")
	}
	return nil
}
