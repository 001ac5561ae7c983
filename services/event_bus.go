package services

import (
	"github.com/calo-work-stack/Calo-sub001/config"
	"github.com/calo-work-stack/Calo-sub001/models"

	"gorm.io/gorm"
)

type eventDeps struct {
	db *gorm.DB
	rt *RealtimeHub
	ps *PushService
}

var _events eventDeps

func InitEventDeps(db *gorm.DB, rt *RealtimeHub, ps *PushService) {
	_events = eventDeps{db: db, rt: rt, ps: ps}
}

// EmitEvent broadcasts a domain event (menu.ready, xp.awarded,
// badge.awarded, streak.updated, ...) on the websocket hub. Safe to
// call from any goroutine, before or after init.
func EmitEvent(userID uint, kind string, data map[string]any) {
	if _events.rt == nil {
		return
	}
	payload := map[string]any{"kind": kind}
	for k, v := range data {
		payload[k] = v
	}
	_events.rt.Broadcast(userID, payload)
}

// EmitPush sends a push to the user's devices when their preference
// toggle for the category allows it.
func EmitPush(userID uint, category, title, body string, data map[string]string) {
	if _events.ps == nil || _events.db == nil {
		return
	}

	var pref models.NotificationPreference
	if err := _events.db.Where("user_id = ?", userID).First(&pref).Error; err == nil {
		if !pref.Enabled {
			return
		}
		switch category {
		case "gamification":
			if !pref.GamificationAlerts {
				return
			}
		case "menu_expiry":
			if !pref.MenuExpiryAlerts {
				return
			}
		}
	}

	_events.ps.PushToUser(userID, title, body, data)
}

// prefStore returns whatever DB the bus was wired with, falling back
// to the global handle when InitEventDeps has not run.
func prefStore() *gorm.DB {
	if _events.db != nil {
		return _events.db
	}
	return config.DB
}
