package services

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler runs the recurring background jobs: meal reminders every
// minute and the menu expiry sweep once a day.
type Scheduler struct {
	cron *cron.Cron
}

func NewScheduler() *Scheduler {
	return &Scheduler{cron: cron.New()}
}

func (s *Scheduler) Start() {
	s.cron.AddFunc("@every 1m", func() {
		if err := DispatchMealReminders(time.Now()); err != nil {
			logrus.WithError(err).Warn("meal reminder dispatch failed")
		}
	})

	// 03:00 server time keeps the sweep off peak hours
	s.cron.AddFunc("0 3 * * *", func() {
		now := time.Now()
		if _, err := ExpireMenus(now); err != nil {
			logrus.WithError(err).Warn("menu expiry sweep failed")
		}
		if purged, err := PurgeExpiredMenus(now); err != nil {
			logrus.WithError(err).Warn("expired menu purge failed")
		} else if purged > 0 {
			logrus.WithField("count", purged).Info("expired menus purged")
		}
		if err := NotifyExpiringMenus(now); err != nil {
			logrus.WithError(err).Warn("expiry reminder dispatch failed")
		}
	})

	s.cron.Start()
	logrus.Info("scheduler started")
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}
