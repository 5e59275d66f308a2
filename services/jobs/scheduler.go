package jobs

import (
	"time"

	"metanoia_app_go/config"
	"metanoia_app_go/services"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	zlog "github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	sessionCleanupSpec = "@hourly"
	leadDigestSpec     = "0 8 * * *" // every day at 08:00
	monitorPruneSpec   = "@every 30m"
)

// StartScheduler registers the background jobs and starts the cron runner.
// The caller stops it on shutdown.
func StartScheduler(database *gorm.DB, cfg *config.Config) (*cron.Cron, error) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		loc = time.Local
	}
	c := cron.New(cron.WithLocation(loc))

	if _, err := c.AddFunc(sessionCleanupSpec, func() {
		CleanupSessions(database)
	}); err != nil {
		return nil, errors.Wrap(err, "schedule session cleanup")
	}

	if _, err := c.AddFunc(monitorPruneSpec, func() {
		if services.Monitor != nil {
			services.Monitor.Prune()
		}
	}); err != nil {
		return nil, errors.Wrap(err, "schedule login monitor prune")
	}

	if cfg.LeadNotifyEmail != "" {
		if _, err := c.AddFunc(leadDigestSpec, func() {
			SendLeadDigest(database, cfg, time.Now())
		}); err != nil {
			return nil, errors.Wrap(err, "schedule lead digest")
		}
	}

	c.Start()
	zlog.Info().Int("jobs", len(c.Entries())).Msg("[CRON] Scheduler started")
	return c, nil
}

// CleanupSessions removes expired admin sessions
func CleanupSessions(database *gorm.DB) {
	removed, err := services.CleanupExpiredSessions(database)
	if err != nil {
		zlog.Error().Err(err).Msg("[JOB] Session cleanup failed")
		return
	}
	if removed > 0 {
		zlog.Info().Int64("removed", removed).Msg("[JOB] Expired sessions removed")
	}
}
