package crontab

import (
	"context"
	"fmt"
	"time"

	"github.com/mileusna/crontab"

	"djigbo-server/internal/config"
	"djigbo-server/internal/domain/conversation"
	"djigbo-server/internal/domain/mood"
	"djigbo-server/internal/infrastructure/logger"
	"djigbo-server/internal/infrastructure/metrics"
)

const (
	// CronJobTimeout bounds each job execution.
	CronJobTimeout = 10 * time.Minute

	// moodRollupSchedule runs shortly after midnight so yesterday's
	// entries are complete.
	moodRollupSchedule = "15 0 * * *"
)

// Crontab runs the background maintenance jobs: conversation retention
// pruning and the daily mood rollup.
type Crontab struct {
	ctab         *crontab.Crontab
	conversation *conversation.Service
	mood         *mood.Service
}

func NewCrontab(conversationService *conversation.Service, moodService *mood.Service) *Crontab {
	return &Crontab{
		ctab:         crontab.New(),
		conversation: conversationService,
		mood:         moodService,
	}
}

// Run schedules the jobs and blocks until ctx is cancelled.
func (c *Crontab) Run(ctx context.Context) error {
	log := logger.GetLogger()
	cfg := config.GetGlobal()

	// Prune once on startup so a long-stopped instance catches up.
	c.pruneConversations(ctx)

	if err := c.ctab.AddJob(cfg.PruneSchedule, func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), CronJobTimeout)
		defer cancel()
		c.pruneConversations(jobCtx)
	}); err != nil {
		return fmt.Errorf("schedule retention job: %w", err)
	}
	log.Info().Str("schedule", cfg.PruneSchedule).
		Int("retention_days", cfg.RetentionDays).
		Msg("conversation retention job scheduled")

	if err := c.ctab.AddJob(moodRollupSchedule, func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), CronJobTimeout)
		defer cancel()
		if err := c.mood.RollupYesterday(jobCtx); err != nil {
			log.Error().Err(err).Msg("daily mood rollup failed")
		}
	}); err != nil {
		return fmt.Errorf("schedule mood rollup job: %w", err)
	}
	log.Info().Str("schedule", moodRollupSchedule).Msg("mood rollup job scheduled")

	<-ctx.Done()
	c.ctab.Shutdown()
	return nil
}

func (c *Crontab) pruneConversations(ctx context.Context) {
	log := logger.GetLogger()
	cfg := config.GetGlobal()

	deleted, err := c.conversation.PruneOlderThan(ctx, cfg.RetentionDays)
	if err != nil {
		log.Error().Err(err).Msg("conversation retention job failed")
		return
	}
	if deleted > 0 {
		metrics.ConversationsPrunedTotal.Add(float64(deleted))
	}
}
