// Package jobs runs the console's background schedules.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// StartAnalyticsRefresh re-runs refresh on the given interval so the
// dashboard has a warm snapshot before the first operator request and a
// recent fallback after transient fetch failures. An interval of zero or
// less disables the schedule.
func StartAnalyticsRefresh(interval time.Duration, refresh func(context.Context) error, log *logrus.Logger) (*cron.Cron, error) {
	if interval <= 0 {
		return nil, nil
	}

	runner := cron.New()
	_, err := runner.AddFunc(fmt.Sprintf("@every %s", interval), func() {
		ctx, cancel := context.WithTimeout(context.Background(), interval)
		defer cancel()
		if err := refresh(ctx); err != nil {
			log.WithError(err).Warn("analytics refresh failed")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule analytics refresh: %w", err)
	}

	runner.Start()
	log.WithField("interval", interval.String()).Info("analytics refresh scheduled")
	return runner, nil
}
