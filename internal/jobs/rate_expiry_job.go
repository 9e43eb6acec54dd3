package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"freight/internal/core/application/usecases/commands"
)

// rateExpirySchedule runs the sweep shortly after midnight UTC, once the
// previous calendar day has fully ended for date-granular validity windows.
const rateExpirySchedule = "5 0 * * *"

// RateExpiryJob periodically deactivates rate quotes whose validity window
// has passed. Expired quotes already drop out of pricing on their own; the
// sweep keeps the active set small and the published state honest.
type RateExpiryJob struct {
	handler commands.ExpireRatesCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewRateExpiryJob creates a job that sweeps expired rate quotes daily.
func NewRateExpiryJob(handler commands.ExpireRatesCommandHandler, logger *slog.Logger) *RateExpiryJob {
	return &RateExpiryJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "rate_expiry_job"),
	}
}

// Start schedules the daily sweep.
func (j *RateExpiryJob) Start() error {
	_, err := j.cron.AddFunc(rateExpirySchedule, j.runOnce)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Rate expiry job started (running daily)")
	return nil
}

// Stop stops the rate expiry job.
func (j *RateExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Rate expiry job stopped")
}

func (j *RateExpiryJob) runOnce() {
	ctx := context.Background()

	cmd, err := commands.NewExpireRatesCommand(time.Now().UTC())
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to build expire rates command", "error", err)
		return
	}

	swept, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Rate expiry sweep failed", "error", err)
		return
	}

	if swept > 0 {
		j.logger.InfoContext(ctx, "Deactivated expired rate quotes", "count", swept)
	}
}
