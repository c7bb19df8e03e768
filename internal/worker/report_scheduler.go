package worker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/ricardo-aragon/ticashop-desk/internal/config"
	"github.com/ricardo-aragon/ticashop-desk/internal/service"
	"github.com/ricardo-aragon/ticashop-desk/internal/upstream"
)

// ReportScheduler creates metric snapshots on a cron schedule using the
// service-account client. Both the schedule and the service token must be
// configured for it to run.
type ReportScheduler struct {
	cron   *cron.Cron
	logger *zap.Logger
}

// StartReportScheduler wires the cron job and starts it. Returns nil when
// scheduling is disabled.
func StartReportScheduler(cfg config.Config, reports *service.ReportService, client *upstream.Client, logger *zap.Logger) (*ReportScheduler, error) {
	if cfg.Reports.SnapshotSchedule == "" || cfg.Upstream.ServiceToken == "" {
		logger.Info("report scheduler disabled")
		return nil, nil
	}

	serviceClient := client.WithToken(cfg.Upstream.ServiceToken)
	c := cron.New()
	_, err := c.AddFunc(cfg.Reports.SnapshotSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := reports.Generate(ctx, serviceClient); err != nil {
			logger.Error("scheduled reporte failed", zap.Error(err))
		}
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	logger.Info("report scheduler started", zap.String("schedule", cfg.Reports.SnapshotSchedule))
	return &ReportScheduler{cron: c, logger: logger}, nil
}

// Stop waits for a running job to finish and halts the scheduler.
func (s *ReportScheduler) Stop() {
	if s == nil || s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
}
