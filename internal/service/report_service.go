package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/ricardo-aragon/ticashop-desk/internal/domain"
	"github.com/ricardo-aragon/ticashop-desk/internal/report"
	"github.com/ricardo-aragon/ticashop-desk/internal/upstream"
	apperrors "github.com/ricardo-aragon/ticashop-desk/pkg/util"
)

// ReportService condenses the live ticket collection into immutable metric
// snapshots. Snapshots are created either on demand by an operator or on a
// schedule by the background worker.
type ReportService struct {
	logger *zap.Logger
}

// NewReportService constructs the service.
func NewReportService(logger *zap.Logger) *ReportService {
	return &ReportService{logger: logger}
}

// Generate fetches the current tickets through the given client, computes a
// snapshot and persists it upstream.
func (s *ReportService) Generate(ctx context.Context, client *upstream.Client) (domain.Reporte, error) {
	tickets, err := client.ListTickets(ctx)
	if err != nil {
		if errors.Is(err, upstream.ErrUnauthorized) {
			return domain.Reporte{}, apperrors.NewUnauthorized("upstream session expired")
		}
		return domain.Reporte{}, apperrors.NewUpstreamError(err)
	}

	snapshot := report.Snapshot(tickets, time.Now())
	created, err := client.CreateReporte(ctx, snapshot)
	if err != nil {
		return domain.Reporte{}, apperrors.NewUpstreamError(err)
	}

	s.logger.Info("reporte created",
		zap.Int64("reporte_id", created.ID),
		zap.Int("abiertos", created.TicketsAbiertos),
		zap.Int("cerrados", created.TicketsCerrados),
	)
	return created, nil
}
