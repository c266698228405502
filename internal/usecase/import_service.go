package usecase

import (
	"context"
	"time"

	"flightlog-service/internal/domain/repository"
	"flightlog-service/pkg/logger"
	"flightlog-service/pkg/metrics"
)

// ImportService runs the Miles & More transformer and persists the
// produced flights.
type ImportService struct {
	transformer *ImportTransformer
	flightRepo  repository.FlightRepository
	metrics     *metrics.Metrics
	logger      logger.Logger
}

// NewImportService creates a new import service. metrics may be nil when
// the caller collects none.
func NewImportService(
	transformer *ImportTransformer,
	flightRepo repository.FlightRepository,
	m *metrics.Metrics,
	log logger.Logger,
) *ImportService {
	return &ImportService{
		transformer: transformer,
		flightRepo:  flightRepo,
		metrics:     m,
		logger:      log,
	}
}

// ImportMilesAndMore transforms one export document and stores the
// resulting flights for the authenticated user. The returned result still
// carries the unknown-airports list for caller follow-up.
func (s *ImportService) ImportMilesAndMore(ctx context.Context, raw []byte) (*ImportResult, error) {
	start := time.Now()

	result, err := s.transformer.Transform(ctx, raw)
	if err != nil {
		if s.metrics != nil {
			s.metrics.ErrorsCount.WithLabelValues("import").Inc()
		}
		return nil, err
	}

	if len(result.Flights) > 0 {
		if err := s.flightRepo.InsertMany(ctx, result.Flights); err != nil {
			s.logger.Error("failed to store imported flights", "error", err)
			if s.metrics != nil {
				s.metrics.ErrorsCount.WithLabelValues("import_store").Inc()
			}
			return nil, err
		}
	}

	if s.metrics != nil {
		s.metrics.ImportsTotal.Inc()
		s.metrics.FlightsImported.Add(float64(len(result.Flights)))
		s.metrics.SegmentsSkipped.Add(float64(result.SkippedSegments))
		s.metrics.UnknownAirports.Add(float64(len(result.UnknownAirports)))
		s.metrics.ImportDuration.Observe(time.Since(start).Seconds())
	}

	s.logger.Info("import completed",
		"flights", len(result.Flights),
		"unknownAirports", len(result.UnknownAirports),
		"elapsed", time.Since(start))
	return result, nil
}
