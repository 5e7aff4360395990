package dashboard

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/danken4445/hospital-management/internal/analytics"
	"github.com/danken4445/hospital-management/internal/domain/models"
)

// ErrUnknownDepartment is returned when a department scope names no stored department.
var ErrUnknownDepartment = errors.New("unknown department")

// Source reads the raw hospital collections.
type Source interface {
	FetchSnapshot(ctx context.Context) (models.SourceSnapshot, error)
}

// Service builds dashboards from the configured source.
type Service struct {
	source   Source
	pipeline *analytics.Pipeline
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires a dashboard service.
func NewService(source Source, pipeline *analytics.Pipeline, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if pipeline == nil {
		pipeline = analytics.New(analytics.DefaultSettings(), nil)
	}
	return &Service{
		source:   source,
		pipeline: pipeline,
		logger:   logger,
		now:      time.Now,
	}
}

// Timelines lists the selectable dashboard windows.
func (s *Service) Timelines() []models.TimelineOption {
	return s.pipeline.Settings().Timelines
}

// Settings returns the pipeline settings.
func (s *Service) Settings() analytics.Settings {
	return s.pipeline.Settings()
}

// Admin builds the hospital-wide dashboard. A failed read yields the fallback
// dashboard rather than an error.
func (s *Service) Admin(ctx context.Context, timeline string) models.Dashboard {
	now := s.now()

	src, err := s.source.FetchSnapshot(ctx)
	if err != nil {
		s.logger.Error("failed to fetch dashboard data, serving fallback",
			zap.String("timeline", timeline),
			zap.Error(err))
		return s.pipeline.Fallback(analytics.ScopeAdmin, timeline, now)
	}

	d := s.pipeline.Run(src, analytics.ScopeAdmin, timeline, now)
	s.logger.Debug("dashboard built",
		zap.String("scope", d.Scope),
		zap.String("timeline", d.Timeline.Value),
		zap.Int("patients", d.TotalPatients),
		zap.Bool("mock_billing", d.MockData))
	return d
}

// Department builds the dashboard restricted to one department.
func (s *Service) Department(ctx context.Context, name, timeline string) (models.Dashboard, error) {
	now := s.now()

	src, err := s.source.FetchSnapshot(ctx)
	if err != nil {
		s.logger.Error("failed to fetch department data, serving fallback",
			zap.String("department", name),
			zap.Error(err))
		return s.pipeline.Fallback(name, timeline, now), nil
	}

	scoped, ok := analytics.ScopeSnapshot(src, name)
	if !ok {
		return models.Dashboard{}, ErrUnknownDepartment
	}

	return s.pipeline.Run(scoped, name, timeline, now), nil
}

// Departments lists the department names present in the source.
func (s *Service) Departments(ctx context.Context) ([]string, error) {
	src, err := s.source.FetchSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.DepartmentNames(src), nil
}
