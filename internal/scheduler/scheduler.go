package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/danken4445/hospital-management/internal/config"
	"github.com/danken4445/hospital-management/internal/domain/models"
)

const jobTimeout = 2 * time.Minute

// Reporter is the reporting surface the scheduled jobs call.
type Reporter interface {
	ArchiveSnapshot(ctx context.Context, timeline string) (models.DashboardSnapshot, error)
	BuildDigest(ctx context.Context, timeline string) (string, models.Dashboard)
}

// Notifier delivers a digest message.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	reporter Reporter
	notifier Notifier
	cfg      config.ReportingConfig
	logger   *zap.Logger
}

// NewScheduler creates a scheduler running in the configured timezone.
// A nil notifier disables the digest job.
func NewScheduler(cfg config.ReportingConfig, reporter Reporter, notifier Notifier, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load scheduler timezone %q: %w", cfg.Timezone, err)
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		reporter: reporter,
		notifier: notifier,
		cfg:      cfg,
		logger:   logger,
	}, nil
}

// Start registers the jobs and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("timezone", s.cfg.Timezone))

	if _, err := s.cron.AddFunc(s.cfg.SnapshotSchedule, s.archiveSnapshot); err != nil {
		return fmt.Errorf("schedule snapshot job: %w", err)
	}

	if s.notifier != nil {
		if _, err := s.cron.AddFunc(s.cfg.DigestSchedule, s.sendDigest); err != nil {
			return fmt.Errorf("schedule digest job: %w", err)
		}
	} else {
		s.logger.Info("digest notifier missing, digest job disabled")
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) archiveSnapshot() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	snapshot, err := s.reporter.ArchiveSnapshot(ctx, s.cfg.DigestTimeline)
	if err != nil {
		s.logger.Error("failed to archive dashboard snapshot", zap.Error(err))
		return
	}
	s.logger.Info("scheduled snapshot stored", zap.String("id", snapshot.ID))
}

func (s *Scheduler) sendDigest() {
	s.logger.Info("generating digest", zap.String("timeline", s.cfg.DigestTimeline))
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	text, _ := s.reporter.BuildDigest(ctx, s.cfg.DigestTimeline)
	if err := s.notifier.Notify(ctx, text); err != nil {
		s.logger.Error("failed to send digest", zap.Error(err))
		return
	}
	s.logger.Info("digest sent successfully")
}
