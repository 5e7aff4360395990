package reporting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/guptarohit/asciigraph"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/danken4445/hospital-management/internal/domain/models"
	"github.com/danken4445/hospital-management/internal/repository/mongodb"
	"github.com/danken4445/hospital-management/internal/repository/sheets"
)

const (
	dateLayout      = "2006-01-02"
	digestTopItems  = 5
	chartHeight     = 6
	chartWidth      = 28
	currencySymbol  = "₱"
	growthPrecision = "%+.1f%%"
)

// ErrArchiveDisabled is returned when snapshots are requested without an archive configured.
var ErrArchiveDisabled = errors.New("snapshot archive not configured")

// DashboardBuilder produces the hospital-wide dashboard.
type DashboardBuilder interface {
	Admin(ctx context.Context, timeline string) models.Dashboard
}

// Service turns dashboards into digests and archived snapshots.
type Service struct {
	dashboards DashboardBuilder
	archive    mongodb.Repository
	sheet      sheets.RowWriter
	logger     *zap.Logger
	now        func() time.Time
	newID      func() string
}

// NewService wires a new reporting service instance. archive and sheet may be nil.
func NewService(dashboards DashboardBuilder, archive mongodb.Repository, sheet sheets.RowWriter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		dashboards: dashboards,
		archive:    archive,
		sheet:      sheet,
		logger:     logger,
		now:        time.Now,
		newID:      func() string { return uuid.New().String() },
	}
}

// BuildDigest renders the text digest for a timeline.
func (s *Service) BuildDigest(ctx context.Context, timeline string) (string, models.Dashboard) {
	d := s.dashboards.Admin(ctx, timeline)
	return FormatDigest(d), d
}

// ArchiveSnapshot builds the dashboard for timeline and stores its summary.
// The sheet export is best-effort; the archive write is not.
func (s *Service) ArchiveSnapshot(ctx context.Context, timeline string) (models.DashboardSnapshot, error) {
	d := s.dashboards.Admin(ctx, timeline)
	snapshot := models.NewDashboardSnapshot(s.newID(), d, s.now())

	if s.archive != nil {
		if err := s.archive.SaveSnapshot(ctx, snapshot); err != nil {
			return models.DashboardSnapshot{}, fmt.Errorf("archive snapshot: %w", err)
		}
	}

	if s.sheet != nil {
		if err := sheets.AppendSnapshot(ctx, s.sheet, snapshot); err != nil {
			s.logger.Warn("failed to export snapshot row", zap.String("id", snapshot.ID), zap.Error(err))
		}
	}

	s.logger.Info("dashboard snapshot archived",
		zap.String("id", snapshot.ID),
		zap.String("timeline", snapshot.Timeline),
		zap.Bool("fallback", snapshot.Fallback))
	return snapshot, nil
}

// ListSnapshots returns archived snapshots, newest first.
func (s *Service) ListSnapshots(ctx context.Context, limit int) ([]models.DashboardSnapshot, error) {
	if s.archive == nil {
		return nil, ErrArchiveDisabled
	}
	return s.archive.ListSnapshots(ctx, limit)
}

// FormatDigest renders a dashboard as a plain-text message.
func FormatDigest(d models.Dashboard) string {
	p := message.NewPrinter(language.English)
	var b strings.Builder

	fmt.Fprintf(&b, "Hospital digest: %s (%s to %s)\n\n",
		d.Timeline.Label,
		d.WindowStart.Format(dateLayout),
		d.GeneratedAt.Format(dateLayout))

	b.WriteString(p.Sprintf("Patients: %d (%s)\n", d.TotalPatients, formatGrowth(d.PatientGrowth)))
	b.WriteString(p.Sprintf("Average per day: %.1f\n", d.AveragePerDay))
	fmt.Fprintf(&b, "Peak hour: %s, peak day: %s\n", d.PeakHour, d.PeakDay)
	if d.BusiestDepartment != "" {
		fmt.Fprintf(&b, "Busiest department: %s\n", d.BusiestDepartment)
	}

	revenue, _ := d.TotalRevenue.Float64()
	pending, _ := d.PendingRevenue.Float64()
	b.WriteString(p.Sprintf("Revenue: %s%.2f (%s)\n", currencySymbol, revenue, formatGrowth(d.RevenueGrowth)))
	b.WriteString(p.Sprintf("Pending: %s%.2f\n", currencySymbol, pending))
	b.WriteString(p.Sprintf("Medicines stocked: %d, supplies stocked: %d (usage %s)\n",
		d.TotalMedicines, d.TotalSupplies, formatGrowth(d.UsageGrowth)))

	if len(d.MedicineUsage) > 0 {
		b.WriteString("\nTop medicines:\n")
		for i, point := range d.MedicineUsage {
			if i == digestTopItems {
				break
			}
			b.WriteString(p.Sprintf("%d. %s: %.0f\n", i+1, point.Label, point.Count))
		}
	}

	if chart := dailyChart(d.DailyPatients); chart != "" {
		b.WriteString("\n")
		b.WriteString(chart)
		b.WriteString("\n")
	}

	switch {
	case d.Fallback:
		b.WriteString("\nLive data unavailable. Figures are illustrative.\n")
	case d.MockData:
		b.WriteString("\nNo billing records found. Revenue figures are sample data.\n")
	}

	return b.String()
}

func dailyChart(points []models.ChartSeriesPoint) string {
	if len(points) < 2 {
		return ""
	}
	data := make([]float64, len(points))
	for i, point := range points {
		data[i] = point.Count
	}
	caption := fmt.Sprintf("Daily patients %s to %s", points[0].Label, points[len(points)-1].Label)
	return asciigraph.Plot(data,
		asciigraph.Height(chartHeight),
		asciigraph.Width(chartWidth),
		asciigraph.Caption(caption),
	)
}

func formatGrowth(pct float64) string {
	return fmt.Sprintf(growthPrecision, pct)
}
