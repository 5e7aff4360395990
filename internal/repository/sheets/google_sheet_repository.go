package sheets

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/danken4445/hospital-management/internal/config"
	"github.com/danken4445/hospital-management/internal/domain/models"
)

// ErrNoSpreadsheet is returned when no spreadsheet ID is configured.
var ErrNoSpreadsheet = errors.New("spreadsheet id not configured")

// SnapshotRange is the sheet range snapshot rows are appended to.
const SnapshotRange = "Snapshots!A:K"

// RowWriter appends a single row of values to a sheet range.
type RowWriter interface {
	WriteRow(ctx context.Context, sheetRange string, values []interface{}) error
}

// GoogleSheetRepository exports dashboard snapshots through the Google Sheets API.
type GoogleSheetRepository struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetRepository builds a Google Sheets backed exporter. Extra client
// options are applied after the credentials file, when one is configured.
func NewGoogleSheetRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger, opts ...option.ClientOption) (*GoogleSheetRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SpreadsheetID == "" {
		return nil, ErrNoSpreadsheet
	}

	clientOpts := []option.ClientOption{option.WithScopes(sheetsapi.SpreadsheetsScope)}
	if cfg.CredentialsPath != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(cfg.CredentialsPath))
	}

	service, err := sheetsapi.NewService(ctx, append(clientOpts, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetRepository{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// WriteRow appends the provided values to the supplied sheet range.
func (r *GoogleSheetRepository) WriteRow(ctx context.Context, sheetRange string, values []interface{}) error {
	if sheetRange == "" {
		return fmt.Errorf("sheetRange must not be empty")
	}

	payload := &sheetsapi.ValueRange{Values: [][]interface{}{values}}

	call := r.service.Spreadsheets.Values.Append(r.spreadsheetID, sheetRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append row into range %s: %w", sheetRange, err)
	}

	r.logger.Debug("row appended to sheet", zap.String("range", sheetRange))
	return nil
}

// SnapshotRow lays out a snapshot as one spreadsheet row.
func SnapshotRow(s models.DashboardSnapshot) []interface{} {
	return []interface{}{
		s.ID,
		s.GeneratedAt.Format(time.RFC3339),
		s.Scope,
		s.Timeline,
		s.TotalPatients,
		s.TotalMedicines,
		s.TotalSupplies,
		s.TotalRevenue,
		s.PatientGrowth,
		s.RevenueGrowth,
		s.Fallback,
	}
}

// AppendSnapshot writes a snapshot row through w.
func AppendSnapshot(ctx context.Context, w RowWriter, s models.DashboardSnapshot) error {
	return w.WriteRow(ctx, SnapshotRange, SnapshotRow(s))
}
