package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"github.com/danken4445/hospital-management/internal/config"
	"github.com/danken4445/hospital-management/internal/domain/models"
)

type recordingWriter struct {
	ranges []string
	rows   [][]interface{}
	err    error
}

func (w *recordingWriter) WriteRow(_ context.Context, sheetRange string, values []interface{}) error {
	if w.err != nil {
		return w.err
	}
	w.ranges = append(w.ranges, sheetRange)
	w.rows = append(w.rows, values)
	return nil
}

func testSnapshot() models.DashboardSnapshot {
	return models.DashboardSnapshot{
		ID:             "5f1c",
		Scope:          "admin",
		Timeline:       "week",
		GeneratedAt:    time.Date(2026, time.March, 15, 23, 0, 0, 0, time.UTC),
		TotalPatients:  42,
		TotalMedicines: 12,
		TotalSupplies:  9,
		TotalRevenue:   "125000.00",
		PatientGrowth:  12.5,
		RevenueGrowth:  -3.1,
	}
}

func TestSnapshotRow(t *testing.T) {
	row := SnapshotRow(testSnapshot())

	assert.Equal(t, []interface{}{
		"5f1c", "2026-03-15T23:00:00Z", "admin", "week",
		42, 12, 9, "125000.00", 12.5, -3.1, false,
	}, row)
}

func TestAppendSnapshot(t *testing.T) {
	w := &recordingWriter{}
	require.NoError(t, AppendSnapshot(context.Background(), w, testSnapshot()))

	assert.Equal(t, []string{SnapshotRange}, w.ranges)
	require.Len(t, w.rows, 1)
	assert.Equal(t, "5f1c", w.rows[0][0])

	failing := &recordingWriter{err: errors.New("quota exceeded")}
	assert.Error(t, AppendSnapshot(context.Background(), failing, testSnapshot()))
}

func TestNewGoogleSheetRepository_RequiresSpreadsheet(t *testing.T) {
	_, err := NewGoogleSheetRepository(context.Background(), config.SheetsConfig{}, nil)
	assert.True(t, errors.Is(err, ErrNoSpreadsheet))
}

func TestWriteRow(t *testing.T) {
	var (
		mu     sync.Mutex
		paths  []string
		values [][][]interface{}
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "USER_ENTERED", r.URL.Query().Get("valueInputOption"))

		var body struct {
			Values [][]interface{} `json:"values"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		mu.Lock()
		paths = append(paths, r.URL.Path)
		values = append(values, body.Values)
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"spreadsheetId":"sheet-1"}`))
	}))
	defer srv.Close()

	repo, err := NewGoogleSheetRepository(context.Background(), config.SheetsConfig{SpreadsheetID: "sheet-1"}, nil,
		option.WithEndpoint(srv.URL+"/"), option.WithoutAuthentication())
	require.NoError(t, err)

	require.NoError(t, AppendSnapshot(context.Background(), repo, testSnapshot()))
	assert.Error(t, repo.WriteRow(context.Background(), "", []interface{}{"x"}))

	require.Len(t, paths, 1)
	assert.True(t, strings.HasPrefix(paths[0], "/v4/spreadsheets/sheet-1/values/"), paths[0])
	assert.True(t, strings.HasSuffix(paths[0], ":append"), paths[0])
	require.Len(t, values[0], 1)
	assert.Equal(t, "5f1c", values[0][0][0])
	assert.Equal(t, 42.0, values[0][0][4])
}
