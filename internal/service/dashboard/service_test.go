package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danken4445/hospital-management/internal/analytics"
	"github.com/danken4445/hospital-management/internal/domain/models"
)

var fixedNow = time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)

type stubSource struct {
	snapshot models.SourceSnapshot
	err      error
	calls    int
}

func (s *stubSource) FetchSnapshot(context.Context) (models.SourceSnapshot, error) {
	s.calls++
	return s.snapshot, s.err
}

func newTestService(src Source) *Service {
	svc := NewService(src, analytics.New(analytics.DefaultSettings(), analytics.NewRand(1)), nil)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func sampleSnapshot() models.SourceSnapshot {
	admitted := fixedNow.AddDate(0, 0, -1).Format(time.RFC3339)
	return models.SourceSnapshot{
		Departments: map[string]any{
			"Emergency": map[string]any{"localMeds": map[string]any{"m1": map[string]any{"itemName": "Paracetamol", "quantity": 10.0}}},
			"ICU":       map[string]any{},
		},
		Patients: map[string]any{
			"p1": map[string]any{"age": 30.0, "department": "Emergency", "dateTime": admitted},
			"p2": map[string]any{"age": 50.0, "department": "ICU", "dateTime": admitted},
		},
		Billing: map[string]any{
			"b1": map[string]any{"amount": 1000.0, "status": "paid", "date": admitted, "department": "ICU"},
		},
	}
}

func TestAdmin(t *testing.T) {
	src := &stubSource{snapshot: sampleSnapshot()}
	d := newTestService(src).Admin(context.Background(), "week")

	assert.Equal(t, 1, src.calls)
	assert.Equal(t, analytics.ScopeAdmin, d.Scope)
	assert.Equal(t, fixedNow, d.GeneratedAt)
	assert.False(t, d.Fallback)
	assert.Equal(t, 2, d.TotalPatients)
	assert.Equal(t, 1, d.TotalMedicines)
	assert.Equal(t, 2, d.DepartmentCount)
}

func TestAdmin_FallbackOnFetchError(t *testing.T) {
	src := &stubSource{err: errors.New("connection refused")}
	d := newTestService(src).Admin(context.Background(), "month")

	assert.True(t, d.Fallback)
	assert.True(t, d.MockData)
	assert.Equal(t, 25, d.TotalPatients)
	assert.Equal(t, "month", d.Timeline.Value)
}

func TestDepartment(t *testing.T) {
	svc := newTestService(&stubSource{snapshot: sampleSnapshot()})

	d, err := svc.Department(context.Background(), "icu", "week")
	require.NoError(t, err)
	assert.Equal(t, "icu", d.Scope)
	assert.Equal(t, 1, d.TotalPatients)
	assert.Equal(t, 0, d.TotalMedicines)
	assert.Equal(t, 1, d.DepartmentCount)
	assert.False(t, d.MockData)

	_, err = svc.Department(context.Background(), "Oncology", "week")
	assert.True(t, errors.Is(err, ErrUnknownDepartment))
}

func TestDepartment_FallbackOnFetchError(t *testing.T) {
	svc := newTestService(&stubSource{err: errors.New("timeout")})

	d, err := svc.Department(context.Background(), "ICU", "week")
	require.NoError(t, err)
	assert.True(t, d.Fallback)
	assert.Equal(t, "ICU", d.Scope)
}

func TestDepartmentsAndTimelines(t *testing.T) {
	svc := newTestService(&stubSource{snapshot: sampleSnapshot()})

	names, err := svc.Departments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Emergency", "ICU"}, names)

	assert.Equal(t, analytics.DefaultTimelines, svc.Timelines())
	assert.Equal(t, 15, svc.Settings().PieLabelLimit)

	_, err = newTestService(&stubSource{err: errors.New("down")}).Departments(context.Background())
	assert.Error(t, err)
}
