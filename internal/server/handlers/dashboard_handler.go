package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/danken4445/hospital-management/internal/analytics"
	"github.com/danken4445/hospital-management/internal/domain/models"
	"github.com/danken4445/hospital-management/internal/service/dashboard"
	"github.com/danken4445/hospital-management/internal/service/reporting"
)

// DashboardService is the orchestrator surface the handler needs.
type DashboardService interface {
	Admin(ctx context.Context, timeline string) models.Dashboard
	Department(ctx context.Context, name, timeline string) (models.Dashboard, error)
	Departments(ctx context.Context) ([]string, error)
	Timelines() []models.TimelineOption
	Settings() analytics.Settings
}

// ReportingService is the digest and archive surface the handler needs.
type ReportingService interface {
	BuildDigest(ctx context.Context, timeline string) (string, models.Dashboard)
	ArchiveSnapshot(ctx context.Context, timeline string) (models.DashboardSnapshot, error)
	ListSnapshots(ctx context.Context, limit int) ([]models.DashboardSnapshot, error)
}

// DashboardHandler serves dashboards, digests and snapshots over HTTP.
type DashboardHandler struct {
	dashboards DashboardService
	reports    ReportingService
	logger     *zap.Logger
}

// NewDashboardHandler constructs the HTTP handler adapter.
func NewDashboardHandler(dashboards DashboardService, reports ReportingService, logger *zap.Logger) *DashboardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardHandler{dashboards: dashboards, reports: reports, logger: logger}
}

// Timelines lists the selectable windows.
func (h *DashboardHandler) Timelines(c *gin.Context) {
	c.JSON(http.StatusOK, h.dashboards.Timelines())
}

// Admin returns the hospital-wide dashboard.
func (h *DashboardHandler) Admin(c *gin.Context) {
	d := h.dashboards.Admin(c.Request.Context(), c.Query("timeline"))
	c.JSON(http.StatusOK, h.present(c, d))
}

// Departments lists the known department names.
func (h *DashboardHandler) Departments(c *gin.Context) {
	names, err := h.dashboards.Departments(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing departments", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to read departments"})
		return
	}
	c.JSON(http.StatusOK, names)
}

// Department returns the dashboard scoped to one department.
func (h *DashboardHandler) Department(c *gin.Context) {
	name := c.Param("name")

	d, err := h.dashboards.Department(c.Request.Context(), name, c.Query("timeline"))
	if err != nil {
		if errors.Is(err, dashboard.ErrUnknownDepartment) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown department", "department": name})
			return
		}
		h.logger.Error("failed building department dashboard", zap.String("department", name), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build dashboard"})
		return
	}

	c.JSON(http.StatusOK, h.present(c, d))
}

// Digest previews the text digest.
func (h *DashboardHandler) Digest(c *gin.Context) {
	text, _ := h.reports.BuildDigest(c.Request.Context(), c.Query("timeline"))
	c.String(http.StatusOK, text)
}

// Snapshots lists archived snapshots.
func (h *DashboardHandler) Snapshots(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	snapshots, err := h.reports.ListSnapshots(c.Request.Context(), limit)
	if err != nil {
		if errors.Is(err, reporting.ErrArchiveDisabled) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "snapshot archive disabled"})
			return
		}
		h.logger.Error("failed listing snapshots", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to read snapshots"})
		return
	}

	c.JSON(http.StatusOK, snapshots)
}

// CreateSnapshot archives the current dashboard on demand.
func (h *DashboardHandler) CreateSnapshot(c *gin.Context) {
	snapshot, err := h.reports.ArchiveSnapshot(c.Request.Context(), c.Query("timeline"))
	if err != nil {
		h.logger.Error("failed archiving snapshot", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to archive snapshot"})
		return
	}
	c.JSON(http.StatusCreated, snapshot)
}

func (h *DashboardHandler) present(c *gin.Context, d models.Dashboard) models.Dashboard {
	style := analytics.ParseLabelStyle(c.Query("labels"))
	return analytics.PresentLabels(d, h.dashboards.Settings().LabelLimit(style))
}
