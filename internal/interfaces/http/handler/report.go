package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	reportapp "github.com/pawnbook/backend/internal/application/report"
)

// ReportHandler serves the dashboard summary and CSV exports
type ReportHandler struct {
	BaseHandler
	dashboardService *reportapp.DashboardService
	exportService    *reportapp.ExportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(dashboardService *reportapp.DashboardService, exportService *reportapp.ExportService) *ReportHandler {
	return &ReportHandler{
		dashboardService: dashboardService,
		exportService:    exportService,
	}
}

// Dashboard returns the day's headline figures
func (h *ReportHandler) Dashboard(c *gin.Context) {
	resp, err := h.dashboardService.Summary(c.Request.Context(), time.Now())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ExportDaily streams the daily CSV report as a file attachment
func (h *ReportHandler) ExportDaily(c *gin.Context) {
	day := time.Now()
	if s := c.Query("date"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			h.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
			return
		}
		day = parsed
	}

	filename := fmt.Sprintf("daily-report-%s.csv", day.Format("2006-01-02"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)

	if err := h.exportService.WriteDaily(c.Request.Context(), c.Writer, day); err != nil {
		// Headers are already out; all we can do is drop the connection
		c.Abort()
	}
}

// RegisterRoutes registers report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/dashboard", h.Dashboard)
		reports.GET("/daily-export", h.ExportDaily)
	}
}
