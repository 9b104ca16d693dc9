package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

// ReportController serves the dashboard stats and the sales reports.
type ReportController struct {
	Reports  *services.ReportService
	Settings *services.SettingsService
	now      func() time.Time
}

func NewReportController(reports *services.ReportService, settings *services.SettingsService) *ReportController {
	return &ReportController{Reports: reports, Settings: settings, now: time.Now}
}

// GetSalesStats -> penjualan hari ini dibanding kemarin
func (rc *ReportController) GetSalesStats(c *gin.Context) {
	stats, err := rc.Reports.SalesStats(c.Request.Context(), rc.now())
	if err != nil {
		utils.RespondError(c, err, "Failed to fetch sales stats")
		return
	}
	utils.RespondJSON(c, http.StatusOK, stats)
}

func (rc *ReportController) GetTableStats(c *gin.Context) {
	stats, err := rc.Reports.TableStats(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err, "Failed to fetch table stats")
		return
	}
	utils.RespondJSON(c, http.StatusOK, stats)
}

func (rc *ReportController) GetOrderStats(c *gin.Context) {
	stats, err := rc.Reports.OrderStats(c.Request.Context(), rc.now())
	if err != nil {
		utils.RespondError(c, err, "Failed to fetch order stats")
		return
	}
	utils.RespondJSON(c, http.StatusOK, stats)
}

// GetSalesReport -> ?timeframe=daily|weekly|monthly
func (rc *ReportController) GetSalesReport(c *gin.Context) {
	report, err := rc.Reports.SalesReport(c.Request.Context(), c.Query("timeframe"), rc.now())
	if err != nil {
		utils.RespondError(c, err, "Failed to generate report")
		return
	}
	utils.RespondJSON(c, http.StatusOK, report)
}

func (rc *ReportController) ExportSalesReportPDF(c *gin.Context) {
	ctx := c.Request.Context()
	report, err := rc.Reports.SalesReport(ctx, c.Query("timeframe"), rc.now())
	if err != nil {
		utils.RespondError(c, err, "Failed to export report")
		return
	}
	settings, err := rc.Settings.Get(ctx)
	if err != nil {
		utils.RespondError(c, err, "Failed to export report")
		return
	}

	var buf bytes.Buffer
	if err := rc.Reports.RenderPDF(&buf, report, settings.RestaurantSettings.Name); err != nil {
		utils.RespondError(c, err, "Failed to export report")
		return
	}
	filename := fmt.Sprintf("sales-report-%s-%s.pdf", report.Timeframe, report.To.Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
