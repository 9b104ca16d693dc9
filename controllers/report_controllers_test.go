package controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-pos/controllers"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/services"
	"gorm.io/gorm"
)

func setupReportRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	reportCtrl := controllers.NewReportController(services.NewReportService(db), services.NewSettingsService(db))
	router.GET("/stats/sales", reportCtrl.GetSalesStats)
	router.GET("/stats/tables", reportCtrl.GetTableStats)
	router.GET("/stats/orders", reportCtrl.GetOrderStats)
	router.GET("/reports", reportCtrl.GetSalesReport)
	router.GET("/reports/export-pdf", reportCtrl.ExportSalesReportPDF)
	return router
}

func TestReports(t *testing.T) {
	db := setupTestDB(t)
	router := setupReportRouter(db)

	item := models.MenuItem{Name: "Burger", Price: decimal.RequireFromString("10.00"), Category: "Mains"}
	require.NoError(t, db.Create(&item).Error)
	order := models.Order{Status: models.OrderCompleted, Total: decimal.RequireFromString("21.70")}
	require.NoError(t, db.Create(&order).Error)
	require.NoError(t, db.Create(&models.OrderLine{OrderID: order.ID, MenuItemID: item.ID, Quantity: 2, Price: item.Price}).Error)
	require.NoError(t, db.Create(&models.Table{Name: "T1", Capacity: 2, Status: models.TableCleaning}).Error)

	w := performRequest(t, router, http.MethodGet, "/reports?timeframe=daily", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var report struct {
		TotalSales      float64 `json:"totalSales"`
		TotalOrders     int     `json:"totalOrders"`
		TopSellingItems []struct {
			Name     string `json:"name"`
			Quantity int    `json:"quantity"`
		} `json:"topSellingItems"`
	}
	decodeBody(t, w, &report)
	assert.Equal(t, 21.70, report.TotalSales)
	assert.Equal(t, 1, report.TotalOrders)
	require.Len(t, report.TopSellingItems, 1)
	assert.Equal(t, "Burger", report.TopSellingItems[0].Name)
	assert.Equal(t, 2, report.TopSellingItems[0].Quantity)

	w = performRequest(t, router, http.MethodGet, "/reports?timeframe=yearly", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(t, router, http.MethodGet, "/stats/tables", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var tables map[string]int
	decodeBody(t, w, &tables)
	assert.Equal(t, 1, tables["total"])
	assert.Equal(t, 1, tables["cleaning"])

	w = performRequest(t, router, http.MethodGet, "/stats/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var orders map[string]int
	decodeBody(t, w, &orders)
	assert.Equal(t, 1, orders["completedToday"])
	assert.Equal(t, 0, orders["pendingOrders"])
}

func TestReportExportPDF(t *testing.T) {
	router := setupReportRouter(setupTestDB(t))

	w := performRequest(t, router, http.MethodGet, "/reports/export-pdf?timeframe=weekly", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "sales-report-weekly-")
	assert.True(t, len(w.Body.Bytes()) > 4 && string(w.Body.Bytes()[:4]) == "%PDF")
}
