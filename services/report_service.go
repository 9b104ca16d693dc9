package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
	"gorm.io/gorm"
)

const (
	TimeframeDaily   = "daily"
	TimeframeWeekly  = "weekly"
	TimeframeMonthly = "monthly"

	topSellerLimit = 5
)

type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

type TopSeller struct {
	MenuItemID string          `json:"menuItemId"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	Revenue    decimal.Decimal `json:"revenue"`
}

type SalesReport struct {
	Timeframe         string          `json:"timeframe"`
	From              time.Time       `json:"from"`
	To                time.Time       `json:"to"`
	TotalSales        decimal.Decimal `json:"totalSales"`
	TotalOrders       int             `json:"totalOrders"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
	TopSellingItems   []TopSeller     `json:"topSellingItems"`
}

type SalesStats struct {
	TodaySales     decimal.Decimal `json:"todaySales"`
	YesterdaySales decimal.Decimal `json:"yesterdaySales"`
	PercentChange  float64         `json:"percentChange"`
}

type TableStats struct {
	Total     int64 `json:"total"`
	Available int64 `json:"available"`
	Occupied  int64 `json:"occupied"`
	Reserved  int64 `json:"reserved"`
	Cleaning  int64 `json:"cleaning"`
}

type OrderStats struct {
	// ActiveOrders are pending orders seated at a table.
	ActiveOrders   int64 `json:"activeOrders"`
	PendingOrders  int64 `json:"pendingOrders"`
	CompletedToday int64 `json:"completedToday"`
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// reportWindow returns the start of the period ending at now.
func reportWindow(timeframe string, now time.Time) (time.Time, error) {
	switch timeframe {
	case "", TimeframeDaily:
		return startOfDay(now), nil
	case TimeframeWeekly:
		return now.AddDate(0, 0, -7), nil
	case TimeframeMonthly:
		return now.AddDate(0, -1, 0), nil
	}
	return time.Time{}, utils.Invalid("invalid timeframe %q, expected daily, weekly or monthly", timeframe)
}

func (s *ReportService) completedOrders(ctx context.Context, from, to time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("Items.MenuItem").
		Where("status = ? AND created_at >= ? AND created_at <= ?", models.OrderCompleted, from, to).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("load completed orders: %w", err)
	}
	return orders, nil
}

// SalesReport summarises completed orders placed within the timeframe.
func (s *ReportService) SalesReport(ctx context.Context, timeframe string, now time.Time) (*SalesReport, error) {
	from, err := reportWindow(timeframe, now)
	if err != nil {
		return nil, err
	}
	if timeframe == "" {
		timeframe = TimeframeDaily
	}
	orders, err := s.completedOrders(ctx, from, now)
	if err != nil {
		return nil, err
	}

	report := &SalesReport{
		Timeframe:         timeframe,
		From:              from,
		To:                now,
		TotalSales:        decimal.Zero,
		AverageOrderValue: decimal.Zero,
		TopSellingItems:   []TopSeller{},
	}
	sellers := make(map[string]*TopSeller)
	for _, order := range orders {
		report.TotalSales = report.TotalSales.Add(order.Total)
		for _, line := range order.Items {
			ts, ok := sellers[line.MenuItemID]
			if !ok {
				ts = &TopSeller{MenuItemID: line.MenuItemID, Revenue: decimal.Zero}
				if line.MenuItem != nil {
					ts.Name = line.MenuItem.Name
				}
				sellers[line.MenuItemID] = ts
			}
			ts.Quantity += line.Quantity
			ts.Revenue = ts.Revenue.Add(line.Subtotal())
		}
	}
	report.TotalOrders = len(orders)
	if report.TotalOrders > 0 {
		report.AverageOrderValue = report.TotalSales.
			Div(decimal.NewFromInt(int64(report.TotalOrders))).
			Round(2)
	}

	for _, ts := range sellers {
		report.TopSellingItems = append(report.TopSellingItems, *ts)
	}
	sort.Slice(report.TopSellingItems, func(i, j int) bool {
		a, b := report.TopSellingItems[i], report.TopSellingItems[j]
		if a.Quantity != b.Quantity {
			return a.Quantity > b.Quantity
		}
		return a.Name < b.Name
	})
	if len(report.TopSellingItems) > topSellerLimit {
		report.TopSellingItems = report.TopSellingItems[:topSellerLimit]
	}
	return report, nil
}

func (s *ReportService) salesBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var totals []decimal.Decimal
	err := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("status = ? AND created_at >= ? AND created_at < ?", models.OrderCompleted, from, to).
		Pluck("total", &totals).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum sales: %w", err)
	}
	return decimal.Sum(decimal.Zero, totals...), nil
}

// SalesStats compares today's completed sales with yesterday's.
func (s *ReportService) SalesStats(ctx context.Context, now time.Time) (*SalesStats, error) {
	today := startOfDay(now)
	yesterday := today.AddDate(0, 0, -1)

	todaySales, err := s.salesBetween(ctx, today, today.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	yesterdaySales, err := s.salesBetween(ctx, yesterday, today)
	if err != nil {
		return nil, err
	}

	stats := &SalesStats{TodaySales: todaySales, YesterdaySales: yesterdaySales}
	switch {
	case yesterdaySales.IsPositive():
		change := todaySales.Sub(yesterdaySales).Div(yesterdaySales).Mul(decimal.NewFromInt(100))
		stats.PercentChange = change.Round(1).InexactFloat64()
	case todaySales.IsPositive():
		stats.PercentChange = 100
	}
	return stats, nil
}

func (s *ReportService) TableStats(ctx context.Context) (*TableStats, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := s.db.WithContext(ctx).Model(&models.Table{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count tables: %w", err)
	}

	stats := &TableStats{}
	for _, r := range rows {
		stats.Total += r.Count
		switch r.Status {
		case models.TableAvailable:
			stats.Available = r.Count
		case models.TableOccupied:
			stats.Occupied = r.Count
		case models.TableReserved:
			stats.Reserved = r.Count
		case models.TableCleaning:
			stats.Cleaning = r.Count
		}
	}
	return stats, nil
}

func (s *ReportService) OrderStats(ctx context.Context, now time.Time) (*OrderStats, error) {
	db := s.db.WithContext(ctx)
	stats := &OrderStats{}
	if err := db.Model(&models.Order{}).
		Where("status = ?", models.OrderPending).
		Count(&stats.PendingOrders).Error; err != nil {
		return nil, fmt.Errorf("count pending orders: %w", err)
	}
	if err := db.Model(&models.Order{}).
		Where("status = ? AND table_id IS NOT NULL", models.OrderPending).
		Count(&stats.ActiveOrders).Error; err != nil {
		return nil, fmt.Errorf("count active orders: %w", err)
	}
	if err := db.Model(&models.Order{}).
		Where("status = ? AND created_at >= ?", models.OrderCompleted, startOfDay(now)).
		Count(&stats.CompletedToday).Error; err != nil {
		return nil, fmt.Errorf("count completed orders: %w", err)
	}
	return stats, nil
}

// RenderPDF writes the report as a one-page PDF. A bar chart of the top
// sellers is included when there were any sales.
func (s *ReportService) RenderPDF(w io.Writer, report *SalesReport, restaurant string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(restaurant+" sales report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, restaurant, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Sales report (%s): %s to %s",
		report.Timeframe,
		report.From.Format("2006-01-02 15:04"),
		report.To.Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	summary := [][2]string{
		{"Total sales", utils.FormatCurrency(report.TotalSales)},
		{"Total orders", fmt.Sprintf("%d", report.TotalOrders)},
		{"Average order value", utils.FormatCurrency(report.AverageOrderValue)},
	}
	for _, row := range summary {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(60, 8, row[0], "1", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(50, 8, row[1], "1", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, "Top selling items", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(90, 7, "Item", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, "Quantity", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, "Revenue", "1", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	if len(report.TopSellingItems) == 0 {
		pdf.CellFormat(160, 7, "No sales in this period", "1", 1, "C", false, 0, "")
	}
	for _, item := range report.TopSellingItems {
		pdf.CellFormat(90, 7, item.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%d", item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, utils.FormatCurrency(item.Revenue), "1", 1, "R", false, 0, "")
	}

	if len(report.TopSellingItems) > 0 {
		png, err := topSellerChart(report.TopSellingItems)
		if err != nil {
			// Laporan tetap dikirim tanpa grafik
			utils.ErrorLogger.WithError(err).Warn("render top sellers chart")
		} else {
			pdf.Ln(6)
			pdf.RegisterImageOptionsReader("top-sellers", fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))
			pdf.ImageOptions("top-sellers", 10, pdf.GetY(), 180, 0, true, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
		}
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("build report pdf: %w", err)
	}
	return pdf.Output(w)
}

func topSellerChart(items []TopSeller) ([]byte, error) {
	bars := make([]chart.Value, 0, len(items))
	max := 0
	for _, item := range items {
		bars = append(bars, chart.Value{Label: item.Name, Value: float64(item.Quantity)})
		if item.Quantity > max {
			max = item.Quantity
		}
	}

	graph := chart.BarChart{
		Title:    "Top sellers by quantity",
		Height:   400,
		Width:    900,
		BarWidth: 80,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: float64(max) * 1.2},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
