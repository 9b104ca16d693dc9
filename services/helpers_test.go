package services

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-pos/database"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	utils.InitLogger()
	db, err := database.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

type staticTax float64

func (s staticTax) TaxRate(context.Context) decimal.Decimal {
	return decimal.NewFromFloat(float64(s))
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingNotifier) Broadcast(event string, _ interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingNotifier) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func assertMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Equal(t, want, got.StringFixed(2))
}

func createMenuItem(t *testing.T, db *gorm.DB, name, price string) models.MenuItem {
	t.Helper()
	item := models.MenuItem{Name: name, Price: decimal.RequireFromString(price), Category: "Main"}
	require.NoError(t, db.Create(&item).Error)
	return item
}

func createCustomer(t *testing.T, db *gorm.DB, name string, points int) models.Customer {
	t.Helper()
	c := models.Customer{Name: name}
	require.NoError(t, db.Create(&c).Error)
	if points > 0 {
		require.NoError(t, db.Model(&c).Update("loyalty_points", points).Error)
		c.LoyaltyPoints = points
	}
	return c
}

func createTable(t *testing.T, db *gorm.DB, name, status string) models.Table {
	t.Helper()
	table := models.Table{Name: name, Capacity: 4, Status: status}
	require.NoError(t, db.Create(&table).Error)
	return table
}

func reloadTable(t *testing.T, db *gorm.DB, id string) models.Table {
	t.Helper()
	var table models.Table
	require.NoError(t, db.First(&table, "id = ?", id).Error)
	return table
}

func reloadCustomer(t *testing.T, db *gorm.DB, id string) models.Customer {
	t.Helper()
	var c models.Customer
	require.NoError(t, db.First(&c, "id = ?", id).Error)
	return c
}

func countRows(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	q := db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}

func ptr[T any](v T) *T { return &v }
