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

func setupOrderRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	settings := services.NewSettingsService(db)
	orderCtrl := controllers.NewOrderController(services.NewOrderService(db, settings, nil))
	router.GET("/orders", orderCtrl.GetAllOrders)
	router.POST("/orders", orderCtrl.CreateOrder)
	router.GET("/orders/:id", orderCtrl.GetOrderByID)
	router.PUT("/orders/:id", orderCtrl.UpdateOrder)
	router.DELETE("/orders/:id", orderCtrl.DeleteOrder)
	return router
}

func seedMenuAndTable(t *testing.T, db *gorm.DB) (models.MenuItem, models.Table) {
	t.Helper()
	item := models.MenuItem{Name: "Margherita Pizza", Price: decimal.RequireFromString("12.99"), Category: "Pizza"}
	require.NoError(t, db.Create(&item).Error)
	table := models.Table{Name: "Table 1", Capacity: 4, Status: models.TableAvailable}
	require.NoError(t, db.Create(&table).Error)
	return item, table
}

func TestOrderLifecycle(t *testing.T) {
	db := setupTestDB(t)
	router := setupOrderRouter(db)
	item, table := seedMenuAndTable(t, db)

	// bentuk lama {"menuItem": {"id": ...}} tetap diterima
	w := performRequest(t, router, http.MethodPost, "/orders", gin.H{
		"tableId": table.ID,
		"items":   []gin.H{{"menuItem": gin.H{"id": item.ID}, "quantity": 2}},
		"tip":     3,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var order models.Order
	decodeBody(t, w, &order)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("31.19")), order.Total.String())

	w = performRequest(t, router, http.MethodGet, "/orders/"+order.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = performRequest(t, router, http.MethodPut, "/orders/"+order.ID, gin.H{"status": "cancelled"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decodeBody(t, w, &order)
	assert.Equal(t, models.OrderCancelled, order.Status)

	w = performRequest(t, router, http.MethodPut, "/orders/"+order.ID, gin.H{"status": "completed"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "cannot change order status from cancelled to completed", errorMessage(t, w))

	w = performRequest(t, router, http.MethodDelete, "/orders/"+order.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = performRequest(t, router, http.MethodGet, "/orders/"+order.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderErrors(t *testing.T) {
	db := setupTestDB(t)
	router := setupOrderRouter(db)
	item, table := seedMenuAndTable(t, db)

	w := performRequest(t, router, http.MethodPost, "/orders", gin.H{
		"tableId": table.ID,
		"items":   []gin.H{{"menuItemId": item.ID, "quantity": 1}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	tests := []struct {
		name   string
		method string
		path   string
		body   gin.H
		status int
	}{
		{"table already occupied", http.MethodPost, "/orders",
			gin.H{"tableId": table.ID, "items": []gin.H{{"menuItemId": item.ID, "quantity": 1}}}, http.StatusConflict},
		{"empty items", http.MethodPost, "/orders", gin.H{"items": []gin.H{}}, http.StatusBadRequest},
		{"zero quantity", http.MethodPost, "/orders",
			gin.H{"items": []gin.H{{"menuItemId": item.ID, "quantity": 0}}}, http.StatusBadRequest},
		{"unknown menu item", http.MethodPost, "/orders",
			gin.H{"items": []gin.H{{"menuItemId": "missing", "quantity": 1}}}, http.StatusBadRequest},
		{"unknown customer", http.MethodPost, "/orders",
			gin.H{"customerId": "missing", "items": []gin.H{{"menuItemId": item.ID, "quantity": 1}}}, http.StatusBadRequest},
		{"unknown status", http.MethodPut, "/orders/any", gin.H{"status": "served"}, http.StatusBadRequest},
		{"missing order", http.MethodPut, "/orders/missing", gin.H{"status": "completed"}, http.StatusNotFound},
		{"delete missing order", http.MethodDelete, "/orders/missing", nil, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body interface{}
			if tt.body != nil {
				body = tt.body
			}
			w := performRequest(t, router, tt.method, tt.path, body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			assert.NotEmpty(t, errorMessage(t, w))
		})
	}

	var orders int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	assert.Equal(t, int64(1), orders)
}

func TestOrderList_Limit(t *testing.T) {
	db := setupTestDB(t)
	router := setupOrderRouter(db)
	item, _ := seedMenuAndTable(t, db)

	for i := 0; i < 3; i++ {
		w := performRequest(t, router, http.MethodPost, "/orders", gin.H{
			"customerId": "guest",
			"tableId":    "takeout",
			"items":      []gin.H{{"menuItemId": item.ID, "quantity": i + 1}},
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := performRequest(t, router, http.MethodGet, "/orders?limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var orders []models.Order
	decodeBody(t, w, &orders)
	assert.Len(t, orders, 2)

	w = performRequest(t, router, http.MethodGet, "/orders", nil)
	decodeBody(t, w, &orders)
	assert.Len(t, orders, 3)

	w = performRequest(t, router, http.MethodGet, "/orders?limit=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
