package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-pos/config"
	"github.com/yeremiapane/restaurant-pos/controllers"
	"github.com/yeremiapane/restaurant-pos/kds"
	"github.com/yeremiapane/restaurant-pos/middlewares"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, cfg config.Config, hub *kds.Hub) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// Apply middlewares
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORS(cfg.CORSOrigins))
	r.Use(middlewares.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).RateLimit())
	r.Use(middlewares.RequestTimeout(cfg.RequestTimeout))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, utils.ErrorResponse{Error: "Route not found"})
	})

	// Services
	settingsSvc := services.NewSettingsService(db)
	orderSvc := services.NewOrderService(db, settingsSvc, hub)
	orderSvc.StrictTableClaim = cfg.StrictTableClaim
	invoiceSvc := services.NewInvoiceService(db, settingsSvc, hub)

	// Inisialisasi controller
	menuCtrl := controllers.NewMenuController(db)
	customerCtrl := controllers.NewCustomerController(db)
	tableCtrl := controllers.NewTableController(db, hub)
	employeeCtrl := controllers.NewEmployeeController(db)
	inventoryCtrl := controllers.NewInventoryController(db)
	orderCtrl := controllers.NewOrderController(orderSvc)
	invoiceCtrl := controllers.NewInvoiceController(invoiceSvc)
	settingsCtrl := controllers.NewSettingsController(settingsSvc)
	reportCtrl := controllers.NewReportController(services.NewReportService(db), settingsSvc)
	dataCtrl := controllers.NewDataController(services.NewDataService(db))
	kdsCtrl := controllers.NewKDSController(hub)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Live updates (websocket)
	r.GET("/kds/ws", kdsCtrl.KDSHandler)
	r.GET("/kds/status", kdsCtrl.Status)

	// MENU
	r.GET("/menu", menuCtrl.GetAllMenus)
	r.POST("/menu", menuCtrl.CreateMenu)
	r.GET("/menu/:id", menuCtrl.GetMenuByID)
	r.PUT("/menu/:id", menuCtrl.UpdateMenu)
	r.DELETE("/menu/:id", menuCtrl.DeleteMenu)

	// CUSTOMERS
	r.GET("/customers", customerCtrl.GetAllCustomers)
	r.POST("/customers", customerCtrl.CreateCustomer)
	r.GET("/customers/:id", customerCtrl.GetCustomerByID)
	r.PUT("/customers/:id", customerCtrl.UpdateCustomer)
	r.DELETE("/customers/:id", customerCtrl.DeleteCustomer)

	// TABLES
	r.GET("/tables", tableCtrl.GetAllTables)
	r.POST("/tables", tableCtrl.CreateTable)
	r.GET("/tables/reservations", tableCtrl.GetReservations)
	r.GET("/tables/:id", tableCtrl.GetTableByID)
	r.PUT("/tables/:id", tableCtrl.UpdateTable)
	r.DELETE("/tables/:id", tableCtrl.DeleteTable)

	// EMPLOYEES
	r.GET("/employees", employeeCtrl.GetAllEmployees)
	r.POST("/employees", employeeCtrl.CreateEmployee)
	r.GET("/employees/:id", employeeCtrl.GetEmployeeByID)
	r.PUT("/employees/:id", employeeCtrl.UpdateEmployee)
	r.DELETE("/employees/:id", employeeCtrl.DeleteEmployee)

	// ORDERS
	r.GET("/orders", orderCtrl.GetAllOrders)
	r.POST("/orders", orderCtrl.CreateOrder)
	r.GET("/orders/:id", orderCtrl.GetOrderByID)
	r.PUT("/orders/:id", orderCtrl.UpdateOrder)
	r.DELETE("/orders/:id", orderCtrl.DeleteOrder)

	// INVOICES
	r.GET("/invoices", invoiceCtrl.GetAllInvoices)
	r.POST("/invoices", invoiceCtrl.CreateInvoice)
	r.GET("/invoices/by-order/:orderId", invoiceCtrl.GetInvoiceByOrder)
	r.GET("/invoices/:id", invoiceCtrl.GetInvoice)
	r.PUT("/invoices/:id", invoiceCtrl.UpdateInvoice)
	r.DELETE("/invoices/:id", invoiceCtrl.DeleteInvoice)
	r.POST("/invoices/:id/send", invoiceCtrl.SendInvoice)
	r.POST("/invoices/:id/pdf", invoiceCtrl.InvoicePDF)

	// INVENTORY
	r.GET("/inventory", inventoryCtrl.GetAllInventory)
	r.POST("/inventory", inventoryCtrl.CreateInventory)
	r.GET("/inventory/low-stock", inventoryCtrl.GetLowStock)
	r.GET("/inventory/:id", inventoryCtrl.GetInventoryByID)
	r.PUT("/inventory/:id", inventoryCtrl.UpdateInventory)
	r.DELETE("/inventory/:id", inventoryCtrl.DeleteInventory)
	r.POST("/inventory/:id/restock", inventoryCtrl.Restock)

	// SETTINGS
	r.GET("/settings", settingsCtrl.GetSettings)
	r.POST("/settings", settingsCtrl.SaveSettings)

	// DASHBOARD & REPORTS
	r.GET("/stats/sales", reportCtrl.GetSalesStats)
	r.GET("/stats/tables", reportCtrl.GetTableStats)
	r.GET("/stats/orders", reportCtrl.GetOrderStats)
	r.GET("/reports", reportCtrl.GetSalesReport)
	r.GET("/reports/export-pdf", reportCtrl.ExportSalesReportPDF)

	// DATA
	r.POST("/seed", dataCtrl.Seed)
	r.POST("/migrate", dataCtrl.Migrate)

	return r
}
