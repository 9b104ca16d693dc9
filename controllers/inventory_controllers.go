package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
	"gorm.io/gorm"
)

// restockFactor is how many times the reorder threshold a restock brings the quantity to.
const restockFactor = 3

type InventoryController struct {
	DB  *gorm.DB
	now func() time.Time
}

func NewInventoryController(db *gorm.DB) *InventoryController {
	return &InventoryController{DB: db, now: time.Now}
}

type inventoryRequest struct {
	Name          string     `json:"name" binding:"required"`
	Category      string     `json:"category" binding:"required"`
	Quantity      *float64   `json:"quantity" binding:"required,gte=0"`
	Unit          string     `json:"unit" binding:"required"`
	MinQuantity   *float64   `json:"minQuantity" binding:"required,gte=0"`
	Cost          *float64   `json:"cost" binding:"required,gte=0"`
	Supplier      *string    `json:"supplier"`
	LastRestocked *time.Time `json:"lastRestocked"`
}

type inventoryView struct {
	models.InventoryItem
	StockLevel string `json:"stockLevel"`
}

func viewInventory(items []models.InventoryItem) []inventoryView {
	views := make([]inventoryView, 0, len(items))
	for _, item := range items {
		views = append(views, inventoryView{InventoryItem: item, StockLevel: item.StockLevel()})
	}
	return views
}

func (ic *InventoryController) apply(item *models.InventoryItem, req inventoryRequest) {
	item.Name = req.Name
	item.Category = req.Category
	item.Quantity = decimal.NewFromFloat(*req.Quantity)
	item.Unit = req.Unit
	item.MinQuantity = decimal.NewFromFloat(*req.MinQuantity)
	item.Cost = decimal.NewFromFloat(*req.Cost).Round(2)
	item.Supplier = trimmed(req.Supplier)
	if req.LastRestocked != nil {
		item.LastRestocked = *req.LastRestocked
	}
	if item.LastRestocked.IsZero() {
		item.LastRestocked = ic.now()
	}
}

func (ic *InventoryController) GetAllInventory(c *gin.Context) {
	var items []models.InventoryItem
	if err := ic.DB.WithContext(c.Request.Context()).Order("category, name").Find(&items).Error; err != nil {
		utils.RespondError(c, err, "Failed to fetch inventory")
		return
	}
	utils.RespondJSON(c, http.StatusOK, viewInventory(items))
}

// GetLowStock -> bahan yang sudah di bawah batas minimum
func (ic *InventoryController) GetLowStock(c *gin.Context) {
	var items []models.InventoryItem
	err := ic.DB.WithContext(c.Request.Context()).
		Where("quantity <= min_quantity").
		Order("name").
		Find(&items).Error
	if err != nil {
		utils.RespondError(c, err, "Failed to fetch low stock items")
		return
	}
	utils.RespondJSON(c, http.StatusOK, viewInventory(items))
}

func (ic *InventoryController) GetInventoryByID(c *gin.Context) {
	var item models.InventoryItem
	if err := findByID(ic.DB.WithContext(c.Request.Context()), &item, c.Param("id"), "Inventory item not found"); err != nil {
		utils.RespondError(c, err, "Failed to fetch inventory item")
		return
	}
	utils.RespondJSON(c, http.StatusOK, inventoryView{InventoryItem: item, StockLevel: item.StockLevel()})
}

func (ic *InventoryController) CreateInventory(c *gin.Context) {
	var req inventoryRequest
	if err := bindJSON(c, &req); err != nil {
		utils.RespondError(c, err, "Failed to create inventory item")
		return
	}

	var item models.InventoryItem
	ic.apply(&item, req)
	if err := ic.DB.WithContext(c.Request.Context()).Create(&item).Error; err != nil {
		utils.RespondError(c, err, "Failed to create inventory item")
		return
	}
	utils.RespondJSON(c, http.StatusCreated, inventoryView{InventoryItem: item, StockLevel: item.StockLevel()})
}

func (ic *InventoryController) UpdateInventory(c *gin.Context) {
	db := ic.DB.WithContext(c.Request.Context())
	var item models.InventoryItem
	if err := findByID(db, &item, c.Param("id"), "Inventory item not found"); err != nil {
		utils.RespondError(c, err, "Failed to update inventory item")
		return
	}

	var req inventoryRequest
	if err := bindJSON(c, &req); err != nil {
		utils.RespondError(c, err, "Failed to update inventory item")
		return
	}
	ic.apply(&item, req)
	if err := db.Save(&item).Error; err != nil {
		utils.RespondError(c, err, "Failed to update inventory item")
		return
	}
	utils.RespondJSON(c, http.StatusOK, inventoryView{InventoryItem: item, StockLevel: item.StockLevel()})
}

// Restock -> isi ulang sampai tiga kali batas minimum
func (ic *InventoryController) Restock(c *gin.Context) {
	db := ic.DB.WithContext(c.Request.Context())
	var item models.InventoryItem
	if err := findByID(db, &item, c.Param("id"), "Inventory item not found"); err != nil {
		utils.RespondError(c, err, "Failed to restock inventory item")
		return
	}

	item.Quantity = item.MinQuantity.Mul(decimal.NewFromInt(restockFactor))
	item.LastRestocked = ic.now()
	if err := db.Model(&item).Updates(map[string]interface{}{
		"quantity":       item.Quantity,
		"last_restocked": item.LastRestocked,
	}).Error; err != nil {
		utils.RespondError(c, err, "Failed to restock inventory item")
		return
	}

	utils.InfoLogger.WithField("inventory_id", item.ID).
		Infof("Restocked %s to %s %s", item.Name, item.Quantity.String(), item.Unit)
	utils.RespondJSON(c, http.StatusOK, inventoryView{InventoryItem: item, StockLevel: item.StockLevel()})
}

func (ic *InventoryController) DeleteInventory(c *gin.Context) {
	id := c.Param("id")
	res := ic.DB.WithContext(c.Request.Context()).Delete(&models.InventoryItem{}, "id = ?", id)
	if res.Error != nil {
		utils.RespondError(c, res.Error, "Failed to delete inventory item")
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, utils.NotFound("Inventory item not found"), "Failed to delete inventory item")
		return
	}
	utils.RespondJSON(c, http.StatusOK, gin.H{"id": id})
}
