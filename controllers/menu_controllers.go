package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
	"gorm.io/gorm"
)

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

type menuItemRequest struct {
	Name        string   `json:"name" binding:"required"`
	Price       *float64 `json:"price" binding:"required,gte=0"`
	Category    string   `json:"category" binding:"required"`
	Description *string  `json:"description"`
}

// GetAllMenus -> semua menu, dikelompokkan per kategori
func (mc *MenuController) GetAllMenus(c *gin.Context) {
	var items []models.MenuItem
	if err := mc.DB.WithContext(c.Request.Context()).Order("category, name").Find(&items).Error; err != nil {
		utils.RespondError(c, err, "Failed to fetch menu items")
		return
	}
	utils.RespondJSON(c, http.StatusOK, items)
}

func (mc *MenuController) GetMenuByID(c *gin.Context) {
	var item models.MenuItem
	if err := findByID(mc.DB.WithContext(c.Request.Context()), &item, c.Param("id"), "Menu item not found"); err != nil {
		utils.RespondError(c, err, "Failed to fetch menu item")
		return
	}
	utils.RespondJSON(c, http.StatusOK, item)
}

func (mc *MenuController) CreateMenu(c *gin.Context) {
	var req menuItemRequest
	if err := bindJSON(c, &req); err != nil {
		utils.RespondError(c, err, "Failed to create menu item")
		return
	}

	item := models.MenuItem{
		Name:        req.Name,
		Price:       decimal.NewFromFloat(*req.Price).Round(2),
		Category:    req.Category,
		Description: trimmed(req.Description),
	}
	if err := mc.DB.WithContext(c.Request.Context()).Create(&item).Error; err != nil {
		utils.RespondError(c, err, "Failed to create menu item")
		return
	}

	utils.InfoLogger.WithField("menu_item_id", item.ID).Infof("Menu item created: %s", item.Name)
	utils.RespondJSON(c, http.StatusCreated, item)
}

// UpdateMenu -> harga baru hanya berlaku untuk order berikutnya
func (mc *MenuController) UpdateMenu(c *gin.Context) {
	db := mc.DB.WithContext(c.Request.Context())
	var item models.MenuItem
	if err := findByID(db, &item, c.Param("id"), "Menu item not found"); err != nil {
		utils.RespondError(c, err, "Failed to update menu item")
		return
	}

	var req menuItemRequest
	if err := bindJSON(c, &req); err != nil {
		utils.RespondError(c, err, "Failed to update menu item")
		return
	}

	item.Name = req.Name
	item.Price = decimal.NewFromFloat(*req.Price).Round(2)
	item.Category = req.Category
	item.Description = trimmed(req.Description)
	if err := db.Save(&item).Error; err != nil {
		utils.RespondError(c, err, "Failed to update menu item")
		return
	}
	utils.RespondJSON(c, http.StatusOK, item)
}

// DeleteMenu -> menu yang sudah pernah dipesan tidak bisa dihapus
func (mc *MenuController) DeleteMenu(c *gin.Context) {
	db := mc.DB.WithContext(c.Request.Context())
	id := c.Param("id")

	var item models.MenuItem
	if err := findByID(db, &item, id, "Menu item not found"); err != nil {
		utils.RespondError(c, err, "Failed to delete menu item")
		return
	}

	var used int64
	if err := db.Model(&models.OrderLine{}).Where("menu_item_id = ?", id).Count(&used).Error; err != nil {
		utils.RespondError(c, err, "Failed to delete menu item")
		return
	}
	if used > 0 {
		utils.RespondError(c, utils.Conflict("Menu item is used by existing orders"), "Failed to delete menu item")
		return
	}

	if err := db.Delete(&item).Error; err != nil {
		utils.RespondError(c, err, "Failed to delete menu item")
		return
	}
	utils.RespondJSON(c, http.StatusOK, gin.H{"id": id})
}
