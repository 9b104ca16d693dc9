package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

type DataController struct {
	Data *services.DataService
}

func NewDataController(data *services.DataService) *DataController {
	return &DataController{Data: data}
}

// Seed -> isi database dengan data demo
func (dc *DataController) Seed(c *gin.Context) {
	result, err := dc.Data.Seed(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err, "Failed to seed database")
		return
	}
	utils.RespondJSON(c, http.StatusOK, gin.H{
		"success": true,
		"message": "Database seeded successfully",
		"created": result,
	})
}

// Migrate -> impor data ekspor lama; id yang sudah ada dilewati
func (dc *DataController) Migrate(c *gin.Context) {
	var req services.MigrateInput
	if err := bindJSON(c, &req); err != nil {
		utils.RespondError(c, err, "Failed to migrate data")
		return
	}
	result, err := dc.Data.Migrate(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err, "Failed to migrate data")
		return
	}
	utils.RespondJSON(c, http.StatusOK, gin.H{
		"success":  true,
		"message":  "Data migrated successfully",
		"imported": result,
	})
}
