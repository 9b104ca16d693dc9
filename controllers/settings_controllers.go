package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

type SettingsController struct {
	Settings *services.SettingsService
}

func NewSettingsController(settings *services.SettingsService) *SettingsController {
	return &SettingsController{Settings: settings}
}

// GetSettings -> nilai default jika belum pernah disimpan
func (sc *SettingsController) GetSettings(c *gin.Context) {
	settings, err := sc.Settings.Get(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err, "Failed to fetch settings")
		return
	}
	utils.RespondJSON(c, http.StatusOK, settings)
}

func (sc *SettingsController) SaveSettings(c *gin.Context) {
	var req services.SaveSettingsInput
	if err := bindJSON(c, &req); err != nil {
		utils.RespondError(c, err, "Failed to save settings")
		return
	}
	settings, err := sc.Settings.Save(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err, "Failed to save settings")
		return
	}
	utils.InfoLogger.WithField("tax_rate", settings.RestaurantSettings.TaxRate).Info("Settings saved")
	utils.RespondJSON(c, http.StatusOK, settings)
}
