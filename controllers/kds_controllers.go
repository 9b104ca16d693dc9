package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-pos/kds"
	"github.com/yeremiapane/restaurant-pos/utils"
)

type KDSController struct {
	Hub *kds.Hub
}

func NewKDSController(hub *kds.Hub) *KDSController {
	return &KDSController{Hub: hub}
}

// KDSHandler -> endpoint WebSocket untuk layar dapur dan kasir
func (kc *KDSController) KDSHandler(c *gin.Context) {
	if !c.IsWebsocket() {
		utils.RespondError(c, utils.Invalid("websocket upgrade required"), "Failed to open live updates")
		return
	}
	kc.Hub.Handle(c)
}

func (kc *KDSController) Status(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, gin.H{"clients": kc.Hub.ClientCount()})
}
