package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{Orders: orders}
}

// GetAllOrders -> list order terbaru beserta item, customer dan meja
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			utils.RespondError(c, utils.Invalid("limit must be a non-negative integer"), "Failed to fetch orders")
			return
		}
		limit = n
	}

	orders, err := oc.Orders.ListOrders(c.Request.Context(), limit)
	if err != nil {
		utils.RespondError(c, err, "Failed to fetch orders")
		return
	}
	utils.RespondJSON(c, http.StatusOK, orders)
}

func (oc *OrderController) GetOrderByID(c *gin.Context) {
	order, err := oc.Orders.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err, "Failed to fetch order")
		return
	}
	utils.RespondJSON(c, http.StatusOK, order)
}

// CreateOrder -> order baru; meja, poin loyalty dan invoice diproses sekaligus
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req services.PlaceOrderInput
	if err := bindJSON(c, &req); err != nil {
		utils.RespondError(c, err, "Failed to create order")
		return
	}

	order, err := oc.Orders.PlaceOrder(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err, "Failed to create order")
		return
	}
	utils.RespondJSON(c, http.StatusCreated, order)
}

// UpdateOrder -> ubah status; completed membuat invoice, cancelled membebaskan meja
func (oc *OrderController) UpdateOrder(c *gin.Context) {
	var req services.UpdateOrderInput
	if err := bindJSON(c, &req); err != nil {
		utils.RespondError(c, err, "Failed to update order")
		return
	}

	order, err := oc.Orders.UpdateOrder(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err, "Failed to update order")
		return
	}
	utils.RespondJSON(c, http.StatusOK, order)
}

func (oc *OrderController) DeleteOrder(c *gin.Context) {
	id := c.Param("id")
	if err := oc.Orders.DeleteOrder(c.Request.Context(), id); err != nil {
		utils.RespondError(c, err, "Failed to delete order")
		return
	}
	utils.RespondJSON(c, http.StatusOK, gin.H{"id": id})
}
