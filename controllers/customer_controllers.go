package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
	"gorm.io/gorm"
)

type CustomerController struct {
	DB *gorm.DB
}

func NewCustomerController(db *gorm.DB) *CustomerController {
	return &CustomerController{DB: db}
}

type customerRequest struct {
	Name    string  `json:"name" binding:"required"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Notes   *string `json:"notes"`
	// LoyaltyPoints hanya diisi saat koreksi manual
	LoyaltyPoints *int `json:"loyaltyPoints" binding:"omitempty,gte=0"`
}

// GetAllCustomers -> semua customer, urut nama
func (cc *CustomerController) GetAllCustomers(c *gin.Context) {
	var customers []models.Customer
	if err := cc.DB.WithContext(c.Request.Context()).Order("name").Find(&customers).Error; err != nil {
		utils.RespondError(c, err, "Failed to fetch customers")
		return
	}
	utils.RespondJSON(c, http.StatusOK, customers)
}

// GetCustomerByID -> detail customer beserta riwayat order
func (cc *CustomerController) GetCustomerByID(c *gin.Context) {
	db := cc.DB.WithContext(c.Request.Context()).
		Preload("Orders", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at desc")
		}).
		Preload("Orders.Items.MenuItem")

	var customer models.Customer
	if err := findByID(db, &customer, c.Param("id"), "Customer not found"); err != nil {
		utils.RespondError(c, err, "Failed to fetch customer")
		return
	}
	if customer.Orders == nil {
		customer.Orders = []models.Order{}
	}
	utils.RespondJSON(c, http.StatusOK, customer)
}

func (cc *CustomerController) CreateCustomer(c *gin.Context) {
	var req customerRequest
	if err := bindJSON(c, &req); err != nil {
		utils.RespondError(c, err, "Failed to create customer")
		return
	}

	customer := models.Customer{
		Name:     req.Name,
		Email:    trimmed(req.Email),
		Phone:    trimmed(req.Phone),
		Address:  trimmed(req.Address),
		Notes:    trimmed(req.Notes),
		JoinDate: time.Now(),
	}
	if req.LoyaltyPoints != nil {
		customer.LoyaltyPoints = *req.LoyaltyPoints
	}
	if err := cc.DB.WithContext(c.Request.Context()).Create(&customer).Error; err != nil {
		utils.RespondError(c, err, "Failed to create customer")
		return
	}

	utils.InfoLogger.WithField("customer_id", customer.ID).Info("Customer created")
	utils.RespondJSON(c, http.StatusCreated, customer)
}

func (cc *CustomerController) UpdateCustomer(c *gin.Context) {
	db := cc.DB.WithContext(c.Request.Context())
	var customer models.Customer
	if err := findByID(db, &customer, c.Param("id"), "Customer not found"); err != nil {
		utils.RespondError(c, err, "Failed to update customer")
		return
	}

	var req customerRequest
	if err := bindJSON(c, &req); err != nil {
		utils.RespondError(c, err, "Failed to update customer")
		return
	}

	customer.Name = req.Name
	customer.Email = trimmed(req.Email)
	customer.Phone = trimmed(req.Phone)
	customer.Address = trimmed(req.Address)
	customer.Notes = trimmed(req.Notes)
	if req.LoyaltyPoints != nil {
		customer.LoyaltyPoints = *req.LoyaltyPoints
	}
	if err := db.Save(&customer).Error; err != nil {
		utils.RespondError(c, err, "Failed to update customer")
		return
	}
	utils.RespondJSON(c, http.StatusOK, customer)
}

// DeleteCustomer -> order dan invoice lama tetap ada tanpa customer
func (cc *CustomerController) DeleteCustomer(c *gin.Context) {
	id := c.Param("id")
	err := cc.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var customer models.Customer
		if err := findByID(tx, &customer, id, "Customer not found"); err != nil {
			return err
		}
		if err := tx.Model(&models.Order{}).Where("customer_id = ?", id).Update("customer_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Invoice{}).Where("customer_id = ?", id).Update("customer_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&customer).Error
	})
	if err != nil {
		utils.RespondError(c, err, "Failed to delete customer")
		return
	}
	utils.RespondJSON(c, http.StatusOK, gin.H{"id": id})
}
