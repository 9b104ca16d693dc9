package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-pos/kds"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
	"gorm.io/gorm"
)

type TableController struct {
	DB       *gorm.DB
	Notifier services.Notifier
}

func NewTableController(db *gorm.DB, notifier services.Notifier) *TableController {
	return &TableController{DB: db, Notifier: notifier}
}

// currentOrderId is owned by the order workflow and cannot be set here.
type tableRequest struct {
	Name             string     `json:"name" binding:"required"`
	Capacity         int        `json:"capacity" binding:"required,gt=0"`
	Status           string     `json:"status"`
	AssignedServerID *string    `json:"assignedServerId"`
	ReservationTime  *time.Time `json:"reservationTime"`
	ReservationName  *string    `json:"reservationName"`
}

func (tc *TableController) broadcast(table models.Table) {
	if tc.Notifier != nil {
		tc.Notifier.Broadcast(kds.EventTableUpdate, table)
	}
}

// apply validates req against the database and copies it onto table.
func (tc *TableController) apply(db *gorm.DB, table *models.Table, req tableRequest) error {
	if req.Status != "" {
		if !models.ValidTableStatus(req.Status) {
			return utils.Invalid("invalid table status %q", req.Status)
		}
		table.Status = req.Status
	}
	if table.Status == "" {
		table.Status = models.TableAvailable
	}

	serverID := trimmed(req.AssignedServerID)
	if serverID != nil {
		var employee models.Employee
		if err := findByID(db, &employee, *serverID, ""); err != nil {
			if utils.StatusCode(err) == http.StatusNotFound {
				return utils.Invalid("employee %s does not exist", *serverID)
			}
			return err
		}
	}

	table.Name = req.Name
	table.Capacity = req.Capacity
	table.AssignedServerID = serverID
	table.ReservationTime = req.ReservationTime
	table.ReservationName = trimmed(req.ReservationName)
	return nil
}

// GetAllTables -> semua meja beserta pelayan yang ditugaskan
func (tc *TableController) GetAllTables(c *gin.Context) {
	var tables []models.Table
	err := tc.DB.WithContext(c.Request.Context()).
		Preload("AssignedServer").
		Order("name").
		Find(&tables).Error
	if err != nil {
		utils.RespondError(c, err, "Failed to fetch tables")
		return
	}
	utils.RespondJSON(c, http.StatusOK, tables)
}

// GetReservations -> meja yang punya jadwal reservasi, paling dekat dulu
func (tc *TableController) GetReservations(c *gin.Context) {
	var tables []models.Table
	err := tc.DB.WithContext(c.Request.Context()).
		Where("reservation_time IS NOT NULL").
		Order("reservation_time").
		Find(&tables).Error
	if err != nil {
		utils.RespondError(c, err, "Failed to fetch reservations")
		return
	}
	utils.RespondJSON(c, http.StatusOK, tables)
}

func (tc *TableController) GetTableByID(c *gin.Context) {
	var table models.Table
	db := tc.DB.WithContext(c.Request.Context()).Preload("AssignedServer")
	if err := findByID(db, &table, c.Param("id"), "Table not found"); err != nil {
		utils.RespondError(c, err, "Failed to fetch table")
		return
	}
	utils.RespondJSON(c, http.StatusOK, table)
}

func (tc *TableController) CreateTable(c *gin.Context) {
	var req tableRequest
	if err := bindJSON(c, &req); err != nil {
		utils.RespondError(c, err, "Failed to create table")
		return
	}

	db := tc.DB.WithContext(c.Request.Context())
	var table models.Table
	if err := tc.apply(db, &table, req); err != nil {
		utils.RespondError(c, err, "Failed to create table")
		return
	}
	if err := db.Create(&table).Error; err != nil {
		utils.RespondError(c, err, "Failed to create table")
		return
	}

	utils.InfoLogger.WithField("table_id", table.ID).Infof("New table created: %s (status=%s)", table.Name, table.Status)
	tc.broadcast(table)
	utils.RespondJSON(c, http.StatusCreated, table)
}

// UpdateTable -> mengubah data meja, termasuk menandai meja selesai dibersihkan
func (tc *TableController) UpdateTable(c *gin.Context) {
	db := tc.DB.WithContext(c.Request.Context())
	var table models.Table
	if err := findByID(db, &table, c.Param("id"), "Table not found"); err != nil {
		utils.RespondError(c, err, "Failed to update table")
		return
	}

	var req tableRequest
	if err := bindJSON(c, &req); err != nil {
		utils.RespondError(c, err, "Failed to update table")
		return
	}
	if err := tc.apply(db, &table, req); err != nil {
		utils.RespondError(c, err, "Failed to update table")
		return
	}
	// Meja yang dibebaskan manual tidak lagi memegang order
	if table.Status != models.TableOccupied {
		table.CurrentOrderID = nil
	}
	table.AssignedServer = nil
	if err := db.Save(&table).Error; err != nil {
		utils.RespondError(c, err, "Failed to update table")
		return
	}

	utils.InfoLogger.WithField("table_id", table.ID).Infof("Table status changed to %s", table.Status)
	tc.broadcast(table)
	utils.RespondJSON(c, http.StatusOK, table)
}

// DeleteTable -> order lama tetap ada, hanya kehilangan referensi meja
func (tc *TableController) DeleteTable(c *gin.Context) {
	id := c.Param("id")
	err := tc.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var table models.Table
		if err := findByID(tx, &table, id, "Table not found"); err != nil {
			return err
		}
		if table.CurrentOrderID != nil {
			return utils.Conflict("Table has an active order")
		}
		if err := tx.Model(&models.Order{}).Where("table_id = ?", id).Update("table_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&table).Error
	})
	if err != nil {
		utils.RespondError(c, err, "Failed to delete table")
		return
	}

	utils.InfoLogger.WithField("table_id", id).Info("Table deleted")
	utils.RespondJSON(c, http.StatusOK, gin.H{"id": id})
}
