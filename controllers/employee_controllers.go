package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
	"gorm.io/gorm"
)

type EmployeeController struct {
	DB *gorm.DB
}

func NewEmployeeController(db *gorm.DB) *EmployeeController {
	return &EmployeeController{DB: db}
}

type employeeRequest struct {
	Name  string `json:"name" binding:"required"`
	Role  string `json:"role" binding:"required"`
	Email string `json:"email" binding:"omitempty,email"`
}

func (ec *EmployeeController) GetAllEmployees(c *gin.Context) {
	var employees []models.Employee
	if err := ec.DB.WithContext(c.Request.Context()).Order("name").Find(&employees).Error; err != nil {
		utils.RespondError(c, err, "Failed to fetch employees")
		return
	}
	utils.RespondJSON(c, http.StatusOK, employees)
}

func (ec *EmployeeController) GetEmployeeByID(c *gin.Context) {
	var employee models.Employee
	if err := findByID(ec.DB.WithContext(c.Request.Context()), &employee, c.Param("id"), "Employee not found"); err != nil {
		utils.RespondError(c, err, "Failed to fetch employee")
		return
	}
	utils.RespondJSON(c, http.StatusOK, employee)
}

func (ec *EmployeeController) CreateEmployee(c *gin.Context) {
	var req employeeRequest
	if err := bindJSON(c, &req); err != nil {
		utils.RespondError(c, err, "Failed to create employee")
		return
	}

	employee := models.Employee{Name: req.Name, Role: req.Role, Email: req.Email}
	if err := ec.DB.WithContext(c.Request.Context()).Create(&employee).Error; err != nil {
		utils.RespondError(c, err, "Failed to create employee")
		return
	}
	utils.InfoLogger.WithField("employee_id", employee.ID).Infof("Employee created with role %s", employee.Role)
	utils.RespondJSON(c, http.StatusCreated, employee)
}

func (ec *EmployeeController) UpdateEmployee(c *gin.Context) {
	db := ec.DB.WithContext(c.Request.Context())
	var employee models.Employee
	if err := findByID(db, &employee, c.Param("id"), "Employee not found"); err != nil {
		utils.RespondError(c, err, "Failed to update employee")
		return
	}

	var req employeeRequest
	if err := bindJSON(c, &req); err != nil {
		utils.RespondError(c, err, "Failed to update employee")
		return
	}
	employee.Name, employee.Role, employee.Email = req.Name, req.Role, req.Email
	if err := db.Save(&employee).Error; err != nil {
		utils.RespondError(c, err, "Failed to update employee")
		return
	}
	utils.RespondJSON(c, http.StatusOK, employee)
}

// DeleteEmployee -> meja yang ditugaskan ke pegawai ini jadi tanpa pelayan
func (ec *EmployeeController) DeleteEmployee(c *gin.Context) {
	id := c.Param("id")
	err := ec.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var employee models.Employee
		if err := findByID(tx, &employee, id, "Employee not found"); err != nil {
			return err
		}
		if err := tx.Model(&models.Table{}).Where("assigned_server_id = ?", id).
			Update("assigned_server_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&employee).Error
	})
	if err != nil {
		utils.RespondError(c, err, "Failed to delete employee")
		return
	}
	utils.RespondJSON(c, http.StatusOK, gin.H{"id": id})
}
