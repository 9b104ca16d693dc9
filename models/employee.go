package models

// Employee is a staff member that can be assigned to serve a table.
type Employee struct {
	Base
	Name  string `gorm:"type:varchar(255);not null" json:"name"`
	Role  string `gorm:"type:varchar(50);not null" json:"role"`
	Email string `gorm:"type:varchar(255)" json:"email"`
}
