package models

import "time"

const (
	TableAvailable = "available"
	TableOccupied  = "occupied"
	TableReserved  = "reserved"
	TableCleaning  = "cleaning"
)

// ValidTableStatus reports whether s is one of the known table states.
func ValidTableStatus(s string) bool {
	switch s {
	case TableAvailable, TableOccupied, TableReserved, TableCleaning:
		return true
	}
	return false
}

type Table struct {
	Base
	Name     string `gorm:"type:varchar(50);not null" json:"name"`
	Capacity int    `gorm:"not null" json:"capacity"`
	Status   string `gorm:"type:varchar(20);not null;default:'available';index" json:"status"`
	// No association here: Order already points at Table and a cycle breaks AutoMigrate.
	CurrentOrderID   *string    `gorm:"type:varchar(36)" json:"currentOrderId"`
	AssignedServerID *string    `gorm:"type:varchar(36)" json:"assignedServerId"`
	AssignedServer   *Employee  `gorm:"foreignKey:AssignedServerID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"assignedServer,omitempty"`
	ReservationTime  *time.Time `json:"reservationTime"`
	ReservationName  *string    `gorm:"type:varchar(255)" json:"reservationName"`
}
