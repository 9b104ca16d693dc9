package models

import (
	"time"
)

type Customer struct {
	Base
	Name          string    `gorm:"type:varchar(255);not null;index" json:"name"`
	Email         *string   `gorm:"type:varchar(255)" json:"email"`
	Phone         *string   `gorm:"type:varchar(50)" json:"phone"`
	Address       *string   `gorm:"type:varchar(255)" json:"address"`
	LoyaltyPoints int       `gorm:"not null;default:0" json:"loyaltyPoints"`
	JoinDate      time.Time `gorm:"not null" json:"joinDate"`
	Notes         *string   `gorm:"type:text" json:"notes"`
	Orders        []Order   `gorm:"foreignKey:CustomerID" json:"orders,omitempty"`
}
