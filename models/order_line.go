package models

import (
	"github.com/shopspring/decimal"
)

// OrderLine is one menu item on an order. Price is a snapshot of the menu
// price at the time the order was placed and is never re-read.
type OrderLine struct {
	Base
	OrderID    string          `gorm:"type:varchar(36);not null;index" json:"orderId"`
	MenuItemID string          `gorm:"type:varchar(36);not null;index" json:"menuItemId"`
	MenuItem   *MenuItem       `gorm:"foreignKey:MenuItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"menuItem,omitempty"`
	Quantity   int             `gorm:"not null" json:"quantity"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
}

func (l OrderLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
