package models

import (
	"github.com/shopspring/decimal"
)

const (
	OrderPending   = "pending"
	OrderCompleted = "completed"
	OrderCancelled = "cancelled"
)

// IsTerminalOrderStatus reports whether no further transition is allowed from s.
func IsTerminalOrderStatus(s string) bool {
	return s == OrderCompleted || s == OrderCancelled
}

type Order struct {
	Base
	Status        string          `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Total         decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0.00" json:"total"`
	PaymentMethod *string         `gorm:"type:varchar(50)" json:"paymentMethod"`
	Tip           decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0.00" json:"tip"`
	CustomerID    *string         `gorm:"type:varchar(36);index" json:"customerId"`
	Customer      *Customer       `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"customer,omitempty"`
	TableID       *string         `gorm:"type:varchar(36);index" json:"tableId"`
	Table         *Table          `gorm:"foreignKey:TableID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"table,omitempty"`
	Items         []OrderLine     `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"items"`
}

// Subtotal is the sum of the line subtotals, using the snapshotted prices.
func (o *Order) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range o.Items {
		sum = sum.Add(item.Subtotal())
	}
	return sum
}
