package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	InvoiceDraft   = "draft"
	InvoiceSent    = "sent"
	InvoicePaid    = "paid"
	InvoiceOverdue = "overdue"
)

// GuestCustomer is accepted on input in place of a customer id and stored as NULL.
const GuestCustomer = "guest"

func ValidInvoiceStatus(s string) bool {
	switch s {
	case InvoiceDraft, InvoiceSent, InvoicePaid, InvoiceOverdue:
		return true
	}
	return false
}

// Invoice may exist without an order (manual invoices). At most one invoice
// references a given order.
type Invoice struct {
	Base
	OrderID    *string         `gorm:"type:varchar(36);uniqueIndex" json:"orderId"`
	Order      *Order          `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"order,omitempty"`
	CustomerID *string         `gorm:"type:varchar(36);index" json:"customerId"`
	Customer   *Customer       `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"customer,omitempty"`
	Subtotal   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	TaxRate    decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"taxRate"`
	TaxAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"taxAmount"`
	Total      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	Status     string          `gorm:"type:varchar(20);not null;default:'draft'" json:"status"`
	IssueDate  time.Time       `gorm:"not null" json:"issueDate"`
	DueDate    time.Time       `gorm:"not null" json:"dueDate"`
	Notes      *string         `gorm:"type:text" json:"notes"`
}
