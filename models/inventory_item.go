package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StockLow    = "low"
	StockMedium = "medium"
	StockGood   = "good"
)

// InventoryItem is tracked by hand. It is not linked to menu items, so
// placing an order never consumes stock.
type InventoryItem struct {
	Base
	Name          string          `gorm:"type:varchar(255);not null" json:"name"`
	Category      string          `gorm:"type:varchar(100);index" json:"category"`
	Quantity      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"quantity"`
	Unit          string          `gorm:"type:varchar(20);not null" json:"unit"`
	MinQuantity   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"minQuantity"`
	Cost          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"cost"`
	Supplier      *string         `gorm:"type:varchar(255)" json:"supplier"`
	LastRestocked time.Time       `gorm:"not null" json:"lastRestocked"`
}

func (i InventoryItem) IsLowStock() bool {
	return i.Quantity.LessThanOrEqual(i.MinQuantity)
}

// StockLevel buckets quantity against the reorder threshold: at or under the
// threshold is low, up to twice the threshold is medium.
func (i InventoryItem) StockLevel() string {
	if i.IsLowStock() {
		return StockLow
	}
	if i.Quantity.LessThanOrEqual(i.MinQuantity.Mul(decimal.NewFromInt(2))) {
		return StockMedium
	}
	return StockGood
}
