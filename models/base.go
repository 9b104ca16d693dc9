package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	// Harga dikirim sebagai angka JSON, bukan string
	decimal.MarshalJSONWithoutQuotes = true
}

// Base is embedded by every entity that owns a generated string id.
type Base struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

// BeforeCreate assigns a UUID unless the caller already supplied an id
// (imports keep their original ids).
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// All returns every model in dependency order for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&Employee{},
		&MenuItem{},
		&Customer{},
		&Table{},
		&Order{},
		&OrderLine{},
		&Invoice{},
		&InventoryItem{},
		&Settings{},
	}
}
