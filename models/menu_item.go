package models

import "github.com/shopspring/decimal"

type MenuItem struct {
	Base
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Category    string          `gorm:"type:varchar(100);index" json:"category"`
	Description *string         `gorm:"type:text" json:"description"`
}
