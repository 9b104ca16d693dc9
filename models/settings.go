package models

import "time"

// SettingsKey is the primary key of the single settings row.
const SettingsKey = "1"

// DefaultTaxRate is the percentage applied when no settings have been saved.
const DefaultTaxRate = 8.5

type RestaurantSettings struct {
	Name                  string    `json:"name"`
	Address               string    `json:"address"`
	Phone                 string    `json:"phone"`
	TaxRate               float64   `json:"taxRate"`
	EnableTips            bool      `json:"enableTips"`
	DefaultTipPercentages []float64 `json:"defaultTipPercentages"`
}

type AppSettings struct {
	DarkMode      bool   `json:"darkMode"`
	CompactMode   bool   `json:"compactMode"`
	ReceiptFooter string `json:"receiptFooter"`
}

type Settings struct {
	ID                 string             `gorm:"type:varchar(36);primaryKey" json:"-"`
	RestaurantSettings RestaurantSettings `gorm:"serializer:json;type:text" json:"restaurantSettings"`
	AppSettings        AppSettings        `gorm:"serializer:json;type:text" json:"appSettings"`
	UpdatedAt          time.Time          `json:"-"`
}

func DefaultSettings() Settings {
	return Settings{
		ID: SettingsKey,
		RestaurantSettings: RestaurantSettings{
			Name:                  "My Restaurant",
			Address:               "123 Main St, City, State",
			Phone:                 "(555) 123-4567",
			TaxRate:               DefaultTaxRate,
			EnableTips:            true,
			DefaultTipPercentages: []float64{15, 18, 20},
		},
		AppSettings: AppSettings{
			DarkMode:      false,
			CompactMode:   false,
			ReceiptFooter: "Thank you for your business!",
		},
	}
}
