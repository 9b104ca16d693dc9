package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingsProvider is the single source of tax configuration for every
// component that prices an order or invoice.
type SettingsProvider interface {
	TaxRate(ctx context.Context) decimal.Decimal
}

type SettingsService struct {
	db *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{db: db}
}

// Get returns the stored settings, or the defaults when none were saved yet.
func (s *SettingsService) Get(ctx context.Context) (models.Settings, error) {
	var settings models.Settings
	err := s.db.WithContext(ctx).First(&settings, "id = ?", models.SettingsKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.DefaultSettings(), nil
	}
	if err != nil {
		return models.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	return settings, nil
}

// TaxRate never fails: an unreadable settings row falls back to the default rate.
func (s *SettingsService) TaxRate(ctx context.Context) decimal.Decimal {
	settings, err := s.Get(ctx)
	if err != nil {
		utils.ErrorLogger.WithError(err).Warn("using default tax rate")
		return decimal.NewFromFloat(models.DefaultTaxRate)
	}
	return decimal.NewFromFloat(settings.RestaurantSettings.TaxRate)
}

type SaveSettingsInput struct {
	RestaurantSettings *RestaurantSettingsInput `json:"restaurantSettings"`
	AppSettings        *models.AppSettings      `json:"appSettings"`
}

type RestaurantSettingsInput struct {
	Name                  string    `json:"name" validate:"required"`
	Address               string    `json:"address"`
	Phone                 string    `json:"phone"`
	TaxRate               float64   `json:"taxRate" validate:"gte=0,lte=100"`
	EnableTips            bool      `json:"enableTips"`
	DefaultTipPercentages []float64 `json:"defaultTipPercentages" validate:"dive,gte=0,lte=100"`
}

// Save upserts the single settings row. Sections left out of the input keep
// their current values.
func (s *SettingsService) Save(ctx context.Context, in SaveSettingsInput) (models.Settings, error) {
	if err := validateInput(in); err != nil {
		return models.Settings{}, err
	}

	settings, err := s.Get(ctx)
	if err != nil {
		return models.Settings{}, err
	}
	settings.ID = models.SettingsKey
	if r := in.RestaurantSettings; r != nil {
		settings.RestaurantSettings = models.RestaurantSettings{
			Name:                  r.Name,
			Address:               r.Address,
			Phone:                 r.Phone,
			TaxRate:               r.TaxRate,
			EnableTips:            r.EnableTips,
			DefaultTipPercentages: r.DefaultTipPercentages,
		}
	}
	if in.AppSettings != nil {
		settings.AppSettings = *in.AppSettings
	}

	if err := upsertSettings(s.db.WithContext(ctx), &settings); err != nil {
		return models.Settings{}, err
	}
	return settings, nil
}

func upsertSettings(tx *gorm.DB, settings *models.Settings) error {
	settings.ID = models.SettingsKey
	if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(settings).Error; err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
