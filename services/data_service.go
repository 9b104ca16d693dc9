package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DataService loads demo data and imports exports from older installs.
type DataService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewDataService(db *gorm.DB) *DataService {
	return &DataService{db: db, now: time.Now}
}

type SeedResult struct {
	MenuItems      int `json:"menuItems"`
	InventoryItems int `json:"inventoryItems"`
	Tables         int `json:"tables"`
	Customers      int `json:"customers"`
}

func strPtr(s string) *string { return &s }

// Seed inserts the fixed demo data set. It refuses to run on a database that
// already has a menu.
func (s *DataService) Seed(ctx context.Context) (*SeedResult, error) {
	now := s.now()
	menu := []models.MenuItem{
		{Name: "Margherita Pizza", Price: decimal.RequireFromString("12.99"), Category: "Pizza",
			Description: strPtr("Classic pizza with tomato sauce, mozzarella, and basil")},
		{Name: "Caesar Salad", Price: decimal.RequireFromString("8.99"), Category: "Salads",
			Description: strPtr("Romaine lettuce with Caesar dressing, croutons, and parmesan")},
		{Name: "Spaghetti Carbonara", Price: decimal.RequireFromString("14.99"), Category: "Pasta",
			Description: strPtr("Spaghetti with eggs, cheese, pancetta, and black pepper")},
	}
	inventory := []models.InventoryItem{
		{Name: "Flour", Category: "Baking", Quantity: decimal.NewFromInt(25), Unit: "kg",
			MinQuantity: decimal.NewFromInt(10), Cost: decimal.RequireFromString("1.50"),
			Supplier: strPtr("Wholesale Foods Inc."), LastRestocked: now},
		{Name: "Tomatoes", Category: "Produce", Quantity: decimal.NewFromInt(8), Unit: "kg",
			MinQuantity: decimal.NewFromInt(10), Cost: decimal.RequireFromString("2.99"),
			Supplier: strPtr("Local Farms Co."), LastRestocked: now},
		{Name: "Mozzarella Cheese", Category: "Dairy", Quantity: decimal.NewFromInt(15), Unit: "kg",
			MinQuantity: decimal.NewFromInt(5), Cost: decimal.RequireFromString("8.50"),
			Supplier: strPtr("Dairy Distributors"), LastRestocked: now},
		{Name: "Olive Oil", Category: "Oils", Quantity: decimal.NewFromInt(12), Unit: "liters",
			MinQuantity: decimal.NewFromInt(5), Cost: decimal.RequireFromString("12.99"),
			Supplier: strPtr("Mediterranean Imports"), LastRestocked: now},
	}
	tables := []models.Table{
		{Name: "Table 1", Capacity: 4, Status: models.TableAvailable},
		{Name: "Table 2", Capacity: 2, Status: models.TableAvailable},
		{Name: "Table 3", Capacity: 6, Status: models.TableAvailable},
		{Name: "Table 4", Capacity: 8, Status: models.TableAvailable},
	}
	customers := []models.Customer{
		{Name: "John Doe", Email: strPtr("john.doe@example.com"), Phone: strPtr("(555) 123-4567"),
			Address: strPtr("123 Main St, Anytown, USA"), LoyaltyPoints: 150, JoinDate: now,
			Notes: strPtr("Regular customer, prefers window seating")},
		{Name: "Jane Smith", Email: strPtr("jane.smith@example.com"), Phone: strPtr("(555) 987-6543"),
			Address: strPtr("456 Oak Ave, Somewhere, USA"), LoyaltyPoints: 75, JoinDate: now,
			Notes: strPtr("Allergic to nuts")},
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.MenuItem{}).Count(&count).Error; err != nil {
			return fmt.Errorf("count menu items: %w", err)
		}
		if count > 0 {
			return utils.Conflict("database already contains data")
		}

		settings := models.DefaultSettings()
		if err := upsertSettings(tx, &settings); err != nil {
			return err
		}
		for _, batch := range []interface{}{&menu, &inventory, &tables, &customers} {
			if err := tx.Create(batch).Error; err != nil {
				return fmt.Errorf("seed: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &SeedResult{
		MenuItems:      len(menu),
		InventoryItems: len(inventory),
		Tables:         len(tables),
		Customers:      len(customers),
	}
	utils.InfoLogger.WithField("result", result).Info("database seeded")
	return result, nil
}

type MigrateMenuItemRef struct {
	ID    string  `json:"id"`
	Price float64 `json:"price"`
}

type MigrateOrderLine struct {
	MenuItemID string              `json:"menuItemId"`
	MenuItem   *MigrateMenuItemRef `json:"menuItem"`
	Quantity   int                 `json:"quantity" validate:"min=1"`
	Price      *float64            `json:"price"`
}

type MigrateOrder struct {
	ID            string             `json:"id" validate:"required"`
	Total         float64            `json:"total"`
	Status        string             `json:"status" validate:"omitempty,oneof=pending completed cancelled"`
	PaymentMethod *string            `json:"paymentMethod"`
	Tip           float64            `json:"tip" validate:"gte=0"`
	CustomerID    *string            `json:"customerId"`
	TableID       *string            `json:"tableId"`
	CreatedAt     *time.Time         `json:"createdAt"`
	Items         []MigrateOrderLine `json:"items" validate:"dive"`
}

// MigrateInput is the export format of older installs: every collection
// keyed by its original id.
type MigrateInput struct {
	MenuItems          []models.MenuItem          `json:"menuItems"`
	Customers          []models.Customer          `json:"customers"`
	Tables             []models.Table             `json:"tables"`
	InventoryItems     []models.InventoryItem     `json:"inventoryItems"`
	Orders             []MigrateOrder             `json:"orders" validate:"dive"`
	Invoices           []models.Invoice           `json:"invoices"`
	RestaurantSettings *models.RestaurantSettings `json:"restaurantSettings"`
	AppSettings        *models.AppSettings        `json:"appSettings"`
}

// MigrateResult counts the rows actually inserted; duplicates are skipped.
type MigrateResult struct {
	MenuItems      int64 `json:"menuItems"`
	Customers      int64 `json:"customers"`
	Tables         int64 `json:"tables"`
	InventoryItems int64 `json:"inventoryItems"`
	Orders         int64 `json:"orders"`
	Invoices       int64 `json:"invoices"`
	Settings       bool  `json:"settings"`
}

// insertMissing creates the rows whose primary key is not taken yet.
func insertMissing(tx *gorm.DB, rows interface{}) (int64, error) {
	res := tx.Omit(clause.Associations).Clauses(clause.OnConflict{DoNothing: true}).Create(rows)
	return res.RowsAffected, res.Error
}

// Migrate imports everything in one transaction, skipping records whose id
// already exists.
func (s *DataService) Migrate(ctx context.Context, in MigrateInput) (*MigrateResult, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	now := s.now()
	s.normalise(&in, now)

	result := &MigrateResult{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if len(in.MenuItems) > 0 {
			if result.MenuItems, err = insertMissing(tx, &in.MenuItems); err != nil {
				return fmt.Errorf("migrate menu items: %w", err)
			}
		}
		if len(in.Customers) > 0 {
			if result.Customers, err = insertMissing(tx, &in.Customers); err != nil {
				return fmt.Errorf("migrate customers: %w", err)
			}
		}
		if len(in.Tables) > 0 {
			if result.Tables, err = insertMissing(tx, &in.Tables); err != nil {
				return fmt.Errorf("migrate tables: %w", err)
			}
		}
		if len(in.InventoryItems) > 0 {
			if result.InventoryItems, err = insertMissing(tx, &in.InventoryItems); err != nil {
				return fmt.Errorf("migrate inventory: %w", err)
			}
		}

		// Order satu per satu: baris item hanya dibuat untuk order yang baru
		for _, o := range in.Orders {
			created, err := migrateOrder(tx, o, now)
			if err != nil {
				return err
			}
			if created {
				result.Orders++
			}
		}

		if len(in.Invoices) > 0 {
			if result.Invoices, err = insertMissing(tx, &in.Invoices); err != nil {
				return fmt.Errorf("migrate invoices: %w", err)
			}
		}

		if in.RestaurantSettings != nil || in.AppSettings != nil {
			settings := models.DefaultSettings()
			if err := tx.Where("id = ?", models.SettingsKey).Limit(1).Find(&settings).Error; err != nil {
				return fmt.Errorf("load settings: %w", err)
			}
			if in.RestaurantSettings != nil {
				settings.RestaurantSettings = *in.RestaurantSettings
			}
			if in.AppSettings != nil {
				settings.AppSettings = *in.AppSettings
			}
			if err := upsertSettings(tx, &settings); err != nil {
				return err
			}
			result.Settings = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.WithField("result", result).Info("data migrated")
	return result, nil
}

// normalise fills the defaults older exports leave out.
func (s *DataService) normalise(in *MigrateInput, now time.Time) {
	for i := range in.Customers {
		c := &in.Customers[i]
		if c.JoinDate.IsZero() {
			c.JoinDate = now
		}
		c.Orders = nil
	}
	for i := range in.Tables {
		t := &in.Tables[i]
		if !models.ValidTableStatus(t.Status) {
			t.Status = models.TableAvailable
		}
		t.AssignedServer = nil
	}
	for i := range in.InventoryItems {
		if in.InventoryItems[i].LastRestocked.IsZero() {
			in.InventoryItems[i].LastRestocked = now
		}
	}
	for i := range in.Invoices {
		inv := &in.Invoices[i]
		inv.OrderID = optionalRef(inv.OrderID)
		inv.CustomerID = optionalRef(inv.CustomerID, models.GuestCustomer)
		if !models.ValidInvoiceStatus(inv.Status) {
			inv.Status = models.InvoiceDraft
		}
		if inv.IssueDate.IsZero() {
			inv.IssueDate = now
		}
		if inv.DueDate.IsZero() {
			inv.DueDate = inv.IssueDate.Add(defaultPaymentTerm)
		}
		inv.Order, inv.Customer = nil, nil
	}
	if r := in.RestaurantSettings; r != nil {
		if r.TaxRate <= 0 {
			r.TaxRate = models.DefaultTaxRate
		}
		if r.DefaultTipPercentages == nil {
			r.DefaultTipPercentages = []float64{15, 18, 20}
		}
	}
}

func migrateOrder(tx *gorm.DB, in MigrateOrder, now time.Time) (bool, error) {
	var count int64
	if err := tx.Model(&models.Order{}).Where("id = ?", in.ID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check order %s: %w", in.ID, err)
	}
	if count > 0 {
		return false, nil
	}

	order := models.Order{
		Base:          models.Base{ID: in.ID, CreatedAt: now},
		Status:        in.Status,
		Total:         decimal.NewFromFloat(in.Total),
		PaymentMethod: optionalRef(in.PaymentMethod),
		Tip:           decimal.NewFromFloat(in.Tip),
		CustomerID:    optionalRef(in.CustomerID, models.GuestCustomer),
		TableID:       optionalRef(in.TableID, "takeout"),
	}
	if order.Status == "" {
		order.Status = models.OrderPending
	}
	if in.CreatedAt != nil {
		order.CreatedAt = *in.CreatedAt
	}
	for i, line := range in.Items {
		menuItemID := line.MenuItemID
		price := decimal.Zero
		if line.MenuItem != nil {
			if menuItemID == "" {
				menuItemID = line.MenuItem.ID
			}
			price = decimal.NewFromFloat(line.MenuItem.Price)
		}
		if line.Price != nil {
			price = decimal.NewFromFloat(*line.Price)
		}
		if menuItemID == "" {
			return false, utils.Invalid("order %s items[%d]: menu item is required", in.ID, i)
		}
		order.Items = append(order.Items, models.OrderLine{
			MenuItemID: menuItemID,
			Quantity:   line.Quantity,
			Price:      price,
		})
	}

	if err := tx.Create(&order).Error; err != nil {
		return false, fmt.Errorf("migrate order %s: %w", in.ID, err)
	}
	return true, nil
}
