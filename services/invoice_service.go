package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/restaurant-pos/kds"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
	"gorm.io/gorm"
)

// defaultPaymentTerm is how long a manual invoice stays open when no due date is given.
const defaultPaymentTerm = 30 * 24 * time.Hour

type InvoiceService struct {
	db       *gorm.DB
	settings SettingsProvider
	notifier Notifier
	now      func() time.Time
}

func NewInvoiceService(db *gorm.DB, settings SettingsProvider, notifier Notifier) *InvoiceService {
	return &InvoiceService{
		db:       db,
		settings: settings,
		notifier: notifierOrNoop(notifier),
		now:      time.Now,
	}
}

type CreateInvoiceInput struct {
	OrderID    *string `json:"orderId"`
	CustomerID *string `json:"customerId"`
	// Subtotal is required for invoices without an order; with an order it
	// is taken from the order lines.
	Subtotal  *float64   `json:"subtotal" validate:"omitempty,gte=0"`
	Tip       float64    `json:"tip" validate:"gte=0"`
	Status    string     `json:"status" validate:"omitempty,oneof=draft sent paid overdue"`
	IssueDate *time.Time `json:"issueDate"`
	DueDate   *time.Time `json:"dueDate"`
	Notes     *string    `json:"notes"`
}

type UpdateInvoiceInput struct {
	Status  *string    `json:"status" validate:"omitempty,oneof=draft sent paid overdue"`
	Notes   *string    `json:"notes"`
	DueDate *time.Time `json:"dueDate"`
}

func hydrateInvoice(db *gorm.DB) *gorm.DB {
	return db.Preload("Order.Items.MenuItem").Preload("Customer")
}

// Get resolves an invoice by its own id first and then by the id of the
// order it belongs to.
func (s *InvoiceService) Get(ctx context.Context, id string) (*models.Invoice, error) {
	var invoice models.Invoice
	err := hydrateInvoice(s.db.WithContext(ctx)).First(&invoice, "id = ?", id).Error
	if err == nil {
		return &invoice, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find invoice: %w", err)
	}
	return s.GetByOrder(ctx, id)
}

func (s *InvoiceService) GetByOrder(ctx context.Context, orderID string) (*models.Invoice, error) {
	var invoice models.Invoice
	err := hydrateInvoice(s.db.WithContext(ctx)).First(&invoice, "order_id = ?", orderID).Error
	if err != nil {
		return nil, lookupErr(err, utils.NotFound("Invoice not found"))
	}
	return &invoice, nil
}

func (s *InvoiceService) List(ctx context.Context) ([]models.Invoice, error) {
	var invoices []models.Invoice
	if err := hydrateInvoice(s.db.WithContext(ctx)).Order("created_at desc").Find(&invoices).Error; err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return invoices, nil
}

// Create records a manual invoice. Tax is always computed from the current
// settings, never taken from the caller.
func (s *InvoiceService) Create(ctx context.Context, in CreateInvoiceInput) (*models.Invoice, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	orderID := optionalRef(in.OrderID)
	customerID := optionalRef(in.CustomerID, models.GuestCustomer)
	if orderID == nil && in.Subtotal == nil {
		return nil, utils.Invalid("invalid input: subtotal is required when orderId is absent")
	}

	taxRate := s.settings.TaxRate(ctx)
	issue := s.now()
	if in.IssueDate != nil {
		issue = *in.IssueDate
	}
	due := issue.Add(defaultPaymentTerm)
	if in.DueDate != nil {
		due = *in.DueDate
	}
	if due.Before(issue) {
		return nil, utils.Invalid("invalid input: dueDate is before issueDate")
	}
	status := in.Status
	if status == "" {
		status = models.InvoiceDraft
	}

	invoice := models.Invoice{
		OrderID:    orderID,
		CustomerID: customerID,
		Status:     status,
		IssueDate:  issue,
		DueDate:    due,
		Notes:      optionalRef(in.Notes),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		subtotal := decimal.Zero
		tip := decimal.NewFromFloat(in.Tip)
		if in.Subtotal != nil {
			subtotal = decimal.NewFromFloat(*in.Subtotal)
		}

		if orderID != nil {
			var order models.Order
			if err := tx.Preload("Items").First(&order, "id = ?", *orderID).Error; err != nil {
				return lookupErr(err, utils.Invalid("order %s does not exist", *orderID))
			}
			var count int64
			if err := tx.Model(&models.Invoice{}).Where("order_id = ?", order.ID).Count(&count).Error; err != nil {
				return fmt.Errorf("count invoices: %w", err)
			}
			if count > 0 {
				return utils.Conflict(fmt.Sprintf("order %s already has an invoice", order.ID))
			}
			subtotal = order.Subtotal()
			tip = order.Tip
			if invoice.CustomerID == nil {
				invoice.CustomerID = order.CustomerID
			}
		}

		if invoice.CustomerID != nil {
			var customer models.Customer
			if err := tx.Select("id").First(&customer, "id = ?", *invoice.CustomerID).Error; err != nil {
				return lookupErr(err, utils.Invalid("customer %s does not exist", *invoice.CustomerID))
			}
		}

		totals := ComputeTotals(subtotal, taxRate, tip)
		invoice.Subtotal = totals.Subtotal
		invoice.TaxRate = totals.TaxRate
		invoice.TaxAmount = totals.TaxAmount
		invoice.Total = totals.Total
		if err := tx.Create(&invoice).Error; err != nil {
			return fmt.Errorf("create invoice: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	created, err := s.Get(ctx, invoice.ID)
	if err != nil {
		return nil, err
	}
	s.notifier.Broadcast(kds.EventInvoiceCreated, created)
	return created, nil
}

// Update edits status, notes and due date. Invoice statuses move freely.
func (s *InvoiceService) Update(ctx context.Context, id string, in UpdateInvoiceInput) (*models.Invoice, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	var invoice models.Invoice
	if err := s.db.WithContext(ctx).First(&invoice, "id = ?", id).Error; err != nil {
		return nil, lookupErr(err, utils.NotFound("Invoice not found"))
	}

	updates := map[string]interface{}{}
	if in.Status != nil {
		updates["status"] = *in.Status
	}
	if in.Notes != nil {
		updates["notes"] = optionalRef(in.Notes)
	}
	if in.DueDate != nil {
		if in.DueDate.Before(invoice.IssueDate) {
			return nil, utils.Invalid("invalid input: dueDate is before issueDate")
		}
		updates["due_date"] = *in.DueDate
	}
	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&invoice).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("update invoice: %w", err)
		}
	}
	return s.Get(ctx, id)
}

func (s *InvoiceService) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.Invoice{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete invoice: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.NotFound("Invoice not found")
	}
	return nil
}

// Send only logs the request; mail delivery is not wired up.
func (s *InvoiceService) Send(ctx context.Context, id, email string) error {
	invoice, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	utils.InfoLogger.WithField("invoice_id", invoice.ID).
		WithField("email", email).
		Info("invoice email requested, delivery not configured")
	return nil
}

// Placeholder renders the plain-text stand-in served instead of an invoice PDF.
func (s *InvoiceService) Placeholder(ctx context.Context, id string) (string, *models.Invoice, error) {
	invoice, err := s.Get(ctx, id)
	if err != nil {
		return "", nil, err
	}
	customer := "N/A"
	if invoice.Customer != nil {
		customer = invoice.Customer.Name
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Invoice #%s\n", invoice.ID)
	fmt.Fprintf(&b, "Date: %s\n", invoice.IssueDate.Format(time.RFC3339))
	fmt.Fprintf(&b, "Customer: %s\n", customer)
	fmt.Fprintf(&b, "Total: %s", utils.FormatCurrency(invoice.Total))
	return b.String(), invoice, nil
}
