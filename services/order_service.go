package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/restaurant-pos/kds"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
	"gorm.io/gorm"
)

// OrderService owns the order lifecycle: placement, status transitions and
// deletion, together with their table, loyalty and invoice cascades. Every
// cascade runs in one transaction.
type OrderService struct {
	db       *gorm.DB
	settings SettingsProvider
	notifier Notifier
	now      func() time.Time

	// StrictTableClaim rejects a placement whose table is not free. When false
	// the last placement wins and silently takes the table over.
	StrictTableClaim bool
}

func NewOrderService(db *gorm.DB, settings SettingsProvider, notifier Notifier) *OrderService {
	return &OrderService{
		db:               db,
		settings:         settings,
		notifier:         notifierOrNoop(notifier),
		now:              time.Now,
		StrictTableClaim: true,
	}
}

type MenuItemRef struct {
	ID string `json:"id"`
}

type OrderLineInput struct {
	MenuItemID string `json:"menuItemId"`
	// MenuItem is the shape older clients send ({"menuItem": {"id": ...}}).
	MenuItem *MenuItemRef `json:"menuItem,omitempty"`
	Quantity int          `json:"quantity" validate:"min=1"`
}

func (in OrderLineInput) ref() string {
	if in.MenuItemID != "" {
		return in.MenuItemID
	}
	if in.MenuItem != nil {
		return in.MenuItem.ID
	}
	return ""
}

type PlaceOrderInput struct {
	CustomerID    *string          `json:"customerId"`
	TableID       *string          `json:"tableId"`
	Items         []OrderLineInput `json:"items" validate:"required,min=1,dive"`
	PaymentMethod *string          `json:"paymentMethod"`
	Tip           float64          `json:"tip" validate:"gte=0"`
	CreateInvoice bool             `json:"createInvoice"`
}

type UpdateOrderInput struct {
	Status        *string  `json:"status" validate:"omitempty,oneof=pending completed cancelled"`
	PaymentMethod *string  `json:"paymentMethod"`
	Tip           *float64 `json:"tip" validate:"omitempty,gte=0"`
}

type lineRequest struct {
	menuItemID string
	quantity   int
}

// mergeLines collapses repeated menu items into one line, keeping first-seen order.
func mergeLines(items []OrderLineInput) ([]lineRequest, error) {
	var lines []lineRequest
	index := make(map[string]int)
	for i, item := range items {
		ref := item.ref()
		if ref == "" {
			return nil, utils.Invalid("items[%d]: menuItemId is required", i)
		}
		if pos, ok := index[ref]; ok {
			lines[pos].quantity += item.Quantity
			continue
		}
		index[ref] = len(lines)
		lines = append(lines, lineRequest{menuItemID: ref, quantity: item.Quantity})
	}
	return lines, nil
}

// PlaceOrder creates the order and its lines, credits loyalty points, claims
// the table and, if asked, records a paid invoice. Nothing is written unless
// every step succeeds.
func (s *OrderService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*models.Order, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	lines, err := mergeLines(in.Items)
	if err != nil {
		return nil, err
	}
	customerID := optionalRef(in.CustomerID, models.GuestCustomer)
	tableID := optionalRef(in.TableID, "takeout")
	paymentMethod := optionalRef(in.PaymentMethod)
	tip := decimal.NewFromFloat(in.Tip)

	// Read settings before the transaction; SQLite runs on a single connection.
	taxRate := s.settings.TaxRate(ctx)
	now := s.now()

	var orderID string
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if customerID != nil {
			var customer models.Customer
			if err := tx.Select("id").First(&customer, "id = ?", *customerID).Error; err != nil {
				return lookupErr(err, utils.Invalid("customer %s does not exist", *customerID))
			}
		}

		order := models.Order{
			Status:        models.OrderPending,
			PaymentMethod: paymentMethod,
			CustomerID:    customerID,
			TableID:       tableID,
		}
		// Harga di-snapshot dari menu saat order dibuat
		for _, line := range lines {
			var item models.MenuItem
			if err := tx.First(&item, "id = ?", line.menuItemID).Error; err != nil {
				return lookupErr(err, utils.Invalid("menu item %s does not exist", line.menuItemID))
			}
			order.Items = append(order.Items, models.OrderLine{
				MenuItemID: item.ID,
				Quantity:   line.quantity,
				Price:      item.Price,
			})
		}

		totals := ComputeTotals(order.Subtotal(), taxRate, tip)
		order.Tip = totals.Tip
		order.Total = totals.Total
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		if customerID != nil {
			if points := LoyaltyPoints(order.Total); points > 0 {
				if err := tx.Model(&models.Customer{}).
					Where("id = ?", *customerID).
					UpdateColumn("loyalty_points", gorm.Expr("loyalty_points + ?", points)).Error; err != nil {
					return fmt.Errorf("credit loyalty points: %w", err)
				}
			}
		}

		if tableID != nil {
			if err := s.claimTable(tx, *tableID, order.ID); err != nil {
				return err
			}
		}

		if in.CreateInvoice {
			invoice := newOrderInvoice(&order, totals, now)
			if err := tx.Create(&invoice).Error; err != nil {
				return fmt.Errorf("create invoice: %w", err)
			}
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	utils.InfoLogger.WithField("order_id", order.ID).
		WithField("total", order.Total.StringFixed(2)).
		Info("order placed")
	s.notifier.Broadcast(kds.EventOrderCreated, order)
	if order.TableID != nil {
		s.notifier.Broadcast(kds.EventTableUpdate, order.Table)
	}
	return order, nil
}

// claimTable marks the table occupied by orderID. In strict mode only an
// available or reserved table without a live order can be claimed; the check
// and the write are one conditional UPDATE so two placements cannot both win.
func (s *OrderService) claimTable(tx *gorm.DB, tableID, orderID string) error {
	q := tx.Model(&models.Table{}).Where("id = ?", tableID)
	if s.StrictTableClaim {
		q = q.Where("status IN ? AND current_order_id IS NULL",
			[]string{models.TableAvailable, models.TableReserved})
	}
	res := q.Updates(map[string]interface{}{
		"status":           models.TableOccupied,
		"current_order_id": orderID,
	})
	if res.Error != nil {
		return fmt.Errorf("claim table: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var table models.Table
	if err := tx.Select("id", "status").First(&table, "id = ?", tableID).Error; err != nil {
		return lookupErr(err, utils.Invalid("table %s does not exist", tableID))
	}
	return utils.Conflict(fmt.Sprintf("table %s is %s", tableID, table.Status))
}

// UpdateOrder applies field edits and, when the status changes, the
// completion or cancellation cascade. Completed and cancelled orders are final.
func (s *OrderService) UpdateOrder(ctx context.Context, id string, in UpdateOrderInput) (*models.Order, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	taxRate := s.settings.TaxRate(ctx)
	now := s.now()

	var (
		target  string
		tableID *string
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
			return lookupErr(err, utils.NotFound("Order not found"))
		}

		target = order.Status
		if in.Status != nil {
			target = *in.Status
		}
		if models.IsTerminalOrderStatus(order.Status) {
			if in.Status == nil {
				return utils.OrderFinal(order.Status)
			}
			return utils.InvalidTransition(order.Status, target)
		}

		if in.PaymentMethod != nil {
			order.PaymentMethod = optionalRef(in.PaymentMethod)
		}
		if in.Tip != nil {
			order.Tip = decimal.NewFromFloat(*in.Tip)
		}
		totals := ComputeTotals(order.Subtotal(), taxRate, order.Tip)

		// Guarded on the old status so a concurrent transition cannot run twice.
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", order.ID, models.OrderPending).
			Updates(map[string]interface{}{
				"status":         target,
				"payment_method": order.PaymentMethod,
				"tip":            totals.Tip,
				"total":          totals.Total,
			})
		if res.Error != nil {
			return fmt.Errorf("update order: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return utils.InvalidTransition(order.Status, target)
		}
		order.Status = target
		order.Tip = totals.Tip
		order.Total = totals.Total

		switch target {
		case models.OrderCompleted:
			if err := settleInvoice(tx, &order, totals, now); err != nil {
				return err
			}
			tableID = order.TableID
			return releaseTable(tx, order.TableID, order.ID, models.TableCleaning)
		case models.OrderCancelled:
			if err := annotateCancelledInvoice(tx, order.ID); err != nil {
				return err
			}
			tableID = order.TableID
			return releaseTable(tx, order.TableID, order.ID, models.TableAvailable)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	utils.InfoLogger.WithField("order_id", id).WithField("status", order.Status).Info("order updated")
	s.notifier.Broadcast(kds.EventOrderUpdate, order)
	if tableID != nil {
		s.notifier.Broadcast(kds.EventTableUpdate, map[string]string{"id": *tableID})
	}
	return order, nil
}

// settleInvoice gives a completed order exactly one paid invoice, reusing the
// one created at placement if there is one.
func settleInvoice(tx *gorm.DB, order *models.Order, totals Totals, now time.Time) error {
	var existing models.Invoice
	err := tx.Where("order_id = ?", order.ID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		invoice := newOrderInvoice(order, totals, now)
		if err := tx.Create(&invoice).Error; err != nil {
			return fmt.Errorf("create invoice: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("find invoice: %w", err)
	}

	return tx.Model(&existing).Updates(map[string]interface{}{
		"subtotal":   totals.Subtotal,
		"tax_rate":   totals.TaxRate,
		"tax_amount": totals.TaxAmount,
		"total":      totals.Total,
		"status":     models.InvoicePaid,
	}).Error
}

// cancelledNote is appended to an invoice created at placement when its order
// is cancelled. The invoice keeps its amounts and status.
const cancelledNote = "Order cancelled"

func annotateCancelledInvoice(tx *gorm.DB, orderID string) error {
	var invoice models.Invoice
	err := tx.Where("order_id = ?", orderID).First(&invoice).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("find invoice: %w", err)
	}

	notes := cancelledNote
	if invoice.Notes != nil && *invoice.Notes != "" {
		notes = *invoice.Notes + "; " + cancelledNote
	}
	if err := tx.Model(&invoice).Update("notes", notes).Error; err != nil {
		return fmt.Errorf("annotate invoice: %w", err)
	}
	return nil
}

// releaseTable frees the order's table, but only while the order still holds
// it. A table that was freed by hand or claimed by a later order is left alone.
func releaseTable(tx *gorm.DB, tableID *string, orderID, status string) error {
	if tableID == nil {
		return nil
	}
	err := tx.Model(&models.Table{}).
		Where("id = ? AND current_order_id = ?", *tableID, orderID).
		Updates(map[string]interface{}{
			"status":           status,
			"current_order_id": nil,
		}).Error
	if err != nil {
		return fmt.Errorf("release table: %w", err)
	}
	return nil
}

func newOrderInvoice(order *models.Order, totals Totals, now time.Time) models.Invoice {
	method := "unspecified"
	if order.PaymentMethod != nil {
		method = *order.PaymentMethod
	}
	notes := "Payment method: " + method
	if totals.Tip.IsPositive() {
		notes += ", Tip: " + utils.FormatCurrency(totals.Tip)
	}

	orderID := order.ID
	return models.Invoice{
		OrderID:    &orderID,
		CustomerID: order.CustomerID,
		Subtotal:   totals.Subtotal,
		TaxRate:    totals.TaxRate,
		TaxAmount:  totals.TaxAmount,
		Total:      totals.Total,
		Status:     models.InvoicePaid,
		IssueDate:  now,
		DueDate:    now,
		Notes:      &notes,
	}
}

// DeleteOrder removes the order and its lines and frees its table. Invoices
// are kept but detached from the order.
func (s *OrderService) DeleteOrder(ctx context.Context, id string) error {
	var tableID *string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, "id = ?", id).Error; err != nil {
			return lookupErr(err, utils.NotFound("Order not found"))
		}
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderLine{}).Error; err != nil {
			return fmt.Errorf("delete order lines: %w", err)
		}
		if err := tx.Model(&models.Invoice{}).Where("order_id = ?", id).
			Update("order_id", nil).Error; err != nil {
			return fmt.Errorf("detach invoices: %w", err)
		}
		if err := tx.Delete(&models.Order{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("delete order: %w", err)
		}
		tableID = order.TableID
		return releaseTable(tx, order.TableID, order.ID, models.TableAvailable)
	})
	if err != nil {
		return err
	}

	s.notifier.Broadcast(kds.EventOrderDelete, map[string]string{"id": id})
	if tableID != nil {
		s.notifier.Broadcast(kds.EventTableUpdate, map[string]string{"id": *tableID})
	}
	return nil
}

func (s *OrderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := hydrateOrder(s.db.WithContext(ctx)).First(&order, "id = ?", id).Error
	if err != nil {
		return nil, lookupErr(err, utils.NotFound("Order not found"))
	}
	return &order, nil
}

// ListOrders returns orders newest first. A limit of zero means no limit.
func (s *OrderService) ListOrders(ctx context.Context, limit int) ([]models.Order, error) {
	q := hydrateOrder(s.db.WithContext(ctx)).Order("created_at desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var orders []models.Order
	if err := q.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func hydrateOrder(db *gorm.DB) *gorm.DB {
	return db.Preload("Items.MenuItem").Preload("Customer").Preload("Table")
}

// lookupErr turns a missing row into the given public error.
func lookupErr(err, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return err
}

