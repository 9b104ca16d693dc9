package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-pos/kds"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
)

func TestInvoiceLookup_ByInvoiceOrOrderID(t *testing.T) {
	f := newOrderFixture(t)
	order := f.place(t, ptr(f.table.ID))
	_, err := f.svc.UpdateOrder(context.Background(), order.ID, UpdateOrderInput{Status: ptr(models.OrderCompleted)})
	require.NoError(t, err)

	invoices := NewInvoiceService(f.db, staticTax(8.5), nil)

	byOrder, err := invoices.Get(context.Background(), order.ID)
	require.NoError(t, err)
	byID, err := invoices.Get(context.Background(), byOrder.ID)
	require.NoError(t, err)
	secondary, err := invoices.GetByOrder(context.Background(), order.ID)
	require.NoError(t, err)

	assert.Equal(t, byID.ID, byOrder.ID)
	assert.Equal(t, byID.ID, secondary.ID)
	require.NotNil(t, byID.Order)
	require.Len(t, byID.Order.Items, 1)
	require.NotNil(t, byID.Order.Items[0].MenuItem)
	assert.Equal(t, "Margherita Pizza", byID.Order.Items[0].MenuItem.Name)
	require.NotNil(t, byID.Customer)
	assert.Equal(t, "John Doe", byID.Customer.Name)

	_, err = invoices.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, utils.ErrNotFound)

	pending := f.place(t, nil)
	_, err = invoices.GetByOrder(context.Background(), pending.ID)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestInvoiceCreate_Manual(t *testing.T) {
	db := newTestDB(t)
	events := &recordingNotifier{}
	svc := NewInvoiceService(db, staticTax(8.5), events)
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	invoice, err := svc.Create(context.Background(), CreateInvoiceInput{
		CustomerID: ptr("guest"),
		Subtotal:   ptr(100.0),
		Notes:      ptr("catering"),
	})
	require.NoError(t, err)

	assert.Nil(t, invoice.OrderID)
	assert.Nil(t, invoice.CustomerID)
	assert.Equal(t, models.InvoiceDraft, invoice.Status)
	assertMoney(t, "100.00", invoice.Subtotal)
	assertMoney(t, "8.50", invoice.TaxAmount)
	assertMoney(t, "108.50", invoice.Total)
	assert.True(t, invoice.IssueDate.Equal(issued))
	assert.True(t, invoice.DueDate.Equal(issued.AddDate(0, 0, 30)))
	assert.Equal(t, []string{kds.EventInvoiceCreated}, events.Events())

	text, _, err := svc.Placeholder(context.Background(), invoice.ID)
	require.NoError(t, err)
	assert.Contains(t, text, "Invoice #"+invoice.ID)
	assert.Contains(t, text, "Customer: N/A")
	assert.Contains(t, text, "Total: $108.50")
}

func TestInvoiceCreate_FromOrder(t *testing.T) {
	f := newOrderFixture(t)
	order := f.place(t, nil)
	svc := NewInvoiceService(f.db, staticTax(8.5), nil)

	invoice, err := svc.Create(context.Background(), CreateInvoiceInput{
		OrderID:  ptr(order.ID),
		Subtotal: ptr(1.0), // diabaikan, subtotal diambil dari order
		Status:   models.InvoiceSent,
	})
	require.NoError(t, err)
	assertMoney(t, "25.98", invoice.Subtotal)
	assertMoney(t, "31.19", invoice.Total)
	require.NotNil(t, invoice.CustomerID)
	assert.Equal(t, f.customer.ID, *invoice.CustomerID)

	_, err = svc.Create(context.Background(), CreateInvoiceInput{OrderID: ptr(order.ID)})
	assert.ErrorIs(t, err, utils.ErrConflict)
}

func TestInvoiceCreate_Invalid(t *testing.T) {
	db := newTestDB(t)
	svc := NewInvoiceService(db, staticTax(8.5), nil)

	tests := []struct {
		name  string
		input CreateInvoiceInput
	}{
		{"missing subtotal", CreateInvoiceInput{}},
		{"negative subtotal", CreateInvoiceInput{Subtotal: ptr(-5.0)}},
		{"unknown status", CreateInvoiceInput{Subtotal: ptr(5.0), Status: "void"}},
		{"unknown order", CreateInvoiceInput{OrderID: ptr("missing")}},
		{"unknown customer", CreateInvoiceInput{Subtotal: ptr(5.0), CustomerID: ptr("missing")}},
		{"due before issue", CreateInvoiceInput{
			Subtotal:  ptr(5.0),
			IssueDate: ptr(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)),
			DueDate:   ptr(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.input)
			assert.ErrorIs(t, err, utils.ErrValidation)
		})
	}
	assert.Zero(t, countRows(t, db, &models.Invoice{}, ""))
}

func TestInvoiceUpdateAndDelete(t *testing.T) {
	db := newTestDB(t)
	svc := NewInvoiceService(db, staticTax(8.5), nil)
	invoice, err := svc.Create(context.Background(), CreateInvoiceInput{Subtotal: ptr(20.0), Status: models.InvoicePaid})
	require.NoError(t, err)

	due := invoice.IssueDate.AddDate(0, 0, 7)
	updated, err := svc.Update(context.Background(), invoice.ID, UpdateInvoiceInput{
		Status:  ptr(models.InvoiceDraft),
		Notes:   ptr("reopened"),
		DueDate: &due,
	})
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceDraft, updated.Status)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, "reopened", *updated.Notes)
	assert.True(t, updated.DueDate.Equal(due))
	assertMoney(t, "21.70", updated.Total)

	_, err = svc.Update(context.Background(), invoice.ID, UpdateInvoiceInput{Status: ptr("void")})
	assert.ErrorIs(t, err, utils.ErrValidation)
	_, err = svc.Update(context.Background(), "missing", UpdateInvoiceInput{Status: ptr(models.InvoiceSent)})
	assert.ErrorIs(t, err, utils.ErrNotFound)

	require.NoError(t, svc.Send(context.Background(), invoice.ID, "a@example.com"))
	assert.ErrorIs(t, svc.Send(context.Background(), "missing", "a@example.com"), utils.ErrNotFound)

	require.NoError(t, svc.Delete(context.Background(), invoice.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), invoice.ID), utils.ErrNotFound)
}
