package service

import (
	"context"
	"testing"
	"time"

	"oilbooking/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func (f *fixtures) seedOrder(t *testing.T, cp *model.CounterParty, total string) *model.Order {
	t.Helper()
	order := &model.Order{
		ID:              uuid.New(),
		CounterPartyID:  cp.ID,
		DeliveryAddress: "Rotterdam terminal 4",
		PlacedAt:        time.Now(),
		Status:          model.OrderStatusPlaced,
		TotalAmount:     decimal.RequireFromString(total),
	}
	require.NoError(t, f.db.Create(order).Error)
	return order
}

func TestCreateInvoiceSumsOrderTotals(t *testing.T) {
	f := setupFixtures(t)
	svc := f.invoiceService()

	cp := f.seedCounterParty(t, "shell")
	o1 := f.seedOrder(t, cp, "9175.00")
	o2 := f.seedOrder(t, cp, "825.00")

	resp, err := svc.CreateInvoice(context.Background(), CreateInvoiceRequest{
		OrderIDs: []string{o1.ID.String(), o2.ID.String()},
	})
	require.NoError(t, err)
	require.Equal(t, "10000.00", resp.TotalAmount)
	require.Equal(t, model.InvoiceStatusDraft, resp.Status)
	require.Len(t, resp.Orders, 2)
}

func TestCreateInvoiceHonorsManualOverride(t *testing.T) {
	f := setupFixtures(t)
	svc := f.invoiceService()

	cp := f.seedCounterParty(t, "shell")
	order := f.seedOrder(t, cp, "9175.00")

	resp, err := svc.CreateInvoice(context.Background(), CreateInvoiceRequest{
		OrderIDs:    []string{order.ID.String()},
		TotalAmount: "9000.00",
	})
	require.NoError(t, err)
	require.Equal(t, "9000.00", resp.TotalAmount)
}

func TestCreateInvoiceRejectsAlreadyInvoicedOrders(t *testing.T) {
	f := setupFixtures(t)
	svc := f.invoiceService()

	cp := f.seedCounterParty(t, "shell")
	invoiced := f.seedOrder(t, cp, "9175.00")
	fresh := f.seedOrder(t, cp, "825.00")

	_, err := svc.CreateInvoice(context.Background(), CreateInvoiceRequest{
		OrderIDs: []string{invoiced.ID.String()},
	})
	require.NoError(t, err)

	_, err = svc.CreateInvoice(context.Background(), CreateInvoiceRequest{
		OrderIDs: []string{fresh.ID.String(), invoiced.ID.String()},
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), invoiced.ID.String())

	// Rollback: only the first invoice and its single link exist
	var invoices, links int64
	require.NoError(t, f.db.Model(&model.Invoice{}).Count(&invoices).Error)
	require.NoError(t, f.db.Model(&model.InvoiceOrder{}).Count(&links).Error)
	require.EqualValues(t, 1, invoices)
	require.EqualValues(t, 1, links)
}

func TestCreateInvoiceMissingOrderReturnsNotFound(t *testing.T) {
	f := setupFixtures(t)
	svc := f.invoiceService()

	cp := f.seedCounterParty(t, "shell")
	order := f.seedOrder(t, cp, "9175.00")

	_, err := svc.CreateInvoice(context.Background(), CreateInvoiceRequest{
		OrderIDs: []string{order.ID.String(), uuid.NewString()},
	})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateInvoiceAmountOverwritesDerivedTotal(t *testing.T) {
	f := setupFixtures(t)
	svc := f.invoiceService()

	cp := f.seedCounterParty(t, "shell")
	order := f.seedOrder(t, cp, "9175.00")

	created, err := svc.CreateInvoice(context.Background(), CreateInvoiceRequest{
		OrderIDs: []string{order.ID.String()},
	})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateInvoiceAmount(context.Background(), created.ID, "8500.00"))

	var stored model.Invoice
	require.NoError(t, f.db.First(&stored, "id = ?", created.ID).Error)
	require.True(t, stored.TotalAmount.Equal(decimal.RequireFromString("8500.00")))
}

func TestUpdateInvoiceAmountMissingReturnsNotFound(t *testing.T) {
	f := setupFixtures(t)
	svc := f.invoiceService()

	err := svc.UpdateInvoiceAmount(context.Background(), uuid.NewString(), "100.00")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateInvoiceStatusOverwritesAnyString(t *testing.T) {
	f := setupFixtures(t)
	svc := f.invoiceService()

	cp := f.seedCounterParty(t, "shell")
	order := f.seedOrder(t, cp, "9175.00")

	created, err := svc.CreateInvoice(context.Background(), CreateInvoiceRequest{
		OrderIDs: []string{order.ID.String()},
	})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateInvoiceStatus(context.Background(), created.ID, "Disputed"))

	var stored model.Invoice
	require.NoError(t, f.db.First(&stored, "id = ?", created.ID).Error)
	require.Equal(t, "Disputed", stored.Status)
}
