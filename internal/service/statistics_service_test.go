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

func (f *fixtures) seedInvoice(t *testing.T, total, status string) *model.Invoice {
	t.Helper()
	invoice := &model.Invoice{
		ID:          uuid.New(),
		InvoiceDate: time.Now(),
		TotalAmount: decimal.RequireFromString(total),
		Status:      status,
	}
	require.NoError(t, f.db.Create(invoice).Error)
	return invoice
}

func TestSummaryCountsAndTotals(t *testing.T) {
	f := setupFixtures(t)
	svc := NewStatisticsService(f.db)

	user := f.seedUser(t, "Alice", "alice@example.com")
	product := f.seedProduct(t, "Brent Crude", "Barrel")
	cp := f.seedCounterParty(t, "shell")

	f.seedRequest(t, user, product, "100", "75.50", model.RequestStatusPending)
	f.seedRequest(t, user, product, "50", "75.50", model.RequestStatusPending)
	f.seedRequest(t, user, product, "10", "75.50", model.RequestStatusOrdered)
	f.seedOrder(t, cp, "9175.00")
	f.seedInvoice(t, "9175.00", model.InvoiceStatusDraft)
	f.seedInvoice(t, "825.00", model.InvoiceStatusIssued)
	// Cancelled invoices don't count toward the invoiced total
	f.seedInvoice(t, "500.00", model.InvoiceStatusCancelled)

	summary, err := svc.GetSummary(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 2, summary.PendingRequests)
	require.EqualValues(t, 1, summary.OrderedRequests)
	require.EqualValues(t, 1, summary.PlacedOrders)
	require.EqualValues(t, 1, summary.DraftInvoices)
	require.Equal(t, "10000.00", summary.TotalInvoiced)
}

func TestSummaryOnEmptyDatabase(t *testing.T) {
	f := setupFixtures(t)
	svc := NewStatisticsService(f.db)

	summary, err := svc.GetSummary(context.Background())
	require.NoError(t, err)
	require.Zero(t, summary.PendingRequests)
	require.Equal(t, "0.00", summary.TotalInvoiced)
}
