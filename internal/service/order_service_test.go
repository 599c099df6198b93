package service

import (
	"context"
	"testing"

	"oilbooking/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderSumsPriceTimesQuantity(t *testing.T) {
	f := setupFixtures(t)
	svc := f.orderService()

	user := f.seedUser(t, "Alice", "alice@example.com")
	crude := f.seedProduct(t, "Brent Crude", "Barrel")
	gas := f.seedProduct(t, "Natural Gas", "MMBtu")
	cp := f.seedCounterParty(t, "shell")

	r1 := f.seedRequest(t, user, crude, "100", "75.50", model.RequestStatusApproved)
	r2 := f.seedRequest(t, user, gas, "500", "3.25", model.RequestStatusApproved)

	resp, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		CounterPartyID:  cp.ID.String(),
		DeliveryAddress: "Rotterdam terminal 4",
		RequestIDs:      []string{r1.ID.String(), r2.ID.String()},
	})
	require.NoError(t, err)

	// 75.50*100 + 3.25*500
	require.Equal(t, "9175.00", resp.TotalAmount)
	require.Equal(t, model.OrderStatusPlaced, resp.Status)
	require.Len(t, resp.Requests, 2)

	// Both requests flip to Ordered in the same transaction
	for _, id := range []uuid.UUID{r1.ID, r2.ID} {
		var stored model.Request
		require.NoError(t, f.db.First(&stored, "id = ?", id).Error)
		require.Equal(t, model.RequestStatusOrdered, stored.Status)
	}
}

func TestCreateOrderRejectsAlreadyOrderedRequests(t *testing.T) {
	f := setupFixtures(t)
	svc := f.orderService()

	user := f.seedUser(t, "Alice", "alice@example.com")
	crude := f.seedProduct(t, "Brent Crude", "Barrel")
	cp := f.seedCounterParty(t, "shell")

	fresh := f.seedRequest(t, user, crude, "100", "75.50", model.RequestStatusApproved)
	consumed := f.seedRequest(t, user, crude, "50", "75.50", model.RequestStatusOrdered)

	_, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		CounterPartyID:  cp.ID.String(),
		DeliveryAddress: "Rotterdam terminal 4",
		RequestIDs:      []string{fresh.ID.String(), consumed.ID.String()},
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), consumed.ID.String())

	// The rejection rolls everything back: no order, no links, fresh request untouched
	var orders, links int64
	require.NoError(t, f.db.Model(&model.Order{}).Count(&orders).Error)
	require.NoError(t, f.db.Model(&model.OrderRequest{}).Count(&links).Error)
	require.Zero(t, orders)
	require.Zero(t, links)

	var stored model.Request
	require.NoError(t, f.db.First(&stored, "id = ?", fresh.ID).Error)
	require.Equal(t, model.RequestStatusApproved, stored.Status)
}

func TestCreateOrderMissingRequestReturnsNotFound(t *testing.T) {
	f := setupFixtures(t)
	svc := f.orderService()

	user := f.seedUser(t, "Alice", "alice@example.com")
	crude := f.seedProduct(t, "Brent Crude", "Barrel")
	cp := f.seedCounterParty(t, "shell")
	request := f.seedRequest(t, user, crude, "100", "75.50", model.RequestStatusApproved)

	_, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		CounterPartyID:  cp.ID.String(),
		DeliveryAddress: "Rotterdam terminal 4",
		RequestIDs:      []string{request.ID.String(), uuid.NewString()},
	})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCreateOrderMissingCounterPartyReturnsNotFound(t *testing.T) {
	f := setupFixtures(t)
	svc := f.orderService()

	user := f.seedUser(t, "Alice", "alice@example.com")
	crude := f.seedProduct(t, "Brent Crude", "Barrel")
	request := f.seedRequest(t, user, crude, "100", "75.50", model.RequestStatusApproved)

	_, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		CounterPartyID:  uuid.NewString(),
		DeliveryAddress: "Rotterdam terminal 4",
		RequestIDs:      []string{request.ID.String()},
	})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateOrderStatusOverwritesAnyString(t *testing.T) {
	f := setupFixtures(t)
	svc := f.orderService()

	user := f.seedUser(t, "Alice", "alice@example.com")
	crude := f.seedProduct(t, "Brent Crude", "Barrel")
	cp := f.seedCounterParty(t, "shell")
	request := f.seedRequest(t, user, crude, "100", "75.50", model.RequestStatusApproved)

	created, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		CounterPartyID:  cp.ID.String(),
		DeliveryAddress: "Rotterdam terminal 4",
		RequestIDs:      []string{request.ID.String()},
	})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateOrderStatus(context.Background(), created.ID, "InTransit"))

	var stored model.Order
	require.NoError(t, f.db.First(&stored, "id = ?", created.ID).Error)
	require.Equal(t, "InTransit", stored.Status)

	// Re-applying the same status is accepted
	require.NoError(t, svc.UpdateOrderStatus(context.Background(), created.ID, "InTransit"))
}

func TestUpdateOrderStatusMissingReturnsNotFound(t *testing.T) {
	f := setupFixtures(t)
	svc := f.orderService()

	err := svc.UpdateOrderStatus(context.Background(), uuid.NewString(), model.OrderStatusDelivered)
	require.ErrorIs(t, err, ErrNotFound)
}
