package model

import (
	"testing"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from string
		to   string
		want bool
	}{
		{OrderStatusPending, OrderStatusPrepared, true},
		{OrderStatusPending, OrderStatusOnTheWay, true},
		{OrderStatusPending, OrderStatusReceived, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPrepared, OrderStatusOnTheWay, true},
		{OrderStatusPrepared, OrderStatusReceived, true},
		{OrderStatusPrepared, OrderStatusCancelled, true},
		{OrderStatusOnTheWay, OrderStatusPrepared, true},
		{OrderStatusReceived, OrderStatusOnTheWay, true},
		{OrderStatusReceived, OrderStatusCancelled, true},
		{OrderStatusPrepared, OrderStatusPending, false},
		{OrderStatusReceived, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusPrepared, false},
		{OrderStatusCancelled, OrderStatusReceived, false},
		{OrderStatusReceived, OrderStatusReceived, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Fatalf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestIsFulfillmentStatus(t *testing.T) {
	for _, status := range []string{OrderStatusPrepared, OrderStatusOnTheWay, OrderStatusReceived} {
		if !IsFulfillmentStatus(status) {
			t.Fatalf("%s must be a fulfillment status", status)
		}
	}
	for _, status := range []string{OrderStatusPending, OrderStatusCancelled} {
		if IsFulfillmentStatus(status) {
			t.Fatalf("%s must not be a fulfillment status", status)
		}
	}
}

func TestTransitionOrderStatus_RejectsInvalid(t *testing.T) {
	setupTestDB(t)
	buyer := createTestUser(t, RoleMember, 0, 0)
	product := createTestProduct(t, 50, 1200, 1000, 10)
	order := placeOrder(t, buyer.Id, "", product.Id, 1)

	mustTransition(t, order.Id, OrderStatusCancelled)

	if _, err := TransitionOrderStatus(order.Id, OrderStatusPrepared); err != ErrInvalidTransition {
		t.Fatalf("expected ErrInvalidTransition out of cancelled, got %v", err)
	}
	if _, err := TransitionOrderStatus(order.Id, "shipped"); err != ErrInvalidTransition {
		t.Fatalf("expected ErrInvalidTransition for unknown status, got %v", err)
	}
}

func TestTransitionOrderStatus_DeliveredGuardOnCancel(t *testing.T) {
	setupTestDB(t)
	buyer := createTestUser(t, RoleMember, 0, 0)
	product := createTestProduct(t, 50, 1200, 1000, 10)
	order := placeOrder(t, buyer.Id, "", product.Id, 1)

	mustTransition(t, order.Id, OrderStatusReceived)

	if _, err := TransitionOrderStatus(order.Id, OrderStatusCancelled); err != ErrOrderDelivered {
		t.Fatalf("expected ErrOrderDelivered, got %v", err)
	}

	// Moving back out of received clears the delivered flag, after which
	// cancellation is allowed again.
	updated := mustTransition(t, order.Id, OrderStatusOnTheWay)
	if updated.IsDelivered {
		t.Fatalf("expected delivered flag cleared after leaving received")
	}
	cancelled := mustTransition(t, order.Id, OrderStatusCancelled)
	if !cancelled.IsCancelled || cancelled.CancelledAt == 0 {
		t.Fatalf("expected cancelled flags set, got %+v", cancelled)
	}
}

func TestTransitionOrderStatus_StockAdjustment(t *testing.T) {
	setupTestDB(t)
	buyer := createTestUser(t, RoleMember, 0, 0)
	product := createTestProduct(t, 50, 1200, 1000, 5)
	order := placeOrder(t, buyer.Id, "", product.Id, 2)

	mustTransition(t, order.Id, OrderStatusPrepared)
	reloaded, err := GetProductById(product.Id)
	if err != nil {
		t.Fatalf("failed to reload product: %v", err)
	}
	if reloaded.Stock != 3 || reloaded.Sold != 2 {
		t.Fatalf("expected stock=3 sold=2 after prepared, got stock=%d sold=%d", reloaded.Stock, reloaded.Sold)
	}

	// Moving within the fulfillment set must not adjust stock again.
	mustTransition(t, order.Id, OrderStatusOnTheWay)
	reloaded, _ = GetProductById(product.Id)
	if reloaded.Stock != 3 || reloaded.Sold != 2 {
		t.Fatalf("expected no double adjustment, got stock=%d sold=%d", reloaded.Stock, reloaded.Sold)
	}

	mustTransition(t, order.Id, OrderStatusCancelled)
	reloaded, _ = GetProductById(product.Id)
	if reloaded.Stock != 5 || reloaded.Sold != 0 {
		t.Fatalf("expected stock restored after cancel, got stock=%d sold=%d", reloaded.Stock, reloaded.Sold)
	}
}

func TestTransitionOrderStatus_InsufficientStock(t *testing.T) {
	setupTestDB(t)
	buyer := createTestUser(t, RoleMember, 0, 0)
	product := createTestProduct(t, 50, 1200, 1000, 1)
	order := placeOrder(t, buyer.Id, "", product.Id, 2)

	if _, err := TransitionOrderStatus(order.Id, OrderStatusPrepared); err != ErrInsufficientStock {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	// The failed transition must not have moved the order.
	reloaded, err := GetOrderById(order.Id)
	if err != nil {
		t.Fatalf("failed to reload order: %v", err)
	}
	if reloaded.Status != OrderStatusPending {
		t.Fatalf("expected order still pending, got %s", reloaded.Status)
	}
}

func TestCreateOrder_FreezesPoints(t *testing.T) {
	setupTestDB(t)
	buyer := createTestUser(t, RoleMember, 0, 0)
	product := createTestProduct(t, 50, 1200, 1000, 10)
	order := placeOrder(t, buyer.Id, "", product.Id, 3)

	if order.TotalPoints != 150 {
		t.Fatalf("expected 150 frozen points, got %v", order.TotalPoints)
	}
	if order.TotalAmount != 3000 {
		t.Fatalf("expected member pricing 3*1000, got %d", order.TotalAmount)
	}

	// Later price edits must not change the frozen values.
	if err := DB.Model(&Product{}).Where("id = ?", product.Id).Update("points_per_unit", 999).Error; err != nil {
		t.Fatalf("failed to update product: %v", err)
	}
	reloaded, err := GetOrderById(order.Id)
	if err != nil {
		t.Fatalf("failed to reload order: %v", err)
	}
	if reloaded.TotalPoints != 150 || reloaded.Items[0].UnitPoints != 50 {
		t.Fatalf("expected frozen points unchanged, got %+v", reloaded)
	}
}
