// internal/models/common_test.go
package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusPending, OrderStatusPaid, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusShipped, false},
		{OrderStatusPending, OrderStatusDelivered, false},
		{OrderStatusPaid, OrderStatusShipped, true},
		{OrderStatusPaid, OrderStatusCancelled, true},
		{OrderStatusPaid, OrderStatusPending, false},
		{OrderStatusPaid, OrderStatusDelivered, false},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusCancelled, false},
		{OrderStatusDelivered, OrderStatusShipped, false},
		{OrderStatusCancelled, OrderStatusPaid, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestOrderStatusValid(t *testing.T) {
	assert.True(t, OrderStatusPending.Valid())
	assert.True(t, OrderStatusCancelled.Valid())
	assert.False(t, OrderStatus("refunded").Valid())
}

func TestSizeValid(t *testing.T) {
	for _, s := range AllSizes {
		assert.True(t, s.Valid())
	}
	assert.False(t, Size("XXL").Valid())
	assert.False(t, Size("s").Valid())
}

func TestProductReleased(t *testing.T) {
	now := time.Now()

	noDrop := Product{ID: "TC-001"}
	assert.True(t, noDrop.Released(now))

	past := now.Add(-time.Hour)
	dropped := Product{ID: "TC-002", DropDate: &past}
	assert.True(t, dropped.Released(now))

	future := now.Add(time.Hour)
	upcoming := Product{ID: "TC-003", DropDate: &future}
	assert.False(t, upcoming.Released(now))

	// the drop instant itself counts as released
	exact := Product{ID: "TC-004", DropDate: &now}
	assert.True(t, exact.Released(now))
}

func TestProductAllOutOfStock(t *testing.T) {
	p := Product{
		Variants: []Variant{
			{Size: SizeS, Stock: 0},
			{Size: SizeM, Stock: 2},
		},
	}
	assert.False(t, p.AllOutOfStock())

	p.Variants[1].Stock = 0
	assert.True(t, p.AllOutOfStock())

	empty := Product{}
	assert.True(t, empty.AllOutOfStock())
}

func TestDiscountWindowInclusive(t *testing.T) {
	now := time.Now()
	d := Discount{StartsAt: now.Add(-time.Hour), EndsAt: now.Add(time.Hour)}

	assert.True(t, d.InWindow(now))
	assert.True(t, d.InWindow(d.StartsAt))
	assert.True(t, d.InWindow(d.EndsAt))
	assert.False(t, d.InWindow(d.EndsAt.Add(time.Nanosecond)))
	assert.False(t, d.InWindow(d.StartsAt.Add(-time.Nanosecond)))
}

func TestDiscountCovers(t *testing.T) {
	all := Discount{Scope: DiscountScopeAll}
	assert.True(t, all.Covers("TC-001"))

	specific := Discount{Scope: DiscountScopeSpecific, ProductIDs: []string{"TC-001", "TC-002"}}
	assert.True(t, specific.Covers("TC-002"))
	assert.False(t, specific.Covers("TC-003"))
}
