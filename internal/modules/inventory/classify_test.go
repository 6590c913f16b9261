package inventory

import (
	"testing"

	"github.com/georgemunganga/kuber-inventory/internal/modules/activity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	base := &Product{Name: "Brass lamp", Quantity: 20, Price: decimal.NewFromInt(100)}
	with := func(change func(p *Product)) *Product {
		p := base.clone()
		change(p)
		return p
	}

	testCases := []struct {
		name       string
		previous   *Product
		next       *Product
		wantAction activity.Action
		wantDelta  int
	}{
		{name: "created", previous: nil, next: base, wantAction: activity.ActionCreated, wantDelta: 20},
		{name: "deleted", previous: base, next: nil, wantAction: activity.ActionDeleted, wantDelta: -20},
		{name: "stock added", previous: base, next: with(func(p *Product) { p.Quantity = 25 }), wantAction: activity.ActionStockAdded, wantDelta: 5},
		{name: "stock reduced", previous: base, next: with(func(p *Product) { p.Quantity = 17 }), wantAction: activity.ActionStockReduced, wantDelta: -3},
		{name: "price only", previous: base, next: with(func(p *Product) { p.Price = decimal.NewFromInt(120) }), wantAction: activity.ActionUpdated, wantDelta: 0},
		{name: "no-op save", previous: base, next: base.clone(), wantAction: activity.ActionUpdated, wantDelta: 0},
		{
			name:     "quantity wins over other fields",
			previous: base,
			next: with(func(p *Product) {
				p.Quantity = 30
				p.Name = "Brass lamp XL"
				p.Price = decimal.NewFromInt(150)
			}),
			wantAction: activity.ActionStockAdded,
			wantDelta:  10,
		},
		{name: "created with zero stock", previous: nil, next: with(func(p *Product) { p.Quantity = 0 }), wantAction: activity.ActionCreated, wantDelta: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			action, delta := Classify(tc.previous, tc.next)
			assert.Equal(t, tc.wantAction, action)
			assert.Equal(t, tc.wantDelta, delta)
		})
	}
}

func TestClassifyBothAbsent(t *testing.T) {
	action, delta := Classify(nil, nil)
	assert.Equal(t, activity.Action(""), action)
	assert.Zero(t, delta)
}
