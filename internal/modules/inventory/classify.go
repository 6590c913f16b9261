package inventory

import "github.com/georgemunganga/kuber-inventory/internal/modules/activity"

// Classify decides the ledger action and quantity delta for a change from
// previous to next. A nil previous means creation, a nil next means deletion.
// Quantity movement takes precedence: any edit that leaves quantity unchanged
// is "updated" with a zero delta, whatever other fields changed.
func Classify(previous, next *Product) (activity.Action, int) {
	switch {
	case previous == nil && next == nil:
		return "", 0
	case previous == nil:
		return activity.ActionCreated, next.Quantity
	case next == nil:
		return activity.ActionDeleted, -previous.Quantity
	}
	delta := next.Quantity - previous.Quantity
	switch {
	case delta < 0:
		return activity.ActionStockReduced, delta
	case delta > 0:
		return activity.ActionStockAdded, delta
	}
	return activity.ActionUpdated, 0
}
