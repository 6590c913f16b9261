package activity

import (
	"time"

	"github.com/google/uuid"
)

// Action names the kind of stock-affecting change an Entry records.
type Action string

const (
	ActionCreated      Action = "created"
	ActionUpdated      Action = "updated"
	ActionStockAdded   Action = "stock_added"
	ActionStockReduced Action = "stock_reduced"
	ActionDeleted      Action = "deleted"
)

// Actor is the already-verified admin a mutation is attributed to.
type Actor struct {
	ID    uuid.UUID `json:"admin_id"`
	Email string    `json:"admin_email"`
}

// Entry is one immutable line of the activity ledger.
// ProductName and AdminEmail are snapshots taken when the entry was written.
type Entry struct {
	Seq            int64     `json:"-"`
	ID             uuid.UUID `json:"id"`
	ProductID      uuid.UUID `json:"product_id"`
	ProductName    string    `json:"product_name"`
	Action         Action    `json:"action"`
	QuantityChange int       `json:"quantity_change"`
	AdminID        uuid.UUID `json:"admin_id"`
	AdminEmail     string    `json:"admin_email"`
	Timestamp      time.Time `json:"timestamp"`
}

// NewEntry builds a ledger entry for the given product and actor.
func NewEntry(productID uuid.UUID, productName string, action Action, delta int, actor Actor, at time.Time) *Entry {
	return &Entry{
		ID:             uuid.New(),
		ProductID:      productID,
		ProductName:    productName,
		Action:         action,
		QuantityChange: delta,
		AdminID:        actor.ID,
		AdminEmail:     actor.Email,
		Timestamp:      at,
	}
}
