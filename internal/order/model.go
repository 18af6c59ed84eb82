package order

import (
	"time"

	"github.com/gofrs/uuid"

	"github.com/freshfold/laundry-service/pkg/lifecycle"
)

// Item is one line of an order: a service name from the shop's price list and
// how many pieces of it the customer selected.
type Item struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Order is one laundry service request from a customer to a shop. Everything
// except Status, EstimatedTime and Seen is immutable after placement.
type Order struct {
	ID            uuid.UUID        `json:"id"`
	ClientID      uuid.UUID        `json:"client_id"`
	OwnerID       uuid.UUID        `json:"owner_id"`
	CustomerName  string           `json:"customer_name"`
	Items         []Item           `json:"items"`
	TotalPrice    float64          `json:"total_price"`
	PaymentMethod string           `json:"payment_method"`
	Address       string           `json:"address"`
	Phone         string           `json:"phone,omitempty"`
	PickupTime    string           `json:"pickup_time"`
	Status        lifecycle.Status `json:"status"`
	EstimatedTime string           `json:"estimated_time,omitempty"`
	// Seen marks the order as acknowledged on the owner's dashboard. Pending
	// orders with Seen unset make up the owner's notification count.
	Seen      bool      `json:"-"`
	CreatedAt time.Time `json:"date"`
	UpdatedAt time.Time `json:"updated_at"`
}
