package catalog

import "github.com/gofrs/uuid"

// Shop is a laundry shop visible on the customer home screen.
type Shop struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Address string    `json:"address"`
}

// Service is one priced entry of a shop's price list.
type Service struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}
