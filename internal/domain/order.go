package domain

import "time"

// Order is a vendor order for one product. It stays outstanding until the
// shipment is received.
type Order struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	Date        time.Time `json:"date"`
	Outstanding bool      `json:"outstanding"`
}
