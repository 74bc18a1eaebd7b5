package m_cart

import "time"

// Data represents the database model for the carts table.
type Data struct {
	CartKey   string    `spanner:"cart_key"`
	Payload   string    `spanner:"payload"`
	UpdatedAt time.Time `spanner:"updated_at"`
}
