package m_cart

// Field name constants for the carts table.
const (
	TableName = "carts"

	CartKey   = "cart_key"
	Payload   = "payload"
	UpdatedAt = "updated_at"
)
