package m_cart

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the carts table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// UpsertMut creates a mutation that writes a cart snapshot, stamping
// updated_at with the commit timestamp.
func (m *Model) UpsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		[]string{
			CartKey,
			Payload,
			UpdatedAt,
		},
		[]interface{}{
			data.CartKey,
			data.Payload,
			spanner.CommitTimestamp,
		},
	)
}

// DeleteMut creates a mutation that deletes a cart snapshot.
func (m *Model) DeleteMut(cartKey string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{cartKey})
}
