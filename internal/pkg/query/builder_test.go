package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_SelectAllColumns(t *testing.T) {
	stmt := From("carts").Build()

	assert.Equal(t, "SELECT * FROM carts", stmt.SQL)
	assert.Empty(t, stmt.Params)
}

func TestBuilder_SelectWithConditions(t *testing.T) {
	cutoff := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	stmt := From("carts").
		Select("cart_key", "updated_at").
		Where(StartsWith("cart_key", "djurshoppen-cart:")).
		Where(Lt("updated_at", cutoff)).
		OrderBy("updated_at", Asc).
		Limit(500).
		Build()

	assert.Equal(t,
		"SELECT cart_key, updated_at FROM carts WHERE STARTS_WITH(cart_key, @p0) AND updated_at < @p1 ORDER BY updated_at ASC LIMIT @limit",
		stmt.SQL)
	assert.Equal(t, map[string]interface{}{
		"p0":    "djurshoppen-cart:",
		"p1":    cutoff,
		"limit": int64(500),
	}, stmt.Params)
}

func TestBuilder_OrderByDesc(t *testing.T) {
	stmt := From("carts").
		Select("cart_key").
		OrderBy("updated_at", Desc).
		Build()

	assert.Equal(t, "SELECT cart_key FROM carts ORDER BY updated_at DESC", stmt.SQL)
}

func TestBuilder_Count(t *testing.T) {
	base := From("carts").
		Select("cart_key").
		Where(Eq("schema_version", int64(1))).
		OrderBy("updated_at", Desc).
		Limit(10)

	countStmt := base.Count().Build()
	assert.Equal(t, "SELECT COUNT(*) FROM carts WHERE schema_version = @p0", countStmt.SQL)
	assert.Equal(t, map[string]interface{}{"p0": int64(1)}, countStmt.Params)

	// the base builder is untouched
	assert.Contains(t, base.Build().SQL, "LIMIT @limit")
}

func TestBuilder_BuildDelete(t *testing.T) {
	cutoff := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("with conditions", func(t *testing.T) {
		stmt := From("carts").
			Select("ignored").
			Where(Lt("updated_at", cutoff)).
			Limit(5).
			BuildDelete()

		assert.Equal(t, "DELETE FROM carts WHERE updated_at < @p0", stmt.SQL)
		assert.Equal(t, map[string]interface{}{"p0": cutoff}, stmt.Params)
	})

	t.Run("without conditions", func(t *testing.T) {
		stmt := From("carts").BuildDelete()
		assert.Equal(t, "DELETE FROM carts WHERE true", stmt.SQL)
		assert.Empty(t, stmt.Params)
	})
}

func TestBuilder_Immutability(t *testing.T) {
	base := From("carts").Select("cart_key")

	stmt1 := base.Where(Eq("schema_version", int64(1))).Build()
	stmt2 := base.Where(IsNull("payload")).Build()

	assert.Equal(t, "SELECT cart_key FROM carts WHERE schema_version = @p0", stmt1.SQL)
	assert.Equal(t, "SELECT cart_key FROM carts WHERE payload IS NULL", stmt2.SQL)
	assert.Equal(t, "SELECT cart_key FROM carts", base.Build().SQL)
}

func TestConditions(t *testing.T) {
	tests := []struct {
		name       string
		cond       Condition
		index      int
		wantSQL    string
		wantParams map[string]interface{}
	}{
		{"eq", Eq("cart_key", "a"), 0, "cart_key = @p0", map[string]interface{}{"p0": "a"}},
		{"lt with offset", Lt("updated_at", int64(7)), 3, "updated_at < @p3", map[string]interface{}{"p3": int64(7)}},
		{"gte", Gte("schema_version", int64(2)), 1, "schema_version >= @p1", map[string]interface{}{"p1": int64(2)}},
		{"starts with", StartsWith("cart_key", "x:"), 0, "STARTS_WITH(cart_key, @p0)", map[string]interface{}{"p0": "x:"}},
		{"is null", IsNull("payload"), 4, "payload IS NULL", map[string]interface{}{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, params := tt.cond.SQL(tt.index)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantParams, params)
		})
	}
}

func TestBuilder_ParamIndexSkipsParameterlessConditions(t *testing.T) {
	stmt := From("carts").
		Where(IsNull("payload")).
		Where(Eq("cart_key", "k")).
		Build()

	assert.Equal(t, "SELECT * FROM carts WHERE payload IS NULL AND cart_key = @p0", stmt.SQL)
}

func TestBuilder_String(t *testing.T) {
	str := From("carts").Where(Eq("cart_key", "k")).String()
	require.NotEmpty(t, str)
	assert.Contains(t, str, "SQL:")
	assert.Contains(t, str, "Params:")
}
