package query

import (
	"fmt"
	"strings"

	"cloud.google.com/go/spanner"
)

// Direction represents ORDER BY direction.
type Direction int

const (
	// Asc represents ascending order.
	Asc Direction = iota
	// Desc represents descending order.
	Desc
)

// Builder assembles Spanner SQL statements against a single table.
// Every method returns a modified copy, so a base builder can be shared
// between a row query, its count, and a matching DELETE.
type Builder struct {
	table        string
	selectCols   []string
	whereClauses []Condition
	orderByCol   string
	orderByDir   Direction
	limitVal     int64
}

// From starts a builder for table.
func From(table string) *Builder {
	return &Builder{table: table}
}

// Select appends columns to the projection.
func (b *Builder) Select(columns ...string) *Builder {
	nb := b.clone()
	nb.selectCols = append(nb.selectCols, columns...)
	return nb
}

// Where adds a condition; conditions are AND-combined.
func (b *Builder) Where(condition Condition) *Builder {
	nb := b.clone()
	nb.whereClauses = append(nb.whereClauses, condition)
	return nb
}

// OrderBy sets the sort column and direction.
func (b *Builder) OrderBy(column string, direction Direction) *Builder {
	nb := b.clone()
	nb.orderByCol = column
	nb.orderByDir = direction
	return nb
}

// Limit caps the number of returned rows. Zero means no limit.
func (b *Builder) Limit(limit int64) *Builder {
	nb := b.clone()
	nb.limitVal = limit
	return nb
}

// Count returns a COUNT(*) variant with the same table and conditions.
func (b *Builder) Count() *Builder {
	nb := b.clone()
	nb.selectCols = []string{"COUNT(*)"}
	nb.orderByCol = ""
	nb.limitVal = 0
	return nb
}

// Build renders a SELECT statement.
func (b *Builder) Build() spanner.Statement {
	var sql strings.Builder
	sql.WriteString("SELECT ")
	if len(b.selectCols) == 0 {
		sql.WriteString("*")
	} else {
		sql.WriteString(strings.Join(b.selectCols, ", "))
	}
	sql.WriteString(" FROM ")
	sql.WriteString(b.table)

	where, params := b.renderWhere()
	sql.WriteString(where)

	if b.orderByCol != "" {
		sql.WriteString(" ORDER BY ")
		sql.WriteString(b.orderByCol)
		if b.orderByDir == Desc {
			sql.WriteString(" DESC")
		} else {
			sql.WriteString(" ASC")
		}
	}

	if b.limitVal > 0 {
		sql.WriteString(" LIMIT @limit")
		params["limit"] = b.limitVal
	}

	return spanner.Statement{SQL: sql.String(), Params: params}
}

// BuildDelete renders a DML DELETE with the builder's conditions.
// Spanner DML requires a WHERE clause, so an unconditioned builder
// deletes with "WHERE true".
func (b *Builder) BuildDelete() spanner.Statement {
	where, params := b.renderWhere()
	if where == "" {
		where = " WHERE true"
	}
	return spanner.Statement{
		SQL:    "DELETE FROM " + b.table + where,
		Params: params,
	}
}

func (b *Builder) renderWhere() (string, map[string]interface{}) {
	params := make(map[string]interface{})
	if len(b.whereClauses) == 0 {
		return "", params
	}

	parts := make([]string, 0, len(b.whereClauses))
	paramIndex := 0
	for _, condition := range b.whereClauses {
		fragment, condParams := condition.SQL(paramIndex)
		parts = append(parts, fragment)
		for k, v := range condParams {
			params[k] = v
		}
		paramIndex += len(condParams)
	}
	return " WHERE " + strings.Join(parts, " AND "), params
}

func (b *Builder) clone() *Builder {
	nb := *b
	nb.selectCols = append([]string(nil), b.selectCols...)
	nb.whereClauses = append([]Condition(nil), b.whereClauses...)
	return &nb
}

// String returns a human-readable representation for debugging.
func (b *Builder) String() string {
	stmt := b.Build()
	return fmt.Sprintf("SQL: %s\nParams: %v", stmt.SQL, stmt.Params)
}
