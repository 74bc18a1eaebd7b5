package query

import "fmt"

// Condition is one WHERE predicate. Implementations render a SQL fragment
// using Spanner named parameters (@p0, @p1, ...).
type Condition interface {
	// SQL renders the fragment; paramIndex is the first free parameter slot.
	SQL(paramIndex int) (string, map[string]interface{})
}

// compareCondition renders "field <op> @pN".
type compareCondition struct {
	field string
	op    string
	value interface{}
}

func (c *compareCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	return fmt.Sprintf("%s %s @%s", c.field, c.op, paramName), map[string]interface{}{
		paramName: c.value,
	}
}

// Eq matches rows where field equals value.
func Eq(field string, value interface{}) Condition {
	return &compareCondition{field: field, op: "=", value: value}
}

// Lt matches rows where field is strictly less than value.
// Example: Lt("updated_at", cutoff) renders "updated_at < @p0".
func Lt(field string, value interface{}) Condition {
	return &compareCondition{field: field, op: "<", value: value}
}

// Gte matches rows where field is greater than or equal to value.
func Gte(field string, value interface{}) Condition {
	return &compareCondition{field: field, op: ">=", value: value}
}

// StartsWith matches rows whose string field begins with prefix.
func StartsWith(field, prefix string) Condition {
	return &prefixCondition{field: field, prefix: prefix}
}

type prefixCondition struct {
	field  string
	prefix string
}

func (c *prefixCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	return fmt.Sprintf("STARTS_WITH(%s, @%s)", c.field, paramName), map[string]interface{}{
		paramName: c.prefix,
	}
}

// IsNull matches rows where field is NULL.
func IsNull(field string) Condition {
	return isNullCondition(field)
}

type isNullCondition string

func (c isNullCondition) SQL(int) (string, map[string]interface{}) {
	return fmt.Sprintf("%s IS NULL", string(c)), map[string]interface{}{}
}
