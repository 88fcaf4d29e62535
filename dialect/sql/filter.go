package sql

import (
	"fmt"
	"strings"

	"github.com/syssam/sqlforge/dialect"
)

// FilterTerm describes one LIST filter term.
type FilterTerm struct {
	// Column is the filtered column.
	Column string
	// Name is the parameter name and Param the same name with its marker.
	Name  string
	Param string
}

// ListFilter renders the condition matching a column against the set of
// values bound to a parameter. An empty set must match every row.
type ListFilter func(FilterTerm) string

// AnyArray matches columns against a PostgreSQL array parameter.
func AnyArray(t FilterTerm) string {
	return fmt.Sprintf("(cardinality(%s) = 0 OR %s = ANY(%s))", t.Param, t.Column, t.Param)
}

// JSONEach matches columns against a JSON array parameter, as supported
// by SQLite.
func JSONEach(t FilterTerm) string {
	return fmt.Sprintf("(json_array_length(%s) = 0 OR %s IN (SELECT value FROM json_each(%s)))", t.Param, t.Column, t.Param)
}

// JSONMember matches columns against a JSON array parameter with the
// MySQL MEMBER OF operator.
func JSONMember(t FilterTerm) string {
	return fmt.Sprintf("(JSON_LENGTH(%s) = 0 OR %s MEMBER OF(%s))", t.Param, t.Column, t.Param)
}

// LegacyAny renders the "(@p = {} OR p = ANY(@p))" form read by existing
// data-access code. The braces are not a bindable value in most
// databases, so the statements it produces are templates rather than
// executable SQL.
func LegacyAny(t FilterTerm) string {
	return fmt.Sprintf("(%s = {} OR %s = ANY(%s))", t.Param, t.Name, t.Param)
}

var filters = map[string]ListFilter{
	"any":    AnyArray,
	"json":   JSONEach,
	"member": JSONMember,
	"legacy": LegacyAny,
}

// FilterForName returns the list filter registered under name: "any",
// "json", "member" or "legacy".
func FilterForName(name string) (ListFilter, error) {
	f, ok := filters[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("sqlforge: unknown list filter %q", name)
	}
	return f, nil
}

// DialectFilter returns the list filter executable by the given SQL
// dialect.
func DialectFilter(name string) ListFilter {
	switch strings.ToLower(name) {
	case dialect.SQLite:
		return JSONEach
	case dialect.MySQL:
		return JSONMember
	default:
		return AnyArray
	}
}
