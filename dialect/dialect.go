package dialect

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/syssam/sqlforge/compiler/gen"
)

// Dialect names.
const (
	Postgres = "postgres"
	MySQL    = "mysql"
	SQLite   = "sqlite"
	CSharp   = "csharp"
)

// TypeMapper converts resolved fields into the scalar type names of one
// target type system.
type TypeMapper interface {
	// Name returns the dialect name of the mapper.
	Name() string
	// FieldType returns the type name of a scalar field. An empty string
	// means the field has no representation in the target system.
	FieldType(f *gen.Field) string
	// EnumType returns the type name used to store a value of an
	// enumeration entity.
	EnumType(e *gen.Entity) string
}

var mappers = map[string]TypeMapper{
	Postgres: PostgresTypes{},
	MySQL:    MySQLTypes{},
	SQLite:   SQLiteTypes{},
	CSharp:   CSharpTypes{},
}

// ForName returns the mapper registered for the given dialect name.
func ForName(name string) (TypeMapper, error) {
	m, ok := mappers[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("sqlforge: unsupported dialect %q; use one of %s", name, strings.Join(Names(), ", "))
	}
	return m, nil
}

// Names returns the registered dialect names, sorted.
func Names() []string {
	names := make([]string, 0, len(mappers))
	for n := range mappers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// minEnumLength is the smallest width reserved for enumeration codes.
const minEnumLength = 50

// enumLength returns the column width needed to store any of the given
// values as text.
func enumLength(values []any) int {
	n := minEnumLength
	for _, v := range values {
		if l := utf8.RuneCountInString(fmt.Sprint(v)); l > n {
			n = l
		}
	}
	return n
}
