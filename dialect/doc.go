// Package dialect provides the type mappers used to turn resolved fields
// into the scalar types of a target system.
//
// # Supported Dialects
//
// Each dialect is identified by a constant string:
//
//	dialect.Postgres = "postgres"
//	dialect.MySQL    = "mysql"
//	dialect.SQLite   = "sqlite"
//	dialect.CSharp   = "csharp"
//
// # TypeMapper Interface
//
//	type TypeMapper interface {
//	    Name() string
//	    FieldType(f *gen.Field) string
//	    EnumType(e *gen.Entity) string
//	}
//
// FieldType applies the same rules in every dialect:
//
//   - integers are narrowed with NarrowInt from their minimum and maximum
//   - strings with a format map to the dedicated native type first
//     (date, timestamp, time, uuid, binary, json, network or MAC address),
//     then fixed-length strings to CHAR, bounded strings to VARCHAR and
//     anything else to unbounded text
//   - numbers map to double precision unless the format asks for
//     "float" or "decimal"
//
// EnumType sizes the column after the longest literal of the enumeration,
// with a minimum of 50 characters.
//
// # Usage
//
//	m, err := dialect.ForName("postgres")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	p, err := schema.Project(entity, m)
//
// # Sub-packages
//
//   - dialect/sql: parameterized CRUD statement generation
//   - dialect/sql/schema: field projection, CREATE TABLE generation and validation
package dialect
