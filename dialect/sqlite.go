package dialect

import (
	"fmt"

	"github.com/syssam/sqlforge/compiler/gen"
	"github.com/syssam/sqlforge/schema/field"
)

// SQLiteTypes maps fields to SQLite column types. SQLite stores every
// integer in 8 bytes, so the declared types only keep the length hints
// that tools reading the schema rely on.
type SQLiteTypes struct{}

// Name implements TypeMapper.
func (SQLiteTypes) Name() string { return SQLite }

// FieldType implements TypeMapper.
func (SQLiteTypes) FieldType(f *gen.Field) string {
	switch f.Kind {
	case field.KindString:
		return sqliteString(f)
	case field.KindInteger:
		switch NarrowInt(f.Minimum, f.Maximum) {
		case Uint64, IntBig:
			return "NUMERIC"
		default:
			return "INTEGER"
		}
	case field.KindNumber:
		if f.Format == field.FormatDecimal {
			return "NUMERIC"
		}
		return "REAL"
	case field.KindBoolean:
		return "BOOLEAN"
	case field.KindArray:
		return "JSON"
	default:
		return ""
	}
}

func sqliteString(f *gen.Field) string {
	switch f.Format {
	case field.FormatByte:
		return "BLOB"
	case field.FormatDate:
		return "DATE"
	case field.FormatDateTime:
		return "DATETIME"
	case field.FormatTime:
		return "TIME"
	case field.FormatJSON:
		return "JSON"
	case field.FormatUUID:
		return "UUID"
	case field.FormatIPv4, field.FormatIPv6, field.FormatMAC:
		return "TEXT"
	}
	if n, ok := f.FixedLength(); ok {
		return fmt.Sprintf("CHAR(%d)", n)
	}
	if f.MaxLength.Bounded() {
		return fmt.Sprintf("VARCHAR(%d)", f.MaxLength.N)
	}
	return "TEXT"
}

// EnumType implements TypeMapper.
func (SQLiteTypes) EnumType(e *gen.Entity) string {
	return fmt.Sprintf("VARCHAR(%d)", enumLength(e.EnumValues))
}
