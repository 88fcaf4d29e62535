package dialect

import (
	"fmt"

	"github.com/syssam/sqlforge/compiler/gen"
	"github.com/syssam/sqlforge/schema/field"
)

// PostgresTypes maps fields to PostgreSQL column types.
type PostgresTypes struct{}

// Name implements TypeMapper.
func (PostgresTypes) Name() string { return Postgres }

// FieldType implements TypeMapper.
func (PostgresTypes) FieldType(f *gen.Field) string {
	switch f.Kind {
	case field.KindString:
		return postgresString(f)
	case field.KindInteger:
		switch NarrowInt(f.Minimum, f.Maximum) {
		case Int8, Uint8, Int16:
			return "SMALLINT"
		case Uint16, Int32:
			return "INTEGER"
		case Uint32, Int64:
			return "BIGINT"
		case Uint64:
			return "NUMERIC(20,0)"
		default:
			return "NUMERIC"
		}
	case field.KindNumber:
		switch f.Format {
		case field.FormatFloat:
			return "REAL"
		case field.FormatDecimal:
			return "NUMERIC"
		default:
			return "DOUBLE PRECISION"
		}
	case field.KindBoolean:
		return "BOOLEAN"
	case field.KindArray:
		return "JSONB"
	default:
		return ""
	}
}

func postgresString(f *gen.Field) string {
	switch f.Format {
	case field.FormatByte:
		return "BYTEA"
	case field.FormatDate:
		return "DATE"
	case field.FormatDateTime:
		return "TIMESTAMPTZ"
	case field.FormatTime:
		return "TIME"
	case field.FormatIPv4, field.FormatIPv6:
		return "INET"
	case field.FormatJSON:
		return "JSON"
	case field.FormatMAC:
		return "MACADDR"
	case field.FormatUUID:
		return "UUID"
	}
	if n, ok := f.FixedLength(); ok {
		return fmt.Sprintf("CHAR(%d)", n)
	}
	if f.MaxLength.Bounded() {
		return fmt.Sprintf("VARCHAR(%d)", f.MaxLength.N)
	}
	if f.Enum && f.MaxLength == nil {
		return fmt.Sprintf("VARCHAR(%d)", enumLength(f.EnumValues))
	}
	return "TEXT"
}

// EnumType implements TypeMapper.
func (PostgresTypes) EnumType(e *gen.Entity) string {
	return fmt.Sprintf("VARCHAR(%d)", enumLength(e.EnumValues))
}
