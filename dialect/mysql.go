package dialect

import (
	"fmt"

	"github.com/syssam/sqlforge/compiler/gen"
	"github.com/syssam/sqlforge/schema/field"
)

// MySQLTypes maps fields to MySQL column types.
type MySQLTypes struct{}

// Name implements TypeMapper.
func (MySQLTypes) Name() string { return MySQL }

var mysqlInts = [...]string{
	Int8:   "TINYINT",
	Uint8:  "TINYINT UNSIGNED",
	Int16:  "SMALLINT",
	Uint16: "SMALLINT UNSIGNED",
	Int32:  "INT",
	Uint32: "INT UNSIGNED",
	Int64:  "BIGINT",
	Uint64: "BIGINT UNSIGNED",
	IntBig: "DECIMAL(65,0)",
}

// FieldType implements TypeMapper.
func (MySQLTypes) FieldType(f *gen.Field) string {
	switch f.Kind {
	case field.KindString:
		return mysqlString(f)
	case field.KindInteger:
		return mysqlInts[NarrowInt(f.Minimum, f.Maximum)]
	case field.KindNumber:
		switch f.Format {
		case field.FormatFloat:
			return "FLOAT"
		case field.FormatDecimal:
			return "DECIMAL(65,30)"
		default:
			return "DOUBLE"
		}
	case field.KindBoolean:
		return "BOOLEAN"
	case field.KindArray:
		return "JSON"
	default:
		return ""
	}
}

func mysqlString(f *gen.Field) string {
	switch f.Format {
	case field.FormatByte:
		return "LONGBLOB"
	case field.FormatDate:
		return "DATE"
	case field.FormatDateTime:
		return "DATETIME(6)"
	case field.FormatTime:
		return "TIME(6)"
	case field.FormatIPv4, field.FormatIPv6:
		return "VARCHAR(45)"
	case field.FormatJSON:
		return "JSON"
	case field.FormatMAC:
		return "VARCHAR(17)"
	case field.FormatUUID:
		return "CHAR(36)"
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
	return "LONGTEXT"
}

// EnumType implements TypeMapper.
func (MySQLTypes) EnumType(e *gen.Entity) string {
	return fmt.Sprintf("VARCHAR(%d)", enumLength(e.EnumValues))
}
