package dialect

import (
	"github.com/syssam/sqlforge/compiler/gen"
	"github.com/syssam/sqlforge/schema/field"
)

// CSharpTypes maps fields to C# value types, for data-access code
// generated against the same projections.
type CSharpTypes struct{}

// Name implements TypeMapper.
func (CSharpTypes) Name() string { return CSharp }

var csharpInts = [...]string{
	Int8:   "sbyte",
	Uint8:  "byte",
	Int16:  "short",
	Uint16: "ushort",
	Int32:  "int",
	Uint32: "uint",
	Int64:  "long",
	Uint64: "ulong",
	IntBig: "decimal",
}

// FieldType implements TypeMapper.
func (CSharpTypes) FieldType(f *gen.Field) string {
	switch f.Kind {
	case field.KindString:
		return csharpString(f)
	case field.KindInteger:
		return csharpInts[NarrowInt(f.Minimum, f.Maximum)]
	case field.KindNumber:
		switch f.Format {
		case field.FormatFloat:
			return "float"
		case field.FormatDecimal:
			return "decimal"
		default:
			return "double"
		}
	case field.KindBoolean:
		return "bool"
	case field.KindArray:
		return "object[]"
	default:
		return ""
	}
}

func csharpString(f *gen.Field) string {
	switch f.Format {
	case field.FormatByte:
		return "byte[]"
	case field.FormatDate:
		return "DateTime"
	case field.FormatDateTime:
		return "DateTimeOffset"
	case field.FormatTime:
		return "TimeSpan"
	case field.FormatUUID:
		return "Guid"
	case field.FormatIPv4, field.FormatIPv6:
		return "IPAddress"
	case field.FormatMAC:
		return "PhysicalAddress"
	}
	if n, ok := f.FixedLength(); ok && n == 1 {
		return "char"
	}
	return "string"
}

// EnumType implements TypeMapper.
func (CSharpTypes) EnumType(*gen.Entity) string {
	return "string"
}
