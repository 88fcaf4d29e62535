package dialect

import (
	"math/big"
	"testing"

	"github.com/syssam/sqlforge/compiler/gen"
	"github.com/syssam/sqlforge/schema/field"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bound(s string) *big.Float {
	f, _, err := big.ParseFloat(s, 10, 128, big.ToNearestEven)
	if err != nil {
		panic(err)
	}
	return f
}

func intField(minimum, maximum string) *gen.Field {
	f := &gen.Field{Name: "n", Kind: field.KindInteger}
	if minimum != "" {
		f.Minimum = bound(minimum)
	}
	if maximum != "" {
		f.Maximum = bound(maximum)
	}
	return f
}

func TestNarrowInt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		min, max string
		want     IntWidth
	}{
		{"", "", Int32},
		{"-128", "127", Int8},
		{"0", "255", Uint8},
		{"0", "100", Uint8},
		{"-32768", "32767", Int16},
		{"-129", "127", Int16},
		{"0", "65535", Uint16},
		{"0", "65536", Uint32},
		{"-2147483648", "2147483647", Int32},
		{"0", "4294967295", Uint32},
		{"-9223372036854775808", "9223372036854775807", Int64},
		{"0", "18446744073709551615", Uint64},
		{"0", "18446744073709551616", IntBig},
		{"-1", "9223372036854775808", IntBig},
		{"0", "", Int16},
		{"-40000", "", Int32},
		{"", "32767", Int16},
		{"", "3000000000", Int64},
		{"", "1e30", IntBig},
	}
	for _, tt := range tests {
		t.Run(tt.min+".."+tt.max, func(t *testing.T) {
			f := intField(tt.min, tt.max)
			assert.Equal(t, tt.want, NarrowInt(f.Minimum, f.Maximum))
		})
	}

	assert.True(t, Uint32.Unsigned())
	assert.False(t, Int64.Unsigned())
	assert.Equal(t, "uint8", Uint8.String())
}

func TestForName(t *testing.T) {
	for _, name := range []string{"postgres", "mysql", "sqlite", "csharp", "Postgres"} {
		m, err := ForName(name)
		require.NoError(t, err, name)
		assert.NotNil(t, m)
	}
	_, err := ForName("oracle")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oracle")
	assert.Equal(t, []string{"csharp", "mysql", "postgres", "sqlite"}, Names())
}

func TestPostgresTypes(t *testing.T) {
	m := PostgresTypes{}
	assert.Equal(t, "postgres", m.Name())

	length := func(n int64) *field.Length { return &field.Length{N: n} }
	tests := []struct {
		name string
		f    *gen.Field
		want string
	}{
		{"sbyte", intField("-128", "127"), "SMALLINT"},
		{"byte", intField("0", "255"), "SMALLINT"},
		{"short", intField("-32768", "32767"), "SMALLINT"},
		{"ushort", intField("0", "65535"), "INTEGER"},
		{"default int", intField("", ""), "INTEGER"},
		{"uint", intField("0", "4294967295"), "BIGINT"},
		{"long", intField("-9223372036854775808", "9223372036854775807"), "BIGINT"},
		{"ulong", intField("0", "18446744073709551615"), "NUMERIC(20,0)"},
		{"double", &gen.Field{Kind: field.KindNumber, Format: field.FormatDouble}, "DOUBLE PRECISION"},
		{"float", &gen.Field{Kind: field.KindNumber, Format: field.FormatFloat}, "REAL"},
		{"decimal", &gen.Field{Kind: field.KindNumber, Format: field.FormatDecimal}, "NUMERIC"},
		{"number", &gen.Field{Kind: field.KindNumber}, "DOUBLE PRECISION"},
		{"bool", &gen.Field{Kind: field.KindBoolean}, "BOOLEAN"},
		{"array", &gen.Field{Kind: field.KindArray}, "JSONB"},
		{"date", &gen.Field{Kind: field.KindString, Format: field.FormatDate, MaxLength: length(10)}, "DATE"},
		{"date-time", &gen.Field{Kind: field.KindString, Format: field.FormatDateTime}, "TIMESTAMPTZ"},
		{"time", &gen.Field{Kind: field.KindString, Format: field.FormatTime}, "TIME"},
		{"uuid", &gen.Field{Kind: field.KindString, Format: field.FormatUUID}, "UUID"},
		{"byte format", &gen.Field{Kind: field.KindString, Format: field.FormatByte}, "BYTEA"},
		{"json", &gen.Field{Kind: field.KindString, Format: field.FormatJSON}, "JSON"},
		{"ipv4", &gen.Field{Kind: field.KindString, Format: field.FormatIPv4}, "INET"},
		{"ipv6", &gen.Field{Kind: field.KindString, Format: field.FormatIPv6}, "INET"},
		{"mac", &gen.Field{Kind: field.KindString, Format: field.FormatMAC}, "MACADDR"},
		{"varchar", &gen.Field{Kind: field.KindString, MaxLength: length(30)}, "VARCHAR(30)"},
		{"max", &gen.Field{Kind: field.KindString, MaxLength: &field.Length{Max: true}}, "TEXT"},
		{"text", &gen.Field{Kind: field.KindString}, "TEXT"},
		{"char by bounds", &gen.Field{Kind: field.KindString, MaxLength: length(2), Minimum: bound("2"), Maximum: bound("2")}, "CHAR(2)"},
		{"char by minLength", &gen.Field{Kind: field.KindString, MaxLength: length(3), MinLength: 3}, "CHAR(3)"},
		{"enum property", &gen.Field{Kind: field.KindString, Enum: true, EnumValues: []any{"a"}}, "VARCHAR(50)"},
		{"object", &gen.Field{Kind: field.KindObject}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.FieldType(tt.f))
		})
	}

	t.Run("EnumType", func(t *testing.T) {
		assert.Equal(t, "VARCHAR(50)", m.EnumType(&gen.Entity{Name: "state", Enum: true, EnumValues: []any{"CA", "NY"}}))
		long := make([]rune, 64)
		for i := range long {
			long[i] = 'x'
		}
		assert.Equal(t, "VARCHAR(64)", m.EnumType(&gen.Entity{Enum: true, EnumValues: []any{string(long)}}))
	})
}

func TestMySQLTypes(t *testing.T) {
	m := MySQLTypes{}
	assert.Equal(t, "mysql", m.Name())
	assert.Equal(t, "TINYINT", m.FieldType(intField("-128", "127")))
	assert.Equal(t, "TINYINT UNSIGNED", m.FieldType(intField("0", "255")))
	assert.Equal(t, "SMALLINT UNSIGNED", m.FieldType(intField("0", "65535")))
	assert.Equal(t, "INT", m.FieldType(intField("", "")))
	assert.Equal(t, "BIGINT UNSIGNED", m.FieldType(intField("0", "18446744073709551615")))
	assert.Equal(t, "DOUBLE", m.FieldType(&gen.Field{Kind: field.KindNumber}))
	assert.Equal(t, "CHAR(36)", m.FieldType(&gen.Field{Kind: field.KindString, Format: field.FormatUUID}))
	assert.Equal(t, "DATETIME(6)", m.FieldType(&gen.Field{Kind: field.KindString, Format: field.FormatDateTime}))
	assert.Equal(t, "LONGTEXT", m.FieldType(&gen.Field{Kind: field.KindString}))
	assert.Equal(t, "VARCHAR(50)", m.EnumType(&gen.Entity{Enum: true}))
}

func TestSQLiteTypes(t *testing.T) {
	m := SQLiteTypes{}
	assert.Equal(t, "sqlite", m.Name())
	assert.Equal(t, "INTEGER", m.FieldType(intField("-128", "127")))
	assert.Equal(t, "INTEGER", m.FieldType(intField("0", "4294967295")))
	assert.Equal(t, "NUMERIC", m.FieldType(intField("0", "18446744073709551615")))
	assert.Equal(t, "REAL", m.FieldType(&gen.Field{Kind: field.KindNumber, Format: field.FormatFloat}))
	assert.Equal(t, "VARCHAR(30)", m.FieldType(&gen.Field{Kind: field.KindString, MaxLength: &field.Length{N: 30}}))
	assert.Equal(t, "TEXT", m.FieldType(&gen.Field{Kind: field.KindString, Format: field.FormatIPv4}))
	assert.Equal(t, "VARCHAR(50)", m.EnumType(&gen.Entity{Enum: true}))
}

func TestCSharpTypes(t *testing.T) {
	m := CSharpTypes{}
	tests := []struct {
		name string
		f    *gen.Field
		want string
	}{
		{"BooleanField", &gen.Field{Kind: field.KindBoolean}, "bool"},
		{"ByteField", intField("0", "255"), "byte"},
		{"SByteField", intField("-128", "127"), "sbyte"},
		{"CharField", &gen.Field{Kind: field.KindString, Minimum: bound("1"), Maximum: bound("1")}, "char"},
		{"ShortField", intField("-32768", "32767"), "short"},
		{"UShortField", intField("0", "65535"), "ushort"},
		{"IntField", intField("-2147483648", "2147483647"), "int"},
		{"UIntField", intField("0", "4294967295"), "uint"},
		{"LongField", intField("-9223372036854775808", "9223372036854775807"), "long"},
		{"ULongField", intField("0", "18446744073709551615"), "ulong"},
		{"FloatField", &gen.Field{Kind: field.KindNumber, Format: field.FormatFloat}, "float"},
		{"DoubleField", &gen.Field{Kind: field.KindNumber, Format: field.FormatDouble}, "double"},
		{"DecimalField", &gen.Field{Kind: field.KindNumber, Format: field.FormatDecimal}, "decimal"},
		{"StringField", &gen.Field{Kind: field.KindString, MaxLength: &field.Length{N: 20}}, "string"},
		{"DateField", &gen.Field{Kind: field.KindString, Format: field.FormatDate}, "DateTime"},
		{"DateTimeField", &gen.Field{Kind: field.KindString, Format: field.FormatDateTime}, "DateTimeOffset"},
		{"TimeField", &gen.Field{Kind: field.KindString, Format: field.FormatTime}, "TimeSpan"},
		{"GuidField", &gen.Field{Kind: field.KindString, Format: field.FormatUUID}, "Guid"},
		{"BytesField", &gen.Field{Kind: field.KindString, Format: field.FormatByte}, "byte[]"},
		{"IPField", &gen.Field{Kind: field.KindString, Format: field.FormatIPv6}, "IPAddress"},
		{"MacField", &gen.Field{Kind: field.KindString, Format: field.FormatMAC}, "PhysicalAddress"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.FieldType(tt.f))
		})
	}
	assert.Equal(t, "string", m.EnumType(&gen.Entity{Enum: true}))
}
