package gen

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("underlying error")
		err := NewSchemaError("Brand", "name", "invalid type", cause)

		assert.Contains(t, err.Error(), "sqlforge: schema error")
		assert.Contains(t, err.Error(), "entity Brand")
		assert.Contains(t, err.Error(), "field name")
		assert.Contains(t, err.Error(), "invalid type")
		assert.Contains(t, err.Error(), "underlying error")
	})

	t.Run("Error message with entity only", func(t *testing.T) {
		err := &SchemaError{Entity: "Brand"}
		assert.Contains(t, err.Error(), "entity Brand")
		assert.NotContains(t, err.Error(), "field")
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("root cause")
		err := NewSchemaError("Brand", "", "", cause)

		assert.Equal(t, cause, err.Unwrap())
		assert.True(t, errors.Is(err, cause))
	})

	t.Run("Is matches ErrInvalidSchema", func(t *testing.T) {
		err := NewSchemaError("Brand", "", "", nil)
		assert.True(t, errors.Is(err, ErrInvalidSchema))
	})

	t.Run("IsSchemaError helper", func(t *testing.T) {
		err := NewSchemaError("Brand", "name", "test", nil)
		assert.True(t, IsSchemaError(err))
		assert.False(t, IsSchemaError(errors.New("other")))
	})
}

func TestConfigError(t *testing.T) {
	t.Run("Error message with value", func(t *testing.T) {
		err := NewConfigError("PrimaryKeyPolicy", 7, "unknown policy")

		assert.Contains(t, err.Error(), "sqlforge: config error")
		assert.Contains(t, err.Error(), "PrimaryKeyPolicy")
		assert.Contains(t, err.Error(), "7")
		assert.Contains(t, err.Error(), "unknown policy")
	})

	t.Run("Error message without value", func(t *testing.T) {
		err := NewConfigError("Containers", nil, "cannot be empty")

		assert.Contains(t, err.Error(), "Containers")
		assert.NotContains(t, err.Error(), "value:")
	})

	t.Run("IsConfigError helper", func(t *testing.T) {
		err := NewConfigError("Logger", nil, "missing")
		assert.True(t, errors.Is(err, ErrMissingConfig))
		assert.True(t, IsConfigError(err))
		assert.False(t, IsConfigError(errors.New("other")))
	})
}

func TestRefError(t *testing.T) {
	t.Run("Unresolved", func(t *testing.T) {
		err := NewRefError(ErrUnresolvedRef, "Product", "brand", "#/definitions/Brand", "Brand")

		assert.Contains(t, err.Error(), "sqlforge: unresolved reference in Product.brand")
		assert.Contains(t, err.Error(), "Brand is referenced in Product but has no definition")
		assert.True(t, errors.Is(err, ErrInvalidRef))
		assert.True(t, errors.Is(err, ErrUnresolvedRef))
		assert.False(t, errors.Is(err, ErrMalformedRef))
	})

	t.Run("Malformed", func(t *testing.T) {
		err := NewRefError(ErrMalformedRef, "Product", "brand", "#/Brand", "")

		assert.Contains(t, err.Error(), "sqlforge: malformed reference")
		assert.Contains(t, err.Error(), `"#/Brand"`)
		assert.True(t, errors.Is(err, ErrInvalidRef))
		assert.True(t, errors.Is(err, ErrMalformedRef))
		assert.False(t, errors.Is(err, ErrUnresolvedRef))
	})

	t.Run("Wrapped", func(t *testing.T) {
		err := fmt.Errorf("resolve: %w", NewRefError(ErrMalformedRef, "A", "b", "x", ""))
		assert.True(t, IsRefError(err))
		assert.True(t, errors.Is(err, ErrInvalidRef))
		assert.False(t, IsRefError(errors.New("other")))
	})
}

func TestGenerationError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("missing type")
		err := NewGenerationError("table", "Brand", "cannot render column", cause)

		assert.Contains(t, err.Error(), "sqlforge: generation error")
		assert.Contains(t, err.Error(), "phase table")
		assert.Contains(t, err.Error(), "entity: Brand")
		assert.Contains(t, err.Error(), "cannot render column")
		assert.Contains(t, err.Error(), "missing type")
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("io error")
		err := NewGenerationError("write", "", "", cause)

		assert.Equal(t, cause, err.Unwrap())
		assert.True(t, errors.Is(err, cause))
		assert.True(t, errors.Is(err, ErrGenerationFailed))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		err := NewValidationError("Brand", "id", nil, "no primary key")

		assert.Contains(t, err.Error(), "sqlforge: validation error")
		assert.Contains(t, err.Error(), "entity Brand")
		assert.Contains(t, err.Error(), "field id")
		assert.Contains(t, err.Error(), "no primary key")
	})

	t.Run("Is matches ErrValidationFailed", func(t *testing.T) {
		err := NewValidationError("Brand", "", nil, "")
		assert.True(t, errors.Is(err, ErrValidationFailed))
	})
}

func TestErrorTypeChecking(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		isSchema bool
		isConfig bool
		isRef    bool
		isGen    bool
		isVal    bool
	}{
		{name: "SchemaError", err: NewSchemaError("Brand", "", "", nil), isSchema: true},
		{name: "ConfigError", err: NewConfigError("Containers", nil, ""), isConfig: true},
		{name: "RefError", err: NewRefError(ErrUnresolvedRef, "A", "b", "", "C"), isRef: true},
		{name: "GenerationError", err: NewGenerationError("table", "", "", nil), isGen: true},
		{name: "ValidationError", err: NewValidationError("Brand", "", nil, ""), isVal: true},
		{name: "Other error", err: errors.New("other")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.isSchema, IsSchemaError(tt.err))
			assert.Equal(t, tt.isConfig, IsConfigError(tt.err))
			assert.Equal(t, tt.isRef, IsRefError(tt.err))
			assert.Equal(t, tt.isGen, IsGenerationError(tt.err))
			assert.Equal(t, tt.isVal, IsValidationError(tt.err))
		})
	}
}

func TestErrorsAs(t *testing.T) {
	err := fmt.Errorf("wrap: %w", NewRefError(ErrUnresolvedRef, "Product", "brand", "#/definitions/Brand", "Brand"))
	var refErr *RefError
	require.True(t, errors.As(err, &refErr))
	assert.Equal(t, "Product", refErr.From)
	assert.Equal(t, "brand", refErr.Field)
	assert.Equal(t, "Brand", refErr.Target)
}
