package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrInvalidSchema indicates a schema definition error.
	ErrInvalidSchema = errors.New("sqlforge: invalid schema")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("sqlforge: missing configuration")
	// ErrInvalidRef indicates a reference that cannot be followed.
	// Both ErrMalformedRef and ErrUnresolvedRef failures match it.
	ErrInvalidRef = errors.New("sqlforge: invalid reference")
	// ErrMalformedRef indicates a reference path that is not of the
	// form "#/<container>/<name>".
	ErrMalformedRef = errors.New("sqlforge: malformed reference path")
	// ErrUnresolvedRef indicates a reference to a name that has no definition.
	ErrUnresolvedRef = errors.New("sqlforge: unresolved reference")
	// ErrGenerationFailed indicates a code generation failure.
	ErrGenerationFailed = errors.New("sqlforge: generation failed")
	// ErrValidationFailed indicates a validation failure.
	ErrValidationFailed = errors.New("sqlforge: validation failed")
)

// SchemaError represents a schema definition error.
type SchemaError struct {
	Entity  string // Entity name
	Field   string // Field name (if applicable)
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString("sqlforge: schema error")
	if e.Entity != "" {
		b.WriteString(" on entity ")
		b.WriteString(e.Entity)
	}
	if e.Field != "" {
		b.WriteString(" field ")
		b.WriteString(e.Field)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for SchemaError.
func (e *SchemaError) Is(target error) bool {
	return target == ErrInvalidSchema
}

// NewSchemaError creates a new SchemaError.
func NewSchemaError(entity, fieldName, message string, cause error) *SchemaError {
	return &SchemaError{
		Entity:  entity,
		Field:   fieldName,
		Message: message,
		Cause:   cause,
	}
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("sqlforge: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("sqlforge: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// RefError represents a reference that could not be followed.
// Kind is either ErrMalformedRef or ErrUnresolvedRef.
type RefError struct {
	Kind   error
	From   string // referencing entity
	Field  string // referencing field
	Ref    string // reference path as written
	Target string // target definition name (if known)
}

// Error implements the error interface.
func (e *RefError) Error() string {
	var b strings.Builder
	switch e.Kind {
	case ErrUnresolvedRef:
		b.WriteString("sqlforge: unresolved reference")
	case ErrMalformedRef:
		b.WriteString("sqlforge: malformed reference")
	default:
		b.WriteString("sqlforge: invalid reference")
	}
	if e.From != "" {
		b.WriteString(" in ")
		b.WriteString(e.From)
		if e.Field != "" {
			b.WriteString(".")
			b.WriteString(e.Field)
		}
	}
	if e.Ref != "" {
		fmt.Fprintf(&b, " (%q)", e.Ref)
	}
	if e.Kind == ErrUnresolvedRef && e.Target != "" {
		fmt.Fprintf(&b, ": %s is referenced in %s but has no definition", e.Target, e.From)
	}
	if e.Kind == ErrMalformedRef {
		b.WriteString(`: expected "#/<container>/<name>"`)
	}
	return b.String()
}

// Is reports whether the target matches ErrInvalidRef or the specific
// kind of the reference failure.
func (e *RefError) Is(target error) bool {
	return target == ErrInvalidRef || (e.Kind != nil && target == e.Kind)
}

// NewRefError creates a new RefError.
func NewRefError(kind error, from, fieldName, ref, target string) *RefError {
	return &RefError{
		Kind:   kind,
		From:   from,
		Field:  fieldName,
		Ref:    ref,
		Target: target,
	}
}

// GenerationError represents a generation error.
type GenerationError struct {
	Phase   string // "project", "table", "command", "write", etc.
	Entity  string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("sqlforge: generation error")
	if e.Phase != "" {
		b.WriteString(" in phase ")
		b.WriteString(e.Phase)
	}
	if e.Entity != "" {
		b.WriteString(" (entity: ")
		b.WriteString(e.Entity)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(phase, entity, message string, cause error) *GenerationError {
	return &GenerationError{
		Phase:   phase,
		Entity:  entity,
		Message: message,
		Cause:   cause,
	}
}

// ValidationError represents a validation error.
type ValidationError struct {
	Entity  string
	Field   string
	Value   any
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("sqlforge: validation error")
	if e.Entity != "" {
		b.WriteString(" on entity ")
		b.WriteString(e.Entity)
	}
	if e.Field != "" {
		b.WriteString(" field ")
		b.WriteString(e.Field)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// NewValidationError creates a new ValidationError.
func NewValidationError(entity, fieldName string, value any, message string) *ValidationError {
	return &ValidationError{
		Entity:  entity,
		Field:   fieldName,
		Value:   value,
		Message: message,
	}
}

// IsSchemaError reports whether the error is a SchemaError.
func IsSchemaError(err error) bool {
	var schemaErr *SchemaError
	return errors.As(err, &schemaErr)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsRefError reports whether the error is a RefError.
func IsRefError(err error) bool {
	var refErr *RefError
	return errors.As(err, &refErr)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}

// IsValidationError reports whether the error is a ValidationError.
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}
