package schema

import (
	"fmt"
	"strings"

	"github.com/syssam/sqlforge/compiler/gen"
)

// ValidationError represents a problem found in a projected table.
type ValidationError struct {
	Table   string
	Column  string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s.%s: %s", e.Table, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Table, e.Message)
}

// ValidationResult holds the results of schema validation.
type ValidationResult struct {
	Errors   []*ValidationError
	Warnings []*ValidationError
}

// HasErrors returns true if there are any validation errors.
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there are any validation warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Err returns the first validation error, or nil.
func (r *ValidationResult) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return r.Errors[0]
}

// String returns a human-readable summary of the validation result.
func (r *ValidationResult) String() string {
	var sb strings.Builder
	if len(r.Errors) > 0 {
		sb.WriteString("Errors:\n")
		for _, e := range r.Errors {
			sb.WriteString("  - ")
			sb.WriteString(e.Error())
			sb.WriteString("\n")
		}
	}
	if len(r.Warnings) > 0 {
		sb.WriteString("Warnings:\n")
		for _, w := range r.Warnings {
			sb.WriteString("  - ")
			sb.WriteString(w.Error())
			sb.WriteString("\n")
		}
	}
	if !r.HasErrors() && !r.HasWarnings() {
		sb.WriteString("No issues found")
	}
	return sb.String()
}

func (r *ValidationResult) merge(o *ValidationResult) {
	r.Errors = append(r.Errors, o.Errors...)
	r.Warnings = append(r.Warnings, o.Warnings...)
}

// ValidateTable validates a single projected table.
func ValidateTable(p *Projection) *ValidationResult {
	result := &ValidationResult{}
	name := p.Name()

	if len(p.PrimaryKey) == 0 && p.Entity.IsTable() {
		result.Warnings = append(result.Warnings, &ValidationError{
			Table:   name,
			Message: "table has no primary key",
		})
	}

	result.Warnings = append(result.Warnings, droppedRefs(name, p.Entity, "", map[*gen.Entity]bool{})...)

	colNames := make(map[string]bool)
	for _, c := range p.All() {
		key := strings.ToLower(c.Name)
		if colNames[key] {
			result.Errors = append(result.Errors, &ValidationError{
				Table:   name,
				Column:  c.Name,
				Message: "duplicate column name",
			})
		}
		colNames[key] = true

		if c.Type == "" {
			result.Errors = append(result.Errors, &ValidationError{
				Table:   name,
				Column:  c.Name,
				Message: "column has no type",
			})
		}
	}

	for _, fk := range p.ForeignKeys {
		if fk.RefColumn == "" {
			result.Errors = append(result.Errors, &ValidationError{
				Table:   name,
				Column:  fk.Name,
				Message: fmt.Sprintf("foreign key to %q has no referenced column", fk.RefTable),
			})
		}
	}

	return result
}

// droppedRefs reports the references of e, including those of its
// embedded entities, to tables without a primary key. They project to no
// columns.
func droppedRefs(table string, e *gen.Entity, prefix string, seen map[*gen.Entity]bool) []*ValidationError {
	if seen[e] {
		return nil
	}
	seen[e] = true
	defer delete(seen, e)
	var warnings []*ValidationError
	for _, r := range e.Refs {
		t := r.Target
		switch {
		case t.Enum:
		case t.Embedded:
			warnings = append(warnings, droppedRefs(table, t, prefix+r.Name+".", seen)...)
		case !t.HasPrimaryKey():
			warnings = append(warnings, &ValidationError{
				Table:   table,
				Column:  prefix + r.Name,
				Message: fmt.Sprintf("reference to table %q without primary key has no columns", t.Name),
			})
		}
	}
	return warnings
}

// ValidateSchema validates all tables and the foreign keys between them.
func ValidateSchema(tables []*Projection) *ValidationResult {
	result := &ValidationResult{}

	byName := make(map[string]*Projection, len(tables))
	for _, p := range tables {
		if _, ok := byName[p.Name()]; ok {
			result.Errors = append(result.Errors, &ValidationError{
				Table:   p.Name(),
				Message: "duplicate table name",
			})
		}
		byName[p.Name()] = p
		result.merge(ValidateTable(p))
	}

	for _, p := range tables {
		for _, fk := range p.ForeignKeys {
			target, ok := byName[fk.RefTable]
			if !ok {
				result.Errors = append(result.Errors, &ValidationError{
					Table:   p.Name(),
					Column:  fk.Name,
					Message: fmt.Sprintf("foreign key references non-existent table %q", fk.RefTable),
				})
				continue
			}
			ref, ok := target.Column(fk.RefColumn)
			if !ok {
				result.Errors = append(result.Errors, &ValidationError{
					Table:   p.Name(),
					Column:  fk.Name,
					Message: fmt.Sprintf("foreign key references non-existent column %s.%s", fk.RefTable, fk.RefColumn),
				})
				continue
			}
			if ref.Type != fk.Type {
				result.Warnings = append(result.Warnings, &ValidationError{
					Table:   p.Name(),
					Column:  fk.Name,
					Message: fmt.Sprintf("column type %s differs from referenced %s.%s type %s", fk.Type, fk.RefTable, fk.RefColumn, ref.Type),
				})
			}
		}
	}

	return result
}
