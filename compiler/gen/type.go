package gen

import (
	"math/big"
	"slices"

	"github.com/syssam/sqlforge/schema/field"
)

// The following types are the resolved representation of a schema
// document, consumed by the projection and generation packages.
type (
	// Graph holds the resolved entities of one schema document.
	// It is read-only once NewGraph returns.
	Graph struct {
		*Config
		// Entities holds all entities in resolution order: definitions in
		// declaration order, followed by inline entities as they are discovered.
		Entities []*Entity
		entities map[string]*Entity
	}

	// Entity represents one definition of the schema: a table, an
	// embedded value object, or an enumeration.
	Entity struct {
		// Name holds the definition name.
		Name string
		// Fields holds the scalar fields that are not part of the primary key.
		Fields []*Field
		// Refs holds the fields whose value is another entity.
		Refs []*Ref
		// PrimaryKey holds the primary-key fields in declaration order.
		PrimaryKey []*Field
		// Enum reports if the definition declares a value set.
		Enum       bool
		EnumValues []any
		// Embedded reports if the entity is flattened into its owners.
		Embedded bool
		// Root reports if the entity was built from the document's own
		// title or $id.
		Root bool
		// Container is the keyword the entity was declared in. It is empty
		// for the root entity and for inline objects.
		Container string
	}

	// Field holds a scalar property of an entity.
	Field struct {
		Name       string
		Kind       field.Kind
		Format     field.Format
		MaxLength  *field.Length
		MinLength  int64
		Minimum    *big.Float
		Maximum    *big.Float
		Required   bool
		PrimaryKey bool
		Enum       bool
		EnumValues []any
	}

	// Ref holds a property whose value is another entity. Target is shared
	// between all references to the same definition.
	Ref struct {
		Name     string
		Required bool
		Target   *Entity
		// Inline reports if the target was declared inline as an object
		// property rather than through a reference path.
		Inline bool
	}
)

// Entity returns the entity with the given name.
func (g *Graph) Entity(name string) (*Entity, bool) {
	e, ok := g.entities[name]
	return e, ok
}

// Tables returns the entities stored in their own table, that is,
// entities that are neither embedded nor enumerations.
func (g *Graph) Tables() []*Entity {
	tables := make([]*Entity, 0, len(g.Entities))
	for _, e := range g.Entities {
		if e.IsTable() {
			tables = append(tables, e)
		}
	}
	return tables
}

// Root returns the entity built from the document title, if any.
func (g *Graph) Root() *Entity {
	for _, e := range g.Entities {
		if e.Root {
			return e
		}
	}
	return nil
}

// IsTable reports if the entity is stored in its own table.
func (e *Entity) IsTable() bool {
	return !e.Embedded && !e.Enum
}

// HasPrimaryKey reports if the entity has at least one primary-key field.
func (e *Entity) HasPrimaryKey() bool {
	return len(e.PrimaryKey) > 0
}

// HasCompositePrimaryKey reports if the primary key spans several fields.
func (e *Entity) HasCompositePrimaryKey() bool {
	return len(e.PrimaryKey) > 1
}

// FieldByName returns the scalar field (primary key or not) with the given name.
func (e *Entity) FieldByName(name string) (*Field, bool) {
	for _, f := range slices.Concat(e.PrimaryKey, e.Fields) {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// RefByName returns the reference field with the given name.
func (e *Entity) RefByName(name string) (*Ref, bool) {
	for _, r := range e.Refs {
		if r.Name == name {
			return r, true
		}
	}
	return nil, false
}

// IsInteger reports if the field holds integer values.
func (f *Field) IsInteger() bool { return f.Kind == field.KindInteger }

// IsString reports if the field holds string values.
func (f *Field) IsString() bool { return f.Kind == field.KindString }

// FixedLength returns the length shared by all values of a string field:
// either equal minimum and maximum bounds, or a bounded maxLength equal
// to minLength.
func (f *Field) FixedLength() (int64, bool) {
	if f.Minimum != nil && f.Maximum != nil && f.Minimum.Cmp(f.Maximum) == 0 {
		if n, acc := f.Maximum.Int64(); acc == big.Exact && n > 0 {
			return n, true
		}
	}
	if f.MaxLength.Bounded() && f.MinLength == f.MaxLength.N {
		return f.MaxLength.N, true
	}
	return 0, false
}

// IsEmbedded reports if the reference flattens its target into the owner.
func (r *Ref) IsEmbedded() bool {
	return r.Target != nil && r.Target.Embedded
}

// IsEnum reports if the reference points to an enumeration.
func (r *Ref) IsEnum() bool {
	return r.Target != nil && r.Target.Enum
}
