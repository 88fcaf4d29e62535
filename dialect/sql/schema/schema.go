package schema

import (
	"errors"
	"strings"

	"github.com/syssam/sqlforge/compiler/gen"
	"github.com/syssam/sqlforge/dialect"
)

// ErrEmbeddingCycle is returned when an embedded entity embeds itself,
// directly or through other embedded entities.
var ErrEmbeddingCycle = errors.New("sqlforge: embedding cycle")

// Column is a flattened, typed column of a projected entity.
type Column struct {
	Name string
	// Type is the type name returned by the mapper. Empty when the
	// projection was built without a mapper.
	Type     string
	Required bool
	// RefTable and RefColumn name the target of a foreign-key column.
	RefTable  string
	RefColumn string
}

// IsForeignKey reports if the column references another table.
func (c *Column) IsForeignKey() bool {
	return c.RefTable != ""
}

// Projection holds the columns of one entity, split by role.
type Projection struct {
	Entity      *gen.Entity
	PrimaryKey  []*Column
	Columns     []*Column
	ForeignKeys []*Column
}

// Name returns the table name of the projection.
func (p *Projection) Name() string {
	return p.Entity.Name
}

// All returns the columns in statement order: primary key, other
// columns, then foreign keys.
func (p *Projection) All() []*Column {
	all := make([]*Column, 0, len(p.PrimaryKey)+len(p.Columns)+len(p.ForeignKeys))
	all = append(all, p.PrimaryKey...)
	all = append(all, p.Columns...)
	return append(all, p.ForeignKeys...)
}

// NonKey returns the other and foreign-key columns.
func (p *Projection) NonKey() []*Column {
	return p.All()[len(p.PrimaryKey):]
}

// Column returns the column with the given name.
func (p *Projection) Column(name string) (*Column, bool) {
	for _, c := range p.All() {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Project flattens e into columns typed by m. A nil mapper leaves all
// column types empty.
//
// Scalar fields map one to one. References expand by the kind of their
// target:
//
//   - enumeration: one column named after the reference, typed by
//     m.EnumType
//   - embedded entity: the target's columns, prefixed by "<ref>_" unless
//     they already start with the reference or target name
//   - any other entity: one foreign-key column per target primary key,
//     named "<ref>_<pk>" with the same prefix rule
func Project(e *gen.Entity, m dialect.TypeMapper) (*Projection, error) {
	p := &Projection{Entity: e}
	pr := projector{mapper: m, path: []string{e.Name}}
	for _, f := range e.PrimaryKey {
		p.PrimaryKey = append(p.PrimaryKey, pr.scalar(f))
	}
	for _, f := range e.Fields {
		p.Columns = append(p.Columns, pr.scalar(f))
	}
	other, fks, err := pr.refs(e)
	if err != nil {
		return nil, err
	}
	p.Columns = append(p.Columns, other...)
	p.ForeignKeys = fks
	return p, nil
}

type projector struct {
	mapper dialect.TypeMapper
	// path holds the embedding chain from the projected entity.
	path []string
}

func (pr *projector) scalar(f *gen.Field) *Column {
	c := &Column{Name: f.Name, Required: f.Required}
	if pr.mapper != nil {
		c.Type = pr.mapper.FieldType(f)
	}
	return c
}

func (pr *projector) refs(e *gen.Entity) (other, fks []*Column, err error) {
	for _, r := range e.Refs {
		t := r.Target
		switch {
		case t.Enum:
			c := &Column{Name: r.Name, Required: r.Required}
			if pr.mapper != nil {
				c.Type = pr.mapper.EnumType(t)
			}
			other = append(other, c)
		case t.Embedded:
			o, f, err := pr.embed(r)
			if err != nil {
				return nil, nil, err
			}
			other = append(other, o...)
			fks = append(fks, f...)
		default:
			for _, pk := range t.PrimaryKey {
				c := pr.scalar(pk)
				c.Name = prefixed(r, pk.Name)
				c.Required = r.Required
				c.RefTable = t.Name
				c.RefColumn = pk.Name
				fks = append(fks, c)
			}
		}
	}
	return other, fks, nil
}

func (pr *projector) embed(r *gen.Ref) (other, fks []*Column, err error) {
	t := r.Target
	for _, name := range pr.path {
		if name == t.Name {
			chain := strings.Join(append(pr.path, t.Name), " -> ")
			return nil, nil, gen.NewGenerationError("project", pr.path[0], chain, ErrEmbeddingCycle)
		}
	}
	pr.path = append(pr.path, t.Name)
	defer func() { pr.path = pr.path[:len(pr.path)-1] }()

	for _, f := range t.PrimaryKey {
		other = append(other, pr.scalar(f))
	}
	for _, f := range t.Fields {
		other = append(other, pr.scalar(f))
	}
	o, fks, err := pr.refs(t)
	if err != nil {
		return nil, nil, err
	}
	other = append(other, o...)
	for _, c := range other {
		c.Name = prefixed(r, c.Name)
		c.Required = c.Required && r.Required
	}
	for _, c := range fks {
		c.Name = prefixed(r, c.Name)
		c.Required = c.Required && r.Required
	}
	return other, fks, nil
}

// prefixed returns "<ref>_<name>", unless name already starts with the
// reference name or its target name.
func prefixed(r *gen.Ref, name string) string {
	if hasPrefixFold(name, r.Name) || hasPrefixFold(name, r.Target.Name) {
		return name
	}
	return r.Name + "_" + name
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
