package sql

import (
	"fmt"
	"strings"

	"github.com/go-openapi/inflect"

	"github.com/syssam/sqlforge/compiler/gen"
	"github.com/syssam/sqlforge/dialect/sql/schema"
)

// DefaultParamMarker prefixes every statement parameter.
const DefaultParamMarker = "@"

var rules = inflect.NewDefaultRuleset()

// Option configures a Commands generator.
type Option func(*Commands) error

// WithParamMarker sets the prefix of statement parameters, e.g. ":" or "$".
func WithParamMarker(marker string) Option {
	return func(c *Commands) error {
		if marker == "" {
			return gen.NewConfigError("param-marker", marker, "parameter marker cannot be empty")
		}
		c.marker = marker
		return nil
	}
}

// WithListFilter sets how LIST statements match a column against a set
// of values. The default is AnyArray.
func WithListFilter(f ListFilter) Option {
	return func(c *Commands) error {
		if f == nil {
			return gen.NewConfigError("list-filter", nil, "list filter cannot be nil")
		}
		c.filter = f
		return nil
	}
}

// WithLimitParam sets the name of the LIST page-size parameter.
func WithLimitParam(name string) Option {
	return func(c *Commands) error {
		if name == "" {
			return gen.NewConfigError("limit-param", name, "parameter name cannot be empty")
		}
		c.limit = name
		return nil
	}
}

// WithOffsetParam sets the name of the LIST page-offset parameter.
func WithOffsetParam(name string) Option {
	return func(c *Commands) error {
		if name == "" {
			return gen.NewConfigError("offset-param", name, "parameter name cannot be empty")
		}
		c.offset = name
		return nil
	}
}

// Commands renders the parameterized CRUD statements of one projected
// entity. Identifiers are not quoted and values are always parameters.
type Commands struct {
	p      *schema.Projection
	marker string
	filter ListFilter
	limit  string
	offset string
}

// NewCommands returns the statement generator of p.
func NewCommands(p *schema.Projection, opts ...Option) (*Commands, error) {
	c := &Commands{
		p:      p,
		marker: DefaultParamMarker,
		filter: AnyArray,
		limit:  "limit",
		offset: "offset",
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if len(p.All()) == 0 {
		return nil, gen.NewGenerationError("command", p.Name(), "entity has no columns", nil)
	}
	return c, nil
}

// Get returns the statement selecting one row by primary key:
//
//	SELECT brand_id, name FROM Brand WHERE brand_id = @brand_id;
//
// The WHERE clause is omitted when the entity has no primary key.
func (c *Commands) Get() string {
	return c.withKey(c.selectPart())
}

// List returns the statement selecting one page of rows, filtered by
// optional sets of primary-key and foreign-key values:
//
//	SELECT ... FROM Brand WHERE <filter> ORDER BY brand_id ASC LIMIT @limit OFFSET @offset;
//
// Set parameters are named after the plural of their column, e.g.
// "brand_ids". Rows are ordered by primary key, and the ORDER BY clause
// is omitted for entities without one.
func (c *Commands) List() string {
	var b strings.Builder
	b.WriteString(c.selectPart())
	filtered := c.filterColumns()
	if len(filtered) == 0 {
		b.WriteString(";")
		return b.String()
	}
	terms := make([]string, len(filtered))
	for i, col := range filtered {
		name := ListParam(col.Name)
		terms[i] = c.filter(FilterTerm{Column: col.Name, Name: name, Param: c.marker + name})
	}
	b.WriteString(" WHERE ")
	b.WriteString(strings.Join(terms, " AND "))
	if len(c.p.PrimaryKey) > 0 {
		order := make([]string, len(c.p.PrimaryKey))
		for i, col := range c.p.PrimaryKey {
			order[i] = col.Name + " ASC"
		}
		b.WriteString(" ORDER BY ")
		b.WriteString(strings.Join(order, ", "))
	}
	fmt.Fprintf(&b, " LIMIT %s%s OFFSET %s%s;", c.marker, c.limit, c.marker, c.offset)
	return b.String()
}

// Create returns the statement inserting one row:
//
//	INSERT INTO Brand (brand_id, name) VALUES(@brand_id, @name);
func (c *Commands) Create() string {
	cols := c.p.All()
	params := make([]string, len(cols))
	for i, col := range cols {
		params[i] = c.marker + col.Name
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES(%s);", c.p.Name(), joinNames(cols), strings.Join(params, ", "))
}

// Update returns the statement updating every non-key column of one row:
//
//	UPDATE Brand  SET name = @name WHERE brand_id = @brand_id;
//
// It returns an empty string when all columns belong to the primary key.
func (c *Commands) Update() string {
	cols := c.p.NonKey()
	if len(cols) == 0 {
		return ""
	}
	return c.withKey(fmt.Sprintf("UPDATE %s  SET %s", c.p.Name(), c.assign(cols, ", ")))
}

// Delete returns the statement deleting one row by primary key:
//
//	DELETE FROM Brand WHERE brand_id = @brand_id;
func (c *Commands) Delete() string {
	return c.withKey("DELETE FROM " + c.p.Name())
}

func (c *Commands) selectPart() string {
	return fmt.Sprintf("SELECT %s FROM %s", joinNames(c.p.All()), c.p.Name())
}

func (c *Commands) withKey(stmt string) string {
	if len(c.p.PrimaryKey) == 0 {
		return stmt + ";"
	}
	return stmt + " WHERE " + c.assign(c.p.PrimaryKey, " AND ") + ";"
}

func (c *Commands) assign(cols []*schema.Column, sep string) string {
	parts := make([]string, len(cols))
	for i, col := range cols {
		parts[i] = col.Name + " = " + c.marker + col.Name
	}
	return strings.Join(parts, sep)
}

func (c *Commands) filterColumns() []*schema.Column {
	cols := make([]*schema.Column, 0, len(c.p.PrimaryKey)+len(c.p.ForeignKeys))
	cols = append(cols, c.p.PrimaryKey...)
	return append(cols, c.p.ForeignKeys...)
}

func joinNames(cols []*schema.Column) string {
	names := make([]string, len(cols))
	for i, col := range cols {
		names[i] = col.Name
	}
	return strings.Join(names, ", ")
}

// ListParam returns the name of the LIST parameter holding the set of
// values of column.
func ListParam(column string) string {
	return rules.Pluralize(column)
}
