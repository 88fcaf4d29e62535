package schema

import (
	"fmt"
	"strings"

	"github.com/syssam/sqlforge/compiler/gen"
)

const indent = "    "

// CreateTable returns the CREATE TABLE statement of p, one line per
// column or constraint:
//
//	CREATE TABLE IF NOT EXISTS Brand (
//	    brand_id VARCHAR(30) PRIMARY KEY,
//	    name VARCHAR(50) NOT NULL,
//	    description TEXT NULL
//	);
//
// A single primary-key column is marked inline. A composite key is
// declared by a PRIMARY KEY line after the columns instead. Every
// foreign-key column gets its own FOREIGN KEY line.
func CreateTable(p *Projection) (string, error) {
	lines := []string{fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (", p.Name())}
	for _, c := range p.All() {
		if c.Type == "" {
			return "", gen.NewGenerationError("table", p.Name(), fmt.Sprintf("column %q has no type", c.Name), nil)
		}
	}
	single := len(p.PrimaryKey) == 1
	for _, c := range p.PrimaryKey {
		if single {
			lines = append(lines, fmt.Sprintf("%s%s %s PRIMARY KEY,", indent, c.Name, c.Type))
		} else {
			lines = append(lines, fmt.Sprintf("%s%s %s,", indent, c.Name, c.Type))
		}
	}
	for _, c := range p.NonKey() {
		lines = append(lines, fmt.Sprintf("%s%s %s %s,", indent, c.Name, c.Type, nullability(c)))
	}
	if len(p.PrimaryKey) > 1 {
		names := make([]string, len(p.PrimaryKey))
		for i, c := range p.PrimaryKey {
			names[i] = c.Name
		}
		lines = append(lines, fmt.Sprintf("%sPRIMARY KEY (%s),", indent, strings.Join(names, ", ")))
	}
	for _, c := range p.ForeignKeys {
		lines = append(lines, fmt.Sprintf("%sFOREIGN KEY (%s) REFERENCES %s (%s),", indent, c.Name, c.RefTable, c.RefColumn))
	}
	last := len(lines) - 1
	lines[last] = strings.TrimSuffix(lines[last], ",")
	lines = append(lines, ");")
	return strings.Join(lines, "\n"), nil
}

func nullability(c *Column) string {
	if c.Required {
		return "NOT NULL"
	}
	return "NULL"
}
