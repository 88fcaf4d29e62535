package schema

import (
	"fmt"
	"strings"

	"ariga.io/atlas/sql/mysql"
	"ariga.io/atlas/sql/postgres"
	atlas "ariga.io/atlas/sql/schema"
	"ariga.io/atlas/sql/sqlite"

	"github.com/syssam/sqlforge/compiler/gen"
	"github.com/syssam/sqlforge/dialect"
)

var typeParsers = map[string]func(string) (atlas.Type, error){
	dialect.Postgres: postgres.ParseType,
	dialect.MySQL:    mysql.ParseType,
	dialect.SQLite:   sqlite.ParseType,
}

// ToAtlas converts projections into an Atlas schema named name, parsing
// column types with the parser of the given SQL dialect. Foreign keys
// must reference tables among ps.
//
// The result can be diffed against an inspected database or rendered
// by any Atlas driver.
func ToAtlas(name, dialectName string, ps ...*Projection) (*atlas.Schema, error) {
	parse, ok := typeParsers[strings.ToLower(dialectName)]
	if !ok {
		return nil, gen.NewConfigError("dialect", dialectName, "no Atlas type parser for dialect")
	}
	s := atlas.New(name)
	tables := make(map[string]*atlas.Table, len(ps))
	for _, p := range ps {
		t := atlas.NewTable(p.Name())
		for _, c := range p.All() {
			typ, err := parse(strings.ToLower(c.Type))
			if err != nil {
				return nil, gen.NewGenerationError("atlas", p.Name(), fmt.Sprintf("column %q", c.Name), err)
			}
			col := atlas.NewColumn(c.Name).SetType(typ)
			col.SetNull(!c.Required && !isKey(p, c))
			t.AddColumns(col)
		}
		if len(p.PrimaryKey) > 0 {
			cols := make([]*atlas.Column, len(p.PrimaryKey))
			for i, c := range p.PrimaryKey {
				cols[i], _ = t.Column(c.Name)
			}
			t.SetPrimaryKey(atlas.NewPrimaryKey(cols...))
		}
		tables[p.Name()] = t
		s.AddTables(t)
	}
	for _, p := range ps {
		t := tables[p.Name()]
		for _, c := range p.ForeignKeys {
			ref, ok := tables[c.RefTable]
			if !ok {
				return nil, gen.NewGenerationError("atlas", p.Name(), fmt.Sprintf("foreign key %q references unknown table %q", c.Name, c.RefTable), nil)
			}
			refCol, ok := ref.Column(c.RefColumn)
			if !ok {
				return nil, gen.NewGenerationError("atlas", p.Name(), fmt.Sprintf("foreign key %q references unknown column %s.%s", c.Name, c.RefTable, c.RefColumn), nil)
			}
			col, _ := t.Column(c.Name)
			fk := atlas.NewForeignKey(fmt.Sprintf("%s_%s_fkey", p.Name(), c.Name)).
				AddColumns(col).
				SetRefTable(ref).
				AddRefColumns(refCol)
			t.AddForeignKeys(fk)
		}
	}
	return s, nil
}

func isKey(p *Projection, c *Column) bool {
	for _, pk := range p.PrimaryKey {
		if pk == c {
			return true
		}
	}
	return false
}
