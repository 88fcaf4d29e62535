package sql

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"runtime"
	"strings"

	"ariga.io/atlas/sql/migrate"
	"golang.org/x/sync/errgroup"

	"github.com/syssam/sqlforge/compiler/gen"
	"github.com/syssam/sqlforge/dialect"
	"github.com/syssam/sqlforge/dialect/sql"
	"github.com/syssam/sqlforge/dialect/sql/schema"
)

// InitFile is the name of the file holding the DDL of all tables.
const InitFile = "init.sql"

// Option configures Generate.
type Option func(*generator) error

// WithDialect sets the SQL dialect of the generated text. It selects the
// type mapper and the LIST filter of the dialect, unless they are set
// with WithMapper or WithListFilter.
func WithDialect(name string) Option {
	return func(g *generator) error {
		m, err := dialect.ForName(name)
		if err != nil {
			return gen.NewConfigError("dialect", name, err.Error())
		}
		if m.Name() == dialect.CSharp {
			return gen.NewConfigError("dialect", name, "not a SQL dialect")
		}
		g.dialect = m.Name()
		return nil
	}
}

// WithMapper sets the type mapper used for column types.
func WithMapper(m dialect.TypeMapper) Option {
	return func(g *generator) error {
		if m == nil {
			return gen.NewConfigError("mapper", nil, "type mapper cannot be nil")
		}
		g.mapper = m
		return nil
	}
}

// WithWorkers sets the number of entities rendered in parallel.
func WithWorkers(n int) Option {
	return func(g *generator) error {
		if n <= 0 {
			return gen.NewConfigError("workers", n, "must be positive")
		}
		g.workers = n
		return nil
	}
}

// WithParamMarker sets the statement parameter prefix.
func WithParamMarker(marker string) Option {
	return func(g *generator) error {
		if marker == "" {
			return gen.NewConfigError("param-marker", marker, "parameter marker cannot be empty")
		}
		g.commandOpts = append(g.commandOpts, sql.WithParamMarker(marker))
		return nil
	}
}

// WithListFilter sets the LIST filter, overriding the dialect default.
func WithListFilter(f sql.ListFilter) Option {
	return func(g *generator) error {
		if f == nil {
			return gen.NewConfigError("list-filter", nil, "list filter cannot be nil")
		}
		g.filter = f
		return nil
	}
}

// WithMigration also emits the DDL as the versioned migration file
// "<dir>/<version>_init.sql", along with the atlas.sum integrity file
// of the directory. The tables are first converted to an Atlas schema,
// failing the generation on column types Atlas cannot parse.
func WithMigration(dir, version string) Option {
	return func(g *generator) error {
		if dir == "" || version == "" {
			return gen.NewConfigError("migration", dir+":"+version, "directory and version are required")
		}
		g.migrationDir, g.migrationVersion = dir, version
		return nil
	}
}

// WithLogger sets the generation logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *generator) error {
		if l == nil {
			return gen.NewConfigError("logger", nil, "logger cannot be nil")
		}
		g.logger = l
		return nil
	}
}

type generator struct {
	dialect          string
	mapper           dialect.TypeMapper
	filter           sql.ListFilter
	commandOpts      []sql.Option
	workers          int
	migrationDir     string
	migrationVersion string
	logger           *slog.Logger
}

// table holds the rendered text of one entity.
type table struct {
	p    *schema.Projection
	ddl  string
	file *gen.File
}

// Generate renders, for every table of g, a "<entity>.sql" file holding
// its CREATE TABLE statement followed by its CRUD statements, and an
// init.sql file with the DDL of all tables in graph order.
//
// Entities are projected and rendered in parallel. The projections are
// validated together before any text is rendered, so a foreign key to an
// unknown table fails the whole generation.
func Generate(ctx context.Context, g *gen.Graph, opts ...Option) ([]*gen.File, error) {
	gn := &generator{
		dialect: dialect.Postgres,
		workers: runtime.GOMAXPROCS(0),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	if g.Config != nil && g.Logger != nil {
		gn.logger = g.Logger
	}
	for _, opt := range opts {
		if err := opt(gn); err != nil {
			return nil, err
		}
	}
	if gn.mapper == nil {
		gn.mapper, _ = dialect.ForName(gn.dialect)
	}
	if gn.filter == nil {
		gn.filter = sql.DialectFilter(gn.dialect)
	}
	gn.commandOpts = append(gn.commandOpts, sql.WithListFilter(gn.filter))

	entities := g.Tables()
	tables := make([]*table, len(entities))

	eg, ectx := errgroup.WithContext(ctx)
	eg.SetLimit(gn.workers)
	for i, e := range entities {
		eg.Go(func() error {
			if err := ectx.Err(); err != nil {
				return err
			}
			p, err := schema.Project(e, gn.mapper)
			if err != nil {
				return err
			}
			tables[i] = &table{p: p}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	projections := make([]*schema.Projection, len(tables))
	for i, t := range tables {
		projections[i] = t.p
	}
	result := schema.ValidateSchema(projections)
	for _, w := range result.Warnings {
		gn.logger.Warn("schema validation", "table", w.Table, "column", w.Column, "warning", w.Message)
	}
	if err := result.Err(); err != nil {
		ve := err.(*schema.ValidationError)
		return nil, &gen.ValidationError{Entity: ve.Table, Field: ve.Column, Message: ve.Message, Cause: err}
	}
	if gn.migrationDir != "" {
		// Migration files are replayed by Atlas, so every column type
		// must parse in the target dialect.
		s, err := schema.ToAtlas(path.Base(gn.migrationDir), gn.dialect, projections...)
		if err != nil {
			return nil, err
		}
		gn.logger.Debug("checked migration schema", "schema", s.Name, "tables", len(s.Tables))
	}

	eg, ectx = errgroup.WithContext(ctx)
	eg.SetLimit(gn.workers)
	for _, t := range tables {
		eg.Go(func() error {
			if err := ectx.Err(); err != nil {
				return err
			}
			return gn.render(t)
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	files := make([]*gen.File, 0, len(tables)+3)
	ddl := make([]string, len(tables))
	for i, t := range tables {
		files = append(files, t.file)
		ddl[i] = t.ddl
	}
	initSQL := []byte(strings.Join(ddl, "\n\n") + "\n")
	files = append(files, &gen.File{Name: InitFile, Content: initSQL})
	if gn.migrationDir != "" {
		mf, err := gn.migration(initSQL)
		if err != nil {
			return nil, err
		}
		files = append(files, mf...)
	}
	gn.logger.Debug("generated sql", "dialect", gn.mapper.Name(), "tables", len(tables), "files", len(files))
	return files, nil
}

func (gn *generator) render(t *table) error {
	ddl, err := schema.CreateTable(t.p)
	if err != nil {
		return err
	}
	cmds, err := sql.NewCommands(t.p, gn.commandOpts...)
	if err != nil {
		return err
	}
	name := t.p.Name()
	var b strings.Builder
	fmt.Fprintf(&b, "-- %s\n%s\n", name, ddl)
	for _, stmt := range []struct{ op, text string }{
		{"Get", cmds.Get()},
		{"List", cmds.List()},
		{"Create", cmds.Create()},
		{"Update", cmds.Update()},
		{"Delete", cmds.Delete()},
	} {
		if stmt.text == "" {
			continue
		}
		fmt.Fprintf(&b, "\n-- name: %s%s\n%s\n", stmt.op, name, stmt.text)
	}
	t.ddl = ddl
	t.file = &gen.File{Name: name + ".sql", Content: []byte(b.String())}
	gn.logger.Debug("rendered table", "table", name, "columns", len(t.p.All()))
	return nil
}

// migration returns the versioned migration file and its atlas.sum.
func (gn *generator) migration(ddl []byte) ([]*gen.File, error) {
	name := gn.migrationVersion + "_init.sql"
	sum, err := migrate.NewHashFile([]migrate.File{migrate.NewLocalFile(name, ddl)})
	if err != nil {
		return nil, gen.NewGenerationError("migration", "", "compute checksum", err)
	}
	text, err := sum.MarshalText()
	if err != nil {
		return nil, gen.NewGenerationError("migration", "", "encode checksum", err)
	}
	return []*gen.File{
		{Name: path.Join(gn.migrationDir, name), Content: ddl},
		{Name: path.Join(gn.migrationDir, migrate.HashFileName), Content: text},
	}, nil
}
