// Package sql generates the SQL artifacts of a resolved schema graph.
//
// # Generated Files
//
// Generate returns one file per table entity, in graph order, followed by
// the DDL of the whole schema:
//
//	{output}/
//	├── Brand.sql          # CREATE TABLE + Get/List/Create/Update/Delete
//	├── product.sql
//	├── ...
//	├── init.sql           # every CREATE TABLE statement
//	└── migrations/        # (with WithMigration)
//	    ├── {version}_init.sql
//	    └── atlas.sum
//
// Embedded and enumeration entities have no file of their own: their
// columns are flattened into the tables that reference them.
//
// Each statement of an entity file is preceded by a "-- name: <Op><Entity>"
// comment, so query-binding tools can pick them up.
//
// # Usage
//
//	files, err := sql.Generate(ctx, graph,
//	    sql.WithDialect(dialect.SQLite),
//	    sql.WithWorkers(4),
//	)
//	if err != nil {
//	    return err
//	}
//	return gen.NewWriter("db").Write(ctx, files)
//
// # Parallelism
//
// Entities are projected and rendered concurrently with errgroup, bounded
// by WithWorkers. The output order does not depend on scheduling.
package sql
