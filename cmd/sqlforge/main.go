// sqlforge generates SQL tables and CRUD statements from a JSON Schema
// document.
//
//	sqlforge -schema store.json -dialect sqlite -out db
//	sqlforge -config sqlforge.yaml -watch
//
// With -snapshot, the resolved schema graph is saved to the given file.
// When no schema is given, the graph is loaded from the snapshot instead.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fsnotify/fsnotify"

	"github.com/syssam/sqlforge/compiler/gen"
	"github.com/syssam/sqlforge/compiler/gen/sql"
	"github.com/syssam/sqlforge/compiler/load"
)

// debounce is the quiet period after a schema change before regenerating.
const debounce = 100 * time.Millisecond

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := cli(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "sqlforge: %v\n", err)
		os.Exit(1)
	}
}

func cli(ctx context.Context, args []string) error {
	var (
		fl         = defaults()
		configPath string
		watch      bool
		verbose    bool
		fs         = flag.NewFlagSet("sqlforge", flag.ContinueOnError)
	)
	fs.StringVar(&configPath, "config", "", "YAML configuration file")
	fs.StringVar(&fl.Schema, "schema", "", "JSON Schema document")
	fs.StringVar(&fl.Snapshot, "snapshot", "", "schema graph snapshot file")
	fs.StringVar(&fl.Out, "out", fl.Out, "output directory")
	fs.StringVar(&fl.Dialect, "dialect", fl.Dialect, "SQL dialect: postgres, mysql or sqlite")
	fs.StringVar(&fl.Marker, "marker", "", "statement parameter marker (default @)")
	fs.StringVar(&fl.Filter, "filter", "", "LIST filter: any, json, member or legacy")
	fs.StringVar(&fl.PrimaryKey, "pk", fl.PrimaryKey, "primary key policy: required or optional")
	fs.IntVar(&fl.Workers, "workers", 0, "entities rendered in parallel")
	fs.BoolVar(&watch, "watch", false, "regenerate when the schema changes")
	fs.BoolVar(&verbose, "v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	c, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	c.override(fs, fl)

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(ctx, c, logger); err != nil {
		if !watch {
			return err
		}
		logger.Error("generation failed", "error", err)
	}
	if watch {
		return watchSchema(ctx, c, logger)
	}
	return nil
}

// run resolves the schema graph and writes the generated files.
func run(ctx context.Context, c *config, logger *slog.Logger) error {
	g, err := graph(c, logger)
	if err != nil {
		return err
	}
	opts, err := c.generateOptions()
	if err != nil {
		return err
	}
	files, err := sql.Generate(ctx, g, append(opts, sql.WithLogger(logger))...)
	if err != nil {
		return err
	}
	w := gen.NewWriter(c.Out)
	if c.Workers > 0 {
		w = w.WithWorkers(c.Workers)
	}
	if err := w.Write(ctx, files); err != nil {
		return err
	}
	m := w.Metrics()
	logger.Info("generated", "out", c.Out, "files", m.FilesWritten, "bytes", m.TotalBytes)
	return nil
}

// graph builds the schema graph from the schema document, saving a
// snapshot when one is configured, or loads it from the snapshot alone.
func graph(c *config, logger *slog.Logger) (*gen.Graph, error) {
	ropts, err := c.resolverOptions()
	if err != nil {
		return nil, err
	}
	cfg, err := gen.NewConfig(append(ropts, gen.WithLogger(logger))...)
	if err != nil {
		return nil, err
	}
	if c.Schema == "" {
		if c.Snapshot == "" {
			return nil, load.ErrNoSource
		}
		data, err := os.ReadFile(c.Snapshot)
		if err != nil {
			return nil, err
		}
		logger.Debug("loaded snapshot", "path", c.Snapshot)
		return gen.UnmarshalGraph(cfg, data)
	}
	doc, err := load.Load(load.Source{Path: c.Schema})
	if err != nil {
		return nil, err
	}
	g, err := gen.NewGraph(cfg, doc)
	if err != nil {
		return nil, err
	}
	if c.Snapshot != "" {
		data, err := g.MarshalMsgpack()
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(c.Snapshot, data, 0o644); err != nil {
			return nil, err
		}
		logger.Debug("saved snapshot", "path", c.Snapshot, "bytes", len(data))
	}
	return g, nil
}

// watchSchema regenerates the output whenever the content of the schema
// file changes, until ctx is done.
func watchSchema(ctx context.Context, c *config, logger *slog.Logger) error {
	if c.Schema == "" {
		return errors.New("-watch requires a schema document")
	}
	target, err := filepath.Abs(c.Schema)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	// Watch the directory to see files replaced on save.
	if err := w.Add(filepath.Dir(target)); err != nil {
		return err
	}
	logger.Info("watching", "schema", c.Schema)

	var last uint64
	if data, err := os.ReadFile(target); err == nil {
		last = xxhash.Sum64(data)
	}
	timer := time.NewTimer(debounce)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			timer.Reset(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		case <-timer.C:
			data, err := os.ReadFile(target)
			if err != nil {
				logger.Warn("read schema", "error", err)
				continue
			}
			sum := xxhash.Sum64(data)
			if sum == last {
				logger.Debug("schema unchanged", "schema", c.Schema)
				continue
			}
			last = sum
			if err := run(ctx, c, logger); err != nil {
				logger.Error("generation failed", "error", err)
			}
		}
	}
}
