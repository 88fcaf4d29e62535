package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/syssam/sqlforge/compiler/gen"
	"github.com/syssam/sqlforge/compiler/gen/sql"
	"github.com/syssam/sqlforge/dialect"
	dsql "github.com/syssam/sqlforge/dialect/sql"
)

// config is the sqlforge.yaml file. Command-line flags override it.
type config struct {
	Schema     string `yaml:"schema"`
	Snapshot   string `yaml:"snapshot"`
	Out        string `yaml:"out"`
	Dialect    string `yaml:"dialect"`
	Marker     string `yaml:"marker"`
	Filter     string `yaml:"filter"`
	Workers    int    `yaml:"workers"`
	PrimaryKey string `yaml:"primary_key"`

	Containers         []string `yaml:"containers"`
	EmbeddedContainers []string `yaml:"embedded_containers"`

	Migration struct {
		Dir     string `yaml:"dir"`
		Version string `yaml:"version"`
	} `yaml:"migration"`
}

func defaults() *config {
	return &config{
		Out:        "db",
		Dialect:    dialect.Postgres,
		PrimaryKey: gen.PrimaryKeyRequired.String(),
	}
}

// loadConfig reads the YAML file at path over the defaults. An empty path
// returns the defaults.
func loadConfig(path string) (*config, error) {
	c := defaults()
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// override copies into c the fields of fl whose flag was set on the
// command line.
func (c *config) override(fs *flag.FlagSet, fl *config) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "schema":
			c.Schema = fl.Schema
		case "snapshot":
			c.Snapshot = fl.Snapshot
		case "out":
			c.Out = fl.Out
		case "dialect":
			c.Dialect = fl.Dialect
		case "marker":
			c.Marker = fl.Marker
		case "filter":
			c.Filter = fl.Filter
		case "pk":
			c.PrimaryKey = fl.PrimaryKey
		case "workers":
			c.Workers = fl.Workers
		}
	})
}

// resolverOptions returns the options of the schema resolver.
func (c *config) resolverOptions() ([]gen.Option, error) {
	var opts []gen.Option
	switch strings.ToLower(c.PrimaryKey) {
	case "", gen.PrimaryKeyRequired.String():
		opts = append(opts, gen.WithPrimaryKeyPolicy(gen.PrimaryKeyRequired))
	case gen.PrimaryKeyOptional.String():
		opts = append(opts, gen.WithPrimaryKeyPolicy(gen.PrimaryKeyOptional))
	default:
		return nil, gen.NewConfigError("primary_key", c.PrimaryKey, "use required or optional")
	}
	if len(c.Containers) > 0 {
		opts = append(opts, gen.WithContainers(c.Containers...))
	}
	if c.EmbeddedContainers != nil {
		opts = append(opts, gen.WithEmbeddedContainers(c.EmbeddedContainers...))
	}
	return opts, nil
}

// generateOptions returns the options of the SQL generator.
func (c *config) generateOptions() ([]sql.Option, error) {
	opts := []sql.Option{sql.WithDialect(c.Dialect)}
	if c.Marker != "" {
		opts = append(opts, sql.WithParamMarker(c.Marker))
	}
	if c.Filter != "" {
		f, err := dsql.FilterForName(c.Filter)
		if err != nil {
			return nil, gen.NewConfigError("filter", c.Filter, err.Error())
		}
		opts = append(opts, sql.WithListFilter(f))
	}
	if c.Workers != 0 {
		opts = append(opts, sql.WithWorkers(c.Workers))
	}
	if c.Migration.Dir != "" || c.Migration.Version != "" {
		opts = append(opts, sql.WithMigration(c.Migration.Dir, c.Migration.Version))
	}
	return opts, nil
}
