package gen

import (
	"io"
	"log/slog"
	"slices"
)

// Default keywords recognized in schema documents.
const (
	// DefaultPrimaryKeyKeyword is the extension keyword marking a property as primary key.
	DefaultPrimaryKeyKeyword = "primaryKey"
)

// DefaultContainers are the definition container keywords walked by default.
var DefaultContainers = []string{"definitions", "$defs"}

// DefaultEmbeddedContainers are the containers whose members are value
// objects flattened into their owners rather than tables.
var DefaultEmbeddedContainers = []string{"$defs"}

// PrimaryKeyPolicy decides what happens to an entity that ends up with
// no primary key after explicit marking and inference.
type PrimaryKeyPolicy uint8

const (
	// PrimaryKeyRequired rejects table entities without a primary key.
	// Embedded and enum entities are never checked.
	PrimaryKeyRequired PrimaryKeyPolicy = iota
	// PrimaryKeyOptional accepts entities without a primary key.
	PrimaryKeyOptional
)

// String returns the policy name.
func (p PrimaryKeyPolicy) String() string {
	switch p {
	case PrimaryKeyRequired:
		return "required"
	case PrimaryKeyOptional:
		return "optional"
	default:
		return "invalid"
	}
}

// Config holds the resolver configuration.
type Config struct {
	// Containers lists the definition container keywords, in visiting order.
	Containers []string
	// EmbeddedContainers lists the containers whose members are embedded.
	EmbeddedContainers []string
	// PrimaryKeyKeyword is the property keyword marking an explicit primary key.
	PrimaryKeyKeyword string
	// PrimaryKeyPolicy controls entities without a primary key.
	PrimaryKeyPolicy PrimaryKeyPolicy
	// Logger receives debug records emitted during resolution.
	Logger *slog.Logger
}

func defaultConfig() *Config {
	return &Config{
		Containers:         slices.Clone(DefaultContainers),
		EmbeddedContainers: slices.Clone(DefaultEmbeddedContainers),
		PrimaryKeyKeyword:  DefaultPrimaryKeyKeyword,
		PrimaryKeyPolicy:   PrimaryKeyRequired,
		Logger:             slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func (c *Config) isEmbeddedContainer(kw string) bool {
	return slices.Contains(c.EmbeddedContainers, kw)
}
