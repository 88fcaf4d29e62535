// Package gen resolves schema documents into an entity graph.
//
// # Architecture
//
// The generation pipeline follows this flow:
//
//	Schema document (JSON or YAML)
//	        ↓
//	   load.Object (ordered document)
//	        ↓
//	   Graph (entities, fields, references)
//	        ↓
//	   schema.Projection (per entity, per TypeMapper)
//	        ↓
//	   DDL and CRUD statements (compiler/gen/sql)
//
// # Resolution
//
// NewGraph walks every definitions container ("definitions" and "$defs" by
// default) before the document's own properties. Each container is resolved
// in two passes: the first creates an empty Entity per member, the second
// fills in its fields. References are looked up by name only after the whole
// document was walked, so forward and self references need no special care.
//
// Properties typed "object" become inline embedded entities named after the
// property. Reference paths must have the shape "#/<container>/<name>".
//
// When no property is marked with the primary-key keyword, the first scalar
// field named "id", "<entity>_id" or "<entity>id" (case-insensitively, in
// that order) becomes the primary key.
//
// # Key Types
//
//   - Graph: all entities of one document, in resolution order
//   - Entity: a table, an embedded value object or an enumeration
//   - Field: a scalar property with its kind, format and bounds
//   - Ref: a property whose value is another entity
//   - Config: resolver configuration built from Option values
//
// # Error Handling
//
// The package uses structured error types:
//
//   - SchemaError: unknown kinds or formats, invalid primary keys
//   - RefError: malformed or unresolved reference paths
//   - ValidationError: table entities without a primary key
//   - ConfigError: invalid options
//   - GenerationError: failures while rendering or writing artifacts
//
// Example error handling:
//
//	g, err := gen.NewGraph(cfg, doc)
//	if errors.Is(err, gen.ErrInvalidRef) {
//	    var refErr *gen.RefError
//	    errors.As(err, &refErr)
//	    log.Fatalf("bad reference in %s.%s", refErr.From, refErr.Field)
//	}
package gen
