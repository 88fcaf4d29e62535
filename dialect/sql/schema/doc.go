// Package schema flattens resolved entities into typed columns and
// renders their CREATE TABLE statements.
//
// # Projection
//
// Project turns an entity into a Projection holding three column lists:
// primary key, other columns, and foreign keys. The statement order of
// the columns is always in that order, see Projection.All.
//
//	p, err := schema.Project(entity, dialect.PostgresTypes{})
//	if err != nil {
//	    return err
//	}
//	ddl, err := schema.CreateTable(p)
//
// Embedded entities are flattened into their owner with a "<field>_"
// prefix, enumerations become one column, and references to other
// tables become one foreign-key column per target primary-key field.
//
// # Validation
//
// ValidateTable and ValidateSchema report duplicated columns, missing
// types and dangling foreign keys before any text is rendered:
//
//	result := schema.ValidateSchema(projections)
//	if result.HasErrors() {
//	    log.Fatal(result)
//	}
//
// # Atlas
//
// ToAtlas converts projections into an ariga.io/atlas schema, so the
// generated tables can be inspected, diffed or planned by Atlas tooling.
package schema
