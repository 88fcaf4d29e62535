// Package sql renders the parameterized CRUD statements of projected
// entities.
//
// Statements never quote identifiers and never interpolate values: every
// value is a named parameter whose name is the column name prefixed by
// the parameter marker ("@" by default).
//
// # Statements
//
// For a projection with primary key brand_id and columns name and
// description:
//
//	c, err := sql.NewCommands(p)
//
//	c.Get()    // SELECT brand_id, name, description FROM Brand WHERE brand_id = @brand_id;
//	c.List()   // SELECT ... WHERE <filter> ORDER BY brand_id ASC LIMIT @limit OFFSET @offset;
//	c.Create() // INSERT INTO Brand (brand_id, name, description) VALUES(@brand_id, @name, @description);
//	c.Update() // UPDATE Brand  SET name = @name, description = @description WHERE brand_id = @brand_id;
//	c.Delete() // DELETE FROM Brand WHERE brand_id = @brand_id;
//
// Columns are always listed as primary key, other columns, then foreign
// keys. Statements of entities without a primary key have no WHERE
// clause.
//
// # List Filters
//
// LIST statements take one set parameter per primary-key and foreign-key
// column, named after the plural of the column. An empty set disables the
// filter on that column. The ListFilter decides how the set is matched:
//
//   - AnyArray: PostgreSQL arrays, (cardinality(@ids) = 0 OR id = ANY(@ids))
//   - JSONEach: SQLite JSON arrays, using json_each
//   - JSONMember: MySQL JSON arrays, using MEMBER OF
//   - LegacyAny: the (@ids = {} OR ids = ANY(@ids)) template form
//
// DialectFilter picks the filter matching a SQL dialect.
package sql
