package sql

import (
	"testing"

	"github.com/syssam/sqlforge/compiler/gen"
	"github.com/syssam/sqlforge/dialect"
	"github.com/syssam/sqlforge/dialect/sql/schema"
	"github.com/syssam/sqlforge/internal/fixture"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commands(t *testing.T, name string, opts ...Option) *Commands {
	t.Helper()
	p, err := schema.Project(fixture.Entity(t, fixture.Graph(t), name), dialect.PostgresTypes{})
	require.NoError(t, err)
	c, err := NewCommands(p, opts...)
	require.NoError(t, err)
	return c
}

func TestCommandsBrand(t *testing.T) {
	c := commands(t, "Brand", WithListFilter(LegacyAny))

	assert.Equal(t, "SELECT brand_id, name, description FROM Brand WHERE brand_id = @brand_id;", c.Get())
	assert.Equal(t, "SELECT brand_id, name, description FROM Brand WHERE (@brand_ids = {} OR brand_ids = ANY(@brand_ids)) ORDER BY brand_id ASC LIMIT @limit OFFSET @offset;", c.List())
	assert.Equal(t, "INSERT INTO Brand (brand_id, name, description) VALUES(@brand_id, @name, @description);", c.Create())
	assert.Equal(t, "UPDATE Brand  SET name = @name, description = @description WHERE brand_id = @brand_id;", c.Update())
	assert.Equal(t, "DELETE FROM Brand WHERE brand_id = @brand_id;", c.Delete())
}

func TestCommandsForeignKeys(t *testing.T) {
	c := commands(t, "product")

	assert.Equal(t, "SELECT productid, name, description, price, quantity, brand_id, category_id FROM product WHERE productid = @productid;", c.Get())
	assert.Equal(t, "SELECT productid, name, description, price, quantity, brand_id, category_id FROM product"+
		" WHERE (cardinality(@productids) = 0 OR productid = ANY(@productids))"+
		" AND (cardinality(@brand_ids) = 0 OR brand_id = ANY(@brand_ids))"+
		" AND (cardinality(@category_ids) = 0 OR category_id = ANY(@category_ids))"+
		" ORDER BY productid ASC LIMIT @limit OFFSET @offset;", c.List())
	assert.Equal(t, "INSERT INTO product (productid, name, description, price, quantity, brand_id, category_id) VALUES(@productid, @name, @description, @price, @quantity, @brand_id, @category_id);", c.Create())
	assert.Equal(t, "UPDATE product  SET name = @name, description = @description, price = @price, quantity = @quantity, brand_id = @brand_id, category_id = @category_id WHERE productid = @productid;", c.Update())
	assert.Equal(t, "DELETE FROM product WHERE productid = @productid;", c.Delete())
}

func TestCommandsWithoutKey(t *testing.T) {
	c := commands(t, "address")

	assert.Equal(t, "SELECT street_address, city, state FROM address;", c.Get())
	assert.Equal(t, "SELECT street_address, city, state FROM address;", c.List())
	assert.Equal(t, "INSERT INTO address (street_address, city, state) VALUES(@street_address, @city, @state);", c.Create())
	assert.Equal(t, "UPDATE address  SET street_address = @street_address, city = @city, state = @state;", c.Update())
	assert.Equal(t, "DELETE FROM address;", c.Delete())

	t.Run("ForeignKeyOnly", func(t *testing.T) {
		fk := &schema.Column{Name: "product_id", RefTable: "product", RefColumn: "productid"}
		p := &schema.Projection{
			Entity:      &gen.Entity{Name: "review"},
			Columns:     []*schema.Column{{Name: "body"}},
			ForeignKeys: []*schema.Column{fk},
		}
		c, err := NewCommands(p)
		require.NoError(t, err)
		assert.Equal(t, "SELECT body, product_id FROM review WHERE (cardinality(@product_ids) = 0 OR product_id = ANY(@product_ids)) LIMIT @limit OFFSET @offset;", c.List())
	})
}

func TestCommandsEmbedded(t *testing.T) {
	c := commands(t, "customer")
	assert.Equal(t, "SELECT first_name, last_name, shipping_address_street_address, shipping_address_city, shipping_address_state, "+
		"billing_address_street_address, billing_address_city, billing_address_state FROM customer;", c.Get())
	assert.Contains(t, c.Update(), "SET first_name = @first_name, last_name = @last_name, shipping_address_street_address = @shipping_address_street_address,")
}

func TestCommandsCompositeKey(t *testing.T) {
	c := commands(t, "product_order")

	assert.Equal(t, "SELECT order_id, product_id, quantity, price FROM product_order WHERE order_id = @order_id AND product_id = @product_id;", c.Get())
	assert.Contains(t, c.List(), " ORDER BY order_id ASC, product_id ASC LIMIT @limit OFFSET @offset;")
	assert.Equal(t, "UPDATE product_order  SET quantity = @quantity, price = @price WHERE order_id = @order_id AND product_id = @product_id;", c.Update())
	assert.Equal(t, "DELETE FROM product_order WHERE order_id = @order_id AND product_id = @product_id;", c.Delete())
}

func TestCommandsOptions(t *testing.T) {
	c := commands(t, "Brand",
		WithParamMarker(":"),
		WithListFilter(JSONEach),
		WithLimitParam("page_size"),
		WithOffsetParam("page_start"),
	)
	assert.Equal(t, "SELECT brand_id, name, description FROM Brand WHERE brand_id = :brand_id;", c.Get())
	assert.Equal(t, "SELECT brand_id, name, description FROM Brand"+
		" WHERE (json_array_length(:brand_ids) = 0 OR brand_id IN (SELECT value FROM json_each(:brand_ids)))"+
		" ORDER BY brand_id ASC LIMIT :page_size OFFSET :page_start;", c.List())

	p, err := schema.Project(fixture.Entity(t, fixture.Graph(t), "Brand"), nil)
	require.NoError(t, err)
	for _, opt := range []Option{WithParamMarker(""), WithListFilter(nil), WithLimitParam(""), WithOffsetParam("")} {
		_, err := NewCommands(p, opt)
		require.Error(t, err)
		assert.True(t, gen.IsConfigError(err))
	}
}

func TestCommandsErrors(t *testing.T) {
	_, err := NewCommands(&schema.Projection{Entity: &gen.Entity{Name: "empty"}})
	require.Error(t, err)
	assert.True(t, gen.IsGenerationError(err))

	c, err := NewCommands(&schema.Projection{
		Entity:     &gen.Entity{Name: "tag"},
		PrimaryKey: []*schema.Column{{Name: "tag"}},
	})
	require.NoError(t, err)
	assert.Empty(t, c.Update(), "no columns to set")
}

func TestListFilters(t *testing.T) {
	term := FilterTerm{Column: "brand_id", Name: "brand_ids", Param: "@brand_ids"}
	assert.Equal(t, "(cardinality(@brand_ids) = 0 OR brand_id = ANY(@brand_ids))", AnyArray(term))
	assert.Equal(t, "(JSON_LENGTH(@brand_ids) = 0 OR brand_id MEMBER OF(@brand_ids))", JSONMember(term))
	assert.Equal(t, "(@brand_ids = {} OR brand_ids = ANY(@brand_ids))", LegacyAny(term))

	for _, name := range []string{"any", "json", "member", "LEGACY"} {
		_, err := FilterForName(name)
		assert.NoError(t, err, name)
	}
	_, err := FilterForName("regexp")
	assert.Error(t, err)

	assert.Equal(t, JSONEach(term), DialectFilter(dialect.SQLite)(term))
	assert.Equal(t, JSONMember(term), DialectFilter(dialect.MySQL)(term))
	assert.Equal(t, AnyArray(term), DialectFilter(dialect.Postgres)(term))
}

func TestListParam(t *testing.T) {
	for col, want := range map[string]string{
		"brand_id":  "brand_ids",
		"id":        "ids",
		"productid": "productids",
		"status":    "statuses",
	} {
		assert.Equal(t, want, ListParam(col), col)
	}
}
