// Package fixture provides the store schema shared by the generator tests.
package fixture

import (
	"testing"

	"github.com/syssam/sqlforge/compiler/gen"
	"github.com/syssam/sqlforge/compiler/load"
)

// Store is a schema covering every projection rule: explicit, inferred
// and composite primary keys, foreign keys, embedded entities and enums.
const Store = `{
  "title": "store",
  "definitions": {
    "Brand": {
      "type": "object",
      "properties": {
        "brand_id": {"type": "string", "maxLength": 30, "primaryKey": true},
        "name": {"type": "string", "maxLength": 50},
        "description": {"type": "string", "maxLength": "max"}
      },
      "required": ["brand_id", "name"]
    },
    "Category": {
      "type": "object",
      "properties": {
        "id": {"type": "integer"},
        "name": {"type": "string", "maxLength": 50},
        "parent": {"$ref": "#/definitions/Category"}
      },
      "required": ["id", "name"]
    },
    "product": {
      "type": "object",
      "properties": {
        "productid": {"type": "string", "maxLength": 30},
        "name": {"type": "string", "maxLength": 50},
        "description": {"type": "string", "maxLength": "max"},
        "price": {"type": "number", "format": "double"},
        "quantity": {"type": "integer"},
        "brand": {"$ref": "#/definitions/Brand"},
        "category": {"$ref": "#/definitions/Category"}
      },
      "required": ["productid", "name", "brand", "category"]
    },
    "customer": {
      "type": "object",
      "properties": {
        "first_name": {"type": "string"},
        "last_name": {"type": "string"},
        "shipping_address": {"$ref": "#/$defs/address"},
        "billing_address": {"$ref": "#/$defs/address"}
      },
      "required": ["first_name", "last_name", "shipping_address", "billing_address"]
    },
    "product_order": {
      "type": "object",
      "properties": {
        "order_id": {"type": "integer", "primaryKey": true},
        "product_id": {"type": "integer", "primaryKey": true},
        "quantity": {"type": "integer"},
        "price": {"type": "number", "format": "double"}
      },
      "required": ["order_id", "product_id", "quantity", "price"]
    }
  },
  "$defs": {
    "address": {
      "type": "object",
      "properties": {
        "street_address": {"type": "string"},
        "city": {"type": "string"},
        "state": {"$ref": "#/$defs/state"}
      },
      "required": ["street_address", "city", "state"]
    },
    "state": {
      "type": "string",
      "enum": ["CA", "NY", "TX", "WA"]
    }
  }
}`

// Graph resolves Store. Entities without a primary key are allowed, as
// the customer table has none.
func Graph(t testing.TB, opts ...gen.Option) *gen.Graph {
	t.Helper()
	doc, err := load.Parse([]byte(Store))
	if err != nil {
		t.Fatalf("parse store schema: %v", err)
	}
	c, err := gen.NewConfig(append([]gen.Option{gen.WithPrimaryKeyPolicy(gen.PrimaryKeyOptional)}, opts...)...)
	if err != nil {
		t.Fatalf("store config: %v", err)
	}
	g, err := gen.NewGraph(c, doc)
	if err != nil {
		t.Fatalf("resolve store schema: %v", err)
	}
	return g
}

// Entity returns the entity name of the Store graph.
func Entity(t testing.TB, g *gen.Graph, name string) *gen.Entity {
	t.Helper()
	e, ok := g.Entity(name)
	if !ok {
		t.Fatalf("entity %q not found", name)
	}
	return e
}
