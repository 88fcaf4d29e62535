// Package load decodes schema documents into ordered objects.
//
// Key order matters downstream: definitions, properties and inferred
// columns are emitted in the order they are declared, so documents are
// never decoded into plain Go maps.
//
//	doc, err := load.Load(load.Source{Path: "schema.json"})
//	if errors.Is(err, load.ErrNoSource) {
//	    // neither text nor path given
//	}
//
// JSON input is decoded with number literals kept verbatim (json.Number)
// so that bounds such as 18446744073709551615 survive intact. YAML input
// is walked through yaml.v3 nodes, which preserve mapping order.
package load
