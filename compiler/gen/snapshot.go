package gen

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/syssam/sqlforge/schema/field"

	"github.com/vmihailenco/msgpack/v5"
)

// snapshot is the serialized form of a Graph. References are stored by
// target name and re-linked on decode, so cycles never reach the encoder.
type (
	snapshot struct {
		Version  int              `msgpack:"version"`
		Entities []snapshotEntity `msgpack:"entities"`
	}

	snapshotEntity struct {
		Name       string          `msgpack:"name"`
		Fields     []snapshotField `msgpack:"fields,omitempty"`
		PrimaryKey []snapshotField `msgpack:"primary_key,omitempty"`
		Refs       []snapshotRef   `msgpack:"refs,omitempty"`
		Enum       bool            `msgpack:"enum,omitempty"`
		EnumValues []any           `msgpack:"enum_values,omitempty"`
		Embedded   bool            `msgpack:"embedded,omitempty"`
		Root       bool            `msgpack:"root,omitempty"`
		Container  string          `msgpack:"container,omitempty"`
	}

	snapshotField struct {
		Name       string        `msgpack:"name"`
		Kind       field.Kind    `msgpack:"kind"`
		Format     field.Format  `msgpack:"format,omitempty"`
		MaxLength  *field.Length `msgpack:"max_length,omitempty"`
		MinLength  int64         `msgpack:"min_length,omitempty"`
		Minimum    string        `msgpack:"minimum,omitempty"`
		Maximum    string        `msgpack:"maximum,omitempty"`
		Required   bool          `msgpack:"required,omitempty"`
		PrimaryKey bool          `msgpack:"primary_key,omitempty"`
		Enum       bool          `msgpack:"enum,omitempty"`
		EnumValues []any         `msgpack:"enum_values,omitempty"`
	}

	snapshotRef struct {
		Name     string `msgpack:"name"`
		Required bool   `msgpack:"required,omitempty"`
		Inline   bool   `msgpack:"inline,omitempty"`
		Target   string `msgpack:"target"`
	}
)

const snapshotVersion = 1

// MarshalMsgpack encodes the resolved entities of the graph.
func (g *Graph) MarshalMsgpack() ([]byte, error) {
	s := snapshot{Version: snapshotVersion, Entities: make([]snapshotEntity, 0, len(g.Entities))}
	for _, e := range g.Entities {
		se := snapshotEntity{
			Name:       e.Name,
			Fields:     snapshotFields(e.Fields),
			PrimaryKey: snapshotFields(e.PrimaryKey),
			Enum:       e.Enum,
			EnumValues: e.EnumValues,
			Embedded:   e.Embedded,
			Root:       e.Root,
			Container:  e.Container,
		}
		for _, r := range e.Refs {
			se.Refs = append(se.Refs, snapshotRef{Name: r.Name, Required: r.Required, Inline: r.Inline, Target: r.Target.Name})
		}
		s.Entities = append(s.Entities, se)
	}
	return msgpack.Marshal(&s)
}

// UnmarshalGraph decodes a graph encoded by MarshalMsgpack. Entities are
// created first and linked second, the same way NewGraph resolves a document.
func UnmarshalGraph(c *Config, data []byte) (*Graph, error) {
	if c == nil {
		c = defaultConfig()
	}
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.UseLooseInterfaceDecoding(true)
	var s snapshot
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode graph snapshot: %w", err)
	}
	if s.Version != snapshotVersion {
		return nil, NewValidationError("", "", s.Version, "unsupported snapshot version")
	}
	g := &Graph{Config: c, entities: make(map[string]*Entity, len(s.Entities))}
	for _, se := range s.Entities {
		if _, ok := g.entities[se.Name]; ok {
			return nil, NewSchemaError(se.Name, "", "duplicate entity in snapshot", nil)
		}
		e := &Entity{
			Name:       se.Name,
			Enum:       se.Enum,
			EnumValues: se.EnumValues,
			Embedded:   se.Embedded,
			Root:       se.Root,
			Container:  se.Container,
		}
		var err error
		if e.Fields, err = entityFields(se.Name, se.Fields); err != nil {
			return nil, err
		}
		if e.PrimaryKey, err = entityFields(se.Name, se.PrimaryKey); err != nil {
			return nil, err
		}
		g.entities[e.Name] = e
		g.Entities = append(g.Entities, e)
	}
	for i, se := range s.Entities {
		e := g.Entities[i]
		for _, sr := range se.Refs {
			target, ok := g.entities[sr.Target]
			if !ok {
				return nil, NewRefError(ErrUnresolvedRef, e.Name, sr.Name, "", sr.Target)
			}
			e.Refs = append(e.Refs, &Ref{Name: sr.Name, Required: sr.Required, Inline: sr.Inline, Target: target})
		}
	}
	return g, nil
}

func snapshotFields(fs []*Field) []snapshotField {
	if len(fs) == 0 {
		return nil
	}
	out := make([]snapshotField, len(fs))
	for i, f := range fs {
		out[i] = snapshotField{
			Name:       f.Name,
			Kind:       f.Kind,
			Format:     f.Format,
			MaxLength:  f.MaxLength,
			MinLength:  f.MinLength,
			Minimum:    boundText(f.Minimum),
			Maximum:    boundText(f.Maximum),
			Required:   f.Required,
			PrimaryKey: f.PrimaryKey,
			Enum:       f.Enum,
			EnumValues: f.EnumValues,
		}
	}
	return out
}

func entityFields(entity string, sfs []snapshotField) ([]*Field, error) {
	if len(sfs) == 0 {
		return nil, nil
	}
	out := make([]*Field, len(sfs))
	for i, sf := range sfs {
		if !sf.Kind.Valid() {
			return nil, NewSchemaError(entity, sf.Name, fmt.Sprintf("invalid kind %d", sf.Kind), nil)
		}
		f := &Field{
			Name:       sf.Name,
			Kind:       sf.Kind,
			Format:     sf.Format,
			MaxLength:  sf.MaxLength,
			MinLength:  sf.MinLength,
			Required:   sf.Required,
			PrimaryKey: sf.PrimaryKey,
			Enum:       sf.Enum,
			EnumValues: sf.EnumValues,
		}
		var err error
		if f.Minimum, err = parseBoundText(sf.Minimum); err != nil {
			return nil, NewSchemaError(entity, sf.Name, "", err)
		}
		if f.Maximum, err = parseBoundText(sf.Maximum); err != nil {
			return nil, NewSchemaError(entity, sf.Name, "", err)
		}
		out[i] = f
	}
	return out, nil
}

func boundText(b *big.Float) string {
	if b == nil {
		return ""
	}
	return b.Text('g', -1)
}

func parseBoundText(s string) (*big.Float, error) {
	if s == "" {
		return nil, nil
	}
	return field.ParseBound(s)
}
