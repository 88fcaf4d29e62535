package gen

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/syssam/sqlforge/compiler/load"
	"github.com/syssam/sqlforge/schema/field"

	"golang.org/x/text/cases"
)

// refSegments is the number of "/" separated segments of a reference
// path: "#", the container keyword and the definition name.
const refSegments = 3

type (
	// attribute is a property read during the walk. It is turned into a
	// Field or a Ref once every definition of the document is known.
	attribute struct {
		field  *Field
		ref    string // target definition name
		path   string // reference path as written
		inline bool
	}

	// pending holds the attributes of one entity awaiting classification.
	pending struct {
		entity *Entity
		attrs  []attribute
	}

	// member is a definition body declared in a container.
	member struct {
		entity *Entity
		body   *load.Object
	}

	resolver struct {
		cfg      *Config
		log      *slog.Logger
		fold     cases.Caser
		entities map[string]*Entity
		order    []*Entity
		pending  []*pending
		// members holds the declared container members of each object.
		members  map[*load.Object][]member
	}
)

// NewGraph resolves a schema document into a Graph. A nil config uses
// the defaults of NewConfig.
//
// Resolution is all-or-nothing: any error aborts the walk and no graph
// is returned.
func NewGraph(c *Config, doc *load.Object) (*Graph, error) {
	if c == nil {
		c = defaultConfig()
	}
	if doc == nil {
		return nil, NewSchemaError("", "", "empty schema document", nil)
	}
	r := &resolver{
		cfg:      c,
		log:      c.Logger,
		fold:     cases.Fold(),
		entities: make(map[string]*Entity),
		members:  make(map[*load.Object][]member),
	}
	if r.log == nil {
		r.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if err := r.resolve(doc); err != nil {
		return nil, err
	}
	return &Graph{Config: c, Entities: r.order, entities: r.entities}, nil
}

func (r *resolver) resolve(doc *load.Object) error {
	if err := r.declareAll(doc); err != nil {
		return err
	}
	root, err := r.declareRoot(doc)
	if err != nil {
		return err
	}
	if err := r.walkContainers(doc); err != nil {
		return err
	}
	if root != nil {
		if err := r.readProperties(root, doc); err != nil {
			return err
		}
	}
	for _, p := range r.pending {
		if err := r.classify(p); err != nil {
			return err
		}
	}
	return nil
}

// declareAll declares a placeholder for every member of every container
// in obj, including containers nested in member bodies and in property
// definitions at any depth. Inline objects are named only after all
// declared names are known.
func (r *resolver) declareAll(obj *load.Object) error {
	var members []member
	for _, kw := range r.cfg.Containers {
		v, ok := obj.Get(kw)
		if !ok {
			continue
		}
		defs, ok := v.(*load.Object)
		if !ok {
			return NewSchemaError("", "", fmt.Sprintf("%q must be an object, got %T", kw, v), nil)
		}
		for _, name := range defs.Keys() {
			body, ok := defs.Object(name)
			if !ok {
				return NewSchemaError(name, "", fmt.Sprintf("definition in %q must be an object", kw), nil)
			}
			e, err := r.declare(name, kw)
			if err != nil {
				return err
			}
			values, err := enumValues(body)
			if err != nil {
				return NewSchemaError(name, "", "invalid enum", err)
			}
			if values != nil {
				e.Enum, e.EnumValues = true, values
			}
			members = append(members, member{entity: e, body: body})
		}
	}
	r.members[obj] = members
	for _, m := range members {
		if err := r.declareAll(m.body); err != nil {
			return err
		}
	}
	props, ok := obj.Object("properties")
	if !ok {
		return nil
	}
	for _, name := range props.Keys() {
		if def, ok := props.Object(name); ok {
			if err := r.declareAll(def); err != nil {
				return err
			}
		}
	}
	return nil
}

// walkContainers fills the members declared in obj, in declaration
// order, after the containers nested in each member.
func (r *resolver) walkContainers(obj *load.Object) error {
	for _, m := range r.members[obj] {
		if err := r.walkContainers(m.body); err != nil {
			return err
		}
		if err := r.readProperties(m.entity, m.body); err != nil {
			return err
		}
	}
	return nil
}

func (r *resolver) declare(name, container string) (*Entity, error) {
	if _, ok := r.entities[name]; ok {
		return nil, NewSchemaError(name, "", "duplicate definition", nil)
	}
	e := &Entity{
		Name:      name,
		Container: container,
		Embedded:  container != "" && r.cfg.isEmbeddedContainer(container),
	}
	r.register(e)
	return e, nil
}

func (r *resolver) register(e *Entity) {
	r.entities[e.Name] = e
	r.order = append(r.order, e)
}

// declareInline creates the entity of an object-typed property. The
// property name is used unless another entity already holds it.
func (r *resolver) declareInline(owner *Entity, prop string) *Entity {
	name := prop
	if _, ok := r.entities[name]; ok {
		name = owner.Name + "_" + prop
		for i := 2; ; i++ {
			if _, ok := r.entities[name]; !ok {
				break
			}
			name = owner.Name + "_" + prop + "_" + strconv.Itoa(i)
		}
		r.log.Debug("renamed inline object", "entity", owner.Name, "property", prop, "name", name)
	}
	e := &Entity{Name: name, Embedded: true}
	r.register(e)
	return e
}

// declareRoot declares the entity described by the document itself when
// it has a title (or $id) together with properties.
func (r *resolver) declareRoot(doc *load.Object) (*Entity, error) {
	id, _ := doc.String("title")
	if id == "" {
		id, _ = doc.String("$id")
	}
	name := rootName(id)
	if name == "" {
		return nil, nil
	}
	if _, ok := doc.Get("properties"); !ok {
		r.log.Debug("document has no properties, skipping root entity", "name", name)
		return nil, nil
	}
	e, err := r.declare(name, "")
	if err != nil {
		return nil, err
	}
	e.Root = true
	return e, nil
}

func rootName(id string) string {
	if i := strings.LastIndexByte(id, '/'); i >= 0 {
		id = id[i+1:]
	}
	for _, suffix := range []string{".schema.json", ".json"} {
		if strings.HasSuffix(id, suffix) {
			return strings.TrimSuffix(id, suffix)
		}
	}
	return id
}

func (r *resolver) readProperties(e *Entity, body *load.Object) error {
	var props *load.Object
	if v, ok := body.Get("properties"); ok && v != nil {
		if props, ok = v.(*load.Object); !ok {
			return NewSchemaError(e.Name, "", fmt.Sprintf("properties must be an object, got %T", v), nil)
		}
	}
	required, err := body.Strings("required")
	if err != nil {
		return NewSchemaError(e.Name, "", "invalid required list", err)
	}
	p := &pending{entity: e, attrs: make([]attribute, 0, props.Len())}
	for _, name := range props.Keys() {
		def, ok := props.Object(name)
		if !ok {
			return NewSchemaError(e.Name, name, "property must be an object", nil)
		}
		a, err := r.readProperty(e, name, def, slices.Contains(required, name))
		if err != nil {
			return err
		}
		p.attrs = append(p.attrs, a)
	}
	r.pending = append(r.pending, p)
	return nil
}

func (r *resolver) readProperty(owner *Entity, name string, def *load.Object, required bool) (attribute, error) {
	f := &Field{
		Name:       name,
		Required:   required,
		PrimaryKey: def.Bool(r.cfg.PrimaryKeyKeyword),
	}
	a := attribute{field: f}
	if v, ok := def.Get("type"); ok {
		s, ok := v.(string)
		if !ok {
			return a, NewSchemaError(owner.Name, name, fmt.Sprintf("type must be a string, got %v", v), nil)
		}
		k, err := field.ParseKind(s)
		if err != nil {
			return a, NewSchemaError(owner.Name, name, "", err)
		}
		f.Kind = k
	}
	if err := readConstraints(f, def); err != nil {
		return a, NewSchemaError(owner.Name, name, "", err)
	}
	switch {
	case f.Kind == field.KindObject:
		inline := r.declareInline(owner, name)
		if err := r.walkContainers(def); err != nil {
			return a, err
		}
		if err := r.readProperties(inline, def); err != nil {
			return a, err
		}
		a.ref, a.inline = inline.Name, true
	default:
		v, ok := def.Get("$ref")
		if !ok {
			if !f.Kind.Valid() {
				return a, NewSchemaError(owner.Name, name, "missing type", nil)
			}
			break
		}
		path, _ := v.(string)
		target, err := parseRef(path)
		if err != nil {
			return a, NewRefError(ErrMalformedRef, owner.Name, name, fmt.Sprint(v), "")
		}
		a.ref, a.path = target, path
	}
	return a, nil
}

// readConstraints reads the format, length, bound and enum keywords of a property.
func readConstraints(f *Field, def *load.Object) error {
	if v, ok := def.Get("format"); ok && v != nil {
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("format must be a string, got %v", v)
		}
		format, err := field.ParseFormat(s)
		if err != nil {
			return err
		}
		f.Format = format
	}
	var err error
	if v, ok := def.Get("maxLength"); ok {
		if f.MaxLength, err = field.ParseLength(v); err != nil {
			return err
		}
	}
	if v, ok := def.Get("minLength"); ok {
		l, err := field.ParseLength(v)
		if err != nil {
			return err
		}
		if l != nil {
			f.MinLength = l.N
		}
	}
	if v, ok := def.Get("minimum"); ok {
		if f.Minimum, err = field.ParseBound(v); err != nil {
			return fmt.Errorf("invalid minimum: %w", err)
		}
	}
	if v, ok := def.Get("maximum"); ok {
		if f.Maximum, err = field.ParseBound(v); err != nil {
			return fmt.Errorf("invalid maximum: %w", err)
		}
	}
	if f.Minimum != nil && f.Maximum != nil && f.Minimum.Cmp(f.Maximum) > 0 {
		return fmt.Errorf("minimum %s is greater than maximum %s", f.Minimum.Text('g', -1), f.Maximum.Text('g', -1))
	}
	values, err := enumValues(def)
	if err != nil {
		return err
	}
	if values != nil {
		f.Enum, f.EnumValues = true, values
	}
	return nil
}

// parseRef returns the definition name of a "#/<container>/<name>" path.
func parseRef(path string) (string, error) {
	parts := strings.Split(path, "/")
	if len(parts) != refSegments || parts[2] == "" {
		return "", fmt.Errorf("invalid reference %q", path)
	}
	return parts[2], nil
}

// classify sorts the attributes of an entity into primary-key, scalar and
// reference fields, then infers a primary key if none was marked.
func (r *resolver) classify(p *pending) error {
	e := p.entity
	for _, a := range p.attrs {
		switch {
		case a.ref != "" && a.field.PrimaryKey:
			return NewSchemaError(e.Name, a.field.Name, "a referenced entity cannot be used as primary key", nil)
		case a.ref != "":
			target, ok := r.entities[a.ref]
			if !ok {
				return NewRefError(ErrUnresolvedRef, e.Name, a.field.Name, a.path, a.ref)
			}
			e.Refs = append(e.Refs, &Ref{
				Name:     a.field.Name,
				Required: a.field.Required,
				Target:   target,
				Inline:   a.inline,
			})
		case a.field.PrimaryKey:
			e.PrimaryKey = append(e.PrimaryKey, a.field)
		default:
			e.Fields = append(e.Fields, a.field)
		}
	}
	if !e.HasPrimaryKey() {
		if f := r.inferPrimaryKey(e); f != nil {
			f.PrimaryKey = true
			e.PrimaryKey = []*Field{f}
			e.Fields = slices.DeleteFunc(e.Fields, func(x *Field) bool { return x == f })
			r.log.Debug("inferred primary key", "entity", e.Name, "field", f.Name)
		}
	}
	if !e.HasPrimaryKey() && e.IsTable() && r.cfg.PrimaryKeyPolicy == PrimaryKeyRequired {
		return NewValidationError(e.Name, "", nil,
			fmt.Sprintf("no primary key declared or inferred; mark a property with %q", r.cfg.PrimaryKeyKeyword))
	}
	return nil
}

// inferPrimaryKey looks for "id", "<entity>_id" and "<entity>id", in this
// order, among the scalar fields of e. Names are compared case-insensitively.
func (r *resolver) inferPrimaryKey(e *Entity) *Field {
	candidates := []string{
		"id",
		r.fold.String(e.Name + "_id"),
		r.fold.String(e.Name + "id"),
	}
	for _, c := range candidates {
		for _, f := range e.Fields {
			if r.fold.String(f.Name) == c {
				return f
			}
		}
	}
	return nil
}

// enumValues returns the value set declared by the "enum" keyword. An
// empty set is no value set and returns nil.
func enumValues(obj *load.Object) ([]any, error) {
	v, ok := obj.Get("enum")
	if !ok || v == nil {
		return nil, nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("enum must be an array, got %T", v)
	}
	if len(arr) == 0 {
		return nil, nil
	}
	values := make([]any, len(arr))
	for i, e := range arr {
		values[i] = normalizeValue(e)
	}
	return values, nil
}

// normalizeValue converts JSON number literals into int64 or float64.
func normalizeValue(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}
