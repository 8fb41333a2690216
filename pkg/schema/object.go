package schema

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// rootField is how gojsonschema names the object itself.
const rootField = "(root)"

// Property is one named entry of an Object.
type Property struct {
	Key         string
	Type        Type
	Required    bool
	Description string
	constraints map[string]any
}

// PropOption configures a Property.
type PropOption func(*Property)

// Required marks the property as mandatory.
func Required() PropOption {
	return func(p *Property) { p.Required = true }
}

// Description documents the property for callers.
func Description(text string) PropOption {
	return func(p *Property) { p.Description = text }
}

// Pattern constrains a string property to a regular expression.
func Pattern(expr string) PropOption {
	return constraint("pattern", expr)
}

// MinLength sets the minimum length of a string property.
func MinLength(n int) PropOption {
	return constraint("minLength", n)
}

// Min sets the inclusive minimum of a numeric property.
func Min(v float64) PropOption {
	return constraint("minimum", v)
}

// Max sets the inclusive maximum of a numeric property.
func Max(v float64) PropOption {
	return constraint("maximum", v)
}

// Enum restricts a property to the given values.
func Enum(values ...string) PropOption {
	return constraint("enum", values)
}

func constraint(key string, value any) PropOption {
	return func(p *Property) {
		if p.constraints == nil {
			p.constraints = make(map[string]any)
		}
		p.constraints[key] = value
	}
}

// Prop declares a property.
func Prop(key string, typ Type, opts ...PropOption) Property {
	p := Property{Key: key, Type: typ}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// JSONSchema renders the property's JSON Schema fragment.
func (p Property) JSONSchema() map[string]any {
	frag := p.Type.JSONSchema()
	if p.Description != "" {
		frag["description"] = p.Description
	}
	for k, v := range p.constraints {
		frag[k] = v
	}
	return frag
}

// Object is an immutable argument schema: an ordered set of properties plus
// the compiled validator derived from them.
type Object struct {
	props    []Property
	index    map[string]int
	document map[string]any
	raw      json.RawMessage
	compiled *gojsonschema.Schema
}

// NewObject builds and compiles an object schema.
// Properties keep their declaration order.
func NewObject(props ...Property) (*Object, error) {
	o := &Object{
		props: append([]Property(nil), props...),
		index: make(map[string]int, len(props)),
	}

	properties := make(map[string]any, len(props))
	required := []string{}
	for i, p := range o.props {
		if p.Key == "" {
			return nil, fmt.Errorf("property %d: empty key", i)
		}
		if p.Type == nil {
			return nil, fmt.Errorf("property %s: type is nil", p.Key)
		}
		if _, dup := o.index[p.Key]; dup {
			return nil, fmt.Errorf("property %s: declared twice", p.Key)
		}
		o.index[p.Key] = i
		properties[p.Key] = p.JSONSchema()
		if p.Required {
			required = append(required, p.Key)
		}
	}

	o.document = map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		o.document["required"] = required
	}

	raw, err := json.Marshal(o.document)
	if err != nil {
		return nil, fmt.Errorf("render schema: %w", err)
	}
	o.raw = raw

	compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	o.compiled = compiled
	return o, nil
}

// MustObject is like NewObject but panics on an invalid declaration.
// It is meant for static tool tables built at startup.
func MustObject(props ...Property) *Object {
	o, err := NewObject(props...)
	if err != nil {
		panic(fmt.Sprintf("schema: %v", err))
	}
	return o
}

// Properties returns the declared properties in order.
func (o *Object) Properties() []Property {
	return append([]Property(nil), o.props...)
}

// JSONSchema returns the rendered JSON Schema document.
// The returned bytes must not be modified.
func (o *Object) JSONSchema() json.RawMessage {
	return o.raw
}

// MarshalJSON renders the object as its JSON Schema document.
func (o *Object) MarshalJSON() ([]byte, error) {
	return o.raw, nil
}

// Validate checks data against the schema and returns the declared
// properties that were supplied. Undeclared keys are dropped.
// On failure the error is an *AggregateError holding every violation.
func (o *Object) Validate(data map[string]any) (Args, error) {
	if data == nil {
		data = map[string]any{}
	}

	result, err := o.compiled.Validate(gojsonschema.NewGoLoader(data))
	if err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	if !result.Valid() {
		errs := make([]*ValidationError, 0, len(result.Errors()))
		for _, re := range result.Errors() {
			errs = append(errs, toValidationError(re))
		}
		sort.SliceStable(errs, func(i, j int) bool {
			if errs[i].Key != errs[j].Key {
				return errs[i].Key < errs[j].Key
			}
			return errs[i].Reason < errs[j].Reason
		})
		return nil, &AggregateError{Errors: errs}
	}

	args := make(Args, len(o.props))
	for key, value := range data {
		if _, declared := o.index[key]; declared {
			args[key] = value
		}
	}
	return args, nil
}

func toValidationError(re gojsonschema.ResultError) *ValidationError {
	key := re.Field()
	var value any = re.Value()

	// Missing properties are reported against the object itself.
	if key == rootField && re.Type() == "required" {
		if prop, ok := re.Details()["property"].(string); ok {
			key = prop
		}
		value = nil
	}
	key = strings.TrimPrefix(key, rootField+".")

	return &ValidationError{
		Key:    key,
		Reason: re.Description(),
		Value:  value,
	}
}
