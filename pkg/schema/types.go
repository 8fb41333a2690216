package schema

import "fmt"

// Type defines the contract for a property type.
// Implementations render the JSON Schema fragment used both for discovery
// and for enforcement.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "string", "[int]").
	Name() string
	// JSONSchema returns a fresh JSON Schema fragment for this type.
	JSONSchema() map[string]any
}

// --- Built-in Type Implementations ---

// StringType describes string values.
type StringType struct{}

func (t *StringType) Name() string { return "string" }

func (t *StringType) JSONSchema() map[string]any {
	return map[string]any{"type": "string"}
}

// IntType describes whole numbers. JSON numbers such as 3.0 are accepted.
type IntType struct{}

func (t *IntType) Name() string { return "int" }

func (t *IntType) JSONSchema() map[string]any {
	return map[string]any{"type": "integer"}
}

// NumberType describes any JSON number.
type NumberType struct{}

func (t *NumberType) Name() string { return "number" }

func (t *NumberType) JSONSchema() map[string]any {
	return map[string]any{"type": "number"}
}

// BoolType describes boolean values.
type BoolType struct{}

func (t *BoolType) Name() string { return "bool" }

func (t *BoolType) JSONSchema() map[string]any {
	return map[string]any{"type": "boolean"}
}

// SliceType describes arrays whose elements share one type.
type SliceType struct {
	elemType Type
}

func (t *SliceType) Name() string {
	return fmt.Sprintf("[%s]", t.elemType.Name())
}

func (t *SliceType) JSONSchema() map[string]any {
	return map[string]any{
		"type":  "array",
		"items": t.elemType.JSONSchema(),
	}
}

// --- Factory Functions ---

// String creates a string type.
func String() Type { return &StringType{} }

// Int creates an integer type.
func Int() Type { return &IntType{} }

// Number creates a number type.
func Number() Type { return &NumberType{} }

// Bool creates a boolean type.
func Bool() Type { return &BoolType{} }

// Slice creates an array type for elements of the given type.
func Slice(elemType Type) Type {
	return &SliceType{elemType: elemType}
}
