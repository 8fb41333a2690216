package schema

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Args holds arguments that passed validation.
// An Args value belongs to a single handler invocation.
type Args map[string]any

// Has reports whether key was supplied.
func (a Args) Has(key string) bool {
	_, ok := a[key]
	return ok
}

// Decode copies the arguments into dst, matching keys against `json` struct tags.
// Whole JSON numbers decode into integer fields.
func (a Args) Decode(dst any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           dst,
		TagName:          "json",
		WeaklyTypedInput: false,
	})
	if err != nil {
		return fmt.Errorf("decode args: %w", err)
	}
	if err := dec.Decode(map[string]any(a)); err != nil {
		return fmt.Errorf("decode args: %w", err)
	}
	return nil
}
