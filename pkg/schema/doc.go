// Package schema describes tool argument shapes and enforces them.
//
// An Object is declared once from ordered properties. The same declaration
// renders the JSON Schema advertised to callers and, compiled through
// gojsonschema, validates incoming argument maps, so the advertised and the
// enforced shape never diverge.
//
// Basic usage:
//
//	obj := schema.MustObject(
//	    schema.Prop("parkCode", schema.String(), schema.Required(), schema.MinLength(1)),
//	    schema.Prop("limit", schema.Int(), schema.Min(1), schema.Max(50)),
//	)
//
//	args, err := obj.Validate(map[string]any{"parkCode": "yose", "limit": 10})
//	if err != nil {
//	    for _, v := range schema.Violations(err) {
//	        // v.Key, v.Reason
//	    }
//	}
//
//	var dst struct {
//	    ParkCode string `json:"parkCode"`
//	    Limit    int    `json:"limit"`
//	}
//	_ = args.Decode(&dst)
//
// Validation never stops at the first problem: every violation found is
// reported through an *AggregateError.
package schema
