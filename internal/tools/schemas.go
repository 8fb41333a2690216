package tools

import "github.com/aretw0/trailhead/pkg/schema"

const (
	stateCodePattern = `^[A-Za-z]{2}(\s*,\s*[A-Za-z]{2})*$`
	datePattern      = `^\d{4}-\d{2}-\d{2}$`
	// parkCodePattern requires at least one letter or digit, so blanks and
	// bare separators are rejected.
	parkCodePattern = `[A-Za-z0-9]`
)

func limitProp() schema.Property {
	return schema.Prop("limit", schema.Int(), schema.Min(1), schema.Max(50),
		schema.Description("Maximum number of results (1-50)"))
}

func startProp() schema.Property {
	return schema.Prop("start", schema.Int(), schema.Min(0),
		schema.Description("Offset of the first result"))
}

func parkCodeProp(opts ...schema.PropOption) schema.Property {
	opts = append([]schema.PropOption{
		schema.Description("Park code such as \"yose\"; several may be joined with commas"),
	}, opts...)
	return schema.Prop("parkCode", schema.String(), opts...)
}

func queryProp() schema.Property {
	return schema.Prop("q", schema.String(), schema.Description("Search term"))
}

var (
	findParksSchema = schema.MustObject(
		schema.Prop("stateCode", schema.String(), schema.Pattern(stateCodePattern),
			schema.Description("Two-letter state code, or a comma separated list (e.g. \"CA,OR\")")),
		queryProp(),
		limitProp(),
		startProp(),
		schema.Prop("activities", schema.String(),
			schema.Description("Comma separated activity names; parks offering any of them are kept")),
	)

	parkDetailsSchema = schema.MustObject(
		schema.Prop("parkCode", schema.String(), schema.Required(), schema.Pattern(parkCodePattern),
			schema.Description("Park code such as \"yose\"")),
	)

	listSchema = schema.MustObject(
		parkCodeProp(),
		limitProp(),
		startProp(),
		queryProp(),
	)

	eventsSchema = schema.MustObject(
		parkCodeProp(),
		limitProp(),
		startProp(),
		schema.Prop("dateStart", schema.String(), schema.Pattern(datePattern),
			schema.Description("First day, YYYY-MM-DD")),
		schema.Prop("dateEnd", schema.String(), schema.Pattern(datePattern),
			schema.Description("Last day, YYYY-MM-DD")),
		queryProp(),
	)
)

// listArgs are the arguments shared by the list tools.
type listArgs struct {
	ParkCode string `json:"parkCode"`
	Limit    int    `json:"limit"`
	Start    int    `json:"start"`
	Query    string `json:"q"`
}

type findParksArgs struct {
	StateCode  string `json:"stateCode"`
	Query      string `json:"q"`
	Limit      int    `json:"limit"`
	Start      int    `json:"start"`
	Activities string `json:"activities"`
}

type parkDetailsArgs struct {
	ParkCode string `json:"parkCode"`
}

type eventsArgs struct {
	ParkCode  string `json:"parkCode"`
	Limit     int    `json:"limit"`
	Start     int    `json:"start"`
	Query     string `json:"q"`
	DateStart string `json:"dateStart"`
	DateEnd   string `json:"dateEnd"`
}
