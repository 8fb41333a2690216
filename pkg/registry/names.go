package registry

// ToolName is the closed set of tools this server can expose.
type ToolName string

const (
	FindParks         ToolName = "findParks"
	GetParkDetails    ToolName = "getParkDetails"
	GetAlerts         ToolName = "getAlerts"
	GetVisitorCenters ToolName = "getVisitorCenters"
	GetCampgrounds    ToolName = "getCampgrounds"
	GetEvents         ToolName = "getEvents"
)

// Names returns every known tool name in canonical order.
func Names() []ToolName {
	return []ToolName{
		FindParks,
		GetParkDetails,
		GetAlerts,
		GetVisitorCenters,
		GetCampgrounds,
		GetEvents,
	}
}

// Valid reports whether n is one of the known tool names.
func (n ToolName) Valid() bool {
	switch n {
	case FindParks, GetParkDetails, GetAlerts, GetVisitorCenters, GetCampgrounds, GetEvents:
		return true
	}
	return false
}

func (n ToolName) String() string { return string(n) }
