package tools

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aretw0/trailhead/internal/nps"
	"github.com/aretw0/trailhead/pkg/dispatcher"
	"github.com/aretw0/trailhead/pkg/registry"
	"github.com/aretw0/trailhead/pkg/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient answers from canned data and records the last parameters.
type fakeClient struct {
	parks       []nps.Park
	alerts      []nps.Alert
	centers     []nps.VisitorCenter
	campgrounds []nps.Campground
	events      []nps.Event
	err         error

	lastParams nps.Params
	lastEvents nps.EventParams
	parkCalls  int
}

func respond[T any](data []T) *nps.Response[T] {
	return &nps.Response[T]{Total: nps.FlexInt(len(data)), Limit: 10, Data: data}
}

func (f *fakeClient) Parks(_ context.Context, p nps.Params) (*nps.Response[nps.Park], error) {
	f.lastParams = p
	if f.err != nil {
		return nil, f.err
	}
	return respond(f.parks), nil
}

func (f *fakeClient) Park(_ context.Context, code string) (*nps.Park, error) {
	f.parkCalls++
	f.lastParams = nps.Params{ParkCode: code}
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.parks {
		if p.ParkCode == code {
			return &p, nil
		}
	}
	return nil, nps.ErrNotFound
}

func (f *fakeClient) Alerts(_ context.Context, p nps.Params) (*nps.Response[nps.Alert], error) {
	f.lastParams = p
	if f.err != nil {
		return nil, f.err
	}
	return respond(f.alerts), nil
}

func (f *fakeClient) VisitorCenters(_ context.Context, p nps.Params) (*nps.Response[nps.VisitorCenter], error) {
	f.lastParams = p
	if f.err != nil {
		return nil, f.err
	}
	return respond(f.centers), nil
}

func (f *fakeClient) Campgrounds(_ context.Context, p nps.Params) (*nps.Response[nps.Campground], error) {
	f.lastParams = p
	if f.err != nil {
		return nil, f.err
	}
	return respond(f.campgrounds), nil
}

func (f *fakeClient) Events(_ context.Context, p nps.EventParams) (*nps.Response[nps.Event], error) {
	f.lastEvents = p
	if f.err != nil {
		return nil, f.err
	}
	return respond(f.events), nil
}

var (
	yosemite = nps.Park{
		FullName:   "Yosemite National Park",
		ParkCode:   "yose",
		States:     "CA",
		URL:        "https://www.nps.gov/yose/index.htm",
		Latitude:   "37.84",
		Longitude:  "-119.50",
		Activities: []nps.Activity{{Name: "Hiking"}, {Name: "Camping"}},
		Contacts: nps.Contacts{
			PhoneNumbers:   []nps.PhoneNumber{{PhoneNumber: "2093720200", Type: "Voice"}},
			EmailAddresses: []nps.EmailAddress{{EmailAddress: "yose_web_manager@nps.gov"}},
		},
		EntranceFees: []nps.Fee{{Title: "Private Vehicle", Cost: "35.00"}},
		OperatingHours: []nps.OperatingHours{{
			Name:          "All Park Hours",
			StandardHours: nps.StandardHours{Monday: "All Day", Sunday: "All Day"},
		}},
		Addresses: []nps.Address{
			{Type: "Mailing", Line1: "PO Box 577", City: "Yosemite", StateCode: "CA", PostalCode: "95389"},
			{Type: "Physical", Line1: "9035 Village Drive", City: "Yosemite", StateCode: "CA", PostalCode: "95389"},
		},
		Images: make([]nps.Image, 8),
	}
	deathValley = nps.Park{
		FullName:   "Death Valley National Park",
		ParkCode:   "deva",
		States:     "CA,NV",
		Activities: []nps.Activity{{Name: "Stargazing"}},
	}
)

func call(t *testing.T, h registry.Handler, args map[string]any) (map[string]any, registry.Result) {
	t.Helper()
	res := h(context.Background(), schema.Args(args))
	if res.Failed() {
		return nil, res
	}
	require.Len(t, res.Content(), 1)
	text, ok := res.Content()[0].(mcp.TextContent)
	require.True(t, ok)
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(text.Text), &out))
	return out, res
}

func TestDescriptors_CoverEveryTool(t *testing.T) {
	descs := New(&fakeClient{}).Descriptors()
	require.Len(t, descs, len(registry.Names()))
	for i, name := range registry.Names() {
		assert.Equal(t, name, descs[i].Name)
		assert.NotEmpty(t, descs[i].Description)
		assert.NotNil(t, descs[i].Schema)
		assert.NotNil(t, descs[i].Handler)
	}

	reg, err := NewRegistry(&fakeClient{})
	require.NoError(t, err)
	assert.Equal(t, len(registry.Names()), reg.Len())
}

func TestFindParks(t *testing.T) {
	fc := &fakeClient{parks: []nps.Park{yosemite, deathValley}}
	ts := New(fc)

	out, _ := call(t, ts.findParks, map[string]any{"stateCode": "ca, nv", "q": "valley"})
	assert.Equal(t, "CA,NV", fc.lastParams.StateCode)
	assert.Equal(t, "valley", fc.lastParams.Query)
	assert.Equal(t, defaultLimit, fc.lastParams.Limit)

	parks := out["parks"].([]any)
	require.Len(t, parks, 2)
	dv := parks[1].(map[string]any)
	assert.Equal(t, "deva", dv["code"])
	assert.Equal(t, []any{"CA", "NV"}, dv["states"])
	assert.NotContains(t, dv, "activities")
	assert.NotContains(t, out, "matched", "matched is only reported when filtering")
}

func TestFindParks_ActivityFilter(t *testing.T) {
	ts := New(&fakeClient{parks: []nps.Park{yosemite, deathValley}})

	out, _ := call(t, ts.findParks, map[string]any{"activities": "stargazing"})
	parks := out["parks"].([]any)
	require.Len(t, parks, 1)
	assert.Equal(t, "deva", parks[0].(map[string]any)["code"])
	assert.Equal(t, []any{"Stargazing"}, parks[0].(map[string]any)["activities"])
	assert.Equal(t, float64(2), out["total"], "total is the upstream count")
	assert.Equal(t, float64(1), out["matched"])
}

func TestFindParks_UpstreamFailure(t *testing.T) {
	ts := New(&fakeClient{err: &nps.APIError{StatusCode: 500}})

	_, res := call(t, ts.findParks, map[string]any{})
	require.True(t, res.Failed())
	assert.Contains(t, res.Err().Error(), "NPS API error: 500")
}

func TestParkDetails(t *testing.T) {
	fc := &fakeClient{parks: []nps.Park{yosemite}}
	ts := New(fc)

	out, _ := call(t, ts.parkDetails, map[string]any{"parkCode": "YOSE"})
	assert.Equal(t, "yose", fc.lastParams.ParkCode, "park codes are lower-cased")
	assert.Equal(t, "Yosemite National Park", out["name"])
	assert.Equal(t, "9035 Village Drive, Yosemite, CA 95389", out["address"], "physical address preferred")
	assert.Len(t, out["images"], maxImages)
	assert.Equal(t, map[string]any{"latitude": "37.84", "longitude": "-119.50"}, out["coordinates"])

	contacts := out["contacts"].(map[string]any)
	assert.Equal(t, []any{"yose_web_manager@nps.gov"}, contacts["emailAddresses"])

	hours := out["operatingHours"].([]any)[0].(map[string]any)
	assert.Equal(t, map[string]any{"monday": "All Day", "sunday": "All Day"}, hours["standardHours"])
}

func TestParkDetails_NotFound(t *testing.T) {
	ts := New(&fakeClient{})

	out, res := call(t, ts.parkDetails, map[string]any{"parkCode": "zzzz"})
	require.False(t, res.Failed(), "a missing park is content, not a failure")
	assert.Equal(t, "Park not found", out["error"])
	assert.Contains(t, out["message"], "zzzz")
}

func TestParkDetails_BlankCode(t *testing.T) {
	fc := &fakeClient{parks: []nps.Park{yosemite}}
	ts := New(fc)

	for _, code := range []string{" ", ",", " , "} {
		out, res := call(t, ts.parkDetails, map[string]any{"parkCode": code})
		require.False(t, res.Failed())
		assert.Equal(t, "Park not found", out["error"], "code %q", code)
	}
	assert.Zero(t, fc.parkCalls, "blank codes are not looked up")
}

func TestParkDetails_UpstreamFailure(t *testing.T) {
	ts := New(&fakeClient{err: errors.New("connection refused")})

	_, res := call(t, ts.parkDetails, map[string]any{"parkCode": "yose"})
	require.True(t, res.Failed())
	assert.Contains(t, res.Err().Error(), "connection refused")
}

func TestAlerts_GroupedByPark(t *testing.T) {
	fc := &fakeClient{alerts: []nps.Alert{
		{Title: "Road closed", ParkCode: "yose", Category: "Park Closure"},
		{Title: "Heat", ParkCode: "deva", Category: "Danger"},
		{Title: "Rockfall", ParkCode: "yose", Category: "Caution"},
	}}
	ts := New(fc)

	out, _ := call(t, ts.alerts, map[string]any{"limit": float64(25)})
	assert.Equal(t, 25, fc.lastParams.Limit)
	assert.Len(t, out["alerts"], 3)
	byPark := out["alertsByPark"].(map[string]any)
	assert.Len(t, byPark["yose"], 2)
	assert.Len(t, byPark["deva"], 1)
}

func TestAlerts_SingleParkNotGrouped(t *testing.T) {
	ts := New(&fakeClient{alerts: []nps.Alert{{Title: "Road closed", ParkCode: "yose"}}})

	out, _ := call(t, ts.alerts, map[string]any{"parkCode": "yose"})
	assert.NotContains(t, out, "alertsByPark")
}

func TestVisitorCenters(t *testing.T) {
	ts := New(&fakeClient{centers: []nps.VisitorCenter{{
		Name:     "Valley Visitor Center",
		ParkCode: "yose",
		Addresses: []nps.Address{
			{Type: "Physical", Line1: "9035 Village Dr", City: "Yosemite", StateCode: "CA"},
		},
	}}})

	out, _ := call(t, ts.visitorCenters, map[string]any{"parkCode": "yose"})
	vcs := out["visitorCenters"].([]any)
	require.Len(t, vcs, 1)
	vc := vcs[0].(map[string]any)
	assert.Equal(t, "Valley Visitor Center", vc["name"])
	assert.Equal(t, "9035 Village Dr, Yosemite, CA", vc["address"])
}

func TestCampgrounds(t *testing.T) {
	ts := New(&fakeClient{campgrounds: []nps.Campground{{
		Name:      "Upper Pines",
		ParkCode:  "yose",
		Fees:      []nps.Fee{{Title: "Site", Cost: "36.00"}},
		Campsites: nps.Campsites{TotalSites: 238, RvOnly: 0, TentOnly: 10},
	}}})

	out, _ := call(t, ts.campgrounds, map[string]any{})
	cg := out["campgrounds"].([]any)[0].(map[string]any)
	assert.Equal(t, "Upper Pines", cg["name"])
	sites := cg["campsites"].(map[string]any)
	assert.EqualValues(t, 238, sites["total"])
	assert.EqualValues(t, 10, sites["tentOnly"])
}

func TestEvents(t *testing.T) {
	fc := &fakeClient{events: []nps.Event{{
		Title:        "Ranger Walk",
		Description:  "<p>Meet &amp; greet at the <b>valley</b> floor.</p>",
		SiteCode:     "yose",
		ParkFullName: "Yosemite National Park",
		IsFree:       true,
		Times:        []nps.EventTime{{TimeStart: "09:00 AM", TimeEnd: "10:00 AM"}},
		ContactName:  "Ranger Rick",
		ContactEmail: "rick@nps.gov",
	}}}
	ts := New(fc)

	out, _ := call(t, ts.events, map[string]any{"parkCode": "yose", "dateStart": "2026-07-01", "dateEnd": "2026-07-31"})
	assert.Equal(t, "2026-07-01", fc.lastEvents.DateStart)
	assert.Equal(t, "2026-07-31", fc.lastEvents.DateEnd)
	assert.Equal(t, "yose", fc.lastEvents.ParkCode)

	ev := out["events"].([]any)[0].(map[string]any)
	assert.Equal(t, true, ev["isFree"])
	assert.Equal(t, "Meet & greet at the valley floor.", ev["description"])
	assert.Equal(t, "Ranger Rick, rick@nps.gov", ev["contact"])
	assert.Equal(t, []any{map[string]any{"start": "09:00 AM", "end": "10:00 AM"}}, ev["times"])
}

// The tool table plugged into a real dispatcher.
func TestThroughDispatcher(t *testing.T) {
	reg, err := NewRegistry(&fakeClient{parks: []nps.Park{yosemite}})
	require.NoError(t, err)
	d := dispatcher.New(reg)
	ctx := context.Background()

	res := d.CallTool(ctx, dispatcher.ToolCall{Name: "findParks", Arguments: map[string]any{"state": "CA"}})
	assert.False(t, res.IsError)

	res = d.CallTool(ctx, dispatcher.ToolCall{Name: "getParkDetails", Arguments: map[string]any{"parkCode": float64(123)}})
	require.True(t, res.IsError)
	text := res.Content[0].(mcp.TextContent).Text
	assert.Contains(t, text, "Validation error")
	assert.Contains(t, text, "parkCode")

	for _, code := range []string{"", " ", ","} {
		res = d.CallTool(ctx, dispatcher.ToolCall{Name: "getParkDetails", Arguments: map[string]any{"parkCode": code}})
		require.True(t, res.IsError, "code %q", code)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "Validation error")
	}

	res = d.CallTool(ctx, dispatcher.ToolCall{Name: "getEvents", Arguments: map[string]any{"dateStart": "July 1"}})
	require.True(t, res.IsError)
	assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "dateStart")

	res = d.CallTool(ctx, dispatcher.ToolCall{Name: "findParks", Arguments: map[string]any{"limit": float64(51)}})
	assert.True(t, res.IsError)

	res = d.CallTool(ctx, dispatcher.ToolCall{Name: "findParks", Arguments: map[string]any{"stateCode": "California"}})
	assert.True(t, res.IsError)

	assert.Len(t, d.ListTools(), len(registry.Names()))
}
