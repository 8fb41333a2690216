package dispatcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/aretw0/trailhead/pkg/registry"
	"github.com/aretw0/trailhead/pkg/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sourcegraph/conc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echo returns its validated arguments as JSON.
func echo(ctx context.Context, args schema.Args) registry.Result {
	return registry.JSON(args)
}

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg, err := registry.New(
		registry.Descriptor{
			Name:        registry.FindParks,
			Description: "Search parks",
			Schema: schema.MustObject(
				schema.Prop("stateCode", schema.String()),
				schema.Prop("limit", schema.Int(), schema.Min(1), schema.Max(50)),
			),
			Handler: echo,
		},
		registry.Descriptor{
			Name:        registry.GetParkDetails,
			Description: "Park details",
			Schema:      schema.MustObject(schema.Prop("parkCode", schema.String(), schema.Required())),
			Handler:     echo,
		},
		registry.Descriptor{
			Name:        registry.GetAlerts,
			Description: "Alerts",
			Schema:      schema.MustObject(),
			Handler: func(ctx context.Context, args schema.Args) registry.Result {
				return registry.Failure(errors.New("upstream unavailable"))
			},
		},
		registry.Descriptor{
			Name:        registry.GetCampgrounds,
			Description: "Campgrounds",
			Schema:      schema.MustObject(),
			Handler: func(ctx context.Context, args schema.Args) registry.Result {
				return registry.Failure(errors.New(""))
			},
		},
		registry.Descriptor{
			Name:        registry.GetEvents,
			Description: "Events",
			Schema: schema.MustObject(
				schema.Prop("limit", schema.Int(), schema.Max(50)),
				schema.Prop("dateStart", schema.String(), schema.Pattern(`^\d{4}-\d{2}-\d{2}$`)),
			),
			Handler: func(ctx context.Context, args schema.Args) registry.Result {
				panic("index out of range")
			},
		},
	)
	require.NoError(t, err)
	return reg
}

func textOf(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1, "every envelope carries exactly one content item")
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "content should be text, got %T", res.Content[0])
	assert.Equal(t, "text", text.Type)
	return text.Text
}

// plainText is safe to call off the test goroutine.
func plainText(res *mcp.CallToolResult) string {
	if res == nil || len(res.Content) != 1 {
		return ""
	}
	text, _ := res.Content[0].(mcp.TextContent)
	return text.Text
}

func errorOf(t *testing.T, res *mcp.CallToolResult) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(textOf(t, res)), &body))
	require.Contains(t, body, "error")
	return body
}

func TestCallTool_Success(t *testing.T) {
	d := New(testRegistry(t))

	res := d.CallTool(context.Background(), ToolCall{
		Name:      "findParks",
		Arguments: map[string]any{"stateCode": "CA"},
	})

	assert.False(t, res.IsError)
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(textOf(t, res)), &got))
	assert.Equal(t, map[string]any{"stateCode": "CA"}, got)
}

func TestCallTool_UndeclaredArgumentIsIgnored(t *testing.T) {
	d := New(testRegistry(t))

	res := d.CallTool(context.Background(), ToolCall{
		Name:      "findParks",
		Arguments: map[string]any{"state": "CA"},
	})

	assert.False(t, res.IsError)
	assert.JSONEq(t, `{}`, textOf(t, res))
}

func TestCallTool_MissingArguments(t *testing.T) {
	var transitions []State
	d := New(testRegistry(t), WithHooks(Hooks{
		OnTransition: func(ctx context.Context, e TransitionEvent) { transitions = append(transitions, e.To) },
	}))

	res := d.CallTool(context.Background(), ToolCall{Name: "findParks"})

	assert.True(t, res.IsError)
	body := errorOf(t, res)
	assert.Equal(t, "Missing arguments", body["error"])
	assert.Equal(t, "Arguments are required", body["message"])
	assert.Equal(t, []State{StateValidationFailed, StateResponded}, transitions,
		"missing arguments skips lookup and validation")
}

func TestCallTool_EmptyObjectIsNotMissing(t *testing.T) {
	d := New(testRegistry(t))

	res := d.CallTool(context.Background(), ToolCall{Name: "getParkDetails", Arguments: map[string]any{}})

	body := errorOf(t, res)
	assert.Equal(t, "Validation error", body["error"])
}

func TestCallTool_UnknownTool(t *testing.T) {
	d := New(testRegistry(t))

	res := d.CallTool(context.Background(), ToolCall{Name: "doesNotExist", Arguments: map[string]any{}})

	assert.True(t, res.IsError)
	body := errorOf(t, res)
	assert.Equal(t, "Unknown tool", body["error"])
	assert.Equal(t, "doesNotExist", body["tool"])
	assert.Contains(t, body["message"], "doesNotExist")
}

func TestCallTool_InvalidArguments(t *testing.T) {
	d := New(testRegistry(t))

	res := d.CallTool(context.Background(), ToolCall{
		Name:      "getParkDetails",
		Arguments: map[string]any{"parkCode": float64(123)},
	})

	body := errorOf(t, res)
	assert.Equal(t, "Validation error", body["error"])
	details, ok := body["details"].([]any)
	require.True(t, ok, "details should be a list")
	require.Len(t, details, 1)
	assert.Equal(t, "parkCode", details[0].(map[string]any)["field"])
}

func TestCallTool_InvalidArgumentsReportsEveryViolation(t *testing.T) {
	d := New(testRegistry(t))

	res := d.CallTool(context.Background(), ToolCall{
		Name:      "getEvents",
		Arguments: map[string]any{"limit": float64(500), "dateStart": "tomorrow"},
	})

	body := errorOf(t, res)
	assert.Equal(t, "Validation error", body["error"])
	details := body["details"].([]any)
	require.Len(t, details, 2)

	fields := []string{}
	for _, d := range details {
		fields = append(fields, d.(map[string]any)["field"].(string))
	}
	assert.ElementsMatch(t, []string{"limit", "dateStart"}, fields)
}

func TestCallTool_HandlerFailure(t *testing.T) {
	var completed CompletionEvent
	d := New(testRegistry(t), WithHooks(Hooks{
		OnComplete: func(ctx context.Context, e CompletionEvent) { completed = e },
	}))

	res := d.CallTool(context.Background(), ToolCall{Name: "getAlerts", Arguments: map[string]any{}})

	body := errorOf(t, res)
	assert.Equal(t, "Server error", body["error"])
	assert.Equal(t, "upstream unavailable", body["message"])
	assert.Equal(t, KindServerError, completed.Kind)
	assert.EqualError(t, completed.Err, "upstream unavailable")
}

func TestCallTool_HandlerFailureWithoutMessage(t *testing.T) {
	d := New(testRegistry(t))

	res := d.CallTool(context.Background(), ToolCall{Name: "getCampgrounds", Arguments: map[string]any{}})

	body := errorOf(t, res)
	assert.Equal(t, "Server error", body["error"])
	assert.Equal(t, "Unknown error", body["message"])
}

func TestCallTool_HandlerPanicIsContained(t *testing.T) {
	d := New(testRegistry(t))

	var res *mcp.CallToolResult
	require.NotPanics(t, func() {
		res = d.CallTool(context.Background(), ToolCall{Name: "getEvents", Arguments: map[string]any{}})
	})

	body := errorOf(t, res)
	assert.Equal(t, "Server error", body["error"])
	assert.Equal(t, "index out of range", body["message"])
}

func TestCallTool_TransitionSequence(t *testing.T) {
	tests := []struct {
		name string
		call ToolCall
		want []State
	}{
		{
			name: "success",
			call: ToolCall{Name: "findParks", Arguments: map[string]any{}},
			want: []State{StateValidating, StateDispatching, StateHandlerSucceeded, StateResponded},
		},
		{
			name: "unknown tool",
			call: ToolCall{Name: "nope", Arguments: map[string]any{}},
			want: []State{StateValidating, StateValidationFailed, StateResponded},
		},
		{
			name: "invalid arguments",
			call: ToolCall{Name: "getParkDetails", Arguments: map[string]any{}},
			want: []State{StateValidating, StateValidationFailed, StateResponded},
		},
		{
			name: "handler failure",
			call: ToolCall{Name: "getAlerts", Arguments: map[string]any{}},
			want: []State{StateValidating, StateDispatching, StateHandlerFailed, StateResponded},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []State
			completions := 0
			d := New(testRegistry(t), WithHooks(Hooks{
				OnTransition: func(ctx context.Context, e TransitionEvent) { got = append(got, e.To) },
				OnComplete:   func(ctx context.Context, e CompletionEvent) { completions++ },
			}))

			d.CallTool(context.Background(), tt.call)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, 1, completions, "exactly one completion per call")
		})
	}
}

func TestCallTool_Totality(t *testing.T) {
	d := New(testRegistry(t))
	names := []string{"findParks", "getParkDetails", "getAlerts", "getCampgrounds", "getEvents", "doesNotExist", ""}
	payloads := []map[string]any{
		nil,
		{},
		{"parkCode": "yose"},
		{"parkCode": true, "limit": "x"},
		{"limit": float64(10)},
	}

	for _, name := range names {
		for _, args := range payloads {
			t.Run(fmt.Sprintf("%s/%v", name, args), func(t *testing.T) {
				var res *mcp.CallToolResult
				require.NotPanics(t, func() {
					res = d.CallTool(context.Background(), ToolCall{Name: name, Arguments: args})
				})
				require.NotNil(t, res)
				assert.NotEmpty(t, res.Content)
			})
		}
	}
}

func TestListTools_Idempotent(t *testing.T) {
	d := New(testRegistry(t))

	first, err := json.Marshal(d.ListTools())
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := json.Marshal(d.ListTools())
		require.NoError(t, err)
		assert.Equal(t, string(first), string(again))
	}
}

func TestListTools_Shape(t *testing.T) {
	d := New(testRegistry(t))

	raw, err := json.Marshal(d.ListTools())
	require.NoError(t, err)

	var tools []map[string]any
	require.NoError(t, json.Unmarshal(raw, &tools))
	require.Len(t, tools, 5)

	assert.Equal(t, "findParks", tools[0]["name"])
	assert.Equal(t, "Search parks", tools[0]["description"])
	inputSchema, ok := tools[1]["inputSchema"].(map[string]any)
	require.True(t, ok, "inputSchema should be an object")
	assert.Equal(t, "object", inputSchema["type"])
	assert.Equal(t, []any{"parkCode"}, inputSchema["required"])
}

func TestCallTool_Isolation(t *testing.T) {
	reg := testRegistry(t)
	const rounds = 50

	var wg conc.WaitGroup
	for i := 0; i < rounds; i++ {
		i := i
		wg.Go(func() {
			d := New(reg)
			code := fmt.Sprintf("p%03d", i)
			res := d.CallTool(context.Background(), ToolCall{
				Name:      "getParkDetails",
				Arguments: map[string]any{"parkCode": code},
			})
			assert.JSONEq(t, fmt.Sprintf(`{"parkCode":%q}`, code), plainText(res))
		})
		wg.Go(func() {
			d := New(reg)
			state := fmt.Sprintf("S%d", i)
			res := d.CallTool(context.Background(), ToolCall{
				Name:      "findParks",
				Arguments: map[string]any{"stateCode": state, "parkCode": "shadow"},
			})
			assert.JSONEq(t, fmt.Sprintf(`{"stateCode":%q}`, state), plainText(res))
		})
	}
	wg.Wait()
}

func TestKindLabels(t *testing.T) {
	assert.Equal(t, "Missing arguments", KindMissingArguments.String())
	assert.Equal(t, "Unknown tool", KindUnknownTool.String())
	assert.Equal(t, "Validation error", KindInvalidArguments.String())
	assert.Equal(t, "Server error", KindServerError.String())
	assert.Equal(t, "success", KindNone.Outcome())
}
