package dispatcher_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/trailhead/pkg/dispatcher"
	"github.com/aretw0/trailhead/pkg/registry"
	"github.com/aretw0/trailhead/pkg/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// A successful call and a handled failure both come back as results;
// only IsError tells them apart.
func ExampleDispatcher_CallTool() {
	reg, err := registry.New(registry.Descriptor{
		Name:        registry.GetParkDetails,
		Description: "Park details",
		Schema:      schema.MustObject(schema.Prop("parkCode", schema.String(), schema.Required())),
		Handler: func(ctx context.Context, args schema.Args) registry.Result {
			return registry.Text("Yosemite National Park")
		},
	})
	if err != nil {
		log.Fatal(err)
	}

	d := dispatcher.New(reg)
	ctx := context.Background()

	res := d.CallTool(ctx, dispatcher.ToolCall{Name: "getParkDetails", Arguments: map[string]any{"parkCode": "yose"}})
	fmt.Println(res.IsError, res.Content[0].(mcp.TextContent).Text)

	res = d.CallTool(ctx, dispatcher.ToolCall{Name: "doesNotExist", Arguments: map[string]any{}})
	fmt.Println(res.IsError)
	fmt.Println(res.Content[0].(mcp.TextContent).Text)

	// Output:
	// false Yosemite National Park
	// true
	// {
	//   "error": "Unknown tool",
	//   "message": "Unknown tool: doesNotExist",
	//   "tool": "doesNotExist"
	// }
}
