package tools

import (
	"context"
	"fmt"

	"github.com/aretw0/trailhead/internal/nps"
	"github.com/aretw0/trailhead/pkg/registry"
	"github.com/aretw0/trailhead/pkg/schema"
)

type alert struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	URL         string `json:"url,omitempty"`
	ParkCode    string `json:"parkCode"`
	LastUpdated string `json:"lastUpdated,omitempty"`
}

type alertsOutput struct {
	Total  int     `json:"total"`
	Alerts []alert `json:"alerts"`
	// Set only when the alerts span more than one park.
	AlertsByPark map[string][]alert `json:"alertsByPark,omitempty"`
}

func (t *Toolset) alerts(ctx context.Context, args schema.Args) registry.Result {
	var a listArgs
	if err := args.Decode(&a); err != nil {
		return registry.Failure(err)
	}

	resp, err := t.client.Alerts(ctx, a.params())
	if err != nil {
		return registry.Failure(fmt.Errorf("list alerts: %w", err))
	}

	out := alertsOutput{
		Total:  int(resp.Total),
		Alerts: make([]alert, 0, len(resp.Data)),
	}
	byPark := map[string][]alert{}
	for _, al := range resp.Data {
		f := formatAlert(al)
		out.Alerts = append(out.Alerts, f)
		byPark[f.ParkCode] = append(byPark[f.ParkCode], f)
	}
	if len(byPark) > 1 {
		out.AlertsByPark = byPark
	}
	return registry.JSON(out)
}

func formatAlert(a nps.Alert) alert {
	return alert{
		Title:       a.Title,
		Description: cleanText(a.Description),
		Category:    a.Category,
		URL:         a.URL,
		ParkCode:    a.ParkCode,
		LastUpdated: a.LastIndexedDate,
	}
}

func (a listArgs) params() nps.Params {
	return nps.Params{
		ParkCode: normalizeCodes(a.ParkCode, false),
		Query:    a.Query,
		Limit:    limitOr(a.Limit),
		Start:    a.Start,
	}
}
