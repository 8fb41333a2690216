package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/trailhead/internal/nps"
	"github.com/aretw0/trailhead/pkg/registry"
	"github.com/aretw0/trailhead/pkg/schema"
)

type parkSummary struct {
	Name        string   `json:"name"`
	Code        string   `json:"code"`
	States      []string `json:"states"`
	Designation string   `json:"designation,omitempty"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	Activities  []string `json:"activities,omitempty"`
}

type parksOutput struct {
	// Total is the upstream count, before any activities filter.
	Total   int           `json:"total"`
	Limit   int           `json:"limit"`
	Start   int           `json:"start"`
	Matched *int          `json:"matched,omitempty"`
	Parks   []parkSummary `json:"parks"`
}

type parkDetails struct {
	Name           string       `json:"name"`
	Code           string       `json:"code"`
	URL            string       `json:"url"`
	Description    string       `json:"description"`
	Designation    string       `json:"designation,omitempty"`
	States         []string     `json:"states"`
	Coordinates    *coordinates `json:"coordinates,omitempty"`
	WeatherInfo    string       `json:"weatherInfo,omitempty"`
	DirectionsInfo string       `json:"directionsInfo,omitempty"`
	DirectionsURL  string       `json:"directionsUrl,omitempty"`
	Activities     []string     `json:"activities"`
	Topics         []string     `json:"topics,omitempty"`
	Contacts       *contacts    `json:"contacts,omitempty"`
	EntranceFees   []fee        `json:"entranceFees"`
	EntrancePasses []fee        `json:"entrancePasses,omitempty"`
	OperatingHours []hours      `json:"operatingHours"`
	Address        string       `json:"address,omitempty"`
	Images         []image      `json:"images"`
}

type notFound struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

const maxImages = 5

func (t *Toolset) findParks(ctx context.Context, args schema.Args) registry.Result {
	var a findParksArgs
	if err := args.Decode(&a); err != nil {
		return registry.Failure(err)
	}

	resp, err := t.client.Parks(ctx, nps.Params{
		StateCode: normalizeCodes(a.StateCode, true),
		Query:     a.Query,
		Limit:     limitOr(a.Limit),
		Start:     a.Start,
	})
	if err != nil {
		return registry.Failure(fmt.Errorf("search parks: %w", err))
	}

	wanted := splitList(a.Activities)
	out := parksOutput{
		Total: int(resp.Total),
		Limit: int(resp.Limit),
		Start: int(resp.Start),
		Parks: make([]parkSummary, 0, len(resp.Data)),
	}
	for _, p := range resp.Data {
		if len(wanted) > 0 && !offersAny(p, wanted) {
			continue
		}
		out.Parks = append(out.Parks, summarizePark(p, len(wanted) > 0))
	}
	if len(wanted) > 0 {
		matched := len(out.Parks)
		out.Matched = &matched
	}
	t.logger.Debug("findParks", "total", out.Total, "returned", len(out.Parks))
	return registry.JSON(out)
}

func (t *Toolset) parkDetails(ctx context.Context, args schema.Args) registry.Result {
	var a parkDetailsArgs
	if err := args.Decode(&a); err != nil {
		return registry.Failure(err)
	}
	code := normalizeCodes(a.ParkCode, false)

	var park *nps.Park
	err := fmt.Errorf("blank park code: %w", nps.ErrNotFound)
	if code != "" {
		park, err = t.client.Park(ctx, code)
	}
	if errors.Is(err, nps.ErrNotFound) {
		return registry.JSON(notFound{
			Error:   "Park not found",
			Message: fmt.Sprintf("No park found with park code: %s", code),
		})
	}
	if err != nil {
		return registry.Failure(fmt.Errorf("get park %s: %w", code, err))
	}
	return registry.JSON(detailPark(*park))
}

func offersAny(p nps.Park, wanted []string) bool {
	for _, act := range p.Activities {
		for _, w := range wanted {
			if strings.EqualFold(act.Name, w) {
				return true
			}
		}
	}
	return false
}

func summarizePark(p nps.Park, withActivities bool) parkSummary {
	s := parkSummary{
		Name:        p.FullName,
		Code:        p.ParkCode,
		States:      splitList(p.States),
		Designation: p.Designation,
		Description: cleanText(p.Description),
		URL:         p.URL,
	}
	if withActivities {
		s.Activities = activityNames(p.Activities)
	}
	return s
}

func detailPark(p nps.Park) parkDetails {
	topics := make([]string, 0, len(p.Topics))
	for _, tp := range p.Topics {
		topics = append(topics, tp.Name)
	}
	return parkDetails{
		Name:           p.FullName,
		Code:           p.ParkCode,
		URL:            p.URL,
		Description:    cleanText(p.Description),
		Designation:    p.Designation,
		States:         splitList(p.States),
		Coordinates:    coordsOf(p.Latitude, p.Longitude),
		WeatherInfo:    cleanText(p.WeatherInfo),
		DirectionsInfo: cleanText(p.DirectionsInfo),
		DirectionsURL:  p.DirectionsURL,
		Activities:     activityNames(p.Activities),
		Topics:         topics,
		Contacts:       contactsOf(p.Contacts),
		EntranceFees:   feesOf(p.EntranceFees),
		EntrancePasses: feesOf(p.EntrancePasses),
		OperatingHours: hoursOf(p.OperatingHours),
		Address:        addressOf(p.Addresses),
		Images:         imagesOf(p.Images, maxImages),
	}
}

func activityNames(acts []nps.Activity) []string {
	out := make([]string, 0, len(acts))
	for _, a := range acts {
		out = append(out, a.Name)
	}
	return out
}
