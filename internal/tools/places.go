package tools

import (
	"context"
	"fmt"

	"github.com/aretw0/trailhead/internal/nps"
	"github.com/aretw0/trailhead/pkg/registry"
	"github.com/aretw0/trailhead/pkg/schema"
)

type visitorCenter struct {
	Name           string       `json:"name"`
	ParkCode       string       `json:"parkCode"`
	Description    string       `json:"description"`
	URL            string       `json:"url,omitempty"`
	DirectionsInfo string       `json:"directionsInfo,omitempty"`
	Coordinates    *coordinates `json:"coordinates,omitempty"`
	Address        string       `json:"address,omitempty"`
	OperatingHours []hours      `json:"operatingHours"`
	Contacts       *contacts    `json:"contacts,omitempty"`
}

type visitorCentersOutput struct {
	Total          int             `json:"total"`
	VisitorCenters []visitorCenter `json:"visitorCenters"`
}

type campsites struct {
	Total             int `json:"total"`
	Group             int `json:"group"`
	TentOnly          int `json:"tentOnly"`
	RVOnly            int `json:"rvOnly"`
	ElectricalHookups int `json:"electricalHookups"`
	Horse             int `json:"horse"`
	WalkBoatTo        int `json:"walkBoatTo"`
	Other             int `json:"other"`
}

type campground struct {
	Name            string         `json:"name"`
	ParkCode        string         `json:"parkCode"`
	Description     string         `json:"description"`
	URL             string         `json:"url,omitempty"`
	Coordinates     *coordinates   `json:"coordinates,omitempty"`
	Address         string         `json:"address,omitempty"`
	ReservationInfo string         `json:"reservationInfo,omitempty"`
	ReservationURL  string         `json:"reservationUrl,omitempty"`
	Fees            []fee          `json:"fees"`
	Campsites       campsites      `json:"campsites"`
	Amenities       map[string]any `json:"amenities,omitempty"`
	OperatingHours  []hours        `json:"operatingHours"`
	Contacts        *contacts      `json:"contacts,omitempty"`
}

type campgroundsOutput struct {
	Total       int          `json:"total"`
	Campgrounds []campground `json:"campgrounds"`
}

func (t *Toolset) visitorCenters(ctx context.Context, args schema.Args) registry.Result {
	var a listArgs
	if err := args.Decode(&a); err != nil {
		return registry.Failure(err)
	}

	resp, err := t.client.VisitorCenters(ctx, a.params())
	if err != nil {
		return registry.Failure(fmt.Errorf("list visitor centers: %w", err))
	}

	out := visitorCentersOutput{
		Total:          int(resp.Total),
		VisitorCenters: make([]visitorCenter, 0, len(resp.Data)),
	}
	for _, vc := range resp.Data {
		out.VisitorCenters = append(out.VisitorCenters, formatVisitorCenter(vc))
	}
	return registry.JSON(out)
}

func (t *Toolset) campgrounds(ctx context.Context, args schema.Args) registry.Result {
	var a listArgs
	if err := args.Decode(&a); err != nil {
		return registry.Failure(err)
	}

	resp, err := t.client.Campgrounds(ctx, a.params())
	if err != nil {
		return registry.Failure(fmt.Errorf("list campgrounds: %w", err))
	}

	out := campgroundsOutput{
		Total:       int(resp.Total),
		Campgrounds: make([]campground, 0, len(resp.Data)),
	}
	for _, cg := range resp.Data {
		out.Campgrounds = append(out.Campgrounds, formatCampground(cg))
	}
	return registry.JSON(out)
}

func formatVisitorCenter(vc nps.VisitorCenter) visitorCenter {
	return visitorCenter{
		Name:           vc.Name,
		ParkCode:       vc.ParkCode,
		Description:    cleanText(vc.Description),
		URL:            vc.URL,
		DirectionsInfo: cleanText(vc.DirectionsInfo),
		Coordinates:    coordsOf(vc.Latitude, vc.Longitude),
		Address:        addressOf(vc.Addresses),
		OperatingHours: hoursOf(vc.OperatingHours),
		Contacts:       contactsOf(vc.Contacts),
	}
}

func formatCampground(cg nps.Campground) campground {
	return campground{
		Name:            cg.Name,
		ParkCode:        cg.ParkCode,
		Description:     cleanText(cg.Description),
		URL:             cg.URL,
		Coordinates:     coordsOf(cg.Latitude, cg.Longitude),
		Address:         addressOf(cg.Addresses),
		ReservationInfo: cleanText(cg.ReservationInfo),
		ReservationURL:  cg.ReservationURL,
		Fees:            feesOf(cg.Fees),
		Campsites: campsites{
			Total:             int(cg.Campsites.TotalSites),
			Group:             int(cg.Campsites.Group),
			TentOnly:          int(cg.Campsites.TentOnly),
			RVOnly:            int(cg.Campsites.RvOnly),
			ElectricalHookups: int(cg.Campsites.ElectricalHookups),
			Horse:             int(cg.Campsites.Horse),
			WalkBoatTo:        int(cg.Campsites.WalkBoatTo),
			Other:             int(cg.Campsites.Other),
		},
		Amenities:      cg.Amenities,
		OperatingHours: hoursOf(cg.OperatingHours),
		Contacts:       contactsOf(cg.Contacts),
	}
}
