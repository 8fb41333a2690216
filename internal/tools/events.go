package tools

import (
	"context"
	"fmt"

	"github.com/aretw0/trailhead/internal/nps"
	"github.com/aretw0/trailhead/pkg/registry"
	"github.com/aretw0/trailhead/pkg/schema"
)

type eventTime struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type event struct {
	Title        string      `json:"title"`
	ParkName     string      `json:"parkName,omitempty"`
	ParkCode     string      `json:"parkCode,omitempty"`
	Description  string      `json:"description"`
	Location     string      `json:"location,omitempty"`
	DateStart    string      `json:"dateStart,omitempty"`
	DateEnd      string      `json:"dateEnd,omitempty"`
	Times        []eventTime `json:"times,omitempty"`
	Types        []string    `json:"types,omitempty"`
	Category     string      `json:"category,omitempty"`
	IsFree       bool        `json:"isFree"`
	FeeInfo      string      `json:"feeInfo,omitempty"`
	Registration string      `json:"registration,omitempty"`
	InfoURL      string      `json:"infoUrl,omitempty"`
	Contact      string      `json:"contact,omitempty"`
}

type eventsOutput struct {
	Total  int     `json:"total"`
	Events []event `json:"events"`
}

func (t *Toolset) events(ctx context.Context, args schema.Args) registry.Result {
	var a eventsArgs
	if err := args.Decode(&a); err != nil {
		return registry.Failure(err)
	}

	resp, err := t.client.Events(ctx, nps.EventParams{
		Params: nps.Params{
			ParkCode: normalizeCodes(a.ParkCode, false),
			Query:    a.Query,
			Limit:    limitOr(a.Limit),
			Start:    a.Start,
		},
		DateStart: a.DateStart,
		DateEnd:   a.DateEnd,
	})
	if err != nil {
		return registry.Failure(fmt.Errorf("list events: %w", err))
	}

	out := eventsOutput{
		Total:  int(resp.Total),
		Events: make([]event, 0, len(resp.Data)),
	}
	for _, e := range resp.Data {
		out.Events = append(out.Events, formatEvent(e))
	}
	return registry.JSON(out)
}

func formatEvent(e nps.Event) event {
	times := make([]eventTime, 0, len(e.Times))
	for _, tm := range e.Times {
		times = append(times, eventTime{Start: tm.TimeStart, End: tm.TimeEnd})
	}
	contact := e.ContactName
	for _, detail := range []string{e.ContactEmail, e.ContactPhone} {
		if detail == "" {
			continue
		}
		if contact != "" {
			contact += ", "
		}
		contact += detail
	}
	return event{
		Title:        e.Title,
		ParkName:     e.ParkFullName,
		ParkCode:     e.SiteCode,
		Description:  cleanText(e.Description),
		Location:     e.Location,
		DateStart:    e.DateStart,
		DateEnd:      e.DateEnd,
		Times:        times,
		Types:        e.Types,
		Category:     e.Category,
		IsFree:       bool(e.IsFree),
		FeeInfo:      cleanText(e.FeeInfo),
		Registration: cleanText(e.RegResInfo),
		InfoURL:      e.InfoURL,
		Contact:      contact,
	}
}
