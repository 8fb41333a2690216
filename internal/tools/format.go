package tools

import (
	"strings"

	"github.com/aretw0/trailhead/internal/nps"
)

const defaultLimit = 10

type coordinates struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

type phone struct {
	Type      string `json:"type,omitempty"`
	Number    string `json:"number"`
	Extension string `json:"extension,omitempty"`
}

type contacts struct {
	PhoneNumbers   []phone  `json:"phoneNumbers,omitempty"`
	EmailAddresses []string `json:"emailAddresses,omitempty"`
}

type fee struct {
	Title       string `json:"title"`
	Cost        string `json:"cost"`
	Description string `json:"description,omitempty"`
}

type hours struct {
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Standard    map[string]string `json:"standardHours,omitempty"`
}

type image struct {
	URL     string `json:"url"`
	Title   string `json:"title,omitempty"`
	AltText string `json:"altText,omitempty"`
	Caption string `json:"caption,omitempty"`
	Credit  string `json:"credit,omitempty"`
}

func coordsOf(lat, lon string) *coordinates {
	if lat == "" && lon == "" {
		return nil
	}
	return &coordinates{Latitude: lat, Longitude: lon}
}

func contactsOf(c nps.Contacts) *contacts {
	out := &contacts{}
	for _, p := range c.PhoneNumbers {
		if p.PhoneNumber == "" {
			continue
		}
		out.PhoneNumbers = append(out.PhoneNumbers, phone{Type: p.Type, Number: p.PhoneNumber, Extension: p.Extension})
	}
	for _, e := range c.EmailAddresses {
		if e.EmailAddress != "" {
			out.EmailAddresses = append(out.EmailAddresses, e.EmailAddress)
		}
	}
	if len(out.PhoneNumbers) == 0 && len(out.EmailAddresses) == 0 {
		return nil
	}
	return out
}

func feesOf(fees []nps.Fee) []fee {
	out := make([]fee, 0, len(fees))
	for _, f := range fees {
		out = append(out, fee{Title: f.Title, Cost: f.Cost, Description: f.Description})
	}
	return out
}

func hoursOf(hs []nps.OperatingHours) []hours {
	out := make([]hours, 0, len(hs))
	for _, h := range hs {
		out = append(out, hours{
			Name:        h.Name,
			Description: h.Description,
			Standard:    standardHours(h.StandardHours),
		})
	}
	return out
}

func standardHours(s nps.StandardHours) map[string]string {
	days := map[string]string{
		"monday":    s.Monday,
		"tuesday":   s.Tuesday,
		"wednesday": s.Wednesday,
		"thursday":  s.Thursday,
		"friday":    s.Friday,
		"saturday":  s.Saturday,
		"sunday":    s.Sunday,
	}
	for k, v := range days {
		if v == "" {
			delete(days, k)
		}
	}
	if len(days) == 0 {
		return nil
	}
	return days
}

func imagesOf(imgs []nps.Image, max int) []image {
	out := make([]image, 0, min(len(imgs), max))
	for _, img := range imgs {
		if len(out) == max {
			break
		}
		out = append(out, image{URL: img.URL, Title: img.Title, AltText: img.AltText, Caption: img.Caption, Credit: img.Credit})
	}
	return out
}

// addressOf formats the first physical address, falling back to the first one.
func addressOf(addrs []nps.Address) string {
	if len(addrs) == 0 {
		return ""
	}
	a := addrs[0]
	for _, cand := range addrs {
		if strings.EqualFold(cand.Type, "Physical") {
			a = cand
			break
		}
	}
	var parts []string
	for _, s := range []string{a.Line1, a.Line2, a.Line3, a.City} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	tail := strings.TrimSpace(a.StateCode + " " + a.PostalCode)
	if tail != "" {
		parts = append(parts, tail)
	}
	return strings.Join(parts, ", ")
}

// splitList splits a comma separated argument into trimmed, non-empty items.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// normalizeCodes lower-cases park codes and upper-cases state codes the way
// the API expects them.
func normalizeCodes(s string, upper bool) string {
	items := splitList(s)
	for i, item := range items {
		if upper {
			items[i] = strings.ToUpper(item)
		} else {
			items[i] = strings.ToLower(item)
		}
	}
	return strings.Join(items, ",")
}

func limitOr(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	return limit
}
