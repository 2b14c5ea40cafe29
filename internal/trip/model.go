// README: Trip snapshot value object and status definitions.
package trip

import (
	"time"

	"voyage/internal/types"
)

type Status string

const (
	StatusDraft      Status = "draft"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Destination is one stop on the trip. DurationDays may be zero when the
// traveler has not split the stay yet.
type Destination struct {
	Country      string `json:"country"`
	City         string `json:"city"`
	DurationDays int    `json:"duration_days,omitempty"`
}

type Traveler struct {
	Nationality      string `json:"nationality"`
	ResidencyCountry string `json:"residency_country,omitempty"`
	OriginCity       string `json:"origin_city,omitempty"`
}

// Details holds the when/how-much facts of the trip. Dates are kept as the
// caller supplied them; CalendarDate normalizes for comparison.
type Details struct {
	DepartureDate string   `json:"departure_date"`
	ReturnDate    string   `json:"return_date"`
	Budget        float64  `json:"budget,omitempty"`
	Currency      string   `json:"currency,omitempty"`
	Purposes      []string `json:"purposes,omitempty"`
}

type Preferences struct {
	Style               string   `json:"style,omitempty"`
	Interests           []string `json:"interests,omitempty"`
	DietaryRestrictions []string `json:"dietary_restrictions,omitempty"`
	AccessibilityNeeds  []string `json:"accessibility_needs,omitempty"`
	AccommodationType   string   `json:"accommodation_type,omitempty"`
	Transportation      string   `json:"transportation,omitempty"`
}

// Snapshot is an immutable value: edits replace the whole snapshot, and two
// snapshots are compared structurally, never by identity.
type Snapshot struct {
	Traveler     Traveler      `json:"traveler"`
	Destinations []Destination `json:"destinations"`
	Details      Details       `json:"trip_details"`
	Preferences  Preferences   `json:"preferences"`
}

// Header is the minimal read model the report aggregator needs.
type Header struct {
	TripID        types.ID
	Destinations  []Destination
	DepartureDate string
	ReturnDate    string
	Status        Status
}

// CalendarDate parses a date in any of the surface representations trips
// arrive with and reduces it to a calendar day.
func CalendarDate(s string) (time.Time, bool) {
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05", "2006/01/02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}
