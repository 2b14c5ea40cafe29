// README: Defensive normalization of loosely-typed trip payloads into a Snapshot.
package trip

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrBadSnapshot = errors.New("unrecognized trip snapshot payload")

// SnapshotFromAny accepts either a fully-typed Snapshot (or pointer to one)
// or a loosely-typed map describing the same logical trip, and returns a
// normalized Snapshot. Stored reports and queue payloads both feed through
// here, so the change detector never sees two representations of one trip.
func SnapshotFromAny(v any) (Snapshot, error) {
	switch s := v.(type) {
	case Snapshot:
		return normalize(s), nil
	case *Snapshot:
		if s == nil {
			return Snapshot{}, ErrBadSnapshot
		}
		return normalize(*s), nil
	case map[string]any:
		raw, err := json.Marshal(s)
		if err != nil {
			return Snapshot{}, fmt.Errorf("encode snapshot map: %w", err)
		}
		var snap Snapshot
		if err := json.Unmarshal(raw, &snap); err != nil {
			return Snapshot{}, fmt.Errorf("decode snapshot map: %w", err)
		}
		return normalize(snap), nil
	case []byte:
		var snap Snapshot
		if err := json.Unmarshal(s, &snap); err != nil {
			return Snapshot{}, fmt.Errorf("decode snapshot json: %w", err)
		}
		return normalize(snap), nil
	default:
		return Snapshot{}, ErrBadSnapshot
	}
}

// normalize trims whitespace on every comparable scalar so that enum-wrapped
// and raw-string values of the same field compare equal by underlying value.
func normalize(s Snapshot) Snapshot {
	s.Traveler.Nationality = strings.TrimSpace(s.Traveler.Nationality)
	s.Traveler.ResidencyCountry = strings.TrimSpace(s.Traveler.ResidencyCountry)
	s.Traveler.OriginCity = strings.TrimSpace(s.Traveler.OriginCity)

	for i := range s.Destinations {
		s.Destinations[i].Country = strings.TrimSpace(s.Destinations[i].Country)
		s.Destinations[i].City = strings.TrimSpace(s.Destinations[i].City)
	}

	s.Details.DepartureDate = strings.TrimSpace(s.Details.DepartureDate)
	s.Details.ReturnDate = strings.TrimSpace(s.Details.ReturnDate)
	s.Details.Currency = strings.ToUpper(strings.TrimSpace(s.Details.Currency))
	s.Details.Purposes = trimAll(s.Details.Purposes)

	s.Preferences.Style = strings.TrimSpace(s.Preferences.Style)
	s.Preferences.AccommodationType = strings.TrimSpace(s.Preferences.AccommodationType)
	s.Preferences.Transportation = strings.TrimSpace(s.Preferences.Transportation)
	s.Preferences.Interests = trimAll(s.Preferences.Interests)
	s.Preferences.DietaryRestrictions = trimAll(s.Preferences.DietaryRestrictions)
	s.Preferences.AccessibilityNeeds = trimAll(s.Preferences.AccessibilityNeeds)
	return s
}

func trimAll(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
