// README: Static dependency, duration, and phase tables for every agent type.
package agent

import "time"

const (
	TypeVisa        = "visa"
	TypeWeather     = "weather"
	TypeCurrency    = "currency"
	TypeCulture     = "culture"
	TypeFood        = "food"
	TypeAttractions = "attractions"
	TypeItinerary   = "itinerary"
	TypeCountry     = "country"
	TypeFlight      = "flight"
)

// AllTypes lists every known agent in a stable order.
var AllTypes = []string{
	TypeVisa, TypeWeather, TypeCurrency, TypeCulture, TypeFood,
	TypeAttractions, TypeItinerary, TypeCountry, TypeFlight,
}

// Trip field keys as they appear in change maps. Agents declare which of
// these they read; the change detector intersects edited keys against this.
const (
	FieldNationality         = "nationality"
	FieldResidencyCountry    = "residency_country"
	FieldOriginCity          = "origin_city"
	FieldDestinations        = "destinations"
	FieldDepartureDate       = "departure_date"
	FieldReturnDate          = "return_date"
	FieldBudget              = "budget"
	FieldCurrency            = "currency"
	FieldPurposes            = "purposes"
	FieldStyle               = "style"
	FieldInterests           = "interests"
	FieldDietaryRestrictions = "dietary_restrictions"
	FieldAccessibilityNeeds  = "accessibility_needs"
	FieldAccommodationType   = "accommodation_type"
	FieldTransportation      = "transportation"
)

// DefaultDuration is assumed for agents without a registered estimate.
const DefaultDuration = 15 * time.Second

// fieldDependencies represents "which trip fields feed which agent" as code.
var fieldDependencies = map[string][]string{
	TypeVisa:        {FieldNationality, FieldResidencyCountry, FieldDestinations, FieldDepartureDate, FieldReturnDate, FieldPurposes},
	TypeWeather:     {FieldDestinations, FieldDepartureDate, FieldReturnDate},
	TypeCurrency:    {FieldDestinations, FieldBudget, FieldCurrency},
	TypeCulture:     {FieldDestinations, FieldPurposes, FieldInterests},
	TypeFood:        {FieldDestinations, FieldDietaryRestrictions},
	TypeAttractions: {FieldDestinations, FieldInterests, FieldBudget, FieldAccessibilityNeeds},
	TypeItinerary:   {FieldDestinations, FieldInterests, FieldBudget, FieldStyle, FieldDepartureDate, FieldReturnDate, FieldTransportation},
	TypeCountry:     {FieldDestinations, FieldNationality},
	TypeFlight:      {FieldOriginCity, FieldDestinations, FieldDepartureDate, FieldReturnDate, FieldBudget},
}

var expectedDurations = map[string]time.Duration{
	TypeVisa:        20 * time.Second,
	TypeWeather:     10 * time.Second,
	TypeCurrency:    8 * time.Second,
	TypeCulture:     15 * time.Second,
	TypeFood:        12 * time.Second,
	TypeAttractions: 18 * time.Second,
	TypeItinerary:   30 * time.Second,
	TypeCountry:     10 * time.Second,
	TypeFlight:      15 * time.Second,
}

// phases: 1 = depends only on identity/date/budget fields, 2 = synthesizes
// broader context and must wait for phase 1 to settle.
var phases = map[string]int{
	TypeVisa:        1,
	TypeWeather:     1,
	TypeCurrency:    1,
	TypeCulture:     1,
	TypeFood:        1,
	TypeAttractions: 1,
	TypeCountry:     1,
	TypeItinerary:   2,
	TypeFlight:      2,
}

// Dependencies returns the trip fields the named agent reads. Unknown agents
// have no declared dependencies.
func Dependencies(name string) []string {
	return fieldDependencies[name]
}

// Duration returns the expected wall-clock time for one invocation of the
// named agent, falling back to DefaultDuration for unregistered agents.
func Duration(name string) time.Duration {
	if d, ok := expectedDurations[name]; ok {
		return d
	}
	return DefaultDuration
}

// Phase returns the orchestration phase for the named agent. Unknown agents
// land in phase 1.
func Phase(name string) int {
	if p, ok := phases[name]; ok {
		return p
	}
	return 1
}

// PhasePartition splits the selected agents into ordered phase groups,
// dropping empty phases. Relative phase order is preserved even when only a
// subset of agents is selected.
func PhasePartition(selected []string) [][]string {
	var phase1, phase2 []string
	for _, name := range selected {
		if Phase(name) == 2 {
			phase2 = append(phase2, name)
		} else {
			phase1 = append(phase1, name)
		}
	}
	var out [][]string
	if len(phase1) > 0 {
		out = append(out, phase1)
	}
	if len(phase2) > 0 {
		out = append(out, phase2)
	}
	return out
}
