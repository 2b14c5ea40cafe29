package agent

import (
	"fmt"
	"strings"

	"voyage/internal/trip"
)

// sectionBriefs describes, per agent type, what the section must cover.
var sectionBriefs = map[string]string{
	TypeVisa:        "Visa and entry requirements for the traveler's nationality at every destination: visa type, application route, processing time, required documents.",
	TypeWeather:     "Expected weather and seasonal conditions at each destination during the travel dates, with packing advice.",
	TypeCurrency:    "Local currencies, current exchange-rate context against the trip budget currency, payment customs (cards vs cash), and tipping norms.",
	TypeCulture:     "Cultural etiquette, customs, dress codes, and social norms relevant to the stated trip purposes and interests.",
	TypeFood:        "Local cuisine highlights and must-try dishes, honoring the traveler's dietary restrictions with safe alternatives.",
	TypeAttractions: "Top attractions and activities matched to the traveler's interests, budget, and accessibility needs.",
	TypeItinerary:   "A day-by-day itinerary across all destinations fitting the dates, budget, travel style, and transportation preference.",
	TypeCountry:     "Country essentials for each destination: language, plugs and voltage, emergency numbers, safety notes, local transport basics.",
	TypeFlight:      "Flight routing guidance from the origin city: sensible connections, typical fares against the budget, booking-timing advice.",
}

// buildSectionPrompt renders the instruction for one agent invocation.
// extraContext carries grounded data (e.g. place lookups) when available.
func buildSectionPrompt(agentType string, snap trip.Snapshot, extraContext string) string {
	var dests []string
	for _, d := range snap.Destinations {
		dests = append(dests, fmt.Sprintf("%s, %s", d.City, d.Country))
	}

	var b strings.Builder
	fmt.Fprintf(&b, `Role: You are the %s specialist of a travel intelligence service.
Write one report section as JSON: {"title": string, "content": markdown string, "confidence": number between 0 and 1, "sources": [{"url": string, "title": string}]}.
Confidence reflects how certain you are the facts are current and complete.

Trip context:
- Traveler nationality: %s
- Residency country: %s
- Origin city: %s
- Destinations: %s
- Dates: %s to %s
- Budget: %.0f %s
- Purposes: %s
- Travel style: %s
- Interests: %s
- Dietary restrictions: %s
- Accessibility needs: %s
- Accommodation: %s
- Transportation preference: %s

Section brief: %s`,
		agentType,
		orUnknown(snap.Traveler.Nationality),
		orUnknown(snap.Traveler.ResidencyCountry),
		orUnknown(snap.Traveler.OriginCity),
		strings.Join(dests, "; "),
		orUnknown(snap.Details.DepartureDate),
		orUnknown(snap.Details.ReturnDate),
		snap.Details.Budget,
		orUnknown(snap.Details.Currency),
		joinOrUnknown(snap.Details.Purposes),
		orUnknown(snap.Preferences.Style),
		joinOrUnknown(snap.Preferences.Interests),
		joinOrUnknown(snap.Preferences.DietaryRestrictions),
		joinOrUnknown(snap.Preferences.AccessibilityNeeds),
		orUnknown(snap.Preferences.AccommodationType),
		orUnknown(snap.Preferences.Transportation),
		sectionBriefs[agentType],
	)

	if extraContext != "" {
		b.WriteString("\n\nGrounded data (prefer over your own recall):\n")
		b.WriteString(extraContext)
	}
	return b.String()
}

func orUnknown(s string) string {
	if s == "" {
		return "UNKNOWN"
	}
	return s
}

func joinOrUnknown(vals []string) string {
	if len(vals) == 0 {
		return "NONE"
	}
	return strings.Join(vals, ", ")
}
