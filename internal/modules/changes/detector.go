// README: Pure snapshot diff mapping edited fields to affected agents.
package changes

import (
	"math"

	"voyage/internal/agent"
	"voyage/internal/trip"
)

// DetectChanges compares two snapshots of the same trip and reports which
// logical fields differ, which agents those fields feed, and the estimated
// recalculation time. It is deterministic and performs no I/O; either input
// may come from a loosely-typed payload as long as it went through
// trip.SnapshotFromAny first.
func DetectChanges(oldSnap, newSnap trip.Snapshot) Result {
	diff := make(map[string]FieldChange)

	// Traveler identity.
	compareString(diff, agent.FieldNationality, oldSnap.Traveler.Nationality, newSnap.Traveler.Nationality)
	compareString(diff, agent.FieldResidencyCountry, oldSnap.Traveler.ResidencyCountry, newSnap.Traveler.ResidencyCountry)
	compareString(diff, agent.FieldOriginCity, oldSnap.Traveler.OriginCity, newSnap.Traveler.OriginCity)

	// Destinations: multiset of {country, city}, order-independent. Stay
	// duration shuffles alone are not a destination change.
	if !sameDestinations(oldSnap.Destinations, newSnap.Destinations) {
		diff[agent.FieldDestinations] = FieldChange{Old: oldSnap.Destinations, New: newSnap.Destinations}
	}

	// Trip details.
	compareDate(diff, agent.FieldDepartureDate, oldSnap.Details.DepartureDate, newSnap.Details.DepartureDate)
	compareDate(diff, agent.FieldReturnDate, oldSnap.Details.ReturnDate, newSnap.Details.ReturnDate)
	if !sameNumber(oldSnap.Details.Budget, newSnap.Details.Budget) {
		diff[agent.FieldBudget] = FieldChange{Old: oldSnap.Details.Budget, New: newSnap.Details.Budget}
	}
	compareString(diff, agent.FieldCurrency, oldSnap.Details.Currency, newSnap.Details.Currency)
	compareSet(diff, agent.FieldPurposes, oldSnap.Details.Purposes, newSnap.Details.Purposes)

	// Preferences.
	compareString(diff, agent.FieldStyle, oldSnap.Preferences.Style, newSnap.Preferences.Style)
	compareSet(diff, agent.FieldInterests, oldSnap.Preferences.Interests, newSnap.Preferences.Interests)
	compareSet(diff, agent.FieldDietaryRestrictions, oldSnap.Preferences.DietaryRestrictions, newSnap.Preferences.DietaryRestrictions)
	compareSet(diff, agent.FieldAccessibilityNeeds, oldSnap.Preferences.AccessibilityNeeds, newSnap.Preferences.AccessibilityNeeds)
	compareString(diff, agent.FieldAccommodationType, oldSnap.Preferences.AccommodationType, newSnap.Preferences.AccommodationType)
	compareString(diff, agent.FieldTransportation, oldSnap.Preferences.Transportation, newSnap.Preferences.Transportation)

	result := Result{
		HasChanges: len(diff) > 0,
		Changes:    diff,
	}

	var totalSecs float64
	for _, name := range agent.AllTypes {
		if intersects(agent.Dependencies(name), diff) {
			result.AffectedAgents = append(result.AffectedAgents, name)
			totalSecs += agent.Duration(name).Seconds()
		}
	}
	result.EstimatedRecalcSecs = int(totalSecs)
	return result
}

// EstimateRecalcSecs sums expected durations for a set of agents; the input
// order is irrelevant.
func EstimateRecalcSecs(agents []string) int {
	var total float64
	for _, name := range agents {
		total += agent.Duration(name).Seconds()
	}
	return int(total)
}

func compareString(diff map[string]FieldChange, field, oldVal, newVal string) {
	if oldVal != newVal {
		diff[field] = FieldChange{Old: oldVal, New: newVal}
	}
}

// compareDate treats values as calendar days, so "2025-06-01" and
// "2025-06-01T00:00:00Z" are the same date. Unparseable values fall back to
// plain string comparison.
func compareDate(diff map[string]FieldChange, field, oldVal, newVal string) {
	oldDay, okOld := trip.CalendarDate(oldVal)
	newDay, okNew := trip.CalendarDate(newVal)
	if okOld && okNew {
		if !oldDay.Equal(newDay) {
			diff[field] = FieldChange{Old: oldVal, New: newVal}
		}
		return
	}
	compareString(diff, field, oldVal, newVal)
}

func compareSet(diff map[string]FieldChange, field string, oldVal, newVal []string) {
	if !sameSet(oldVal, newVal) {
		diff[field] = FieldChange{Old: oldVal, New: newVal}
	}
}

func sameNumber(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func sameSet(a, b []string) bool {
	counts := make(map[string]int, len(a))
	for _, v := range a {
		counts[v]++
	}
	for _, v := range b {
		counts[v]--
	}
	for _, n := range counts {
		if n != 0 {
			return false
		}
	}
	return true
}

func sameDestinations(a, b []trip.Destination) bool {
	type stop struct{ country, city string }
	counts := make(map[stop]int, len(a))
	for _, d := range a {
		counts[stop{d.Country, d.City}]++
	}
	for _, d := range b {
		counts[stop{d.Country, d.City}]--
	}
	for _, n := range counts {
		if n != 0 {
			return false
		}
	}
	return true
}

func intersects(fields []string, diff map[string]FieldChange) bool {
	for _, f := range fields {
		if _, ok := diff[f]; ok {
			return true
		}
	}
	return false
}
