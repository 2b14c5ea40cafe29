package changes

import (
	"encoding/json"
	"sort"
	"testing"

	"voyage/internal/agent"
	"voyage/internal/trip"
)

func baseSnapshot() trip.Snapshot {
	return trip.Snapshot{
		Traveler: trip.Traveler{
			Nationality:      "US",
			ResidencyCountry: "US",
			OriginCity:       "San Francisco",
		},
		Destinations: []trip.Destination{
			{Country: "Japan", City: "Tokyo", DurationDays: 4},
			{Country: "Japan", City: "Kyoto", DurationDays: 3},
		},
		Details: trip.Details{
			DepartureDate: "2026-10-01",
			ReturnDate:    "2026-10-08",
			Budget:        2000,
			Currency:      "USD",
			Purposes:      []string{"tourism"},
		},
		Preferences: trip.Preferences{
			Style:     "relaxed",
			Interests: []string{"food", "history"},
		},
	}
}

func sortedCopy(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}

func TestDetectChangesIdenticalSnapshots(t *testing.T) {
	snap := baseSnapshot()
	res := DetectChanges(snap, baseSnapshot())

	if res.HasChanges {
		t.Fatalf("expected no changes, got %+v", res.Changes)
	}
	if len(res.Changes) != 0 || len(res.AffectedAgents) != 0 {
		t.Fatalf("expected empty result, got changes=%v agents=%v", res.Changes, res.AffectedAgents)
	}
	if res.EstimatedRecalcSecs != 0 {
		t.Fatalf("expected zero recalc estimate, got %d", res.EstimatedRecalcSecs)
	}
}

func TestDetectChangesBudgetEdit(t *testing.T) {
	oldSnap := baseSnapshot()
	newSnap := baseSnapshot()
	newSnap.Details.Budget = 3500

	res := DetectChanges(oldSnap, newSnap)

	if !res.HasChanges {
		t.Fatal("expected changes")
	}
	ch, ok := res.Changes[agent.FieldBudget]
	if !ok {
		t.Fatalf("expected budget in changes, got %v", res.Changes)
	}
	if ch.Old != 2000.0 || ch.New != 3500.0 {
		t.Fatalf("unexpected budget change %+v", ch)
	}

	want := map[string]bool{
		agent.TypeCurrency:    true,
		agent.TypeAttractions: true,
		agent.TypeItinerary:   true,
		agent.TypeFlight:      true,
	}
	got := make(map[string]bool, len(res.AffectedAgents))
	for _, name := range res.AffectedAgents {
		got[name] = true
	}
	for name := range want {
		if !got[name] {
			t.Errorf("expected %s affected, got %v", name, res.AffectedAgents)
		}
	}
	for _, name := range []string{agent.TypeVisa, agent.TypeWeather, agent.TypeCulture, agent.TypeFood, agent.TypeCountry} {
		if got[name] {
			t.Errorf("agent %s must not be affected by a budget edit", name)
		}
	}
}

func TestDetectChangesNationalityEdit(t *testing.T) {
	oldSnap := baseSnapshot()
	newSnap := baseSnapshot()
	newSnap.Traveler.Nationality = "IN"

	res := DetectChanges(oldSnap, newSnap)

	var hasVisa, hasWeather bool
	for _, name := range res.AffectedAgents {
		switch name {
		case agent.TypeVisa:
			hasVisa = true
		case agent.TypeWeather:
			hasWeather = true
		}
	}
	if !hasVisa {
		t.Errorf("nationality edit must affect visa, got %v", res.AffectedAgents)
	}
	if hasWeather {
		t.Errorf("nationality edit must not affect weather, got %v", res.AffectedAgents)
	}
}

func TestDetectChangesRecalcEstimateMatchesAgents(t *testing.T) {
	oldSnap := baseSnapshot()
	newSnap := baseSnapshot()
	newSnap.Details.Budget = 9999
	newSnap.Traveler.Nationality = "FR"

	res := DetectChanges(oldSnap, newSnap)

	if got := EstimateRecalcSecs(res.AffectedAgents); got != res.EstimatedRecalcSecs {
		t.Fatalf("estimate mismatch: result says %d, recompute says %d", res.EstimatedRecalcSecs, got)
	}

	// Summation must not depend on agent order.
	reversed := append([]string(nil), res.AffectedAgents...)
	for i, j := 0, len(reversed)-1; i < j; i, j = i+1, j-1 {
		reversed[i], reversed[j] = reversed[j], reversed[i]
	}
	if got := EstimateRecalcSecs(reversed); got != res.EstimatedRecalcSecs {
		t.Fatalf("estimate depends on order: %d vs %d", got, res.EstimatedRecalcSecs)
	}
}

func TestDetectChangesUnknownAgentFallbackDuration(t *testing.T) {
	if got := EstimateRecalcSecs([]string{"made-up-agent"}); got != int(agent.DefaultDuration.Seconds()) {
		t.Fatalf("expected fallback duration %v, got %d", agent.DefaultDuration, got)
	}
}

func TestDetectChangesDestinationOrderIndependent(t *testing.T) {
	oldSnap := baseSnapshot()
	newSnap := baseSnapshot()
	newSnap.Destinations = []trip.Destination{
		{Country: "Japan", City: "Kyoto", DurationDays: 3},
		{Country: "Japan", City: "Tokyo", DurationDays: 4},
	}

	res := DetectChanges(oldSnap, newSnap)
	if res.HasChanges {
		t.Fatalf("reordered destinations must not count as a change, got %v", res.Changes)
	}
}

func TestDetectChangesDestinationAdded(t *testing.T) {
	oldSnap := baseSnapshot()
	newSnap := baseSnapshot()
	newSnap.Destinations = append(newSnap.Destinations, trip.Destination{Country: "Korea", City: "Seoul"})

	res := DetectChanges(oldSnap, newSnap)
	if _, ok := res.Changes[agent.FieldDestinations]; !ok {
		t.Fatalf("expected destinations change, got %v", res.Changes)
	}
	// Destinations feed every agent, so all of them re-run.
	if got, want := sortedCopy(res.AffectedAgents), sortedCopy(agent.AllTypes); len(got) != len(want) {
		t.Fatalf("expected all agents affected, got %v", res.AffectedAgents)
	}
}

func TestDetectChangesDateSurfaceForms(t *testing.T) {
	tests := []struct {
		name    string
		oldDate string
		newDate string
		changed bool
	}{
		{"same day different forms", "2026-10-01", "2026-10-01T00:00:00Z", false},
		{"slash form", "2026-10-01", "2026/10/01", false},
		{"actually moved", "2026-10-01", "2026-10-02", true},
		{"unparseable equal", "whenever", "whenever", false},
		{"unparseable different", "whenever", "later", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldSnap := baseSnapshot()
			newSnap := baseSnapshot()
			oldSnap.Details.DepartureDate = tt.oldDate
			newSnap.Details.DepartureDate = tt.newDate

			res := DetectChanges(oldSnap, newSnap)
			_, ok := res.Changes[agent.FieldDepartureDate]
			if ok != tt.changed {
				t.Fatalf("changed=%v, want %v (changes=%v)", ok, tt.changed, res.Changes)
			}
		})
	}
}

func TestDetectChangesInterestsAsMultiset(t *testing.T) {
	oldSnap := baseSnapshot()
	newSnap := baseSnapshot()
	newSnap.Preferences.Interests = []string{"history", "food"}

	if res := DetectChanges(oldSnap, newSnap); res.HasChanges {
		t.Fatalf("reordered interests must not count as a change, got %v", res.Changes)
	}

	newSnap.Preferences.Interests = []string{"history", "food", "nightlife"}
	res := DetectChanges(oldSnap, newSnap)
	if _, ok := res.Changes[agent.FieldInterests]; !ok {
		t.Fatalf("expected interests change, got %v", res.Changes)
	}
}

// Snapshots decoded from a loose JSON payload must diff identically to ones
// built from typed literals.
func TestDetectChangesTypedVersusDecoded(t *testing.T) {
	typedOld := baseSnapshot()
	typedNew := baseSnapshot()
	typedNew.Details.Budget = 3500

	var decodedOld, decodedNew trip.Snapshot
	for _, pair := range []struct {
		src trip.Snapshot
		dst *trip.Snapshot
	}{{typedOld, &decodedOld}, {typedNew, &decodedNew}} {
		raw, err := json.Marshal(pair.src)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var loose map[string]any
		if err := json.Unmarshal(raw, &loose); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		snap, err := trip.SnapshotFromAny(loose)
		if err != nil {
			t.Fatalf("snapshot from map: %v", err)
		}
		*pair.dst = snap
	}

	fromTyped := DetectChanges(typedOld, typedNew)
	fromDecoded := DetectChanges(decodedOld, decodedNew)

	if got, want := sortedCopy(fromDecoded.AffectedAgents), sortedCopy(fromTyped.AffectedAgents); len(got) != len(want) {
		t.Fatalf("affected agents differ: typed=%v decoded=%v", want, got)
	} else {
		for i := range got {
			if got[i] != want[i] {
				t.Fatalf("affected agents differ: typed=%v decoded=%v", want, got)
			}
		}
	}
	if fromDecoded.EstimatedRecalcSecs != fromTyped.EstimatedRecalcSecs {
		t.Fatalf("recalc estimate differs: typed=%d decoded=%d", fromTyped.EstimatedRecalcSecs, fromDecoded.EstimatedRecalcSecs)
	}
}
