package agent

import (
	"testing"
	"time"
)

func TestDependenciesKnownAgents(t *testing.T) {
	for _, name := range AllTypes {
		if len(Dependencies(name)) == 0 {
			t.Errorf("agent %s declares no field dependencies", name)
		}
	}
}

func TestDependenciesVisa(t *testing.T) {
	deps := Dependencies(TypeVisa)
	want := map[string]bool{
		FieldNationality:      true,
		FieldResidencyCountry: true,
		FieldDestinations:     true,
		FieldDepartureDate:    true,
		FieldReturnDate:       true,
		FieldPurposes:         true,
	}
	if len(deps) != len(want) {
		t.Fatalf("visa dependencies = %v, want %d fields", deps, len(want))
	}
	for _, f := range deps {
		if !want[f] {
			t.Errorf("unexpected visa dependency %q", f)
		}
	}
}

func TestDependenciesUnknownAgent(t *testing.T) {
	if deps := Dependencies("made-up"); len(deps) != 0 {
		t.Fatalf("unknown agent must have no dependencies, got %v", deps)
	}
}

func TestDurationFallback(t *testing.T) {
	tests := []struct {
		name string
		want time.Duration
	}{
		{TypeVisa, 20 * time.Second},
		{TypeItinerary, 30 * time.Second},
		{TypeCurrency, 8 * time.Second},
		{"made-up", DefaultDuration},
	}
	for _, tt := range tests {
		if got := Duration(tt.name); got != tt.want {
			t.Errorf("Duration(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestPhasePartitionFullSelection(t *testing.T) {
	groups := PhasePartition(AllTypes)
	if len(groups) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(groups))
	}
	for _, name := range groups[0] {
		if Phase(name) != 1 {
			t.Errorf("phase 1 group contains %s (phase %d)", name, Phase(name))
		}
	}
	for _, name := range groups[1] {
		if Phase(name) != 2 {
			t.Errorf("phase 2 group contains %s (phase %d)", name, Phase(name))
		}
	}
	if len(groups[0])+len(groups[1]) != len(AllTypes) {
		t.Fatalf("partition dropped agents: %v", groups)
	}
}

func TestPhasePartitionSubset(t *testing.T) {
	groups := PhasePartition([]string{TypeItinerary, TypeVisa})
	if len(groups) != 2 {
		t.Fatalf("expected 2 phases, got %v", groups)
	}
	if groups[0][0] != TypeVisa || groups[1][0] != TypeItinerary {
		t.Fatalf("phase order not preserved: %v", groups)
	}
}

func TestPhasePartitionDropsEmptyPhases(t *testing.T) {
	groups := PhasePartition([]string{TypeFlight})
	if len(groups) != 1 || groups[0][0] != TypeFlight {
		t.Fatalf("expected single phase-2 group, got %v", groups)
	}

	if groups := PhasePartition(nil); len(groups) != 0 {
		t.Fatalf("empty selection must yield no phases, got %v", groups)
	}
}

func TestRegistryLookup(t *testing.T) {
	reg := NewRegistry()
	static := NewStaticAgent(TypeVisa)
	reg.Register(TypeVisa, static)

	if got, ok := reg.Lookup(TypeVisa); !ok || got != static {
		t.Fatalf("Lookup(visa) = %v, %v", got, ok)
	}
	if _, ok := reg.Lookup(TypeWeather); ok {
		t.Fatal("unregistered agent must not resolve")
	}
	if names := reg.Names(); len(names) != 1 || names[0] != TypeVisa {
		t.Fatalf("Names() = %v", names)
	}
}
