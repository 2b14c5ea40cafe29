package agent

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// StaticAgent produces deterministic placeholder sections without any
// external calls. It keeps the orchestration paths runnable in development
// environments that have no Gemini key configured.
type StaticAgent struct {
	agentType string
}

func NewStaticAgent(agentType string) *StaticAgent {
	return &StaticAgent{agentType: agentType}
}

func (a *StaticAgent) Run(_ context.Context, in Input) (*Result, error) {
	var dests []string
	for _, d := range in.Snapshot.Destinations {
		dests = append(dests, d.City)
	}
	where := strings.Join(dests, ", ")
	if where == "" {
		where = "your destination"
	}

	now := time.Now().UTC()
	return &Result{
		AgentType:   a.agentType,
		TripID:      in.TripID,
		GeneratedAt: now,
		Confidence:  0.6,
		Title:       fmt.Sprintf("%s guide for %s", capitalize(a.agentType), where),
		Content: fmt.Sprintf("Placeholder %s section for %s (%s to %s). Configure GEMINI_API_KEY for generated content.",
			a.agentType, where, in.Snapshot.Details.DepartureDate, in.Snapshot.Details.ReturnDate),
		Sources: []Source{{Title: "offline generator", VerifiedAt: now}},
	}, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
