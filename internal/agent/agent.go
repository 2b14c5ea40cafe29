// README: Agent capability contract and result types shared by all domain agents.
package agent

import (
	"context"
	"time"

	"voyage/internal/trip"
	"voyage/internal/types"
)

// Source attributes a claim in a section to where it came from.
type Source struct {
	URL        string    `json:"url,omitempty"`
	Title      string    `json:"title,omitempty"`
	VerifiedAt time.Time `json:"verified_at"`
}

// Input is the shared base every agent receives. Individual agents read the
// parts of the snapshot their dependency declaration covers.
type Input struct {
	TripID   types.ID
	Snapshot trip.Snapshot
}

// Result is one agent invocation's output. Confidence is on the 0.0–1.0
// scale; persistence converts to the stored 0–100 integer.
type Result struct {
	AgentType   string         `json:"agent_type"`
	TripID      types.ID       `json:"trip_id"`
	GeneratedAt time.Time      `json:"generated_at"`
	Confidence  float64        `json:"confidence_score"`
	Title       string         `json:"title"`
	Content     string         `json:"content"`
	Data        map[string]any `json:"data,omitempty"`
	Sources     []Source       `json:"sources,omitempty"`
}

// Agent produces one typed report section from trip context.
type Agent interface {
	Run(ctx context.Context, in Input) (*Result, error)
}

// Registry maps agent names to implementations. It is populated once at
// startup and read-only afterwards, so no locking is needed.
type Registry struct {
	agents map[string]Agent
}

func NewRegistry() *Registry {
	return &Registry{agents: make(map[string]Agent)}
}

func (r *Registry) Register(name string, a Agent) {
	r.agents[name] = a
}

func (r *Registry) Lookup(name string) (Agent, bool) {
	a, ok := r.agents[name]
	return a, ok
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.agents))
	for name := range r.agents {
		names = append(names, name)
	}
	return names
}
