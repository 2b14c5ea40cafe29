// README: Phased orchestration of report agents with per-agent failure isolation.
package orchestrator

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"voyage/internal/agent"
	"voyage/internal/modules/report"
	"voyage/internal/trip"
	"voyage/internal/types"
)

// SectionWriter is the slice of the section store the orchestrator writes.
type SectionWriter interface {
	Insert(ctx context.Context, sec *report.Section) error
}

// JobStore tracks job status per trip and guards against concurrent runs.
type JobStore interface {
	SetStatus(ctx context.Context, tripID types.ID, status JobStatus) error
	Status(ctx context.Context, tripID types.ID) (JobStatus, error)
	AcquireRunLock(ctx context.Context, tripID types.ID) (bool, error)
	ReleaseRunLock(ctx context.Context, tripID types.ID) error
}

type Service struct {
	agents   *agent.Registry
	sections SectionWriter
	jobs     JobStore
	timeout  time.Duration
}

// NewService builds an orchestrator. timeout bounds each agent invocation;
// zero falls back to one minute. There is deliberately no cross-phase
// ceiling: a run takes as long as its slowest phase members.
func NewService(agents *agent.Registry, sections SectionWriter, jobs JobStore, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &Service{agents: agents, sections: sections, jobs: jobs, timeout: timeout}
}

type GenerateCommand struct {
	TripID   types.ID
	Snapshot trip.Snapshot
	// Agents selects a subset for selective recalculation. Empty means every
	// registered agent (fresh trips and full retries).
	Agents []string
}

// invocation is the per-agent settled outcome. Aggregation inspects this
// value, never a raised panic or a raw error type.
type invocation struct {
	agent  string
	result *agent.Result
	err    error
}

// Generate runs the selected agents in phases against the trip snapshot.
// Agents within a phase run concurrently; a phase settles fully before the
// next starts. One agent's failure never halts its siblings or later phases.
func (s *Service) Generate(ctx context.Context, cmd GenerateCommand) (*RunOutput, error) {
	if err := ValidateSnapshot(cmd.Snapshot); err != nil {
		return nil, err
	}

	selected, err := s.resolveAgents(cmd.Agents)
	if err != nil {
		return nil, err
	}

	out := &RunOutput{
		TripID:      cmd.TripID,
		Sections:    make(map[string]*agent.Result),
		GeneratedAt: time.Now().UTC(),
	}
	if len(selected) == 0 {
		// Nothing to recalculate; existing sections stay valid.
		return out, nil
	}

	ok, err := s.jobs.AcquireRunLock(ctx, cmd.TripID)
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		return nil, ErrRunInProgress
	}
	defer func() {
		if err := s.jobs.ReleaseRunLock(context.WithoutCancel(ctx), cmd.TripID); err != nil {
			log.Printf("release run lock for trip %s: %v", cmd.TripID, err)
		}
	}()

	if err := s.transition(ctx, cmd.TripID, StatusProcessing); err != nil {
		return nil, fmt.Errorf("mark job processing: %w", err)
	}

	for _, phase := range agent.PhasePartition(selected) {
		for _, inv := range s.runPhase(ctx, cmd, phase) {
			if inv.err != nil {
				out.Errors = append(out.Errors, AgentError{Agent: inv.agent, Message: inv.err.Error()})
				continue
			}
			out.Sections[inv.agent] = inv.result
		}
	}

	final := StatusCompleted
	if len(out.Sections) == 0 {
		final = StatusFailed
	}
	if err := s.transition(ctx, cmd.TripID, final); err != nil {
		return nil, fmt.Errorf("mark job %s: %w", final, err)
	}
	return out, nil
}

// runPhase launches every agent of one phase concurrently and waits for all
// of them to settle. Panics are recovered per agent and normalized into the
// invocation error.
func (s *Service) runPhase(ctx context.Context, cmd GenerateCommand, names []string) []invocation {
	results := make(chan invocation, len(names))
	var wg sync.WaitGroup

	for _, name := range names {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			results <- s.invoke(ctx, cmd, name)
		}(name)
	}

	wg.Wait()
	close(results)

	settled := make([]invocation, 0, len(names))
	for inv := range results {
		settled = append(settled, inv)
	}
	return settled
}

// invoke runs one agent with its own timeout and persists the section on
// success. Persistence failures are surfaced distinctly, never swallowed.
func (s *Service) invoke(ctx context.Context, cmd GenerateCommand, name string) (inv invocation) {
	inv.agent = name
	defer func() {
		if r := recover(); r != nil {
			inv.result = nil
			inv.err = fmt.Errorf("agent panic: %v", r)
		}
	}()

	a, ok := s.agents.Lookup(name)
	if !ok {
		inv.err = ErrUnknownAgent
		return inv
	}

	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	started := time.Now()
	result, err := a.Run(runCtx, agent.Input{TripID: cmd.TripID, Snapshot: cmd.Snapshot})
	if err != nil {
		inv.err = err
		return inv
	}
	if result == nil {
		inv.err = fmt.Errorf("agent returned no result")
		return inv
	}
	log.Printf("agent %s finished for trip %s in %v", name, cmd.TripID, time.Since(started))

	sec := sectionFromResult(cmd.TripID, result)
	if err := s.sections.Insert(ctx, sec); err != nil {
		inv.err = fmt.Errorf("persist section: %w", err)
		return inv
	}
	inv.result = result
	return inv
}

// resolveAgents expands an empty selection to every registered agent and
// rejects names the registry does not know.
func (s *Service) resolveAgents(requested []string) ([]string, error) {
	if len(requested) == 0 {
		return s.agents.Names(), nil
	}
	out := make([]string, 0, len(requested))
	for _, name := range requested {
		if _, ok := s.agents.Lookup(name); !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownAgent, name)
		}
		out = append(out, name)
	}
	return out, nil
}

// transition moves the job status. Repeating the current status is allowed
// so a retry after a crashed run (status stuck at processing) can proceed
// once the lock TTL frees the trip.
func (s *Service) transition(ctx context.Context, tripID types.ID, to JobStatus) error {
	cur, err := s.jobs.Status(ctx, tripID)
	if err != nil {
		return err
	}
	if cur != to && !CanTransition(cur, to) {
		return fmt.Errorf("invalid job transition %s -> %s", cur, to)
	}
	return s.jobs.SetStatus(ctx, tripID, to)
}

// ValidateSnapshot enforces the identity fields every run needs. It runs
// before any lock, status write, or agent invocation.
func ValidateSnapshot(snap trip.Snapshot) error {
	var missing []string
	if snap.Traveler.Nationality == "" {
		missing = append(missing, "nationality")
	}
	if len(snap.Destinations) == 0 {
		missing = append(missing, "destination")
	}
	if snap.Details.DepartureDate == "" {
		missing = append(missing, "departure_date")
	}
	if snap.Details.ReturnDate == "" {
		missing = append(missing, "return_date")
	}
	if len(snap.Details.Purposes) == 0 {
		missing = append(missing, "purpose")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

func sectionFromResult(tripID types.ID, res *agent.Result) *report.Section {
	title := res.Title
	if title == "" {
		title = res.AgentType
	}
	return &report.Section{
		TripID:      tripID,
		SectionType: res.AgentType,
		Title:       title,
		Content:     res.Content,
		Confidence:  report.StoredConfidence(res.Confidence),
		Sources:     res.Sources,
		GeneratedAt: res.GeneratedAt,
	}
}
