// README: Orchestration job statuses, transition table, and run output types.
package orchestrator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"voyage/internal/agent"
	"voyage/internal/types"
)

type JobStatus string

const (
	StatusPending    JobStatus = "pending"
	StatusProcessing JobStatus = "processing"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
)

// AllowedTransitions represents the job lifecycle as code. Completed and
// failed jobs may re-enter processing: edits trigger selective runs and
// failed jobs are retried with a fresh full run.
var AllowedTransitions = map[JobStatus][]JobStatus{
	StatusPending:    {StatusProcessing},
	StatusProcessing: {StatusCompleted, StatusFailed},
	StatusCompleted:  {StatusProcessing},
	StatusFailed:     {StatusProcessing},
}

func CanTransition(from, to JobStatus) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}

var (
	ErrRunInProgress = errors.New("report generation already in progress for trip")
	ErrUnknownAgent  = errors.New("unknown agent")
)

// ValidationError reports the required trip fields missing before any
// execution. It is returned before any side effect.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("trip is missing required fields: %s", strings.Join(e.Missing, ", "))
}

// AgentError is the normalized failure record for one agent invocation.
// Raw panic values and error types never leak past this.
type AgentError struct {
	Agent   string `json:"agent"`
	Message string `json:"error"`
}

// RunOutput is the consolidated result of one orchestration run.
type RunOutput struct {
	TripID      types.ID                 `json:"trip_id"`
	Sections    map[string]*agent.Result `json:"sections"`
	Errors      []AgentError             `json:"errors"`
	GeneratedAt time.Time                `json:"generated_at"`
}
