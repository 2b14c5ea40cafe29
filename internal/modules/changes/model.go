// README: Change detection result types.
package changes

// FieldChange records the before/after values of one edited trip field.
type FieldChange struct {
	Old any `json:"old"`
	New any `json:"new"`
}

// Result is the outcome of diffing two trip snapshots. AffectedAgents is an
// unordered collection; callers must not rely on its order.
type Result struct {
	HasChanges          bool                   `json:"has_changes"`
	Changes             map[string]FieldChange `json:"changes"`
	AffectedAgents      []string               `json:"affected_agents"`
	EstimatedRecalcSecs int                    `json:"estimated_recalc_time"`
}
