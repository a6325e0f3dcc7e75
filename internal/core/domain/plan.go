package domain

import (
	"sort"
	"time"
)

// Mode selects between in-place renaming and category organization.
type Mode string

const (
	ModeRename   Mode = "rename"
	ModeOrganize Mode = "organize"
)

// PlanEntry is one planned move. Category is set only when organizing.
type PlanEntry struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Category    string `json:"category,omitempty"`
}

// Plan is computed before any filesystem mutation. No two entries share a
// Destination and no entry has Destination == Source.
type Plan struct {
	Directory string      `json:"directory"`
	Mode      Mode        `json:"mode"`
	Entries   []PlanEntry `json:"entries"`
}

// ByCategory groups entries by category with the category keys sorted.
func (p Plan) ByCategory() ([]string, map[string][]PlanEntry) {
	groups := make(map[string][]PlanEntry)
	for _, entry := range p.Entries {
		groups[entry.Category] = append(groups[entry.Category], entry)
	}
	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, groups
}

// FileFailure records a per-file problem that did not abort the batch.
type FileFailure struct {
	Path   string `json:"path"`
	Stage  string `json:"stage"`
	Reason string `json:"reason"`
}

type MoveResult struct {
	Entry PlanEntry `json:"entry"`
	Err   error     `json:"-"`
}

// RunReport summarises one orchestration pass.
type RunReport struct {
	RunID    string        `json:"run_id"`
	Scanned  int           `json:"scanned"`
	Plan     Plan          `json:"plan"`
	Failures []FileFailure `json:"failures,omitempty"`
	Moves    []MoveResult  `json:"moves,omitempty"`
	Executed bool          `json:"executed"`
	Duration time.Duration `json:"duration"`
}

func (r RunReport) MoveFailures() int {
	n := 0
	for _, move := range r.Moves {
		if move.Err != nil {
			n++
		}
	}
	return n
}
