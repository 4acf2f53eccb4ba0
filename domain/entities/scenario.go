package entities

import "time"

// ScenarioStatus represents the outcome of a scenario run
type ScenarioStatus string

const (
	ScenarioPassed  ScenarioStatus = "passed"
	ScenarioFailed  ScenarioStatus = "failed"
	ScenarioSkipped ScenarioStatus = "skipped"
)

// ScenarioResult represents a single finished scenario
type ScenarioResult struct {
	RunID       string         `json:"run_id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Status      ScenarioStatus `json:"status"`
	Error       string         `json:"error,omitempty"`
	Screenshot  string         `json:"screenshot,omitempty"` // path of the PNG captured on failure
	StartedAt   time.Time      `json:"started_at"`
	Duration    time.Duration  `json:"duration"`
	Steps       []string       `json:"steps,omitempty"`
}
