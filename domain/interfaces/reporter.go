package interfaces

import "storefront_automation/domain/entities"

// ScenarioListener receives scenario lifecycle notifications from the runner
type ScenarioListener interface {
	OnRunStart(runID string, scenarios []string)
	OnScenarioStart(runID, name string)
	// OnScenarioFinish receives the final result; failed results carry the
	// screenshot captured from the session before it was torn down
	OnScenarioFinish(result entities.ScenarioResult, screenshot []byte)
	OnRunFinish(runID string, results []entities.ScenarioResult) error
}
