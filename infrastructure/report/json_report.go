// Package report turns scenario lifecycle notifications into logs, a JSON
// run report with failure screenshots, and run history.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"storefront_automation/domain/entities"
	"storefront_automation/domain/interfaces"
	"storefront_automation/infrastructure/logging"
)

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Run is the document written to report.json
type Run struct {
	RunID      string                    `json:"run_id"`
	StartedAt  time.Time                 `json:"started_at"`
	FinishedAt time.Time                 `json:"finished_at"`
	Scenarios  []string                  `json:"scenarios"`
	Summary    Summary                   `json:"summary"`
	Results    []entities.ScenarioResult `json:"results"`
}

type jsonReporter struct {
	mu          sync.Mutex
	root        string
	logger      *logrus.Entry
	now         func() time.Time
	started     time.Time
	scenarios   []string
	screenshots map[string]string
}

// NewJSONReporter - creates a listener writing <root>/<run id>/report.json
// plus one PNG per failed scenario
func NewJSONReporter(root string, logger *logrus.Logger) interfaces.ScenarioListener {
	return &jsonReporter{
		root:        root,
		logger:      logging.Component(logger, "report"),
		now:         time.Now,
		screenshots: make(map[string]string),
	}
}

func (r *jsonReporter) runDir(runID string) string {
	return filepath.Join(r.root, runID)
}

func (r *jsonReporter) OnRunStart(runID string, scenarios []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started = r.now()
	r.scenarios = append([]string(nil), scenarios...)
	r.screenshots = make(map[string]string)
}

func (r *jsonReporter) OnScenarioStart(string, string) {}

// OnScenarioFinish - stores the failure screenshot; a write failure is
// logged and leaves the result without a screenshot
func (r *jsonReporter) OnScenarioFinish(result entities.ScenarioResult, screenshot []byte) {
	if len(screenshot) == 0 {
		return
	}
	dir := r.runDir(result.RunID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		r.logger.Warnf("Failed to create report directory: %v", err)
		return
	}
	path := filepath.Join(dir, unsafeName.ReplaceAllString(result.Name, "_")+".png")
	if err := os.WriteFile(path, screenshot, 0644); err != nil {
		r.logger.Warnf("Failed to save screenshot: %v", err)
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.screenshots[result.Name] = path
}

func (r *jsonReporter) OnRunFinish(runID string, results []entities.ScenarioResult) error {
	r.mu.Lock()
	run := Run{
		RunID:      runID,
		StartedAt:  r.started,
		FinishedAt: r.now(),
		Scenarios:  r.scenarios,
		Summary:    Summarize(results),
		Results:    make([]entities.ScenarioResult, len(results)),
	}
	for i, res := range results {
		if path, ok := r.screenshots[res.Name]; ok && res.Screenshot == "" {
			res.Screenshot = path
		}
		run.Results[i] = res
	}
	r.mu.Unlock()

	dir := r.runDir(runID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	path := filepath.Join(dir, "report.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	r.logger.Infof("Report written to: %s", path)
	return nil
}
