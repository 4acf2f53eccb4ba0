package report

import (
	"errors"

	"github.com/sirupsen/logrus"

	"storefront_automation/domain/entities"
	"storefront_automation/domain/interfaces"
	"storefront_automation/infrastructure/logging"
)

// Multi fans notifications out to several listeners in order
type Multi []interfaces.ScenarioListener

func (m Multi) OnRunStart(runID string, scenarios []string) {
	for _, l := range m {
		l.OnRunStart(runID, scenarios)
	}
}

func (m Multi) OnScenarioStart(runID, name string) {
	for _, l := range m {
		l.OnScenarioStart(runID, name)
	}
}

func (m Multi) OnScenarioFinish(result entities.ScenarioResult, screenshot []byte) {
	for _, l := range m {
		l.OnScenarioFinish(result, screenshot)
	}
}

// OnRunFinish - notifies every listener and joins their errors
func (m Multi) OnRunFinish(runID string, results []entities.ScenarioResult) error {
	var errs []error
	for _, l := range m {
		errs = append(errs, l.OnRunFinish(runID, results))
	}
	return errors.Join(errs...)
}

type logListener struct {
	logger *logrus.Entry
}

// NewLogListener - creates a listener that logs the scenario lifecycle
func NewLogListener(logger *logrus.Logger) interfaces.ScenarioListener {
	return &logListener{logger: logging.Component(logger, "report")}
}

func (l *logListener) OnRunStart(runID string, scenarios []string) {
	l.logger.WithField("run_id", runID).Infof("Run started with %d scenarios", len(scenarios))
}

func (l *logListener) OnScenarioStart(runID, name string) {
	l.logger.WithFields(logrus.Fields{"run_id": runID, "scenario": name}).Info("Scenario started")
}

func (l *logListener) OnScenarioFinish(result entities.ScenarioResult, screenshot []byte) {
	entry := l.logger.WithFields(logrus.Fields{
		"run_id":   result.RunID,
		"scenario": result.Name,
		"duration": result.Duration,
	})
	switch result.Status {
	case entities.ScenarioPassed:
		entry.Info("Scenario passed")
	case entities.ScenarioSkipped:
		entry.Warnf("Scenario skipped: %s", result.Error)
	default:
		entry.WithField("screenshot_bytes", len(screenshot)).Errorf("Scenario failed: %s", result.Error)
	}
}

func (l *logListener) OnRunFinish(runID string, results []entities.ScenarioResult) error {
	s := Summarize(results)
	l.logger.WithFields(logrus.Fields{
		"run_id":  runID,
		"passed":  s.Passed,
		"failed":  s.Failed,
		"skipped": s.Skipped,
	}).Info("Run finished")
	return nil
}

type historyListener struct {
	storage interfaces.Storage
}

// NewHistoryListener - creates a listener that appends each run to storage
func NewHistoryListener(storage interfaces.Storage) interfaces.ScenarioListener {
	return &historyListener{storage: storage}
}

func (h *historyListener) OnRunStart(string, []string)                      {}
func (h *historyListener) OnScenarioStart(string, string)                   {}
func (h *historyListener) OnScenarioFinish(entities.ScenarioResult, []byte) {}

func (h *historyListener) OnRunFinish(_ string, results []entities.ScenarioResult) error {
	return h.storage.AppendHistory(results)
}

// Summary counts results by status
type Summary struct {
	Total   int `json:"total"`
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

func Summarize(results []entities.ScenarioResult) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		switch r.Status {
		case entities.ScenarioPassed:
			s.Passed++
		case entities.ScenarioSkipped:
			s.Skipped++
		default:
			s.Failed++
		}
	}
	return s
}
