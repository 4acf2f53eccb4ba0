package report

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront_automation/domain/entities"
	"storefront_automation/infrastructure/logging"
	"storefront_automation/infrastructure/storage"
)

func TestJSONReporterWritesReportAndScreenshots(t *testing.T) {
	root := t.TempDir()
	r := NewJSONReporter(root, logging.Discard())

	r.OnRunStart("run-1", []string{"register-empty-data", "register-invalid-email"})
	r.OnScenarioStart("run-1", "register-empty-data")

	passed := entities.ScenarioResult{RunID: "run-1", Name: "register-empty-data", Status: entities.ScenarioPassed}
	failed := entities.ScenarioResult{RunID: "run-1", Name: "register-invalid-email", Status: entities.ScenarioFailed, Error: "wrong message"}
	r.OnScenarioFinish(passed, nil)
	r.OnScenarioFinish(failed, []byte("\x89PNG"))

	require.NoError(t, r.OnRunFinish("run-1", []entities.ScenarioResult{passed, failed}))

	png := filepath.Join(root, "run-1", "register-invalid-email.png")
	assert.FileExists(t, png)
	assert.NoFileExists(t, filepath.Join(root, "run-1", "register-empty-data.png"))

	data, err := os.ReadFile(filepath.Join(root, "run-1", "report.json"))
	require.NoError(t, err)
	var run Run
	require.NoError(t, json.Unmarshal(data, &run))

	assert.Equal(t, "run-1", run.RunID)
	assert.Equal(t, Summary{Total: 2, Passed: 1, Failed: 1}, run.Summary)
	require.Len(t, run.Results, 2)
	assert.Empty(t, run.Results[0].Screenshot)
	assert.Equal(t, png, run.Results[1].Screenshot)
	assert.Equal(t, []string{"register-empty-data", "register-invalid-email"}, run.Scenarios)
}

func TestHistoryListenerAppends(t *testing.T) {
	store, err := storage.NewStateStore(t.TempDir())
	require.NoError(t, err)
	l := NewHistoryListener(store)

	results := []entities.ScenarioResult{{RunID: "run-1", Name: "admin-search-product", Status: entities.ScenarioPassed}}
	require.NoError(t, l.OnRunFinish("run-1", results))

	history, err := store.LoadHistory()
	require.NoError(t, err)
	assert.Equal(t, results[0].Name, history[0].Name)
}

type recorder struct {
	events []string
	err    error
}

func (r *recorder) OnRunStart(runID string, _ []string) { r.events = append(r.events, "start "+runID) }
func (r *recorder) OnScenarioStart(_, name string) { r.events = append(r.events, "begin "+name) }
func (r *recorder) OnScenarioFinish(res entities.ScenarioResult, _ []byte) {
	r.events = append(r.events, "end "+res.Name)
}
func (r *recorder) OnRunFinish(runID string, _ []entities.ScenarioResult) error {
	r.events = append(r.events, "finish "+runID)
	return r.err
}

func TestMultiFansOut(t *testing.T) {
	boom := errors.New("disk full")
	a, b := &recorder{}, &recorder{err: boom}
	m := Multi{a, b, NewLogListener(logging.Discard())}

	m.OnRunStart("r", []string{"x"})
	m.OnScenarioStart("r", "x")
	m.OnScenarioFinish(entities.ScenarioResult{Name: "x", Status: entities.ScenarioFailed}, nil)
	err := m.OnRunFinish("r", nil)

	assert.ErrorIs(t, err, boom)
	want := []string{"start r", "begin x", "end x", "finish r"}
	assert.Equal(t, want, a.events)
	assert.Equal(t, want, b.events)
}
