package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront_automation/application/scenarios"
	"storefront_automation/domain/entities"
	"storefront_automation/infrastructure/storage"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	m.Run()
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("STOREFRONT_PATHS_STATE", t.TempDir())
	t.Setenv("STOREFRONT_LOGGER_LEVEL", "error")

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestListPrintsCatalog(t *testing.T) {
	out, err := execute(t, "list")
	require.NoError(t, err)
	for _, s := range scenarios.Catalog() {
		assert.Contains(t, out, s.Name)
		assert.Contains(t, out, s.Description)
	}
	assert.Contains(t, out, "after "+scenarios.LoginSaveCookies)
}

func TestGraphPrintsEdges(t *testing.T) {
	out, err := execute(t, "graph")
	require.NoError(t, err)
	assert.Contains(t, out, "Home --ClickLoginLink--> Login")
	assert.Contains(t, out, "AdminLogin --LoginAs--> AdminDashboard")
}

func TestGraphFromAdminLogin(t *testing.T) {
	out, err := execute(t, "graph", "--from", "AdminLogin")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, []string{"AdminLogin", "AdminDashboard", "AdminProducts", "AdminProductDetail"}, lines)

	_, err = execute(t, "graph", "--from", "Checkout")
	assert.Error(t, err)
}

func TestRunRejectsBadInput(t *testing.T) {
	_, err := execute(t, "run", "checkout")
	assert.ErrorContains(t, err, "unknown scenario(s): checkout")

	_, err = execute(t, "run", "--parallel", "0")
	assert.ErrorContains(t, err, "runner.parallel")

	_, err = execute(t, "run", "--backend", "lynx")
	assert.ErrorContains(t, err, "browser.backend")
}

func TestHistoryPrintsLatestResults(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewStateStore(dir)
	require.NoError(t, err)
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, store.AppendHistory([]entities.ScenarioResult{
		{RunID: "r1", Name: "older", Status: entities.ScenarioFailed, StartedAt: at},
		{RunID: "r2", Name: "newer", Status: entities.ScenarioPassed, StartedAt: at.Add(time.Hour)},
	}))

	t.Setenv("STOREFRONT_LOGGER_LEVEL", "error")
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"history", "-n", "1"})
	t.Setenv("STOREFRONT_PATHS_STATE", dir)
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	assert.Contains(t, out.String(), "newer")
	assert.NotContains(t, out.String(), "older")
	assert.Contains(t, out.String(), "1 passed, 0 failed, 0 skipped")
}

func TestPrintOutcome(t *testing.T) {
	var out bytes.Buffer
	printOutcome(&out, scenarios.Outcome{
		RunID: "run-1",
		Results: []entities.ScenarioResult{
			{Name: "a", Status: entities.ScenarioPassed, Duration: 1500 * time.Millisecond},
			{Name: "b", Status: entities.ScenarioFailed, Error: "boom"},
			{Name: "c", Status: entities.ScenarioSkipped},
		},
	})

	s := out.String()
	assert.Contains(t, s, "run-1")
	assert.Contains(t, s, "PASS a 1.5s")
	assert.Contains(t, s, "FAIL b")
	assert.Contains(t, s, "boom")
	assert.Contains(t, s, "3 total, 1 passed, 1 failed, 1 skipped")
}
