package scenarios

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"storefront_automation/application/pages"
	"storefront_automation/domain/entities"
	"storefront_automation/domain/interfaces"
	"storefront_automation/infrastructure/config"
)

// Outcome is the result of one run
type Outcome struct {
	RunID   string
	Results []entities.ScenarioResult
}

// Runner executes scenarios, each in its own browser session
type Runner struct {
	sessions interfaces.SessionFactory
	cfg      *config.Config
	storage  interfaces.Storage
	listener interfaces.ScenarioListener
	logger   *logrus.Logger

	notifyMu sync.Mutex
	now      func() time.Time
}

// NewRunner - creates a runner. Listener calls are serialized by the runner.
func NewRunner(sessions interfaces.SessionFactory, cfg *config.Config, storage interfaces.Storage, listener interfaces.ScenarioListener, logger *logrus.Logger) *Runner {
	return &Runner{
		sessions: sessions,
		cfg:      cfg,
		storage:  storage,
		listener: listener,
		logger:   logger,
		now:      time.Now,
	}
}

// Run - executes list with at most runner.parallel sessions at a time. A
// failing scenario never stops the others; scenarios not started before ctx
// ends are recorded as skipped. The returned error reports listener failures.
func (r *Runner) Run(ctx context.Context, list []Scenario) (Outcome, error) {
	ordered, err := order(list)
	if err != nil {
		return Outcome{}, err
	}

	runID := uuid.NewString()
	names := make([]string, len(ordered))
	finished := make(map[string]chan struct{}, len(ordered))
	for i, s := range ordered {
		names[i] = s.Name
		finished[s.Name] = make(chan struct{})
	}
	r.notify(func() { r.listener.OnRunStart(runID, names) })

	results := make([]entities.ScenarioResult, len(ordered))
	var statusMu sync.Mutex
	status := make(map[string]entities.ScenarioStatus, len(ordered))

	var g errgroup.Group
	g.SetLimit(r.cfg.Runner.Parallel)
	for i, sc := range ordered {
		i, sc := i, sc
		g.Go(func() error {
			defer close(finished[sc.Name])

			var result entities.ScenarioResult
			var screenshot []byte
			if reason := r.blocked(ctx, sc, finished, &statusMu, status); reason != nil {
				result = r.skipped(runID, sc, reason)
			} else {
				r.notify(func() { r.listener.OnScenarioStart(runID, sc.Name) })
				result, screenshot = r.runOne(ctx, runID, sc)
			}

			statusMu.Lock()
			status[sc.Name] = result.Status
			statusMu.Unlock()

			results[i] = result
			r.notify(func() { r.listener.OnScenarioFinish(result, screenshot) })
			return nil
		})
	}
	g.Wait()

	var finishErr error
	r.notify(func() { finishErr = r.listener.OnRunFinish(runID, results) })
	if finishErr != nil {
		finishErr = fmt.Errorf("failed to finish run %s: %w", runID, finishErr)
	}
	return Outcome{RunID: runID, Results: results}, finishErr
}

// blocked - waits for the dependency of sc and returns why sc must not run
func (r *Runner) blocked(ctx context.Context, sc Scenario, finished map[string]chan struct{}, mu *sync.Mutex, status map[string]entities.ScenarioStatus) error {
	if dep, ok := finished[sc.DependsOn]; ok && sc.DependsOn != "" {
		select {
		case <-dep:
		case <-ctx.Done():
			return ctx.Err()
		}
		mu.Lock()
		depStatus := status[sc.DependsOn]
		mu.Unlock()
		if depStatus != entities.ScenarioPassed {
			return fmt.Errorf("dependency %s %s", sc.DependsOn, depStatus)
		}
	}
	return ctx.Err()
}

func (r *Runner) skipped(runID string, sc Scenario, reason error) entities.ScenarioResult {
	return entities.ScenarioResult{
		RunID:       runID,
		Name:        sc.Name,
		Description: sc.Description,
		Status:      entities.ScenarioSkipped,
		Error:       reason.Error(),
		StartedAt:   r.now(),
	}
}

// runOne - opens a session, runs the scenario and quits the session. The
// screenshot of a failed scenario is taken before the session ends.
func (r *Runner) runOne(ctx context.Context, runID string, sc Scenario) (result entities.ScenarioResult, screenshot []byte) {
	log := r.logger.WithFields(logrus.Fields{"run_id": runID, "scenario": sc.Name})
	start := r.now()
	result = entities.ScenarioResult{
		RunID:       runID,
		Name:        sc.Name,
		Description: sc.Description,
		StartedAt:   start,
	}

	driver, err := r.sessions.NewSession(ctx)
	if err != nil {
		result.Status = entities.ScenarioFailed
		result.Error = fmt.Sprintf("failed to start session: %v", err)
		result.Duration = r.now().Sub(start)
		return result, nil
	}
	defer func() {
		if err := driver.Quit(); err != nil {
			log.Warnf("Failed to quit session: %v", err)
		}
	}()

	env := &Env{Storage: r.storage, Log: log}
	err = r.execute(ctx, driver, env, sc)

	result.Steps = env.Steps()
	result.Duration = r.now().Sub(start)
	switch {
	case err == nil:
		result.Status = entities.ScenarioPassed
	case errors.Is(err, ErrSkipped):
		result.Status = entities.ScenarioSkipped
		result.Error = err.Error()
	default:
		result.Status = entities.ScenarioFailed
		result.Error = err.Error()
		png, shotErr := driver.Screenshot()
		if shotErr != nil {
			log.Warnf("Failed to capture screenshot: %v", shotErr)
		}
		screenshot = png
	}
	return result, screenshot
}

// execute - binds the toolkit and runs the scenario body, turning panics into errors
func (r *Runner) execute(ctx context.Context, driver interfaces.Driver, env *Env, sc Scenario) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()

	tk, err := pages.NewToolkit(driver, r.cfg, r.logger)
	if err != nil {
		return err
	}
	env.Toolkit = tk
	return sc.Run(ctx, env)
}

func (r *Runner) notify(fn func()) {
	r.notifyMu.Lock()
	defer r.notifyMu.Unlock()
	fn()
}
