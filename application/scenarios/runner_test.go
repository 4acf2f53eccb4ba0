package scenarios

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront_automation/application/pages/pageui"
	"storefront_automation/domain/entities"
	"storefront_automation/domain/interfaces"
	"storefront_automation/infrastructure/config"
	"storefront_automation/infrastructure/logging"
	"storefront_automation/infrastructure/storage"
	"storefront_automation/infrastructure/webdriver/fakedriver"
)

func testConfig() *config.Config {
	cfg := config.NewDefaultConfig()
	cfg.Timeouts.Short = 20 * time.Millisecond
	cfg.Timeouts.Long = 200 * time.Millisecond
	cfg.Timeouts.Poll = 5 * time.Millisecond
	cfg.Timeouts.CookieSettle = time.Millisecond
	return cfg
}

// sessions hands out fake drivers, optionally prepared by setup
type sessions struct {
	mu      sync.Mutex
	setup   func(d *fakedriver.Driver)
	drivers []*fakedriver.Driver
	fail    error
	closed  bool
}

func (s *sessions) NewSession(context.Context) (interfaces.Driver, error) {
	if s.fail != nil {
		return nil, s.fail
	}
	d := fakedriver.New()
	if s.setup != nil {
		s.setup(d)
	}
	s.mu.Lock()
	s.drivers = append(s.drivers, d)
	s.mu.Unlock()
	return d, nil
}

func (s *sessions) Close() error {
	s.closed = true
	return nil
}

// recorder collects listener calls
type recorder struct {
	started  []string
	finished []entities.ScenarioResult
	shots    map[string][]byte
	runErr   error
}

func (r *recorder) OnRunStart(string, []string) {}

func (r *recorder) OnScenarioStart(_, name string) { r.started = append(r.started, name) }

func (r *recorder) OnScenarioFinish(res entities.ScenarioResult, shot []byte) {
	if r.shots == nil {
		r.shots = map[string][]byte{}
	}
	r.shots[res.Name] = shot
	r.finished = append(r.finished, res)
}

func (r *recorder) OnRunFinish(string, []entities.ScenarioResult) error { return r.runErr }

func newRunner(t *testing.T, s *sessions, rec *recorder, parallel int) *Runner {
	t.Helper()
	cfg := testConfig()
	cfg.Runner.Parallel = parallel
	store, err := storage.NewStateStore(t.TempDir())
	require.NoError(t, err)
	return NewRunner(s, cfg, store, rec, logging.Discard())
}

func byName(results []entities.ScenarioResult) map[string]entities.ScenarioResult {
	m := make(map[string]entities.ScenarioResult, len(results))
	for _, r := range results {
		m[r.Name] = r
	}
	return m
}

func TestRunnerRecordsOutcomesAndContinuesAfterFailure(t *testing.T) {
	s := &sessions{}
	rec := &recorder{}
	r := newRunner(t, s, rec, 1)

	list := []Scenario{
		{Name: "fails", Run: func(ctx context.Context, env *Env) error {
			env.Step("break")
			return errors.New("boom")
		}},
		{Name: "passes", Run: func(ctx context.Context, env *Env) error {
			env.Step("one")
			env.Step("two %d", 2)
			return nil
		}},
		{Name: "skips", Run: func(context.Context, *Env) error {
			return Skipf("not today")
		}},
		{Name: "panics", Run: func(context.Context, *Env) error {
			panic("unexpected")
		}},
	}

	out, err := r.Run(context.Background(), list)
	require.NoError(t, err)
	assert.NotEmpty(t, out.RunID)
	require.Len(t, out.Results, 4)

	got := byName(out.Results)
	assert.Equal(t, entities.ScenarioFailed, got["fails"].Status)
	assert.Equal(t, "boom", got["fails"].Error)
	assert.Equal(t, []string{"break"}, got["fails"].Steps)

	assert.Equal(t, entities.ScenarioPassed, got["passes"].Status)
	assert.Equal(t, []string{"one", "two 2"}, got["passes"].Steps)

	assert.Equal(t, entities.ScenarioSkipped, got["skips"].Status)
	assert.Contains(t, got["skips"].Error, "not today")

	assert.Equal(t, entities.ScenarioFailed, got["panics"].Status)
	assert.Contains(t, got["panics"].Error, "panic: unexpected")

	assert.Equal(t, []byte("\x89PNG fake"), rec.shots["fails"])
	assert.Nil(t, rec.shots["passes"])
	assert.Nil(t, rec.shots["skips"])

	require.Len(t, s.drivers, 4)
	for _, d := range s.drivers {
		assert.True(t, d.Quitted())
	}
	for _, res := range out.Results {
		assert.Equal(t, out.RunID, res.RunID)
	}
}

func TestRunnerSessionFailure(t *testing.T) {
	s := &sessions{fail: errors.New("chromedriver not found")}
	r := newRunner(t, s, &recorder{}, 1)

	out, err := r.Run(context.Background(), []Scenario{{Name: "a", Run: func(context.Context, *Env) error { return nil }}})
	require.NoError(t, err)
	require.Len(t, out.Results, 1)
	assert.Equal(t, entities.ScenarioFailed, out.Results[0].Status)
	assert.Contains(t, out.Results[0].Error, "chromedriver not found")
}

func TestRunnerHonorsParallelLimit(t *testing.T) {
	s := &sessions{}
	r := newRunner(t, s, &recorder{}, 2)

	var running, peak atomic.Int32
	body := func(ctx context.Context, env *Env) error {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		running.Add(-1)
		return nil
	}

	var list []Scenario
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		list = append(list, Scenario{Name: name, Run: body})
	}

	out, err := r.Run(context.Background(), list)
	require.NoError(t, err)
	assert.Len(t, out.Results, 5)
	assert.LessOrEqual(t, peak.Load(), int32(2))
	assert.GreaterOrEqual(t, peak.Load(), int32(1))
}

func TestRunnerDependencies(t *testing.T) {
	s := &sessions{}
	rec := &recorder{}
	r := newRunner(t, s, rec, 3)

	var depDone atomic.Bool
	list := []Scenario{
		{Name: "after-failed", DependsOn: "broken", Run: func(context.Context, *Env) error {
			t.Error("must not run after a failed dependency")
			return nil
		}},
		{Name: "after-ok", DependsOn: "ok", Run: func(context.Context, *Env) error {
			if !depDone.Load() {
				return errors.New("dependency still running")
			}
			return nil
		}},
		{Name: "ok", Run: func(context.Context, *Env) error {
			time.Sleep(20 * time.Millisecond)
			depDone.Store(true)
			return nil
		}},
		{Name: "broken", Run: func(context.Context, *Env) error { return errors.New("boom") }},
	}

	out, err := r.Run(context.Background(), list)
	require.NoError(t, err)

	got := byName(out.Results)
	assert.Equal(t, entities.ScenarioPassed, got["after-ok"].Status)
	assert.Equal(t, entities.ScenarioSkipped, got["after-failed"].Status)
	assert.Contains(t, got["after-failed"].Error, "broken")
	assert.NotContains(t, rec.started, "after-failed")
}

func TestRunnerRejectsCycles(t *testing.T) {
	r := newRunner(t, &sessions{}, &recorder{}, 1)
	noop := func(context.Context, *Env) error { return nil }

	_, err := r.Run(context.Background(), []Scenario{
		{Name: "a", DependsOn: "b", Run: noop},
		{Name: "b", DependsOn: "a", Run: noop},
	})
	assert.ErrorContains(t, err, "cycle")

	_, err = r.Run(context.Background(), []Scenario{{Name: "a", Run: noop}, {Name: "a", Run: noop}})
	assert.ErrorContains(t, err, "duplicate")
}

func TestRunnerSkipsAfterCancel(t *testing.T) {
	s := &sessions{}
	r := newRunner(t, s, &recorder{}, 1)

	ctx, cancel := context.WithCancel(context.Background())
	list := []Scenario{
		{Name: "first", Run: func(context.Context, *Env) error {
			cancel()
			return nil
		}},
		{Name: "second", Run: func(context.Context, *Env) error { return nil }},
	}

	out, err := r.Run(ctx, list)
	require.NoError(t, err)
	got := byName(out.Results)
	assert.Equal(t, entities.ScenarioPassed, got["first"].Status)
	assert.Equal(t, entities.ScenarioSkipped, got["second"].Status)
	assert.Len(t, s.drivers, 1)
}

func TestRunnerReportsListenerFailure(t *testing.T) {
	r := newRunner(t, &sessions{}, &recorder{runErr: errors.New("disk full")}, 1)
	_, err := r.Run(context.Background(), []Scenario{{Name: "a", Run: func(context.Context, *Env) error { return nil }}})
	assert.ErrorContains(t, err, "disk full")
}

func TestSelect(t *testing.T) {
	all := Catalog()

	picked, err := Select(all)
	require.NoError(t, err)
	assert.Len(t, picked, len(all))

	picked, err = Select(all, AdminProductSearch, RegisterEmptyData)
	require.NoError(t, err)
	require.Len(t, picked, 2)
	assert.Equal(t, RegisterEmptyData, picked[0].Name)
	assert.Equal(t, AdminProductSearch, picked[1].Name)

	_, err = Select(all, "checkout")
	assert.ErrorContains(t, err, "checkout")
}

func TestRandomEmailIsUnique(t *testing.T) {
	a, b := RandomEmail("example.com"), RandomEmail("example.com")
	assert.NotEqual(t, a, b)
	assert.Regexp(t, `^auto[0-9a-f]{12}@example\.com$`, a)
	assert.Contains(t, RandomEmail(""), "@mail.test")
}

func TestExpect(t *testing.T) {
	assert.NoError(t, Expect("count", 3, 3))
	assert.EqualError(t, Expect("title", "Home", "Search"), "title: expected Search, got Home")
}

func TestRegisterEmptyDataScenario(t *testing.T) {
	s := &sessions{setup: func(d *fakedriver.Driver) {
		d.Put(pageui.RegisterLink.MustResolve(), fakedriver.NewElement("Register"))
		button := fakedriver.NewElement("Register")
		button.OnClick = func() {
			for id, msg := range map[string]string{
				pageui.FirstNameID:       "First name is required.",
				pageui.LastNameID:        "Last name is required.",
				pageui.EmailID:           "Email is required.",
				pageui.PasswordID:        "Password is required.",
				pageui.ConfirmPasswordID: "Password is required.",
			} {
				d.Put(pageui.DynamicFieldError.MustResolve(id), fakedriver.NewElement(msg))
			}
		}
		d.Put(pageui.RegisterButton.MustResolve(), button)
	}}
	r := newRunner(t, s, &recorder{}, 1)

	list, err := Select(Catalog(), RegisterEmptyData)
	require.NoError(t, err)
	out, err := r.Run(context.Background(), list)
	require.NoError(t, err)

	require.Len(t, out.Results, 1)
	assert.Equal(t, entities.ScenarioPassed, out.Results[0].Status, out.Results[0].Error)
	require.Len(t, s.drivers, 1)
	assert.Equal(t, []string{r.cfg.URLs.Storefront}, s.drivers[0].Visited())
}

func TestLoginReuseCookiesScenario(t *testing.T) {
	s := &sessions{setup: func(d *fakedriver.Driver) {
		d.Put(pageui.MyAccountLink.MustResolve(), fakedriver.NewElement("My account"))
	}}
	r := newRunner(t, s, &recorder{}, 1)
	list, err := Select(Catalog(), LoginReuseCookies)
	require.NoError(t, err)

	out, err := r.Run(context.Background(), list)
	require.NoError(t, err)
	assert.Equal(t, entities.ScenarioSkipped, out.Results[0].Status)

	stored := []entities.Cookie{{Name: ".Nop.Authentication", Value: "token"}}
	require.NoError(t, r.storage.SaveCookies(CustomerCookiesKey, stored))

	out, err = r.Run(context.Background(), list)
	require.NoError(t, err)
	assert.Equal(t, entities.ScenarioPassed, out.Results[0].Status, out.Results[0].Error)

	last := s.drivers[len(s.drivers)-1]
	cookies, err := last.Cookies()
	require.NoError(t, err)
	assert.Contains(t, cookies, stored[0])
	assert.Equal(t, 1, last.Refreshes())
}
