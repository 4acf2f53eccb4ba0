// Package wait synchronizes actions with asynchronous browser state. Every
// wait is bounded by either the short or the long timeout and fails with
// *entities.TimeoutError when the bound elapses; nothing here retries.
package wait

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"storefront_automation/application/scripts"
	"storefront_automation/domain/entities"
	"storefront_automation/domain/interfaces"
	"storefront_automation/infrastructure/config"
	"storefront_automation/infrastructure/logging"
)

// Engine polls readiness conditions against one browser session
type Engine struct {
	driver interfaces.Driver
	short  time.Duration
	long   time.Duration
	poll   time.Duration
	logger *logrus.Entry
	now    func() time.Time
}

// NewEngine - creates a wait engine bound to driver
func NewEngine(driver interfaces.Driver, timeouts config.TimeoutConfig, logger *logrus.Logger) *Engine {
	poll := timeouts.Poll
	if poll <= 0 {
		poll = 500 * time.Millisecond
	}
	return &Engine{
		driver: driver,
		short:  timeouts.Short,
		long:   timeouts.Long,
		poll:   poll,
		logger: logging.Component(logger, "wait"),
		now:    time.Now,
	}
}

func (e *Engine) Short() time.Duration { return e.short }
func (e *Engine) Long() time.Duration  { return e.long }

// Await blocks until cond holds or timeout elapses. A success is only
// reported when it was observed strictly before the bound.
func (e *Engine) Await(ctx context.Context, cond Condition, timeout time.Duration) (Outcome, error) {
	p, err := cond.bind(e.driver)
	if err != nil {
		return Outcome{}, err
	}

	e.logger.WithFields(logrus.Fields{
		"condition": cond.String(),
		"timeout":   timeout,
	}).Debug("waiting")

	start := e.now()
	var last error
	for {
		out, ok, err := p.evaluate(e.driver)
		if err != nil {
			if !transient(err) {
				return Outcome{}, entities.Driverf("wait for "+cond.kind.String(), cond.locator, err)
			}
			last = err
		}

		elapsed := e.now().Sub(start)
		if elapsed >= timeout {
			return Outcome{}, &entities.TimeoutError{
				Condition: cond.String(),
				Timeout:   timeout,
				Elapsed:   elapsed,
				Last:      last,
			}
		}
		if ok {
			return out, nil
		}

		pause := e.poll
		if remaining := timeout - elapsed; remaining < pause {
			pause = remaining
		}
		timer := time.NewTimer(pause)
		select {
		case <-ctx.Done():
			timer.Stop()
			return Outcome{}, fmt.Errorf("wait for %s: %w", cond, ctx.Err())
		case <-timer.C:
		}
	}
}

// AwaitLong - Await bounded by the long timeout
func (e *Engine) AwaitLong(ctx context.Context, cond Condition) (Outcome, error) {
	return e.Await(ctx, cond, e.long)
}

func (e *Engine) ElementVisible(ctx context.Context, loc entities.ResolvedLocator) (interfaces.Element, error) {
	out, err := e.AwaitLong(ctx, Visible(loc))
	return out.Element, err
}

func (e *Engine) ElementClickable(ctx context.Context, loc entities.ResolvedLocator) (interfaces.Element, error) {
	out, err := e.AwaitLong(ctx, Clickable(loc))
	return out.Element, err
}

func (e *Engine) ElementInvisible(ctx context.Context, loc entities.ResolvedLocator) error {
	_, err := e.AwaitLong(ctx, Invisible(loc))
	return err
}

func (e *Engine) AllElementsVisible(ctx context.Context, loc entities.ResolvedLocator) ([]interfaces.Element, error) {
	out, err := e.AwaitLong(ctx, AllVisible(loc))
	return out.Elements, err
}

func (e *Engine) AllElementsInvisible(ctx context.Context, loc entities.ResolvedLocator) error {
	_, err := e.AwaitLong(ctx, AllInvisible(loc))
	return err
}

func (e *Engine) AllElementsPresent(ctx context.Context, loc entities.ResolvedLocator) ([]interfaces.Element, error) {
	out, err := e.AwaitLong(ctx, AllPresent(loc))
	return out.Elements, err
}

// Staleness - waits for the element currently matching loc to be detached
func (e *Engine) Staleness(ctx context.Context, loc entities.ResolvedLocator) error {
	_, err := e.AwaitLong(ctx, Stale(loc))
	return err
}

func (e *Engine) AlertPresent(ctx context.Context) (*AlertHandle, error) {
	out, err := e.AwaitLong(ctx, Alert())
	return out.Alert, err
}

// JQueryAndScriptLoaded waits until jQuery reports no active requests and
// the document is complete, both observed in the same poll. A failing
// jQuery probe counts as idle since the page may not load jQuery at all.
func (e *Engine) JQueryAndScriptLoaded(ctx context.Context) (bool, error) {
	_, err := e.AwaitLong(ctx, Script("jQuery idle and document complete", func(d interfaces.Driver) (bool, error) {
		if !jqueryIdle(d) {
			return false, nil
		}
		state, err := d.ExecuteScript(scripts.ReadyState)
		if err != nil {
			return false, err
		}
		return fmt.Sprint(state) == "complete", nil
	}))
	return err == nil, err
}

func jqueryIdle(d interfaces.Driver) bool {
	active, err := d.ExecuteScript(scripts.JQueryActive)
	if err != nil {
		return true
	}
	switch v := active.(type) {
	case float64:
		return v == 0
	case int64:
		return v == 0
	case int:
		return v == 0
	case nil:
		return true
	default:
		return fmt.Sprint(v) == "0"
	}
}

// WithImplicitWait runs fn with the session implicit wait set to d. The
// previous value is restored on every exit path, panics included.
func (e *Engine) WithImplicitWait(d time.Duration, fn func() error) (err error) {
	previous := e.driver.ImplicitWait()
	if err := e.driver.SetImplicitWait(d); err != nil {
		return entities.Driverf("set implicit wait", "", err)
	}
	defer func() {
		if rerr := e.driver.SetImplicitWait(previous); rerr != nil {
			e.logger.WithError(rerr).WithField("implicit_wait", previous).Warn("failed to restore implicit wait")
			if err == nil {
				err = entities.Driverf("restore implicit wait", "", rerr)
			}
		}
	}()
	return fn()
}

// ProbeShort - runs fn under the short implicit wait so a lookup for an
// element that is genuinely absent returns quickly
func (e *Engine) ProbeShort(fn func() error) error {
	return e.WithImplicitWait(e.short, fn)
}

// Pause - sleeps for d unless ctx ends first. Used for the fixed settle
// delays some page interactions need.
func (e *Engine) Pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("pause %s: %w", d, ctx.Err())
	case <-timer.C:
		return nil
	}
}
