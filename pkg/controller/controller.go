// Package controller owns one form session: it fetches the schema for a roll
// number, tracks the loading and error lifecycle, forwards navigation events to
// the wizard state and hands submitted values to a sink.
package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/pkg/client"
	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/sink"
	"github.com/goliatone/go-formwizard/pkg/validation"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Controller serialises every event for a single session behind a mutex.
type Controller struct {
	mu    sync.Mutex
	state wizard.State

	fetcher client.Fetcher
	sink    sink.Sink
	logger  *zap.Logger
	policy  wizard.SubmitPolicy
	now     func() time.Time

	generation uint64
	cancel     context.CancelFunc
	done       chan struct{}
	loadErr    error
}

// New constructs a controller around fetcher.
func New(fetcher client.Fetcher, options ...Option) *Controller {
	c := &Controller{
		state:   wizard.NewState(),
		fetcher: fetcher,
		sink:    sink.NewLogSink(nil),
		logger:  zap.NewNop(),
		policy:  wizard.SubmitValidateCurrent,
		now:     time.Now,
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Load starts fetching the form for rollNumber on its own goroutine and
// returns immediately with the state in the loading phase. Loading the roll
// number already loading or loaded is a no-op; after a failure it retries. A
// different roll number cancels the fetch in flight; its late result is
// discarded.
//
// The fetch keeps ctx's values but not its cancellation, so a request-scoped
// context can start a load that outlives the request. Reset or a superseding
// Load stops it.
func (c *Controller) Load(ctx context.Context, rollNumber string) error {
	rollNumber = strings.TrimSpace(rollNumber)
	if rollNumber == "" {
		return ErrEmptyRollNumber
	}
	if c.fetcher == nil {
		return ErrNoFetcher
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.RollNumber == rollNumber && (c.state.Status == wizard.StatusLoading || c.state.Status == wizard.StatusReady) {
		return nil
	}

	c.stopLocked()
	c.generation++
	c.loadErr = nil
	c.state.Begin(rollNumber)

	fetchCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	done := make(chan struct{})
	c.cancel = cancel
	c.done = done

	c.logger.Info("fetching form", zap.String("roll_number", rollNumber), zap.Uint64("generation", c.generation))
	go c.fetch(fetchCtx, c.generation, rollNumber, done)
	return nil
}

func (c *Controller) fetch(ctx context.Context, generation uint64, rollNumber string, done chan struct{}) {
	defer close(done)

	form, err := c.fetcher.Fetch(ctx, rollNumber)
	if err == nil {
		err = form.Validate()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if generation != c.generation {
		c.logger.Debug("discarding stale form fetch",
			zap.String("roll_number", rollNumber),
			zap.Uint64("generation", generation),
		)
		return
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}

	if err != nil {
		c.loadErr = fmt.Errorf("%w: %w", ErrFetchFailed, err)
		c.state.Failed(FetchErrorMessage)
		c.logger.Warn("form fetch failed", zap.String("roll_number", rollNumber), zap.Error(err))
		return
	}

	c.state.Loaded(form)
	c.logger.Info("form loaded",
		zap.String("roll_number", rollNumber),
		zap.String("form_id", form.ID),
		zap.Int("sections", len(form.Sections)),
	)
}

// Wait blocks until the current load settles or ctx ends. It returns the fetch
// failure, if any.
func (c *Controller) Wait(ctx context.Context) error {
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()

	if done != nil {
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadErr
}

// SetValue records a single field value.
func (c *Controller) SetValue(id string, value schema.Value) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.state.SetValue(id, value); err != nil {
		return fmt.Errorf("controller: set value: %w", err)
	}
	return nil
}

// ApplyValues records several values at once. Every entry is attempted; the
// failures are joined. A rejected value keeps the previous one and marks the
// field with MessageInvalidValue until an accepted value replaces it.
func (c *Controller) ApplyValues(values schema.FormValues) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error
	for id, value := range values {
		err := c.state.SetValue(id, value)
		if err == nil {
			if c.state.Errors[id] == validation.MessageInvalidValue {
				delete(c.state.Errors, id)
			}
			continue
		}
		var valueErr *wizard.ValueError
		if errors.As(err, &valueErr) {
			if c.state.Errors == nil {
				c.state.Errors = map[string]string{}
			}
			c.state.Errors[valueErr.FieldID] = validation.MessageInvalidValue
		}
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("controller: apply values: %w", errors.Join(errs...))
	}
	return nil
}

// Next validates the current section and advances when it passes.
func (c *Controller) Next() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	advanced, err := c.state.Next()
	if err != nil {
		return false, fmt.Errorf("controller: next: %w", err)
	}
	if !advanced {
		c.logger.Debug("section validation failed",
			zap.String("roll_number", c.state.RollNumber),
			zap.Int("section", c.state.Index),
			zap.Int("errors", len(c.state.Errors)),
		)
	}
	return advanced, nil
}

// Prev moves back one section without validating.
func (c *Controller) Prev() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.state.Prev(); err != nil {
		return fmt.Errorf("controller: prev: %w", err)
	}
	return nil
}

// Submit validates according to the configured policy and, when it passes,
// hands every accumulated value to the sink. ok is false when validation failed
// and errors are now visible.
func (c *Controller) Submit(ctx context.Context) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	values, ok, err := c.state.Submit(c.policy)
	if err != nil {
		return false, fmt.Errorf("controller: submit: %w", err)
	}
	if !ok {
		c.logger.Debug("submit blocked by validation",
			zap.String("roll_number", c.state.RollNumber),
			zap.Int("section", c.state.Index),
			zap.Int("errors", len(c.state.Errors)),
		)
		return false, nil
	}

	submission := sink.Submission{
		RollNumber:  c.state.RollNumber,
		FormID:      c.state.Form.ID,
		Version:     c.state.Form.Version,
		Values:      values,
		SubmittedAt: c.now().UTC(),
	}
	if err := c.sink.Submit(ctx, submission); err != nil {
		c.logger.Error("submission sink failed", zap.String("roll_number", submission.RollNumber), zap.Error(err))
		return false, fmt.Errorf("controller: submit: %w", err)
	}

	c.state.MarkSubmitted()
	return true, nil
}

// Reset cancels any fetch and discards the form and values, as on logout.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
	c.generation++
	c.loadErr = nil
	c.state.Reset()
}

// Snapshot returns a deep copy of the current state.
func (c *Controller) Snapshot() wizard.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

func (c *Controller) stopLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.done = nil
}
