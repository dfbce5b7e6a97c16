// Package form holds the state of one create/edit modal.
package form

import (
	"context"
	"fmt"
	"sync"

	"github.com/you-humble/colixy-dashboard/internal/model"
	"github.com/you-humble/colixy-dashboard/platform/logger"
)

type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

type Options[V any] struct {
	Name string

	// Defaults returns the blank values of a create form.
	Defaults func() V
	// Validate runs before any network call. It must not have side effects.
	Validate func(mode Mode, v V) error
	// Save persists v. id is empty in create mode.
	Save func(ctx context.Context, mode Mode, id string, v V) error
	// OnSaved runs after a successful save, typically the owner list's refetch.
	OnSaved func(ctx context.Context) error
}

type State[V any] struct {
	Open       bool
	Mode       Mode
	ID         string
	Values     V
	Submitting bool
}

type Controller[V any] struct {
	opts Options[V]

	mu         sync.Mutex
	open       bool
	mode       Mode
	id         string
	values     V
	submitting bool
	// epoch changes on every open and close so a save that outlives its form
	// leaves the next one alone.
	epoch uint64
}

func New[V any](opts Options[V]) *Controller[V] {
	return &Controller[V]{opts: opts}
}

// OpenCreate opens a blank form.
func (c *Controller[V]) OpenCreate() State[V] {
	var v V
	if c.opts.Defaults != nil {
		v = c.opts.Defaults()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.open, c.mode, c.id, c.values, c.submitting = true, ModeCreate, "", v, false
	c.epoch++
	return c.stateLocked()
}

// OpenEdit opens the form seeded with the values of an existing record.
func (c *Controller[V]) OpenEdit(id string, seed V) State[V] {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.open, c.mode, c.id, c.values, c.submitting = true, ModeEdit, id, seed, false
	c.epoch++
	return c.stateLocked()
}

// Submit validates and saves v. On any failure the form stays open with v kept
// for correction.
func (c *Controller[V]) Submit(ctx context.Context, v V) error {
	op := "form." + c.opts.Name + ".Submit"

	c.mu.Lock()
	if !c.open {
		c.mu.Unlock()
		return fmt.Errorf("%s: %w", op, model.ErrFormClosed)
	}
	if c.submitting {
		c.mu.Unlock()
		return fmt.Errorf("%s: submit already running: %w", op, model.ErrInvalidTransition)
	}
	c.values = v
	c.submitting = true
	mode, id, epoch := c.mode, c.id, c.epoch
	c.mu.Unlock()

	log := logger.With(
		logger.String("form", c.opts.Name),
		logger.String("mode", string(mode)),
		logger.String("id", id),
	)

	if c.opts.Validate != nil {
		if err := c.opts.Validate(mode, v); err != nil {
			c.finish(epoch, false)
			log.Warn(ctx, "form rejected", logger.ErrorF(err))
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	err := c.opts.Save(ctx, mode, id, v)
	if err != nil {
		c.finish(epoch, false)
		log.Error(ctx, "save", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	if !c.finish(epoch, true) {
		log.Info(ctx, "form closed while saving")
	}

	if c.opts.OnSaved != nil {
		if err := c.opts.OnSaved(ctx); err != nil {
			return fmt.Errorf("%s: refresh after save: %w", op, err)
		}
	}
	return nil
}

// Cancel discards every uncommitted edit.
func (c *Controller[V]) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closeLocked()
}

func (c *Controller[V]) State() State[V] {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.stateLocked()
}

// finish ends the submit started at epoch. It reports false when the form was
// cancelled or reopened meanwhile, in which case the current form is untouched.
func (c *Controller[V]) finish(epoch uint64, saved bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if epoch != c.epoch {
		return false
	}
	c.submitting = false
	if saved {
		c.closeLocked()
	}
	return true
}

func (c *Controller[V]) closeLocked() {
	var zero V
	c.open, c.mode, c.id, c.values, c.submitting = false, "", "", zero, false
	c.epoch++
}

func (c *Controller[V]) stateLocked() State[V] {
	return State[V]{
		Open:       c.open,
		Mode:       c.mode,
		ID:         c.id,
		Values:     c.values,
		Submitting: c.submitting,
	}
}
