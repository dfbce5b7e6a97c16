// Package listing holds the per-page list state: the active filter, the last
// fetched items and the derived view.
package listing

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"sync"

	"github.com/you-humble/colixy-dashboard/internal/model"
	"github.com/you-humble/colixy-dashboard/platform/logger"
)

// Fetcher loads one page of items for the given query.
type Fetcher[T any] func(ctx context.Context, query url.Values) (model.Page[T], error)

// Listener is notified once per filter change with the new filter.
type Listener func(ctx context.Context, f model.Filter) error

type Options[T any] struct {
	Name string

	// Defaults is what Reset restores. Nil means all blank.
	Defaults model.Filter
	// Scope is applied on top of user filters and can never be overridden by them.
	Scope model.Filter

	Fetch Fetcher[T]

	// Match enables client-side filtering. When set, user filters are never sent
	// to the backend and filter changes do not refetch.
	Match func(item T, f model.Filter) bool
	// Compare orders the view. Nil keeps backend order.
	Compare func(a, b T) int
}

type State[T any] struct {
	Items    []T
	Filters  model.Filter
	Loading  bool
	Page     int
	PageSize int
	Total    int
}

type Controller[T any] struct {
	opts Options[T]

	mu        sync.Mutex
	filters   model.Filter
	items     []T
	page      model.Page[T]
	loading   bool
	gen       uint64
	listeners []Listener
}

func New[T any](opts Options[T]) *Controller[T] {
	c := &Controller[T]{
		opts:    opts,
		filters: opts.Defaults.Clone(),
		items:   []T{},
	}

	if opts.Match == nil {
		c.listeners = append(c.listeners, func(ctx context.Context, _ model.Filter) error {
			return c.Fetch(ctx)
		})
	}

	return c
}

// Subscribe registers fn for filter changes. Listeners run in registration order.
func (c *Controller[T]) Subscribe(fn Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.listeners = append(c.listeners, fn)
}

func (c *Controller[T]) ClientSide() bool { return c.opts.Match != nil }

// SetFilter merges patch into the active filter and publishes exactly one change.
func (c *Controller[T]) SetFilter(ctx context.Context, patch model.Filter) error {
	c.mu.Lock()
	c.filters = c.filters.Merge(patch)
	f := c.filters.Clone()
	listeners := slices.Clone(c.listeners)
	c.mu.Unlock()

	return c.publish(ctx, f, listeners)
}

// Reset restores the default filter and always refetches.
func (c *Controller[T]) Reset(ctx context.Context) error {
	c.mu.Lock()
	c.filters = c.opts.Defaults.Clone()
	f := c.filters.Clone()
	listeners := slices.Clone(c.listeners)
	c.mu.Unlock()

	if c.ClientSide() {
		if err := c.Fetch(ctx); err != nil {
			return err
		}
	}
	return c.publish(ctx, f, listeners)
}

func (c *Controller[T]) publish(ctx context.Context, f model.Filter, listeners []Listener) error {
	for _, fn := range listeners {
		if err := fn(ctx, f); err != nil {
			return err
		}
	}
	return nil
}

// Fetch replaces the items with a fresh backend read. A response that arrives
// after a newer Fetch was issued is dropped.
func (c *Controller[T]) Fetch(ctx context.Context) error {
	op := "listing." + c.opts.Name + ".Fetch"

	c.mu.Lock()
	c.gen++
	gen := c.gen
	query, ok := c.queryLocked()
	c.loading = true
	c.mu.Unlock()

	if !ok {
		c.mu.Lock()
		if gen == c.gen {
			c.items = []T{}
			c.page = model.Page[T]{}
			c.loading = false
		}
		c.mu.Unlock()
		return nil
	}

	page, err := c.opts.Fetch(ctx, query)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		logger.Debug(ctx, "stale list response dropped",
			logger.String("list", c.opts.Name),
			logger.Uint64("generation", gen),
		)
		return nil
	}

	c.loading = false
	if err != nil {
		logger.Error(ctx, "fetch list",
			logger.String("list", c.opts.Name),
			logger.ErrorF(err),
		)
		return fmt.Errorf("%s: %w", op, err)
	}

	c.page = page
	c.items = page.Items
	if c.items == nil {
		c.items = []T{}
	}
	return nil
}

// queryLocked builds the outgoing query. It reports false when a user filter
// contradicts the fixed scope, so nothing could match.
func (c *Controller[T]) queryLocked() (url.Values, bool) {
	q := url.Values{}
	if !c.ClientSide() {
		q = c.filters.Values()
	}

	for k := range c.opts.Scope {
		want := c.opts.Scope.Get(k)
		if got := c.filters.Get(k); got != "" && got != want {
			return nil, false
		}
		if want != "" {
			q.Set(k, want)
		}
	}
	return q, true
}

// View is the list as shown: client-side matches applied, then ordered.
func (c *Controller[T]) View() []T {
	c.mu.Lock()
	items := slices.Clone(c.items)
	f := c.filters.Clone()
	c.mu.Unlock()

	if c.opts.Match != nil {
		items = slices.DeleteFunc(items, func(it T) bool {
			return !c.opts.Match(it, f)
		})
	}
	if c.opts.Compare != nil {
		slices.SortStableFunc(items, c.opts.Compare)
	}
	if items == nil {
		items = []T{}
	}
	return items
}

// Items is the last fetched sequence, unfiltered.
func (c *Controller[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	return slices.Clone(c.items)
}

func (c *Controller[T]) Filters() model.Filter {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.filters.Clone()
}

func (c *Controller[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.loading
}

func (c *Controller[T]) State() State[T] {
	view := c.View()

	c.mu.Lock()
	defer c.mu.Unlock()

	return State[T]{
		Items:    view,
		Filters:  c.filters.Clone(),
		Loading:  c.loading,
		Page:     c.page.Page,
		PageSize: c.page.PageSize,
		Total:    c.page.Total,
	}
}
