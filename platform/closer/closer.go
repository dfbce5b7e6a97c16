package closer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

type Logger interface {
	Info(ctx context.Context, msg string, fields ...zap.Field)
	Error(ctx context.Context, msg string, fields ...zap.Field)
}

type namedFn struct {
	name string
	fn   func(ctx context.Context) error
}

type closer struct {
	mu     sync.Mutex
	once   sync.Once
	funcs  []namedFn
	logger Logger
}

var global = &closer{}

func SetLogger(l Logger) {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.logger = l
}

func Add(fn func(ctx context.Context) error) {
	AddNamed("", fn)
}

func AddNamed(name string, fn func(ctx context.Context) error) {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.funcs = append(global.funcs, namedFn{name: name, fn: fn})
}

// CloseAll runs registered closers in reverse order. Subsequent calls are no-ops.
func CloseAll(ctx context.Context) error {
	var err error
	global.once.Do(func() {
		err = global.closeAll(ctx)
	})
	return err
}

func (c *closer) closeAll(ctx context.Context) error {
	c.mu.Lock()
	funcs := c.funcs
	c.funcs = nil
	log := c.logger
	c.mu.Unlock()

	var errs []error
	for i := len(funcs) - 1; i >= 0; i-- {
		f := funcs[i]
		if ctx.Err() != nil {
			errs = append(errs, fmt.Errorf("closer %q: %w", f.name, ctx.Err()))
			continue
		}

		if err := f.fn(ctx); err != nil {
			if log != nil {
				log.Error(ctx, "failed to close", zap.String("name", f.name), zap.Error(err))
			}
			errs = append(errs, fmt.Errorf("closer %q: %w", f.name, err))
			continue
		}
		if log != nil {
			log.Info(ctx, "closed", zap.String("name", f.name))
		}
	}

	return errors.Join(errs...)
}
