package scanner

import (
	"context"
	"errors"
	"image"
	"sync"

	"github.com/you-humble/colixy-dashboard/platform/logger"
)

var ErrStopped = errors.New("scan stopped")

const frameBuffer = 4

type Decoder interface {
	Decode(img image.Image) (string, error)
}

// Session is one running scan. Frames are pushed by the caller and decoded in
// order on a single goroutine until the first success or Stop.
type Session struct {
	frames chan image.Image
	cancel context.CancelFunc
	done   chan struct{}

	mu     sync.Mutex
	result string
}

// Start runs the decode loop. onDecoded is called at most once.
func Start(ctx context.Context, dec Decoder, onDecoded func(code string)) *Session {
	ctx, cancel := context.WithCancel(ctx)
	s := &Session{
		frames: make(chan image.Image, frameBuffer),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go s.run(ctx, dec, onDecoded)
	return s
}

func (s *Session) run(ctx context.Context, dec Decoder, onDecoded func(string)) {
	defer close(s.done)
	defer s.cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case img := <-s.frames:
			code, err := dec.Decode(img)
			switch {
			case err == nil && code != "":
				s.mu.Lock()
				s.result = code
				s.mu.Unlock()

				logger.Info(ctx, "barcode decoded", logger.String("barcode", code))
				if onDecoded != nil {
					onDecoded(code)
				}
				return
			case err == nil, errors.Is(err, ErrNoBarcode):
			default:
				logger.Warn(ctx, "barcode decode", logger.ErrorF(err))
			}
		}
	}
}

// Push hands a frame to the loop. A full buffer drops the frame.
func (s *Session) Push(img image.Image) error {
	select {
	case <-s.done:
		return ErrStopped
	default:
	}

	select {
	case s.frames <- img:
	case <-s.done:
		return ErrStopped
	default:
		logger.Debug(context.Background(), "scan frame dropped")
	}
	return nil
}

// Stop ends the scan and waits for the loop to exit.
func (s *Session) Stop() {
	s.cancel()
	<-s.done
}

func (s *Session) Running() bool {
	select {
	case <-s.done:
		return false
	default:
		return true
	}
}

func (s *Session) Result() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.result
}

// Wait blocks until the loop exits.
func (s *Session) Wait() { <-s.done }
