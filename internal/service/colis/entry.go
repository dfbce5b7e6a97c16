package colisservice

import (
	"context"
	"fmt"
	"image"
	"strings"
	"sync"

	"github.com/you-humble/colixy-dashboard/internal/model"
	"github.com/you-humble/colixy-dashboard/internal/service/scanner"
)

// BarcodeEntry is the barcode modal shared by parcel creation and returns:
// typed entry plus an optional background camera scan.
type BarcodeEntry struct {
	decoder scanner.Decoder

	mu      sync.Mutex
	open    bool
	barcode string
	scan    *scanner.Session
	scanSeq uint64
}

func NewBarcodeEntry(decoder scanner.Decoder) *BarcodeEntry {
	return &BarcodeEntry{decoder: decoder}
}

// Open shows a clean modal. Any previous scan is stopped.
func (e *BarcodeEntry) Open() {
	e.mu.Lock()
	sess := e.detachLocked()
	e.open = true
	e.barcode = ""
	e.mu.Unlock()

	stop(sess)
}

func (e *BarcodeEntry) Close() {
	e.mu.Lock()
	sess := e.detachLocked()
	e.open = false
	e.barcode = ""
	e.mu.Unlock()

	stop(sess)
}

func (e *BarcodeEntry) IsOpen() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.open
}

func (e *BarcodeEntry) SetBarcode(code string) error {
	const op = "colisservice.BarcodeEntry.SetBarcode"

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.open {
		return fmt.Errorf("%s: %w", op, model.ErrInvalidTransition)
	}
	e.barcode = strings.TrimSpace(code)
	return nil
}

func (e *BarcodeEntry) Barcode() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.barcode
}

// StartScan begins decoding pushed frames. The first decoded barcode fills the
// field and ends the scan.
func (e *BarcodeEntry) StartScan(ctx context.Context) error {
	const op = "colisservice.BarcodeEntry.StartScan"

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.open {
		return fmt.Errorf("%s: %w", op, model.ErrInvalidTransition)
	}
	if e.scan != nil && e.scan.Running() {
		return fmt.Errorf("%s: %w", op, model.ErrScanInProgress)
	}

	e.scanSeq++
	seq := e.scanSeq
	e.scan = scanner.Start(context.WithoutCancel(ctx), e.decoder, func(code string) {
		e.mu.Lock()
		defer e.mu.Unlock()

		if e.open && e.scanSeq == seq {
			e.barcode = code
		}
	})
	return nil
}

func (e *BarcodeEntry) PushFrame(img image.Image) error {
	const op = "colisservice.BarcodeEntry.PushFrame"

	e.mu.Lock()
	sess := e.scan
	e.mu.Unlock()

	if sess == nil {
		return fmt.Errorf("%s: no scan running: %w", op, model.ErrInvalidTransition)
	}
	if err := sess.Push(img); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (e *BarcodeEntry) StopScan() {
	e.mu.Lock()
	sess := e.detachLocked()
	e.mu.Unlock()

	stop(sess)
}

func (e *BarcodeEntry) Scanning() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.scan != nil && e.scan.Running()
}

// detachLocked forgets the current scan. It must be stopped after e.mu is
// released because the decode callback takes e.mu.
func (e *BarcodeEntry) detachLocked() *scanner.Session {
	sess := e.scan
	e.scan = nil
	e.scanSeq++
	return sess
}

func stop(sess *scanner.Session) {
	if sess != nil {
		sess.Stop()
	}
}
