package scanner

import (
	"context"
	"errors"
	"image"
	"image/color"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you-humble/colixy-dashboard/platform/logger"
)

func TestMain(m *testing.M) {
	logger.SetNopLogger()
	m.Run()
}

func TestDecoderReadsQRCode(t *testing.T) {
	t.Parallel()

	img, err := qrcode.NewQRCodeWriter().Encode("ABC123", gozxing.BarcodeFormat_QR_CODE, 200, 200, nil)
	require.NoError(t, err)

	code, err := NewDecoder().Decode(img)
	require.NoError(t, err)
	assert.Equal(t, "ABC123", code)
}

func TestDecoderBlankFrame(t *testing.T) {
	t.Parallel()

	img := image.NewGray(image.Rect(0, 0, 120, 120))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.Set(0, 0, color.Gray{Y: 0xfe})

	_, err := NewDecoder().Decode(img)
	assert.ErrorIs(t, err, ErrNoBarcode)
}

type step struct {
	code string
	err  error
}

type scriptedDecoder struct {
	mu      sync.Mutex
	results []step
	calls   atomic.Int32
}

func (d *scriptedDecoder) Decode(image.Image) (string, error) {
	d.calls.Add(1)

	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.results) == 0 {
		return "", ErrNoBarcode
	}
	r := d.results[0]
	d.results = d.results[1:]
	return r.code, r.err
}

func frame() image.Image { return image.NewGray(image.Rect(0, 0, 1, 1)) }

func TestSessionFirstDecodeWins(t *testing.T) {
	t.Parallel()

	dec := &scriptedDecoder{results: []step{
		{err: ErrNoBarcode},
		{err: errors.New("checksum")},
		{code: "ABC123"},
		{code: "LATE"},
	}}

	var got []string
	var mu sync.Mutex
	s := Start(context.Background(), dec, func(code string) {
		mu.Lock()
		got = append(got, code)
		mu.Unlock()
	})

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Push(frame()))
		time.Sleep(5 * time.Millisecond)
	}
	s.Wait()

	assert.False(t, s.Running())
	assert.Equal(t, "ABC123", s.Result())
	assert.ErrorIs(t, s.Push(frame()), ErrStopped)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"ABC123"}, got)
	assert.Equal(t, int32(3), dec.calls.Load())
}

func TestSessionStop(t *testing.T) {
	t.Parallel()

	called := false
	s := Start(context.Background(), &scriptedDecoder{}, func(string) { called = true })
	require.NoError(t, s.Push(frame()))

	s.Stop()
	assert.False(t, s.Running())
	assert.ErrorIs(t, s.Push(frame()), ErrStopped)
	assert.False(t, called)
	assert.Empty(t, s.Result())
}
