// Package scanner decodes barcodes from camera frames in the background.
package scanner

import (
	"errors"
	"fmt"
	"image"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// ErrNoBarcode means the frame holds nothing readable. Scanning goes on.
var ErrNoBarcode = errors.New("no barcode in frame")

type decoder struct {
	readers []gozxing.Reader
	hints   map[gozxing.DecodeHintType]interface{}
}

// NewDecoder reads the symbologies couriers print on parcel labels.
func NewDecoder() *decoder {
	return &decoder{
		readers: []gozxing.Reader{
			oned.NewCode128Reader(),
			oned.NewCode39Reader(),
			oned.NewEAN13Reader(),
			qrcode.NewQRCodeReader(),
		},
		hints: map[gozxing.DecodeHintType]interface{}{
			gozxing.DecodeHintType_TRY_HARDER: true,
		},
	}
}

func (d *decoder) Decode(img image.Image) (string, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("scanner.Decode: bitmap: %w", err)
	}

	var failure error
	for _, r := range d.readers {
		res, err := r.Decode(bmp, d.hints)
		r.Reset()
		if err == nil {
			return res.GetText(), nil
		}
		if !isNotFound(err) && failure == nil {
			failure = err
		}
	}

	if failure != nil {
		return "", fmt.Errorf("scanner.Decode: %w", failure)
	}
	return "", ErrNoBarcode
}

func isNotFound(err error) bool {
	var nf gozxing.NotFoundException
	return errors.As(err, &nf)
}
