// Package qrrender turns a text payload into QR images: a PNG raster, an SVG
// vector drawing and a half-block terminal rendering.
package qrrender

import (
	"fmt"
	"io"
	"os"

	svg "github.com/ajstarks/svgo"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	// ModulePixels is the edge length of one QR module in the PNG output.
	ModulePixels = 10
	// Border is the quiet zone width in modules.
	Border = 4
)

type Code struct {
	qr *qrcode.QRCode
}

// Encode builds the smallest QR symbol at error-correction level L that fits
// content.
func Encode(content string) (*Code, error) {
	qr, err := qrcode.New(content, qrcode.Low)
	if err != nil {
		return nil, fmt.Errorf("encoding QR code: %w", err)
	}
	return &Code{qr: qr}, nil
}

// Modules reports the symbol size in modules, quiet zone included.
func (c *Code) Modules() int {
	return len(c.qr.Bitmap())
}

func (c *Code) PNG() ([]byte, error) {
	// a negative size asks the encoder for a fixed pixel count per module
	return c.qr.PNG(-ModulePixels)
}

func (c *Code) WritePNG(path string) error {
	data, err := c.PNG()
	if err != nil {
		return fmt.Errorf("rendering PNG: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// SVG draws one black square per dark module on a white background.
func (c *Code) SVG(w io.Writer) {
	bitmap := c.qr.Bitmap()
	size := len(bitmap) * ModulePixels

	canvas := svg.New(w)
	canvas.Start(size, size)
	canvas.Rect(0, 0, size, size, "fill:#ffffff")
	for y, row := range bitmap {
		for x, dark := range row {
			if dark {
				canvas.Rect(x*ModulePixels, y*ModulePixels, ModulePixels, ModulePixels, "fill:#000000")
			}
		}
	}
	canvas.End()
}

func (c *Code) WriteSVG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	c.SVG(f)
	return f.Close()
}

// ASCII renders two module rows per text line with inverted colours, which
// reads correctly on dark terminal backgrounds.
func (c *Code) ASCII() string {
	return c.qr.ToSmallString(true)
}
