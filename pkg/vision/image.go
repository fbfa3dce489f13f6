package vision

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
)

// ColorModel describes the layout of a raw pixel buffer.
type ColorModel int

const (
	Gray ColorModel = iota
	Gray16
	RGB
	RGBA
)

func (m ColorModel) bytesPerPixel() int {
	switch m {
	case Gray:
		return 1
	case Gray16:
		return 2
	case RGB:
		return 3
	case RGBA:
		return 4
	}
	return 0
}

func (m ColorModel) String() string {
	switch m {
	case Gray:
		return "gray"
	case Gray16:
		return "gray16"
	case RGB:
		return "rgb"
	case RGBA:
		return "rgba"
	}
	return fmt.Sprintf("ColorModel(%d)", int(m))
}

// Image is image content ready to be placed in a request.
type Image struct {
	base64Data string
}

// Base64 returns the standard base64 encoding of the image bytes.
func (i Image) Base64() string {
	return i.base64Data
}

// NewImageFromBytes wraps bytes that are already in a format the
// service accepts (PNG, JPEG, GIF, ...).
func NewImageFromBytes(data []byte) (Image, error) {
	if len(data) == 0 {
		return Image{}, &EncodeError{Err: errors.New("empty image data")}
	}
	return Image{base64Data: base64.StdEncoding.EncodeToString(data)}, nil
}

// NewImage encodes img losslessly as PNG.
func NewImage(img image.Image) (Image, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return Image{}, &EncodeError{Err: err}
	}
	return Image{base64Data: base64.StdEncoding.EncodeToString(buf.Bytes())}, nil
}

// NewImageFromPixels encodes a tightly packed pixel buffer. Gray16
// samples are big-endian, RGBA is non-premultiplied.
func NewImageFromPixels(pix []byte, width, height int, model ColorModel) (Image, error) {
	bpp := model.bytesPerPixel()
	if bpp == 0 {
		return Image{}, &EncodeError{Err: fmt.Errorf("unsupported color model %s", model)}
	}
	if width <= 0 || height <= 0 {
		return Image{}, &EncodeError{Err: fmt.Errorf("invalid dimensions %dx%d", width, height)}
	}
	if want := width * height * bpp; len(pix) != want {
		return Image{}, &EncodeError{Err: fmt.Errorf("pixel buffer is %d bytes, want %d for %dx%d %s", len(pix), want, width, height, model)}
	}

	rect := image.Rect(0, 0, width, height)
	var img image.Image
	switch model {
	case Gray:
		img = &image.Gray{Pix: pix, Stride: width, Rect: rect}
	case Gray16:
		img = &image.Gray16{Pix: pix, Stride: width * 2, Rect: rect}
	case RGBA:
		img = &image.NRGBA{Pix: pix, Stride: width * 4, Rect: rect}
	case RGB:
		nrgba := image.NewNRGBA(rect)
		for i, j := 0, 0; i < len(pix); i, j = i+3, j+4 {
			nrgba.Pix[j] = pix[i]
			nrgba.Pix[j+1] = pix[i+1]
			nrgba.Pix[j+2] = pix[i+2]
			nrgba.Pix[j+3] = 0xff
		}
		img = nrgba
	}
	return NewImage(img)
}
