package image

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	// Register WebP with image.Decode; imaging registers the other formats.
	_ "golang.org/x/image/webp"
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when the image format is not supported.
	ErrUnsupportedFormat = errors.New("image: unsupported format")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("image: empty data")
)

// DefaultJPEGQuality is the quality used when none is given.
const DefaultJPEGQuality = 100

// Load reads and decodes the image file at path.
func Load(path string) (*Buf, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("image: read file: %w", err)
	}
	return DecodeBytes(data)
}

// Decode decodes an image from r, auto-detecting the format.
func Decode(r io.Reader) (*Buf, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("image: read: %w", err)
	}
	return DecodeBytes(data)
}

// DecodeBytes decodes an image held in memory, auto-detecting the format.
//
// EXIF orientation is applied. Grayscale sources produce a Gray8 buffer,
// everything else RGB8. Transparent pixels are composited onto white.
func DecodeBytes(data []byte) (*Buf, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("image: decode config: %w", err)
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("image: decode: %w", err)
	}

	format := FormatRGB8
	if cfg.ColorModel == color.GrayModel || cfg.ColorModel == color.Gray16Model {
		format = FormatGray8
	}
	return FromStdImage(img, format)
}

// FromStdImage converts a standard library image into a buffer of the
// given format, compositing any alpha onto white.
func FromStdImage(img image.Image, format Format) (*Buf, error) {
	bounds := img.Bounds()
	b, err := NewBuf(bounds.Dy(), bounds.Dx(), format)
	if err != nil {
		return nil, err
	}

	// Fast path for opaque grayscale
	if gray, ok := img.(*image.Gray); ok && format == FormatGray8 {
		for y := range b.Height() {
			start := y * gray.Stride
			copy(b.Row(y), gray.Pix[start:start+b.width])
		}
		return b, nil
	}

	nrgba := imaging.Clone(img)
	ch := format.Channels()
	for y := range b.Height() {
		src := nrgba.Pix[y*nrgba.Stride:]
		dst := b.Row(y)
		for x := range b.width {
			s := src[x*4 : x*4+4]
			a := uint32(s[3])
			if ch == 1 {
				dst[x] = overWhite(s[0], a)
				continue
			}
			dst[x*3] = overWhite(s[0], a)
			dst[x*3+1] = overWhite(s[1], a)
			dst[x*3+2] = overWhite(s[2], a)
		}
	}
	return b, nil
}

// overWhite composites a non-premultiplied component onto a white background.
func overWhite(c uint8, a uint32) uint8 {
	if a == 0xff {
		return c
	}
	return uint8((uint32(c)*a + 0xff*(0xff-a) + 0x7f) / 0xff)
}

// ToStdImage converts the buffer to *image.Gray (Gray8) or *image.NRGBA (RGB8).
func (b *Buf) ToStdImage() image.Image {
	rect := image.Rect(0, 0, b.width, b.Height())

	if b.format == FormatGray8 {
		gray := image.NewGray(rect)
		for y := range b.Height() {
			copy(gray.Pix[y*gray.Stride:], b.Row(y))
		}
		return gray
	}

	nrgba := image.NewNRGBA(rect)
	for y := range b.Height() {
		row := b.Row(y)
		dst := nrgba.Pix[y*nrgba.Stride:]
		for x := range b.width {
			dst[x*4] = row[x*3]
			dst[x*4+1] = row[x*3+1]
			dst[x*4+2] = row[x*3+2]
			dst[x*4+3] = 0xff
		}
	}
	return nrgba
}

// EncodeJPEG encodes the buffer as JPEG with the given quality (1-100).
func EncodeJPEG(w io.Writer, b *Buf, quality int) error {
	quality = max(1, min(quality, 100))
	if err := jpeg.Encode(w, b.ToStdImage(), &jpeg.Options{Quality: quality}); err != nil {
		return fmt.Errorf("image: encode JPEG: %w", err)
	}
	return nil
}

// EncodePNG encodes the buffer as PNG.
func EncodePNG(w io.Writer, b *Buf) error {
	if err := png.Encode(w, b.ToStdImage()); err != nil {
		return fmt.Errorf("image: encode PNG: %w", err)
	}
	return nil
}

// EncodeBMP encodes the buffer as BMP.
func EncodeBMP(w io.Writer, b *Buf) error {
	if err := bmp.Encode(w, b.ToStdImage()); err != nil {
		return fmt.Errorf("image: encode BMP: %w", err)
	}
	return nil
}

// EncodeTIFF encodes the buffer as Deflate-compressed TIFF.
func EncodeTIFF(w io.Writer, b *Buf) error {
	if err := tiff.Encode(w, b.ToStdImage(), &tiff.Options{Compression: tiff.Deflate}); err != nil {
		return fmt.Errorf("image: encode TIFF: %w", err)
	}
	return nil
}

// Encode writes the buffer in the format named by ext (".jpg", ".png", ...).
// quality only applies to JPEG.
func Encode(w io.Writer, b *Buf, ext string, quality int) error {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return EncodeJPEG(w, b, quality)
	case ".png":
		return EncodePNG(w, b)
	case ".bmp":
		return EncodeBMP(w, b)
	case ".tif", ".tiff":
		return EncodeTIFF(w, b)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Save encodes the buffer into the file at path, choosing the encoder from
// the file extension.
func Save(path string, b *Buf, quality int) error {
	var buf bytes.Buffer
	if err := Encode(&buf, b, filepath.Ext(path), quality); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Clean(path), buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("image: write file: %w", err)
	}
	return nil
}
