package mangascale

import (
	"errors"
	"io"

	"github.com/gogpu/mangascale/internal/filter"
	"github.com/gogpu/mangascale/internal/image"
)

// Image is a dense grid of RGB8 or Gray8 pixels.
type Image = image.Buf

// Pixel is a quantized pixel value.
type Pixel = image.Pixel

// Format is the pixel storage format of an Image.
type Format = image.Format

// Supported formats.
const (
	FormatGray8 = image.FormatGray8
	FormatRGB8  = image.FormatRGB8
)

// DefaultJPEGQuality is the JPEG quality used by the command-line driver.
const DefaultJPEGQuality = image.DefaultJPEGQuality

// Errors returned by mangascale. Errors from filters and I/O wrap these, so
// match them with errors.Is.
var (
	ErrNilImage = errors.New("mangascale: nil image")

	ErrInvalidRadius     = filter.ErrInvalidRadius
	ErrInvalidStrength   = filter.ErrInvalidStrength
	ErrInvalidScale      = filter.ErrInvalidScale
	ErrUpscale           = filter.ErrUpscale
	ErrDegenerateWeights = filter.ErrDegenerateWeights

	ErrInvalidDimensions = image.ErrInvalidDimensions
	ErrRaggedRows        = image.ErrRaggedRows
	ErrFormatMismatch    = image.ErrFormatMismatch
	ErrUnsupportedFormat = image.ErrUnsupportedFormat
	ErrEmptyData         = image.ErrEmptyData
)

// RGB returns an RGB8 pixel.
func RGB(r, g, b uint8) Pixel { return image.RGB(r, g, b) }

// Gray returns a Gray8 pixel.
func Gray(y uint8) Pixel { return image.Gray(y) }

// NewImage creates a black image of the given size and format.
func NewImage(height, width int, format Format) (*Image, error) {
	return image.NewBuf(height, width, format)
}

// FromRows creates an image from a [row][col] pixel grid.
func FromRows(rows [][]Pixel) (*Image, error) {
	return image.FromRows(rows)
}

// ToGray converts img to Gray8 through linear light. Gray images are cloned.
func ToGray(img *Image) (*Image, error) {
	if img == nil {
		return nil, ErrNilImage
	}
	return img.ToGray(), nil
}

// Load reads and decodes the image file at path.
//
// JPEG, PNG, GIF, BMP, TIFF and WebP are supported. EXIF orientation is
// applied and transparency is composited onto white.
func Load(path string) (*Image, error) {
	return image.Load(path)
}

// Decode decodes an image from r, auto-detecting the format.
func Decode(r io.Reader) (*Image, error) {
	return image.Decode(r)
}

// DecodeBytes decodes an image held in memory.
func DecodeBytes(data []byte) (*Image, error) {
	return image.DecodeBytes(data)
}

// Save encodes img into the file at path, choosing the encoder from the
// file extension (.jpg, .jpeg, .png, .bmp, .tif, .tiff).
// quality only applies to JPEG.
func Save(path string, img *Image, quality int) error {
	if img == nil {
		return ErrNilImage
	}
	return image.Save(path, img, quality)
}

// Encode writes img in the format named by ext.
func Encode(w io.Writer, img *Image, ext string, quality int) error {
	if img == nil {
		return ErrNilImage
	}
	return image.Encode(w, img, ext, quality)
}
