// Package filter implements whole-image pixel transforms.
package filter

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/anthonynsimon/bild/parallel"
)

// ErrUnknownKind is returned for a filter kind outside the known set.
var ErrUnknownKind = errors.New("unknown filter")

// Kind names a filter.
type Kind int

const (
	Invert Kind = iota
	Grayscale
	FlipHorizontal
	FlipVertical
)

var kindNames = map[Kind]string{
	Invert:         "invert",
	Grayscale:      "grayscale",
	FlipHorizontal: "flip-h",
	FlipVertical:   "flip-v",
}

var kindAliases = map[string]Kind{
	"invert":          Invert,
	"grayscale":       Grayscale,
	"greyscale":       Grayscale,
	"gray":            Grayscale,
	"flip-h":          FlipHorizontal,
	"fliph":           FlipHorizontal,
	"fliphorizontal":  FlipHorizontal,
	"flip-horizontal": FlipHorizontal,
	"flip-v":          FlipVertical,
	"flipv":           FlipVertical,
	"flipvertical":    FlipVertical,
	"flip-vertical":   FlipVertical,
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Valid reports whether k is a known filter.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// Kinds lists every filter in display order.
func Kinds() []Kind { return []Kind{Invert, Grayscale, FlipHorizontal, FlipVertical} }

// ParseKind resolves a filter name such as "invert" or "flip-h".
func ParseKind(s string) (Kind, error) {
	if k, ok := kindAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownKind, s)
}

// Buffer is a raster whose pixels can be read and replaced wholesale.
// Pixels are straight-alpha RGBA, row-major, four bytes each.
type Buffer interface {
	Bounds() image.Rectangle
	ReadPixels() []uint8
	WritePixels([]uint8) error
}

// Apply reads every pixel of buf, computes the filtered image and writes it
// back in one call.
func Apply(buf Buffer, k Kind) error {
	b := buf.Bounds()
	out, err := Transform(buf.ReadPixels(), b.Dx(), b.Dy(), k)
	if err != nil {
		return err
	}
	return buf.WritePixels(out)
}

// Transform returns a new pixel array holding k applied to pix. The input
// is never modified.
func Transform(pix []uint8, width, height int, k Kind) ([]uint8, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w %d", ErrUnknownKind, int(k))
	}
	if len(pix) != width*height*4 {
		return nil, fmt.Errorf("filter %s: %d bytes for %dx%d image", k, len(pix), width, height)
	}
	out := make([]uint8, len(pix))
	stride := width * 4
	parallel.Line(height, func(start, end int) {
		for y := start; y < end; y++ {
			row := pix[y*stride : (y+1)*stride]
			switch k {
			case Invert:
				dst := out[y*stride : (y+1)*stride]
				for i := 0; i < stride; i += 4 {
					dst[i] = 255 - row[i]
					dst[i+1] = 255 - row[i+1]
					dst[i+2] = 255 - row[i+2]
					dst[i+3] = row[i+3]
				}
			case Grayscale:
				dst := out[y*stride : (y+1)*stride]
				for i := 0; i < stride; i += 4 {
					avg := uint8((int(row[i]) + int(row[i+1]) + int(row[i+2])) / 3)
					dst[i], dst[i+1], dst[i+2] = avg, avg, avg
					dst[i+3] = row[i+3]
				}
			case FlipHorizontal:
				dst := out[y*stride : (y+1)*stride]
				for x := 0; x < width; x++ {
					copy(dst[x*4:x*4+4], row[(width-1-x)*4:(width-x)*4])
				}
			case FlipVertical:
				dy := height - 1 - y
				copy(out[dy*stride:(dy+1)*stride], row)
			}
		}
	})
	return out, nil
}
