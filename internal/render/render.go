// Package render turns catalog descriptors into frames: terminal text,
// raster images, or both.
package render

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"chartdeck/internal/catalog"
)

var (
	// ErrUnsupportedKind is returned by a renderer that cannot draw a kind.
	ErrUnsupportedKind = errors.New("render: unsupported chart kind")
	// ErrUnavailable means no rendering capability was configured.
	ErrUnavailable = errors.New("render: no rendering capability")
	// ErrSurfaceTooSmall is returned when the surface cannot hold a chart.
	ErrSurfaceTooSmall = errors.New("render: surface too small")
)

const (
	NameTerminal = "terminal"
	NameRaster   = "raster"
	NameFallback = "fallback"
	NameNone     = "none"
)

// Surface is the target a renderer draws onto. Width and Height are pixels
// for raster targets and character cells for terminal targets.
type Surface struct {
	Width    int
	Height   int
	Terminal bool
}

// PixelSize is the raster resolution that backs the surface. Terminal cells
// are drawn with half blocks, two pixels per cell vertically.
func (s Surface) PixelSize() (int, int) {
	if s.Terminal {
		return s.Width, s.Height * 2
	}
	return s.Width, s.Height
}

// Frame is what a handle shows. Text is set for terminal surfaces, Image
// whenever the renderer produced pixels.
type Frame struct {
	Text  string
	Image image.Image
}

// Empty reports whether the frame has nothing to show.
func (f Frame) Empty() bool {
	return strings.TrimSpace(f.Text) == "" && f.Image == nil
}

// Handle is the disposable result of one render. It must be destroyed
// before the next render acquires a new one.
type Handle interface {
	Frame() Frame
	Destroy()
}

// Renderer is a rendering capability.
type Renderer interface {
	Name() string
	Render(d catalog.Descriptor, s Surface) (Handle, error)
}

type frameHandle struct {
	frame     Frame
	destroyed bool
}

// NewHandle wraps a finished frame.
func NewHandle(f Frame) Handle {
	return &frameHandle{frame: f}
}

func (h *frameHandle) Frame() Frame {
	if h.destroyed {
		return Frame{}
	}
	return h.frame
}

func (h *frameHandle) Destroy() {
	h.destroyed = true
	h.frame = Frame{}
}

// ByName resolves the configured primary renderer. NameNone yields
// ErrUnavailable so callers get a typed "no capability" result.
func ByName(name string) (Renderer, error) {
	switch name {
	case NameTerminal:
		return NewTerminal(), nil
	case NameRaster, "":
		return NewRaster(), nil
	case NameNone:
		return nil, ErrUnavailable
	default:
		return nil, fmt.Errorf("unknown renderer %q", name)
	}
}
