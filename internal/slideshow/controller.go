// Package slideshow cycles through a chart catalog and renders one slide
// at a time.
package slideshow

import (
	"errors"
	"fmt"

	"chartdeck/internal/catalog"
	"chartdeck/internal/render"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrRendererUnavailable is returned by New when no rendering capability
// was supplied. Nothing else is initialized in that case.
var ErrRendererUnavailable = errors.New("slideshow: no rendering capability available")

// Config holds the optional collaborators of a Controller.
type Config struct {
	Surface render.Surface
	// Fallback enables the degraded drawer when the primary renderer fails.
	// Without it a failed slide stays empty and the error goes to the panel.
	Fallback bool
	// FallbackRenderer overrides the default gg drawer.
	FallbackRenderer render.Renderer
	Panel            Panel
	Logger           *zap.Logger
}

// Controller owns the cursor and the live render handle. It is not safe
// for concurrent use; hosts that can call from several goroutines must
// serialize access.
type Controller struct {
	cat      *catalog.Catalog
	renderer render.Renderer
	fallback render.Renderer
	surface  render.Surface
	panel    Panel
	logger   *zap.Logger

	cursor int
	handle render.Handle
	info   Info
}

// New checks the rendering capability, then builds the catalog. A missing
// renderer fails before src is consulted.
func New(cfg Config, r render.Renderer, src catalog.Source) (*Controller, error) {
	if r == nil {
		return nil, ErrRendererUnavailable
	}
	if src == nil {
		return nil, fmt.Errorf("slideshow: no catalog source")
	}
	cat, err := src.Build()
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}

	c := &Controller{
		cat:      cat,
		renderer: r,
		surface:  cfg.Surface,
		panel:    cfg.Panel,
		logger:   cfg.Logger,
	}
	if c.panel == nil {
		c.panel = nopPanel{}
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	if cfg.Fallback {
		c.fallback = cfg.FallbackRenderer
		if c.fallback == nil {
			c.fallback = render.NewFallback()
		}
	}
	return c, nil
}

// Start constructs a controller, binds the triggers and renders the first
// slide.
func Start(cfg Config, r render.Renderer, src catalog.Source, t Triggers) (*Controller, error) {
	c, err := New(cfg, r, src)
	if err != nil {
		return nil, err
	}
	c.Bind(t)
	c.RenderCurrent()
	return c, nil
}

// Bind subscribes Retreat and Advance to the given triggers. Missing
// triggers are skipped; the number bound is returned.
func (c *Controller) Bind(t Triggers) int {
	n := 0
	if t.Previous != nil {
		t.Previous.Subscribe(c.Retreat)
		n++
	}
	if t.Next != nil {
		t.Next.Subscribe(c.Advance)
		n++
	}
	c.logger.Debug("triggers bound", zap.Int("count", n))
	return n
}

func (c *Controller) Advance() {
	c.cursor = (c.cursor + 1) % c.cat.Len()
	c.RenderCurrent()
}

func (c *Controller) Retreat() {
	n := c.cat.Len()
	c.cursor = (c.cursor - 1 + n) % n
	c.RenderCurrent()
}

// Show jumps to i. Indexes below zero go to the last slide and indexes
// past the end go to the first.
func (c *Controller) Show(i int) {
	switch {
	case i < 0:
		i = c.cat.Len() - 1
	case i >= c.cat.Len():
		i = 0
	}
	c.cursor = i
	c.RenderCurrent()
}

// RenderCurrent draws the slide under the cursor. Render errors never
// escape: they are logged, the fallback draws instead when enabled, and
// the panel is updated either way.
func (c *Controller) RenderCurrent() {
	d := c.cat.At(c.cursor)
	c.release()

	info := Info{
		Index:       c.cursor,
		Kind:        d.Kind,
		Title:       d.Title(),
		Description: d.Description,
		Scenarios:   d.Scenarios,
		RenderID:    uuid.NewString(),
	}
	log := c.logger.With(
		zap.String("render_id", info.RenderID),
		zap.Int("index", c.cursor),
		zap.Stringer("kind", d.Kind),
	)

	h, err := c.try(c.renderer, d)
	if err == nil {
		info.Renderer = c.renderer.Name()
	} else {
		info.Err = err
		log.Warn("render failed", zap.String("renderer", c.renderer.Name()), zap.Error(err))
		if c.fallback != nil {
			fh, ferr := c.try(c.fallback, d)
			if ferr != nil {
				log.Error("fallback failed", zap.Error(ferr))
			} else {
				h = fh
				info.Renderer = c.fallback.Name()
				info.Fallback = true
			}
		}
	}

	c.handle = h
	c.info = info
	c.panel.ShowInfo(info)
	c.panel.ShowCounter(c.Counter())
	log.Debug("slide rendered", zap.String("renderer", info.Renderer), zap.Bool("fallback", info.Fallback))
}

// try runs one renderer and turns panics and empty results into errors.
func (c *Controller) try(r render.Renderer, d catalog.Descriptor) (h render.Handle, err error) {
	defer func() {
		if p := recover(); p != nil {
			h, err = nil, fmt.Errorf("%s panicked: %v", r.Name(), p)
		}
	}()
	h, err = r.Render(d, c.surface)
	if err != nil {
		if h != nil {
			h.Destroy()
		}
		return nil, err
	}
	if h == nil {
		return nil, fmt.Errorf("%s returned no handle", r.Name())
	}
	return h, nil
}

func (c *Controller) release() {
	if c.handle != nil {
		c.handle.Destroy()
		c.handle = nil
	}
}

// Resize changes the surface and redraws the current slide.
func (c *Controller) Resize(s render.Surface) {
	c.surface = s
	c.RenderCurrent()
}

// Close releases the live handle.
func (c *Controller) Close() {
	c.release()
}

func (c *Controller) Cursor() int { return c.cursor }

func (c *Controller) Len() int { return c.cat.Len() }

// Counter is the "position/total" text, one-based.
func (c *Controller) Counter() string {
	return fmt.Sprintf("%d/%d", c.cursor+1, c.cat.Len())
}

func (c *Controller) Current() catalog.Descriptor { return c.cat.At(c.cursor) }

// Descriptor returns a copy of entry i.
func (c *Controller) Descriptor(i int) catalog.Descriptor { return c.cat.At(i) }

func (c *Controller) CatalogName() string { return c.cat.Name() }

func (c *Controller) Surface() render.Surface { return c.surface }

// Frame is what the live handle shows, empty after a failed render.
func (c *Controller) Frame() render.Frame {
	if c.handle == nil {
		return render.Frame{}
	}
	return c.handle.Frame()
}

func (c *Controller) Info() Info { return c.info }
