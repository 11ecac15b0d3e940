// Package export writes catalog descriptors to image files and a workbook.
package export

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"chartdeck/internal/catalog"
	"chartdeck/internal/render"
	"chartdeck/internal/stats"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	FormatPNG  = "png"
	FormatSVG  = "svg"
	FormatXLSX = "xlsx"
)

// WorkbookName is the file written for the xlsx format.
const WorkbookName = "catalog.xlsx"

// Options configures an Exporter.
type Options struct {
	Dir         string
	Formats     []string
	Concurrency int
	Surface     render.Surface
	// Stats, when set, adds a statistics sheet to the workbook.
	Stats  Summarizer
	Logger *zap.Logger
}

// Summarizer computes per-series statistics; *stats.Repo implements it.
type Summarizer interface {
	Summarize(ctx context.Context, d catalog.Descriptor) ([]stats.Summary, error)
}

// Exporter renders descriptors to disk.
type Exporter struct {
	opts     Options
	raster   *render.Raster
	fallback render.Renderer
	logger   *zap.Logger
}

func New(opts Options) *Exporter {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	if opts.Surface.Width == 0 || opts.Surface.Height == 0 {
		opts.Surface = render.Surface{Width: 800, Height: 500}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{
		opts:     opts,
		raster:   render.NewRaster(),
		fallback: render.NewFallback(),
		logger:   logger,
	}
}

func (e *Exporter) wants(format string) bool {
	for _, f := range e.opts.Formats {
		if f == format {
			return true
		}
	}
	return false
}

// FileBase is the file name stem for descriptor i, e.g. "03-hbar".
func FileBase(i int, d catalog.Descriptor) string {
	return fmt.Sprintf("%02d-%s", i+1, d.Kind)
}

// Export writes every requested format and returns the written paths in
// sorted order. Images are produced concurrently; the first error cancels
// the remaining work.
func (e *Exporter) Export(ctx context.Context, descriptors []catalog.Descriptor) ([]string, error) {
	if err := os.MkdirAll(e.opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export directory: %w", err)
	}

	var (
		mu    sync.Mutex
		files []string
	)
	add := func(path string) {
		mu.Lock()
		files = append(files, path)
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Concurrency)
	for i, d := range descriptors {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			base := filepath.Join(e.opts.Dir, FileBase(i, d))
			if e.wants(FormatPNG) {
				if err := e.writePNG(base+".png", d); err != nil {
					return err
				}
				add(base + ".png")
			}
			if e.wants(FormatSVG) {
				ok, err := e.writeSVG(base+".svg", d)
				if err != nil {
					return err
				}
				if ok {
					add(base + ".svg")
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if e.wants(FormatXLSX) {
		var sums [][]stats.Summary
		if e.opts.Stats != nil {
			sums = make([][]stats.Summary, len(descriptors))
			for i, d := range descriptors {
				s, err := e.opts.Stats.Summarize(ctx, d)
				if err != nil {
					return nil, fmt.Errorf("stats %s: %w", d.Kind, err)
				}
				sums[i] = s
			}
		}
		path := filepath.Join(e.opts.Dir, WorkbookName)
		if err := WriteWorkbook(path, descriptors, sums); err != nil {
			return nil, err
		}
		add(path)
	}

	sort.Strings(files)
	e.logger.Info("export finished", zap.String("dir", e.opts.Dir), zap.Int("files", len(files)))
	return files, nil
}

func (e *Exporter) writePNG(path string, d catalog.Descriptor) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	rerr := e.raster.Encode(f, d, e.opts.Surface, render.FormatPNG)
	if rerr == nil {
		return nil
	}
	e.logger.Warn("raster export failed, using fallback",
		zap.Stringer("kind", d.Kind), zap.String("file", path), zap.Error(rerr))

	// go-chart may have written a partial image before failing
	if err := f.Truncate(0); err != nil {
		return fmt.Errorf("truncate %s: %w", path, err)
	}
	if _, err := f.Seek(0, 0); err != nil {
		return fmt.Errorf("rewind %s: %w", path, err)
	}

	h, err := e.fallback.Render(d, e.opts.Surface)
	if err != nil {
		return fmt.Errorf("fallback %s: %w", d.Kind, err)
	}
	defer h.Destroy()
	if err := png.Encode(f, h.Frame().Image); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

// writeSVG reports false when the kind has no vector form.
func (e *Exporter) writeSVG(path string, d catalog.Descriptor) (bool, error) {
	f, err := os.Create(path)
	if err != nil {
		return false, fmt.Errorf("create %s: %w", path, err)
	}
	err = e.raster.Encode(f, d, e.opts.Surface, render.FormatSVG)
	cerr := f.Close()

	if errors.Is(err, render.ErrUnsupportedKind) {
		e.logger.Warn("svg export skipped", zap.Stringer("kind", d.Kind), zap.Error(err))
		return false, os.Remove(path)
	}
	if err != nil {
		return false, err
	}
	return true, cerr
}
