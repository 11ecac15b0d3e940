package output

import (
	"context"
	"fmt"

	"chartdeck/internal/catalog"
	"chartdeck/internal/render"
	"chartdeck/internal/stats"
)

// Summarizer computes per-series statistics; *stats.Repo implements it.
type Summarizer interface {
	Summarize(ctx context.Context, d catalog.Descriptor) ([]stats.Summary, error)
}

// RunPipeline builds the catalog, probes every descriptor with r and
// summarizes it with sum: Build -> Probe -> Summarize -> Bundle. r and sum
// may be nil to skip their step.
func RunPipeline(
	ctx context.Context,
	src catalog.Source,
	r render.Renderer,
	surface render.Surface,
	sum Summarizer,
) (*ListingView, error) {
	// 1. Build
	cat, err := src.Build()
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}
	ds := cat.All()

	// 2. Probe the primary renderer
	var probes []Probe
	if r != nil {
		probes = make([]Probe, len(ds))
		for i, d := range ds {
			probes[i] = probe(r, d, surface)
		}
	}

	// 3. Summarize
	var sums [][]stats.Summary
	if sum != nil {
		sums = make([][]stats.Summary, len(ds))
		for i, d := range ds {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			s, err := sum.Summarize(ctx, d)
			if err != nil {
				return nil, fmt.Errorf("summarize %s: %w", d.Kind, err)
			}
			sums[i] = s
		}
	}

	// 4. Bundle
	view := BuildListing(cat.Name(), ds, probes, sums)
	return &view, nil
}

func probe(r render.Renderer, d catalog.Descriptor, s render.Surface) (p Probe) {
	p.Renderer = r.Name()
	defer func() {
		if rec := recover(); rec != nil {
			p.Err = fmt.Errorf("renderer panicked: %v", rec)
		}
	}()
	h, err := r.Render(d, s)
	if err != nil {
		p.Err = err
		return p
	}
	if h == nil {
		p.Err = fmt.Errorf("renderer returned no frame")
		return p
	}
	h.Destroy()
	return p
}
