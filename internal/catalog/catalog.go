// Package catalog holds the ordered, read-only list of chart descriptors a
// slideshow cycles through.
package catalog

import (
	"errors"
	"fmt"
)

// ErrEmptyCatalog is returned when a source produces no descriptors.
var ErrEmptyCatalog = errors.New("catalog: no descriptors")

// Catalog is a fixed sequence of descriptors. It is append-only while a
// Builder owns it and read-only afterwards.
type Catalog struct {
	name  string
	items []Descriptor
}

// Name identifies where the catalog came from (variant or file path).
func (c *Catalog) Name() string { return c.name }

// Len returns the number of descriptors.
func (c *Catalog) Len() int { return len(c.items) }

// At returns a copy of the descriptor at i. It panics when i is out of
// range, like a slice index.
func (c *Catalog) At(i int) Descriptor {
	return c.items[i].clone()
}

// All returns copies of every descriptor in display order.
func (c *Catalog) All() []Descriptor {
	out := make([]Descriptor, len(c.items))
	for i, d := range c.items {
		out[i] = d.clone()
	}
	return out
}

// Builder accumulates descriptors before freezing them into a Catalog.
type Builder struct {
	name  string
	items []Descriptor
	done  bool
}

func NewBuilder(name string) *Builder {
	return &Builder{name: name}
}

// Add appends a descriptor. Adding after Build panics.
func (b *Builder) Add(d Descriptor) *Builder {
	if b.done {
		panic("catalog: Add after Build")
	}
	b.items = append(b.items, d.clone())
	return b
}

// Build freezes the builder.
func (b *Builder) Build() (*Catalog, error) {
	if len(b.items) == 0 {
		return nil, fmt.Errorf("%s: %w", b.name, ErrEmptyCatalog)
	}
	b.done = true
	return &Catalog{name: b.name, items: b.items}, nil
}

// Source defers catalog construction until the consumer is ready for it.
type Source interface {
	Build() (*Catalog, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func() (*Catalog, error)

func (f SourceFunc) Build() (*Catalog, error) { return f() }
