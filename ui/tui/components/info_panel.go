package components

import (
	"fmt"
	"strings"

	"chartdeck/internal/slideshow"

	"github.com/charmbracelet/glamour"
)

// InfoPanel is the slideshow.Panel of the terminal UI. Every ShowInfo
// re-renders the summary as markdown so the view only copies a string.
type InfoPanel struct {
	style    string
	width    int
	renderer *glamour.TermRenderer

	info     slideshow.Info
	counter  string
	rendered string
}

// NewInfoPanel uses the named glamour style; "auto" picks one from the
// terminal background.
func NewInfoPanel(style string, width int) *InfoPanel {
	if style == "" {
		style = "auto"
	}
	if width < 20 {
		width = 20
	}
	return &InfoPanel{style: style, width: width}
}

func (p *InfoPanel) ShowInfo(i slideshow.Info) {
	p.info = i
	p.render()
}

func (p *InfoPanel) ShowCounter(c string) {
	p.counter = c
}

func (p *InfoPanel) Info() slideshow.Info { return p.info }

func (p *InfoPanel) Counter() string { return p.counter }

func (p *InfoPanel) SetSize(width, _ int) {
	if width < 20 {
		width = 20
	}
	if width == p.width {
		return
	}
	p.width = width
	p.renderer = nil
	p.render()
}

func (p *InfoPanel) View() string { return p.rendered }

func (p *InfoPanel) render() {
	md := Markdown(p.info)
	if p.renderer == nil {
		r, err := newRenderer(p.style, p.width)
		if err != nil {
			p.rendered = md
			return
		}
		p.renderer = r
	}
	out, err := p.renderer.Render(md)
	if err != nil {
		p.rendered = md
		return
	}
	p.rendered = strings.TrimRight(out, "\n")
}

func newRenderer(style string, width int) (*glamour.TermRenderer, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width - 4)}
	if style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	return glamour.NewTermRenderer(opts...)
}

// Markdown is the info summary before styling.
func Markdown(i slideshow.Info) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", i.Title)
	fmt.Fprintf(&b, "**%s** chart", i.Kind.Title())
	if i.Renderer != "" {
		fmt.Fprintf(&b, ", drawn by `%s`", i.Renderer)
	}
	b.WriteString("\n\n")
	if i.Description != "" {
		b.WriteString(i.Description)
		b.WriteString("\n\n")
	}
	if len(i.Scenarios) > 0 {
		b.WriteString("### Use it for\n\n")
		for _, s := range i.Scenarios {
			fmt.Fprintf(&b, "- %s\n", s)
		}
		b.WriteString("\n")
	}
	if i.Err != nil {
		if i.Fallback {
			fmt.Fprintf(&b, "> Simplified drawing. The chart renderer failed: %s\n", i.Err)
		} else {
			fmt.Fprintf(&b, "> This chart could not be drawn: %s\n", i.Err)
		}
	}
	return b.String()
}
