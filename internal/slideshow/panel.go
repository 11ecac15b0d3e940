package slideshow

import "chartdeck/internal/catalog"

// Info is the summary shown next to the chart after every render.
type Info struct {
	Index       int
	Kind        catalog.Kind
	Title       string
	Description string
	Scenarios   []string
	// Renderer is the name of the capability that produced the frame, or
	// empty when nothing could draw the slide.
	Renderer string
	Fallback bool
	RenderID string
	Err      error
}

// Panel is the text region that shows the info summary and the
// position counter.
type Panel interface {
	ShowInfo(Info)
	ShowCounter(string)
}

type nopPanel struct{}

func (nopPanel) ShowInfo(Info)      {}
func (nopPanel) ShowCounter(string) {}

// RecordingPanel keeps the last values shown. Hosts that redraw from state
// read it back instead of pushing text into a widget.
type RecordingPanel struct {
	Info    Info
	Counter string
	Updates int
}

func (p *RecordingPanel) ShowInfo(i Info) {
	p.Info = i
	p.Updates++
}

func (p *RecordingPanel) ShowCounter(c string) {
	p.Counter = c
}
