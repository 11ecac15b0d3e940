package catalog

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind identifies how a descriptor is meant to be drawn.
type Kind int

const (
	KindLine Kind = iota
	KindBar
	KindHorizontalBar
	KindStackedArea
	KindHistogram
	KindPie
	KindScatter
	KindBox
	KindRadar
	KindErrorBar
)

var kindNames = map[Kind]string{
	KindLine:          "line",
	KindBar:           "bar",
	KindHorizontalBar: "hbar",
	KindStackedArea:   "area",
	KindHistogram:     "histogram",
	KindPie:           "pie",
	KindScatter:       "scatter",
	KindBox:           "box",
	KindRadar:         "radar",
	KindErrorBar:      "errorbar",
}

var kindTitles = map[Kind]string{
	KindLine:          "Line Chart",
	KindBar:           "Column Chart",
	KindHorizontalBar: "Bar Chart",
	KindStackedArea:   "Stacked Area Chart",
	KindHistogram:     "Histogram",
	KindPie:           "Pie Chart",
	KindScatter:       "Scatter Plot",
	KindBox:           "Box Plot",
	KindRadar:         "Radar Chart",
	KindErrorBar:      "Error Bar Chart",
}

// Kinds lists every supported kind in declaration order.
func Kinds() []Kind {
	return []Kind{
		KindLine, KindBar, KindHorizontalBar, KindStackedArea, KindHistogram,
		KindPie, KindScatter, KindBox, KindRadar, KindErrorBar,
	}
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Title is the human readable name shown in the info panel.
func (k Kind) Title() string {
	if t, ok := kindTitles[k]; ok {
		return t
	}
	return k.String()
}

// ParseKind accepts the short names produced by String.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown chart kind %q", s)
}

func (k Kind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

func (k *Kind) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseKind(value.Value)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
