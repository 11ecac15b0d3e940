package catalog

import "fmt"

// ValidationError reports the first problem found in a descriptor.
type ValidationError struct {
	Kind    Kind
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s chart: %s %s", e.Kind, e.Field, e.Message)
}

// Validate checks that d carries the fields its kind needs.
func Validate(d Descriptor) error {
	c := d.Config
	fail := func(field, msg string) error {
		return &ValidationError{Kind: d.Kind, Field: field, Message: msg}
	}

	if len(c.Series) == 0 {
		return fail("series", "must not be empty")
	}
	for i, s := range c.Series {
		if j := firstNonFinite(s.Values); j >= 0 {
			return fail(fmt.Sprintf("series[%d].values[%d]", i, j), "must be a finite number")
		}
		if j := firstNonFinite(s.Errors); j >= 0 {
			return fail(fmt.Sprintf("series[%d].errors[%d]", i, j), "must be a finite number")
		}
		for j, p := range s.Points {
			if !Finite(p.X) || !Finite(p.Y) {
				return fail(fmt.Sprintf("series[%d].points[%d]", i, j), "must have finite coordinates")
			}
		}
	}

	switch d.Kind {
	case KindLine, KindBar, KindHorizontalBar, KindStackedArea, KindErrorBar:
		if len(c.Labels) == 0 {
			return fail("labels", "must not be empty")
		}
		for i, s := range c.Series {
			if len(s.Values) != len(c.Labels) {
				return fail(fmt.Sprintf("series[%d].values", i),
					fmt.Sprintf("has %d values for %d labels", len(s.Values), len(c.Labels)))
			}
			if d.Kind == KindErrorBar && len(s.Errors) != len(s.Values) {
				return fail(fmt.Sprintf("series[%d].errors", i),
					fmt.Sprintf("has %d errors for %d values", len(s.Errors), len(s.Values)))
			}
		}

	case KindPie:
		if len(c.Series) != 1 {
			return fail("series", "must hold exactly one series")
		}
		if len(c.Labels) != len(c.Series[0].Values) || len(c.Labels) == 0 {
			return fail("labels", "must match the slice values")
		}
		for _, v := range c.Series[0].Values {
			if v < 0 {
				return fail("series[0].values", "must not be negative")
			}
		}

	case KindScatter:
		for i, s := range c.Series {
			if len(s.Points) == 0 {
				return fail(fmt.Sprintf("series[%d].points", i), "must not be empty")
			}
		}

	case KindRadar:
		if len(c.Labels) < 3 {
			return fail("labels", "needs at least three axes")
		}
		for i, s := range c.Series {
			if len(s.Values) != len(c.Labels) {
				return fail(fmt.Sprintf("series[%d].values", i),
					fmt.Sprintf("has %d values for %d axes", len(s.Values), len(c.Labels)))
			}
		}

	case KindHistogram, KindBox:
		for i, s := range c.Series {
			if len(s.Values) == 0 {
				return fail(fmt.Sprintf("series[%d].values", i), "must not be empty")
			}
		}

	default:
		return fail("kind", "is not supported")
	}
	return nil
}

func firstNonFinite(vs []float64) int {
	for i, v := range vs {
		if !Finite(v) {
			return i
		}
	}
	return -1
}
