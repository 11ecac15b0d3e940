package slideshow

// Trigger is an external event source, such as a key binding or a button.
type Trigger interface {
	Subscribe(fn func())
}

// Triggers are the two sources a controller binds to. Either may be nil.
type Triggers struct {
	Previous Trigger
	Next     Trigger
}

// Signal is an in-process Trigger. Fire runs every subscriber on the
// calling goroutine, in subscription order.
type Signal struct {
	handlers []func()
}

func (s *Signal) Subscribe(fn func()) {
	s.handlers = append(s.handlers, fn)
}

// Fire reports whether anything was subscribed.
func (s *Signal) Fire() bool {
	for _, fn := range s.handlers {
		fn()
	}
	return len(s.handlers) > 0
}
