package render

import (
	"errors"
	"fmt"
	"time"

	"chartdeck/internal/catalog"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// BreakerSettings tunes the circuit around a renderer.
type BreakerSettings struct {
	// Failures is the number of consecutive render errors that open the
	// circuit. Zero disables the breaker.
	Failures uint32
	// Timeout is how long the circuit stays open before a trial render.
	Timeout time.Duration
	Logger  *zap.Logger
}

type breakerRenderer struct {
	next Renderer
	cb   *gobreaker.CircuitBreaker
}

// Breaker wraps r so that repeated failures stop reaching it. While the
// circuit is open Render fails immediately with gobreaker.ErrOpenState.
// Unsupported kinds and surfaces too small to draw on describe the request,
// not the renderer, and do not count against it.
func Breaker(r Renderer, s BreakerSettings) Renderer {
	if r == nil || s.Failures == 0 {
		return r
	}
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        r.Name(),
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.Failures
		},
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, ErrUnsupportedKind) ||
				errors.Is(err, ErrSurfaceTooSmall)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("renderer circuit changed",
				zap.String("renderer", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})
	return &breakerRenderer{next: r, cb: cb}
}

func (b *breakerRenderer) Name() string { return b.next.Name() }

func (b *breakerRenderer) Render(d catalog.Descriptor, s Surface) (Handle, error) {
	res, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Render(d, s)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.next.Name(), err)
	}
	h, _ := res.(Handle)
	return h, nil
}
