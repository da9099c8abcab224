package waveform

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"
)

// RenderObserver receives one call per Render that produced an image.
// shared reports whether the result came from another caller's render.
type RenderObserver interface {
	ObserveRender(d time.Duration, shared bool)
}

type noopObserver struct{}

func (noopObserver) ObserveRender(time.Duration, bool) {}

// Renderer collapses concurrent renders of identical parameters into one.
type Renderer struct {
	clock    clockwork.Clock
	observer RenderObserver
	group    singleflight.Group
	generate func(Params) (string, error)
}

func NewRenderer(clock clockwork.Clock, observer RenderObserver) *Renderer {
	if observer == nil {
		observer = noopObserver{}
	}
	return &Renderer{clock: clock, observer: observer, generate: Generate}
}

// Render returns the base64 JPEG for p. Cancelling ctx abandons the wait;
// an in-flight render still completes for the other waiters.
func (r *Renderer) Render(ctx context.Context, p Params) (string, error) {
	start := r.clock.Now()

	ch := r.group.DoChan(key(p), func() (any, error) {
		return r.generate(p)
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		r.observer.ObserveRender(r.clock.Since(start), res.Shared)
		return res.Val.(string), nil
	}
}

func key(p Params) string {
	return fmt.Sprintf("%v|%v|%v|%v|%v|%v", p.Amp1, p.Amp2, p.Freq1, p.Freq2, p.Phase1, p.Phase2)
}
