package telemetry

import "context"

// Recorder observes render passes.
type Recorder interface {
	// Start opens an operation. The returned func closes it with its outcome.
	Start(ctx context.Context, op string) (context.Context, func(error))
	// ObserveRows reports the rows an array group expanded to.
	ObserveRows(ctx context.Context, group string, rows int)
	// ObserveIDs reports the ids issued in a pass and how many collided.
	ObserveIDs(ctx context.Context, issued, collisions int)
}

type nop struct{}

// Nop returns a Recorder that does nothing.
func Nop() Recorder { return nop{} }

func (nop) Start(ctx context.Context, _ string) (context.Context, func(error)) {
	return ctx, func(error) {}
}
func (nop) ObserveRows(context.Context, string, int) {}
func (nop) ObserveIDs(context.Context, int, int)     {}

type multi []Recorder

// Multi fans every observation out to recs in order.
func Multi(recs ...Recorder) Recorder {
	out := make(multi, 0, len(recs))
	for _, r := range recs {
		if r != nil {
			out = append(out, r)
		}
	}
	switch len(out) {
	case 0:
		return Nop()
	case 1:
		return out[0]
	}
	return out
}

func (m multi) Start(ctx context.Context, op string) (context.Context, func(error)) {
	finishers := make([]func(error), 0, len(m))
	for _, r := range m {
		var finish func(error)
		ctx, finish = r.Start(ctx, op)
		finishers = append(finishers, finish)
	}
	return ctx, func(err error) {
		for i := len(finishers) - 1; i >= 0; i-- {
			finishers[i](err)
		}
	}
}

func (m multi) ObserveRows(ctx context.Context, group string, rows int) {
	for _, r := range m {
		r.ObserveRows(ctx, group, rows)
	}
}

func (m multi) ObserveIDs(ctx context.Context, issued, collisions int) {
	for _, r := range m {
		r.ObserveIDs(ctx, issued, collisions)
	}
}
