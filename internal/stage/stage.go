// Package stage defines the uniform bootstrap/work/teardown lifecycle every
// pipeline stage implements, and the runner that drives it.
package stage

import "context"

// Outcome is the scheduling hint a stage's Work returns: whether the runtime
// poller should call it again, or the stage has reached a terminal state.
type Outcome int

const (
	Partial Outcome = iota
	Done
)

// Stage is the uniform state machine every pipeline stage implements:
// Bootstrap once, then Work repeatedly (each call handles at most one
// message), then Teardown on exit. This mirrors the teacher's Bootstrap/Work
// loop idiom rather than an async coroutine, so a stage's blocking I/O
// (socket reads, store round trips) needs no runtime beyond its own
// goroutine.
type Stage interface {
	Name() string
	Bootstrap(ctx context.Context) error
	Work(ctx context.Context) (Outcome, error)
	Teardown() error
}

// Run drives a Stage's lifecycle until it reports Done, the context is
// canceled, or Work returns a fatal error.
func Run(ctx context.Context, s Stage) error {
	if err := s.Bootstrap(ctx); err != nil {
		return err
	}
	defer s.Teardown()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		outcome, err := s.Work(ctx)
		if err != nil {
			return err
		}
		if outcome == Done {
			return nil
		}
	}
}
