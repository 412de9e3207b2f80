package playback

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"go.jacobcolvin.com/asciivid/frames"
	"go.jacobcolvin.com/asciivid/render"
)

var (
	// ErrRenderTooSlow indicates a frame write that used up its whole budget.
	ErrRenderTooSlow = errors.New("terminal prints too slowly for video fps")
	// ErrWriteOutput indicates a failed write to the output stream.
	ErrWriteOutput = errors.New("write output")
	// ErrSchedulerUsed indicates [Scheduler.Play] called more than once.
	ErrSchedulerUsed = errors.New("scheduler already used")
)

// State is a [Scheduler] lifecycle state.
type State int

// Scheduler states.
const (
	StateReady State = iota
	StateEmitting
	StateAborted
	StateDone
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateEmitting:
		return "emitting"
	case StateAborted:
		return "aborted"
	case StateDone:
		return "done"
	}

	return fmt.Sprintf("State(%d)", int(s))
}

// Clock is the time source used by a [Scheduler].
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type wallClock struct{}

func (wallClock) Now() time.Time        { return time.Now() }
func (wallClock) Sleep(d time.Duration) { time.Sleep(d) }

// Option configures a [Scheduler].
type Option func(*Scheduler)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(s *Scheduler) {
		s.clock = c
	}
}

// WithLogger sets the logger. The default is [slog.Default].
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) {
		s.logger = l
	}
}

// Budget returns the time allowed per frame at fps, rounded to the nearest
// microsecond.
func Budget(fps float64) time.Duration {
	return time.Duration(math.Round(1_000_000/fps)) * time.Microsecond
}

// Scheduler plays a [frames.Sequence] to a writer at a fixed cadence.
//
// Create instances with [NewScheduler].
type Scheduler struct {
	out     io.Writer
	clock   Clock
	logger  *slog.Logger
	state   State
	emitted int
}

// NewScheduler returns a [Scheduler] writing to out.
func NewScheduler(out io.Writer, opts ...Option) *Scheduler {
	s := &Scheduler{
		out:    out,
		clock:  wallClock{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// State returns the current state.
func (s *Scheduler) State() State {
	return s.state
}

// Emitted returns the number of frames written so far.
func (s *Scheduler) Emitted() int {
	return s.emitted
}

// Play drains seq, writing each frame and sleeping out the rest of its
// budget. It returns an error wrapping [ErrRenderTooSlow] as soon as a write
// takes at least the budget, and one wrapping [ErrWriteOutput] if a write
// fails; either leaves the scheduler in [StateAborted] with the unplayed
// frames still in seq.
func (s *Scheduler) Play(seq *frames.Sequence) error {
	if s.state != StateReady {
		return fmt.Errorf("%w: state is %s", ErrSchedulerUsed, s.state)
	}

	fps := seq.FPS()
	budget := Budget(fps)

	s.logger.Debug("starting playback",
		slog.Int("frames", seq.Len()),
		slog.Float64("fps", fps),
		slog.Duration("budget", budget),
	)

	for i, frame := range seq.Drain() {
		s.state = StateEmitting

		start := s.clock.Now()

		_, err := io.WriteString(s.out, render.ClearScreen+frame)
		if err != nil {
			s.state = StateAborted

			return fmt.Errorf("%w: frame %d: %w", ErrWriteOutput, i, err)
		}

		s.emitted++

		elapsed := s.clock.Now().Sub(start).Truncate(time.Microsecond)
		if elapsed >= budget {
			s.state = StateAborted

			s.logger.Error("frame exceeded budget",
				slog.Int("frame", i),
				slog.Float64("fps", fps),
				slog.Duration("elapsed", elapsed),
				slog.Duration("budget", budget),
			)

			return fmt.Errorf("%w: frame %d took %s of a %s budget at %g fps",
				ErrRenderTooSlow, i, elapsed, budget, fps)
		}

		s.clock.Sleep(budget - elapsed)
	}

	s.state = StateDone

	return nil
}

// PlayWith starts accompaniment with [Detach] and then plays seq. The
// accompaniment's outcome never affects the result of PlayWith.
func (s *Scheduler) PlayWith(seq *frames.Sequence, accompaniment func() error) error {
	if s.state != StateReady {
		return fmt.Errorf("%w: state is %s", ErrSchedulerUsed, s.state)
	}

	Detach(s.logger, "accompaniment", accompaniment)

	return s.Play(seq)
}
