// Package timing measures how long scoped blocks of work take and reports
// the results through slog or as a rendered summary table.
package timing

import (
	"log/slog"
	"time"
)

// Option customises Span construction.
type Option func(*Span)

// WithLogger routes the span's log lines to logger instead of slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Span) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithAnnounce logs the description when the span starts, not only when it
// stops.
func WithAnnounce() Option {
	return func(s *Span) {
		s.announce = true
	}
}

// Span is a single timed block of work. Create one with Start, finish it
// with Stop.
type Span struct {
	description string
	logger      *slog.Logger
	announce    bool
	start       time.Time
	elapsed     time.Duration
	stopped     bool
}

// Start begins timing a block of work described by description.
func Start(description string, opts ...Option) *Span {
	s := &Span{
		description: description,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.announce {
		s.logger.Info(s.description)
	}
	s.start = time.Now()
	return s
}

// Stop ends the span, logs the elapsed time, and returns it. Stopping an
// already stopped span just returns the recorded duration.
func (s *Span) Stop() time.Duration {
	if !s.stopped {
		s.elapsed = time.Since(s.start)
		s.stopped = true
		s.logger.Info(s.description+" completed", slog.Duration("elapsed", s.elapsed))
	}
	return s.elapsed
}

// Elapsed returns the recorded duration of a stopped span, or the running
// duration of one still in flight.
func (s *Span) Elapsed() time.Duration {
	if s.stopped {
		return s.elapsed
	}
	return time.Since(s.start)
}

// Description returns the description the span was started with.
func (s *Span) Description() string {
	return s.description
}
