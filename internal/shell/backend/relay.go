package backend

import (
	"go.uber.org/zap"
)

// Relay forwards backend process events to a logger.
type Relay struct {
	logger *zap.Logger
}

// NewRelay creates a relay logging through logger.
func NewRelay(logger *zap.Logger) *Relay {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Relay{logger: logger}
}

// Run logs each event until a Terminated event arrives or the channel closes.
// It cannot fail; undecodable output is logged with replacement characters.
func (r *Relay) Run(events <-chan Event) {
	for ev := range events {
		if r.handle(ev) {
			return
		}
	}
}

// handle logs one event and reports whether the relay is done.
func (r *Relay) handle(ev Event) bool {
	switch ev.Kind {
	case EventStdout:
		r.logger.Info("backend output",
			zap.String("stream", "stdout"),
			zap.String("line", DecodeLine(ev.Line)))
	case EventStderr:
		r.logger.Error("backend output",
			zap.String("stream", "stderr"),
			zap.String("line", DecodeLine(ev.Line)))
	case EventError:
		r.logger.Error("backend process error", zap.String("error", ev.Err))
	case EventTerminated:
		r.logger.Error("backend terminated",
			zap.Int("code", ev.Status.Code),
			zap.String("signal", ev.Status.Signal),
			zap.Stringer("status", ev.Status))
		return true
	}
	return false
}
