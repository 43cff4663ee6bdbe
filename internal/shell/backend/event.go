// Package backend locates, spawns and supervises the sidecar backend process
// and relays its output to the shell's log.
package backend

import "fmt"

// EventKind identifies the variant of an Event.
type EventKind int

// Event kinds emitted by a backend process.
const (
	EventStdout EventKind = iota
	EventStderr
	EventError
	EventTerminated
)

func (k EventKind) String() string {
	switch k {
	case EventStdout:
		return "stdout"
	case EventStderr:
		return "stderr"
	case EventError:
		return "error"
	case EventTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// ExitStatus describes how the backend process ended.
// Code is -1 when the process did not exit normally.
type ExitStatus struct {
	Code   int
	Signal string
}

func (s ExitStatus) String() string {
	sig := s.Signal
	if sig == "" {
		sig = "none"
	}
	return fmt.Sprintf("code: %d, signal: %s", s.Code, sig)
}

// Event is one observation from a running backend process.
// Line is set for stdout/stderr, Err for errors, Status for termination.
type Event struct {
	Kind   EventKind
	Line   []byte
	Err    string
	Status ExitStatus
}

// StdoutLine returns a stdout event.
func StdoutLine(b []byte) Event { return Event{Kind: EventStdout, Line: b} }

// StderrLine returns a stderr event.
func StderrLine(b []byte) Event { return Event{Kind: EventStderr, Line: b} }

// ProcessError returns an error event.
func ProcessError(msg string) Event { return Event{Kind: EventError, Err: msg} }

// Terminated returns a termination event.
func Terminated(status ExitStatus) Event { return Event{Kind: EventTerminated, Status: status} }
