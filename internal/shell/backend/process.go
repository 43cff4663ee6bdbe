package backend

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"
)

const (
	maxLineSize   = 1024 * 1024
	eventBuffer   = 64
	stopGraceTime = 5 * time.Second
)

// ProcessOptions contains options for spawning a backend process.
type ProcessOptions struct {
	Path string
	Args []string
	Dir  string
	Env  []string // nil inherits the shell's environment
}

// Process is a spawned backend with a stream of output events.
type Process struct {
	cmd    *exec.Cmd
	events chan Event
	done   chan struct{}

	mu      sync.RWMutex
	exitErr error
	status  ExitStatus
}

// Spawn starts the executable and begins streaming its output as events.
// The events channel ends with a Terminated event and is then closed.
func Spawn(opts ProcessOptions) (*Process, error) {
	cmd := exec.Command(opts.Path, opts.Args...)
	cmd.Dir = opts.Dir
	cmd.Env = opts.Env
	cmd.SysProcAttr = sysProcAttr()

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open stdout: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open stderr: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", opts.Path, err)
	}

	p := &Process{
		cmd:    cmd,
		events: make(chan Event, eventBuffer),
		done:   make(chan struct{}),
	}

	var readers sync.WaitGroup
	readers.Add(2)
	go p.readLines(&readers, stdout, StdoutLine)
	go p.readLines(&readers, stderr, StderrLine)
	go p.wait(&readers)

	return p, nil
}

// readLines emits one event per line of r. Lines keep their own order; no
// ordering holds between stdout and stderr. A line longer than maxLineSize is
// emitted as consecutive chunks so reading never stops before EOF.
func (p *Process) readLines(wg *sync.WaitGroup, r io.Reader, mk func([]byte) Event) {
	defer wg.Done()

	br := bufio.NewReaderSize(r, maxLineSize)
	continued := false // previous chunk ended mid-line
	for {
		chunk, err := br.ReadSlice('\n')
		if len(chunk) > 0 {
			line := make([]byte, len(chunk))
			copy(line, chunk)
			if err == nil {
				line = trimEOL(line)
			}
			// The terminator of a line that filled the buffer exactly.
			if !(continued && len(line) == 0) {
				p.events <- mk(line)
			}
		}
		continued = errors.Is(err, bufio.ErrBufferFull)
		switch {
		case err == nil, errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF), errors.Is(err, os.ErrClosed):
			return
		default:
			p.events <- ProcessError(err.Error())
			return
		}
	}
}

func trimEOL(line []byte) []byte {
	line = line[:len(line)-1]
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	return line
}

// wait reaps the process once both streams are exhausted.
func (p *Process) wait(readers *sync.WaitGroup) {
	readers.Wait()
	err := p.cmd.Wait()
	status := exitStatus(p.cmd)

	p.mu.Lock()
	p.exitErr = err
	p.status = status
	p.mu.Unlock()

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		p.events <- ProcessError(err.Error())
	}
	p.events <- Terminated(status)
	close(p.events)
	close(p.done)
}

// Events returns the process's event stream.
func (p *Process) Events() <-chan Event {
	return p.events
}

// PID returns the OS process id.
func (p *Process) PID() int {
	if p.cmd.Process == nil {
		return 0
	}
	return p.cmd.Process.Pid
}

// Done returns a channel that is closed when the process has exited and the
// event stream is closed.
func (p *Process) Done() <-chan struct{} {
	return p.done
}

// IsRunning returns true if the process has not exited yet.
func (p *Process) IsRunning() bool {
	select {
	case <-p.done:
		return false
	default:
		return true
	}
}

// ExitErr returns the Wait error (nil if exited cleanly or still running).
func (p *Process) ExitErr() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.exitErr
}

// Status returns the exit status once the process is done.
func (p *Process) Status() ExitStatus {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status
}

// Kill force-kills the process without waiting.
func (p *Process) Kill() error {
	if p.cmd.Process == nil || !p.IsRunning() {
		return nil
	}
	return p.cmd.Process.Kill()
}

// Stop asks the process to exit, waits up to 5 seconds, then kills it.
// Someone must be consuming Events for Stop to return.
func (p *Process) Stop() {
	if p.cmd.Process == nil || !p.IsRunning() {
		return
	}

	_ = terminate(p.cmd.Process)

	select {
	case <-p.done:
		return
	case <-time.After(stopGraceTime):
	}

	_ = p.cmd.Process.Kill()
	<-p.done
}

func exitStatus(cmd *exec.Cmd) ExitStatus {
	state := cmd.ProcessState
	if state == nil {
		return ExitStatus{Code: -1}
	}
	return ExitStatus{Code: state.ExitCode(), Signal: exitSignal(state)}
}
