package backend

import (
	"sync"

	"go.uber.org/zap"
)

// SupervisorOptions configures a Supervisor.
type SupervisorOptions struct {
	Logger *zap.Logger
	// Port is where a manually started backend is expected to listen.
	Port int
	// Resolve locates the backend executable.
	Resolve func() (string, error)
	// Spawn starts the executable; defaults to Spawn with SidecarArg.
	Spawn func(path string) (*Process, error)
	// OnSpawn is called with the process right after a successful spawn.
	OnSpawn func(*Process)
}

// Supervisor makes one best-effort attempt to run the backend and relays its
// output until it exits. Failures are logged and never escalated; there is no
// health check and no restart.
type Supervisor struct {
	logger  *zap.Logger
	port    int
	resolve func() (string, error)
	spawn   func(string) (*Process, error)
	onSpawn func(*Process)
	relay   *Relay

	once sync.Once
	done chan struct{}

	mu   sync.Mutex
	proc *Process
}

// NewSupervisor creates a supervisor. Start must be called to do anything.
func NewSupervisor(opts SupervisorOptions) *Supervisor {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	spawn := opts.Spawn
	if spawn == nil {
		spawn = func(path string) (*Process, error) {
			return Spawn(ProcessOptions{Path: path, Args: []string{SidecarArg}})
		}
	}
	return &Supervisor{
		logger:  logger,
		port:    opts.Port,
		resolve: opts.Resolve,
		spawn:   spawn,
		onSpawn: opts.OnSpawn,
		relay:   NewRelay(logger),
		done:    make(chan struct{}),
	}
}

// Start launches supervision in the background and returns immediately.
// With skip set, it only notes that a manual backend is expected. Calls after
// the first are ignored.
func (s *Supervisor) Start(skip bool) {
	s.once.Do(func() {
		if skip {
			s.logger.Info("sidecar disabled, expecting manual backend",
				zap.Int("port", s.port))
			close(s.done)
			return
		}
		go s.run()
	})
}

func (s *Supervisor) run() {
	defer close(s.done)

	if s.resolve == nil {
		s.logger.Warn("sidecar binary not found (manual backend mode)",
			zap.String("error", "no resolver configured"))
		return
	}
	path, err := s.resolve()
	if err != nil {
		s.logger.Warn("sidecar binary not found (manual backend mode)", zap.Error(err))
		return
	}

	proc, err := s.spawn(path)
	if err != nil {
		s.logger.Error("sidecar not spawned (manual backend mode)",
			zap.String("path", path), zap.Error(err))
		return
	}

	s.mu.Lock()
	s.proc = proc
	s.mu.Unlock()

	s.logger.Info("sidecar started", zap.String("path", path), zap.Int("pid", proc.PID()))
	if s.onSpawn != nil {
		s.onSpawn(proc)
	}

	s.relay.Run(proc.Events())
}

// Process returns the spawned backend, or nil if none was spawned (yet).
func (s *Supervisor) Process() *Process {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.proc
}

// Done is closed when supervision has ended: skipped, failed, or the backend
// terminated and its events were relayed.
func (s *Supervisor) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until Done is closed.
func (s *Supervisor) Wait() {
	<-s.done
}

// Kill force-kills the backend if it is running. It does not wait.
func (s *Supervisor) Kill() {
	if proc := s.Process(); proc != nil {
		if err := proc.Kill(); err != nil {
			s.logger.Warn("failed to kill backend", zap.Error(err))
		}
	}
}

// Stop terminates the backend gracefully, escalating to a kill after a grace
// period.
func (s *Supervisor) Stop() {
	if proc := s.Process(); proc != nil {
		proc.Stop()
	}
}
