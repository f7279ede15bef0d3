// Package session manages the lifecycle of a PTY-backed shell process
// paired with a terminal emulator: start, read loop, resize, close.
//
// Session is cross-platform: it uses github.com/aymanbagabas/go-pty, which
// wraps Unix PTYs and Windows ConPTY behind a single interface, so the same
// binary works on Linux, macOS, and Windows.
package session

import (
	"io"
	"os"
	"runtime"
	"sync"
	"time"

	gopty "github.com/aymanbagabas/go-pty"
	"github.com/google/uuid"

	"github.com/patrick-goecommerce/gitstermd/internal/terminal"
)

// Status represents the current state of a session's child process.
type Status int

const (
	StatusRunning Status = iota // process is alive
	StatusExited                // process has exited
	StatusError                 // an error occurred starting the process
)

// Session wraps a PTY-backed shell process and its terminal emulator. It
// manages the full lifecycle: start, read loop, resize, close. Access to
// the shared fields below is serialized by mu, matching spec.md §5's "a
// mutex guarding the emulator is required; the emulator itself does no
// locking" requirement for multi-goroutine hosts.
type Session struct {
	mu sync.Mutex

	ID     string // unique session identifier
	Term   *terminal.Emulator
	Status Status

	p   gopty.Pty
	cmd *gopty.Cmd

	done chan struct{}

	// OutputCh receives a signal each time new data is written to Term.
	// A transport goroutine selects on this to know when to call Render
	// and push markup to the client (spec.md §6).
	OutputCh chan struct{}

	// ExitCode is set when the process terminates.
	ExitCode int

	// LastOutputAt records when the last PTY output was received.
	LastOutputAt time.Time
}

// New creates a Session with a freshly constructed emulator of the given
// dimensions but does not start any process yet. Call Start to spawn the
// shell.
func New(rows, cols int) (*Session, error) {
	term, err := terminal.New(rows, cols)
	if err != nil {
		return nil, err
	}
	return &Session{
		ID:       uuid.NewString(),
		Term:     term,
		Status:   StatusRunning,
		OutputCh: make(chan struct{}, 1),
		done:     make(chan struct{}),
	}, nil
}

// Start launches the given command inside a new PTY. argv is the command
// plus arguments (e.g. []string{"bash"}); an empty argv falls back to the
// user's shell. dir is the working directory; env holds additional
// environment variables appended to the process's own.
func (s *Session) Start(argv []string, dir string, env []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(argv) == 0 {
		argv = defaultShell()
	}

	fullEnv := append(os.Environ(),
		"TERM=linux",
	)
	fullEnv = append(fullEnv, env...)

	rows, cols := s.Term.Rows(), s.Term.Cols()

	p, err := gopty.New()
	if err != nil {
		s.Status = StatusError
		return err
	}

	if err := p.Resize(cols, rows); err != nil {
		p.Close()
		s.Status = StatusError
		return err
	}

	cmd := p.Command(argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Env = fullEnv

	if err := cmd.Start(); err != nil {
		p.Close()
		s.Status = StatusError
		return err
	}

	s.p = p
	s.cmd = cmd

	go s.readLoop()
	go s.waitLoop()

	return nil
}

// readLoop continuously reads from the PTY and feeds the bytes to the
// emulator. Any reply the emulator queues in response (currently only the
// device-attributes answer) is written straight back to the PTY.
func (s *Session) readLoop() {
	buf := make([]byte, 4096)
	for {
		n, err := s.p.Read(buf)
		if n > 0 {
			s.mu.Lock()
			s.Term.FeedBytes(buf[:n])
			if reply := s.Term.PendingReply(); reply != "" {
				_, _ = s.p.Write([]byte(reply))
			}
			s.LastOutputAt = time.Now()
			s.mu.Unlock()

			select {
			case s.OutputCh <- struct{}{}:
			default:
			}
		}
		if err != nil {
			break
		}
	}
}

// waitLoop waits for the process to exit and updates the session status.
func (s *Session) waitLoop() {
	err := s.cmd.Wait()
	s.mu.Lock()
	if err != nil {
		if s.cmd.ProcessState != nil {
			s.ExitCode = s.cmd.ProcessState.ExitCode()
		} else {
			s.ExitCode = 1
		}
	} else {
		s.ExitCode = 0
	}
	s.Status = StatusExited
	s.mu.Unlock()
	close(s.done)
}

// Write sends raw bytes to the PTY (keyboard input from the client's
// `key,` frames, spec.md §6).
func (s *Session) Write(p []byte) (int, error) {
	s.mu.Lock()
	pty := s.p
	s.mu.Unlock()
	if pty == nil {
		return 0, io.ErrClosedPipe
	}
	return pty.Write(p)
}

// Resize updates the PTY and emulator dimensions in response to a client
// `rsz,` frame (spec.md §6).
func (s *Session) Resize(rows, cols int) {
	s.mu.Lock()
	s.Term.Resize(rows, cols)
	pty := s.p
	s.mu.Unlock()
	if pty != nil {
		_ = pty.Resize(cols, rows)
	}
}

// Render serializes the current screen to markup (spec.md §4.F), guarded
// by the same mutex the read loop uses to mutate the emulator.
func (s *Session) Render() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Term.Render()
}

// Close terminates the session: kills the process and closes the PTY,
// then waits for the process to actually finish.
func (s *Session) Close() {
	s.mu.Lock()
	cmd := s.cmd
	pty := s.p
	s.mu.Unlock()

	if cmd != nil && cmd.Process != nil {
		_ = cmd.Process.Kill()
	}
	if pty != nil {
		pty.Close()
	}

	<-s.done
}

// Done returns a channel that is closed when the session exits.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// IsRunning reports whether the process is still alive.
func (s *Session) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Status == StatusRunning
}

// defaultShell returns the default shell command for the current OS.
func defaultShell() []string {
	if runtime.GOOS == "windows" {
		if comspec := os.Getenv("COMSPEC"); comspec != "" {
			return []string{comspec}
		}
		return []string{"cmd.exe"}
	}
	if shell := os.Getenv("SHELL"); shell != "" {
		return []string{shell}
	}
	return []string{"/bin/bash"}
}
