package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
)

// Callback receives the outcome of an asynchronous invocation.
// err is nil when the process exited with status 0.
type Callback func(err error, stdout, stderr string)

// ExitError reports a child process that exited with a non-zero status.
type ExitError struct {
	Command string
	Code    int
	Stdout  string
	Stderr  string
	Err     error
}

// Error returns a message including the exit status.
func (e *ExitError) Error() string {
	return fmt.Sprintf("command failed with exit status %d: %s", e.Code, e.Command)
}

// Unwrap returns the underlying *exec.ExitError.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// Runner executes commands built by a Builder.
type Runner struct {
	builder *Builder

	// Stdin is connected to the child in Run. Start leaves stdin empty.
	Stdin io.Reader
	// Stdout and Stderr receive the child's output in both modes.
	Stdout io.Writer
	Stderr io.Writer
	// Env is the child's environment. Nil inherits the parent's.
	Env []string
	// Dir is the child's working directory. Empty uses the parent's.
	Dir string
}

// NewRunner returns a Runner wired to the process's standard streams.
func NewRunner(b *Builder) *Runner {
	return &Runner{
		builder: b,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// Builder returns the builder used to serialize options.
func (r *Runner) Builder() *Builder {
	return r.builder
}

func (r *Runner) command(ctx context.Context, opts *OptionSet, dest string) *exec.Cmd {
	// #nosec G204 - the binary path is resolved by the fetcher, options are passed as argv
	cmd := exec.CommandContext(ctx, r.builder.BinaryPath(), r.builder.Args(opts, dest)...)
	cmd.Env = r.Env
	cmd.Dir = r.Dir
	return cmd
}

// Run executes the binary and blocks until it exits. The child inherits the
// runner's streams directly, so nothing is captured.
func (r *Runner) Run(ctx context.Context, opts *OptionSet, dest string) error {
	cmd := r.command(ctx, opts, dest)
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	if err := cmd.Run(); err != nil {
		return r.wrapError(err, opts, dest, "", "")
	}
	return nil
}

// Start launches the binary and returns immediately. Output is copied to the
// runner's writers as it arrives and also captured for the callback, which
// is called exactly once: after the process exits, or right away with the
// launch error if the binary cannot be started. In the latter case Start
// also returns that error together with a Process that is already done.
func (r *Runner) Start(ctx context.Context, opts *OptionSet, dest string, cb Callback) (*Process, error) {
	cmd := r.command(ctx, opts, dest)

	p := &Process{cmd: cmd, done: make(chan struct{})}
	// Both streams share one lock so a writer used for stdout and stderr
	// never sees concurrent writes.
	cmd.Stdout = &lockedWriter{mu: &p.outMu, w: teeWriter(r.Stdout, &p.stdout)}
	cmd.Stderr = &lockedWriter{mu: &p.outMu, w: teeWriter(r.Stderr, &p.stderr)}

	if err := cmd.Start(); err != nil {
		err = fmt.Errorf("start %s: %w", r.builder.BinaryPath(), err)
		p.finish(err)
		if cb != nil {
			cb(err, "", "")
		}
		return p, err
	}

	go func() {
		err := cmd.Wait()
		stdout, stderr := p.captured()
		if err != nil {
			err = r.wrapError(err, opts, dest, stdout, stderr)
		}

		p.finish(err)
		if cb != nil {
			cb(err, stdout, stderr)
		}
	}()

	return p, nil
}

func (r *Runner) wrapError(err error, opts *OptionSet, dest, stdout, stderr string) error {
	line := r.builder.CommandLine(opts, dest)

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		return &ExitError{
			Command: line,
			Code:    exitErr.ExitCode(),
			Stdout:  stdout,
			Stderr:  stderr,
			Err:     err,
		}
	}
	return fmt.Errorf("run %s: %w", line, err)
}

func teeWriter(w io.Writer, buf *bytes.Buffer) io.Writer {
	if w == nil {
		return buf
	}
	return io.MultiWriter(w, buf)
}

// lockedWriter serializes writes through a mutex shared between streams.
type lockedWriter struct {
	mu *sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(b []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(b)
}

// Process is a handle to a child started by Runner.Start.
type Process struct {
	cmd    *exec.Cmd
	done   chan struct{}
	stdout bytes.Buffer
	stderr bytes.Buffer
	outMu  sync.Mutex

	mu  sync.Mutex
	err error
}

// errNotStarted is returned by Signal and Kill when the launch failed.
var errNotStarted = errors.New("process was not started")

func (p *Process) finish(err error) {
	p.mu.Lock()
	p.err = err
	p.mu.Unlock()
	close(p.done)
}

func (p *Process) captured() (stdout, stderr string) {
	p.outMu.Lock()
	defer p.outMu.Unlock()
	return p.stdout.String(), p.stderr.String()
}

// Pid returns the child's process ID, or 0 if it never started.
func (p *Process) Pid() int {
	if p.cmd.Process == nil {
		return 0
	}
	return p.cmd.Process.Pid
}

// Done is closed when the child has exited and its output is drained.
func (p *Process) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the child exits and returns the same error passed to the
// callback.
func (p *Process) Wait() error {
	<-p.done
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Stdout returns the captured standard output. It is complete once Done is closed.
func (p *Process) Stdout() string {
	<-p.done
	stdout, _ := p.captured()
	return stdout
}

// Stderr returns the captured standard error. It is complete once Done is closed.
func (p *Process) Stderr() string {
	<-p.done
	_, stderr := p.captured()
	return stderr
}

// Signal sends sig to the child.
func (p *Process) Signal(sig os.Signal) error {
	if p.cmd.Process == nil {
		return errNotStarted
	}
	return p.cmd.Process.Signal(sig)
}

// Kill terminates the child immediately.
func (p *Process) Kill() error {
	if p.cmd.Process == nil {
		return errNotStarted
	}
	return p.cmd.Process.Kill()
}
