package executor

import (
	"io"
	"os"
	"os/exec"
	"sync"
)

const _readChunkSize = 4096

// StartParams carries the callbacks for a long-running process. OnOutput
// receives stdout and stderr interleaved, in arrival order, from a single
// reader goroutine; OnExit fires exactly once after the process ends and all
// output has been delivered.
type StartParams struct {
	OnOutput func(chunk []byte)
	OnExit   func(err error)
}

// Handle drives one live process started via Executor.Start.
type Handle interface {
	io.Writer
	// Kill terminates the process. Safe to call more than once and after exit.
	Kill() error
	// Running reports whether the process has not yet exited.
	Running() bool
	// Pid returns the OS process id.
	Pid() int
}

type handle struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser

	mu     sync.Mutex
	exited bool
}

// Start launches cmd with a stdin pipe and merged stdout/stderr streaming to
// params.OnOutput.
func (l *executorImp) Start(cmd *exec.Cmd, params StartParams) (Handle, error) {
	if err := l.logCommand(cmd); err != nil {
		return nil, err
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}

	outR, outW, err := os.Pipe()
	if err != nil {
		stdin.Close()
		return nil, err
	}
	cmd.Stdout = outW
	cmd.Stderr = outW

	if err := cmd.Start(); err != nil {
		stdin.Close()
		outR.Close()
		outW.Close()
		return nil, err
	}
	// Parent's copy of the write end; the child holds its own.
	outW.Close()

	h := &handle{cmd: cmd, stdin: stdin}
	go h.pump(outR, params)
	return h, nil
}

// pump delivers output chunks until EOF, then reaps the process.
func (h *handle) pump(r *os.File, params StartParams) {
	defer r.Close()

	buf := make([]byte, _readChunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 && params.OnOutput != nil {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			params.OnOutput(chunk)
		}
		if err != nil {
			break
		}
	}

	waitErr := h.cmd.Wait()
	h.mu.Lock()
	h.exited = true
	h.mu.Unlock()

	if params.OnExit != nil {
		params.OnExit(waitErr)
	}
}

// Write sends bytes to the process stdin.
func (h *handle) Write(p []byte) (int, error) {
	return h.stdin.Write(p)
}

// Kill terminates the process.
func (h *handle) Kill() error {
	h.mu.Lock()
	exited := h.exited
	h.mu.Unlock()
	if exited || h.cmd.Process == nil {
		return nil
	}
	h.stdin.Close()
	return h.cmd.Process.Kill()
}

// Running reports whether the process has not yet exited.
func (h *handle) Running() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return !h.exited
}

// Pid returns the OS process id.
func (h *handle) Pid() int {
	if h.cmd.Process == nil {
		return 0
	}
	return h.cmd.Process.Pid
}
