// Package procmux serializes commands to a worker process and frames its
// output stream back into discrete responses, matched FIFO to the commands
// that caused them.
package procmux

import (
	"bytes"
	"io"
	"strings"
	"sync"

	"github.com/hstools/interod/src/interod/internal/errors"
	tally "github.com/uber-go/tally/v4"
	"go.uber.org/zap"
)

// FrameMarker terminates one response frame. The worker's prompt is set to
// this byte at startup; it never appears in ordinary compiler output.
const FrameMarker byte = 0x04

// Callback receives the response body for one submitted command, together
// with the opaque state passed at submission.
type Callback func(state interface{}, body string)

type pendingRequest struct {
	state    interface{}
	callback Callback
	command  string
}

// Mux owns the pending-request queue and the output buffer for one worker
// process. Queue push/pop is atomic under one mutex shared with the frame
// scanner; callbacks are invoked outside the lock so they may submit again.
//
// Feed must be called from a single goroutine (the process output pump).
type Mux struct {
	kind        string
	projectRoot string
	logger      *zap.SugaredLogger
	stats       tally.Scope

	mu      sync.Mutex
	cond    *sync.Cond
	writer  io.Writer
	pending []pendingRequest
	buf     []byte
	// generation increments on every Detach so blocked callers can tell the
	// process they were waiting on is gone.
	generation uint64
}

// Params configures a Mux.
type Params struct {
	Kind        string
	ProjectRoot string
	Logger      *zap.SugaredLogger
	Stats       tally.Scope
}

// New returns a Mux with no attached process.
func New(p Params) *Mux {
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	stats := p.Stats
	if stats == nil {
		stats = tally.NoopScope
	}
	m := &Mux{
		kind:        p.Kind,
		projectRoot: p.ProjectRoot,
		logger:      logger,
		stats:       stats,
	}
	m.cond = sync.NewCond(&m.mu)
	return m
}

// Attach binds the Mux to a fresh process stdin and resets all buffered
// state. Any requests still pending from a previous process are abandoned;
// blocked callers are woken with ProcessNotRunning.
func (m *Mux) Attach(w io.Writer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writer = w
	m.pending = nil
	m.buf = nil
	m.generation++
	m.cond.Broadcast()
}

// Detach drops the process binding. Subsequent Submits fail with
// ProcessNotRunning and blocked callers are woken.
func (m *Mux) Detach() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writer = nil
	m.generation++
	m.cond.Broadcast()
}

// Submit appends a pending request and writes the command to the worker.
// Commands must be newline-free: the protocol is line-oriented and an
// embedded newline would desynchronize the queue from the response stream.
func (m *Mux) Submit(command string, state interface{}, callback Callback) error {
	if strings.ContainsRune(command, '\n') {
		return errors.EmbeddedNewlineError
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.submitLocked(command, state, callback)
}

func (m *Mux) submitLocked(command string, state interface{}, callback Callback) error {
	if m.writer == nil {
		return &errors.ProcessNotRunningError{Kind: m.kind, ProjectRoot: m.projectRoot}
	}

	// Queue append and stdin write stay under one lock so response N always
	// corresponds to request N.
	m.pending = append(m.pending, pendingRequest{state: state, callback: callback, command: command})
	if _, err := io.WriteString(m.writer, command+"\n"); err != nil {
		m.pending = m.pending[:len(m.pending)-1]
		return err
	}
	m.stats.Counter("commands_submitted").Inc(1)
	return nil
}

// BlockingCall submits a command and suspends the calling goroutine until its
// response frame arrives, then returns the body. Other submissions and
// deliveries proceed while it waits. Returns ProcessNotRunning if the worker
// dies, or is detached, before the response arrives.
func (m *Mux) BlockingCall(command string) (string, error) {
	if strings.ContainsRune(command, '\n') {
		return "", errors.EmbeddedNewlineError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var body string
	done := false
	err := m.submitLocked(command, nil, func(_ interface{}, b string) {
		m.mu.Lock()
		body = b
		done = true
		m.cond.Broadcast()
		m.mu.Unlock()
	})
	if err != nil {
		return "", err
	}

	gen := m.generation
	for !done && m.generation == gen {
		m.cond.Wait()
	}
	if !done {
		return "", &errors.ProcessNotRunningError{Kind: m.kind, ProjectRoot: m.projectRoot}
	}
	return body, nil
}

// Feed consumes a chunk of worker output. Completed frames are delivered to
// the oldest pending requests in order; bytes after the last marker stay
// buffered for the next frame.
func (m *Mux) Feed(chunk []byte) {
	type delivery struct {
		req  pendingRequest
		body string
	}

	m.mu.Lock()
	m.buf = append(m.buf, chunk...)

	var deliveries []delivery
	for {
		idx := bytes.IndexByte(m.buf, FrameMarker)
		if idx < 0 {
			break
		}
		body := Normalize(m.buf[:idx])
		m.buf = m.buf[idx+1:]

		if len(m.pending) == 0 {
			// Protocol violation: a frame with nobody waiting for it. Log
			// and discard, never crash the session.
			m.stats.Counter("protocol_violations").Inc(1)
			violation := &errors.ProtocolViolationError{Body: body}
			m.logger.Warnw("discarding unmatched response frame",
				"error", violation,
				"projectRoot", m.projectRoot,
			)
			continue
		}

		req := m.pending[0]
		m.pending = m.pending[1:]
		deliveries = append(deliveries, delivery{req: req, body: body})
		m.stats.Counter("frames_delivered").Inc(1)
	}
	m.mu.Unlock()

	for _, d := range deliveries {
		if d.req.callback != nil {
			d.req.callback(d.req.state, d.body)
		}
	}
}

// PendingCount returns the number of requests awaiting a response.
func (m *Mux) PendingCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// Attached reports whether a process currently backs the Mux.
func (m *Mux) Attached() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writer != nil
}

// Normalize strips carriage returns so response bodies look the same on
// every platform and on every channel.
func Normalize(raw []byte) string {
	body := strings.ReplaceAll(string(raw), "\r\n", "\n")
	return strings.TrimSuffix(body, "\r")
}
