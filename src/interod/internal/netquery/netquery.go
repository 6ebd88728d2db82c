// Package netquery issues read-only queries over short-lived connections to
// the worker's service port, bypassing the serialized primary queue. It
// trades strict ordering for latency; queries must be idempotent and must not
// mutate worker state.
package netquery

import (
	"fmt"
	"io"
	"net"
	"time"

	"github.com/hstools/interod/src/interod/internal/errors"
	"github.com/hstools/interod/src/interod/internal/procmux"
	tally "github.com/uber-go/tally/v4"
	"go.uber.org/zap"
)

const _defaultDialTimeout = 2 * time.Second

// Submitter is the primary-queue surface used for fallback.
type Submitter interface {
	Submit(command string, state interface{}, callback procmux.Callback) error
}

// DialFunc opens a point-to-point connection to the service port.
type DialFunc func(addr string, timeout time.Duration) (net.Conn, error)

// Channel issues one-shot queries against a worker service port. Multiple
// queries may be in flight at once; each uses its own connection.
type Channel struct {
	logger      *zap.SugaredLogger
	stats       tally.Scope
	dial        DialFunc
	dialTimeout time.Duration
	// directQueries false forces every query through the primary queue, for
	// sandboxed or remote deployments where direct connections are not
	// permitted.
	directQueries bool
}

// Params configures a Channel.
type Params struct {
	Logger        *zap.SugaredLogger
	Stats         tally.Scope
	Dial          DialFunc
	DialTimeout   time.Duration
	DirectQueries bool
}

// New returns a Channel.
func New(p Params) *Channel {
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	stats := p.Stats
	if stats == nil {
		stats = tally.NoopScope
	}
	dial := p.Dial
	if dial == nil {
		dial = func(addr string, timeout time.Duration) (net.Conn, error) {
			return net.DialTimeout("tcp", addr, timeout)
		}
	}
	timeout := p.DialTimeout
	if timeout == 0 {
		timeout = _defaultDialTimeout
	}
	return &Channel{
		logger:        logger,
		stats:         stats,
		dial:          dial,
		dialTimeout:   timeout,
		directQueries: p.DirectQueries,
	}
}

// QueryAsync sends a command over a fresh connection to port and invokes
// callback with the full response once the peer closes. On a missing port, a
// failed connection, or a disabled direct channel it transparently falls back
// to the primary queue: the callback fires exactly once either way, and the
// caller cannot tell which channel served it.
func (c *Channel) QueryAsync(port int, command string, state interface{}, callback procmux.Callback, fallback Submitter) {
	if !c.directQueries || port == 0 {
		c.fallBack(command, state, callback, fallback, nil)
		return
	}

	go func() {
		body, err := c.exchange(port, command)
		if err != nil {
			c.fallBack(command, state, callback, fallback, err)
			return
		}
		c.stats.Counter("direct_queries").Inc(1)
		callback(state, body)
	}()
}

// exchange performs one connect/send/read-to-EOF cycle. The connection is
// torn down after the single exchange.
func (c *Channel) exchange(port int, command string) (string, error) {
	conn, err := c.dial(fmt.Sprintf("127.0.0.1:%d", port), c.dialTimeout)
	if err != nil {
		return "", &errors.ConnectionUnavailableError{Port: port, Err: err}
	}
	defer conn.Close()

	if _, err := io.WriteString(conn, command+"\n"); err != nil {
		return "", &errors.ConnectionUnavailableError{Port: port, Err: err}
	}
	raw, err := io.ReadAll(conn)
	if err != nil {
		return "", &errors.ConnectionUnavailableError{Port: port, Err: err}
	}
	return procmux.Normalize(raw), nil
}

// fallBack reroutes the query to the primary queue. Connection failures are
// absorbed here and never surfaced to the caller.
func (c *Channel) fallBack(command string, state interface{}, callback procmux.Callback, fallback Submitter, cause error) {
	if cause != nil {
		c.stats.Counter("fallbacks").Inc(1)
		c.logger.Debugw("service port query falling back to primary queue",
			"command", command,
			"cause", cause,
		)
	}
	if err := fallback.Submit(command, state, callback); err != nil {
		c.logger.Errorw("fallback submission failed; query dropped",
			"command", command,
			"error", err,
		)
	}
}
