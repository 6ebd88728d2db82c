package errors

import (
	stderr "errors"
	"fmt"

	"github.com/gofrs/uuid"
)

// UUIDNotFoundError is a service domain error for a missing session.
type UUIDNotFoundError struct {
	UUID uuid.UUID
}

// Error is an implementation of the error interface.
func (n *UUIDNotFoundError) Error() string {
	return fmt.Sprintf("UUID %q not found", n.UUID)
}

// NotFoundUUID returns a UUID and true if UUIDNotFoundError is part of the
// error chain.
func NotFoundUUID(e error) (_ uuid.UUID, ok bool) {
	var nf *UUIDNotFoundError
	if !stderr.As(e, &nf) {
		return uuid.Nil, false
	}
	return nf.UUID, true
}

// ProcessNotRunningError reports a submission against a session with no live
// worker process behind it. The caller should EnsureReady or Restart.
type ProcessNotRunningError struct {
	Kind        string
	ProjectRoot string
}

// Error is an implementation of the error interface.
func (p *ProcessNotRunningError) Error() string {
	return fmt.Sprintf("no running %s worker for %q", p.Kind, p.ProjectRoot)
}

// IsProcessNotRunning reports whether ProcessNotRunningError is part of the
// error chain.
func IsProcessNotRunning(e error) bool {
	var pnr *ProcessNotRunningError
	return stderr.As(e, &pnr)
}

// ProtocolViolationError reports a frame boundary arriving while the pending
// queue is empty. It is logged and absorbed, never fatal to the session.
type ProtocolViolationError struct {
	Body string
}

// Error is an implementation of the error interface.
func (p *ProtocolViolationError) Error() string {
	return fmt.Sprintf("frame received with no pending request (%d bytes discarded)", len(p.Body))
}

// InstallFailureError reports that the negotiator could not produce a usable
// worker. Terminal for the session until an explicit restart.
type InstallFailureError struct {
	Transcript string
}

// Error is an implementation of the error interface.
func (i *InstallFailureError) Error() string {
	return "worker install failed"
}

// InstallTranscript returns the full install transcript and true if
// InstallFailureError is part of the error chain.
func InstallTranscript(e error) (string, bool) {
	var inf *InstallFailureError
	if !stderr.As(e, &inf) {
		return "", false
	}
	return inf.Transcript, true
}

// UnsatisfiedDependencyError reports a worker exit citing a missing build
// dependency. Triggers at most one escalation to a build-mode start.
type UnsatisfiedDependencyError struct {
	Transcript string
}

// Error is an implementation of the error interface.
func (u *UnsatisfiedDependencyError) Error() string {
	return "worker exited with unsatisfied package dependencies"
}

// ConnectionUnavailableError reports that the secondary query channel could
// not reach the worker's service port. Always recovered locally by falling
// back to the primary queue.
type ConnectionUnavailableError struct {
	Port int
	Err  error
}

// Error is an implementation of the error interface.
func (c *ConnectionUnavailableError) Error() string {
	return fmt.Sprintf("service port %d unavailable: %v", c.Port, c.Err)
}

// Unwrap supports errors.Is/As against the dial error.
func (c *ConnectionUnavailableError) Unwrap() error {
	return c.Err
}
