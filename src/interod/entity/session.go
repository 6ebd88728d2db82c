// Package entity contains the domain logic for the interod daemon.
package entity

import (
	"github.com/gofrs/uuid"
)

type keyType string

// SessionContextKey indicates the key to be used to identify the session UUID in the context.
const SessionContextKey keyType = "SessionUUID"

// WorkerKind identifies the compiler toolchain backing a session.
type WorkerKind string

const (
	// WorkerKindIntero is a GHCi worker driven through the intero helper.
	WorkerKindIntero WorkerKind = "intero"
)

// SessionState is the single tagged lifecycle state of a worker session.
// Transitions are owned exclusively by the worker controller; no other
// package may write it.
type SessionState string

const (
	// StateAbsent means no process exists; any call triggers EnsureReady.
	StateAbsent SessionState = "absent"
	// StateInstalling means an install/build of the worker helper is running.
	StateInstalling SessionState = "installing"
	// StateStarting means the worker process has been spawned but has not yet
	// produced its first frame.
	StateStarting SessionState = "starting"
	// StateReady means the worker accepts commands on both channels.
	StateReady SessionState = "ready"
	// StateRestarting means the previous process is being torn down before a
	// fresh start.
	StateRestarting SessionState = "restarting"
	// StateGivenUp is terminal until an explicit restart destroys and
	// recreates the session. It prevents unbounded restart loops against a
	// misconfigured environment.
	StateGivenUp SessionState = "given-up"
)

// StartMode selects how the worker process is launched.
type StartMode string

const (
	// ModeFast starts the worker without building project dependencies.
	ModeFast StartMode = "fast"
	// ModeBuild starts the worker letting the build tool construct missing
	// dependencies first. Used for the single automatic escalation after an
	// unsatisfied-dependency exit.
	ModeBuild StartMode = "build"
)

// Session entity representing one worker bound to a project root. Exactly one
// session exists per (Kind, ProjectRoot) pair.
type Session struct {
	UUID            uuid.UUID    `json:"uuid" zap:"uuid"`
	Kind            WorkerKind   `json:"kind" zap:"kind"`
	ProjectRoot     string       `json:"projectRoot" zap:"projectRoot"`
	State           SessionState `json:"state" zap:"state"`
	Mode            StartMode    `json:"mode" zap:"mode"`
	ServicePort     int          `json:"servicePort" zap:"servicePort"`
	CompilerVersion string       `json:"compilerVersion" zap:"compilerVersion"`
	Extensions      []string     `json:"extensions" zap:"extensions"`
	ScratchDir      string       `json:"scratchDir" zap:"scratchDir"`
	GaveUp          bool         `json:"gaveUp" zap:"gaveUp"`
	// Transcript retains process/install output for GivenUp diagnostics.
	Transcript string `json:"-" zap:"-"`
}

// Alive reports whether the session is in a state backed by a live process.
func (s *Session) Alive() bool {
	return s.State == StateStarting || s.State == StateReady
}

// TreatAsAbsent reports whether callers should consider this session
// nonexistent. A session found mid-teardown reads as absent, not as an error.
func (s *Session) TreatAsAbsent() bool {
	return s == nil || s.State == StateAbsent || s.State == StateRestarting
}
