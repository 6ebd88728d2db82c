// Package install negotiates worker helper availability: probing the
// installed version against the pinned one and driving build/install attempts
// through the build tool.
package install

import (
	"os/exec"
	"strings"

	"github.com/hstools/interod/src/interod/internal/errors"
	"github.com/hstools/interod/src/interod/internal/executor"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// PinnedVersion is the helper version this daemon is built against. Check
// demands an exact match; anything else is negotiated as wrong-version.
const PinnedVersion = "0.1.40"

const _helperPackage = "intero"

// Status is the outcome of one negotiation probe. Computed on demand, never
// cached across attempts.
type Status string

const (
	// StatusNotInstalled means the helper could not be located or run.
	StatusNotInstalled Status = "not-installed"
	// StatusWrongVersion means the helper runs but reports a version other
	// than PinnedVersion.
	StatusWrongVersion Status = "wrong-version"
	// StatusInstalled means the helper matches the pinned version exactly.
	StatusInstalled Status = "installed"
)

// Module provides the Negotiator.
var Module = fx.Options(
	fx.Provide(New),
)

// Negotiator determines worker readiness for a project root.
type Negotiator interface {
	// Check probes the helper with its version flag.
	Check(projectRoot string) Status
	// Install builds the pinned helper version. On failure the returned
	// error carries the full build transcript for display; success requires
	// a zero exit status.
	Install(projectRoot string) error
}

// Params are inbound parameters to construct a Negotiator.
type Params struct {
	fx.In

	Executor executor.Executor
	Logger   *zap.SugaredLogger
}

type negotiator struct {
	executor  executor.Executor
	logger    *zap.SugaredLogger
	stackPath string
	resolver  string
}

// Option customizes the negotiator.
type Option func(*negotiator)

// WithStackPath overrides the build tool binary.
func WithStackPath(path string) Option {
	return func(n *negotiator) { n.stackPath = path }
}

// WithResolver pins the dependency resolver snapshot used for installs.
func WithResolver(resolver string) Option {
	return func(n *negotiator) { n.resolver = resolver }
}

// New returns a Negotiator using the stack build tool.
func New(p Params, opts ...Option) Negotiator {
	n := &negotiator{
		executor:  p.Executor,
		logger:    p.Logger.With("component", "install"),
		stackPath: "stack",
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Check runs the helper with its version flag inside the project root.
func (n *negotiator) Check(projectRoot string) Status {
	cmd := exec.Command(n.stackPath, "exec", "--verbosity", "silent", _helperPackage, "--", "--version")
	cmd.Dir = projectRoot

	stdout, _, exitCode, err := n.executor.Run(cmd)
	if err != nil || exitCode != 0 {
		return StatusNotInstalled
	}

	version := strings.TrimSpace(stdout)
	if version != PinnedVersion {
		n.logger.Infow("helper version mismatch",
			"installed", version,
			"pinned", PinnedVersion,
		)
		return StatusWrongVersion
	}
	return StatusInstalled
}

// Install builds the exact pinned helper version as a compiler tool.
func (n *negotiator) Install(projectRoot string) error {
	args := []string{"build", _helperPackage + "-" + PinnedVersion, "--copy-compiler-tool"}
	if n.resolver != "" {
		args = append(args, "--resolver", n.resolver)
	}
	cmd := exec.Command(n.stackPath, args...)
	cmd.Dir = projectRoot

	stdout, stderr, exitCode, err := n.executor.Run(cmd)
	if err != nil || exitCode != 0 {
		transcript := stdout
		if stderr != "" {
			transcript += stderr
		}
		n.logger.Warnw("helper install failed",
			"exitCode", exitCode,
			"error", err,
		)
		return &errors.InstallFailureError{Transcript: transcript}
	}
	return nil
}
