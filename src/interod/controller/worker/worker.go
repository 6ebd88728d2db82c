// Package worker owns the lifecycle of compiler worker processes and wires
// the command queue, the service-port query channel and the diagnostics
// pipeline together behind one session-scoped surface.
package worker

import (
	"context"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/uuid"
	"github.com/hstools/interod/src/interod/controller/diagnostics"
	"github.com/hstools/interod/src/interod/entity"
	"github.com/hstools/interod/src/interod/internal/clock"
	"github.com/hstools/interod/src/interod/internal/errors"
	"github.com/hstools/interod/src/interod/internal/executor"
	"github.com/hstools/interod/src/interod/internal/fs"
	"github.com/hstools/interod/src/interod/internal/install"
	"github.com/hstools/interod/src/interod/internal/netquery"
	"github.com/hstools/interod/src/interod/internal/procmux"
	"github.com/hstools/interod/src/interod/repository/session"
	tally "github.com/uber-go/tally/v4"
	uberconfig "go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const _nameKey = "worker"

// _portAnnouncementPattern matches the service-port line the worker prints in
// its very first response. The line is consumed here and never reaches
// callers.
var _portAnnouncementPattern = regexp.MustCompile(`(?m)^Port-Announcement: (\d+)\r?\n?`)

var _compilerVersionPattern = regexp.MustCompile(`GHCi, version ([0-9.]+)`)

// _unsatisfiedDependencyMarker is the exit-output marker for a worker that
// died because a package it needs was never built.
const _unsatisfiedDependencyMarker = "cannot satisfy -package"

// _escalationDelay gives the dead process a moment to release its port and
// lock files before the build-mode retry.
const _escalationDelay = 500 * time.Millisecond

// Module provides the worker controller.
var Module = fx.Options(
	fx.Provide(New),
)

// Controller manages one worker session per project root. All lifecycle
// transitions happen here; every other package only reads session state.
type Controller interface {
	// EnsureReady returns a live session for the project root, negotiating
	// install and spawn as needed. A session in GivenUp returns
	// InstallFailure with the preserved transcript and is never respawned
	// until Restart.
	EnsureReady(ctx context.Context, projectRoot string) (*entity.Session, error)
	// Submit queues a command on the primary channel.
	Submit(ctx context.Context, projectRoot string, command string, state interface{}, callback procmux.Callback) error
	// BlockingCall submits and waits for the command's own response.
	BlockingCall(ctx context.Context, projectRoot string, command string) (string, error)
	// QueryAsync issues a read-only query on the secondary channel, falling
	// back to the primary queue transparently.
	QueryAsync(ctx context.Context, projectRoot string, command string, state interface{}, callback procmux.Callback) error
	// Load loads a target on the primary channel, then parses and publishes
	// the resulting diagnostics.
	Load(ctx context.Context, projectRoot string, target string) ([]entity.Diagnostic, error)
	// Restart destroys the session and builds a fresh one. This is the only
	// way out of GivenUp.
	Restart(ctx context.Context, projectRoot string) (*entity.Session, error)
	// Destroy kills the worker and drops the session. Requests still queued
	// at that point are abandoned without a callback; this is the one
	// documented way a submission can end without output.
	Destroy(ctx context.Context, projectRoot string) error
}

// Config holds worker settings from the "worker" config block.
type Config struct {
	Kind          string `yaml:"kind"`
	StackPath     string `yaml:"stackPath"`
	Resolver      string `yaml:"resolver"`
	DirectQueries bool   `yaml:"directQueries"`
	TargetsFile   string `yaml:"targetsFile"`
}

// Params are inbound parameters to construct the controller.
type Params struct {
	fx.In

	Sessions    session.Repository
	Negotiator  install.Negotiator
	Executor    executor.Executor
	Diagnostics diagnostics.Controller
	FS          fs.InterodFS
	Clock       clock.Clock
	Config      uberconfig.Provider
	Logger      *zap.SugaredLogger
	Stats       tally.Scope
}

// runtime is the process-bound half of a session: the parts that die with
// the worker and are rebuilt on every spawn.
type runtime struct {
	mux    *procmux.Mux
	handle executor.Handle
	tail   *tailBuffer
}

type controller struct {
	sessions    session.Repository
	negotiator  install.Negotiator
	executor    executor.Executor
	diagnostics diagnostics.Controller
	channel     *netquery.Channel
	fs          fs.InterodFS
	clock       clock.Clock
	config      Config
	logger      *zap.SugaredLogger
	stats       tally.Scope

	// mu serializes all lifecycle transitions and runtime-table writes. The
	// request queue has its own lock inside procmux, so queued traffic keeps
	// flowing while lifecycle work holds this.
	mu       sync.Mutex
	runtimes map[uuid.UUID]*runtime
}

// New creates the worker controller.
func New(p Params) (Controller, error) {
	cfg := Config{
		StackPath:   "stack",
		TargetsFile: ".interod.yaml",
	}
	if err := p.Config.Get("worker").Populate(&cfg); err != nil {
		return nil, err
	}

	logger := p.Logger.With("plugin", _nameKey)
	stats := p.Stats.SubScope(_nameKey)
	return &controller{
		sessions:    p.Sessions,
		negotiator:  p.Negotiator,
		executor:    p.Executor,
		diagnostics: p.Diagnostics,
		fs:          p.FS,
		clock:       p.Clock,
		config:      cfg,
		logger:      logger,
		stats:       stats,
		channel: netquery.New(netquery.Params{
			Logger:        logger,
			Stats:         stats.SubScope("netquery"),
			DirectQueries: cfg.DirectQueries,
		}),
		runtimes: make(map[uuid.UUID]*runtime),
	}, nil
}

func (c *controller) EnsureReady(ctx context.Context, projectRoot string) (*entity.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ensureStartedLocked(ctx, projectRoot)
}

// ensureStartedLocked drives Absent sessions through negotiation and spawn.
// Sessions already Starting or Ready are returned as-is: commands may queue
// behind the startup request before the port is known.
func (c *controller) ensureStartedLocked(ctx context.Context, projectRoot string) (*entity.Session, error) {
	s, err := c.sessions.GetByProject(ctx, entity.WorkerKindIntero, projectRoot)
	if err != nil {
		return nil, err
	}
	if s == nil {
		s = &entity.Session{
			UUID:        uuid.Must(uuid.NewV4()),
			Kind:        entity.WorkerKindIntero,
			ProjectRoot: projectRoot,
			State:       entity.StateAbsent,
			Mode:        entity.ModeFast,
		}
		if err := c.sessions.Set(ctx, s); err != nil {
			return nil, err
		}
	}

	switch s.State {
	case entity.StateReady, entity.StateStarting, entity.StateInstalling:
		return s, nil
	case entity.StateGivenUp:
		return nil, &errors.InstallFailureError{Transcript: s.Transcript}
	}

	if status := c.negotiator.Check(projectRoot); status != install.StatusInstalled {
		c.logger.Infow("worker helper not usable, installing",
			"status", status,
			"projectRoot", projectRoot,
		)
		s.State = entity.StateInstalling
		c.sessions.Set(ctx, s)
		c.stats.Counter("installs").Inc(1)

		if err := c.negotiator.Install(projectRoot); err != nil {
			transcript, _ := errors.InstallTranscript(err)
			c.giveUpLocked(ctx, s, transcript)
			return nil, err
		}
	}

	if err := c.startLocked(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// startLocked spawns the worker and registers the startup request whose
// response announces the service port.
func (c *controller) startLocked(ctx context.Context, s *entity.Session) error {
	targets := c.loadTargets(s.ProjectRoot)

	args := []string{"ghci", "--with-ghc", "intero"}
	if s.Mode == entity.ModeFast {
		args = append(args, "--no-build", "--no-load")
	}
	if targets.Resolver != "" {
		args = append(args, "--resolver", targets.Resolver)
	} else if c.config.Resolver != "" {
		args = append(args, "--resolver", c.config.Resolver)
	}
	args = append(args, targets.Flags...)
	args = append(args, targets.Targets...)

	cmd := exec.Command(c.config.StackPath, args...)
	cmd.Dir = s.ProjectRoot

	mux := procmux.New(procmux.Params{
		Kind:        string(s.Kind),
		ProjectRoot: s.ProjectRoot,
		Logger:      c.logger,
		Stats:       c.stats.SubScope("procmux"),
	})
	tail := newTailBuffer()

	id := s.UUID
	handle, err := c.executor.Start(cmd, executor.StartParams{
		OnOutput: func(chunk []byte) {
			tail.write(chunk)
			mux.Feed(chunk)
		},
		OnExit: func(exitErr error) {
			c.onExit(id, exitErr, tail.String())
		},
	})
	if err != nil {
		c.giveUpLocked(ctx, s, err.Error())
		return &errors.InstallFailureError{Transcript: err.Error()}
	}

	mux.Attach(handle)
	c.runtimes[id] = &runtime{mux: mux, handle: handle, tail: tail}

	s.State = entity.StateStarting
	c.sessions.Set(ctx, s)
	c.stats.Counter("starts").Inc(1)

	// The first frame carries everything from the banner to the moment the
	// marker prompt takes effect, including the port announcement.
	mux.Submit(`:set prompt "\4"`, nil, func(_ interface{}, body string) {
		c.completeStartup(id, body)
	})
	for _, setup := range []string{
		":set -fdefer-type-errors",
		":set -fdiagnostics-color=never",
		":set -fno-diagnostics-show-caret",
	} {
		mux.Submit(setup, nil, nil)
	}
	return nil
}

// completeStartup consumes the port announcement from the startup response
// and flips the session to Ready.
func (c *controller) completeStartup(id uuid.UUID, body string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ctx := context.Background()
	s, err := c.sessions.Get(ctx, id)
	if err != nil {
		// Destroyed while starting; nothing to complete.
		return
	}

	if m := _portAnnouncementPattern.FindStringSubmatch(body); m != nil {
		s.ServicePort, _ = strconv.Atoi(m[1])
		body = _portAnnouncementPattern.ReplaceAllString(body, "")
	} else {
		c.logger.Warnw("startup response carried no port announcement; secondary channel disabled",
			"projectRoot", s.ProjectRoot,
		)
	}
	if m := _compilerVersionPattern.FindStringSubmatch(body); m != nil {
		s.CompilerVersion = m[1]
	}

	s.State = entity.StateReady
	s.Transcript = body
	c.sessions.Set(ctx, s)
	c.logger.Infow("worker ready",
		"projectRoot", s.ProjectRoot,
		"servicePort", s.ServicePort,
		"compilerVersion", s.CompilerVersion,
		"mode", s.Mode,
	)
}

// onExit handles unexpected process death. Deliberate teardown (Restart,
// Destroy) deletes the session first, so reaching a live session here means
// the worker died on its own.
func (c *controller) onExit(id uuid.UUID, exitErr error, transcript string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if rt, ok := c.runtimes[id]; ok {
		rt.mux.Detach()
		delete(c.runtimes, id)
	}

	ctx := context.Background()
	s, err := c.sessions.Get(ctx, id)
	if err != nil || s.TreatAsAbsent() {
		return
	}

	if strings.Contains(transcript, _unsatisfiedDependencyMarker) && s.Mode == entity.ModeFast {
		// Exactly one escalation: retry in build mode, which lets the build
		// tool construct the missing dependencies before the REPL starts.
		c.logger.Warnw("worker exited with unsatisfied dependencies, escalating to build mode",
			"projectRoot", s.ProjectRoot,
		)
		c.stats.Counter("escalations").Inc(1)
		s.Mode = entity.ModeBuild
		c.clock.Sleep(_escalationDelay)
		if err := c.startLocked(ctx, s); err != nil {
			c.logger.Errorw("build-mode restart failed", "error", err)
		}
		return
	}

	c.logger.Errorw("worker exited unexpectedly, giving up",
		"projectRoot", s.ProjectRoot,
		"exitError", exitErr,
	)
	c.giveUpLocked(ctx, s, transcript)
}

// giveUpLocked parks the session in the terminal GivenUp state, preserving
// the transcript for humans to diagnose the environment.
func (c *controller) giveUpLocked(ctx context.Context, s *entity.Session, transcript string) {
	s.State = entity.StateGivenUp
	s.GaveUp = true
	s.Transcript = transcript
	c.sessions.Set(ctx, s)
	c.stats.Counter("give_ups").Inc(1)
}

func (c *controller) Submit(ctx context.Context, projectRoot string, command string, state interface{}, callback procmux.Callback) error {
	rt, err := c.liveRuntime(ctx, projectRoot)
	if err != nil {
		return err
	}
	return rt.mux.Submit(command, state, callback)
}

func (c *controller) BlockingCall(ctx context.Context, projectRoot string, command string) (string, error) {
	rt, err := c.liveRuntime(ctx, projectRoot)
	if err != nil {
		return "", err
	}
	return rt.mux.BlockingCall(command)
}

func (c *controller) QueryAsync(ctx context.Context, projectRoot string, command string, state interface{}, callback procmux.Callback) error {
	c.mu.Lock()
	s, err := c.sessions.GetByProject(ctx, entity.WorkerKindIntero, projectRoot)
	var rt *runtime
	if s != nil {
		rt = c.runtimes[s.UUID]
	}
	c.mu.Unlock()
	if err != nil {
		return err
	}
	if s == nil || rt == nil {
		return &errors.ProcessNotRunningError{Kind: string(entity.WorkerKindIntero), ProjectRoot: projectRoot}
	}

	port := 0
	if s.State == entity.StateReady {
		port = s.ServicePort
	}
	c.channel.QueryAsync(port, command, state, callback, rt.mux)
	return nil
}

func (c *controller) Load(ctx context.Context, projectRoot string, target string) ([]entity.Diagnostic, error) {
	c.mu.Lock()
	s, err := c.ensureStartedLocked(ctx, projectRoot)
	c.mu.Unlock()
	if err != nil {
		return nil, err
	}

	body, err := c.BlockingCall(ctx, projectRoot, ":load "+target)
	if err != nil {
		return nil, err
	}

	sCtx := context.WithValue(ctx, entity.SessionContextKey, s.UUID)
	parsed := c.diagnostics.Parse(sCtx, body)
	if err := c.diagnostics.Publish(sCtx, parsed); err != nil {
		c.logger.Warnw("publishing load diagnostics failed", "error", err)
	}
	return parsed, nil
}

func (c *controller) Restart(ctx context.Context, projectRoot string) (*entity.Session, error) {
	if err := c.Destroy(ctx, projectRoot); err != nil {
		return nil, err
	}
	c.stats.Counter("restarts").Inc(1)
	return c.EnsureReady(ctx, projectRoot)
}

func (c *controller) Destroy(ctx context.Context, projectRoot string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.sessions.GetByProject(ctx, entity.WorkerKindIntero, projectRoot)
	if err != nil {
		return err
	}
	if s == nil {
		return nil
	}

	// Mark teardown before killing so the exit handler reads it as
	// deliberate rather than a crash.
	s.State = entity.StateRestarting
	c.sessions.Set(ctx, s)

	if rt, ok := c.runtimes[s.UUID]; ok {
		rt.mux.Detach()
		rt.handle.Kill()
		delete(c.runtimes, s.UUID)
	}
	return c.sessions.Delete(ctx, s.UUID)
}

// liveRuntime resolves the process-backed runtime for a project root,
// creating the session on first use. GivenUp sessions never respawn here.
func (c *controller) liveRuntime(ctx context.Context, projectRoot string) (*runtime, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.sessions.GetByProject(ctx, entity.WorkerKindIntero, projectRoot)
	if err != nil {
		return nil, err
	}
	if s != nil && s.State == entity.StateGivenUp {
		return nil, &errors.ProcessNotRunningError{Kind: string(s.Kind), ProjectRoot: projectRoot}
	}
	if s == nil || s.TreatAsAbsent() {
		if s, err = c.ensureStartedLocked(ctx, projectRoot); err != nil {
			return nil, err
		}
	}

	rt, ok := c.runtimes[s.UUID]
	if !ok {
		return nil, &errors.ProcessNotRunningError{Kind: string(s.Kind), ProjectRoot: projectRoot}
	}
	return rt, nil
}
