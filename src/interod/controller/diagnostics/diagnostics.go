// Package diagnostics turns raw compiler output into structured, addressable
// records and publishes them to editor clients.
package diagnostics

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/hstools/interod/src/interod/entity"
	ideclient "github.com/hstools/interod/src/interod/gateway/ide-client"
	"github.com/hstools/interod/src/interod/mapper"
	"github.com/hstools/interod/src/interod/repository/session"
	tally "github.com/uber-go/tally/v4"
	"go.uber.org/fx"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const _nameKey = "diagnostics"

// Module provides the diagnostics controller.
var Module = fx.Options(
	fx.Provide(New),
)

// Controller parses worker output into diagnostics and pushes them out.
type Controller interface {
	// Parse converts raw worker output into diagnostics, remapping scratch
	// paths using the session found on the context (if any).
	Parse(ctx context.Context, rawText string) []entity.Diagnostic
	// Publish sends diagnostics to the editor client registered for the
	// session on the context, grouped per file.
	Publish(ctx context.Context, diagnostics []entity.Diagnostic) error
}

// Params are inbound parameters to construct the controller.
type Params struct {
	fx.In

	Sessions   session.Repository
	IdeGateway ideclient.Gateway
	Logger     *zap.SugaredLogger
	Stats      tally.Scope
}

type controller struct {
	sessions   session.Repository
	ideGateway ideclient.Gateway
	logger     *zap.SugaredLogger
	stats      tally.Scope
}

// New creates a new controller for diagnostics.
func New(p Params) Controller {
	return &controller{
		sessions:   p.Sessions,
		ideGateway: p.IdeGateway,
		logger:     p.Logger.With("plugin", _nameKey),
		stats:      p.Stats.SubScope(_nameKey),
	}
}

func (c *controller) Parse(ctx context.Context, rawText string) []entity.Diagnostic {
	var remap RemapFunc
	if s, err := c.sessions.GetFromContext(ctx); err == nil && s.ScratchDir != "" {
		remap = scratchRemap(s.ScratchDir, s.ProjectRoot)
	}

	diagnostics := Parse(rawText, remap)
	c.stats.Counter("parsed").Inc(int64(len(diagnostics)))
	return diagnostics
}

func (c *controller) Publish(ctx context.Context, diagnostics []entity.Diagnostic) error {
	var errs error
	for _, params := range mapper.DiagnosticsToPublishParams(diagnostics) {
		c.logger.Debugw("publishing diagnostics", "uri", params.URI, "count", len(params.Diagnostics))
		if err := c.ideGateway.PublishDiagnostics(ctx, params); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

// scratchRemap maps files under the session's staging directory back to the
// logical sources they shadow.
func scratchRemap(scratchDir, projectRoot string) RemapFunc {
	prefix := strings.TrimSuffix(scratchDir, string(filepath.Separator)) + string(filepath.Separator)
	return func(path string) (string, bool) {
		if !strings.HasPrefix(path, prefix) {
			return "", false
		}
		return filepath.Join(projectRoot, strings.TrimPrefix(path, prefix)), true
	}
}
