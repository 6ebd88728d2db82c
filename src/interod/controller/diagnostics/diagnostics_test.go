package diagnostics

import (
	"context"
	"testing"

	"github.com/hstools/interod/src/interod/entity"
	"github.com/hstools/interod/src/interod/factory"
	"github.com/hstools/interod/src/interod/gateway/ide-client/ideclientmock"
	"github.com/hstools/interod/src/interod/internal/errors"
	"github.com/hstools/interod/src/interod/repository/session/repositorymock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tally "github.com/uber-go/tally/v4"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	assert.NotPanics(t, func() {
		New(Params{
			Sessions:   repositorymock.NewMockRepository(ctrl),
			IdeGateway: ideclientmock.NewMockGateway(ctrl),
			Logger:     zap.NewNop().Sugar(),
			Stats:      tally.NewTestScope("testing", make(map[string]string, 0)),
		})
	})
}

func TestControllerParseRemapsScratchPaths(t *testing.T) {
	ctrl := gomock.NewController(t)
	sessionRepository := repositorymock.NewMockRepository(ctrl)
	s := factory.SessionReady("/repo")
	s.ScratchDir = "/tmp/interod-scratch"
	sessionRepository.EXPECT().GetFromContext(gomock.Any()).Return(s, nil)

	c := &controller{
		sessions: sessionRepository,
		logger:   zap.NewNop().Sugar(),
		stats:    tally.NewTestScope("testing", make(map[string]string, 0)),
	}

	ctx := context.WithValue(context.Background(), entity.SessionContextKey, s.UUID)
	got := c.Parse(ctx, "/tmp/interod-scratch/src/Lib.hs:3:1: warning: Defined but not used: ‘x’")
	require.Len(t, got, 1)
	assert.Equal(t, "/repo/src/Lib.hs", got[0].File)
}

func TestControllerParseWithoutSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	sessionRepository := repositorymock.NewMockRepository(ctrl)
	sessionRepository.EXPECT().GetFromContext(gomock.Any()).Return(nil, errors.NoUUIDInContextError)

	c := &controller{
		sessions: sessionRepository,
		logger:   zap.NewNop().Sugar(),
		stats:    tally.NewTestScope("testing", make(map[string]string, 0)),
	}

	got := c.Parse(context.Background(), "a.hs:1:1: warning: Defined but not used: ‘x’")
	require.Len(t, got, 1)
	assert.Equal(t, "a.hs", got[0].File)
}

func TestControllerPublish(t *testing.T) {
	ctrl := gomock.NewController(t)
	ideGatewayMock := ideclientmock.NewMockGateway(ctrl)

	var published []*protocol.PublishDiagnosticsParams
	ideGatewayMock.EXPECT().PublishDiagnostics(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params *protocol.PublishDiagnosticsParams) error {
			published = append(published, params)
			return nil
		}).Times(2)

	c := &controller{
		ideGateway: ideGatewayMock,
		logger:     zap.NewNop().Sugar(),
		stats:      tally.NewTestScope("testing", make(map[string]string, 0)),
	}

	err := c.Publish(context.Background(), []entity.Diagnostic{
		{Severity: entity.SeverityError, File: "/repo/src/A.hs", Line: 1, Column: 1, Message: "boom"},
		{Severity: entity.SeverityWarning, File: "/repo/src/B.hs", Line: 2, Column: 2, Message: "meh"},
	})
	require.NoError(t, err)
	require.Len(t, published, 2)
	assert.Equal(t, uri.File("/repo/src/A.hs"), published[0].URI)
	assert.Equal(t, uri.File("/repo/src/B.hs"), published[1].URI)
}

func TestControllerPublishPropagatesErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	ideGatewayMock := ideclientmock.NewMockGateway(ctrl)
	ideGatewayMock.EXPECT().PublishDiagnostics(gomock.Any(), gomock.Any()).
		Return(errors.New("gone"))

	c := &controller{
		ideGateway: ideGatewayMock,
		logger:     zap.NewNop().Sugar(),
		stats:      tally.NewTestScope("testing", make(map[string]string, 0)),
	}

	err := c.Publish(context.Background(), []entity.Diagnostic{
		{Severity: entity.SeverityError, File: "/repo/src/A.hs", Line: 1, Column: 1, Message: "boom"},
	})
	assert.Error(t, err)
}
