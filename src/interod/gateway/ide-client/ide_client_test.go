package notifier

import (
	"context"
	"testing"

	"github.com/hstools/interod/src/interod/entity"
	"github.com/hstools/interod/src/interod/factory"
	"github.com/stretchr/testify/assert"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	assert.NotNil(t, New(zap.NewNop()))
}

func TestDeregisterClient(t *testing.T) {
	g := New(zap.NewNop())
	id := factory.UUID()

	// Deregistering an unknown client is a no-op.
	assert.NoError(t, g.DeregisterClient(context.Background(), id))
}

func TestNotifyWithoutClient(t *testing.T) {
	g := New(zap.NewNop())
	ctx := context.WithValue(context.Background(), entity.SessionContextKey, factory.UUID())

	err := g.PublishDiagnostics(ctx, &protocol.PublishDiagnosticsParams{})
	assert.ErrorContains(t, err, "no registered editor client")

	err = g.LogMessage(ctx, &protocol.LogMessageParams{Message: "hello"})
	assert.ErrorContains(t, err, "no registered editor client")

	err = g.ShowMessage(ctx, &protocol.ShowMessageParams{Message: "hello"})
	assert.ErrorContains(t, err, "no registered editor client")
}

func TestNotifyWithoutSessionUUID(t *testing.T) {
	g := New(zap.NewNop())

	err := g.PublishDiagnostics(context.Background(), &protocol.PublishDiagnosticsParams{})
	assert.Error(t, err)
}
