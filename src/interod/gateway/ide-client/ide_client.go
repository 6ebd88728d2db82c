// Package notifier sends outbound notifications to connected editor clients.
package notifier

import (
	"context"
	"fmt"
	"sync"

	"github.com/gofrs/uuid"
	"github.com/hstools/interod/src/interod/mapper"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"
)

const _errSendToClient = "sending notification to editor: %w"

// Gateway is used to send outbound notifications to the editor.
// All calls should include a context with a session UUID, which routes the
// notification to the correct editor connection.
type Gateway interface {
	// RegisterClient registers a new client with the gateway. Should be called each time a new editor connection is initialized.
	RegisterClient(ctx context.Context, id uuid.UUID, conn *jsonrpc2.Conn) error
	// DeregisterClient removes a client from the gateway. Should be called each time an editor connection is closed.
	DeregisterClient(ctx context.Context, id uuid.UUID) error

	PublishDiagnostics(ctx context.Context, params *protocol.PublishDiagnosticsParams) (err error)
	LogMessage(ctx context.Context, params *protocol.LogMessageParams) (err error)
	ShowMessage(ctx context.Context, params *protocol.ShowMessageParams) (err error)
}

type gateway struct {
	clients   map[uuid.UUID]protocol.Client
	clientsMu sync.Mutex
	logger    *zap.Logger
}

// New returns a Gateway for sending editor notifications.
func New(logger *zap.Logger) Gateway {
	return &gateway{
		clients: make(map[uuid.UUID]protocol.Client),
		logger:  logger,
	}
}

func (g *gateway) RegisterClient(ctx context.Context, id uuid.UUID, conn *jsonrpc2.Conn) error {
	g.clientsMu.Lock()
	defer g.clientsMu.Unlock()

	g.clients[id] = protocol.ClientDispatcher(*conn, g.logger)
	return nil
}

func (g *gateway) DeregisterClient(ctx context.Context, id uuid.UUID) error {
	g.clientsMu.Lock()
	defer g.clientsMu.Unlock()

	delete(g.clients, id)
	return nil
}

func (g *gateway) PublishDiagnostics(ctx context.Context, params *protocol.PublishDiagnosticsParams) error {
	client, err := g.clientFromContext(ctx)
	if err != nil {
		return err
	}
	if err := client.PublishDiagnostics(ctx, params); err != nil {
		return fmt.Errorf(_errSendToClient, err)
	}
	return nil
}

func (g *gateway) LogMessage(ctx context.Context, params *protocol.LogMessageParams) error {
	client, err := g.clientFromContext(ctx)
	if err != nil {
		return err
	}
	if err := client.LogMessage(ctx, params); err != nil {
		return fmt.Errorf(_errSendToClient, err)
	}
	return nil
}

func (g *gateway) ShowMessage(ctx context.Context, params *protocol.ShowMessageParams) error {
	client, err := g.clientFromContext(ctx)
	if err != nil {
		return err
	}
	if err := client.ShowMessage(ctx, params); err != nil {
		return fmt.Errorf(_errSendToClient, err)
	}
	return nil
}

// clientFromContext resolves the registered client for the session UUID on
// the context.
func (g *gateway) clientFromContext(ctx context.Context) (protocol.Client, error) {
	id, err := mapper.ContextToSessionUUID(ctx)
	if err != nil {
		return nil, err
	}

	g.clientsMu.Lock()
	defer g.clientsMu.Unlock()
	client, ok := g.clients[id]
	if !ok {
		return nil, fmt.Errorf("no registered editor client for session %s", id)
	}
	return client, nil
}
