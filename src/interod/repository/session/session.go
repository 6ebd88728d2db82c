package session

import (
	"context"
	"sync"

	"github.com/gofrs/uuid"
	"github.com/hstools/interod/src/interod/entity"
	"github.com/hstools/interod/src/interod/internal/errors"
	"github.com/hstools/interod/src/interod/mapper"
	"github.com/hstools/interod/src/interod/model"
	tally "github.com/uber-go/tally/v4"
)

// Repository is an entity-scoped registry of worker sessions. It replaces
// ambient per-worker tables: every consumer receives the registry by handle,
// so multiple concurrent sessions stay testable.
type Repository interface {
	Get(context.Context, uuid.UUID) (*entity.Session, error)
	GetFromContext(ctx context.Context) (*entity.Session, error)
	// GetByProject returns the single session for a (kind, projectRoot) pair,
	// or nil when none exists.
	GetByProject(ctx context.Context, kind entity.WorkerKind, projectRoot string) (*entity.Session, error)
	// List returns all sessions, in no particular order.
	List(ctx context.Context) ([]*entity.Session, error)
	Set(context.Context, *entity.Session) error
	Delete(ctx context.Context, id uuid.UUID) error
	SessionCount(ctx context.Context) (int, error)
}

type repository struct {
	mu       sync.Mutex
	memstore map[uuid.UUID]*model.Session
	stats    tally.Scope
}

// New returns a repository to a key-value Session data store.
func New(stats tally.Scope) Repository {
	return &repository{
		memstore: make(map[uuid.UUID]*model.Session),
		stats:    stats,
	}
}

// Get returns the Session associated with the given id.
func (r *repository) Get(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.memstore[id]
	if !ok {
		return nil, &errors.UUIDNotFoundError{UUID: id}
	}
	return mapper.ModelToSession(s)
}

// GetFromContext returns the Session associated with the given context.
func (r *repository) GetFromContext(ctx context.Context) (*entity.Session, error) {
	id, err := mapper.ContextToSessionUUID(ctx)
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

// GetByProject returns the session bound to a project root, if any. At most
// one session exists per (kind, projectRoot) pair; Set enforces this.
func (r *repository) GetByProject(ctx context.Context, kind entity.WorkerKind, projectRoot string) (*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.memstore {
		if s.Kind == string(kind) && s.ProjectRoot == projectRoot {
			return mapper.ModelToSession(s)
		}
	}
	return nil, nil
}

// List returns all sessions.
func (r *repository) List(ctx context.Context) ([]*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessions := make([]*entity.Session, 0, len(r.memstore))
	for _, s := range r.memstore {
		converted, err := mapper.ModelToSession(s)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, converted)
	}
	return sessions, nil
}

// Set sets the Session to its associated uuid.
func (r *repository) Set(ctx context.Context, s *entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s == nil {
		return errors.New("can't save nil session")
	}
	for id, existing := range r.memstore {
		if id != s.UUID && existing.Kind == string(s.Kind) && existing.ProjectRoot == s.ProjectRoot {
			return errors.New("session already exists for this project root")
		}
	}
	r.memstore[s.UUID] = mapper.SessionToModel(s)
	r.stats.Gauge("active_sessions").Update(float64(len(r.memstore)))
	return nil
}

// Delete removes the Session associated with the given id.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.memstore, id)
	r.stats.Gauge("active_sessions").Update(float64(len(r.memstore)))
	return nil
}

// SessionCount returns the total count of active sessions.
func (r *repository) SessionCount(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.memstore), nil
}
