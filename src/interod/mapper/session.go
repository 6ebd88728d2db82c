package mapper

import (
	"context"

	"github.com/gofrs/uuid"
	"github.com/hstools/interod/src/interod/entity"
	"github.com/hstools/interod/src/interod/internal/errors"
	"github.com/hstools/interod/src/interod/model"
)

// SessionToModel maps a Session entity to its model equivalent.
func SessionToModel(s *entity.Session) *model.Session {
	return &model.Session{
		UUID:            s.UUID,
		Kind:            string(s.Kind),
		ProjectRoot:     s.ProjectRoot,
		State:           string(s.State),
		Mode:            string(s.Mode),
		ServicePort:     s.ServicePort,
		CompilerVersion: s.CompilerVersion,
		Extensions:      s.Extensions,
		ScratchDir:      s.ScratchDir,
		GaveUp:          s.GaveUp,
		Transcript:      s.Transcript,
	}
}

// ModelToSession maps a model Session to its entity equivalent.
func ModelToSession(s *model.Session) (*entity.Session, error) {
	return &entity.Session{
		UUID:            s.UUID,
		Kind:            entity.WorkerKind(s.Kind),
		ProjectRoot:     s.ProjectRoot,
		State:           entity.SessionState(s.State),
		Mode:            entity.StartMode(s.Mode),
		ServicePort:     s.ServicePort,
		CompilerVersion: s.CompilerVersion,
		Extensions:      s.Extensions,
		ScratchDir:      s.ScratchDir,
		GaveUp:          s.GaveUp,
		Transcript:      s.Transcript,
	}, nil
}

// ContextToSessionUUID extracts the session UUID from a request context.
func ContextToSessionUUID(c context.Context) (uuid.UUID, error) {
	s, ok := c.Value(entity.SessionContextKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, errors.NoUUIDInContextError
	}
	return s, nil
}
