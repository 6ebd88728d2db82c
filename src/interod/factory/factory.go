package factory

import (
	"github.com/gofrs/uuid"
	"github.com/hstools/interod/src/interod/entity"
)

// UUID is a user-defined factory for a random uuid.UUID.
func UUID() uuid.UUID {
	return uuid.Must(uuid.NewV4())
}

// SessionReady is a factory for a session in the Ready state with a service
// port assigned.
func SessionReady(projectRoot string) *entity.Session {
	return &entity.Session{
		UUID:        UUID(),
		Kind:        entity.WorkerKindIntero,
		ProjectRoot: projectRoot,
		State:       entity.StateReady,
		Mode:        entity.ModeFast,
		ServicePort: 49152,
	}
}

// SessionAbsent is a factory for a freshly created session with no process.
func SessionAbsent(projectRoot string) *entity.Session {
	return &entity.Session{
		UUID:        UUID(),
		Kind:        entity.WorkerKindIntero,
		ProjectRoot: projectRoot,
		State:       entity.StateAbsent,
		Mode:        entity.ModeFast,
	}
}
