package mapper

import (
	"context"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/hstools/interod/src/interod/entity"
	"github.com/hstools/interod/src/interod/factory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionModelRoundTrip(t *testing.T) {
	s := &entity.Session{
		UUID:            factory.UUID(),
		Kind:            entity.WorkerKindIntero,
		ProjectRoot:     "/home/dev/project",
		State:           entity.StateReady,
		Mode:            entity.ModeBuild,
		ServicePort:     54321,
		CompilerVersion: "8.10.7",
		Extensions:      []string{"LambdaCase", "OverloadedStrings"},
		ScratchDir:      "/tmp/interod-scratch",
		Transcript:      "ok, modules loaded",
	}

	m := SessionToModel(s)
	back, err := ModelToSession(m)
	require.NoError(t, err)
	assert.Equal(t, s, back)
}

func TestContextToSessionUUID(t *testing.T) {
	id := factory.UUID()
	ctx := context.WithValue(context.Background(), entity.SessionContextKey, id)

	got, err := ContextToSessionUUID(ctx)
	assert.NoError(t, err)
	assert.Equal(t, id, got)

	got, err = ContextToSessionUUID(context.Background())
	assert.Error(t, err)
	assert.Equal(t, uuid.Nil, got)
}
