package session

import (
	"context"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/hstools/interod/src/interod/entity"
	"github.com/hstools/interod/src/interod/factory"
	"github.com/hstools/interod/src/interod/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tally "github.com/uber-go/tally/v4"
)

func TestSessionRepository(t *testing.T) {
	testScope := tally.NewTestScope("testing", make(map[string]string, 0))
	t.Run("should Set and Get successfully", func(t *testing.T) {
		s := factory.SessionAbsent("/repo")
		repository := New(testScope)

		err := repository.Set(context.Background(), s)
		require.NoError(t, err)
		val, err := repository.Get(context.Background(), s.UUID)
		require.NoError(t, err)
		assert.Equal(t, s.UUID, val.UUID)
		assert.Equal(t, entity.StateAbsent, val.State)
	})

	t.Run("should fail to get something that was not Set", func(t *testing.T) {
		repository := New(testScope)

		id := uuid.Must(uuid.NewV4())
		_, err := repository.Get(context.Background(), id)
		require.Error(t, err)
		var nf *errors.UUIDNotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, id, nf.UUID)
	})

	t.Run("should reject a second session on the same project root", func(t *testing.T) {
		repository := New(testScope)
		ctx := context.Background()

		require.NoError(t, repository.Set(ctx, factory.SessionAbsent("/repo")))
		err := repository.Set(ctx, factory.SessionAbsent("/repo"))
		assert.Error(t, err)
	})

	t.Run("should update an existing session in place", func(t *testing.T) {
		repository := New(testScope)
		ctx := context.Background()

		s := factory.SessionAbsent("/repo")
		require.NoError(t, repository.Set(ctx, s))
		s.State = entity.StateReady
		s.ServicePort = 54321
		require.NoError(t, repository.Set(ctx, s))

		val, err := repository.Get(ctx, s.UUID)
		require.NoError(t, err)
		assert.Equal(t, entity.StateReady, val.State)
		assert.Equal(t, 54321, val.ServicePort)
	})
}

func TestGetFromContext(t *testing.T) {
	testScope := tally.NewTestScope("testing", make(map[string]string, 0))
	t.Run("should get when uuid is in context", func(t *testing.T) {
		s := factory.SessionReady("/repo")
		repository := New(testScope)
		ctx := context.WithValue(context.Background(), entity.SessionContextKey, s.UUID)
		err := repository.Set(ctx, s)
		require.NoError(t, err)
		val, err := repository.GetFromContext(ctx)
		assert.NoError(t, err)
		assert.Equal(t, s.UUID, val.UUID)
	})

	t.Run("should fail when uuid is missing from context", func(t *testing.T) {
		repository := New(testScope)

		_, err := repository.GetFromContext(context.Background())
		require.Error(t, err)
	})
}

func TestGetByProject(t *testing.T) {
	ctx := context.Background()
	testScope := tally.NewTestScope("testing", make(map[string]string, 0))
	repository := New(testScope)

	s := factory.SessionReady("/repo/a")
	require.NoError(t, repository.Set(ctx, s))

	found, err := repository.GetByProject(ctx, entity.WorkerKindIntero, "/repo/a")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, s.UUID, found.UUID)

	missing, err := repository.GetByProject(ctx, entity.WorkerKindIntero, "/repo/b")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	testScope := tally.NewTestScope("testing", make(map[string]string, 0))
	repository := New(testScope)

	session1 := factory.SessionReady("/repo/a")
	session2 := factory.SessionReady("/repo/b")

	repository.Set(ctx, session1)
	repository.Set(ctx, session2)

	// First deletion is successful. Multiple deletions return no error.
	assert.NoError(t, repository.Delete(ctx, session2.UUID))
	assert.NoError(t, repository.Delete(ctx, session2.UUID))
	_, err := repository.Get(ctx, session2.UUID)
	assert.Error(t, err)

	// Other session unaffected.
	result, err := repository.Get(ctx, session1.UUID)
	assert.NoError(t, err)
	assert.Equal(t, session1.UUID, result.UUID)
}

func TestList(t *testing.T) {
	ctx := context.Background()
	testScope := tally.NewTestScope("testing", make(map[string]string, 0))
	repository := New(testScope)

	session1 := factory.SessionReady("/repo/a")
	session2 := factory.SessionReady("/repo/b")
	repository.Set(ctx, session1)
	repository.Set(ctx, session2)

	sessions, err := repository.List(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	roots := []string{sessions[0].ProjectRoot, sessions[1].ProjectRoot}
	assert.ElementsMatch(t, []string{"/repo/a", "/repo/b"}, roots)
}

func TestSessionCount(t *testing.T) {
	ctx := context.Background()
	testScope := tally.NewTestScope("testing", make(map[string]string, 0))
	repository := New(testScope)

	repository.Set(ctx, factory.SessionReady("/repo/a"))
	repository.Set(ctx, factory.SessionReady("/repo/b"))

	count, err := repository.SessionCount(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 2, count)
}
