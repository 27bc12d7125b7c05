package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tripsure/internal/models/db_models"
)

func TestMemoryStoreCreatesSessionOnFirstRead(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	session, err := store.GetOrCreateSession("s1", ctx)
	require.NoError(t, err)
	assert.Equal(t, "s1", session.ID)
	assert.Equal(t, db_models.StageInitial, session.Stage)
	assert.Nil(t, session.LastQuestionKey)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	session, err := store.GetOrCreateSession("s1", ctx)
	require.NoError(t, err)

	// Mutating the returned value must not leak into the store.
	session.Stage = "mangled"
	session.Payload = []byte("junk")

	fresh, err := store.GetOrCreateSession("s1", ctx)
	require.NoError(t, err)
	assert.Equal(t, db_models.StageInitial, fresh.Stage)
	assert.Empty(t, fresh.Payload)
}

func TestMemoryStoreRoundTripsState(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	_, err := store.GetOrCreateSession("s1", ctx)
	require.NoError(t, err)

	require.NoError(t, store.SavePayload("s1", []byte(`{"a":1}`), ctx))
	key := "travel/policy_type"
	require.NoError(t, store.UpdateLastQuestionKey("s1", &key, ctx))
	require.NoError(t, store.SetStage("s1", db_models.StagePayloadCollection, ctx))
	require.NoError(t, store.AppendHistory("s1", "hi", "welcome", ctx))

	session, err := store.GetOrCreateSession("s1", ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(session.Payload))
	require.NotNil(t, session.LastQuestionKey)
	assert.Equal(t, key, *session.LastQuestionKey)
	assert.Equal(t, db_models.StagePayloadCollection, session.Stage)
	assert.Equal(t, []string{"user: hi", "bot: welcome"}, []string(session.History))
}

func TestMemoryStoreReset(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	_, err := store.GetOrCreateSession("s1", ctx)
	require.NoError(t, err)
	require.NoError(t, store.SavePayload("s1", []byte(`{"a":1}`), ctx))
	require.NoError(t, store.SetStage("s1", db_models.StageQuoteGeneration, ctx))

	require.NoError(t, store.ResetSession("s1", ctx))

	session, err := store.GetOrCreateSession("s1", ctx)
	require.NoError(t, err)
	assert.Empty(t, session.Payload)
	assert.Nil(t, session.LastQuestionKey)
	assert.Equal(t, db_models.StageInitial, session.Stage)
	assert.Empty(t, session.History)
}
