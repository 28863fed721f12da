package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractGraph() domain.Graph {
	return domain.Graph{
		Nodes: []domain.Node{
			{ID: "S0", IsInitial: true},
			{ID: "S1", IsFinal: true},
		},
		Edges: []domain.Edge{
			{ID: "eS0-S1", Source: "S0", Target: "S1", Label: "a, b"},
		},
	}
}

// RunSessionStoreContract runs a suite of tests to verify that a SessionStore implementation
// adheres to the defined interface contract.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		session := domain.NewSession(sessionID, contractGraph(), domain.AlgorithmCoAccessible)
		session.Cursor = 3
		session.Pruned = true
		session.Active = session.Active.Restrict([]string{"S1"})

		err := store.Save(ctx, session)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, session.ID, loaded.ID)
		assert.Equal(t, session.Original, loaded.Original)
		assert.Equal(t, session.Active.Nodes, loaded.Active.Nodes)
		assert.Empty(t, loaded.Active.Edges)
		assert.Equal(t, domain.AlgorithmCoAccessible, loaded.Algorithm)
		assert.Equal(t, 3, loaded.Cursor)
		assert.True(t, loaded.Pruned)
	})

	t.Run("Isolation", func(t *testing.T) {
		session := domain.NewSession(sessionID, contractGraph(), domain.AlgorithmAccessible)
		require.NoError(t, store.Save(ctx, session))

		session.Original.Nodes[0].ID = "mutated"
		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, "S0", loaded.Original.Nodes[0].ID)

		loaded.Active.Nodes[0].ID = "mutated"
		again, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, "S0", again.Active.Nodes[0].ID)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, domain.NewSession(sessionID, contractGraph(), domain.AlgorithmAccessible))
		require.NoError(t, err)

		err = store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, domain.NewSession(id1, contractGraph(), domain.AlgorithmAccessible))
		_ = store.Save(ctx, domain.NewSession(id2, contractGraph(), domain.AlgorithmAccessible))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
