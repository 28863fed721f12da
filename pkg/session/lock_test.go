package session

import (
	"context"
	"fmt"
	"testing"

	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_LockLifecycle(t *testing.T) {
	mgr := NewManager(memory.NewStore())
	ctx := context.Background()

	for i := range 1000 {
		id := fmt.Sprintf("session-%d", i)
		require.NoError(t, mgr.Save(ctx, domain.NewSession(id, domain.Graph{}, domain.AlgorithmAccessible)))
		require.NoError(t, mgr.Delete(ctx, id))
	}

	mgr.mu.Lock()
	defer mgr.mu.Unlock()
	assert.Empty(t, mgr.locks, "lock entries must be released after use")
}
