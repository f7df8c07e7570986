package stockroom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

func TestNewStore(t *testing.T) {
	s, err := NewStore(types.BackendSQLite)
	require.NoError(t, err)
	require.NoError(t, s.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	defer s.Detach()

	snap, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, snap.Items)

	_, err = NewStore("csv")
	assert.ErrorIs(t, err, types.ErrBackendUnknown)
}
