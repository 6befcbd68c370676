package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-registry/internal/storage"
	"github.com/aanand-mishra/student-registry/internal/types"
)

var _ storage.Storage = (*Store)(nil)
var _ storage.Seeder = (*Store)(nil)

func TestReadAllReturnsCopy(t *testing.T) {
	s := New(storage.DefaultSeed()...)
	ctx := context.Background()

	got, err := s.ReadAll(ctx)
	require.NoError(t, err)
	got[0].FullName = "mutated"

	again, err := s.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, storage.DefaultSeed(), again)
}

func TestSeedOnlyOnce(t *testing.T) {
	s := New()
	ctx := context.Background()

	wrote, err := s.Seed(ctx, storage.DefaultSeed())
	require.NoError(t, err)
	assert.True(t, wrote)

	require.NoError(t, s.WriteAll(ctx, []types.Student{}))
	wrote, err = s.Seed(ctx, storage.DefaultSeed())
	require.NoError(t, err)
	assert.False(t, wrote)
	assert.Equal(t, 2, s.Writes)
}
