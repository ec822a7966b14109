package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	lines, err := s.Get(ctx, "sid-1")
	require.NoError(t, err)
	require.Empty(t, lines)

	saved := []Line{
		{ID: "a", ItemType: "other", OtherFidgetID: 3, Quantity: 2},
		{ID: "b", ItemType: "prebuilt", PrebuiltFidgetID: 7, Quantity: 1},
	}
	require.NoError(t, s.Save(ctx, "sid-1", saved))

	lines, err = s.Get(ctx, "sid-1")
	require.NoError(t, err)
	require.Equal(t, saved, lines)

	// Sessions are isolated.
	lines, err = s.Get(ctx, "sid-2")
	require.NoError(t, err)
	require.Empty(t, lines)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "sid", []Line{{ID: "a", Quantity: 1}}))

	lines, err := s.Get(ctx, "sid")
	require.NoError(t, err)
	lines[0].Quantity = 99

	again, err := s.Get(ctx, "sid")
	require.NoError(t, err)
	require.Equal(t, 1, again[0].Quantity, "mutating a read result must not touch the store")
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "sid", []Line{{ID: "a", Quantity: 1}}))
	require.NoError(t, s.Delete(ctx, "sid"))

	lines, err := s.Get(ctx, "sid")
	require.NoError(t, err)
	require.Empty(t, lines)

	// Deleting an absent cart is a no-op.
	require.NoError(t, s.Delete(ctx, "ghost"))
}
