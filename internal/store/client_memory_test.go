package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryContext_GetMissingKey(t *testing.T) {
	kv := NewOrigin().NewContext()

	_, err := kv.Get("marketsync:cart")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestMemoryContext_SetThenGet(t *testing.T) {
	kv := NewOrigin().NewContext()

	require.NoError(t, kv.Set("marketsync:cart", `{"version":1}`))

	got, err := kv.Get("marketsync:cart")
	require.NoError(t, err)
	assert.Equal(t, `{"version":1}`, got)
}

func TestMemoryContext_SetReplacesValue(t *testing.T) {
	kv := NewOrigin().NewContext()

	require.NoError(t, kv.Set("k", "first"))
	require.NoError(t, kv.Set("k", "second"))

	got, err := kv.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "second", got)
}

// TestMemoryContext_NotifiesOtherContextsOnly verifies the core cross-context
// contract: a write is delivered to subscribers in every other context, with
// the new value, and never to subscribers in the writing context itself.
func TestMemoryContext_NotifiesOtherContextsOnly(t *testing.T) {
	origin := NewOrigin()
	tabA := origin.NewContext()
	tabB := origin.NewContext()

	var gotA, gotB []string
	cancelA := tabA.Subscribe("k", func(v string) { gotA = append(gotA, v) })
	defer cancelA()
	cancelB := tabB.Subscribe("k", func(v string) { gotB = append(gotB, v) })
	defer cancelB()

	require.NoError(t, tabA.Set("k", "from-a"))

	assert.Empty(t, gotA, "writer must not observe its own write")
	assert.Equal(t, []string{"from-a"}, gotB)
}

func TestMemoryContext_SubscribeFiltersByKey(t *testing.T) {
	origin := NewOrigin()
	tabA := origin.NewContext()
	tabB := origin.NewContext()

	var got []string
	cancel := tabB.Subscribe("marketsync:wishlist", func(v string) { got = append(got, v) })
	defer cancel()

	require.NoError(t, tabA.Set("marketsync:cart", "cart-data"))
	require.NoError(t, tabA.Set("marketsync:wishlist", "wishlist-data"))

	assert.Equal(t, []string{"wishlist-data"}, got)
}

func TestMemoryContext_CancelStopsDelivery(t *testing.T) {
	origin := NewOrigin()
	tabA := origin.NewContext()
	tabB := origin.NewContext()

	var calls int
	cancel := tabB.Subscribe("k", func(string) { calls++ })

	require.NoError(t, tabA.Set("k", "one"))
	cancel()
	cancel() // safe to call twice
	require.NoError(t, tabA.Set("k", "two"))

	assert.Equal(t, 1, calls)
}

func TestMemoryContext_QuotaExceeded(t *testing.T) {
	origin := NewOriginWithQuota(10)
	kv := origin.NewContext()

	require.NoError(t, kv.Set("k", "0123456789"))
	err := kv.Set("other", "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrQuotaExceeded)

	// A rejected write leaves existing data intact.
	got, err := kv.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "0123456789", got)
}

func TestMemoryContext_QuotaAllowsReplacingOwnKey(t *testing.T) {
	origin := NewOriginWithQuota(10)
	kv := origin.NewContext()

	require.NoError(t, kv.Set("k", "0123456789"))
	// Replacing the same key is judged against the replacement size,
	// not the sum of old and new.
	require.NoError(t, kv.Set("k", "abcdefghij"))
}
