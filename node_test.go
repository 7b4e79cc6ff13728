package chord

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidatesConfig(t *testing.T) {
	t.Run("m zero rejected", func(t *testing.T) {
		_, err := New(Config{M: 0, NodeKey: 0, Addr: "a"})
		assert.Error(t, err)
	})

	t.Run("m too large rejected", func(t *testing.T) {
		_, err := New(Config{M: 64, NodeKey: 0, Addr: "a"})
		assert.Error(t, err)
	})

	t.Run("nodeKey exceeding keyspace rejected", func(t *testing.T) {
		_, err := New(Config{M: 4, NodeKey: 16, Addr: "a"})
		assert.Error(t, err)
	})

	t.Run("valid config accepted", func(t *testing.T) {
		n, err := New(Config{M: 8, NodeKey: 200, Addr: "a"})
		require.NoError(t, err)
		require.NotNil(t, n)
	})
}

func TestSoloNodeLifecycle(t *testing.T) {
	ctx := context.Background()
	n := newTestNode(t, 8, 10, "solo")
	defer n.Leave()

	require.NoError(t, n.Join(ctx, nil))
	assert.Equal(t, StateSolo, n.State())

	succ := n.Successor()
	require.NotNil(t, succ)
	assert.Equal(t, n.Addr(), succ.Addr())
}

func TestSoloNodeGetPutDelete(t *testing.T) {
	ctx := context.Background()
	n := newTestNode(t, 8, 10, "solo")
	defer n.Leave()
	require.NoError(t, n.Join(ctx, nil))

	_, found, err := n.GetByKey(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, n.PutByKey(ctx, "k", []byte("v")))
	value, found, err := n.GetByKey(ctx, "k")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []byte("v"), value)

	require.NoError(t, n.DeleteByKey(ctx, "k"))
	_, found, err = n.GetByKey(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetPutDeleteRejectOutOfBoundsID(t *testing.T) {
	ctx := context.Background()
	n := newTestNode(t, 4, 0, "solo") // keyspace 16
	defer n.Leave()
	require.NoError(t, n.Join(ctx, nil))

	_, _, err := n.Get(ctx, 16)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	err = n.Put(ctx, 16, []byte("x"))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	err = n.Delete(ctx, 16)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

// TestTwoNodeJoinAndStabilize wires two in-process Nodes directly via
// the RemoteNode interface (each *Node implements it) and drives
// stabilize manually rather than waiting on the maintainer ticker, to
// keep the scenario deterministic.
func TestTwoNodeJoinAndStabilize(t *testing.T) {
	ctx := context.Background()
	a := newTestNode(t, 8, 10, "A")
	b := newTestNode(t, 8, 20, "B")
	defer a.Leave()
	defer b.Leave()

	require.NoError(t, a.Join(ctx, nil))
	require.NoError(t, b.Join(ctx, a))

	assert.Equal(t, a.Addr(), b.Successor().Addr(), "B's successor should resolve to A in a 2-node ring")

	// Drive stabilization by hand until the ring settles, rather than
	// sleeping for the background ticker.
	for i := 0; i < 5; i++ {
		a.stabilize(ctx)
		b.stabilize(ctx)
	}

	assert.Equal(t, b.Addr(), a.Successor().Addr(), "A's successor should adopt B once stabilize runs")
	pred := a.predecessorLocal()
	require.NotNil(t, pred)
	assert.Equal(t, b.Addr(), pred.Addr())
}

func TestRoutedPutIsVisibleFromEitherNode(t *testing.T) {
	ctx := context.Background()
	a := newTestNode(t, 8, 10, "A")
	b := newTestNode(t, 8, 20, "B")
	defer a.Leave()
	defer b.Leave()

	require.NoError(t, a.Join(ctx, nil))
	require.NoError(t, b.Join(ctx, a))
	for i := 0; i < 5; i++ {
		a.stabilize(ctx)
		b.stabilize(ctx)
	}

	require.NoError(t, a.PutByKey(ctx, "shared-key", []byte("payload")))

	v1, found1, err := a.GetByKey(ctx, "shared-key")
	require.NoError(t, err)
	v2, found2, err := b.GetByKey(ctx, "shared-key")
	require.NoError(t, err)

	assert.True(t, found1)
	assert.True(t, found2)
	assert.Equal(t, v1, v2)
}

func TestLeaveIsMonotonicAndDeparted(t *testing.T) {
	ctx := context.Background()
	n := newTestNode(t, 8, 10, "solo")
	require.NoError(t, n.Join(ctx, nil))

	require.NoError(t, n.Leave())
	assert.Equal(t, StateDeparted, n.State())

	_, err := n.NodeKey(ctx)
	assert.ErrorIs(t, err, ErrNodeDeparted)

	assert.NoError(t, n.Leave(), "leaving twice must be a no-op, not an error")
}

func TestRetryExhaustionSurfacesNetworkHosed(t *testing.T) {
	ctx := context.Background()
	n := newTestNode(t, 4, 0, "solo")
	n.conf.Retries = 3
	n.conf.FixInterval = time.Millisecond
	require.NoError(t, n.Join(ctx, nil))
	defer n.Leave()

	attempts := 0
	err := n.retry(ctx, func(ctx context.Context) error {
		attempts++
		return ErrTransientPeerFailure
	})

	require.Error(t, err)
	var hosed *NetworkHosedError
	require.True(t, errors.As(err, &hosed), "exhausted retries must surface NetworkHosedError, got %T: %v", err, err)
	assert.Equal(t, 3, hosed.Attempts)
	assert.Equal(t, 3, attempts, "op should run exactly Retries times")
}

func TestRetryStopsImmediatelyOnNonTransientError(t *testing.T) {
	ctx := context.Background()
	n := newTestNode(t, 4, 0, "solo")
	require.NoError(t, n.Join(ctx, nil))
	defer n.Leave()

	attempts := 0
	err := n.retry(ctx, func(ctx context.Context) error {
		attempts++
		return ErrInvalidArgument
	})

	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, 1, attempts, "a non-transient error must not be retried")
}
