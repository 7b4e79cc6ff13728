package chord

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Config carries the inputs the core consumes. Everything outside this
// table (argument parsing, process bootstrapping, peer discovery) is
// an external collaborator the core never constructs.
type Config struct {
	// M is the hash length in bits; the ring holds 2^M identifiers.
	M uint
	// NodeKey is this node's immutable identifier; must fit M.
	NodeKey uint64
	// Addr is the address this node is reachable at, handed out to
	// peers as part of its RemoteNode identity.
	Addr string

	// FixInterval is the maintainer period. Defaults to 1s.
	FixInterval time.Duration
	// Retries is the retry harness bound. Defaults to M+1.
	Retries int

	// Hash is the KeyHash contract used for string-keyed operations.
	// Defaults to NewKeyHash().
	Hash KeyHash
	// Logger receives structured events. Defaults to a no-op logger.
	Logger zerolog.Logger
}

func (c *Config) setDefaults() {
	if c.FixInterval <= 0 {
		c.FixInterval = time.Second
	}
	if c.Retries <= 0 {
		c.Retries = int(c.M) + 1
	}
	if c.Hash == nil {
		c.Hash = NewKeyHash()
	}
}

// State is the per-node lifecycle summary, derived from hasLeft and
// the current successor/predecessor rather than stored redundantly.
type State int

const (
	StateSolo State = iota
	StateJoined
	StateDeparted
)

func (s State) String() string {
	switch s {
	case StateSolo:
		return "solo"
	case StateJoined:
		return "joined"
	case StateDeparted:
		return "departed"
	default:
		return "unknown"
	}
}

// Node is the Chord core state machine: request routing, join/leave,
// stabilization, finger fixing, backup forwarding, and the retry
// wrapper all hang off this type.
type Node struct {
	conf Config
	m    uint
	key  uint64

	fingers *fingerTable

	predMu sync.RWMutex
	pred   RemoteNode

	store LocalStore

	hasLeft   int32 // atomic bool
	maintMu   sync.Mutex
	stopMaint chan struct{}
	maintDone chan struct{}

	transport Transport

	log zerolog.Logger
}

// SetTransport wires the collaborator that turns a bare address into a
// callable RemoteNode. Required before any inbound RPC that carries a
// peer address (CheckPredecessor's candidate) can be resolved; Join
// itself only calls through the bootstrap handle it is given.
func (n *Node) SetTransport(t Transport) {
	n.transport = t
}

// resolvePeer turns a wire-carried (key, addr) pair into a RemoteNode,
// preferring the transport's pooled dial so repeated resolutions of
// the same peer reuse one connection.
func (n *Node) resolvePeer(key uint64, addr string) RemoteNode {
	if addr == "" {
		return nil
	}
	if addr == n.Addr() {
		return n
	}
	if n.transport == nil {
		return nil
	}
	peer, err := n.transport.Dial(addr)
	if err != nil {
		n.log.Warn().Err(err).Str("addr", addr).Msg("failed to resolve peer")
		return nil
	}
	return peer
}

// New constructs a Node per conf. It fails if nodeKey exceeds the
// configured keyspace.
func New(conf Config) (*Node, error) {
	conf.setDefaults()
	if conf.M == 0 || conf.M > 63 {
		return nil, xerrorsInvalidf("m must be in [1, 63], got %d", conf.M)
	}
	if conf.NodeKey >= (uint64(1) << conf.M) {
		return nil, xerrorsInvalidf("nodeKey %d exceeds keyspace 2^%d", conf.NodeKey, conf.M)
	}

	n := &Node{
		conf:    conf,
		m:       conf.M,
		key:     conf.NodeKey,
		fingers: newFingerTable(conf.M, conf.NodeKey),
		store:   NewLocalStore(),
		log:     conf.Logger.With().Uint64("node_key", conf.NodeKey).Logger(),
	}
	return n, nil
}

// NodeKey implements RemoteNode. It is a pure local read for self, but
// keeps the (ctx, error) shape so a dead remote peer surfaces the same
// way any other RemoteNode call does.
func (n *Node) NodeKey(ctx context.Context) (uint64, error) {
	if n.hasDeparted() {
		return 0, ErrNodeDeparted
	}
	return n.key, nil
}

// HashLength implements RemoteNode.
func (n *Node) HashLength(ctx context.Context) (uint, error) {
	if n.hasDeparted() {
		return 0, ErrNodeDeparted
	}
	return n.m, nil
}

// Addr implements RemoteNode.
func (n *Node) Addr() string { return n.conf.Addr }

func (n *Node) keyspace() uint64 {
	return uint64(1) << n.m
}

func (n *Node) hasDeparted() bool {
	return atomic.LoadInt32(&n.hasLeft) == 1
}

// State reports the current lifecycle state.
func (n *Node) State() State {
	if n.hasDeparted() {
		return StateDeparted
	}
	succ := n.fingers.successor().Node
	n.predMu.RLock()
	pred := n.pred
	n.predMu.RUnlock()
	if (succ == nil || sameNode(succ, n)) && pred == nil {
		return StateSolo
	}
	return StateJoined
}

// Successor returns the current successor finger.
func (n *Node) Successor() RemoteNode {
	return n.fingers.successor().Node
}

func (n *Node) setSuccessor(r RemoteNode) {
	n.fingers.setSuccessor(r)
}

func (n *Node) setPredecessor(r RemoteNode) {
	n.predMu.Lock()
	n.pred = r
	n.predMu.Unlock()
}

// Join attaches this node to the ring through bootstrap, or forms a
// new ring of one if bootstrap is nil.
func (n *Node) Join(ctx context.Context, bootstrap RemoteNode) error {
	if n.hasDeparted() {
		return ErrNodeDeparted
	}

	if bootstrap == nil {
		n.setSuccessor(n)
		n.log.Info().Msg("ring is empty; set successor to self")
	} else {
		succ, err := bootstrap.FindSuccessor(ctx, n.key)
		if err != nil {
			return xerrorsWrapTransient(err)
		}
		n.setSuccessor(succ)
		if err := succ.CheckPredecessor(ctx, n); err != nil {
			n.log.Warn().Err(err).Msg("volunteering as predecessor failed; stabilization will retry")
		}
		n.log.Info().Str("successor", succ.Addr()).Msg("joined ring")
	}

	n.startMaintainer()
	return nil
}

// Leave sets has-left and interrupts the background maintainer.
// Subsequent remote calls fail with ErrNodeDeparted.
func (n *Node) Leave() error {
	if !atomic.CompareAndSwapInt32(&n.hasLeft, 0, 1) {
		return nil // already departed; monotonic
	}
	n.log.Info().Msg("left network")
	n.stopMaintainer()
	return nil
}
