package chord

import (
	"context"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/chordkv/chord/internal"
	"google.golang.org/grpc"
)

// Transport starts and stops the network side of a Node and resolves
// other addresses into RemoteNode handles. A Node never dials or
// listens itself; that is this collaborator's job.
type Transport interface {
	Start() error
	Stop() error
	// Dial resolves addr into a RemoteNode, reusing a pooled
	// connection when one is already open.
	Dial(addr string) (RemoteNode, error)
}

// GrpcTransport is the gRPC-backed Transport: it runs the inbound
// server for one local Node and keeps a pool of outbound client
// connections to peers, idle connections reaped on a timer.
type GrpcTransport struct {
	local *Node

	timeout time.Duration
	maxIdle time.Duration

	sock net.Listener
	server *grpc.Server

	pool    map[string]*grpcConn
	poolMtx sync.RWMutex

	shutdown int32
}

type grpcConn struct {
	addr       string
	client     internal.ChordClient
	conn       *grpc.ClientConn
	lastActive time.Time
}

func (gc *grpcConn) Close() {
	gc.conn.Close()
}

// Dial wraps grpc.Dial with the blocking, fail-fast settings a
// connection-pooled transport wants: a dead peer must surface quickly
// so the retry harness can treat it as transient rather than hang.
func Dial(addr string, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	dialCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return grpc.DialContext(dialCtx, addr, append(opts,
		grpc.WithBlock(),
		grpc.WithInsecure(),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(internal.CodecName)),
	)...)
}

// NewGrpcTransport binds a listener for local and prepares its
// outbound connection pool. Call Start to begin serving.
func NewGrpcTransport(local *Node, timeout, maxIdle time.Duration) (*GrpcTransport, error) {
	listener, err := net.Listen("tcp", local.Addr())
	if err != nil {
		return nil, err
	}

	gt := &GrpcTransport{
		local:   local,
		sock:    listener,
		timeout: timeout,
		maxIdle: maxIdle,
		pool:    make(map[string]*grpcConn),
	}
	gt.server = grpc.NewServer()
	internal.RegisterChordServer(gt.server, &nodeServer{n: local})
	local.SetTransport(gt)
	return gt, nil
}

// Start begins serving inbound RPCs and reaping idle outbound
// connections.
func (gt *GrpcTransport) Start() error {
	go gt.listen()
	go gt.reapOld()
	return nil
}

// Stop shuts the server down and closes every pooled connection.
func (gt *GrpcTransport) Stop() error {
	if !atomic.CompareAndSwapInt32(&gt.shutdown, 0, 1) {
		return nil
	}

	gt.poolMtx.Lock()
	defer gt.poolMtx.Unlock()

	gt.server.Stop()
	for _, c := range gt.pool {
		c.Close()
	}
	gt.pool = nil
	return nil
}

func (gt *GrpcTransport) listen() {
	gt.server.Serve(gt.sock)
}

func (gt *GrpcTransport) reapOld() {
	ticker := time.NewTicker(60 * time.Second)
	defer ticker.Stop()
	for range ticker.C {
		if atomic.LoadInt32(&gt.shutdown) == 1 {
			return
		}
		gt.reap()
	}
}

func (gt *GrpcTransport) reap() {
	gt.poolMtx.Lock()
	defer gt.poolMtx.Unlock()
	for addr, c := range gt.pool {
		if time.Since(c.lastActive) > gt.maxIdle {
			c.Close()
			delete(gt.pool, addr)
		}
	}
}

func (gt *GrpcTransport) getConn(addr string) (internal.ChordClient, error) {
	gt.poolMtx.RLock()
	if atomic.LoadInt32(&gt.shutdown) == 1 {
		gt.poolMtx.RUnlock()
		return nil, fmt.Errorf("chord: transport is shut down")
	}
	c, ok := gt.pool[addr]
	gt.poolMtx.RUnlock()
	if ok {
		c.lastActive = time.Now()
		return c.client, nil
	}

	conn, err := Dial(addr)
	if err != nil {
		return nil, err
	}
	client := internal.NewChordClient(conn)

	gt.poolMtx.Lock()
	if gt.pool == nil {
		gt.poolMtx.Unlock()
		conn.Close()
		return nil, fmt.Errorf("chord: transport is shut down")
	}
	gt.pool[addr] = &grpcConn{addr: addr, client: client, conn: conn, lastActive: time.Now()}
	gt.poolMtx.Unlock()

	return client, nil
}

// Dial implements Transport: resolve addr to a RemoteNode that routes
// every call through this transport's connection pool.
func (gt *GrpcTransport) Dial(addr string) (RemoteNode, error) {
	if addr == gt.local.Addr() {
		return gt.local, nil
	}
	if _, err := gt.getConn(addr); err != nil {
		return nil, err
	}
	return &grpcRemoteNode{addr: addr, transport: gt}, nil
}

// grpcRemoteNode is the client-side RemoteNode: a thin address handle
// that resolves its client from the transport's pool on every call, so
// a connection drop and later reconnect is transparent to routing.
type grpcRemoteNode struct {
	addr      string
	transport *GrpcTransport
}

func (r *grpcRemoteNode) Addr() string { return r.addr }

func (r *grpcRemoteNode) client() (internal.ChordClient, error) {
	return r.transport.getConn(r.addr)
}

// withTimeout applies the transport's per-call timeout when ctx
// carries no deadline of its own, so a caller that forgets to bound
// its context still gets a bounded RPC.
func (r *grpcRemoteNode) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok || r.transport.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.transport.timeout)
}

func (r *grpcRemoteNode) resolve(ref *internal.NodeRef) RemoteNode {
	if ref == nil || ref.Addr == "" {
		return nil
	}
	if ref.Addr == r.transport.local.Addr() {
		return r.transport.local
	}
	return &grpcRemoteNode{addr: ref.Addr, transport: r.transport}
}

func (r *grpcRemoteNode) NodeKey(ctx context.Context) (uint64, error) {
	c, err := r.client()
	if err != nil {
		return 0, xerrorsWrapTransient(err)
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	reply, err := c.GetNodeKey(ctx, &internal.Empty{})
	if err != nil {
		return 0, xerrorsWrapTransient(err)
	}
	return reply.Key, nil
}

func (r *grpcRemoteNode) HashLength(ctx context.Context) (uint, error) {
	c, err := r.client()
	if err != nil {
		return 0, xerrorsWrapTransient(err)
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	reply, err := c.GetHashLength(ctx, &internal.Empty{})
	if err != nil {
		return 0, xerrorsWrapTransient(err)
	}
	return uint(reply.M), nil
}

func (r *grpcRemoteNode) FindSuccessor(ctx context.Context, id uint64) (RemoteNode, error) {
	c, err := r.client()
	if err != nil {
		return nil, xerrorsWrapTransient(err)
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	ref, err := c.FindSuccessor(ctx, &internal.IDArg{Id: id})
	if err != nil {
		return nil, xerrorsWrapTransient(err)
	}
	return r.resolve(ref), nil
}

func (r *grpcRemoteNode) Predecessor(ctx context.Context) (RemoteNode, error) {
	c, err := r.client()
	if err != nil {
		return nil, xerrorsWrapTransient(err)
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	reply, err := c.GetPredecessor(ctx, &internal.Empty{})
	if err != nil {
		return nil, xerrorsWrapTransient(err)
	}
	if !reply.Has {
		return nil, nil
	}
	return r.resolve(&reply.Node), nil
}

func (r *grpcRemoteNode) CheckPredecessor(ctx context.Context, candidate RemoteNode) error {
	c, err := r.client()
	if err != nil {
		return xerrorsWrapTransient(err)
	}
	candKey, err := candidate.NodeKey(ctx)
	if err != nil {
		return xerrorsWrapTransient(err)
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err = c.CheckPredecessor(ctx, &internal.CheckPredecessorArg{
		Candidate: internal.NodeRef{Key: candKey, Addr: candidate.Addr()},
	})
	return xerrorsWrapTransient(err)
}

func (r *grpcRemoteNode) Get(ctx context.Context, id uint64) ([]byte, bool, error) {
	c, err := r.client()
	if err != nil {
		return nil, false, xerrorsWrapTransient(err)
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	reply, err := c.Get(ctx, &internal.IDArg{Id: id})
	if err != nil {
		return nil, false, xerrorsWrapTransient(err)
	}
	return reply.Value, reply.Found, nil
}

func (r *grpcRemoteNode) Put(ctx context.Context, id uint64, value []byte) error {
	c, err := r.client()
	if err != nil {
		return xerrorsWrapTransient(err)
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err = c.Put(ctx, &internal.PutArg{Id: id, Value: value})
	return xerrorsWrapTransient(err)
}

func (r *grpcRemoteNode) Delete(ctx context.Context, id uint64) error {
	c, err := r.client()
	if err != nil {
		return xerrorsWrapTransient(err)
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err = c.Delete(ctx, &internal.IDArg{Id: id})
	return xerrorsWrapTransient(err)
}

func (r *grpcRemoteNode) PutBackup(ctx context.Context, id uint64, value []byte) error {
	c, err := r.client()
	if err != nil {
		return xerrorsWrapTransient(err)
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err = c.PutBackup(ctx, &internal.PutArg{Id: id, Value: value})
	return xerrorsWrapTransient(err)
}

func (r *grpcRemoteNode) RemoveBackup(ctx context.Context, id uint64) error {
	c, err := r.client()
	if err != nil {
		return xerrorsWrapTransient(err)
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err = c.RemoveBackup(ctx, &internal.IDArg{Id: id})
	return xerrorsWrapTransient(err)
}

// nodeServer adapts *Node to internal.ChordServer, translating
// between domain types and wire messages for every inbound RPC.
type nodeServer struct {
	n *Node
}

func (s *nodeServer) GetNodeKey(ctx context.Context, _ *internal.Empty) (*internal.NodeKeyReply, error) {
	key, err := s.n.NodeKey(ctx)
	if err != nil {
		return nil, err
	}
	return &internal.NodeKeyReply{Key: key}, nil
}

func (s *nodeServer) GetHashLength(ctx context.Context, _ *internal.Empty) (*internal.HashLengthReply, error) {
	m, err := s.n.HashLength(ctx)
	if err != nil {
		return nil, err
	}
	return &internal.HashLengthReply{M: uint32(m)}, nil
}

func (s *nodeServer) FindSuccessor(ctx context.Context, in *internal.IDArg) (*internal.NodeRef, error) {
	succ, err := s.n.FindSuccessor(ctx, in.Id)
	if err != nil {
		return nil, err
	}
	key, err := succ.NodeKey(ctx)
	if err != nil {
		return nil, err
	}
	return &internal.NodeRef{Key: key, Addr: succ.Addr()}, nil
}

func (s *nodeServer) GetPredecessor(ctx context.Context, _ *internal.Empty) (*internal.PredecessorReply, error) {
	pred, err := s.n.Predecessor(ctx)
	if err != nil {
		return nil, err
	}
	if pred == nil {
		return &internal.PredecessorReply{Has: false}, nil
	}
	key, err := pred.NodeKey(ctx)
	if err != nil {
		return &internal.PredecessorReply{Has: false}, nil
	}
	return &internal.PredecessorReply{Has: true, Node: internal.NodeRef{Key: key, Addr: pred.Addr()}}, nil
}

func (s *nodeServer) CheckPredecessor(ctx context.Context, in *internal.CheckPredecessorArg) (*internal.Empty, error) {
	candidate := s.n.resolvePeer(in.Candidate.Key, in.Candidate.Addr)
	if err := s.n.CheckPredecessor(ctx, candidate); err != nil {
		return nil, err
	}
	return &internal.Empty{}, nil
}

func (s *nodeServer) Get(ctx context.Context, in *internal.IDArg) (*internal.GetReply, error) {
	value, found, err := s.n.Get(ctx, in.Id)
	if err != nil {
		return nil, err
	}
	return &internal.GetReply{Value: value, Found: found}, nil
}

func (s *nodeServer) Put(ctx context.Context, in *internal.PutArg) (*internal.Empty, error) {
	if err := s.n.Put(ctx, in.Id, in.Value); err != nil {
		return nil, err
	}
	return &internal.Empty{}, nil
}

func (s *nodeServer) Delete(ctx context.Context, in *internal.IDArg) (*internal.Empty, error) {
	if err := s.n.Delete(ctx, in.Id); err != nil {
		return nil, err
	}
	return &internal.Empty{}, nil
}

func (s *nodeServer) PutBackup(ctx context.Context, in *internal.PutArg) (*internal.Empty, error) {
	if err := s.n.PutBackup(ctx, in.Id, in.Value); err != nil {
		return nil, err
	}
	return &internal.Empty{}, nil
}

func (s *nodeServer) RemoveBackup(ctx context.Context, in *internal.IDArg) (*internal.Empty, error) {
	if err := s.n.RemoveBackup(ctx, in.Id); err != nil {
		return nil, err
	}
	return &internal.Empty{}, nil
}
