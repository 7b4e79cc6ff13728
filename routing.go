package chord

import "context"

// checkBounds validates id ∈ [0, 2^m). Bounds errors bypass the retry
// harness and fail immediately.
func (n *Node) checkBounds(id uint64) error {
	if id >= n.keyspace() {
		return xerrorsInvalidf("key %d is outside the allowable bounds [0, %d)", id, n.keyspace())
	}
	return nil
}

// FindSuccessor implements RemoteNode and is also the routing entry
// point the retry harness drives. It is self-healing and is not
// itself retried: a dead successor or finger is repaired inline.
func (n *Node) FindSuccessor(ctx context.Context, id uint64) (RemoteNode, error) {
	if n.hasDeparted() {
		return nil, ErrNodeDeparted
	}

	succ := n.Successor()
	succKey, err := succ.NodeKey(ctx)
	if err != nil {
		n.setSuccessor(n)
		n.log.Warn().Err(err).Msg("successor unreachable; reset to self")
		return n.FindSuccessor(ctx, id)
	}

	if InRange(true, n.key, id, succKey, true) {
		return succ, nil
	}

	for _, f := range n.fingers.reverse() {
		if f.Node == nil {
			continue
		}
		fKey, err := f.Node.NodeKey(ctx)
		if err != nil {
			n.fingers.clear(f.Index, n)
			continue
		}
		if !InRange(true, n.key, fKey, id, false) {
			continue
		}
		result, err := f.Node.FindSuccessor(ctx, id)
		if err == nil && result == nil {
			err = ErrTransientPeerFailure
		}
		if err != nil {
			n.fingers.clear(f.Index, n)
			continue
		}
		return result, nil
	}

	return n, nil
}

// Predecessor implements RemoteNode.
func (n *Node) Predecessor(ctx context.Context) (RemoteNode, error) {
	if n.hasDeparted() {
		return nil, ErrNodeDeparted
	}
	return n.predecessorLocal(), nil
}

// predecessorLocal is the error-free accessor internal callers
// (stabilize, backup forwarding) use directly.
func (n *Node) predecessorLocal() RemoteNode {
	n.predMu.RLock()
	defer n.predMu.RUnlock()
	return n.pred
}

// CheckPredecessor implements RemoteNode. If candidate lies strictly
// between the current predecessor and self, or the current
// predecessor is unknown/unreachable, adopt candidate.
func (n *Node) CheckPredecessor(ctx context.Context, candidate RemoteNode) error {
	if n.hasDeparted() {
		return ErrNodeDeparted
	}
	if candidate == nil {
		return nil
	}
	candKey, err := candidate.NodeKey(ctx)
	if err != nil {
		return nil // nothing to adopt
	}

	cur := n.predecessorLocal()
	if cur == nil {
		n.setPredecessor(candidate)
		return nil
	}
	curKey, err := cur.NodeKey(ctx)
	if err != nil {
		n.setPredecessor(candidate)
		return nil
	}

	if InRange(true, curKey, candKey, n.key, false) {
		n.setPredecessor(candidate)
	}
	return nil
}

// Get implements RemoteNode: the client-visible, retried entry point
// for get-by-id. Every hop's Get call re-applies the retry harness, so
// a routed request is retried at each hop it passes through, not just
// at the originating node.
func (n *Node) Get(ctx context.Context, id uint64) ([]byte, bool, error) {
	if err := n.checkBounds(id); err != nil {
		return nil, false, err
	}
	var value []byte
	var found bool
	err := n.retry(ctx, func(ctx context.Context) error {
		v, ok, err := n.getOnce(ctx, id)
		if err != nil {
			return err
		}
		value, found = v, ok
		return nil
	})
	return value, found, err
}

// Put implements RemoteNode: the client-visible, retried entry point
// for put-by-id.
func (n *Node) Put(ctx context.Context, id uint64, value []byte) error {
	if err := n.checkBounds(id); err != nil {
		return err
	}
	return n.retry(ctx, func(ctx context.Context) error {
		return n.putOnce(ctx, id, value)
	})
}

// Delete implements RemoteNode: the client-visible, retried entry
// point for delete-by-id.
func (n *Node) Delete(ctx context.Context, id uint64) error {
	if err := n.checkBounds(id); err != nil {
		return err
	}
	return n.retry(ctx, func(ctx context.Context) error {
		return n.deleteOnce(ctx, id)
	})
}

// getOnce is one unretried routing attempt: resolve the key's
// successor, then read locally or delegate.
func (n *Node) getOnce(ctx context.Context, id uint64) ([]byte, bool, error) {
	if n.hasDeparted() {
		return nil, false, ErrNodeDeparted
	}
	target, err := n.FindSuccessor(ctx, id)
	if err != nil {
		return nil, false, xerrorsWrapTransient(err)
	}
	if sameNode(target, n) {
		v, ok := n.store.Get(id)
		return v, ok, nil
	}
	return target.Get(ctx, id)
}

// putOnce is one unretried routing attempt: resolve the key's
// successor, store, and mirror to the backup.
func (n *Node) putOnce(ctx context.Context, id uint64, value []byte) error {
	if n.hasDeparted() {
		return ErrNodeDeparted
	}
	target, err := n.FindSuccessor(ctx, id)
	if err != nil {
		return xerrorsWrapTransient(err)
	}
	if sameNode(target, n) {
		n.store.Put(id, value)
		n.log.Debug().Uint64("key", id).Msg("stored primary")
		if succ := n.Successor(); succ != nil && !sameNode(succ, n) {
			if err := succ.PutBackup(ctx, id, value); err != nil {
				n.log.Warn().Err(err).Msg("best-effort backup put failed")
			}
		}
		return nil
	}
	return target.Put(ctx, id, value)
}

// deleteOnce is one unretried routing attempt: resolve the key's
// successor, remove, and mirror the removal to the backup.
func (n *Node) deleteOnce(ctx context.Context, id uint64) error {
	if n.hasDeparted() {
		return ErrNodeDeparted
	}
	target, err := n.FindSuccessor(ctx, id)
	if err != nil {
		return xerrorsWrapTransient(err)
	}
	if sameNode(target, n) {
		n.store.Delete(id)
		if succ := n.Successor(); succ != nil && !sameNode(succ, n) {
			if err := succ.RemoveBackup(ctx, id); err != nil {
				n.log.Warn().Err(err).Msg("best-effort backup remove failed")
			}
		}
		return nil
	}
	return target.Delete(ctx, id)
}

// PutBackup implements RemoteNode: unconditional local mutation, no
// routing, no further forwarding.
func (n *Node) PutBackup(ctx context.Context, id uint64, value []byte) error {
	if n.hasDeparted() {
		return ErrNodeDeparted
	}
	n.store.Put(id, value)
	return nil
}

// RemoveBackup implements RemoteNode: unconditional local mutation.
func (n *Node) RemoveBackup(ctx context.Context, id uint64) error {
	if n.hasDeparted() {
		return ErrNodeDeparted
	}
	n.store.Delete(id)
	return nil
}

// GetByKey hashes key via conf.Hash and routes the id form.
func (n *Node) GetByKey(ctx context.Context, key string) ([]byte, bool, error) {
	return n.Get(ctx, n.conf.Hash.Hash(key, n.m))
}

// PutByKey hashes key via conf.Hash and routes the id form.
func (n *Node) PutByKey(ctx context.Context, key string, value []byte) error {
	return n.Put(ctx, n.conf.Hash.Hash(key, n.m), value)
}

// DeleteByKey hashes key via conf.Hash and routes the id form.
func (n *Node) DeleteByKey(ctx context.Context, key string) error {
	return n.Delete(ctx, n.conf.Hash.Hash(key, n.m))
}
