package chord

import (
	"context"
	"time"
)

// startMaintainer launches the single long-lived background task that
// drives stabilize/fixFinger/forwardValuesForBackup.
func (n *Node) startMaintainer() {
	n.maintMu.Lock()
	defer n.maintMu.Unlock()
	if n.stopMaint != nil {
		return // already running
	}
	n.stopMaint = make(chan struct{})
	n.maintDone = make(chan struct{})
	go n.maintainLoop(n.stopMaint, n.maintDone)
}

// stopMaintainer interrupts the maintainer; in-flight inbound RPCs
// complete or fail naturally on their next has-left check.
func (n *Node) stopMaintainer() {
	n.maintMu.Lock()
	stop, done := n.stopMaint, n.maintDone
	n.maintMu.Unlock()
	if stop == nil {
		return
	}
	close(stop)
	<-done
}

func (n *Node) maintainLoop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(n.conf.FixInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), n.conf.FixInterval)
			n.stabilize(ctx)
			n.fixFinger(ctx, n.fingers.randomIndex())
			cancel()

			go n.forwardValuesForBackup()
		}
	}
}

// stabilize reconciles successor/predecessor after churn.
func (n *Node) stabilize(ctx context.Context) {
	succ := n.Successor()
	succKey, err := succ.NodeKey(ctx)
	if err != nil {
		n.setSuccessor(n)
		succ = n
		succKey = n.key
	}

	pred, err := succ.Predecessor(ctx)
	if err == nil && pred != nil {
		predKey, err := pred.NodeKey(ctx)
		if err == nil && InRange(true, n.key, predKey, succKey, false) {
			n.setSuccessor(pred)
			succ = pred
		}
	}

	if err := succ.CheckPredecessor(ctx, n); err != nil {
		n.setSuccessor(n)
	}
}

// fixFinger repairs one finger per tick.
func (n *Node) fixFinger(ctx context.Context, idx int) {
	f := n.fingers.get(idx)
	result, err := n.FindSuccessor(ctx, f.Start)
	if err != nil {
		n.log.Debug().Err(err).Int("finger", idx).Msg("finger repair failed")
		n.fingers.clear(idx, n)
		return
	}
	n.fingers.set(idx, result)
}

// forwardValuesForBackup redistributes ownership after neighbor
// changes. It runs as its own task off the maintainer tick so it can
// never stall stabilization.
func (n *Node) forwardValuesForBackup() {
	ctx, cancel := context.WithTimeout(context.Background(), n.conf.FixInterval)
	defer cancel()

	pred := n.predecessorLocal()
	if pred == nil {
		return
	}
	predKey, err := pred.NodeKey(ctx)
	if err != nil {
		return
	}
	predPred, err := pred.Predecessor(ctx)
	if err != nil || predPred == nil {
		return
	}
	predPredKey, err := predPred.NodeKey(ctx)
	if err != nil {
		return
	}

	succ := n.Successor()

	n.store.Each(func(id uint64, value []byte) {
		switch {
		case InRange(true, predPredKey, id, predKey, true):
			// belongs primarily to pred; pred should already hold the
			// primary, this keeps its backup copy current.
			if err := pred.PutBackup(ctx, id, value); err != nil {
				n.log.Debug().Err(err).Uint64("key", id).Msg("backup ship to predecessor failed")
			}
		case InRange(true, predKey, id, n.key, true):
			// our primary; ship to successor so it holds a backup.
			if succ != nil && !sameNode(succ, n) {
				if err := succ.PutBackup(ctx, id, value); err != nil {
					n.log.Debug().Err(err).Uint64("key", id).Msg("backup ship to successor failed")
				}
			}
		}
		if !InRange(true, predPredKey, id, n.key, true) {
			n.store.Delete(id)
			n.log.Debug().Uint64("key", id).Msg("pruned key outside window of responsibility")
		}
	})
}
