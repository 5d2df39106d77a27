package miner

import (
	"context"
	"sync"

	"github.com/screa/pr000xy-miner/pkg/sink"
	"github.com/screa/pr000xy-miner/pkg/types"
)

// bestTracker remembers the highest scoring hit on its way to the sink.
type bestTracker struct {
	next sink.Recorder

	mu   sync.RWMutex
	best *types.Hit
}

func (b *bestTracker) Record(ctx context.Context, hit types.Hit) error {
	b.mu.Lock()
	if b.best == nil || isBetter(&hit, b.best) {
		h := hit
		b.best = &h
	}
	b.mu.Unlock()

	if b.next == nil {
		return nil
	}
	return b.next.Record(ctx, hit)
}

// Best returns a copy of the best hit, or nil.
func (b *bestTracker) Best() *types.Hit {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.best == nil {
		return nil
	}
	h := *b.best
	return &h
}

// isBetter orders hits by reward, then leading zero bytes, then total zero
// bytes.
func isBetter(newHit, oldHit *types.Hit) bool {
	if c := newHit.Score.Reward.Cmp(oldHit.Score.Reward); c != 0 {
		return c > 0
	}
	if newHit.Score.Leading != oldHit.Score.Leading {
		return newHit.Score.Leading > oldHit.Score.Leading
	}
	return newHit.Score.Total > oldHit.Score.Total
}
