// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !linux || !(amd64 || arm64)

package park

import (
	"sync"
	"time"
)

// Cell is a channel-swap-under-mutex wait/wake primitive, the
// portable fallback for platforms without a futex(2) equivalent.
//
// Waking swaps in a fresh channel and closes the old one, so every
// goroutine parked on the old channel observes the close regardless
// of how many there were; the mailbox wait strategy only ever parks
// one goroutine per Cell, but the implementation does not depend on
// that to be correct.
type Cell struct {
	mu sync.Mutex
	ch chan struct{}
}

// New returns a ready-to-use Cell.
func New() *Cell {
	return &Cell{ch: make(chan struct{})}
}

// Wake unblocks any goroutine currently parked in Wait.
func (c *Cell) Wake() {
	c.mu.Lock()
	old := c.ch
	c.ch = make(chan struct{})
	c.mu.Unlock()
	close(old)
}

// Wait parks until Wake is called, the deadline passes (if
// hasDeadline), or current() no longer equals last. Returns true if
// the caller should re-check its predicate, false if the deadline
// passed first.
//
// The re-check of current() against last happens under mu, the same
// lock Wake takes to swap the channel, so a Wake that lands between
// the caller's earlier snapshot and this call cannot be missed: either
// it happened before this lock (and current() already reflects it) or
// it happens after (and closes the channel this call captured).
func (c *Cell) Wait(last uint64, current func() uint64, deadline time.Time, hasDeadline bool) bool {
	c.mu.Lock()
	if current() != last {
		c.mu.Unlock()
		return true
	}
	ch := c.ch
	c.mu.Unlock()

	if !hasDeadline {
		<-ch
		return true
	}

	remaining := time.Until(deadline)
	if remaining <= 0 {
		return false
	}
	timer := time.NewTimer(remaining)
	defer timer.Stop()
	select {
	case <-ch:
		return true
	case <-timer.C:
		return false
	}
}
