// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mailbox

import (
	"time"

	"code.hybscloud.com/spin"

	"code.hybscloud.com/mailbox/internal/park"
)

// noTimeout is the timeout value meaning "wait forever", mirroring
// std::chrono::milliseconds::max() in the original broker's
// BlockingPush/BlockingPop. blockUntil treats every negative timeout
// this way; callers pass their own caller-supplied timeout through.
const noTimeout time.Duration = -1

// spinIterations bounds the busy-wait phase of blockUntil before it
// falls back to parking. At a handful of nanoseconds per spin.Wait
// iteration this keeps the spin phase in the low-microsecond range
// SPEC_FULL.md's latency goal calls for, without spinning indefinitely
// on a producer or consumer that is genuinely stalled.
const spinIterations = 64

// blockUntil repeatedly calls ready until it reports true, the
// deadline implied by timeout passes, or peerDead reports the other
// endpoint has gone away. lastIndex/currentIndex let it park on cell
// between spin attempts once the spin budget is spent. It returns
// whatever ready() reports once polling stops.
//
// The strategy mirrors the three-phase escalation
// detail::SpinWaitWithYield plus atomic::wait gives the C++ original:
// a short bounded spin, then parking on cell so a waiting goroutine
// costs no CPU once the spin budget is spent. A negative timeout
// (noTimeout) skips the spin phase and the deadline checks and goes
// straight to an unbounded park, matching the original's dedicated
// atomic::wait fast path for infinite timeouts.
func blockUntil(
	ready func() bool,
	peerDead func() bool,
	cell *park.Cell,
	lastIndex uint64,
	currentIndex func() uint64,
	timeout time.Duration,
) bool {
	if ready() {
		return true
	}

	var deadline time.Time
	hasDeadline := timeout >= 0
	if hasDeadline {
		deadline = time.Now().Add(timeout)
	}

	sw := spin.Wait{}
	for i := 0; hasDeadline && i < spinIterations; i++ {
		if ready() {
			return true
		}
		if peerDead() {
			return ready()
		}
		if hasDeadline && !time.Now().Before(deadline) {
			return ready()
		}
		sw.Once()
	}

	for {
		if ready() {
			return true
		}
		if peerDead() {
			return ready()
		}
		if hasDeadline && !time.Now().Before(deadline) {
			return ready()
		}

		if !cell.Wait(lastIndex, currentIndex, deadline, hasDeadline) {
			return ready()
		}
	}
}
