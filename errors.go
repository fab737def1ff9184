// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mailbox

import (
	"errors"
	"fmt"

	"code.hybscloud.com/iox"
)

// ErrQueueFull indicates a push could not proceed because the ring
// holds capacity-1 messages already.
//
// ErrQueueFull wraps [iox.ErrWouldBlock] so callers using the
// ecosystem's own [IsWouldBlock] convention classify it correctly
// without depending on this package's specific sentinel.
var ErrQueueFull = fmt.Errorf("mailbox: queue full: %w", iox.ErrWouldBlock)

// ErrEmpty indicates a pop could not proceed because the ring holds
// no messages and the producer is still alive.
//
// ErrEmpty wraps [iox.ErrWouldBlock] for the same reason as
// [ErrQueueFull].
var ErrEmpty = fmt.Errorf("mailbox: empty: %w", iox.ErrWouldBlock)

// ErrChannelClosed indicates the peer endpoint has been closed.
//
// For a producer: the consumer is gone, so no future Commit can ever
// be observed. For a consumer: the producer is gone and the ring has
// been fully drained.
var ErrChannelClosed = errors.New("mailbox: channel closed")

// ErrTimeout indicates a blocking call's deadline elapsed before the
// operation could proceed. No publication occurred.
var ErrTimeout = errors.New("mailbox: timeout")

// ErrInvalidSize indicates a message size of zero, or greater than
// the channel's configured MaxMessageSize.
var ErrInvalidSize = errors.New("mailbox: invalid message size")

// ErrNoReservation indicates Commit or Rollback was called without a
// prior successful Reserve, or a second Reserve was attempted while
// one was already outstanding.
var ErrNoReservation = errors.New("mailbox: no reservation outstanding")

// ErrNameExists indicates RequestChannel was called with a name
// already present in the registry.
var ErrNameExists = errors.New("mailbox: channel name already registered")

// ErrInvalidConfig indicates a Config could not be normalized into a
// valid channel geometry.
var ErrInvalidConfig = errors.New("mailbox: invalid channel config")

// ErrAllocationFailed indicates the runtime could not satisfy the
// ring buffer allocation for a new channel.
var ErrAllocationFailed = errors.New("mailbox: allocation failed")

// IsWouldBlock reports whether err indicates the operation would
// block (queue full or empty). Delegates to [iox.IsWouldBlock] for
// wrapped error support, so it also classifies [ErrQueueFull] and
// [ErrEmpty] correctly.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal rather than
// a failure. Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure
// condition: nil, [ErrQueueFull], or [ErrEmpty]. Delegates to
// [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}
