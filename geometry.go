// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mailbox

import (
	"code.hybscloud.com/atomix"

	"code.hybscloud.com/mailbox/internal/park"
)

// pad is cache line padding to prevent false sharing, the same
// convention lfq/options.go uses for its queue variants.
type pad [64]byte

// queue is the shared ring buffer state referenced by both endpoints
// of one channel. Geometry fields are immutable after newQueue; indices
// and liveness flags are mutated by exactly one side each (see
// SPEC_FULL.md §4.4 for the ordering contract).
type queue struct {
	_             pad
	writeIndex    atomix.Uint64 // owned by the producer; read (acquire) by the consumer
	_             pad
	readIndex     atomix.Uint64 // owned by the consumer; read (acquire) by the producer
	_             pad
	producerAlive atomix.Bool
	_             pad
	consumerAlive atomix.Bool
	_             pad

	writeWake *park.Cell // woken on every write_index advance
	readWake  *park.Cell // woken on every read_index advance

	capacity       uint64 // power of two, >= 8
	mask           uint64 // capacity - 1
	maxMessageSize uint64
	slotSize       uint64
	buffer         []byte
}

// newQueue allocates a queue of the given (already normalized)
// geometry. It recovers from an allocation panic and reports
// ErrAllocationFailed, since Go signals out-of-memory via panic
// rather than a null return the way the C++ original's
// std::make_shared would via std::bad_alloc.
func newQueue(cfg Config) (q *queue, err error) {
	defer func() {
		if r := recover(); r != nil {
			q, err = nil, ErrAllocationFailed
		}
	}()

	capacity := uint64(cfg.Capacity)
	maxMessageSize := uint64(cfg.MaxMessageSize)
	slotSize := alignUp(4+maxMessageSize, 8)

	q = &queue{
		writeWake:      park.New(),
		readWake:       park.New(),
		capacity:       capacity,
		mask:           capacity - 1,
		maxMessageSize: maxMessageSize,
		slotSize:       slotSize,
		buffer:         make([]byte, capacity*slotSize),
	}
	q.producerAlive.StoreRelease(true)
	q.consumerAlive.StoreRelease(true)
	return q, nil
}

// alignUp rounds n up to the next multiple of align, which must be a
// power of two.
func alignUp(n, align uint64) uint64 {
	return (n + align - 1) &^ (align - 1)
}

// slotOffset returns the byte offset of the slot for index i within
// the queue's buffer.
func (q *queue) slotOffset(i uint64) uint64 {
	return (i & q.mask) * q.slotSize
}
