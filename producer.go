// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mailbox

import (
	"time"

	"code.hybscloud.com/atomix"
)

// noReservation is the sentinel value of reservedSlot meaning "no
// Reserve is currently outstanding".
const noReservation = -1

// ProducerStats reports cumulative counters for one Producer.
type ProducerStats struct {
	MessagesSent uint64
	BytesSent    uint64
	FailedPushes uint64
}

// Producer is the write endpoint of a channel. A Producer must only
// ever be used from one goroutine at a time; the type itself performs
// no internal locking, relying entirely on the single-producer
// contract SPEC_FULL.md documents.
type Producer struct {
	q *queue

	reservedSlot int64 // noReservation, or the slot index reserved by Reserve

	messagesSent atomix.Uint64
	bytesSent    atomix.Uint64
	failedPushes atomix.Uint64
}

func newProducer(q *queue) *Producer {
	q.producerAlive.StoreRelease(true)
	return &Producer{q: q, reservedSlot: noReservation}
}

// Reserve acquires a writable slot for up to n bytes and returns a
// borrowed view over the slot's full payload region (length
// MaxMessageSize, not n — the caller may build a message directly
// into ring memory and Commit whatever prefix it actually used).
// Exactly one Reserve may be outstanding at a time; Commit or
// Rollback must follow before the next Reserve.
func (p *Producer) Reserve(n int) ([]byte, error) {
	if !isValidMessageSize(n, p.q.maxMessageSize) {
		return nil, ErrInvalidSize
	}
	if p.reservedSlot != noReservation {
		return nil, ErrNoReservation
	}
	if !p.q.consumerAlive.LoadRelaxed() {
		return nil, ErrChannelClosed
	}

	write := p.q.writeIndex.LoadRelaxed()
	read := p.q.readIndex.LoadAcquire()
	if isQueueFull(write, read, p.q.capacity) {
		return nil, ErrQueueFull
	}

	p.reservedSlot = int64(write)
	return p.q.payload(write), nil
}

// Commit publishes the message reserved by the preceding Reserve
// call. actual is the number of bytes of the reserved view that are
// valid payload; it must satisfy 0 < actual <= MaxMessageSize.
func (p *Producer) Commit(actual int) error {
	if !isValidMessageSize(actual, p.q.maxMessageSize) {
		return ErrInvalidSize
	}
	if p.reservedSlot == noReservation {
		return ErrNoReservation
	}

	slot := uint64(p.reservedSlot)
	p.q.writeLengthPrefix(slot, actual)

	write := p.q.writeIndex.LoadRelaxed()
	p.q.writeIndex.StoreRelease(write + 1)
	p.q.writeWake.Wake()

	p.messagesSent.AddAcqRel(1)
	p.bytesSent.AddAcqRel(uint64(actual))
	p.reservedSlot = noReservation
	return nil
}

// Rollback discards the outstanding reservation without advancing
// write_index, leaving the queue as if Reserve had never been called.
func (p *Producer) Rollback() {
	p.reservedSlot = noReservation
}

// TryPush reserves, copies data into the reserved region, and
// commits, failing immediately rather than waiting if the queue is
// full or the consumer is gone.
func (p *Producer) TryPush(data []byte) error {
	if !isValidMessageSize(len(data), p.q.maxMessageSize) {
		p.failedPushes.AddAcqRel(1)
		return ErrInvalidSize
	}
	if !p.q.consumerAlive.LoadRelaxed() {
		p.failedPushes.AddAcqRel(1)
		return ErrChannelClosed
	}

	dst, err := p.Reserve(len(data))
	if err != nil {
		p.failedPushes.AddAcqRel(1)
		return err
	}
	copy(dst, data)
	if err := p.Commit(len(data)); err != nil {
		p.failedPushes.AddAcqRel(1)
		return err
	}
	return nil
}

// BlockingPush is TryPush, retrying with the hybrid spin/park wait
// strategy while the queue is full, until space frees up, the
// consumer dies, or timeout elapses. A negative timeout waits
// forever.
func (p *Producer) BlockingPush(data []byte, timeout time.Duration) error {
	if !isValidMessageSize(len(data), p.q.maxMessageSize) {
		p.failedPushes.AddAcqRel(1)
		return ErrInvalidSize
	}

	for {
		if !p.q.consumerAlive.LoadRelaxed() {
			p.failedPushes.AddAcqRel(1)
			return ErrChannelClosed
		}

		err := p.TryPush(data)
		if err == nil {
			return nil
		}
		if !IsWouldBlock(err) {
			return err
		}

		ready := func() bool {
			write := p.q.writeIndex.LoadRelaxed()
			read := p.q.readIndex.LoadAcquire()
			return !isQueueFull(write, read, p.q.capacity) || !p.q.consumerAlive.LoadRelaxed()
		}
		peerDead := func() bool { return !p.q.consumerAlive.LoadRelaxed() }
		currentRead := func() uint64 { return p.q.readIndex.LoadAcquire() }

		lastRead := p.q.readIndex.LoadAcquire()
		if !blockUntil(ready, peerDead, p.q.readWake, lastRead, currentRead, timeout) {
			p.failedPushes.AddAcqRel(1)
			return ErrTimeout
		}
	}
}

// BatchPush validates every message up front (fail-fast: any invalid
// size aborts with 0 written, no change made), then writes as many
// messages as fit into successive slots under a single consumer-alive
// check, issuing at most one wake and one statistics update for the
// whole batch regardless of how many messages it contains.
func (p *Producer) BatchPush(messages [][]byte) int {
	if len(messages) == 0 {
		return 0
	}
	for _, msg := range messages {
		if !isValidMessageSize(len(msg), p.q.maxMessageSize) {
			return 0
		}
	}
	if !p.q.consumerAlive.LoadRelaxed() {
		return 0
	}

	var pushed int
	var totalBytes uint64
	for _, msg := range messages {
		write := p.q.writeIndex.LoadRelaxed()
		read := p.q.readIndex.LoadAcquire()
		if isQueueFull(write, read, p.q.capacity) {
			break
		}

		p.q.writeLengthPrefix(write, len(msg))
		copy(p.q.payload(write), msg)
		p.q.writeIndex.StoreRelease(write + 1)

		pushed++
		totalBytes += uint64(len(msg))
	}

	if pushed > 0 {
		p.q.writeWake.Wake()
		p.messagesSent.AddAcqRel(uint64(pushed))
		p.bytesSent.AddAcqRel(totalBytes)
	}
	return pushed
}

// IsConnected reports whether the consumer endpoint is still alive.
func (p *Producer) IsConnected() bool {
	return p.q.consumerAlive.LoadRelaxed()
}

// Capacity returns the channel's ring capacity.
func (p *Producer) Capacity() int {
	return int(p.q.capacity)
}

// MaxMessageSize returns the channel's maximum message size.
func (p *Producer) MaxMessageSize() int {
	return int(p.q.maxMessageSize)
}

// AvailableSlots approximates the number of messages that may still
// be written before the queue reports full.
func (p *Producer) AvailableSlots() int {
	write := p.q.writeIndex.LoadRelaxed()
	read := p.q.readIndex.LoadRelaxed()
	return int(availableSlots(write, read, p.q.capacity))
}

// Stats returns a snapshot of this Producer's cumulative counters.
func (p *Producer) Stats() ProducerStats {
	return ProducerStats{
		MessagesSent: p.messagesSent.LoadRelaxed(),
		BytesSent:    p.bytesSent.LoadRelaxed(),
		FailedPushes: p.failedPushes.LoadRelaxed(),
	}
}

// Close signals that the producer is going away. The consumer may
// continue draining any messages already in the queue; its next
// TryPop/BlockingPop on an empty, producer-dead queue reports
// ErrChannelClosed. Close is idempotent and safe to call even with an
// outstanding, uncommitted Reserve (the reservation is simply
// discarded).
func (p *Producer) Close() error {
	p.reservedSlot = noReservation
	p.q.producerAlive.StoreRelease(false)
	p.q.writeWake.Wake()
	return nil
}
