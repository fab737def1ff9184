// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mailbox

import "encoding/binary"

// lengthPrefixSize is the width of the little-endian length prefix
// every slot carries ahead of its payload region.
const lengthPrefixSize = 4

// isValidMessageSize reports whether n is a legal message length for
// a channel whose MaxMessageSize is maxMessageSize. Zero is never a
// valid written length; this check is shared by every producer path
// (Reserve, TryPush, BlockingPush, BatchPush).
func isValidMessageSize(n int, maxMessageSize uint64) bool {
	if n <= 0 {
		return false
	}
	un := uint64(n)
	return un <= maxMessageSize && un <= ^uint64(0)-12
}

// payload returns the payload region of the slot at index i as a
// slice of length maxMessageSize — the full writable capacity, not
// the eventual committed size, so a producer can build a message
// directly into ring memory before choosing how much of it to
// publish with Commit.
func (q *queue) payload(i uint64) []byte {
	off := q.slotOffset(i)
	start := off + lengthPrefixSize
	return q.buffer[start : start+q.maxMessageSize]
}

// writeLengthPrefix stores n as a little-endian u32 at the head of
// the slot for index i.
func (q *queue) writeLengthPrefix(i uint64, n int) {
	off := q.slotOffset(i)
	binary.LittleEndian.PutUint32(q.buffer[off:off+lengthPrefixSize], uint32(n))
}

// readLengthPrefix loads the little-endian u32 length prefix for the
// slot at index i.
func (q *queue) readLengthPrefix(i uint64) int {
	off := q.slotOffset(i)
	return int(binary.LittleEndian.Uint32(q.buffer[off : off+lengthPrefixSize]))
}

// readPayload returns a read-only zero-copy view of the n committed
// payload bytes for the slot at index i.
func (q *queue) readPayload(i uint64, n int) []byte {
	off := q.slotOffset(i)
	start := off + lengthPrefixSize
	return q.buffer[start : start+uint64(n) : start+uint64(n)]
}

// isQueueFull reports whether, given the producer's own write index
// and the consumer's read index, the ring has no writable slot left
// (one slot is always kept empty to distinguish full from empty, per
// I3).
func isQueueFull(write, read, capacity uint64) bool {
	return write-read >= capacity-1
}

// isQueueEmpty reports whether the ring holds no committed messages.
func isQueueEmpty(read, write uint64) bool {
	return read == write
}

// availableSlots approximates the number of messages the producer may
// still write before the ring reports full, from possibly-stale
// relaxed reads of both indices.
func availableSlots(write, read, capacity uint64) uint64 {
	pending := write - read
	return capacity - 1 - pending
}

// availableMessages approximates the number of messages the consumer
// may still pop, from possibly-stale relaxed reads of both indices.
func availableMessages(read, write uint64) uint64 {
	return write - read
}
