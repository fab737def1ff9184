// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mailbox

import (
	"time"

	"code.hybscloud.com/atomix"
)

// ConsumerStats reports cumulative counters for one Consumer.
type ConsumerStats struct {
	MessagesReceived uint64
	BytesReceived    uint64
	FailedPops       uint64
}

// Message is a zero-copy, read-only view over one popped message's
// payload. It borrows the channel's ring buffer memory directly; the
// view is invalidated by the Consumer's next Try/Blocking/BatchPop
// call and must not be retained past it.
type Message struct {
	data []byte
}

// Bytes returns the message payload. The returned slice aliases the
// channel's ring buffer and is only valid until the next pop on the
// same Consumer.
func (m Message) Bytes() []byte { return m.data }

// Len returns the message payload length.
func (m Message) Len() int { return len(m.data) }

// Consumer is the read endpoint of a channel. A Consumer must only
// ever be used from one goroutine at a time, matching Producer.
type Consumer struct {
	q *queue

	messagesReceived atomix.Uint64
	bytesReceived    atomix.Uint64
	failedPops       atomix.Uint64
}

func newConsumer(q *queue) *Consumer {
	q.consumerAlive.StoreRelease(true)
	return &Consumer{q: q}
}

// TryPop removes and returns the oldest message, or fails immediately
// if the queue is empty. When the queue is empty and the producer is
// gone, it reports ErrChannelClosed rather than ErrEmpty so the caller
// can distinguish "try again later" from "no more messages will ever
// arrive".
func (c *Consumer) TryPop() (Message, error) {
	producerAlive := c.q.producerAlive.LoadRelaxed()

	read := c.q.readIndex.LoadRelaxed()
	write := c.q.writeIndex.LoadAcquire()
	if isQueueEmpty(read, write) {
		c.failedPops.AddAcqRel(1)
		if !producerAlive {
			return Message{}, ErrChannelClosed
		}
		return Message{}, ErrEmpty
	}

	n := c.q.readLengthPrefix(read)
	view := c.q.readPayload(read, n)

	c.q.readIndex.StoreRelease(read + 1)
	c.q.readWake.Wake()

	c.messagesReceived.AddAcqRel(1)
	c.bytesReceived.AddAcqRel(uint64(n))
	return Message{data: view}, nil
}

// BlockingPop is TryPop, retrying with the hybrid spin/park wait
// strategy while the queue is empty, until a message arrives, the
// producer dies, or timeout elapses. A negative timeout waits
// forever, using a pure park with no spin phase, matching the
// original's dedicated infinite-timeout fast path.
func (c *Consumer) BlockingPop(timeout time.Duration) (Message, error) {
	msg, err := c.TryPop()
	if err == nil || err == ErrChannelClosed {
		return msg, err
	}

	ready := func() bool {
		read := c.q.readIndex.LoadRelaxed()
		write := c.q.writeIndex.LoadAcquire()
		return !isQueueEmpty(read, write) || !c.q.producerAlive.LoadRelaxed()
	}
	peerDead := func() bool { return !c.q.producerAlive.LoadRelaxed() }
	currentWrite := func() uint64 { return c.q.writeIndex.LoadAcquire() }
	lastWrite := c.q.writeIndex.LoadAcquire()

	if !blockUntil(ready, peerDead, c.q.writeWake, lastWrite, currentWrite, timeout) {
		c.failedPops.AddAcqRel(1)
		return Message{}, ErrTimeout
	}
	return c.TryPop()
}

// BatchPopResult carries the outcome of a BatchPop call.
type BatchPopResult struct {
	Messages []Message
	Err      error
}

// BatchPop drains up to maxCount messages synchronously. If timeout is
// non-zero (negative meaning no deadline), it first takes the initial
// message with BlockingPop, which blocks only if the queue is empty,
// before draining the rest non-blockingly; a zero timeout never
// blocks. read_index is advanced once per consumed message. The
// non-blocking drain issues at most one wake and accumulates its
// statistics once; the initial BlockingPop, when taken, issues its own
// wake and statistics update as a single pop does.
func (c *Consumer) BatchPop(maxCount int, timeout time.Duration) BatchPopResult {
	if maxCount <= 0 {
		return BatchPopResult{Err: ErrEmpty}
	}

	messages := make([]Message, 0, minInt(maxCount, int(c.q.capacity)))

	if timeout != 0 {
		msg, err := c.BlockingPop(timeout)
		if err != nil {
			return BatchPopResult{Err: err}
		}
		messages = append(messages, msg)
	}

	var received int
	var totalBytes uint64
	for len(messages) < maxCount {
		read := c.q.readIndex.LoadRelaxed()
		write := c.q.writeIndex.LoadAcquire()
		if isQueueEmpty(read, write) {
			break
		}

		n := c.q.readLengthPrefix(read)
		view := c.q.readPayload(read, n)
		c.q.readIndex.StoreRelease(read + 1)

		messages = append(messages, Message{data: view})
		received++
		totalBytes += uint64(n)
	}

	if received > 0 {
		c.q.readWake.Wake()
		c.messagesReceived.AddAcqRel(uint64(received))
		c.bytesReceived.AddAcqRel(totalBytes)
	}

	if len(messages) == 0 {
		if !c.q.producerAlive.LoadRelaxed() {
			return BatchPopResult{Err: ErrChannelClosed}
		}
		return BatchPopResult{Err: ErrEmpty}
	}
	return BatchPopResult{Messages: messages}
}

// IsConnected reports whether the producer endpoint is still alive.
func (c *Consumer) IsConnected() bool {
	return c.q.producerAlive.LoadRelaxed()
}

// Capacity returns the channel's ring capacity.
func (c *Consumer) Capacity() int {
	return int(c.q.capacity)
}

// MaxMessageSize returns the channel's maximum message size.
func (c *Consumer) MaxMessageSize() int {
	return int(c.q.maxMessageSize)
}

// AvailableMessages approximates the number of messages the consumer
// may still pop.
func (c *Consumer) AvailableMessages() int {
	read := c.q.readIndex.LoadRelaxed()
	write := c.q.writeIndex.LoadRelaxed()
	return int(availableMessages(read, write))
}

// Stats returns a snapshot of this Consumer's cumulative counters.
func (c *Consumer) Stats() ConsumerStats {
	return ConsumerStats{
		MessagesReceived: c.messagesReceived.LoadRelaxed(),
		BytesReceived:    c.bytesReceived.LoadRelaxed(),
		FailedPops:       c.failedPops.LoadRelaxed(),
	}
}

// Close signals that the consumer is going away. The producer's next
// Reserve/TryPush/BlockingPush attempt reports ErrChannelClosed.
func (c *Consumer) Close() error {
	c.q.consumerAlive.StoreRelease(false)
	c.q.readWake.Wake()
	return nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
