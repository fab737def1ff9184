// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package mailbox provides named, in-process, single-producer
// single-consumer byte-message channels with bounded capacity,
// zero-copy reads, and liveness-aware blocking.
//
// # Quick Start
//
// Obtain a producer and a consumer for a named channel from the
// process-wide registry:
//
//	producer, consumer, err := mailbox.RequestChannel("orders", mailbox.DefaultConfig())
//	if err != nil {
//	    // mailbox.ErrNameExists, mailbox.ErrInvalidConfig, mailbox.ErrAllocationFailed
//	}
//	defer producer.Close()
//	defer consumer.Close()
//
//	if err := producer.TryPush([]byte("hello")); err != nil {
//	    // mailbox.ErrQueueFull, mailbox.ErrChannelClosed, mailbox.ErrInvalidSize
//	}
//
//	msg, err := consumer.TryPop()
//	if err == nil {
//	    fmt.Println(msg.Bytes())
//	}
//
// # Zero-Copy Reserve/Commit
//
// For producers that want to build a message directly into ring
// memory instead of copying a byte slice:
//
//	buf, err := producer.Reserve(len(payload))
//	if err != nil {
//	    return err // ErrQueueFull, ErrInvalidSize, ErrChannelClosed
//	}
//	n := copy(buf, payload)
//	if err := producer.Commit(n); err != nil {
//	    producer.Rollback()
//	    return err
//	}
//
// # Blocking With Backpressure
//
//	err := producer.BlockingPush(payload, 100*time.Millisecond)
//	msg, err := consumer.BlockingPop(time.Second)
//
// A negative timeout waits forever. Both return ErrChannelClosed as
// soon as the peer's Close is observed, rather than blocking for the
// full timeout.
//
// # Batch Operations
//
// BatchPush and BatchPop amortize the wake-one notification and
// statistics update across many messages:
//
//	n := producer.BatchPush(messages)         // one wake for the whole batch
//	result := consumer.BatchPop(64, -1)       // one wake consumed
//
// # Thread Safety
//
// Exactly one goroutine may call producer methods and exactly one
// goroutine may call consumer methods for a given channel. The
// producer and consumer may run concurrently with each other.
// Violating single-producer/single-consumer discipline corrupts the
// ring; this package does not detect the violation.
//
// # Message Lifetime
//
// Message returned by TryPop/BlockingPop/BatchPop is a zero-copy view
// into the ring buffer. It is valid only until the consumer's next
// pop call. Do not retain a Message, or a slice obtained from it,
// past that point.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/atomix] for atomics with
// explicit memory ordering, [code.hybscloud.com/spin] for the bounded
// spin phase of its blocking wait strategy, and
// [code.hybscloud.com/iox] for semantic error classification.
package mailbox
