// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package park provides a futex-equivalent wait/wake primitive with
// wake-one semantics, used as the parking phase of mailbox's hybrid
// spin-then-park wait strategy.
//
// A Cell is paired one-to-one with a monotonically increasing index
// (write_index or read_index). The waiting side calls Wait with the
// last value it observed for the index it depends on and a closure
// to re-sample that index; Wait returns immediately if the index has
// already moved, and otherwise parks until the other side calls Wake
// or the deadline passes. Because mailbox is strictly
// single-producer/single-consumer, at most one goroutine ever waits
// on a given Cell at a time, so "wake-one" and "wake-all" coincide in
// practice.
//
// On linux/amd64 and linux/arm64, Wait and Wake are backed by the
// futex(2) syscall operating on a dedicated 32-bit generation word.
// Elsewhere they are backed by a channel-swap cell providing the
// identical contract at the cost of a heap-allocated channel per
// wake, the "condition-variable-per-queue" fallback the mailbox
// specification anticipates for platforms without a futex-equivalent
// primitive.
package park
