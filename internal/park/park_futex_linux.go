// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux && (amd64 || arm64)

package park

import (
	"sync/atomic"
	"syscall"
	"time"
	"unsafe"
)

// Linux futex operations, private-flag variants since a Cell's
// generation word is never shared across processes.
const (
	futexWaitPrivate = 128 // FUTEX_WAIT | FUTEX_PRIVATE_FLAG
	futexWakePrivate = 129 // FUTEX_WAKE | FUTEX_PRIVATE_FLAG
)

// Cell is a futex-backed wait/wake primitive.
//
// gen is a generation counter bumped on every Wake. It is not itself
// the value callers wait for — Wait's caller supplies its own
// predicate via current/last — gen only drives the futex syscall's
// own spurious-wake-tolerant value check.
type Cell struct {
	gen uint32
}

// New returns a ready-to-use Cell.
func New() *Cell {
	return &Cell{}
}

// Wake bumps the generation and wakes one parked waiter, if any.
func (c *Cell) Wake() {
	atomic.AddUint32(&c.gen, 1)
	futexWake(&c.gen, 1)
}

// Wait parks until Wake is called, the deadline passes (if
// hasDeadline), or current() no longer equals last. Returns true if
// the caller should re-check its predicate because something may
// have changed, false if the deadline passed first.
func (c *Cell) Wait(last uint64, current func() uint64, deadline time.Time, hasDeadline bool) bool {
	g := atomic.LoadUint32(&c.gen)
	if current() != last {
		return true
	}

	if !hasDeadline {
		_ = futexWait(&c.gen, g)
		return true
	}

	remaining := time.Until(deadline)
	if remaining <= 0 {
		return false
	}
	err := futexWaitTimeout(&c.gen, g, remaining.Nanoseconds())
	return err != errFutexTimeout
}

// futexWait parks the calling goroutine until the value at addr no
// longer equals val or another goroutine calls futexWake on addr.
//
// Re-checks addr against val immediately before entering the syscall
// to close the lost-wakeup race where gen is bumped between the
// caller's snapshot and the syscall itself — the same guard
// markrussinovich-grpc-go-shmem's shm_futex_linux.go applies.
func futexWait(addr *uint32, val uint32) error {
	if atomic.LoadUint32(addr) != val {
		return nil
	}

	_, _, errno := syscall.Syscall6(
		syscall.SYS_FUTEX,
		uintptr(unsafe.Pointer(addr)),
		futexWaitPrivate,
		uintptr(val),
		0,
		0,
		0,
	)
	if errno != 0 && errno != syscall.EAGAIN && errno != syscall.EINTR {
		return errno
	}
	return nil
}

// futexWaitTimeout is futexWait bounded by timeoutNs nanoseconds.
func futexWaitTimeout(addr *uint32, val uint32, timeoutNs int64) error {
	if timeoutNs <= 0 {
		return futexWait(addr, val)
	}
	if atomic.LoadUint32(addr) != val {
		return nil
	}

	ts := syscall.NsecToTimespec(timeoutNs)
	_, _, errno := syscall.Syscall6(
		syscall.SYS_FUTEX,
		uintptr(unsafe.Pointer(addr)),
		futexWaitPrivate,
		uintptr(val),
		uintptr(unsafe.Pointer(&ts)),
		0,
		0,
	)
	switch errno {
	case 0, syscall.EAGAIN, syscall.EINTR:
		return nil
	case syscall.ETIMEDOUT:
		return errFutexTimeout
	default:
		return errno
	}
}

// futexWake wakes up to n goroutines parked on addr.
func futexWake(addr *uint32, n int) {
	syscall.RawSyscall6(
		syscall.SYS_FUTEX,
		uintptr(unsafe.Pointer(addr)),
		futexWakePrivate,
		uintptr(n),
		0,
		0,
		0,
	)
}
