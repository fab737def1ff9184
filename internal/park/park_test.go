// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package park_test

import (
	"sync/atomic"
	"testing"
	"time"

	"code.hybscloud.com/mailbox/internal/park"
)

func TestCellWaitReturnsImmediatelyWhenAlreadyChanged(t *testing.T) {
	cell := park.New()
	var idx atomic.Uint64
	idx.Store(5)

	ok := cell.Wait(4, idx.Load, time.Time{}, false)
	if !ok {
		t.Fatal("Wait: got false, want true when current() != last")
	}
}

func TestCellWaitWakesOnWake(t *testing.T) {
	cell := park.New()
	var idx atomic.Uint64

	done := make(chan bool, 1)
	go func() {
		done <- cell.Wait(idx.Load(), idx.Load, time.Time{}, false)
	}()

	time.Sleep(20 * time.Millisecond)
	idx.Store(1)
	cell.Wake()

	select {
	case ok := <-done:
		if !ok {
			t.Fatal("Wait: got false after Wake")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Wait did not return after Wake")
	}
}

func TestCellWaitTimesOut(t *testing.T) {
	cell := park.New()
	var idx atomic.Uint64

	start := time.Now()
	ok := cell.Wait(idx.Load(), idx.Load, start.Add(30*time.Millisecond), true)
	if ok {
		t.Fatal("Wait: got true, want false on timeout with nothing changed")
	}
	if elapsed := time.Since(start); elapsed < 25*time.Millisecond {
		t.Fatalf("Wait returned too early: %v", elapsed)
	}
}

func TestCellWaitPastDeadlineReturnsImmediately(t *testing.T) {
	cell := park.New()
	var idx atomic.Uint64

	ok := cell.Wait(idx.Load(), idx.Load, time.Now().Add(-time.Second), true)
	if ok {
		t.Fatal("Wait with an already-past deadline: got true, want false")
	}
}
