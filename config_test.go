// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mailbox_test

import (
	"testing"

	"code.hybscloud.com/mailbox"
)

func TestConfigNormalizeDefaults(t *testing.T) {
	got := mailbox.Config{}.Normalize()
	want := mailbox.DefaultConfig()
	if got != want {
		t.Fatalf("Normalize(zero value): got %+v, want %+v", got, want)
	}
}

func TestConfigNormalizeRoundsCapacityUpToPow2(t *testing.T) {
	cases := []struct {
		in, wantCapacity int
	}{
		{in: 9, wantCapacity: 16},
		{in: 1024, wantCapacity: 1024},
		{in: 1025, wantCapacity: 2048},
		{in: 3, wantCapacity: 8}, // below minCapacity, clamped up first
	}
	for _, c := range cases {
		got := mailbox.Config{Capacity: c.in, MaxMessageSize: 64}.Normalize()
		if got.Capacity != c.wantCapacity {
			t.Errorf("Normalize(Capacity=%d): got %d, want %d", c.in, got.Capacity, c.wantCapacity)
		}
	}
}

func TestConfigNormalizeClampsToRange(t *testing.T) {
	got := mailbox.Config{Capacity: 10_000_000, MaxMessageSize: 10_000_000}.Normalize()
	if got.Capacity > 524288 {
		t.Errorf("Capacity not clamped: got %d", got.Capacity)
	}
	if got.MaxMessageSize > 1048576 {
		t.Errorf("MaxMessageSize not clamped: got %d", got.MaxMessageSize)
	}
}

func TestConfigNormalizeIdempotent(t *testing.T) {
	in := mailbox.Config{Capacity: 777, MaxMessageSize: 33}
	once := in.Normalize()
	twice := once.Normalize()
	if once != twice {
		t.Fatalf("Normalize not idempotent: once=%+v twice=%+v", once, twice)
	}
}
