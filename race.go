// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package mailbox

// RaceEnabled is true when the race detector is active.
// Tests use it to shrink their message counts and widen blocking-call
// timeouts, since the race detector's instrumentation slows the
// hybrid wait strategy enough to turn a tight deadline into a
// spurious timeout.
const RaceEnabled = true
