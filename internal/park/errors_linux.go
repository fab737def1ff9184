// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux && (amd64 || arm64)

package park

import "errors"

// errFutexTimeout marks a futex(2) FUTEX_WAIT call that returned
// ETIMEDOUT, distinguishing a deadline expiry from every other
// tolerated errno in futexWaitTimeout.
var errFutexTimeout = errors.New("park: futex wait timed out")
