// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mailbox_test

import (
	"fmt"

	"code.hybscloud.com/mailbox"
)

// Example demonstrates requesting a channel and exchanging one message
// through it with the non-blocking calls.
func Example() {
	r := mailbox.NewRegistry()
	producer, consumer, err := r.RequestChannel("greeting", mailbox.DefaultConfig())
	if err != nil {
		fmt.Println("request channel:", err)
		return
	}

	if err := producer.TryPush([]byte("hello")); err != nil {
		fmt.Println("push:", err)
		return
	}

	msg, err := consumer.TryPop()
	if err != nil {
		fmt.Println("pop:", err)
		return
	}
	fmt.Println(string(msg.Bytes()))

	// Output:
	// hello
}

// ExampleProducer_Reserve demonstrates the zero-copy reserve/commit
// path: the caller builds a message directly into ring memory instead
// of copying an already-built []byte.
func ExampleProducer_Reserve() {
	r := mailbox.NewRegistry()
	producer, consumer, err := r.RequestChannel("reserve-demo", mailbox.DefaultConfig())
	if err != nil {
		fmt.Println("request channel:", err)
		return
	}

	buf, err := producer.Reserve(3)
	if err != nil {
		fmt.Println("reserve:", err)
		return
	}
	copy(buf, "abc")
	if err := producer.Commit(3); err != nil {
		fmt.Println("commit:", err)
		return
	}

	msg, err := consumer.TryPop()
	if err != nil {
		fmt.Println("pop:", err)
		return
	}
	fmt.Println(string(msg.Bytes()))

	// Output:
	// abc
}
