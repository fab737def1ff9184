// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command mailboxctl is a small demo tool exercising a mailbox
// channel end to end: a producer and a consumer rendezvous by channel
// name on the process-wide registry.
//
// It is a library demo rather than an IPC tool: mailbox channels are
// in-process memory, not shared memory or a socket, so two separate
// invocations never see each other's channels. Running producer and
// consumer as goroutines of the same process (the default, no -mode
// flag) is the common case; -mode=producer/-mode=consumer run a
// single endpoint on its own, with no peer in the process.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"code.hybscloud.com/iox"

	"code.hybscloud.com/mailbox"
)

func main() {
	var (
		channel  = flag.String("channel", "mailboxctl-demo", "channel name")
		capacity = flag.Int("capacity", 1024, "ring capacity")
		maxSize  = flag.Int("max-size", 4096, "max message size")
		count    = flag.Int("count", 1000, "messages to send")
		mode     = flag.String("mode", "", "producer, consumer, or empty for both in-process")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := mailbox.Config{Capacity: *capacity, MaxMessageSize: *maxSize}

	switch *mode {
	case "producer":
		runProducerOnly(ctx, logger, *channel, cfg, *count)
	case "consumer":
		runConsumerOnly(ctx, logger, *channel, cfg)
	default:
		runBoth(ctx, logger, *channel, cfg, *count)
	}
}

func runBoth(ctx context.Context, logger *slog.Logger, channel string, cfg mailbox.Config, count int) {
	pair, err := mailbox.RequestChannelPair(channel, cfg)
	if err != nil {
		logger.Error("request channel", "err", err)
		os.Exit(1)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		consume(ctx, logger, pair.Consumer)
	}()

	produce(ctx, logger, pair.Producer, count)
	if err := pair.Producer.Close(); err != nil {
		logger.Error("close producer", "err", err)
	}

	<-done
}

func runProducerOnly(ctx context.Context, logger *slog.Logger, channel string, cfg mailbox.Config, count int) {
	producer, _, err := mailbox.RequestChannel(channel, cfg)
	if err != nil {
		logger.Error("request channel", "err", err)
		os.Exit(1)
	}
	produce(ctx, logger, producer, count)
	if err := producer.Close(); err != nil {
		logger.Error("close producer", "err", err)
	}
}

func runConsumerOnly(ctx context.Context, logger *slog.Logger, channel string, cfg mailbox.Config) {
	_, consumer, err := mailbox.RequestChannel(channel, cfg)
	if err != nil {
		logger.Error("request channel", "err", err)
		os.Exit(1)
	}
	consume(ctx, logger, consumer)
}

func produce(ctx context.Context, logger *slog.Logger, p *mailbox.Producer, count int) {
	backoff := iox.Backoff{}
	for i := 0; i < count; i++ {
		if ctx.Err() != nil {
			logger.Warn("producer interrupted", "sent", i)
			return
		}

		msg := fmt.Sprintf("message-%d", i)
		err := p.TryPush([]byte(msg))
		for err != nil && mailbox.IsWouldBlock(err) {
			backoff.Wait()
			err = p.TryPush([]byte(msg))
		}
		backoff.Reset()
		if err != nil {
			logger.Error("push failed", "index", i, "err", err)
			return
		}
	}

	stats := p.Stats()
	logger.Info("producer done",
		"messages_sent", stats.MessagesSent,
		"bytes_sent", stats.BytesSent,
		"failed_pushes", stats.FailedPushes,
	)
}

func consume(ctx context.Context, logger *slog.Logger, c *mailbox.Consumer) {
	for {
		if ctx.Err() != nil {
			logger.Warn("consumer interrupted")
			return
		}

		msg, err := c.BlockingPop(200 * time.Millisecond)
		switch {
		case err == nil:
			_ = msg.Bytes()
		case err == mailbox.ErrChannelClosed:
			stats := c.Stats()
			logger.Info("consumer done",
				"messages_received", stats.MessagesReceived,
				"bytes_received", stats.BytesReceived,
			)
			return
		case err == mailbox.ErrTimeout:
			continue
		default:
			logger.Error("pop failed", "err", err)
			return
		}
	}
}
