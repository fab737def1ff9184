// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mailbox

import (
	"sync"
	"time"
)

// channelEntry is the registry's bookkeeping record for one named
// channel. producer is retained so Registry.Stats can sum real,
// per-channel counters on demand instead of the broker's C++
// counterpart, whose total_messages_sent/total_bytes_transferred were
// never actually wired to any handle.
type channelEntry struct {
	q         *queue
	name      string
	createdAt time.Time
	producer  *Producer
}

// RegistryStats reports aggregate counts for a Registry.
// TotalChannelsCreated counts every channel it has ever created; the
// other fields cover only the channels currently registered.
type RegistryStats struct {
	ActiveChannels        int
	TotalChannelsCreated  uint64
	TotalMessagesSent     uint64
	TotalBytesTransferred uint64
}

// Registry is a process-wide directory of named channels, the Go
// equivalent of the broker singleton: multiple producers and
// consumers across a process can rendezvous on a channel by name
// without passing references to each other directly.
//
// Unlike the C++ original's deliberately-leaked singleton — needed
// there to dodge undefined static-destruction order between the
// broker and any handles stored in other static variables — Go's
// garbage collector has no such ordering hazard, so a plain
// lazily-initialized package-level Registry works without a leak.
type Registry struct {
	mu       sync.RWMutex
	channels map[string]*channelEntry
	created  uint64
}

// NewRegistry returns an independent, empty Registry. Most callers
// should use the package-level Default registry instead; NewRegistry
// exists for tests and for callers that want isolated namespaces.
func NewRegistry() *Registry {
	return &Registry{channels: make(map[string]*channelEntry)}
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default returns the process-wide Registry, creating it on first
// use.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// RequestChannel creates a new named channel with the given
// configuration (normalized before validation, so Config{} is valid
// input) and returns its Producer and Consumer endpoints.
func (r *Registry) RequestChannel(name string, cfg Config) (*Producer, *Consumer, error) {
	normalized := cfg.Normalize()
	if !normalized.valid() {
		return nil, nil, ErrInvalidConfig
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.channels[name]; exists {
		return nil, nil, ErrNameExists
	}

	q, err := newQueue(normalized)
	if err != nil {
		return nil, nil, err
	}

	producer := newProducer(q)
	consumer := newConsumer(q)

	r.channels[name] = &channelEntry{
		q:         q,
		name:      name,
		createdAt: time.Now(),
		producer:  producer,
	}
	r.created++

	return producer, consumer, nil
}

// RequestChannelPair is RequestChannel returning both endpoints
// bundled as a ChannelPair, convenient when a caller hands both
// endpoints to the same goroutine before splitting them off to
// separate producer/consumer goroutines.
func (r *Registry) RequestChannelPair(name string, cfg Config) (ChannelPair, error) {
	producer, consumer, err := r.RequestChannel(name, cfg)
	if err != nil {
		return ChannelPair{}, err
	}
	return ChannelPair{Producer: producer, Consumer: consumer}, nil
}

// HasChannel reports whether a channel with the given name is
// currently registered. The result may be stale the instant it is
// returned if another goroutine concurrently removes the channel.
func (r *Registry) HasChannel(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.channels[name]
	return ok
}

// RemoveChannel removes name from the registry if both its endpoints
// have already been closed. It reports whether the channel was
// removed.
func (r *Registry) RemoveChannel(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.channels[name]
	if !ok {
		return false
	}
	if entry.q.producerAlive.LoadRelaxed() || entry.q.consumerAlive.LoadRelaxed() {
		return false
	}

	delete(r.channels, name)
	return true
}

// Stats returns aggregate registry statistics. Message/byte totals are
// summed on demand from the Producer counters of the channels
// currently registered, so they reflect real traffic rather than
// always reading zero; traffic of channels already removed with
// RemoveChannel is not included.
func (r *Registry) Stats() RegistryStats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := RegistryStats{
		ActiveChannels:       len(r.channels),
		TotalChannelsCreated: r.created,
	}
	for _, entry := range r.channels {
		ps := entry.producer.Stats()
		stats.TotalMessagesSent += ps.MessagesSent
		stats.TotalBytesTransferred += ps.BytesSent
	}
	return stats
}

// Shutdown signals every registered channel's endpoints to stop:
// both liveness flags are stored false and every waiter is woken.
// Shutdown does not block waiting for producers or consumers to
// observe the signal and return; callers must ensure their own
// endpoints are done with before relying on a channel being quiescent.
func (r *Registry) Shutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, entry := range r.channels {
		entry.q.producerAlive.StoreRelease(false)
		entry.q.consumerAlive.StoreRelease(false)
		entry.q.writeWake.Wake()
		entry.q.readWake.Wake()
	}
}

// ChannelPair bundles a channel's two endpoints together, returned by
// RequestChannelPair for callers that want to pass both around as one
// value before splitting them.
type ChannelPair struct {
	Producer *Producer
	Consumer *Consumer
}

// RequestChannel creates a channel on the package-level Default
// registry.
func RequestChannel(name string, cfg Config) (*Producer, *Consumer, error) {
	return Default().RequestChannel(name, cfg)
}

// RequestChannelPair creates a channel on the package-level Default
// registry, returning both endpoints as a ChannelPair.
func RequestChannelPair(name string, cfg Config) (ChannelPair, error) {
	return Default().RequestChannelPair(name, cfg)
}
