package runtime

import (
	"qkd-ledger/contract"
	"sync"
)

var _ contract.IRegistry = (*Registry)(nil)

// Registry keeps the push channel of every connected peer.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]contract.EventSink // map peer -> Sink
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]contract.EventSink)}
}

// GetPeerSinks returns the sinks of every connected peer, nil when nobody is connected.
func (r *Registry) GetPeerSinks() []contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var activeSinks []contract.EventSink
	for _, sink := range r.sessions {
		activeSinks = append(activeSinks, sink)
	}
	return activeSinks
}

// Subscribe registers a peer's active connection, replacing a previous one with the same ID.
func (r *Registry) Subscribe(peerID string, sink contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[peerID] = sink
}

func (r *Registry) Unsubscribe(peerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, peerID)
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
