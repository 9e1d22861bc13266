package arena

import "sync"

// Handle ties one identity to one live outbound queue. The reader side closes
// the handle when its connection dies; the writer drains Outbound until then.
type Handle struct {
	out  chan []byte
	done chan struct{}
	once sync.Once
}

func NewHandle(queueSize int) *Handle {
	if queueSize <= 0 {
		queueSize = 32
	}
	return &Handle{out: make(chan []byte, queueSize), done: make(chan struct{})}
}

// Send enqueues a frame for the writer. It blocks while the queue is full and
// the connection is alive, and reports false once the handle is closed. A
// false return is a silently dropped delivery, never an error.
func (h *Handle) Send(frame []byte) bool {
	select {
	case h.out <- frame:
		return true
	case <-h.done:
		return false
	}
}

// Outbound is drained by the connection's writer task.
func (h *Handle) Outbound() <-chan []byte { return h.out }

// Done closes when the handle is shut down; it is the writer's stop signal.
func (h *Handle) Done() <-chan struct{} { return h.done }

func (h *Handle) Close() {
	h.once.Do(func() { close(h.done) })
}

// ConnRegistry maps connected identities to their outbound handles. It is an
// explicitly owned map handed to every component that needs it, so tests can
// build isolated instances.
type ConnRegistry struct {
	mu    sync.RWMutex
	conns map[string]*Handle
}

func NewConnRegistry() *ConnRegistry {
	return &ConnRegistry{conns: make(map[string]*Handle)}
}

// Put records a handle, unconditionally replacing any existing one for the
// identity. The superseded handle is not closed here: its writer lingers until
// its own connection fails. Known duplicate-login leak, kept deliberately
// pending a product decision on proactive eviction.
func (r *ConnRegistry) Put(identity string, h *Handle) {
	r.mu.Lock()
	r.conns[identity] = h
	r.mu.Unlock()
}

// Get returns the current handle or nil. Lookup misses are normal: delivery
// is best-effort.
func (r *ConnRegistry) Get(identity string) *Handle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.conns[identity]
}

// Remove drops the identity's entry; no-op when absent.
func (r *ConnRegistry) Remove(identity string) {
	r.mu.Lock()
	delete(r.conns, identity)
	r.mu.Unlock()
}

func (r *ConnRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}
