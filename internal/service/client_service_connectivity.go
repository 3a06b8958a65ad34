package service

import "sync"

// ConnectivityTracker is the client's online/offline signal. Transport
// failures flip it offline; a successful call or an explicit reconnect event
// flips it back online and fires the registered reconnect callbacks, which is
// what triggers offline-queue replay.
//
// The tracker starts online: the client assumes a network path exists until a
// call proves otherwise.
type ConnectivityTracker struct {
	mu      sync.Mutex
	online  bool
	subs    map[int]func()
	nextSub int
}

func NewConnectivityTracker() *ConnectivityTracker {
	return &ConnectivityTracker{online: true, subs: make(map[int]func())}
}

// Online reports the last observed connectivity state.
func (c *ConnectivityTracker) Online() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.online
}

// SetOnline records a connectivity observation. An offline-to-online
// transition fires every reconnect callback, synchronously, outside the
// tracker's lock. Repeated observations of the same state are no-ops.
func (c *ConnectivityTracker) SetOnline(online bool) {
	c.mu.Lock()
	transitioned := online && !c.online
	c.online = online

	var fns []func()
	if transitioned {
		fns = make([]func(), 0, len(c.subs))
		for _, fn := range c.subs {
			fns = append(fns, fn)
		}
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// OnReconnect registers fn to run on every offline-to-online transition.
// The returned cancel removes the registration and is safe to call more
// than once.
func (c *ConnectivityTracker) OnReconnect(fn func()) (cancel func()) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}
