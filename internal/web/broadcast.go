package web

import (
	"sync"
	"time"
)

type hub struct {
	mu   sync.Mutex
	subs map[chan struct{}]struct{}
}

func newHub() *hub {
	return &hub{subs: map[chan struct{}]struct{}{}}
}

func (h *hub) subscribe() (ch chan struct{}, cancel func()) {
	ch = make(chan struct{}, 8)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch, func() {
		h.mu.Lock()
		delete(h.subs, ch)
		h.mu.Unlock()
		close(ch)
	}
}

func (h *hub) broadcast() {
	h.mu.Lock()
	for ch := range h.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	h.mu.Unlock()
}

// broadcaster fans change notifications out to open event streams, one hub
// per checklist name.
type broadcaster struct {
	mu   sync.Mutex
	hubs map[string]*hub

	stopOnce sync.Once
	stopCh   chan struct{}
}

func newBroadcaster() *broadcaster {
	return &broadcaster{hubs: map[string]*hub{}, stopCh: make(chan struct{})}
}

func (b *broadcaster) Stop() {
	b.stopOnce.Do(func() { close(b.stopCh) })
}

func (b *broadcaster) hubFor(name string) *hub {
	b.mu.Lock()
	defer b.mu.Unlock()
	h := b.hubs[name]
	if h == nil {
		h = newHub()
		b.hubs[name] = h
	}
	return h
}

func (b *broadcaster) notify(name string) {
	b.hubFor(name).broadcast()
}

func (b *broadcaster) notifyAll() {
	b.mu.Lock()
	hubs := make([]*hub, 0, len(b.hubs))
	for _, h := range b.hubs {
		hubs = append(hubs, h)
	}
	b.mu.Unlock()
	for _, h := range hubs {
		h.broadcast()
	}
}

// pollLoop notifies every stream when stamp moves forward. The state database
// does not say which checklist changed.
func (b *broadcaster) pollLoop(stamp func() time.Time, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	last := stamp()
	for {
		select {
		case <-b.stopCh:
			return
		case <-t.C:
			if cur := stamp(); cur.After(last) {
				last = cur
				b.notifyAll()
			}
		}
	}
}
