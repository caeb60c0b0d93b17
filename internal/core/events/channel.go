package events

import (
	"sync"
	"sync/atomic"

	"sitesearch/internal/platform/logger"
)

// TaskDetailedData is the channel carrying full task details once loaded
const TaskDetailedData = "taskDetailedData"

// Channel is a named broadcast channel whose deliveries run on a Loop
// there is no acknowledgement; publishing with no subscribers is a no-op
type Channel[T any] struct {
	name string
	loop *Loop

	mu   sync.Mutex
	subs []*subscriber[T]
}

type subscriber[T any] struct {
	fn     func(T)
	active atomic.Bool
}

// Subscription detaches a handler from its channel
type Subscription struct {
	once   sync.Once
	detach func()
}

// NewChannel binds a channel named name to loop
func NewChannel[T any](loop *Loop, name string) *Channel[T] {
	return &Channel[T]{name: name, loop: loop}
}

// Name is the channel name
func (c *Channel[T]) Name() string { return c.name }

// Subscribe registers fn; it receives every value published after this call
func (c *Channel[T]) Subscribe(fn func(T)) *Subscription {
	s := &subscriber[T]{fn: fn}
	s.active.Store(true)

	c.mu.Lock()
	c.subs = append(c.subs, s)
	c.mu.Unlock()

	return &Subscription{detach: func() {
		s.active.Store(false)
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, cur := range c.subs {
			if cur == s {
				c.subs = append(c.subs[:i], c.subs[i+1:]...)
				break
			}
		}
	}}
}

// Unsubscribe stops further deliveries, including ones already queued; safe to call twice
func (s *Subscription) Unsubscribe() {
	if s == nil {
		return
	}
	s.once.Do(s.detach)
}

// Subscribers is the number of attached handlers
func (c *Channel[T]) Subscribers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subs)
}

// Publish queues one turn per current subscriber, in subscription order
// a panicking handler does not keep v from the others
func (c *Channel[T]) Publish(v T) {
	c.mu.Lock()
	subs := append([]*subscriber[T](nil), c.subs...)
	c.mu.Unlock()

	if len(subs) == 0 {
		logger.Named("events").Debug().Str("channel", c.name).Msg("publish with no subscribers")
		return
	}
	for _, s := range subs {
		c.loop.Post(func() {
			if s.active.Load() {
				s.fn(v)
			}
		})
	}
}
