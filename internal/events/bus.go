package events

import (
	"context"
	"sync"
)

// Bus fans events out to registered listeners synchronously, in registration
// order. Listener errors are the listener's problem to log; publishing never
// fails the triggering request.
type Bus struct {
	mu        sync.RWMutex
	listeners []Listener
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a listener. Safe to call concurrently with publishes.
func (b *Bus) Subscribe(l Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = append(b.listeners, l)
}

// PublishMoodLogged delivers the event to every listener.
func (b *Bus) PublishMoodLogged(ctx context.Context, ev MoodLogged) {
	b.mu.RLock()
	ls := b.listeners
	b.mu.RUnlock()
	for _, l := range ls {
		l.OnMoodLogged(ctx, ev)
	}
}

// PublishChallengeCompleted delivers the event to every listener.
func (b *Bus) PublishChallengeCompleted(ctx context.Context, ev ChallengeCompleted) {
	b.mu.RLock()
	ls := b.listeners
	b.mu.RUnlock()
	for _, l := range ls {
		l.OnChallengeCompleted(ctx, ev)
	}
}
