package event

import (
	"slices"
	"strings"
	"sync"

	"github.com/fintrack/backend/internal/domain/shared"
)

// subscription binds a handler to a pattern: an exact event type
// ("expense.created"), every event of one aggregate ("expense.*") or
// every event ("*").
type subscription struct {
	handler shared.EventHandler
	pattern string
}

func (s subscription) matches(eventType string) bool {
	switch {
	case s.pattern == "*" || s.pattern == eventType:
		return true
	case strings.HasSuffix(s.pattern, ".*"):
		aggregate, _, ok := strings.Cut(eventType, ".")
		return ok && aggregate+".*" == s.pattern
	}
	return false
}

// registry keeps subscriptions in the order they were made, so handlers
// run in subscription order
type registry struct {
	mu   sync.RWMutex
	subs []subscription
}

// add subscribes handler to patterns, or to every event when none are given
func (r *registry) add(handler shared.EventHandler, patterns ...string) {
	if len(patterns) == 0 {
		patterns = []string{"*"}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range patterns {
		r.subs = append(r.subs, subscription{handler: handler, pattern: p})
	}
}

func (r *registry) remove(handler shared.EventHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs = slices.DeleteFunc(r.subs, func(s subscription) bool { return s.handler == handler })
}

// match returns the handlers interested in eventType, each once
func (r *registry) match(eventType string) []shared.EventHandler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []shared.EventHandler
	for _, s := range r.subs {
		if s.matches(eventType) && !slices.Contains(out, s.handler) {
			out = append(out, s.handler)
		}
	}
	return out
}
