// Package toast keeps the ordered list of transient notifications shown to
// the user. Every message removes itself after a fixed lifetime unless it is
// dismissed first.
package toast

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"k8s.io/utils/clock"
)

// DefaultTTL is how long a message stays visible.
const DefaultTTL = 3000 * time.Millisecond

type Kind string

const (
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

type Message struct {
	ID          string
	Kind        Kind
	Title       string
	Description string
}

type EventType int

const (
	EventAdded EventType = iota
	EventRemoved
	EventExpired
)

func (t EventType) String() string {
	switch t {
	case EventAdded:
		return "added"
	case EventRemoved:
		return "removed"
	case EventExpired:
		return "expired"
	default:
		return "unknown"
	}
}

type Event struct {
	Type    EventType
	Message Message
}

// Listener is notified after the list changes. It runs outside the store's
// lock, on the caller's goroutine for Add and Remove and on the clock's
// goroutine for expiry.
type Listener func(Event)

type Option func(*Store)

func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func WithClock(c clock.WithDelayedExecution) Option {
	return func(s *Store) {
		s.clock = c
	}
}

func WithListener(l Listener) Option {
	return func(s *Store) {
		s.listener = l
	}
}

type entry struct {
	msg   Message
	timer clock.Timer
}

type Store struct {
	clock    clock.WithDelayedExecution
	ttl      time.Duration
	listener Listener

	mu      sync.Mutex
	entries []*entry
	closed  bool
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		clock: clock.RealClock{},
		ttl:   DefaultTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add appends a message and starts its expiry timer. A message needs a title;
// Add ignores one whose title is blank.
func (s *Store) Add(kind Kind, title, description string) {
	if strings.TrimSpace(title) == "" {
		return
	}
	if kind == "" {
		kind = KindInfo
	}
	e := &entry{msg: Message{
		ID:          uuid.NewString(),
		Kind:        kind,
		Title:       title,
		Description: description,
	}}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.entries = append(s.entries, e)
	s.mu.Unlock()

	s.notify(EventAdded, e.msg)

	// the timer is created outside the lock: fake clocks fire callbacks while
	// holding their own lock
	id := e.msg.ID
	t := s.clock.AfterFunc(s.ttl, func() { s.expire(id) })

	s.mu.Lock()
	if s.indexLocked(id) >= 0 {
		e.timer = t
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	t.Stop()
}

// Remove dismisses the message with the given id. Unknown ids are ignored.
func (s *Store) Remove(id string) {
	e := s.take(id)
	if e == nil {
		return
	}
	if e.timer != nil {
		e.timer.Stop()
	}
	s.notify(EventRemoved, e.msg)
}

// expire must not touch the clock.
func (s *Store) expire(id string) {
	e := s.take(id)
	if e == nil {
		return
	}
	s.notify(EventExpired, e.msg)
}

func (s *Store) take(id string) *entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return nil
	}
	e := s.entries[i]
	s.entries = slices.Delete(s.entries, i, i+1)
	return e
}

func (s *Store) indexLocked(id string) int {
	return slices.IndexFunc(s.entries, func(e *entry) bool { return e.msg.ID == id })
}

// List returns the visible messages in insertion order.
func (s *Store) List() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Message, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.msg)
	}
	return out
}

// Close cancels every pending timer and drops the list. Later Adds are
// ignored.
func (s *Store) Close() {
	s.mu.Lock()
	entries := s.entries
	s.entries = nil
	s.closed = true
	s.mu.Unlock()

	for _, e := range entries {
		if e.timer != nil {
			e.timer.Stop()
		}
	}
}

func (s *Store) notify(t EventType, m Message) {
	if s.listener != nil {
		s.listener(Event{Type: t, Message: m})
	}
}
