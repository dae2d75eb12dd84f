// Package effects tracks the cosmetic "flying to cart" transitions shown
// after an add. Cart state never waits on them: the cart is already updated
// when a transition starts, and each transition only removes itself from the
// rendering list once its own timer fires.
package effects

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultDelay matches the length of the storefront's add animation.
const DefaultDelay = 600 * time.Millisecond

// Transition is one in-flight add animation.
type Transition struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Image     string    `json:"image"`
	StartedAt time.Time `json:"started_at"`
	EndsAt    time.Time `json:"ends_at"`

	session string
}

type Queue struct {
	mu      sync.Mutex
	delay   time.Duration
	now     func() time.Time
	active  map[string]Transition
	timers  map[string]*time.Timer
	stopped bool
}

// NewQueue builds a queue whose transitions expire after delay. A negative
// delay falls back to DefaultDelay.
func NewQueue(delay time.Duration) *Queue {
	if delay < 0 {
		delay = DefaultDelay
	}
	return &Queue{
		delay:  delay,
		now:    time.Now,
		active: make(map[string]Transition),
		timers: make(map[string]*time.Timer),
	}
}

// Start registers a transition for session and schedules its removal.
// Each call gets its own id and timer, so overlapping adds never share state.
func (q *Queue) Start(session, productID, image string) Transition {
	q.mu.Lock()
	defer q.mu.Unlock()

	started := q.now()
	t := Transition{
		ID:        uuid.NewString(),
		ProductID: productID,
		Image:     image,
		StartedAt: started,
		EndsAt:    started.Add(q.delay),
		session:   session,
	}
	if q.stopped {
		return t
	}
	q.active[t.ID] = t
	q.timers[t.ID] = time.AfterFunc(q.delay, func() { q.finish(t.ID) })
	return t
}

func (q *Queue) finish(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.active, id)
	delete(q.timers, id)
}

// Active lists the session's in-flight transitions, oldest first.
func (q *Queue) Active(session string) []Transition {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]Transition, 0)
	for _, t := range q.active {
		if t.session == session {
			out = append(out, t)
		}
	}
	slices.SortFunc(out, func(a, b Transition) int {
		if c := a.StartedAt.Compare(b.StartedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// AddingProducts lists the distinct product ids among transitions in the
// order they first appear. They drive the "added" badge on product cards.
func AddingProducts(transitions []Transition) []string {
	ids := make([]string, 0, len(transitions))
	for _, t := range transitions {
		if !slices.Contains(ids, t.ProductID) {
			ids = append(ids, t.ProductID)
		}
	}
	return ids
}

// Len is the number of in-flight transitions across all sessions.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.active)
}

// Stop cancels every pending timer and drops in-flight transitions.
func (q *Queue) Stop() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for id, timer := range q.timers {
		timer.Stop()
		delete(q.timers, id)
	}
	clear(q.active)
	q.stopped = true
}
