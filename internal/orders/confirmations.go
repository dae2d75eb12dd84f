package orders

import lru "github.com/hashicorp/golang-lru"

// DefaultMaxConfirmations bounds the sessions whose last order is kept.
const DefaultMaxConfirmations = 10000

// Confirmations keeps the latest placed order per cart session so the
// confirmation view can be rendered again. Process memory only; the least
// recently placed sessions fall out once limit is reached.
type Confirmations struct {
	last *lru.Cache
}

func NewConfirmations(limit int) *Confirmations {
	if limit <= 0 {
		limit = DefaultMaxConfirmations
	}
	// lru.New only fails on a non-positive size.
	last, _ := lru.New(limit)
	return &Confirmations{last: last}
}

func (c *Confirmations) Record(session string, summary Summary) {
	c.last.Add(session, summary)
}

func (c *Confirmations) Last(session string) (Summary, bool) {
	v, ok := c.last.Get(session)
	if !ok {
		return Summary{}, false
	}
	s, ok := v.(Summary)
	return s, ok
}

// Len reports how many sessions have a confirmation.
func (c *Confirmations) Len() int {
	return c.last.Len()
}
