package orders

import (
	"fmt"
	"math/rand"
)

// DefaultNumberPrefix precedes every order number.
const DefaultNumberPrefix = "ORD-"

// NumberGenerator issues display order numbers: the prefix plus a random
// four digit suffix. Numbers are not checked for uniqueness; two orders may
// share one.
type NumberGenerator struct {
	prefix string
	intn   func(n int) int
}

func NewNumberGenerator(prefix string) *NumberGenerator {
	if prefix == "" {
		prefix = DefaultNumberPrefix
	}
	return &NumberGenerator{prefix: prefix, intn: rand.Intn}
}

// Next returns a number such as "ORD-0427".
func (g *NumberGenerator) Next() string {
	return fmt.Sprintf("%s%04d", g.prefix, g.intn(10000))
}
