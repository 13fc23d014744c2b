// Package mockgen produces demo traffic: random orders, random route
// graphs and scored solutions, on the same timers the marketplace would
// see from real users and agents.
package mockgen

import (
	"math/rand"
	"time"

	"github.com/mr-tron/base58"

	"solana-batch-auction/internal/domain"
)

// orderExpiry is how far in the future mock orders expire.
const orderExpiry = 30 * time.Minute

// Generator builds random orders and route graphs from a seeded source, so
// tests can replay a sequence.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a Generator from the given seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Orders returns 1 to 4 random open orders. With two or more, the first two
// form an opposite-direction pair over the same token pair, giving agents
// something to match against.
func (g *Generator) Orders() []*domain.Order {
	count := g.rng.Intn(4) + 1
	orders := make([]*domain.Order, 0, count)

	if count >= 2 {
		src, dst := g.tokenPair()
		orders = append(orders,
			g.order(src, dst),
			g.order(dst, src),
		)
	}
	for len(orders) < count {
		src, dst := g.tokenPair()
		orders = append(orders, g.order(src, dst))
	}
	return orders
}

func (g *Generator) order(srcToken, dstToken string) *domain.Order {
	address := g.Address()
	srcAmount := g.rng.Int63n(1_000_000_000) + 1

	return &domain.Order{
		IntentID:    g.rng.Int63n(1_000_000),
		SrcToken:    srcToken,
		SrcAddress:  address,
		SrcAmount:   srcAmount,
		DstToken:    dstToken,
		DstAddress:  address,
		MinReceived: g.rng.Int63n(srcAmount),
		Expiration:  time.Now().Add(orderExpiry).Unix(),
		Status:      domain.OrderStatusOpen,
	}
}

// tokenPair picks two distinct token mints.
func (g *Generator) tokenPair() (string, string) {
	src := Tokens[g.rng.Intn(len(Tokens))]
	dst := src
	for dst == src {
		dst = Tokens[g.rng.Intn(len(Tokens))]
	}
	return src, dst
}

// Address returns a random base58-encoded 32-byte address, the shape of a
// Solana account key.
func (g *Generator) Address() string {
	buf := make([]byte, 32)
	g.rng.Read(buf)
	return base58.Encode(buf)
}

// Score returns a random solution score in [0, 100].
func (g *Generator) Score() float64 {
	return float64(g.rng.Intn(101))
}
