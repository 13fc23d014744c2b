package mockgen

import (
	"fmt"

	"solana-batch-auction/internal/domain"
)

// node is a route graph vertex, either a user wallet or a venue.
type node struct {
	name    string
	address string
	image   string
}

// RouteGraph builds a random route over the batch's orders: the orders'
// wallets appear as "User N" nodes, a random selection of venues joins
// them, all nodes are chained in sequence and up to two extra random edges
// are layered on top.
func (g *Generator) RouteGraph(orders []*domain.Order) []domain.RouteStep {
	if len(orders) == 0 {
		return nil
	}

	nodes := make([]node, 0, len(orders)+len(Venues))
	for i, o := range orders {
		nodes = append(nodes, node{
			name:    fmt.Sprintf("User %d", i),
			address: o.SrcAddress,
			image:   UserVenueImage,
		})
	}

	venueCount := g.rng.Intn(len(orders)*3) + 1
	if venueCount > len(Venues) {
		venueCount = len(Venues)
	}
	for _, idx := range g.rng.Perm(len(Venues))[:venueCount] {
		v := Venues[idx]
		nodes = append(nodes, node{name: v.Name, address: v.Address, image: v.Image})
	}

	var steps []domain.RouteStep
	for i := 0; i < len(nodes)-1; i++ {
		steps = append(steps, g.step(nodes[i], nodes[i+1], g.rng.Int63n(10_000_000_000)+1))
	}

	// A few shortcut edges make the graph look less like a straight pipe.
	extra := 2
	if len(nodes)-1 < extra {
		extra = len(nodes) - 1
	}
	used := make(map[[2]int]bool)
	for k := 0; k < extra; k++ {
		for attempts := 0; attempts < 10; attempts++ {
			i := g.rng.Intn(len(nodes))
			j := g.rng.Intn(len(nodes))
			if i == j || used[[2]int{i, j}] || used[[2]int{j, i}] {
				continue
			}
			used[[2]int{i, j}] = true
			steps = append(steps, g.step(nodes[i], nodes[j], g.rng.Int63n(1000)+1))
			break
		}
	}

	return steps
}

func (g *Generator) step(from, to node, amount int64) domain.RouteStep {
	return domain.RouteStep{
		SrcName:    from.name,
		SrcAddress: from.address,
		SrcImage:   from.image,
		SentToken:  Tokens[g.rng.Intn(len(Tokens))],
		SentAmount: amount,
		DstName:    to.name,
		DstAddress: to.address,
		DstImage:   to.image,
	}
}
