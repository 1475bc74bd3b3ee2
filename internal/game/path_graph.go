package game

import (
	"math"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
)

// ShortestPath builds an explicit weighted graph of the cells p can still use
// and returns one cheapest edge-to-edge path together with its cost (the
// number of empty cells on it). The path is nil and the cost Unreachable when
// p is cut off. Slower than ShortestCompletionDistance; meant for hints.
func ShortestPath(b *Board, p CellState) ([]Position, int) {
	if !p.IsPlayer() {
		return nil, Unreachable
	}
	n := int64(len(b.Cells))
	src, sink := simple.Node(n), simple.Node(n+1)

	g := simple.NewWeightedDirectedGraph(0, math.Inf(1))
	g.AddNode(src)
	g.AddNode(sink)
	for i := range b.Cells {
		if stepCost(b, p, i) >= 0 {
			g.AddNode(simple.Node(i))
		}
	}

	// 边权 = 进入目标格子的代价
	for i := range b.Cells {
		if stepCost(b, p, i) < 0 {
			continue
		}
		u := simple.Node(i)
		if b.onStartEdge(p, i) {
			g.SetWeightedEdge(g.NewWeightedEdge(src, u, float64(stepCost(b, p, i))))
		}
		if b.onEndEdge(p, i) {
			g.SetWeightedEdge(g.NewWeightedEdge(u, sink, 0))
		}
		for _, j := range b.geo.neigh[i] {
			if w := stepCost(b, p, j); w >= 0 {
				g.SetWeightedEdge(g.NewWeightedEdge(u, simple.Node(j), float64(w)))
			}
		}
	}

	shortest := path.DijkstraFrom(src, g)
	nodes, cost := shortest.To(sink.ID())
	if nodes == nil || math.IsInf(cost, 1) {
		return nil, Unreachable
	}
	return cellsOnPath(b, nodes, n), int(cost)
}

func cellsOnPath(b *Board, nodes []graph.Node, n int64) []Position {
	out := make([]Position, 0, len(nodes))
	for _, v := range nodes {
		if id := v.ID(); id < n {
			out = append(out, b.PositionOf(int(id)))
		}
	}
	return out
}
