// Package shapes accumulates SHACL shape statements for one role: a
// statement graph with set semantics, the per-file variable index, and the
// conjunction constraints derived from it.
package shapes

import "github.com/knakk/rdf"

// Graph is an append-only triple collection with set semantics on exact
// triple identity. Insertion order is preserved so serialization is
// deterministic. No statement is removed or mutated after being added.
type Graph struct {
	triples []rdf.Triple
	seen    map[string]struct{}
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{seen: make(map[string]struct{})}
}

// Add appends a triple unless an identical one is already present.
func (g *Graph) Add(t rdf.Triple) {
	key := t.Serialize(rdf.NTriples)
	if _, ok := g.seen[key]; ok {
		return
	}
	g.seen[key] = struct{}{}
	g.triples = append(g.triples, t)
}

// Triples returns the accumulated triples in insertion order.
func (g *Graph) Triples() []rdf.Triple {
	return g.triples
}

// Len returns the number of distinct triples.
func (g *Graph) Len() int {
	return len(g.triples)
}

// Empty reports whether the graph holds no triples.
func (g *Graph) Empty() bool {
	return len(g.triples) == 0
}
