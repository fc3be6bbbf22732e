package topo

import (
	"slices"

	"geobuffer/internal/planar"
)

func northern(quad int) bool { return quad == planar.NE || quad == planar.NW }

// RightmostEdge returns the outgoing edge of node n that is furthest
// clockwise from straight down, or -1 for an empty star. It is only
// meaningful at the rightmost node of a subgraph, where every edge points
// left.
func (g *Graph) RightmostEdge(n int) (int, error) {
	star := g.Nodes[n].Star
	switch len(star) {
	case 0:
		return none, nil
	case 1:
		return star[0], nil
	}
	first, last := star[0], star[len(star)-1]
	q0, q1 := g.DirEdges[first].Quadrant, g.DirEdges[last].Quadrant
	switch {
	case northern(q0) && northern(q1):
		return first, nil
	case !northern(q0) && !northern(q1):
		return last, nil
	case g.DirEdges[first].dy() != 0:
		return first, nil
	case g.DirEdges[last].dy() != 0:
		return last, nil
	}
	return none, planar.NewTopologyErrorAt("found two horizontal edges incident on node", g.Nodes[n].Pt)
}

// ComputeDepths walks the star of the origin node of directed edge i,
// starting from i whose depths are known, and assigns the depths of every
// other edge of the star. Arriving back at i with a different depth is a
// topology error.
func (g *Graph) ComputeDepths(i int) error {
	de := &g.DirEdges[i]
	star := g.Nodes[de.Node].Star
	at := slices.Index(star, i)
	start, target := de.Depth(Left), de.Depth(Right)

	next, err := g.computeStarDepths(star[at+1:], start)
	if err != nil {
		return err
	}
	last, err := g.computeStarDepths(star[:at], next)
	if err != nil {
		return err
	}
	if last != target {
		return planar.NewTopologyErrorAt("depth mismatch", de.P0)
	}
	return nil
}

func (g *Graph) computeStarDepths(edges []int, depth int) (int, error) {
	for _, i := range edges {
		if err := g.SetEdgeDepths(i, Right, depth); err != nil {
			return 0, err
		}
		depth = g.DirEdges[i].Depth(Left)
	}
	return depth, nil
}

// resultAreaEdges returns the star edges of node n that bound the result
// in either direction.
func (g *Graph) resultAreaEdges(n int) []int {
	var out []int
	for _, i := range g.Nodes[n].Star {
		if g.DirEdges[i].InResult || g.DirEdges[g.DirEdges[i].Sym].InResult {
			out = append(out, i)
		}
	}
	return out
}

// LinkResult sets Next on every incoming result edge at node n to the
// next outgoing result edge counter-clockwise. This links the result
// edges into maximal rings.
func (g *Graph) LinkResult(n int) error {
	const (
		scanning = iota
		linking
	)
	firstOut, incoming := none, none
	state := scanning
	for _, out := range g.resultAreaEdges(n) {
		in := g.DirEdges[out].Sym
		if !g.DirEdges[out].Label.IsArea() {
			continue
		}
		if firstOut == none && g.DirEdges[out].InResult {
			firstOut = out
		}
		switch state {
		case scanning:
			if !g.DirEdges[in].InResult {
				continue
			}
			incoming = in
			state = linking
		case linking:
			if !g.DirEdges[out].InResult {
				continue
			}
			g.DirEdges[incoming].Next = out
			state = scanning
		}
	}
	if state == linking {
		if firstOut == none {
			return planar.NewTopologyErrorAt("no outgoing result edge found", g.Nodes[n].Pt)
		}
		g.DirEdges[incoming].Next = firstOut
	}
	return nil
}

// LinkMinimal sets NextMin on the edges of maximal ring ring at node n,
// turning clockwise. Following NextMin splits a maximal ring that touches
// itself into minimal rings.
func (g *Graph) LinkMinimal(n int, ring int) error {
	const (
		scanning = iota
		linking
	)
	firstOut, incoming := none, none
	state := scanning
	edges := g.resultAreaEdges(n)
	for k := len(edges) - 1; k >= 0; k-- {
		out := edges[k]
		in := g.DirEdges[out].Sym
		if firstOut == none && g.DirEdges[out].EdgeRing == ring {
			firstOut = out
		}
		switch state {
		case scanning:
			if g.DirEdges[in].EdgeRing != ring {
				continue
			}
			incoming = in
			state = linking
		case linking:
			if g.DirEdges[out].EdgeRing != ring {
				continue
			}
			g.DirEdges[incoming].NextMin = out
			state = scanning
		}
	}
	if state == linking {
		if firstOut == none {
			return planar.NewTopologyErrorAt("no outgoing edge of ring found", g.Nodes[n].Pt)
		}
		g.DirEdges[incoming].NextMin = firstOut
	}
	return nil
}

// OutgoingDegree counts the outgoing edges at node n that belong to
// maximal ring ring.
func (g *Graph) OutgoingDegree(n int, ring int) int {
	d := 0
	for _, i := range g.Nodes[n].Star {
		if g.DirEdges[i].EdgeRing == ring {
			d++
		}
	}
	return d
}
