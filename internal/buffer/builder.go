package buffer

import (
	"fmt"

	"github.com/golang/geo/r2"
	"github.com/twpayne/go-geom"

	"geobuffer/internal/noding"
	"geobuffer/internal/offset"
	"geobuffer/internal/planar"
	"geobuffer/internal/topo"
)

// stage is the progress of a single buffer computation.
type stage int

const (
	stageInitial stage = iota
	stageCurvesGenerated
	stageNoded
	stageGraphBuilt
	stageSubgraphsOrdered
	stageDepthsComputed
	stageResultExtracted
)

func (s stage) String() string {
	switch s {
	case stageInitial:
		return "initial"
	case stageCurvesGenerated:
		return "curves generated"
	case stageNoded:
		return "noded"
	case stageGraphBuilt:
		return "graph built"
	case stageSubgraphsOrdered:
		return "subgraphs ordered"
	case stageDepthsComputed:
		return "depths computed"
	case stageResultExtracted:
		return "result extracted"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// builder runs one buffer computation at one precision. Every step moves
// it to the next stage; a failed step leaves it where it was.
type builder struct {
	in       *input
	distance float64
	params   offset.Params
	pm       planar.PrecisionModel
	noder    noding.Noder

	stage     stage
	curves    *curveSet
	noded     []*noding.SegmentString
	graph     *topo.Graph
	subgraphs []*subgraph
	result    *geom.MultiPolygon
}

func newBuilder(in *input, distance float64, params offset.Params, pm planar.PrecisionModel, noder noding.Noder) *builder {
	return &builder{
		in:       in,
		distance: distance,
		params:   params,
		pm:       pm,
		noder:    noder,
	}
}

func (b *builder) build() (*geom.MultiPolygon, error) {
	for b.stage != stageResultExtracted {
		if err := b.step(); err != nil {
			return nil, fmt.Errorf("%s: %w", b.stage+1, err)
		}
	}
	return b.result, nil
}

func (b *builder) step() error {
	var err error
	next := b.stage + 1
	switch b.stage {
	case stageInitial:
		b.curves = newCurveSet(b.in, b.distance, b.params, b.pm)
		if len(b.curves.curves) == 0 {
			b.result = geom.NewMultiPolygon(geom.XY)
			next = stageResultExtracted
		}
	case stageCurvesGenerated:
		b.noded, err = b.noder.Node(b.curves.curves)
	case stageNoded:
		b.graph = b.buildGraph()
	case stageGraphBuilt:
		b.subgraphs, err = subgraphs(b.graph)
	case stageSubgraphsOrdered:
		err = b.computeDepths()
	case stageDepthsComputed:
		b.result, err = b.extract()
	default:
		return fmt.Errorf("buffer: no step after stage %s", b.stage)
	}
	if err != nil {
		return err
	}
	b.stage = next
	b.log()
	return nil
}

func (b *builder) log() {
	args := []any{"stage", b.stage, "precision", b.pm}
	switch b.stage {
	case stageCurvesGenerated:
		args = append(args, "curves", len(b.curves.curves))
	case stageNoded:
		args = append(args, "strings", len(b.noded))
	case stageGraphBuilt:
		args = append(args, "nodes", len(b.graph.Nodes), "edges", len(b.graph.Edges))
	case stageSubgraphsOrdered:
		args = append(args, "subgraphs", len(b.subgraphs))
	case stageResultExtracted:
		args = append(args, "polygons", b.result.NumPolygons())
	}
	Logger().Debug(b.stage.String(), args...)
}

// buildGraph merges the noded strings into unique edges and builds the
// planar graph from them. Pieces that collapsed to a point are dropped.
func (b *builder) buildGraph() *topo.Graph {
	var edges topo.EdgeList
	for _, s := range b.noded {
		pts := dedup(s.Pts)
		if len(pts) < 2 {
			continue
		}
		edges.InsertUnique(topo.NewEdge(pts, b.curves.labels[s.ID]))
	}
	g := topo.NewGraph()
	g.AddEdges(edges.Edges())
	return g
}

func dedup(pts []r2.Point) []r2.Point {
	out := make([]r2.Point, 0, len(pts))
	for i, p := range pts {
		if i > 0 && p == out[len(out)-1] {
			continue
		}
		out = append(out, p)
	}
	return out
}

// computeDepths processes subgraphs from right to left. The depth outside
// each one is read from those already processed.
func (b *builder) computeDepths() error {
	loc := &depthLocator{}
	for _, sg := range b.subgraphs {
		outside := loc.depth(sg.rightmost)
		if err := sg.computeDepths(outside); err != nil {
			return err
		}
		sg.findResultEdges()
		loc.done = append(loc.done, sg)
	}
	return nil
}

func (b *builder) extract() (*geom.MultiPolygon, error) {
	pb := newPolygonBuilder(b.graph)
	for _, sg := range b.subgraphs {
		if err := pb.add(sg); err != nil {
			return nil, err
		}
	}
	if err := pb.placeFreeHoles(); err != nil {
		return nil, err
	}
	if err := validateResult(b.graph, b.in, b.distance, b.pm); err != nil {
		return nil, err
	}
	return pb.polygons()
}
