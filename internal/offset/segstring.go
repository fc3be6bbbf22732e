package offset

import (
	"github.com/golang/geo/r2"

	"geobuffer/internal/planar"
)

// curve accumulates the vertices of one raw offset curve. Points are rounded
// to the precision model and points closer than minDist to the previous
// vertex are dropped.
type curve struct {
	pm      planar.PrecisionModel
	minDist float64
	pts     []r2.Point
}

func (c *curve) add(p r2.Point) {
	p = c.pm.MakePointPrecise(p)
	if n := len(c.pts); n > 0 && p.Sub(c.pts[n-1]).Norm() < c.minDist {
		return
	}
	c.pts = append(c.pts, p)
}

func (c *curve) addAll(pts []r2.Point, forward bool) {
	if forward {
		for _, p := range pts {
			c.add(p)
		}
		return
	}
	for i := len(pts) - 1; i >= 0; i-- {
		c.add(pts[i])
	}
}

func (c *curve) close() {
	if len(c.pts) < 1 {
		return
	}
	if first := c.pts[0]; first != c.pts[len(c.pts)-1] {
		c.pts = append(c.pts, first)
	}
}

func (c *curve) points() []r2.Point {
	return append([]r2.Point(nil), c.pts...)
}
