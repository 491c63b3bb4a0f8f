package multiblock

import (
	"math"

	"github.com/notargets/gomesh/utils"
	"gonum.org/v1/gonum/spatial/r3"
)

// CurveKind names the geometric variant of an edge
type CurveKind uint8

const (
	CurveLine CurveKind = iota
	CurveZArc
	CurveArc3P
)

func (k CurveKind) String() string {
	return [...]string{"line", "zarc", "arc3p"}[k]
}

// Curve is the geometric description of an edge between its two end points
type Curve interface {
	Kind() CurveKind
	// point evaluates the curve from a to b at parametric position r in (0,1)
	point(s *Skeleton, a, b r3.Vec, r float64) r3.Vec
	check(s *Skeleton, a, b r3.Vec) error
}

// Line is a straight edge
type Line struct{}

func (Line) Kind() CurveKind { return CurveLine }

func (Line) point(_ *Skeleton, a, b r3.Vec, r float64) r3.Vec {
	return r3.Add(r3.Scale(1-r, a), r3.Scale(r, b))
}

func (Line) check(*Skeleton, r3.Vec, r3.Vec) error { return nil }

// ZArc is a circular arc about the z axis. The radius and height blend linearly between the end points.
type ZArc struct {
	Winding int
}

func (ZArc) Kind() CurveKind { return CurveZArc }

func (c ZArc) angles(a, b r3.Vec) (w0, w1 float64) {
	w0 = math.Atan2(a.Y, a.X)
	w1 = math.Atan2(b.Y, b.X)
	if c.Winding >= 0 {
		if w1 <= w0 {
			w1 += 2 * math.Pi
		}
	} else {
		if w1 >= w0 {
			w1 -= 2 * math.Pi
		}
	}
	return
}

func (c ZArc) point(_ *Skeleton, a, b r3.Vec, r float64) r3.Vec {
	var (
		w0, w1 = c.angles(a, b)
		w      = utils.Lerp(w0, w1, r)
		rho    = utils.Lerp(math.Hypot(a.X, a.Y), math.Hypot(b.X, b.Y), r)
	)
	return r3.Vec{X: rho * math.Cos(w), Y: rho * math.Sin(w), Z: utils.Lerp(a.Z, b.Z, r)}
}

func (c ZArc) check(_ *Skeleton, a, b r3.Vec) error {
	if math.Hypot(a.X, a.Y) < utils.GEOMTOL || math.Hypot(b.X, b.Y) < utils.GEOMTOL {
		return newError(ConfigError, "edge", -1, "z-arc end point lies on the z axis")
	}
	return nil
}

// Arc3P is a circular arc about an explicit center node, in the plane of the center and both end points
type Arc3P struct {
	Center  int
	Winding int
}

func (Arc3P) Kind() CurveKind { return CurveArc3P }

// frame returns the in-plane basis with e1 toward a and the swept angle from a to b
func (c Arc3P) frame(center, a, b r3.Vec) (e1, e2 r3.Vec, w1 float64) {
	var (
		u = r3.Sub(a, center)
		v = r3.Sub(b, center)
		n = r3.Unit(r3.Cross(u, v))
	)
	e1 = r3.Unit(u)
	e2 = r3.Cross(n, e1)
	w1 = math.Atan2(r3.Dot(v, e2), r3.Dot(v, e1))
	if c.Winding < 0 {
		w1 -= 2 * math.Pi
	}
	return
}

func (c Arc3P) point(s *Skeleton, a, b r3.Vec, r float64) r3.Vec {
	var (
		center     = s.Nodes[c.Center].X
		e1, e2, w1 = c.frame(center, a, b)
		w          = r * w1
		rho        = utils.Lerp(r3.Norm(r3.Sub(a, center)), r3.Norm(r3.Sub(b, center)), r)
	)
	return r3.Add(center, r3.Add(r3.Scale(rho*math.Cos(w), e1), r3.Scale(rho*math.Sin(w), e2)))
}

func (c Arc3P) check(s *Skeleton, a, b r3.Vec) error {
	if c.Center < 0 || c.Center >= len(s.Nodes) {
		return newError(ConfigError, "edge", -1, "arc center node %d out of range", c.Center)
	}
	var (
		center = s.Nodes[c.Center].X
		u      = r3.Sub(a, center)
		v      = r3.Sub(b, center)
		scale  = r3.Norm(u) * r3.Norm(v)
	)
	if scale < utils.GEOMTOL || r3.Norm(r3.Cross(u, v)) <= utils.GEOMTOL*scale {
		return newError(ConfigError, "edge", -1, "arc end points and center node %d do not span a plane", c.Center)
	}
	return nil
}

// SurfaceKind names the projection applied to interpolated face points
type SurfaceKind uint8

const (
	SurfaceFlat SurfaceKind = iota
	SurfaceSphere
	SurfaceRevolve
)

func (k SurfaceKind) String() string {
	return [...]string{"flat", "sphere", "revolve"}[k]
}

// Surface snaps a transfinite face point onto the analytic surface the face lies on.
// e holds the boundary points used for the blend: e[0] on edge 0 at r, e[1] on edge 1 at s,
// e[2] on edge 2 at 1-r and e[3] on edge 3 at 1-s.
type Surface interface {
	Kind() SurfaceKind
	project(p r3.Vec, e [4]r3.Vec, r, s float64) r3.Vec
}

type Flat struct{}

func (Flat) Kind() SurfaceKind { return SurfaceFlat }

func (Flat) project(p r3.Vec, _ [4]r3.Vec, _, _ float64) r3.Vec { return p }

// Sphere projects radially onto the sphere about Center
type Sphere struct {
	Center r3.Vec
	Radius float64
}

func (Sphere) Kind() SurfaceKind { return SurfaceSphere }

func (sp Sphere) project(p r3.Vec, _ [4]r3.Vec, _, _ float64) r3.Vec {
	d := r3.Sub(p, sp.Center)
	if r3.Norm(d) < utils.GEOMTOL {
		return p
	}
	return r3.Add(sp.Center, r3.Scale(sp.Radius, r3.Unit(d)))
}

/*
Revolve is a surface of revolution about the z axis. When ArcsAlongR is set, face edges 0 and 2 are the z-arcs and
the radius at a point is blended from edges 3 and 1 across r, otherwise edges 1 and 3 are the arcs and the radius
is blended from edges 0 and 2 across s. The angle and height of the point are kept.
*/
type Revolve struct {
	ArcsAlongR bool
}

func (Revolve) Kind() SurfaceKind { return SurfaceRevolve }

func (rv Revolve) project(p r3.Vec, e [4]r3.Vec, r, s float64) r3.Vec {
	var (
		rho   float64
		theta = math.Atan2(p.Y, p.X)
	)
	if rv.ArcsAlongR {
		rho = utils.Lerp(math.Hypot(e[3].X, e[3].Y), math.Hypot(e[1].X, e[1].Y), r)
	} else {
		rho = utils.Lerp(math.Hypot(e[0].X, e[0].Y), math.Hypot(e[2].X, e[2].Y), s)
	}
	return r3.Vec{X: rho * math.Cos(theta), Y: rho * math.Sin(theta), Z: p.Z}
}
