package spatial

import (
	"math"

	"github.com/automoto/doomerang-crypt/shared/gamemath"
	"github.com/jakecoffman/cp"
	"github.com/yohamta/donburi"
)

// Sight keeps walls and targets in two chipmunk spaces so wall queries
// never see targets and target queries never see walls. The ground plane
// xz maps to chipmunk xy.
type Sight struct {
	walls   *cp.Space
	targets *cp.Space
	bodies  map[donburi.Entity]*cp.Body
	radius  float64
}

// NewSight creates an empty sight index. slop widens sight-line queries.
func NewSight(slop float64) *Sight {
	return &Sight{
		walls:   cp.NewSpace(),
		targets: cp.NewSpace(),
		bodies:  make(map[donburi.Entity]*cp.Body),
		radius:  slop,
	}
}

func planar(v gamemath.Vec3) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Z}
}

// AddWall adds a static wall segment between two ground-plane points.
func (s *Sight) AddWall(a, b gamemath.Vec3) {
	shape := cp.NewSegment(s.walls.StaticBody, planar(a), planar(b), 0)
	s.walls.AddShape(shape)
}

// SetTarget creates or moves the target circle for e.
func (s *Sight) SetTarget(e donburi.Entity, pos gamemath.Vec3, radius float64) {
	body, ok := s.bodies[e]
	if !ok {
		body = s.targets.AddBody(cp.NewKinematicBody())
		body.SetPosition(planar(pos))
		shape := s.targets.AddShape(cp.NewCircle(body, radius, cp.Vector{}))
		shape.UserData = e
		s.bodies[e] = body
		return
	}

	// The target space is never stepped, so a moved shape is re-added to
	// refresh its bounds in the query tree.
	var shapes []*cp.Shape
	body.EachShape(func(shape *cp.Shape) {
		shapes = append(shapes, shape)
	})
	for _, shape := range shapes {
		s.targets.RemoveShape(shape)
	}
	body.SetPosition(planar(pos))
	for _, shape := range shapes {
		s.targets.AddShape(shape)
	}
}

// RemoveTarget drops e from the index.
func (s *Sight) RemoveTarget(e donburi.Entity) {
	body, ok := s.bodies[e]
	if !ok {
		return
	}
	body.EachShape(func(shape *cp.Shape) {
		s.targets.RemoveShape(shape)
	})
	s.targets.RemoveBody(body)
	delete(s.bodies, e)
}

// Targets returns the set of indexed entities.
func (s *Sight) Targets() []donburi.Entity {
	out := make([]donburi.Entity, 0, len(s.bodies))
	for e := range s.bodies {
		out = append(out, e)
	}
	return out
}

func (s *Sight) Raycast(origin, dir gamemath.Vec3, maxDist float64) (Hit, bool) {
	d := gamemath.V3(dir.X, 0, dir.Z).Normalize()
	if d.LengthSq() == 0 || maxDist <= 0 {
		return Hit{}, false
	}
	end := origin.Add(d.Scale(maxDist))
	info := s.walls.SegmentQueryFirst(planar(origin), planar(end), s.radius, cp.SHAPE_FILTER_ALL)
	if info.Shape == nil {
		return Hit{}, false
	}
	return Hit{
		Point:  gamemath.V3(info.Point.X, origin.Y, info.Point.Y),
		Normal: gamemath.V3(info.Normal.X, 0, info.Normal.Y),
	}, true
}

func (s *Sight) ClearLine(a, b gamemath.Vec3) bool {
	if planar(a).Distance(planar(b)) == 0 {
		return true
	}
	info := s.walls.SegmentQueryFirst(planar(a), planar(b), s.radius, cp.SHAPE_FILTER_ALL)
	return info.Shape == nil
}

// Nearest returns the closest target within maxDist that has a clear
// sight line from the query point. Equal distances resolve to the lower
// entity id.
func (s *Sight) Nearest(from gamemath.Vec3, maxDist float64) (donburi.Entity, bool) {
	if e, ok := s.NearestAny(from, maxDist); ok && s.ClearLine(from, s.position(e, from.Y)) {
		return e, true
	}

	best := donburi.Null
	bestDist := math.Inf(1)
	for e := range s.bodies {
		pos := s.position(e, from.Y)
		d := planar(from).Distance(planar(pos))
		if d > maxDist || d > bestDist || (d == bestDist && e > best) {
			continue
		}
		if !s.ClearLine(from, pos) {
			continue
		}
		best, bestDist = e, d
	}
	return best, best != donburi.Null
}

func (s *Sight) position(e donburi.Entity, y float64) gamemath.Vec3 {
	p := s.bodies[e].Position()
	return gamemath.V3(p.X, y, p.Y)
}

// NearestAny is the broadphase form of Nearest: the closest target by
// shape distance, ignoring walls.
func (s *Sight) NearestAny(from gamemath.Vec3, maxDist float64) (donburi.Entity, bool) {
	info := s.targets.PointQueryNearest(planar(from), maxDist, cp.SHAPE_FILTER_ALL)
	if info == nil || info.Shape == nil {
		return donburi.Null, false
	}
	e, ok := info.Shape.UserData.(donburi.Entity)
	return e, ok
}
