package spatial

import (
	"math"

	"github.com/automoto/doomerang-crypt/shared/gamemath"
	"github.com/automoto/doomerang-crypt/tags"
	"github.com/solarlune/resolv"
)

// Patch is a walkable ground footprint on the xz plane. A ramp rises from
// Y0 at its start edge to Y1 at the far edge along Axis.
type Patch struct {
	X, Z   float64
	W, D   float64
	Y0, Y1 float64
	Axis   gamemath.RampAxis
}

func (p Patch) contains(x, z float64) bool {
	return x >= p.X && x <= p.X+p.W && z >= p.Z && z <= p.Z+p.D
}

func (p Patch) surfaceY(x, z float64) float64 {
	return gamemath.RampSurfaceY(x, z, p.X, p.Z, p.W, p.D, p.Y0, p.Y1, p.Axis)
}

func (p Patch) normal() gamemath.Vec3 {
	switch p.Axis {
	case gamemath.RampAlongX:
		if p.W > 0 {
			return gamemath.V3(-(p.Y1-p.Y0)/p.W, 1, 0).Normalize()
		}
	case gamemath.RampAlongZ:
		if p.D > 0 {
			return gamemath.V3(0, 1, -(p.Y1-p.Y0)/p.D).Normalize()
		}
	}
	return gamemath.V3(0, 1, 0)
}

// Ground indexes patches in a resolv space laid out on the xz plane.
// resolv has no negative coordinates, so everything is shifted by the
// origin of the level extents.
type Ground struct {
	space            *resolv.Space
	patches          []Patch
	originX, originZ float64
}

// NewGround creates an empty ground index covering the given extents.
func NewGround(minX, minZ, maxX, maxZ float64, cellSize int) *Ground {
	if cellSize <= 0 {
		cellSize = 4
	}
	w := int(math.Ceil(maxX-minX)) + cellSize
	h := int(math.Ceil(maxZ-minZ)) + cellSize

	return &Ground{
		space:   resolv.NewSpace(w, h, cellSize, cellSize),
		originX: minX,
		originZ: minZ,
	}
}

// Add registers a patch.
func (g *Ground) Add(p Patch) {
	objTags := []string{tags.ResolvGround}
	if p.Axis != gamemath.RampNone {
		objTags = append(objTags, tags.ResolvRamp)
	}
	// resolv maps an object to cells through X+W-1, so the object is one
	// unit wider than the patch to keep the far edge indexed.
	obj := resolv.NewObject(p.X-g.originX, p.Z-g.originZ, p.W+1, p.D+1, objTags...)
	obj.SetShape(resolv.NewRectangle(0, 0, p.W, p.D))
	obj.Data = len(g.patches)
	g.patches = append(g.patches, p)
	g.space.Add(obj)
}

func (g *Ground) Len() int {
	return len(g.patches)
}

// CastDown finds the highest patch surface under origin that is not above
// it. The resolv cell under the point is the broadphase; each candidate is
// then tested against its exact footprint.
func (g *Ground) CastDown(origin gamemath.Vec3, maxDist float64) (Hit, bool) {
	cell := g.space.Cell(g.space.WorldToSpace(origin.X-g.originX, origin.Z-g.originZ))
	if cell == nil {
		return Hit{}, false
	}

	best := -1
	bestY := math.Inf(-1)
	normal := gamemath.V3(0, 1, 0)
	for _, obj := range cell.Objects {
		if !obj.HasTags(tags.ResolvGround) {
			continue
		}
		idx, ok := obj.Data.(int)
		if !ok {
			continue
		}
		p := g.patches[idx]
		if !p.contains(origin.X, origin.Z) {
			continue
		}
		y := p.surfaceY(origin.X, origin.Z)
		if y > origin.Y || origin.Y-y > maxDist {
			continue
		}
		if y > bestY {
			best, bestY = idx, y
			normal = gamemath.V3(0, 1, 0)
			if obj.HasTags(tags.ResolvRamp) {
				normal = p.normal()
			}
		}
	}
	if best < 0 {
		return Hit{}, false
	}
	return Hit{
		Point:  gamemath.V3(origin.X, bestY, origin.Z),
		Normal: normal,
	}, true
}
