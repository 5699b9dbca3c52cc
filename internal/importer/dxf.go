package importer

import (
	"fmt"
	"math"

	"github.com/piwi3910/AtlasPack/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

// bounds accumulates the axis-aligned extent of a shape in drawing units.
type bounds struct {
	minX, minY, maxX, maxY float64
	empty                  bool
}

func newBounds() bounds {
	return bounds{empty: true}
}

func (b *bounds) add(x, y float64) {
	if b.empty {
		b.minX, b.maxX, b.minY, b.maxY = x, x, y, y
		b.empty = false
		return
	}
	b.minX = math.Min(b.minX, x)
	b.maxX = math.Max(b.maxX, x)
	b.minY = math.Min(b.minY, y)
	b.maxY = math.Max(b.maxY, y)
}

// size returns the extent scaled to pixels, rounded up.
func (b bounds) size(scale float64) (int, int) {
	if b.empty {
		return 0, 0
	}
	w := int(math.Ceil((b.maxX - b.minX) * scale))
	h := int(math.Ceil((b.maxY - b.minY) * scale))
	return w, h
}

// ImportDXF imports sprites from a DXF file. Each closed LWPOLYLINE or
// CIRCLE becomes a sprite whose size is the shape's bounding box, scaled
// by pixelsPerUnit and rounded up. Open geometry is skipped with a warning.
func ImportDXF(path string, pixelsPerUnit float64) ImportResult {
	result := ImportResult{}
	if pixelsPerUnit <= 0 {
		pixelsPerUnit = 1
	}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	skipped := 0
	for _, ent := range entities {
		var b bounds
		var kind string

		switch e := ent.(type) {
		case *entity.LwPolyline:
			if len(e.Vertices) < 3 {
				result.Warnings = append(result.Warnings,
					"Skipped LWPOLYLINE with fewer than 3 vertices")
				continue
			}
			b, kind = lwPolylineBounds(e), "Polyline"

		case *entity.Circle:
			b = newBounds()
			b.add(e.Center[0]-e.Radius, e.Center[1]-e.Radius)
			b.add(e.Center[0]+e.Radius, e.Center[1]+e.Radius)
			kind = "Circle"

		default:
			skipped++
			continue
		}

		w, h := b.size(pixelsPerUnit)
		if w <= 0 || h <= 0 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Skipped degenerate %s with size %dx%d", kind, w, h))
			continue
		}
		label := fmt.Sprintf("%s %d", kind, len(result.Sprites)+1)
		result.Sprites = append(result.Sprites, model.NewSprite(label, w, h, 1))
	}

	if skipped > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Skipped %d entities that are not closed polylines or circles", skipped))
	}
	if len(result.Sprites) == 0 {
		result.Errors = append(result.Errors, "No closed shapes found in DXF file")
	}

	return result
}

// lwPolylineBounds returns the extent of a polyline. Bulged segments are
// sampled along their arc so curved edges are included.
func lwPolylineBounds(lw *entity.LwPolyline) bounds {
	b := newBounds()
	n := len(lw.Vertices)
	for i := 0; i < n; i++ {
		x1, y1 := lw.Vertices[i][0], lw.Vertices[i][1]
		b.add(x1, y1)

		bulge := 0.0
		if i < len(lw.Bulges) {
			bulge = lw.Bulges[i]
		}
		if math.Abs(bulge) < 1e-9 {
			continue
		}
		next := lw.Vertices[(i+1)%n]
		for _, pt := range bulgeArcPoints(x1, y1, next[0], next[1], bulge, 32) {
			b.add(pt[0], pt[1])
		}
	}
	return b
}

// bulgeArcPoints samples the arc between two vertices. The bulge is the
// tangent of a quarter of the included angle; positive bulges run
// counter-clockwise.
func bulgeArcPoints(x1, y1, x2, y2, bulge float64, segments int) [][2]float64 {
	dx, dy := x2-x1, y2-y1
	chord := math.Hypot(dx, dy)
	if chord < 1e-9 {
		return nil
	}

	theta := 4 * math.Atan(bulge) // signed included angle
	radius := chord / (2 * math.Sin(math.Abs(theta)/2))

	// Signed distance from the chord midpoint to the centre, measured to the
	// left of the chord for counter-clockwise arcs. Negative for major arcs.
	offset := radius * math.Cos(math.Abs(theta)/2)
	nx, ny := -dy/chord, dx/chord
	if bulge < 0 {
		nx, ny = -nx, -ny
	}
	cx := (x1+x2)/2 + nx*offset
	cy := (y1+y2)/2 + ny*offset

	start := math.Atan2(y1-cy, x1-cx)
	pts := make([][2]float64, 0, segments+1)
	for i := 0; i <= segments; i++ {
		a := start + theta*float64(i)/float64(segments)
		pts = append(pts, [2]float64{cx + radius*math.Cos(a), cy + radius*math.Sin(a)})
	}
	return pts
}
