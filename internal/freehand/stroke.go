// Package freehand turns pressure-sampled pointer paths into fillable
// outline polygons.
package freehand

import (
	"slices"

	"github.com/chewxy/math32"

	"SketchBoard/internal/state"
)

const (
	ratePressureChange = 0.275
	fixedPi            = math32.Pi + 0.0001
	capSteps           = 13
	endCapSteps        = 29
)

// Options control a single tessellation.
type Options struct {
	// Size is the base diameter of the stroke.
	Size float32
	// Thinning is how much pressure affects the radius, in [-1, 1].
	Thinning float32
	// Smoothing is the minimum rail vertex spacing as a fraction of Size.
	Smoothing float32
	// Streamline is how strongly raw samples are pulled toward the previous
	// one, in [0, 1].
	Streamline float32
	// Easing shapes the pressure curve; nil means linear.
	Easing func(float32) float32
	// SimulatePressure derives pressure from pointer speed.
	SimulatePressure bool
	// Last marks the input as complete so the final sample is kept exactly.
	Last bool
}

type strokePoint struct {
	point         Vec
	pressure      float32
	distance      float32
	vector        Vec
	runningLength float32
}

// Outline returns the closed outline polygon for points. It returns fewer
// than two vertices only for empty input or a non-positive size.
func Outline(points []state.Point, o Options) []Vec {
	if o.Easing == nil {
		o.Easing = Linear
	}
	return outline(strokePoints(points, o), o)
}

func strokePoints(points []state.Point, o Options) []strokePoint {
	if len(points) == 0 {
		return nil
	}
	t := 0.15 + (1-o.Streamline)*0.85
	pts := slices.Clone(points)
	if len(pts) == 1 {
		pts = append(pts, pts[0].Translate(1, 1))
	}
	if len(pts) == 2 {
		a, b := pts[0], pts[1]
		pts = pts[:1]
		for i := 1; i < 5; i++ {
			f := float32(i) / 4
			pts = append(pts, state.Point{
				X:        a.X + (b.X-a.X)*f,
				Y:        a.Y + (b.Y-a.Y)*f,
				Pressure: a.Pressure + (b.Pressure-a.Pressure)*f,
			})
		}
	}

	out := []strokePoint{{point: vec(pts[0]), pressure: pressureOf(pts[0]), vector: Vec{1, 1}}}
	prev := out[0]
	var running float32
	reachedMin := false
	last := len(pts) - 1
	for i := 1; i < len(pts); i++ {
		point := vec(pts[i])
		if !(o.Last && i == last) {
			point = prev.point.lerp(point, t)
		}
		if point.eq(prev.point) {
			continue
		}
		d := point.dist(prev.point)
		running += d
		if i < last && !reachedMin {
			if running < o.Size {
				continue
			}
			reachedMin = true
		}
		prev = strokePoint{
			point:         point,
			pressure:      pressureOf(pts[i]),
			distance:      d,
			vector:        prev.point.sub(point).uni(),
			runningLength: running,
		}
		out = append(out, prev)
	}
	if len(out) > 1 {
		out[0].vector = out[1].vector
	} else {
		out[0].vector = Vec{}
	}
	return out
}

func strokeRadius(size, thinning, pressure float32, easing func(float32) float32) float32 {
	return size * easing(0.5-thinning*(0.5-pressure))
}

func simulatedPressure(prev, distance, size float32) float32 {
	sp := math32.Min(1, distance/size)
	rp := math32.Min(1, 1-sp)
	return math32.Min(1, prev+(rp-prev)*(sp*ratePressureChange))
}

func outline(points []strokePoint, o Options) []Vec {
	n := len(points)
	if n == 0 || o.Size <= 0 {
		return nil
	}
	size := o.Size
	total := points[n-1].runningLength
	minDistance := (size * o.Smoothing) * (size * o.Smoothing)

	prevPressure := points[0].pressure
	for _, cur := range points[:min(10, n)] {
		p := cur.pressure
		if o.SimulatePressure {
			p = simulatedPressure(prevPressure, cur.distance, size)
		}
		prevPressure = (prevPressure + p) / 2
	}

	radius := strokeRadius(size, o.Thinning, points[n-1].pressure, o.Easing)
	firstRadius := float32(-1)
	prevVector := points[0].vector
	pl, pr := points[0].point, points[0].point
	var left, right []Vec
	prevSharp := false

	for i, cur := range points {
		pressure := cur.pressure
		if i < n-1 && total-cur.runningLength < 3 {
			continue
		}
		if o.Thinning != 0 {
			if o.SimulatePressure {
				pressure = simulatedPressure(prevPressure, cur.distance, size)
			}
			radius = strokeRadius(size, o.Thinning, pressure, o.Easing)
		} else {
			radius = size / 2
		}
		radius = math32.Max(0.01, radius)
		if firstRadius < 0 {
			firstRadius = radius
		}

		nextVector, nextDpr := cur.vector, float32(1)
		if i < n-1 {
			nextVector = points[i+1].vector
			nextDpr = cur.vector.dot(nextVector)
		}
		sharp := cur.vector.dot(prevVector) < 0 && !prevSharp
		nextSharp := i < n-1 && nextDpr < 0

		if sharp || nextSharp {
			offset := prevVector.per().mul(radius)
			var tl, tr Vec
			for k := 0; k <= capSteps; k++ {
				t := float32(k) / capSteps
				tl = cur.point.sub(offset).rotAround(cur.point, fixedPi*t)
				tr = cur.point.add(offset).rotAround(cur.point, -fixedPi*t)
				left = append(left, tl)
				right = append(right, tr)
			}
			pl, pr = tl, tr
			if nextSharp {
				prevSharp = true
			}
			continue
		}
		prevSharp = false

		if i == n-1 {
			offset := cur.vector.per().mul(radius)
			left = append(left, cur.point.sub(offset))
			right = append(right, cur.point.add(offset))
			continue
		}

		offset := nextVector.lerp(cur.vector, nextDpr).per().mul(radius)
		if tl := cur.point.sub(offset); i <= 1 || pl.dist2(tl) > minDistance {
			left = append(left, tl)
			pl = tl
		}
		if tr := cur.point.add(offset); i <= 1 || pr.dist2(tr) > minDistance {
			right = append(right, tr)
			pr = tr
		}
		prevPressure = pressure
		prevVector = cur.vector
	}

	first := points[0].point
	last := first.add(Vec{1, 1})
	if n > 1 {
		last = points[n-1].point
	}
	if firstRadius < 0 {
		firstRadius = radius
	}

	if n == 1 {
		start := first.prj(first.sub(last).per().uni(), -firstRadius)
		dot := make([]Vec, 0, capSteps)
		for k := 1; k <= capSteps; k++ {
			dot = append(dot, start.rotAround(first, fixedPi*2*float32(k)/capSteps))
		}
		return dot
	}

	var startCap []Vec
	if len(right) > 0 {
		for k := 1; k <= capSteps; k++ {
			startCap = append(startCap, right[0].rotAround(first, fixedPi*float32(k)/capSteps))
		}
	}

	direction := points[n-1].vector.neg().per()
	start := last.prj(direction, radius)
	endCap := make([]Vec, 0, endCapSteps)
	for k := 1; k < endCapSteps; k++ {
		endCap = append(endCap, start.rotAround(last, fixedPi*3*float32(k)/endCapSteps))
	}

	out := make([]Vec, 0, len(left)+len(endCap)+len(right)+len(startCap))
	out = append(out, left...)
	out = append(out, endCap...)
	for i := len(right) - 1; i >= 0; i-- {
		out = append(out, right[i])
	}
	return append(out, startCap...)
}

func vec(p state.Point) Vec {
	return Vec{X: p.X, Y: p.Y}
}

func pressureOf(p state.Point) float32 {
	if p.Pressure <= 0 {
		return state.DefaultPressure
	}
	return p.Pressure
}
