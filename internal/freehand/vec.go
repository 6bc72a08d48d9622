package freehand

import "github.com/chewxy/math32"

// Vec is an outline vertex.
type Vec struct {
	X, Y float32
}

func (a Vec) add(b Vec) Vec { return Vec{a.X + b.X, a.Y + b.Y} }

func (a Vec) sub(b Vec) Vec { return Vec{a.X - b.X, a.Y - b.Y} }

func (a Vec) mul(n float32) Vec { return Vec{a.X * n, a.Y * n} }

func (a Vec) neg() Vec { return Vec{-a.X, -a.Y} }

// per is the perpendicular, rotated a quarter turn.
func (a Vec) per() Vec { return Vec{a.Y, -a.X} }

func (a Vec) dot(b Vec) float32 { return a.X*b.X + a.Y*b.Y }

func (a Vec) eq(b Vec) bool { return a.X == b.X && a.Y == b.Y }

func (a Vec) len() float32 { return math32.Hypot(a.X, a.Y) }

func (a Vec) dist(b Vec) float32 { return a.sub(b).len() }

func (a Vec) dist2(b Vec) float32 {
	d := a.sub(b)
	return d.dot(d)
}

func (a Vec) lerp(b Vec, t float32) Vec { return a.add(b.sub(a).mul(t)) }

// uni normalises a; the zero vector stays zero.
func (a Vec) uni() Vec {
	l := a.len()
	if l == 0 {
		return Vec{}
	}
	return a.mul(1 / l)
}

// rotAround rotates a about c by r radians.
func (a Vec) rotAround(c Vec, r float32) Vec {
	s, co := math32.Sin(r), math32.Cos(r)
	px, py := a.X-c.X, a.Y-c.Y
	return Vec{px*co - py*s + c.X, px*s + py*co + c.Y}
}

// prj moves a along direction b by c.
func (a Vec) prj(b Vec, c float32) Vec { return a.add(b.mul(c)) }
