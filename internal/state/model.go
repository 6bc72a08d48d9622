package state

// Point is a world-space sample. Pressure is in [0,1].
type Point struct {
	X        float32 `json:"x"`
	Y        float32 `json:"y"`
	Pressure float32 `json:"pressure"`
}

// DefaultPressure is used for samples whose input device reports none.
const DefaultPressure = 0.5

// NewPoint builds a Point, normalising out-of-range or missing pressure.
func NewPoint(x, y, pressure float32) Point {
	if pressure <= 0 || pressure > 1 {
		pressure = DefaultPressure
	}
	return Point{X: x, Y: y, Pressure: pressure}
}

// Translate returns p moved by (dx, dy).
func (p Point) Translate(dx, dy float32) Point {
	return Point{X: p.X + dx, Y: p.Y + dy, Pressure: p.Pressure}
}

// BrushProfile names a freehand tessellation parameter set.
type BrushProfile string

const (
	BrushNormal  BrushProfile = "normal"
	BrushRough   BrushProfile = "rough"
	BrushSketchy BrushProfile = "sketchy"
	BrushLaser   BrushProfile = "laser"
)

// Brushes lists every profile in toolbar order.
var Brushes = []BrushProfile{BrushNormal, BrushRough, BrushSketchy, BrushLaser}

// Valid reports whether b is a known profile.
func (b BrushProfile) Valid() bool {
	switch b {
	case BrushNormal, BrushRough, BrushSketchy, BrushLaser:
		return true
	}
	return false
}

// Stroke is a committed freehand path.
type Stroke struct {
	ID     string       `json:"id"`
	Points []Point      `json:"points"`
	Color  string       `json:"color"`
	Width  float32      `json:"width"`
	Brush  BrushProfile `json:"brush"`
}

// ShapeKind discriminates the parametric shapes.
type ShapeKind string

const (
	ShapeSquare   ShapeKind = "square"
	ShapeTriangle ShapeKind = "triangle"
	ShapeArrow    ShapeKind = "arrow"
	ShapeDiamond  ShapeKind = "diamond"
	ShapeCircle   ShapeKind = "circle"
	ShapeText     ShapeKind = "text"
)

// ShapeKinds lists every kind in toolbar order.
var ShapeKinds = []ShapeKind{ShapeSquare, ShapeTriangle, ShapeArrow, ShapeDiamond, ShapeCircle, ShapeText}

// Valid reports whether k is a known kind.
func (k ShapeKind) Valid() bool {
	switch k {
	case ShapeSquare, ShapeTriangle, ShapeArrow, ShapeDiamond, ShapeCircle, ShapeText:
		return true
	}
	return false
}

// Shape is a committed parametric element. Start and End span the anchor
// box and are not ordered.
type Shape struct {
	ID    string    `json:"id"`
	Kind  ShapeKind `json:"kind"`
	Start Point     `json:"start"`
	End   Point     `json:"end"`
	Color string    `json:"color"`
	Width float32   `json:"width"`
	Text  string    `json:"text,omitempty"`
}

// Translate moves both anchors.
func (s *Shape) Translate(dx, dy float32) {
	s.Start = s.Start.Translate(dx, dy)
	s.End = s.End.Translate(dx, dy)
}

// TargetType says which collection a Selection points into.
type TargetType string

const (
	TargetStroke TargetType = "stroke"
	TargetShape  TargetType = "shape"
)

// Selection references one element by collection and id.
type Selection struct {
	Target TargetType `json:"target"`
	ID     string     `json:"id"`
}

// Element is a tagged union over the two collections. Exactly one of
// Stroke and Shape is set.
type Element struct {
	Stroke *Stroke
	Shape  *Shape
}

// Ref returns the selection that would point at e.
func (e Element) Ref() Selection {
	if e.Stroke != nil {
		return Selection{Target: TargetStroke, ID: e.Stroke.ID}
	}
	if e.Shape != nil {
		return Selection{Target: TargetShape, ID: e.Shape.ID}
	}
	return Selection{}
}

// Width returns the stroke width of whichever element is set.
func (e Element) Width() float32 {
	if e.Stroke != nil {
		return e.Stroke.Width
	}
	if e.Shape != nil {
		return e.Shape.Width
	}
	return 0
}
