package model

import "fmt"

// Size is an integer width/height pair in pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func NewSize(w, h int) Size {
	return Size{Width: w, Height: h}
}

// Area returns width * height.
func (s Size) Area() int {
	return s.Width * s.Height
}

// Perimeter returns 2 * (width + height).
func (s Size) Perimeter() int {
	return (s.Width + s.Height) * 2
}

// MaxSide returns the longer of the two dimensions.
func (s Size) MaxSide() int {
	if s.Width > s.Height {
		return s.Width
	}
	return s.Height
}

// Fits reports whether the size fits inside a square of side max without rotation.
func (s Size) Fits(max int) bool {
	return s.Width <= max && s.Height <= max
}

// Rotated returns the size with width and height swapped.
func (s Size) Rotated() Size {
	return Size{Width: s.Height, Height: s.Width}
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Rect is a positioned rectangle. X grows to the right, Y grows downwards.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// RectFromSize returns a rectangle of the given size at the origin.
func RectFromSize(s Size) Rect {
	return Rect{Width: s.Width, Height: s.Height}
}

func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

func (r Rect) Area() int {
	return r.Width * r.Height
}

func (r Rect) Perimeter() int {
	return (r.Width + r.Height) * 2
}

// Right returns the exclusive right edge.
func (r Rect) Right() int {
	return r.X + r.Width
}

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// Empty reports whether the rectangle covers no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Intersects returns true if the two rectangles overlap (not just touch).
func (r Rect) Intersects(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.X < o.Right() && o.X < r.Right() &&
		r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Contains returns true if o lies fully inside r.
func (r Rect) Contains(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y && o.Right() <= r.Right() && o.Bottom() <= r.Bottom()
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}

// RectMapping records where one input rectangle ended up.
// InputIndex is the position of the rectangle in the caller's input list.
type RectMapping struct {
	InputIndex int  `json:"input_index"`
	InputSize  Size `json:"input_size"`
	MappedRect Rect `json:"mapped_rect"`
	Rotated    bool `json:"rotated"` // MappedRect has width and height swapped
}

func NewRectMapping(size Size, index int) RectMapping {
	return RectMapping{
		InputIndex: index,
		InputSize:  size,
		MappedRect: RectFromSize(size),
	}
}

// Bin is one packed container and the rectangles accepted into it,
// in acceptance order.
type Bin struct {
	Size     Size          `json:"size"`
	Mappings []RectMapping `json:"mappings"`
}

// UsedArea returns the total area covered by accepted rectangles.
func (b Bin) UsedArea() int {
	total := 0
	for _, m := range b.Mappings {
		total += m.MappedRect.Area()
	}
	return total
}

// Efficiency returns the usage percentage.
func (b Bin) Efficiency() float64 {
	ta := b.Size.Area()
	if ta == 0 {
		return 0
	}
	return float64(b.UsedArea()) / float64(ta) * 100.0
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
