package common

// Rect is an axis-aligned bounding box in world pixels.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

func (r *Rect) Intersects(other *Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// CenterX returns the horizontal center of the rect.
func (r *Rect) CenterX() float64 {
	return r.X + r.Width/2.0
}

// CenterY returns the vertical center of the rect.
func (r *Rect) CenterY() float64 {
	return r.Y + r.Height/2.0
}
