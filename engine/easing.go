package engine

// Easing maps normalized progress t in [0,1] to an eased value in [0,1].
type Easing func(t float64) float64

func Linear(t float64) float64 { return t }

func EaseOutQuad(t float64) float64 { return 1 - (1-t)*(1-t) }

func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - 2*(1-t)*(1-t)
}
