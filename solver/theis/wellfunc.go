package theis

import "math"

const (
	euler   = 0.5772156649015329
	epsilon = 1e-15
	maxIter = 200
)

// W returns the Theis well function, the exponential integral E1(u).
func W(u float64) float64 {
	switch {
	case u <= 0.:
		return math.Inf(1)
	case u > 700.:
		return 0.
	case u <= 1.:
		// power series
		s, term := 0., 1.
		for k := 1; k <= maxIter; k++ {
			term *= -u / float64(k)
			d := -term / float64(k)
			s += d
			if math.Abs(d) < epsilon*math.Abs(s) {
				break
			}
		}
		return -euler - math.Log(u) + s
	}
	// continued fraction (modified Lentz)
	b := u + 1.
	c := 1. / 1e-300
	d := 1. / b
	h := d
	for i := 1; i <= maxIter; i++ {
		a := -float64(i * i)
		b += 2.
		d = 1. / (a*d + b)
		c = b + a/c
		del := c * d
		h *= del
		if math.Abs(del-1.) < epsilon {
			break
		}
	}
	return h * math.Exp(-u)
}
