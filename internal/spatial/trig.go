package spatial

import "math"

func sincos(a float64) (float64, float64) { return math.Sincos(a) }
