package mixhop

import "math"

// OppositeSideClassWeight solves for the weight of the diametrically opposite
// class so that the decaying class-pair weights normalize sensibly. The
// remaining classes receive that weight scaled by exponent^(c/2 - dist), two
// classes per distance step, which gives the geometric series below.
func OppositeSideClassWeight(numClasses int, exponent float64) float64 {
	w := 1.0
	for i := 1; i <= numClasses/2-1; i++ {
		w += 2 * math.Pow(exponent, float64(i))
	}
	return 1.0 / w
}

// ColorWeight returns the attachment weight between two 1-indexed classes.
// Classes sit on a ring of size numClasses; the weight decays with circular
// distance, with a flat weight for the diametrically opposite class. Only
// defined for even class counts.
func ColorWeight(col1, col2 int, exponent float64, numClasses int, oppositeWeight float64) float64 {
	dist := col1 - col2
	if dist < 0 {
		dist = -dist
	}
	if numClasses-dist < dist {
		dist = numClasses - dist
	}

	half := numClasses / 2
	if dist == half {
		return oppositeWeight
	}
	return math.Pow(exponent, float64(half-dist)) * oppositeWeight
}
