// Package features places nodes in 2D feature space via a class-conditioned
// rotated Gaussian mixture, following the Mixhop synthetic data construction.
package features

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
)

const (
	// Radius of the circle the class centroids sit on
	Radius = 300.0

	varianceFactor = 350.0
)

// Make draws one 2D point per node from its class's rotated Gaussian. Class k
// is centered at (Radius*sin(k*2π/c), Radius*cos(k*2π/c)); the base covariance
// diag(70*vf, 20*vf) is rotated cumulatively by 2π/c per class. labels holds
// 0-indexed classes, one per node. The returned matrix has shape [n, 2].
func Make(numClasses int, labels []int, n int, rng *rand.Rand) (*mat.Dense, error) {
	if numClasses < 1 {
		return nil, fmt.Errorf("need at least one class, got %d", numClasses)
	}
	if len(labels) != n {
		return nil, fmt.Errorf("label count %d does not match n=%d", len(labels), n)
	}

	theta := 2 * math.Pi / float64(numClasses)
	rot := mat.NewDense(2, 2, []float64{
		math.Cos(theta), -math.Sin(theta),
		math.Sin(theta), math.Cos(theta),
	})
	cov := mat.NewDense(2, 2, []float64{
		70.0 * varianceFactor, 0,
		0, 20.0 * varianceFactor,
	})

	allx := mat.NewDense(n, 2, nil)
	for cls := 0; cls < numClasses; cls++ {
		angle := float64(cls) * theta
		mu := []float64{Radius * math.Sin(angle), Radius * math.Cos(angle)}

		normal, ok := distmv.NewNormal(mu, symmetrize(cov), rng)
		if !ok {
			return nil, fmt.Errorf("covariance for class %d is not positive definite", cls)
		}

		indices := classIndices(labels, cls)
		rng.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
		point := make([]float64, 2)
		for _, v := range indices {
			normal.Rand(point)
			allx.Set(v, 0, point[0])
			allx.Set(v, 1, point[1])
		}

		// cov <- rotᵀ · cov · rot
		var tmp, next mat.Dense
		tmp.Mul(cov, rot)
		next.Mul(rot.T(), &tmp)
		cov = &next
	}

	return allx, nil
}

// classIndices returns the node indices bearing the given label
func classIndices(labels []int, cls int) []int {
	var indices []int
	for v, l := range labels {
		if l == cls {
			indices = append(indices, v)
		}
	}
	return indices
}

// symmetrize averages the off-diagonal entries so numerical drift from the
// repeated rotations cannot break the symmetric-matrix requirement
func symmetrize(m *mat.Dense) *mat.SymDense {
	off := (m.At(0, 1) + m.At(1, 0)) / 2
	return mat.NewSymDense(2, []float64{
		m.At(0, 0), off,
		off, m.At(1, 1),
	})
}
