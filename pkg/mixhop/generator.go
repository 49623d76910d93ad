package mixhop

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/sampleuv"
)

// Default growth constants from the Mixhop benchmark setup
const (
	DefaultEdgesPerNode = 6
	DefaultSeedNodes    = 40
	DefaultExponent     = 2.0
)

// GeneratorParams describes one homophily-controlled attachment run
type GeneratorParams struct {
	N          int       `json:"n"`           // total number of nodes
	M          int       `json:"m"`           // edges sampled per newly added node
	M0         int       `json:"m0"`          // number of seed nodes
	H          float64   `json:"h"`           // homophily level
	ClassRatio []float64 `json:"class_ratio"` // per-class selection probability
	Exponent   float64   `json:"exponent"`    // decay base for the class-pair weights
}

// DefaultGeneratorParams builds params with a uniform class ratio and the
// standard Mixhop growth constants
func DefaultGeneratorParams(n, numClasses int, h float64) GeneratorParams {
	ratio := make([]float64, numClasses)
	for i := range ratio {
		ratio[i] = 1.0 / float64(numClasses)
	}
	return GeneratorParams{
		N:          n,
		M:          DefaultEdgesPerNode,
		M0:         DefaultSeedNodes,
		H:          h,
		ClassRatio: ratio,
		Exponent:   DefaultExponent,
	}
}

// NumClasses returns the class count
func (p GeneratorParams) NumClasses() int { return len(p.ClassRatio) }

// OppositeWeight returns the precomputed weight of the diametrically opposite class
func (p GeneratorParams) OppositeWeight() float64 {
	return OppositeSideClassWeight(p.NumClasses(), p.Exponent)
}

// Validate checks the parameters. Odd class counts are rejected: the flat
// weight for the diametrically opposite class is only well-defined when the
// class ring has an exact opposite side.
func (p GeneratorParams) Validate() error {
	if p.N <= 0 {
		return fmt.Errorf("node count must be positive: n=%d", p.N)
	}
	if p.M <= 0 || p.M > p.N {
		return fmt.Errorf("edges per node must be in [1, n]: m=%d, n=%d", p.M, p.N)
	}
	if p.M0 <= 0 || p.M0 > p.N {
		return fmt.Errorf("seed node count must be in [1, n]: m0=%d, n=%d", p.M0, p.N)
	}
	if p.M >= p.M0 {
		return fmt.Errorf("edges per node must be below the seed node count: m=%d, m0=%d", p.M, p.M0)
	}
	if p.H < 0 || p.H > 1 {
		return fmt.Errorf("homophily must be in [0, 1]: h=%v", p.H)
	}
	c := len(p.ClassRatio)
	if c < 2 {
		return fmt.Errorf("need at least 2 classes, got %d", c)
	}
	if c%2 != 0 {
		return fmt.Errorf("class count must be even, got %d", c)
	}
	sum := 0.0
	for i, r := range p.ClassRatio {
		if r < 0 {
			return fmt.Errorf("class ratio %d is negative: %v", i, r)
		}
		sum += r
	}
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("class ratio must sum to 1, got %v", sum)
	}
	if p.Exponent <= 0 {
		return fmt.Errorf("exponent must be positive: %v", p.Exponent)
	}
	return nil
}

// GenerateGraph grows a graph under the homophily-biased preferential
// attachment rule. The first M0 nodes form a path (node 0 stays isolated and
// keeps zero attachment mass); every later node draws its class from the class
// ratio and attaches to M distinct existing nodes, sampled without replacement
// with probability proportional to degree(u)*h for same-class candidates and
// degree(u)*(1-h)*ColorWeight(...) otherwise.
func GenerateGraph(params GeneratorParams, rng *rand.Rand) (*Graph, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generator params: %w", err)
	}

	opposite := params.OppositeWeight()
	g := NewGraph(params.N)

	for v := 0; v < params.M0; v++ {
		g.AddNode(drawColor(params.ClassRatio, rng))
		if v > 1 {
			if err := g.AddEdge(v, v-1); err != nil {
				return nil, err
			}
		}
	}

	for v := params.M0; v < params.N; v++ {
		col := drawColor(params.ClassRatio, rng)
		targets, err := attachmentTargets(g, params, col, opposite, rng)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", v, err)
		}
		g.AddNode(col)
		for _, u := range targets {
			if err := g.AddEdge(v, u); err != nil {
				return nil, err
			}
		}
	}

	return g, nil
}

// drawColor samples a 1-indexed class from the ratio vector
func drawColor(classRatio []float64, rng *rand.Rand) int {
	r := rng.Float64()
	acc := 0.0
	for i, p := range classRatio {
		acc += p
		if r < acc {
			return i + 1
		}
	}
	return len(classRatio)
}

// attachmentTargets samples M distinct existing nodes for a new node of class
// col, weighted by degree and class affinity. sampleuv.Weighted normalizes the
// raw weights and removes each taken index, so the M draws are without
// replacement.
func attachmentTargets(g *Graph, params GeneratorParams, col int, opposite float64, rng *rand.Rand) ([]int, error) {
	weights := make([]float64, g.NumNodes)
	for u := 0; u < g.NumNodes; u++ {
		deg := float64(g.Degrees[u])
		if g.Colors[u] == col {
			weights[u] = deg * params.H
		} else {
			weights[u] = deg * (1 - params.H) *
				ColorWeight(col, g.Colors[u], params.Exponent, params.NumClasses(), opposite)
		}
	}

	w := sampleuv.NewWeighted(weights, rng)
	targets := make([]int, 0, params.M)
	for i := 0; i < params.M; i++ {
		u, ok := w.Take()
		if !ok {
			return nil, fmt.Errorf("attachment mass exhausted after %d of %d draws", i, params.M)
		}
		targets = append(targets, u)
	}
	return targets, nil
}
