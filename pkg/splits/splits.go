// Package splits partitions node indices into train/validation/test sets,
// either stratified per class or by a single global shuffle.
package splits

import (
	"fmt"
	"math/rand/v2"
)

// DefaultRatio is the standard 60/20/20 train/val/test ratio
var DefaultRatio = []float64{60, 20, 20}

// Split holds three disjoint index sets over the node range
type Split struct {
	Train []int `json:"train"`
	Val   []int `json:"val"`
	Test  []int `json:"test"`
}

// Validate checks that the three sets are internally duplicate-free, pairwise
// disjoint, and stay within [0, universe)
func (s Split) Validate(universe int) error {
	seen := make(map[int]string, len(s.Train)+len(s.Val)+len(s.Test))
	for _, part := range []struct {
		name    string
		indices []int
	}{
		{"train", s.Train},
		{"val", s.Val},
		{"test", s.Test},
	} {
		for _, idx := range part.indices {
			if idx < 0 || idx >= universe {
				return fmt.Errorf("%s index %d out of range [0, %d)", part.name, idx, universe)
			}
			if prev, ok := seen[idx]; ok {
				return fmt.Errorf("index %d appears in both %s and %s", idx, prev, part.name)
			}
			seen[idx] = part.name
		}
	}
	return nil
}

// Size returns the total number of indices across the three sets
func (s Split) Size() int {
	return len(s.Train) + len(s.Val) + len(s.Test)
}

// Disassortative shuffles each class's node indices independently and slices
// 60%/20%/20% into train/val/test, concatenating across classes. Every class
// is therefore represented at roughly its natural ratio in all three sets.
func Disassortative(labels []int, numClasses int, rng *rand.Rand) Split {
	var split Split
	for cls := 0; cls < numClasses; cls++ {
		var index []int
		for v, l := range labels {
			if l == cls {
				index = append(index, v)
			}
		}
		rng.Shuffle(len(index), func(i, j int) {
			index[i], index[j] = index[j], index[i]
		})

		trainEnd := int(float64(len(index)) * 0.6)
		valEnd := int(float64(len(index)) * 0.8)
		split.Train = append(split.Train, index[:trainEnd]...)
		split.Val = append(split.Val, index[trainEnd:valEnd]...)
		split.Test = append(split.Test, index[valEnd:]...)
	}
	return split
}

// Order shuffles the positions of maskedIndex once under a fresh rng seeded
// with seed, normalizes the ratio, and slices globally. The disjointness and
// no-duplicate conditions are post-conditions: a violation is returned as an
// error, not left to a debug assert.
func Order(ratio []float64, maskedIndex []int, seed uint64) (Split, error) {
	if len(ratio) != 3 {
		return Split{}, fmt.Errorf("ratio must have 3 entries, got %d", len(ratio))
	}
	sum := 0.0
	for i, r := range ratio {
		if r < 0 {
			return Split{}, fmt.Errorf("ratio entry %d is negative: %v", i, r)
		}
		sum += r
	}
	if sum == 0 {
		return Split{}, fmt.Errorf("ratio entries sum to zero")
	}

	rng := rand.New(rand.NewPCG(seed, seed))
	masked := len(maskedIndex)
	criterion := rng.Perm(masked)

	trainEnd := int(ratio[0] / sum * float64(masked))
	valEnd := trainEnd + int(ratio[1]/sum*float64(masked))

	pick := func(positions []int) []int {
		out := make([]int, len(positions))
		for i, p := range positions {
			out[i] = maskedIndex[p]
		}
		return out
	}
	split := Split{
		Train: pick(criterion[:trainEnd]),
		Val:   pick(criterion[trainEnd:valEnd]),
		Test:  pick(criterion[valEnd:]),
	}

	universe := 0
	for _, idx := range maskedIndex {
		if idx >= universe {
			universe = idx + 1
		}
	}
	if err := split.Validate(universe); err != nil {
		return Split{}, fmt.Errorf("split post-condition violated: %w", err)
	}
	return split, nil
}

// Random splits the full index range [0, n) by the given ratio under a single
// seeded shuffle
func Random(n int, ratio []float64, seed uint64) (Split, error) {
	index := make([]int, n)
	for i := range index {
		index[i] = i
	}
	return Order(ratio, index, seed)
}
