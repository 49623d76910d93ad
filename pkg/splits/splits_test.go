package splits

import (
	"math/rand/v2"
	"reflect"
	"sort"
	"testing"
)

func testRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// assertPartition checks that a split covers [0, n) exactly once
func assertPartition(t *testing.T, s Split, n int) {
	t.Helper()
	if err := s.Validate(n); err != nil {
		t.Fatalf("split failed validation: %v", err)
	}
	if s.Size() != n {
		t.Fatalf("split covers %d indices, expected %d", s.Size(), n)
	}
	all := append(append(append([]int{}, s.Train...), s.Val...), s.Test...)
	sort.Ints(all)
	for i, idx := range all {
		if idx != i {
			t.Fatalf("index %d missing from split (found %d at position %d)", i, idx, i)
		}
	}
}

func TestDisassortativePartition(t *testing.T) {
	tests := []struct {
		name       string
		n          int
		numClasses int
	}{
		{"SmallTwoClasses", 50, 2},
		{"UnevenFourClasses", 103, 4},
		{"Tiny", 3, 2},
		{"ManyClasses", 240, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			labels := make([]int, tt.n)
			for i := range labels {
				labels[i] = i % tt.numClasses
			}
			split := Disassortative(labels, tt.numClasses, testRNG(1))
			assertPartition(t, split, tt.n)
		})
	}
}

func TestDisassortativeClassBalance(t *testing.T) {
	const n, numClasses = 100, 2
	labels := make([]int, n)
	for i := range labels {
		labels[i] = i % numClasses
	}

	split := Disassortative(labels, numClasses, testRNG(9))

	// 50 nodes per class, sliced 60/20/20 by floor.
	counts := make(map[int]int)
	for _, idx := range split.Train {
		counts[labels[idx]]++
	}
	for cls := 0; cls < numClasses; cls++ {
		if counts[cls] != 30 {
			t.Errorf("class %d has %d training nodes, expected 30", cls, counts[cls])
		}
	}
	if len(split.Val) != 20 {
		t.Errorf("expected 20 validation nodes, got %d", len(split.Val))
	}
	if len(split.Test) != 20 {
		t.Errorf("expected 20 test nodes, got %d", len(split.Test))
	}
}

func TestRandomPartition(t *testing.T) {
	ratios := [][]float64{
		{60, 20, 20},
		{1, 1, 1},
		{70, 15, 15},
		{0.6, 0.2, 0.2},
	}
	for _, ratio := range ratios {
		for _, n := range []int{3, 10, 101, 2000} {
			split, err := Random(n, ratio, 1234567)
			if err != nil {
				t.Fatalf("Random(%d, %v) returned error: %v", n, ratio, err)
			}
			assertPartition(t, split, n)
		}
	}
}

func TestRandomDeterminism(t *testing.T) {
	s1, err := Random(500, DefaultRatio, 1234567)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	s2, err := Random(500, DefaultRatio, 1234567)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !reflect.DeepEqual(s1, s2) {
		t.Errorf("same seed should reproduce the split")
	}

	s3, err := Random(500, DefaultRatio, 1234568)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if reflect.DeepEqual(s1, s3) {
		t.Errorf("different seeds should produce different splits")
	}
}

func TestOrderMaskedIndex(t *testing.T) {
	// Only even indices are eligible.
	var masked []int
	for i := 0; i < 100; i += 2 {
		masked = append(masked, i)
	}

	split, err := Order(DefaultRatio, masked, 42)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if split.Size() != len(masked) {
		t.Errorf("split covers %d indices, expected %d", split.Size(), len(masked))
	}

	eligible := make(map[int]bool, len(masked))
	for _, idx := range masked {
		eligible[idx] = true
	}
	for _, idx := range append(append(append([]int{}, split.Train...), split.Val...), split.Test...) {
		if !eligible[idx] {
			t.Errorf("split contains index %d outside the masked set", idx)
		}
	}

	if len(split.Train) != 30 || len(split.Val) != 10 || len(split.Test) != 10 {
		t.Errorf("unexpected 60/20/20 sizes over 50 indices: %d/%d/%d",
			len(split.Train), len(split.Val), len(split.Test))
	}
}

func TestOrderRejectsBadRatio(t *testing.T) {
	tests := []struct {
		name  string
		ratio []float64
	}{
		{"TooShort", []float64{60, 40}},
		{"TooLong", []float64{50, 20, 20, 10}},
		{"Negative", []float64{60, -20, 60}},
		{"ZeroSum", []float64{0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Order(tt.ratio, []int{0, 1, 2}, 1); err == nil {
				t.Errorf("expected error for ratio %v, got nil", tt.ratio)
			}
		})
	}
}

func TestSplitValidate(t *testing.T) {
	good := Split{Train: []int{0, 1}, Val: []int{2}, Test: []int{3}}
	if err := good.Validate(4); err != nil {
		t.Errorf("expected no error, got: %v", err)
	}

	overlapping := Split{Train: []int{0, 1}, Val: []int{1}, Test: []int{2}}
	if err := overlapping.Validate(3); err == nil {
		t.Errorf("expected error for overlapping sets, got nil")
	}

	duplicated := Split{Train: []int{0, 0}, Val: nil, Test: nil}
	if err := duplicated.Validate(1); err == nil {
		t.Errorf("expected error for internal duplicate, got nil")
	}

	outOfRange := Split{Train: []int{5}, Val: nil, Test: nil}
	if err := outOfRange.Validate(3); err == nil {
		t.Errorf("expected error for out-of-range index, got nil")
	}
}
