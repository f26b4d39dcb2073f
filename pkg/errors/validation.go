package errors

import "math"

// ValidateIndex checks that i addresses one of n items.
func ValidateIndex(i, n int) error {
	if i < 0 || i >= n {
		return New(ErrCodeIndexOutOfRange, "item %d not in [0, %d)", i, n)
	}
	return nil
}

// ValidateSize checks that a collection of n items has at least min items.
func ValidateSize(n, min int) error {
	if n < min {
		return New(ErrCodeInvalidSize, "need at least %d items, got %d", min, n)
	}
	return nil
}

// ValidateProbability checks that p is a finite probability in [0, 1].
func ValidateProbability(name string, p float64) error {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return New(ErrCodeInvalidInput, "%s must be in [0, 1], got %v", name, p)
	}
	return nil
}

// ValidatePermutation checks that ranking holds every index in [0, len) once.
func ValidatePermutation(ranking []int) error {
	seen := make([]bool, len(ranking))
	for _, v := range ranking {
		if v < 0 || v >= len(ranking) {
			return New(ErrCodeMismatchedRankings, "ranking entry %d not in [0, %d)", v, len(ranking))
		}
		if seen[v] {
			return New(ErrCodeMismatchedRankings, "ranking repeats item %d", v)
		}
		seen[v] = true
	}
	return nil
}

// ValidateRankings checks that a and b order the same set of items.
// Both must be permutations of [0, n) for the same n.
func ValidateRankings(a, b []int) error {
	if len(a) != len(b) {
		return New(ErrCodeMismatchedRankings, "rankings differ in length: %d vs %d", len(a), len(b))
	}
	if err := ValidatePermutation(a); err != nil {
		return err
	}
	return ValidatePermutation(b)
}
