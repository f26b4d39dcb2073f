// Package metrics compares two rankings of the same items.
//
// Rankings are permutations of [0, n) listed worst first. Every function
// fails with MISMATCHED_RANKINGS when its arguments do not order the same
// items.
package metrics

import (
	"math"

	"github.com/matzehuels/tourney/pkg/errors"
)

// TopKOverlap measures how disjoint the best fraction of a and b are:
// 1 - |top(a) ∩ top(b)| / l with l = floor(n * fraction) and top the last l
// entries. 0 means identical top sets, 1 means disjoint ones.
func TopKOverlap(a, b []int, fraction float64) (float64, error) {
	if err := errors.ValidateRankings(a, b); err != nil {
		return 0, err
	}
	if err := errors.ValidateProbability("fraction", fraction); err != nil {
		return 0, err
	}
	l := int(math.Floor(float64(len(a)) * fraction))
	if l < 1 {
		return 0, errors.New(errors.ErrCodeInvalidSize,
			"top %.0f%% of %d items is empty", fraction*100, len(a))
	}

	top := make(map[int]bool, l)
	for _, v := range a[len(a)-l:] {
		top[v] = true
	}
	shared := 0
	for _, v := range b[len(b)-l:] {
		if top[v] {
			shared++
		}
	}
	return 1 - float64(shared)/float64(l), nil
}

// KendallTau returns the fraction of item pairs that a and b order
// differently, in [0, 1]. It runs in O(n log n).
func KendallTau(a, b []int) (float64, error) {
	if err := errors.ValidateRankings(a, b); err != nil {
		return 0, err
	}
	n := len(a)
	if err := errors.ValidateSize(n, 2); err != nil {
		return 0, err
	}
	posB := positions(b)
	seq := make([]int, n)
	for i, v := range a {
		seq[i] = posB[v]
	}
	discordant := countInversions(seq, make([]int, n))
	return float64(discordant) / (float64(n) * float64(n-1) / 2), nil
}

// countInversions sorts s in place using buf as scratch space and returns
// the number of pairs i < j with s[i] > s[j].
func countInversions(s, buf []int) int {
	if len(s) < 2 {
		return 0
	}
	mid := len(s) / 2
	count := countInversions(s[:mid], buf[:mid]) + countInversions(s[mid:], buf[mid:])

	i, j, k := 0, mid, 0
	for i < mid && j < len(s) {
		if s[i] <= s[j] {
			buf[k] = s[i]
			i++
		} else {
			buf[k] = s[j]
			count += mid - i
			j++
		}
		k++
	}
	k += copy(buf[k:], s[i:mid])
	copy(buf[k:], s[j:])
	copy(s, buf[:len(s)])
	return count
}

// WeightedRankDistance is a root-sum-of-squares distance between the
// positions items hold in a and b, weighted towards the top of a.
//
// The item at top position k of a (k = 0 is the best) gets weight
// proportional to exp(-k/h) with h = max(1, n/10); weights sum to 1. Position
// differences are scaled by n-1, so the result lies in [0, 1].
func WeightedRankDistance(a, b []int) (float64, error) {
	if err := errors.ValidateRankings(a, b); err != nil {
		return 0, err
	}
	n := len(a)
	if err := errors.ValidateSize(n, 2); err != nil {
		return 0, err
	}
	h := math.Max(1, float64(n)/10)
	posB := positions(b)

	weights := make([]float64, n)
	total := 0.0
	for k := range weights {
		weights[k] = math.Exp(-float64(k) / h)
		total += weights[k]
	}

	sum := 0.0
	for k := range n {
		item := a[n-1-k]
		kb := n - 1 - posB[item]
		d := float64(k-kb) / float64(n-1)
		sum += weights[k] / total * d * d
	}
	return math.Sqrt(sum), nil
}

func positions(ranking []int) []int {
	pos := make([]int, len(ranking))
	for i, v := range ranking {
		pos[v] = i
	}
	return pos
}
