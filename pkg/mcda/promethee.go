package mcda

import (
	"fmt"
	"math"
)

// PROMETHEE ranks candidates by net outranking flow using a linear
// preference function with a single global threshold p.
func PROMETHEE(matrix [][]float64, weights []float64, p float64) (Result, error) {
	if err := validate(matrix, weights); err != nil {
		return Result{}, err
	}
	if p <= 0 || math.IsNaN(p) || math.IsInf(p, 0) {
		return Result{}, fmt.Errorf("%w: preference threshold must be positive, got %v", ErrInvalidInput, p)
	}

	n := len(matrix)
	net := make([]float64, n)
	if n <= 1 {
		return Result{Scores: net, Best: 0}, nil
	}

	pref := preferenceMatrix(matrix, weights, p)
	for i := 0; i < n; i++ {
		var out, in float64
		for j := 0; j < n; j++ {
			out += pref[i][j]
			in += pref[j][i]
		}
		net[i] = (out - in) / float64(n-1)
	}
	return Result{Scores: net, Best: Argmax(net)}, nil
}

// linearPreference is 0 for non-positive differences, 1 at or above p and
// linear in between.
func linearPreference(diff, p float64) float64 {
	switch {
	case diff <= 0:
		return 0
	case diff >= p:
		return 1
	default:
		return diff / p
	}
}

func preferenceMatrix(matrix [][]float64, weights []float64, p float64) [][]float64 {
	n := len(matrix)
	pref := newMatrix(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			var sum float64
			for k, w := range weights {
				sum += w * linearPreference(matrix[i][k]-matrix[j][k], p)
			}
			pref[i][j] = sum
		}
	}
	return pref
}
