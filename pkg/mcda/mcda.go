// Package mcda ranks candidates against weighted criteria.
//
// Every ranking function takes a criteria matrix (one row per candidate, one
// column per criterion) and a weight vector with one entry per column. The
// functions are pure and safe for concurrent use.
package mcda

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidInput = errors.New("invalid mcda input")

// Result holds one score per candidate and the index of the best one.
// Ties resolve to the first maximum.
type Result struct {
	Scores []float64 `json:"scores"`
	Best   int       `json:"best"`
}

// Method names a ranking strategy.
type Method string

const (
	MethodTOPSIS      Method = "topsis"
	MethodAHP         Method = "ahp"
	MethodPROMETHEE   Method = "promethee"
	MethodWeightedSum Method = "wsm"
)

// DefaultPreferenceThreshold is the PROMETHEE linear threshold used when the
// caller does not supply one.
const DefaultPreferenceThreshold = 0.5

// Methods lists the strategies Rank accepts, in their canonical order.
func Methods() []Method {
	return []Method{MethodTOPSIS, MethodAHP, MethodPROMETHEE, MethodWeightedSum}
}

// ParseMethod resolves a method name.
func ParseMethod(name string) (Method, error) {
	for _, m := range Methods() {
		if string(m) == name {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: unknown method %q", ErrInvalidInput, name)
}

// Options tunes method-specific parameters.
type Options struct {
	PreferenceThreshold float64
}

// Rank dispatches to the named method.
func Rank(method Method, matrix [][]float64, weights []float64, opts Options) (Result, error) {
	switch method {
	case MethodTOPSIS:
		return TOPSIS(matrix, weights)
	case MethodAHP:
		return AHP(matrix, weights)
	case MethodPROMETHEE:
		p := opts.PreferenceThreshold
		if p == 0 {
			p = DefaultPreferenceThreshold
		}
		return PROMETHEE(matrix, weights, p)
	case MethodWeightedSum:
		return WeightedSum(matrix, weights)
	default:
		return Result{}, fmt.Errorf("%w: unknown method %q", ErrInvalidInput, method)
	}
}

// Argmax returns the index of the first maximum, or -1 for an empty slice.
func Argmax(values []float64) int {
	best := -1
	for i, v := range values {
		if best < 0 || v > values[best] {
			best = i
		}
	}
	return best
}

func validate(matrix [][]float64, weights []float64) error {
	if len(matrix) == 0 {
		return fmt.Errorf("%w: empty matrix", ErrInvalidInput)
	}
	if len(weights) == 0 {
		return fmt.Errorf("%w: empty weight vector", ErrInvalidInput)
	}
	for i, row := range matrix {
		if len(row) != len(weights) {
			return fmt.Errorf("%w: row %d has %d criteria, weights have %d", ErrInvalidInput, i, len(row), len(weights))
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: non-finite value at [%d][%d]", ErrInvalidInput, i, j)
			}
		}
	}
	for j, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("%w: weight %d is %v", ErrInvalidInput, j, w)
		}
	}
	return nil
}

func newMatrix(rows, cols int) [][]float64 {
	m := make([][]float64, rows)
	for i := range m {
		m[i] = make([]float64, cols)
	}
	return m
}

// WeightedSum scores each candidate as the weighted sum of its criteria.
func WeightedSum(matrix [][]float64, weights []float64) (Result, error) {
	if err := validate(matrix, weights); err != nil {
		return Result{}, err
	}

	scores := make([]float64, len(matrix))
	for i, row := range matrix {
		for j, v := range row {
			scores[i] += v * weights[j]
		}
	}
	return Result{Scores: scores, Best: Argmax(scores)}, nil
}
