package mcda

import (
	"fmt"
	"math"
)

const (
	// ratioEpsilon is the smallest denominator used when deriving pairwise
	// ratios between candidates.
	ratioEpsilon = 1e-9
	// saturationRatio is the Saaty-scale maximum used when the denominator
	// candidate scores zero.
	saturationRatio = 9.0
)

// CriteriaCodes names the ten criteria of DefaultJudgmentMatrix, in order.
var CriteriaCodes = [10]string{"L", "C", "D", "N", "V", "A", "E", "I", "T", "M"}

// defaultJudgment is the pairwise comparison of CriteriaCodes on the Saaty
// scale: entry [i][j] says how much more important criterion i is than j.
var defaultJudgment = [10][10]float64{
	{1, 3, 1.0 / 3, 1, 3, 7, 7, 5, 5, 3},
	{1.0 / 3, 1, 1.0 / 5, 1.0 / 3, 1, 5, 5, 3, 3, 1},
	{3, 5, 1, 3, 5, 9, 9, 7, 7, 5},
	{1, 3, 1.0 / 3, 1, 3, 7, 7, 5, 5, 3},
	{1.0 / 3, 1, 1.0 / 5, 1.0 / 3, 1, 5, 5, 3, 3, 1},
	{1.0 / 7, 1.0 / 5, 1.0 / 9, 1.0 / 7, 1.0 / 5, 1, 1, 1.0 / 3, 1.0 / 3, 1.0 / 5},
	{1.0 / 7, 1.0 / 5, 1.0 / 9, 1.0 / 7, 1.0 / 5, 1, 1, 1.0 / 3, 1.0 / 3, 1.0 / 5},
	{1.0 / 5, 1.0 / 3, 1.0 / 7, 1.0 / 5, 1.0 / 3, 3, 3, 1, 1, 1.0 / 3},
	{1.0 / 5, 1.0 / 3, 1.0 / 7, 1.0 / 5, 1.0 / 3, 3, 3, 1, 1, 1.0 / 3},
	{1.0 / 3, 1, 1.0 / 5, 1.0 / 3, 1, 5, 5, 3, 3, 1},
}

// DefaultJudgmentMatrix returns a copy of the predefined 10x10 judgment
// matrix over CriteriaCodes.
func DefaultJudgmentMatrix() [][]float64 {
	m := make([][]float64, len(defaultJudgment))
	for i := range defaultJudgment {
		m[i] = append([]float64(nil), defaultJudgment[i][:]...)
	}
	return m
}

// DefaultAHPWeights derives criterion weights from DefaultJudgmentMatrix.
func DefaultAHPWeights() []float64 {
	return priorityVector(DefaultJudgmentMatrix())
}

// AHPWeights derives a weight vector from a square pairwise judgment matrix
// with positive entries. The weights sum to 1.
func AHPWeights(judgment [][]float64) ([]float64, error) {
	n := len(judgment)
	if n == 0 {
		return nil, fmt.Errorf("%w: empty judgment matrix", ErrInvalidInput)
	}
	for i, row := range judgment {
		if len(row) != n {
			return nil, fmt.Errorf("%w: judgment row %d has %d entries, want %d", ErrInvalidInput, i, len(row), n)
		}
		for j, v := range row {
			if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: judgment [%d][%d] must be positive, got %v", ErrInvalidInput, i, j, v)
			}
		}
	}
	return priorityVector(judgment), nil
}

// AHP scores candidates by building, per criterion, a pairwise ratio matrix
// between candidates and combining the local priorities with the criterion
// weights.
func AHP(matrix [][]float64, weights []float64) (Result, error) {
	if err := validate(matrix, weights); err != nil {
		return Result{}, err
	}

	n := len(matrix)
	scores := make([]float64, n)
	judgment := newMatrix(n, n)

	for j, w := range weights {
		for i := 0; i < n; i++ {
			for k := 0; k < n; k++ {
				judgment[i][k] = pairwiseRatio(matrix[i][j], matrix[k][j], i == k)
			}
		}
		for i, local := range priorityVector(judgment) {
			scores[i] += local * w
		}
	}
	return Result{Scores: scores, Best: Argmax(scores)}, nil
}

func pairwiseRatio(a, b float64, same bool) float64 {
	if same {
		return 1
	}
	if b > ratioEpsilon {
		return a / b
	}
	return saturationRatio
}

// priorityVector normalizes each column of a square judgment matrix to sum
// to 1 and averages the rows.
func priorityVector(judgment [][]float64) []float64 {
	n := len(judgment)
	colSums := make([]float64, n)
	for _, row := range judgment {
		for j, v := range row {
			colSums[j] += v
		}
	}

	priorities := make([]float64, n)
	for i, row := range judgment {
		var sum float64
		for j, v := range row {
			if colSums[j] != 0 {
				sum += v / colSums[j]
			}
		}
		priorities[i] = sum / float64(n)
	}
	return priorities
}
