package mcda

import "math"

// TOPSIS ranks candidates by their relative closeness to the ideal solution.
func TOPSIS(matrix [][]float64, weights []float64) (Result, error) {
	if err := validate(matrix, weights); err != nil {
		return Result{}, err
	}

	weighted := weightColumns(normalizeColumns(matrix), weights)
	ideal, antiIdeal := idealPoints(weighted)

	scores := make([]float64, len(weighted))
	for i, row := range weighted {
		toIdeal := euclidean(row, ideal)
		toAnti := euclidean(row, antiIdeal)
		if sum := toIdeal + toAnti; sum != 0 {
			scores[i] = toAnti / sum
		}
	}
	return Result{Scores: scores, Best: Argmax(scores)}, nil
}

// normalizeColumns divides every entry by its column's Euclidean norm.
// Columns with a zero norm stay zero.
func normalizeColumns(matrix [][]float64) [][]float64 {
	rows, cols := len(matrix), len(matrix[0])
	out := newMatrix(rows, cols)

	for j := 0; j < cols; j++ {
		var norm float64
		for i := 0; i < rows; i++ {
			norm += matrix[i][j] * matrix[i][j]
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			continue
		}
		for i := 0; i < rows; i++ {
			out[i][j] = matrix[i][j] / norm
		}
	}
	return out
}

func weightColumns(matrix [][]float64, weights []float64) [][]float64 {
	out := newMatrix(len(matrix), len(weights))
	for i, row := range matrix {
		for j, v := range row {
			out[i][j] = v * weights[j]
		}
	}
	return out
}

// idealPoints returns the per-column maximum and minimum.
func idealPoints(matrix [][]float64) (ideal, antiIdeal []float64) {
	ideal = append([]float64(nil), matrix[0]...)
	antiIdeal = append([]float64(nil), matrix[0]...)
	for _, row := range matrix[1:] {
		for j, v := range row {
			ideal[j] = math.Max(ideal[j], v)
			antiIdeal[j] = math.Min(antiIdeal[j], v)
		}
	}
	return ideal, antiIdeal
}

func euclidean(a, b []float64) float64 {
	var sum float64
	for j := range a {
		d := a[j] - b[j]
		sum += d * d
	}
	return math.Sqrt(sum)
}
