// Package scorelog persists election score records for offline analysis.
package scorelog

import (
	"errors"
	"strconv"

	"github.com/anthanhphan/go-vanet-cluster/pkg/election"
	"github.com/anthanhphan/go-vanet-cluster/pkg/mcda"
)

var (
	ErrSinkClosed = errors.New("score sink is closed")
	ErrQueueFull  = errors.New("score sink queue is full")
)

// Header returns the column names shared by every sink: the round time tag,
// the candidate ID, one column per criterion and the final score.
func Header() []string {
	cols := make([]string, 0, len(mcda.CriteriaCodes)+3)
	cols = append(cols, "ns", "ID")
	cols = append(cols, mcda.CriteriaCodes[:]...)
	return append(cols, "score")
}

// Rows flattens a record into one row per candidate. Missing criteria or
// scores are written as empty fields.
func Rows(rec election.ScoreRecord) [][]string {
	tag := strconv.FormatInt(rec.TimeTag, 10)
	width := len(mcda.CriteriaCodes)

	rows := make([][]string, len(rec.CandidateIDs))
	for i, id := range rec.CandidateIDs {
		row := make([]string, 0, width+3)
		row = append(row, tag, strconv.FormatUint(uint64(id), 10))
		for j := 0; j < width; j++ {
			if i < len(rec.Criteria) && j < len(rec.Criteria[i]) {
				row = append(row, formatFloat(rec.Criteria[i][j]))
			} else {
				row = append(row, "")
			}
		}
		if i < len(rec.Scores) {
			row = append(row, formatFloat(rec.Scores[i]))
		} else {
			row = append(row, "")
		}
		rows[i] = row
	}
	return rows
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
