package standings

import (
	"sort"

	"github.com/palpiteria/bolao/internal/domain/scoring"
)

// Aggregate orders one round's scores into the classification. prevTotals
// carries each participant's cumulative points before this round and
// prevRanks their rank after the previous round; both are empty on the
// first processed round.
//
// Ordering is cumulative points descending, exact-score hits descending,
// then participant name ascending. Rows equal on both point keys share a
// rank and the following rank is skipped.
func Aggregate(scores []scoring.RoundScore, prevTotals map[string]float64, prevRanks map[string]int) []Row {
	rows := make([]Row, 0, len(scores))
	for _, score := range scores {
		rows = append(rows, Row{
			Participant: score.Participant,
			RoundTotal:  score.Total,
			Cumulative:  prevTotals[score.Participant] + score.Total,
			Codes:       score.Codes(),
			Played:      score.Played,
			ExactHits:   score.Exact,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Cumulative != rows[j].Cumulative {
			return rows[i].Cumulative > rows[j].Cumulative
		}
		if rows[i].ExactHits != rows[j].ExactHits {
			return rows[i].ExactHits > rows[j].ExactHits
		}
		return rows[i].Participant < rows[j].Participant
	})

	for i := range rows {
		if i > 0 && rows[i].Cumulative == rows[i-1].Cumulative && rows[i].ExactHits == rows[i-1].ExactHits {
			rows[i].Rank = rows[i-1].Rank
			continue
		}
		rows[i].Rank = i + 1
	}

	if len(prevRanks) == 0 {
		return rows
	}
	for i := range rows {
		prev, ok := prevRanks[rows[i].Participant]
		if !ok {
			prev = rows[i].Rank
		}
		delta := prev - rows[i].Rank
		rows[i].Delta = &delta
	}
	return rows
}
