package standings

// Row is one participant's position in a round classification. Delta is
// the signed movement against the previous round and stays nil on the
// first processed round.
type Row struct {
	Participant string
	Rank        int
	RoundTotal  float64
	Cumulative  float64
	Delta       *int
	Codes       []string
	Played      int
	ExactHits   int
}

// Ranks indexes rank by participant, feeding the next round's deltas.
func Ranks(rows []Row) map[string]int {
	ranks := make(map[string]int, len(rows))
	for _, row := range rows {
		ranks[row.Participant] = row.Rank
	}
	return ranks
}

// Totals indexes cumulative points by participant.
func Totals(rows []Row) map[string]float64 {
	totals := make(map[string]float64, len(rows))
	for _, row := range rows {
		totals[row.Participant] = row.Cumulative
	}
	return totals
}
