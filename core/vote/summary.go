package vote

import (
	"fmt"
	"math"
	"sort"
)

// Summarize computes the Summary of a scenario's votes.
// It is a pure function of the vote set; the zero-vote Mean sentinel is 0.
func Summarize(scenarioID int, votes []Vote) Summary {
	hist := make(map[int]int, MaxScore)
	for s := MinScore; s <= MaxScore; s++ {
		hist[s] = 0
	}

	var sum int
	for _, v := range votes {
		hist[v.Score]++
		sum += v.Score
	}

	var mean float64
	if len(votes) > 0 {
		mean = round2(float64(sum) / float64(len(votes)))
	}
	return Summary{
		ScenarioID: scenarioID,
		Count:      len(votes),
		Mean:       mean,
		Histogram:  hist,
	}
}

// sortSummaries orders summaries the way the results view displays them:
// highest mean first, ties broken by submission order.
func sortSummaries(summaries []Summary) {
	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].Mean != summaries[j].Mean {
			return summaries[i].Mean > summaries[j].Mean
		}
		return summaries[i].ScenarioID < summaries[j].ScenarioID
	})
}

// ChartRow is one bar of the results chart.
type ChartRow struct {
	Label string  `json:"label"`
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
}

// Chart turns summaries into a view description of the results bar chart.
// It stays decoupled from any rendering framework on purpose.
func Chart(summaries []Summary) []ChartRow {
	rows := make([]ChartRow, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, ChartRow{
			Label: fmt.Sprintf("Scenario %d", s.ScenarioID),
			Mean:  s.Mean,
			Count: s.Count,
		})
	}
	return rows
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
