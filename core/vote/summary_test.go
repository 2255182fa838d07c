package vote

import (
	"reflect"
	"testing"
)

func TestSummarize(t *testing.T) {
	votes := func(scores ...int) []Vote {
		vs := make([]Vote, 0, len(scores))
		for _, s := range scores {
			vs = append(vs, Vote{Score: s})
		}
		return vs
	}

	tests := []struct {
		name      string
		scores    []int
		wantCount int
		wantMean  float64
		wantHist  map[int]int
	}{
		{
			name:     "no votes",
			wantHist: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
		},
		{
			name: "single vote", scores: []int{3},
			wantCount: 1, wantMean: 3,
			wantHist: map[int]int{1: 0, 2: 0, 3: 1, 4: 0, 5: 0},
		},
		{
			name: "mean rounded to 2 decimals", scores: []int{2, 4, 5},
			wantCount: 3, wantMean: 3.67,
			wantHist: map[int]int{1: 0, 2: 1, 3: 0, 4: 1, 5: 1},
		},
		{
			name: "rounds down", scores: []int{1, 1, 2},
			wantCount: 3, wantMean: 1.33,
			wantHist: map[int]int{1: 2, 2: 1, 3: 0, 4: 0, 5: 0},
		},
		{
			name: "duplicate scores pile up", scores: []int{5, 5, 5, 5},
			wantCount: 4, wantMean: 5,
			wantHist: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 4},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(7, votes(tt.scores...))

			if got.ScenarioID != 7 {
				t.Errorf("Summarize() ScenarioID = %v, want 7", got.ScenarioID)
			}
			if got.Count != tt.wantCount {
				t.Errorf("Summarize() Count = %v, want %v", got.Count, tt.wantCount)
			}
			if got.Mean != tt.wantMean {
				t.Errorf("Summarize() Mean = %v, want %v", got.Mean, tt.wantMean)
			}
			if !reflect.DeepEqual(got.Histogram, tt.wantHist) {
				t.Errorf("Summarize() Histogram = %v, want %v", got.Histogram, tt.wantHist)
			}
		})
	}
}

func Test_sortSummaries(t *testing.T) {
	summaries := []Summary{
		{ScenarioID: 1, Mean: 3.5},
		{ScenarioID: 2, Mean: 4.2},
		{ScenarioID: 3, Mean: 3.5},
		{ScenarioID: 4},
	}
	sortSummaries(summaries)

	wantOrder := []int{2, 1, 3, 4} // highest mean first, ties by submission order
	for i, want := range wantOrder {
		if summaries[i].ScenarioID != want {
			t.Errorf("sortSummaries() [%d].ScenarioID = %v, want %v", i, summaries[i].ScenarioID, want)
		}
	}
}

func TestChart(t *testing.T) {
	rows := Chart([]Summary{
		{ScenarioID: 2, Mean: 4.2, Count: 5},
		{ScenarioID: 1, Mean: 3.5, Count: 2},
	})

	want := []ChartRow{
		{Label: "Scenario 2", Mean: 4.2, Count: 5},
		{Label: "Scenario 1", Mean: 3.5, Count: 2},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("Chart() = %v, want %v", rows, want)
	}
}
