package tests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/organisciak/classvote/apps/api/echo"
	"github.com/organisciak/classvote/core"
	"github.com/organisciak/classvote/core/vote"
	testutil "github.com/organisciak/classvote/tests"
)

func Test_voteApi_cast(t *testing.T) {
	app := setup(t)

	sc := testutil.CreateScenario(t, scenarioRepo, "An AI proctors every exam", "")
	castPath := fmt.Sprintf("/v1/scenarios/%d/votes", sc.ID)

	tests := []httpTest{
		{
			name: "score & voter_token required", method: http.MethodPost, path: castPath, body: []byte(`{}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"score": "this field is required", "voter_token": "this field is required"}),
		},
		{
			name: "score out of range", method: http.MethodPost, path: castPath,
			body:     marchallObj(t, vote.CastVote{Score: 6, VoterToken: "student1"}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"score": "score must be an integer between 1 and 5"}),
		},
		{
			name: "unknown scenario", method: http.MethodPost, path: "/v1/scenarios/99/votes",
			body:     marchallObj(t, vote.CastVote{Score: 3, VoterToken: "student1"}),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, errScenarioNotFound),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	var first vote.Vote

	t.Run("new vote", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, castPath, marchallObj(t, vote.CastVote{Score: 4, VoterToken: "student1"}))
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("failed! code = %v; wantCode %v; data = %v", rec.Code, http.StatusCreated, rec.Body.String())
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &first); err != nil {
			t.Fatalf("json.Unmarshal() failed: %v", err)
		}
		assert.NotEmpty(t, first.ID)
		assert.Equal(t, sc.ID, first.ScenarioID)
		assert.Equal(t, "student1", first.VoterToken)
		assert.Equal(t, 4, first.Score)
		assert.False(t, first.CastAt.IsZero())
	})

	t.Run("re-vote replaces", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, castPath, marchallObj(t, vote.CastVote{Score: 2, VoterToken: "student1"}))
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; wantCode %v; data = %v", rec.Code, http.StatusOK, rec.Body.String())
		}
		var second vote.Vote
		if err := json.Unmarshal(rec.Body.Bytes(), &second); err != nil {
			t.Fatalf("json.Unmarshal() failed: %v", err)
		}
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, 2, second.Score)
		assert.Equal(t, first.CastAt, second.CastAt)
		assert.True(t, second.UpdatedAt.After(first.UpdatedAt) || second.UpdatedAt.Equal(first.UpdatedAt))
	})
}

func Test_voteApi_cast_duplicatesPrevented(t *testing.T) {
	app := setup(t, func(c *core.Config) { c.Voting.PreventDuplicateVotes = true })

	sc := testutil.CreateScenario(t, scenarioRepo, "Grades are set by an algorithm", "")
	testutil.CastVote(t, voteRepo, sc.ID, "student1", 3)

	tests := []httpTest{
		{
			name: "second vote conflicts", method: http.MethodPost, path: fmt.Sprintf("/v1/scenarios/%d/votes", sc.ID),
			body:     marchallObj(t, vote.CastVote{Score: 5, VoterToken: "student1"}),
			wantCode: http.StatusConflict, wantData: marchallObj(t, httpErr{Error: "this voter has already voted on this scenario"}),
		},
		{
			name: "count unchanged", path: fmt.Sprintf("/v1/scenarios/%d/summary", sc.ID),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, vote.Summary{
				ScenarioID: sc.ID,
				Count:      1,
				Mean:       3,
				Histogram:  map[int]int{1: 0, 2: 0, 3: 1, 4: 0, 5: 0},
			}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_voteApi_retract(t *testing.T) {
	app := setup(t)

	sc := testutil.CreateScenario(t, scenarioRepo, "Homework is checked by an AI", "")
	testutil.CastVote(t, voteRepo, sc.ID, "student1", 3)

	tests := []httpTest{
		{
			name: "unknown scenario", method: http.MethodDelete, path: "/v1/scenarios/99/votes/student1",
			wantCode: http.StatusNotFound, wantData: marchallObj(t, errScenarioNotFound),
		},
		{
			name: "unknown voter", method: http.MethodDelete, path: fmt.Sprintf("/v1/scenarios/%d/votes/ghost", sc.ID),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "vote not found"}),
		},
		{
			name: "ok", method: http.MethodDelete, path: fmt.Sprintf("/v1/scenarios/%d/votes/student1", sc.ID),
			wantCode: http.StatusNoContent,
		},
		{
			name: "already retracted", method: http.MethodDelete, path: fmt.Sprintf("/v1/scenarios/%d/votes/student1", sc.ID),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "vote not found"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_voteApi_clearVoter(t *testing.T) {
	app := setup(t)

	sc1 := testutil.CreateScenario(t, scenarioRepo, "An AI picks the class reading list", "")
	sc2 := testutil.CreateScenario(t, scenarioRepo, "Field trips planned by a chatbot", "")
	testutil.CastVote(t, voteRepo, sc1.ID, "student1", 3)
	testutil.CastVote(t, voteRepo, sc2.ID, "student1", 5)
	testutil.CastVote(t, voteRepo, sc1.ID, "student2", 1)

	tests := []httpTest{
		{
			name: "unknown voter clears nothing", method: http.MethodDelete, path: "/v1/votes/ghost",
			wantCode: http.StatusOK, wantData: marchallObj(t, ClearedResponse{Cleared: 0}),
		},
		{
			name: "ok", method: http.MethodDelete, path: "/v1/votes/student1",
			wantCode: http.StatusOK, wantData: marchallObj(t, ClearedResponse{Cleared: 2}),
		},
		{
			name: "others untouched", path: "/v1/participation",
			wantCode: http.StatusOK, wantData: marchallObj(t, vote.Participation{Count: 1, Voters: []string{"student2"}}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_voteApi_results(t *testing.T) {
	app := setup(t)

	t.Run("empty", func(t *testing.T) {
		tt := httpTest{
			path: "/v1/results", wantCode: http.StatusOK,
			wantData: marchallObj(t, ResultsResponse{Results: []ScenarioResult{}, Chart: []vote.ChartRow{}, ScoreLabels: vote.ScoreLabels}),
		}
		req, rec := newRequest(tt.method, tt.path, tt.body)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	sc1 := testutil.CreateScenario(t, scenarioRepo, "An AI writes report cards", "Ada")
	sc2 := testutil.CreateScenario(t, scenarioRepo, "Class pets replaced by robots", "")
	testutil.CastVote(t, voteRepo, sc1.ID, "student1", 2)
	testutil.CastVote(t, voteRepo, sc1.ID, "student2", 4)
	testutil.CastVote(t, voteRepo, sc2.ID, "student1", 5)

	// sc2 leads with the higher mean
	want := ResultsResponse{
		Results: []ScenarioResult{
			{ID: sc2.ID, Text: sc2.Text, Count: 1, Mean: 5, Histogram: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 1}},
			{ID: sc1.ID, Text: sc1.Text, SubmittedBy: "Ada", Count: 2, Mean: 3, Histogram: map[int]int{1: 0, 2: 1, 3: 0, 4: 1, 5: 0}},
		},
		Chart: []vote.ChartRow{
			{Label: fmt.Sprintf("Scenario %d", sc2.ID), Mean: 5, Count: 1},
			{Label: fmt.Sprintf("Scenario %d", sc1.ID), Mean: 3, Count: 2},
		},
		ScoreLabels: vote.ScoreLabels,
	}

	t.Run("ordered by mean", func(t *testing.T) {
		tt := httpTest{path: "/v1/results", wantCode: http.StatusOK, wantData: marchallObj(t, want)}
		req, rec := newRequest(tt.method, tt.path, tt.body)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})
}

func Test_voteApi_participation(t *testing.T) {
	app := setup(t)

	t.Run("empty", func(t *testing.T) {
		tt := httpTest{
			path: "/v1/participation", wantCode: http.StatusOK,
			wantData: marchallObj(t, vote.Participation{Count: 0, Voters: []string{}}),
		}
		req, rec := newRequest(tt.method, tt.path, tt.body)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	sc1 := testutil.CreateScenario(t, scenarioRepo, "Recess time decided by an AI", "")
	sc2 := testutil.CreateScenario(t, scenarioRepo, "Seating charts optimized by software", "")
	testutil.CastVote(t, voteRepo, sc1.ID, "zoe", 3)
	testutil.CastVote(t, voteRepo, sc2.ID, "zoe", 4)
	testutil.CastVote(t, voteRepo, sc1.ID, "amy", 2)

	t.Run("voters deduplicated and sorted", func(t *testing.T) {
		tt := httpTest{
			path: "/v1/participation", wantCode: http.StatusOK,
			wantData: marchallObj(t, vote.Participation{Count: 2, Voters: []string{"amy", "zoe"}}),
		}
		req, rec := newRequest(tt.method, tt.path, tt.body)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})
}
