package tests

import (
	"net/http"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/organisciak/classvote/core"
	testutil "github.com/organisciak/classvote/tests"
)

func Test_adminApi_reset(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("letmein"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt.GenerateFromPassword() failed: %v", err)
	}
	app := setup(t, func(c *core.Config) { c.AdminPasswordHash = string(hash) })

	sc := testutil.CreateScenario(t, scenarioRepo, "An AI monitors the playground", "")
	testutil.CastVote(t, voteRepo, sc.ID, "student1", 1)

	tests := []httpTest{
		{
			name: "password required", method: http.MethodPost, path: "/v1/admin/reset", body: []byte(`{}`),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"password": "this field is required"}),
		},
		{
			name: "wrong password", method: http.MethodPost, path: "/v1/admin/reset", body: []byte(`{"password": "lol"}`),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errPermissionDenied),
		},
		{
			name: "ok", method: http.MethodPost, path: "/v1/admin/reset", body: []byte(`{"password": "letmein"}`),
			wantCode: http.StatusNoContent,
		},
		{name: "data wiped", path: "/v1/scenarios", wantCode: http.StatusOK, wantData: marchallList(t)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_adminApi_reset_noPasswordConfigured(t *testing.T) {
	app := setup(t)

	tt := httpTest{
		name: "always forbidden", method: http.MethodPost, path: "/v1/admin/reset", body: []byte(`{"password": "letmein"}`),
		wantCode: http.StatusForbidden, wantData: marchallObj(t, errPermissionDenied),
	}
	t.Run(tt.name, func(t *testing.T) {
		req, rec := newRequest(tt.method, tt.path, tt.body)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})
}
