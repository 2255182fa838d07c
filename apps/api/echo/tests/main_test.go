package tests

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"testing"

	. "github.com/organisciak/classvote/apps/api/echo"
	"github.com/organisciak/classvote/core"
	"github.com/organisciak/classvote/core/scenario"
	"github.com/organisciak/classvote/core/vote"
	emailsvc "github.com/organisciak/classvote/services/email"
	logsvc "github.com/organisciak/classvote/services/logger"
	inmemdb "github.com/organisciak/classvote/storage/database/inmem"
)

var (
	conf         *core.Config
	scenarioRepo scenario.Repository
	voteRepo     vote.Repository

	errPermissionDenied = httpErr{Error: "permission denied"}
	errScenarioNotFound = httpErr{Error: "scenario not found"}
)

// setup returns a fresh app backed by an empty in-memory DB.
func setup(t *testing.T, opts ...func(*core.Config)) Server {
	c := *core.Conf
	c.Debug = false
	c.TestMode = true
	c.InstructorEmail = ""
	c.AdminPasswordHash = ""
	conf = &c
	for _, opt := range opts {
		opt(conf)
	}

	// set up DB & repos
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("inmemdb.Open() failed: %v", err)
	}
	scenarioRepo = inmemdb.NewScenarioRepository(db)
	voteRepo = inmemdb.NewVoteRepository(db)

	// set up services
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	scenarioSvc := scenario.NewService(scenarioRepo, mailSvc, conf)
	voteSvc := vote.NewService(voteRepo, scenarioRepo, conf)

	logger := logsvc.NewRollbarLogger(log.New(os.Stdout, "TEST : ", log.LstdFlags), conf)
	logger.Enable(false)

	// set up server
	return NewServer(
		ServerDeps{
			Conf:           conf,
			Logger:         logger,
			ScenarioSvc:    scenarioSvc,
			VoteSvc:        voteSvc,
			DisableReqLogs: true,
		},
	)
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
	extra    interface{}
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	if objs == nil {
		objs = make([]interface{}, 0)
	}
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList(): %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	return false, nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantCode == http.StatusNoContent {
		if rec.Body.Len() > 0 {
			t.Errorf("failed! data = %v; want empty body", rec.Body.String())
		}
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
