package echoapi

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/minicanvas/core"
	"github.com/trezcool/minicanvas/core/directory"
	"github.com/trezcool/minicanvas/tests"
)

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
}

func setup(t *testing.T) (*Server, *directory.Service) {
	dir, _, _ := testutil.NewDirectory(t)

	tmp, err := ioutil.TempDir("", "minicanvas")
	if err != nil {
		t.Fatalf("ioutil.TempDir() failed: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(tmp) })

	conf := &core.Config{
		AppName:  "MiniCanvas",
		Env:      "TEST",
		TestMode: true,
		DataFile: filepath.Join(tmp, "lms_data.txt"),
	}
	conf.Server.DisableReqLogs = true

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)

	return NewServer(conf, testutil.NewLogger(), dir, validate, translator), dir
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

func marshalObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshalObj() failed: %v", err)
	}
	return data
}

func messages(msgs []string, errs ...string) Messages {
	if msgs == nil {
		msgs = []string{}
	}
	if errs == nil {
		errs = []string{}
	}
	return Messages{Messages: msgs, Errors: errs}
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return assert.ObjectsAreEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
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

func runTests(t *testing.T, app *Server, tests []httpTest) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
