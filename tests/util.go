package testutil

import (
	"bytes"
	"io/ioutil"
	"log"
	"testing"

	"github.com/trezcool/minicanvas/core"
	"github.com/trezcool/minicanvas/core/directory"
	"github.com/trezcool/minicanvas/services/logger"
	"github.com/trezcool/minicanvas/storage/database/inmem"
)

// NewLogger returns a logger that reports nothing.
func NewLogger() core.Logger {
	conf := &core.Config{Env: "TEST", TestMode: true}
	logger := logsvc.NewRollbarLogger(log.New(ioutil.Discard, "", 0), conf)
	logger.Enable(false)
	return logger
}

// NewDirectory returns an empty directory backed by a fresh in-memory DB,
// with its output and error output captured.
func NewDirectory(t *testing.T) (svc *directory.Service, out, errOut *bytes.Buffer) {
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("inmemdb.Open() failed: %v", err)
	}
	out, errOut = new(bytes.Buffer), new(bytes.Buffer)
	svc = directory.NewService(
		inmemdb.NewUserRepository(db),
		inmemdb.NewCourseRepository(db),
		NewLogger(),
		out,
		errOut,
	)
	return svc, out, errOut
}

// Snapshot fails the test if the directory cannot be copied.
func Snapshot(t *testing.T, svc *directory.Service) directory.Snapshot {
	snap, err := svc.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot() failed: %v", err)
	}
	return snap
}
