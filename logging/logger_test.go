package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
)

type LoggerTestSuite struct {
	suite.Suite
}

func TestLoggerTestSuite(t *testing.T) {
	suite.Run(t, new(LoggerTestSuite))
}

func (ts *LoggerTestSuite) TestNilLoggerIsSafe() {
	var l *Logger
	ts.NotPanics(func() { l.Log("ignored") })
	ts.NoError(l.Sync())
}

func (ts *LoggerTestSuite) TestDisabledLoggerIsSafe() {
	l, err := New(false, "")
	ts.Require().NoError(err)
	ts.NotPanics(func() { l.Log("should not panic") })
}

func (ts *LoggerTestSuite) TestEnabledLoggerWritesToFile() {
	path := filepath.Join(ts.T().TempDir(), "annealer.log")
	l, err := New(true, path)
	ts.Require().NoError(err)

	ts.NotPanics(func() { l.Log("hello from the search") })
	ts.NoError(l.Sync())

	contents, err := os.ReadFile(path)
	ts.Require().NoError(err)
	ts.Contains(string(contents), "hello from the search")
}

func (ts *LoggerTestSuite) TestSetEnabledToggles() {
	l, err := New(false, "")
	ts.Require().NoError(err)

	l.SetEnabled(true)
	ts.NotPanics(func() { l.Log("now enabled") })

	l.SetEnabled(false)
	ts.NotPanics(func() { l.Log("now disabled") })
}
