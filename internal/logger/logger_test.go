package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestLog_DiscardsBeforeInit(t *testing.T) {
	if Log == nil {
		t.Fatal("Log should never be nil")
	}
	if Log.IsLevelEnabled(logrus.InfoLevel) {
		t.Fatal("uninitialised logger should not emit info")
	}
}

func TestInit_ReadsLevelAndFormat(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	prev := Log
	defer func() { Log = prev }()

	Init()
	if Log.GetLevel() != logrus.DebugLevel {
		t.Fatalf("level=%s, want debug", Log.GetLevel())
	}
	if _, ok := Log.Formatter.(*logrus.JSONFormatter); !ok {
		t.Fatalf("formatter=%T, want *logrus.JSONFormatter", Log.Formatter)
	}
}

func TestInit_BadLevelFallsBackToInfo(t *testing.T) {
	t.Setenv("LOG_LEVEL", "loud")
	t.Setenv("LOG_FORMAT", "")
	prev := Log
	defer func() { Log = prev }()

	Init()
	if Log.GetLevel() != logrus.InfoLevel {
		t.Fatalf("level=%s, want info", Log.GetLevel())
	}
	if _, ok := Log.Formatter.(*logrus.TextFormatter); !ok {
		t.Fatalf("formatter=%T, want *logrus.TextFormatter", Log.Formatter)
	}
}
