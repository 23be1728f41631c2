package logging_test

import (
	"testing"

	"go.uber.org/zap"

	"github.com/strhzy/classroom-course/internal/logging"
)

func TestInit(t *testing.T) {
	lg, err := logging.Init("debug", "dev")
	if err != nil {
		t.Fatal(err)
	}
	defer lg.Closer()
	if lg.Level.Level() != zap.DebugLevel {
		t.Fatalf("уровень: %v", lg.Level.Level())
	}
	if lg.Named("jobs") == nil {
		t.Fatal("дочерний логгер не создан")
	}
}

func TestInit_BadLevelFallsBack(t *testing.T) {
	lg, err := logging.Init("мусор", "prod")
	if err != nil {
		t.Fatal(err)
	}
	defer lg.Closer()
	if lg.Level.Level() != zap.InfoLevel {
		t.Fatalf("уровень по умолчанию: %v", lg.Level.Level())
	}
}
