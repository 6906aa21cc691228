package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/efxvdb/pkg/cipher"
	"github.com/matzehuels/efxvdb/pkg/vdb"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("test") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("test") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("test") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	newProgress(newLogger(&buf, log.InfoLevel)).done("Exported 2 of 2 designs")

	if !strings.Contains(buf.String(), "Exported 2 of 2 designs (") {
		t.Errorf("progress output = %q", buf.String())
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("empty context should yield log.Default()")
	}

	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)
	if loggerFromContext(withLogger(context.Background(), custom)) != custom {
		t.Error("loggerFromContext should return the stored logger")
	}
}

func TestLogObserver(t *testing.T) {
	var buf bytes.Buffer
	table, err := cipher.ForPolicy(cipher.FirstWins)
	if err != nil {
		t.Fatal(err)
	}
	obs := newLogObserver(newLogger(&buf, log.DebugLevel), table)

	var _ vdb.Observer = obs
	obs.TopResolved("counter")
	obs.RegistryBuilt(5)
	obs.SectionWritten("modules", 120)
	obs.FileIDGenerated(bytes.Repeat([]byte{0x4a}, vdb.FileIDSize))

	out := buf.String()
	for _, want := range []string{"top=counter", "wires=5", "section=modules", "id=dddddddd"} {
		if !strings.Contains(out, want) {
			t.Errorf("observer log missing %q:\n%s", want, out)
		}
	}
}

func TestLogObserverQuietAtInfo(t *testing.T) {
	var buf bytes.Buffer
	obs := newLogObserver(newLogger(&buf, log.InfoLevel), nil)
	obs.TopResolved("counter")
	obs.RegistryBuilt(1)
	if buf.Len() != 0 {
		t.Errorf("debug events logged at info level: %q", buf.String())
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	ctx := withLogger(context.Background(), newLogger(&buf, log.DebugLevel))

	var h logHooks
	h.OnLoadComplete(ctx, "counter.json", 2, time.Millisecond, nil)
	h.OnExportComplete(ctx, "counter", 450, time.Millisecond, nil)
	h.OnCacheSet(ctx, "container", 450)

	out := buf.String()
	for _, want := range []string{"modules=2", "bytes=450", "type=container"} {
		if !strings.Contains(out, want) {
			t.Errorf("hook log missing %q:\n%s", want, out)
		}
	}
}
