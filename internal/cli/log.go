package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/efxvdb/pkg/cipher"
	"github.com/matzehuels/efxvdb/pkg/observability"
	"github.com/matzehuels/efxvdb/pkg/vdb"
)

// newLogger returns a logger stamping lines as "15:04:05.00".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Exported 3 of 3 designs (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// loggerFromContext returns the logger stored by withLogger, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Encoder observer
// =============================================================================

// logObserver reports encoder progress at debug level.
type logObserver struct {
	logger *log.Logger
	table  *cipher.Table
}

func newLogObserver(l *log.Logger, t *cipher.Table) *logObserver {
	return &logObserver{logger: l, table: t}
}

func (o *logObserver) TopResolved(name string) {
	o.logger.Debug("resolved top module", "top", name)
}

func (o *logObserver) RegistryBuilt(wires int) {
	o.logger.Debug("built wire registry", "wires", wires)
}

func (o *logObserver) SectionWritten(name string, size int) {
	o.logger.Debug("wrote section", "section", name, "bytes", size)
}

// FileIDGenerated logs the id through the reverse cipher. The rendering is
// cosmetic: several characters share a code.
func (o *logObserver) FileIDGenerated(id []byte) {
	o.logger.Debug("generated file id", "id", vdb.RenderFileID(o.table, id))
}

// =============================================================================
// Pipeline hooks
// =============================================================================

// logHooks forwards pipeline and cache events to the logger carried in the
// event's context.
type logHooks struct{}

var (
	_ observability.ExportHooks = logHooks{}
	_ observability.CacheHooks  = logHooks{}
)

func (logHooks) OnLoadStart(ctx context.Context, path, format string) {
	loggerFromContext(ctx).Debug("loading design", "path", path, "format", format)
}

func (logHooks) OnLoadComplete(ctx context.Context, path string, modules int, d time.Duration, err error) {
	if err != nil {
		loggerFromContext(ctx).Debug("load failed", "path", path, "err", err)
		return
	}
	loggerFromContext(ctx).Debug("loaded design", "path", path, "modules", modules, "duration", d)
}

func (logHooks) OnExportStart(ctx context.Context, top string) {
	loggerFromContext(ctx).Debug("encoding", "top", top)
}

func (logHooks) OnExportComplete(ctx context.Context, top string, size int, d time.Duration, err error) {
	if err != nil {
		loggerFromContext(ctx).Debug("encode failed", "top", top, "err", err)
		return
	}
	loggerFromContext(ctx).Debug("encoded", "top", top, "bytes", size, "duration", d)
}

func (logHooks) OnCacheHit(ctx context.Context, keyType string) {
	loggerFromContext(ctx).Debug("cache hit", "type", keyType)
}

func (logHooks) OnCacheMiss(ctx context.Context, keyType string) {
	loggerFromContext(ctx).Debug("cache miss", "type", keyType)
}

func (logHooks) OnCacheSet(ctx context.Context, keyType string, size int) {
	loggerFromContext(ctx).Debug("cache store", "type", keyType, "bytes", size)
}
