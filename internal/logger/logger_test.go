package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/yourorg/listings-web/internal/config"
)

type recordingPoster struct {
	tags []string
	msgs []map[string]any
}

func (p *recordingPoster) Post(tag string, message interface{}) error {
	p.tags = append(p.tags, tag)
	p.msgs = append(p.msgs, message.(map[string]any))
	return nil
}

func TestFluentHandlerPostsFlattenedRecord(t *testing.T) {
	p := &recordingPoster{}
	l := slog.New(NewFluentHandler(p, slog.LevelInfo)).With("component", "test")

	l.Debug("skipped")
	l.WithGroup("req").Warn("slow", "ms", 1200, "err", errors.New("boom"))

	if len(p.msgs) != 1 {
		t.Fatalf("posted %d records, want 1", len(p.msgs))
	}
	if p.tags[0] != "warn" {
		t.Errorf("tag = %q, want warn", p.tags[0])
	}
	m := p.msgs[0]
	if m["message"] != "slow" || m["component"] != "test" {
		t.Errorf("unexpected payload %v", m)
	}
	if m["req.ms"] != int64(1200) {
		t.Errorf("req.ms = %#v", m["req.ms"])
	}
	if m["req.err"] != "boom" {
		t.Errorf("req.err = %#v", m["req.err"])
	}
}

func TestFanoutRespectsLevels(t *testing.T) {
	var debugBuf, errBuf bytes.Buffer
	h := Fanout(
		slog.NewTextHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&errBuf, &slog.HandlerOptions{Level: slog.LevelError}),
	)
	l := slog.New(h).With("k", "v")
	l.Info("hello")

	if !strings.Contains(debugBuf.String(), "hello") || !strings.Contains(debugBuf.String(), "k=v") {
		t.Errorf("debug handler missed record: %q", debugBuf.String())
	}
	if errBuf.Len() != 0 {
		t.Errorf("error handler should not see info: %q", errBuf.String())
	}
}

func TestNewWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l, closer, err := New(config.LogConfig{Level: "debug", Format: "json"}, "listings-web", &buf)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer closer.Close()
	l.Debug("ready")
	out := buf.String()
	if !strings.Contains(out, `"service_name":"listings-web"`) || !strings.Contains(out, `"msg":"ready"`) {
		t.Errorf("unexpected output %q", out)
	}
}

func TestMiddlewareAssignsTraceID(t *testing.T) {
	var seen string
	h := Middleware(Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = TraceID(r.Context())
		if From(r.Context()) == slog.Default() {
			t.Error("request logger not installed")
		}
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if seen == "" || rec.Header().Get(TraceHeader) != seen {
		t.Fatalf("trace id %q, header %q", seen, rec.Header().Get(TraceHeader))
	}

	const inbound = "0b8f6e0e-6c8a-4f4e-9d6f-3f1c2a9b7e11"
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TraceHeader, inbound)
	h.ServeHTTP(httptest.NewRecorder(), req)
	if seen != inbound {
		t.Errorf("inbound trace id not kept: %q", seen)
	}
}

func TestFromWithoutLogger(t *testing.T) {
	if From(context.Background()) != slog.Default() {
		t.Error("expected default logger")
	}
}
