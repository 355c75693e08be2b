package zapadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/trickstertwo/xclock"
	"github.com/trickstertwo/xtrace"
)

func newTestZap(buf *bytes.Buffer, min zapcore.Level) *zap.Logger {
	enc := zapcore.NewJSONEncoder(zapcore.EncoderConfig{
		TimeKey:        "", // records carry "ts"
		LevelKey:       "level",
		MessageKey:     "message",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	})
	core := zapcore.NewCore(enc, zapcore.AddSync(buf), min)
	return zap.New(core)
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("json unmarshal: %v; line=%s", err, line)
		}
		out = append(out, m)
	}
	return out
}

func TestZapDestination_JSON_EmitsTSAndFields(t *testing.T) {
	var buf bytes.Buffer
	d := New(newTestZap(&buf, zapcore.DebugLevel))

	at := time.Date(2024, 12, 31, 23, 59, 59, 123456789, time.UTC)
	r := xtrace.NewRecord(xtrace.LogTypeWarning, "Billing", "state changed",
		xtrace.Str("from", "old"),
		xtrace.Int64("count", 2),
		xtrace.Bool("ok", true),
		xtrace.Dur("dur", time.Millisecond),
		xtrace.Err("error", errors.New("boom")),
	)
	r.At = at
	r.Source = "invoice.go"
	if err := d.Send([]xtrace.Record{r}); err != nil {
		t.Fatalf("Send: %v", err)
	}

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("got %d lines", len(lines))
	}
	m := lines[0]
	if m["level"] != "warn" {
		t.Fatalf("level mismatch: %v", m["level"])
	}
	if m["message"] != "state changed" {
		t.Fatalf("message mismatch: %v", m["message"])
	}
	if m["ts"] != at.Format(time.RFC3339Nano) {
		t.Fatalf("ts mismatch: %v", m["ts"])
	}
	if m["id"] != r.ID || m["context"] != "Billing" || m["type"] != "Warning" || m["source"] != "invoice.go" {
		t.Fatalf("record metadata mismatch: %v", m)
	}
	if m["from"] != "old" || m["count"] != float64(2) || m["ok"] != true {
		t.Fatalf("fields mismatch: %v", m)
	}
	if m["dur"] != "1ms" {
		t.Fatalf("dur mismatch: %v", m["dur"])
	}
	if m["error"] != "boom" {
		t.Fatalf("error mismatch: %v", m["error"])
	}
}

func TestZapDestination_WithBoundFields(t *testing.T) {
	var buf bytes.Buffer
	d := New(newTestZap(&buf, zapcore.DebugLevel)).With(xtrace.Str("svc", "api"), xtrace.Str("ver", "1.0.0"))

	r := xtrace.NewRecord(xtrace.LogTypeInfo, "http", "ok", xtrace.Str("path", "/healthz"))
	if err := d.Send([]xtrace.Record{r}); err != nil {
		t.Fatalf("Send: %v", err)
	}

	m := decodeLines(t, &buf)[0]
	if m["svc"] != "api" || m["ver"] != "1.0.0" || m["path"] != "/healthz" {
		t.Fatalf("bound + record fields missing: %v", m)
	}
}

func TestZapDestination_LevelMapping(t *testing.T) {
	cases := []struct {
		typ  xtrace.LogType
		want string
	}{
		{xtrace.LogTypeSuccess, "debug"},
		{xtrace.LogTypeInfo, "info"},
		{xtrace.LogTypeEvent, "info"},
		{xtrace.LogTypeWarning, "warn"},
		{xtrace.LogTypeFailure, "warn"},
		{xtrace.LogTypeError, "error"},
		{xtrace.LogTypeCritical, "error"},
	}
	for _, tc := range cases {
		t.Run(tc.typ.String(), func(t *testing.T) {
			if got := toZapLevel(tc.typ).String(); got != tc.want {
				t.Fatalf("toZapLevel(%v) = %s, want %s", tc.typ, got, tc.want)
			}
		})
	}
}

func TestZapDestination_SkipsDisabledLevels(t *testing.T) {
	var buf bytes.Buffer
	d := New(newTestZap(&buf, zapcore.WarnLevel))

	records := []xtrace.Record{
		xtrace.NewRecord(xtrace.LogTypeInfo, "c", "dropped"),
		xtrace.NewRecord(xtrace.LogTypeError, "c", "kept"),
	}
	if err := d.Send(records); err != nil {
		t.Fatalf("Send: %v", err)
	}
	lines := decodeLines(t, &buf)
	if len(lines) != 1 || lines[0]["message"] != "kept" {
		t.Fatalf("lines %v", lines)
	}
}

func TestZapDestination_SendContextCancelled(t *testing.T) {
	var buf bytes.Buffer
	d := New(newTestZap(&buf, zapcore.DebugLevel))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := d.SendContext(ctx, []xtrace.Record{xtrace.NewRecord(xtrace.LogTypeInfo, "c", "d")})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("unexpected output: %s", buf.String())
	}
}

func TestZapListener_WritesLinesAtLevel(t *testing.T) {
	var buf bytes.Buffer
	li := NewListener(newTestZap(&buf, zapcore.DebugLevel), xtrace.LogTypeError)

	if err := li.WriteLine("trace line"); err != nil {
		t.Fatalf("WriteLine: %v", err)
	}
	if err := li.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	m := decodeLines(t, &buf)[0]
	if m["level"] != "error" || m["message"] != "trace line" {
		t.Fatalf("line mismatch: %v", m)
	}
}

func TestUse_BuildsGlobalLogger(t *testing.T) {
	frozen := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	prev := xclock.Default()
	xclock.SetDefault(xclock.NewFrozen(frozen))
	t.Cleanup(func() { xclock.SetDefault(prev) })

	var buf bytes.Buffer
	logger, err := Use(Config{Writer: &buf})
	if err != nil {
		t.Fatalf("Use: %v", err)
	}
	if xtrace.L() != logger {
		t.Fatal("Use must set the global logger")
	}
	logger.Info("setup").Str("k", "v").Msg("hello")

	m := decodeLines(t, &buf)[0]
	if m["message"] != "hello" || m["context"] != "setup" || m["k"] != "v" {
		t.Fatalf("line mismatch: %v", m)
	}
	if m["ts"] != frozen.Format(time.RFC3339Nano) {
		t.Fatalf("ts mismatch: %v", m["ts"])
	}
}
