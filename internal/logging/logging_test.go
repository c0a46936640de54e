package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/models"
	"github.com/robfig/cron/v3"
)

func TestToSystemLogMapsKnownKeys(t *testing.T) {
	r := slog.NewRecord(time.Now(), slog.LevelError, "dispatch failed", 0)
	r.AddAttrs(
		slog.String("trace_id", "abc"),
		slog.String("user_id", "u1"),
		slog.String("schedule_id", "s1"),
		slog.String("action", "generate"),
		slog.String("error", "boom"),
		slog.Float64("latency_ms", 12.6),
		slog.Int("attempt", 2),
	)

	entry := toSystemLog(r, []slog.Attr{slog.String("component", "planner")})

	if entry.Component != "planner" {
		t.Errorf("component = %q", entry.Component)
	}
	if entry.TraceID != "abc" || entry.Action != "generate" || entry.Error != "boom" {
		t.Errorf("unexpected entry %+v", entry)
	}
	if entry.UserID == nil || *entry.UserID != "u1" {
		t.Errorf("user_id not mapped")
	}
	if entry.ScheduleID == nil || *entry.ScheduleID != "s1" {
		t.Errorf("schedule_id not mapped")
	}
	if entry.LatencyMs != 13 {
		t.Errorf("latency_ms = %d, want 13", entry.LatencyMs)
	}
	if !strings.Contains(string(entry.Extra), `"attempt":2`) {
		t.Errorf("extra = %s", entry.Extra)
	}
}

func TestPGHandlerBuffersOnlyErrors(t *testing.T) {
	var flushed []models.SystemLog
	h := &PGHandler{sink: &pgSink{flushf: func(b []models.SystemLog) { flushed = append(flushed, b...) }}}

	if h.Enabled(context.Background(), slog.LevelWarn) {
		t.Fatal("warn should not be enabled")
	}
	log := slog.New(h).With("component", "nutrition")
	log.Error("recompute failed", "meal_id", "m1")

	h.sink.flush()
	if len(flushed) != 1 {
		t.Fatalf("flushed %d entries, want 1", len(flushed))
	}
	if flushed[0].Component != "nutrition" || flushed[0].Message != "recompute failed" {
		t.Errorf("unexpected entry %+v", flushed[0])
	}
}

func TestMultiHandlerFansOut(t *testing.T) {
	var a, b bytes.Buffer
	h := NewMultiHandler(
		slog.NewTextHandler(&a, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewTextHandler(&b, &slog.HandlerOptions{Level: slog.LevelError}),
	)
	log := slog.New(h)

	log.Info("hello")
	if !strings.Contains(a.String(), "hello") || b.Len() != 0 {
		t.Fatalf("info routed wrong: a=%q b=%q", a.String(), b.String())
	}
	log.Error("bad")
	if !strings.Contains(b.String(), "bad") {
		t.Fatalf("error not routed to second handler: %q", b.String())
	}
}

func TestCleanupRunsDailyAtThree(t *testing.T) {
	sched, err := cron.ParseStandard(cleanupSpec)
	if err != nil {
		t.Fatalf("ParseStandard: %v", err)
	}
	from := time.Date(2026, 3, 4, 3, 0, 0, 0, time.UTC)
	next := sched.Next(from)
	if want := from.Add(24 * time.Hour); !next.Equal(want) {
		t.Errorf("next run = %v, want %v", next, want)
	}
}
