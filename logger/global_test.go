package logger

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"
)

type capturingHandler struct {
	records *[]slog.Record
}

func (h capturingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h capturingHandler) Handle(_ context.Context, r slog.Record) error {
	*h.records = append(*h.records, r)
	return nil
}

func (h capturingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h capturingHandler) WithGroup(string) slog.Handler      { return h }

func captureRecords(t *testing.T) *[]slog.Record {
	t.Helper()
	records := &[]slog.Record{}
	previous := slog.Default()
	slog.SetDefault(slog.New(capturingHandler{records: records}))
	t.Cleanup(func() { slog.SetDefault(previous) })
	return records
}

func attrValue(r slog.Record, key string) (string, bool) {
	var value string
	var found bool
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == key {
			value = a.Value.String()
			found = true
			return false
		}
		return true
	})
	return value, found
}

func requireType(t *testing.T, r slog.Record, want string) {
	t.Helper()
	got, ok := attrValue(r, "type")
	if !ok {
		t.Fatalf("record %q has no type attribute", r.Message)
	}
	if got != want {
		t.Fatalf("record %q has type %q, want %q", r.Message, got, want)
	}
}

func TestLogQuery(t *testing.T) {
	records := captureRecords(t)

	LogQuery("exec", "SELECT 1", time.Millisecond, nil)
	LogQuery("exec", "SELECT 1", time.Millisecond, errors.New("boom"))

	if len(*records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(*records))
	}
	if (*records)[0].Level != slog.LevelDebug {
		t.Errorf("success level = %v, want debug", (*records)[0].Level)
	}
	if (*records)[1].Level != slog.LevelError {
		t.Errorf("failure level = %v, want error", (*records)[1].Level)
	}
	for _, r := range *records {
		requireType(t, r, "db")
		if op, _ := attrValue(r, "operation"); op != "exec" {
			t.Errorf("operation = %q, want exec", op)
		}
	}
}

func TestLogStorage(t *testing.T) {
	records := captureRecords(t)

	LogStorage("upload", "recipes/a.png", time.Millisecond, nil)

	if len(*records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(*records))
	}
	requireType(t, (*records)[0], "storage")
}

func TestLogSystem(t *testing.T) {
	records := captureRecords(t)

	LogSystem("Server started", slog.String("address", ":8000"))

	if len(*records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(*records))
	}
	r := (*records)[0]
	requireType(t, r, "sys")
	if r.Level != slog.LevelInfo {
		t.Errorf("level = %v, want info", r.Level)
	}
	if addr, _ := attrValue(r, "address"); addr != ":8000" {
		t.Errorf("address = %q, want :8000", addr)
	}
}

func TestLogError(t *testing.T) {
	records := captureRecords(t)

	LogError("Startup failed", errors.New("boom"))

	if len(*records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(*records))
	}
	r := (*records)[0]
	requireType(t, r, "error")
	if r.Level != slog.LevelError {
		t.Errorf("level = %v, want error", r.Level)
	}
	if msg, _ := attrValue(r, "error"); msg != "boom" {
		t.Errorf("error attr = %q, want boom", msg)
	}
}
