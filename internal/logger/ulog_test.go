package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/fhuszti/tmpfiles-ms-go/internal/api_context"
)

func TestNew_AddsServiceAndUser(t *testing.T) {
	tests := []struct {
		name    string
		ctx     context.Context
		wantUID string
	}{
		{"system context", context.Background(), "system"},
		{"authenticated", context.WithValue(context.Background(), api_context.AuthUserIDKey, "user-42"), "user-42"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := New(&buf, "json", slog.LevelInfo, false)
			l.InfoContext(tc.ctx, "hello")

			var rec map[string]any
			if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
				t.Fatalf("log line is not JSON: %v (%s)", err, buf.String())
			}
			if rec["svc"] != "tmpfiles-ms" {
				t.Errorf("svc = %v; want tmpfiles-ms", rec["svc"])
			}
			if rec["uid"] != tc.wantUID {
				t.Errorf("uid = %v; want %s", rec["uid"], tc.wantUID)
			}
		})
	}
}

func TestNew_TextFormatAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "text", slog.LevelWarn, false)

	l.Info("dropped")
	l.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("info line should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "msg=kept") {
		t.Errorf("expected text record for warn line, got %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARNING": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		if got := parseLevel(in).Level(); got != want {
			t.Errorf("parseLevel(%q) = %v; want %v", in, got, want)
		}
	}
}

func TestParseInt(t *testing.T) {
	if got := parseInt("12", 5); got != 12 {
		t.Errorf("parseInt(12) = %d", got)
	}
	if got := parseInt("-1", 5); got != 5 {
		t.Errorf("parseInt(-1) = %d; want default", got)
	}
	if got := parseInt("x", 5); got != 5 {
		t.Errorf("parseInt(x) = %d; want default", got)
	}
}
