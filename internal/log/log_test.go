package log

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/ghettovoice/ssconf"
)

func TestHandlerRedactsPassword(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := slog.New(newHandler(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	cfg, err := ssconf.FromFields(ssconf.Fields{
		Host: "example.com", Port: "443", Method: "aes-128-gcm", Password: "s3cr3t", Tag: "home",
	})
	if err != nil {
		t.Fatal(err)
	}
	l.Info("parsed", "config", cfg)

	out := buf.String()
	if strings.Contains(out, "s3cr3t") {
		t.Errorf("password leaked into the log:\n%s", out)
	}
	for _, want := range []string{"example.com", "443", "aes-128-gcm", "home", "***"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output misses %q:\n%s", want, out)
		}
	}
}

func TestHandlerFormatsErrors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := slog.New(newHandler(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	l.Debug("failed", "error", errors.New("boom"))
	if !strings.Contains(buf.String(), "boom") {
		t.Errorf("log output misses the error message:\n%s", buf.String())
	}
}

func TestNoop(t *testing.T) {
	t.Parallel()

	// must be safe and silent at any level
	Noop.Debug("dropped")
	Noop.With("k", "v").WithGroup("g").Error("dropped")
}
