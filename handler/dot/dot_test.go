package dot

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/fatih/color"
)

func TestHandle(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	tests := []struct {
		name     string
		messages []string
		want     string
	}{
		{
			name:     "saved and unchanged",
			messages: []string{"measuring lines", "saved part", "unchanged part", "saved part", "render completed"},
			want:     ".=.\n",
		},
		{
			name:     "failures",
			messages: []string{"measuring lines", "saved part", "failed to store part", "render completed"},
			want:     ".!\n",
		},
		{
			name:     "watch",
			messages: []string{"watching transcript", "transcript changed", "saved part", "render completed", "failed to render transcript"},
			want:     "~.\n!",
		},
		{
			name:     "other messages are ignored",
			messages: []string{"measured lines", "rendered part", "paginated lines"},
			want:     "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := new(bytes.Buffer)
			h := newHandler(slog.NewTextHandler(io.Discard, nil), buf, nil)
			logger := slog.New(h).With(slog.String("path", "out"))
			for _, m := range tt.messages {
				logger.Info(m)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEnabled(t *testing.T) {
	h := newHandler(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelWarn}), io.Discard, nil)
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info should be disabled")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("error should be enabled")
	}
}
