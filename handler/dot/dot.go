package dot

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/k1LoW/errors"
	"github.com/mattn/go-colorable"
)

var (
	yellow = color.New(color.FgYellow, color.Bold).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
)

var _ slog.Handler = (*dotHandler)(nil)

// dotHandler prints one glyph per rendered part and passes nothing else through.
type dotHandler struct {
	handler slog.Handler
	spinner *spinner.Spinner
	stdout  io.Writer
	mu      *sync.Mutex
}

func New(h slog.Handler) (_ slog.Handler, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()

	stdout := colorable.NewColorableStdout()
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(stdout))
	if err := s.Color("yellow"); err != nil {
		return nil, err
	}
	s.Start()
	s.Disable()
	return newHandler(h, stdout, s), nil
}

func newHandler(h slog.Handler, w io.Writer, s *spinner.Spinner) *dotHandler {
	return &dotHandler{
		handler: h,
		spinner: s,
		stdout:  w,
		mu:      &sync.Mutex{},
	}
}

func (h *dotHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *dotHandler) Handle(ctx context.Context, r slog.Record) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	h.mu.Lock()
	defer h.mu.Unlock()

	if r.Message == "measuring lines" {
		if h.spinner != nil && !h.spinner.Enabled() {
			h.spinner.Enable()
		}
		return nil
	}
	if h.spinner != nil && h.spinner.Enabled() {
		h.spinner.Disable()
	}
	switch {
	case r.Message == "saved part":
		return h.write(green("."))
	case r.Message == "unchanged part":
		return h.write(gray("="))
	case r.Message == "transcript changed":
		return h.write(yellow("~"))
	case strings.HasPrefix(r.Message, "failed to"):
		return h.write(red("!"))
	case r.Message == "render completed":
		return h.write("\n")
	}
	return nil
}

func (h *dotHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &dotHandler{handler: h.handler.WithAttrs(attrs), spinner: h.spinner, stdout: h.stdout, mu: h.mu}
}

func (h *dotHandler) WithGroup(name string) slog.Handler {
	return &dotHandler{handler: h.handler.WithGroup(name), spinner: h.spinner, stdout: h.stdout, mu: h.mu}
}

func (h *dotHandler) write(s string) error {
	_, err := io.WriteString(h.stdout, s)
	return err
}
