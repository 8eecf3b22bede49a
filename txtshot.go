package txtshot

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/k1LoW/errors"
	"github.com/k1LoW/txtshot/config"
	"golang.org/x/sync/errgroup"
)

// Shot renders transcripts into terminal-styled PNG parts.
type Shot struct {
	cfg         *config.Config
	face        Face
	storage     Storage
	logger      *slog.Logger
	concurrency int
	style       Style
	metrics     Metrics
}

type Option func(*Shot) error

func WithConfig(cfg *config.Config) Option {
	return func(s *Shot) error {
		s.cfg = cfg
		return nil
	}
}

// WithFace sets the face used instead of loading the configured font.
func WithFace(f Face) Option {
	return func(s *Shot) error {
		s.face = f
		return nil
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Shot) error {
		s.logger = logger
		return nil
	}
}

func WithStorage(storage Storage) Option {
	return func(s *Shot) error {
		s.storage = storage
		return nil
	}
}

// WithConcurrency sets how many pages are rendered at once. It overrides the configured value.
func WithConcurrency(n int) Option {
	return func(s *Shot) error {
		if n < 0 {
			return fmt.Errorf("invalid concurrency: %d", n)
		}
		s.concurrency = n
		return nil
	}
}

// Layout is the measured and paginated form of a transcript.
type Layout struct {
	Lines    []MeasuredLine `json:"lines"`
	MaxWidth int            `json:"max_width"`
	Pages    []*Page        `json:"pages"`
}

// New creates a new Shot.
func New(opts ...Option) (_ *Shot, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	s := &Shot{}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	if s.cfg == nil {
		s.cfg = config.Default()
	}
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	bg, text, prompt, err := s.cfg.Colors()
	if err != nil {
		return nil, err
	}
	s.style = Style{
		Background:  bg,
		Text:        text,
		PromptColor: prompt,
		Prompt:      s.cfg.Prompt,
	}
	s.metrics = Metrics{
		Padding:       s.cfg.Padding,
		LineSpacing:   s.cfg.LineSpacing,
		MaxPageHeight: s.cfg.MaxImageHeight,
	}
	if s.concurrency == 0 {
		s.concurrency = max(s.cfg.Concurrency, 1)
	}
	if s.face == nil {
		s.face = LoadFace(FaceOptions{
			Font:     s.cfg.Font,
			FontDirs: s.cfg.FontDirs,
			Size:     s.cfg.FontSize,
		}, s.logger)
	}
	if s.storage == nil {
		s.storage = NewFileStorage()
	}
	return s, nil
}

// Face returns the active face.
func (s *Shot) Face() Face {
	return s.face
}

// Layout measures raw and splits it into pages.
func (s *Shot) Layout(raw []string) *Layout {
	lines := NewLogicalLines(raw, s.style.Prompt, s.cfg.TabWidth)
	measured, maxWidth := Measure(s.face, lines)
	s.logger.Debug("measured lines", slog.Int("count", len(measured)), slog.Int("max_width", maxWidth), slog.String("font", s.face.Name()))
	pages := Paginate(measured, maxWidth, s.metrics)
	s.logger.Debug("paginated lines", slog.Int("pages", len(pages)))
	return &Layout{
		Lines:    measured,
		MaxWidth: maxWidth,
		Pages:    pages,
	}
}

// Placements returns the absolute draw positions of the lines of p.
func (s *Shot) Placements(p *Page) []Placement {
	return Place(p, s.face, s.style.Prompt, s.metrics)
}

// Render lays out raw and encodes every page as a part.
// Parts are returned in page order whatever the concurrency.
func (s *Shot) Render(ctx context.Context, raw []string) (_ []*Part, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	s.logger.Info("measuring lines", slog.Int("count", len(raw)))
	l := s.Layout(raw)
	parts := make([]*Part, len(l.Pages))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, p := range l.Pages {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img := RenderPage(p, s.face, s.style, s.metrics)
			part, err := newPart(s.cfg.OutputPrefix, p, img)
			if err != nil {
				return err
			}
			parts[i] = part
			s.logger.Debug("rendered part", slog.Int("part", p.PartNumber), slog.Int("lines", len(p.Lines)), slog.Int("height", p.TotalHeight))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return parts, nil
}

// Apply renders raw and stores the parts in order.
func (s *Shot) Apply(ctx context.Context, raw []string) (_ []*Part, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	parts, err := s.Render(ctx, raw)
	if err != nil {
		return nil, err
	}
	if err := s.Store(ctx, parts); err != nil {
		return nil, err
	}
	return parts, nil
}

// Store stores parts in the given order.
func (s *Shot) Store(ctx context.Context, parts []*Part) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	for _, p := range parts {
		stored, err := s.storage.Store(ctx, p.Name, p.Bytes())
		if err != nil {
			s.logger.Error("failed to store part", slog.Int("part", p.Number), slog.String("path", p.Name), slog.String("error", err.Error()))
			return err
		}
		if stored {
			s.logger.Info("saved part", slog.Int("part", p.Number), slog.String("path", p.Name), slog.Any("checksum", p.Checksum()))
		} else {
			s.logger.Info("unchanged part", slog.Int("part", p.Number), slog.String("path", p.Name), slog.Any("checksum", p.Checksum()))
		}
	}
	s.logger.Info("render completed", slog.Int("parts", len(parts)))
	return nil
}

// ApplyFile reads the transcript at path and applies it.
func (s *Shot) ApplyFile(ctx context.Context, path string) (_ []*Part, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	lines, err := ReadTranscript(path)
	if err != nil {
		return nil, err
	}
	return s.Apply(ctx, lines)
}

// Close releases the face.
func (s *Shot) Close() error {
	return s.face.Close()
}
