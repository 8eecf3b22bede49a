package txtshot

import (
	"fmt"
	"image"
	"image/draw"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/k1LoW/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// DefaultFont is the preferred monospaced font file.
const DefaultFont = "DejaVuSansMono.ttf"

// FaceKind tells which variant of the font provider is active.
type FaceKind int

const (
	FacePreferred FaceKind = iota
	FaceFallback
)

func (k FaceKind) String() string {
	switch k {
	case FacePreferred:
		return "preferred"
	case FaceFallback:
		return "fallback"
	default:
		return fmt.Sprintf("FaceKind(%d)", int(k))
	}
}

// Size is the pixel box of a piece of text.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Face measures and draws text with a single font at a single size.
// Implementations are safe for concurrent use.
type Face interface {
	Name() string
	Kind() FaceKind
	// Measure returns the pixel box of s.
	Measure(s string) Size
	// Draw draws s with the top of its line box at pt.
	Draw(dst draw.Image, pt image.Point, s string, src image.Image)
	Close() error
}

// FaceOptions selects the preferred font.
type FaceOptions struct {
	Font     string
	FontDirs []string
	Size     float64
}

var _ Face = (*face)(nil)

type face struct {
	mu   sync.Mutex
	name string
	kind FaceKind
	f    font.Face
}

// NewFace wraps f. It is mainly useful for tests and custom fonts.
func NewFace(name string, kind FaceKind, f font.Face) Face {
	return &face{name: name, kind: kind, f: f}
}

func (f *face) Name() string {
	return f.name
}

func (f *face) Kind() FaceKind {
	return f.kind
}

func (f *face) Measure(s string) Size {
	f.mu.Lock()
	defer f.mu.Unlock()
	return measure(f.f, s)
}

func (f *face) Draw(dst draw.Image, pt image.Point, s string, src image.Image) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d := &font.Drawer{
		Dst:  dst,
		Src:  src,
		Face: f.f,
		Dot:  fixed.P(pt.X, pt.Y+f.f.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
}

func (f *face) Close() error {
	return f.f.Close()
}

// measure returns the bounding box of s drawn from the origin.
// The box always reaches the baseline and is widened to the pen advance so trailing spaces count.
// Text without ink, such as an empty line, has no height.
func measure(ff font.Face, s string) Size {
	bounds, advance := font.BoundString(ff, s)
	if bounds.Empty() {
		return Size{Width: advance.Ceil()}
	}
	minX := min(bounds.Min.X, 0)
	maxX := max(bounds.Max.X, advance)
	minY := min(bounds.Min.Y, 0)
	maxY := max(bounds.Max.Y, 0)
	return Size{
		Width:  (maxX - minX).Ceil(),
		Height: (maxY - minY).Ceil(),
	}
}

// LoadFace loads the preferred font and falls back to the embedded Go Mono font when it is unavailable.
func LoadFace(opts FaceOptions, logger *slog.Logger) Face {
	f, err := LoadPreferredFace(opts)
	if err == nil {
		logger.Debug("loaded font", slog.String("font", f.Name()))
		return f
	}
	logger.Warn("preferred font not found, using fallback", slog.String("font", opts.Font), slog.String("error", err.Error()))
	return NewFallbackFace(opts.Size)
}

// LoadPreferredFace finds opts.Font on disk and parses it.
func LoadPreferredFace(opts FaceOptions) (_ Face, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	name := opts.Font
	if name == "" {
		name = DefaultFont
	}
	path, err := FindFont(name, opts.FontDirs)
	if err != nil {
		return nil, err
	}
	otf, ok := LoadFontCache(path)
	if !ok {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read %s: %w", ErrFontUnavailable, path, err)
		}
		otf, err = parseFont(b)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to parse %s: %w", ErrFontUnavailable, path, err)
		}
		StoreFontCache(path, otf)
	}
	ff, err := newOpenTypeFace(otf, opts.Size)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFontUnavailable, err)
	}
	return NewFace(path, FacePreferred, ff), nil
}

// NewFallbackFace returns the embedded Go Mono font at size.
// If it cannot be parsed, the fixed 7x13 bitmap font is used.
func NewFallbackFace(size float64) Face {
	const key = "gomono"
	otf, ok := LoadFontCache(key)
	if !ok {
		var err error
		if otf, err = opentype.Parse(gomono.TTF); err == nil {
			StoreFontCache(key, otf)
		}
	}
	if otf != nil {
		if ff, err := newOpenTypeFace(otf, size); err == nil {
			return NewFace("Go Mono", FaceFallback, ff)
		}
	}
	return NewFace("basicfont 7x13", FaceFallback, basicfont.Face7x13)
}

func parseFont(b []byte) (*sfnt.Font, error) {
	otf, err := opentype.Parse(b)
	if err == nil {
		return otf, nil
	}
	c, cerr := opentype.ParseCollection(b)
	if cerr != nil || c.NumFonts() == 0 {
		return nil, err
	}
	return c.Font(0)
}

func newOpenTypeFace(otf *sfnt.Font, size float64) (font.Face, error) {
	ff, err := opentype.NewFace(otf, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	return ff, nil
}

// FindFont resolves name to a font file.
// A name that exists as a path is used as is, otherwise dirs and then the platform font directories are searched.
func FindFont(name string, dirs []string) (string, error) {
	if fi, err := os.Stat(name); err == nil && !fi.IsDir() {
		return name, nil
	}
	base := filepath.Base(name)
	for _, dir := range append(append([]string{}, dirs...), systemFontDirs()...) {
		if p := searchFontDir(dir, base); p != "" {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrFontUnavailable, name)
}

func searchFontDir(dir, base string) string {
	var found string
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// unreadable entries are skipped
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.IsDir() && strings.EqualFold(d.Name(), base) {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	return found
}

func systemFontDirs() []string {
	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "windows":
		windir := os.Getenv("WINDIR")
		if windir == "" {
			windir = `C:\Windows`
		}
		return []string{filepath.Join(windir, "Fonts")}
	case "darwin":
		return []string{
			filepath.Join(home, "Library", "Fonts"),
			"/Library/Fonts",
			"/System/Library/Fonts",
		}
	default:
		dirs := []string{}
		if v := os.Getenv("XDG_DATA_HOME"); v != "" {
			dirs = append(dirs, filepath.Join(v, "fonts"))
		} else if home != "" {
			dirs = append(dirs, filepath.Join(home, ".local", "share", "fonts"))
		}
		if home != "" {
			dirs = append(dirs, filepath.Join(home, ".fonts"))
		}
		return append(dirs, "/usr/local/share/fonts", "/usr/share/fonts")
	}
}
