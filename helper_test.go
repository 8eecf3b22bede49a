package txtshot

import (
	"context"
	"image/color"
	"sync"
	"testing"

	"github.com/k1LoW/txtshot/config"
	"golang.org/x/image/font/basicfont"
)

var (
	bgColor     = color.RGBA{R: 0x2e, G: 0x34, B: 0x40, A: 0xff}
	textColor   = color.RGBA{R: 0xe5, G: 0xe9, B: 0xf0, A: 0xff}
	promptColor = color.RGBA{R: 0xa3, G: 0xbe, B: 0x8c, A: 0xff}
)

// basicFace returns a face whose glyph boxes are always 7x13 pixels.
func basicFace(t *testing.T) Face {
	t.Helper()
	return NewFace("basicfont 7x13", FaceFallback, basicfont.Face7x13)
}

// fixedFace measures every string as a box of a fixed height.
type fixedFace struct {
	Face
	height int
}

func (f *fixedFace) Measure(s string) Size {
	return Size{Width: 7 * len(s), Height: f.height}
}

// memStorage keeps stored parts in memory.
type memStorage struct {
	mu    sync.Mutex
	files map[string][]byte
	names []string
}

func newMemStorage() *memStorage {
	return &memStorage{files: map[string][]byte{}}
}

func (s *memStorage) Store(ctx context.Context, name string, data []byte) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.names = append(s.names, name)
	s.files[name] = data
	return true, nil
}

func newShot(t *testing.T, f Face, opts ...Option) (*Shot, *memStorage) {
	t.Helper()
	storage := newMemStorage()
	cfg := config.Default()
	cfg.OutputPrefix = "out/screenshot"
	shot, err := New(append([]Option{WithConfig(cfg), WithFace(f), WithStorage(storage)}, opts...)...)
	if err != nil {
		t.Fatal(err)
	}
	return shot, storage
}

func repeat(s string, n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = s
	}
	return lines
}
