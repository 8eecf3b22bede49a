package txtshot

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestFindFont(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "truetype", "dejavu")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(nested, "DejaVuSansMono.ttf")
	if err := os.WriteFile(want, []byte("dummy"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Run("search dirs", func(t *testing.T) {
		got, err := FindFont("dejavusansmono.ttf", []string{filepath.Join(dir, "missing"), dir})
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("FindFont() = %s, want %s", got, want)
		}
	})

	t.Run("path", func(t *testing.T) {
		got, err := FindFont(want, nil)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("FindFont() = %s, want %s", got, want)
		}
	})

	t.Run("not found", func(t *testing.T) {
		_, err := FindFont("no-such-font-for-txtshot.ttf", []string{dir})
		if !errors.Is(err, ErrFontUnavailable) {
			t.Errorf("FindFont() error = %v, want ErrFontUnavailable", err)
		}
	})
}

func TestLoadPreferredFace(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.ttf")
	if err := os.WriteFile(broken, []byte("not a font"), 0o600); err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		font string
	}{
		{"missing", filepath.Join(dir, "missing.ttf")},
		{"broken", broken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadPreferredFace(FaceOptions{Font: tt.font, Size: 15})
			if !errors.Is(err, ErrFontUnavailable) {
				t.Errorf("LoadPreferredFace() error = %v, want ErrFontUnavailable", err)
			}
		})
	}
}

func TestLoadFaceFallsBack(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f := LoadFace(FaceOptions{Font: filepath.Join(t.TempDir(), "missing.ttf"), Size: 15}, logger)
	t.Cleanup(func() { _ = f.Close() })
	if f.Kind() != FaceFallback {
		t.Errorf("Kind() = %v, want %v", f.Kind(), FaceFallback)
	}
	if f.Name() != "Go Mono" {
		t.Errorf("Name() = %s, want Go Mono", f.Name())
	}
}

func TestFaceKindString(t *testing.T) {
	if got := FacePreferred.String(); got != "preferred" {
		t.Errorf("got %s", got)
	}
	if got := FaceFallback.String(); got != "fallback" {
		t.Errorf("got %s", got)
	}
}
