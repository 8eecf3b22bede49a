package txtshot

import (
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var testStyle = Style{
	Background:  bgColor,
	Text:        textColor,
	PromptColor: promptColor,
	Prompt:      DefaultPrompt,
}

func layoutPage(t *testing.T, f Face, raw []string, m Metrics) *Page {
	t.Helper()
	lines, maxWidth := Measure(f, NewLogicalLines(raw, DefaultPrompt, 0))
	pages := Paginate(lines, maxWidth, m)
	if len(pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(pages))
	}
	return pages[0]
}

func countColor(img *image.RGBA, r image.Rectangle, c color.RGBA) int {
	n := 0
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.RGBAAt(x, y) == c {
				n++
			}
		}
	}
	return n
}

func TestPlace(t *testing.T) {
	f := basicFace(t)
	p := layoutPage(t, f, []string{"ls", "cd /tmp", "whoami", "root"}, defaultMetrics)
	got := Place(p, f, DefaultPrompt, defaultMetrics)
	type pos struct{ X, Y, RemainderX int }
	want := []pos{
		{20, 20, 34},
		{20, 38, 34},
		{20, 56, 34},
		{20, 74, 20},
	}
	var gotPos []pos
	for _, pl := range got {
		gotPos = append(gotPos, pos{pl.X, pl.Y, pl.RemainderX})
	}
	if diff := cmp.Diff(want, gotPos); diff != "" {
		t.Errorf("Place() mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderPage(t *testing.T) {
	f := basicFace(t)
	m := defaultMetrics
	p := layoutPage(t, f, []string{"ls", "cd /tmp", "whoami", "root"}, m)
	img := RenderPage(p, f, testStyle, m)

	if got, want := img.Bounds(), image.Rect(0, 0, 63+2*m.Padding, 2*m.Padding+4*(13+m.LineSpacing)); got != want {
		t.Fatalf("bounds = %v, want %v", got, want)
	}
	if got := img.RGBAAt(0, 0); got != bgColor {
		t.Errorf("background = %v, want %v", got, bgColor)
	}

	for i, pl := range Place(p, f, DefaultPrompt, m) {
		box := image.Rect(pl.X, pl.Y, pl.X+pl.Line.Width, pl.Y+pl.Line.Height)
		if !pl.Line.Prompt {
			if n := countColor(img, box, textColor); n == 0 {
				t.Errorf("line %d: no text drawn", i)
			}
			if n := countColor(img, box, promptColor); n != 0 {
				t.Errorf("line %d: %d prompt colored pixels in an output line", i, n)
			}
			continue
		}
		promptBox := image.Rect(pl.X, pl.Y, pl.RemainderX, box.Max.Y)
		restBox := image.Rect(pl.RemainderX, pl.Y, box.Max.X, box.Max.Y)
		if n := countColor(img, promptBox, promptColor); n == 0 {
			t.Errorf("line %d: prompt is not drawn in the prompt color", i)
		}
		if n := countColor(img, promptBox, textColor); n != 0 {
			t.Errorf("line %d: %d text colored pixels in the prompt", i, n)
		}
		if n := countColor(img, restBox, textColor); n == 0 {
			t.Errorf("line %d: command is not drawn in the text color", i)
		}
		if n := countColor(img, restBox, promptColor); n != 0 {
			t.Errorf("line %d: %d prompt colored pixels in the command", i, n)
		}
	}
}

func TestRenderPageOutputLineLookingLikeAPrompt(t *testing.T) {
	f := basicFace(t)
	m := defaultMetrics
	p := layoutPage(t, f, []string{"echo", "a", "b", "$ not a command"}, m)
	img := RenderPage(p, f, testStyle, m)
	pl := Place(p, f, DefaultPrompt, m)[3]
	box := image.Rect(pl.X, pl.Y, pl.X+pl.Line.Width, pl.Y+pl.Line.Height)
	if n := countColor(img, box, promptColor); n != 0 {
		t.Errorf("%d prompt colored pixels in an output line", n)
	}
}
