package txtshot

import (
	"image"
	"image/color"
	"image/draw"
)

// Style holds the colors of a rendered page and the prompt drawn before command lines.
type Style struct {
	Background  color.Color
	Text        color.Color
	PromptColor color.Color
	Prompt      string
}

// Placement is the absolute draw position of a line within its page.
// RemainderX is where the text after the prompt starts; it equals X for non-prompt lines.
type Placement struct {
	Line       MeasuredLine `json:"line"`
	X          int          `json:"x"`
	Y          int          `json:"y"`
	RemainderX int          `json:"remainder_x"`
}

// Place computes where every line of p is drawn.
// Lines advance by their recorded height, so positions agree with Paginate.
func Place(p *Page, f Face, prompt string, m Metrics) []Placement {
	placements := make([]Placement, 0, len(p.Lines))
	promptWidth := -1
	y := m.Padding
	for _, l := range p.Lines {
		pl := Placement{
			Line:       l,
			X:          m.Padding,
			Y:          y,
			RemainderX: m.Padding,
		}
		if l.Prompt {
			if promptWidth < 0 {
				promptWidth = f.Measure(prompt).Width
			}
			pl.RemainderX = m.Padding + promptWidth
		}
		placements = append(placements, pl)
		y += l.Height + m.LineSpacing
	}
	return placements
}

// RenderPage draws p onto a new image filled with the background color.
func RenderPage(p *Page, f Face, s Style, m Metrics) *image.RGBA {
	// png cannot encode an empty image
	w := max(p.ImageWidth, 1)
	h := max(p.TotalHeight, 1)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(s.Background), image.Point{}, draw.Src)

	text := image.NewUniform(s.Text)
	prompt := image.NewUniform(s.PromptColor)
	for _, pl := range Place(p, f, s.Prompt, m) {
		if pl.Line.Prompt {
			f.Draw(img, image.Pt(pl.X, pl.Y), s.Prompt, prompt)
			f.Draw(img, image.Pt(pl.RemainderX, pl.Y), pl.Line.Remainder(s.Prompt), text)
			continue
		}
		f.Draw(img, image.Pt(pl.X, pl.Y), pl.Line.Display, text)
	}
	return img
}
