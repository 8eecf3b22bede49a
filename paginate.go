package txtshot

// Metrics holds the fixed spacing of a page.
type Metrics struct {
	Padding       int `json:"padding"`
	LineSpacing   int `json:"line_spacing"`
	MaxPageHeight int `json:"max_page_height"`
}

// Page is one output image's worth of consecutive lines.
type Page struct {
	PartNumber  int            `json:"part_number"`
	Lines       []MeasuredLine `json:"lines"`
	StartIndex  int            `json:"start_index"`
	TotalHeight int            `json:"total_height"`
	ImageWidth  int            `json:"image_width"`
}

// Paginate groups lines into pages whose height, bottom padding included, stays within m.MaxPageHeight.
// A page always holds at least one line, so a single line taller than the budget gets a page of its own.
func Paginate(lines []MeasuredLine, maxWidth int, m Metrics) []*Page {
	var pages []*Page
	imageWidth := maxWidth + 2*m.Padding
	current := 0
	partNumber := 1
	for current < len(lines) {
		p := &Page{
			PartNumber: partNumber,
			StartIndex: current,
			ImageWidth: imageWidth,
		}
		height := m.Padding
		for current < len(lines) {
			lh := lines[current].Height + m.LineSpacing
			if height+lh+m.Padding > m.MaxPageHeight && len(p.Lines) > 0 {
				break
			}
			p.Lines = append(p.Lines, lines[current])
			height += lh
			current++
		}
		p.TotalHeight = height + m.Padding
		pages = append(pages, p)
		partNumber++
	}
	return pages
}
