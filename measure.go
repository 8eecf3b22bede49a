package txtshot

// Measure measures the displayed text of every line with f.
// It returns the measured lines in input order and the widest line width.
func Measure(f Face, lines []LogicalLine) ([]MeasuredLine, int) {
	measured := make([]MeasuredLine, 0, len(lines))
	maxWidth := 0
	for _, l := range lines {
		sz := f.Measure(l.Display)
		measured = append(measured, MeasuredLine{
			LogicalLine: l,
			Width:       sz.Width,
			Height:      sz.Height,
		})
		maxWidth = max(maxWidth, sz.Width)
	}
	return measured, maxWidth
}
