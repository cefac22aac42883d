package render

import "math"

// DepthBuffer holds the nearest wall distance for each screen column. The
// world pass resets and fills it; the sprite pass only reads it.
type DepthBuffer struct {
	values []float64
}

// NewDepthBuffer creates a buffer for width columns, reset to +Inf.
func NewDepthBuffer(width int) *DepthBuffer {
	d := &DepthBuffer{}
	d.Resize(width)
	return d
}

// Resize changes the column count and resets every entry.
func (d *DepthBuffer) Resize(width int) {
	width = max(width, 0)
	if cap(d.values) >= width {
		d.values = d.values[:width]
	} else {
		d.values = make([]float64, width)
	}
	d.Reset()
}

// Reset sets every column to +Inf.
func (d *DepthBuffer) Reset() {
	for i := range d.values {
		d.values[i] = math.Inf(1)
	}
}

// Len returns the number of columns.
func (d *DepthBuffer) Len() int {
	return len(d.values)
}

// Set stores the depth of column i. Out-of-range columns are ignored.
func (d *DepthBuffer) Set(i int, v float64) {
	if i >= 0 && i < len(d.values) {
		d.values[i] = v
	}
}

// At returns the depth of column i. Columns outside the buffer read as 0 so
// nothing is ever drawn there.
func (d *DepthBuffer) At(i int) float64 {
	if i < 0 || i >= len(d.values) {
		return 0
	}
	return d.values[i]
}
