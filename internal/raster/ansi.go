package raster

import (
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"
)

const (
	ESC   = "\x1b"
	CSI   = ESC + "["
	Reset = CSI + "0m"

	// UpperHalfBlock paints the top pixel with the foreground color and the
	// bottom pixel with the background color, two pixels per terminal cell.
	UpperHalfBlock = '▀'
)

// MoveTo positions the cursor at row, col (1-based).
func MoveTo(row, col int) string {
	return fmt.Sprintf("%s%d;%dH", CSI, row, col)
}

// ClearScreen clears the entire screen.
func ClearScreen() string {
	return CSI + "2J"
}

// ClearToEOL clears from the cursor to the end of the line.
func ClearToEOL() string {
	return CSI + "K"
}

// HideCursor hides the terminal cursor.
func HideCursor() string {
	return CSI + "?25l"
}

// ShowCursor shows the terminal cursor.
func ShowCursor() string {
	return CSI + "?25h"
}

// EnableAltScreen switches to the alternate screen buffer.
func EnableAltScreen() string {
	return CSI + "?1049h"
}

// DisableAltScreen switches back from the alternate screen buffer.
func DisableAltScreen() string {
	return CSI + "?1049l"
}

// EncodeANSI downsamples the surface to cols×rows terminal cells using
// nearest-neighbour sampling and returns the escape sequence that paints it
// from the top-left corner. Each cell covers two vertically stacked samples.
func (s *Surface) EncodeANSI(cols, rows int) string {
	if cols <= 0 || rows <= 0 || s.Width == 0 || s.Height == 0 {
		return ""
	}

	var sb strings.Builder
	sb.Grow(cols * rows * 40)
	sb.WriteString(MoveTo(1, 1))

	samplesY := rows * 2
	for row := 0; row < rows; row++ {
		if row > 0 {
			sb.WriteString("\r\n")
		}
		yTop := (row * 2) * s.Height / samplesY
		yBottom := (row*2 + 1) * s.Height / samplesY
		for col := 0; col < cols; col++ {
			x := col * s.Width / cols
			writeHalfBlock(&sb, s.RGBAAt(x, yTop), s.RGBAAt(x, yBottom))
		}
	}
	sb.WriteString(Reset)
	return sb.String()
}

// WriteANSI encodes the surface and writes it to w.
func (s *Surface) WriteANSI(w io.Writer, cols, rows int) error {
	_, err := io.WriteString(w, s.EncodeANSI(cols, rows))
	return err
}

// writeHalfBlock emits a full SGR for one cell so no color state leaks
// between cells.
func writeHalfBlock(sb *strings.Builder, top, bottom color.RGBA) {
	sb.WriteString("\x1b[0;38;2;")
	sb.WriteString(strconv.Itoa(int(top.R)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(top.G)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(top.B)))
	sb.WriteString(";48;2;")
	sb.WriteString(strconv.Itoa(int(bottom.R)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(bottom.G)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(bottom.B)))
	sb.WriteByte('m')
	sb.WriteRune(UpperHalfBlock)
}
