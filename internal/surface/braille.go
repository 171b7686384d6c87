package surface

import (
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// Braille is a terminal canvas. Each character cell holds 2x4 dots and each
// dot covers Scale x Scale surface pixels.
type Braille struct {
	Pen
	Width, Height int
	Scale         float64
	Grid          [][]rune
	Colors        [][]color.Color
}

func NewBraille(cols, rows int, scale float64) *Braille {
	if scale <= 0 {
		scale = 1
	}
	b := &Braille{Pen: NewPen(), Scale: scale}
	b.alloc(cols, rows)
	return b
}

func (b *Braille) alloc(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	b.Width, b.Height = cols, rows
	b.Grid = make([][]rune, rows)
	b.Colors = make([][]color.Color, rows)
	for i := range b.Grid {
		b.Grid[i] = make([]rune, cols)
		b.Colors[i] = make([]color.Color, cols)
		for j := range b.Grid[i] {
			b.Grid[i][j] = brailleBlank
		}
	}
}

// Size is the canvas size in surface pixels.
func (b *Braille) Size() (float64, float64) {
	return float64(b.Width) * 2 * b.Scale, float64(b.Height) * 4 * b.Scale
}

// Resize fits as many whole character cells as the pixel size allows.
func (b *Braille) Resize(width, height float64) {
	cols := int(width / (2 * b.Scale))
	rows := int(height / (4 * b.Scale))
	if cols == b.Width && rows == b.Height {
		return
	}
	b.alloc(cols, rows)
}

// Set sets a dot at (x, y) in dot coordinates.
// The canvas size in dots is (Width*2) x (Height*4).
func (b *Braille) Set(x, y int, c color.Color) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= b.Width || row >= b.Height {
		return
	}

	b.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	b.Colors[row][col] = c
}

// Unset clears a dot
func (b *Braille) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= b.Width || row >= b.Height {
		return
	}

	b.Grid[row][col] &^= rune(pixelMap[y%4][x%2])
	if b.Grid[row][col] < brailleBlank {
		b.Grid[row][col] = brailleBlank
	}
}

func (b *Braille) Clear() {
	for i := range b.Grid {
		for j := range b.Grid[i] {
			b.Grid[i][j] = brailleBlank
			b.Colors[i][j] = nil
		}
	}
}

// Line draws a thick line. The stroke weight is converted to a number of
// parallel one-dot Bresenham lines.
func (b *Braille) Line(x1, y1, x2, y2 float64) {
	s := b.Project(x1, y1, x2, y2).Extended()

	ax, ay := s.X1/b.Scale, s.Y1/b.Scale
	bx, by := s.X2/b.Scale, s.Y2/b.Scale

	thick := int(math.Round(s.Weight / b.Scale))
	if thick < 1 {
		thick = 1
	}

	l := math.Hypot(bx-ax, by-ay)
	nx, ny := 0.0, 0.0
	if l > 0 {
		nx, ny = -(by-ay)/l, (bx-ax)/l
	}

	for i := 0; i < thick; i++ {
		off := float64(i) - float64(thick-1)/2
		b.DrawLine(
			int(math.Round(ax+nx*off)), int(math.Round(ay+ny*off)),
			int(math.Round(bx+nx*off)), int(math.Round(by+ny*off)),
			s.Color,
		)
	}
}

// DrawLine draws a one-dot line using Bresenham's algorithm
func (b *Braille) DrawLine(x0, y0, x1, y1 int, c color.Color) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		b.Set(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Dots counts the set dots, mostly for tests.
func (b *Braille) Dots() int {
	n := 0
	for _, row := range b.Grid {
		for _, r := range row {
			for p := r - brailleBlank; p > 0; p &= p - 1 {
				n++
			}
		}
	}
	return n
}

// String renders the canvas without color.
func (b *Braille) String() string {
	var sb strings.Builder
	for _, row := range b.Grid {
		sb.WriteString(string(row) + "\n")
	}
	return sb.String()
}

// Lines renders each row with runs of equal color styled by lipgloss.
func (b *Braille) Lines() []string {
	out := make([]string, len(b.Grid))
	for i, row := range b.Grid {
		var sb strings.Builder
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && sameColor(b.Colors[i][j], b.Colors[i][start]) {
				continue
			}
			run := string(row[start:j])
			if c := b.Colors[i][start]; c != nil {
				run = lipgloss.NewStyle().Foreground(lipgloss.Color(Hex(c))).Render(run)
			}
			sb.WriteString(run)
			start = j
		}
		out[i] = sb.String()
	}
	return out
}

func sameColor(a, b color.Color) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
