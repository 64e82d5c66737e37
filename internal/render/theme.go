// Package render draws boards as ANSI text, SVG and PNG.
package render

import (
	"fmt"
	"image/color"
	"strconv"

	"github.com/hailam/bitchess/internal/board"
)

// Theme defines the color scheme for the board.
type Theme struct {
	LightSquare  color.RGBA
	DarkSquare   color.RGBA
	MarkedSquare color.RGBA
	WhitePiece   color.RGBA
	BlackPiece   color.RGBA
	TextColor    color.RGBA
}

// DefaultTheme returns the default color theme.
func DefaultTheme() *Theme {
	return &Theme{
		LightSquare:  color.RGBA{240, 217, 181, 255}, // Tan
		DarkSquare:   color.RGBA{181, 136, 99, 255},  // Brown
		MarkedSquare: color.RGBA{130, 151, 105, 255}, // Green
		WhitePiece:   color.RGBA{250, 250, 250, 255},
		BlackPiece:   color.RGBA{30, 30, 30, 255},
		TextColor:    color.RGBA{40, 44, 52, 255},
	}
}

// Options controls image output.
type Options struct {
	SquareSize int // pixels; 0 = 64
	Marks      board.Bitboard
	Flip       bool // Black at the bottom
	Theme      *Theme
}

func (o Options) withDefaults() Options {
	if o.SquareSize <= 0 {
		o.SquareSize = 64
	}
	if o.Theme == nil {
		o.Theme = DefaultTheme()
	}
	return o
}

// squareColor returns the fill of sq.
func (o Options) squareColor(sq board.Square) color.RGBA {
	switch {
	case o.Marks.IsSet(sq):
		return o.Theme.MarkedSquare
	case (sq.File()+sq.Rank())%2 == 0:
		return o.Theme.DarkSquare
	default:
		return o.Theme.LightSquare
	}
}

// origin returns the top-left pixel of sq.
func (o Options) origin(sq board.Square) (x, y int) {
	col, row := sq.File(), 7-sq.Rank()
	if o.Flip {
		col, row = 7-col, 7-row
	}
	return col * o.SquareSize, row * o.SquareSize
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// label is a coordinate printed inside an edge square.
type label struct {
	text string
	x, y int // baseline start
}

// coordinates returns the file letters along the bottom edge and the rank
// digits along the left edge.
func (o Options) coordinates() []label {
	pad := o.SquareSize / 16
	if pad < 1 {
		pad = 1
	}
	small := o.SquareSize / 5
	labels := make([]label, 0, 16)
	for i := 0; i < 8; i++ {
		file, rank := i, i
		if o.Flip {
			file, rank = 7-i, 7-i
		}
		labels = append(labels,
			label{text: string(rune('a' + file)), x: (i+1)*o.SquareSize - small + pad/2, y: 8*o.SquareSize - pad},
			label{text: strconv.Itoa(rank + 1), x: pad, y: (7-i)*o.SquareSize + small + pad})
	}
	return labels
}
