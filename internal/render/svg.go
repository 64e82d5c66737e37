package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/hailam/bitchess/internal/board"
)

// WriteSVG writes b as an SVG image: colored squares with each piece drawn
// as a disc of its side's color carrying its letter, and coordinates along
// the bottom and left edges.
func WriteSVG(w io.Writer, b *board.Board, opts Options) error {
	var buf bytes.Buffer
	drawBoard(&buf, b, opts.withDefaults(), true)
	_, err := w.Write(buf.Bytes())
	return err
}

// drawBoard emits the board. Without labels only shapes are written, which is
// all the rasterizer draws.
func drawBoard(w io.Writer, b *board.Board, opts Options, labels bool) {
	size := 8 * opts.SquareSize
	canvas := svg.New(w)
	canvas.Startview(size, size, 0, 0, size, size)

	half := opts.SquareSize / 2
	for sq := board.A1; sq <= board.H8; sq++ {
		x, y := opts.origin(sq)
		canvas.Rect(x, y, opts.SquareSize, opts.SquareSize, "fill:"+hex(opts.squareColor(sq)))

		p := b.At(sq)
		if p == board.NoPiece {
			continue
		}
		fill, ink := opts.Theme.WhitePiece, opts.Theme.BlackPiece
		if p.Color() == board.Black {
			fill, ink = ink, fill
		}
		canvas.Circle(x+half, y+half, opts.SquareSize*2/5,
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:2", hex(fill), hex(opts.Theme.BlackPiece)))
		if labels {
			canvas.Text(x+half, y+half, strings.ToUpper(p.String()),
				fmt.Sprintf("fill:%s;font-family:sans-serif;font-weight:bold;font-size:%dpx;text-anchor:middle;dominant-baseline:central",
					hex(ink), opts.SquareSize/2))
		}
	}
	if labels {
		style := fmt.Sprintf("fill:%s;font-family:sans-serif;font-size:%dpx", hex(opts.Theme.TextColor), opts.SquareSize/5)
		for _, l := range opts.coordinates() {
			canvas.Text(l.x, l.y, l.text, style)
		}
	}
	canvas.End()
}
