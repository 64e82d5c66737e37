package render

import (
	"bufio"
	"fmt"
	"io"

	"github.com/hailam/bitchess/internal/board"
)

const (
	ansiReset = "\x1b[0m"
	ansiWhite = "\x1b[1;97m"
	ansiBlack = "\x1b[1;30m"
)

// ANSI writes b to w with 24-bit background colors, rank 8 at the top.
// Squares in marks are highlighted.
func ANSI(w io.Writer, b *board.Board, marks board.Bitboard) error {
	opts := Options{Marks: marks}.withDefaults()
	bw := bufio.NewWriter(w)
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(bw, "%d ", rank+1)
		for file := 0; file < 8; file++ {
			sq := board.NewSquare(file, rank)
			bg := opts.squareColor(sq)
			fmt.Fprintf(bw, "\x1b[48;2;%d;%d;%dm", bg.R, bg.G, bg.B)

			p := b.At(sq)
			switch p.Color() {
			case board.White:
				fmt.Fprintf(bw, "%s %s ", ansiWhite, p)
			case board.Black:
				fmt.Fprintf(bw, "%s %s ", ansiBlack, p)
			default:
				bw.WriteString("   ")
			}
		}
		bw.WriteString(ansiReset + "\n")
	}
	bw.WriteString("   a  b  c  d  e  f  g  h\n")
	return bw.Flush()
}
