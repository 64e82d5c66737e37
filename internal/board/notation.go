package board

import (
	"fmt"
	"strings"
	"unicode"
)

// ParseBoard reads a board from text: eight non-blank lines of eight squares
// each, rank 8 first. A square is a piece letter (PNBRQK for White, pnbrqk for
// Black) or '.' when empty. Whitespace inside a line is ignored, so
// ". . . . R . . k" and "....R..k" are the same rank.
func ParseBoard(s string) (Board, error) {
	b := New()
	rank := 7
	for _, line := range strings.Split(s, "\n") {
		row := strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return -1
			}
			return r
		}, line)
		if row == "" {
			continue
		}
		if rank < 0 {
			return Board{}, fmt.Errorf("%w: more than 8 ranks", ErrInvalidBoard)
		}
		if len(row) != 8 {
			return Board{}, fmt.Errorf("%w: rank %d has %d squares, want 8", ErrInvalidBoard, rank+1, len(row))
		}
		for file := 0; file < 8; file++ {
			ch := row[file]
			p := PieceFromChar(ch)
			if p == NoPiece && ch != '.' {
				return Board{}, fmt.Errorf("%w: invalid piece %q on %v", ErrInvalidBoard, ch, NewSquare(file, rank))
			}
			b.Set(NewSquare(file, rank), p)
		}
		rank--
	}
	if rank >= 0 {
		return Board{}, fmt.Errorf("%w: %d ranks, want 8", ErrInvalidBoard, 7-rank)
	}
	return b, nil
}

// MustParseBoard is like ParseBoard but panics on error. For fixtures.
func MustParseBoard(s string) Board {
	b, err := ParseBoard(s)
	if err != nil {
		panic(err)
	}
	return b
}

// Format returns the board in the notation accepted by ParseBoard.
func (b *Board) Format() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			if file > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(b.At(NewSquare(file, rank)).String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Compact returns the 64 square letters of Format on one line, rank 8 first.
// It identifies the placement, e.g. as a cache key.
func (b *Board) Compact() string {
	buf := make([]byte, 0, 64)
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			buf = append(buf, b.At(NewSquare(file, rank)).String()...)
		}
	}
	return string(buf)
}
