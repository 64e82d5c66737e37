// Package mailbox is a square-by-square reference board used to check the
// bitboard move generator. Squares live in a 0x88 array: the upper half of
// each 16-wide row is padding, so a step off the board is caught by a single
// mask test before any indexing.
package mailbox

import (
	"github.com/hailam/bitchess/internal/board"
)

const offBoard = 0x88

// Board is a dense-array chess board.
type Board struct {
	squares [128]board.Piece
}

var (
	knightSteps = []int{0x21, 0x1F, 0x12, 0x0E, -0x0E, -0x12, -0x1F, -0x21}
	kingSteps   = []int{0x10, -0x10, 0x01, -0x01, 0x11, 0x0F, -0x0F, -0x11}
	rookSteps   = []int{0x10, -0x10, 0x01, -0x01}
	bishopSteps = []int{0x11, 0x0F, -0x0F, -0x11}
)

func index(sq board.Square) int {
	return sq.Rank()<<4 | sq.File()
}

func square(idx int) board.Square {
	return board.NewSquare(idx&7, idx>>4)
}

// New returns an empty board.
func New() *Board {
	b := &Board{}
	for i := range b.squares {
		b.squares[i] = board.NoPiece
	}
	return b
}

// StartingPosition returns the standard initial setup.
func StartingPosition() *Board {
	return FromBoard(board.StartingPosition())
}

// FromBoard copies a bitboard board.
func FromBoard(bb board.Board) *Board {
	b := New()
	bb.ForEach(func(sq board.Square, p board.Piece) {
		b.Set(sq, p)
	})
	return b
}

// ToBoard converts to a bitboard board.
func (b *Board) ToBoard() board.Board {
	bb := board.New()
	for sq := board.A1; sq <= board.H8; sq++ {
		bb.Set(sq, b.At(sq))
	}
	return bb
}

// At returns the piece on sq.
func (b *Board) At(sq board.Square) board.Piece {
	return b.squares[index(sq)]
}

// Set places p on sq.
func (b *Board) Set(sq board.Square, p board.Piece) {
	b.squares[index(sq)] = p
}

// Apply plays m in place.
func (b *Board) Apply(m board.Move) {
	from, to := index(m.From()), index(m.To())
	b.squares[to] = b.squares[from]
	b.squares[from] = board.NoPiece
}

// AllMoves returns the pseudo-legal moves of color c, with the same rules as
// the bitboard generator.
func (b *Board) AllMoves(c board.Color) []board.Move {
	var moves []board.Move
	for idx := 0; idx < len(b.squares); idx++ {
		if idx&offBoard != 0 {
			continue
		}
		p := b.squares[idx]
		if p == board.NoPiece || p.Color() != c {
			continue
		}
		switch p.Type() {
		case board.Pawn:
			moves = b.pawnMoves(moves, p, idx)
		case board.Knight:
			moves = b.steps(moves, p, idx, knightSteps, false)
		case board.Bishop:
			moves = b.steps(moves, p, idx, bishopSteps, true)
		case board.Rook:
			moves = b.steps(moves, p, idx, rookSteps, true)
		case board.Queen:
			moves = b.steps(moves, p, idx, bishopSteps, true)
			moves = b.steps(moves, p, idx, rookSteps, true)
		case board.King:
			moves = b.steps(moves, p, idx, kingSteps, false)
		}
	}
	return moves
}

func (b *Board) steps(moves []board.Move, p board.Piece, from int, dirs []int, slide bool) []board.Move {
	for _, d := range dirs {
		for to := from + d; to&offBoard == 0; to += d {
			q := b.squares[to]
			if q != board.NoPiece && q.Color() == p.Color() {
				break
			}
			moves = append(moves, board.NewMove(p, square(from), square(to)))
			if q != board.NoPiece || !slide {
				break
			}
		}
	}
	return moves
}

func (b *Board) pawnMoves(moves []board.Move, p board.Piece, from int) []board.Move {
	fwd, home := 0x10, 1
	if p.Color() == board.Black {
		fwd, home = -0x10, 6
	}

	if to := from + fwd; to&offBoard == 0 && b.squares[to] == board.NoPiece {
		moves = append(moves, board.NewMove(p, square(from), square(to)))
		if to2 := to + fwd; from>>4 == home && b.squares[to2] == board.NoPiece {
			moves = append(moves, board.NewMove(p, square(from), square(to2)))
		}
	}

	for _, side := range []int{-1, 1} {
		to := from + fwd + side
		if to&offBoard != 0 {
			continue
		}
		if q := b.squares[to]; q != board.NoPiece && q.Color() != p.Color() {
			moves = append(moves, board.NewMove(p, square(from), square(to)))
		}
	}
	return moves
}
