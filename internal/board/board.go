package board

import (
	"fmt"
	"strings"
)

// Board holds one occupancy mask per piece plus one for empty squares.
// The thirteen masks are pairwise disjoint and together cover every square.
// Boards are values: WithMove returns a modified copy.
type Board struct {
	masks [13]Bitboard
}

// New returns a board with every square empty.
func New() Board {
	var b Board
	b.masks[NoPiece] = Universe
	return b
}

// StartingPosition returns the standard initial setup, queens on the d-file
// and kings on the e-file.
func StartingPosition() Board {
	b := New()
	back := [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file, pt := range back {
		b.Set(NewSquare(file, 0), NewPiece(pt, White))
		b.Set(NewSquare(file, 1), WhitePawn)
		b.Set(NewSquare(file, 6), BlackPawn)
		b.Set(NewSquare(file, 7), NewPiece(pt, Black))
	}
	return b
}

// At returns the piece on sq, NoPiece if it is empty.
func (b *Board) At(sq Square) Piece {
	bb := SquareBB(sq)
	for p := range b.masks {
		if b.masks[p]&bb != 0 {
			return Piece(p)
		}
	}
	if debug {
		panic(fmt.Sprintf("board: square %v in no mask", sq))
	}
	return NoPiece
}

// Set places p on sq, replacing whatever was there. NoPiece empties it.
func (b *Board) Set(sq Square, p Piece) {
	if debug && (!sq.IsValid() || p > NoPiece) {
		panic(fmt.Sprintf("board: set %v on %v", p, sq))
	}
	bb := SquareBB(sq)
	for i := range b.masks {
		b.masks[i] &^= bb
	}
	b.masks[p] |= bb
}

// Mask returns the squares holding p. Mask(NoPiece) is the empty squares.
func (b *Board) Mask(p Piece) Bitboard {
	return b.masks[p]
}

// Occupied returns the squares holding pieces of color c.
func (b *Board) Occupied(c Color) Bitboard {
	base := int(c) * 6
	var bb Bitboard
	for i := base; i < base+6; i++ {
		bb |= b.masks[i]
	}
	return bb
}

// EmptySquares returns the unoccupied squares.
func (b *Board) EmptySquares() Bitboard {
	return b.masks[NoPiece]
}

// ForEach calls f for every occupied square, lowest square first.
func (b *Board) ForEach(f func(Square, Piece)) {
	occ := ^b.masks[NoPiece]
	for occ != 0 {
		sq := occ.PopLSB()
		f(sq, b.At(sq))
	}
}

// WithMove returns a copy of the board with m applied. The origin becomes
// empty and the destination holds the moving piece, whatever it held before.
// Legality is not checked.
func (b *Board) WithMove(m Move) Board {
	from, to := m.From(), m.To()
	p := b.At(from)
	if debug && (p == NoPiece || from == to) {
		panic(fmt.Sprintf("board: cannot apply %v", m))
	}
	nb := *b
	keep := ^(SquareBB(from) | SquareBB(to))
	for i := range nb.masks {
		nb.masks[i] &= keep
	}
	nb.masks[p] |= SquareBB(to)
	nb.masks[NoPiece] |= SquareBB(from)
	return nb
}

// HasKing reports whether c still has a king on the board.
func (b *Board) HasKing(c Color) bool {
	return b.masks[NewPiece(King, c)] != 0
}

// KingSquare returns the square of c's king, NoSquare if it has none.
func (b *Board) KingSquare(c Color) Square {
	return b.masks[NewPiece(King, c)].LSB()
}

// PieceCount returns how many p are on the board.
func (b *Board) PieceCount(p Piece) int {
	return b.masks[p].PopCount()
}

// MaterialValue returns the material balance, positive when White leads.
func (b *Board) MaterialValue() int {
	v := 0
	for _, p := range AllPieces {
		v += p.Sign() * p.Value() * b.masks[p].PopCount()
	}
	return v
}

// Valid reports whether the masks still partition the board.
func (b *Board) Valid() bool {
	var seen Bitboard
	for _, m := range b.masks {
		if seen&m != 0 {
			return false
		}
		seen |= m
	}
	return seen == Universe
}

// String returns a visual representation of the board with coordinates.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 0; file < 8; file++ {
			sb.WriteString(b.At(NewSquare(file, rank)).String())
			sb.WriteString(" ")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n   a b c d e f g h\n")
	return sb.String()
}
