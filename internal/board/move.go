package board

import "fmt"

// Move encodes a move in 16 bits:
// bits 0-5:   from square (0-63)
// bits 6-11:  to square (0-63)
// bits 12-15: moving piece (0-11)
type Move uint16

// NoMove is returned by engines that have no legal move to offer.
const NoMove Move = 0

// NewMove creates a move of piece p from one square to another.
func NewMove(p Piece, from, to Square) Move {
	if debug {
		if !from.IsValid() || !to.IsValid() || from == to || p >= NoPiece {
			panic(fmt.Sprintf("board: bad move %v %v-%v", p, from, to))
		}
	}
	return Move(from) | Move(to)<<6 | Move(p)<<12
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m & 0x3F)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((m >> 6) & 0x3F)
}

// Piece returns the moving piece.
func (m Move) Piece() Piece {
	return Piece(m >> 12)
}

// IsValid reports whether m names a piece and two distinct squares.
func (m Move) IsValid() bool {
	return m.Piece() < NoPiece && m.From() != m.To()
}

// String returns the move in notation, e.g. "Pb2c3" or "pd7d6".
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	return m.Piece().String() + m.From().String() + m.To().String()
}

// ParseMove parses a move in notation: a piece letter followed by the origin
// and destination squares.
func ParseMove(s string) (Move, error) {
	if len(s) != 5 {
		return NoMove, fmt.Errorf("%w: %q should be 5 characters", ErrInvalidMove, s)
	}
	p := PieceFromChar(s[0])
	if p == NoPiece {
		return NoMove, fmt.Errorf("%w: invalid piece %q", ErrInvalidMove, s[0])
	}
	from, err := ParseSquare(s[1:3])
	if err != nil {
		return NoMove, err
	}
	to, err := ParseSquare(s[3:5])
	if err != nil {
		return NoMove, err
	}
	if from == to {
		return NoMove, fmt.Errorf("%w: %q does not move", ErrInvalidMove, s)
	}
	return NewMove(p, from, to), nil
}
