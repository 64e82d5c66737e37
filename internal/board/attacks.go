package board

// Pre-computed reach tables for the leaping pieces, built from single-step shifts.
var (
	knightAttacks [64]Bitboard
	kingAttacks   [64]Bitboard
)

func init() {
	initKnightAttacks()
	initKingAttacks()
}

func initKnightAttacks() {
	for sq := A1; sq <= H8; sq++ {
		bb := SquareBB(sq)

		// Two files sideways, one rank up or down
		ee := bb.East().East()
		ww := bb.West().West()
		attacks := ee.North() | ee.South() | ww.North() | ww.South()

		// Two ranks up or down, one file sideways
		nn := bb.North().North()
		ss := bb.South().South()
		attacks |= nn.East() | nn.West() | ss.East() | ss.West()

		knightAttacks[sq] = attacks
	}
}

func initKingAttacks() {
	for sq := A1; sq <= H8; sq++ {
		bb := SquareBB(sq)

		attacks := bb.North() | bb.South()
		attacks |= bb.East() | bb.West()
		attacks |= bb.NorthEast() | bb.NorthWest()
		attacks |= bb.SouthEast() | bb.SouthWest()

		kingAttacks[sq] = attacks
	}
}

// KnightAttacks returns the squares a knight on sq reaches.
func KnightAttacks(sq Square) Bitboard {
	return knightAttacks[sq]
}

// KingAttacks returns the squares a king on sq reaches.
func KingAttacks(sq Square) Bitboard {
	return kingAttacks[sq]
}

var (
	rookDirs   = [4]func(Bitboard) Bitboard{Bitboard.North, Bitboard.South, Bitboard.East, Bitboard.West}
	bishopDirs = [4]func(Bitboard) Bitboard{Bitboard.NorthEast, Bitboard.NorthWest, Bitboard.SouthEast, Bitboard.SouthWest}
)

// slide casts rays from every bit of from. Each step shifts the frontier one
// square, keeps the squares reached and stops the rays that hit a piece. The
// first blocker of each ray is included whatever its color.
func slide(from, empty Bitboard, dirs [4]func(Bitboard) Bitboard) Bitboard {
	var reach Bitboard
	for _, step := range dirs {
		front := from
		for i := 0; i < 7 && front != 0; i++ {
			front = step(front)
			reach |= front
			front &= empty
		}
	}
	return reach
}

// RookAttacks returns the squares reached by rooks on from.
func RookAttacks(from, empty Bitboard) Bitboard {
	return slide(from, empty, rookDirs)
}

// BishopAttacks returns the squares reached by bishops on from.
func BishopAttacks(from, empty Bitboard) Bitboard {
	return slide(from, empty, bishopDirs)
}

// QueenAttacks returns the squares reached by queens on from.
func QueenAttacks(from, empty Bitboard) Bitboard {
	return RookAttacks(from, empty) | BishopAttacks(from, empty)
}

// PawnAttacks returns the diagonal capture squares of pawns of color c.
func PawnAttacks(pawns Bitboard, c Color) Bitboard {
	if c == White {
		return pawns.NorthEast() | pawns.NorthWest()
	}
	return pawns.SouthEast() | pawns.SouthWest()
}

// AttackVector summarizes which squares each side and each piece kind reach.
// Squares held by either color count, so own pieces covered by an attack are
// included.
type AttackVector struct {
	ByColor [2]Bitboard
	ByPiece [12]Bitboard
}

// Attacks computes the attack vector of the board.
func (b *Board) Attacks() AttackVector {
	var av AttackVector
	empty := b.EmptySquares()
	for _, p := range AllPieces {
		pieces := b.masks[p]
		if pieces == 0 {
			continue
		}
		var reach Bitboard
		switch p.Type() {
		case Pawn:
			reach = PawnAttacks(pieces, p.Color())
		case Knight:
			for bb := pieces; bb != 0; {
				reach |= knightAttacks[bb.PopLSB()]
			}
		case Bishop:
			reach = BishopAttacks(pieces, empty)
		case Rook:
			reach = RookAttacks(pieces, empty)
		case Queen:
			reach = QueenAttacks(pieces, empty)
		case King:
			for bb := pieces; bb != 0; {
				reach |= kingAttacks[bb.PopLSB()]
			}
		}
		av.ByPiece[p] = reach
		av.ByColor[p.Color()] |= reach
	}
	return av
}

// IsCheck reports whether c's king stands on a square the opponent attacks.
// A side without a king is never in check.
func (b *Board) IsCheck(c Color) bool {
	king := b.masks[NewPiece(King, c)]
	if king == 0 {
		return false
	}
	return b.Attacks().ByColor[c.Other()]&king != 0
}

// IsMate reports whether every pseudo-legal move of c leaves c in check.
// A side with no moves at all is mated too.
func (b *Board) IsMate(c Color) bool {
	for _, m := range b.AllMoves(c) {
		nb := b.WithMove(m)
		if !nb.IsCheck(c) {
			return false
		}
	}
	return true
}
