package board

// AllMoves returns the pseudo-legal moves of color c: moves that follow piece
// movement rules but may leave c's own king attacked. Callers filter with
// WithMove(m).IsCheck(c). There is no castling, en passant or promotion.
func (b *Board) AllMoves(c Color) []Move {
	moves := make([]Move, 0, 48)
	own := b.Occupied(c)
	empty := b.EmptySquares()

	moves = b.appendPawnMoves(moves, c)

	// Knight moves
	knight := NewPiece(Knight, c)
	for knights := b.masks[knight]; knights != 0; {
		from := knights.PopLSB()
		moves = appendTargets(moves, knight, from, knightAttacks[from]&^own)
	}

	// Sliders, one origin at a time so the origin is known when decoding.
	for _, pt := range [3]PieceType{Bishop, Rook, Queen} {
		p := NewPiece(pt, c)
		for pieces := b.masks[p]; pieces != 0; {
			from := pieces.PopLSB()
			var reach Bitboard
			switch pt {
			case Bishop:
				reach = BishopAttacks(SquareBB(from), empty)
			case Rook:
				reach = RookAttacks(SquareBB(from), empty)
			default:
				reach = QueenAttacks(SquareBB(from), empty)
			}
			moves = appendTargets(moves, p, from, reach&^own)
		}
	}

	// King moves
	king := NewPiece(King, c)
	for kings := b.masks[king]; kings != 0; {
		from := kings.PopLSB()
		moves = appendTargets(moves, king, from, kingAttacks[from]&^own)
	}

	return moves
}

// LegalMoves returns the moves of c that do not leave c in check.
func (b *Board) LegalMoves(c Color) []Move {
	moves := b.AllMoves(c)
	legal := moves[:0]
	for _, m := range moves {
		nb := b.WithMove(m)
		if !nb.IsCheck(c) {
			legal = append(legal, m)
		}
	}
	return legal
}

func appendTargets(moves []Move, p Piece, from Square, targets Bitboard) []Move {
	for targets != 0 {
		moves = append(moves, NewMove(p, from, targets.PopLSB()))
	}
	return moves
}

// appendPawnMoves adds single pushes, double pushes from the home rank and
// diagonal captures of enemy pieces.
func (b *Board) appendPawnMoves(moves []Move, c Color) []Move {
	pawn := NewPiece(Pawn, c)
	pawns := b.masks[pawn]
	if pawns == 0 {
		return moves
	}
	empty := b.EmptySquares()
	enemies := b.Occupied(c.Other())

	var push1, push2, attackW, attackE Bitboard
	var pushDir int

	if c == White {
		push1 = pawns.North() & empty
		push2 = (pawns & Rank2).North().North() & (empty & empty.North())
		attackW = pawns.NorthWest() & enemies
		attackE = pawns.NorthEast() & enemies
		pushDir = 8
	} else {
		push1 = pawns.South() & empty
		push2 = (pawns & Rank7).South().South() & (empty & empty.South())
		attackW = pawns.SouthWest() & enemies
		attackE = pawns.SouthEast() & enemies
		pushDir = -8
	}

	for push1 != 0 {
		to := push1.PopLSB()
		moves = append(moves, NewMove(pawn, Square(int(to)-pushDir), to))
	}
	for push2 != 0 {
		to := push2.PopLSB()
		moves = append(moves, NewMove(pawn, Square(int(to)-2*pushDir), to))
	}
	for attackW != 0 {
		to := attackW.PopLSB()
		moves = append(moves, NewMove(pawn, Square(int(to)-pushDir+1), to))
	}
	for attackE != 0 {
		to := attackE.PopLSB()
		moves = append(moves, NewMove(pawn, Square(int(to)-pushDir-1), to))
	}

	return moves
}

// Perft counts the leaf nodes of the legal move tree of the given depth, c
// moving first.
func Perft(b *Board, c Color, depth int) int64 {
	if depth == 0 {
		return 1
	}

	moves := b.LegalMoves(c)
	if depth == 1 {
		return int64(len(moves))
	}

	var nodes int64
	for _, m := range moves {
		nb := b.WithMove(m)
		nodes += Perft(&nb, c.Other(), depth-1)
	}
	return nodes
}
