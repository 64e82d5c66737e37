package mailbox

import (
	"github.com/hailam/bitchess/internal/board"
	"lukechampine.com/frand"
)

// RandomBoards returns n perturbed positions. Each starts from the initial
// setup, loses 10 to 99 random non-king squares and then plays 0 to 99 random
// pseudo-legal moves, White first, skipping any move that would capture a king.
// The same rng state yields the same boards.
func RandomBoards(rng *frand.RNG, n int) []*Board {
	boards := make([]*Board, 0, n)
	for i := 0; i < n; i++ {
		b := StartingPosition()

		for k := 10 + rng.Intn(90); k > 0; k-- {
			sq := board.NewSquare(rng.Intn(8), rng.Intn(8))
			if b.At(sq).Type() != board.King {
				b.Set(sq, board.NoPiece)
			}
		}

		plies := rng.Intn(100)
		for ply := 0; ply < plies; ply++ {
			c := board.White
			if ply%2 == 1 {
				c = board.Black
			}
			moves := b.AllMoves(c)
			if len(moves) == 0 {
				continue
			}
			m := moves[rng.Intn(len(moves))]
			if b.At(m.To()).Type() != board.King {
				b.Apply(m)
			}
		}

		boards = append(boards, b)
	}
	return boards
}
