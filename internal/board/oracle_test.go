package board_test

import (
	"sort"
	"strings"
	"testing"

	"github.com/dylhunn/dragontoothmg"

	"github.com/hailam/bitchess/internal/board"
	"github.com/hailam/bitchess/internal/engine"
	"github.com/hailam/bitchess/internal/mailbox"
)

// fen renders the placement field of b followed by the side to move. Castling
// and en passant are never available.
func fen(b *board.Board, c board.Color) string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := b.At(board.NewSquare(file, rank))
			if p == board.NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteString(p.String())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	if c == board.White {
		sb.WriteString(" w - - 0 1")
	} else {
		sb.WriteString(" b - - 0 1")
	}
	return sb.String()
}

// sharedRules reports whether b with c to move is a position on which full
// chess rules and this package's rules agree.
func sharedRules(b *board.Board, c board.Color) bool {
	for _, col := range []board.Color{board.White, board.Black} {
		if b.PieceCount(board.NewPiece(board.King, col)) != 1 {
			return false
		}
	}
	if b.IsCheck(c.Other()) {
		return false
	}
	pawns := b.Mask(board.WhitePawn) | b.Mask(board.BlackPawn)
	if pawns&(board.Rank1|board.Rank8) != 0 {
		return false
	}
	// No promotions.
	if b.Mask(board.WhitePawn)&board.Rank7 != 0 && c == board.White {
		return false
	}
	if b.Mask(board.BlackPawn)&board.Rank2 != 0 && c == board.Black {
		return false
	}
	return true
}

func TestLegalMovesAgainstDragontooth(t *testing.T) {
	checked := 0
	for i, mb := range mailbox.RandomBoards(engine.NewRand(12345), 1000) {
		b := mb.ToBoard()
		for _, c := range []board.Color{board.White, board.Black} {
			if !sharedRules(&b, c) {
				continue
			}
			checked++

			var got []string
			for _, m := range b.LegalMoves(c) {
				got = append(got, m.From().String()+m.To().String())
			}

			dt := dragontoothmg.ParseFen(fen(&b, c))
			var want []string
			for _, m := range dt.GenerateLegalMoves() {
				want = append(want, m.String())
			}

			sort.Strings(got)
			sort.Strings(want)
			if strings.Join(got, " ") != strings.Join(want, " ") {
				t.Fatalf("board %d, %v (%s):\n%s\nhave: %v\nwant: %v", i, c, fen(&b, c), b.String(), got, want)
			}
		}
	}
	if checked == 0 {
		t.Fatal("no comparable positions generated")
	}
	t.Logf("compared %d positions", checked)
}
