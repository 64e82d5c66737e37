package board

import (
	"errors"
	"strings"
	"testing"
)

func TestParseBoard(t *testing.T) {
	b, err := ParseBoard(`
		. . . . R . . k
		. . . . R . . .
		. . . . . . . .
		. . . . . . . .
		. . . . . . . .
		. . . . . . . .
		. . . . . . . .
		. . . . . . . K
	`)
	if err != nil {
		t.Fatalf("ParseBoard: %v", err)
	}
	if got := b.At(E8); got != WhiteRook {
		t.Errorf("At(e8) = %v, want R", got)
	}
	if got := b.At(H8); got != BlackKing {
		t.Errorf("At(h8) = %v, want k", got)
	}
	if got := b.At(H1); got != WhiteKing {
		t.Errorf("At(h1) = %v, want K", got)
	}

	compact, err := ParseBoard("....R..k\n....R...\n........\n........\n........\n........\n........\n.......K\n")
	if err != nil {
		t.Fatalf("ParseBoard compact: %v", err)
	}
	if compact != b {
		t.Error("whitespace inside ranks should be ignored")
	}
}

func TestParseBoardErrors(t *testing.T) {
	row := "........\n"
	tests := []struct {
		name  string
		input string
	}{
		{"too few ranks", strings.Repeat(row, 7)},
		{"too many ranks", strings.Repeat(row, 9)},
		{"short rank", strings.Repeat(row, 7) + ".......\n"},
		{"long rank", strings.Repeat(row, 7) + ".........\n"},
		{"invalid piece", strings.Repeat(row, 7) + "...X....\n"},
		{"empty", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseBoard(tc.input)
			if !errors.Is(err, ErrInvalidBoard) {
				t.Errorf("ParseBoard error = %v, want ErrInvalidBoard", err)
			}
		})
	}
}

func TestFormatRoundTrip(t *testing.T) {
	b := StartingPosition()
	b.Set(E4, WhitePawn)
	b.Set(E2, NoPiece)

	parsed, err := ParseBoard(b.Format())
	if err != nil {
		t.Fatalf("ParseBoard(Format()): %v", err)
	}
	if parsed != b {
		t.Errorf("round trip mismatch:\n%s\nvs\n%s", parsed.Format(), b.Format())
	}
	if first := strings.SplitN(b.Format(), "\n", 2)[0]; first != "r n b q k b n r" {
		t.Errorf("first rank = %q", first)
	}
}

func TestParseMove(t *testing.T) {
	tests := []struct {
		input string
		want  Move
	}{
		{"Pb2c3", NewMove(WhitePawn, B2, C3)},
		{"pd7d6", NewMove(BlackPawn, D7, D6)},
		{"Ka1h8", NewMove(WhiteKing, A1, H8)},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseMove(tc.input)
			if err != nil {
				t.Fatalf("ParseMove(%q): %v", tc.input, err)
			}
			if got != tc.want {
				t.Errorf("ParseMove(%q) = %v, want %v", tc.input, got, tc.want)
			}
			if got.String() != tc.input {
				t.Errorf("String() = %q, want %q", got.String(), tc.input)
			}
		})
	}
}

func TestParseMoveErrors(t *testing.T) {
	for _, s := range []string{"", "b2c3", "Xb2c3", "Pz2c3", "Pb9c3", "Pb2b2", "Pb2c3x"} {
		t.Run(s, func(t *testing.T) {
			if _, err := ParseMove(s); !errors.Is(err, ErrInvalidMove) {
				t.Errorf("ParseMove(%q) error = %v, want ErrInvalidMove", s, err)
			}
		})
	}
}

func TestMoveIsValid(t *testing.T) {
	if NoMove.IsValid() {
		t.Error("NoMove should be invalid")
	}
	if m := NewMove(BlackQueen, D8, H4); !m.IsValid() {
		t.Errorf("%v should be valid", m)
	}
	if m := Move(A1) | Move(B1)<<6 | Move(NoPiece)<<12; m.IsValid() {
		t.Error("a move without a piece should be invalid")
	}
}
