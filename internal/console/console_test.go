package console

import (
	"errors"
	"strings"
	"testing"

	"lukechampine.com/frand"

	"github.com/hailam/bitchess/internal/board"
	"github.com/hailam/bitchess/internal/engine"
	"github.com/hailam/bitchess/internal/eval"
	"github.com/hailam/bitchess/internal/game"
)

type resigner struct{}

func (resigner) ProposeMove(*frand.RNG, *board.Board, board.Color) (board.Move, error) {
	return board.NoMove, nil
}

func run(t *testing.T, input string, eng engine.Engine, opts Options) (*Console, string, game.Result, error) {
	t.Helper()
	var out strings.Builder
	c := New(strings.NewReader(input), &out, eng, engine.NewRand(1), opts)
	res, err := c.Run()
	return c, out.String(), res, err
}

func TestMoveMatching(t *testing.T) {
	greedy := engine.Greedy{Eval: eval.Material}
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"invalid", "z9\nquit\n", "invalid move: z9"},
		{"ambiguous", "e2\nquit\n", "ambiguous move: e2"},
		{"played", "e2e4\nquit\n", "Black> "},
		{"moves", "moves\nquit\n", "Nb1a3"},
		{"perft", "perft 2\nquit\n", "Nodes: 400"},
		{"bad perft", "perft x\nquit\n", "invalid depth: x"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, out, _, err := run(t, tc.input, greedy, Options{})
			if !errors.Is(err, ErrQuit) {
				t.Fatalf("err = %v, want ErrQuit", err)
			}
			if !strings.Contains(out, tc.want) {
				t.Errorf("output lacks %q:\n%s", tc.want, out)
			}
		})
	}
}

func TestEndOfInput(t *testing.T) {
	_, _, _, err := run(t, "", engine.Random{}, Options{})
	if !errors.Is(err, ErrQuit) {
		t.Errorf("err = %v, want ErrQuit", err)
	}
}

func TestHumanMates(t *testing.T) {
	start := board.MustParseBoard(`
		. . . . . . . k
		. . . . . . p p
		. . . . . . . .
		. . . . . . . .
		. . . . . . . .
		. . . . . . . .
		. . . . . . . .
		R . . . . . . K
	`)
	_, out, res, err := run(t, "a1a8\n", engine.Random{}, Options{Start: &start})
	if err != nil {
		t.Fatal(err)
	}
	if res != game.WhiteWins || !strings.Contains(out, "White wins") {
		t.Errorf("result %v, output:\n%s", res, out)
	}
	if strings.Contains(out, "invalid move") || strings.Contains(out, "ambiguous move") {
		t.Errorf("a1a8 should name exactly one legal move:\n%s", out)
	}
}

func TestEngineResigns(t *testing.T) {
	_, out, res, err := run(t, "e2e4\n", resigner{}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res != game.WhiteWins || !strings.Contains(out, "Black resigns") {
		t.Errorf("result %v, output:\n%s", res, out)
	}
}

func TestHumanWithoutMoves(t *testing.T) {
	start := board.MustParseBoard(`
		. . . . . . . k
		. . . . . . . .
		. . . . . . . .
		. . . . . . . .
		. . . . . . . .
		. . . . . . . .
		. . . . . . . .
		. . . . . . . .
	`)
	_, out, res, err := run(t, "", engine.Random{}, Options{Start: &start})
	if err != nil {
		t.Fatal(err)
	}
	if res != game.BlackWins || !strings.Contains(out, "White resigns") {
		t.Errorf("result %v, output:\n%s", res, out)
	}
}

func TestUndo(t *testing.T) {
	c, out, _, err := run(t, "undo\ne2e4\nundo\nquit\n", engine.Greedy{Eval: eval.Material}, Options{})
	if !errors.Is(err, ErrQuit) {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(out, "nothing to undo") {
		t.Error("first undo should have nothing to take back")
	}
	if b := c.Board(); b != board.StartingPosition() {
		t.Errorf("board after undo:\n%s", b.Format())
	}
}

func TestHumanPlaysBlack(t *testing.T) {
	c, out, _, err := run(t, "d7d6\nquit\n", engine.Greedy{Eval: eval.Material}, Options{Human: board.Black, ANSI: true})
	if !errors.Is(err, ErrQuit) {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(out, "White> ") {
		t.Errorf("engine should open as White:\n%s", out)
	}
	b := c.Board()
	if b.At(board.D6) != board.BlackPawn {
		t.Error("d7d6 was not played")
	}
	if !strings.Contains(out, "\x1b[") {
		t.Error("expected ANSI output")
	}
}
