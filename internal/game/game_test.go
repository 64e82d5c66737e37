package game

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/hailam/bitchess/internal/board"
	"github.com/hailam/bitchess/internal/engine"
	"github.com/hailam/bitchess/internal/eval"
)

const mateBoard = `
	. . . . R . . k
	. . . . R . . .
	. . . . . . . .
	. . . . . . . .
	. . . . . . . .
	. . . . . . . .
	. . . . . . . .
	. . . . . . . K
`

func TestWinner(t *testing.T) {
	b := board.MustParseBoard(mateBoard)
	winner, ok := Winner(&b)
	if !ok || winner != board.White {
		t.Errorf("Winner = %v, %v; want White", winner, ok)
	}

	start := board.StartingPosition()
	if _, ok := Winner(&start); ok {
		t.Error("starting position has no winner")
	}
}

func TestAnnotate(t *testing.T) {
	b := board.MustParseBoard(`
		. . . . . . . k
		. . . . . . . .
		. . . . . . . .
		. . . . . . . .
		. . . . . . . .
		. . n . . . . .
		. P . . R . . .
		. . . . R . . K
	`)

	tests := []struct {
		move board.Move
		want string
	}{
		{board.NewMove(board.WhitePawn, board.B2, board.B3), "Pb2b3"},
		{board.NewMove(board.WhitePawn, board.B2, board.C3), "Pb2c3xN"},
		{board.NewMove(board.WhiteRook, board.E2, board.E8), "Re2e8+"},
	}
	for _, tc := range tests {
		if got := Annotate(&b, tc.move); got != tc.want {
			t.Errorf("Annotate(%v) = %q, want %q", tc.move, got, tc.want)
		}
	}

	mate := board.MustParseBoard(`
		. . . . . . . k
		. . . . . . p p
		. . . . . . . .
		. . . . . . . .
		. . . . . . . .
		. . . . . . . .
		. . . . . . . .
		R . . . . . . K
	`)
	if got := Annotate(&mate, board.NewMove(board.WhiteRook, board.A1, board.A8)); got != "Ra1a8#" {
		t.Errorf("mating move annotated %q", got)
	}
}

func TestPlayMateInOne(t *testing.T) {
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
	white := Player{Name: "alphabeta1-material", Engine: engine.AlphaBetaEngine{Eval: eval.Material, Depth: 1}}
	black := Player{Name: "random", Engine: engine.Random{}}

	rec, err := Play(engine.NewRand(1), white, black, Options{Start: &start, MaxPlies: 10})
	if err != nil {
		t.Fatal(err)
	}
	if rec.Result != WhiteWins || rec.Reason != ReasonMate {
		t.Errorf("result %v by %s, want 1-0 by mate; moves %v", rec.Result, rec.Reason, rec.Moves)
	}
	if len(rec.Moves) != 1 || !strings.HasSuffix(rec.Moves[0], "#") {
		t.Errorf("moves = %v, want a single mating move", rec.Moves)
	}
}

func TestPlayPlyLimit(t *testing.T) {
	p := Player{Name: "random", Engine: engine.Random{}}
	plies := 0
	rec, err := Play(engine.NewRand(9), p, p, Options{
		MaxPlies: 6,
		OnMove:   func(int, board.Color, board.Move, *board.Board) { plies++ },
	})
	if err != nil {
		t.Fatal(err)
	}
	if rec.Result != Draw || rec.Reason != ReasonPlies || plies != 6 || len(rec.Moves) != 6 {
		t.Errorf("got %v by %s after %d plies", rec.Result, rec.Reason, plies)
	}
}

type slowEngine struct{ engine.Random }

func (s slowEngine) ProposeMove(rng *frand.RNG, b *board.Board, c board.Color) (board.Move, error) {
	time.Sleep(5 * time.Millisecond)
	return s.Random.ProposeMove(rng, b, c)
}

func TestPlayTimeBudget(t *testing.T) {
	slow := Player{Name: "slow", Engine: slowEngine{}}
	fast := Player{Name: "random", Engine: engine.Random{}}
	rec, err := Play(engine.NewRand(2), slow, fast, Options{Budget: time.Millisecond, MaxPlies: 100})
	if err != nil {
		t.Fatal(err)
	}
	if rec.Result != BlackWins || rec.Reason != ReasonTime {
		t.Errorf("got %v by %s, want 0-1 on time", rec.Result, rec.Reason)
	}
}

func TestPlayLogsRemainingBudget(t *testing.T) {
	var buf bytes.Buffer
	saved, level := log.Logger, zerolog.GlobalLevel()
	log.Logger = zerolog.New(&buf).Level(zerolog.DebugLevel)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() {
		log.Logger = saved
		zerolog.SetGlobalLevel(level)
	})

	p := Player{Name: "random", Engine: engine.Random{}}
	if _, err := Play(engine.NewRand(3), p, p, Options{Budget: time.Hour, MaxPlies: 2}); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(buf.String(), `"remaining"`); got != 2 {
		t.Errorf("logged the remaining budget %d times, want 2:\n%s", got, buf.String())
	}
}

type failingEngine struct{}

var errBroken = errors.New("broken")

func (failingEngine) ProposeMove(*frand.RNG, *board.Board, board.Color) (board.Move, error) {
	return board.NoMove, errBroken
}

func TestPlayEngineError(t *testing.T) {
	p := Player{Name: "broken", Engine: failingEngine{}}
	if _, err := Play(engine.NewRand(1), p, p, Options{}); !errors.Is(err, errBroken) {
		t.Errorf("err = %v, want errBroken", err)
	}
}

func TestMatch(t *testing.T) {
	a := Player{Name: "greedy", Engine: engine.Greedy{Eval: eval.Material}}
	b := Player{Name: "random", Engine: engine.Random{}}

	var seen int
	res, err := Match(engine.NewRand(4), a, b, 4, Options{MaxPlies: 40}, func(Record) error {
		seen++
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if seen != 4 || len(res.Records) != 4 {
		t.Fatalf("saw %d games, recorded %d", seen, len(res.Records))
	}
	if res.A.Games() != 4 || res.B.Games() != 4 {
		t.Errorf("games: %d and %d", res.A.Games(), res.B.Games())
	}
	if res.A.Wins != res.B.Losses || res.A.Draws != res.B.Draws {
		t.Errorf("inconsistent scores %+v %+v", res.A, res.B)
	}
	if res.Records[0].White != "greedy" || res.Records[1].White != "random" {
		t.Error("colors should alternate")
	}
}

func TestClock(t *testing.T) {
	cl := NewClock(0)
	cl.Start(board.White)
	cl.Stop()
	if cl.Expired(board.White) {
		t.Error("unlimited clock never expires")
	}

	cl = NewClock(time.Nanosecond)
	cl.Start(board.Black)
	time.Sleep(time.Millisecond)
	if d := cl.Stop(); d <= 0 {
		t.Errorf("Stop() = %v", d)
	}
	if !cl.Expired(board.Black) || cl.Expired(board.White) {
		t.Error("only Black should have run out")
	}
	if cl.Remaining(board.Black) >= 0 {
		t.Error("Black's remaining time should be negative")
	}
}
