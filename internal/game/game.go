// Package game plays engines against each other: it decides outcomes,
// annotates moves and runs self-play games and matches.
package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/hailam/bitchess/internal/board"
	"github.com/hailam/bitchess/internal/engine"
)

// Result is the outcome of a game.
type Result uint8

const (
	Draw Result = iota
	WhiteWins
	BlackWins
)

// String returns the result in PGN style.
func (r Result) String() string {
	switch r {
	case WhiteWins:
		return "1-0"
	case BlackWins:
		return "0-1"
	default:
		return "1/2-1/2"
	}
}

// Won returns the result in which c wins.
func Won(c board.Color) Result {
	if c == board.White {
		return WhiteWins
	}
	return BlackWins
}

// Winner returns the winning side. A side wins when the opponent is mated.
func Winner(b *board.Board) (board.Color, bool) {
	for _, c := range []board.Color{board.White, board.Black} {
		if b.IsMate(c) {
			return c.Other(), true
		}
	}
	return board.NoColor, false
}

// Annotate describes m played on b: the piece, origin and destination, then
// "x" and the captured piece, then "#" for mate or "+" for check.
// E.g. "Pb2c3xN+".
func Annotate(b *board.Board, m board.Move) string {
	mover := b.At(m.From())
	var sb strings.Builder
	sb.WriteString(strings.ToUpper(mover.String()))
	sb.WriteString(m.From().String())
	sb.WriteString(m.To().String())

	if captured := b.At(m.To()); captured != board.NoPiece {
		sb.WriteString("x")
		sb.WriteString(strings.ToUpper(captured.String()))
	}

	if c := mover.Color(); c != board.NoColor {
		after := b.WithMove(m)
		if after.IsMate(c.Other()) {
			sb.WriteString("#")
		} else if after.IsCheck(c.Other()) {
			sb.WriteString("+")
		}
	}
	return sb.String()
}

// Player is a named engine.
type Player struct {
	Name   string
	Engine engine.Engine
}

// Options controls a game.
type Options struct {
	MaxPlies int           // 0 = unlimited
	Budget   time.Duration // search time per side; 0 = unlimited
	Start    *board.Board  // nil = starting position

	// OnMove, if set, is called after every ply with the new board.
	OnMove func(ply int, c board.Color, m board.Move, b *board.Board)
}

// Record is a finished game.
type Record struct {
	White   string           `json:"white"`
	Black   string           `json:"black"`
	Moves   []string         `json:"moves"`
	Result  Result           `json:"result"`
	Reason  string           `json:"reason"`
	Spent   [2]time.Duration `json:"spent"`
	Started time.Time        `json:"started"`
}

// Reasons a game ends.
const (
	ReasonMate     = "mate"
	ReasonResign   = "resignation"
	ReasonSelfMate = "left king in check"
	ReasonTime     = "time"
	ReasonPlies    = "ply limit"
)

// Play runs one game, White moving first. It ends when a side is mated,
// resigns, leaves its own king in check, runs out of search time or when
// MaxPlies is reached, which is a draw.
func Play(rng *frand.RNG, white, black Player, opts Options) (Record, error) {
	b := board.StartingPosition()
	if opts.Start != nil {
		b = *opts.Start
	}
	players := [2]Player{white, black}
	clock := NewClock(opts.Budget)
	rec := Record{White: white.Name, Black: black.Name, Started: time.Now()}

	finish := func(res Result, reason string) (Record, error) {
		rec.Result, rec.Reason = res, reason
		rec.Spent = [2]time.Duration{clock.Spent(board.White), clock.Spent(board.Black)}
		log.Debug().
			Str("white", white.Name).
			Str("black", black.Name).
			Str("result", res.String()).
			Str("reason", reason).
			Int("plies", len(rec.Moves)).
			Msg("game over")
		return rec, nil
	}

	c := board.White
	for ply := 0; opts.MaxPlies == 0 || ply < opts.MaxPlies; ply++ {
		if clock.Expired(c) {
			return finish(Won(c.Other()), ReasonTime)
		}

		clock.Start(c)
		m, err := players[c].Engine.ProposeMove(rng, &b, c)
		elapsed := clock.Stop()
		if opts.Budget > 0 {
			log.Debug().
				Str("player", players[c].Name).
				Dur("elapsed", elapsed).
				Dur("remaining", clock.Remaining(c)).
				Msg("search done")
		}
		if err != nil {
			return rec, fmt.Errorf("%s (%v) at ply %d: %w", players[c].Name, c, ply+1, err)
		}
		if m == board.NoMove {
			return finish(Won(c.Other()), ReasonResign)
		}

		rec.Moves = append(rec.Moves, Annotate(&b, m))
		b = b.WithMove(m)
		if opts.OnMove != nil {
			opts.OnMove(ply, c, m, &b)
		}

		if winner, ok := Winner(&b); ok {
			return finish(Won(winner), ReasonMate)
		}
		if b.IsCheck(c) {
			return finish(Won(c.Other()), ReasonSelfMate)
		}
		c = c.Other()
	}
	return finish(Draw, ReasonPlies)
}
