package game

import (
	"time"

	"lukechampine.com/frand"

	"github.com/hailam/bitchess/internal/board"
)

// Score aggregates one engine's results over a match.
type Score struct {
	Name   string
	Wins   int
	Losses int
	Draws  int
	Spent  time.Duration
}

// Games returns the number of games played.
func (s Score) Games() int {
	return s.Wins + s.Losses + s.Draws
}

// Points counts a win as 1 and a draw as 1/2.
func (s Score) Points() float64 {
	return float64(s.Wins) + float64(s.Draws)/2
}

// MatchResult holds both engines' scores and every game played.
type MatchResult struct {
	A, B    Score
	Records []Record
}

// Match plays games between a and b, alternating colors with a as White in
// the first game. onGame, if non-nil, sees each record as soon as the game
// ends.
func Match(rng *frand.RNG, a, b Player, games int, opts Options, onGame func(Record) error) (MatchResult, error) {
	res := MatchResult{A: Score{Name: a.Name}, B: Score{Name: b.Name}}
	for i := 0; i < games; i++ {
		white, black := a, b
		sw, sb := &res.A, &res.B
		if i%2 == 1 {
			white, black = b, a
			sw, sb = &res.B, &res.A
		}

		rec, err := Play(rng, white, black, opts)
		if err != nil {
			return res, err
		}
		res.Records = append(res.Records, rec)

		sw.Spent += rec.Spent[board.White]
		sb.Spent += rec.Spent[board.Black]
		switch rec.Result {
		case WhiteWins:
			sw.Wins++
			sb.Losses++
		case BlackWins:
			sb.Wins++
			sw.Losses++
		default:
			sw.Draws++
			sb.Draws++
		}

		if onGame != nil {
			if err := onGame(rec); err != nil {
				return res, err
			}
		}
	}
	return res, nil
}
