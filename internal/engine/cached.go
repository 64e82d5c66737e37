package engine

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/hailam/bitchess/internal/board"
)

// AnalysisStore persists root move values.
type AnalysisStore interface {
	GetAnalysis(key string) ([]MoveValue, bool, error)
	PutAnalysis(key string, values []MoveValue) error
}

// Cached remembers the root values of a deterministic Evaluator. Tie-breaks
// still draw from the caller's rng on every call, so a cache hit picks the
// same way a fresh search would.
type Cached struct {
	Name  string
	Inner Evaluator
	Store AnalysisStore
}

// AnalysisKey identifies the analysis of b for c by the engine called name.
func AnalysisKey(name string, b *board.Board, c board.Color) string {
	return fmt.Sprintf("%s/%s/%s", name, c, b.Compact())
}

// EvalMoves implements Evaluator.
func (e *Cached) EvalMoves(b *board.Board, c board.Color) ([]MoveValue, error) {
	key := AnalysisKey(e.Name, b, c)
	values, ok, err := e.Store.GetAnalysis(key)
	if err != nil {
		return nil, fmt.Errorf("load analysis: %w", err)
	}
	if ok {
		log.Debug().Str("engine", e.Name).Int("moves", len(values)).Msg("analysis cache hit")
		return values, nil
	}

	values, err = e.Inner.EvalMoves(b, c)
	if err != nil {
		return nil, err
	}
	if err := e.Store.PutAnalysis(key, values); err != nil {
		return nil, fmt.Errorf("store analysis: %w", err)
	}
	return values, nil
}

// ProposeMove implements Engine.
func (e *Cached) ProposeMove(rng *frand.RNG, b *board.Board, c board.Color) (board.Move, error) {
	return propose(e, rng, b, c)
}
