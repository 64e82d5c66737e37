// Package engine implements game-tree search over bitboard positions:
// negamax, alpha-beta with leaf-evaluator move ordering, a parallel root
// alpha-beta, and move selection strategies behind one Engine interface.
package engine

import (
	"context"

	"lukechampine.com/frand"

	"github.com/hailam/bitchess/internal/board"
	"github.com/hailam/bitchess/internal/eval"
)

// Engine proposes moves. ProposeMove returns board.NoMove when c has no move
// that keeps it out of check, which means c resigns. rng is the only mutable
// state an engine touches and must not be shared between concurrent calls.
type Engine interface {
	ProposeMove(rng *frand.RNG, b *board.Board, c board.Color) (board.Move, error)
}

// Evaluator values every legal root move of c.
type Evaluator interface {
	EvalMoves(b *board.Board, c board.Color) ([]MoveValue, error)
}

// propose picks among the best valued moves of e.
func propose(e Evaluator, rng *frand.RNG, b *board.Board, c board.Color) (board.Move, error) {
	values, err := e.EvalMoves(b, c)
	if err != nil {
		return board.NoMove, err
	}
	return PickBestWithTiebreak(rng, values), nil
}

// Random plays any legal move.
type Random struct{}

// EvalMoves values every legal move 0.
func (Random) EvalMoves(b *board.Board, c board.Color) ([]MoveValue, error) {
	legal := b.LegalMoves(c)
	values := make([]MoveValue, len(legal))
	for i, m := range legal {
		values[i] = MoveValue{Move: m}
	}
	return values, nil
}

// ProposeMove implements Engine.
func (r Random) ProposeMove(rng *frand.RNG, b *board.Board, c board.Color) (board.Move, error) {
	return propose(r, rng, b, c)
}

// Greedy plays the move whose resulting position Eval likes best.
type Greedy struct {
	Eval eval.Func
}

// EvalMoves values each move by Eval of the resulting position.
func (g Greedy) EvalMoves(b *board.Board, c board.Color) ([]MoveValue, error) {
	children := legalChildren(b, c)
	values := make([]MoveValue, len(children))
	for i := range children {
		values[i] = MoveValue{Move: children[i].move, Value: g.Eval(&children[i].board, c)}
	}
	return values, nil
}

// ProposeMove implements Engine.
func (g Greedy) ProposeMove(rng *frand.RNG, b *board.Board, c board.Color) (board.Move, error) {
	return propose(g, rng, b, c)
}

// Lookahead searches Depth plies below each root move with plain negamax.
type Lookahead struct {
	Eval  eval.Func
	Depth int
}

// EvalMoves implements Evaluator.
func (l Lookahead) EvalMoves(b *board.Board, c board.Color) ([]MoveValue, error) {
	children := legalChildren(b, c)
	values := make([]MoveValue, len(children))
	for i := range children {
		values[i] = MoveValue{
			Move:  children[i].move,
			Value: -Negamax(&children[i].board, c.Other(), l.Eval, l.Depth),
		}
	}
	return values, nil
}

// ProposeMove implements Engine.
func (l Lookahead) ProposeMove(rng *frand.RNG, b *board.Board, c board.Color) (board.Move, error) {
	return propose(l, rng, b, c)
}

// AlphaBetaEngine searches Depth plies below each root move with alpha-beta.
type AlphaBetaEngine struct {
	Eval  eval.Func
	Depth int
}

// EvalMoves implements Evaluator.
func (a AlphaBetaEngine) EvalMoves(b *board.Board, c board.Color) ([]MoveValue, error) {
	return RootValues(b, c, a.Eval, a.Depth), nil
}

// ProposeMove implements Engine.
func (a AlphaBetaEngine) ProposeMove(rng *frand.RNG, b *board.Board, c board.Color) (board.Move, error) {
	return propose(a, rng, b, c)
}

// ParAlphaBetaEngine is AlphaBetaEngine with the root moves searched in
// parallel. Tie-breaking happens after all workers have joined.
type ParAlphaBetaEngine struct {
	Eval  eval.Func
	Depth int
}

// EvalMoves implements Evaluator.
func (p ParAlphaBetaEngine) EvalMoves(b *board.Board, c board.Color) ([]MoveValue, error) {
	return ParRootValues(context.Background(), b, c, p.Eval, p.Depth)
}

// ProposeMove implements Engine.
func (p ParAlphaBetaEngine) ProposeMove(rng *frand.RNG, b *board.Board, c board.Color) (board.Move, error) {
	return propose(p, rng, b, c)
}
