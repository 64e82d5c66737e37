package engine

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/hailam/bitchess/internal/board"
	"github.com/hailam/bitchess/internal/eval"
)

// ErrSearchFailed is returned when a parallel search worker fails. The
// partial results of the other workers are discarded.
var ErrSearchFailed = errors.New("search failed")

// MoveValue is a root move and its searched value for the side to move.
type MoveValue struct {
	Move  board.Move
	Value int
}

// RootValues searches every legal root move of c sequentially. Each move is
// valued -AlphaBeta(child, opponent, depth) with a full window.
func RootValues(b *board.Board, c board.Color, leaf eval.Func, depth int) []MoveValue {
	children := legalChildren(b, c)
	values := make([]MoveValue, len(children))
	for i := range children {
		values[i] = MoveValue{
			Move:  children[i].move,
			Value: -AlphaBeta(&children[i].board, c.Other(), leaf, -window, window, depth),
		}
	}
	return values
}

// ParRootValues is RootValues with one worker per root move. Workers share
// nothing but the read-only leaf evaluator; each owns its child board. All
// workers are joined before returning. A panicking worker, or a cancelled
// ctx, fails the whole search.
func ParRootValues(ctx context.Context, b *board.Board, c board.Color, leaf eval.Func, depth int) ([]MoveValue, error) {
	start := time.Now()
	children := legalChildren(b, c)
	values := make([]MoveValue, len(children))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range children {
		i := i
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%w: worker for %v panicked: %v", ErrSearchFailed, children[i].move, r)
				}
			}()
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("%w: %w", ErrSearchFailed, err)
			}
			v := -AlphaBeta(&children[i].board, c.Other(), leaf, -window, window, depth)
			values[i] = MoveValue{Move: children[i].move, Value: v}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Debug().
		Str("color", c.String()).
		Int("moves", len(values)).
		Int("depth", depth).
		Dur("elapsed", time.Since(start)).
		Msg("parallel root search")
	return values, nil
}

// ParAlphaBeta returns the same value as AlphaBeta searched depth plies deep,
// fanning the root moves out over ParRootValues.
func ParAlphaBeta(ctx context.Context, b *board.Board, c board.Color, leaf eval.Func, depth int) (int, error) {
	if !b.HasKing(c) {
		return lost(depth), nil
	}
	if !b.HasKing(c.Other()) {
		return -lost(depth), nil
	}
	if depth == 0 {
		return leaf(b, c), nil
	}

	values, err := ParRootValues(ctx, b, c, leaf, depth-1)
	if err != nil {
		return 0, err
	}
	if best, ok := BestValue(values); ok {
		return best, nil
	}
	return lost(depth), nil
}
