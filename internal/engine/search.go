package engine

import (
	"github.com/hailam/bitchess/internal/board"
	"github.com/hailam/bitchess/internal/eval"
)

// Search constants
const (
	// Inf is the magnitude of a lost or won king. Leaf evaluators must stay
	// well inside (-Inf, Inf).
	Inf = 1_000_000_000

	// window bounds the root search window. Scores reach at most Inf + depth,
	// so every score lies strictly inside it and root values are exact.
	window = 2 * Inf
)

// lost is the score of a side that has lost its king, or has no move that
// keeps it out of check, with depth plies still to search. Larger depth means
// the loss happens sooner, so it scores lower.
func lost(depth int) int {
	return -Inf - depth
}

// Negamax returns the value of b for c searched depth plies deep with plain
// negamax and leaf evaluated at the horizon.
func Negamax(b *board.Board, c board.Color, leaf eval.Func, depth int) int {
	if !b.HasKing(c) {
		return lost(depth)
	}
	if !b.HasKing(c.Other()) {
		return -lost(depth)
	}
	if depth == 0 {
		return leaf(b, c)
	}

	best := lost(depth)
	for _, m := range b.AllMoves(c) {
		child := b.WithMove(m)
		if child.IsCheck(c) {
			continue
		}
		if v := -Negamax(&child, c.Other(), leaf, depth-1); v > best {
			best = v
		}
	}
	return best
}

// AlphaBeta returns the same value as Negamax, pruning with the fail-soft
// window (alpha, beta). Call it with a window no narrower than the one
// RootAlphaBeta uses to get an exact value.
func AlphaBeta(b *board.Board, c board.Color, leaf eval.Func, alpha, beta, depth int) int {
	if !b.HasKing(c) {
		return lost(depth)
	}
	if !b.HasKing(c.Other()) {
		return -lost(depth)
	}
	if depth == 0 {
		return leaf(b, c)
	}

	children := legalChildren(b, c)
	if depth > 1 {
		orderChildren(children, c, leaf)
	}

	best := lost(depth)
	for i := range children {
		v := -AlphaBeta(&children[i].board, c.Other(), leaf, -beta, -alpha, depth-1)
		if v > best {
			best = v
		}
		if v > alpha {
			alpha = v
		}
		if alpha >= beta {
			break
		}
	}
	return best
}

// RootAlphaBeta runs AlphaBeta with a window wide enough for exact values.
func RootAlphaBeta(b *board.Board, c board.Color, leaf eval.Func, depth int) int {
	return AlphaBeta(b, c, leaf, -window, window, depth)
}

// child is a legal move and the board it leads to.
type child struct {
	move  board.Move
	board board.Board
	score int
}

// legalChildren applies every pseudo-legal move of c and keeps those that do
// not leave c in check.
func legalChildren(b *board.Board, c board.Color) []child {
	moves := b.AllMoves(c)
	children := make([]child, 0, len(moves))
	for _, m := range moves {
		nb := b.WithMove(m)
		if nb.IsCheck(c) {
			continue
		}
		children = append(children, child{move: m, board: nb})
	}
	return children
}
