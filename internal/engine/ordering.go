package engine

import (
	"sort"

	"github.com/hailam/bitchess/internal/board"
	"github.com/hailam/bitchess/internal/eval"
)

// orderChildren sorts children best first for the side that just moved, as
// scored by the leaf evaluator. The sort is stable so equal scores keep
// generation order and searches stay deterministic.
func orderChildren(children []child, mover board.Color, leaf eval.Func) {
	for i := range children {
		children[i].score = leaf(&children[i].board, mover)
	}
	sort.SliceStable(children, func(i, j int) bool {
		return children[i].score > children[j].score
	})
}
