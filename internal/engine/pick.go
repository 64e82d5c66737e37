package engine

import (
	"sort"

	"lukechampine.com/frand"

	"github.com/hailam/bitchess/internal/board"
)

// BestValue returns the highest value among options; ok is false when there
// are none.
func BestValue(options []MoveValue) (best int, ok bool) {
	for i, o := range options {
		if i == 0 || o.Value > best {
			best = o.Value
		}
	}
	return best, len(options) > 0
}

// EquallyBest returns the options whose value equals the best value, in their
// original order.
func EquallyBest(options []MoveValue) []MoveValue {
	best, ok := BestValue(options)
	if !ok {
		return nil
	}
	var equal []MoveValue
	for _, o := range options {
		if o.Value == best {
			equal = append(equal, o)
		}
	}
	return equal
}

// PickBestWithTiebreak picks uniformly among the best valued moves. It
// returns board.NoMove when there are no options.
func PickBestWithTiebreak(rng *frand.RNG, options []MoveValue) board.Move {
	equal := EquallyBest(options)
	if len(equal) == 0 {
		return board.NoMove
	}
	return equal[rng.Intn(len(equal))].Move
}

// PickRandomizedWithin picks uniformly among the num best options whose value
// lies less than maxDiff below the best. It spreads self-play games that a
// deterministic engine would otherwise repeat.
func PickRandomizedWithin(rng *frand.RNG, options []MoveValue, num, maxDiff int) board.Move {
	best, ok := BestValue(options)
	if !ok || num < 1 {
		return board.NoMove
	}
	var top []MoveValue
	for _, o := range options {
		if best-o.Value < maxDiff {
			top = append(top, o)
		}
	}
	if len(top) == 0 {
		// maxDiff <= 0 admits nothing; fall back to the best moves.
		return PickBestWithTiebreak(rng, options)
	}
	sort.SliceStable(top, func(i, j int) bool { return top[i].Value > top[j].Value })
	if len(top) > num {
		top = top[:num]
	}
	return top[rng.Intn(len(top))].Move
}
