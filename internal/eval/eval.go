// Package eval implements the static leaf evaluators used by the search.
// Every evaluator scores a board from one player's perspective: higher is
// better for that player, and for the symmetric evaluators
// f(b, White) == -f(b, Black).
package eval

import (
	"fmt"
	"sort"

	"github.com/hailam/bitchess/internal/board"
)

// Func evaluates b from c's perspective. Implementations must be pure: the
// parallel search calls them from several goroutines at once.
type Func func(b *board.Board, c board.Color) int

// Heuristic weights
const (
	checkWeight      = -1_000_000
	materialWeight   = 1000
	protectionWeight = 3
	threatWeight     = 2
	mobilityWeight   = 1
)

// Material returns the material balance from c's perspective: pawn 1,
// knight 3, bishop 3, rook 5, queen 9, king 0.
func Material(b *board.Board, c board.Color) int {
	return b.MaterialValue() * c.Sign()
}

// Heuristic is the composite evaluator: a large penalty for standing in check,
// then material, then small terms for protection, threats and mobility.
func Heuristic(b *board.Board, c board.Color) int {
	av := b.Attacks()
	return checkWeight*inCheck(b, &av, c) +
		materialWeight*Material(b, c) +
		protectionWeight*Protection(b, &av, c) +
		threatWeight*Threat(b, &av, c) +
		mobilityWeight*Mobility(&av, c)
}

// CheckAndMaterial is Heuristic without the positional terms.
func CheckAndMaterial(b *board.Board, c board.Color) int {
	av := b.Attacks()
	return checkWeight*inCheck(b, &av, c) + materialWeight*Material(b, c)
}

// KingDistance rewards crowding the enemy king: the negated sum of Manhattan
// distances from each of c's pieces to it. It is 0 when the enemy has no king.
func KingDistance(b *board.Board, c board.Color) int {
	king := b.KingSquare(c.Other())
	if king == board.NoSquare {
		return 0
	}
	sum := 0
	for own := b.Occupied(c); own != 0; {
		sum += own.PopLSB().L1Distance(king)
	}
	return -sum
}

// Zero always returns 0.
func Zero(*board.Board, board.Color) int {
	return 0
}

func inCheck(b *board.Board, av *board.AttackVector, c board.Color) int {
	if b.Mask(board.NewPiece(board.King, c))&av.ByColor[c.Other()] != 0 {
		return 1
	}
	return 0
}

// Protection counts c's non-king pieces covered by c's own attacks, minus the
// same count for the opponent.
func Protection(b *board.Board, av *board.AttackVector, c board.Color) int {
	return protected(b, av, c) - protected(b, av, c.Other())
}

func protected(b *board.Board, av *board.AttackVector, c board.Color) int {
	own := b.Occupied(c) &^ b.Mask(board.NewPiece(board.King, c))
	return (own & av.ByColor[c]).PopCount()
}

// Threat counts opponent pieces covered by c's attacks, minus the reverse.
func Threat(b *board.Board, av *board.AttackVector, c board.Color) int {
	return threatened(b, av, c) - threatened(b, av, c.Other())
}

func threatened(b *board.Board, av *board.AttackVector, c board.Color) int {
	return (b.Occupied(c.Other()) & av.ByColor[c]).PopCount()
}

// Mobility sums, over every piece kind, the number of squares it reaches
// signed by its color, then orients the total for c.
func Mobility(av *board.AttackVector, c board.Color) int {
	sum := 0
	for _, p := range board.AllPieces {
		sum += av.ByPiece[p].PopCount() * p.Sign()
	}
	return sum * c.Sign()
}

var byName = map[string]Func{
	"material":  Material,
	"heuristic": Heuristic,
	"checkmat":  CheckAndMaterial,
	"kingdist":  KingDistance,
	"zero":      Zero,
}

// ByName looks up an evaluator by its registry name.
func ByName(name string) (Func, error) {
	f, ok := byName[name]
	if !ok {
		return nil, fmt.Errorf("unknown evaluator %q", name)
	}
	return f, nil
}

// Names lists the registered evaluator names.
func Names() []string {
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
