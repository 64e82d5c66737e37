package engine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hailam/bitchess/internal/eval"
)

// ErrUnknownEngine is returned by Parse for names it cannot build.
var ErrUnknownEngine = errors.New("unknown engine")

// MaxDepth caps the search depth accepted in engine names.
const MaxDepth = 12

// Strategy is an Engine that can also report the values behind its choice.
type Strategy interface {
	Engine
	Evaluator
}

var fixed = map[string]func() Strategy{
	"random": func() Strategy { return Random{} },
	"greedy": func() Strategy { return Greedy{Eval: eval.Material} },
	"l1.mat": func() Strategy { return Lookahead{Eval: eval.Material, Depth: 1} },
	"l2.mat": func() Strategy { return Lookahead{Eval: eval.Material, Depth: 2} },
	"l3.mat": func() Strategy { return Lookahead{Eval: eval.Material, Depth: 3} },
}

var searchers = map[string]func(f eval.Func, depth int) Strategy{
	"negamax":      func(f eval.Func, depth int) Strategy { return Lookahead{Eval: f, Depth: depth} },
	"alphabeta":    func(f eval.Func, depth int) Strategy { return AlphaBetaEngine{Eval: f, Depth: depth} },
	"paralphabeta": func(f eval.Func, depth int) Strategy { return ParAlphaBetaEngine{Eval: f, Depth: depth} },
}

// Parse builds an engine from its name. Besides the fixed names random,
// greedy, l1.mat, l2.mat and l3.mat it accepts greedy-<eval> and
// <search><depth>-<eval>, where search is negamax, alphabeta or paralphabeta
// and eval is an eval.Names entry, e.g. "alphabeta3-material".
func Parse(name string) (Strategy, error) {
	if ctor, ok := fixed[name]; ok {
		return ctor(), nil
	}

	prefix, evalName, ok := strings.Cut(name, "-")
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, name)
	}
	f, err := eval.ByName(evalName)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrUnknownEngine, name, err)
	}
	if prefix == "greedy" {
		return Greedy{Eval: f}, nil
	}

	kind := strings.TrimRight(prefix, "0123456789")
	ctor, ok := searchers[kind]
	if !ok || kind == prefix {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, name)
	}
	depth, err := strconv.Atoi(prefix[len(kind):])
	if err != nil || depth > MaxDepth {
		return nil, fmt.Errorf("%w: %q: depth must be 0..%d", ErrUnknownEngine, name, MaxDepth)
	}
	return ctor(f, depth), nil
}

// Names lists example engine names accepted by Parse.
func Names() []string {
	names := []string{"random", "greedy", "l1.mat", "l2.mat", "l3.mat"}
	for _, e := range eval.Names() {
		names = append(names, "greedy-"+e, "alphabeta3-"+e)
	}
	return append(names, "negamax2-material", "paralphabeta4-heuristic")
}
