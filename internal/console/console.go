// Package console plays a game between a human at a terminal and an engine.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/hailam/bitchess/internal/board"
	"github.com/hailam/bitchess/internal/engine"
	"github.com/hailam/bitchess/internal/game"
	"github.com/hailam/bitchess/internal/render"
)

// ErrQuit is returned by Run when the human quits or input ends.
var ErrQuit = errors.New("console: quit")

// Options configures a console game.
type Options struct {
	Human board.Color  // side the human plays; NoColor is treated as White
	Start *board.Board // nil = starting position
	ANSI  bool         // colored board instead of plain text
}

// Console reads human moves and commands line by line and answers with
// engine moves.
type Console struct {
	in     *bufio.Scanner
	out    io.Writer
	engine engine.Engine
	rng    *frand.RNG
	human  board.Color
	ansi   bool

	board   board.Board
	history []board.Board // positions before each human move
}

// New creates a console game.
func New(in io.Reader, out io.Writer, eng engine.Engine, rng *frand.RNG, opts Options) *Console {
	c := &Console{
		in:     bufio.NewScanner(in),
		out:    out,
		engine: eng,
		rng:    rng,
		human:  opts.Human,
		ansi:   opts.ANSI,
		board:  board.StartingPosition(),
	}
	if c.human == board.NoColor {
		c.human = board.White
	}
	if opts.Start != nil {
		c.board = *opts.Start
	}
	return c
}

// Board returns the current position.
func (c *Console) Board() board.Board {
	return c.board
}

// Run plays until a side is mated or resigns and returns the result.
func (c *Console) Run() (game.Result, error) {
	if err := c.show(0); err != nil {
		return game.Draw, err
	}

	side := board.White
	for {
		var m board.Move
		var err error
		if side == c.human {
			m, err = c.humanMove()
		} else {
			m, err = c.engineMove()
		}
		if err != nil {
			return game.Draw, err
		}
		if m == board.NoMove {
			fmt.Fprintf(c.out, "%v resigns\n", side)
			return game.Won(side.Other()), nil
		}

		c.board = c.board.WithMove(m)
		if err := c.show(board.SquareBB(m.From()) | board.SquareBB(m.To())); err != nil {
			return game.Draw, err
		}
		if winner, ok := game.Winner(&c.board); ok {
			fmt.Fprintf(c.out, "%v wins\n", winner)
			return game.Won(winner), nil
		}
		side = side.Other()
	}
}

// humanMove prompts until the input names exactly one legal move or a
// command ends the game. It returns NoMove when the human has no legal move.
func (c *Console) humanMove() (board.Move, error) {
	for {
		legal := c.board.LegalMoves(c.human)
		if len(legal) == 0 {
			return board.NoMove, nil
		}

		fmt.Fprintf(c.out, "%v> ", c.human)
		if !c.in.Scan() {
			if err := c.in.Err(); err != nil {
				return board.NoMove, err
			}
			return board.NoMove, ErrQuit
		}
		line := strings.TrimSpace(c.in.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "quit":
			return board.NoMove, ErrQuit
		case "show":
			if err := c.show(0); err != nil {
				return board.NoMove, err
			}
			continue
		case "moves":
			fmt.Fprintf(c.out, "moves: %v\n", legal)
			continue
		case "undo":
			c.undo()
			continue
		case "perft":
			c.perft(fields[1:])
			continue
		}

		var have []board.Move
		for _, m := range legal {
			if strings.Contains(m.String(), line) {
				have = append(have, m)
			}
		}
		switch len(have) {
		case 0:
			fmt.Fprintf(c.out, "invalid move: %s, options: %v\n", line, legal)
		case 1:
			c.history = append(c.history, c.board)
			return have[0], nil
		default:
			fmt.Fprintf(c.out, "ambiguous move: %s, options: %v\n", line, have)
		}
	}
}

// engineMove asks the engine for its move and reports it with its search time.
func (c *Console) engineMove() (board.Move, error) {
	side := c.human.Other()
	start := time.Now()
	m, err := c.engine.ProposeMove(c.rng, &c.board, side)
	if err != nil {
		return board.NoMove, fmt.Errorf("engine move: %w", err)
	}
	elapsed := time.Since(start)
	log.Debug().Str("move", m.String()).Dur("elapsed", elapsed).Msg("engine move")

	if m != board.NoMove {
		ms := float64(elapsed.Microseconds()) / 1e3
		fmt.Fprintf(c.out, "%v> %s (%.1fms)\n", side, game.Annotate(&c.board, m), ms)
	}
	return m, nil
}

// undo takes back the human's last move and the engine's reply.
func (c *Console) undo() {
	if len(c.history) == 0 {
		fmt.Fprintln(c.out, "nothing to undo")
		return
	}
	c.board = c.history[len(c.history)-1]
	c.history = c.history[:len(c.history)-1]
	_ = c.show(0)
}

// perft counts leaf nodes from the current position, the human to move.
func (c *Console) perft(args []string) {
	depth := 1
	if len(args) > 0 {
		d, err := strconv.Atoi(args[0])
		if err != nil || d < 0 {
			fmt.Fprintf(c.out, "invalid depth: %s\n", args[0])
			return
		}
		depth = d
	}

	start := time.Now()
	nodes := board.Perft(&c.board, c.human, depth)
	elapsed := time.Since(start)

	fmt.Fprintf(c.out, "Nodes: %d\n", nodes)
	fmt.Fprintf(c.out, "Time: %v\n", elapsed)
	if elapsed > 0 {
		fmt.Fprintf(c.out, "NPS: %.0f\n", float64(nodes)/elapsed.Seconds())
	}
}

func (c *Console) show(marks board.Bitboard) error {
	if c.ansi {
		return render.ANSI(c.out, &c.board, marks)
	}
	_, err := fmt.Fprintln(c.out, c.board.Format())
	return err
}
