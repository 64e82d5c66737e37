// Command bitchess plays, matches, benchmarks and draws the engines.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/pprof"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hailam/bitchess/internal/board"
	"github.com/hailam/bitchess/internal/config"
	"github.com/hailam/bitchess/internal/console"
	"github.com/hailam/bitchess/internal/engine"
	"github.com/hailam/bitchess/internal/game"
	"github.com/hailam/bitchess/internal/mailbox"
	"github.com/hailam/bitchess/internal/render"
	"github.com/hailam/bitchess/internal/storage"
)

const usageText = `usage: bitchess <command> [flags] [args]

commands:
  play            play against -black (or -white with -human black)
  match           play -games games between -white and -black and record them
  bench [names]   measure engine moves per second on random boards
  render <file>   draw a board text file; -o board.png or board.svg, else the terminal
  stats           show recorded results per engine
  engines         list engine names

flags:
`

func usage() {
	fmt.Fprint(os.Stderr, usageText)
	config.Usage(os.Stderr)
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		usage()
		return 2
	}
	cmd := args[0]

	cfg, err := config.Load(args[1:], os.Getenv)
	if errors.Is(err, flag.ErrHelp) {
		usage()
		return 0
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	zerolog.SetGlobalLevel(cfg.LogLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if cfg.CPUProfile != "" {
		f, err := os.Create(cfg.CPUProfile)
		if err != nil {
			log.Error().Err(err).Msg("could not create CPU profile")
			return 1
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Error().Err(err).Msg("could not start CPU profile")
			return 1
		}
		defer pprof.StopCPUProfile()
		log.Info().Str("path", cfg.CPUProfile).Msg("CPU profiling enabled")
	}

	switch cmd {
	case "play":
		err = play(cfg)
	case "match":
		err = match(cfg)
	case "bench":
		err = bench(cfg)
	case "render":
		err = draw(cfg)
	case "stats":
		err = stats(cfg)
	case "engines":
		fmt.Println(strings.Join(engine.Names(), "\n"))
	default:
		usage()
		return 2
	}
	if err != nil {
		log.Error().Err(err).Str("command", cmd).Msg("failed")
		return 1
	}
	return 0
}

func play(cfg *config.Config) error {
	name := cfg.Black
	if cfg.Human == board.Black {
		name = cfg.White
	}
	eng, err := engine.Parse(name)
	if err != nil {
		return err
	}
	log.Info().Str("engine", name).Stringer("human", cfg.Human).Msg("new game")

	c := console.New(os.Stdin, os.Stdout, eng, engine.NewRand(cfg.Seed), console.Options{
		Human: cfg.Human,
		ANSI:  cfg.ANSI,
	})
	if _, err := c.Run(); err != nil && !errors.Is(err, console.ErrQuit) {
		return err
	}
	return nil
}

func openStorage(cfg *config.Config) (*storage.Storage, error) {
	if cfg.InMemory {
		return storage.OpenInMemory()
	}
	return storage.Open(cfg.DBDir)
}

func match(cfg *config.Config) error {
	st, err := openStorage(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	players := make([]game.Player, 2)
	for i, name := range []string{cfg.White, cfg.Black} {
		s, err := engine.Parse(name)
		if err != nil {
			return err
		}
		players[i] = game.Player{Name: name, Engine: &engine.Cached{Name: name, Inner: s, Store: st}}
	}

	opts := game.Options{MaxPlies: cfg.MaxPlies, Budget: cfg.Budget}
	res, err := game.Match(engine.NewRand(cfg.Seed), players[0], players[1], cfg.Games, opts, func(rec game.Record) error {
		fmt.Printf("%s - %s: %s (%s, %d plies)\n", rec.White, rec.Black, rec.Result, rec.Reason, len(rec.Moves))
		if err := st.SaveGame(rec); err != nil {
			return err
		}
		return st.RecordResult(rec)
	})
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "engine\tpoints\twins\tlosses\tdraws\tsearch time")
	for _, s := range []game.Score{res.A, res.B} {
		fmt.Fprintf(tw, "%s\t%.1f\t%d\t%d\t%d\t%v\n", s.Name, s.Points(), s.Wins, s.Losses, s.Draws, s.Spent.Round(time.Millisecond))
	}
	return tw.Flush()
}

// benchBoards is the number of random positions each engine is timed on.
const benchBoards = 1024

func bench(cfg *config.Config) error {
	names := cfg.Args
	if len(names) == 0 {
		names = []string{cfg.White, cfg.Black}
	}
	engines := make([]engine.Engine, len(names))
	for i, name := range names {
		e, err := engine.Parse(name)
		if err != nil {
			return err
		}
		engines[i] = e
	}

	rng := engine.NewRand(cfg.Seed)
	positions := mailbox.RandomBoards(rng, benchBoards)
	boards := make([]board.Board, len(positions))
	for i, p := range positions {
		boards[i] = p.ToBoard()
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "engine\tmoves\tmoves/s\t")
	for i, e := range engines {
		n := 0
		start := time.Now()
		for time.Since(start) < cfg.BenchTime {
			b := &boards[n%len(boards)]
			c := board.Color(n % 2)
			if _, err := e.ProposeMove(rng, b, c); err != nil {
				return fmt.Errorf("%s: %w", names[i], err)
			}
			n++
		}
		elapsed := time.Since(start)
		fmt.Fprintf(tw, "%s\t%d\t%.1f\t\n", names[i], n, float64(n)/elapsed.Seconds())
	}
	return tw.Flush()
}

func draw(cfg *config.Config) error {
	if len(cfg.Args) == 0 {
		return errors.New("render: missing board file")
	}
	var in io.Reader = os.Stdin
	if path := cfg.Args[0]; path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	text, err := io.ReadAll(in)
	if err != nil {
		return err
	}
	b, err := board.ParseBoard(string(text))
	if err != nil {
		return err
	}

	var marks board.Bitboard
	for _, s := range cfg.Args[1:] {
		sq, err := board.ParseSquare(s)
		if err != nil {
			return err
		}
		marks = marks.Set(sq)
	}

	if cfg.Output == "" {
		return render.ANSI(os.Stdout, &b, marks)
	}

	out, err := os.Create(cfg.Output)
	if err != nil {
		return err
	}
	opts := render.Options{SquareSize: cfg.SquareSize, Marks: marks, Flip: cfg.Human == board.Black}
	switch ext := strings.ToLower(filepath.Ext(cfg.Output)); ext {
	case ".svg":
		err = render.WriteSVG(out, &b, opts)
	case ".png":
		err = render.WritePNG(out, &b, opts)
	default:
		err = fmt.Errorf("render: unsupported output format %q", ext)
	}
	return errors.Join(err, out.Close())
}

func stats(cfg *config.Config) error {
	st, err := openStorage(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	games, err := st.Games()
	if err != nil {
		return err
	}
	all, err := st.AllStats()
	if err != nil {
		return err
	}
	fmt.Printf("%d games recorded\n", len(games))

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "engine\tgames\twins\tlosses\tdraws\twin rate\tbest streak\tsearch time")
	for _, s := range all {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%.1f%%\t%d\t%v\n",
			s.Engine, s.GamesPlayed, s.Wins, s.Losses, s.Draws, s.WinRate(), s.LongestWinStrk, s.TotalTime.Round(time.Millisecond))
	}
	return tw.Flush()
}
