package storage

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/hailam/bitchess/internal/board"
	"github.com/hailam/bitchess/internal/engine"
	"github.com/hailam/bitchess/internal/game"
)

func openTest(t *testing.T) *Storage {
	t.Helper()
	s, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return s
}

func TestGames(t *testing.T) {
	s := openTest(t)

	games, err := s.Games()
	if err != nil || len(games) != 0 {
		t.Fatalf("empty database: %v, %v", games, err)
	}

	recs := []game.Record{
		{White: "greedy", Black: "random", Moves: []string{"Pe2e4"}, Result: game.WhiteWins, Reason: game.ReasonMate},
		{White: "random", Black: "greedy", Result: game.Draw, Reason: game.ReasonPlies},
		{White: "greedy", Black: "random", Result: game.BlackWins, Reason: game.ReasonTime},
	}
	for _, rec := range recs {
		if err := s.SaveGame(rec); err != nil {
			t.Fatalf("SaveGame: %v", err)
		}
	}

	games, err = s.Games()
	if err != nil {
		t.Fatal(err)
	}
	if len(games) != len(recs) {
		t.Fatalf("got %d games, want %d", len(games), len(recs))
	}
	for i := range recs {
		if games[i].Result != recs[i].Result || games[i].Reason != recs[i].Reason || games[i].White != recs[i].White {
			t.Errorf("game %d = %+v, want %+v", i, games[i], recs[i])
		}
	}
	if len(games[0].Moves) != 1 || games[0].Moves[0] != "Pe2e4" {
		t.Errorf("moves = %v", games[0].Moves)
	}
}

func TestRecordResult(t *testing.T) {
	s := openTest(t)

	results := []game.Record{
		{White: "greedy", Black: "random", Result: game.WhiteWins, Spent: [2]time.Duration{time.Second, 0}},
		{White: "random", Black: "greedy", Result: game.BlackWins, Spent: [2]time.Duration{0, time.Second}},
		{White: "greedy", Black: "random", Result: game.Draw},
		{White: "random", Black: "greedy", Result: game.WhiteWins},
	}
	for _, rec := range results {
		if err := s.RecordResult(rec); err != nil {
			t.Fatalf("RecordResult: %v", err)
		}
	}

	greedy, err := s.LoadStats("greedy")
	if err != nil {
		t.Fatal(err)
	}
	want := Stats{Engine: "greedy", GamesPlayed: 4, Wins: 2, Losses: 1, Draws: 1, TotalTime: 2 * time.Second, LongestWinStrk: 2}
	if *greedy != want {
		t.Errorf("greedy = %+v, want %+v", *greedy, want)
	}
	if greedy.WinRate() != 50 {
		t.Errorf("win rate = %.2f", greedy.WinRate())
	}

	all, err := s.AllStats()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || all[0].Engine != "greedy" || all[1].Engine != "random" {
		t.Errorf("AllStats order: %+v", all)
	}

	unknown, err := s.LoadStats("nobody")
	if err != nil || unknown.GamesPlayed != 0 || unknown.WinRate() != 0 {
		t.Errorf("unknown engine: %+v, %v", unknown, err)
	}
}

func TestSelfPlay(t *testing.T) {
	s := openTest(t)
	if err := s.RecordResult(game.Record{White: "random", Black: "random", Result: game.WhiteWins}); err != nil {
		t.Fatal(err)
	}
	st, err := s.LoadStats("random")
	if err != nil {
		t.Fatal(err)
	}
	if st.GamesPlayed != 2 || st.Wins != 1 || st.Losses != 1 {
		t.Errorf("self-play stats = %+v", st)
	}
}

func TestAnalysisCache(t *testing.T) {
	s := openTest(t)

	if _, ok, err := s.GetAnalysis("missing"); ok || err != nil {
		t.Fatalf("missing key: %v, %v", ok, err)
	}

	values := []engine.MoveValue{
		{Move: board.NewMove(board.WhitePawn, board.E2, board.E4), Value: 3},
		{Move: board.NewMove(board.WhiteKnight, board.G1, board.F3), Value: -engine.Inf},
	}
	if err := s.PutAnalysis("k", values); err != nil {
		t.Fatal(err)
	}
	got, ok, err := s.GetAnalysis("k")
	if err != nil || !ok {
		t.Fatalf("GetAnalysis: %v, %v", ok, err)
	}
	if len(got) != 2 || got[0] != values[0] || got[1] != values[1] {
		t.Errorf("got %v, want %v", got, values)
	}
}

func TestCachedEngine(t *testing.T) {
	s := openTest(t)
	b := board.StartingPosition()
	c := &engine.Cached{Name: "random", Inner: engine.Random{}, Store: s}
	first, err := c.EvalMoves(&b, board.White)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := s.GetAnalysis(engine.AnalysisKey("random", &b, board.White)); !ok {
		t.Fatal("analysis not stored")
	}
	second, err := c.EvalMoves(&b, board.White)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != 20 || len(second) != len(first) {
		t.Errorf("got %d then %d values", len(first), len(second))
	}
}

func TestOpenDir(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SaveGame(game.Record{White: "a", Black: "b"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestDataPaths(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_DATA_HOME only applies on Linux")
	}
	base := t.TempDir()
	t.Setenv("XDG_DATA_HOME", base)

	dataDir, err := DataDir()
	if err != nil {
		t.Fatalf("DataDir failed: %v", err)
	}
	if want := filepath.Join(base, appName); dataDir != want {
		t.Errorf("DataDir = %s, want %s", dataDir, want)
	}

	dbDir, err := DatabaseDir()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(dbDir); os.IsNotExist(err) {
		t.Errorf("Database directory was not created: %s", dbDir)
	}
}
