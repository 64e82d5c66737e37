// Package storage persists finished games, per-engine statistics and cached
// root analyses in BadgerDB.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog/log"

	"github.com/hailam/bitchess/internal/board"
	"github.com/hailam/bitchess/internal/engine"
	"github.com/hailam/bitchess/internal/game"
)

// Key prefixes
const (
	prefixGame     = "game/"
	prefixStats    = "stats/"
	prefixAnalysis = "analysis/"
	keyGameSeq     = "seq/game"
)

// Stats are one engine's accumulated results.
type Stats struct {
	Engine         string        `json:"engine"`
	GamesPlayed    int           `json:"games_played"`
	Wins           int           `json:"wins"`
	Losses         int           `json:"losses"`
	Draws          int           `json:"draws"`
	TotalTime      time.Duration `json:"total_time"`
	LongestWinStrk int           `json:"longest_win_streak"`
	CurrentStreak  int           `json:"current_streak"`
}

// WinRate returns the win rate as a percentage (0-100)
func (s *Stats) WinRate() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.GamesPlayed) * 100
}

func (s *Stats) record(res game.Result, c board.Color, spent time.Duration) {
	s.GamesPlayed++
	s.TotalTime += spent
	switch res {
	case game.Draw:
		s.Draws++
		s.CurrentStreak = 0
	case game.Won(c):
		s.Wins++
		s.CurrentStreak++
		if s.CurrentStreak > s.LongestWinStrk {
			s.LongestWinStrk = s.CurrentStreak
		}
	default:
		s.Losses++
		s.CurrentStreak = 0
	}
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db  *badger.DB
	seq *badger.Sequence
}

// Open opens (or creates) the database in dir. An empty dir means
// DatabaseDir().
func Open(dir string) (*Storage, error) {
	if dir == "" {
		var err error
		if dir, err = DatabaseDir(); err != nil {
			return nil, err
		}
	}
	return open(badger.DefaultOptions(dir))
}

// OpenInMemory opens a database that lives only as long as the process.
func OpenInMemory() (*Storage, error) {
	return open(badger.DefaultOptions("").WithInMemory(true))
}

func open(opts badger.Options) (*Storage, error) {
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	seq, err := db.GetSequence([]byte(keyGameSeq), 64)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("game sequence: %w", err)
	}
	return &Storage{db: db, seq: seq}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	return errors.Join(s.seq.Release(), s.db.Close())
}

func (s *Storage) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// get decodes the value at key into v and reports whether it was present.
func get(txn *badger.Txn, key string, v any) (bool, error) {
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, item.Value(func(val []byte) error {
		return json.Unmarshal(val, v)
	})
}

// scan decodes every value under prefix, in key order.
func (s *Storage) scan(prefix string, each func(val []byte) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := it.Item().Value(each); err != nil {
				return err
			}
		}
		return nil
	})
}

// SaveGame appends a finished game.
func (s *Storage) SaveGame(rec game.Record) error {
	id, err := s.seq.Next()
	if err != nil {
		return err
	}
	key := fmt.Sprintf("%s%016d", prefixGame, id)
	log.Debug().Str("key", key).Str("result", rec.Result.String()).Msg("saving game")
	return s.put(key, rec)
}

// Games returns every saved game, oldest first.
func (s *Storage) Games() ([]game.Record, error) {
	var games []game.Record
	err := s.scan(prefixGame, func(val []byte) error {
		var rec game.Record
		if err := json.Unmarshal(val, &rec); err != nil {
			return err
		}
		games = append(games, rec)
		return nil
	})
	return games, err
}

// RecordResult updates the statistics of both players of rec.
func (s *Storage) RecordResult(rec game.Record) error {
	return s.db.Update(func(txn *badger.Txn) error {
		loaded := make(map[string]*Stats, 2)
		load := func(name string) (*Stats, error) {
			if st, ok := loaded[name]; ok {
				return st, nil
			}
			st := &Stats{Engine: name}
			if _, err := get(txn, prefixStats+name, st); err != nil {
				return nil, err
			}
			loaded[name] = st
			return st, nil
		}

		for c, name := range [2]string{rec.White, rec.Black} {
			st, err := load(name)
			if err != nil {
				return err
			}
			st.record(rec.Result, board.Color(c), rec.Spent[c])
		}

		for name, st := range loaded {
			data, err := json.Marshal(st)
			if err != nil {
				return err
			}
			if err := txn.Set([]byte(prefixStats+name), data); err != nil {
				return err
			}
		}
		return nil
	})
}

// LoadStats loads the statistics of one engine, empty if it never played.
func (s *Storage) LoadStats(name string) (*Stats, error) {
	st := &Stats{Engine: name}
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := get(txn, prefixStats+name, st)
		return err
	})
	return st, err
}

// AllStats returns the statistics of every engine, best win rate first.
func (s *Storage) AllStats() ([]*Stats, error) {
	var all []*Stats
	err := s.scan(prefixStats, func(val []byte) error {
		st := &Stats{}
		if err := json.Unmarshal(val, st); err != nil {
			return err
		}
		all = append(all, st)
		return nil
	})
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].WinRate() > all[j].WinRate()
	})
	return all, err
}

// PutAnalysis stores root move values under key.
func (s *Storage) PutAnalysis(key string, values []engine.MoveValue) error {
	return s.put(prefixAnalysis+key, values)
}

// GetAnalysis returns the root move values stored under key.
func (s *Storage) GetAnalysis(key string) ([]engine.MoveValue, bool, error) {
	var values []engine.MoveValue
	var found bool
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		found, err = get(txn, prefixAnalysis+key, &values)
		return err
	})
	return values, found, err
}

var _ engine.AnalysisStore = (*Storage)(nil)
