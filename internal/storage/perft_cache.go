package storage

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/cricklet/chessrules/internal/game"
	. "github.com/cricklet/chessrules/internal/helpers"
)

const keyPrefix = "perft/"

type PerftRecord struct {
	Fen       string          `json:"fen"`
	Depth     int             `json:"depth"`
	Total     int             `json:"total"`
	Divisions []PerftDivision `json:"divisions"`
}

type PerftDivision struct {
	Move  string `json:"move"`
	Count int    `json:"count"`
}

// PerftCache keeps perft results keyed by position and depth. The clocks
// don't affect perft, so they aren't part of the key.
type PerftCache struct {
	db *badger.DB
}

// OpenPerftCache opens a cache in dir, or an in-memory one when dir is empty.
func OpenPerftCache(dir string) (*PerftCache, Error) {
	var opts badger.Options
	if dir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(dir)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, Wrap(err)
	}
	return &PerftCache{db: db}, NilError
}

func (c *PerftCache) Close() Error {
	if c.db != nil {
		return Wrap(c.db.Close())
	}
	return NilError
}

// perftKey rewrites fen in canonical form first, so short and full records of
// one position share a key.
func perftKey(fen string, depth int) ([]byte, Error) {
	p, err := game.PositionFromFenString(fen)
	if !IsNil(err) {
		return nil, Errorf("invalid fen '%v': %w", fen, err)
	}
	fields := strings.Fields(game.FenString(p))[:4]
	return []byte(fmt.Sprintf("%v%v/%d", keyPrefix, strings.Join(fields, " "), depth)), NilError
}

func (c *PerftCache) Store(record PerftRecord) Error {
	key, err := perftKey(record.Fen, record.Depth)
	if !IsNil(err) {
		return err
	}

	data, jsonErr := json.Marshal(record)
	if jsonErr != nil {
		return Wrap(jsonErr)
	}

	return Wrap(c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	}))
}

func (c *PerftCache) Load(fen string, depth int) (Optional[PerftRecord], Error) {
	key, err := perftKey(fen, depth)
	if !IsNil(err) {
		return Empty[PerftRecord](), err
	}

	result := Empty[PerftRecord]()
	dbErr := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			record := PerftRecord{}
			if err := json.Unmarshal(val, &record); err != nil {
				return err
			}
			result = Some(record)
			return nil
		})
	})

	return result, Wrap(dbErr)
}

// Len counts the cached records.
func (c *PerftCache) Len() (int, Error) {
	count := 0
	err := c.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	return count, Wrap(err)
}
