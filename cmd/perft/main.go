package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/cricklet/chessrules/internal/game"
	. "github.com/cricklet/chessrules/internal/helpers"
	"github.com/cricklet/chessrules/internal/movegen"
	"github.com/cricklet/chessrules/internal/storage"
	"github.com/cricklet/chessrules/internal/zobrist"
	"github.com/pkg/profile"
)

type perftArgs struct {
	fen     string
	depth   int
	workers int
	divide  bool
	cache   bool
	hash    bool
}

func parseArgs(args []string) (perftArgs, Error) {
	result := perftArgs{
		fen:     game.StartFen,
		depth:   4,
		workers: runtime.NumCPU(),
	}

	for _, arg := range args {
		key, value, hasValue := strings.Cut(arg, "=")
		switch key {
		case "fen":
			result.fen = value
		case "depth", "workers":
			n, err := strconv.Atoi(value)
			if !hasValue || err != nil || n < 1 {
				return result, Errorf("%v needs a positive value: %v", key, arg)
			}
			if key == "depth" {
				result.depth = n
			} else {
				result.workers = n
			}
		case "divide":
			result.divide = true
		case "cache":
			result.cache = true
		case "hash":
			result.hash = true
		default:
			return result, Errorf("unknown argument: %v", arg)
		}
	}

	return result, NilError
}

func printDivisions(divisions []movegen.PerftDivision, total int, elapsed time.Duration, divide bool) {
	if divide {
		for _, d := range divisions {
			fmt.Println(d)
		}
		fmt.Println()
	}
	fmt.Println(RateString(int64(total), "nodes", elapsed))
}

func run(args perftArgs) Error {
	p, err := game.PositionFromFenString(args.fen)
	if !IsNil(err) {
		return err
	}
	fmt.Println(p.Grid().Unicode())

	var cache *storage.PerftCache
	if args.cache {
		dir, err := storage.GetPerftCacheDir()
		if !IsNil(err) {
			return err
		}
		cache, err = storage.OpenPerftCache(dir)
		if !IsNil(err) {
			return err
		}
		defer cache.Close()

		record, err := cache.Load(args.fen, args.depth)
		if !IsNil(err) {
			return err
		}
		if record.HasValue() {
			fmt.Println("cached")
			divisions := MapSlice(record.Value().Divisions, func(d storage.PerftDivision) movegen.PerftDivision {
				return movegen.PerftDivision{First: d.Move, Second: d.Count}
			})
			printDivisions(divisions, record.Value().Total, 0, args.divide)
			return NilError
		}
	}

	rootMoves := len(movegen.NewLegalMoveGenerator().GenerateLegalMoves(p))
	bar := CreateProgressBar(rootMoves, fmt.Sprintf("perft %v", args.depth))

	var table *zobrist.TranspositionTable
	if args.hash {
		table = zobrist.NewTranspositionTable(zobrist.DefaultTranspositionTableSize)
	}

	start := time.Now()
	divisions, err := movegen.PerftParallelHashed(context.Background(), p, args.depth, args.workers, table,
		func(movegen.PerftDivision) { bar.Add(1) })
	bar.Close()
	if !IsNil(err) {
		return err
	}
	if table != nil {
		fmt.Println(table.Stats())
	}

	total := movegen.DivisionTotal(divisions)
	printDivisions(divisions, total, time.Since(start), args.divide)

	if cache != nil {
		return cache.Store(storage.PerftRecord{
			Fen:   args.fen,
			Depth: args.depth,
			Total: total,
			Divisions: MapSlice(divisions, func(d movegen.PerftDivision) storage.PerftDivision {
				return storage.PerftDivision{Move: d.First, Count: d.Second}
			}),
		})
	}
	return NilError
}

func main() {
	args := os.Args[1:]

	if Contains(args, "profile") {
		profilePath := RootDir() + "/data/CmdPerftMain"
		p := profile.Start(profile.ProfilePath(profilePath))
		defer p.Stop()
	}
	args = FilterSlice(args, func(arg string) bool {
		return arg != "profile"
	})

	parsed, err := parseArgs(args)
	if !IsNil(err) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	err = run(parsed)
	if !IsNil(err) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
