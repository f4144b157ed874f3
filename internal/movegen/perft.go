package movegen

import (
	"context"
	"sort"
	"sync"

	"github.com/cricklet/chessrules/internal/game"
	. "github.com/cricklet/chessrules/internal/helpers"
	"github.com/cricklet/chessrules/internal/zobrist"
	"golang.org/x/sync/errgroup"
)

type PerftResult struct {
	Leaves     int
	Captures   int
	EnPassants int
	Castles    int
	Promotions int
}

func (r *PerftResult) Add(o PerftResult) {
	r.Leaves += o.Leaves
	r.Captures += o.Captures
	r.EnPassants += o.EnPassants
	r.Castles += o.Castles
	r.Promotions += o.Promotions
}

func (r *PerftResult) count(move Move) {
	r.Leaves++
	if move.IsCapture {
		r.Captures++
	}
	if move.Kind == EnPassantMove {
		r.EnPassants++
	}
	if move.Kind.IsCastle() {
		r.Castles++
	}
	if move.Kind.IsPromotion() {
		r.Promotions++
	}
}

// Perft counts the leaves of the legal move tree below p. p is unchanged.
func Perft(p *game.Position, depth int) int {
	return perft(NewLegalMoveGenerator(), p, depth, nil)
}

// PerftHashed is Perft sharing counts of transposed subtrees through table.
func PerftHashed(p *game.Position, depth int, table *zobrist.TranspositionTable) int {
	return perft(NewLegalMoveGenerator(), p, depth, table)
}

func perft(gen *LegalMoveGenerator, p *game.Position, depth int, table *zobrist.TranspositionTable) int {
	if depth <= 0 {
		return 1
	}

	hash := uint64(0)
	if table != nil && depth > 1 {
		hash = zobrist.Hash(p)
		if count, ok := table.Get(hash, depth); ok {
			return count
		}
	}

	moves := GetMovesBuffer()
	defer ReleaseMovesBuffer(moves)

	gen.GenerateLegalMovesInto(p, moves)
	if depth == 1 {
		return len(*moves)
	}

	total := 0
	for _, move := range *moves {
		child := p.Clone()
		child.Apply(move)
		total += perft(gen, child, depth-1, table)
	}

	if table != nil {
		table.Put(hash, depth, total)
	}
	return total
}

// PerftStats is Perft with the final ply's moves broken down by kind.
func PerftStats(p *game.Position, depth int) PerftResult {
	return perftStats(NewLegalMoveGenerator(), p, depth)
}

func perftStats(gen *LegalMoveGenerator, p *game.Position, depth int) PerftResult {
	if depth <= 0 {
		return PerftResult{Leaves: 1}
	}

	moves := GetMovesBuffer()
	defer ReleaseMovesBuffer(moves)

	gen.GenerateLegalMovesInto(p, moves)

	result := PerftResult{}
	for _, move := range *moves {
		if depth == 1 {
			result.count(move)
			continue
		}
		child := p.Clone()
		child.Apply(move)
		result.Add(perftStats(gen, child, depth-1))
	}
	return result
}

type PerftDivision = Pair[string, int]

func sortDivisions(divisions []PerftDivision) {
	sort.Slice(divisions, func(i, j int) bool {
		return divisions[i].First < divisions[j].First
	})
}

// PerftDivide reports the leaf count below each root move, sorted by move.
func PerftDivide(p *game.Position, depth int) []PerftDivision {
	gen := NewLegalMoveGenerator()
	result := []PerftDivision{}
	for _, move := range gen.GenerateLegalMoves(p) {
		child := p.Clone()
		child.Apply(move)
		result = append(result, PerftDivision{First: move.String(), Second: perft(gen, child, depth-1, nil)})
	}
	sortDivisions(result)
	return result
}

func DivisionTotal(divisions []PerftDivision) int {
	return ReduceSlice(divisions, 0, func(total int, d PerftDivision) int {
		return total + d.Second
	})
}

// PerftParallel divides the root moves among workers. progress, if not
// nil, is called once per finished root move, never concurrently.
func PerftParallel(
	ctx context.Context,
	p *game.Position,
	depth int,
	workers int,
	progress func(PerftDivision),
) ([]PerftDivision, Error) {
	return PerftParallelHashed(ctx, p, depth, workers, nil, progress)
}

// PerftParallelHashed is PerftParallel with the workers sharing table,
// which may be nil.
func PerftParallelHashed(
	ctx context.Context,
	p *game.Position,
	depth int,
	workers int,
	table *zobrist.TranspositionTable,
	progress func(PerftDivision),
) ([]PerftDivision, Error) {
	if depth < 1 {
		return nil, Errorf("perft depth must be at least 1, got %v", depth)
	}

	moves := NewLegalMoveGenerator().GenerateLegalMoves(p)
	result := make([]PerftDivision, len(moves))

	progressLock := sync.Mutex{}

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(MaxInt(1, workers))

	for i, move := range moves {
		i, move := i, move
		child := p.Clone()
		child.Apply(move)

		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			division := PerftDivision{First: move.String(), Second: perft(NewLegalMoveGenerator(), child, depth-1, table)}
			result[i] = division

			if progress != nil {
				progressLock.Lock()
				defer progressLock.Unlock()
				progress(division)
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, Wrap(err)
	}

	sortDivisions(result)
	return result, NilError
}
