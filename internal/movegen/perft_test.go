package movegen

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/cricklet/chessrules/internal/game"
	. "github.com/cricklet/chessrules/internal/helpers"
	"github.com/cricklet/chessrules/internal/zobrist"
	"github.com/dylhunn/dragontoothmg"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

type perftPosition struct {
	name   string
	fen    string
	counts []int
}

var perftPositions = []perftPosition{
	{"start", game.StartFen, []int{20, 400, 8902, 197281}},
	{"kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", []int{48, 2039, 97862}},
	{"endgame", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", []int{14, 191, 2812, 43238}},
	{"promotions", "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", []int{6, 264, 9467}},
	{"middlegame", "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8", []int{44, 1486, 62379}},
}

func TestPerft(t *testing.T) {
	for _, pos := range perftPositions {
		for i, expected := range pos.counts {
			depth := i + 1
			if testing.Short() && expected > 10000 {
				continue
			}
			t.Run(fmt.Sprintf("%v/%v", pos.name, depth), func(t *testing.T) {
				p := game.MustPositionFromFenString(pos.fen)
				assert.Equal(t, expected, Perft(p, depth))
				assert.Equal(t, pos.fen, game.FenString(p))
			})
		}
	}
}

func TestPerftHashed(t *testing.T) {
	table := zobrist.NewTranspositionTable(1 << 16)
	for _, pos := range perftPositions {
		for i, expected := range pos.counts {
			if expected > 10000 {
				continue
			}
			p := game.MustPositionFromFenString(pos.fen)
			assert.Equal(t, expected, PerftHashed(p, i+1, table), pos.name)
		}
	}

	divisions, err := PerftParallelHashed(context.Background(), game.NewStartingPosition(), 3, 4, table, nil)
	assert.True(t, IsNil(err), err)
	assert.Equal(t, 8902, DivisionTotal(divisions))
}

func TestPerftStats(t *testing.T) {
	start := game.NewStartingPosition()
	assert.Equal(t, PerftResult{Leaves: 8902, Captures: 34}, PerftStats(start, 3))

	kiwipete := game.MustPositionFromFenString(perftPositions[1].fen)
	assert.Equal(t, PerftResult{Leaves: 48, Captures: 8, Castles: 2}, PerftStats(kiwipete, 1))
	assert.Equal(t, PerftResult{Leaves: 2039, Captures: 351, EnPassants: 1, Castles: 91}, PerftStats(kiwipete, 2))

	if !testing.Short() {
		assert.Equal(t, 1576, PerftStats(start, 4).Captures)
	}
}

func TestPerftDivide(t *testing.T) {
	divisions := PerftDivide(game.NewStartingPosition(), 2)

	assert.Equal(t, 20, len(divisions))
	assert.Equal(t, 400, DivisionTotal(divisions))
	assert.Equal(t, "a2a3", divisions[0].First)
	for _, d := range divisions {
		assert.Equal(t, 20, d.Second, d.First)
	}
}

func TestPerftParallel(t *testing.T) {
	p := game.MustPositionFromFenString(perftPositions[2].fen)

	seen := []string{}
	divisions, err := PerftParallel(context.Background(), p, 3, 4, func(d PerftDivision) {
		seen = append(seen, d.First)
	})
	assert.True(t, IsNil(err), err)
	assert.Equal(t, 2812, DivisionTotal(divisions))
	assert.Equal(t, PerftDivide(p, 3), divisions)
	assert.ElementsMatch(t, MoveStrings(NewLegalMoveGenerator().GenerateLegalMoves(p)), seen)
}

func TestPerftParallelCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := PerftParallel(ctx, game.NewStartingPosition(), 3, 2, nil)
	assert.False(t, IsNil(err))

	_, err = PerftParallel(context.Background(), game.NewStartingPosition(), 0, 2, nil)
	assert.False(t, IsNil(err))
}

func dragontoothMoves(fen string) []string {
	board := dragontoothmg.ParseFen(fen)
	result := []string{}
	for _, m := range board.GenerateLegalMoves() {
		result = append(result, strings.ToLower(m.String()))
	}
	sort.Strings(result)
	return result
}

// Random games from each perft position, checked move by move against an
// independent generator and the slow king safety filter. Every visited
// position must also survive a trip through its fen.
func TestRandomWalksAgainstReference(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	walks := 20
	if testing.Short() {
		walks = 4
	}

	for _, pos := range perftPositions {
		for walk := 0; walk < walks; walk++ {
			p := game.MustPositionFromFenString(pos.fen)
			gen := NewLegalMoveGenerator()

			for ply := 0; ply < 60; ply++ {
				fen := game.FenString(p)
				reparsed := game.MustPositionFromFenString(fen)
				if game.FenString(reparsed) != fen || zobrist.Hash(reparsed) != zobrist.Hash(p) {
					t.Fatalf("%v doesn't round trip", fen)
				}

				moves := gen.GenerateLegalMoves(p)
				actual := sortedMoveStrings(moves)

				if diff := cmp.Diff(dragontoothMoves(fen), actual); diff != "" {
					t.Fatalf("%v: (-reference +actual)\n%v", fen, diff)
				}
				if diff := cmp.Diff(sortedMoveStrings(GenerateLegalMovesSlow(p)), actual); diff != "" {
					t.Fatalf("%v: (-slow +actual)\n%v", fen, diff)
				}

				if len(moves) == 0 {
					break
				}

				p.Apply(moves[rng.Intn(len(moves))])
				if err := p.CheckConsistency(); !IsNil(err) {
					t.Fatalf("after %v from %v: %v", p.LastMove().Value(), fen, err)
				}
			}
		}
	}
}

func BenchmarkPerftStart(b *testing.B) {
	p := game.NewStartingPosition()
	for i := 0; i < b.N; i++ {
		Perft(p, 3)
	}
}
