package zobrist

import (
	"testing"

	"github.com/cricklet/chessrules/internal/game"
	. "github.com/cricklet/chessrules/internal/helpers"
	"github.com/stretchr/testify/assert"
)

func playMoves(t *testing.T, fen string, moves ...Move) *game.Position {
	p := game.MustPositionFromFenString(fen)
	for _, m := range moves {
		p.Apply(m)
	}
	return p
}

func normal(s string) Move {
	return Move{Start: MustCoordinate(s[:2]), Target: MustCoordinate(s[2:]), Kind: NormalMove}
}

func TestHashIgnoresMoveOrder(t *testing.T) {
	a := playMoves(t, game.StartFen, normal("g1f3"), normal("g8f6"), normal("b1c3"), normal("b8c6"))
	b := playMoves(t, game.StartFen, normal("b1c3"), normal("b8c6"), normal("g1f3"), normal("g8f6"))

	assert.Equal(t, Hash(a), Hash(b))
	assert.NotEqual(t, Hash(a), Hash(game.NewStartingPosition()))
}

func TestHashMatchesFen(t *testing.T) {
	for _, fen := range []string{
		game.StartFen,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2",
	} {
		p := game.MustPositionFromFenString(fen)
		assert.Equal(t, Hash(p), Hash(game.MustPositionFromFenString(game.FenString(p))), fen)
	}
}

func TestHashDistinguishesState(t *testing.T) {
	base := game.MustPositionFromFenString("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")

	for _, fen := range []string{
		"r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1",
		"r3k2r/8/8/8/8/8/8/R3K2R w Kkq - 0 1",
		"r3k2r/8/8/8/8/8/8/R3K2R w KQk - 0 1",
		"r3k2r/8/8/8/8/8/8/R3K2R w - - 0 1",
	} {
		assert.NotEqual(t, Hash(base), Hash(game.MustPositionFromFenString(fen)), fen)
	}

	assert.Equal(t, Hash(base), Hash(game.MustPositionFromFenString("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 12 40")))

	withTarget := game.MustPositionFromFenString("rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2")
	withoutTarget := game.MustPositionFromFenString("rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2")
	assert.NotEqual(t, Hash(withTarget), Hash(withoutTarget))
}

func TestTranspositionTable(t *testing.T) {
	table := NewTranspositionTable(16)

	_, ok := table.Get(5, 3)
	assert.False(t, ok)

	table.Put(5, 3, 8902)
	count, ok := table.Get(5, 3)
	assert.True(t, ok)
	assert.Equal(t, 8902, count)

	_, ok = table.Get(5, 2)
	assert.False(t, ok)

	table.Put(21, 3, 1)
	_, ok = table.Get(5, 3)
	assert.False(t, ok)

	assert.Equal(t, "hits: 1, collisions: 2, misses: 1", table.Stats())
}
