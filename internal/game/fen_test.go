package game

import (
	"testing"

	. "github.com/cricklet/chessrules/internal/helpers"
	"github.com/stretchr/testify/assert"
)

func TestFenRoundTrip(t *testing.T) {
	for _, s := range []string{
		StartFen,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2",
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		"8/8/8/k2Pp2K/8/8/8/8 w - e6 0 1",
	} {
		p, err := PositionFromFenString(s)
		assert.True(t, IsNil(err), err)
		assert.Equal(t, s, FenString(p))
		assert.True(t, IsNil(p.CheckConsistency()), s)
	}
}

func TestFenAfterDoublePush(t *testing.T) {
	p := NewStartingPosition()
	p.Apply(move("e2e4", NormalMove, false))
	assert.Equal(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1", FenString(p))
	assert.Equal(t, Some(MustCoordinate("e3")), EnPassantTarget(p))

	p.Apply(move("g8f6", NormalMove, false))
	assert.Equal(t, "rnbqkb1r/pppppppp/5n2/8/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 1 2", FenString(p))
	assert.True(t, EnPassantTarget(p).IsEmpty())
}

func TestShortFens(t *testing.T) {
	p, err := PositionFromFenString("4k3/8/8/8/8/8/8/4K3 b")
	assert.True(t, IsNil(err), err)
	assert.Equal(t, "4k3/8/8/8/8/8/8/4K3 b - - 0 1", FenString(p))

	p, err = PositionFromFenString("r3k3/8/8/8/8/8/8/4K3 w q -")
	assert.True(t, IsNil(err), err)
	assert.True(t, p.CastlingRight(Black, Queenside))
	assert.Equal(t, 0, p.ReversiblePlies())
	assert.Equal(t, 1, p.FullMoveNumber())
}

func TestInvalidFens(t *testing.T) {
	for _, s := range []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",
		"rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"rnbqkbnr/ppppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"rnbqkbnr/ppxppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQ1BNR w kq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkx - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e3 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq z9 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - -1 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 0",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - a 1",
	} {
		_, err := PositionFromFenString(s)
		assert.False(t, IsNil(err), s)
	}
}

func TestRepetitionKey(t *testing.T) {
	p := NewStartingPosition()
	start := RepetitionKey(p)

	for _, m := range []string{"g1f3", "g8f6", "f3g1", "f6g8"} {
		p.Apply(move(m, NormalMove, false))
	}

	assert.Equal(t, start, RepetitionKey(p))
	assert.NotEqual(t, StartFen, FenString(p))
}
