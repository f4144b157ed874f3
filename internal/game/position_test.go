package game

import (
	"testing"

	. "github.com/cricklet/chessrules/internal/helpers"
	"github.com/stretchr/testify/assert"
)

func move(s string, kind MoveKind, isCapture bool) Move {
	return Move{
		Start:     MustCoordinate(s[0:2]),
		Target:    MustCoordinate(s[2:4]),
		Kind:      kind,
		IsCapture: isCapture,
	}
}

func TestStartingPosition(t *testing.T) {
	p := NewStartingPosition()

	assert.True(t, IsNil(p.CheckConsistency()))
	assert.Equal(t, White, p.SideToMove())
	assert.Equal(t, 8+2*3+2*3+2*5+9, p.Material(White))
	assert.Equal(t, p.Material(White), p.Material(Black))
	assert.Equal(t, MustCoordinate("e1"), p.KingSquare(White))
	assert.Equal(t, MustCoordinate("e8"), p.KingSquare(Black))
	assert.Equal(t, 8, p.Count(Black, Pawn))
	assert.Equal(t, []Coordinate{MustCoordinate("b1"), MustCoordinate("g1")}, p.Squares(White, Knight))
	assert.True(t, p.LastMove().IsEmpty())
	assert.Equal(t, StartFen, FenString(p))
}

func TestCastlingRights(t *testing.T) {
	s := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	p, err := PositionFromFenString(s)
	assert.True(t, IsNil(err), err)

	p.Apply(move("e1c1", CastleQueenside, false))
	assert.True(t, IsNil(p.CheckConsistency()))

	assert.False(t, p.CastlingRight(White, Kingside))
	assert.False(t, p.CastlingRight(White, Queenside))
	assert.True(t, p.CastlingRight(Black, Kingside))
	assert.True(t, p.CastlingRight(Black, Queenside))

	assert.Equal(t, PieceFor(White, King), p.PieceAt(MustCoordinate("c1")))
	assert.Equal(t, PieceFor(White, Rook), p.PieceAt(MustCoordinate("d1")))
	assert.Equal(t, XX, p.PieceAt(MustCoordinate("a1")))
	assert.Equal(t, XX, p.PieceAt(MustCoordinate("e1")))
	assert.Equal(t, 1, p.ReversiblePlies())

	p.Apply(move("e8g8", CastleKingside, false))
	assert.Equal(t, PieceFor(Black, King), p.PieceAt(MustCoordinate("g8")))
	assert.Equal(t, PieceFor(Black, Rook), p.PieceAt(MustCoordinate("f8")))
	assert.Equal(t, "r4rk1/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/2KR3R w - - 2 2", FenString(p))
}

func TestRookMovesClearOneSide(t *testing.T) {
	p := MustPositionFromFenString("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")

	p.Apply(move("h1h5", NormalMove, false))
	assert.False(t, p.CastlingRight(White, Kingside))
	assert.True(t, p.CastlingRight(White, Queenside))

	// leaving from a non-corner square changes nothing
	p.Apply(move("a8a5", NormalMove, false))
	p.Apply(move("h5h1", NormalMove, false))
	assert.False(t, p.CastlingRight(White, Kingside))
	assert.False(t, p.CastlingRight(Black, Queenside))
	assert.True(t, p.CastlingRight(Black, Kingside))
}

func TestCapturedCornerRookClearsRight(t *testing.T) {
	p := MustPositionFromFenString("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")

	p.Apply(move("a1a8", NormalMove, true))
	assert.False(t, p.CastlingRight(White, Queenside))
	assert.False(t, p.CastlingRight(Black, Queenside))
	assert.True(t, p.CastlingRight(Black, Kingside))
	assert.Equal(t, 10, p.Material(White))
	assert.Equal(t, 5, p.Material(Black))
	assert.Equal(t, 0, p.ReversiblePlies())
	assert.True(t, IsNil(p.CheckConsistency()))
}

func TestKingMoveClearsBothSides(t *testing.T) {
	p := MustPositionFromFenString("r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 3 10")

	p.Apply(move("e8d8", NormalMove, false))
	assert.False(t, p.CastlingRight(Black, Kingside))
	assert.False(t, p.CastlingRight(Black, Queenside))
	assert.True(t, p.CastlingRight(White, Kingside))
	assert.Equal(t, 4, p.ReversiblePlies())
	assert.Equal(t, 11, p.FullMoveNumber())
}

func TestEnPassantApply(t *testing.T) {
	p := MustPositionFromFenString("8/8/8/k2Pp2K/8/8/8/8 w - e6 0 1")
	assert.Equal(t, 1, p.Material(Black))
	assert.Equal(t, 1, len(p.MoveLog()))

	p.Apply(move("d5e6", EnPassantMove, true))

	assert.Equal(t, PieceFor(White, Pawn), p.PieceAt(MustCoordinate("e6")))
	assert.Equal(t, XX, p.PieceAt(MustCoordinate("e5")))
	assert.Equal(t, XX, p.PieceAt(MustCoordinate("d5")))
	assert.Equal(t, 0, p.Material(Black))
	assert.Equal(t, 0, p.Count(Black, Pawn))
	assert.True(t, IsNil(p.CheckConsistency()))
	assert.Equal(t, "8/8/4P3/k6K/8/8/8/8 b - - 0 1", FenString(p))
}

func TestPromotionMaterial(t *testing.T) {
	p := MustPositionFromFenString("3n3k/4P3/8/8/8/8/8/K7 w - - 5 40")

	p.Apply(move("e7d8", PromoteQueen, true))
	assert.Equal(t, PieceFor(White, Queen), p.PieceAt(MustCoordinate("d8")))
	assert.Equal(t, 9, p.Material(White))
	assert.Equal(t, 0, p.Material(Black))
	assert.Equal(t, 0, p.ReversiblePlies())
	assert.Equal(t, 0, p.Count(White, Pawn))
	assert.Equal(t, 1, p.Count(White, Queen))
	assert.True(t, IsNil(p.CheckConsistency()))

	underpromoted := MustPositionFromFenString("3n3k/4P3/8/8/8/8/8/K7 w - - 5 40")
	underpromoted.Apply(move("e7e8", PromoteKnight, false))
	assert.Equal(t, PieceFor(White, Knight), underpromoted.PieceAt(MustCoordinate("e8")))
	assert.Equal(t, 3, underpromoted.Material(White))
	assert.Equal(t, 3, underpromoted.Material(Black))
}

func TestPromotionCapturingCornerRook(t *testing.T) {
	p := MustPositionFromFenString("r3k3/1P6/8/8/8/8/8/4K3 w q - 0 1")

	p.Apply(move("b7a8", PromoteQueen, true))
	assert.False(t, p.CastlingRight(Black, Queenside))
	assert.Equal(t, 0, p.Material(Black))
}

func TestReversiblePlies(t *testing.T) {
	p := NewStartingPosition()

	p.Apply(move("g1f3", NormalMove, false))
	p.Apply(move("g8f6", NormalMove, false))
	assert.Equal(t, 2, p.ReversiblePlies())
	assert.Equal(t, 2, p.FullMoveNumber())

	p.Apply(move("e2e4", NormalMove, false))
	assert.Equal(t, 0, p.ReversiblePlies())

	p.Apply(move("f6e4", NormalMove, true))
	assert.Equal(t, 0, p.ReversiblePlies())
	assert.Equal(t, 3, p.FullMoveNumber())
	assert.Equal(t, 38, p.Material(White))
}

func TestCloneIsIndependent(t *testing.T) {
	p := NewStartingPosition()
	clone := p.Clone()

	clone.Apply(move("e2e4", NormalMove, false))

	assert.Equal(t, StartFen, FenString(p))
	assert.Equal(t, 0, len(p.MoveLog()))
	assert.Equal(t, PieceFor(White, Pawn), p.PieceAt(MustCoordinate("e2")))
	assert.Equal(t, []Coordinate{MustCoordinate("e4")}, FilterSlice(clone.Squares(White, Pawn), func(c Coordinate) bool {
		return c.Col == 4
	}))
	assert.True(t, IsNil(p.CheckConsistency()))
	assert.True(t, IsNil(clone.CheckConsistency()))
}
