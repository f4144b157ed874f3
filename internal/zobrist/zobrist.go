package zobrist

import (
	"math/rand"

	"github.com/cricklet/chessrules/internal/game"
	. "github.com/cricklet/chessrules/internal/helpers"
)

// indexed by piece code + 6, so the empty square sits at 6 and is never used
var ZobristPieceAtSquare [13][8][8]uint64
var ZobristSideToMove uint64
var ZobristCastlingRights [2][2]uint64
var ZobristEnPassant [8]uint64

func init() {
	r := rand.New(rand.NewSource(32879419))
	ZobristSideToMove = r.Uint64()
	for player := 0; player < 2; player++ {
		for side := 0; side < 2; side++ {
			ZobristCastlingRights[player][side] = r.Uint64()
		}
	}
	for col := 0; col < 8; col++ {
		ZobristEnPassant[col] = r.Uint64()
	}
	for piece := 0; piece < 13; piece++ {
		for row := 0; row < 8; row++ {
			for col := 0; col < 8; col++ {
				ZobristPieceAtSquare[piece][row][col] = r.Uint64()
			}
		}
	}
}

// Hash identifies p by placement, side to move, castling rights and the en
// passant file. The clocks and the rest of the move log don't contribute.
func Hash(p *game.Position) uint64 {
	hash := uint64(0)

	grid := p.Grid()
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if piece := grid[row][col]; piece != XX {
				hash ^= ZobristPieceAtSquare[int(piece)+6][row][col]
			}
		}
	}

	if p.SideToMove() == Black {
		hash ^= ZobristSideToMove
	}

	rights := p.CastlingRights()
	for player := 0; player < 2; player++ {
		for side := 0; side < 2; side++ {
			if rights[player][side] {
				hash ^= ZobristCastlingRights[player][side]
			}
		}
	}

	if target := game.EnPassantTarget(p); target.HasValue() {
		hash ^= ZobristEnPassant[target.Value().Col]
	}

	return hash
}
