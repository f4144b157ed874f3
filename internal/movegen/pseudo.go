package movegen

import (
	"github.com/cricklet/chessrules/internal/game"
	. "github.com/cricklet/chessrules/internal/helpers"
)

// GeneratePseudoLegalMoves ignores checks and pins. Castling still needs an
// unattacked king path, since that can't be decided after the fact.
func GeneratePseudoLegalMoves(p *game.Position) []Move {
	moves := []Move{}
	c := collector{
		p:      p,
		scan:   ScanAttacks(p, p.SideToMove()),
		mover:  p.SideToMove(),
		moves:  &moves,
		filter: false,
	}
	c.collect()
	return moves
}

// FilterByKingSafety plays each move on a copy of p and keeps the ones that
// leave the mover's king unattacked.
func FilterByKingSafety(p *game.Position, moves []Move) []Move {
	mover := p.SideToMove()
	return FilterSlice(moves, func(m Move) bool {
		scratch := p.Clone()
		scratch.Apply(m)
		return !ScanAttacks(scratch, mover).KingAttacked()
	})
}

// GenerateLegalMovesSlow is the reference the two-pass generator is
// checked against.
func GenerateLegalMovesSlow(p *game.Position) []Move {
	return FilterByKingSafety(p, GeneratePseudoLegalMoves(p))
}
