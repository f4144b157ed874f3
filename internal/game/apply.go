package game

import (
	. "github.com/cricklet/chessrules/internal/helpers"
)

// Apply plays a move produced by the legal move generator for this exact
// position. Legality is not re-checked.
func (p *Position) Apply(move Move) {
	mover := p.sideToMove

	switch {
	case move.Kind == EnPassantMove:
		p.applyEnPassant(move)
	case move.Kind.IsCastle():
		p.applyCastle(move)
	case move.Kind.IsPromotion():
		p.applyPromotion(move)
	default:
		p.applyNormal(move)
	}

	p.moveLog = append(p.moveLog, move)
	if mover == Black {
		p.fullMoveNumber++
	}
	p.sideToMove = mover.Other()
}

func (p *Position) capture(c Coordinate) {
	captured := p.remove(c)
	if captured == XX {
		return
	}

	owner := captured.Player()
	p.material[owner] -= captured.Kind().Value()

	// A rook taken on its original corner takes that wing's castling with it.
	if captured.Kind() == Rook && c.Row == HomeRow[owner] {
		for _, side := range AllCastlingSides {
			if c.Col == RookHomeCol[side] {
				p.castlingRights[owner][side] = false
			}
		}
	}
}

func (p *Position) applyNormal(move Move) {
	mover := p.sideToMove
	piece := p.PieceAt(move.Start)
	isCapture := p.PieceAt(move.Target) != XX

	if isCapture {
		p.capture(move.Target)
	}
	p.remove(move.Start)
	p.place(move.Target, piece)

	switch piece.Kind() {
	case King:
		p.castlingRights[mover][Kingside] = false
		p.castlingRights[mover][Queenside] = false
	case Rook:
		if move.Start.Row == HomeRow[mover] {
			for _, side := range AllCastlingSides {
				if move.Start.Col == RookHomeCol[side] {
					p.castlingRights[mover][side] = false
				}
			}
		}
	}

	if isCapture || piece.Kind() == Pawn {
		p.reversiblePlies = 0
	} else {
		p.reversiblePlies++
	}
}

func (p *Position) applyEnPassant(move Move) {
	// The captured pawn sits beside the mover on the start rank, not on the target.
	p.capture(Coordinate{Row: move.Start.Row, Col: move.Target.Col})

	pawn := p.remove(move.Start)
	p.place(move.Target, pawn)

	p.reversiblePlies = 0
}

func (p *Position) applyCastle(move Move) {
	mover := p.sideToMove
	side := move.Kind.CastlingSide()
	row := HomeRow[mover]

	king := p.remove(move.Start)
	rook := p.remove(Coordinate{Row: row, Col: RookHomeCol[side]})
	p.place(Coordinate{Row: row, Col: CastledKingCol[side]}, king)
	p.place(Coordinate{Row: row, Col: CastledRookCol[side]}, rook)

	p.castlingRights[mover][Kingside] = false
	p.castlingRights[mover][Queenside] = false

	p.reversiblePlies++
}

func (p *Position) applyPromotion(move Move) {
	mover := p.sideToMove
	promoted := move.Kind.PromotionKind()

	p.capture(move.Target)
	p.remove(move.Start)
	p.place(move.Target, PieceFor(mover, promoted))

	p.material[mover] += promoted.Value() - Pawn.Value()

	p.reversiblePlies = 0
}
