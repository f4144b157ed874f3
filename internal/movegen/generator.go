package movegen

import (
	"github.com/cricklet/chessrules/internal/game"
	. "github.com/cricklet/chessrules/internal/helpers"
)

// LegalMoveGenerator produces exactly the legal moves of a position in two
// passes: an attack scan of the opponent's pieces, then candidate generation
// filtered by the scan's checks and pins.
type LegalMoveGenerator struct {
	last *AttackScan
}

func NewLegalMoveGenerator() *LegalMoveGenerator {
	return &LegalMoveGenerator{}
}

func (g *LegalMoveGenerator) GenerateLegalMoves(p *game.Position) []Move {
	moves := []Move{}
	g.GenerateLegalMovesInto(p, &moves)
	return moves
}

// GenerateLegalMovesInto appends the legal moves of p to moves, grouped by
// piece kind with pawns first.
func (g *LegalMoveGenerator) GenerateLegalMovesInto(p *game.Position, moves *[]Move) {
	scan := ScanAttacks(p, p.SideToMove())
	g.last = scan

	c := collector{
		p:      p,
		scan:   scan,
		mover:  p.SideToMove(),
		moves:  moves,
		filter: true,
	}
	c.collect()
}

// IsInCheck reports the check state found by the most recent generation.
func (g *LegalMoveGenerator) IsInCheck() bool {
	return g.last != nil && g.last.InCheck()
}

func (g *LegalMoveGenerator) IsDoubleCheck() bool {
	return g.last != nil && g.last.DoubleCheck()
}

func (g *LegalMoveGenerator) LastScan() Optional[*AttackScan] {
	if g.last == nil {
		return Empty[*AttackScan]()
	}
	return Some(g.last)
}

// collector generates candidate moves for one side. With filter set, every
// candidate is checked against the scan; without it, only castling consults
// the scan and the result is pseudo-legal.
type collector struct {
	p      *game.Position
	scan   *AttackScan
	mover  Player
	moves  *[]Move
	filter bool
}

func (c *collector) collect() {
	c.kingMoves()
	if c.filter && c.scan.DoubleCheck() {
		return
	}

	for _, kind := range AllPieceKinds {
		for _, from := range c.p.Squares(c.mover, kind) {
			switch kind {
			case Pawn:
				c.pawnMoves(from)
			case Knight:
				c.jumpMoves(from, KnightDirs)
			case Bishop, Rook, Queen:
				c.slidingMoves(from, SlidingDirs(kind))
			}
		}
	}

	c.castlingMoves()
}

func (c *collector) add(from Coordinate, to Coordinate, kind MoveKind) {
	if c.filter && !c.scan.allows(from, to) {
		return
	}
	*c.moves = append(*c.moves, Move{
		Start:     from,
		Target:    to,
		Kind:      kind,
		IsCapture: c.p.PieceAt(to) != XX,
	})
}

func (c *collector) kingMoves() {
	from := c.scan.King()
	for _, d := range KingDirs {
		to, ok := step(from, d)
		if !ok || c.p.PieceAt(to).BelongsTo(c.mover) {
			continue
		}
		if c.filter && c.scan.IsAttacked(to) {
			continue
		}
		*c.moves = append(*c.moves, Move{
			Start:     from,
			Target:    to,
			Kind:      NormalMove,
			IsCapture: c.p.PieceAt(to) != XX,
		})
	}
}

func (c *collector) jumpMoves(from Coordinate, dirs []Dir) {
	for _, d := range dirs {
		to, ok := step(from, d)
		if !ok || c.p.PieceAt(to).BelongsTo(c.mover) {
			continue
		}
		c.add(from, to, NormalMove)
	}
}

func (c *collector) slidingMoves(from Coordinate, dirs []Dir) {
	for _, d := range dirs {
		for to, ok := step(from, d); ok; to, ok = step(to, d) {
			piece := c.p.PieceAt(to)
			if piece.BelongsTo(c.mover) {
				break
			}
			c.add(from, to, NormalMove)
			if piece != XX {
				break
			}
		}
	}
}

func (c *collector) pawnMoves(from Coordinate) {
	forward := PawnForward[c.mover]

	if one, ok := from.Offset(forward, 0); ok && c.p.PieceAt(one) == XX {
		c.addPawnMove(from, one)

		if from.Row == PawnStartRow[c.mover] {
			if two, ok := one.Offset(forward, 0); ok && c.p.PieceAt(two) == XX {
				c.add(from, two, NormalMove)
			}
		}
	}

	for _, dc := range []int{-1, 1} {
		if to, ok := from.Offset(forward, dc); ok && c.p.PieceAt(to).BelongsTo(c.mover.Other()) {
			c.addPawnMove(from, to)
		}
	}

	c.enPassantMove(from)
}

func (c *collector) addPawnMove(from Coordinate, to Coordinate) {
	if to.Row != PromotionRow[c.mover] {
		c.add(from, to, NormalMove)
		return
	}
	for _, kind := range PromotionMoveKinds {
		c.add(from, to, kind)
	}
}

// enPassantMove is judged on a scratch copy of the position with the
// capture played, since the capture vacates two squares of the same rank.
func (c *collector) enPassantMove(from Coordinate) {
	last := c.p.LastMove()
	if last.IsEmpty() {
		return
	}

	pushed := last.Value()
	if pushed.Kind != NormalMove ||
		c.p.PieceAt(pushed.Target) != PieceFor(c.mover.Other(), Pawn) ||
		AbsDiff(pushed.Start.Row, pushed.Target.Row) != 2 {
		return
	}
	if from.Row != EnPassantRow[c.mover] ||
		pushed.Target.Row != from.Row ||
		AbsDiff(pushed.Target.Col, from.Col) != 1 {
		return
	}

	move := Move{
		Start:     from,
		Target:    Coordinate{Row: from.Row + PawnForward[c.mover], Col: pushed.Target.Col},
		Kind:      EnPassantMove,
		IsCapture: true,
	}

	if c.filter {
		scratch := c.p.Clone()
		scratch.Apply(move)
		if ScanAttacks(scratch, c.mover).KingAttacked() {
			return
		}
	}

	*c.moves = append(*c.moves, move)
}

func (c *collector) castlingMoves() {
	row := HomeRow[c.mover]
	king := Coordinate{Row: row, Col: KingHomeCol}
	if c.p.PieceAt(king) != PieceFor(c.mover, King) || c.scan.IsAttacked(king) {
		return
	}

	for _, side := range AllCastlingSides {
		if !c.p.CastlingRight(c.mover, side) {
			continue
		}
		if c.p.PieceAt(Coordinate{Row: row, Col: RookHomeCol[side]}) != PieceFor(c.mover, Rook) {
			continue
		}
		if !c.castlingPathClear(row, side) {
			continue
		}

		kind := CastleKingside
		if side == Queenside {
			kind = CastleQueenside
		}
		*c.moves = append(*c.moves, Move{
			Start:     king,
			Target:    Coordinate{Row: row, Col: CastledKingCol[side]},
			Kind:      kind,
			IsCapture: false,
		})
	}
}

// castlingPathClear requires every square between king and rook to be
// empty, and every square the king crosses to be unattacked.
func (c *collector) castlingPathClear(row int, side CastlingSide) bool {
	rookCol := RookHomeCol[side]
	for col := MinInt(KingHomeCol, rookCol) + 1; col < MaxInt(KingHomeCol, rookCol); col++ {
		if c.p.PieceAt(Coordinate{Row: row, Col: col}) != XX {
			return false
		}
	}

	destination := CastledKingCol[side]
	dc := Sign(destination - KingHomeCol)
	for col := KingHomeCol + dc; ; col += dc {
		if c.scan.IsAttacked(Coordinate{Row: row, Col: col}) {
			return false
		}
		if col == destination {
			break
		}
	}
	return true
}
