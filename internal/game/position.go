package game

import (
	"fmt"

	. "github.com/cricklet/chessrules/internal/helpers"
)

// Position is the full state of a game in progress. The grid and the
// per-kind square index always agree; Apply is the only mutator.
type Position struct {
	grid            Grid
	sideToMove      Player
	castlingRights  [2][2]bool
	material        [2]int
	pieceIndex      [2][6]SquareSet
	reversiblePlies int
	fullMoveNumber  int
	moveLog         []Move
}

const StartFen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func NewStartingPosition() *Position {
	grid := Grid{}
	backRank := [8]PieceKind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for _, player := range []Player{White, Black} {
		for col := 0; col < 8; col++ {
			grid[PawnStartRow[player]][col] = PieceFor(player, Pawn)
			grid[HomeRow[player]][col] = PieceFor(player, backRank[col])
		}
	}
	return NewPosition(grid, White, [2][2]bool{{true, true}, {true, true}}, 0, 1, nil)
}

// NewPosition derives the square index and material totals from the grid.
func NewPosition(
	grid Grid,
	sideToMove Player,
	castlingRights [2][2]bool,
	reversiblePlies int,
	fullMoveNumber int,
	moveLog []Move,
) *Position {
	p := &Position{
		sideToMove:      sideToMove,
		castlingRights:  castlingRights,
		reversiblePlies: reversiblePlies,
		fullMoveNumber:  fullMoveNumber,
		moveLog:         append([]Move{}, moveLog...),
	}
	for player := range p.pieceIndex {
		for kind := range p.pieceIndex[player] {
			p.pieceIndex[player][kind] = SquareSet{}
		}
	}
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if piece := grid[row][col]; piece != XX {
				p.place(Coordinate{Row: row, Col: col}, piece)
				p.material[piece.Player()] += piece.Kind().Value()
			}
		}
	}
	return p
}

// Clone is a deep copy. No container is shared with the original.
func (p *Position) Clone() *Position {
	result := &Position{
		grid:            p.grid,
		sideToMove:      p.sideToMove,
		castlingRights:  p.castlingRights,
		material:        p.material,
		reversiblePlies: p.reversiblePlies,
		fullMoveNumber:  p.fullMoveNumber,
		moveLog:         make([]Move, len(p.moveLog), len(p.moveLog)+1),
	}
	copy(result.moveLog, p.moveLog)
	for player := range p.pieceIndex {
		for kind := range p.pieceIndex[player] {
			result.pieceIndex[player][kind] = p.pieceIndex[player][kind].Clone()
		}
	}
	return result
}

func (p *Position) place(c Coordinate, piece Piece) {
	p.grid[c.Row][c.Col] = piece
	p.pieceIndex[piece.Player()][piece.Kind().Index()].Add(c)
}

func (p *Position) remove(c Coordinate) Piece {
	piece := p.grid[c.Row][c.Col]
	if piece != XX {
		p.pieceIndex[piece.Player()][piece.Kind().Index()].Remove(c)
		p.grid[c.Row][c.Col] = XX
	}
	return piece
}

func (p *Position) PieceAt(c Coordinate) Piece {
	return p.grid[c.Row][c.Col]
}

func (p *Position) Grid() Grid {
	return p.grid
}

func (p *Position) SideToMove() Player {
	return p.sideToMove
}

func (p *Position) CastlingRight(player Player, side CastlingSide) bool {
	return p.castlingRights[player][side]
}

func (p *Position) CastlingRights() [2][2]bool {
	return p.castlingRights
}

func (p *Position) Material(player Player) int {
	return p.material[player]
}

// Squares lists the squares holding the player's pieces of the given kind.
func (p *Position) Squares(player Player, kind PieceKind) []Coordinate {
	return p.pieceIndex[player][kind.Index()].Sorted()
}

func (p *Position) Count(player Player, kind PieceKind) int {
	return p.pieceIndex[player][kind.Index()].Len()
}

func (p *Position) KingSquare(player Player) Coordinate {
	for c := range p.pieceIndex[player][King.Index()] {
		return c
	}
	panic(fmt.Sprintf("no %v king", player))
}

func (p *Position) ReversiblePlies() int {
	return p.reversiblePlies
}

func (p *Position) FullMoveNumber() int {
	return p.fullMoveNumber
}

func (p *Position) MoveLog() []Move {
	return append([]Move{}, p.moveLog...)
}

func (p *Position) LastMove() Optional[Move] {
	if len(p.moveLog) == 0 {
		return Empty[Move]()
	}
	return Some(p.moveLog[len(p.moveLog)-1])
}

func (p *Position) String() string {
	return FenString(p)
}

// CheckConsistency reports any disagreement between the grid, the square
// index and the material totals.
func (p *Position) CheckConsistency() Error {
	var errs []Error
	material := [2]int{}
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			c := Coordinate{Row: row, Col: col}
			piece := p.grid[row][col]
			for _, player := range []Player{White, Black} {
				for _, kind := range AllPieceKinds {
					indexed := p.pieceIndex[player][kind.Index()].Contains(c)
					expected := piece == PieceFor(player, kind)
					if indexed != expected {
						errs = append(errs, Errorf("%v: grid has %q, index %v %v says %v", c, piece.String(), player, kind, indexed))
					}
				}
			}
			if piece != XX {
				material[piece.Player()] += piece.Kind().Value()
			}
		}
	}
	if material != p.material {
		errs = append(errs, Errorf("material %v, recount %v", p.material, material))
	}
	for _, player := range []Player{White, Black} {
		if n := p.Count(player, King); n != 1 {
			errs = append(errs, Errorf("%v has %v kings", player, n))
		}
	}
	return Join(errs...)
}
