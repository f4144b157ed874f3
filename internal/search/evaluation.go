package search

import (
	"github.com/cricklet/chessrules/internal/game"
	. "github.com/cricklet/chessrules/internal/helpers"
)

const Inf = 1_000_000_000
const MateScore = 1_000_000

// indexed by PieceKind.Index()
var PieceValues = [6]int{100, 330, 320, 500, 900, 20000}

// Piece-square tables from white's point of view, rank 8 first. Black
// reads them mirrored.
var pawnTable = [8][8]int{
	{0, 0, 0, 0, 0, 0, 0, 0},
	{50, 50, 50, 50, 50, 50, 50, 50},
	{10, 10, 20, 30, 30, 20, 10, 10},
	{5, 5, 10, 25, 25, 10, 5, 5},
	{0, 0, 0, 20, 20, 0, 0, 0},
	{5, -5, -10, 0, 0, -10, -5, 5},
	{5, 10, 10, -20, -20, 10, 10, 5},
	{0, 0, 0, 0, 0, 0, 0, 0},
}

var bishopTable = [8][8]int{
	{-20, -10, -10, -10, -10, -10, -10, -20},
	{-10, 0, 0, 0, 0, 0, 0, -10},
	{-10, 0, 5, 10, 10, 5, 0, -10},
	{-10, 5, 5, 10, 10, 5, 5, -10},
	{-10, 0, 10, 10, 10, 10, 0, -10},
	{-10, 10, 10, 10, 10, 10, 10, -10},
	{-10, 5, 0, 0, 0, 0, 5, -10},
	{-20, -10, -10, -10, -10, -10, -10, -20},
}

var knightTable = [8][8]int{
	{-50, -40, -30, -30, -30, -30, -40, -50},
	{-40, -20, 0, 0, 0, 0, -20, -40},
	{-30, 0, 10, 15, 15, 10, 0, -30},
	{-30, 5, 15, 20, 20, 15, 5, -30},
	{-30, 0, 15, 20, 20, 15, 0, -30},
	{-30, 5, 10, 15, 15, 10, 5, -30},
	{-40, -20, 0, 5, 5, 0, -20, -40},
	{-50, -40, -30, -30, -30, -30, -40, -50},
}

var rookTable = [8][8]int{
	{0, 0, 0, 0, 0, 0, 0, 0},
	{5, 10, 10, 10, 10, 10, 10, 5},
	{-5, 0, 0, 0, 0, 0, 0, -5},
	{-5, 0, 0, 0, 0, 0, 0, -5},
	{-5, 0, 0, 0, 0, 0, 0, -5},
	{-5, 0, 0, 0, 0, 0, 0, -5},
	{-5, 0, 0, 0, 0, 0, 0, -5},
	{0, 0, 0, 5, 5, 0, 0, 0},
}

var queenTable = [8][8]int{
	{-20, -10, -10, -5, -5, -10, -10, -20},
	{-10, 0, 0, 0, 0, 0, 0, -10},
	{-10, 0, 5, 5, 5, 5, 0, -10},
	{-5, 0, 5, 5, 5, 5, 0, -5},
	{0, 0, 5, 5, 5, 5, 0, -5},
	{-10, 5, 5, 5, 5, 5, 0, -10},
	{-10, 0, 5, 0, 0, 0, 0, -10},
	{-20, -10, -10, -5, -5, -10, -10, -20},
}

var kingTable = [8][8]int{
	{-30, -40, -40, -50, -50, -40, -40, -30},
	{-30, -40, -40, -50, -50, -40, -40, -30},
	{-30, -40, -40, -50, -50, -40, -40, -30},
	{-30, -40, -40, -50, -50, -40, -40, -30},
	{-20, -30, -30, -40, -40, -30, -30, -20},
	{-10, -20, -20, -20, -20, -20, -20, -10},
	{20, 20, 0, 0, 0, 0, 20, 20},
	{20, 30, 10, 0, 0, 10, 30, 20},
}

var PieceSquareTables = [6]*[8][8]int{
	&pawnTable, &bishopTable, &knightTable, &rookTable, &queenTable, &kingTable,
}

type EvaluationOption int

const (
	MaterialOnly EvaluationOption = iota
)

func squareBonus(player Player, kind PieceKind, c Coordinate) int {
	table := PieceSquareTables[kind.Index()]
	if player == White {
		return table[c.Row][c.Col]
	}
	return table[7-c.Row][c.Col]
}

// EvaluateMaterial is white's material minus black's, kings included.
func EvaluateMaterial(p *game.Position) int {
	score := 0
	for _, kind := range AllPieceKinds {
		score += PieceValues[kind.Index()] * (p.Count(White, kind) - p.Count(Black, kind))
	}
	return score
}

func EvaluateActivity(p *game.Position) int {
	score := 0
	for _, player := range []Player{White, Black} {
		for _, kind := range AllPieceKinds {
			for _, c := range p.Squares(player, kind) {
				score += player.Sign() * squareBonus(player, kind, c)
			}
		}
	}
	return score
}

// Evaluate scores p from player's point of view.
func Evaluate(p *game.Position, player Player, options ...EvaluationOption) int {
	score := EvaluateMaterial(p)
	if !Contains(options, MaterialOnly) {
		score += EvaluateActivity(p)
	}
	return player.Sign() * score
}
