package runner

import (
	"fmt"

	"github.com/cricklet/chessrules/internal/game"
	. "github.com/cricklet/chessrules/internal/helpers"
)

type OutcomeKind int

const (
	InProgress OutcomeKind = iota
	Checkmate
	Stalemate
	ThreefoldRepetition
	InsufficientMaterial
	FiftyMoveRule
	Resignation
	Agreement
)

func (k OutcomeKind) String() string {
	return [...]string{
		"in progress",
		"checkmate",
		"stalemate",
		"threefold repetition",
		"insufficient material",
		"fifty move rule",
		"resignation",
		"agreement",
	}[k]
}

type Outcome struct {
	Kind   OutcomeKind
	Winner Optional[Player]
}

func (o Outcome) IsOver() bool {
	return o.Kind != InProgress
}

func (o Outcome) IsDraw() bool {
	return o.IsOver() && o.Winner.IsEmpty()
}

func (o Outcome) String() string {
	if !o.IsOver() {
		return o.Kind.String()
	}
	if o.Winner.HasValue() {
		return fmt.Sprintf("%v wins by %v", o.Winner.Value(), o.Kind)
	}
	return fmt.Sprintf("draw by %v", o.Kind)
}

// FiftyMovePlies is fifty moves by each side without a pawn move or capture.
const FiftyMovePlies = 100

// A side with no pawns and less than this much material can't force mate.
const insufficientMaterial = 4

func HasInsufficientMaterial(p *game.Position) bool {
	for _, player := range []Player{White, Black} {
		if p.Count(player, Pawn) > 0 || p.Material(player) >= insufficientMaterial {
			return false
		}
	}
	return true
}

// ClassifyPosition decides whether the game has ended in p. legalMoves and
// inCheck describe the side to move; repetitions is how many times p's
// repetition key has occurred, p included.
func ClassifyPosition(p *game.Position, legalMoves int, inCheck bool, repetitions int) Outcome {
	if legalMoves == 0 {
		if inCheck {
			return Outcome{Kind: Checkmate, Winner: Some(p.SideToMove().Other())}
		}
		return Outcome{Kind: Stalemate}
	}
	if HasInsufficientMaterial(p) {
		return Outcome{Kind: InsufficientMaterial}
	}
	if p.ReversiblePlies() >= FiftyMovePlies {
		return Outcome{Kind: FiftyMoveRule}
	}
	if repetitions >= 3 {
		return Outcome{Kind: ThreefoldRepetition}
	}
	return Outcome{Kind: InProgress}
}
