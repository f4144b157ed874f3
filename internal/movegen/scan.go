package movegen

import (
	"fmt"

	"github.com/cricklet/chessrules/internal/game"
	. "github.com/cricklet/chessrules/internal/helpers"
)

type Dir struct {
	dr int
	dc int
}

var DiagonalDirs = []Dir{{-1, 1}, {1, 1}, {1, -1}, {-1, -1}}
var StraightDirs = []Dir{{-1, 0}, {0, 1}, {1, 0}, {0, -1}}
var KingDirs = append(append([]Dir{}, StraightDirs...), DiagonalDirs...)
var KnightDirs = []Dir{{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}, {1, -2}, {2, -1}, {2, 1}, {1, 2}}

func SlidingDirs(kind PieceKind) []Dir {
	switch kind {
	case Bishop:
		return DiagonalDirs
	case Rook:
		return StraightDirs
	case Queen:
		return KingDirs
	}
	return nil
}

func step(c Coordinate, d Dir) (Coordinate, bool) {
	return c.Offset(d.dr, d.dc)
}

// AttackScan is the attack geometry the opponent projects onto the
// defender: attacked squares, checks and pins.
type AttackScan struct {
	defender Player
	king     Coordinate

	attacked SquareMask
	checkers []Coordinate

	// at most one of these is relevant outside double check
	slidingCheck   Optional[Coordinate]
	blockOrCapture SquareMask
	contactCheck   Optional[Coordinate]

	pins map[Coordinate]SquareMask
}

// ScanAttacks projects every attacker piece's pattern onto the board. p is
// only read.
func ScanAttacks(p *game.Position, defender Player) *AttackScan {
	s := &AttackScan{
		defender: defender,
		king:     p.KingSquare(defender),
		pins:     map[Coordinate]SquareMask{},
	}

	attacker := defender.Other()
	for _, kind := range AllPieceKinds {
		for _, from := range p.Squares(attacker, kind) {
			switch kind {
			case Pawn:
				for _, dc := range []int{-1, 1} {
					s.scanJump(from, Dir{PawnForward[attacker], dc}, true)
				}
			case Knight:
				for _, d := range KnightDirs {
					s.scanJump(from, d, true)
				}
			case King:
				for _, d := range KingDirs {
					s.scanJump(from, d, false)
				}
			default:
				for _, d := range SlidingDirs(kind) {
					s.scanRay(p, from, d)
				}
			}
		}
	}

	return s
}

func (s *AttackScan) scanJump(from Coordinate, d Dir, canCheck bool) {
	to, ok := step(from, d)
	if !ok {
		return
	}
	s.attacked.Set(to)
	if canCheck && to == s.king {
		s.checkers = append(s.checkers, from)
		s.contactCheck = Some(from)
	}
}

// scanRay walks one direction until it has met two pieces. The first
// defender piece in front of the defender's king is pinned to the ray.
func (s *AttackScan) scanRay(p *game.Position, from Coordinate, d Dir) {
	pinned := Empty[Coordinate]()

	for to, ok := step(from, d); ok; to, ok = step(to, d) {
		if pinned.IsEmpty() {
			s.attacked.Set(to)
		}

		if to == s.king {
			if pinned.IsEmpty() {
				s.checkers = append(s.checkers, from)
				s.slidingCheck = Some(from)
				s.blockOrCapture = Segment(from, s.king)

				// the king can't step back along the ray either
				if beyond, ok := step(to, d); ok {
					s.attacked.Set(beyond)
				}
			} else {
				s.pins[pinned.Value()] = Segment(from, s.king)
			}
			return
		}

		piece := p.PieceAt(to)
		if piece == XX {
			continue
		}
		if !piece.BelongsTo(s.defender) || pinned.HasValue() {
			return
		}
		pinned = Some(to)
	}
}

func (s *AttackScan) Defender() Player {
	return s.defender
}

func (s *AttackScan) King() Coordinate {
	return s.king
}

// InCheck is true when a sliding piece, knight or pawn gives check.
func (s *AttackScan) InCheck() bool {
	return len(s.checkers) > 0
}

func (s *AttackScan) DoubleCheck() bool {
	return len(s.checkers) >= 2
}

func (s *AttackScan) SlidingCheck() bool {
	return s.slidingCheck.HasValue()
}

func (s *AttackScan) ContactCheck() bool {
	return s.contactCheck.HasValue()
}

// KingAttacked also counts attacks from the enemy king, which InCheck ignores.
func (s *AttackScan) KingAttacked() bool {
	return s.attacked.Has(s.king)
}

func (s *AttackScan) IsAttacked(c Coordinate) bool {
	return s.attacked.Has(c)
}

func (s *AttackScan) AttackedSquares() []Coordinate {
	return s.attacked.Squares()
}

func (s *AttackScan) CheckingSquares() []Coordinate {
	return append([]Coordinate{}, s.checkers...)
}

func (s *AttackScan) BlockOrCaptureSquares() []Coordinate {
	return s.blockOrCapture.Squares()
}

func (s *AttackScan) Pinned(c Coordinate) bool {
	_, ok := s.pins[c]
	return ok
}

// PinSegment is the part of the pin ray a pinned piece may still land on,
// from the pinning piece up to (not including) the king.
func (s *AttackScan) PinSegment(c Coordinate) ([]Coordinate, bool) {
	segment, ok := s.pins[c]
	if !ok {
		return nil, false
	}
	return segment.Squares(), true
}

func (s *AttackScan) PinnedSquares() []Coordinate {
	result := []Coordinate{}
	for c := range s.pins {
		result = append(result, c)
	}
	SortCoordinates(result)
	return result
}

// allows filters the destination of a non-king piece by the check and pin
// state. Only meaningful outside double check.
func (s *AttackScan) allows(from Coordinate, to Coordinate) bool {
	if s.contactCheck.HasValue() && to != s.contactCheck.Value() {
		return false
	}
	if s.slidingCheck.HasValue() && !s.blockOrCapture.Has(to) {
		return false
	}
	if segment, ok := s.pins[from]; ok && !segment.Has(to) {
		return false
	}
	return true
}

func (s *AttackScan) String() string {
	return fmt.Sprintf("scan %v king %v: checkers %v, pinned %v, attacked %v",
		s.defender, s.king, s.checkers, s.PinnedSquares(), len(s.attacked.Squares()))
}
