package game

import (
	"fmt"
	"strconv"
	"strings"

	. "github.com/cricklet/chessrules/internal/helpers"
)

var fenStringForCastling = [2][2]string{
	{"K", "Q"},
	{"k", "q"},
}

func fenStringForCastlingAllowed(castlingRights [2][2]bool) string {
	s := ""
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if castlingRights[i][j] {
				s += fenStringForCastling[i][j]
			}
		}
	}
	if len(s) == 0 {
		s += "-"
	}
	return s
}

// EnPassantTarget is the square skipped by the last move when it was a
// two-square pawn advance.
func EnPassantTarget(p *Position) Optional[Coordinate] {
	last := p.LastMove()
	if last.IsEmpty() {
		return Empty[Coordinate]()
	}
	m := last.Value()
	if m.Kind != NormalMove || p.PieceAt(m.Target).Kind() != Pawn || AbsDiff(m.Start.Row, m.Target.Row) != 2 {
		return Empty[Coordinate]()
	}
	return Some(Coordinate{Row: (m.Start.Row + m.Target.Row) / 2, Col: m.Target.Col})
}

func fenStringForEnPassant(p *Position) string {
	target := EnPassantTarget(p)
	if target.IsEmpty() {
		return "-"
	}
	return target.Value().String()
}

func FenStringForGrid(grid Grid) string {
	s := ""
	for row := 0; row < 8; row++ {
		numSpaces := 0
		for col := 0; col < 8; col++ {
			piece := grid[row][col]
			if piece == XX {
				numSpaces++
				continue
			}
			if numSpaces > 0 {
				s += fmt.Sprint(numSpaces)
				numSpaces = 0
			}
			s += piece.String()
		}
		if numSpaces > 0 {
			s += fmt.Sprint(numSpaces)
		}
		if row != 7 {
			s += "/"
		}
	}
	return s
}

func FenString(p *Position) string {
	return fmt.Sprintf("%v %v %v %v %v %v",
		FenStringForGrid(p.grid),
		p.sideToMove.FenString(),
		fenStringForCastlingAllowed(p.castlingRights),
		fenStringForEnPassant(p),
		p.reversiblePlies,
		p.fullMoveNumber)
}

// RepetitionKey identifies a position for repetition counting: placement,
// side to move and castling rights.
func RepetitionKey(p *Position) string {
	return fmt.Sprintf("%v %v %v",
		FenStringForGrid(p.grid),
		p.sideToMove.FenString(),
		fenStringForCastlingAllowed(p.castlingRights))
}

func gridFromFenString(boardStr string) (Grid, Error) {
	var grid Grid

	ranks := strings.Split(boardStr, "/")
	if len(ranks) != 8 {
		return grid, Errorf("expected 8 ranks, found %v in '%v'", len(ranks), boardStr)
	}

	for row, rank := range ranks {
		col := 0
		for _, c := range rank {
			if c >= '1' && c <= '8' {
				col += int(c - '0')
			} else if p, err := PieceFromRune(c); IsNil(err) {
				if col >= 8 {
					return grid, Errorf("too many squares in rank '%v'", rank)
				}
				grid[row][col] = p
				col++
			} else {
				return grid, Errorf("unknown character '%c' in '%v'", c, boardStr)
			}
		}
		if col != 8 {
			return grid, Errorf("rank '%v' has %v squares", rank, col)
		}
	}

	return grid, NilError
}

func castlingRightsFromFenString(s string) ([2][2]bool, Error) {
	var castlingRights [2][2]bool
	if s == "-" {
		return castlingRights, NilError
	}
	for _, c := range s {
		switch c {
		case 'K':
			castlingRights[White][Kingside] = true
		case 'Q':
			castlingRights[White][Queenside] = true
		case 'k':
			castlingRights[Black][Kingside] = true
		case 'q':
			castlingRights[Black][Queenside] = true
		default:
			return castlingRights, Errorf("invalid castling rights '%v'", s)
		}
	}
	return castlingRights, NilError
}

// impliedDoublePush reconstructs the pawn advance that produced an en
// passant target square.
func impliedDoublePush(grid Grid, player Player, s string) (Move, Error) {
	target, err := CoordinateFromString(s)
	if !IsNil(err) {
		return Move{}, Errorf("invalid en-passant target '%v': %w", s, err)
	}

	pusher := player.Other()
	start := Coordinate{Row: PawnStartRow[pusher], Col: target.Col}
	end := Coordinate{Row: EnPassantRow[player], Col: target.Col}

	if target.Row != (start.Row+end.Row)/2 {
		return Move{}, Errorf("en-passant target '%v' is not on %v's skip rank", s, pusher)
	}
	if grid.At(end) != PieceFor(pusher, Pawn) || grid.At(target) != XX || grid.At(start) != XX {
		return Move{}, Errorf("en-passant target '%v' does not follow a pawn advance", s)
	}

	return Move{Start: start, Target: end, Kind: NormalMove, IsCapture: false}, NilError
}

// PositionFromFenString parses 6 fields, or the leading 4 or 2 of them.
func PositionFromFenString(s string) (*Position, Error) {
	ss := strings.Fields(s)
	if len(ss) != 6 && len(ss) != 4 && len(ss) != 2 {
		return nil, Errorf("wrong num %v of fields in str '%v'", len(ss), s)
	}

	grid, err := gridFromFenString(ss[0])
	if !IsNil(err) {
		return nil, err
	}

	for _, player := range []Player{White, Black} {
		kings := 0
		for row := 0; row < 8; row++ {
			for col := 0; col < 8; col++ {
				if grid[row][col] == PieceFor(player, King) {
					kings++
				}
			}
		}
		if kings != 1 {
			return nil, Errorf("%v has %v kings in '%v'", player, kings, s)
		}
	}

	player, err := PlayerFromString(ss[1])
	if !IsNil(err) {
		return nil, Errorf("invalid player '%v' in '%v'", ss[1], s)
	}

	castlingRightsString, enPassantTargetString := "-", "-"
	if len(ss) >= 4 {
		castlingRightsString, enPassantTargetString = ss[2], ss[3]
	}

	halfMoveClockString, fullMoveClockString := "0", "1"
	if len(ss) == 6 {
		halfMoveClockString, fullMoveClockString = ss[4], ss[5]
	}

	castlingRights, err := castlingRightsFromFenString(castlingRightsString)
	if !IsNil(err) {
		return nil, err
	}

	moveLog := []Move{}
	if enPassantTargetString != "-" {
		push, err := impliedDoublePush(grid, player, enPassantTargetString)
		if !IsNil(err) {
			return nil, Errorf("'%v': %w", s, err)
		}
		moveLog = append(moveLog, push)
	}

	halfMoveClock, parseErr := strconv.Atoi(halfMoveClockString)
	if parseErr != nil || halfMoveClock < 0 {
		return nil, Errorf("invalid half move clock '%v' in '%v'", halfMoveClockString, s)
	}

	fullMoveClock, parseErr := strconv.Atoi(fullMoveClockString)
	if parseErr != nil || fullMoveClock < 1 {
		return nil, Errorf("invalid full move clock '%v' in '%v'", fullMoveClockString, s)
	}

	return NewPosition(grid, player, castlingRights, halfMoveClock, fullMoveClock, moveLog), NilError
}

func MustPositionFromFenString(s string) *Position {
	p, err := PositionFromFenString(s)
	if !IsNil(err) {
		panic(err)
	}
	return p
}
