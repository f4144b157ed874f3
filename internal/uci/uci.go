package uci

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cricklet/chessrules/internal/game"
	. "github.com/cricklet/chessrules/internal/helpers"
	"github.com/cricklet/chessrules/internal/movegen"
)

type UciRunner struct {
	Runner Runner
}

func NewUciRunner(r Runner) *UciRunner {
	return &UciRunner{Runner: r}
}

func parseFen(input string) (string, Error) {
	s := strings.TrimPrefix(input, "position ")

	if strings.HasPrefix(s, "fen ") {
		s = strings.TrimPrefix(s, "fen ")
		return strings.TrimSpace(strings.Split(s, " moves")[0]), NilError
	} else if strings.HasPrefix(s, "startpos") {
		return game.StartFen, NilError
	}

	return "", Errorf("couldn't parse '%v'", input)
}

func parseMoves(input string) []string {
	result := []string{}
	if strings.Contains(input, " moves ") {
		fields := strings.Fields(strings.SplitN(input, " moves ", 2)[1])
		result = append(result, fields...)
	}
	return result
}

func parsePosition(input string) (PositionSetup, Error) {
	fen, err := parseFen(input)
	if !IsNil(err) {
		return PositionSetup{}, err
	}
	return PositionSetup{Fen: fen, Moves: parseMoves(input)}, NilError
}

// parseGo reads "go [depth N] [movetime MS] [perft N]". Other limits are ignored.
func parseGo(input string) (SearchParams, Optional[int], Error) {
	params := SearchParams{}
	perft := Empty[int]()

	fields := strings.Fields(input)
	for i := 1; i < len(fields); i++ {
		switch fields[i] {
		case "depth", "movetime", "perft":
			if i+1 >= len(fields) {
				return params, perft, Errorf("missing value for %v in '%v'", fields[i], input)
			}
			n, err := strconv.Atoi(fields[i+1])
			if err != nil || n < 1 {
				return params, perft, Errorf("invalid value for %v in '%v'", fields[i], input)
			}
			switch fields[i] {
			case "depth":
				params.Depth = Some(n)
			case "movetime":
				params.Duration = Some(time.Duration(n) * time.Millisecond)
			case "perft":
				perft = Some(n)
			}
			i++
		}
	}

	return params, perft, NilError
}

type positionRunner interface {
	Position() *game.Position
}

func (u *UciRunner) perft(depth int) ([]string, Error) {
	r, ok := u.Runner.(positionRunner)
	if !ok || u.Runner.IsNew() {
		return nil, Errorf("no position to count")
	}

	divisions := movegen.PerftDivide(r.Position(), depth)
	result := MapSlice(divisions, movegen.PerftDivision.String)
	result = append(result, "", fmt.Sprintf("Nodes searched: %v", movegen.DivisionTotal(divisions)))
	return result, NilError
}

func (u *UciRunner) HandleInput(input string) ([]string, Error) {
	input = strings.TrimSpace(input)
	result := []string{}

	if input == "uci" {
		result = append(result, "id name chessrules 1")
		result = append(result, "id author Kenrick Rilee")
		result = append(result, "uciok")
	} else if input == "ucinewgame" {
		u.Runner.Reset()
	} else if input == "isready" {
		result = append(result, "readyok")
	} else if strings.HasPrefix(input, "position ") {
		position, err := parsePosition(input)
		if !IsNil(err) {
			return result, err
		}
		if u.Runner.IsNew() {
			err = u.Runner.SetupPosition(position)
		} else {
			err = u.Runner.PerformMoves(position.Fen, position.Moves)
			if !IsNil(err) {
				// a different starting record starts a new game
				u.Runner.Reset()
				err = u.Runner.SetupPosition(position)
			}
		}
		if !IsNil(err) {
			return result, err
		}
	} else if strings.HasPrefix(input, "go") {
		params, perft, err := parseGo(input)
		if !IsNil(err) {
			return result, err
		}

		if perft.HasValue() {
			return u.perft(perft.Value())
		}

		move, err := u.Runner.Search(params)
		if !IsNil(err) {
			return result, err
		}

		if move.IsEmpty() {
			result = append(result, "bestmove 0000")
		} else {
			result = append(result, fmt.Sprintf("bestmove %v", move.Value()))
		}
	} else if input == "d" {
		r, ok := u.Runner.(positionRunner)
		if !ok || u.Runner.IsNew() {
			return result, Errorf("no position to display")
		}
		p := r.Position()
		result = append(result, strings.Split(Plain(p.Grid().Unicode()), "\n")...)
		result = append(result, "Fen: "+game.FenString(p))
	}

	return result, NilError
}
