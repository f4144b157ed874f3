package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cricklet/chessrules/internal/game"
	. "github.com/cricklet/chessrules/internal/helpers"
	"github.com/cricklet/chessrules/internal/runner"
	"github.com/cricklet/chessrules/internal/search"
)

const help = `commands:
  <move>       play a move, eg e2e4 or e7e8q
  moves <sq>   show the moves from a square
  go           let the computer move
  undo [n]     take back n plies
  fen          print the current fen
  resign       resign for the side to move
  draw         agree a draw
  quit`

type session struct {
	r        *runner.GameRunner
	computer Optional[Player]
}

func (s *session) show(highlights []Coordinate) {
	p := s.r.Position()
	fmt.Println(p.Grid().UnicodeHighlighting(highlights))

	outcome := s.r.Outcome()
	if outcome.IsOver() {
		fmt.Println(outcome)
	} else if s.r.IsInCheck() {
		fmt.Println(s.r.Player(), "to move, in check")
	} else {
		fmt.Println(s.r.Player(), "to move")
	}
}

func (s *session) computerMove() Error {
	move, err := s.r.Search(SearchParams{})
	if !IsNil(err) {
		return err
	}
	if move.IsEmpty() {
		return NilError
	}
	fmt.Println("computer plays", move.Value())
	return s.r.PerformMoveFromString(move.Value())
}

func (s *session) lastMoveSquares() []Coordinate {
	if last := s.r.LastMove(); last.HasValue() {
		return []Coordinate{last.Value().Start, last.Value().Target}
	}
	return nil
}

func (s *session) handle(input string) (bool, Error) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return false, NilError
	}

	switch fields[0] {
	case "quit":
		return true, NilError
	case "help":
		fmt.Println(help)
		return false, NilError
	case "fen":
		fmt.Println(s.r.FenString())
		return false, NilError
	case "moves":
		if len(fields) < 2 {
			return false, Errorf("which square?")
		}
		moves, err := s.r.MovesForSelection(fields[1])
		if !IsNil(err) {
			return false, err
		}
		highlights := []Coordinate{}
		for _, m := range moves {
			move, err := s.r.MoveFromString(m)
			if IsNil(err) {
				highlights = append(highlights, move.Target)
			}
		}
		s.show(highlights)
		fmt.Println(strings.Join(moves, " "))
		return false, NilError
	case "undo":
		n := 1
		if len(fields) > 1 {
			parsed, err := strconv.Atoi(fields[1])
			if err != nil {
				return false, Wrap(err)
			}
			n = parsed
		}
		err := s.r.Rewind(n)
		if !IsNil(err) {
			return false, err
		}
	case "go":
		err := s.computerMove()
		if !IsNil(err) {
			return false, err
		}
	case "resign":
		err := s.r.Resign()
		if !IsNil(err) {
			return false, err
		}
	case "draw":
		err := s.r.AgreeDraw()
		if !IsNil(err) {
			return false, err
		}
	default:
		err := s.r.PerformMoveFromString(fields[0])
		if !IsNil(err) {
			return false, err
		}
		if s.computer.HasValue() && s.r.Player() == s.computer.Value() && !s.r.Outcome().IsOver() {
			err = s.computerMove()
			if !IsNil(err) {
				return false, err
			}
		}
	}

	s.show(s.lastMoveSquares())
	return false, NilError
}

func main() {
	fen := game.StartFen
	computer := Empty[Player]()
	searchArgs := []string{}

	for _, arg := range os.Args[1:] {
		if value, ok := strings.CutPrefix(arg, "fen="); ok {
			fen = value
		} else if value, ok := strings.CutPrefix(arg, "computer="); ok {
			player, err := PlayerFromString(value)
			if !IsNil(err) {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			computer = Some(player)
		} else {
			searchArgs = append(searchArgs, arg)
		}
	}

	options, err := search.SearchOptionsFromArgs(searchArgs...)
	if !IsNil(err) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	s := &session{
		r:        runner.NewGameRunner(&SilentLogger, options),
		computer: computer,
	}
	err = s.r.SetupPosition(PositionSetup{Fen: fen})
	if !IsNil(err) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if computer.HasValue() && s.r.Player() == computer.Value() {
		err = s.computerMove()
		if !IsNil(err) {
			fmt.Fprintln(os.Stderr, err)
		}
	}
	s.show(s.lastMoveSquares())
	fmt.Println(`type "help" for commands`)

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		done, err := s.handle(scanner.Text())
		if !IsNil(err) {
			fmt.Println("error:", err)
		}
		if done {
			break
		}
	}
}
