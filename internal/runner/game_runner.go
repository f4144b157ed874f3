package runner

import (
	"context"

	"github.com/cricklet/chessrules/internal/game"
	. "github.com/cricklet/chessrules/internal/helpers"
	"github.com/cricklet/chessrules/internal/movegen"
	"github.com/cricklet/chessrules/internal/search"
)

// GameRunner is one game session. Each played move keeps a snapshot of the
// position before it, so Rewind is exact.
type GameRunner struct {
	Logger        Logger
	SearchOptions search.SearchOptions

	position *game.Position
	gen      *movegen.LegalMoveGenerator

	StartFen string
	history  []HistoryValue

	// repetition keys of the start position and of every position since
	repetitionKeys []string

	// set by Resign and AgreeDraw
	declared Optional[Outcome]
}

var _ Runner = (*GameRunner)(nil)

type HistoryValue struct {
	move   Move
	before *game.Position
}

func NewGameRunner(logger Logger, options search.SearchOptions) *GameRunner {
	return &GameRunner{
		Logger:        logger,
		SearchOptions: options,
	}
}

func (r *GameRunner) Reset() {
	r.position = nil
	r.gen = nil
	r.StartFen = ""
	r.history = []HistoryValue{}
	r.repetitionKeys = []string{}
	r.declared = Empty[Outcome]()
}

func (r *GameRunner) IsNew() bool {
	return r.position == nil
}

func (r *GameRunner) SetupPosition(setup PositionSetup) Error {
	if r.Logger == nil {
		r.Logger = &DefaultLogger
	}
	if !r.IsNew() {
		return Errorf("please use ucinewgame")
	}

	position, err := game.PositionFromFenString(setup.Fen)
	if !IsNil(err) {
		return Errorf("couldn't create game from %v, %w", setup, err)
	}

	r.position = position
	r.gen = movegen.NewLegalMoveGenerator()
	r.StartFen = setup.Fen
	r.history = []HistoryValue{}
	r.repetitionKeys = []string{game.RepetitionKey(position)}
	r.declared = Empty[Outcome]()

	for _, m := range setup.Moves {
		err := r.PerformMoveFromString(m)
		if !IsNil(err) {
			return err
		}
	}

	return NilError
}

func (r *GameRunner) checkStarted() Error {
	if r.IsNew() {
		return Errorf("no position, please use position")
	}
	return NilError
}

func (r *GameRunner) LegalMoves() []Move {
	if r.IsNew() {
		return []Move{}
	}
	return r.gen.GenerateLegalMoves(r.position)
}

// MoveFromString finds the legal move with the given canonical notation.
func (r *GameRunner) MoveFromString(s string) (Move, Error) {
	if err := r.checkStarted(); !IsNil(err) {
		return Move{}, err
	}
	move := FindInSlice(r.LegalMoves(), func(m Move) bool {
		return m.String() == s
	})
	if move.IsEmpty() {
		return Move{}, Errorf("illegal move %v in %v", s, r.FenString())
	}
	return move.Value(), NilError
}

// PerformMove plays a move produced by the generator for the current position.
func (r *GameRunner) PerformMove(move Move) Error {
	if err := r.checkStarted(); !IsNil(err) {
		return err
	}
	if outcome := r.Outcome(); outcome.IsOver() {
		return Errorf("game is over: %v", outcome)
	}

	r.history = append(r.history, HistoryValue{move: move, before: r.position.Clone()})
	r.position.Apply(move)
	r.repetitionKeys = append(r.repetitionKeys, game.RepetitionKey(r.position))

	return NilError
}

func (r *GameRunner) PerformMoveFromString(s string) Error {
	move, err := r.MoveFromString(s)
	if !IsNil(err) {
		return Errorf("PerformMoveFromString: %w", err)
	}
	return r.PerformMove(move)
}

func firstIndexNotMatching[A any, B any](a []A, b []B, matches func(A, B) bool) int {
	for i := 0; i < MinInt(len(a), len(b)); i++ {
		if !matches(a[i], b[i]) {
			return i
		}
	}
	return MinInt(len(a), len(b))
}

// PerformMoves brings the game to startFen + moves, keeping whatever prefix
// of the history already matches.
func (r *GameRunner) PerformMoves(startFen string, moves []string) Error {
	if err := r.checkStarted(); !IsNil(err) {
		return err
	}
	if r.StartFen != startFen {
		return Errorf("positions don't match: %v != %v", r.StartFen, startFen)
	}

	startIndex := firstIndexNotMatching(r.history, moves, func(a HistoryValue, b string) bool {
		return a.move.String() == b
	})

	err := r.Rewind(len(r.history) - startIndex)
	if !IsNil(err) {
		return err
	}

	for i := startIndex; i < len(moves); i++ {
		err := r.PerformMoveFromString(moves[i])
		if !IsNil(err) {
			return err
		}
	}

	return NilError
}

func (r *GameRunner) Rewind(num int) Error {
	if num < 0 {
		return Errorf("Rewind: negative count %v", num)
	}
	n := MinInt(num, len(r.history))
	if n == 0 {
		return NilError
	}

	r.position = r.history[len(r.history)-n].before
	r.history = r.history[:len(r.history)-n]
	r.repetitionKeys = r.repetitionKeys[:len(r.repetitionKeys)-n]
	r.declared = Empty[Outcome]()
	return NilError
}

func (r *GameRunner) MovesForSelection(selection string) ([]string, Error) {
	if err := r.checkStarted(); !IsNil(err) {
		return nil, err
	}
	start, err := CoordinateFromString(selection)
	if !IsNil(err) {
		return nil, Errorf("failed to parse selection %w", err)
	}

	moves := FilterSlice(r.LegalMoves(), func(m Move) bool {
		return m.Start == start
	})
	return MoveStrings(moves), NilError
}

func (r *GameRunner) FenString() string {
	if r.IsNew() {
		return ""
	}
	return game.FenString(r.position)
}

// Position is a copy of the current position.
func (r *GameRunner) Position() *game.Position {
	if r.IsNew() {
		return nil
	}
	return r.position.Clone()
}

func (r *GameRunner) MoveHistory() []string {
	return MapSlice(r.history, func(h HistoryValue) string {
		return h.move.String()
	})
}

func (r *GameRunner) LastMove() Optional[Move] {
	if len(r.history) > 0 {
		return Some(r.history[len(r.history)-1].move)
	}
	return Empty[Move]()
}

func (r *GameRunner) Player() Player {
	return r.position.SideToMove()
}

func (r *GameRunner) IsInCheck() bool {
	r.LegalMoves()
	return r.gen.IsInCheck()
}

func (r *GameRunner) repetitions() int {
	current := r.repetitionKeys[len(r.repetitionKeys)-1]
	return len(FilterSlice(r.repetitionKeys, func(key string) bool {
		return key == current
	}))
}

func (r *GameRunner) Outcome() Outcome {
	if r.IsNew() {
		return Outcome{Kind: InProgress}
	}
	if r.declared.HasValue() {
		return r.declared.Value()
	}
	moves := r.LegalMoves()
	return ClassifyPosition(r.position, len(moves), r.gen.IsInCheck(), r.repetitions())
}

// Resign ends the game in favour of the side not to move.
func (r *GameRunner) Resign() Error {
	if err := r.checkStarted(); !IsNil(err) {
		return err
	}
	if outcome := r.Outcome(); outcome.IsOver() {
		return Errorf("game is over: %v", outcome)
	}
	r.declared = Some(Outcome{Kind: Resignation, Winner: Some(r.Player().Other())})
	return NilError
}

func (r *GameRunner) AgreeDraw() Error {
	if err := r.checkStarted(); !IsNil(err) {
		return err
	}
	if outcome := r.Outcome(); outcome.IsOver() {
		return Errorf("game is over: %v", outcome)
	}
	r.declared = Some(Outcome{Kind: Agreement})
	return NilError
}

// Search picks a move for the side to move. Depth and duration in params
// override the runner's search options.
func (r *GameRunner) Search(params SearchParams) (Optional[string], Error) {
	if err := r.checkStarted(); !IsNil(err) {
		return Empty[string](), err
	}

	options := r.SearchOptions
	if params.Depth.HasValue() {
		options.Depth = params.Depth.Value()
	}

	ctx := context.Background()
	if params.Duration.HasValue() {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, params.Duration.Value())
		defer cancel()
	}

	searcher := search.NewSearcher(r.Logger, options)
	move, _, err := searcher.Search(ctx, r.position)
	if !IsNil(err) {
		return Empty[string](), err
	}

	if move.HasValue() {
		return Some(move.Value().String()), NilError
	}
	return Empty[string](), NilError
}
