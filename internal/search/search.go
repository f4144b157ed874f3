package search

import (
	"context"
	"strconv"
	"strings"

	"github.com/cricklet/chessrules/internal/game"
	. "github.com/cricklet/chessrules/internal/helpers"
	"github.com/cricklet/chessrules/internal/movegen"
)

type SearchOptions struct {
	Depth             int
	evaluationOptions []EvaluationOption
	verbose           bool
}

var DefaultSearchOptions = SearchOptions{
	Depth: 3,
}

var AllSearchOptions = []string{
	"depth",
	"materialOnly",
	"verbose",
}

func SearchOptionsFromArgs(args ...string) (SearchOptions, Error) {
	options := DefaultSearchOptions

	for _, arg := range args {
		if strings.HasPrefix(arg, "depth") {
			if !strings.Contains(arg, "=") {
				return options, Errorf("depth needs a value: %s", arg)
			}
			n, err := strconv.ParseInt(strings.Split(arg, "=")[1], 10, 64)
			if err != nil {
				return options, Wrap(err)
			}
			if n < 1 {
				return options, Errorf("depth must be positive: %s", arg)
			}
			options.Depth = int(n)
		} else if strings.HasPrefix(arg, "materialOnly") {
			options.evaluationOptions = append(options.evaluationOptions, MaterialOnly)
		} else if strings.HasPrefix(arg, "verbose") {
			options.verbose = true
		} else {
			return options, Errorf("unknown option: %s", arg)
		}
	}

	return options, NilError
}

// Searcher is a fixed-depth negamax over legal moves. Every node searches
// its own clone of the position, so the caller's position is never touched.
type Searcher struct {
	Logger  Logger
	options SearchOptions

	gen *movegen.LegalMoveGenerator

	DebugTotalEvaluations int
}

func NewSearcher(logger Logger, options SearchOptions) *Searcher {
	if options.Depth < 1 {
		options.Depth = DefaultSearchOptions.Depth
	}
	return &Searcher{
		Logger:  logger,
		options: options,
		gen:     movegen.NewLegalMoveGenerator(),
	}
}

func (s *Searcher) evaluate(p *game.Position) int {
	s.DebugTotalEvaluations++
	return Evaluate(p, p.SideToMove(), s.options.evaluationOptions...)
}

// negamax scores p for the side to move. Mates found with more depth left
// are nearer, so they score further from zero. Once ctx is done the
// remaining subtree is cut to a static evaluation.
func (s *Searcher) negamax(ctx context.Context, p *game.Position, depth int) int {
	if depth == 0 || (depth > 1 && ctx.Err() != nil) {
		return s.evaluate(p)
	}

	moves := GetMovesBuffer()
	defer ReleaseMovesBuffer(moves)

	s.gen.GenerateLegalMovesInto(p, moves)
	if len(*moves) == 0 {
		if s.gen.IsInCheck() {
			return -(MateScore + depth)
		}
		return 0
	}

	best := -Inf
	for _, move := range *moves {
		child := p.Clone()
		child.Apply(move)
		best = MaxInt(best, -s.negamax(ctx, child, depth-1))
	}
	return best
}

// Search returns the best root move and its score for the side to move.
// When ctx ends early, the best move among those already searched is
// returned. There is no move when the side to move is mated or stalemated.
func (s *Searcher) Search(ctx context.Context, p *game.Position) (Optional[Move], int, Error) {
	moves := s.gen.GenerateLegalMoves(p)
	if len(moves) == 0 {
		return Empty[Move](), s.negamax(context.Background(), p, 1), NilError
	}

	bestMove := Empty[Move]()
	bestScore := -Inf

	for _, move := range moves {
		if ctx.Err() != nil && bestMove.HasValue() {
			break
		}

		child := p.Clone()
		child.Apply(move)
		score := -s.negamax(ctx, child, s.options.Depth-1)

		if s.options.verbose {
			s.Logger.Println(move.String(), score)
		}

		if score > bestScore {
			bestScore = score
			bestMove = Some(move)
		}
	}

	s.Logger.Println("evaluated",
		"to depth", s.options.Depth,
		"- total evals", s.DebugTotalEvaluations,
		"- best move", bestMove.Value().String(),
		"- score", bestScore)

	return bestMove, bestScore, NilError
}
