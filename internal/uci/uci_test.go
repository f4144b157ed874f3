package uci

import (
	"strings"
	"testing"

	. "github.com/cricklet/chessrules/internal/helpers"
	"github.com/cricklet/chessrules/internal/runner"
	"github.com/cricklet/chessrules/internal/search"
	"github.com/stretchr/testify/assert"
)

func newUciRunner() *UciRunner {
	options, _ := search.SearchOptionsFromArgs("depth=2")
	return NewUciRunner(runner.NewGameRunner(&SilentLogger, options))
}

func handle(t *testing.T, r *UciRunner, input string) []string {
	output, err := r.HandleInput(input)
	assert.True(t, IsNil(err), err)
	return output
}

func TestUciTranscript(t *testing.T) {
	r := newUciRunner()

	assert.Equal(t, []string{"readyok"}, handle(t, r, "isready"))
	assert.Equal(t, "uciok", handle(t, r, "uci")[2])
	assert.Empty(t, handle(t, r, "position startpos moves e2e4 e7e5"))

	output := handle(t, r, "go depth 1")
	assert.Equal(t, 1, len(output))
	assert.True(t, strings.HasPrefix(output[0], "bestmove "), output)

	board := handle(t, r, "d")
	assert.Equal(t, "Fen: rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2", board[len(board)-1])
}

func TestUciFindsMate(t *testing.T) {
	r := newUciRunner()

	handle(t, r, "position fen 6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	assert.Equal(t, []string{"bestmove a1a8"}, handle(t, r, "go"))

	handle(t, r, "position fen 6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1 moves a1a8")
	assert.Equal(t, []string{"bestmove 0000"}, handle(t, r, "go movetime 100"))
}

func TestUciPositionUpdates(t *testing.T) {
	r := newUciRunner()
	fen := "rn1qk2r/ppp3pp/3b1n2/3ppb2/8/2NPBNP1/PPP2PBP/R2QK2R b KQkq - 15 8"

	for _, line := range []string{
		"position fen " + fen,
		"position fen " + fen + " moves e8g8",
		"position fen " + fen + " moves e8g8 d3d4",
		"position startpos moves d2d4",
	} {
		handle(t, r, line)
	}

	board := handle(t, r, "d")
	assert.Equal(t, "Fen: rnbqkbnr/pppppppp/8/8/3P4/8/PPP1PPPP/RNBQKBNR b KQkq d3 0 1", board[len(board)-1])

	handle(t, r, "ucinewgame")
	_, err := r.HandleInput("d")
	assert.False(t, IsNil(err))
}

func TestUciTakebackToEarlierLine(t *testing.T) {
	r := newUciRunner()

	handle(t, r, "position startpos moves e2e4 e7e5 g1f3 b8c6")
	board := handle(t, r, "d")
	assert.Equal(t, "Fen: r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3", board[len(board)-1])

	handle(t, r, "position startpos moves d2d4")
	board = handle(t, r, "d")
	assert.Equal(t, "Fen: rnbqkbnr/pppppppp/8/8/3P4/8/PPP1PPPP/RNBQKBNR b KQkq d3 0 1", board[len(board)-1])

	handle(t, r, "position startpos moves d2d4 d7d5 c2c4")
	handle(t, r, "position startpos moves d2d4 g8f6")
	board = handle(t, r, "d")
	assert.Equal(t, "Fen: rnbqkb1r/pppppppp/5n2/8/3P4/8/PPP1PPPP/RNBQKBNR w KQkq - 1 2", board[len(board)-1])
}

func TestUciPerft(t *testing.T) {
	r := newUciRunner()
	handle(t, r, "position startpos")

	output := handle(t, r, "go perft 2")
	assert.Equal(t, 22, len(output))
	assert.Equal(t, "a2a3: 20", output[0])
	assert.Equal(t, "Nodes searched: 400", output[len(output)-1])
}

func TestUciErrors(t *testing.T) {
	r := newUciRunner()

	for _, line := range []string{
		"position somewhere",
		"position startpos moves e2e5",
		"go depth",
		"go depth x",
	} {
		_, err := r.HandleInput(line)
		assert.False(t, IsNil(err), line)
	}

	assert.Empty(t, handle(t, r, "setoption name Hash value 16"))
}
