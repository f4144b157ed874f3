package main

import (
	"bytes"
	"strings"
	"testing"

	. "github.com/cricklet/chessrules/internal/helpers"
	"github.com/cricklet/chessrules/internal/search"
	"github.com/stretchr/testify/assert"
)

func TestServe(t *testing.T) {
	options, err := search.SearchOptionsFromArgs("depth=2")
	assert.True(t, IsNil(err), err)

	in := strings.NewReader(strings.Join([]string{
		"isready",
		"position fen 6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1",
		"go",
		"quit",
		"isready",
	}, "\n"))
	out := bytes.Buffer{}

	err = serve(in, &out, options)
	assert.True(t, IsNil(err), err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, "readyok", lines[0])
	assert.Equal(t, "bestmove a1a8", lines[len(lines)-1])
	for _, line := range lines[1 : len(lines)-1] {
		assert.True(t, strings.HasPrefix(line, "info string "), line)
	}
}

func TestServeStopsOnError(t *testing.T) {
	out := bytes.Buffer{}
	err := serve(strings.NewReader("position startpos moves e2e5\nisready\n"), &out, search.DefaultSearchOptions)
	assert.False(t, IsNil(err))
	assert.Empty(t, out.String())
}
