package helpers

import (
	"strings"

	"github.com/acarl005/stripansi"
)

type Grid [8][8]Piece

func (g Grid) At(c Coordinate) Piece {
	return g[c.Row][c.Col]
}

// String renders the grid with FEN letters, rank 8 first.
func (g Grid) String() string {
	rows := []string{}
	for row := 0; row < 8; row++ {
		s := ""
		for col := 0; col < 8; col++ {
			s += g[row][col].String()
		}
		rows = append(rows, s)
	}
	return strings.Join(rows, "\n")
}

const _hintForeground = "\033[38;5;244m"
const _whiteForeground = "\033[38;5;255m"
const _blackForeground = "\033[38;5;232m"
const _whiteBackground = "\033[48;5;250m"
const _blackBackground = "\033[48;5;243m"
const _highlightBackground = "\033[48;5;143m"
const _resetColors = "\x1b[0m"

func (g Grid) Unicode() string {
	return g.UnicodeHighlighting(nil)
}

// UnicodeHighlighting renders the grid for a terminal, marking the given squares.
func (g Grid) UnicodeHighlighting(highlights []Coordinate) string {
	result := "  "
	for col := 0; col < 8; col++ {
		result += _hintForeground + " " + string(rune('a'+col)) + " " + _resetColors
	}
	result += "\n"

	for row := 0; row < 8; row++ {
		result += _hintForeground + string(rune('8'-row)) + " " + _resetColors
		for col := 0; col < 8; col++ {
			c := Coordinate{row, col}
			piece := g.At(c)

			if Contains(highlights, c) {
				result += _highlightBackground
			} else if (row+col)%2 == 0 {
				result += _whiteBackground
			} else {
				result += _blackBackground
			}
			if piece.IsWhite() {
				result += _whiteForeground
			} else {
				result += _blackForeground
			}

			result += " " + piece.Unicode() + " " + _resetColors
		}
		result += "\n"
	}

	return result
}

// Plain strips the terminal colours from a rendering.
func Plain(rendered string) string {
	return stripansi.Strip(rendered)
}
