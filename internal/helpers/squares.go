package helpers

import (
	"sort"
	"strings"

	"golang.org/x/exp/maps"
)

type SquareSet map[Coordinate]struct{}

func NewSquareSet(squares ...Coordinate) SquareSet {
	s := SquareSet{}
	for _, c := range squares {
		s.Add(c)
	}
	return s
}

func (s SquareSet) Add(c Coordinate) {
	s[c] = struct{}{}
}

func (s SquareSet) Remove(c Coordinate) {
	delete(s, c)
}

func (s SquareSet) Contains(c Coordinate) bool {
	_, ok := s[c]
	return ok
}

func (s SquareSet) Len() int {
	return len(s)
}

func (s SquareSet) Clone() SquareSet {
	return maps.Clone(s)
}

// Sorted lists the squares in board order, rank 8 first.
func (s SquareSet) Sorted() []Coordinate {
	result := maps.Keys(s)
	SortCoordinates(result)
	return result
}

func SortCoordinates(cs []Coordinate) {
	sort.Slice(cs, func(i, j int) bool {
		if cs[i].Row != cs[j].Row {
			return cs[i].Row < cs[j].Row
		}
		return cs[i].Col < cs[j].Col
	})
}

func (s SquareSet) String() string {
	return strings.Join(MapSlice(s.Sorted(), Coordinate.String), " ")
}

type SquareMask [8][8]bool

func (m *SquareMask) Set(c Coordinate) {
	m[c.Row][c.Col] = true
}

func (m *SquareMask) Has(c Coordinate) bool {
	return m[c.Row][c.Col]
}

func (m *SquareMask) Squares() []Coordinate {
	result := []Coordinate{}
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if m[row][col] {
				result = append(result, Coordinate{row, col})
			}
		}
	}
	return result
}

// Segment marks the squares from start (inclusive) walking towards end
// (exclusive). start and end must share a rank, file or diagonal.
func Segment(start Coordinate, end Coordinate) SquareMask {
	mask := SquareMask{}
	dr, dc := Sign(end.Row-start.Row), Sign(end.Col-start.Col)
	for c := start; c != end; c = (Coordinate{c.Row + dr, c.Col + dc}) {
		mask.Set(c)
	}
	return mask
}
