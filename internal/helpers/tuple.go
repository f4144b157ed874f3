package helpers

import "fmt"

type Pair[T, U any] struct {
	First  T
	Second U
}

// String renders the pair the way perft divide output lists a move and its count.
func (p Pair[T, U]) String() string {
	return fmt.Sprintf("%v: %v", p.First, p.Second)
}
