package helpers

import "time"

// PositionSetup is a starting record plus the moves played from it, as
// sent by the uci "position" command.
type PositionSetup struct {
	Fen   string
	Moves []string
}

type SearchParams struct {
	Depth    Optional[int]
	Duration Optional[time.Duration]
}

type Runner interface {
	PerformMoveFromString(s string) Error
	SetupPosition(setup PositionSetup) Error
	PerformMoves(startFen string, moves []string) Error
	MovesForSelection(s string) ([]string, Error)
	Rewind(num int) Error
	Reset()
	Search(params SearchParams) (Optional[string], Error)
	IsNew() bool
}
