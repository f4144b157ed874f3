package helpers

type Player int

const (
	White Player = iota
	Black
)

var _playerStrings = [2]string{
	"white", "black",
}

func (p Player) String() string {
	return _playerStrings[p]
}

func (p Player) Other() Player {
	return 1 - p
}

// Sign is the sign of the player's piece codes in the grid.
func (p Player) Sign() int {
	if p == White {
		return 1
	}
	return -1
}

func PlayerFromString(c string) (Player, Error) {
	switch c {
	case "b":
		return Black, NilError
	case "w":
		return White, NilError
	default:
		return White, Errorf("invalid player char %v", c)
	}
}

func (p Player) FenString() string {
	if p == White {
		return "w"
	}
	return "b"
}

// Rows are stored top-down: row 0 is rank 8, white starts at the high rows.
var (
	HomeRow          = [2]int{7, 0}
	PawnStartRow     = [2]int{6, 1}
	PromotionRow     = [2]int{0, 7}
	EnPassantRow     = [2]int{3, 4}
	PawnForward      = [2]int{-1, 1}
	RookHomeCol      = [2]int{7, 0} // indexed via CastlingSide
	KingHomeCol      = 4
	CastledKingCol   = [2]int{6, 2}
	CastledRookCol   = [2]int{5, 3}
	AllCastlingSides = [2]CastlingSide{Kingside, Queenside}
)

type CastlingSide int

const (
	Kingside CastlingSide = iota
	Queenside
)

func (s CastlingSide) String() string {
	if s == Kingside {
		return "kingside"
	}
	return "queenside"
}

type PieceKind int8

const (
	NoPiece PieceKind = iota
	Pawn
	Bishop
	Knight
	Rook
	Queen
	King
)

var AllPieceKinds = [6]PieceKind{Pawn, Bishop, Knight, Rook, Queen, King}

// Index is the kind's slot in per-kind tables.
func (k PieceKind) Index() int {
	return int(k) - 1
}

func (k PieceKind) IsValid() bool {
	return k >= Pawn && k <= King
}

func (k PieceKind) IsSliding() bool {
	return k == Bishop || k == Rook || k == Queen
}

var _pieceValues = [7]int{0, 1, 3, 3, 5, 9, 0}

// Value is the material value of the kind. Kings are worth nothing.
func (k PieceKind) Value() int {
	return _pieceValues[k]
}

func (k PieceKind) String() string {
	return [7]string{
		"?", "p", "b", "n", "r", "q", "k",
	}[k]
}

func PieceKindFromString(s string) PieceKind {
	switch s {
	case "p":
		return Pawn
	case "b":
		return Bishop
	case "n":
		return Knight
	case "r":
		return Rook
	case "q":
		return Queen
	case "k":
		return King
	default:
		return NoPiece
	}
}

// Piece is a signed code: the magnitude is the PieceKind, positive for white.
type Piece int8

const XX Piece = 0

func PieceFor(player Player, kind PieceKind) Piece {
	return Piece(int(kind) * player.Sign())
}

func (p Piece) Kind() PieceKind {
	if p < 0 {
		return PieceKind(-p)
	}
	return PieceKind(p)
}

func (p Piece) Player() Player {
	if p < 0 {
		return Black
	}
	return White
}

func (p Piece) IsEmpty() bool {
	return p == XX
}

func (p Piece) IsWhite() bool {
	return p > 0
}

func (p Piece) IsBlack() bool {
	return p < 0
}

func (p Piece) BelongsTo(player Player) bool {
	return p != XX && p.Player() == player
}

func PieceFromRune(c rune) (Piece, Error) {
	switch c {
	case 'P':
		return PieceFor(White, Pawn), NilError
	case 'B':
		return PieceFor(White, Bishop), NilError
	case 'N':
		return PieceFor(White, Knight), NilError
	case 'R':
		return PieceFor(White, Rook), NilError
	case 'Q':
		return PieceFor(White, Queen), NilError
	case 'K':
		return PieceFor(White, King), NilError
	case 'p':
		return PieceFor(Black, Pawn), NilError
	case 'b':
		return PieceFor(Black, Bishop), NilError
	case 'n':
		return PieceFor(Black, Knight), NilError
	case 'r':
		return PieceFor(Black, Rook), NilError
	case 'q':
		return PieceFor(Black, Queen), NilError
	case 'k':
		return PieceFor(Black, King), NilError
	default:
		return XX, Errorf("invalid piece %q", c)
	}
}

func (p Piece) String() string {
	if p == XX {
		return " "
	}
	return [2][7]string{
		{"?", "P", "B", "N", "R", "Q", "K"},
		{"?", "p", "b", "n", "r", "q", "k"},
	}[p.Player()][p.Kind()]
}

func (p Piece) Unicode() string {
	return [7]string{
		" ", "♟", "♝", "♞", "♜", "♛", "♚",
	}[p.Kind()]
}

type Coordinate struct {
	Row int
	Col int
}

func InBounds(row int, col int) bool {
	return row >= 0 && row < 8 && col >= 0 && col < 8
}

// Offset returns the coordinate shifted by (dr, dc) when it stays on the board.
func (c Coordinate) Offset(dr int, dc int) (Coordinate, bool) {
	row, col := c.Row+dr, c.Col+dc
	if !InBounds(row, col) {
		return Coordinate{}, false
	}
	return Coordinate{row, col}, true
}

func (c Coordinate) String() string {
	return string(rune('a'+c.Col)) + string(rune('8'-c.Row))
}

func CoordinateFromString(s string) (Coordinate, Error) {
	if len(s) != 2 {
		return Coordinate{}, Errorf("invalid location %v", s)
	}
	col := int(s[0]) - 'a'
	row := '8' - int(s[1])
	if !InBounds(row, col) {
		return Coordinate{}, Errorf("invalid location %v", s)
	}
	return Coordinate{row, col}, NilError
}

func MustCoordinate(s string) Coordinate {
	c, err := CoordinateFromString(s)
	if !IsNil(err) {
		panic(err)
	}
	return c
}

type MoveKind int

const (
	NormalMove MoveKind = iota
	EnPassantMove
	CastleKingside
	CastleQueenside
	PromoteBishop
	PromoteKnight
	PromoteRook
	PromoteQueen
)

var PromotionMoveKinds = [4]MoveKind{PromoteBishop, PromoteKnight, PromoteRook, PromoteQueen}

func (k MoveKind) IsPromotion() bool {
	return k >= PromoteBishop && k <= PromoteQueen
}

func (k MoveKind) PromotionKind() PieceKind {
	switch k {
	case PromoteBishop:
		return Bishop
	case PromoteKnight:
		return Knight
	case PromoteRook:
		return Rook
	case PromoteQueen:
		return Queen
	}
	return NoPiece
}

func (k MoveKind) IsCastle() bool {
	return k == CastleKingside || k == CastleQueenside
}

func (k MoveKind) CastlingSide() CastlingSide {
	if k == CastleQueenside {
		return Queenside
	}
	return Kingside
}

func (k MoveKind) String() string {
	switch k {
	case NormalMove:
		return "Normal"
	case EnPassantMove:
		return "EnPassant"
	case CastleKingside:
		return "CastleKingside"
	case CastleQueenside:
		return "CastleQueenside"
	case PromoteBishop:
		return "PromoteBishop"
	case PromoteKnight:
		return "PromoteKnight"
	case PromoteRook:
		return "PromoteRook"
	case PromoteQueen:
		return "PromoteQueen"
	}
	return "Invalid"
}

type Move struct {
	Start     Coordinate
	Target    Coordinate
	Kind      MoveKind
	IsCapture bool
}

func (m Move) String() string {
	if m.Kind.IsPromotion() {
		return m.Start.String() + m.Target.String() + m.Kind.PromotionKind().String()
	}
	return m.Start.String() + m.Target.String()
}

func (m Move) DebugString() string {
	s := m.Start.String()
	if m.IsCapture {
		s += "x"
	}
	s += m.Target.String()
	if m.Kind.IsPromotion() {
		s += "=" + m.Kind.PromotionKind().String()
	}
	if m.Kind != NormalMove && !m.Kind.IsPromotion() {
		s += " (" + m.Kind.String() + ")"
	}
	return s
}

func MoveStrings(moves []Move) []string {
	return MapSlice(moves, func(m Move) string {
		return m.String()
	})
}
