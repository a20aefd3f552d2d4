package model

import "fmt"

// MoveRecord is one committed move. Captured is the empty piece when the
// destination was empty. Piece and Notation are informational; undo and redo
// only use From, To and Captured.
type MoveRecord struct {
	From     Position `json:"from"`
	To       Position `json:"to"`
	Captured Piece    `json:"captured"`
	Piece    Piece    `json:"piece"`
	Notation string   `json:"notation"`
}

type SimpleMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

type CapturedPieces struct {
	White []Piece `json:"white"`
	Black []Piece `json:"black"`
}

func (p PieceType) getPieceNotation() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	}
	return ""
}

// SquareName returns the algebraic name of pos, e.g. row 7 col 4 is "e1".
func SquareName(pos Position) string {
	if !pos.Valid() {
		return "invalid"
	}
	return fmt.Sprintf("%c%d", 'a'+pos.Col, boardSize-pos.Row)
}

// ParseSquare converts an algebraic name like "e4" into a position.
func ParseSquare(name string) (Position, error) {
	if len(name) != 2 {
		return Position{}, fmt.Errorf("%w: square %q", ErrOutOfBounds, name)
	}
	pos := Position{Row: boardSize - int(name[1]-'0'), Col: int(name[0] - 'a')}
	if !pos.Valid() {
		return Position{}, fmt.Errorf("%w: square %q", ErrOutOfBounds, name)
	}
	return pos, nil
}

func fileName(pos Position) string {
	return fmt.Sprintf("%c", 'a'+pos.Col)
}

// moveNotation builds short algebraic notation for piece moving from->to.
// Must be called before the board is changed.
func moveNotation(piece, target Piece, from, to Position) string {
	prefix := piece.Type.getPieceNotation()
	if piece.Type == Pawn && from.Col != to.Col {
		prefix = fileName(from)
	}
	capture := ""
	if !target.IsEmpty() {
		capture = "x"
	}
	return fmt.Sprintf("%s%s%s", prefix, capture, SquareName(to))
}
