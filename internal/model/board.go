package model

import (
	"fmt"
	"strings"
)

const boardSize = 8

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) Valid() bool {
	return c == White || c == Black
}

type PieceType string

const (
	NoPiece PieceType = ""
	King    PieceType = "king"
	Queen   PieceType = "queen"
	Rook    PieceType = "rook"
	Bishop  PieceType = "bishop"
	Knight  PieceType = "knight"
	Pawn    PieceType = "pawn"
)

var pieceGlyphs = map[Color]map[PieceType]string{
	White: {King: "♔", Queen: "♕", Rook: "♖", Bishop: "♗", Knight: "♘", Pawn: "♙"},
	Black: {King: "♚", Queen: "♛", Rook: "♜", Bishop: "♝", Knight: "♞", Pawn: "♟"},
}

// Piece is stored by value on the board and in history records. The zero
// value is an empty square.
type Piece struct {
	Type     PieceType `json:"type"`
	Color    Color     `json:"color"`
	HasMoved bool      `json:"hasMoved"`
}

func NewPiece(t PieceType, c Color) Piece {
	return Piece{Type: t, Color: c}
}

func (p Piece) IsEmpty() bool {
	return p.Type == NoPiece
}

// Symbol returns the unicode glyph used by saved games.
func (p Piece) Symbol() string {
	if p.IsEmpty() {
		return ""
	}
	return pieceGlyphs[p.Color][p.Type]
}

type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func IsValidPosition(row, col int) bool {
	return row >= 0 && row < boardSize && col >= 0 && col < boardSize
}

func (p Position) Valid() bool {
	return IsValidPosition(p.Row, p.Col)
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Board is addressed [row][col]; row 0 is black's back rank.
type Board [boardSize][boardSize]Piece

var backRank = [boardSize]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

func NewBoard() Board {
	var board Board
	for col := 0; col < boardSize; col++ {
		board[0][col] = NewPiece(backRank[col], Black)
		board[1][col] = NewPiece(Pawn, Black)
		board[6][col] = NewPiece(Pawn, White)
		board[7][col] = NewPiece(backRank[col], White)
	}
	return board
}

// At returns the empty piece for positions off the board.
func (b Board) At(pos Position) Piece {
	if !pos.Valid() {
		return Piece{}
	}
	return b[pos.Row][pos.Col]
}

func (b *Board) Set(pos Position, piece Piece) {
	if pos.Valid() {
		b[pos.Row][pos.Col] = piece
	}
}

func (b *Board) Clear(pos Position) {
	b.Set(pos, Piece{})
}

func (b Board) String() string {
	var s strings.Builder
	s.WriteString("  a b c d e f g h\n")
	for row := 0; row < boardSize; row++ {
		fmt.Fprintf(&s, "%d ", boardSize-row)
		for col := 0; col < boardSize; col++ {
			piece := b[row][col]
			if piece.IsEmpty() {
				s.WriteString("· ")
			} else {
				s.WriteString(piece.Symbol() + " ")
			}
		}
		fmt.Fprintf(&s, "%d\n", boardSize-row)
	}
	s.WriteString("  a b c d e f g h\n")
	return s.String()
}
