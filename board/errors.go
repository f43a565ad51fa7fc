package board

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is.
var (
	ErrFormat      = errors.New("malformed position text")
	ErrIllegalMove = errors.New("illegal move")
)

// FormatError reports malformed FEN text.
type FormatError struct {
	Input  string
	Field  string // placement, side, castling, en passant, halfmove, fullmove
	Reason string
}

func (e *FormatError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid FEN %q: %s", e.Input, e.Reason)
	}
	return fmt.Sprintf("invalid FEN %q: %s: %s", e.Input, e.Field, e.Reason)
}

func (e *FormatError) Unwrap() error { return ErrFormat }

// IllegalMoveError is returned when a move is not legal in the current position.
// The position is left untouched.
type IllegalMoveError struct {
	Move Move
	FEN  string
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move %s in position %s", e.Move, e.FEN)
}

func (e *IllegalMoveError) Unwrap() error { return ErrIllegalMove }
