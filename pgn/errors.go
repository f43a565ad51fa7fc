package pgn

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is.
var (
	// ErrSyntax indicates a token that does not follow the SAN grammar.
	ErrSyntax = errors.New("malformed SAN")

	// ErrAmbiguousMove indicates a SAN move matching more than one legal move.
	ErrAmbiguousMove = errors.New("ambiguous move")

	// ErrUnresolvedMove indicates a SAN move matching no legal move.
	ErrUnresolvedMove = errors.New("unresolved move")
)

// ParseError reports a SAN token that could not be turned into exactly one
// legal move.
type ParseError struct {
	Err        error    // ErrSyntax, ErrAmbiguousMove or ErrUnresolvedMove
	SAN        string   // the offending token
	FEN        string   // position the token was resolved against
	Candidates []string // matching moves when ambiguous
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("%q: %v", e.SAN, e.Err)
	if len(e.Candidates) > 0 {
		msg += " (candidates " + strings.Join(e.Candidates, ", ") + ")"
	}
	if e.FEN != "" {
		msg += " in " + e.FEN
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Err }

// GameError wraps an error with the context of the game it aborted.
type GameError struct {
	Err      error  // the underlying error
	GameNum  int    // 1-based game number in the stream
	PlyNum   int    // ply being read when the error occurred (0 if not applicable)
	MoveText string // the offending token, if any
	Line     int    // line in the stream where the game starts
}

func (e *GameError) Error() string {
	parts := []string{fmt.Sprintf("game %d", e.GameNum)}
	if e.Line > 0 {
		parts = append(parts, fmt.Sprintf("line %d", e.Line))
	}
	if e.PlyNum > 0 {
		parts = append(parts, fmt.Sprintf("ply %d", e.PlyNum))
	}
	if e.MoveText != "" {
		parts = append(parts, fmt.Sprintf("move %q", e.MoveText))
	}
	context := strings.Join(parts, ", ")
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	return context
}

func (e *GameError) Unwrap() error { return e.Err }
