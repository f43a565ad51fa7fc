// Package game holds a chess game as an initial position plus the moves played
// from it, and derives everything else (current position, status, perft) from
// that record.
package game

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"chess-core/board"
)

// Status is the outcome state of the current position.
type Status int

const (
	Ongoing Status = iota
	Checkmate
	Stalemate
	FiftyMoveDraw
	ThreefoldRepetition
)

func (s Status) String() string {
	switch s {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case FiftyMoveDraw:
		return "fifty-move draw"
	case ThreefoldRepetition:
		return "threefold repetition"
	}
	return "ongoing"
}

// Over reports whether the game has ended.
func (s Status) Over() bool { return s != Ongoing }

// Game owns its move list and a private working position. Positions handed to
// callers are copies.
type Game struct {
	initial *board.Position
	pos     *board.Position
	moves   []board.Move
	// hashes[i] is the position hash before moves[i]; the current hash is pos.Hash().
	hashes []uint64
}

// New starts a game from the standard initial position.
func New() *Game { return FromPosition(board.NewPosition()) }

// FromFEN starts a game from a FEN string.
func FromFEN(fen string) (*Game, error) {
	p, err := board.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	return FromPosition(p), nil
}

// FromPosition starts a game from a copy of p.
func FromPosition(p *board.Position) *Game {
	return &Game{initial: p.Clone(), pos: p.Clone()}
}

// Position returns a copy of the current position.
func (g *Game) Position() *board.Position { return g.pos.Clone() }

// InitialPosition returns a copy of the starting position.
func (g *Game) InitialPosition() *board.Position { return g.initial.Clone() }

// Moves returns a copy of the moves played so far.
func (g *Game) Moves() []board.Move { return slices.Clone(g.moves) }

// Ply returns the number of moves played.
func (g *Game) Ply() int { return len(g.moves) }

func (g *Game) FEN() string             { return g.pos.FEN() }
func (g *Game) SideToMove() board.Color { return g.pos.SideToMove() }

// Play applies m if it is legal in the current position.
func (g *Game) Play(m board.Move) error {
	hash := g.pos.Hash()
	if err := g.pos.Play(m); err != nil {
		return err
	}
	g.moves = append(g.moves, m)
	g.hashes = append(g.hashes, hash)
	return nil
}

// PlayCoords plays the legal move from one coordinate to another ("e2", "e4").
// promo selects the promotion piece; NoPieceType promotes to a queen.
func (g *Game) PlayCoords(from, to string, promo board.PieceType) (board.Move, error) {
	fromSq, err := board.ParseSquare(from)
	if err != nil {
		return board.NullMove, fmt.Errorf("from square: %w", err)
	}
	toSq, err := board.ParseSquare(to)
	if err != nil {
		return board.NullMove, fmt.Errorf("to square: %w", err)
	}
	m, err := g.resolve(fromSq, toSq, promo)
	if err != nil {
		return board.NullMove, err
	}
	return m, g.Play(m)
}

// ParseUCI finds the legal move written in coordinate notation ("e7e8q").
func (g *Game) ParseUCI(s string) (board.Move, error) {
	s = strings.TrimSpace(s)
	if len(s) != 4 && len(s) != 5 {
		return board.NullMove, fmt.Errorf("invalid move %q", s)
	}
	fromSq, err := board.ParseSquare(s[0:2])
	if err != nil {
		return board.NullMove, fmt.Errorf("invalid move %q: %w", s, err)
	}
	toSq, err := board.ParseSquare(s[2:4])
	if err != nil {
		return board.NullMove, fmt.Errorf("invalid move %q: %w", s, err)
	}
	promo := board.NoPieceType
	if len(s) == 5 {
		promo = board.PieceTypeFromLetter(s[4])
		if promo == board.NoPieceType || promo == board.Pawn || promo == board.King {
			return board.NullMove, fmt.Errorf("invalid promotion in %q", s)
		}
	}
	return g.resolve(fromSq, toSq, promo)
}

// PlayUCI parses and plays a coordinate-notation move.
func (g *Game) PlayUCI(s string) (board.Move, error) {
	m, err := g.ParseUCI(s)
	if err != nil {
		return board.NullMove, err
	}
	return m, g.Play(m)
}

func (g *Game) resolve(from, to board.Square, promo board.PieceType) (board.Move, error) {
	piece := g.pos.PieceAt(from)
	for _, m := range g.pos.GenerateLegalMoves(nil, piece.Type()) {
		if m.From() != from || m.To() != to {
			continue
		}
		if m.IsPromotion() {
			want := promo
			if want == board.NoPieceType {
				want = board.Queen
			}
			if m.PromotionPieceType() != want {
				continue
			}
		} else if promo != board.NoPieceType {
			continue
		}
		return m, nil
	}
	var promoPiece board.Piece
	if promo != board.NoPieceType {
		promoPiece = board.NewPiece(g.pos.SideToMove(), promo)
	}
	attempted := board.NewMove(from, to, piece, g.pos.PieceAt(to), promoPiece, board.FlagNone)
	return board.NullMove, &board.IllegalMoveError{Move: attempted, FEN: g.pos.FEN()}
}

// UndoLastMove takes back the most recent move. ok is false when no move has
// been played.
func (g *Game) UndoLastMove() (m board.Move, ok bool) {
	n := len(g.moves)
	if n == 0 {
		return board.NullMove, false
	}
	m = g.moves[n-1]
	g.pos.UndoMove(m)
	g.moves = g.moves[:n-1]
	g.hashes = g.hashes[:n-1]
	return m, true
}

// LegalMoves lists the legal moves of the current position, restricted to one
// piece kind unless only is NoPieceType.
func (g *Game) LegalMoves(only board.PieceType) []board.Move {
	return g.pos.GenerateLegalMoves(make([]board.Move, 0, 64), only)
}

// Perft counts the legal move tree below the current position.
func (g *Game) Perft(depth int) uint64 { return board.Perft(g.pos.Clone(), depth) }

// DivideEntry is one root move of a perft divide.
type DivideEntry struct {
	Move  board.Move
	Nodes uint64
}

// Divide returns the perft count below each legal root move, ordered by the
// move's coordinate notation.
func (g *Game) Divide(depth int) []DivideEntry {
	counts := board.PerftDivide(g.pos.Clone(), depth)
	byName := make(map[string]board.Move, len(counts))
	for m := range counts {
		byName[m.String()] = m
	}
	names := maps.Keys(byName)
	slices.Sort(names)
	out := make([]DivideEntry, 0, len(names))
	for _, name := range names {
		m := byName[name]
		out = append(out, DivideEntry{Move: m, Nodes: counts[m]})
	}
	return out
}

// Replay derives the current position from the initial one by replaying every
// move with legality checks.
func (g *Game) Replay() (*board.Position, error) {
	p := g.initial.Clone()
	for i, m := range g.moves {
		if err := p.Play(m); err != nil {
			return nil, fmt.Errorf("ply %d: %w", i+1, err)
		}
	}
	return p, nil
}

// Status classifies the current position.
func (g *Game) Status() Status {
	if !g.pos.HasLegalMoves() {
		if g.pos.InCheck() {
			return Checkmate
		}
		return Stalemate
	}
	if g.pos.HalfmoveClock() >= 100 {
		return FiftyMoveDraw
	}
	if g.repetitions() >= 3 {
		return ThreefoldRepetition
	}
	return Ongoing
}

// repetitions counts occurrences of the current position, itself included.
// Only positions since the last capture or pawn move can repeat.
func (g *Game) repetitions() int {
	cur := g.pos.Hash()
	count := 1
	n := len(g.hashes)
	limit := max(0, n-g.pos.HalfmoveClock())
	for i := n - 2; i >= limit; i -= 2 {
		if g.hashes[i] == cur {
			count++
		}
	}
	return count
}
