package board

import "fmt"

const historyCapacity = 256

// undoState holds what a Move alone cannot reconstruct.
type undoState struct {
	castling CastlingRights
	ep       Square
	hash     uint64
	halfmove int
}

// Position represents the chess board state, including piece placement, game
// state and the check/pin masks for the side to move.
//
// A Position is not safe for concurrent use; use Clone to explore in parallel.
type Position struct {
	// Piece bitboards indexed by color and piece type (index 0 unused)
	pieces [2][7]Bitboard
	// Occupancy bitboards for each side and the union
	occupancy [2]Bitboard
	occupied  Bitboard
	// Piece placement per square (NoPiece when empty)
	mailbox [64]Piece

	side     Color
	castling CastlingRights
	ep       Square
	halfmove int
	fullmove int
	hash     uint64

	// Check/pin state for the side to move, refreshed after every change.
	checkmask    Bitboard
	checkers     Bitboard
	checkerCount int
	pinned       Bitboard
	pinmasks     [8]Bitboard // one per pinned piece, includes the pinner
	pinCount     int

	history []undoState
}

func newEmptyPosition() *Position {
	return &Position{
		ep:       NoSquare,
		fullmove: 1,
		history:  make([]undoState, 0, historyCapacity),
	}
}

// NewPosition returns the standard starting position.
func NewPosition() *Position {
	p, err := ParseFEN(StartFEN)
	if err != nil {
		panic(err)
	}
	return p
}

// Clone returns an independent copy, history included.
func (p *Position) Clone() *Position {
	q := *p
	q.history = make([]undoState, len(p.history), max(historyCapacity, cap(p.history)))
	copy(q.history, p.history)
	return &q
}

// Successor returns a copy of p with m applied, leaving p untouched. m must be legal.
func (p *Position) Successor(m Move) *Position {
	q := p.Clone()
	q.MakeMove(m)
	return q
}

func (p *Position) SideToMove() Color              { return p.side }
func (p *Position) CastlingRights() CastlingRights { return p.castling }

// EnPassant returns the en passant target square or NoSquare.
func (p *Position) EnPassant() Square   { return p.ep }
func (p *Position) HalfmoveClock() int  { return p.halfmove }
func (p *Position) FullmoveNumber() int { return p.fullmove }

// Hash returns the incrementally maintained zobrist key.
func (p *Position) Hash() uint64 { return p.hash }

// PieceAt returns the piece on sq, or NoPiece.
func (p *Position) PieceAt(sq Square) Piece { return p.mailbox[sq] }

// Pieces returns the bitboard of c's pieces of type pt.
func (p *Position) Pieces(c Color, pt PieceType) Bitboard { return p.pieces[c][pt] }

func (p *Position) ColorOccupancy(c Color) Bitboard { return p.occupancy[c] }
func (p *Position) White() Bitboard                 { return p.occupancy[White] }
func (p *Position) Black() Bitboard                 { return p.occupancy[Black] }
func (p *Position) Occupied() Bitboard              { return p.occupied }
func (p *Position) Empty() Bitboard                 { return ^p.occupied }

// KingSquare returns the square of c's king.
func (p *Position) KingSquare(c Color) Square { return p.pieces[c][King].LSB() }

// Checkmask returns the squares a non-king piece may move to. It is Universe
// when the side to move is not in check.
func (p *Position) Checkmask() Bitboard { return p.checkmask }

// Checkers returns the enemy pieces giving check.
func (p *Position) Checkers() Bitboard { return p.checkers }

func (p *Position) CheckerCount() int { return p.checkerCount }

// Pinned returns the side to move's pieces pinned against their king.
func (p *Position) Pinned() Bitboard { return p.pinned }

// Pinmasks returns one ray per pinned piece, from the king (exclusive) to the
// pinning slider (inclusive).
func (p *Position) Pinmasks() []Bitboard { return p.pinmasks[:p.pinCount] }

// pinMask returns the squares the piece on sq may move to given pins.
func (p *Position) pinMask(sq Square) Bitboard {
	if !p.pinned.Has(sq) {
		return Universe
	}
	for i := 0; i < p.pinCount; i++ {
		if p.pinmasks[i].Has(sq) {
			return p.pinmasks[i]
		}
	}
	return Universe
}

// Ply returns the number of moves recorded in the undo history.
func (p *Position) Ply() int { return len(p.history) }

// put places pc on an empty square.
func (p *Position) put(sq Square, pc Piece) {
	bit := SquareBB(sq)
	c := pc.Color()
	p.pieces[c][pc.Type()] |= bit
	p.occupancy[c] |= bit
	p.occupied |= bit
	p.mailbox[sq] = pc
	p.hash ^= zobristPiece[pc][sq]
}

// remove takes pc off sq.
func (p *Position) remove(sq Square, pc Piece) {
	bit := SquareBB(sq)
	c := pc.Color()
	p.pieces[c][pc.Type()] &^= bit
	p.occupancy[c] &^= bit
	p.occupied &^= bit
	p.mailbox[sq] = NoPiece
	p.hash ^= zobristPiece[pc][sq]
}

// State is a comparable snapshot of everything a position holds apart from its
// undo history.
type State struct {
	Pieces       [2][7]Bitboard
	Side         Color
	Castling     CastlingRights
	EnPassant    Square
	Halfmove     int
	Fullmove     int
	Hash         uint64
	Checkmask    Bitboard
	Checkers     Bitboard
	CheckerCount int
	Pinned       Bitboard
}

func (p *Position) State() State {
	return State{
		Pieces:       p.pieces,
		Side:         p.side,
		Castling:     p.castling,
		EnPassant:    p.ep,
		Halfmove:     p.halfmove,
		Fullmove:     p.fullmove,
		Hash:         p.hash,
		Checkmask:    p.checkmask,
		Checkers:     p.checkers,
		CheckerCount: p.checkerCount,
		Pinned:       p.pinned,
	}
}

// Equal reports whether both positions hold the same board and game state.
func (p *Position) Equal(q *Position) bool { return p.State() == q.State() }

// Validate checks internal consistency between the mailbox, piece bitboards,
// aggregates and hash.
func (p *Position) Validate() error {
	var pieces [2][7]Bitboard
	for sq, pc := range p.mailbox {
		if pc == NoPiece {
			continue
		}
		if pc.Type() == NoPieceType || pc.Type() > King {
			return fmt.Errorf("square %s: bad piece code %d", Square(sq), pc)
		}
		pieces[pc.Color()][pc.Type()] |= SquareBB(Square(sq))
	}
	if pieces != p.pieces {
		return fmt.Errorf("piece bitboards disagree with mailbox")
	}
	var occ [2]Bitboard
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			if occ[c]&p.pieces[c][pt] != 0 {
				return fmt.Errorf("%s %s board overlaps another piece board", c, pt)
			}
			occ[c] |= p.pieces[c][pt]
		}
		if occ[c] != p.occupancy[c] {
			return fmt.Errorf("%s occupancy is stale", c)
		}
		if n := p.pieces[c][King].PopCount(); n != 1 {
			return fmt.Errorf("%s has %d kings", c, n)
		}
	}
	if occ[White]&occ[Black] != 0 {
		return fmt.Errorf("square occupied by both colors")
	}
	if p.occupied != occ[White]|occ[Black] {
		return fmt.Errorf("occupied board is stale")
	}
	if h := p.ComputeHash(); h != p.hash {
		return fmt.Errorf("hash %016x, want %016x", p.hash, h)
	}
	return nil
}

// String draws the board with rank 8 on top.
func (p *Position) String() string {
	buf := make([]byte, 0, 8*18+64)
	for rank := 7; rank >= 0; rank-- {
		buf = append(buf, byte('1'+rank), ' ')
		for file := 0; file < 8; file++ {
			pc := p.mailbox[NewSquare(file, rank)]
			if pc == NoPiece {
				buf = append(buf, '.')
			} else {
				buf = append(buf, pc.Letter())
			}
			if file < 7 {
				buf = append(buf, ' ')
			}
		}
		buf = append(buf, '\n')
	}
	buf = append(buf, "  a b c d e f g h\n"...)
	return string(buf)
}
