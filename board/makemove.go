package board

// castleMask[sq] holds the rights lost when a move leaves or lands on sq.
var castleMask = [64]CastlingRights{
	0:  CastlingWhiteQ,
	4:  CastlingWhiteK | CastlingWhiteQ,
	7:  CastlingWhiteK,
	56: CastlingBlackQ,
	60: CastlingBlackK | CastlingBlackQ,
	63: CastlingBlackK,
}

// MakeMove applies a legal move in place. It does not check legality; use Play
// for untrusted input. The pre-move castling rights, en passant square, hash and
// halfmove clock are pushed onto the history so UndoMove can restore them.
func (p *Position) MakeMove(m Move) {
	p.history = append(p.history, undoState{
		castling: p.castling,
		ep:       p.ep,
		hash:     p.hash,
		halfmove: p.halfmove,
	})

	from, to := m.From(), m.To()
	moved := m.MovedPiece()
	us := p.side

	if p.ep != NoSquare {
		p.hash ^= zobristEnPassant[p.ep.File()]
		p.ep = NoSquare
	}

	captured := m.CapturedPiece()
	if captured != NoPiece {
		p.remove(m.CaptureSquare(), captured)
	}
	p.remove(from, moved)
	if promo := m.PromotionPiece(); promo != NoPiece {
		p.put(to, promo)
	} else {
		p.put(to, moved)
	}
	if rookFrom, rookTo, ok := m.RookSquares(); ok {
		rook := NewPiece(us, Rook)
		p.remove(rookFrom, rook)
		p.put(rookTo, rook)
	}

	if cr := p.castling &^ castleMask[from] &^ castleMask[to]; cr != p.castling {
		p.hash ^= zobristCastle[p.castling] ^ zobristCastle[cr]
		p.castling = cr
	}

	if moved.Type() == Pawn {
		if d := to - from; d == 16 || d == -16 {
			p.ep = (from + to) / 2
			p.hash ^= zobristEnPassant[p.ep.File()]
		}
		p.halfmove = 0
	} else if captured != NoPiece {
		p.halfmove = 0
	} else {
		p.halfmove++
	}
	if us == Black {
		p.fullmove++
	}

	p.side = us.Other()
	p.hash ^= zobristSide
	p.updateCheckState()
}

// UndoMove reverses the last MakeMove. m must be the move that was made.
func (p *Position) UndoMove(m Move) {
	n := len(p.history)
	if n == 0 {
		panic("board: UndoMove with empty history")
	}
	st := p.history[n-1]
	p.history = p.history[:n-1]

	p.side = p.side.Other()
	us := p.side
	from, to := m.From(), m.To()
	moved := m.MovedPiece()

	if rookFrom, rookTo, ok := m.RookSquares(); ok {
		rook := NewPiece(us, Rook)
		p.remove(rookTo, rook)
		p.put(rookFrom, rook)
	}
	if promo := m.PromotionPiece(); promo != NoPiece {
		p.remove(to, promo)
	} else {
		p.remove(to, moved)
	}
	p.put(from, moved)
	if captured := m.CapturedPiece(); captured != NoPiece {
		p.put(m.CaptureSquare(), captured)
	}

	p.castling = st.castling
	p.ep = st.ep
	p.halfmove = st.halfmove
	if us == Black {
		p.fullmove--
	}
	// exact restoration; the piece toggles above also touched the hash
	p.hash = st.hash
	p.updateCheckState()
}

// Play applies m after verifying it is legal. An illegal move returns an
// *IllegalMoveError and leaves the position unchanged.
func (p *Position) Play(m Move) error {
	if !p.IsLegal(m) {
		return &IllegalMoveError{Move: m, FEN: p.FEN()}
	}
	p.MakeMove(m)
	return nil
}

// MakeNullMove passes the turn without moving a piece. It must not be used
// while in check.
func (p *Position) MakeNullMove() {
	p.history = append(p.history, undoState{
		castling: p.castling,
		ep:       p.ep,
		hash:     p.hash,
		halfmove: p.halfmove,
	})
	if p.ep != NoSquare {
		p.hash ^= zobristEnPassant[p.ep.File()]
		p.ep = NoSquare
	}
	p.halfmove++
	if p.side == Black {
		p.fullmove++
	}
	p.side = p.side.Other()
	p.hash ^= zobristSide
	p.updateCheckState()
}

// UndoNullMove reverses MakeNullMove.
func (p *Position) UndoNullMove() {
	n := len(p.history)
	if n == 0 {
		panic("board: UndoNullMove with empty history")
	}
	st := p.history[n-1]
	p.history = p.history[:n-1]
	p.side = p.side.Other()
	if p.side == Black {
		p.fullmove--
	}
	p.ep = st.ep
	p.halfmove = st.halfmove
	p.hash = st.hash
	p.updateCheckState()
}
