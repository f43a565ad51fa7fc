package board

// filter modes for selective generation
const (
	genAll = iota
	genCaptures
	genQuiets
)

// castleSpec describes one castling move. empty must be vacant and safe must be
// unattacked (the king's transit and destination squares).
type castleSpec struct {
	right        CastlingRights
	king, kingTo Square
	rook         Square
	empty, safe  Bitboard
}

var castleSpecs = [2][2]castleSpec{
	White: {
		{CastlingWhiteK, 4, 6, 7, SquareBB(5) | SquareBB(6), SquareBB(5) | SquareBB(6)},
		{CastlingWhiteQ, 4, 2, 0, SquareBB(1) | SquareBB(2) | SquareBB(3), SquareBB(2) | SquareBB(3)},
	},
	Black: {
		{CastlingBlackK, 60, 62, 63, SquareBB(61) | SquareBB(62), SquareBB(61) | SquareBB(62)},
		{CastlingBlackQ, 60, 58, 56, SquareBB(57) | SquareBB(58) | SquareBB(59), SquareBB(58) | SquareBB(59)},
	},
}

var promotionOrder = [4]PieceType{Queen, Rook, Bishop, Knight}

// GenerateLegalMoves appends every legal move for the side to move into dst
// (reusing its backing array) and returns the result. When only is not
// NoPieceType, just moves of that piece kind are produced.
func (p *Position) GenerateLegalMoves(dst []Move, only PieceType) []Move {
	return p.generate(dst, genAll, only)
}

// GenerateCaptures appends legal captures, including en passant and capturing
// promotions.
func (p *Position) GenerateCaptures(dst []Move) []Move {
	return p.generate(dst, genCaptures, NoPieceType)
}

// GenerateQuiets appends legal non-captures, including castling and quiet promotions.
func (p *Position) GenerateQuiets(dst []Move) []Move {
	return p.generate(dst, genQuiets, NoPieceType)
}

// LegalMoves allocates and returns all legal moves.
func (p *Position) LegalMoves() []Move {
	return p.GenerateLegalMoves(make([]Move, 0, 64), NoPieceType)
}

// HasLegalMoves reports whether the side to move has any legal move.
func (p *Position) HasLegalMoves() bool {
	var buf [256]Move
	return len(p.GenerateLegalMoves(buf[:0], NoPieceType)) > 0
}

// IsLegal reports whether m is among the legal moves of the position.
func (p *Position) IsLegal(m Move) bool {
	if m == NullMove || m.MovedPiece() == NoPiece || m.MovedPiece().Color() != p.side {
		return false
	}
	var buf [256]Move
	for _, lm := range p.GenerateLegalMoves(buf[:0], m.MovedPiece().Type()) {
		if lm == m {
			return true
		}
	}
	return false
}

// generate is the core generator. It appends legal moves matching the filter into dst.
func (p *Position) generate(dst []Move, filter int, only PieceType) []Move {
	moves := dst[:0]
	us := p.side
	own := p.occupancy[us]

	targets := Universe
	switch filter {
	case genCaptures:
		targets = p.occupancy[us.Other()]
	case genQuiets:
		targets = ^p.occupied
	}

	if only == NoPieceType || only == King {
		moves = p.genKing(moves, filter, targets)
	}
	// double check: only the king may move
	if p.checkerCount > 1 {
		return moves
	}

	legal := p.checkmask & targets &^ own
	if only == NoPieceType || only == Pawn {
		moves = p.genPawns(moves, filter)
	}
	if only == NoPieceType || only == Knight {
		// a pinned knight can never stay on its pin ray
		for b := p.pieces[us][Knight] &^ p.pinned; b != 0; {
			from := b.PopLSB()
			moves = p.appendTargets(moves, from, knightMoves[from]&legal)
		}
	}
	for pt := Bishop; pt <= Queen; pt++ {
		if only != NoPieceType && only != pt {
			continue
		}
		for b := p.pieces[us][pt]; b != 0; {
			from := b.PopLSB()
			moves = p.appendTargets(moves, from, sliderAttacks(pt, from, p.occupied)&legal&p.pinMask(from))
		}
	}
	return moves
}

func sliderAttacks(pt PieceType, sq Square, occ Bitboard) Bitboard {
	switch pt {
	case Bishop:
		return BishopAttacks(sq, occ)
	case Rook:
		return RookAttacks(sq, occ)
	}
	return QueenAttacks(sq, occ)
}

func (p *Position) appendTargets(moves []Move, from Square, targets Bitboard) []Move {
	moved := p.mailbox[from]
	for targets != 0 {
		to := targets.PopLSB()
		moves = append(moves, NewMove(from, to, moved, p.mailbox[to], NoPiece, FlagNone))
	}
	return moves
}

func (p *Position) genKing(moves []Move, filter int, targets Bitboard) []Move {
	us := p.side
	them := us.Other()
	ksq := p.KingSquare(us)
	// the king must not shelter behind its own square from a checking slider
	danger := p.attackedBy(them, p.occupied&^SquareBB(ksq))
	moves = p.appendTargets(moves, ksq, kingMoves[ksq]&targets&^p.occupancy[us]&^danger)

	if filter == genCaptures || p.checkerCount > 0 {
		return moves
	}
	king := NewPiece(us, King)
	rook := NewPiece(us, Rook)
	for _, cs := range castleSpecs[us] {
		if p.castling&cs.right == 0 || ksq != cs.king || p.mailbox[cs.rook] != rook {
			continue
		}
		if p.occupied&cs.empty != 0 || danger&cs.safe != 0 {
			continue
		}
		moves = append(moves, NewMove(cs.king, cs.kingTo, king, NoPiece, NoPiece, FlagCastle))
	}
	return moves
}

func (p *Position) genPawns(moves []Move, filter int) []Move {
	us := p.side
	opp := p.occupancy[us.Other()]
	forward, startRank, lastRank := Square(8), 1, 7
	if us == Black {
		forward, startRank, lastRank = -8, 6, 0
	}

	for b := p.pieces[us][Pawn]; b != 0; {
		from := b.PopLSB()
		legal := p.checkmask & p.pinMask(from)

		if filter != genCaptures {
			if one := from + forward; !p.occupied.Has(one) {
				if legal.Has(one) {
					moves = p.appendPawnMove(moves, from, one, lastRank)
				}
				if two := one + forward; from.Rank() == startRank && !p.occupied.Has(two) && legal.Has(two) {
					moves = p.appendPawnMove(moves, from, two, lastRank)
				}
			}
		}
		if filter == genQuiets {
			continue
		}
		for caps := pawnAttacks[us][from] & opp & legal; caps != 0; {
			moves = p.appendPawnMove(moves, from, caps.PopLSB(), lastRank)
		}
		if p.ep != NoSquare && pawnAttacks[us][from].Has(p.ep) && p.enPassantLegal(from) {
			moves = append(moves, NewMove(from, p.ep, p.mailbox[from], NewPiece(us.Other(), Pawn), NoPiece, FlagEnPassant))
		}
	}
	return moves
}

func (p *Position) appendPawnMove(moves []Move, from, to Square, lastRank int) []Move {
	moved := p.mailbox[from]
	captured := p.mailbox[to]
	if to.Rank() != lastRank {
		return append(moves, NewMove(from, to, moved, captured, NoPiece, FlagNone))
	}
	for _, pt := range promotionOrder {
		moves = append(moves, NewMove(from, to, moved, captured, NewPiece(p.side, pt), FlagNone))
	}
	return moves
}

// enPassantLegal checks an en passant capture by the pawn on from. Both pawns
// leave their squares at once, which a single pinmask cannot express, so king
// safety is re-derived against sliders with the post-capture occupancy.
func (p *Position) enPassantLegal(from Square) bool {
	us := p.side
	them := us.Other()
	capSq := p.ep - 8
	if us == Black {
		capSq = p.ep + 8
	}
	if !p.checkmask.Has(p.ep) && !p.checkmask.Has(capSq) {
		return false
	}
	if !p.pinMask(from).Has(p.ep) {
		return false
	}
	ksq := p.KingSquare(us)
	occ := (p.occupied &^ SquareBB(from) &^ SquareBB(capSq)) | SquareBB(p.ep)
	orth := p.pieces[them][Rook] | p.pieces[them][Queen]
	diag := p.pieces[them][Bishop] | p.pieces[them][Queen]
	return RookAttacks(ksq, occ)&orth == 0 && BishopAttacks(ksq, occ)&diag == 0
}
