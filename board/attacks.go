package board

// updateCheckState recomputes the checkmask, checkers and pins for the side to
// move. Each of the 8 rays from the king is walked once: the first occupant is
// either an enemy slider of the matching kind (check), a friendly piece with a
// matching enemy slider behind it (pin), or neither.
func (p *Position) updateCheckState() {
	us := p.side
	them := us.Other()
	ksq := p.KingSquare(us)
	occ := p.occupied
	own := p.occupancy[us]
	orth := p.pieces[them][Rook] | p.pieces[them][Queen]
	diag := p.pieces[them][Bishop] | p.pieces[them][Queen]

	var mask, checkers, pinned Bitboard
	pins := 0
	for dir := 0; dir < 8; dir++ {
		ray := rays[dir][ksq]
		blockers := ray & occ
		if blockers == 0 {
			continue
		}
		sliders := diag
		if orthogonalDir(dir) {
			sliders = orth
		}
		first := nearest(dir, blockers)
		if sliders.Has(first) {
			checkers |= SquareBB(first)
			mask |= ray &^ rays[dir][first]
			continue
		}
		if !own.Has(first) {
			continue
		}
		beyond := blockers.Clear(first)
		if beyond == 0 {
			continue
		}
		if next := nearest(dir, beyond); sliders.Has(next) {
			pinned |= SquareBB(first)
			p.pinmasks[pins] = ray &^ rays[dir][next]
			pins++
		}
	}

	leapers := knightMoves[ksq]&p.pieces[them][Knight] | pawnAttacks[us][ksq]&p.pieces[them][Pawn]
	checkers |= leapers
	mask |= leapers

	p.checkers = checkers
	p.checkerCount = checkers.PopCount()
	if p.checkerCount == 0 {
		mask = Universe
	}
	p.checkmask = mask
	p.pinned = pinned
	p.pinCount = pins
}

// InCheck reports whether the side to move is in check.
func (p *Position) InCheck() bool { return p.checkerCount > 0 }

// IsSquareAttacked reports whether any piece of color by attacks sq.
func (p *Position) IsSquareAttacked(sq Square, by Color) bool {
	return p.isSquareAttackedWithOcc(sq, by, p.occupied)
}

func (p *Position) isSquareAttackedWithOcc(sq Square, by Color, occ Bitboard) bool {
	theirs := &p.pieces[by]
	if pawnAttacks[by.Other()][sq]&theirs[Pawn] != 0 ||
		knightMoves[sq]&theirs[Knight] != 0 ||
		kingMoves[sq]&theirs[King] != 0 {
		return true
	}
	if RookAttacks(sq, occ)&(theirs[Rook]|theirs[Queen]) != 0 {
		return true
	}
	return BishopAttacks(sq, occ)&(theirs[Bishop]|theirs[Queen]) != 0
}

// AttackedSquares returns every square attacked by color by.
func (p *Position) AttackedSquares(by Color) Bitboard {
	return p.attackedBy(by, p.occupied)
}

// attackedBy unions the attacks of by's pieces under the given occupancy.
func (p *Position) attackedBy(by Color, occ Bitboard) Bitboard {
	theirs := &p.pieces[by]
	pawns := theirs[Pawn]
	var att Bitboard
	if by == White {
		att = (pawns&^fileA)<<7 | (pawns&^fileH)<<9
	} else {
		att = (pawns&^fileA)>>9 | (pawns&^fileH)>>7
	}
	for b := theirs[Knight]; b != 0; {
		att |= knightMoves[b.PopLSB()]
	}
	for b := theirs[Bishop] | theirs[Queen]; b != 0; {
		att |= BishopAttacks(b.PopLSB(), occ)
	}
	for b := theirs[Rook] | theirs[Queen]; b != 0; {
		att |= RookAttacks(b.PopLSB(), occ)
	}
	return att | kingMoves[theirs[King].LSB()]
}
