package board

import (
	"math/bits"
	"strings"
)

// Bitboard is a set of squares, bit i standing for square i.
type Bitboard uint64

const (
	EmptyBoard Bitboard = 0
	Universe   Bitboard = ^Bitboard(0)

	fileA Bitboard = 0x0101010101010101
	fileH Bitboard = fileA << 7
	rank1 Bitboard = 0xFF
	rank2 Bitboard = rank1 << 8
	rank7 Bitboard = rank1 << 48
	rank8 Bitboard = rank1 << 56
)

// SquareBB returns a bitboard with only sq set.
func SquareBB(sq Square) Bitboard { return 1 << uint(sq) }

// Has reports whether sq is in the set.
func (b Bitboard) Has(sq Square) bool { return b>>uint(sq)&1 != 0 }

// Set returns b with sq added.
func (b Bitboard) Set(sq Square) Bitboard { return b | SquareBB(sq) }

// Clear returns b with sq removed.
func (b Bitboard) Clear(sq Square) Bitboard { return b &^ SquareBB(sq) }

// PopCount returns the number of squares in the set.
func (b Bitboard) PopCount() int { return bits.OnesCount64(uint64(b)) }

// LSB returns the lowest square of a non-empty set.
func (b Bitboard) LSB() Square { return Square(bits.TrailingZeros64(uint64(b))) }

// MSB returns the highest square of a non-empty set.
func (b Bitboard) MSB() Square { return Square(63 - bits.LeadingZeros64(uint64(b))) }

// PopLSB removes and returns the lowest square. b must be non-empty.
func (b *Bitboard) PopLSB() Square {
	sq := Square(bits.TrailingZeros64(uint64(*b)))
	*b &= *b - 1
	return sq
}

// Squares lists the members in ascending order.
func (b Bitboard) Squares() []Square {
	out := make([]Square, 0, b.PopCount())
	for b != 0 {
		out = append(out, b.PopLSB())
	}
	return out
}

// String draws the set as an 8x8 grid, rank 8 first.
func (b Bitboard) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			if b.Has(NewSquare(file, rank)) {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Ray directions. Positive directions grow square indices.
const (
	dirN = iota
	dirE
	dirNE
	dirNW
	dirS
	dirW
	dirSW
	dirSE
)

var dirDelta = [8][2]int{
	dirN:  {0, 1},
	dirE:  {1, 0},
	dirNE: {1, 1},
	dirNW: {-1, 1},
	dirS:  {0, -1},
	dirW:  {-1, 0},
	dirSW: {-1, -1},
	dirSE: {1, -1},
}

func positiveDir(dir int) bool { return dir < dirS }

func orthogonalDir(dir int) bool {
	return dir == dirN || dir == dirE || dir == dirS || dir == dirW
}

var (
	knightMoves [64]Bitboard
	kingMoves   [64]Bitboard
	// pawnAttacks[color][sq] gives the squares a pawn of color attacks from sq.
	pawnAttacks [2][64]Bitboard
	// rays[dir][sq] excludes the origin square.
	rays [8][64]Bitboard

	rookMask       [64]Bitboard
	bishopMask     [64]Bitboard
	rookAttTable   [64][]Bitboard
	bishopAttTable [64][]Bitboard
)

func init() {
	initLeaperTables()
	initRays()
	initSliderTables()
	initZobrist()
}

func onBoard(file, rank int) bool { return file >= 0 && file < 8 && rank >= 0 && rank < 8 }

func initLeaperTables() {
	knightOffsets := [8][2]int{
		{2, 1}, {2, -1}, {-2, 1}, {-2, -1},
		{1, 2}, {1, -2}, {-1, 2}, {-1, -2},
	}
	for sq := Square(0); sq < 64; sq++ {
		file, rank := sq.File(), sq.Rank()
		for _, off := range knightOffsets {
			if f, r := file+off[0], rank+off[1]; onBoard(f, r) {
				knightMoves[sq] |= SquareBB(NewSquare(f, r))
			}
		}
		for _, d := range dirDelta {
			if f, r := file+d[0], rank+d[1]; onBoard(f, r) {
				kingMoves[sq] |= SquareBB(NewSquare(f, r))
			}
		}
		for _, df := range [2]int{-1, 1} {
			if f, r := file+df, rank+1; onBoard(f, r) {
				pawnAttacks[White][sq] |= SquareBB(NewSquare(f, r))
			}
			if f, r := file+df, rank-1; onBoard(f, r) {
				pawnAttacks[Black][sq] |= SquareBB(NewSquare(f, r))
			}
		}
	}
}

func initRays() {
	for dir, d := range dirDelta {
		for sq := Square(0); sq < 64; sq++ {
			var ray Bitboard
			for f, r := sq.File()+d[0], sq.Rank()+d[1]; onBoard(f, r); f, r = f+d[0], r+d[1] {
				ray |= SquareBB(NewSquare(f, r))
			}
			rays[dir][sq] = ray
		}
	}
}

// initSliderTables builds relevant-occupancy masks (edges trimmed) and fills the
// lookup tables from the ray-walking attack functions.
func initSliderTables() {
	for sq := Square(0); sq < 64; sq++ {
		file, rank := sq.File(), sq.Rank()
		edges := ((rank1 | rank8) &^ rankMask(rank)) | ((fileA | fileH) &^ fileMask(file))
		rookMask[sq] = (rays[dirN][sq] | rays[dirS][sq] | rays[dirE][sq] | rays[dirW][sq]) &^ edges
		bishopMask[sq] = (rays[dirNE][sq] | rays[dirNW][sq] | rays[dirSE][sq] | rays[dirSW][sq]) &^ edges

		rBits := rookMask[sq].PopCount()
		bBits := bishopMask[sq].PopCount()
		rookAttTable[sq] = make([]Bitboard, 1<<rBits)
		bishopAttTable[sq] = make([]Bitboard, 1<<bBits)
		for idx := 0; idx < 1<<rBits; idx++ {
			rookAttTable[sq][idx] = RookAttacksRay(sq, pdep(uint64(idx), rookMask[sq]))
		}
		for idx := 0; idx < 1<<bBits; idx++ {
			bishopAttTable[sq][idx] = BishopAttacksRay(sq, pdep(uint64(idx), bishopMask[sq]))
		}
	}
}

func rankMask(rank int) Bitboard { return rank1 << uint(8*rank) }
func fileMask(file int) Bitboard { return fileA << uint(file) }

// software pext: extract bits of x at positions where mask has 1s, packed into low bits
func pext(x uint64, mask Bitboard) uint64 {
	var res uint64
	var idx uint
	for m := mask; m != 0; idx++ {
		if x>>uint(m.PopLSB())&1 != 0 {
			res |= 1 << idx
		}
	}
	return res
}

// software pdep: deposit low bits of x into positions of mask
func pdep(x uint64, mask Bitboard) Bitboard {
	var res Bitboard
	var idx uint
	for m := mask; m != 0; idx++ {
		sq := m.PopLSB()
		if x>>idx&1 != 0 {
			res |= SquareBB(sq)
		}
	}
	return res
}

// rayAttacks returns the ray from sq in dir cut after its first blocker.
func rayAttacks(dir int, sq Square, occ Bitboard) Bitboard {
	ray := rays[dir][sq]
	if blockers := ray & occ; blockers != 0 {
		ray &^= rays[dir][nearest(dir, blockers)]
	}
	return ray
}

// nearest returns the blocker closest to the ray origin.
func nearest(dir int, blockers Bitboard) Square {
	if positiveDir(dir) {
		return blockers.LSB()
	}
	return blockers.MSB()
}

// RookAttacksRay computes rook attacks by walking the four orthogonal rays.
func RookAttacksRay(sq Square, occ Bitboard) Bitboard {
	return rayAttacks(dirN, sq, occ) | rayAttacks(dirS, sq, occ) |
		rayAttacks(dirE, sq, occ) | rayAttacks(dirW, sq, occ)
}

// BishopAttacksRay computes bishop attacks by walking the four diagonal rays.
func BishopAttacksRay(sq Square, occ Bitboard) Bitboard {
	return rayAttacks(dirNE, sq, occ) | rayAttacks(dirNW, sq, occ) |
		rayAttacks(dirSE, sq, occ) | rayAttacks(dirSW, sq, occ)
}

// RookAttacks returns rook attacks from sq for the given occupancy using the lookup table.
func RookAttacks(sq Square, occ Bitboard) Bitboard {
	return rookAttTable[sq][pext(uint64(occ), rookMask[sq])]
}

// BishopAttacks returns bishop attacks from sq for the given occupancy using the lookup table.
func BishopAttacks(sq Square, occ Bitboard) Bitboard {
	return bishopAttTable[sq][pext(uint64(occ), bishopMask[sq])]
}

// QueenAttacks is the union of rook and bishop attacks.
func QueenAttacks(sq Square, occ Bitboard) Bitboard {
	return RookAttacks(sq, occ) | BishopAttacks(sq, occ)
}

// KnightAttacks returns the precomputed knight targets from sq.
func KnightAttacks(sq Square) Bitboard { return knightMoves[sq] }

// KingAttacks returns the precomputed king targets from sq.
func KingAttacks(sq Square) Bitboard { return kingMoves[sq] }

// PawnAttacks returns the squares a pawn of color c attacks from sq.
func PawnAttacks(c Color, sq Square) Bitboard { return pawnAttacks[c][sq] }
