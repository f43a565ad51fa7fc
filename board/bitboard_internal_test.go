package board

import (
	"math/rand"
	"testing"

	"github.com/dylhunn/dragontoothmg"
)

func TestSliderTablesMatchRayWalk(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for sq := Square(0); sq < 64; sq++ {
		for i := 0; i < 200; i++ {
			// sparse and dense occupancies
			occ := Bitboard(rnd.Uint64() & rnd.Uint64())
			if i%2 == 1 {
				occ = Bitboard(rnd.Uint64())
			}
			if got, want := RookAttacks(sq, occ), RookAttacksRay(sq, occ); got != want {
				t.Fatalf("rook %s occ %016x: table\n%v\nray\n%v", sq, uint64(occ), got, want)
			}
			if got, want := BishopAttacks(sq, occ), BishopAttacksRay(sq, occ); got != want {
				t.Fatalf("bishop %s occ %016x: table\n%v\nray\n%v", sq, uint64(occ), got, want)
			}
			// cross-check against dragontoothmg's magic bitboards
			o := uint64(occ.Clear(sq))
			if got, want := uint64(RookAttacks(sq, occ)), dragontoothmg.CalculateRookMoveBitboard(uint8(sq), o); got != want {
				t.Fatalf("rook %s occ %016x: got %016x, dragontoothmg %016x", sq, o, got, want)
			}
			if got, want := uint64(BishopAttacks(sq, occ)), dragontoothmg.CalculateBishopMoveBitboard(uint8(sq), o); got != want {
				t.Fatalf("bishop %s occ %016x: got %016x, dragontoothmg %016x", sq, o, got, want)
			}
		}
	}
}

func TestLeaperTables(t *testing.T) {
	tests := []struct {
		name string
		got  Bitboard
		want int
	}{
		{"knight a1", knightMoves[0], 2},
		{"knight d4", knightMoves[27], 8},
		{"king a1", kingMoves[0], 3},
		{"king e4", kingMoves[28], 8},
		{"white pawn a2", pawnAttacks[White][8], 1},
		{"black pawn e7", pawnAttacks[Black][52], 2},
	}
	for _, tc := range tests {
		if n := tc.got.PopCount(); n != tc.want {
			t.Errorf("%s: %d targets, want %d", tc.name, n, tc.want)
		}
	}
	if !pawnAttacks[Black][52].Has(43) || !pawnAttacks[Black][52].Has(45) {
		t.Errorf("black pawn on e7 should attack d6 and f6")
	}
}

func TestPextPdepInverse(t *testing.T) {
	for sq := Square(0); sq < 64; sq++ {
		mask := rookMask[sq]
		for idx := uint64(0); idx < 1<<uint(mask.PopCount()); idx += 7 {
			if got := pext(uint64(pdep(idx, mask)), mask); got != idx {
				t.Fatalf("sq %s: pext(pdep(%d)) = %d", sq, idx, got)
			}
		}
	}
}

func TestBitboardOps(t *testing.T) {
	var b Bitboard
	b = b.Set(0).Set(63).Set(27)
	if b.PopCount() != 3 || b.LSB() != 0 || b.MSB() != 63 {
		t.Fatalf("bad set ops: %v", b)
	}
	if got := b.Squares(); len(got) != 3 || got[1] != 27 {
		t.Fatalf("Squares() = %v", got)
	}
	if sq := b.PopLSB(); sq != 0 || b.Has(0) {
		t.Fatalf("PopLSB returned %v, left %v", sq, b)
	}
	if b = b.Clear(27); b != SquareBB(63) {
		t.Fatalf("Clear: %v", b)
	}
}
