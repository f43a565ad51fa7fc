package board

import "math/rand"

// Zobrist keys. Pieces are indexed by their Piece code so both colours share one table.
var (
	zobristPiece     [15][64]uint64
	zobristCastle    [16]uint64
	zobristEnPassant [8]uint64 // by file
	zobristSide      uint64    // xored in when Black is to move
)

func initZobrist() {
	// fixed seed: hashes must be stable across runs
	rnd := rand.New(rand.NewSource(0xC0DE))
	for p := 0; p < 15; p++ {
		for sq := 0; sq < 64; sq++ {
			zobristPiece[p][sq] = rnd.Uint64()
		}
	}
	for cr := 0; cr < 16; cr++ {
		zobristCastle[cr] = rnd.Uint64()
	}
	for f := 0; f < 8; f++ {
		zobristEnPassant[f] = rnd.Uint64()
	}
	zobristSide = rnd.Uint64()
}

// ComputeHash recomputes the zobrist hash from scratch. After any sequence of
// MakeMove/UndoMove it must equal Hash().
func (p *Position) ComputeHash() uint64 {
	var key uint64
	for sq, pc := range p.mailbox {
		if pc != NoPiece {
			key ^= zobristPiece[pc][sq]
		}
	}
	if p.side == Black {
		key ^= zobristSide
	}
	key ^= zobristCastle[p.castling]
	if p.ep != NoSquare {
		key ^= zobristEnPassant[p.ep.File()]
	}
	return key
}
