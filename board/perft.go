package board

// Explorer is the capability perft and other tree walkers are written against:
// legal move generation plus reversible application.
type Explorer interface {
	GenerateLegalMoves(dst []Move, only PieceType) []Move
	MakeMove(m Move)
	UndoMove(m Move)
}

var _ Explorer = (*Position)(nil)

// Perft counts leaf nodes of the legal move tree to the given depth.
// Per-depth move buffers are reused so the walk does not allocate.
func Perft(e Explorer, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	pc := perftCtx{bufs: make([][]Move, depth+1)}
	return perftRec(e, depth, &pc)
}

type perftCtx struct {
	bufs [][]Move
}

func (pc *perftCtx) bufFor(depth int) []Move {
	buf := pc.bufs[depth]
	if buf == nil {
		buf = make([]Move, 0, 256)
		pc.bufs[depth] = buf
	}
	return buf[:0]
}

func perftRec(e Explorer, depth int, pc *perftCtx) uint64 {
	moves := e.GenerateLegalMoves(pc.bufFor(depth), NoPieceType)
	// bulk count at the frontier
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		e.MakeMove(m)
		nodes += perftRec(e, depth-1, pc)
		e.UndoMove(m)
	}
	return nodes
}

// PerftCopy is Perft over copy-on-write successors instead of make/undo. It is
// much slower and exists to cross-check the two representations.
func PerftCopy(p *Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	var nodes uint64
	for _, m := range p.LegalMoves() {
		nodes += PerftCopy(p.Successor(m), depth-1)
	}
	return nodes
}

// PerftDivide returns the leaf count below each legal root move.
func PerftDivide(e Explorer, depth int) map[Move]uint64 {
	result := make(map[Move]uint64)
	if depth <= 0 {
		return result
	}
	for _, m := range e.GenerateLegalMoves(nil, NoPieceType) {
		e.MakeMove(m)
		result[m] = Perft(e, depth-1)
		e.UndoMove(m)
	}
	return result
}
