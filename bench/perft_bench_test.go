package bench

import (
	"testing"

	"github.com/dylhunn/dragontoothmg"

	"chess-core/board"
)

func benchPerft(b *testing.B, fen string, depth int) {
	p := mustFEN(b, fen)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = board.Perft(p, depth)
	}
}

func BenchmarkPerft_Initial_D4(b *testing.B)  { benchPerft(b, board.StartFEN, 4) }
func BenchmarkPerft_Kiwipete_D3(b *testing.B) { benchPerft(b, kiwipete, 3) }

func BenchmarkPerftCopy_Initial_D4(b *testing.B) {
	p := mustFEN(b, board.StartFEN)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = board.PerftCopy(p, 4)
	}
}

func dragontoothPerft(p *dragontoothmg.Board, depth int) uint64 {
	moves := p.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var n uint64
	for _, m := range moves {
		undo := p.Apply(m)
		n += dragontoothPerft(p, depth-1)
		undo()
	}
	return n
}

func BenchmarkDragontooth_Perft_Initial_D4(b *testing.B) {
	p := dragontoothmg.ParseFen(board.StartFEN)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = dragontoothPerft(&p, 4)
	}
}

func BenchmarkDragontooth_Perft_Kiwipete_D3(b *testing.B) {
	p := dragontoothmg.ParseFen(kiwipete)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = dragontoothPerft(&p, 3)
	}
}
