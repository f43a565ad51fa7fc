package pgn

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/notnil/chess"

	"chess-core/board"
	"chess-core/game"
)

// walkSAN compares SAN encoding and resolution with notnil/chess for every
// move of the tree below p, in lockstep with np.
func walkSAN(t *testing.T, p *board.Position, np *chess.Position, depth int) {
	theirs := make(map[string]*chess.Move)
	for _, m := range np.ValidMoves() {
		theirs[m.String()] = m
	}
	ours := p.LegalMoves()
	if len(ours) != len(theirs) {
		t.Fatalf("%s: %d legal moves, notnil/chess has %d", p.FEN(), len(ours), len(theirs))
	}
	for _, m := range ours {
		nm, ok := theirs[m.String()]
		if !ok {
			t.Fatalf("%s: %s unknown to notnil/chess", p.FEN(), m)
		}
		want := chess.AlgebraicNotation{}.Encode(np, nm)
		if got := EncodeSAN(p, m); got != want {
			t.Fatalf("%s: %s encoded as %s, notnil/chess %s", p.FEN(), m, got, want)
		}
		if got, err := ParseSAN(p, want); err != nil || got != m {
			t.Fatalf("%s: %s resolved to %s (%v) want %s", p.FEN(), want, got, err, m)
		}
		if depth > 1 {
			p.MakeMove(m)
			walkSAN(t, p, np.Update(nm), depth-1)
			p.UndoMove(m)
		}
	}
}

func TestSANAgainstNotnil(t *testing.T) {
	fens := []string{
		board.StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"4k3/8/8/8/8/1Q1Q4/8/1Q1QK3 w - - 0 1",
	}
	for _, fen := range fens {
		opt, err := chess.FEN(fen)
		if err != nil {
			t.Fatal(err)
		}
		walkSAN(t, mustFEN(t, fen), chess.NewGame(opt).Position(), 2)
	}
}

func uciMoves(moves []*chess.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	return out
}

func TestWrittenPGNReadByNotnil(t *testing.T) {
	g := game.New()
	for ply := 0; ply < 80 && !g.Status().Over(); ply++ {
		moves := g.LegalMoves(board.NoPieceType)
		if err := g.Play(moves[(ply*5+3)%len(moves)]); err != nil {
			t.Fatal(err)
		}
	}
	var md Metadata
	md.Set("Event", "export")
	var buf bytes.Buffer
	if err := Write(&buf, md, g); err != nil {
		t.Fatal(err)
	}

	opt, err := chess.PGN(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("notnil/chess rejected:\n%s\n%v", buf.String(), err)
	}
	var want []string
	for _, m := range g.Moves() {
		want = append(want, m.String())
	}
	if diff := cmp.Diff(want, uciMoves(chess.NewGame(opt).Moves())); diff != "" {
		t.Fatalf("moves (-ours +notnil/chess):\n%s", diff)
	}
}

func TestReadNotnilPGN(t *testing.T) {
	ng := chess.NewGame()
	for ply := 0; ply < 60 && ng.Outcome() == chess.NoOutcome; ply++ {
		moves := ng.ValidMoves()
		if err := ng.Move(moves[(ply*3+1)%len(moves)]); err != nil {
			t.Fatal(err)
		}
	}
	recs, errs := ReadAll(strings.NewReader(ng.String()))
	if len(errs) != 0 || len(recs) != 1 {
		t.Fatalf("read %d records, errors %v from:\n%s", len(recs), errs, ng.String())
	}
	var got []string
	for _, m := range recs[0].Game.Moves() {
		got = append(got, m.String())
	}
	if diff := cmp.Diff(uciMoves(ng.Moves()), got); diff != "" {
		t.Fatalf("moves (-notnil/chess +ours):\n%s", diff)
	}
}
