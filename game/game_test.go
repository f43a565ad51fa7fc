package game_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"chess-core/board"
	"chess-core/game"
)

func play(t *testing.T, g *game.Game, moves ...string) {
	t.Helper()
	for _, s := range moves {
		if _, err := g.PlayUCI(s); err != nil {
			t.Fatalf("PlayUCI(%s): %v", s, err)
		}
	}
}

func TestPlayCoordsAndUndo(t *testing.T) {
	g := game.New()
	m, err := g.PlayCoords("e2", "e4", board.NoPieceType)
	if err != nil {
		t.Fatal(err)
	}
	if m.String() != "e2e4" || g.Ply() != 1 || g.SideToMove() != board.Black {
		t.Fatalf("after e2e4: move %s ply %d side %v", m, g.Ply(), g.SideToMove())
	}
	if _, err := g.PlayCoords("e7", "e4", board.NoPieceType); !errors.Is(err, board.ErrIllegalMove) {
		t.Fatalf("e7e4: got %v want illegal move", err)
	}
	if g.Ply() != 1 {
		t.Fatalf("illegal move was recorded")
	}
	undone, ok := g.UndoLastMove()
	if !ok || undone != m {
		t.Fatalf("UndoLastMove = %s, %v", undone, ok)
	}
	if g.FEN() != board.StartFEN {
		t.Fatalf("after undo: %s", g.FEN())
	}
	if _, ok := g.UndoLastMove(); ok {
		t.Fatalf("undo on empty game succeeded")
	}
}

func TestPlayCoordsRejectsBadSquares(t *testing.T) {
	g := game.New()
	if _, err := g.PlayCoords("z2", "e4", board.NoPieceType); err == nil {
		t.Fatalf("bad from square accepted")
	}
	if _, err := g.PlayUCI("e2e9"); err == nil {
		t.Fatalf("bad UCI accepted")
	}
	if _, err := g.PlayUCI("e7e8k"); err == nil {
		t.Fatalf("king promotion accepted")
	}
	if _, err := g.PlayUCI("e2e4q"); !errors.Is(err, board.ErrIllegalMove) {
		t.Fatalf("promotion suffix on a pawn push: got %v want illegal move", err)
	}
	if _, err := g.PlayCoords("g1", "f3", board.Knight); !errors.Is(err, board.ErrIllegalMove) {
		t.Fatalf("promotion piece on a knight move: got %v want illegal move", err)
	}
	if g.Ply() != 0 {
		t.Fatalf("rejected moves were recorded")
	}
}

func TestPromotionSelection(t *testing.T) {
	g, err := game.FromFEN("1n5k/P7/8/8/8/8/8/7K w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	m, err := g.PlayCoords("a7", "a8", board.NoPieceType)
	if err != nil {
		t.Fatal(err)
	}
	if m.PromotionPieceType() != board.Queen {
		t.Fatalf("default promotion: got %v", m.PromotionPieceType())
	}
	g.UndoLastMove()
	m, err = g.PlayUCI("a7b8n")
	if err != nil {
		t.Fatal(err)
	}
	if m.PromotionPieceType() != board.Knight || m.CapturedPiece() != board.BlackKnight {
		t.Fatalf("a7b8n: %s captured %v", m, m.CapturedPiece())
	}
}

func TestLegalMovesFilter(t *testing.T) {
	g := game.New()
	if n := len(g.LegalMoves(board.NoPieceType)); n != 20 {
		t.Fatalf("all: %d", n)
	}
	if n := len(g.LegalMoves(board.Knight)); n != 4 {
		t.Fatalf("knights: %d", n)
	}
	if n := len(g.LegalMoves(board.Queen)); n != 0 {
		t.Fatalf("queens: %d", n)
	}
}

func TestPerftAndDivide(t *testing.T) {
	g := game.New()
	if got := g.Perft(3); got != 8902 {
		t.Fatalf("perft(3) = %d", got)
	}
	div := g.Divide(2)
	if len(div) != 20 {
		t.Fatalf("divide entries: %d", len(div))
	}
	var total uint64
	for i, e := range div {
		total += e.Nodes
		if i > 0 && div[i-1].Move.String() >= e.Move.String() {
			t.Fatalf("divide not sorted at %d: %s >= %s", i, div[i-1].Move, e.Move)
		}
	}
	if total != 400 || div[0].Move.String() != "a2a3" || div[0].Nodes != 20 {
		t.Fatalf("divide: total %d first %s=%d", total, div[0].Move, div[0].Nodes)
	}
	if g.FEN() != board.StartFEN {
		t.Fatalf("perft changed the game position")
	}
}

func TestReplayMatchesCurrentPosition(t *testing.T) {
	g := game.New()
	play(t, g, "e2e4", "d7d5", "e4d5", "c7c5", "d5c6", "b8c6", "g1f3", "g8f6", "f1c4", "e7e6", "e1g1")
	p, err := g.Replay()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(g.Position().State(), p.State()); diff != "" {
		t.Fatalf("replay differs (-current +replayed):\n%s", diff)
	}
	if got, want := p.FEN(), "r1bqkb1r/pp3ppp/2n1pn2/8/2B5/5N2/PPPP1PPP/RNBQ1RK1 b kq - 1 6"; got != want {
		t.Fatalf("FEN %s want %s", got, want)
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		fen   string
		moves []string
		want  game.Status
	}{
		{board.StartFEN, nil, game.Ongoing},
		{board.StartFEN, []string{"f2f3", "e7e5", "g2g4", "d8h4"}, game.Checkmate},
		{"7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", nil, game.Stalemate},
		{"7k/8/6K1/8/8/8/8/R7 w - - 99 80", []string{"a1a2"}, game.FiftyMoveDraw},
		{board.StartFEN, []string{"g1f3", "g8f6", "f3g1", "f6g8", "g1f3", "g8f6", "f3g1", "f6g8"}, game.ThreefoldRepetition},
		{board.StartFEN, []string{"g1f3", "g8f6", "f3g1", "f6g8", "g1f3", "g8f6", "f3g1"}, game.Ongoing},
	}
	for _, tc := range tests {
		g, err := game.FromFEN(tc.fen)
		if err != nil {
			t.Fatal(err)
		}
		play(t, g, tc.moves...)
		if got := g.Status(); got != tc.want {
			t.Errorf("%s %v: status %v want %v", tc.fen, tc.moves, got, tc.want)
		}
	}
}

func TestGameIsolatesPositions(t *testing.T) {
	g := game.New()
	p := g.Position()
	p.MakeMove(p.LegalMoves()[0])
	if g.FEN() != board.StartFEN {
		t.Fatalf("mutating the returned position changed the game")
	}
	moves := g.Moves()
	play(t, g, "e2e4")
	if len(moves) != 0 {
		t.Fatalf("returned move list aliases the game's")
	}
}

func TestViewBoard(t *testing.T) {
	g, err := game.FromFEN("4k3/8/8/8/8/8/8/R3K3 w Q - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	v := game.ViewBoard(g.Position())
	if diff := cmp.Diff([]string{"a1", "e1", "e8"}, v.Occupied()); diff != "" {
		t.Fatalf("occupied (-want +got):\n%s", diff)
	}
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), `{"a1":"R","e1":"K","e8":"k"}`; got != want {
		t.Fatalf("json %s want %s", got, want)
	}
	var back game.BoardView
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back != v {
		t.Fatalf("unmarshal mismatch")
	}
	if err := json.Unmarshal([]byte(`{"a1":"X"}`), &back); err == nil {
		t.Fatalf("invalid piece letter accepted")
	}
}

func TestViewMove(t *testing.T) {
	g, err := game.FromFEN("r3k2r/8/8/3pP3/8/8/8/R3K2R w KQkq d6 0 1")
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		uci  string
		want game.MoveView
	}{
		{"e5e6", game.MoveView{"e5", "e6"}},
		{"e5d6", game.MoveView{"e5", "d6", "d5", "p"}},
		{"a1a8", game.MoveView{"a1", "a8", "a8", "r"}},
		{"e1g1", game.MoveView{"e1", "g1", "h1", "R", "f1"}},
		{"e1c1", game.MoveView{"e1", "c1", "a1", "R", "d1"}},
	}
	for _, tc := range tests {
		m, err := g.ParseUCI(tc.uci)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(tc.want, game.ViewMove(m)); diff != "" {
			t.Errorf("%s (-want +got):\n%s", tc.uci, diff)
		}
	}
}

func TestKnightShuffleDraws(t *testing.T) {
	g := game.New()
	cycle := []string{"g1f3", "g8f6", "f3g1", "f6g8"}
	for i := 0; i < 2; i++ {
		play(t, g, cycle...)
	}
	if got := g.Status(); got != game.ThreefoldRepetition {
		t.Fatalf("after two cycles: %v", got)
	}
	if _, ok := g.UndoLastMove(); !ok || g.Status() != game.Ongoing {
		t.Fatalf("undo did not clear the repetition: %v", g.Status())
	}
	play(t, g, "f6g8")

	// 100 reversible half-moves trip the fifty-move rule, which takes precedence
	for i := 2; i < 25; i++ {
		play(t, g, cycle...)
	}
	if g.Position().HalfmoveClock() != 100 {
		t.Fatalf("halfmove clock %d", g.Position().HalfmoveClock())
	}
	if got := g.Status(); got != game.FiftyMoveDraw {
		t.Fatalf("after 100 half-moves: %v", got)
	}
}
