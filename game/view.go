package game

import (
	"bytes"
	"encoding/json"
	"fmt"

	"chess-core/board"
)

// BoardView is a display projection of a position: index i holds the FEN
// letter of the piece on square i (a1 = 0), or 0 for an empty square.
// Iteration order is a1, b1, ... h8.
type BoardView [64]byte

// ViewBoard projects p.
func ViewBoard(p *board.Position) BoardView {
	var v BoardView
	for sq := board.Square(0); sq < 64; sq++ {
		if pc := p.PieceAt(sq); pc != board.NoPiece {
			v[sq] = pc.Letter()
		}
	}
	return v
}

// Occupied returns the occupied coordinates in iteration order.
func (v BoardView) Occupied() []string {
	var out []string
	for sq, ch := range v {
		if ch != 0 {
			out = append(out, board.Square(sq).String())
		}
	}
	return out
}

// MarshalJSON writes an object holding only occupied squares, keys in
// iteration order: {"a1":"R","b1":"N",...}.
func (v BoardView) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for sq, ch := range v {
		if ch == 0 {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		fmt.Fprintf(&buf, "%q:%q", board.Square(sq).String(), string(ch))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (v *BoardView) UnmarshalJSON(data []byte) error {
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*v = BoardView{}
	for coord, letter := range m {
		sq, err := board.ParseSquare(coord)
		if err != nil {
			return err
		}
		if len(letter) != 1 || board.PieceFromLetter(letter[0]) == board.NoPiece {
			return fmt.Errorf("square %s: invalid piece %q", coord, letter)
		}
		v[sq] = letter[0]
	}
	return nil
}

// MoveView is the transport form of a move: [from, to], extended with
// [captureSquare, capturedLetter] for a capture and, for castling, with the
// rook's [origin, letter, destination].
type MoveView []string

// ViewMove projects m.
func ViewMove(m board.Move) MoveView {
	v := MoveView{m.From().String(), m.To().String()}
	if rookFrom, rookTo, ok := m.RookSquares(); ok {
		rook := board.NewPiece(m.MovedPiece().Color(), board.Rook)
		return append(v, rookFrom.String(), rook.String(), rookTo.String())
	}
	if m.IsCapture() {
		v = append(v, m.CaptureSquare().String(), m.CapturedPiece().String())
	}
	return v
}

// View is the transport form of a whole game.
type View struct {
	InitialPosition BoardView  `json:"initialPosition"`
	Moves           []MoveView `json:"moves"`
	FEN             string     `json:"fen"`
	Status          string     `json:"status"`
}

// View projects the game.
func (g *Game) View() View {
	moves := make([]MoveView, len(g.moves))
	for i, m := range g.moves {
		moves[i] = ViewMove(m)
	}
	return View{
		InitialPosition: ViewBoard(g.initial),
		Moves:           moves,
		FEN:             g.pos.FEN(),
		Status:          g.Status().String(),
	}
}
