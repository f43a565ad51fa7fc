// Package export writes positions as fixed-size binary training records.
//
// A record is 73 bytes, little endian, with no padding or framing between
// records:
//
//	offset  size  field
//	0       8     black occupancy
//	8       48    pawns, knights, bishops, rooks, queens, kings (both colours)
//	56      8     white occupancy
//	64      1     side to move (1 = white)
//	65      1     castling flags
//	66      1     en passant square (0 = none)
//	67      2     evaluation, centipawns, int16
//	69      4     win/draw/loss target, float32
package export

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"chess-core/board"
	"chess-core/game"
)

const (
	PositionSize = 67
	RecordSize   = PositionSize + 2 + 4
)

// Record is the decoded form of one binary record. Field order is the
// wire order.
type Record struct {
	Black     uint64
	Pawns     uint64
	Knights   uint64
	Bishops   uint64
	Rooks     uint64
	Queens    uint64
	Kings     uint64
	White     uint64
	Side      uint8
	Castling  uint8
	EnPassant uint8
	Eval      int16
	WDL       float32
}

// NewRecord snapshots p.
func NewRecord(p *board.Position, eval int16, wdl float32) Record {
	r := Record{
		Black:    uint64(p.Black()),
		White:    uint64(p.White()),
		Castling: uint8(p.CastlingRights()),
		Eval:     eval,
		WDL:      wdl,
	}
	if p.SideToMove() == board.White {
		r.Side = 1
	}
	if ep := p.EnPassant(); ep != board.NoSquare {
		r.EnPassant = uint8(ep)
	}
	for pt := board.Pawn; pt <= board.King; pt++ {
		*r.board(pt) = uint64(p.Pieces(board.White, pt) | p.Pieces(board.Black, pt))
	}
	return r
}

func (r *Record) board(pt board.PieceType) *uint64 {
	switch pt {
	case board.Pawn:
		return &r.Pawns
	case board.Knight:
		return &r.Knights
	case board.Bishop:
		return &r.Bishops
	case board.Rook:
		return &r.Rooks
	case board.Queen:
		return &r.Queens
	}
	return &r.Kings
}

// WriteBinary writes the record to w.
func (r *Record) WriteBinary(w io.Writer) error {
	return binary.Write(w, binary.LittleEndian, r)
}

// ReadBinary reads one record from rd.
func (r *Record) ReadBinary(rd io.Reader) error {
	return binary.Read(rd, binary.LittleEndian, r)
}

// WriteRecord writes one record for p.
func WriteRecord(w io.Writer, p *board.Position, eval int16, wdl float32) error {
	r := NewRecord(p, eval, wdl)
	return r.WriteBinary(w)
}

// ReadRecord reads the next record. It returns io.EOF at a clean end of
// stream and io.ErrUnexpectedEOF for a truncated record.
func ReadRecord(rd io.Reader) (Record, error) {
	var r Record
	err := r.ReadBinary(rd)
	return r, err
}

// FEN rebuilds the position of the record. Clocks are not stored and come
// back as "0 1".
func (r Record) FEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			sq := board.NewSquare(file, rank)
			pc := r.pieceAt(sq)
			if pc == board.NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(pc.Letter())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	if r.Side == 1 {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}
	sb.WriteString(board.CastlingRights(r.Castling & 0xF).String())
	sb.WriteByte(' ')
	if r.EnPassant == 0 {
		sb.WriteByte('-')
	} else {
		sb.WriteString(board.Square(r.EnPassant).String())
	}
	sb.WriteString(" 0 1")
	return sb.String()
}

func (r *Record) pieceAt(sq board.Square) board.Piece {
	bit := uint64(1) << uint(sq)
	var c board.Color
	switch {
	case r.White&bit != 0:
		c = board.White
	case r.Black&bit != 0:
		c = board.Black
	default:
		return board.NoPiece
	}
	for pt := board.Pawn; pt <= board.King; pt++ {
		if *r.board(pt)&bit != 0 {
			return board.NewPiece(c, pt)
		}
	}
	return board.NoPiece
}

// Position parses the rebuilt FEN.
func (r Record) Position() (*board.Position, error) {
	p, err := board.ParseFEN(r.FEN())
	if err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return p, nil
}

// WDLFromEval maps a centipawn score to a win probability for the side it
// favours.
func WDLFromEval(cp int) float32 {
	return float32(1 / (1 + math.Exp(-float64(cp)/410)))
}

// ResultWDL converts a PGN result token to a target from White's point of
// view. Unfinished games ("*") report ok=false.
func ResultWDL(result string) (wdl float32, ok bool) {
	switch result {
	case "1-0":
		return 1, true
	case "0-1":
		return 0, true
	case "1/2-1/2":
		return 0.5, true
	}
	return 0, false
}

// WriteGame writes one record for every position of g in which a move was
// played, skipping positions where the side to move is in check. It returns
// the number of records written.
func WriteGame(w io.Writer, g *game.Game, wdl float32) (int, error) {
	p := g.InitialPosition()
	n := 0
	for i, m := range g.Moves() {
		if !p.InCheck() {
			if err := WriteRecord(w, p, 0, wdl); err != nil {
				return n, fmt.Errorf("ply %d: %w", i+1, err)
			}
			n++
		}
		p.MakeMove(m)
	}
	return n, nil
}
