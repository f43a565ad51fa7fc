package board

import (
	"strconv"
	"strings"
)

// StartFEN is the standard initial position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN parses a FEN string and returns a new Position set up to that
// position. The halfmove and fullmove fields may be omitted (they default to 0
// and 1). Any structural problem yields a *FormatError; nothing is read past the
// end of a field.
//
// Castling rights whose king or rook is not on its home square are dropped, as
// is an en passant square with no capturable pawn behind it.
func ParseFEN(fen string) (*Position, error) {
	fail := func(field, reason string) (*Position, error) {
		return nil, &FormatError{Input: fen, Field: field, Reason: reason}
	}

	fields := strings.Fields(fen)
	if len(fields) < 4 || len(fields) > 6 {
		return fail("", "want 4 to 6 fields, got "+strconv.Itoa(len(fields)))
	}
	p := newEmptyPosition()

	// 1. Piece placement, rank 8 first
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return fail("placement", "want 8 ranks, got "+strconv.Itoa(len(ranks)))
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for j := 0; j < len(rankStr); j++ {
			ch := rankStr[j]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				if file > 8 {
					return fail("placement", "rank "+strconv.Itoa(rank+1)+" has more than 8 files")
				}
				continue
			}
			pc := PieceFromLetter(ch)
			if pc == NoPiece {
				return fail("placement", "unrecognized character "+strconv.QuoteRune(rune(ch)))
			}
			if file >= 8 {
				return fail("placement", "rank "+strconv.Itoa(rank+1)+" has more than 8 files")
			}
			if pc.Type() == Pawn && (rank == 0 || rank == 7) {
				return fail("placement", "pawn on back rank")
			}
			p.put(NewSquare(file, rank), pc)
			file++
		}
		if file != 8 {
			return fail("placement", "rank "+strconv.Itoa(rank+1)+" has "+strconv.Itoa(file)+" files")
		}
	}
	for c := White; c <= Black; c++ {
		if n := p.pieces[c][King].PopCount(); n != 1 {
			return fail("placement", c.String()+" must have exactly one king, has "+strconv.Itoa(n))
		}
	}

	// 2. Side to move
	switch fields[1] {
	case "w":
		p.side = White
	case "b":
		p.side = Black
	default:
		return fail("side", "must be 'w' or 'b'")
	}

	// 3. Castling rights
	if fields[2] != "-" {
		for j := 0; j < len(fields[2]); j++ {
			var right CastlingRights
			switch fields[2][j] {
			case 'K':
				right = CastlingWhiteK
			case 'Q':
				right = CastlingWhiteQ
			case 'k':
				right = CastlingBlackK
			case 'q':
				right = CastlingBlackQ
			default:
				return fail("castling", "unrecognized character "+strconv.QuoteRune(rune(fields[2][j])))
			}
			if p.castling&right != 0 {
				return fail("castling", "repeated flag")
			}
			p.castling |= right
		}
	}
	for c := White; c <= Black; c++ {
		for _, cs := range castleSpecs[c] {
			if p.mailbox[cs.king] != NewPiece(c, King) || p.mailbox[cs.rook] != NewPiece(c, Rook) {
				p.castling &^= cs.right
			}
		}
	}

	// 4. En passant target square
	if fields[3] != "-" {
		ep, err := ParseSquare(fields[3])
		if err != nil {
			return fail("en passant", err.Error())
		}
		wantRank, capSq := 5, ep-8
		if p.side == Black {
			wantRank, capSq = 2, ep+8
		}
		if ep.Rank() != wantRank {
			return fail("en passant", "square "+fields[3]+" is on the wrong rank")
		}
		if p.mailbox[capSq] == NewPiece(p.side.Other(), Pawn) && p.mailbox[ep] == NoPiece {
			p.ep = ep
		}
	}

	// 5. Halfmove clock
	if len(fields) > 4 {
		n, err := strconv.Atoi(fields[4])
		if err != nil || n < 0 {
			return fail("halfmove", "not a non-negative number")
		}
		p.halfmove = n
	}

	// 6. Fullmove number
	if len(fields) > 5 {
		n, err := strconv.Atoi(fields[5])
		if err != nil || n < 0 {
			return fail("fullmove", "not a non-negative number")
		}
		p.fullmove = max(n, 1)
	}

	if p.IsSquareAttacked(p.KingSquare(p.side.Other()), p.side) {
		return fail("placement", "side not to move is in check")
	}
	p.hash = p.ComputeHash()
	p.updateCheckState()
	return p, nil
}

// FEN produces the FEN string of the current position.
func (p *Position) FEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			pc := p.mailbox[NewSquare(file, rank)]
			if pc == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			sb.WriteByte(pc.Letter())
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	if p.side == White {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}
	sb.WriteString(p.castling.String())
	sb.WriteByte(' ')
	sb.WriteString(p.ep.String())
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.halfmove))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.fullmove))
	return sb.String()
}
