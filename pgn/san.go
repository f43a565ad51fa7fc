package pgn

import (
	"strings"

	"chess-core/board"
)

const (
	noCastle = iota
	castleKingside
	castleQueenside
)

// sanMove is a scanned SAN token before it is matched against a position.
type sanMove struct {
	castle   int
	piece    board.PieceType
	fromFile int // -1 when absent
	fromRank int // -1 when absent
	capture  bool
	to       board.Square
	promo    board.PieceType
}

// scanSAN splits a SAN token into its grammar parts:
// [piece] [file][rank] [x] square [=promotion] [+|#]
// Annotation glyphs (!, ?) and check marks are dropped without being verified.
func scanSAN(tok string) (sanMove, bool) {
	s := strings.TrimRight(tok, "+#!?")
	mv := sanMove{fromFile: -1, fromRank: -1}
	switch s {
	case "O-O", "0-0":
		mv.castle = castleKingside
		mv.piece = board.King
		return mv, true
	case "O-O-O", "0-0-0":
		mv.castle = castleQueenside
		mv.piece = board.King
		return mv, true
	}
	if len(s) < 2 {
		return mv, false
	}

	mv.piece = board.Pawn
	if pt := pieceLetter(s[0]); pt != board.NoPieceType {
		mv.piece = pt
		s = s[1:]
	}

	// promotion suffix, "=Q" or a bare "Q" after the square
	if n := len(s); n >= 3 {
		if pt := pieceLetter(s[n-1]); pt != board.NoPieceType {
			if pt == board.King || mv.piece != board.Pawn {
				return mv, false
			}
			mv.promo = pt
			s = s[:n-1]
			if s[len(s)-1] == '=' {
				s = s[:len(s)-1]
			}
		}
	}

	n := len(s)
	if n < 2 || !isFile(s[n-2]) || !isRank(s[n-1]) {
		return mv, false
	}
	mv.to = board.NewSquare(int(s[n-2]-'a'), int(s[n-1]-'1'))
	rest := s[:n-2]

	if k := len(rest); k > 0 && (rest[k-1] == 'x' || rest[k-1] == ':') {
		mv.capture = true
		rest = rest[:k-1]
	} else if k > 0 && rest[k-1] == '-' {
		// long algebraic "e2-e4"
		rest = rest[:k-1]
	}
	switch len(rest) {
	case 0:
	case 1:
		switch {
		case isFile(rest[0]):
			mv.fromFile = int(rest[0] - 'a')
		case isRank(rest[0]):
			mv.fromRank = int(rest[0] - '1')
		default:
			return mv, false
		}
	case 2:
		if !isFile(rest[0]) || !isRank(rest[1]) {
			return mv, false
		}
		mv.fromFile = int(rest[0] - 'a')
		mv.fromRank = int(rest[1] - '1')
	default:
		return mv, false
	}
	if mv.promo != board.NoPieceType {
		if r := mv.to.Rank(); r != 0 && r != 7 {
			return mv, false
		}
	}
	return mv, true
}

func pieceLetter(ch byte) board.PieceType {
	switch ch {
	case 'N':
		return board.Knight
	case 'B':
		return board.Bishop
	case 'R':
		return board.Rook
	case 'Q':
		return board.Queen
	case 'K':
		return board.King
	}
	return board.NoPieceType
}

func isFile(ch byte) bool { return ch >= 'a' && ch <= 'h' }
func isRank(ch byte) bool { return ch >= '1' && ch <= '8' }

func (mv sanMove) matches(m board.Move) bool {
	if mv.castle != noCastle {
		if !m.IsCastle() {
			return false
		}
		return (m.To().File() == 6) == (mv.castle == castleKingside)
	}
	if m.IsCastle() || m.To() != mv.to {
		return false
	}
	if mv.fromFile >= 0 && m.From().File() != mv.fromFile {
		return false
	}
	if mv.fromRank >= 0 && m.From().Rank() != mv.fromRank {
		return false
	}
	return m.PromotionPieceType() == mv.promo
}

// ParseSAN resolves a SAN token against the legal moves of p. Among the moves
// of the named piece kind it keeps those reaching the destination, then applies
// the disambiguators and the promotion piece; exactly one move must remain.
func ParseSAN(p *board.Position, tok string) (board.Move, error) {
	mv, ok := scanSAN(tok)
	if !ok {
		return board.NullMove, &ParseError{Err: ErrSyntax, SAN: tok}
	}
	var buf [256]board.Move
	found := board.NullMove
	var candidates []string
	for _, m := range p.GenerateLegalMoves(buf[:0], mv.piece) {
		if !mv.matches(m) {
			continue
		}
		if found != board.NullMove {
			if candidates == nil {
				candidates = []string{found.String()}
			}
			candidates = append(candidates, m.String())
			continue
		}
		found = m
	}
	switch {
	case candidates != nil:
		return board.NullMove, &ParseError{Err: ErrAmbiguousMove, SAN: tok, FEN: p.FEN(), Candidates: candidates}
	case found == board.NullMove:
		return board.NullMove, &ParseError{Err: ErrUnresolvedMove, SAN: tok, FEN: p.FEN()}
	}
	return found, nil
}

// EncodeSAN writes m, which must be legal in p, in SAN with the minimal
// disambiguation and a trailing + or #. p is restored before returning.
func EncodeSAN(p *board.Position, m board.Move) string {
	var sb strings.Builder
	switch {
	case m.IsCastle() && m.To().File() == 6:
		sb.WriteString("O-O")
	case m.IsCastle():
		sb.WriteString("O-O-O")
	default:
		pt := m.MovedPiece().Type()
		if pt == board.Pawn {
			if m.IsCapture() {
				sb.WriteByte(byte('a' + m.From().File()))
			}
		} else {
			sb.WriteByte(pt.Letter())
			sb.WriteString(disambiguation(p, m))
		}
		if m.IsCapture() {
			sb.WriteByte('x')
		}
		sb.WriteString(m.To().String())
		if m.IsPromotion() {
			sb.WriteByte('=')
			sb.WriteByte(m.PromotionPieceType().Letter())
		}
	}

	p.MakeMove(m)
	if p.InCheck() {
		if p.HasLegalMoves() {
			sb.WriteByte('+')
		} else {
			sb.WriteByte('#')
		}
	}
	p.UndoMove(m)
	return sb.String()
}

// disambiguation returns the origin file, rank or both needed to tell m apart
// from other moves of the same piece kind to the same square.
func disambiguation(p *board.Position, m board.Move) string {
	var buf [256]board.Move
	from := m.From()
	sameFile, sameRank, others := false, false, false
	for _, o := range p.GenerateLegalMoves(buf[:0], m.MovedPiece().Type()) {
		if o.To() != m.To() || o.From() == from {
			continue
		}
		others = true
		if o.From().File() == from.File() {
			sameFile = true
		}
		if o.From().Rank() == from.Rank() {
			sameRank = true
		}
	}
	switch {
	case !others:
		return ""
	case !sameFile:
		return from.String()[:1]
	case !sameRank:
		return from.String()[1:]
	}
	return from.String()
}
