package board

import "fmt"

// Color is the side owning a piece or the side to move.
type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Other returns the opposing side.
func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// PieceType is a colorless representation of a chess piece used for table lookups.
type PieceType uint8

const (
	NoPieceType PieceType = 0
	Pawn        PieceType = 1
	Knight      PieceType = 2
	Bishop      PieceType = 3
	Rook        PieceType = 4
	Queen       PieceType = 5
	King        PieceType = 6
)

// Piece is a colored piece. Black pieces are encoded as (type | 8) so that
// piece&7 gives the type and piece&8 != 0 marks Black.
type Piece uint8

const (
	NoPiece     Piece = 0
	WhitePawn   Piece = 1
	WhiteKnight Piece = 2
	WhiteBishop Piece = 3
	WhiteRook   Piece = 4
	WhiteQueen  Piece = 5
	WhiteKing   Piece = 6

	BlackPawn   Piece = 1 | 8
	BlackKnight Piece = 2 | 8
	BlackBishop Piece = 3 | 8
	BlackRook   Piece = 4 | 8
	BlackQueen  Piece = 5 | 8
	BlackKing   Piece = 6 | 8
)

// NewPiece combines a side and a colorless type.
func NewPiece(c Color, pt PieceType) Piece {
	if pt == NoPieceType {
		return NoPiece
	}
	return Piece(pt) | Piece(c)<<3
}

// Type returns the colorless type of the piece.
func (p Piece) Type() PieceType { return PieceType(p & 7) }

// Color returns the side that owns the piece. NoPiece reports White.
func (p Piece) Color() Color { return Color(p >> 3 & 1) }

const pieceLetters = " PNBRQK  pnbrqk"

// Letter returns the FEN letter of the piece, uppercase for White.
// NoPiece yields ' '.
func (p Piece) Letter() byte {
	if int(p) >= len(pieceLetters) {
		return '?'
	}
	return pieceLetters[p]
}

func (p Piece) String() string { return string(p.Letter()) }

// PieceFromLetter maps a FEN letter to a piece; unknown letters give NoPiece.
func PieceFromLetter(ch byte) Piece {
	switch ch {
	case 'P':
		return WhitePawn
	case 'N':
		return WhiteKnight
	case 'B':
		return WhiteBishop
	case 'R':
		return WhiteRook
	case 'Q':
		return WhiteQueen
	case 'K':
		return WhiteKing
	case 'p':
		return BlackPawn
	case 'n':
		return BlackKnight
	case 'b':
		return BlackBishop
	case 'r':
		return BlackRook
	case 'q':
		return BlackQueen
	case 'k':
		return BlackKing
	}
	return NoPiece
}

// Letter returns the uppercase SAN letter of the type ('P' for pawns).
func (pt PieceType) Letter() byte { return NewPiece(White, pt).Letter() }

func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	}
	return "none"
}

// PieceTypeFromLetter accepts an uppercase or lowercase piece letter.
func PieceTypeFromLetter(ch byte) PieceType {
	return PieceFromLetter(ch).Type()
}

// CastlingRights is a set of castling flags.
type CastlingRights uint8

const (
	CastlingWhiteK CastlingRights = 1 << iota
	CastlingWhiteQ
	CastlingBlackK
	CastlingBlackQ

	NoCastling  CastlingRights = 0
	AllCastling                = CastlingWhiteK | CastlingWhiteQ | CastlingBlackK | CastlingBlackQ
)

func (cr CastlingRights) String() string {
	if cr == 0 {
		return "-"
	}
	var buf [4]byte
	n := 0
	for i, ch := range []byte("KQkq") {
		if cr&(1<<uint(i)) != 0 {
			buf[n] = ch
			n++
		}
	}
	return string(buf[:n])
}

// Square represents a board position (0-63), a1 = 0, h8 = 63.
type Square int

const NoSquare Square = -1

// NewSquare builds a square from 0-based file and rank.
func NewSquare(file, rank int) Square { return Square(rank*8 + file) }

// File returns the 0-based file (a = 0).
func (sq Square) File() int { return int(sq) & 7 }

// Rank returns the 0-based rank (rank 1 = 0).
func (sq Square) Rank() int { return int(sq) >> 3 }

// Valid reports whether sq is on the board.
func (sq Square) Valid() bool { return sq >= 0 && sq < 64 }

func (sq Square) String() string {
	if !sq.Valid() {
		return "-"
	}
	return string([]byte{'a' + byte(sq.File()), '1' + byte(sq.Rank())})
}

// ParseSquare converts algebraic coordinates ("e4") into a square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square %q", s)
	}
	file, rank := s[0], s[1]
	if file >= 'A' && file <= 'H' {
		file += 'a' - 'A'
	}
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return NoSquare, fmt.Errorf("invalid square %q", s)
	}
	return NewSquare(int(file-'a'), int(rank-'1')), nil
}
