package board

// Move encodes a chess move in a 32-bit value. A move carries everything needed
// to apply and reverse its board edit; the pre-move castling rights, en passant
// square and hash live in the position's history instead.
type Move uint32

// Bitfield layout within Move (from LSB to MSB)
const (
	moveFromShift    = 0  // 6 bits
	moveToShift      = 6  // 6 bits
	moveCapSqShift   = 12 // 6 bits
	movePieceShift   = 18 // 4 bits
	moveCaptureShift = 22 // 4 bits
	movePromoteShift = 26 // 4 bits
	moveFlagShift    = 30 // 2 bits
)

// Move flags
const (
	FlagNone      = 0
	FlagCastle    = 1
	FlagEnPassant = 2
)

// NullMove is the zero move; it is never generated.
const NullMove Move = 0

// NewMove constructs a Move. For en passant the capture square is one rank
// behind to; for everything else it equals to.
func NewMove(from, to Square, piece, captured, promotion Piece, flag uint8) Move {
	capSq := to
	if flag == FlagEnPassant {
		if piece.Color() == White {
			capSq = to - 8
		} else {
			capSq = to + 8
		}
	}
	return Move(uint32(from&0x3F) |
		uint32(to&0x3F)<<moveToShift |
		uint32(capSq&0x3F)<<moveCapSqShift |
		uint32(piece&0xF)<<movePieceShift |
		uint32(captured&0xF)<<moveCaptureShift |
		uint32(promotion&0xF)<<movePromoteShift |
		uint32(flag&0x3)<<moveFlagShift)
}

// From returns the source square of the move.
func (m Move) From() Square { return Square(uint32(m) >> moveFromShift & 0x3F) }

// To returns the destination square of the move.
func (m Move) To() Square { return Square(uint32(m) >> moveToShift & 0x3F) }

// CaptureSquare returns the square a captured piece is removed from. It differs
// from To only for en passant.
func (m Move) CaptureSquare() Square { return Square(uint32(m) >> moveCapSqShift & 0x3F) }

// MovedPiece returns the piece code that is moved.
func (m Move) MovedPiece() Piece { return Piece(uint32(m) >> movePieceShift & 0xF) }

// CapturedPiece returns the captured piece, or NoPiece.
func (m Move) CapturedPiece() Piece { return Piece(uint32(m) >> moveCaptureShift & 0xF) }

// PromotionPiece returns the promotion piece code, or NoPiece.
func (m Move) PromotionPiece() Piece { return Piece(uint32(m) >> movePromoteShift & 0xF) }

// PromotionPieceType returns the colorless promotion type, or NoPieceType.
func (m Move) PromotionPieceType() PieceType { return m.PromotionPiece().Type() }

// Flags returns the special move flags.
func (m Move) Flags() uint8 { return uint8(uint32(m) >> moveFlagShift & 0x3) }

func (m Move) IsCapture() bool   { return m.CapturedPiece() != NoPiece }
func (m Move) IsCastle() bool    { return m.Flags() == FlagCastle }
func (m Move) IsEnPassant() bool { return m.Flags() == FlagEnPassant }
func (m Move) IsPromotion() bool { return m.PromotionPiece() != NoPiece }

// RookSquares returns the rook's origin and destination for a castling move.
// ok is false for any other move.
func (m Move) RookSquares() (from, to Square, ok bool) {
	if !m.IsCastle() {
		return NoSquare, NoSquare, false
	}
	kingTo := m.To()
	if kingTo.File() == 6 {
		return kingTo + 1, kingTo - 1, true
	}
	return kingTo - 2, kingTo + 1, true
}

// String returns the move in UCI coordinate form, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	if m == NullMove {
		return "0000"
	}
	buf := make([]byte, 0, 5)
	buf = append(buf, m.From().String()...)
	buf = append(buf, m.To().String()...)
	if promo := m.PromotionPiece(); promo != NoPiece {
		buf = append(buf, NewPiece(Black, promo.Type()).Letter())
	}
	return string(buf)
}
